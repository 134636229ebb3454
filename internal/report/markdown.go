package report

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
)

const (
	reportTitle       = "회의록"
	summaryHeading    = "요약"
	transcriptHeading = "원문"
	footerText        = "(이 회의록은 AI에 의해 자동 생성되었습니다)"

	filenameStamp = "20060102_150405"
	maxSuffix     = 1000
)

// Write renders the report and creates meeting_YYYYMMDD_HHMMSS.md in the
// output dir. An existing file is never overwritten: a _2, _3, ... suffix is
// added instead.
func (w *implWriter) Write(ctx context.Context, summary string, utterances []aligner.Utterance) (string, error) {
	dir := w.cfg.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	content := Render(summary, utterances)
	base := "meeting_" + w.now().Format(filenameStamp)

	path, err := createExclusive(dir, base, ".md", []byte(content))
	if err != nil {
		return "", err
	}
	w.logger.Info(ctx, "Report written: %s", path)

	if w.cfg.Docx {
		docxPath := strings.TrimSuffix(path, ".md") + ".docx"
		if err := writeDocx(docxPath, summary, utterances); err != nil {
			w.logger.Warn(ctx, "Failed to write DOCX %s: %v", docxPath, err)
		} else {
			w.logger.Info(ctx, "DOCX written: %s", docxPath)
		}
	}

	return path, nil
}

// Render produces the Markdown body: title, summary verbatim, one bullet per
// utterance in the given order, and the generated-by footer.
func Render(summary string, utterances []aligner.Utterance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# 📝 %s\n\n", reportTitle)
	fmt.Fprintf(&b, "## 📌 %s\n%s\n\n", summaryHeading, summary)
	fmt.Fprintf(&b, "## 🔊 %s\n", transcriptHeading)
	for _, u := range utterances {
		fmt.Fprintf(&b, "- %s\n", u.String())
	}
	fmt.Fprintf(&b, "\n_%s_\n", footerText)
	return b.String()
}

func createExclusive(dir, base, ext string, data []byte) (string, error) {
	for n := 1; n <= maxSuffix; n++ {
		name := base + ext
		if n > 1 {
			name = fmt.Sprintf("%s_%d%s", base, n, ext)
		}
		path := filepath.Join(dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}

		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			os.Remove(path)
			return "", fmt.Errorf("close %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("no free report name for %s after %d attempts", base, maxSuffix)
}
