package report

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 7, 9, 5, 2, 0, time.Local)
}

func TestRender(t *testing.T) {
	got := Render("S", []aligner.Utterance{{Speaker: "A", Text: "x"}, {Speaker: "B", Text: "y"}})

	want := "# 📝 회의록\n\n" +
		"## 📌 요약\nS\n\n" +
		"## 🔊 원문\n" +
		"- A: x\n" +
		"- B: y\n" +
		"\n_(이 회의록은 AI에 의해 자동 생성되었습니다)_\n"
	assert.Equal(t, want, got)
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w := newWithClock(config.ReportConfig{OutputDir: dir}, fixedClock, logger.Nop())

	path, err := w.Write(context.Background(), "S", []aligner.Utterance{{Speaker: "A", Text: "x"}, {Speaker: "B", Text: "y"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "meeting_20250307_090502.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)

	summaryAt := strings.Index(body, "## 📌 요약\nS\n")
	aAt := strings.Index(body, "- A: x\n")
	bAt := strings.Index(body, "- B: y\n")
	assert.GreaterOrEqual(t, summaryAt, 0)
	assert.Greater(t, aAt, summaryAt)
	assert.Greater(t, bAt, aAt)
}

func TestWriteSameSecondDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	w := newWithClock(config.ReportConfig{OutputDir: dir}, fixedClock, logger.Nop())

	first, err := w.Write(context.Background(), "first", nil)
	require.NoError(t, err)
	second, err := w.Write(context.Background(), "second", nil)
	require.NoError(t, err)
	third, err := w.Write(context.Background(), "third", nil)
	require.NoError(t, err)

	assert.Equal(t, "meeting_20250307_090502.md", filepath.Base(first))
	assert.Equal(t, "meeting_20250307_090502_2.md", filepath.Base(second))
	assert.Equal(t, "meeting_20250307_090502_3.md", filepath.Base(third))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
}

func TestWriteDistinctSeconds(t *testing.T) {
	dir := t.TempDir()
	tick := fixedClock()
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	w := newWithClock(config.ReportConfig{OutputDir: dir}, clock, logger.Nop())

	a, err := w.Write(context.Background(), "S", nil)
	require.NoError(t, err)
	b, err := w.Write(context.Background(), "S", nil)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, "meeting_20250307_090503.md", filepath.Base(a))
	assert.Equal(t, "meeting_20250307_090504.md", filepath.Base(b))
}

func TestWriteFailsOnUnwritableDir(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	w := newWithClock(config.ReportConfig{OutputDir: dir}, fixedClock, logger.Nop())
	_, err := w.Write(context.Background(), "S", nil)
	assert.Error(t, err)
}

func TestWriteFailsWhenOutputDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	w := newWithClock(config.ReportConfig{OutputDir: file}, fixedClock, logger.Nop())
	_, err := w.Write(context.Background(), "S", nil)
	assert.Error(t, err)
}

func TestWriteDocx(t *testing.T) {
	dir := t.TempDir()
	w := newWithClock(config.ReportConfig{OutputDir: dir, Docx: true}, fixedClock, logger.Nop())

	path, err := w.Write(context.Background(), "## 회의 요약\n- **예산** 확정", []aligner.Utterance{{Speaker: "A", Text: "x"}})
	require.NoError(t, err)

	info, err := os.Stat(strings.TrimSuffix(path, ".md") + ".docx")
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWriteDocxSkipsEmptyTranscript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.docx")
	require.NoError(t, writeDocx(path, "# 제목\n\n---\n1. 항목", nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestCleanMarkdownInline(t *testing.T) {
	assert.Equal(t, "bold code", cleanMarkdownInline("**bold** `code`"))
	assert.Equal(t, uint64(16), headingSize(1))
	assert.Equal(t, uint64(fontSize), headingSize(5))
}

func TestSplitNumbered(t *testing.T) {
	tests := []struct {
		line     string
		num      string
		rest     string
		numbered bool
	}{
		{"1. 예산 확정", "1.", "예산 확정", true},
		{"12.  **담당자** 지정", "12.", "**담당자** 지정", true},
		{"- 항목", "", "", false},
		{"2025.03 회의", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			num, rest, ok := splitNumbered(tt.line)
			assert.Equal(t, tt.numbered, ok)
			assert.Equal(t, tt.num, num)
			assert.Equal(t, tt.rest, rest)
		})
	}
}
