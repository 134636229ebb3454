package report

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meeting-minutes/internal/aligner"
)

const (
	fontName    = "Malgun Gothic"
	fontSize    = 11
	textColor   = "000000"
	footerColor = "808080"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^(\d+\.)\s+(.+)$`)
)

// writeDocx lays out the same three sections as the Markdown report. The
// model's summary is Markdown and is converted line by line; utterances are
// written directly with the speaker in bold.
func writeDocx(path, summary string, utterances []aligner.Utterance) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), reportTitle, true, headingSize(1), textColor)

	addStyledRun(doc.AddParagraph(""), summaryHeading, true, headingSize(2), textColor)
	addSummary(doc, summary)

	addStyledRun(doc.AddParagraph(""), transcriptHeading, true, headingSize(2), textColor)
	for _, u := range utterances {
		p := doc.AddParagraph("")
		p.AddText(u.Speaker+": ").Font(fontName).Size(fontSize).Color(textColor).Bold(true)
		p.AddText(u.Text).Font(fontName).Size(fontSize).Color(textColor)
	}

	addStyledRun(doc.AddParagraph(""), footerText, false, fontSize, footerColor)

	return doc.SaveTo(path)
}

// addSummary converts the Markdown the model returned. Headings inside the
// summary are demoted one level below the section heading.
func addSummary(doc *docx.RootDoc, summary string) {
	for _, line := range strings.Split(summary, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])+1), textColor)
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if num, rest, ok := splitNumbered(trimmed); ok {
			p := doc.AddParagraph("")
			p.AddText(num+" ").Font(fontName).Size(fontSize).Color(textColor).Bold(true)
			addRichText(p, rest)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

// splitNumbered splits "3. text" into "3." and "text".
func splitNumbered(line string) (num, rest string, ok bool) {
	m := reNumbered.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 14
	case 3:
		return 12
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64, color string) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color(color)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color(textColor)
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color(textColor).Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
