package summarizer

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

const (
	fontName = "Noto Sans CJK JP"
	fontSize = 13
)

// DigestReport is the content of the per-run digest document.
type DigestReport struct {
	Title       string
	Locator     string
	Model       string
	Digest      models.Digest
	GeneratedAt time.Time
}

// WriteDigestDocx writes a styled docx digest report to outputPath.
func WriteDigestDocx(report DigestReport, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	addStyledRun(doc.AddParagraph(""), report.Title, true, 16)

	meta := report.GeneratedAt.Format("2006-01-02 15:04")
	if report.Model != "" {
		meta += " · " + strings.TrimPrefix(report.Model, modelPrefix)
	}
	addStyledRun(doc.AddParagraph(""), meta, false, 11)

	if report.Locator != "" {
		addStyledRun(doc.AddParagraph(""), report.Locator, false, 11)
	}
	doc.AddParagraph("")

	for i, bullet := range report.Digest.Bullets {
		p := doc.AddParagraph("")
		addRichText(p, fmt.Sprintf("%d. %s", i+1, bullet))
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	clean := cleanMarkdownInline(text)
	p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
