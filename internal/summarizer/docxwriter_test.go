package summarizer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

func TestWriteDigestDocx(t *testing.T) {
	path := filepath.Join(t.TempDir(), "digest.docx")
	report := DigestReport{
		Title:       "Attention Is All You Need",
		Locator:     "http://arxiv.org/pdf/1706.03762v7.pdf",
		Model:       "models/gemini-2.5-flash",
		Digest:      models.Digest{Bullets: []string{"**Transformer**", "No recurrence", "(no point)"}},
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC),
	}

	if err := WriteDigestDocx(report, path); err != nil {
		t.Fatalf("WriteDigestDocx() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output is empty")
	}
}

func TestCleanMarkdownInline(t *testing.T) {
	if got := cleanMarkdownInline("**bold** __u__ `code`"); got != "bold u code" {
		t.Errorf("cleanMarkdownInline() = %q", got)
	}
}
