package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

type fakeProcessor struct {
	runDir string
	err    error
	docs   []models.PaperRecord
	data   []string
}

func (f *fakeProcessor) Process(ctx context.Context) (models.RunResult, error) {
	return models.RunResult{}, errors.New("not used")
}

func (f *fakeProcessor) ProcessDocument(ctx context.Context, doc models.PaperRecord, data []byte) (models.RunResult, error) {
	f.docs = append(f.docs, doc)
	f.data = append(f.data, string(data))
	if f.err != nil {
		return models.RunResult{Outcome: models.OutcomeExtractionFailed}, f.err
	}
	return models.RunResult{Outcome: models.OutcomeSuccess, RunDir: f.runDir}, nil
}

func TestInboxHandle(t *testing.T) {
	root := t.TempDir()
	inbox := filepath.Join(root, "inbox")
	runDir := filepath.Join(root, "outputs", "run")
	for _, dir := range []string{inbox, runDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		procErr  error
		wantPath string
	}{
		{"success archives into run dir", nil, filepath.Join(runDir, "source.pdf")},
		{"failure parks the file", errors.New("extract: empty"), filepath.Join(root, "temp", "failed", "My Paper.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(inbox, "My Paper.pdf")
			if err := os.WriteFile(src, []byte("%PDF-1.4"), 0644); err != nil {
				t.Fatal(err)
			}

			cfg := &config.Config{Paths: config.PathsConfig{Temp: filepath.Join(root, "temp")}}
			proc := &fakeProcessor{runDir: runDir, err: tt.procErr}
			h := NewInboxHandler(cfg, proc, logger.Nop())

			err := h.Handle(context.Background(), src)
			if (err != nil) != (tt.procErr != nil) {
				t.Fatalf("Handle() error = %v", err)
			}

			if proc.docs[0].Title != "My Paper" || proc.data[0] != "%PDF-1.4" {
				t.Errorf("document = %+v, data = %q", proc.docs[0], proc.data[0])
			}
			if _, err := os.Stat(src); !os.IsNotExist(err) {
				t.Error("file should leave the inbox")
			}
			if _, err := os.Stat(tt.wantPath); err != nil {
				t.Errorf("file not at %s: %v", tt.wantPath, err)
			}
		})
	}
}

func TestInboxHandleMissingFile(t *testing.T) {
	cfg := &config.Config{Paths: config.PathsConfig{Temp: t.TempDir()}}
	proc := &fakeProcessor{}
	h := NewInboxHandler(cfg, proc, logger.Nop())

	if err := h.Handle(context.Background(), filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Error("Handle() should fail for a missing file")
	}
	if len(proc.docs) != 0 {
		t.Error("processor should not be called")
	}
}
