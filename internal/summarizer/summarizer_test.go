package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

type fakeGenerator struct {
	gen    Generation
	err    error
	model  string
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, model, prompt string) (Generation, error) {
	f.model = model
	f.prompt = prompt
	return f.gen, f.err
}

func TestSummarize(t *testing.T) {
	profile := enProfile(t)
	model := models.ResolvedModel{Name: "models/gemini-1.5-flash"}

	gen := &fakeGenerator{gen: Generation{Text: "- line1\n- line2", Found: true}}
	s := New(gen, profile, 0, logger.Nop())

	d, err := s.Summarize(context.Background(), "Some  paper\n\ntext", "A Title", model)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}

	want := []string{"line1", "line2", "(no point)"}
	for i := range want {
		if d.Bullets[i] != want[i] {
			t.Errorf("Bullets[%d] = %q, want %q", i, d.Bullets[i], want[i])
		}
	}
	if gen.model != model.Name {
		t.Errorf("model = %q, want %q", gen.model, model.Name)
	}
	if !strings.Contains(gen.prompt, "Some paper text") {
		t.Errorf("prompt should contain collapsed text:\n%s", gen.prompt)
	}
	if !strings.Contains(gen.prompt, "A Title") {
		t.Errorf("prompt should contain title:\n%s", gen.prompt)
	}
}

func TestSummarizeTruncatesExcerpt(t *testing.T) {
	gen := &fakeGenerator{gen: Generation{Text: "- ok", Found: true}}
	s := New(gen, enProfile(t), 10, logger.Nop())

	text := strings.Repeat("a", 9) + "XYZ"
	if _, err := s.Summarize(context.Background(), text, "T", models.ResolvedModel{Name: "models/m"}); err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if strings.Contains(gen.prompt, "XY") || !strings.Contains(gen.prompt, "aaaaaaaaaX") {
		t.Errorf("excerpt not cut to 10 characters:\n%s", gen.prompt)
	}
}

func TestSummarizeUnexpectedShape(t *testing.T) {
	raw := `{"candidates":[]}`
	gen := &fakeGenerator{gen: Generation{Found: false, Raw: raw}}
	s := New(gen, enProfile(t), 0, logger.Nop())

	d, err := s.Summarize(context.Background(), "text", "T", models.ResolvedModel{Name: "models/m"})
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if d.Count() != models.DigestSize {
		t.Fatalf("Count() = %d", d.Count())
	}
	if d.Raw != raw {
		t.Errorf("Raw = %q, want %q", d.Raw, raw)
	}
	if d.Bullets[0] != raw {
		t.Errorf("Bullets[0] = %q, want raw response", d.Bullets[0])
	}
}

func TestSummarizeServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{
			name:       "status error",
			err:        &SummarizationError{Status: 403, Body: "permission denied"},
			wantStatus: 403,
		},
		{
			name: "transport error",
			err:  errors.Join(ErrSummarizationFailed, errors.New("timeout")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(&fakeGenerator{err: tt.err}, enProfile(t), 0, logger.Nop())
			_, err := s.Summarize(context.Background(), "text", "T", models.ResolvedModel{Name: "models/m"})

			if !errors.Is(err, ErrSummarizationFailed) {
				t.Fatalf("error = %v, want ErrSummarizationFailed", err)
			}
			var se *SummarizationError
			if tt.wantStatus != 0 {
				if !errors.As(err, &se) || se.Status != tt.wantStatus {
					t.Errorf("status = %v, want %d", se, tt.wantStatus)
				}
			}
		})
	}
}

func TestPrepareExcerpt(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		want     string
	}{
		{"collapse whitespace", "a \n\t b", 100, "a b"},
		{"cut by characters", "日本語テキスト", 3, "日本語"},
		{"shorter than limit", "abc", 10, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prepareExcerpt(tt.text, tt.maxChars); got != tt.want {
				t.Errorf("prepareExcerpt() = %q, want %q", got, tt.want)
			}
		})
	}
}
