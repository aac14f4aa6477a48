package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
)

func TestToCapability(t *testing.T) {
	tests := []struct {
		name  string
		model *genai.Model
		want  bool
	}{
		{"generation model", &genai.Model{Name: "models/gemini-1.5-flash", SupportedActions: []string{"countTokens", "generateContent"}}, true},
		{"embedding model", &genai.Model{Name: "models/embedding-001", SupportedActions: []string{"embedContent"}}, false},
		{"no actions", &genai.Model{Name: "models/x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toCapability(tt.model)
			if got.Name != tt.model.Name || got.SupportsGeneration != tt.want {
				t.Errorf("toCapability() = %+v, want supports=%v", got, tt.want)
			}
		})
	}
}

func TestToGeneration(t *testing.T) {
	tests := []struct {
		name      string
		resp      *genai.GenerateContentResponse
		wantText  string
		wantFound bool
	}{
		{
			name: "first candidate text",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []*genai.Part{{Text: "- a\n- b"}}}},
				},
			},
			wantText:  "- a\n- b",
			wantFound: true,
		},
		{
			name:      "no candidates",
			resp:      &genai.GenerateContentResponse{},
			wantFound: false,
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			wantFound: false,
		},
		{
			name:      "nil response",
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toGeneration(tt.resp)
			if got.Found != tt.wantFound || got.Text != tt.wantText {
				t.Errorf("toGeneration() = %+v", got)
			}
			if got.Raw == "" {
				t.Error("Raw should always be set")
			}
		})
	}
}

func TestGeminiClientMissingCredential(t *testing.T) {
	var cfg config.Config
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.Gemini.APIKey = ""
	g := NewGeminiClient(cfg.Gemini)

	if _, err := g.ListCapabilities(context.Background()); !errors.Is(err, ErrMissingCredential) {
		t.Errorf("ListCapabilities() error = %v, want ErrMissingCredential", err)
	}

	_, err := g.Generate(context.Background(), "models/m", "prompt")
	if !errors.Is(err, ErrMissingCredential) || !errors.Is(err, ErrSummarizationFailed) {
		t.Errorf("Generate() error = %v", err)
	}
}

func TestGeminiGenerateRejected(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprintf(w, `{"error":{"code":403,"message":%q,"status":"PERMISSION_DENIED"}}`, strings.Repeat("x", 2000))
	}))
	defer srv.Close()

	var cfg config.Config
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	cfg.Gemini.APIKey = "test-key"
	cfg.Gemini.BaseURL = srv.URL
	g := NewGeminiClient(cfg.Gemini)

	_, err := g.Generate(context.Background(), "models/gemini-2.5-flash", "prompt")

	var sumErr *SummarizationError
	if !errors.As(err, &sumErr) {
		t.Fatalf("Generate() error = %v, want *SummarizationError", err)
	}
	if sumErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want 403", sumErr.Status)
	}
	if n := utf8.RuneCountInString(sumErr.Body); n != maxBodyChars {
		t.Errorf("Body length = %d, want %d", n, maxBodyChars)
	}
	if !strings.HasPrefix(sumErr.Body, `{"code":403`) {
		t.Errorf("Body = %.60q", sumErr.Body)
	}
	if !errors.Is(err, ErrSummarizationFailed) {
		t.Error("status errors should match ErrSummarizationFailed")
	}

	if !strings.HasSuffix(gotPath, ":generateContent") {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
}

func TestSummarizationErrorMessage(t *testing.T) {
	err := &SummarizationError{Status: 429, Body: "quota"}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota") {
		t.Errorf("Error() = %q", err.Error())
	}
}
