package summarizer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

const generateAction = "generateContent"

// GeminiClient talks to the Gemini API. It implements both CapabilityLister
// and Generator. The underlying client is created on first use so runs that
// never reach summarization do not need a credential.
type GeminiClient struct {
	cfg config.GeminiConfig

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a lazily connected Gemini client.
func NewGeminiClient(cfg config.GeminiConfig) *GeminiClient {
	return &GeminiClient{cfg: cfg}
}

func (g *GeminiClient) connect(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    g.cfg.BaseURL,
			APIVersion: g.cfg.APIVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	g.client = client
	return client, nil
}

// ListCapabilities lists every model with its generation support.
func (g *GeminiClient) ListCapabilities(ctx context.Context) ([]models.ModelCapability, error) {
	client, err := g.connect(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.ListTimeout)
	defer cancel()

	var caps []models.ModelCapability
	for m, err := range client.Models.All(ctx) {
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		caps = append(caps, toCapability(m))
	}
	return caps, nil
}

// Generate sends prompt to model. Non-success responses become a
// *SummarizationError carrying the status and a truncated body.
func (g *GeminiClient) Generate(ctx context.Context, model, prompt string) (Generation, error) {
	client, err := g.connect(ctx)
	if err != nil {
		return Generation{}, fmt.Errorf("%w: %w", ErrSummarizationFailed, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.GenerateTimeout)
	defer cancel()

	temperature := g.cfg.Temperature
	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		if status, body, ok := apiErrorDetails(err); ok {
			return Generation{}, &SummarizationError{Status: status, Body: truncateRunes(body, maxBodyChars)}
		}
		return Generation{}, fmt.Errorf("%w: generate content: %w", ErrSummarizationFailed, err)
	}

	return toGeneration(result), nil
}

func apiErrorDetails(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, renderJSON(apiErr), true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, renderJSON(apiErrPtr), true
	}
	return 0, "", false
}

func toCapability(m *genai.Model) models.ModelCapability {
	if m == nil {
		return models.ModelCapability{}
	}
	return models.ModelCapability{
		Name:               m.Name,
		SupportsGeneration: slices.Contains(m.SupportedActions, generateAction),
	}
}

// toGeneration extracts candidates[0].content.parts[0].text.
func toGeneration(result *genai.GenerateContentResponse) Generation {
	gen := Generation{Raw: renderJSON(result)}

	if result == nil || len(result.Candidates) == 0 {
		return gen
	}
	cand := result.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 {
		return gen
	}
	part := cand.Content.Parts[0]
	if part == nil || part.Text == "" {
		return gen
	}

	gen.Text = part.Text
	gen.Found = true
	return gen
}

func renderJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
