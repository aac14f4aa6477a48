package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

var (
	// ErrNoUsableModel means the service advertises no generation-capable model.
	ErrNoUsableModel = errors.New("no model supports generateContent")
	// ErrSummarizationFailed marks every fatal summarization failure.
	ErrSummarizationFailed = errors.New("summarization failed")
	// ErrMissingCredential means no API key is configured.
	ErrMissingCredential = errors.New("GEMINI_API_KEY is empty")
)

// SummarizationError is a non-success response from the generation service.
type SummarizationError struct {
	Status int
	Body   string
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("gemini error %d: %s", e.Status, e.Body)
}

// Is lets errors.Is(err, ErrSummarizationFailed) match status errors.
func (e *SummarizationError) Is(target error) bool {
	return target == ErrSummarizationFailed
}

// Generation is one generation response mapped at the service boundary.
type Generation struct {
	// Text is the first candidate's first text part.
	Text string
	// Found is false when the response had no candidate text.
	Found bool
	// Raw is a JSON rendering of the whole response.
	Raw string
}

// CapabilityLister lists the models a summarization service exposes.
type CapabilityLister interface {
	ListCapabilities(ctx context.Context) ([]models.ModelCapability, error)
}

// Generator submits one prompt to one model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (Generation, error)
}

// Resolver picks the model a run commits to.
type Resolver interface {
	Resolve(ctx context.Context, preferred string) (models.ResolvedModel, error)
}

// Summarizer condenses paper text into a three-bullet digest.
type Summarizer interface {
	Summarize(ctx context.Context, text, title string, model models.ResolvedModel) (models.Digest, error)
}
