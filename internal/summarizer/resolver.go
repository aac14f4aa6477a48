package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

const modelPrefix = "models/"

// NormalizeModelName turns a bare model name into the service's
// fully-qualified form: "gemini-2.5-flash" -> "models/gemini-2.5-flash".
func NormalizeModelName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, modelPrefix) {
		return name
	}
	return modelPrefix + name
}

// Resolve returns the preferred model when the service lists it with
// generation support, otherwise the first generation-capable model in
// service order.
func (r *implResolver) Resolve(ctx context.Context, preferred string) (models.ResolvedModel, error) {
	want := NormalizeModelName(preferred)

	caps, err := r.lister.ListCapabilities(ctx)
	if err != nil {
		return models.ResolvedModel{}, fmt.Errorf("list model capabilities: %w", err)
	}

	for _, c := range caps {
		if NormalizeModelName(c.Name) == want && c.SupportsGeneration {
			r.logger.Debug(ctx, "Preferred model available: %s", want)
			return models.ResolvedModel{Name: want}, nil
		}
	}

	for _, c := range caps {
		if c.SupportsGeneration {
			name := NormalizeModelName(c.Name)
			r.logger.Warn(ctx, "Preferred model %s unavailable, falling back to %s", want, name)
			return models.ResolvedModel{Name: name}, nil
		}
	}

	return models.ResolvedModel{}, fmt.Errorf("%w (checked %d models)", ErrNoUsableModel, len(caps))
}
