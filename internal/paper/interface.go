package paper

import (
	"context"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// Source yields candidate papers, newest first.
type Source interface {
	// Fetch returns at most maxResults papers. Any transport or parse
	// failure yields an empty slice, never an error.
	Fetch(ctx context.Context, maxResults int) []models.PaperRecord
}
