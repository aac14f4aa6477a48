package document

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// ErrEmptyText is returned by Load when nothing could be extracted.
var ErrEmptyText = errors.New("no text extracted from document")

// Loader retrieves paper documents and extracts their plain text.
type Loader interface {
	// Retrieve downloads the raw document bytes.
	Retrieve(ctx context.Context, locator string) ([]byte, error)
	// ExtractText returns the page texts joined in page order, or "" when
	// the document cannot be read.
	ExtractText(data []byte) string
	// Load composes Retrieve and ExtractText for one paper.
	Load(ctx context.Context, paper models.PaperRecord) (models.ExtractedText, error)
	// FromBytes extracts text from a document already held in memory.
	FromBytes(ctx context.Context, paper models.PaperRecord, data []byte) (models.ExtractedText, error)
}
