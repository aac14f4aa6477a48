package slides

import (
	"context"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// Composer turns a digest into slide content and renders it to PNG files.
type Composer interface {
	// Compose builds the title slide, one slide per bullet and the closing slide.
	Compose(title string, digest models.Digest) []models.SlideContent
	// Render draws every slide into dir as slide_01.png, slide_02.png, ...
	Render(ctx context.Context, contents []models.SlideContent, dir string) ([]models.SlideImage, error)
}
