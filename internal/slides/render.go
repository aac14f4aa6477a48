package slides

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

const (
	marginX        = 120
	marginY        = 120
	bodyOffset     = 220
	headingWrap    = 22
	bodyWrap       = 34
	headingSpacing = 12
	bodySpacing    = 18
)

// Render writes one PNG per slide. Any draw or write failure aborts the render.
func (c *implComposer) Render(ctx context.Context, contents []models.SlideContent, dir string) ([]models.SlideImage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create slide dir: %w", err)
	}

	heading := c.loadFace(ctx, c.cfg.HeadingSize)
	body := c.loadFace(ctx, c.cfg.BodySize)

	images := make([]models.SlideImage, 0, len(contents))
	for i, content := range contents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(dir, fmt.Sprintf("slide_%02d.png", i+1))
		if err := c.draw(content, heading, body, path); err != nil {
			return nil, fmt.Errorf("render slide %d: %w", i+1, err)
		}
		images = append(images, models.SlideImage{
			Content: content,
			Path:    path,
			Width:   c.cfg.Width,
			Height:  c.cfg.Height,
		})
	}

	c.logger.Info(ctx, "Rendered %d slides into %s", len(images), dir)
	return images, nil
}

func (c *implComposer) draw(content models.SlideContent, heading, body font.Face, path string) error {
	dc := gg.NewContext(c.cfg.Width, c.cfg.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)

	y := float64(marginY)
	dc.SetFontFace(heading)
	drawLines(dc, Wrap(content.Heading, headingWrap), marginX, y, headingSpacing)

	y += bodyOffset
	dc.SetFontFace(body)
	drawLines(dc, Wrap(content.Body, bodyWrap), marginX, y, bodySpacing)

	return dc.SavePNG(path)
}

// drawLines draws lines top-down starting with the first line's top edge at y.
func drawLines(dc *gg.Context, lines []string, x, y, spacing float64) {
	step := dc.FontHeight() + spacing
	for _, line := range lines {
		dc.DrawStringAnchored(line, x, y, 0, 1)
		y += step
	}
}

// loadFace returns the first loadable candidate font, or the built-in bitmap
// face when none of them can be read.
func (c *implComposer) loadFace(ctx context.Context, size float64) font.Face {
	for _, path := range c.cfg.FontPaths {
		face, err := gg.LoadFontFace(path, size)
		if err == nil {
			c.logger.Debug(ctx, "Using font %s at %.0fpt", path, size)
			return face
		}
		c.logger.Debug(ctx, "Font %s not usable: %v", path, err)
	}
	c.logger.Warn(ctx, "No font candidate could be loaded, falling back to built-in font")
	return basicfont.Face7x13
}
