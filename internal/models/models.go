package models

import (
	"strings"
	"time"
)

// PaperRecord is one candidate paper returned by the feed.
type PaperRecord struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DocumentLocator string    `json:"documentLocator"`
	PublishedOrder  int       `json:"publishedOrder"`
	Published       time.Time `json:"published,omitempty"`
}

// ExtractedText is the plain text pulled out of a paper's document.
type ExtractedText struct {
	Paper  PaperRecord `json:"paper"`
	Body   string      `json:"body"`
	Length int         `json:"length"`
}

// Empty reports whether extraction produced no usable text.
func (t ExtractedText) Empty() bool {
	return strings.TrimSpace(t.Body) == ""
}

// ModelCapability is one entry of the summarization service's model list.
type ModelCapability struct {
	Name               string `json:"name"`
	SupportsGeneration bool   `json:"supportsGeneration"`
}

// ResolvedModel is the model committed to for a run.
type ResolvedModel struct {
	Name string `json:"name"`
}

// DigestSize is the fixed number of bullets in every digest.
const DigestSize = 3

// Digest is the condensed bullet summary of a paper.
type Digest struct {
	Bullets []string `json:"bullets"`
	// Raw is the unparsed service output, kept for diagnostics.
	Raw string `json:"raw,omitempty"`
}

// Count returns the number of bullets.
func (d Digest) Count() int {
	return len(d.Bullets)
}

// Text joins the bullets into one narration-ready string.
func (d Digest) Text() string {
	return strings.Join(d.Bullets, "\n")
}

// SlideContent is the text of one slide before rendering.
type SlideContent struct {
	Heading   string `json:"heading"`
	Body      string `json:"body"`
	Narration string `json:"narration"`
	Order     int    `json:"order"`
}

// SlideImage is a rendered slide on disk.
type SlideImage struct {
	Content SlideContent `json:"content"`
	Path    string       `json:"path"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
}

// AudioClip is a synthesized narration file with its measured duration.
type AudioClip struct {
	Text     string  `json:"text"`
	Path     string  `json:"path"`
	Format   string  `json:"format"`
	Duration float64 `json:"duration"`
}

// VideoOutput is the final assembled video.
type VideoOutput struct {
	Path          string  `json:"path"`
	SlideCount    int     `json:"slideCount"`
	TotalDuration float64 `json:"totalDuration"`
}
