package narrator

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

var (
	// ErrEmptyText means there was nothing to speak.
	ErrEmptyText = errors.New("narration text is empty")
	// ErrInvalidDuration means the rendered clip measured zero or negative length.
	ErrInvalidDuration = errors.New("audio duration must be positive")
	// ErrSpeakerNotFound means the VOICEVOX engine has no matching speaker style.
	ErrSpeakerNotFound = errors.New("speaker not found")
)

// Speech is synthesized audio returned by a backend.
type Speech struct {
	Data   []byte
	Format string // file extension without the dot: "mp3", "wav"
	// SpeedApplied is true when the backend already honoured the speaking rate.
	SpeedApplied bool
}

// Synthesizer is one text-to-speech backend.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) (Speech, error)
}

// Narrator produces timed narration clips on disk.
type Narrator interface {
	// NarrateSlides speaks every slide's narration into dir, one clip per slide.
	NarrateSlides(ctx context.Context, slides []models.SlideContent, dir string) ([]models.AudioClip, error)
	// NarrateDigest speaks the whole digest as a single clip.
	NarrateDigest(ctx context.Context, title string, digest models.Digest, dir string) (models.AudioClip, error)
	// Synthesize speaks text into stem plus the backend's extension and
	// measures the result.
	Synthesize(ctx context.Context, text, stem string) (models.AudioClip, error)
}
