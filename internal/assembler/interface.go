package assembler

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// ErrAssemblyMismatch means slides and narration clips cannot be paired.
var ErrAssemblyMismatch = errors.New("slide and audio counts do not match")

// Assembler turns rendered slides and narration into a single video file.
// No file is left at the output path unless assembly succeeds.
type Assembler interface {
	// Assemble shows slide i for clip i's duration plus the configured pad.
	Assemble(ctx context.Context, images []models.SlideImage, clips []models.AudioClip, outputPath string) (models.VideoOutput, error)
	// AssembleFixed shows every slide for the same time under one narration track.
	AssembleFixed(ctx context.Context, images []models.SlideImage, narration models.AudioClip, outputPath string) (models.VideoOutput, error)
}
