package processor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// Processor runs the paper-to-video pipeline
type Processor interface {
	// Process fetches the newest paper and turns it into a video. A run that
	// finds no papers returns an OutcomeNoPapers result and a nil error.
	Process(ctx context.Context) (models.RunResult, error)
	// ProcessDocument runs the same chain from PDF bytes already on hand.
	ProcessDocument(ctx context.Context, paper models.PaperRecord, data []byte) (models.RunResult, error)
}

// Observer is told about every stage a run enters.
type Observer func(stage models.Stage, message string)

// StageError is a stage-aware pipeline failure.
type StageError struct {
	Stage   models.Stage
	Outcome models.Outcome
	Err     error
}

func (e *StageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
