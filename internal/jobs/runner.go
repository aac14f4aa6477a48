package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// RunFunc executes one pipeline run.
type RunFunc func(ctx context.Context) (models.RunResult, error)

// Runner starts runs in the background, one at a time, and reports their
// progress on an EventBus.
type Runner struct {
	manager *Manager
	bus     *EventBus
	logger  logger.Logger
	now     func() time.Time
	wg      sync.WaitGroup
}

// NewRunner creates a Runner.
func NewRunner(manager *Manager, bus *EventBus, log logger.Logger) *Runner {
	return &Runner{
		manager: manager,
		bus:     bus,
		logger:  log,
		now:     time.Now,
	}
}

// Launch starts fn in the background and returns the new run's id. ctx is
// handed to fn, so it must outlive the caller's request.
func (r *Runner) Launch(ctx context.Context, fn RunFunc) (string, error) {
	id := uuid.NewString()
	if err := r.manager.Start(id, r.now()); err != nil {
		return "", err
	}
	r.logger.Info(ctx, "Run %s started", id)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		result, err := fn(ctx)
		run := r.manager.Finish(result, err, r.now())

		event := Event{RunID: id, Outcome: result.Outcome}
		if err != nil {
			event.Type = EventTypeError
			event.Message = err.Error()
			event.Stage = run.Stage
			r.logger.Warn(ctx, "Run %s failed: %v", id, err)
		} else {
			event.Type = EventTypeResult
			if result.Video != nil {
				event.Message = result.Video.Path
			}
			r.logger.Info(ctx, "Run %s finished: %s", id, result.Outcome)
		}
		r.bus.Publish(event)
	}()
	return id, nil
}

// Observe records a stage transition of the active run. It matches
// processor.Observer.
func (r *Runner) Observe(stage models.Stage, message string) {
	r.manager.SetStage(stage)
	r.bus.Publish(Event{
		RunID:   r.manager.Current().ID,
		Type:    EventTypeStage,
		Stage:   stage,
		Message: message,
	})
}

// Wait blocks until every launched run has returned.
func (r *Runner) Wait() {
	r.wg.Wait()
}
