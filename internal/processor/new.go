package processor

import (
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/assembler"
	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/document"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/narrator"
	"github.com/nguyentantai21042004/paper-flow/internal/paper"
	"github.com/nguyentantai21042004/paper-flow/internal/slides"
	"github.com/nguyentantai21042004/paper-flow/internal/summarizer"
)

// Dependencies are the pipeline stages, in the order a run uses them.
type Dependencies struct {
	Source     paper.Source
	Loader     document.Loader
	Resolver   summarizer.Resolver
	Summarizer summarizer.Summarizer
	Composer   slides.Composer
	Narrator   narrator.Narrator
	Assembler  assembler.Assembler
}

// Option customizes a Processor.
type Option func(*implProcessor)

// WithObserver reports stage transitions to fn.
func WithObserver(fn Observer) Option {
	return func(p *implProcessor) {
		p.observer = fn
	}
}

// WithClock replaces time.Now, which names run directories and videos.
func WithClock(now func() time.Time) Option {
	return func(p *implProcessor) {
		p.now = now
	}
}

type implProcessor struct {
	cfg      *config.Config
	deps     Dependencies
	logger   logger.Logger
	observer Observer
	now      func() time.Time
	gate     *runGate
}

// New creates a new Processor instance. Runs never overlap: a second call
// waits for the first to finish.
func New(cfg *config.Config, deps Dependencies, log logger.Logger, opts ...Option) Processor {
	p := &implProcessor{
		cfg:    cfg,
		deps:   deps,
		logger: log,
		now:    time.Now,
		gate:   newRunGate(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
