package summarizer

import (
	"github.com/nguyentantai21042004/paper-flow/internal/locale"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

const defaultMaxChars = 12000

type implResolver struct {
	lister CapabilityLister
	logger logger.Logger
}

// NewResolver creates a Resolver backed by lister.
func NewResolver(lister CapabilityLister, log logger.Logger) Resolver {
	return &implResolver{
		lister: lister,
		logger: log,
	}
}

type implSummarizer struct {
	generator Generator
	profile   locale.Profile
	maxChars  int
	logger    logger.Logger
}

// New creates a Summarizer that prompts in profile's language and sends at
// most maxChars characters of paper text.
func New(gen Generator, profile locale.Profile, maxChars int, log logger.Logger) Summarizer {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	return &implSummarizer{
		generator: gen,
		profile:   profile,
		maxChars:  maxChars,
		logger:    log,
	}
}
