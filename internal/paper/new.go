package paper

import (
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

const defaultTimeout = 15 * time.Second

type implSource struct {
	cfg    config.FeedConfig
	client *http.Client
	parser *gofeed.Parser
	logger logger.Logger
}

// New creates an arXiv-backed Source. A nil client uses http.DefaultClient.
func New(cfg config.FeedConfig, client *http.Client, log logger.Logger) Source {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &implSource{
		cfg:    cfg,
		client: client,
		parser: gofeed.NewParser(),
		logger: log,
	}
}
