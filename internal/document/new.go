package document

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

const defaultTimeout = 30 * time.Second

type implLoader struct {
	cfg     config.DocumentConfig
	client  *http.Client
	logger  logger.Logger
	extract func(data []byte) (string, error)
}

// New creates a Loader for PDF documents served over HTTP(S).
func New(cfg config.DocumentConfig, client *http.Client, log logger.Logger) Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &implLoader{
		cfg:     cfg,
		client:  client,
		logger:  log,
		extract: extractPDF,
	}
}
