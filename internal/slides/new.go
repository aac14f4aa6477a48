package slides

import (
	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/locale"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
)

const (
	defaultWidth       = 1920
	defaultHeight      = 1080
	defaultHeadingSize = 64
	defaultBodySize    = 50
)

type implComposer struct {
	cfg     config.SlidesConfig
	profile locale.Profile
	logger  logger.Logger
}

// New creates a Composer drawing slides with cfg's geometry and profile's text.
func New(cfg config.SlidesConfig, profile locale.Profile, log logger.Logger) Composer {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = defaultWidth, defaultHeight
	}
	if cfg.HeadingSize <= 0 {
		cfg.HeadingSize = defaultHeadingSize
	}
	if cfg.BodySize <= 0 {
		cfg.BodySize = defaultBodySize
	}
	return &implComposer{
		cfg:     cfg,
		profile: profile,
		logger:  log,
	}
}
