package processor

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/paper-flow/internal/assembler"
	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/document"
	"github.com/nguyentantai21042004/paper-flow/internal/locale"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/narrator"
	"github.com/nguyentantai21042004/paper-flow/internal/paper"
	"github.com/nguyentantai21042004/paper-flow/internal/slides"
	"github.com/nguyentantai21042004/paper-flow/internal/summarizer"
	"github.com/nguyentantai21042004/paper-flow/pkg/executor"
)

// Build wires the production stages from cfg.
func Build(cfg *config.Config, log logger.Logger, opts ...Option) (Processor, error) {
	profile, err := locale.Lookup(cfg.Summary.Language)
	if err != nil {
		return nil, err
	}
	profile = profile.WithPlaceholder(cfg.Summary.Placeholder)

	client := &http.Client{}
	exec := executor.New()
	gemini := summarizer.NewGeminiClient(cfg.Gemini)

	synth, err := narrator.NewSynthesizer(cfg.TTS, profile.Code, client)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}

	deps := Dependencies{
		Source:     paper.New(cfg.Feed, client, log),
		Loader:     document.New(cfg.Document, client, log),
		Resolver:   summarizer.NewResolver(gemini, log),
		Summarizer: summarizer.New(gemini, profile, cfg.Summary.MaxChars, log),
		Composer:   slides.New(cfg.Slides, profile, log),
		Narrator:   narrator.New(cfg.TTS, cfg.FFmpeg, synth, profile, exec, log),
		Assembler:  assembler.New(cfg.Video, cfg.FFmpeg, cfg.Paths.Temp, exec, log),
	}
	return New(cfg, deps, log, opts...), nil
}
