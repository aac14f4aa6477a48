package narrator

import (
	"fmt"
	"net/http"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/locale"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/pkg/executor"
)

type implNarrator struct {
	tts      config.TTSConfig
	ffmpeg   config.FFmpegConfig
	synth    Synthesizer
	profile  locale.Profile
	executor executor.Executor
	logger   logger.Logger
}

// New creates a Narrator speaking through synth. ffmpeg applies the speaking
// rate for backends that cannot and ffprobe measures every clip.
func New(tts config.TTSConfig, ffmpeg config.FFmpegConfig, synth Synthesizer, profile locale.Profile, exec executor.Executor, log logger.Logger) Narrator {
	if ffmpeg.Binary == "" {
		ffmpeg.Binary = "ffmpeg"
	}
	if ffmpeg.ProbeBinary == "" {
		ffmpeg.ProbeBinary = "ffprobe"
	}
	return &implNarrator{
		tts:      tts,
		ffmpeg:   ffmpeg,
		synth:    synth,
		profile:  profile,
		executor: exec,
		logger:   log,
	}
}

// NewSynthesizer returns the backend selected by cfg.Backend.
func NewSynthesizer(cfg config.TTSConfig, lang string, client *http.Client) (Synthesizer, error) {
	if client == nil {
		client = http.DefaultClient
	}
	switch cfg.Backend {
	case "", config.TTSBackendGTTS:
		return NewGTTS(cfg, lang, client), nil
	case config.TTSBackendVoicevox:
		return NewVoicevox(cfg, client), nil
	default:
		return nil, fmt.Errorf("unknown tts backend %q", cfg.Backend)
	}
}
