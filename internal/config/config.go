package config

import (
	"fmt"
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

type Config struct {
	Gemini   GeminiConfig   `yaml:"gemini"`
	Feed     FeedConfig     `yaml:"feed"`
	Document DocumentConfig `yaml:"document"`
	Summary  SummaryConfig  `yaml:"summary"`
	Slides   SlidesConfig   `yaml:"slides"`
	TTS      TTSConfig      `yaml:"tts"`
	Video    VideoConfig    `yaml:"video"`
	FFmpeg   FFmpegConfig   `yaml:"ffmpeg"`
	Paths    PathsConfig    `yaml:"paths"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
}

type GeminiConfig struct {
	APIKey          string        `yaml:"api_key"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	APIVersion      string        `yaml:"api_version"`
	ListTimeout     time.Duration `yaml:"list_timeout"`
	GenerateTimeout time.Duration `yaml:"generate_timeout"`
	Temperature     float32       `yaml:"temperature"`
}

type FeedConfig struct {
	URL        string        `yaml:"url"`
	Categories []string      `yaml:"categories"`
	MaxPapers  int           `yaml:"max_papers"`
	Timeout    time.Duration `yaml:"timeout"`
}

type DocumentConfig struct {
	Timeout  time.Duration `yaml:"timeout"`
	MaxBytes int64         `yaml:"max_bytes"`
}

type SummaryConfig struct {
	Language    string `yaml:"language"`
	MaxChars    int    `yaml:"max_chars"`
	Placeholder string `yaml:"placeholder"`
}

type SlidesConfig struct {
	Width       int      `yaml:"width"`
	Height      int      `yaml:"height"`
	FontPaths   []string `yaml:"font_paths"`
	HeadingSize float64  `yaml:"heading_size"`
	BodySize    float64  `yaml:"body_size"`
}

type TTSConfig struct {
	Backend     string        `yaml:"backend"`
	Speed       float64       `yaml:"speed"`
	Timeout     time.Duration `yaml:"timeout"`
	GTTSURL     string        `yaml:"gtts_url"`
	VoicevoxURL string        `yaml:"voicevox_url"`
	Speaker     string        `yaml:"speaker"`
	Style       string        `yaml:"style"`
}

type VideoConfig struct {
	Mode         models.VideoMode `yaml:"mode"`
	SlideSeconds float64          `yaml:"slide_seconds"`
	Pad          float64          `yaml:"pad"`
	FPS          int              `yaml:"fps"`
}

type FFmpegConfig struct {
	Binary      string `yaml:"binary"`
	ProbeBinary string `yaml:"probe_binary"`
	Encoder     string `yaml:"encoder"`
	AudioCodec  string `yaml:"audio_codec"`
	Preset      string `yaml:"preset"`
	PixelFormat string `yaml:"pixel_format"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Inbox  string `yaml:"inbox"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ServerConfig struct {
	Addr        string `yaml:"addr"`
	EventBuffer int    `yaml:"event_buffer"`
}

const (
	TTSBackendGTTS     = "gtts"
	TTSBackendVoicevox = "voicevox"
)

var defaultFontPaths = []string{
	"/usr/share/fonts/opentype/ipafont-gothic/ipag.ttf",
	"/usr/share/fonts/truetype/fonts-japanese-gothic.ttf",
	"/usr/share/fonts/truetype/ipafont-gothic/ipag.ttf",
}

func (c *Config) Validate() error {
	if c.Feed.MaxPapers < 0 {
		return fmt.Errorf("feed.max_papers must be positive")
	}
	if c.Video.SlideSeconds < 0 {
		return fmt.Errorf("video.slide_seconds must be positive")
	}
	if c.Video.Pad < 0 {
		return fmt.Errorf("video.pad must not be negative")
	}
	if c.Summary.MaxChars < 0 {
		return fmt.Errorf("summary.max_chars must be positive")
	}

	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.BaseURL == "" {
		c.Gemini.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if c.Gemini.APIVersion == "" {
		c.Gemini.APIVersion = "v1beta"
	}
	if c.Gemini.ListTimeout == 0 {
		c.Gemini.ListTimeout = 30 * time.Second
	}
	if c.Gemini.GenerateTimeout == 0 {
		c.Gemini.GenerateTimeout = 60 * time.Second
	}
	if c.Gemini.Temperature == 0 {
		c.Gemini.Temperature = 0.2
	}

	if c.Feed.URL == "" {
		c.Feed.URL = "http://export.arxiv.org/api/query"
	}
	if len(c.Feed.Categories) == 0 {
		c.Feed.Categories = []string{"cs.AI", "cs.LG", "cs.CL", "cs.CV", "stat.ML"}
	}
	if c.Feed.MaxPapers == 0 {
		c.Feed.MaxPapers = 3
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = 15 * time.Second
	}

	if c.Document.Timeout == 0 {
		c.Document.Timeout = 30 * time.Second
	}
	if c.Document.MaxBytes == 0 {
		c.Document.MaxBytes = 64 << 20
	}

	if c.Summary.Language == "" {
		c.Summary.Language = "ja"
	}
	if c.Summary.MaxChars == 0 {
		c.Summary.MaxChars = 12000
	}

	switch c.Video.Mode {
	case "":
		c.Video.Mode = models.VideoModeSync
	case models.VideoModeSync, models.VideoModeFixed:
	default:
		return fmt.Errorf("video.mode must be %q or %q, got %q", models.VideoModeSync, models.VideoModeFixed, c.Video.Mode)
	}
	if c.Video.SlideSeconds == 0 {
		c.Video.SlideSeconds = 4
	}
	if c.Video.Pad == 0 {
		c.Video.Pad = 0.2
	}
	if c.Video.FPS == 0 {
		c.Video.FPS = 24
	}

	if c.Slides.Width == 0 || c.Slides.Height == 0 {
		if c.Video.Mode == models.VideoModeFixed {
			c.Slides.Width, c.Slides.Height = 1280, 720
		} else {
			c.Slides.Width, c.Slides.Height = 1920, 1080
		}
	}
	if len(c.Slides.FontPaths) == 0 {
		c.Slides.FontPaths = append([]string(nil), defaultFontPaths...)
	}
	if c.Slides.HeadingSize == 0 {
		c.Slides.HeadingSize = 64
	}
	if c.Slides.BodySize == 0 {
		c.Slides.BodySize = 50
	}

	switch c.TTS.Backend {
	case "":
		c.TTS.Backend = TTSBackendGTTS
	case TTSBackendGTTS, TTSBackendVoicevox:
	default:
		return fmt.Errorf("tts.backend must be %q or %q, got %q", TTSBackendGTTS, TTSBackendVoicevox, c.TTS.Backend)
	}
	if c.TTS.Speed == 0 {
		c.TTS.Speed = 1.0
	}
	if c.TTS.Timeout == 0 {
		c.TTS.Timeout = 30 * time.Second
	}
	if c.TTS.GTTSURL == "" {
		c.TTS.GTTSURL = "https://translate.google.com/translate_tts"
	}
	if c.TTS.VoicevoxURL == "" {
		c.TTS.VoicevoxURL = "http://localhost:50021"
	}
	if c.TTS.Speaker == "" {
		c.TTS.Speaker = "四国めたん"
	}
	if c.TTS.Style == "" {
		c.TTS.Style = "ノーマル"
	}

	if c.FFmpeg.Binary == "" {
		c.FFmpeg.Binary = "ffmpeg"
	}
	if c.FFmpeg.ProbeBinary == "" {
		c.FFmpeg.ProbeBinary = "ffprobe"
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libx264"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "aac"
	}
	if c.FFmpeg.Preset == "" {
		c.FFmpeg.Preset = "medium"
	}
	if c.FFmpeg.PixelFormat == "" {
		c.FFmpeg.PixelFormat = "yuv420p"
	}

	if c.Paths.Output == "" {
		c.Paths.Output = "outputs"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.EventBuffer == 0 {
		c.Server.EventBuffer = 500
	}

	return nil
}
