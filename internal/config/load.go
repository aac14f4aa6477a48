package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// Load reads the YAML file at path, applies environment overrides and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return parse(data)
}

// LoadOptional behaves like Load but treats a missing file as an empty config,
// so a run can be configured from the environment alone.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return parse(nil)
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// .env is optional
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// applyEnv overlays environment variables on top of file values.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	str("GEMINI_API_KEY", &c.Gemini.APIKey)
	str("GEMINI_MODEL", &c.Gemini.Model)
	str("GEMINI_API_BASE", &c.Gemini.BaseURL)
	str("GEMINI_API_VERSION", &c.Gemini.APIVersion)
	str("LANGUAGE", &c.Summary.Language)
	str("OUTPUT_DIR", &c.Paths.Output)
	str("TTS_BACKEND", &c.TTS.Backend)

	if v, ok := lookup("MAX_PAPERS"); ok && v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("MAX_PAPERS: %w", err)
		}
		c.Feed.MaxPapers = n
	}
	if v, ok := lookup("SLIDE_SECONDS"); ok && v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("SLIDE_SECONDS: %w", err)
		}
		c.Video.SlideSeconds = f
	}
	if v, ok := lookup("TTS_SPEED"); ok && v != "" {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("TTS_SPEED: %w", err)
		}
		c.TTS.Speed = f
	}
	if v, ok := lookup("VIDEO_MODE"); ok && v != "" {
		c.Video.Mode = models.VideoMode(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup("FONT_PATHS"); ok && v != "" {
		var paths []string
		for _, p := range strings.Split(v, string(os.PathListSeparator)) {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		c.Slides.FontPaths = paths
	}

	return nil
}
