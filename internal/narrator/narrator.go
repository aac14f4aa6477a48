package narrator

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

const (
	minTempo = 0.5
	maxTempo = 2.0
)

// NarrateSlides produces slide_audio_01, slide_audio_02, ... in slide order.
func (n *implNarrator) NarrateSlides(ctx context.Context, slides []models.SlideContent, dir string) ([]models.AudioClip, error) {
	clips := make([]models.AudioClip, 0, len(slides))
	for i, slide := range slides {
		stem := filepath.Join(dir, fmt.Sprintf("slide_audio_%02d", i+1))
		clip, err := n.Synthesize(ctx, slide.Narration, stem)
		if err != nil {
			return nil, fmt.Errorf("narrate slide %d: %w", i+1, err)
		}
		clips = append(clips, clip)
	}

	total := lo.SumBy(clips, func(c models.AudioClip) float64 { return c.Duration })
	n.logger.Info(ctx, "Narrated %d slides (%.2fs of audio)", len(clips), total)
	return clips, nil
}

// NarrateDigest speaks the title and every real bullet as one script.
func (n *implNarrator) NarrateDigest(ctx context.Context, title string, digest models.Digest, dir string) (models.AudioClip, error) {
	bullets := lo.Filter(digest.Bullets, func(b string, _ int) bool {
		return b != "" && b != n.profile.Placeholder
	})
	script := fmt.Sprintf(n.profile.DigestScript, strings.TrimSpace(title), strings.Join(bullets, n.profile.BulletJoin))

	clip, err := n.Synthesize(ctx, script, filepath.Join(dir, "narration"))
	if err != nil {
		return models.AudioClip{}, fmt.Errorf("narrate digest: %w", err)
	}
	return clip, nil
}

// Synthesize writes the speech for text next to stem, adjusts its tempo when
// the backend could not and measures the final file.
func (n *implNarrator) Synthesize(ctx context.Context, text, stem string) (models.AudioClip, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "**", ""))
	if text == "" {
		return models.AudioClip{}, ErrEmptyText
	}

	speech, err := n.synth.Synthesize(ctx, text)
	if err != nil {
		return models.AudioClip{}, fmt.Errorf("synthesize: %w", err)
	}
	if len(speech.Data) == 0 {
		return models.AudioClip{}, fmt.Errorf("synthesize: backend returned no audio")
	}

	if err := os.MkdirAll(filepath.Dir(stem), 0755); err != nil {
		return models.AudioClip{}, fmt.Errorf("create audio dir: %w", err)
	}
	path := stem + "." + speech.Format
	if err := os.WriteFile(path, speech.Data, 0644); err != nil {
		return models.AudioClip{}, fmt.Errorf("write audio: %w", err)
	}

	if !speech.SpeedApplied && n.tts.Speed > 0 && n.tts.Speed != 1.0 {
		n.applyTempo(ctx, path, stem+"_tempo."+speech.Format)
	}

	duration, err := n.probeDuration(ctx, path)
	if err != nil {
		return models.AudioClip{}, err
	}

	n.logger.Debug(ctx, "Audio %s: %.2fs", filepath.Base(path), duration)
	return models.AudioClip{
		Text:     text,
		Path:     path,
		Format:   speech.Format,
		Duration: duration,
	}, nil
}

// applyTempo speeds path up in place. A failed transform keeps the original.
func (n *implNarrator) applyTempo(ctx context.Context, path, tmp string) {
	factor := ClampTempo(n.tts.Speed)
	args := []string{
		"-y",
		"-i", path,
		"-filter:a", "atempo=" + strconv.FormatFloat(factor, 'f', -1, 64),
		tmp,
	}

	if _, err := n.executor.Execute(ctx, n.ffmpeg.Binary, args...); err != nil {
		n.logger.Warn(ctx, "Speed transform failed, keeping original audio: %v", err)
		os.Remove(tmp)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		n.logger.Warn(ctx, "Replace audio with sped-up version failed, keeping original: %v", err)
		os.Remove(tmp)
	}
}

// ClampTempo limits a speaking rate to what ffmpeg's atempo filter accepts.
func ClampTempo(speed float64) float64 {
	return max(minTempo, min(maxTempo, speed))
}

func (n *implNarrator) probeDuration(ctx context.Context, path string) (float64, error) {
	out, err := n.executor.Execute(ctx, n.ffmpeg.ProbeBinary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("probe duration: %w", err)
	}

	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}
	if !(d > 0) || math.IsInf(d, 0) {
		return 0, fmt.Errorf("%s: %w", filepath.Base(path), ErrInvalidDuration)
	}
	return d, nil
}
