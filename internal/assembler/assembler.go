package assembler

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
	concatList = "segments.txt"
	joinedName = "joined.mp4"
)

// Assemble encodes one segment per slide/clip pair and joins them with the
// concat demuxer. Each segment lasts its clip plus the pad, rounded up to a
// whole frame, and the total is the sum of the segments.
func (a *implAssembler) Assemble(ctx context.Context, images []models.SlideImage, clips []models.AudioClip, outputPath string) (models.VideoOutput, error) {
	if len(images) == 0 || len(images) != len(clips) {
		return models.VideoOutput{}, fmt.Errorf("%w: %d slides, %d clips", ErrAssemblyMismatch, len(images), len(clips))
	}

	work, err := a.workDir()
	if err != nil {
		return models.VideoOutput{}, err
	}
	defer os.RemoveAll(work)

	durations := lo.Map(clips, func(c models.AudioClip, _ int) float64 {
		return a.frameAligned(c.Duration + a.video.Pad)
	})
	total := lo.Sum(durations)

	segments := make([]string, 0, len(images))
	for i, duration := range durations {
		name := fmt.Sprintf("segment_%02d.mp4", i+1)

		a.logger.Debug(ctx, "Encoding segment %d (%.2fs)", i+1, duration)
		if err := a.encodeSegment(ctx, work, images[i].Path, clips[i].Path, duration, name); err != nil {
			return models.VideoOutput{}, fmt.Errorf("encode segment %d: %w", i+1, err)
		}
		segments = append(segments, name)
	}

	if err := writeConcatList(filepath.Join(work, concatList), segments, 0); err != nil {
		return models.VideoOutput{}, err
	}
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", concatList,
		"-c", "copy",
		joinedName,
	}
	if _, err := a.executor.ExecuteInDir(ctx, work, a.ffmpeg.Binary, args...); err != nil {
		return models.VideoOutput{}, fmt.Errorf("concat segments: %w", err)
	}

	if err := moveFile(filepath.Join(work, joinedName), outputPath); err != nil {
		return models.VideoOutput{}, err
	}

	a.logger.Info(ctx, "Video assembled: %s (%d slides, %.2fs)", outputPath, len(images), total)
	return models.VideoOutput{
		Path:          outputPath,
		SlideCount:    len(images),
		TotalDuration: total,
	}, nil
}

// AssembleFixed shows each slide for slide_seconds and lays the narration
// under the whole video, padded with silence or cut to fit.
func (a *implAssembler) AssembleFixed(ctx context.Context, images []models.SlideImage, narration models.AudioClip, outputPath string) (models.VideoOutput, error) {
	if len(images) == 0 || narration.Path == "" {
		return models.VideoOutput{}, fmt.Errorf("%w: %d slides, narration %q", ErrAssemblyMismatch, len(images), narration.Path)
	}

	work, err := a.workDir()
	if err != nil {
		return models.VideoOutput{}, err
	}
	defer os.RemoveAll(work)

	paths := make([]string, 0, len(images))
	for _, img := range images {
		abs, err := filepath.Abs(img.Path)
		if err != nil {
			return models.VideoOutput{}, fmt.Errorf("resolve slide path: %w", err)
		}
		paths = append(paths, abs)
	}
	if err := writeConcatList(filepath.Join(work, concatList), paths, a.video.SlideSeconds); err != nil {
		return models.VideoOutput{}, err
	}

	audio, err := filepath.Abs(narration.Path)
	if err != nil {
		return models.VideoOutput{}, fmt.Errorf("resolve narration path: %w", err)
	}

	total := float64(len(images)) * a.video.SlideSeconds
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", concatList,
		"-i", audio,
		"-filter:a", "apad",
		"-t", seconds(total),
	}
	args = append(args, a.encodeArgs()...)
	args = append(args, joinedName)

	if _, err := a.executor.ExecuteInDir(ctx, work, a.ffmpeg.Binary, args...); err != nil {
		return models.VideoOutput{}, fmt.Errorf("encode slideshow: %w", err)
	}
	if err := moveFile(filepath.Join(work, joinedName), outputPath); err != nil {
		return models.VideoOutput{}, err
	}

	a.logger.Info(ctx, "Video assembled: %s (%d slides x %.1fs)", outputPath, len(images), a.video.SlideSeconds)
	return models.VideoOutput{
		Path:          outputPath,
		SlideCount:    len(images),
		TotalDuration: total,
	}, nil
}

func (a *implAssembler) encodeSegment(ctx context.Context, work, image, audio string, duration float64, name string) error {
	image, err := filepath.Abs(image)
	if err != nil {
		return err
	}
	audio, err = filepath.Abs(audio)
	if err != nil {
		return err
	}

	args := []string{
		"-y",
		"-loop", "1",
		"-framerate", strconv.Itoa(a.video.FPS),
		"-i", image,
		"-i", audio,
		"-filter:a", "apad",
		"-t", frameCut(duration),
	}
	args = append(args, a.encodeArgs()...)
	args = append(args, name)

	_, err = a.executor.ExecuteInDir(ctx, work, a.ffmpeg.Binary, args...)
	return err
}

// frameAligned rounds d up to a whole number of frames so the segment ffmpeg
// writes is exactly as long as reported.
func (a *implAssembler) frameAligned(d float64) float64 {
	fps := float64(a.video.FPS)
	frames := math.Ceil(d*fps - 1e-6)
	if frames < 1 {
		frames = 1
	}
	return frames / fps
}

// frameCut formats a frame-aligned duration for -t. Millisecond precision is
// truncated, not rounded, so the frame starting exactly at d is never kept.
func frameCut(d float64) string {
	return strconv.FormatFloat(math.Floor(d*1000+1e-6)/1000, 'f', 3, 64)
}

// encodeArgs are shared by every encode so segments can be joined by stream copy.
func (a *implAssembler) encodeArgs() []string {
	return []string{
		"-r", strconv.Itoa(a.video.FPS),
		"-c:v", a.ffmpeg.Encoder,
		"-preset", a.ffmpeg.Preset,
		"-pix_fmt", a.ffmpeg.PixelFormat,
		"-c:a", a.ffmpeg.AudioCodec,
		"-ar", "44100",
		"-ac", "2",
	}
}

func (a *implAssembler) workDir() (string, error) {
	if a.tempRoot != "" {
		if err := os.MkdirAll(a.tempRoot, 0755); err != nil {
			return "", fmt.Errorf("create temp root: %w", err)
		}
	}
	dir, err := os.MkdirTemp(a.tempRoot, "assemble-")
	if err != nil {
		return "", fmt.Errorf("create work dir: %w", err)
	}
	return dir, nil
}

// writeConcatList writes an ffmpeg concat demuxer script. With a positive
// duration every entry gets a duration line and the last file is repeated,
// which the demuxer needs to honour the final duration.
func writeConcatList(path string, files []string, duration float64) error {
	var b strings.Builder
	for _, f := range files {
		fmt.Fprintf(&b, "file '%s'\n", escapeQuotes(f))
		if duration > 0 {
			fmt.Fprintf(&b, "duration %s\n", seconds(duration))
		}
	}
	if duration > 0 && len(files) > 0 {
		fmt.Fprintf(&b, "file '%s'\n", escapeQuotes(files[len(files)-1]))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

func seconds(d float64) string {
	return strconv.FormatFloat(d, 'f', 3, 64)
}
