package narrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/locale"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

type fakeSynth struct {
	speech Speech
	err    error
	texts  []string
}

func (f *fakeSynth) Synthesize(ctx context.Context, text string) (Speech, error) {
	f.texts = append(f.texts, text)
	return f.speech, f.err
}

type call struct {
	name string
	args []string
}

// fakeExecutor answers ffprobe with duration and runs ffmpeg by copying the
// input file to the output, unless ffmpegErr is set.
type fakeExecutor struct {
	duration  string
	ffmpegErr error
	calls     []call
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	return f.ExecuteInDir(ctx, "", name, args...)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	switch name {
	case "ffprobe":
		return f.duration + "\n", nil
	case "ffmpeg":
		if f.ffmpegErr != nil {
			return "", f.ffmpegErr
		}
		data, err := os.ReadFile(args[2])
		if err != nil {
			return "", err
		}
		return "", os.WriteFile(args[len(args)-1], append([]byte("fast:"), data...), 0644)
	}
	return "", errors.New("unexpected command " + name)
}

func (f *fakeExecutor) count(name string) int {
	n := 0
	for _, c := range f.calls {
		if c.name == name {
			n++
		}
	}
	return n
}

func newNarrator(t *testing.T, speed float64, synth Synthesizer, exec *fakeExecutor) Narrator {
	t.Helper()
	profile, err := locale.Lookup("en")
	if err != nil {
		t.Fatal(err)
	}
	return New(config.TTSConfig{Speed: speed}, config.FFmpegConfig{}, synth, profile, exec, logger.Nop())
}

func TestSynthesize(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynth{speech: Speech{Data: []byte("mp3data"), Format: "mp3"}}
	exec := &fakeExecutor{duration: "3.25"}
	n := newNarrator(t, 1.0, synth, exec)

	clip, err := n.Synthesize(context.Background(), "**Hello** world", filepath.Join(dir, "clip"))
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if clip.Path != filepath.Join(dir, "clip.mp3") || clip.Format != "mp3" {
		t.Errorf("clip = %+v", clip)
	}
	if clip.Duration != 3.25 {
		t.Errorf("Duration = %v, want 3.25", clip.Duration)
	}
	if synth.texts[0] != "Hello world" {
		t.Errorf("spoken text = %q", synth.texts[0])
	}
	if exec.count("ffmpeg") != 0 {
		t.Error("ffmpeg should not run at normal speed")
	}
}

func TestSynthesizeTempo(t *testing.T) {
	tests := []struct {
		name      string
		speed     float64
		applied   bool
		ffmpegErr error
		wantArg   string
		wantData  string
	}{
		{"speed up", 1.15, false, nil, "atempo=1.15", "fast:audio"},
		{"clamped high", 3.0, false, nil, "atempo=2", "fast:audio"},
		{"clamped low", 0.1, false, nil, "atempo=0.5", "fast:audio"},
		{"failure keeps original", 1.2, false, errors.New("boom"), "atempo=1.2", "audio"},
		{"backend applied speed", 1.2, true, nil, "", "audio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			synth := &fakeSynth{speech: Speech{Data: []byte("audio"), Format: "mp3", SpeedApplied: tt.applied}}
			exec := &fakeExecutor{duration: "1.0", ffmpegErr: tt.ffmpegErr}
			n := newNarrator(t, tt.speed, synth, exec)

			clip, err := n.Synthesize(context.Background(), "text", filepath.Join(dir, "clip"))
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}

			data, err := os.ReadFile(clip.Path)
			if err != nil {
				t.Fatal(err)
			}
			if string(data) != tt.wantData {
				t.Errorf("clip data = %q, want %q", data, tt.wantData)
			}

			if tt.wantArg == "" {
				if exec.count("ffmpeg") != 0 {
					t.Error("ffmpeg should not run")
				}
				return
			}
			if !strings.Contains(strings.Join(exec.calls[0].args, " "), tt.wantArg) {
				t.Errorf("ffmpeg args = %v, want %s", exec.calls[0].args, tt.wantArg)
			}
			if _, err := os.Stat(filepath.Join(dir, "clip_tempo.mp3")); !os.IsNotExist(err) {
				t.Error("temporary tempo file left behind")
			}
		})
	}
}

func TestSynthesizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		synthErr error
		duration string
		wantErr  error
	}{
		{"empty text", "   ", nil, "1", ErrEmptyText},
		{"zero duration", "hi", nil, "0", ErrInvalidDuration},
		{"negative duration", "hi", nil, "-1.5", ErrInvalidDuration},
		{"nan duration", "hi", nil, "nan", ErrInvalidDuration},
		{"infinite duration", "hi", nil, "inf", ErrInvalidDuration},
		{"negative infinite duration", "hi", nil, "-Inf", ErrInvalidDuration},
		{"backend failure", "hi", ErrSpeakerNotFound, "1", ErrSpeakerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synth := &fakeSynth{speech: Speech{Data: []byte("x"), Format: "wav"}, err: tt.synthErr}
			n := newNarrator(t, 1.0, synth, &fakeExecutor{duration: tt.duration})

			_, err := n.Synthesize(context.Background(), tt.text, filepath.Join(t.TempDir(), "clip"))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Synthesize() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNarrateSlides(t *testing.T) {
	dir := t.TempDir()
	synth := &fakeSynth{speech: Speech{Data: []byte("a"), Format: "mp3"}}
	n := newNarrator(t, 1.0, synth, &fakeExecutor{duration: "2"})

	slides := []models.SlideContent{
		{Narration: "Today's paper: T."},
		{Narration: "Point 1. a."},
		{Narration: "That concludes this introduction."},
	}
	clips, err := n.NarrateSlides(context.Background(), slides, dir)
	if err != nil {
		t.Fatalf("NarrateSlides() error = %v", err)
	}
	if len(clips) != len(slides) {
		t.Fatalf("got %d clips, want %d", len(clips), len(slides))
	}
	for i, clip := range clips {
		want := filepath.Join(dir, fmt.Sprintf("slide_audio_%02d.mp3", i+1))
		if clip.Path != want {
			t.Errorf("clip %d path = %s, want %s", i, clip.Path, want)
		}
		if clip.Text != slides[i].Narration {
			t.Errorf("clip %d text = %q", i, clip.Text)
		}
	}
}

func TestNarrateDigest(t *testing.T) {
	synth := &fakeSynth{speech: Speech{Data: []byte("a"), Format: "mp3"}}
	n := newNarrator(t, 1.0, synth, &fakeExecutor{duration: "12.5"})

	digest := models.Digest{Bullets: []string{"one", "two", "(no point)"}}
	clip, err := n.NarrateDigest(context.Background(), "Title", digest, t.TempDir())
	if err != nil {
		t.Fatalf("NarrateDigest() error = %v", err)
	}

	want := "Today's paper: Title. Here are the key points. one. two. That's all."
	if synth.texts[0] != want {
		t.Errorf("script = %q, want %q", synth.texts[0], want)
	}
	if filepath.Base(clip.Path) != "narration.mp3" || clip.Duration != 12.5 {
		t.Errorf("clip = %+v", clip)
	}
}

func TestNarrateDigestSkipsLongPlaceholder(t *testing.T) {
	profile, err := locale.Lookup("en")
	if err != nil {
		t.Fatal(err)
	}
	profile = profile.WithPlaceholder("(the service returned no further key point here)")
	synth := &fakeSynth{speech: Speech{Data: []byte("a"), Format: "mp3"}}
	n := New(config.TTSConfig{Speed: 1.0}, config.FFmpegConfig{}, synth, profile, &fakeExecutor{duration: "3"}, logger.Nop())

	digest := models.Digest{Bullets: []string{"one", profile.Placeholder, profile.Placeholder}}
	if _, err := n.NarrateDigest(context.Background(), "Title", digest, t.TempDir()); err != nil {
		t.Fatalf("NarrateDigest() error = %v", err)
	}

	want := "Today's paper: Title. Here are the key points. one. That's all."
	if synth.texts[0] != want {
		t.Errorf("script = %q, want %q", synth.texts[0], want)
	}
}

func TestClampTempo(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.2, 0.5},
		{1.15, 1.15},
		{5, 2.0},
	}
	for _, tt := range tests {
		if got := ClampTempo(tt.in); got != tt.want {
			t.Errorf("ClampTempo(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
