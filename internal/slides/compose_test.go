package slides

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/locale"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

func newComposer(t *testing.T, lang string, cfg config.SlidesConfig) Composer {
	t.Helper()
	profile, err := locale.Lookup(lang)
	if err != nil {
		t.Fatal(err)
	}
	return New(cfg, profile, logger.Nop())
}

func TestCompose(t *testing.T) {
	c := newComposer(t, "en", config.SlidesConfig{})
	digest := models.Digest{Bullets: []string{"b1", "b2", "b3"}}

	got := c.Compose("T", digest)

	want := []struct {
		heading string
		body    string
	}{
		{"TITLE", "T"},
		{"Point 1", "b1"},
		{"Point 2", "b2"},
		{"Point 3", "b3"},
		{"END", "Thank you for watching"},
	}
	if len(got) != len(want) {
		t.Fatalf("Compose() returned %d slides, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Heading != w.heading || got[i].Body != w.body {
			t.Errorf("slide %d = {%q, %q}, want {%q, %q}", i, got[i].Heading, got[i].Body, w.heading, w.body)
		}
		if got[i].Order != i+1 {
			t.Errorf("slide %d Order = %d", i, got[i].Order)
		}
		if got[i].Narration == "" {
			t.Errorf("slide %d has no narration", i)
		}
	}
	if got[1].Narration != "Point 1. b1." {
		t.Errorf("narration = %q", got[1].Narration)
	}
}

func TestComposeLongPlaceholderNotSpoken(t *testing.T) {
	profile, err := locale.Lookup("en")
	if err != nil {
		t.Fatal(err)
	}
	profile = profile.WithPlaceholder("(the service returned no further key point here)")
	c := New(config.SlidesConfig{}, profile, logger.Nop())

	got := c.Compose("T", models.Digest{Bullets: []string{"b1", "b2", profile.Placeholder}})
	if got[3].Body != profile.Placeholder {
		t.Errorf("placeholder slide body = %q", got[3].Body)
	}
	if got[3].Narration != "Point 3." {
		t.Errorf("placeholder narration = %q, want %q", got[3].Narration, "Point 3.")
	}
}

func TestComposeDeterministic(t *testing.T) {
	c := newComposer(t, "ja", config.SlidesConfig{})
	digest := models.Digest{Bullets: []string{"一", "二", "（要点なし）"}}

	a := c.Compose("論文", digest)
	b := c.Compose("論文", digest)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("slide %d differs between calls: %+v vs %+v", i, a[i], b[i])
		}
	}
	if a[0].Narration != "本日の論文紹介です。論文。" {
		t.Errorf("intro narration = %q", a[0].Narration)
	}
	if a[3].Body != "（要点なし）" || a[3].Narration != "ポイント3。" {
		t.Errorf("placeholder slide = %+v", a[3])
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	c := newComposer(t, "en", config.SlidesConfig{
		Width:     320,
		Height:    180,
		FontPaths: []string{filepath.Join(dir, "missing.ttf")},
	})
	contents := c.Compose("A fairly long paper title that needs wrapping", models.Digest{Bullets: []string{"a", "b", "c"}})

	images, err := c.Render(context.Background(), contents, filepath.Join(dir, "run"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if len(images) != len(contents) {
		t.Fatalf("Render() returned %d images, want %d", len(images), len(contents))
	}

	for i, img := range images {
		if want := filepath.Join(dir, "run", fmt.Sprintf("slide_%02d.png", i+1)); img.Path != want {
			t.Errorf("image %d path = %s", i, img.Path)
		}
		f, err := os.Open(img.Path)
		if err != nil {
			t.Fatalf("open %s: %v", img.Path, err)
		}
		cfg, err := png.DecodeConfig(f)
		f.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", img.Path, err)
		}
		if cfg.Width != 320 || cfg.Height != 180 {
			t.Errorf("image %d size = %dx%d", i, cfg.Width, cfg.Height)
		}
		if img.Content != contents[i] {
			t.Errorf("image %d content mismatch", i)
		}
	}
}

func TestRenderUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	c := newComposer(t, "en", config.SlidesConfig{Width: 64, Height: 36})
	contents := c.Compose("T", models.Digest{Bullets: []string{"a", "b", "c"}})

	if _, err := c.Render(context.Background(), contents, filepath.Join(blocker, "run")); err == nil {
		t.Error("Render() should fail when the directory cannot be created")
	}
}
