package summarizer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// maxBodyChars bounds raw response text carried in errors and fallbacks.
const maxBodyChars = 800

// Summarize sends the excerpt prompt to model and parses the reply into a
// digest. A reply without candidate text degrades to the raw JSON rendering
// instead of failing.
func (s *implSummarizer) Summarize(ctx context.Context, text, title string, model models.ResolvedModel) (models.Digest, error) {
	excerpt := prepareExcerpt(text, s.maxChars)
	prompt := s.profile.Prompt(models.DigestSize, title, excerpt)

	s.logger.Info(ctx, "Summarizing %q using model %s (%d chars)", title, model.Name, len([]rune(excerpt)))

	gen, err := s.generator.Generate(ctx, model.Name, prompt)
	if err != nil {
		return models.Digest{}, err
	}

	raw := strings.TrimSpace(gen.Text)
	if !gen.Found {
		s.logger.Warn(ctx, "Unexpected response shape from %s, using raw response", model.Name)
		raw = truncateRunes(gen.Raw, maxBodyChars)
	}

	digest := ParseDigest(raw, s.profile)
	s.logger.Debug(ctx, "Digest: %q", digest.Bullets)
	return digest, nil
}

// prepareExcerpt collapses whitespace runs and cuts the text to maxChars.
func prepareExcerpt(text string, maxChars int) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	return truncateRunes(collapsed, maxChars)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
