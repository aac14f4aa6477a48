package summarizer

import (
	"regexp"
	"strings"

	"github.com/samber/lo"

	"github.com/nguyentantai21042004/paper-flow/internal/locale"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

var reBulletMarker = regexp.MustCompile(`^(?:[-*•・●]+|\d+[.)])\s*`)

// ParseDigest turns raw service text into exactly three bullets: markers are
// stripped, blank lines dropped, long bullets clamped to the profile's cap and
// missing bullets filled with the placeholder.
func ParseDigest(raw string, profile locale.Profile) models.Digest {
	lines := lo.Map(strings.Split(raw, "\n"), func(line string, _ int) string {
		return cleanBullet(line)
	})
	bullets := lo.Filter(lines, func(line string, _ int) bool {
		return line != ""
	})

	if len(bullets) > models.DigestSize {
		bullets = bullets[:models.DigestSize]
	}
	for len(bullets) < models.DigestSize {
		bullets = append(bullets, profile.Placeholder)
	}

	bullets = lo.Map(bullets, func(b string, _ int) string {
		return locale.ClampGraphemes(b, profile.BulletCap)
	})

	return models.Digest{Bullets: bullets, Raw: raw}
}

func cleanBullet(line string) string {
	line = strings.TrimSpace(line)
	line = reBulletMarker.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "**", "")
	return strings.TrimSpace(line)
}
