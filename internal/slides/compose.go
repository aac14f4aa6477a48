package slides

import (
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// Compose is pure: the same title and digest always give the same slides.
func (c *implComposer) Compose(title string, digest models.Digest) []models.SlideContent {
	title = strings.TrimSpace(title)
	contents := make([]models.SlideContent, 0, digest.Count()+2)

	contents = append(contents, models.SlideContent{
		Heading:   c.profile.TitleHeading,
		Body:      title,
		Narration: fmt.Sprintf(c.profile.IntroScript, title),
	})

	for i, bullet := range digest.Bullets {
		spoken := bullet
		if bullet == c.profile.Placeholder {
			spoken = ""
		}
		contents = append(contents, models.SlideContent{
			Heading:   fmt.Sprintf(c.profile.PointHeading, i+1),
			Body:      bullet,
			Narration: c.endSentence(fmt.Sprintf(c.profile.PointScript, i+1, spoken)),
		})
	}

	contents = append(contents, models.SlideContent{
		Heading:   c.profile.ClosingHeading,
		Body:      c.profile.ClosingBody,
		Narration: c.profile.ClosingScript,
	})

	for i := range contents {
		contents[i].Order = i + 1
	}
	return contents
}

func (c *implComposer) endSentence(s string) string {
	s = strings.TrimSpace(s)
	if c.profile.SentenceEnd == "" || strings.HasSuffix(s, c.profile.SentenceEnd) {
		return s
	}
	return s + c.profile.SentenceEnd
}
