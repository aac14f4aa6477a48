package paper

import (
	"regexp"
	"strings"
)

var (
	reUnsafe     = regexp.MustCompile(`[<>:"/\\|?*\r\n]`)
	reUnderscore = regexp.MustCompile(`_+`)
)

const maxFilenameRunes = 120

// SafeFilename turns a paper title into a file-system friendly name.
func SafeFilename(title string) string {
	name := strings.ReplaceAll(strings.TrimSpace(title), " ", "_")
	name = reUnsafe.ReplaceAllString(name, "_")
	name = reUnderscore.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if r := []rune(name); len(r) > maxFilenameRunes {
		name = strings.TrimRight(string(r[:maxFilenameRunes]), "_")
	}
	if name == "" {
		return "paper"
	}
	return name
}
