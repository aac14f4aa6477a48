// Package locale holds the per-language text used across the pipeline:
// the summarization prompt, bullet caps, slide headings and narration scripts.
package locale

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Ellipsis marks text cut by ClampGraphemes.
const Ellipsis = "…"

// Profile is the language-dependent text for one target spoken language.
type Profile struct {
	// Code is the language code passed to the speech backend.
	Code string
	// BulletCap is the maximum bullet length in grapheme clusters.
	BulletCap int
	// Placeholder pads digests that came back with fewer than three bullets.
	Placeholder string

	PromptTemplate string

	TitleHeading   string
	PointHeading   string // fmt pattern taking the 1-based point number
	ClosingHeading string
	ClosingBody    string

	IntroScript   string // fmt pattern taking the title
	PointScript   string // fmt pattern taking the number and the bullet
	ClosingScript string
	// DigestScript is the single-narration script: title, then joined bullets.
	DigestScript string
	// SentenceEnd terminates a spoken bullet.
	SentenceEnd string
	// BulletJoin separates bullets inside DigestScript.
	BulletJoin string
}

const jaPrompt = `あなたは日本語が得意なAI研究者です。
次の論文の内容を、日本語で短く要約してください。

出力ルール（厳守）:
- 出力は箇条書きのみ
- 箇条書きは「- 」で始める
- %[1]d点以内
- 各点は最大%[2]d文字
- 前置き/挨拶/説明/「わかりました」等は一切書かない
- 余計な行（空行やタイトル行）も不要

タイトル:
%[3]s

本文（抜粋）:
%[4]s`

const enPrompt = `You are an AI researcher who explains papers clearly.
Summarize the following paper in English.

Output rules (strict):
- Output bullet points only
- Start every bullet with "- "
- At most %[1]d bullets
- Each bullet at most %[2]d characters
- No preamble, greeting, explanation or acknowledgement
- No extra lines (no blank lines, no title line)

Title:
%[3]s

Body (excerpt):
%[4]s`

var profiles = map[string]Profile{
	"ja": {
		Code:           "ja",
		BulletCap:      35,
		Placeholder:    "（要点なし）",
		PromptTemplate: jaPrompt,
		TitleHeading:   "TITLE",
		PointHeading:   "POINT %d",
		ClosingHeading: "END",
		ClosingBody:    "ありがとうございました",
		IntroScript:    "本日の論文紹介です。%s。",
		PointScript:    "ポイント%d。%s",
		ClosingScript:  "以上で紹介を終わります。",
		DigestScript:   "本日の論文紹介です。%s。要点は次のとおりです。%s。以上です。",
		SentenceEnd:    "。",
		BulletJoin:     "。",
	},
	"en": {
		Code:           "en",
		BulletCap:      40,
		Placeholder:    "(no point)",
		PromptTemplate: enPrompt,
		TitleHeading:   "TITLE",
		PointHeading:   "Point %d",
		ClosingHeading: "END",
		ClosingBody:    "Thank you for watching",
		IntroScript:    "Today's paper: %s.",
		PointScript:    "Point %d. %s",
		ClosingScript:  "That concludes this introduction.",
		DigestScript:   "Today's paper: %s. Here are the key points. %s. That's all.",
		SentenceEnd:    ".",
		BulletJoin:     ". ",
	},
}

// Lookup returns the profile for a language code such as "ja" or "en-US".
func Lookup(lang string) (Profile, error) {
	code := strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(code, "-_"); i > 0 {
		code = code[:i]
	}
	p, ok := profiles[code]
	if !ok {
		return Profile{}, fmt.Errorf("unsupported language %q", lang)
	}
	return p, nil
}

// WithPlaceholder returns a copy of p using placeholder when it is not empty.
// The placeholder is clamped to the bullet cap like any other bullet so it
// can still be recognized after digest parsing.
func (p Profile) WithPlaceholder(placeholder string) Profile {
	if placeholder != "" {
		p.Placeholder = ClampGraphemes(strings.TrimSpace(placeholder), p.BulletCap)
	}
	return p
}

// ClampGraphemes cuts s to at most limit grapheme clusters, marking the cut
// with an ellipsis that counts toward the limit.
func ClampGraphemes(s string, limit int) string {
	if limit <= 0 || uniseg.GraphemeClusterCount(s) <= limit {
		return s
	}

	var b strings.Builder
	g := uniseg.NewGraphemes(s)
	for n := 0; n < limit-1 && g.Next(); n++ {
		b.WriteString(g.Str())
	}
	return strings.TrimSpace(b.String()) + Ellipsis
}

// Prompt renders the summarization prompt.
func (p Profile) Prompt(maxBullets int, title, excerpt string) string {
	return fmt.Sprintf(p.PromptTemplate, maxBullets, p.BulletCap, title, excerpt)
}
