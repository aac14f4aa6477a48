package narrator

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
)

// gttsMaxChars is the longest text the translate endpoint accepts per request.
const gttsMaxChars = 100

const defaultGTTSURL = "https://translate.google.com/translate_tts"

// GTTS speaks through the Google Translate text-to-speech endpoint. Long text
// is sent in chunks and the returned MP3 streams are concatenated.
type GTTS struct {
	url     string
	lang    string
	timeout time.Duration
	client  *http.Client
}

// NewGTTS creates a GTTS backend speaking lang.
func NewGTTS(cfg config.TTSConfig, lang string, client *http.Client) *GTTS {
	if client == nil {
		client = http.DefaultClient
	}
	u := cfg.GTTSURL
	if u == "" {
		u = defaultGTTSURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &GTTS{url: u, lang: lang, timeout: timeout, client: client}
}

func (g *GTTS) Synthesize(ctx context.Context, text string) (Speech, error) {
	chunks := chunkText(text, gttsMaxChars)
	if len(chunks) == 0 {
		return Speech{}, ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var buf bytes.Buffer
	for i, chunk := range chunks {
		data, err := g.fetch(ctx, chunk, i, len(chunks))
		if err != nil {
			return Speech{}, fmt.Errorf("gtts chunk %d/%d: %w", i+1, len(chunks), err)
		}
		buf.Write(data)
	}
	return Speech{Data: buf.Bytes(), Format: "mp3"}, nil
}

func (g *GTTS) fetch(ctx context.Context, text string, idx, total int) ([]byte, error) {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("client", "tw-ob")
	q.Set("tl", g.lang)
	q.Set("q", text)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(text)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return io.ReadAll(resp.Body)
}

// chunkText splits text into pieces of at most max runes, preferring to
// break after sentence punctuation, then after commas and spaces.
func chunkText(text string, max int) []string {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil
	}

	var chunks []string
	runes := []rune(text)
	for len(runes) > max {
		cut := breakPoint(runes[:max])
		chunks = appendTrimmed(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	return appendTrimmed(chunks, string(runes))
}

// breakPoint returns the index just after the best break in window.
func breakPoint(window []rune) int {
	for _, set := range []string{"。．.!?！？", "、，,;；:：", " "} {
		for i := len(window) - 1; i > 0; i-- {
			if strings.ContainsRune(set, window[i]) {
				return i + 1
			}
		}
	}
	return len(window)
}

func appendTrimmed(chunks []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}
