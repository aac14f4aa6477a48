package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
)

// Voicevox speaks through a local VOICEVOX engine. The speaker id is looked
// up once by speaker and style name.
type Voicevox struct {
	baseURL string
	speaker string
	style   string
	speed   float64
	timeout time.Duration
	client  *http.Client

	mu        sync.Mutex
	speakerID int
	resolved  bool
}

type voicevoxSpeaker struct {
	Name   string `json:"name"`
	Styles []struct {
		Name string `json:"name"`
		ID   int    `json:"id"`
	} `json:"styles"`
}

// NewVoicevox creates a VOICEVOX backend. The speaking rate is sent as
// speedScale, within the same bounds as the atempo transform, so no
// post-processing is needed.
func NewVoicevox(cfg config.TTSConfig, client *http.Client) *Voicevox {
	if client == nil {
		client = http.DefaultClient
	}
	speed := cfg.Speed
	if speed <= 0 {
		speed = 1.0
	}
	speed = ClampTempo(speed)
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Voicevox{
		baseURL: strings.TrimRight(cfg.VoicevoxURL, "/"),
		speaker: cfg.Speaker,
		style:   cfg.Style,
		speed:   speed,
		timeout: timeout,
		client:  client,
	}
}

func (v *Voicevox) Synthesize(ctx context.Context, text string) (Speech, error) {
	text = strings.TrimSpace(strings.ReplaceAll(text, "_", ""))
	if text == "" {
		return Speech{}, ErrEmptyText
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	id, err := v.speakerIDFor(ctx)
	if err != nil {
		return Speech{}, err
	}

	q := url.Values{}
	q.Set("text", text)
	q.Set("speaker", strconv.Itoa(id))
	raw, err := v.post(ctx, "/audio_query?"+q.Encode(), nil)
	if err != nil {
		return Speech{}, fmt.Errorf("audio_query: %w", err)
	}

	var query map[string]any
	if err := json.Unmarshal(raw, &query); err != nil {
		return Speech{}, fmt.Errorf("decode audio_query: %w", err)
	}
	query["speedScale"] = v.speed

	body, err := json.Marshal(query)
	if err != nil {
		return Speech{}, fmt.Errorf("encode audio_query: %w", err)
	}
	wav, err := v.post(ctx, "/synthesis?speaker="+strconv.Itoa(id), body)
	if err != nil {
		return Speech{}, fmt.Errorf("synthesis: %w", err)
	}

	return Speech{Data: wav, Format: "wav", SpeedApplied: true}, nil
}

func (v *Voicevox) speakerIDFor(ctx context.Context) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.resolved {
		return v.speakerID, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.baseURL+"/speakers", nil)
	if err != nil {
		return 0, err
	}
	resp, err := v.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("list speakers: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("list speakers: status %d", resp.StatusCode)
	}

	var speakers []voicevoxSpeaker
	if err := json.NewDecoder(resp.Body).Decode(&speakers); err != nil {
		return 0, fmt.Errorf("decode speakers: %w", err)
	}
	for _, sp := range speakers {
		if sp.Name != v.speaker {
			continue
		}
		for _, st := range sp.Styles {
			if st.Name == v.style {
				v.speakerID, v.resolved = st.ID, true
				return st.ID, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %s/%s", ErrSpeakerNotFound, v.speaker, v.style)
}

func (v *Voicevox) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return data, nil
}
