package document

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// Retrieve downloads the document at locator within the document timeout.
func (l *implLoader) Retrieve(ctx context.Context, locator string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, locator, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", locator, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download %s: unexpected status %d", locator, resp.StatusCode)
	}

	body := io.Reader(resp.Body)
	if l.cfg.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, l.cfg.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", locator, err)
	}
	if l.cfg.MaxBytes > 0 && int64(len(data)) > l.cfg.MaxBytes {
		return nil, fmt.Errorf("download %s: document exceeds %d bytes", locator, l.cfg.MaxBytes)
	}

	return data, nil
}

// ExtractText never fails loudly; unreadable documents yield "".
func (l *implLoader) ExtractText(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	text, err := l.extract(data)
	if err != nil {
		l.logger.Warn(context.Background(), "PDF open failed: %v", err)
		return ""
	}
	return text
}

func (l *implLoader) Load(ctx context.Context, paper models.PaperRecord) (models.ExtractedText, error) {
	l.logger.Info(ctx, "Downloading document: %s", paper.DocumentLocator)

	data, err := l.Retrieve(ctx, paper.DocumentLocator)
	if err != nil {
		l.logger.Warn(ctx, "Document download failed: %v", err)
		return models.ExtractedText{Paper: paper}, err
	}

	return l.FromBytes(ctx, paper, data)
}

// FromBytes extracts text from an already retrieved document.
func (l *implLoader) FromBytes(ctx context.Context, paper models.PaperRecord, data []byte) (models.ExtractedText, error) {
	body := l.ExtractText(data)
	out := models.ExtractedText{
		Paper:  paper,
		Body:   body,
		Length: len([]rune(body)),
	}
	if out.Empty() {
		return out, ErrEmptyText
	}

	l.logger.Info(ctx, "Extracted %d characters from %q", out.Length, paper.Title)
	return out, nil
}
