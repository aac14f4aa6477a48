package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/paper-flow/internal/config"
	"github.com/nguyentantai21042004/paper-flow/internal/logger"
	"github.com/nguyentantai21042004/paper-flow/internal/models"
)

// InboxHandler turns PDFs dropped into the inbox into runs. The file's base
// name is used as the paper title.
type InboxHandler struct {
	cfg    *config.Config
	proc   Processor
	logger logger.Logger
}

// NewInboxHandler creates an InboxHandler feeding proc.
func NewInboxHandler(cfg *config.Config, proc Processor, log logger.Logger) *InboxHandler {
	return &InboxHandler{cfg: cfg, proc: proc, logger: log}
}

// Handle processes one dropped file. It matches watcher.EventHandler.
func (h *InboxHandler) Handle(ctx context.Context, path string) error {
	processing, err := h.moveToProcessing(ctx, path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(processing)
	if err != nil {
		h.moveToFailed(ctx, processing)
		return fmt.Errorf("read document: %w", err)
	}

	name := filepath.Base(path)
	doc := models.PaperRecord{
		ID:              name,
		Title:           strings.TrimSuffix(name, filepath.Ext(name)),
		DocumentLocator: "file://" + processing,
	}

	result, err := h.proc.ProcessDocument(ctx, doc, data)
	if err != nil {
		h.moveToFailed(ctx, processing)
		return err
	}

	h.archive(ctx, processing, result.RunDir)
	return nil
}

// moveToProcessing moves the document from the inbox to the temp folder
func (h *InboxHandler) moveToProcessing(ctx context.Context, path string) (string, error) {
	dir := filepath.Join(h.cfg.Paths.Temp, "processing")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create processing dir: %w", err)
	}
	dest := filepath.Join(dir, filepath.Base(path))

	h.logger.Info(ctx, "Moving to processing folder: %s -> %s", path, dest)
	if err := os.Rename(path, dest); err != nil {
		return "", fmt.Errorf("move to processing: %w", err)
	}
	return dest, nil
}

// archive keeps the source document next to the video it produced
func (h *InboxHandler) archive(ctx context.Context, path, runDir string) {
	if runDir == "" {
		h.cleanupTempFile(ctx, path)
		return
	}
	dest := filepath.Join(runDir, "source.pdf")
	if err := os.Rename(path, dest); err != nil {
		h.logger.Warn(ctx, "Failed to archive %s: %v", path, err)
		return
	}
	h.logger.Debug(ctx, "Archived source document: %s", dest)
}

// moveToFailed parks a document whose run did not succeed
func (h *InboxHandler) moveToFailed(ctx context.Context, path string) {
	dir := filepath.Join(h.cfg.Paths.Temp, "failed")
	if err := os.MkdirAll(dir, 0755); err != nil {
		h.logger.Warn(ctx, "Failed to create failed dir: %v", err)
		return
	}
	dest := filepath.Join(dir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		h.logger.Warn(ctx, "Failed to move %s to failed folder: %v", path, err)
	}
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (h *InboxHandler) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil {
		h.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		h.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}
