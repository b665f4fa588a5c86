// Package export drives a batch conversion: one note fully converted,
// images and all, before the next begins.
package export

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/mkarppi/verso/internal/apperr"
	"github.com/mkarppi/verso/internal/config"
	"github.com/mkarppi/verso/internal/convert"
	"github.com/mkarppi/verso/internal/datastore"
	"github.com/mkarppi/verso/internal/fileutil"
	"github.com/mkarppi/verso/internal/vault"
)

// Summary aggregates the outcome of one batch.
type Summary struct {
	Total     int
	Succeeded int
	Skipped   int
	Failed    int
	Images    int
	// Errors itemizes every per-image and per-note failure in the batch
	Errors []string
}

// Run converts the given notes sequentially. A failing note is counted and
// reported but never halts the remaining notes. Returns NoSelectionError
// when notes is empty.
func Run(v *vault.Vault, cfg config.Site, notes []string) (*Summary, error) {
	if len(notes) == 0 {
		return nil, &apperr.NoSelectionError{}
	}

	store, err := openStore(cfg)
	if err != nil {
		// The log is an audit aid, not a gate: run the batch without it.
		slog.Warn("Export log unavailable", "error", err)
		store = nil
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	conv := convert.New(v, cfg)
	summary := &Summary{Total: len(notes)}
	var records []datastore.ExportRecord

	for _, note := range notes {
		slog.Debug("Converting note", "note", note)

		raw, err := v.ReadNote(note)
		if err != nil {
			slog.Warn("Failed to read note", "note", note, "error", err)
			summary.Failed++
			summary.Errors = append(summary.Errors, err.Error())
			continue
		}

		res := conv.Convert(path.Base(note), raw)
		summary.Images += res.Images
		summary.Errors = append(summary.Errors, res.Errors...)

		title := strings.TrimSuffix(path.Base(note), path.Ext(note))
		dest := filepath.Join(cfg.SiteRoot, cfg.ContentDir,
			fileutil.SanitizeFilename(title)+".md")

		written, err := fileutil.WriteFileWithOverwrite(dest, []byte(res.Text), 0644, cfg.Overwrite)
		if err != nil {
			writeErr := apperr.NewWriteError(dest, err)
			slog.Warn("Failed to write document", "note", note, "error", writeErr)
			summary.Failed++
			summary.Errors = append(summary.Errors, writeErr.Error())
			continue
		}
		if !written {
			slog.Info("Document exists, skipping", "path", dest)
			summary.Skipped++
			continue
		}

		summary.Succeeded++
		records = append(records, datastore.ExportRecord{
			Note:       note,
			Title:      title,
			Images:     res.Images,
			Errors:     len(res.Errors),
			ExportedAt: time.Now(),
		})
		slog.Info("Exported note", "note", note, "images", res.Images, "errors", len(res.Errors))
	}

	if store != nil {
		if err := store.Record(records); err != nil {
			slog.Warn("Failed to record export log", "error", err)
		}
	}

	slog.Info("Export complete",
		"total", summary.Total,
		"exported", summary.Succeeded,
		"skipped", summary.Skipped,
		"failed", summary.Failed,
		"images", summary.Images)
	for _, msg := range summary.Errors {
		slog.Warn("Export issue", "error", msg)
	}

	return summary, nil
}

// openStore opens the export log, or returns (nil, nil) when disabled.
func openStore(cfg config.Site) (datastore.Store, error) {
	if !cfg.ExportLog {
		return nil, nil
	}
	store := datastore.NewSQLiteStore(cfg.ExportDB)
	if err := store.Connect(); err != nil {
		return nil, fmt.Errorf("failed to open export log: %w", err)
	}
	if err := store.Init(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to initialize export log: %w", err)
	}
	return store, nil
}
