package gen

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/tools/imports"
	gofumpt "mvdan.cc/gofumpt/format"
)

// Ledger remembers the checksum of every file a run wrote, so that later
// runs can leave unchanged files alone.
type Ledger interface {
	// Checksum returns the recorded checksum of path.
	Checksum(ctx context.Context, path string) (sum string, ok bool, err error)
	// Record stores the checksum of path written by run for target.
	Record(ctx context.Context, run, target, path, sum string) error
}

// WriterMetrics tracks the outcome of a run.
type WriterMetrics struct {
	FilesWritten   int
	FilesUnchanged int
	FilesSkipped   int
	FilesPatched   int
	TotalBytes     int64
}

// Writer writes target files to disk, formatting Go sources and consulting
// the ledger. It is safe for concurrent use.
type Writer struct {
	run    string
	format Format
	dryRun bool
	ledger Ledger
	log    zerolog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// NewWriter creates a writer for the run identified by run.
func NewWriter(c *Config, run string) *Writer {
	return &Writer{
		run:    run,
		format: c.Format,
		dryRun: c.DryRun,
		ledger: c.Ledger,
		log:    c.Logger,
	}
}

// Metrics returns a snapshot of the metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

func (w *Writer) count(fn func(m *WriterMetrics)) {
	w.mu.Lock()
	fn(&w.metrics)
	w.mu.Unlock()
}

// Write writes f below dest on behalf of target.
func (w *Writer) Write(ctx context.Context, target, dest string, f *File) error {
	if f.Patch != nil {
		return w.patch(target, dest, f)
	}
	full := filepath.Join(dest, f.Path)
	log := w.log.With().Str("target", target).Str("path", full).Logger()
	if f.SkipIfExists && exists(full) {
		log.Debug().Msg("skip")
		w.count(func(m *WriterMetrics) { m.FilesSkipped++ })
		return nil
	}
	content, err := w.formatSource(full, f.Content)
	if err != nil {
		return err
	}
	sum := checksum(content)
	if w.ledger != nil && exists(full) {
		prev, ok, err := w.ledger.Checksum(ctx, full)
		if err != nil {
			return fmt.Errorf("read ledger for %s: %w", full, err)
		}
		if ok && prev == sum {
			log.Debug().Msg("unchanged")
			w.count(func(m *WriterMetrics) { m.FilesUnchanged++ })
			return nil
		}
	}
	if w.dryRun {
		log.Info().Int("bytes", len(content)).Msg("create (dry run)")
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", full, err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", full, err)
	}
	if w.ledger != nil {
		if err := w.ledger.Record(ctx, w.run, target, full, sum); err != nil {
			return fmt.Errorf("record %s: %w", full, err)
		}
	}
	log.Info().Msg("create")
	w.count(func(m *WriterMetrics) {
		m.FilesWritten++
		m.TotalBytes += int64(len(content))
	})
	return nil
}

func (w *Writer) patch(target, dest string, f *File) error {
	full := filepath.Join(dest, f.Path)
	if f.FindUpward {
		found, ok := findUpward(dest, filepath.Base(f.Path))
		if !ok {
			w.log.Debug().Str("target", target).Str("file", f.Path).Msg("nothing to patch")
			return nil
		}
		full = found
	}
	log := w.log.With().Str("target", target).Str("path", full).Logger()
	existing, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) {
		log.Debug().Msg("nothing to patch")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", full, err)
	}
	patched, err := f.Patch(existing)
	if err != nil {
		return fmt.Errorf("patch %s: %w", full, err)
	}
	if bytes.Equal(existing, patched) {
		log.Debug().Msg("unchanged")
		w.count(func(m *WriterMetrics) { m.FilesUnchanged++ })
		return nil
	}
	if w.dryRun {
		log.Info().Msg("patch (dry run)")
		return nil
	}
	if err := os.WriteFile(full, patched, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", full, err)
	}
	log.Info().Msg("patch")
	w.count(func(m *WriterMetrics) { m.FilesPatched++ })
	return nil
}

// formatSource formats Go sources with the configured formatter. Other
// files are returned as is.
func (w *Writer) formatSource(path string, src []byte) ([]byte, error) {
	if filepath.Ext(path) != ".go" {
		return src, nil
	}
	var (
		out []byte
		err error
	)
	switch w.format {
	case FormatGoimports:
		out, err = imports.Process(path, src, nil)
	case FormatGofumpt:
		out, err = gofumpt.Source(src, gofumpt.Options{})
	default:
		return src, nil
	}
	if err != nil {
		// Keep the unformatted file next to the target for debugging.
		debugPath := path + ".error"
		if !w.dryRun {
			_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
			_ = os.WriteFile(debugPath, src, 0o644)
		}
		return nil, fmt.Errorf("format %s: %w (unformatted written to %s)", path, err, debugPath)
	}
	return out, nil
}

func checksum(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// findUpward looks for name in dir and its ancestors.
func findUpward(dir, name string) (string, bool) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, name)
		if exists(candidate) {
			return candidate, true
		}
		up := filepath.Dir(dir)
		if up == dir {
			return "", false
		}
		dir = up
	}
}
