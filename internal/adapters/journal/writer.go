package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
)

// Extension of journal files
const Extension = ".jsonl.zst"

// TickJournal writes one JSON line per tick into zstd-compressed files, one
// file per spacecraft and simulated day:
//
//	<dir>/<spacecraft>/ticks-2300-01-01.jsonl.zst
//
// Files are appended to, so a resumed run continues the same day file.
type TickJournal struct {
	baseDir string

	mu     sync.Mutex
	curKey string
	f      *os.File
	enc    *zstd.Encoder
	w      *bufio.Writer
}

// NewTickJournal creates a journal rooted at baseDir. Nothing is created on
// disk before the first record.
func NewTickJournal(baseDir string) *TickJournal {
	return &TickJournal{baseDir: baseDir}
}

// Record implements simulation.Journal
func (j *TickJournal) Record(record simulation.TickRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	path := j.PathFor(record)
	if path != j.curKey {
		if err := j.rotateLocked(path); err != nil {
			return err
		}
	}

	b, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode tick %d: %w", record.Tick, err)
	}
	if _, err := j.w.Write(b); err != nil {
		return err
	}
	if err := j.w.WriteByte('\n'); err != nil {
		return err
	}
	return j.w.Flush()
}

// PathFor returns the file a record is written to
func (j *TickJournal) PathFor(record simulation.TickRecord) string {
	spacecraft := record.Spacecraft
	if spacecraft == "" {
		spacecraft = "unknown"
	}
	day := record.Time.UTC().Format("2006-01-02")
	return filepath.Join(j.baseDir, spacecraft, "ticks-"+day+Extension)
}

// Close flushes and closes the current file
func (j *TickJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.closeLocked()
}

func (j *TickJournal) rotateLocked(path string) error {
	if err := j.closeLocked(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	j.f = f
	j.enc = enc
	j.w = bufio.NewWriterSize(enc, 64*1024)
	j.curKey = path
	return nil
}

func (j *TickJournal) closeLocked() error {
	var err error
	if j.w != nil {
		err = j.w.Flush()
	}
	if j.enc != nil {
		if closeErr := j.enc.Close(); err == nil {
			err = closeErr
		}
		j.enc = nil
	}
	if j.f != nil {
		if closeErr := j.f.Close(); err == nil {
			err = closeErr
		}
		j.f = nil
	}
	j.w = nil
	j.curKey = ""
	return err
}
