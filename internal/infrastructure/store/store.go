// Package store owns the single on-disk JSON document holding every
// collection. There is no partial-document I/O: every operation loads the
// whole document and every mutation rewrites it wholesale.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/journalkeep/core/internal/domain/entities"
	"github.com/journalkeep/core/internal/infrastructure/config"
	"github.com/journalkeep/core/internal/infrastructure/logger"
)

// Store is the document store. All access is serialized through an
// in-process mutex: Echo serves requests on concurrent goroutines, so two
// load-mutate-save cycles must never interleave against the same file.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *logger.Logger
	now    func() time.Time
}

// New creates a store for the configured file path. The backing file is not
// touched until the first Load.
func New(cfg config.StoreConfig, log *logger.Logger) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("store path is required")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	return &Store{
		path:   cfg.Path,
		logger: log.WithComponent("store"),
		now:    time.Now,
	}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the current document. A missing file yields a fresh empty
// document, persisted immediately. Empty or unparseable content is renamed
// aside with a timestamped backup name and replaced by a fresh empty
// document; the condition is logged, never surfaced. A transient read error
// yields an empty in-memory document without touching the file.
func (s *Store) Load() *entities.Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return entities.NewDocument()
	}
	return doc
}

// Save rewrites the whole document to disk, fully replacing prior content.
// A write failure surfaces as entities.ErrStorageWriteFailed.
func (s *Store) Save(doc *entities.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(doc)
}

// Update runs one serialized load-mutate-save cycle. When fn returns an
// error the document is not persisted and the error is returned as-is. A
// read error aborts the cycle before fn runs, so a healthy file is never
// overwritten on the strength of a failed read.
func (s *Store) Update(fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

// View runs fn against a freshly loaded document without persisting.
func (s *Store) View(fn func(doc *entities.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// HealthCheck verifies the backing file's directory is reachable.
func (s *Store) HealthCheck() error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("store health check failed: %w", err)
	}
	return nil
}

func (s *Store) load() (*entities.Document, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		doc := entities.NewDocument()
		if err := s.save(doc); err != nil {
			s.logger.Errorw("Failed to initialize store file", "path", s.path, "error", err)
		}
		return doc, nil
	}
	if err != nil {
		// Recovery is for corrupt content only. A read failure says nothing
		// about the content, so the file stays put.
		s.logger.Errorw("Failed to read store file", "path", s.path, "error", err)
		return nil, fmt.Errorf("read store file: %w", err)
	}

	if len(data) == 0 {
		s.logger.Warnw("Store file is empty", "path", s.path)
		return s.recover(), nil
	}

	var doc entities.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warnw("Store file failed to parse", "path", s.path, "error", err)
		return s.recover(), nil
	}

	// A parseable document missing a collection is not corruption.
	doc.Normalize()
	return &doc, nil
}

// recover renames the corrupt file aside and replaces it with a fresh
// empty document. Backup names embed the detection time so prior backups
// are never overwritten.
func (s *Store) recover() *entities.Document {
	backup := fmt.Sprintf("%s.corrupt-%s", s.path, s.now().UTC().Format("20060102T150405.000000000Z"))
	if err := os.Rename(s.path, backup); err != nil {
		s.logger.Errorw("Failed to back up corrupt store file", "path", s.path, "backup", backup, "error", err)
	} else {
		s.logger.Warnw("Corrupt store file backed up", "path", s.path, "backup", backup)
	}

	doc := entities.NewDocument()
	if err := s.save(doc); err != nil {
		s.logger.Errorw("Failed to reinitialize store file", "path", s.path, "error", err)
	}
	return doc
}

func (s *Store) save(doc *entities.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		s.logger.Errorw("Failed to encode document", "error", err)
		return fmt.Errorf("%w: %v", entities.ErrStorageWriteFailed, err)
	}

	// Write through a sibling temp file, then rename over the target, so a
	// crash mid-write cannot leave a half-written document behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Errorw("Failed to write store file", "path", tmp, "error", err)
		return fmt.Errorf("%w: %v", entities.ErrStorageWriteFailed, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Errorw("Failed to replace store file", "path", s.path, "error", err)
		return fmt.Errorf("%w: %v", entities.ErrStorageWriteFailed, err)
	}

	return nil
}
