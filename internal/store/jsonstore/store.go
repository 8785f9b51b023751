package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"yadoya/config"
	"yadoya/infras/otel"
)

// Store owns the data directory holding one JSON file per collection
// and the per-collection write locks. Repositories receive it at
// construction; nothing else touches the collection files directly.
type Store struct {
	dir  string
	otel otel.Otel

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	ids   map[string]int
}

func New(cfg *config.Config, otl otel.Otel) *Store {
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Data.Dir).Msg("Failed to create data directory")
	}

	log.Info().Str("dir", cfg.Data.Dir).Msg("JSON data store initialized")

	return &Store{
		dir:   cfg.Data.Dir,
		otel:  otl,
		locks: map[string]*sync.Mutex{},
		ids:   map[string]int{},
	}
}

// NewAt opens a store rooted at an explicit directory. Used by the
// backup manager and tests, which address the data directory directly.
func NewAt(dir string, otl otel.Otel) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return &Store{
		dir:   dir,
		otel:  otl,
		locks: map[string]*sync.Mutex{},
		ids:   map[string]int{},
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// lock returns the mutex serializing writers of one collection file.
// Two concurrent writers would otherwise both load the same snapshot
// and the second save would silently drop the first one's change.
func (s *Store) lock(filename string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[filename]
	if !ok {
		l = &sync.Mutex{}
		s.locks[filename] = l
	}

	return l
}

// noteMaxID raises the high-water mark of issued ids for one
// collection. The mark never goes down, so an id stays burned after the
// record carrying it is deleted.
func (s *Store) noteMaxID(filename string, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id > s.ids[filename] {
		s.ids[filename] = id
	}
}

// maxIssuedID returns the highest id ever observed for one collection
// through this store handle. A fresh handle reseeds the mark from the
// file on first load.
func (s *Store) maxIssuedID(filename string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ids[filename]
}

// ReadFile loads the raw bytes of one collection file. A missing file
// yields (nil, nil); backups treat it as "nothing to archive".
func (s *Store) ReadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(s.path(filename))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return data, nil
}

// WriteFile atomically replaces one collection file with raw bytes,
// used by restore to copy archive members over live collections.
func (s *Store) WriteFile(filename string, data []byte) error {
	return AtomicWrite(s.path(filename), data)
}

// AtomicWrite writes to a temp file in the target directory and renames
// it into place, so a crash mid-write never leaves a truncated file.
// Every writer of live data files goes through it.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Close()
	} else {
		tmp.Close()
	}

	if err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())

		return fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return nil
}

func marshalRecords(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal records: %w", err)
	}

	return append(data, '\n'), nil
}
