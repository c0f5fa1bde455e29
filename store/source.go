// Package store loads raw and translation records from a Source and keeps
// them for the lifetime of the process.
//
// The Cache is append-only: every (kind, dataset) or (language, dataset) key
// is loaded at most once and never evicted. Cached records are shared between
// any number of concurrent readers and must never be mutated.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"iso3166/dataset"
)

// ErrSourceNotFound is returned by a Source when a dataset or translation
// set does not exist.
var ErrSourceNotFound = errors.New("source not found")

// Source supplies compiled records. It is the boundary with the offline
// build step that normalizes the raw dataset files.
type Source interface {
	// Records returns the raw records of a dataset in source order.
	Records(name string) ([]dataset.Record, error)
	// Translations returns the translation records of a dataset for lang,
	// keyed by primary key.
	Translations(lang, name string) (dataset.Translations, error)
}

// FSSource reads JSON files from a file system with the layout:
//
//	<dataset>.json                       array of raw records
//	translations/<lang>/<dataset>.json   object keyed by primary key
type FSSource struct {
	fsys fs.FS
}

// NewFSSource creates a Source backed by fsys.
func NewFSSource(fsys fs.FS) *FSSource {
	return &FSSource{fsys: fsys}
}

// Records implements Source.
func (s *FSSource) Records(name string) ([]dataset.Record, error) {
	var records []dataset.Record
	if err := s.decode(name+".json", &records); err != nil {
		return nil, err
	}

	return records, nil
}

// Translations implements Source.
func (s *FSSource) Translations(lang, name string) (dataset.Translations, error) {
	var tr dataset.Translations
	if err := s.decode(path.Join("translations", lang, name+".json"), &tr); err != nil {
		return nil, err
	}

	return tr, nil
}

func (s *FSSource) decode(file string, dst any) error {
	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, file)
		}

		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse json %s: %w", file, err)
	}

	return nil
}

// MemorySource serves records held in memory. It is safe for concurrent use.
type MemorySource struct {
	mu    sync.RWMutex
	raw   map[string][]dataset.Record
	local map[string]map[string]dataset.Translations
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{
		raw:   make(map[string][]dataset.Record),
		local: make(map[string]map[string]dataset.Translations),
	}
}

// SetRecords stores the raw records of a dataset.
func (s *MemorySource) SetRecords(name string, records ...dataset.Record) *MemorySource {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.raw[name] = records

	return s
}

// SetTranslations stores the translation records of a dataset for lang.
func (s *MemorySource) SetTranslations(lang, name string, tr dataset.Translations) *MemorySource {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.local[lang] == nil {
		s.local[lang] = make(map[string]dataset.Translations)
	}

	s.local[lang][name] = tr

	return s
}

// Records implements Source.
func (s *MemorySource) Records(name string) ([]dataset.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, ok := s.raw[name]
	if !ok {
		return nil, fmt.Errorf("%w: records of %s", ErrSourceNotFound, name)
	}

	return records, nil
}

// Translations implements Source.
func (s *MemorySource) Translations(lang, name string) (dataset.Translations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tr, ok := s.local[lang][name]
	if !ok {
		return nil, fmt.Errorf("%w: %s translations of %s", ErrSourceNotFound, lang, name)
	}

	return tr, nil
}
