package store

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"iso3166/dataset"
	"iso3166/internal/metrics"
)

const (
	kindRecords      = "records"
	kindTranslations = "translations"
)

// Cache is the process-wide, append-only store of loaded records.
// Construct one per process and share it between query engines.
type Cache struct {
	src   Source
	log   *slog.Logger
	mu    sync.RWMutex
	raw   map[string][]dataset.Record
	local map[localKey]localEntry
	group singleflight.Group
}

type localKey struct {
	lang    string
	dataset string
}

type localEntry struct {
	tr      dataset.Translations
	missing bool
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used to report loads.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates an empty Cache reading from src.
func New(src Source, opts ...Option) *Cache {
	c := &Cache{
		src:   src,
		log:   slog.Default(),
		raw:   make(map[string][]dataset.Record),
		local: make(map[localKey]localEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Records returns the raw records of the dataset ordered by primary key.
// The first call loads and validates them against the schema; later calls
// return the cached slice. Concurrent first calls share a single load.
// Failed loads are not cached.
func (c *Cache) Records(s *dataset.Schema) ([]dataset.Record, error) {
	name := s.Name()

	if recs, ok := c.cachedRecords(name); ok {
		return recs, nil
	}

	v, err, _ := c.group.Do(kindRecords+"/"+name, func() (any, error) {
		if recs, ok := c.cachedRecords(name); ok {
			return recs, nil
		}

		recs, err := c.loadRecords(s)
		metrics.LoadsTotal.WithLabelValues(kindRecords, name, metrics.Status(err)).Inc()

		if err != nil {
			c.log.Error("dataset load failed", "dataset", name, "error", err)
			return nil, err
		}

		c.mu.Lock()
		c.raw[name] = recs
		c.mu.Unlock()

		c.log.Info("dataset loaded", "dataset", name, "records", len(recs))

		return recs, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]dataset.Record), nil
}

func (c *Cache) cachedRecords(name string) ([]dataset.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	recs, ok := c.raw[name]

	return recs, ok
}

func (c *Cache) loadRecords(s *dataset.Schema) ([]dataset.Record, error) {
	recs, err := c.src.Records(s.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s records: %w", s.Name(), err)
	}

	if err := s.ValidateRecords(recs); err != nil {
		return nil, err
	}

	pk := s.Primary().Name
	sorted := slices.Clone(recs)

	slices.SortStableFunc(sorted, func(a, b dataset.Record) int {
		ka, _ := a.Key(pk)
		kb, _ := b.Key(pk)

		return strings.Compare(ka, kb)
	})

	return sorted, nil
}

// Translations returns the translation records of the dataset for lang.
// A set missing from the source yields an error wrapping ErrSourceNotFound;
// the miss is remembered, so the source is asked at most once per
// (language, dataset) pair either way.
func (c *Cache) Translations(lang string, s *dataset.Schema) (dataset.Translations, error) {
	key := localKey{lang: lang, dataset: s.Name()}

	if e, ok := c.cachedTranslations(key); ok {
		return e.result(key)
	}

	v, err, _ := c.group.Do(kindTranslations+"/"+lang+"/"+key.dataset, func() (any, error) {
		if e, ok := c.cachedTranslations(key); ok {
			return e, nil
		}

		tr, err := c.src.Translations(lang, key.dataset)
		metrics.LoadsTotal.WithLabelValues(kindTranslations, key.dataset, metrics.Status(err)).Inc()

		var e localEntry

		switch {
		case errors.Is(err, ErrSourceNotFound):
			e.missing = true

			c.log.Warn("translation set not found", "dataset", key.dataset, "language", lang)
		case err != nil:
			return nil, fmt.Errorf("failed to load %s translations of %s: %w", lang, key.dataset, err)
		default:
			e.tr = tr
			c.checkTranslations(s, lang, tr)
			c.log.Info("translations loaded", "dataset", key.dataset, "language", lang, "records", len(tr))
		}

		c.mu.Lock()
		c.local[key] = e
		c.mu.Unlock()

		return e, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(localEntry).result(key)
}

func (c *Cache) cachedTranslations(key localKey) (localEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.local[key]

	return e, ok
}

func (e localEntry) result(key localKey) (dataset.Translations, error) {
	if e.missing {
		return nil, fmt.Errorf("%w: %s translations of %s", ErrSourceNotFound, key.lang, key.dataset)
	}

	return e.tr, nil
}

// checkTranslations logs translation values for fields that are not
// declared as translated; they are never read.
func (c *Cache) checkTranslations(s *dataset.Schema, lang string, tr dataset.Translations) {
	unknown := map[string]struct{}{}

	for _, rec := range tr {
		for field := range rec {
			if f, ok := s.Field(field); !ok || !f.IsTranslated() {
				unknown[field] = struct{}{}
			}
		}
	}

	if len(unknown) == 0 {
		return
	}

	fields := make([]string, 0, len(unknown))
	for f := range unknown {
		fields = append(fields, f)
	}

	slices.Sort(fields)
	c.log.Warn("translation set carries undeclared fields", "dataset", s.Name(), "language", lang, "fields", fields)
}
