package store

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iso3166/dataset"
	"iso3166/internal/logger"
)

// countingSource counts the calls that reach the wrapped source.
type countingSource struct {
	Source
	records      atomic.Int32
	translations atomic.Int32
}

func (s *countingSource) Records(name string) ([]dataset.Record, error) {
	s.records.Add(1)
	return s.Source.Records(name)
}

func (s *countingSource) Translations(lang, name string) (dataset.Translations, error) {
	s.translations.Add(1)
	return s.Source.Translations(lang, name)
}

func newTestCache(src Source) *Cache {
	return New(src, WithLogger(logger.Discard()))
}

func TestFSSource(t *testing.T) {
	src := NewFSSource(os.DirFS("testdata"))

	recs, err := src.Records(dataset.NameCountries)
	require.NoError(t, err)
	require.Len(t, recs, 4)
	assert.Equal(t, "IT", recs[0]["alpha2"])

	tr, err := src.Translations("it", dataset.NameCountries)
	require.NoError(t, err)
	assert.Equal(t, "Italia", tr["IT"]["name"])

	_, err = src.Translations("de", dataset.NameCountries)
	require.ErrorIs(t, err, ErrSourceNotFound)

	_, err = src.Records("planets")
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestFSSourceInvalidJSON(t *testing.T) {
	src := NewFSSource(fstest.MapFS{"countries.json": {Data: []byte("{not json")}})

	_, err := src.Records(dataset.NameCountries)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSourceNotFound)
}

func TestRecordsSortedByPrimaryKey(t *testing.T) {
	c := newTestCache(NewFSSource(os.DirFS("testdata")))

	recs, err := c.Records(dataset.Countries())
	require.NoError(t, err)

	var codes []string
	for _, r := range recs {
		codes = append(codes, r["alpha2"].(string))
	}

	assert.Equal(t, []string{"AD", "CH", "FR", "IT"}, codes)
}

func TestRecordsLoadedOnce(t *testing.T) {
	src := &countingSource{Source: NewFSSource(os.DirFS("testdata"))}
	c := newTestCache(src)

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := c.Records(dataset.Currencies())
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	first, err := c.Records(dataset.Currencies())
	require.NoError(t, err)

	second, err := c.Records(dataset.Currencies())
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.records.Load())
	assert.Same(t, &first[0], &second[0], "cached slice is shared")
}

func TestRecordsValidated(t *testing.T) {
	src := NewMemorySource().SetRecords(dataset.NameCurrencies,
		dataset.Record{"isoAlpha": "EUR", "isoNumber": "978", "symbol": "€"},
	)
	c := newTestCache(src)

	_, err := c.Records(dataset.Currencies())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal")
}

func TestRecordsErrorNotCached(t *testing.T) {
	src := &countingSource{Source: NewMemorySource()}
	c := newTestCache(src)

	_, err := c.Records(dataset.Currencies())
	require.ErrorIs(t, err, ErrSourceNotFound)

	_, err = c.Records(dataset.Currencies())
	require.ErrorIs(t, err, ErrSourceNotFound)

	assert.Equal(t, int32(2), src.records.Load())
}

func TestTranslationsCachedPerLanguage(t *testing.T) {
	src := &countingSource{Source: NewFSSource(os.DirFS("testdata"))}
	c := newTestCache(src)

	for range 3 {
		en, err := c.Translations("en", dataset.Countries())
		require.NoError(t, err)
		assert.Equal(t, "Andorra", en["AD"]["name"])

		it, err := c.Translations("it", dataset.Countries())
		require.NoError(t, err)
		assert.NotContains(t, it, "AD")
	}

	assert.Equal(t, int32(2), src.translations.Load())
}

func TestTranslationsMissingSetRemembered(t *testing.T) {
	src := &countingSource{Source: NewFSSource(os.DirFS("testdata"))}
	c := newTestCache(src)

	for range 3 {
		_, err := c.Translations("de", dataset.GeoSets())
		require.ErrorIs(t, err, ErrSourceNotFound)
	}

	assert.Equal(t, int32(1), src.translations.Load())
}

type brokenSource struct{ Source }

func (brokenSource) Translations(string, string) (dataset.Translations, error) {
	return nil, errors.New("disk on fire")
}

func TestTranslationsSourceFailure(t *testing.T) {
	c := newTestCache(brokenSource{Source: NewMemorySource()})

	_, err := c.Translations("en", dataset.GeoSets())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSourceNotFound)
	assert.Contains(t, err.Error(), "disk on fire")
}
