// Package enquiries queries the reference datasets.
//
// An Enquiry is configured (Select, Limit, WithIndex, OrderBy, Search,
// UseLanguage) and then materialized with Get or ByCode into a structured
// object graph. Raw fields come from the raw records, translated fields from
// the current language (or its base language when it has no set) with a
// fallback to the default language.
//
// Once materialized, an Enquiry rejects configuration with
// ErrQueryMaterialized until Reset is called. Get may be repeated and yields
// an equal result. An Enquiry is not safe for concurrent use; the Cache it
// reads from is.
package enquiries

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"iso3166/dataset"
	"iso3166/internal/common"
	"iso3166/internal/locale"
	"iso3166/internal/match"
	"iso3166/internal/metrics"
	"iso3166/store"
	"iso3166/structure"
)

// Enquiry is a query over one dataset.
type Enquiry struct {
	cache  *store.Cache
	schema *dataset.Schema
	log    *slog.Logger

	language        string
	defaultLanguage string

	q            query
	materialized bool
}

type query struct {
	fields     []string
	limited    bool
	offset     int
	count      int
	index      string
	orderBy    string
	descending bool
	search     string
}

// Option configures an Enquiry at construction.
type Option func(*Enquiry) error

// WithLanguage sets the current language. Defaults to locale.Default.
func WithLanguage(tag string) Option {
	return func(e *Enquiry) error {
		lang, err := locale.Canonical(tag)
		if err != nil {
			return err
		}

		e.language = lang

		return nil
	}
}

// WithDefaultLanguage sets the fallback language. Defaults to locale.Default.
func WithDefaultLanguage(tag string) Option {
	return func(e *Enquiry) error {
		lang, err := locale.Canonical(tag)
		if err != nil {
			return err
		}

		e.defaultLanguage = lang

		return nil
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Enquiry) error {
		if l != nil {
			e.log = l
		}

		return nil
	}
}

// New creates an Enquiry over the dataset described by schema.
func New(cache *store.Cache, schema *dataset.Schema, opts ...Option) (*Enquiry, error) {
	e := &Enquiry{
		cache:           cache,
		schema:          schema,
		log:             slog.Default(),
		language:        locale.Default,
		defaultLanguage: locale.Default,
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("failed to configure %s enquiry: %w", schema.Name(), err)
		}
	}

	e.log = e.log.With("dataset", schema.Name())

	return e, nil
}

// Countries creates an Enquiry over the countries dataset.
func Countries(cache *store.Cache, opts ...Option) (*Enquiry, error) {
	return New(cache, dataset.Countries(), opts...)
}

// Currencies creates an Enquiry over the currencies dataset.
func Currencies(cache *store.Cache, opts ...Option) (*Enquiry, error) {
	return New(cache, dataset.Currencies(), opts...)
}

// GeoSets creates an Enquiry over the geoSets dataset.
func GeoSets(cache *store.Cache, opts ...Option) (*Enquiry, error) {
	return New(cache, dataset.GeoSets(), opts...)
}

// Dataset returns the schema of the queried dataset.
func (e *Enquiry) Dataset() *dataset.Schema { return e.schema }

// Language returns the current language.
func (e *Enquiry) Language() string { return e.language }

// DefaultLanguage returns the fallback language.
func (e *Enquiry) DefaultLanguage() string { return e.defaultLanguage }

// SelectableFields lists the fields Select accepts.
func (e *Enquiry) SelectableFields() []dataset.FieldInfo { return e.schema.SelectableFields() }

// IndexableFields lists the fields WithIndex accepts.
func (e *Enquiry) IndexableFields() []dataset.FieldInfo { return e.schema.IndexableFields() }

// IndexField returns the active index field, the primary one unless
// WithIndex chose another.
func (e *Enquiry) IndexField() string {
	if e.q.index != "" {
		return e.q.index
	}

	return e.schema.Primary().Name
}

// Materialized reports whether the Enquiry produced a result since the last
// Reset.
func (e *Enquiry) Materialized() bool { return e.materialized }

func (e *Enquiry) configurable() error {
	if e.materialized {
		return ErrQueryMaterialized
	}

	return nil
}

// Select restricts the output to fields. Every field must be public.
// Calling Select without fields restores the default of all public fields.
func (e *Enquiry) Select(fields ...string) error {
	if err := e.configurable(); err != nil {
		return err
	}

	for _, f := range fields {
		if !e.schema.IsSelectable(f) {
			return e.notSelectable(f)
		}
	}

	if common.IsEmpty(fields) {
		e.q.fields = nil
		return nil
	}

	e.q.fields = common.Unique(fields)

	return nil
}

// Limit sets the pagination window over the records in primary-key order.
func (e *Enquiry) Limit(offset, count int) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if offset < 0 || count < 0 {
		return &InvalidLimitError{Offset: offset, Count: count}
	}

	e.q.limited = true
	e.q.offset = offset
	e.q.count = count

	return nil
}

// WithIndex keys the output by the value of field instead of position.
// Values are assumed unique: a repeated value keeps the position of its
// first record and the content of its last one. Records without a value are
// left out.
func (e *Enquiry) WithIndex(field string) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if !e.schema.IsIndexable(field) {
		err := &FieldNotIndexableError{Field: field, Dataset: e.schema.Name()}

		names := make([]string, 0, len(e.schema.IndexableFields()))
		for _, fi := range e.schema.IndexableFields() {
			names = append(names, fi.Name)
		}

		err.Suggestion, _ = match.Suggest(field, names, match.DefaultThreshold)

		return err
	}

	e.q.index = field

	return nil
}

// OrderBy sorts the page by field. Nulls sort last in either direction.
func (e *Enquiry) OrderBy(field string, descending bool) error {
	if err := e.configurable(); err != nil {
		return err
	}

	if !e.schema.IsSelectable(field) {
		return e.notSelectable(field)
	}

	e.q.orderBy = field
	e.q.descending = descending

	return nil
}

func (e *Enquiry) notSelectable(field string) error {
	err := &FieldNotSelectableError{Field: field, Dataset: e.schema.Name()}
	err.Suggestion, _ = match.Suggest(field, e.schema.PublicFields(), match.DefaultThreshold)

	return err
}

// Search keeps the records whose searchable fields contain term, ignoring
// case and diacritics. An empty term clears the filter.
func (e *Enquiry) Search(term string) error {
	if err := e.configurable(); err != nil {
		return err
	}

	e.q.search = strings.TrimSpace(term)

	return nil
}

// UseLanguage switches the current language.
func (e *Enquiry) UseLanguage(tag string) error {
	if err := e.configurable(); err != nil {
		return err
	}

	lang, err := locale.Canonical(tag)
	if err != nil {
		return err
	}

	e.language = lang

	return nil
}

// Reset discards the query state and accepts configuration again.
// Languages are kept.
func (e *Enquiry) Reset() {
	e.q = query{}
	e.materialized = false
}

// Get materializes the query into a list node of items, or into a named
// node keyed by index value after WithIndex.
func (e *Enquiry) Get() (*structure.Node, error) {
	n, err := e.get()
	metrics.MaterializationsTotal.WithLabelValues(e.schema.Name(), metrics.Status(err)).Inc()

	if err != nil {
		return nil, err
	}

	e.materialized = true

	return n, nil
}

func (e *Enquiry) get() (*structure.Node, error) {
	records, err := e.cache.Records(e.schema)
	if err != nil {
		return nil, err
	}

	o, err := e.overlay()
	if err != nil {
		return nil, err
	}

	if e.q.search != "" {
		records = e.filter(records, o)
	}

	if e.q.limited {
		lo, hi := common.Window(len(records), e.q.offset, e.q.count)
		records = records[lo:hi]
	}

	items := make([]dataset.Record, len(records))
	for i, rec := range records {
		items[i] = e.merge(rec, o)
	}

	if e.q.orderBy != "" {
		e.order(items)
	}

	values := make([]any, len(items))
	for i, item := range items {
		values[i] = e.restrict(item)
	}

	list, err := e.schema.Catalog().MapType(e.schema.ListType(), values)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", e.schema.Name(), err)
	}

	e.log.Debug("query materialized", "items", list.Len(), "language", e.language)

	if e.q.index == "" {
		return list, nil
	}

	return e.indexed(list, items), nil
}

// ByCode materializes the single item with the given primary key.
// Selection and languages apply; window, search, ordering and index do not.
func (e *Enquiry) ByCode(code string) (*structure.Node, error) {
	n, err := e.byCode(code)
	metrics.MaterializationsTotal.WithLabelValues(e.schema.Name(), metrics.Status(err)).Inc()

	if err != nil {
		return nil, err
	}

	e.materialized = true

	return n, nil
}

func (e *Enquiry) byCode(code string) (*structure.Node, error) {
	records, err := e.cache.Records(e.schema)
	if err != nil {
		return nil, err
	}

	pk := e.schema.Primary().Name

	i, found := slices.BinarySearchFunc(records, code, func(r dataset.Record, code string) int {
		k, _ := r.Key(pk)
		return strings.Compare(k, code)
	})
	if !found {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, e.schema.Name(), code)
	}

	o, err := e.overlay()
	if err != nil {
		return nil, err
	}

	n, err := e.schema.Catalog().MapType(e.schema.ItemType(), e.restrict(e.merge(records[i], o)))
	if err != nil {
		return nil, fmt.Errorf("failed to map %s %q: %w", e.schema.Name(), code, err)
	}

	return n, nil
}

// restrict copies the selected fields of a merged record, or all public
// ones when nothing was selected.
func (e *Enquiry) restrict(item dataset.Record) map[string]any {
	fields := e.q.fields
	if fields == nil {
		fields = e.schema.PublicFields()
	}

	out := make(map[string]any, len(fields))

	for _, f := range fields {
		if v, ok := item[f]; ok {
			out[f] = v
		}
	}

	return out
}

func (e *Enquiry) indexed(list *structure.Node, items []dataset.Record) *structure.Node {
	out := structure.NewNamed(e.schema.ItemType() + "Index")

	for i, item := range list.All() {
		key, ok := items[i].Key(e.q.index)
		if !ok {
			continue
		}

		if _, dup := out.Field(key); dup {
			e.log.Warn("duplicate index value overwrites earlier record", "field", e.q.index, "value", key)
		}

		out.Set(key, item)
	}

	return out
}

func (e *Enquiry) order(items []dataset.Record) {
	field := e.q.orderBy

	slices.SortStableFunc(items, func(a, b dataset.Record) int {
		va, vb := a[field], b[field]

		switch {
		case va == nil && vb == nil:
			return 0
		case va == nil:
			return 1
		case vb == nil:
			return -1
		}

		c := compareValues(va, vb)
		if e.q.descending {
			c = -c
		}

		return c
	})
}

func (e *Enquiry) filter(records []dataset.Record, o overlay) []dataset.Record {
	out := make([]dataset.Record, 0, len(records))

	for _, rec := range records {
		if e.matches(rec, o) {
			out = append(out, rec)
		}
	}

	return out
}

func (e *Enquiry) matches(rec dataset.Record, o overlay) bool {
	key, _ := rec.Key(e.schema.Primary().Name)

	for _, f := range e.schema.Fields() {
		if !f.Searchable {
			continue
		}

		var (
			v  any
			ok bool
		)

		if f.IsTranslated() {
			v, _, ok = o.lookup(key, f.Name)
		} else {
			v, ok = rec[f.Name]
		}

		if ok && containsTerm(v, e.q.search) {
			return true
		}
	}

	return false
}

func containsTerm(v any, term string) bool {
	switch t := v.(type) {
	case string:
		return locale.Contains(t, term)
	case []any:
		for _, x := range t {
			if containsTerm(x, term) {
				return true
			}
		}
	}

	return false
}

// hasTranslations reports whether any field of the dataset is translated.
func (e *Enquiry) hasTranslations() bool {
	return slices.ContainsFunc(e.schema.Fields(), dataset.Field.IsTranslated)
}

// overlay loads the translation sets of the current and default languages.
// A missing default set is an error. A missing current set is replaced by the
// set of its base language ("pt" for "pt-BR") when one exists, otherwise the
// default set serves alone.
func (e *Enquiry) overlay() (overlay, error) {
	if !e.hasTranslations() {
		return overlay{}, nil
	}

	def, err := e.cache.Translations(e.defaultLanguage, e.schema)
	if err != nil {
		return overlay{}, fmt.Errorf("failed to load default language: %w", err)
	}

	o := overlay{fallback: def}

	if e.language == e.defaultLanguage {
		o.current = def
		return o, nil
	}

	for _, lang := range e.candidates() {
		cur, err := e.cache.Translations(lang, e.schema)

		switch {
		case errors.Is(err, store.ErrSourceNotFound):
			e.log.Debug("no translations for language", "language", lang)
			continue
		case err != nil:
			return overlay{}, err
		}

		o.current = cur

		return o, nil
	}

	e.log.Warn("using default language translations", "language", e.language, "default", e.defaultLanguage)

	return o, nil
}

// candidates lists the languages tried ahead of the default one: the current
// language, then its base language when that differs from both.
func (e *Enquiry) candidates() []string {
	langs := []string{e.language}
	if base := locale.Base(e.language); base != "" && base != e.language && base != e.defaultLanguage {
		langs = append(langs, base)
	}

	return langs
}

// merge resolves every field of a raw record: raw fields as stored,
// translated fields from the current language, then the default one.
// Translated fields absent from both are omitted. rec is not modified.
func (e *Enquiry) merge(rec dataset.Record, o overlay) dataset.Record {
	key, _ := rec.Key(e.schema.Primary().Name)
	out := make(dataset.Record, len(e.schema.Fields()))

	for _, f := range e.schema.Fields() {
		if !f.IsTranslated() {
			if v, ok := rec[f.Name]; ok {
				out[f.Name] = v
			}

			continue
		}

		v, fallback, ok := o.lookup(key, f.Name)
		if !ok {
			continue
		}

		if fallback {
			metrics.FallbacksTotal.WithLabelValues(e.schema.Name(), e.language).Inc()
			e.log.Debug("translation fallback", "key", key, "field", f.Name, "language", e.language)
		}

		out[f.Name] = v
	}

	return out
}

type overlay struct {
	current  dataset.Translations
	fallback dataset.Translations
}

// lookup returns the translated value of field for key and whether it came
// from the fallback set.
func (o overlay) lookup(key, field string) (v any, fallback, ok bool) {
	if v, ok := o.current.Lookup(key, field); ok {
		return v, false, true
	}

	if v, ok := o.fallback.Lookup(key, field); ok {
		return v, true, true
	}

	return nil, false, false
}
