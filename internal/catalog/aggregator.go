package catalog

import (
	"strings"

	"catexport/internal/models"
)

// KeyResolver maps raw record keys onto field kinds.
type KeyResolver struct {
	kinds map[string]models.FieldKind
}

// NewKeyResolver builds a resolver from title and body key aliases.
// Keys are compared case-sensitively after trimming, as the export writes them.
func NewKeyResolver(titleKeys, bodyKeys []string) *KeyResolver {
	r := &KeyResolver{kinds: make(map[string]models.FieldKind)}

	for _, k := range titleKeys {
		r.kinds[strings.TrimSpace(k)] = models.KindTitle
	}

	for _, k := range bodyKeys {
		r.kinds[strings.TrimSpace(k)] = models.KindBody
	}

	return r
}

// DefaultKeyResolver recognizes "title" and both "body" and "body_html" for the body.
func DefaultKeyResolver() *KeyResolver {
	return NewKeyResolver([]string{"title"}, []string{"body", "body_html"})
}

// Resolve returns the kind of key, or KindUnknown.
func (r *KeyResolver) Resolve(key string) models.FieldKind {
	return r.kinds[strings.TrimSpace(key)]
}

// Stats counts what the aggregator did with its input.
type Stats struct {
	Records           int
	MissingIdentifier int
	UnknownKey        int
}

// Skipped returns the number of records that did not touch any draft.
func (s Stats) Skipped() int {
	return s.MissingIdentifier + s.UnknownKey
}

// Aggregator folds translation records into a Catalog.
type Aggregator struct {
	resolver *KeyResolver
}

// NewAggregator creates an aggregator. A nil resolver uses DefaultKeyResolver.
func NewAggregator(resolver *KeyResolver) *Aggregator {
	if resolver == nil {
		resolver = DefaultKeyResolver()
	}

	return &Aggregator{resolver: resolver}
}

// Aggregate folds records in order. Later records for the same identifier and kind
// overwrite earlier ones. A draft is only created once a record of a recognized kind
// arrives for its identifier.
func (a *Aggregator) Aggregate(records []models.TranslationRecord) (*Catalog, Stats) {
	c := New()
	stats := Stats{}

	for _, rec := range records {
		stats.Records++

		if rec.Identifier == "" {
			stats.MissingIdentifier++

			continue
		}

		kind := a.resolver.Resolve(rec.FieldKey)
		if kind == models.KindUnknown {
			stats.UnknownKey++

			continue
		}

		draft := c.upsert(rec.Identifier)

		switch kind {
		case models.KindTitle:
			draft.Title = rec.TranslatedText
		case models.KindBody:
			draft.Markup = rec.TranslatedText
		}
	}

	return c, stats
}

// Aggregate folds records with the default key resolver.
func Aggregate(records []models.TranslationRecord) *Catalog {
	c, _ := NewAggregator(nil).Aggregate(records)

	return c
}
