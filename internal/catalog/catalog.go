// Package catalog folds translation records into ordered product drafts.
package catalog

import "catexport/internal/models"

// Catalog is an insertion-ordered set of product drafts keyed by identifier.
type Catalog struct {
	index  map[string]int
	drafts []models.ProductDraft
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		index: make(map[string]int),
	}
}

// upsert returns the draft for id, appending a new one on first sight.
func (c *Catalog) upsert(id string) *models.ProductDraft {
	if i, ok := c.index[id]; ok {
		return &c.drafts[i]
	}

	c.index[id] = len(c.drafts)
	c.drafts = append(c.drafts, models.ProductDraft{Identifier: id})

	return &c.drafts[len(c.drafts)-1]
}

// Get returns the draft for id.
func (c *Catalog) Get(id string) (models.ProductDraft, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.ProductDraft{}, false
	}

	return c.drafts[i], true
}

// Len returns the number of drafts.
func (c *Catalog) Len() int {
	return len(c.drafts)
}

// Identifiers returns identifiers in first-seen order.
func (c *Catalog) Identifiers() []string {
	ids := make([]string, len(c.drafts))
	for i, d := range c.drafts {
		ids[i] = d.Identifier
	}

	return ids
}

// Drafts returns a copy of the drafts in first-seen order.
func (c *Catalog) Drafts() []models.ProductDraft {
	out := make([]models.ProductDraft, len(c.drafts))
	copy(out, c.drafts)

	return out
}

// Each calls fn for every draft in first-seen order and stops at the first error.
func (c *Catalog) Each(fn func(models.ProductDraft) error) error {
	for _, d := range c.drafts {
		if err := fn(d); err != nil {
			return err
		}
	}

	return nil
}
