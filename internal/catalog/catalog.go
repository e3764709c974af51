// Package catalog holds the predefined quest table. A Catalog is immutable
// after construction and is injected wherever quests are resolved.
package catalog

import (
	"errors"
	"fmt"

	"questforge/internal/models"
)

var (
	ErrDuplicateID  = errors.New("duplicate quest id")
	ErrInvalidQuest = errors.New("invalid quest definition")
)

// Catalog is a read-only set of quest definitions in declaration order
type Catalog struct {
	quests []models.Quest
	byID   map[string]int
}

// New validates quests and builds a catalog from a copy of them.
// Ids must be unique and every enum field must be a known value.
func New(quests []models.Quest) (*Catalog, error) {
	c := &Catalog{
		quests: make([]models.Quest, 0, len(quests)),
		byID:   make(map[string]int, len(quests)),
	}
	for _, q := range quests {
		if q.ID == "" {
			return nil, fmt.Errorf("%w: empty id", ErrInvalidQuest)
		}
		if _, exists := c.byID[q.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, q.ID)
		}
		if !q.Difficulty.IsValid() {
			return nil, fmt.Errorf("%w: %s has difficulty %q", ErrInvalidQuest, q.ID, q.Difficulty)
		}
		if !q.Impact.IsValid() {
			return nil, fmt.Errorf("%w: %s has impact %q", ErrInvalidQuest, q.ID, q.Impact)
		}
		if !q.Category.IsValid() {
			return nil, fmt.Errorf("%w: %s has category %q", ErrInvalidQuest, q.ID, q.Category)
		}
		q.Tags = append([]string(nil), q.Tags...)
		c.byID[q.ID] = len(c.quests)
		c.quests = append(c.quests, q)
	}
	return c, nil
}

// MustNew is New for static tables known to be valid
func MustNew(quests []models.Quest) *Catalog {
	c, err := New(quests)
	if err != nil {
		panic(err)
	}
	return c
}

// Default returns the built-in catalog
func Default() *Catalog {
	return MustNew(defaultQuests)
}

// Len returns the number of quests
func (c *Catalog) Len() int {
	return len(c.quests)
}

// All returns a copy of every quest in declaration order
func (c *Catalog) All() []models.Quest {
	out := make([]models.Quest, len(c.quests))
	for i, q := range c.quests {
		q.Tags = append([]string(nil), q.Tags...)
		out[i] = q
	}
	return out
}

// Get looks up a quest by id
func (c *Catalog) Get(id string) (models.Quest, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Quest{}, false
	}
	q := c.quests[i]
	q.Tags = append([]string(nil), q.Tags...)
	return q, true
}

// Contains reports whether id is a catalog quest
func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// IDs returns quest ids in declaration order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.quests))
	for i, q := range c.quests {
		ids[i] = q.ID
	}
	return ids
}
