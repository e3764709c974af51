// Package engine applies the game rules to a single progression record.
//
// Every operation works on the record it is given and never performs I/O.
// Loading, saving and guarding against concurrent writers is the caller's
// job; see the service package.
package engine

import (
	"errors"

	"github.com/google/uuid"

	"questforge/internal/catalog"
	"questforge/internal/models"
	"questforge/internal/progression"
	"questforge/internal/random"
)

var (
	ErrAlreadyCompleted   = errors.New("quest already completed")
	ErrUnknownQuest       = errors.New("unknown quest")
	ErrNotTodaysChallenge = errors.New("quest is not today's challenge")
	ErrChallengeCompleted = errors.New("today's challenge is already completed")
	ErrNoChallenge        = errors.New("no challenge available today")
)

const (
	// DefaultDailyCount is how many daily quests are drawn per day
	DefaultDailyCount = 3
	// ChallengeMultiplier scales the XP of a quest completed as the daily challenge
	ChallengeMultiplier = 3
	// CustomIDPrefix starts every custom quest id
	CustomIDPrefix = "custom_"
)

// Engine holds the injected catalog and random source
type Engine struct {
	catalog    *catalog.Catalog
	rng        random.Source
	dailyCount int
	newID      func() string
}

// Option configures an Engine
type Option func(*Engine)

// WithDailyCount sets the size of the daily draw. Values below one are ignored.
func WithDailyCount(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.dailyCount = n
		}
	}
}

// WithIDFunc overrides the id generator for custom quests
func WithIDFunc(f func() string) Option {
	return func(e *Engine) {
		e.newID = f
	}
}

// New creates an engine over cat drawing from rng
func New(cat *catalog.Catalog, rng random.Source, opts ...Option) *Engine {
	e := &Engine{
		catalog:    cat,
		rng:        rng,
		dailyCount: DefaultDailyCount,
		newID:      func() string { return CustomIDPrefix + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the injected catalog
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// DailyCount returns the configured daily draw size
func (e *Engine) DailyCount() int {
	return e.dailyCount
}

// QuestReward returns the XP a quest is worth. Quests that carry their own
// XP keep it; the rest are scored from difficulty and impact.
func QuestReward(q models.Quest) int {
	if q.XP > 0 {
		return q.XP
	}
	return progression.QuestXP(q.Difficulty, q.Impact)
}

// AllQuests returns the catalog followed by the record's custom quests, each
// with XP filled in.
func (e *Engine) AllQuests(p *models.Progression) []models.Quest {
	all := e.catalog.All()
	for _, q := range p.CustomQuests {
		q.Tags = append([]string(nil), q.Tags...)
		all = append(all, q)
	}
	for i := range all {
		all[i].XP = QuestReward(all[i])
	}
	return all
}

// Quest resolves id against the catalog then the record's custom quests
func (e *Engine) Quest(p *models.Progression, id string) (models.Quest, bool) {
	if q, ok := e.catalog.Get(id); ok {
		q.XP = QuestReward(q)
		return q, true
	}
	if q, ok := p.CustomQuest(id); ok {
		q.Tags = append([]string(nil), q.Tags...)
		q.XP = QuestReward(q)
		return q, true
	}
	return models.Quest{}, false
}

// Quests resolves ids in order, skipping any that no longer exist
func (e *Engine) Quests(p *models.Progression, ids []string) []models.Quest {
	out := make([]models.Quest, 0, len(ids))
	for _, id := range ids {
		if q, ok := e.Quest(p, id); ok {
			out = append(out, q)
		}
	}
	return out
}

// uncompleted lists catalog quest ids the record has not completed, in catalog order
func (e *Engine) uncompleted(p *models.Progression) []string {
	done := make(map[string]struct{}, len(p.CompletedQuestIDs))
	for _, id := range p.CompletedQuestIDs {
		done[id] = struct{}{}
	}
	var pool []string
	for _, id := range e.catalog.IDs() {
		if _, ok := done[id]; !ok {
			pool = append(pool, id)
		}
	}
	return pool
}
