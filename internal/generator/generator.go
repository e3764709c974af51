// Package generator synthesizes quests from templates. Generated quests are
// independent of the catalog and carry their own XP.
package generator

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"questforge/internal/models"
	"questforge/internal/progression"
	"questforge/internal/random"
)

const (
	// IDPrefix starts every generated quest id
	IDPrefix = "generated_"

	idSuffixLen         = 9
	durationBonusStep   = 15
	durationBonusXP     = 10
	customXPMultiplier  = 1.2
	defaultTagsPerBatch = 5
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

var ErrInvalidParams = errors.New("invalid generator parameters")

// Generator builds quests from the templates using an injected random source
type Generator struct {
	rng random.Source
	now func() time.Time
}

// Option configures a Generator
type Option func(*Generator)

// WithClock overrides the clock used for quest ids
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// New creates a generator drawing from rng
func New(rng random.Source, opts ...Option) *Generator {
	g := &Generator{rng: rng, now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params describes a quest to build. Zero fields take defaults:
// health, "do", "a workout", 30 minutes, normal, medium.
type Params struct {
	Category    models.Category
	Verb        string
	Activity    string
	Duration    int
	Repetitions int
	Difficulty  models.Difficulty
	Impact      models.Impact
	Custom      bool
	Tags        []string
}

// RandomQuest generates a quest in category, or in a random category when
// category is empty.
func (g *Generator) RandomQuest(category models.Category) models.Quest {
	if !category.IsValid() {
		category = pick(g.rng, models.Categories)
	}
	verb := pick(g.rng, verbs)
	activity := pick(g.rng, activities[category])
	duration := pick(g.rng, Durations)
	difficulty := pick(g.rng, models.Difficulties)
	impact := pick(g.rng, models.Impacts)

	q := models.Quest{
		ID:          g.newID(),
		Title:       capitalize(verb) + " " + activity,
		Description: fmt.Sprintf("%s %s for %d minutes", capitalize(verb), activity, duration),
		Difficulty:  difficulty,
		Impact:      impact,
		Category:    category,
		Tags:        []string{"generated", "random", string(category)},
		Duration:    duration,
		Generated:   true,
	}
	q.XP = XP(q)
	return q
}

// QuestWithParams builds a quest from explicit parameters. Unknown enum
// values are rejected rather than defaulted.
func (g *Generator) QuestWithParams(p Params) (models.Quest, error) {
	if p.Category == "" {
		p.Category = models.CategoryHealth
	}
	if p.Verb == "" {
		p.Verb = "do"
	}
	if p.Activity == "" {
		p.Activity = "a workout"
	}
	if p.Duration <= 0 {
		p.Duration = 30
	}
	if p.Difficulty == "" {
		p.Difficulty = models.DifficultyNormal
	}
	if p.Impact == "" {
		p.Impact = models.ImpactMedium
	}

	switch {
	case !p.Category.IsValid():
		return models.Quest{}, fmt.Errorf("%w: category %q", ErrInvalidParams, p.Category)
	case !p.Difficulty.IsValid():
		return models.Quest{}, fmt.Errorf("%w: difficulty %q", ErrInvalidParams, p.Difficulty)
	case !p.Impact.IsValid():
		return models.Quest{}, fmt.Errorf("%w: impact %q", ErrInvalidParams, p.Impact)
	case p.Repetitions < 0:
		return models.Quest{}, fmt.Errorf("%w: negative repetitions", ErrInvalidParams)
	}

	desc := capitalize(p.Verb) + " " + p.Activity
	if p.Repetitions > 0 {
		desc += fmt.Sprintf(" (%d reps)", p.Repetitions)
	} else {
		desc += fmt.Sprintf(" for %d minutes", p.Duration)
	}

	tags := append([]string{"generated", string(p.Category)}, p.Tags...)
	q := models.Quest{
		ID:          g.newID(),
		Title:       capitalize(p.Verb) + " " + p.Activity,
		Description: desc,
		Difficulty:  p.Difficulty,
		Impact:      p.Impact,
		Category:    p.Category,
		Tags:        tags,
		Duration:    p.Duration,
		Custom:      p.Custom,
		Generated:   true,
	}
	q.XP = XP(q)
	return q, nil
}

// DailyQuests generates count quests, cycling through the categories in a
// shuffled order so consecutive quests differ in category.
func (g *Generator) DailyQuests(count int) []models.Quest {
	if count <= 0 {
		return []models.Quest{}
	}
	order := append([]models.Category(nil), models.Categories...)
	Shuffle(g.rng, order)

	quests := make([]models.Quest, 0, count)
	for i := 0; i < count; i++ {
		quests = append(quests, g.RandomQuest(order[i%len(order)]))
	}
	return quests
}

// QuestsByTags generates count random quests carrying the extra tags.
// A non-positive count generates five.
func (g *Generator) QuestsByTags(tags []string, count int) []models.Quest {
	if count <= 0 {
		count = defaultTagsPerBatch
	}
	quests := make([]models.Quest, 0, count)
	for i := 0; i < count; i++ {
		q := g.RandomQuest("")
		q.Tags = append(q.Tags, tags...)
		quests = append(quests, q)
	}
	return quests
}

// XP scores a generated quest: the usual difficulty and impact reward plus
// 10 XP per full 15 minutes, with a 20% bonus for custom quests.
func XP(q models.Quest) int {
	xp := float64(progression.QuestXP(q.Difficulty, q.Impact))
	xp += float64(q.Duration/durationBonusStep) * durationBonusXP
	if q.Custom {
		xp *= customXPMultiplier
	}
	return int(math.Round(xp))
}

// IsGeneratedID reports whether id was produced by a Generator
func IsGeneratedID(id string) bool {
	return strings.HasPrefix(id, IDPrefix)
}

func (g *Generator) newID() string {
	var b strings.Builder
	b.Grow(idSuffixLen)
	for i := 0; i < idSuffixLen; i++ {
		b.WriteByte(base36[g.rng.Intn(len(base36))])
	}
	return fmt.Sprintf("%s%d_%s", IDPrefix, g.now().UnixMilli(), b.String())
}

// Shuffle permutes s in place with Fisher-Yates
func Shuffle[T any](rng random.Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func pick[T any](rng random.Source, s []T) T {
	return s[rng.Intn(len(s))]
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
