package models

// Difficulty is how hard a quest is to complete
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists every difficulty in ascending order
var Difficulties = []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}

// IsValid reports whether d is a known difficulty
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	default:
		return false
	}
}

// Impact is how much a quest improves the player's life
type Impact string

const (
	ImpactLow    Impact = "low"
	ImpactMedium Impact = "medium"
	ImpactHigh   Impact = "high"
)

// Impacts lists every impact in ascending order
var Impacts = []Impact{ImpactLow, ImpactMedium, ImpactHigh}

// IsValid reports whether i is a known impact
func (i Impact) IsValid() bool {
	switch i {
	case ImpactLow, ImpactMedium, ImpactHigh:
		return true
	default:
		return false
	}
}

// Category groups quests by life area
type Category string

const (
	CategoryHealth     Category = "health"
	CategoryMental     Category = "mental"
	CategoryCreativity Category = "creativity"
	CategoryLearning   Category = "learning"
	CategorySocial     Category = "social"
	CategoryDiscipline Category = "discipline"
)

// Categories is the closed set of quest categories, in display order
var Categories = []Category{
	CategoryHealth,
	CategoryMental,
	CategoryCreativity,
	CategoryLearning,
	CategorySocial,
	CategoryDiscipline,
}

// IsValid reports whether c is one of Categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Quest is a single self-improvement task. Catalog quests are shared and
// immutable; custom quests belong to one player.
type Quest struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Impact      Impact     `json:"impact"`
	Category    Category   `json:"category"`
	Tags        []string   `json:"tags"`
	Duration    int        `json:"duration,omitempty"` // minutes
	Custom      bool       `json:"custom,omitempty"`
	Generated   bool       `json:"generated,omitempty"`
	// XP is the reward. Zero means it is derived from difficulty and impact.
	XP int `json:"xp,omitempty"`
}

// HasTag reports whether the quest carries the given tag
func (q Quest) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
