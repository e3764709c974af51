package generator

import "questforge/internal/models"

var verbs = []string{"do", "practice", "work on", "complete", "carry out", "take on"}

var activities = map[models.Category][]string{
	models.CategoryHealth:     {"a workout", "some yoga", "a run", "strength training", "a bike ride", "a swim", "some stretching", "a walk"},
	models.CategoryMental:     {"a meditation", "some journaling", "a visualization", "some reading", "some self-study", "some reflection"},
	models.CategoryCreativity: {"some drawing", "some writing", "some music", "some photography", "some painting", "some design"},
	models.CategorySocial:     {"a phone call", "a meetup", "some networking", "a conversation", "a collaboration"},
	models.CategoryDiscipline: {"a focus session", "some organizing", "some planning", "some habit tracking"},
	models.CategoryLearning:   {"a course", "a tutorial", "a training module", "some practice", "a study session"},
}

// Durations are the minute lengths a generated quest can have
var Durations = []int{15, 20, 30, 45, 60, 90, 120}

var icons = map[models.Category]string{
	models.CategoryHealth:     "🏃",
	models.CategoryMental:     "🧠",
	models.CategoryCreativity: "🎨",
	models.CategorySocial:     "👥",
	models.CategoryDiscipline: "💪",
	models.CategoryLearning:   "📚",
}

// Icon returns the display glyph for a category
func Icon(c models.Category) string {
	if icon, ok := icons[c]; ok {
		return icon
	}
	return "🎯"
}
