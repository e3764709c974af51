package generator

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questforge/internal/models"
	"questforge/internal/random"
)

var fixedClock = func() time.Time { return time.UnixMilli(1700000000000) }

func TestRandomQuestDeterministic(t *testing.T) {
	g := New(random.NewSequence(1), WithClock(fixedClock))

	q := g.RandomQuest("")

	assert.Equal(t, "generated_1700000000000_111111111", q.ID)
	assert.Equal(t, models.CategoryMental, q.Category)
	assert.Equal(t, "Practice some journaling", q.Title)
	assert.Equal(t, "Practice some journaling for 20 minutes", q.Description)
	assert.Equal(t, models.DifficultyNormal, q.Difficulty)
	assert.Equal(t, models.ImpactMedium, q.Impact)
	assert.Equal(t, 20, q.Duration)
	assert.Equal(t, 70, q.XP)
	assert.True(t, q.Generated)
	assert.False(t, q.Custom)
	assert.Equal(t, []string{"generated", "random", "mental"}, q.Tags)
}

func TestRandomQuestKeepsRequestedCategory(t *testing.T) {
	g := New(random.NewSeeded(7))
	for i := 0; i < 50; i++ {
		q := g.RandomQuest(models.CategorySocial)
		require.Equal(t, models.CategorySocial, q.Category)
		require.NotEmpty(t, activityOf(q), "title %q uses an activity from another category", q.Title)
	}
}

func activityOf(q models.Quest) string {
	for _, a := range activities[q.Category] {
		if len(q.Title) >= len(a) && q.Title[len(q.Title)-len(a):] == a {
			return a
		}
	}
	return ""
}

func TestGeneratedIDFormat(t *testing.T) {
	g := New(random.NewSeeded(99))
	re := regexp.MustCompile(`^generated_\d+_[0-9a-z]{9}$`)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		q := g.RandomQuest("")
		require.Regexp(t, re, q.ID)
		require.True(t, IsGeneratedID(q.ID))
		seen[q.ID] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestXP(t *testing.T) {
	tests := []struct {
		name string
		q    models.Quest
		want int
	}{
		{"easy low 15 min", models.Quest{Difficulty: "easy", Impact: "low", Duration: 15}, 30},
		{"bonus floors partial steps", models.Quest{Difficulty: "easy", Impact: "low", Duration: 29}, 30},
		{"normal medium 45 min", models.Quest{Difficulty: "normal", Impact: "medium", Duration: 45}, 90},
		{"custom hard high 120 min", models.Quest{Difficulty: "hard", Impact: "high", Duration: 120, Custom: true}, 264},
		{"custom rounds", models.Quest{Difficulty: "easy", Impact: "medium", Duration: 20, Custom: true}, 48},
		{"no duration", models.Quest{Difficulty: "hard", Impact: "low"}, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, XP(tt.q))
		})
	}
}

func TestQuestWithParams(t *testing.T) {
	g := New(random.NewSequence(0), WithClock(fixedClock))

	t.Run("defaults", func(t *testing.T) {
		q, err := g.QuestWithParams(Params{})
		require.NoError(t, err)
		assert.Equal(t, models.CategoryHealth, q.Category)
		assert.Equal(t, "Do a workout", q.Title)
		assert.Equal(t, "Do a workout for 30 minutes", q.Description)
		assert.Equal(t, 30, q.Duration)
		assert.Equal(t, 80, q.XP)
		assert.Equal(t, []string{"generated", "health"}, q.Tags)
	})

	t.Run("repetitions replace duration text", func(t *testing.T) {
		q, err := g.QuestWithParams(Params{
			Category:    models.CategoryHealth,
			Verb:        "complete",
			Activity:    "push-ups",
			Repetitions: 20,
			Difficulty:  models.DifficultyHard,
			Impact:      models.ImpactHigh,
			Custom:      true,
			Tags:        []string{"strength"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Complete push-ups (20 reps)", q.Description)
		assert.Equal(t, 192, q.XP)
		assert.True(t, q.Custom)
		assert.True(t, q.HasTag("strength"))
	})

	t.Run("rejects unknown enums", func(t *testing.T) {
		_, err := g.QuestWithParams(Params{Difficulty: "expert"})
		assert.ErrorIs(t, err, ErrInvalidParams)
		_, err = g.QuestWithParams(Params{Category: "santé"})
		assert.ErrorIs(t, err, ErrInvalidParams)
		_, err = g.QuestWithParams(Params{Impact: "huge"})
		assert.ErrorIs(t, err, ErrInvalidParams)
	})
}

func TestDailyQuestsSpreadCategories(t *testing.T) {
	g := New(random.NewSeeded(3))

	quests := g.DailyQuests(len(models.Categories))
	require.Len(t, quests, len(models.Categories))

	seen := map[models.Category]bool{}
	for _, q := range quests {
		seen[q.Category] = true
	}
	assert.Len(t, seen, len(models.Categories))

	assert.Empty(t, g.DailyQuests(0))
	assert.Len(t, g.DailyQuests(8), 8)
}

func TestQuestsByTags(t *testing.T) {
	g := New(random.NewSeeded(11))

	quests := g.QuestsByTags([]string{"morning", "focus"}, 0)
	require.Len(t, quests, 5)
	for _, q := range quests {
		assert.True(t, q.HasTag("morning"))
		assert.True(t, q.HasTag("focus"))
		assert.True(t, q.HasTag("generated"))
	}
	assert.Len(t, g.QuestsByTags(nil, 2), 2)
}

func TestShuffleIsPermutation(t *testing.T) {
	s := []int{1, 2, 3, 4, 5}
	Shuffle(random.NewSeeded(5), s)
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5}, s)
}
