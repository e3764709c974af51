package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questforge/internal/models"
	"questforge/internal/validation"
)

func TestAddCustomQuest(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")

	q, err := e.AddCustomQuest(p, CustomQuestInput{
		Title:       "  Journal before bed ",
		Description: "One page",
		Difficulty:  "Normal",
		Impact:      "high",
		Category:    "mental",
		Tags:        "evening, writing,,evening",
	})
	require.NoError(t, err)

	assert.Equal(t, "custom_1", q.ID)
	assert.Equal(t, "Journal before bed", q.Title)
	assert.Equal(t, models.DifficultyNormal, q.Difficulty)
	assert.Equal(t, []string{"evening", "writing"}, q.Tags)
	assert.True(t, q.Custom)
	assert.Equal(t, 80, q.XP)
	require.Len(t, p.CustomQuests, 1)

	res, err := e.CompleteQuest(p, q.ID, false, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 80, res.XPGained)
	assert.Equal(t, 1, p.CategoryStats[models.CategoryMental])
}

func TestAddCustomQuestValidation(t *testing.T) {
	valid := CustomQuestInput{Title: "T", Difficulty: "easy", Impact: "low", Category: "health"}

	tests := []struct {
		name  string
		edit  func(*CustomQuestInput)
		field string
	}{
		{"blank title", func(in *CustomQuestInput) { in.Title = " " }, "title"},
		{"unknown difficulty", func(in *CustomQuestInput) { in.Difficulty = "expert" }, "difficulty"},
		{"unknown impact", func(in *CustomQuestInput) { in.Impact = "" }, "impact"},
		{"unknown category", func(in *CustomQuestInput) { in.Category = "santé" }, "category"},
		{"too many tags", func(in *CustomQuestInput) { in.Tags = "a,b,c,d,e,f,g,h,i,j,k" }, "tags"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			p := models.NewProgression("u1")
			in := valid
			tt.edit(&in)

			_, err := e.AddCustomQuest(p, in)
			var ve validation.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
			assert.Empty(t, p.CustomQuests)
		})
	}
}

func TestDeleteCustomQuest(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")

	a, err := e.AddCustomQuest(p, CustomQuestInput{Title: "A", Difficulty: "easy", Impact: "low", Category: "health"})
	require.NoError(t, err)
	b, err := e.AddCustomQuest(p, CustomQuestInput{Title: "B", Difficulty: "easy", Impact: "low", Category: "social"})
	require.NoError(t, err)
	_, err = e.CompleteQuest(p, a.ID, false, "2024-03-10")
	require.NoError(t, err)

	require.NoError(t, e.DeleteCustomQuest(p, a.ID))
	require.Len(t, p.CustomQuests, 1)
	assert.Equal(t, b.ID, p.CustomQuests[0].ID)
	assert.True(t, p.HasCompleted(a.ID))
	assert.Equal(t, 1, p.CategoryStats[models.CategoryHealth])

	assert.ErrorIs(t, e.DeleteCustomQuest(p, a.ID), ErrUnknownQuest)
	assert.ErrorIs(t, e.DeleteCustomQuest(p, "q1"), ErrUnknownQuest)
}

func TestFilterQuests(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")
	p.CompletedQuestIDs = []string{"q1"}

	ids := func(qs []models.Quest) []string {
		out := []string{}
		for _, q := range qs {
			out = append(out, q.ID)
		}
		return out
	}

	assert.Equal(t, []string{"q1", "q2", "q3", "q4", "q5"}, ids(e.FilterQuests(p, QuestFilter{})))
	assert.Equal(t, []string{"q2"}, ids(e.FilterQuests(p, QuestFilter{Category: models.CategoryMental})))
	assert.Equal(t, []string{"q1", "q4"}, ids(e.FilterQuests(p, QuestFilter{Difficulty: models.DifficultyEasy})))
	assert.Equal(t, []string{"q4"}, ids(e.FilterQuests(p, QuestFilter{Tag: "quick", HideCompleted: true})))
	assert.Empty(t, e.FilterQuests(p, QuestFilter{Category: models.CategoryDiscipline}))
}

func TestSummarize(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")
	p.Level = 4
	p.XP = 100
	p.ChapterXP = 600
	p.CurrentChapter = 2
	p.DailyStreak = 2
	p.BestStreak = 5
	p.CompletedQuestIDs = []string{"q1", "q2", "q3"}
	p.CategoryStats = map[models.Category]int{
		models.CategorySocial:   2,
		models.CategoryLearning: 2,
		models.CategoryHealth:   1,
	}

	s := e.Summarize(p)

	assert.Equal(t, "Explorer", s.Title)
	assert.Equal(t, 400, s.RequiredXP)
	assert.Equal(t, 25, s.LevelProgress)
	assert.Equal(t, "The Awakening", s.Chapter.Name)
	assert.Equal(t, 3, s.CompletedCount)
	assert.Equal(t, models.CategoryLearning, s.TopCategory, "ties go to the earlier category")

	s.CategoryStats[models.CategoryHealth] = 99
	assert.Equal(t, 1, p.CategoryStats[models.CategoryHealth])
}

func TestTopCategoryEmpty(t *testing.T) {
	assert.Equal(t, models.Category(""), TopCategory(nil))
	assert.Equal(t, models.Category(""), TopCategory(map[models.Category]int{models.CategoryHealth: 0}))
}

func TestAdoptQuestKeepsGeneratedXP(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")

	generated := models.Quest{ID: "generated_1_abc", Title: "Do a workout", Difficulty: models.DifficultyEasy,
		Impact: models.ImpactLow, Category: models.CategoryHealth, Duration: 45, Generated: true, XP: 50}
	q, err := e.AdoptQuest(p, generated)
	require.NoError(t, err)
	assert.True(t, q.Custom)
	assert.Equal(t, 50, q.XP)

	_, err = e.AdoptQuest(p, generated)
	assert.Error(t, err, "the same id cannot be adopted twice")

	res, err := e.CompleteQuest(p, q.ID, false, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, 50, res.XPGained)
}
