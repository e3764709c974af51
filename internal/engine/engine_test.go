package engine

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questforge/internal/catalog"
	"questforge/internal/models"
	"questforge/internal/progression"
	"questforge/internal/random"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]models.Quest{
		{ID: "q1", Title: "One", Difficulty: models.DifficultyEasy, Impact: models.ImpactLow, Category: models.CategoryHealth, Tags: []string{"quick"}},
		{ID: "q2", Title: "Two", Difficulty: models.DifficultyNormal, Impact: models.ImpactMedium, Category: models.CategoryMental},
		{ID: "q3", Title: "Three", Difficulty: models.DifficultyHard, Impact: models.ImpactHigh, Category: models.CategoryCreativity},
		{ID: "q4", Title: "Four", Difficulty: models.DifficultyEasy, Impact: models.ImpactMedium, Category: models.CategoryLearning, Tags: []string{"quick"}},
		{ID: "q5", Title: "Five", Difficulty: models.DifficultyNormal, Impact: models.ImpactLow, Category: models.CategorySocial},
	})
	require.NoError(t, err)
	return c
}

func newTestEngine(t *testing.T, values ...int) *Engine {
	t.Helper()
	n := 0
	return New(testCatalog(t), random.NewSequence(values...), WithIDFunc(func() string {
		n++
		return fmt.Sprintf("custom_%d", n)
	}))
}

func snapshot(t *testing.T, p *models.Progression) []byte {
	t.Helper()
	b, err := json.Marshal(p)
	require.NoError(t, err)
	return b
}

func assertInvariants(t *testing.T, p *models.Progression) {
	t.Helper()
	assert.GreaterOrEqual(t, p.Level, 1)
	assert.Less(t, p.XP, progression.RequiredXPForLevel(p.Level))
	assert.LessOrEqual(t, p.DailyStreak, p.BestStreak)
	seen := map[string]bool{}
	for _, id := range p.CompletedQuestIDs {
		assert.False(t, seen[id], "quest %s completed twice", id)
		seen[id] = true
	}
}

func TestCompleteQuest(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")

	res, err := e.CompleteQuest(p, "q2", false, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, 60, res.XPGained)
	assert.Equal(t, "q2", res.Quest.ID)
	assert.False(t, res.LeveledUp)
	assert.Equal(t, 1, res.OldLevel)
	assert.Equal(t, 1, res.NewLevel)
	assert.Zero(t, res.StreakBonus)
	assert.False(t, res.ChallengeMode)
	assert.Equal(t, 1, res.Streak)
	assert.Equal(t, 1, res.Chapter.ID)
	assert.False(t, res.ChapterAdvanced)

	want := models.NewProgression("u1")
	want.XP = 60
	want.TotalXPEarned = 60
	want.ChapterXP = 60
	want.DailyStreak = 1
	want.BestStreak = 1
	want.LastQuestDate = "2024-03-10"
	want.CompletedQuestIDs = []string{"q2"}
	want.CategoryStats = map[models.Category]int{models.CategoryMental: 1}

	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteQuestTwiceIsNoOp(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")

	_, err := e.CompleteQuest(p, "q1", false, "2024-03-10")
	require.NoError(t, err)
	after := snapshot(t, p)

	res, err := e.CompleteQuest(p, "q1", false, "2024-03-10")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Nil(t, res)
	assert.Equal(t, string(after), string(snapshot(t, p)))
}

func TestCompleteUnknownQuestLeavesRecord(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")
	before := snapshot(t, p)

	_, err := e.CompleteQuest(p, "nope", false, "2024-03-10")
	assert.ErrorIs(t, err, ErrUnknownQuest)
	assert.Equal(t, string(before), string(snapshot(t, p)))
}

func TestCompleteQuestMultiLevelJump(t *testing.T) {
	c, err := catalog.New([]models.Quest{
		{ID: "big", Title: "Big", Difficulty: "hard", Impact: "high", Category: "discipline", XP: 250},
		{ID: "huge", Title: "Huge", Difficulty: "hard", Impact: "high", Category: "discipline", XP: 1000},
	})
	require.NoError(t, err)
	e := New(c, random.NewSequence(0))

	p := models.NewProgression("u1")
	res, err := e.CompleteQuest(p, "big", false, "2024-03-10")
	require.NoError(t, err)

	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.OldLevel)
	assert.Equal(t, 2, res.NewLevel)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 150, p.XP)
	assert.Equal(t, 250, p.TotalXPEarned)
	assertInvariants(t, p)

	res, err = e.CompleteQuest(p, "huge", false, "2024-03-10")
	require.NoError(t, err)
	// 150+1000: level 2 takes 200, level 3 takes 300, level 4 takes 400, 250 left
	assert.Equal(t, 5, res.NewLevel)
	assert.Equal(t, 250, p.XP)
	assert.Equal(t, 3, p.CurrentChapter)
	assert.True(t, res.ChapterAdvanced)
	assertInvariants(t, p)
}

func TestCompleteQuestStreakBonus(t *testing.T) {
	tests := []struct {
		name       string
		streak     int
		wantStreak int
		wantBonus  int
	}{
		{"reaching three grants bonus", 2, 3, progression.StreakBonusXP},
		{"reaching four has none", 3, 4, 0},
		{"reaching five has none", 4, 5, 0},
		{"reaching six grants bonus", 5, 6, progression.StreakBonusXP},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			p := models.NewProgression("u1")
			p.DailyStreak = tt.streak
			p.BestStreak = tt.streak
			p.LastQuestDate = "2024-03-09"

			res, err := e.CompleteQuest(p, "q2", false, "2024-03-10")
			require.NoError(t, err)

			assert.Equal(t, tt.wantStreak, p.DailyStreak)
			assert.Equal(t, tt.wantBonus, res.StreakBonus)
			assert.Equal(t, 60+tt.wantBonus, res.XPGained)
			assert.Equal(t, 60+tt.wantBonus, p.TotalXPEarned)
		})
	}
}

func TestCompleteQuestSameDayKeepsStreak(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")

	_, err := e.CompleteQuest(p, "q1", false, "2024-03-10")
	require.NoError(t, err)
	_, err = e.CompleteQuest(p, "q2", false, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, 1, p.DailyStreak)
	assert.Equal(t, 2, p.CategoryStats[models.CategoryHealth]+p.CategoryStats[models.CategoryMental])
}

func TestCompleteQuestChapterAdvance(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")
	p.ChapterXP = 480

	res, err := e.CompleteQuest(p, "q2", false, "2024-03-10")
	require.NoError(t, err)

	assert.Equal(t, 540, p.ChapterXP)
	assert.Equal(t, 2, p.CurrentChapter)
	assert.True(t, res.ChapterAdvanced)
	assert.Equal(t, "The Awakening", res.Chapter.Name)
}

func TestCompleteChallenge(t *testing.T) {
	e := newTestEngine(t, 2)
	p := models.NewProgression("u1")

	sel := e.ChallengeQuest(p, "2024-03-10")
	require.Equal(t, "q3", sel.QuestID)

	t.Run("wrong quest is refused", func(t *testing.T) {
		before := snapshot(t, p)
		_, err := e.CompleteQuest(p, "q1", true, "2024-03-10")
		assert.ErrorIs(t, err, ErrNotTodaysChallenge)
		assert.Equal(t, string(before), string(snapshot(t, p)))
	})

	t.Run("stale challenge is refused", func(t *testing.T) {
		_, err := e.CompleteQuest(p, "q3", true, "2024-03-11")
		assert.ErrorIs(t, err, ErrNotTodaysChallenge)
	})

	res, err := e.CompleteChallenge(p, "2024-03-10")
	require.NoError(t, err)

	assert.True(t, res.ChallengeMode)
	assert.Equal(t, 140*ChallengeMultiplier, res.XPGained)
	assert.True(t, p.Challenge.Completed)
	assert.Equal(t, 3, p.Level)
	assert.Equal(t, 120, p.XP)
	assertInvariants(t, p)

	_, err = e.CompleteChallenge(p, "2024-03-10")
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestCompleteChallengeWithEmptyPool(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")
	p.CompletedQuestIDs = []string{"q1", "q2", "q3", "q4", "q5"}

	_, err := e.CompleteChallenge(p, "2024-03-10")
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestCategoryStatsConsistency(t *testing.T) {
	e := New(catalog.Default(), random.NewSeeded(1))
	p := models.NewProgression("u1")

	days := []string{"2024-03-01", "2024-03-02", "2024-03-04", "2024-03-05"}
	all := e.Catalog().IDs()
	for i, id := range all {
		_, err := e.CompleteQuest(p, id, false, days[i%len(days)])
		require.NoError(t, err)
		assertInvariants(t, p)

		sum := 0
		for _, n := range p.CategoryStats {
			sum += n
		}
		require.Equal(t, i+1, sum)
	}
	assert.Len(t, p.CompletedQuestIDs, len(all))
}

func TestAllQuestsAnnotatesXP(t *testing.T) {
	e := newTestEngine(t)
	p := models.NewProgression("u1")
	_, err := e.AddCustomQuest(p, CustomQuestInput{Title: "Mine", Difficulty: "hard", Impact: "low", Category: "discipline"})
	require.NoError(t, err)

	quests := e.AllQuests(p)
	require.Len(t, quests, 6)

	want := map[string]int{"q1": 20, "q2": 60, "q3": 140, "q4": 30, "q5": 40, "custom_1": 70}
	for _, q := range quests {
		assert.Equal(t, want[q.ID], q.XP, "xp of %s", q.ID)
	}
	assert.True(t, quests[5].Custom)
	assert.Zero(t, p.CustomQuests[0].XP, "stored custom quests keep derived xp implicit")
}
