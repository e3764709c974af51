package progression

import (
	"testing"

	"questforge/internal/models"
)

func TestRequiredXPForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 200},
		{10, 1000},
	}
	for _, tt := range tests {
		if got := RequiredXPForLevel(tt.level); got != tt.want {
			t.Errorf("RequiredXPForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestQuestXP(t *testing.T) {
	tests := []struct {
		name       string
		difficulty models.Difficulty
		impact     models.Impact
		want       int
	}{
		{"easy low", models.DifficultyEasy, models.ImpactLow, 20},
		{"easy medium", models.DifficultyEasy, models.ImpactMedium, 30},
		{"easy high", models.DifficultyEasy, models.ImpactHigh, 40},
		{"normal low", models.DifficultyNormal, models.ImpactLow, 40},
		{"normal medium", models.DifficultyNormal, models.ImpactMedium, 60},
		{"normal high", models.DifficultyNormal, models.ImpactHigh, 80},
		{"hard low", models.DifficultyHard, models.ImpactLow, 70},
		{"hard medium", models.DifficultyHard, models.ImpactMedium, 105},
		{"hard high", models.DifficultyHard, models.ImpactHigh, 140},
		{"unknown difficulty falls back to normal", "legendary", models.ImpactLow, 40},
		{"unknown impact falls back to medium", models.DifficultyHard, "", 105},
		{"both unknown", "x", "y", 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := QuestXP(tt.difficulty, tt.impact); got != tt.want {
				t.Errorf("QuestXP(%q, %q) = %d, want %d", tt.difficulty, tt.impact, got, tt.want)
			}
		})
	}
}

func TestApplyXP(t *testing.T) {
	tests := []struct {
		name      string
		level     int
		xp        int
		gain      int
		wantLevel int
		wantXP    int
	}{
		{"no level up", 1, 0, 60, 1, 60},
		{"exact threshold", 1, 40, 60, 2, 0},
		{"multi-level jump stops at level two", 1, 0, 250, 2, 150},
		{"crosses two levels", 1, 0, 300, 3, 0},
		{"zero gain", 3, 120, 0, 3, 120},
		{"level below one is clamped", 0, 0, 50, 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLevel, gotXP := ApplyXP(tt.level, tt.xp, tt.gain)
			if gotLevel != tt.wantLevel || gotXP != tt.wantXP {
				t.Errorf("ApplyXP(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.level, tt.xp, tt.gain, gotLevel, gotXP, tt.wantLevel, tt.wantXP)
			}
			if gotXP >= RequiredXPForLevel(gotLevel) {
				t.Errorf("xp %d not below requirement %d for level %d", gotXP, RequiredXPForLevel(gotLevel), gotLevel)
			}
		})
	}
}

func TestApplyXPMonotonic(t *testing.T) {
	level, xp := 1, 0
	for gain := 0; gain < 2000; gain += 37 {
		newLevel, newXP := ApplyXP(level, xp, gain)
		if newLevel < level {
			t.Fatalf("level decreased from %d to %d after gain %d", level, newLevel, gain)
		}
		if newXP >= RequiredXPForLevel(newLevel) {
			t.Fatalf("xp %d not below requirement for level %d", newXP, newLevel)
		}
		level, xp = newLevel, newXP
	}
}

func TestLevelProgress(t *testing.T) {
	tests := []struct {
		level, xp, want int
	}{
		{1, 0, 0},
		{1, 50, 50},
		{2, 50, 25},
		{3, 100, 33},
		{1, 500, 100},
	}
	for _, tt := range tests {
		if got := LevelProgress(tt.level, tt.xp); got != tt.want {
			t.Errorf("LevelProgress(%d, %d) = %d, want %d", tt.level, tt.xp, got, tt.want)
		}
	}
}

func TestTitleForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{0, "Apprentice"},
		{1, "Apprentice"},
		{3, "Apprentice"},
		{4, "Explorer"},
		{6, "Explorer"},
		{7, "Builder"},
		{10, "Builder"},
		{11, "Fire Master"},
		{50, "Fire Master"},
	}
	for _, tt := range tests {
		if got := TitleForLevel(tt.level); got != tt.want {
			t.Errorf("TitleForLevel(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

// The displayed chapter is one ahead of the last threshold met and stays on
// the last chapter past the top threshold.
func TestChapterForXPLookahead(t *testing.T) {
	tests := []struct {
		chapterXP int
		want      int
	}{
		{0, 1},
		{499, 1},
		{500, 2},
		{999, 2},
		{1000, 3},
		{2000, 4},
		{4999, 4},
		{5000, 4},
		{100000, 4},
	}
	for _, tt := range tests {
		if got := ChapterForXP(tt.chapterXP).ID; got != tt.want {
			t.Errorf("ChapterForXP(%d) = chapter %d, want chapter %d", tt.chapterXP, got, tt.want)
		}
	}
}

func TestChapterByID(t *testing.T) {
	c, ok := ChapterByID(3)
	if !ok || c.Name != "The Forge" {
		t.Errorf("ChapterByID(3) = %+v, %v", c, ok)
	}
	if _, ok := ChapterByID(9); ok {
		t.Error("ChapterByID(9) should not exist")
	}
}

func TestEvaluateStreak(t *testing.T) {
	tests := []struct {
		name       string
		last       string
		streak     int
		best       int
		today      string
		wantStreak int
		wantBest   int
		wantLast   string
		want       StreakResult
	}{
		{"first completion", "", 0, 0, "2024-03-10", 1, 1, "2024-03-10", StreakResult{Continued: true}},
		{"same day", "2024-03-10", 2, 4, "2024-03-10", 2, 4, "2024-03-10", StreakResult{}},
		{"next day", "2024-03-10", 1, 1, "2024-03-11", 2, 2, "2024-03-11", StreakResult{Continued: true}},
		{"third day bonus", "2024-03-10", 2, 2, "2024-03-11", 3, 3, "2024-03-11", StreakResult{Continued: true, Bonus: true}},
		{"fourth day no bonus", "2024-03-10", 3, 3, "2024-03-11", 4, 4, "2024-03-11", StreakResult{Continued: true}},
		{"fifth day no bonus", "2024-03-10", 4, 4, "2024-03-11", 5, 5, "2024-03-11", StreakResult{Continued: true}},
		{"sixth day bonus", "2024-03-10", 5, 5, "2024-03-11", 6, 6, "2024-03-11", StreakResult{Continued: true, Bonus: true}},
		{"month boundary", "2024-02-29", 1, 1, "2024-03-01", 2, 2, "2024-03-01", StreakResult{Continued: true}},
		{"gap resets", "2024-03-10", 5, 5, "2024-03-12", 1, 5, "2024-03-12", StreakResult{Continued: true}},
		{"date in the past resets", "2024-03-10", 5, 7, "2024-03-09", 1, 7, "2024-03-09", StreakResult{Continued: true}},
		{"unreadable date resets", "10/03/2024", 5, 7, "2024-03-11", 1, 7, "2024-03-11", StreakResult{Continued: true}},
		{"best kept below current", "2024-03-10", 8, 3, "2024-03-11", 9, 9, "2024-03-11", StreakResult{Continued: true, Bonus: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := models.NewProgression("u1")
			p.LastQuestDate = tt.last
			p.DailyStreak = tt.streak
			p.BestStreak = tt.best

			got := EvaluateStreak(p, tt.today)
			if got != tt.want {
				t.Errorf("EvaluateStreak() = %+v, want %+v", got, tt.want)
			}
			if p.DailyStreak != tt.wantStreak {
				t.Errorf("DailyStreak = %d, want %d", p.DailyStreak, tt.wantStreak)
			}
			if p.BestStreak != tt.wantBest {
				t.Errorf("BestStreak = %d, want %d", p.BestStreak, tt.wantBest)
			}
			if p.LastQuestDate != tt.wantLast {
				t.Errorf("LastQuestDate = %q, want %q", p.LastQuestDate, tt.wantLast)
			}
			if p.DailyStreak > p.BestStreak {
				t.Errorf("DailyStreak %d exceeds BestStreak %d", p.DailyStreak, p.BestStreak)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	if d, ok := DaysBetween("2024-12-31", "2025-01-01"); !ok || d != 1 {
		t.Errorf("DaysBetween across year = %d, %v", d, ok)
	}
	if d, ok := DaysBetween("2024-03-10", "2024-03-08"); !ok || d != -2 {
		t.Errorf("DaysBetween backwards = %d, %v", d, ok)
	}
	if _, ok := DaysBetween("bad", "2024-03-08"); ok {
		t.Error("DaysBetween should reject unreadable dates")
	}
}
