package engine

import (
	"questforge/internal/models"
	"questforge/internal/progression"
)

// QuestFilter narrows a quest listing. Zero fields match everything.
type QuestFilter struct {
	Category      models.Category
	Difficulty    models.Difficulty
	Tag           string
	HideCompleted bool
}

// FilterQuests lists the record's quests matching f
func (e *Engine) FilterQuests(p *models.Progression, f QuestFilter) []models.Quest {
	out := []models.Quest{}
	for _, q := range e.AllQuests(p) {
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		if f.Difficulty != "" && q.Difficulty != f.Difficulty {
			continue
		}
		if f.Tag != "" && !q.HasTag(f.Tag) {
			continue
		}
		if f.HideCompleted && p.HasCompleted(q.ID) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// Summary is a read-only digest of a record for display
type Summary struct {
	Level          int                     `json:"level"`
	Title          string                  `json:"title"`
	XP             int                     `json:"xp"`
	RequiredXP     int                     `json:"required_xp"`
	LevelProgress  int                     `json:"level_progress"`
	TotalXPEarned  int                     `json:"total_xp_earned"`
	Chapter        progression.Chapter     `json:"chapter"`
	ChapterXP      int                     `json:"chapter_xp"`
	DailyStreak    int                     `json:"daily_streak"`
	BestStreak     int                     `json:"best_streak"`
	CompletedCount int                     `json:"completed_count"`
	CustomCount    int                     `json:"custom_count"`
	TopCategory    models.Category         `json:"top_category,omitempty"`
	CategoryStats  map[models.Category]int `json:"category_stats"`
}

// Summarize builds the display digest for p
func (e *Engine) Summarize(p *models.Progression) Summary {
	chapter, ok := progression.ChapterByID(p.CurrentChapter)
	if !ok {
		chapter = progression.ChapterForXP(p.ChapterXP)
	}
	stats := make(map[models.Category]int, len(p.CategoryStats))
	for k, v := range p.CategoryStats {
		stats[k] = v
	}
	return Summary{
		Level:          p.Level,
		Title:          progression.TitleForLevel(p.Level),
		XP:             p.XP,
		RequiredXP:     progression.RequiredXPForLevel(p.Level),
		LevelProgress:  progression.LevelProgress(p.Level, p.XP),
		TotalXPEarned:  p.TotalXPEarned,
		Chapter:        chapter,
		ChapterXP:      p.ChapterXP,
		DailyStreak:    p.DailyStreak,
		BestStreak:     p.BestStreak,
		CompletedCount: len(p.CompletedQuestIDs),
		CustomCount:    len(p.CustomQuests),
		TopCategory:    TopCategory(stats),
		CategoryStats:  stats,
	}
}

// TopCategory returns the category with the most completions. Ties go to the
// category listed first in models.Categories. Empty stats yield "".
func TopCategory(stats map[models.Category]int) models.Category {
	var top models.Category
	best := 0
	for _, c := range models.Categories {
		if n := stats[c]; n > best {
			top, best = c, n
		}
	}
	return top
}
