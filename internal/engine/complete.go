package engine

import (
	"fmt"

	"questforge/internal/models"
	"questforge/internal/progression"
)

// CompletionResult describes what a completion changed
type CompletionResult struct {
	Quest           models.Quest        `json:"quest"`
	XPGained        int                 `json:"xp_gained"`
	LeveledUp       bool                `json:"leveled_up"`
	OldLevel        int                 `json:"old_level"`
	NewLevel        int                 `json:"new_level"`
	StreakBonus     int                 `json:"streak_bonus"`
	ChallengeMode   bool                `json:"challenge_mode"`
	Chapter         progression.Chapter `json:"chapter"`
	ChapterAdvanced bool                `json:"chapter_advanced"`
	Streak          int                 `json:"streak"`
}

// CompleteQuest completes questID on today's date.
//
// In challenge mode the quest must be today's unfinished challenge; its XP is
// tripled and the challenge is marked done. On any error p is left exactly as
// it was.
func (e *Engine) CompleteQuest(p *models.Progression, questID string, challenge bool, today string) (*CompletionResult, error) {
	if p.HasCompleted(questID) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyCompleted, questID)
	}
	quest, ok := e.Quest(p, questID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownQuest, questID)
	}
	if challenge {
		if p.Challenge.Date != today || p.Challenge.QuestID != questID {
			return nil, fmt.Errorf("%w: %s", ErrNotTodaysChallenge, questID)
		}
		if p.Challenge.Completed {
			return nil, ErrChallengeCompleted
		}
	}

	next := p.Clone()
	res := &CompletionResult{
		Quest:         quest,
		OldLevel:      next.Level,
		ChallengeMode: challenge,
	}

	gained := quest.XP
	if challenge {
		gained *= ChallengeMultiplier
		next.Challenge.Completed = true
	}

	next.CompletedQuestIDs = append(next.CompletedQuestIDs, questID)

	if streak := progression.EvaluateStreak(next, today); streak.Bonus {
		res.StreakBonus = progression.StreakBonusXP
		gained += progression.StreakBonusXP
	}

	next.TotalXPEarned += gained
	oldChapter := next.CurrentChapter
	next.ChapterXP += gained
	chapter := progression.ChapterForXP(next.ChapterXP)
	next.CurrentChapter = chapter.ID

	next.Level, next.XP = progression.ApplyXP(next.Level, next.XP, gained)

	if next.CategoryStats == nil {
		next.CategoryStats = map[models.Category]int{}
	}
	next.CategoryStats[quest.Category]++

	*p = *next

	res.XPGained = gained
	res.NewLevel = p.Level
	res.LeveledUp = res.NewLevel > res.OldLevel
	res.Chapter = chapter
	res.ChapterAdvanced = chapter.ID != oldChapter
	res.Streak = p.DailyStreak
	return res, nil
}

// CompleteChallenge completes today's challenge quest in challenge mode,
// drawing the challenge first if none was drawn today.
func (e *Engine) CompleteChallenge(p *models.Progression, today string) (*CompletionResult, error) {
	sel := e.ChallengeQuest(p, today)
	if sel.QuestID == "" {
		return nil, ErrNoChallenge
	}
	return e.CompleteQuest(p, sel.QuestID, true, today)
}
