package progression

import (
	"time"

	"questforge/internal/models"
)

const (
	// StreakBonusInterval grants a bonus on every Nth consecutive day
	StreakBonusInterval = 3
	// StreakBonusXP is the flat XP added to the quest that triggers a bonus
	StreakBonusXP = 50
)

// StreakResult reports what a completion did to the streak
type StreakResult struct {
	Continued bool
	Bonus     bool
}

// EvaluateStreak updates the streak fields of p for a completion on today.
// Several completions on one day count once.
func EvaluateStreak(p *models.Progression, today string) StreakResult {
	if p.LastQuestDate == "" {
		p.DailyStreak = 1
		p.LastQuestDate = today
		raiseBest(p)
		return StreakResult{Continued: true}
	}

	if p.LastQuestDate == today {
		return StreakResult{}
	}

	if days, ok := DaysBetween(p.LastQuestDate, today); ok && days == 1 {
		p.DailyStreak++
		p.LastQuestDate = today
		raiseBest(p)
		return StreakResult{Continued: true, Bonus: p.DailyStreak%StreakBonusInterval == 0}
	}

	// Gap of two or more days, a date in the past, or an unreadable date
	p.DailyStreak = 1
	p.LastQuestDate = today
	raiseBest(p)
	return StreakResult{Continued: true}
}

func raiseBest(p *models.Progression) {
	if p.DailyStreak > p.BestStreak {
		p.BestStreak = p.DailyStreak
	}
}

// DaysBetween returns the number of calendar days from a to b. It is negative
// when b is before a.
func DaysBetween(a, b string) (int, bool) {
	from, err := time.Parse(models.DateLayout, a)
	if err != nil {
		return 0, false
	}
	to, err := time.Parse(models.DateLayout, b)
	if err != nil {
		return 0, false
	}
	return int(to.Sub(from).Hours() / 24), true
}

// DateOf formats t as a calendar date in loc
func DateOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(models.DateLayout)
}
