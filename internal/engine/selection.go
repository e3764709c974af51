package engine

import (
	"questforge/internal/models"
)

// DailyQuestSet returns today's daily quest ids, drawing a new set when the
// cached one is from another day or has the wrong size.
//
// The draw takes up to the daily count of uncompleted catalog quests without
// replacement. When no more than that remain, all of them are returned in
// catalog order so repeated calls agree.
func (e *Engine) DailyQuestSet(p *models.Progression, today string) []string {
	if p.DailyQuests.Date == today && len(p.DailyQuests.QuestIDs) == e.dailyCount {
		return append([]string(nil), p.DailyQuests.QuestIDs...)
	}

	pool := e.uncompleted(p)
	if len(pool) > e.dailyCount {
		// partial Fisher-Yates: the first dailyCount slots end up as a uniform sample
		for i := 0; i < e.dailyCount; i++ {
			j := i + e.rng.Intn(len(pool)-i)
			pool[i], pool[j] = pool[j], pool[i]
		}
		pool = pool[:e.dailyCount]
	}
	if pool == nil {
		pool = []string{}
	}

	p.DailyQuests = models.DailySelection{Date: today, QuestIDs: pool}
	return append([]string(nil), pool...)
}

// ChallengeQuest returns today's challenge selection, drawing one uncompleted
// catalog quest if none was drawn today. An empty QuestID means nothing was
// left to draw; that outcome is cached for the day too.
func (e *Engine) ChallengeQuest(p *models.Progression, today string) models.ChallengeSelection {
	if p.Challenge.Date == today {
		return p.Challenge
	}

	sel := models.ChallengeSelection{Date: today}
	if pool := e.uncompleted(p); len(pool) > 0 {
		sel.QuestID = pool[e.rng.Intn(len(pool))]
	}
	p.Challenge = sel
	return sel
}
