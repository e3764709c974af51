package models

import "time"

// DateLayout is the calendar-date format used for streak and daily bookkeeping
const DateLayout = "2006-01-02"

// DailySelection caches the daily quest draw for one calendar day
type DailySelection struct {
	Date     string   `json:"date"`
	QuestIDs []string `json:"quest_ids"`
}

// ChallengeSelection caches the daily "no excuse" challenge draw.
// An empty QuestID means no quest was available that day.
type ChallengeSelection struct {
	Date      string `json:"date"`
	QuestID   string `json:"quest_id"`
	Completed bool   `json:"completed"`
}

// Progression is a player's whole progression record
type Progression struct {
	UserID         string `json:"user_id"`
	XP             int    `json:"xp"`
	Level          int    `json:"level"`
	TotalXPEarned  int    `json:"total_xp_earned"`
	ChapterXP      int    `json:"chapter_xp"`
	CurrentChapter int    `json:"current_chapter"`

	DailyStreak   int    `json:"daily_streak"`
	BestStreak    int    `json:"best_streak"`
	LastQuestDate string `json:"last_quest_date"`

	CompletedQuestIDs []string           `json:"completed_quest_ids"`
	CustomQuests      []Quest            `json:"custom_quests"`
	DailyQuests       DailySelection     `json:"daily_quests"`
	Challenge         ChallengeSelection `json:"challenge"`
	CategoryStats     map[Category]int   `json:"category_stats"`

	// Version is bumped by every successful save and guards against lost updates
	Version int64 `json:"version"`
}

// NewProgression returns the default record for a player who has never played
func NewProgression(userID string) *Progression {
	return &Progression{
		UserID:            userID,
		Level:             1,
		CurrentChapter:    1,
		CompletedQuestIDs: []string{},
		CustomQuests:      []Quest{},
		DailyQuests:       DailySelection{QuestIDs: []string{}},
		CategoryStats:     map[Category]int{},
	}
}

// HasCompleted reports whether questID was already completed
func (p *Progression) HasCompleted(questID string) bool {
	for _, id := range p.CompletedQuestIDs {
		if id == questID {
			return true
		}
	}
	return false
}

// CustomQuest returns the player's custom quest with the given id
func (p *Progression) CustomQuest(questID string) (Quest, bool) {
	for _, q := range p.CustomQuests {
		if q.ID == questID {
			return q, true
		}
	}
	return Quest{}, false
}

// Clone returns a deep copy of the record
func (p *Progression) Clone() *Progression {
	c := *p
	c.CompletedQuestIDs = append([]string{}, p.CompletedQuestIDs...)
	c.CustomQuests = make([]Quest, len(p.CustomQuests))
	for i, q := range p.CustomQuests {
		q.Tags = append([]string{}, q.Tags...)
		c.CustomQuests[i] = q
	}
	c.DailyQuests.QuestIDs = append([]string{}, p.DailyQuests.QuestIDs...)
	c.CategoryStats = make(map[Category]int, len(p.CategoryStats))
	for k, v := range p.CategoryStats {
		c.CategoryStats[k] = v
	}
	return &c
}

// HistoryEntry records one completed quest
type HistoryEntry struct {
	QuestID     string    `json:"quest_id"`
	QuestTitle  string    `json:"quest_title"`
	Category    Category  `json:"category"`
	XPGained    int       `json:"xp_gained"`
	Challenge   bool      `json:"challenge"`
	CompletedAt time.Time `json:"completed_at"`
}

// Profile holds contact details used for notifications
type Profile struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}
