package engine

import (
	"fmt"
	"strings"

	"questforge/internal/models"
	"questforge/internal/validation"
)

// CustomQuestInput is raw user input for a new custom quest
type CustomQuestInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"`
	Impact      string `json:"impact"`
	Category    string `json:"category"`
	// Tags is a comma-separated list
	Tags string `json:"tags"`
}

// AddCustomQuest validates in and appends the resulting quest to p
func (e *Engine) AddCustomQuest(p *models.Progression, in CustomQuestInput) (models.Quest, error) {
	if err := validation.ValidateQuestTitle(in.Title); err != nil {
		return models.Quest{}, err
	}
	if err := validation.ValidateDescription(in.Description); err != nil {
		return models.Quest{}, err
	}
	difficulty, err := validation.ParseDifficulty(in.Difficulty)
	if err != nil {
		return models.Quest{}, err
	}
	impact, err := validation.ParseImpact(in.Impact)
	if err != nil {
		return models.Quest{}, err
	}
	category, err := validation.ParseCategory(in.Category)
	if err != nil {
		return models.Quest{}, err
	}
	tags, err := validation.ParseTags(in.Tags)
	if err != nil {
		return models.Quest{}, err
	}

	q := models.Quest{
		ID:          e.newID(),
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Difficulty:  difficulty,
		Impact:      impact,
		Category:    category,
		Tags:        tags,
		Custom:      true,
	}
	if _, exists := e.Quest(p, q.ID); exists {
		return models.Quest{}, fmt.Errorf("custom quest id %s already in use", q.ID)
	}

	p.CustomQuests = append(p.CustomQuests, q)
	q.XP = QuestReward(q)
	return q, nil
}

// DeleteCustomQuest removes a custom quest. Completed ids and category
// stats keep counting it.
func (e *Engine) DeleteCustomQuest(p *models.Progression, questID string) error {
	for i, q := range p.CustomQuests {
		if q.ID == questID {
			p.CustomQuests = append(p.CustomQuests[:i:i], p.CustomQuests[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownQuest, questID)
}

// AdoptQuest stores a generated quest among p's custom quests so it can be
// completed. The quest keeps the XP it was generated with.
func (e *Engine) AdoptQuest(p *models.Progression, q models.Quest) (models.Quest, error) {
	if q.ID == "" {
		return models.Quest{}, fmt.Errorf("%w: missing id", ErrUnknownQuest)
	}
	if _, exists := e.Quest(p, q.ID); exists {
		return models.Quest{}, fmt.Errorf("custom quest id %s already in use", q.ID)
	}
	if q.XP <= 0 {
		q.XP = QuestReward(q)
	}
	q.Custom = true
	q.Tags = append([]string{}, q.Tags...)
	p.CustomQuests = append(p.CustomQuests, q)
	return q, nil
}
