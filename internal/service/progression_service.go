package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"questforge/internal/engine"
	"questforge/internal/generator"
	"questforge/internal/models"
	"questforge/internal/progression"
	"questforge/internal/repository"
	"questforge/internal/validation"
)

const (
	DefaultMaxSaveRetries = 3
	// MaxGenerateCount caps one generate request
	MaxGenerateCount = 20
)

// ProgressionService runs each player operation as load, apply, save and
// retries when another writer saved the record in between.
type ProgressionService struct {
	engine       *engine.Engine
	generator    *generator.Generator
	store        ProgressionStore
	profiles     ProfileStore
	notifier     Notifier
	logger       *zap.Logger
	location     *time.Location
	now          func() time.Time
	maxRetries   int
	historyLimit int
}

// Option configures a ProgressionService
type Option func(*ProgressionService)

func WithLogger(logger *zap.Logger) Option {
	return func(s *ProgressionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLocation sets the time zone that decides the calendar day
func WithLocation(loc *time.Location) Option {
	return func(s *ProgressionService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *ProgressionService) { s.now = now }
}

func WithNotifier(n Notifier) Option {
	return func(s *ProgressionService) { s.notifier = n }
}

func WithMaxRetries(n int) Option {
	return func(s *ProgressionService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

func WithHistoryLimit(n int) Option {
	return func(s *ProgressionService) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// NewProgressionService creates a new progression service
func NewProgressionService(eng *engine.Engine, gen *generator.Generator, store ProgressionStore, profiles ProfileStore, opts ...Option) *ProgressionService {
	s := &ProgressionService{
		engine:       eng,
		generator:    gen,
		store:        store,
		profiles:     profiles,
		logger:       zap.NewNop(),
		location:     time.UTC,
		now:          time.Now,
		maxRetries:   DefaultMaxSaveRetries,
		historyLimit: repository.DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Engine returns the rules engine the service applies
func (s *ProgressionService) Engine() *engine.Engine {
	return s.engine
}

func (s *ProgressionService) today(now time.Time) string {
	return progression.DateOf(now, s.location)
}

// mutation changes p and reports whether it needs saving along with the
// history to append. It runs once per attempt on a freshly loaded record.
type mutation func(p *models.Progression, now time.Time) (save bool, history []models.HistoryEntry, err error)

func (s *ProgressionService) mutate(ctx context.Context, userID string, fn mutation) (*models.Progression, error) {
	if err := validation.ValidateUserID(userID); err != nil {
		return nil, err
	}
	for attempt := 1; ; attempt++ {
		p, err := s.store.Load(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to load progression: %w", err)
		}
		save, history, err := fn(p, s.now())
		if err != nil {
			return nil, err
		}
		if !save {
			return p, nil
		}

		err = s.store.Save(ctx, p, history...)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repository.ErrConcurrentUpdate) || attempt >= s.maxRetries {
			s.logger.Error("failed to save progression",
				zap.String("user_id", userID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return nil, fmt.Errorf("failed to save progression: %w", err)
		}
		s.logger.Warn("progression changed concurrently, retrying",
			zap.String("user_id", userID),
			zap.Int("attempt", attempt))
	}
}

func historyEntry(res *engine.CompletionResult, now time.Time) models.HistoryEntry {
	return models.HistoryEntry{
		QuestID:     res.Quest.ID,
		QuestTitle:  res.Quest.Title,
		Category:    res.Quest.Category,
		XPGained:    res.XPGained,
		Challenge:   res.ChallengeMode,
		CompletedAt: now.UTC(),
	}
}

// CompleteQuest completes a catalog or custom quest outside challenge mode
func (s *ProgressionService) CompleteQuest(ctx context.Context, userID, questID string) (*engine.CompletionResult, error) {
	var res *engine.CompletionResult
	_, err := s.mutate(ctx, userID, func(p *models.Progression, now time.Time) (bool, []models.HistoryEntry, error) {
		r, err := s.engine.CompleteQuest(p, questID, false, s.today(now))
		if err != nil {
			return false, nil, err
		}
		res = r
		return true, []models.HistoryEntry{historyEntry(r, now)}, nil
	})
	if err != nil {
		return nil, err
	}
	s.afterCompletion(ctx, userID, res)
	return res, nil
}

// CompleteChallenge completes today's challenge quest for triple XP
func (s *ProgressionService) CompleteChallenge(ctx context.Context, userID string) (*engine.CompletionResult, error) {
	var res *engine.CompletionResult
	_, err := s.mutate(ctx, userID, func(p *models.Progression, now time.Time) (bool, []models.HistoryEntry, error) {
		r, err := s.engine.CompleteChallenge(p, s.today(now))
		if err != nil {
			return false, nil, err
		}
		res = r
		return true, []models.HistoryEntry{historyEntry(r, now)}, nil
	})
	if err != nil {
		return nil, err
	}
	s.afterCompletion(ctx, userID, res)
	return res, nil
}

func (s *ProgressionService) afterCompletion(ctx context.Context, userID string, res *engine.CompletionResult) {
	s.logger.Info("quest completed",
		zap.String("user_id", userID),
		zap.String("quest_id", res.Quest.ID),
		zap.Int("xp_gained", res.XPGained),
		zap.Bool("challenge", res.ChallengeMode),
		zap.Int("streak", res.Streak))

	if !res.LeveledUp {
		return
	}
	s.logger.Info("level up",
		zap.String("user_id", userID),
		zap.Int("old_level", res.OldLevel),
		zap.Int("new_level", res.NewLevel))

	if s.notifier == nil || s.profiles == nil {
		return
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to load profile for level-up email", zap.String("user_id", userID), zap.Error(err))
		return
	}
	if profile == nil || profile.Email == "" {
		return
	}
	name := profile.DisplayName
	if name == "" {
		name = userID
	}
	// the completion is already saved, so a failed email is only logged
	if err := s.notifier.SendLevelUpEmail(ctx, profile.Email, name, res.NewLevel, progression.TitleForLevel(res.NewLevel)); err != nil {
		s.logger.Warn("failed to send level-up email", zap.String("user_id", userID), zap.Error(err))
	}
}

// DailyQuests returns today's daily quests, drawing them on the first call of the day
func (s *ProgressionService) DailyQuests(ctx context.Context, userID string) ([]models.Quest, error) {
	var ids []string
	p, err := s.mutate(ctx, userID, func(p *models.Progression, now time.Time) (bool, []models.HistoryEntry, error) {
		before := p.DailyQuests
		ids = s.engine.DailyQuestSet(p, s.today(now))
		return !sameDaily(before, p.DailyQuests), nil, nil
	})
	if err != nil {
		return nil, err
	}
	return s.engine.Quests(p, ids), nil
}

func sameDaily(a, b models.DailySelection) bool {
	return a.Date == b.Date && strings.Join(a.QuestIDs, ",") == strings.Join(b.QuestIDs, ",")
}

// ChallengeView is today's challenge as shown to the player
type ChallengeView struct {
	Date      string        `json:"date"`
	Quest     *models.Quest `json:"quest"`
	XP        int           `json:"xp"`
	Completed bool          `json:"completed"`
}

// Challenge returns today's challenge. Quest is nil when nothing was left to draw.
func (s *ProgressionService) Challenge(ctx context.Context, userID string) (*ChallengeView, error) {
	var sel models.ChallengeSelection
	p, err := s.mutate(ctx, userID, func(p *models.Progression, now time.Time) (bool, []models.HistoryEntry, error) {
		before := p.Challenge
		sel = s.engine.ChallengeQuest(p, s.today(now))
		return before != p.Challenge, nil, nil
	})
	if err != nil {
		return nil, err
	}

	// A challenge quest finished through the normal path can no longer earn the bonus
	view := &ChallengeView{Date: sel.Date, Completed: sel.Completed || (sel.QuestID != "" && p.HasCompleted(sel.QuestID))}
	if sel.QuestID != "" {
		if q, ok := s.engine.Quest(p, sel.QuestID); ok {
			view.Quest = &q
			view.XP = q.XP * engine.ChallengeMultiplier
		}
	}
	return view, nil
}

// AddCustomQuest validates and stores a player-authored quest
func (s *ProgressionService) AddCustomQuest(ctx context.Context, userID string, in engine.CustomQuestInput) (models.Quest, error) {
	var quest models.Quest
	_, err := s.mutate(ctx, userID, func(p *models.Progression, _ time.Time) (bool, []models.HistoryEntry, error) {
		q, err := s.engine.AddCustomQuest(p, in)
		if err != nil {
			return false, nil, err
		}
		quest = q
		return true, nil, nil
	})
	return quest, err
}

func (s *ProgressionService) DeleteCustomQuest(ctx context.Context, userID, questID string) error {
	_, err := s.mutate(ctx, userID, func(p *models.Progression, _ time.Time) (bool, []models.HistoryEntry, error) {
		if err := s.engine.DeleteCustomQuest(p, questID); err != nil {
			return false, nil, err
		}
		return true, nil, nil
	})
	return err
}

// GenerateRequest asks for generated quests
type GenerateRequest struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	// Tags is a comma-separated list added to every quest
	Tags string `json:"tags"`
	// Save stores the quests among the player's custom quests
	Save bool `json:"save"`
}

// Generate creates random quests and optionally keeps them for the player
func (s *ProgressionService) Generate(ctx context.Context, userID string, req GenerateRequest) ([]models.Quest, error) {
	var category models.Category
	if req.Category != "" {
		c, err := validation.ParseCategory(req.Category)
		if err != nil {
			return nil, err
		}
		category = c
	}
	tags, err := validation.ParseTags(req.Tags)
	if err != nil {
		return nil, err
	}
	count := req.Count
	if count <= 0 {
		count = 1
	}
	if count > MaxGenerateCount {
		return nil, validation.ValidationError{Field: "count", Message: fmt.Sprintf("at most %d quests can be generated at once", MaxGenerateCount)}
	}

	var quests []models.Quest
	switch {
	case len(tags) > 0:
		quests = s.generator.QuestsByTags(tags, count)
	case category != "":
		for i := 0; i < count; i++ {
			quests = append(quests, s.generator.RandomQuest(category))
		}
	default:
		quests = s.generator.DailyQuests(count)
	}

	if !req.Save {
		if err := validation.ValidateUserID(userID); err != nil {
			return nil, err
		}
		return quests, nil
	}

	kept := make([]models.Quest, 0, len(quests))
	_, err = s.mutate(ctx, userID, func(p *models.Progression, _ time.Time) (bool, []models.HistoryEntry, error) {
		kept = kept[:0]
		for _, q := range quests {
			adopted, err := s.engine.AdoptQuest(p, q)
			if err != nil {
				return false, nil, err
			}
			kept = append(kept, adopted)
		}
		return true, nil, nil
	})
	if err != nil {
		return nil, err
	}
	return kept, nil
}

// Progression returns the player's record without changing it
func (s *ProgressionService) Progression(ctx context.Context, userID string) (*models.Progression, error) {
	if err := validation.ValidateUserID(userID); err != nil {
		return nil, err
	}
	p, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load progression: %w", err)
	}
	return p, nil
}

func (s *ProgressionService) Summary(ctx context.Context, userID string) (engine.Summary, error) {
	p, err := s.Progression(ctx, userID)
	if err != nil {
		return engine.Summary{}, err
	}
	return s.engine.Summarize(p), nil
}

// Quests lists catalog and custom quests matching f
func (s *ProgressionService) Quests(ctx context.Context, userID string, f engine.QuestFilter) ([]models.Quest, error) {
	p, err := s.Progression(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.engine.FilterQuests(p, f), nil
}

// History lists recent completions, newest first. The limit is capped at the
// configured history limit.
func (s *ProgressionService) History(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	if err := validation.ValidateUserID(userID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	entries, err := s.store.History(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// Reset replaces the player's record with a fresh one and clears history
func (s *ProgressionService) Reset(ctx context.Context, userID string) error {
	if err := validation.ValidateUserID(userID); err != nil {
		return err
	}
	if err := s.store.Replace(ctx, models.NewProgression(userID), nil); err != nil {
		return fmt.Errorf("failed to reset progression: %w", err)
	}
	s.logger.Info("progression reset", zap.String("user_id", userID))
	return nil
}
