package service

import (
	"context"

	"questforge/internal/models"
)

// ProgressionStore persists progression records and quest history.
// Save must reject a record whose Version is stale with
// repository.ErrConcurrentUpdate.
type ProgressionStore interface {
	Load(ctx context.Context, userID string) (*models.Progression, error)
	Save(ctx context.Context, p *models.Progression, history ...models.HistoryEntry) error
	Replace(ctx context.Context, p *models.Progression, history []models.HistoryEntry) error
	History(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error)
	UserIDs(ctx context.Context) ([]string, error)
}

// ProfileStore persists player profiles
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	ReplaceProfile(ctx context.Context, profile *models.Profile) error
	ListProfiles(ctx context.Context) ([]models.Profile, error)
}

// Notifier is told about level-ups of players with a profile email
type Notifier interface {
	SendLevelUpEmail(ctx context.Context, toEmail, toName string, level int, title string) error
}
