// Package memory is an in-process store with the same semantics as the SQL
// repositories. It backs tests and the CLI's --memory mode.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"questforge/internal/models"
	"questforge/internal/repository"
)

type Store struct {
	mu           sync.RWMutex
	progressions map[string]*models.Progression
	history      map[string][]models.HistoryEntry
	profiles     map[string]models.Profile
}

func New() *Store {
	return &Store{
		progressions: make(map[string]*models.Progression),
		history:      make(map[string][]models.HistoryEntry),
		profiles:     make(map[string]models.Profile),
	}
}

// Load returns a copy of the stored record, or a fresh version 0 record
func (s *Store) Load(_ context.Context, userID string) (*models.Progression, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.progressions[userID]
	if !ok {
		return models.NewProgression(userID), nil
	}
	return p.Clone(), nil
}

// Save stores a copy of p if p.Version matches, then bumps p.Version
func (s *Store) Save(_ context.Context, p *models.Progression, history ...models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if stored, ok := s.progressions[p.UserID]; ok {
		current = stored.Version
	}
	if current != p.Version {
		return repository.ErrConcurrentUpdate
	}

	stored := p.Clone()
	stored.Version = p.Version + 1
	s.progressions[p.UserID] = stored
	s.history[p.UserID] = append(s.history[p.UserID], history...)
	p.Version = stored.Version
	return nil
}

// Replace overwrites the record and history regardless of version
func (s *Store) Replace(_ context.Context, p *models.Progression, history []models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	if stored, ok := s.progressions[p.UserID]; ok {
		current = stored.Version
	}
	stored := p.Clone()
	stored.Version = current + 1
	s.progressions[p.UserID] = stored
	s.history[p.UserID] = append([]models.HistoryEntry(nil), history...)
	p.Version = stored.Version
	return nil
}

// History lists the user's completions, newest first
func (s *Store) History(_ context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = repository.DefaultHistoryLimit
	}

	s.mu.RLock()
	entries := s.history[userID]
	out := make([]models.HistoryEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
	}
	s.mu.RUnlock()

	// entries are reversed first so equal timestamps keep newest-insert-first
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UserIDs lists every user with a stored record
func (s *Store) UserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.progressions))
	for id := range s.progressions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// GetProfile returns nil when the user has no profile
func (s *Store) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (s *Store) UpsertProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *Store) ReplaceProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile.UserID] = *profile
	return nil
}

// ListProfiles returns every profile ordered by user id
func (s *Store) ListProfiles(_ context.Context) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}
