package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"questforge/internal/models"
)

// BackupFormatVersion is written to every export and required on import
const BackupFormatVersion = "1.0"

// exportHistoryLimit is large enough to take a user's whole history
const exportHistoryLimit = 1 << 30

// BackupData represents the complete backup structure
type BackupData struct {
	Version      string                           `json:"version"`
	ExportedAt   time.Time                        `json:"exported_at"`
	DatabaseType string                           `json:"database_type"`
	Profiles     []models.Profile                 `json:"profiles"`
	Progressions []*models.Progression            `json:"progressions"`
	History      map[string][]models.HistoryEntry `json:"history"`
}

// BackupService handles backup and restore of every player's data
type BackupService struct {
	progressions ProgressionStore
	profiles     ProfileStore
	databaseType string
	logger       *zap.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(progressions ProgressionStore, profiles ProfileStore, databaseType string, logger *zap.Logger) *BackupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupService{
		progressions: progressions,
		profiles:     profiles,
		databaseType: databaseType,
		logger:       logger,
	}
}

// Export writes a backup of every player as indented JSON
func (s *BackupService) Export(ctx context.Context, w io.Writer) error {
	backup := &BackupData{
		Version:      BackupFormatVersion,
		ExportedAt:   time.Now().UTC(),
		DatabaseType: s.databaseType,
		History:      map[string][]models.HistoryEntry{},
	}

	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return fmt.Errorf("failed to export profiles: %w", err)
	}
	backup.Profiles = profiles

	ids, err := s.progressions.UserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	backup.Progressions = make([]*models.Progression, 0, len(ids))
	for _, id := range ids {
		p, err := s.progressions.Load(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to export progression of %s: %w", id, err)
		}
		backup.Progressions = append(backup.Progressions, p)

		history, err := s.progressions.History(ctx, id, exportHistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to export history of %s: %w", id, err)
		}
		if len(history) > 0 {
			backup.History[id] = history
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	s.logger.Info("backup exported",
		zap.Int("profiles", len(backup.Profiles)),
		zap.Int("progressions", len(backup.Progressions)))
	return nil
}

// ExportToFile writes a backup to path
func (s *BackupService) ExportToFile(ctx context.Context, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := s.Export(ctx, file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Import restores a backup. Every player in the backup has their record,
// profile and history replaced; other players are left alone.
func (s *BackupService) Import(ctx context.Context, r io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	if backup.Version != BackupFormatVersion {
		return fmt.Errorf("unsupported backup version %q", backup.Version)
	}

	s.logger.Info("importing backup",
		zap.String("version", backup.Version),
		zap.Time("exported_at", backup.ExportedAt),
		zap.String("database_type", backup.DatabaseType))

	for i := range backup.Profiles {
		if err := s.profiles.ReplaceProfile(ctx, &backup.Profiles[i]); err != nil {
			return fmt.Errorf("failed to import profile %s: %w", backup.Profiles[i].UserID, err)
		}
	}

	for _, p := range backup.Progressions {
		if p == nil || p.UserID == "" {
			return fmt.Errorf("backup contains a progression without user id")
		}
		normalize(p)

		// exported newest first, stored oldest first
		newestFirst := backup.History[p.UserID]
		history := make([]models.HistoryEntry, 0, len(newestFirst))
		for i := len(newestFirst) - 1; i >= 0; i-- {
			history = append(history, newestFirst[i])
		}
		if err := s.progressions.Replace(ctx, p, history); err != nil {
			return fmt.Errorf("failed to import progression of %s: %w", p.UserID, err)
		}
	}

	s.logger.Info("backup imported",
		zap.Int("profiles", len(backup.Profiles)),
		zap.Int("progressions", len(backup.Progressions)))
	return nil
}

// ImportFromFile restores a backup from path
func (s *BackupService) ImportFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.Import(ctx, file)
}

// normalize fills collections a hand-edited backup may have left out
func normalize(p *models.Progression) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.CurrentChapter < 1 {
		p.CurrentChapter = 1
	}
	if p.CompletedQuestIDs == nil {
		p.CompletedQuestIDs = []string{}
	}
	if p.CustomQuests == nil {
		p.CustomQuests = []models.Quest{}
	}
	for i := range p.CustomQuests {
		p.CustomQuests[i].Custom = true
		if p.CustomQuests[i].Tags == nil {
			p.CustomQuests[i].Tags = []string{}
		}
	}
	if p.DailyQuests.QuestIDs == nil {
		p.DailyQuests.QuestIDs = []string{}
	}
	if p.CategoryStats == nil {
		p.CategoryStats = map[models.Category]int{}
	}
}
