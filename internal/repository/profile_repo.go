package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"questforge/internal/database"
	"questforge/internal/models"
)

// ProfileRepository handles database operations for player profiles
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfile retrieves a profile, returning nil when none exists
func (r *ProfileRepository) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	query := "SELECT user_id, display_name, email, created_at FROM profiles WHERE user_id = ?"
	profile := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.DisplayName,
		&profile.Email,
		&profile.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	profile.CreatedAt = profile.CreatedAt.UTC()
	return profile, nil
}

// UpsertProfile creates the profile or updates its name and email.
// CreatedAt is kept from the first write.
func (r *ProfileRepository) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		insert := tx.GetDialect().IgnoreConflicts(
			"INSERT INTO profiles (user_id, display_name, email, created_at) VALUES (?, ?, ?, ?)")
		if _, err := tx.ExecContext(ctx, insert, profile.UserID, profile.DisplayName, profile.Email, profile.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE profiles SET display_name = ?, email = ? WHERE user_id = ?",
			profile.DisplayName, profile.Email, profile.UserID); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return nil
	})
}

// ReplaceProfile writes profile as-is, including CreatedAt
func (r *ProfileRepository) ReplaceProfile(ctx context.Context, profile *models.Profile) error {
	return r.db.WithTx(ctx, func(tx *database.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM profiles WHERE user_id = ?", profile.UserID); err != nil {
			return fmt.Errorf("failed to clear profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO profiles (user_id, display_name, email, created_at) VALUES (?, ?, ?, ?)",
			profile.UserID, profile.DisplayName, profile.Email, profile.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}
		return nil
	})
}

// ListProfiles returns every profile ordered by user id
func (r *ProfileRepository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT user_id, display_name, email, created_at FROM profiles ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.Profile{}
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(&p.UserID, &p.DisplayName, &p.Email, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
