package service

import (
	"context"
	"fmt"
	"strings"

	"questforge/internal/models"
	"questforge/internal/validation"
)

// ProfileService manages the contact details used for notifications
type ProfileService struct {
	profiles ProfileStore
}

// NewProfileService creates a new profile service
func NewProfileService(profiles ProfileStore) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Profile returns the player's profile, or nil when none was set
func (s *ProfileService) Profile(ctx context.Context, userID string) (*models.Profile, error) {
	if err := validation.ValidateUserID(userID); err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile sets the display name and email. An empty email turns
// notifications off.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID, displayName, email string) (*models.Profile, error) {
	if err := validation.ValidateUserID(userID); err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	email = strings.TrimSpace(email)
	if displayName != "" {
		if err := validation.ValidateName(displayName); err != nil {
			return nil, err
		}
	}
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, err
		}
	}

	profile := &models.Profile{UserID: userID, DisplayName: displayName, Email: email}
	if err := s.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return s.Profile(ctx, userID)
}
