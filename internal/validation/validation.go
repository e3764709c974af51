// Package validation checks user input at the edges of the system
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"questforge/internal/models"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
	MaxTags              = 10
	MaxTagLength         = 30
	MaxUserIDLength      = 64
)

var (
	emailRegex  = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	userIDRegex = regexp.MustCompile(`^[A-Za-z0-9_\-.]+$`)
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks if a display name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateUserID checks the identifier used in URLs and storage keys
func ValidateUserID(id string) error {
	if id == "" {
		return ValidationError{Field: "user_id", Message: "user id is required"}
	}
	if len(id) > MaxUserIDLength {
		return ValidationError{Field: "user_id", Message: fmt.Sprintf("user id must be at most %d characters", MaxUserIDLength)}
	}
	if !userIDRegex.MatchString(id) {
		return ValidationError{Field: "user_id", Message: "user id may only contain letters, digits, '.', '-' and '_'"}
	}
	return nil
}

// ValidateQuestTitle checks the title of a custom quest
func ValidateQuestTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return ValidationError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength)}
	}
	return nil
}

// ValidateDescription checks the optional description of a custom quest
func ValidateDescription(desc string) error {
	if utf8.RuneCountInString(desc) > MaxDescriptionLength {
		return ValidationError{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength)}
	}
	return nil
}

// ParseDifficulty accepts only a known difficulty
func ParseDifficulty(s string) (models.Difficulty, error) {
	d := models.Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.IsValid() {
		return "", ValidationError{Field: "difficulty", Message: fmt.Sprintf("unknown difficulty %q", s)}
	}
	return d, nil
}

// ParseImpact accepts only a known impact
func ParseImpact(s string) (models.Impact, error) {
	i := models.Impact(strings.ToLower(strings.TrimSpace(s)))
	if !i.IsValid() {
		return "", ValidationError{Field: "impact", Message: fmt.Sprintf("unknown impact %q", s)}
	}
	return i, nil
}

// ParseCategory accepts only a known category
func ParseCategory(s string) (models.Category, error) {
	c := models.Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", s)}
	}
	return c, nil
}

// ParseTags splits a comma-separated list, trimming blanks and dropping
// empty and duplicate entries.
func ParseTags(raw string) ([]string, error) {
	tags := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || seen[tag] {
			continue
		}
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return nil, ValidationError{Field: "tags", Message: fmt.Sprintf("tag %q is longer than %d characters", tag, MaxTagLength)}
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	if len(tags) > MaxTags {
		return nil, ValidationError{Field: "tags", Message: fmt.Sprintf("at most %d tags are allowed", MaxTags)}
	}
	return tags, nil
}
