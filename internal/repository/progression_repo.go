package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"questforge/internal/database"
	"questforge/internal/models"
)

// ProgressionRepository stores progression records and quest history
type ProgressionRepository struct {
	db *database.DB
}

// NewProgressionRepository creates a new progression repository
func NewProgressionRepository(db *database.DB) *ProgressionRepository {
	return &ProgressionRepository{db: db}
}

// Load returns the user's record, or a fresh record with version 0 when the
// user has never saved one.
func (r *ProgressionRepository) Load(ctx context.Context, userID string) (*models.Progression, error) {
	return loadProgression(ctx, r.db, userID)
}

func loadProgression(ctx context.Context, q database.DBTX, userID string) (*models.Progression, error) {
	query := `
		SELECT xp, level, total_xp_earned, chapter_xp, current_chapter,
			daily_streak, best_streak, last_quest_date,
			daily_quests_date, daily_quest_ids,
			challenge_date, challenge_quest_id, challenge_completed, version
		FROM progressions
		WHERE user_id = ?
	`
	p := models.NewProgression(userID)
	var dailyIDs string
	err := q.QueryRowContext(ctx, query, userID).Scan(
		&p.XP,
		&p.Level,
		&p.TotalXPEarned,
		&p.ChapterXP,
		&p.CurrentChapter,
		&p.DailyStreak,
		&p.BestStreak,
		&p.LastQuestDate,
		&p.DailyQuests.Date,
		&dailyIDs,
		&p.Challenge.Date,
		&p.Challenge.QuestID,
		&p.Challenge.Completed,
		&p.Version,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load progression: %w", err)
	}
	p.DailyQuests.QuestIDs = splitIDs(dailyIDs)

	if p.CompletedQuestIDs, err = loadCompleted(ctx, q, userID); err != nil {
		return nil, err
	}
	if p.CustomQuests, err = loadCustomQuests(ctx, q, userID); err != nil {
		return nil, err
	}
	if p.CategoryStats, err = loadCategoryStats(ctx, q, userID); err != nil {
		return nil, err
	}
	return p, nil
}

func loadCompleted(ctx context.Context, q database.DBTX, userID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, "SELECT quest_id FROM completed_quests WHERE user_id = ? ORDER BY sort_order", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed quests: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan completed quest: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func loadCustomQuests(ctx context.Context, q database.DBTX, userID string) ([]models.Quest, error) {
	query := `
		SELECT quest_id, title, description, difficulty, impact, category, tags, duration, xp, generated
		FROM custom_quests
		WHERE user_id = ?
		ORDER BY sort_order
	`
	rows, err := q.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom quests: %w", err)
	}
	defer rows.Close()

	quests := []models.Quest{}
	for rows.Next() {
		var quest models.Quest
		var tags string
		if err := rows.Scan(
			&quest.ID,
			&quest.Title,
			&quest.Description,
			&quest.Difficulty,
			&quest.Impact,
			&quest.Category,
			&tags,
			&quest.Duration,
			&quest.XP,
			&quest.Generated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan custom quest: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &quest.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags of %s: %w", quest.ID, err)
		}
		if quest.Tags == nil {
			quest.Tags = []string{}
		}
		quest.Custom = true
		quests = append(quests, quest)
	}
	return quests, rows.Err()
}

func loadCategoryStats(ctx context.Context, q database.DBTX, userID string) (map[models.Category]int, error) {
	rows, err := q.QueryContext(ctx, "SELECT category, completions FROM category_stats WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query category stats: %w", err)
	}
	defer rows.Close()

	stats := map[models.Category]int{}
	for rows.Next() {
		var category models.Category
		var n int
		if err := rows.Scan(&category, &n); err != nil {
			return nil, fmt.Errorf("failed to scan category stat: %w", err)
		}
		stats[category] = n
	}
	return stats, rows.Err()
}

// Save writes p if its version still matches the stored one, then bumps
// p.Version. History entries are appended in the same transaction. A version
// mismatch returns ErrConcurrentUpdate and leaves both p and the database
// unchanged.
func (r *ProgressionRepository) Save(ctx context.Context, p *models.Progression, history ...models.HistoryEntry) error {
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		if err := writeProgressionRow(ctx, tx, p); err != nil {
			return err
		}
		if err := writeChildren(ctx, tx, p, false); err != nil {
			return err
		}
		return insertHistory(ctx, tx, p.UserID, history)
	})
	if err != nil {
		return err
	}
	p.Version++
	return nil
}

// Replace overwrites the user's record and history regardless of version.
// Used by restore and reset.
func (r *ProgressionRepository) Replace(ctx context.Context, p *models.Progression, history []models.HistoryEntry) error {
	var version int64
	err := r.db.WithTx(ctx, func(tx *database.Tx) error {
		err := tx.QueryRowContext(ctx, "SELECT version FROM progressions WHERE user_id = ?", p.UserID).Scan(&version)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to read version: %w", err)
		}
		for _, table := range []string{"quest_history", "category_stats", "custom_quests", "completed_quests", "progressions"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", p.UserID); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}

		row := p.Clone()
		row.Version = 0
		if err := writeProgressionRow(ctx, tx, row); err != nil {
			return err
		}
		if version > 0 {
			if _, err := tx.ExecContext(ctx, "UPDATE progressions SET version = ? WHERE user_id = ?", version+1, p.UserID); err != nil {
				return fmt.Errorf("failed to set version: %w", err)
			}
		}
		if err := writeChildren(ctx, tx, p, true); err != nil {
			return err
		}
		return insertHistory(ctx, tx, p.UserID, history)
	})
	if err != nil {
		return err
	}
	p.Version = version + 1
	return nil
}

// writeProgressionRow inserts the row for a version 0 record and otherwise
// updates it conditionally on the version.
func writeProgressionRow(ctx context.Context, tx *database.Tx, p *models.Progression) error {
	now := time.Now().UTC()
	var (
		res sql.Result
		err error
	)
	if p.Version == 0 {
		insert := tx.GetDialect().IgnoreConflicts(`
			INSERT INTO progressions (user_id, xp, level, total_xp_earned, chapter_xp, current_chapter,
				daily_streak, best_streak, last_quest_date, daily_quests_date, daily_quest_ids,
				challenge_date, challenge_quest_id, challenge_completed, version, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)`)
		res, err = tx.ExecContext(ctx, insert,
			p.UserID, p.XP, p.Level, p.TotalXPEarned, p.ChapterXP, p.CurrentChapter,
			p.DailyStreak, p.BestStreak, p.LastQuestDate, p.DailyQuests.Date, joinIDs(p.DailyQuests.QuestIDs),
			p.Challenge.Date, p.Challenge.QuestID, p.Challenge.Completed, now)
	} else {
		res, err = tx.ExecContext(ctx, `
			UPDATE progressions SET xp = ?, level = ?, total_xp_earned = ?, chapter_xp = ?, current_chapter = ?,
				daily_streak = ?, best_streak = ?, last_quest_date = ?, daily_quests_date = ?, daily_quest_ids = ?,
				challenge_date = ?, challenge_quest_id = ?, challenge_completed = ?,
				version = version + 1, updated_at = ?
			WHERE user_id = ? AND version = ?`,
			p.XP, p.Level, p.TotalXPEarned, p.ChapterXP, p.CurrentChapter,
			p.DailyStreak, p.BestStreak, p.LastQuestDate, p.DailyQuests.Date, joinIDs(p.DailyQuests.QuestIDs),
			p.Challenge.Date, p.Challenge.QuestID, p.Challenge.Completed, now,
			p.UserID, p.Version)
	}
	if err != nil {
		return fmt.Errorf("failed to write progression: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check progression write: %w", err)
	}
	if n == 0 {
		return ErrConcurrentUpdate
	}
	return nil
}

// writeChildren syncs the child tables with p. Completed ids are only ever
// added, so existing rows keep their completion time unless fresh is set.
func writeChildren(ctx context.Context, tx *database.Tx, p *models.Progression, fresh bool) error {
	now := time.Now().UTC()
	insertCompleted := "INSERT INTO completed_quests (user_id, quest_id, sort_order, completed_at) VALUES (?, ?, ?, ?)"
	if !fresh {
		insertCompleted = tx.GetDialect().IgnoreConflicts(insertCompleted)
	}
	for i, id := range p.CompletedQuestIDs {
		if _, err := tx.ExecContext(ctx, insertCompleted, p.UserID, id, i, now); err != nil {
			return fmt.Errorf("failed to insert completed quest %s: %w", id, err)
		}
	}

	if !fresh {
		if _, err := tx.ExecContext(ctx, "DELETE FROM custom_quests WHERE user_id = ?", p.UserID); err != nil {
			return fmt.Errorf("failed to clear custom quests: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM category_stats WHERE user_id = ?", p.UserID); err != nil {
			return fmt.Errorf("failed to clear category stats: %w", err)
		}
	}

	for i, q := range p.CustomQuests {
		tags := q.Tags
		if tags == nil {
			tags = []string{}
		}
		encoded, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags of %s: %w", q.ID, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO custom_quests (user_id, quest_id, sort_order, title, description, difficulty, impact, category, tags, duration, xp, generated)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.UserID, q.ID, i, q.Title, q.Description, string(q.Difficulty), string(q.Impact), string(q.Category),
			string(encoded), q.Duration, q.XP, q.Generated)
		if err != nil {
			return fmt.Errorf("failed to insert custom quest %s: %w", q.ID, err)
		}
	}

	for category, n := range p.CategoryStats {
		_, err := tx.ExecContext(ctx, "INSERT INTO category_stats (user_id, category, completions) VALUES (?, ?, ?)",
			p.UserID, string(category), n)
		if err != nil {
			return fmt.Errorf("failed to insert category stat %s: %w", category, err)
		}
	}
	return nil
}

func insertHistory(ctx context.Context, tx *database.Tx, userID string, history []models.HistoryEntry) error {
	for _, h := range history {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO quest_history (user_id, quest_id, quest_title, category, xp_gained, challenge, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, h.QuestID, h.QuestTitle, string(h.Category), h.XPGained, h.Challenge, h.CompletedAt.UTC())
		if err != nil {
			return fmt.Errorf("failed to insert history: %w", err)
		}
	}
	return nil
}

// History lists the user's completions, newest first
func (r *ProgressionRepository) History(ctx context.Context, userID string, limit int) ([]models.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	query := `
		SELECT quest_id, quest_title, category, xp_gained, challenge, completed_at
		FROM quest_history
		WHERE user_id = ?
		ORDER BY completed_at DESC, id DESC
		LIMIT ?
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var h models.HistoryEntry
		if err := rows.Scan(&h.QuestID, &h.QuestTitle, &h.Category, &h.XPGained, &h.Challenge, &h.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history: %w", err)
		}
		h.CompletedAt = h.CompletedAt.UTC()
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

// UserIDs lists every user with a stored record
func (r *ProgressionRepository) UserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT user_id FROM progressions ORDER BY user_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func joinIDs(ids []string) string {
	return strings.Join(ids, ",")
}

func splitIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
