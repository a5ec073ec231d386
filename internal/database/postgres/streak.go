package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifequest/lifequest/internal/domain"
)

const streakColumns = `id, hero_id, task_id, current_days, longest_days, start_date, last_check_in,
		freeze_charges, freeze_active_until, is_shield_active, shield_expires_at,
		total_breaks, last_break_date, created_at, updated_at`

// StreakRepository implements the streak repository for PostgreSQL
type StreakRepository struct {
	db *pgxpool.Pool
}

// NewStreakRepository creates a new StreakRepository
func NewStreakRepository(db *pgxpool.Pool) *StreakRepository {
	return &StreakRepository{db: db}
}

func scanStreak(row pgx.Row) (*domain.Streak, error) {
	var s domain.Streak
	err := row.Scan(
		&s.ID,
		&s.HeroID,
		&s.TaskID,
		&s.CurrentDays,
		&s.LongestDays,
		&s.StartDate,
		&s.LastCheckIn,
		&s.FreezeCharges,
		&s.FreezeActiveUntil,
		&s.IsShieldActive,
		&s.ShieldExpiresAt,
		&s.TotalBreaks,
		&s.LastBreakDate,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func insertStreak(ctx context.Context, q querier, streak *domain.Streak) error {
	query := `
		INSERT INTO streaks (` + streakColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := q.Exec(ctx, query,
		streak.ID, streak.HeroID, streak.TaskID, streak.CurrentDays, streak.LongestDays,
		streak.StartDate, streak.LastCheckIn, streak.FreezeCharges, streak.FreezeActiveUntil,
		streak.IsShieldActive, streak.ShieldExpiresAt, streak.TotalBreaks,
		streak.LastBreakDate, streak.CreatedAt, streak.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert streak: %w", err)
	}
	return nil
}

func getStreakByTask(ctx context.Context, q querier, taskID uuid.UUID) (*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks WHERE task_id = $1`

	streak, err := scanStreak(q.QueryRow(ctx, query, taskID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStreakNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get streak: %w", err)
	}
	return streak, nil
}

func listStreaksByHero(ctx context.Context, q querier, heroID uuid.UUID) ([]*domain.Streak, error) {
	query := `SELECT ` + streakColumns + ` FROM streaks WHERE hero_id = $1 ORDER BY created_at`

	rows, err := q.Query(ctx, query, heroID)
	if err != nil {
		return nil, fmt.Errorf("failed to query streaks: %w", err)
	}
	defer rows.Close()

	var streaks []*domain.Streak
	for rows.Next() {
		streak, err := scanStreak(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan streak: %w", err)
		}
		streaks = append(streaks, streak)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return streaks, nil
}

func updateStreak(ctx context.Context, q querier, streak *domain.Streak) error {
	query := `
		UPDATE streaks
		SET current_days = $2, longest_days = $3, start_date = $4, last_check_in = $5,
			freeze_charges = $6, freeze_active_until = $7, is_shield_active = $8,
			shield_expires_at = $9, total_breaks = $10, last_break_date = $11, updated_at = $12
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		streak.ID, streak.CurrentDays, streak.LongestDays, streak.StartDate, streak.LastCheckIn,
		streak.FreezeCharges, streak.FreezeActiveUntil, streak.IsShieldActive,
		streak.ShieldExpiresAt, streak.TotalBreaks, streak.LastBreakDate, streak.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStreakNotFound
	}
	return nil
}

// CreateStreak persists a new streak
func (r *StreakRepository) CreateStreak(ctx context.Context, streak *domain.Streak) error {
	return insertStreak(ctx, r.db, streak)
}

// GetStreakByTask retrieves the streak attached to a habit task
func (r *StreakRepository) GetStreakByTask(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	return getStreakByTask(ctx, r.db, taskID)
}

// ListStreaksByHero retrieves all streaks owned by a hero
func (r *StreakRepository) ListStreaksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Streak, error) {
	return listStreaksByHero(ctx, r.db, heroID)
}

// UpdateStreak persists all mutable streak fields
func (r *StreakRepository) UpdateStreak(ctx context.Context, streak *domain.Streak) error {
	return updateStreak(ctx, r.db, streak)
}
