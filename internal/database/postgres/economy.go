package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifequest/lifequest/internal/domain"
)

const ledgerColumns = `id, hero_id, total_gold_earned, total_gold_spent, total_xp_earned,
		daily_task_completions, max_daily_completions, daily_reset_at,
		xp_multiplier, gold_multiplier, is_in_penalty_period, penalty_ends_at,
		penalty_multiplier, created_at, updated_at`

// EconomyRepository implements the economy ledger repository for PostgreSQL
type EconomyRepository struct {
	db *pgxpool.Pool
}

// NewEconomyRepository creates a new EconomyRepository
func NewEconomyRepository(db *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{db: db}
}

func scanLedger(row pgx.Row) (*domain.EconomyLedger, error) {
	var e domain.EconomyLedger
	err := row.Scan(
		&e.ID,
		&e.HeroID,
		&e.TotalGoldEarned,
		&e.TotalGoldSpent,
		&e.TotalXPEarned,
		&e.DailyTaskCompletions,
		&e.MaxDailyCompletions,
		&e.DailyResetAt,
		&e.XPMultiplier,
		&e.GoldMultiplier,
		&e.IsInPenaltyPeriod,
		&e.PenaltyEndsAt,
		&e.PenaltyMultiplier,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func insertLedger(ctx context.Context, q querier, ledger *domain.EconomyLedger) error {
	query := `
		INSERT INTO economy_ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := q.Exec(ctx, query,
		ledger.ID, ledger.HeroID, ledger.TotalGoldEarned, ledger.TotalGoldSpent,
		ledger.TotalXPEarned, ledger.DailyTaskCompletions, ledger.MaxDailyCompletions,
		ledger.DailyResetAt, ledger.XPMultiplier, ledger.GoldMultiplier,
		ledger.IsInPenaltyPeriod, ledger.PenaltyEndsAt, ledger.PenaltyMultiplier,
		ledger.CreatedAt, ledger.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger: %w", err)
	}
	return nil
}

func getLedgerByHero(ctx context.Context, q querier, heroID uuid.UUID) (*domain.EconomyLedger, error) {
	query := `SELECT ` + ledgerColumns + ` FROM economy_ledgers WHERE hero_id = $1`

	ledger, err := scanLedger(q.QueryRow(ctx, query, heroID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrHeroNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger: %w", err)
	}
	return ledger, nil
}

func updateLedger(ctx context.Context, q querier, ledger *domain.EconomyLedger) error {
	query := `
		UPDATE economy_ledgers
		SET total_gold_earned = $2, total_gold_spent = $3, total_xp_earned = $4,
			daily_task_completions = $5, max_daily_completions = $6, daily_reset_at = $7,
			xp_multiplier = $8, gold_multiplier = $9, is_in_penalty_period = $10,
			penalty_ends_at = $11, penalty_multiplier = $12, updated_at = $13
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		ledger.ID, ledger.TotalGoldEarned, ledger.TotalGoldSpent, ledger.TotalXPEarned,
		ledger.DailyTaskCompletions, ledger.MaxDailyCompletions, ledger.DailyResetAt,
		ledger.XPMultiplier, ledger.GoldMultiplier, ledger.IsInPenaltyPeriod,
		ledger.PenaltyEndsAt, ledger.PenaltyMultiplier, ledger.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

func resetDailyCounters(ctx context.Context, q querier, boundary time.Time) (int64, error) {
	query := `
		UPDATE economy_ledgers
		SET daily_task_completions = 0, daily_reset_at = $1, updated_at = NOW()
		WHERE daily_reset_at < $1
	`

	tag, err := q.Exec(ctx, query, boundary)
	if err != nil {
		return 0, fmt.Errorf("failed to reset daily counters: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateLedger persists a new economy ledger
func (r *EconomyRepository) CreateLedger(ctx context.Context, ledger *domain.EconomyLedger) error {
	return insertLedger(ctx, r.db, ledger)
}

// GetLedgerByHero retrieves the hero's economy ledger
func (r *EconomyRepository) GetLedgerByHero(ctx context.Context, heroID uuid.UUID) (*domain.EconomyLedger, error) {
	return getLedgerByHero(ctx, r.db, heroID)
}

// UpdateLedger persists all mutable ledger fields
func (r *EconomyRepository) UpdateLedger(ctx context.Context, ledger *domain.EconomyLedger) error {
	return updateLedger(ctx, r.db, ledger)
}

// ResetDailyCounters bulk-resets stale ledgers to the given day boundary
func (r *EconomyRepository) ResetDailyCounters(ctx context.Context, boundary time.Time) (int64, error) {
	return resetDailyCounters(ctx, r.db, boundary)
}
