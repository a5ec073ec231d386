package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifequest/lifequest/internal/domain"
	"github.com/lifequest/lifequest/internal/repository"
)

// Store opens game transactions over the full aggregate set
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// BeginTx starts a game transaction
func (s *Store) BeginTx(ctx context.Context) (repository.GameTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &gameTx{tx: tx}, nil
}

// gameTx implements repository.GameTx over a single pgx transaction
type gameTx struct {
	tx pgx.Tx
}

func (t *gameTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return nil
}

func (t *gameTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *gameTx) CreateHero(ctx context.Context, hero *domain.Hero) error {
	return insertHero(ctx, t.tx, hero)
}

func (t *gameTx) GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	return getHero(ctx, t.tx, id)
}

func (t *gameTx) GetHeroByName(ctx context.Context, name string) (*domain.Hero, error) {
	return getHeroByName(ctx, t.tx, name)
}

func (t *gameTx) ListHeroes(ctx context.Context) ([]*domain.Hero, error) {
	return listHeroes(ctx, t.tx)
}

func (t *gameTx) UpdateHero(ctx context.Context, hero *domain.Hero) error {
	return updateHero(ctx, t.tx, hero)
}

func (t *gameTx) DeleteHero(ctx context.Context, id uuid.UUID) error {
	return deleteHero(ctx, t.tx, id)
}

func (t *gameTx) CreateTask(ctx context.Context, task *domain.Task) error {
	return insertTask(ctx, t.tx, task)
}

func (t *gameTx) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return getTask(ctx, t.tx, id)
}

func (t *gameTx) ListTasksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	return listTasksByHero(ctx, t.tx, heroID)
}

func (t *gameTx) ListOverdueTasks(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	return listOverdueTasks(ctx, t.tx, heroID)
}

func (t *gameTx) UpdateTask(ctx context.Context, task *domain.Task) error {
	return updateTask(ctx, t.tx, task)
}

func (t *gameTx) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return deleteTask(ctx, t.tx, id)
}

func (t *gameTx) CreateStreak(ctx context.Context, streak *domain.Streak) error {
	return insertStreak(ctx, t.tx, streak)
}

func (t *gameTx) GetStreakByTask(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	return getStreakByTask(ctx, t.tx, taskID)
}

func (t *gameTx) ListStreaksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Streak, error) {
	return listStreaksByHero(ctx, t.tx, heroID)
}

func (t *gameTx) UpdateStreak(ctx context.Context, streak *domain.Streak) error {
	return updateStreak(ctx, t.tx, streak)
}

func (t *gameTx) CreateLedger(ctx context.Context, ledger *domain.EconomyLedger) error {
	return insertLedger(ctx, t.tx, ledger)
}

func (t *gameTx) GetLedgerByHero(ctx context.Context, heroID uuid.UUID) (*domain.EconomyLedger, error) {
	return getLedgerByHero(ctx, t.tx, heroID)
}

func (t *gameTx) UpdateLedger(ctx context.Context, ledger *domain.EconomyLedger) error {
	return updateLedger(ctx, t.tx, ledger)
}

func (t *gameTx) ResetDailyCounters(ctx context.Context, boundary time.Time) (int64, error) {
	return resetDailyCounters(ctx, t.tx, boundary)
}
