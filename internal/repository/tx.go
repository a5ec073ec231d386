package repository

import (
	"context"
)

// TxStarter opens a game transaction spanning all aggregates
type TxStarter interface {
	BeginTx(ctx context.Context) (GameTx, error)
}

// GameTx is a transactional view over every aggregate repository. Task
// completion and failure load, mutate, and persist the hero, task,
// streak, and ledger inside one transaction so a mid-flight crash never
// leaves a half-applied outcome.
type GameTx interface {
	Hero
	Task
	Streak
	Economy
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
