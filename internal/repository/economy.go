package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/domain"
)

// Economy defines the interface for economy ledger persistence
type Economy interface {
	CreateLedger(ctx context.Context, ledger *domain.EconomyLedger) error
	GetLedgerByHero(ctx context.Context, heroID uuid.UUID) (*domain.EconomyLedger, error)
	UpdateLedger(ctx context.Context, ledger *domain.EconomyLedger) error

	// ResetDailyCounters bulk-resets every ledger whose reset marker is
	// older than the given boundary. Returns the number of rows touched.
	ResetDailyCounters(ctx context.Context, boundary time.Time) (int64, error)
}
