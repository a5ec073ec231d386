package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/domain"
)

// Streak defines the interface for streak persistence
type Streak interface {
	CreateStreak(ctx context.Context, streak *domain.Streak) error
	GetStreakByTask(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error)
	ListStreaksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Streak, error)
	UpdateStreak(ctx context.Context, streak *domain.Streak) error
}
