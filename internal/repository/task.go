package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/domain"
)

// Task defines the interface for task persistence
type Task interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListTasksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error)
	ListOverdueTasks(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error)
	UpdateTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
}
