package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/domain"
)

// Hero defines the interface for hero persistence
type Hero interface {
	CreateHero(ctx context.Context, hero *domain.Hero) error
	GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error)
	GetHeroByName(ctx context.Context, name string) (*domain.Hero, error)
	ListHeroes(ctx context.Context) ([]*domain.Hero, error)
	UpdateHero(ctx context.Context, hero *domain.Hero) error
	DeleteHero(ctx context.Context, id uuid.UUID) error
}
