package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lifequest/lifequest/internal/database/postgres"
	"github.com/lifequest/lifequest/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Hero    repository.Hero
	Task    repository.Task
	Streak  repository.Streak
	Economy repository.Economy

	// Store opens game transactions spanning the repositories above.
	Store repository.TxStarter
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Hero:    postgres.NewHeroRepository(dbPool),
		Task:    postgres.NewTaskRepository(dbPool),
		Streak:  postgres.NewStreakRepository(dbPool),
		Economy: postgres.NewEconomyRepository(dbPool),
		Store:   postgres.NewStore(dbPool),
	}
}
