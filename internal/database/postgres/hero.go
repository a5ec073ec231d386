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

const heroColumns = `id, name, level, current_xp, total_xp_earned, current_hp, max_hp, gold,
		is_dead, death_count, died_at, recovery_ends_at, created_at, updated_at`

// HeroRepository implements the hero repository for PostgreSQL
type HeroRepository struct {
	db *pgxpool.Pool
}

// NewHeroRepository creates a new HeroRepository
func NewHeroRepository(db *pgxpool.Pool) *HeroRepository {
	return &HeroRepository{db: db}
}

func scanHero(row pgx.Row) (*domain.Hero, error) {
	var h domain.Hero
	err := row.Scan(
		&h.ID,
		&h.Name,
		&h.Level,
		&h.CurrentXP,
		&h.TotalXPEarned,
		&h.CurrentHP,
		&h.MaxHP,
		&h.Gold,
		&h.IsDead,
		&h.DeathCount,
		&h.DiedAt,
		&h.RecoveryEndsAt,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func insertHero(ctx context.Context, q querier, hero *domain.Hero) error {
	query := `
		INSERT INTO heroes (` + heroColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, query,
		hero.ID, hero.Name, hero.Level, hero.CurrentXP, hero.TotalXPEarned,
		hero.CurrentHP, hero.MaxHP, hero.Gold, hero.IsDead, hero.DeathCount,
		hero.DiedAt, hero.RecoveryEndsAt, hero.CreatedAt, hero.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: name %q taken", domain.ErrInvalidInput, hero.Name)
	}
	if err != nil {
		return fmt.Errorf("failed to insert hero: %w", err)
	}
	return nil
}

func getHero(ctx context.Context, q querier, id uuid.UUID) (*domain.Hero, error) {
	query := `SELECT ` + heroColumns + ` FROM heroes WHERE id = $1`

	hero, err := scanHero(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrHeroNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hero: %w", err)
	}
	return hero, nil
}

func getHeroByName(ctx context.Context, q querier, name string) (*domain.Hero, error) {
	query := `SELECT ` + heroColumns + ` FROM heroes WHERE name = $1`

	hero, err := scanHero(q.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrHeroNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hero by name: %w", err)
	}
	return hero, nil
}

func listHeroes(ctx context.Context, q querier) ([]*domain.Hero, error) {
	query := `SELECT ` + heroColumns + ` FROM heroes ORDER BY created_at`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query heroes: %w", err)
	}
	defer rows.Close()

	var heroes []*domain.Hero
	for rows.Next() {
		hero, err := scanHero(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan hero: %w", err)
		}
		heroes = append(heroes, hero)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return heroes, nil
}

func updateHero(ctx context.Context, q querier, hero *domain.Hero) error {
	query := `
		UPDATE heroes
		SET name = $2, level = $3, current_xp = $4, total_xp_earned = $5,
			current_hp = $6, max_hp = $7, gold = $8, is_dead = $9,
			death_count = $10, died_at = $11, recovery_ends_at = $12, updated_at = $13
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		hero.ID, hero.Name, hero.Level, hero.CurrentXP, hero.TotalXPEarned,
		hero.CurrentHP, hero.MaxHP, hero.Gold, hero.IsDead, hero.DeathCount,
		hero.DiedAt, hero.RecoveryEndsAt, hero.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update hero: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

func deleteHero(ctx context.Context, q querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM heroes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hero: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrHeroNotFound
	}
	return nil
}

// CreateHero persists a new hero
func (r *HeroRepository) CreateHero(ctx context.Context, hero *domain.Hero) error {
	return insertHero(ctx, r.db, hero)
}

// GetHero retrieves a hero by ID
func (r *HeroRepository) GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	return getHero(ctx, r.db, id)
}

// GetHeroByName retrieves a hero by name
func (r *HeroRepository) GetHeroByName(ctx context.Context, name string) (*domain.Hero, error) {
	return getHeroByName(ctx, r.db, name)
}

// ListHeroes retrieves all heroes ordered by creation time
func (r *HeroRepository) ListHeroes(ctx context.Context) ([]*domain.Hero, error) {
	return listHeroes(ctx, r.db)
}

// UpdateHero persists all mutable hero fields
func (r *HeroRepository) UpdateHero(ctx context.Context, hero *domain.Hero) error {
	return updateHero(ctx, r.db, hero)
}

// DeleteHero removes a hero and, via cascade, its tasks, streaks, and ledger
func (r *HeroRepository) DeleteHero(ctx context.Context, id uuid.UUID) error {
	return deleteHero(ctx, r.db, id)
}
