package hero

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/concurrency"
	"github.com/lifequest/lifequest/internal/domain"
	"github.com/lifequest/lifequest/internal/event"
	"github.com/lifequest/lifequest/internal/logger"
	"github.com/lifequest/lifequest/internal/repository"
)

// Service defines the interface for hero operations
type Service interface {
	CreateHero(ctx context.Context, name string) (*domain.Hero, error)
	GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error)
	ListHeroes(ctx context.Context) ([]*domain.Hero, error)
	GetHeroSummary(ctx context.Context, id uuid.UUID) (*Summary, error)
	RespawnHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error)
	DeleteHero(ctx context.Context, id uuid.UUID) error

	// RegisterInvalidation subscribes cache invalidation to the task
	// outcome events, so heroes mutated by another service never serve
	// stale from the cache.
	RegisterInvalidation(bus event.Bus)
}

// Summary is the read model for a hero, including the derived fields a
// client needs to render progress without knowing the curve formulas.
type Summary struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Level         int       `json:"level"`
	CurrentXP     int64     `json:"current_xp"`
	XPRequired    int64     `json:"xp_required"`
	TotalXPEarned int64     `json:"total_xp_earned"`
	CurrentHP     int       `json:"current_hp"`
	MaxHP         int       `json:"max_hp"`
	Gold          int64     `json:"gold"`

	IsDead         bool       `json:"is_dead"`
	DeathCount     int        `json:"death_count"`
	IsInRecovery   bool       `json:"is_in_recovery"`
	RecoveryEndsAt *time.Time `json:"recovery_ends_at,omitempty"`
}

type service struct {
	repo      repository.Hero
	txStarter repository.TxStarter
	eventBus  event.Bus
	locks     *concurrency.LockManager
	cache     *heroCache
	now       func() time.Time
}

// NewService creates a new hero service
func NewService(repo repository.Hero, txStarter repository.TxStarter, eventBus event.Bus, locks *concurrency.LockManager) Service {
	return &service{
		repo:      repo,
		txStarter: txStarter,
		eventBus:  eventBus,
		locks:     locks,
		cache:     newHeroCache(DefaultCacheSize, DefaultCacheTTL),
		now:       time.Now,
	}
}

// CreateHero creates a level-1 hero and its economy ledger in one
// transaction, so a hero row never exists without a ledger row.
func (s *service) CreateHero(ctx context.Context, name string) (*domain.Hero, error) {
	log := logger.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgHeroNameRequired)
	}
	if len(name) > MaxHeroNameLength {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgHeroNameTooLong)
	}

	now := s.now().UTC()
	hero := domain.NewHero(name, domain.DefaultStartingGold, now)
	ledger := domain.NewEconomyLedger(hero.ID, now)

	tx, err := s.txStarter.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.CreateHero(ctx, hero); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgHeroNameTaken)
		}
		return nil, fmt.Errorf("failed to create hero: %w", err)
	}
	if err := tx.CreateLedger(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to create economy ledger: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Set(hero.ID.String(), hero)
	log.Info(logMsgHeroCreated, "hero_id", hero.ID, "name", hero.Name)
	return hero, nil
}

// GetHero fetches a hero, serving from the LRU cache when possible
func (s *service) GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	if hero, found := s.cache.Get(id.String()); found {
		logger.FromContext(ctx).Debug(logMsgCacheHit, "hero_id", id)
		return hero, nil
	}

	hero, err := s.repo.GetHero(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(id.String(), hero)
	return hero, nil
}

// ListHeroes returns all heroes
func (s *service) ListHeroes(ctx context.Context) ([]*domain.Hero, error) {
	heroes, err := s.repo.ListHeroes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list heroes: %w", err)
	}
	return heroes, nil
}

// GetHeroSummary returns the hero read model with derived fields
func (s *service) GetHeroSummary(ctx context.Context, id uuid.UUID) (*Summary, error) {
	hero, err := s.GetHero(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	return &Summary{
		ID:             hero.ID,
		Name:           hero.Name,
		Level:          hero.Level,
		CurrentXP:      hero.CurrentXP,
		XPRequired:     hero.XPForNextLevel(),
		TotalXPEarned:  hero.TotalXPEarned,
		CurrentHP:      hero.CurrentHP,
		MaxHP:          hero.MaxHP,
		Gold:           hero.Gold,
		IsDead:         hero.IsDead,
		DeathCount:     hero.DeathCount,
		IsInRecovery:   hero.IsInRecovery(now),
		RecoveryEndsAt: hero.RecoveryEndsAt,
	}, nil
}

// RespawnHero revives a dead hero and starts the recovery debuff window.
// Returns ErrHeroNotDead if the hero is alive.
func (s *service) RespawnHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	log := logger.FromContext(ctx)

	var hero *domain.Hero
	var opErr error
	s.locks.WithLock(id.String(), func() {
		hero, opErr = s.repo.GetHero(ctx, id)
		if opErr != nil {
			return
		}

		now := s.now().UTC()
		if !hero.Respawn(now) {
			opErr = fmt.Errorf("%w: %s", domain.ErrHeroNotDead, hero.ID)
			return
		}

		opErr = s.repo.UpdateHero(ctx, hero)
	})
	if opErr != nil {
		return nil, opErr
	}

	s.cache.Invalidate(id.String())

	if s.eventBus != nil && hero.RecoveryEndsAt != nil {
		if err := s.eventBus.Publish(ctx, event.NewHeroRespawnedEvent(hero.ID.String(), *hero.RecoveryEndsAt)); err != nil {
			log.Warn("Failed to publish respawn event", "hero_id", hero.ID, "error", err)
		}
	}

	log.Info(logMsgHeroRespawned, "hero_id", hero.ID, "death_count", hero.DeathCount)
	return hero, nil
}

// RegisterInvalidation subscribes to every event that implies a hero
// mutation outside this service
func (s *service) RegisterInvalidation(bus event.Bus) {
	handler := func(ctx context.Context, evt event.Event) error {
		heroID, ok := evt.GetMetadataValue("hero_id").(string)
		if !ok {
			heroID = heroIDFromPayload(evt)
		}
		if heroID != "" {
			s.cache.Invalidate(heroID)
		}
		return nil
	}

	bus.Subscribe(event.TaskCompleted, handler)
	bus.Subscribe(event.TaskFailed, handler)
	bus.Subscribe(event.HeroLevelUp, handler)
	bus.Subscribe(event.HeroDied, handler)
}

// heroIDFromPayload pulls the hero ID out of the typed payloads
func heroIDFromPayload(evt event.Event) string {
	switch p := evt.Payload.(type) {
	case event.TaskCompletedPayloadV1:
		return p.HeroID
	case event.TaskFailedPayloadV1:
		return p.HeroID
	case event.HeroLevelUpPayloadV1:
		return p.HeroID
	case event.HeroDiedPayloadV1:
		return p.HeroID
	default:
		return ""
	}
}

// DeleteHero removes a hero. Tasks, streaks, and the ledger go with it
// via the schema's cascade rules.
func (s *service) DeleteHero(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteHero(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id.String())
	logger.FromContext(ctx).Info(logMsgHeroDeleted, "hero_id", id)
	return nil
}
