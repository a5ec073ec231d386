package hero

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lifequest/lifequest/internal/concurrency"
	"github.com/lifequest/lifequest/internal/domain"
	"github.com/lifequest/lifequest/internal/event"
	"github.com/lifequest/lifequest/internal/repository"
)

// MockHeroRepository implements repository.Hero for testing
type MockHeroRepository struct {
	mock.Mock
}

func (m *MockHeroRepository) CreateHero(ctx context.Context, hero *domain.Hero) error {
	args := m.Called(ctx, hero)
	return args.Error(0)
}

func (m *MockHeroRepository) GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hero), args.Error(1)
}

func (m *MockHeroRepository) GetHeroByName(ctx context.Context, name string) (*domain.Hero, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hero), args.Error(1)
}

func (m *MockHeroRepository) ListHeroes(ctx context.Context) ([]*domain.Hero, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Hero), args.Error(1)
}

func (m *MockHeroRepository) UpdateHero(ctx context.Context, hero *domain.Hero) error {
	args := m.Called(ctx, hero)
	return args.Error(0)
}

func (m *MockHeroRepository) DeleteHero(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGameTx implements repository.GameTx for testing
type MockGameTx struct {
	mock.Mock
}

func (m *MockGameTx) CreateHero(ctx context.Context, hero *domain.Hero) error {
	return m.Called(ctx, hero).Error(0)
}

func (m *MockGameTx) GetHero(ctx context.Context, id uuid.UUID) (*domain.Hero, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hero), args.Error(1)
}

func (m *MockGameTx) GetHeroByName(ctx context.Context, name string) (*domain.Hero, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Hero), args.Error(1)
}

func (m *MockGameTx) ListHeroes(ctx context.Context) ([]*domain.Hero, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Hero), args.Error(1)
}

func (m *MockGameTx) UpdateHero(ctx context.Context, hero *domain.Hero) error {
	return m.Called(ctx, hero).Error(0)
}

func (m *MockGameTx) DeleteHero(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGameTx) CreateTask(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockGameTx) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockGameTx) ListTasksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, heroID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockGameTx) ListOverdueTasks(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, heroID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *MockGameTx) UpdateTask(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockGameTx) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockGameTx) CreateStreak(ctx context.Context, streak *domain.Streak) error {
	return m.Called(ctx, streak).Error(0)
}

func (m *MockGameTx) GetStreakByTask(ctx context.Context, taskID uuid.UUID) (*domain.Streak, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Streak), args.Error(1)
}

func (m *MockGameTx) ListStreaksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Streak, error) {
	args := m.Called(ctx, heroID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Streak), args.Error(1)
}

func (m *MockGameTx) UpdateStreak(ctx context.Context, streak *domain.Streak) error {
	return m.Called(ctx, streak).Error(0)
}

func (m *MockGameTx) CreateLedger(ctx context.Context, ledger *domain.EconomyLedger) error {
	return m.Called(ctx, ledger).Error(0)
}

func (m *MockGameTx) GetLedgerByHero(ctx context.Context, heroID uuid.UUID) (*domain.EconomyLedger, error) {
	args := m.Called(ctx, heroID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EconomyLedger), args.Error(1)
}

func (m *MockGameTx) UpdateLedger(ctx context.Context, ledger *domain.EconomyLedger) error {
	return m.Called(ctx, ledger).Error(0)
}

func (m *MockGameTx) ResetDailyCounters(ctx context.Context, boundary time.Time) (int64, error) {
	args := m.Called(ctx, boundary)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGameTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockGameTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockTxStarter implements repository.TxStarter for testing
type MockTxStarter struct {
	mock.Mock
}

func (m *MockTxStarter) BeginTx(ctx context.Context) (repository.GameTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.GameTx), args.Error(1)
}

// MockEventBus records published events
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, evt event.Event) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockEventBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

func newTestService(repo *MockHeroRepository, txStarter *MockTxStarter, bus *MockEventBus) Service {
	return NewService(repo, txStarter, bus, concurrency.NewLockManager())
}

func createTestHero(name string) *domain.Hero {
	return domain.NewHero(name, domain.DefaultStartingGold, time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
}

func TestCreateHero(t *testing.T) {
	ctx := context.Background()

	t.Run("creates hero and ledger in one transaction", func(t *testing.T) {
		repo := new(MockHeroRepository)
		txStarter := new(MockTxStarter)
		tx := new(MockGameTx)

		txStarter.On("BeginTx", ctx).Return(tx, nil)
		tx.On("CreateHero", ctx, mock.AnythingOfType("*domain.Hero")).Return(nil)
		tx.On("CreateLedger", ctx, mock.AnythingOfType("*domain.EconomyLedger")).Return(nil)
		tx.On("Commit", ctx).Return(nil)
		tx.On("Rollback", ctx).Return(nil)

		svc := newTestService(repo, txStarter, nil)
		hero, err := svc.CreateHero(ctx, "Aria")

		require.NoError(t, err)
		assert.Equal(t, "Aria", hero.Name)
		assert.Equal(t, 1, hero.Level)
		assert.Equal(t, domain.MaxHPForLevel(1), hero.CurrentHP)
		assert.Equal(t, int64(domain.DefaultStartingGold), hero.Gold)
		tx.AssertExpectations(t)

		ledger := tx.Calls[1].Arguments.Get(1).(*domain.EconomyLedger)
		assert.Equal(t, hero.ID, ledger.HeroID)
		assert.Equal(t, domain.DailyTaskCap, ledger.MaxDailyCompletions)
	})

	t.Run("trims whitespace from the name", func(t *testing.T) {
		repo := new(MockHeroRepository)
		txStarter := new(MockTxStarter)
		tx := new(MockGameTx)

		txStarter.On("BeginTx", ctx).Return(tx, nil)
		tx.On("CreateHero", ctx, mock.Anything).Return(nil)
		tx.On("CreateLedger", ctx, mock.Anything).Return(nil)
		tx.On("Commit", ctx).Return(nil)
		tx.On("Rollback", ctx).Return(nil)

		svc := newTestService(repo, txStarter, nil)
		hero, err := svc.CreateHero(ctx, "  Aria  ")

		require.NoError(t, err)
		assert.Equal(t, "Aria", hero.Name)
	})

	t.Run("rejects empty name without opening a transaction", func(t *testing.T) {
		repo := new(MockHeroRepository)
		txStarter := new(MockTxStarter)

		svc := newTestService(repo, txStarter, nil)
		_, err := svc.CreateHero(ctx, "   ")

		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), ErrMsgHeroNameRequired)
		txStarter.AssertNotCalled(t, "BeginTx", mock.Anything)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		repo := new(MockHeroRepository)
		txStarter := new(MockTxStarter)

		long := make([]byte, MaxHeroNameLength+1)
		for i := range long {
			long[i] = 'a'
		}

		svc := newTestService(repo, txStarter, nil)
		_, err := svc.CreateHero(ctx, string(long))

		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), ErrMsgHeroNameTooLong)
	})

	t.Run("maps duplicate name to a taken error", func(t *testing.T) {
		repo := new(MockHeroRepository)
		txStarter := new(MockTxStarter)
		tx := new(MockGameTx)

		txStarter.On("BeginTx", ctx).Return(tx, nil)
		tx.On("CreateHero", ctx, mock.Anything).Return(domain.ErrInvalidInput)
		tx.On("Rollback", ctx).Return(nil)

		svc := newTestService(repo, txStarter, nil)
		_, err := svc.CreateHero(ctx, "Aria")

		require.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), ErrMsgHeroNameTaken)
		tx.AssertNotCalled(t, "Commit", mock.Anything)
	})
}

func TestGetHero(t *testing.T) {
	ctx := context.Background()

	t.Run("serves repeat lookups from cache", func(t *testing.T) {
		repo := new(MockHeroRepository)
		hero := createTestHero("Aria")
		repo.On("GetHero", ctx, hero.ID).Return(hero, nil).Once()

		svc := newTestService(repo, new(MockTxStarter), nil)

		first, err := svc.GetHero(ctx, hero.ID)
		require.NoError(t, err)

		second, err := svc.GetHero(ctx, hero.ID)
		require.NoError(t, err)

		assert.Same(t, first, second)
		repo.AssertNumberOfCalls(t, "GetHero", 1)
	})

	t.Run("passes through not found", func(t *testing.T) {
		repo := new(MockHeroRepository)
		id := uuid.New()
		repo.On("GetHero", ctx, id).Return(nil, domain.ErrHeroNotFound)

		svc := newTestService(repo, new(MockTxStarter), nil)
		_, err := svc.GetHero(ctx, id)

		assert.ErrorIs(t, err, domain.ErrHeroNotFound)
	})
}

func TestGetHeroSummary(t *testing.T) {
	ctx := context.Background()

	repo := new(MockHeroRepository)
	hero := createTestHero("Aria")
	hero.Level = 5
	hero.MaxHP = domain.MaxHPForLevel(5)
	hero.CurrentHP = 40
	hero.CurrentXP = 300
	repo.On("GetHero", ctx, hero.ID).Return(hero, nil)

	svc := newTestService(repo, new(MockTxStarter), nil)
	summary, err := svc.GetHeroSummary(ctx, hero.ID)

	require.NoError(t, err)
	assert.Equal(t, hero.Name, summary.Name)
	assert.Equal(t, 5, summary.Level)
	assert.Equal(t, domain.XPRequiredForLevel(5), summary.XPRequired)
	assert.Equal(t, domain.MaxHPForLevel(5), summary.MaxHP)
	assert.False(t, summary.IsDead)
	assert.False(t, summary.IsInRecovery)
}

func TestRespawnHero(t *testing.T) {
	ctx := context.Background()

	t.Run("revives a dead hero and publishes the event", func(t *testing.T) {
		repo := new(MockHeroRepository)
		bus := new(MockEventBus)

		hero := createTestHero("Aria")
		hero.IsDead = true
		hero.DeathCount = 1
		hero.CurrentHP = 13

		repo.On("GetHero", ctx, hero.ID).Return(hero, nil)
		repo.On("UpdateHero", ctx, hero).Return(nil)
		bus.On("Publish", ctx, mock.MatchedBy(func(evt event.Event) bool {
			return evt.Type == event.HeroRespawned
		})).Return(nil)

		svc := newTestService(repo, new(MockTxStarter), bus)
		revived, err := svc.RespawnHero(ctx, hero.ID)

		require.NoError(t, err)
		assert.False(t, revived.IsDead)
		require.NotNil(t, revived.RecoveryEndsAt)
		assert.True(t, revived.RecoveryEndsAt.After(time.Now()))
		repo.AssertExpectations(t)
		bus.AssertExpectations(t)
	})

	t.Run("rejects respawning a living hero", func(t *testing.T) {
		repo := new(MockHeroRepository)

		hero := createTestHero("Aria")
		repo.On("GetHero", ctx, hero.ID).Return(hero, nil)

		svc := newTestService(repo, new(MockTxStarter), nil)
		_, err := svc.RespawnHero(ctx, hero.ID)

		require.ErrorIs(t, err, domain.ErrHeroNotDead)
		repo.AssertNotCalled(t, "UpdateHero", mock.Anything, mock.Anything)
	})
}

func TestRegisterInvalidation(t *testing.T) {
	ctx := context.Background()

	repo := new(MockHeroRepository)
	hero := createTestHero("Aria")
	repo.On("GetHero", ctx, hero.ID).Return(hero, nil)

	bus := event.NewMemoryBus()
	svc := newTestService(repo, new(MockTxStarter), nil)
	svc.RegisterInvalidation(bus)

	_, err := svc.GetHero(ctx, hero.ID)
	require.NoError(t, err)

	// A task completion elsewhere mutated the hero; the cache entry must go.
	err = bus.Publish(ctx, event.NewTaskCompletedEvent(hero.ID.String(), uuid.NewString(), "habit", "easy", 10, 5, 1))
	require.NoError(t, err)

	_, err = svc.GetHero(ctx, hero.ID)
	require.NoError(t, err)
	repo.AssertNumberOfCalls(t, "GetHero", 2)
}

func TestDeleteHero(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes and drops the cached entry", func(t *testing.T) {
		repo := new(MockHeroRepository)
		hero := createTestHero("Aria")

		repo.On("GetHero", ctx, hero.ID).Return(hero, nil)
		repo.On("DeleteHero", ctx, hero.ID).Return(nil)

		svc := newTestService(repo, new(MockTxStarter), nil)

		_, err := svc.GetHero(ctx, hero.ID)
		require.NoError(t, err)

		require.NoError(t, svc.DeleteHero(ctx, hero.ID))

		// Cache was invalidated, so the next read hits the repository again.
		_, err = svc.GetHero(ctx, hero.ID)
		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "GetHero", 2)
	})

	t.Run("passes through not found", func(t *testing.T) {
		repo := new(MockHeroRepository)
		id := uuid.New()
		repo.On("DeleteHero", ctx, id).Return(domain.ErrHeroNotFound)

		svc := newTestService(repo, new(MockTxStarter), nil)
		err := svc.DeleteHero(ctx, id)

		assert.ErrorIs(t, err, domain.ErrHeroNotFound)
	})
}
