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

const taskColumns = `id, hero_id, title, description, type, difficulty, is_active, due_date,
		is_completed, completion_count, fail_count, last_completed_at, created_at, updated_at`

// TaskRepository implements the task repository for PostgreSQL
type TaskRepository struct {
	db *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{db: db}
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID,
		&t.HeroID,
		&t.Title,
		&t.Description,
		&t.Type,
		&t.Difficulty,
		&t.IsActive,
		&t.DueDate,
		&t.IsCompleted,
		&t.CompletionCount,
		&t.FailCount,
		&t.LastCompletedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func insertTask(ctx context.Context, q querier, task *domain.Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := q.Exec(ctx, query,
		task.ID, task.HeroID, task.Title, task.Description, task.Type, task.Difficulty,
		task.IsActive, task.DueDate, task.IsCompleted, task.CompletionCount,
		task.FailCount, task.LastCompletedAt, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func getTask(ctx context.Context, q querier, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

func listTasks(ctx context.Context, q querier, query string, args ...any) ([]*domain.Task, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return tasks, nil
}

func listTasksByHero(ctx context.Context, q querier, heroID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE hero_id = $1 ORDER BY created_at`
	return listTasks(ctx, q, query, heroID)
}

func listOverdueTasks(ctx context.Context, q querier, heroID uuid.UUID) ([]*domain.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE hero_id = $1
		  AND is_active
		  AND NOT is_completed
		  AND due_date IS NOT NULL
		  AND due_date < NOW()
		ORDER BY due_date
	`
	return listTasks(ctx, q, query, heroID)
}

func updateTask(ctx context.Context, q querier, task *domain.Task) error {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, type = $4, difficulty = $5, is_active = $6,
			due_date = $7, is_completed = $8, completion_count = $9, fail_count = $10,
			last_completed_at = $11, updated_at = $12
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		task.ID, task.Title, task.Description, task.Type, task.Difficulty, task.IsActive,
		task.DueDate, task.IsCompleted, task.CompletionCount, task.FailCount,
		task.LastCompletedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func deleteTask(ctx context.Context, q querier, id uuid.UUID) error {
	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// CreateTask persists a new task
func (r *TaskRepository) CreateTask(ctx context.Context, task *domain.Task) error {
	return insertTask(ctx, r.db, task)
}

// GetTask retrieves a task by ID
func (r *TaskRepository) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return getTask(ctx, r.db, id)
}

// ListTasksByHero retrieves all tasks owned by a hero
func (r *TaskRepository) ListTasksByHero(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	return listTasksByHero(ctx, r.db, heroID)
}

// ListOverdueTasks retrieves the hero's active, uncompleted tasks whose due date has passed
func (r *TaskRepository) ListOverdueTasks(ctx context.Context, heroID uuid.UUID) ([]*domain.Task, error) {
	return listOverdueTasks(ctx, r.db, heroID)
}

// UpdateTask persists all mutable task fields
func (r *TaskRepository) UpdateTask(ctx context.Context, task *domain.Task) error {
	return updateTask(ctx, r.db, task)
}

// DeleteTask removes a task and, via cascade, its streak
func (r *TaskRepository) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return deleteTask(ctx, r.db, id)
}
