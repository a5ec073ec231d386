package engine

import (
	"github.com/google/uuid"

	"github.com/lifequest/lifequest/internal/domain"
)

// OverdueOutcome reports what the sweep did with one task.
type OverdueOutcome struct {
	TaskID  uuid.UUID      `json:"task_id"`
	Skipped bool           `json:"skipped"`
	Result  *FailureResult `json:"result,omitempty"`
}

// SweepOverdue applies the failure transition to every overdue task the
// hero owns. Each task is handled independently, and once the hero dies
// mid-sweep the remaining tasks are skipped rather than piling damage
// onto a corpse; they stay overdue and surface again after respawn.
func (e *Engine) SweepOverdue(hero *domain.Hero, tasks []*domain.Task, streaks map[uuid.UUID]*domain.Streak, ledger *domain.EconomyLedger) []OverdueOutcome {
	now := e.now()

	outcomes := make([]OverdueOutcome, 0, len(tasks))
	for _, task := range tasks {
		if !task.IsActive || !task.IsOverdue(now) {
			continue
		}
		if hero.IsDead {
			outcomes = append(outcomes, OverdueOutcome{TaskID: task.ID, Skipped: true})
			continue
		}

		result := e.applyFailure(hero, task, streaks[task.ID], ledger)
		outcomes = append(outcomes, OverdueOutcome{TaskID: task.ID, Result: result})
	}
	return outcomes
}
