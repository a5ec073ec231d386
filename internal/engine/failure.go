package engine

import (
	"github.com/lifequest/lifequest/internal/domain"
)

// ApplyTaskFailure runs the failure transition: the base penalty, then
// streak breakage if unprotected, then damage last so a death cascade
// sees the post-break streak. The streak is nil for one-time tasks.
func (e *Engine) ApplyTaskFailure(hero *domain.Hero, task *domain.Task, streak *domain.Streak, ledger *domain.EconomyLedger) (*FailureResult, error) {
	if !task.IsActive {
		return nil, domain.ErrTaskInactive
	}
	if task.IsTerminallyCompleted() {
		return nil, domain.ErrTaskAlreadyCompleted
	}
	if hero.IsDead {
		return nil, domain.ErrHeroIsDead
	}

	result := e.applyFailure(hero, task, streak, ledger)
	return result, nil
}

// applyFailure is the unchecked failure transition shared with the
// overdue sweep, which validates its own preconditions per task.
func (e *Engine) applyFailure(hero *domain.Hero, task *domain.Task, streak *domain.Streak, ledger *domain.EconomyLedger) *FailureResult {
	now := e.now()
	penalty := domain.BasePenalty(task.Type, task.Difficulty)

	result := &FailureResult{
		HPLost:   penalty.HP,
		GoldLost: penalty.Gold,
	}

	hero.SpendGold(penalty.Gold)

	if streak != nil {
		streak.Reconcile(now)
		if streak.CurrentDays > 0 && !streak.IsProtected(now) {
			breakPenalty := domain.StreakBreakPenaltyFor(streak.CurrentDays)
			streak.Break(now)
			hero.SpendXP(breakPenalty.XPLost)
			hero.SpendGold(breakPenalty.GoldLost)
			result.StreakBroken = true
			result.StreakPenalty = &breakPenalty
			result.GoldLost += breakPenalty.GoldLost
		}
	}

	if hero.TakeDamage(penalty.HP, now) {
		result.HeroDied = true
		ledger.ActivateDeathPenalty(now)
		if streak != nil {
			streak.HalveDays(now)
		}
	}

	hero.UpdatedAt = now
	task.MarkFailed(now)
	return result
}
