package domain

import "math"

// The formula table. Every function here is pure and deterministic; all
// balance tuning lives in these tables and in constants.go.

// XPRequiredForLevel returns the XP needed to advance past the given level.
// A hero's CurrentXP always stays below this threshold outside of GainXP.
func XPRequiredForLevel(level int) int64 {
	return int64(math.Floor(BaseXP * math.Pow(float64(level), XPExponent) * (1 + float64(level)/XPScaleFactor)))
}

// MaxHPForLevel returns the hit point ceiling at the given level.
func MaxHPForLevel(level int) int {
	return BaseHP + HPPerLevel*level
}

// DifficultyMultiplier scales rewards by task difficulty.
func DifficultyMultiplier(d TaskDifficulty) float64 {
	switch d {
	case DifficultyEasy:
		return 1.0
	case DifficultyMedium:
		return 1.5
	case DifficultyHard:
		return 2.5
	case DifficultyEpic:
		return 4.0
	default:
		return 1.0
	}
}

// Reward is a base XP/gold pair before multipliers.
type Reward struct {
	XP   int64
	Gold int64
}

// Penalty is a base HP/gold pair deducted on failure.
type Penalty struct {
	HP   int
	Gold int64
}

// BaseReward returns the pre-multiplier reward for completing a task.
// Habit rewards run lower than one-time rewards at the same difficulty
// because habits are re-completable every day.
func BaseReward(t TaskType, d TaskDifficulty) Reward {
	if t == TaskTypeHabit {
		switch d {
		case DifficultyEasy:
			return Reward{XP: 10, Gold: 5}
		case DifficultyMedium:
			return Reward{XP: 25, Gold: 12}
		case DifficultyHard:
			return Reward{XP: 50, Gold: 25}
		case DifficultyEpic:
			return Reward{XP: 100, Gold: 50}
		default:
			return Reward{XP: 10, Gold: 5}
		}
	}
	switch d {
	case DifficultyEasy:
		return Reward{XP: 15, Gold: 8}
	case DifficultyMedium:
		return Reward{XP: 35, Gold: 18}
	case DifficultyHard:
		return Reward{XP: 70, Gold: 35}
	case DifficultyEpic:
		return Reward{XP: 150, Gold: 75}
	default:
		return Reward{XP: 15, Gold: 8}
	}
}

// BasePenalty returns the HP/gold deduction for failing a task.
func BasePenalty(t TaskType, d TaskDifficulty) Penalty {
	if t == TaskTypeHabit {
		switch d {
		case DifficultyEasy:
			return Penalty{HP: 5, Gold: 0}
		case DifficultyMedium:
			return Penalty{HP: 10, Gold: 5}
		case DifficultyHard:
			return Penalty{HP: 20, Gold: 15}
		case DifficultyEpic:
			return Penalty{HP: 35, Gold: 30}
		default:
			return Penalty{HP: 5, Gold: 0}
		}
	}
	switch d {
	case DifficultyEasy:
		return Penalty{HP: 3, Gold: 0}
	case DifficultyMedium:
		return Penalty{HP: 7, Gold: 5}
	case DifficultyHard:
		return Penalty{HP: 15, Gold: 15}
	case DifficultyEpic:
		return Penalty{HP: 25, Gold: 30}
	default:
		return Penalty{HP: 3, Gold: 0}
	}
}

// StreakMultiplier returns the reward multiplier for a streak of the given
// length. Logarithmic so long streaks stay meaningful without runaway growth.
func StreakMultiplier(days int) float64 {
	if days <= 0 {
		return 1.0
	}
	return 1.0 + math.Log2(float64(days)+1)*StreakMultiplierCoeff
}

// LevelScaling returns the reward multiplier for the hero's level.
func LevelScaling(heroLevel int) float64 {
	return 1.0 + float64(heroLevel)/100.0
}

// StreakBreakPenalty describes the deduction applied when a streak breaks.
// CooldownHours is advisory metadata for clients; nothing enforces a
// completion lockout during the cooldown.
type StreakBreakPenalty struct {
	XPLost        int64
	GoldLost      int64
	CooldownHours int
}

// StreakBreakPenaltyFor returns the tiered penalty for breaking a streak
// of the given length. Streaks of a week or less break for free.
func StreakBreakPenaltyFor(streakDays int) StreakBreakPenalty {
	switch {
	case streakDays <= 7:
		return StreakBreakPenalty{}
	case streakDays <= 30:
		return StreakBreakPenalty{XPLost: 50, GoldLost: 25, CooldownHours: 24}
	case streakDays <= 90:
		return StreakBreakPenalty{XPLost: 150, GoldLost: 75, CooldownHours: 48}
	default:
		return StreakBreakPenalty{XPLost: 300, GoldLost: 150, CooldownHours: 72}
	}
}
