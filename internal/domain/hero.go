package domain

import (
	"time"

	"github.com/google/uuid"
)

// Hero is the player character aggregate. All mutation goes through its
// methods so the HP/XP invariants hold: 0 <= CurrentHP <= MaxHP, and
// CurrentXP < XPRequiredForLevel(Level) whenever a method returns.
type Hero struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`

	Level         int   `json:"level"`
	CurrentXP     int64 `json:"current_xp"`
	TotalXPEarned int64 `json:"total_xp_earned"`

	CurrentHP int `json:"current_hp"`
	MaxHP     int `json:"max_hp"`

	Gold int64 `json:"gold"`

	IsDead         bool       `json:"is_dead"`
	DeathCount     int        `json:"death_count"`
	DiedAt         *time.Time `json:"died_at,omitempty"`
	RecoveryEndsAt *time.Time `json:"recovery_ends_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewHero creates a level-1 hero with full HP and the given starting gold
func NewHero(name string, startingGold int64, now time.Time) *Hero {
	maxHP := MaxHPForLevel(1)
	return &Hero{
		ID:        uuid.New(),
		Name:      name,
		Level:     1,
		CurrentHP: maxHP,
		MaxHP:     maxHP,
		Gold:      startingGold,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GainXP adds experience and resolves any level-ups before returning.
// Each level gained recomputes MaxHP and fully heals the hero.
// No-op while dead. Returns the number of levels gained.
func (h *Hero) GainXP(amount int64) int {
	if h.IsDead || amount <= 0 {
		return 0
	}

	h.CurrentXP += amount
	h.TotalXPEarned += amount

	levelsGained := 0
	for h.Level < MaxLevel {
		required := XPRequiredForLevel(h.Level)
		if h.CurrentXP < required {
			break
		}
		h.CurrentXP -= required
		h.Level++
		levelsGained++
		h.MaxHP = MaxHPForLevel(h.Level)
		h.CurrentHP = h.MaxHP
	}

	// At the level cap, surplus XP parks below the threshold so the
	// invariant CurrentXP < XPRequiredForLevel(Level) still holds.
	if h.Level >= MaxLevel {
		if ceiling := XPRequiredForLevel(MaxLevel) - 1; h.CurrentXP > ceiling {
			h.CurrentXP = ceiling
		}
	}

	return levelsGained
}

// TakeDamage subtracts HP, clamped at zero. Dropping to zero kills the
// hero exactly once; overkill damage does not compound the death penalty.
// No-op while dead. Returns true if this damage killed the hero.
func (h *Hero) TakeDamage(amount int, now time.Time) bool {
	if h.IsDead || amount <= 0 {
		return false
	}

	h.CurrentHP -= amount
	if h.CurrentHP > 0 {
		return false
	}
	h.CurrentHP = 0
	h.die(now)
	return true
}

// die applies the death transition: the hero is incapacitated until an
// explicit respawn, loses a slice of pending XP and gold, and comes back
// at a quarter of max HP.
func (h *Hero) die(now time.Time) {
	h.IsDead = true
	h.DeathCount++
	h.DiedAt = &now

	h.CurrentHP = int(float64(h.MaxHP) * DeathHPResetPercent)

	xpPenalty := int64(float64(XPRequiredForLevel(h.Level)) * DeathXPPenaltyPercent)
	h.CurrentXP -= xpPenalty
	if h.CurrentXP < 0 {
		h.CurrentXP = 0
	}

	goldPenalty := int64(float64(h.Gold) * DeathGoldPenaltyPercent)
	h.Gold -= goldPenalty
	if h.Gold < 0 {
		h.Gold = 0
	}
}

// Respawn revives a dead hero and starts the recovery debuff window.
// Returns false if the hero is not dead.
func (h *Hero) Respawn(now time.Time) bool {
	if !h.IsDead {
		return false
	}
	h.IsDead = false
	ends := now.Add(RecoveryDebuffHours * time.Hour)
	h.RecoveryEndsAt = &ends
	h.UpdatedAt = now
	return true
}

// IsInRecovery reports whether the post-respawn debuff window is active
func (h *Hero) IsInRecovery(now time.Time) bool {
	return h.RecoveryEndsAt != nil && now.Before(*h.RecoveryEndsAt)
}

// RecoveryMultiplier returns the reward multiplier for the recovery debuff
func (h *Hero) RecoveryMultiplier(now time.Time) float64 {
	if h.IsInRecovery(now) {
		return RecoveryDebuffMultiplier
	}
	return 1.0
}

// SpendGold deducts gold, clamped at zero
func (h *Hero) SpendGold(amount int64) {
	h.Gold -= amount
	if h.Gold < 0 {
		h.Gold = 0
	}
}

// SpendXP deducts pending XP, clamped at zero. Levels are never lost.
func (h *Hero) SpendXP(amount int64) {
	h.CurrentXP -= amount
	if h.CurrentXP < 0 {
		h.CurrentXP = 0
	}
}

// XPForNextLevel returns the threshold the hero is working toward
func (h *Hero) XPForNextLevel() int64 {
	return XPRequiredForLevel(h.Level)
}
