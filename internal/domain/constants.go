package domain

// Leveling curve constants
const (
	BaseXP        = 100
	XPExponent    = 1.8
	XPScaleFactor = 50.0

	BaseHP     = 50
	HPPerLevel = 5
	MaxLevel   = 999
)

// Death and recovery constants
const (
	DeathHPResetPercent       = 0.25
	DeathXPPenaltyPercent     = 0.10
	DeathGoldPenaltyPercent   = 0.20
	DeathStreakPenaltyPercent = 0.50

	RecoveryDebuffHours      = 4
	RecoveryDebuffMultiplier = 0.75

	PenaltyPeriodHours      = 4
	PenaltyPeriodMultiplier = 0.75
)

// Streak constants
const (
	StreakMultiplierCoeff = 0.15
	StreakTierDays        = 30

	MaxFreezeCharges  = 3
	StreakFreezeHours = 24

	// FreezeChargeGoldCost is the gold price of one freeze charge
	FreezeChargeGoldCost = 50
)

// Economy constants
const (
	DailyTaskCap        = 50
	DefaultStartingGold = 100
)
