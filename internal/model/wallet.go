package model

import "time"

// Wallet holds the store level scalars.
type Wallet struct {
	Coins        int
	CurrentSteps int
}

// LedgerReason is the business reason of a coin balance change.
type LedgerReason string

const (
	LedgerReasonTaskProgress    LedgerReason = "task-progress"
	LedgerReasonStepsConversion LedgerReason = "steps-conversion"
	LedgerReasonAdjustment      LedgerReason = "adjustment"
)

// StepsPerCoin is the conversion rate of walked steps into coins.
const StepsPerCoin = 400

// StepsTaskKey is the key of the auto tracked steps task.
const StepsTaskKey = "steps"

// LedgerEntry is a single coin balance change.
type LedgerEntry struct {
	ID      string
	Amount  int
	Reason  LedgerReason
	TaskKey string
	// Balance is the wallet balance after applying the entry.
	Balance   int
	CreatedAt time.Time
}
