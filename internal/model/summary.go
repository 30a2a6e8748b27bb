package model

// Summary holds the values derived from the store state.
type Summary struct {
	TotalTasks     int
	CompletedTasks int
	RemainingTasks int
	// TotalCompletions is the sum of the completed counters of every task.
	TotalCompletions int
	// ProgressPercent is the share of done tasks in [0, 100], rounded half up.
	ProgressPercent int
	// CompletionValue is the sum of completed*points over the tasks. It's a
	// statistic, the wallet is the coin balance.
	CompletionValue int
	Coins           int
	CurrentSteps    int
	HabitsDoneToday int
	CategoryCounts  map[Category]int
}
