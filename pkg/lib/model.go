package lib

import (
	"time"

	"github.com/slok/habits/internal/model"
)

// Category is the coarse grouping of a task.
type Category string

const (
	CategoryMind Category = "Mind"
	CategoryBody Category = "Body"
	CategorySoul Category = "Soul"
)

// Task is a tracked habit with bounded progress.
//
// This is a read-only snapshot, changing it never affects the store.
type Task struct {
	// Key is the unique task identifier.
	Key   string
	Title string
	// Completed is the number of progress increments, in [0, Total].
	Completed int
	// Total is the progress target.
	Total int
	// Points are the coins credited on every progress increment.
	Points   int
	Icon     string
	Category Category
	// Duration, Streak and AutoTracked are display annotations.
	Duration    string
	Streak      string
	AutoTracked bool
}

// Done returns true when the task reached its target.
func (t Task) Done() bool { return t.Completed >= t.Total }

// MyHabit is a weekly habit toggled once per day.
type MyHabit struct {
	Key   string
	Title string
	Icon  string
	// WeekProgress is the number of days done this week, in [0, WeekTotal].
	WeekProgress int
	WeekTotal    int
	// Completed is today's state.
	Completed bool
}

// ActivityCategory is the catalog group of an activity.
type ActivityCategory string

const (
	ActivityCategoryMemory         ActivityCategory = "MEMORY"
	ActivityCategoryFocus          ActivityCategory = "FOCUS"
	ActivityCategoryStepsChallenge ActivityCategory = "10K STEPS CHALLENGE"
	ActivityCategoryQuickAdd       ActivityCategory = "QUICK ADD ACTIVITIES"
	ActivityCategoryBreathing      ActivityCategory = "BREATHING"
	ActivityCategoryRelaxation     ActivityCategory = "RELAXATION"
	ActivityCategoryGratitude      ActivityCategory = "GRATITUDE"
)

// AvailableActivity is a catalog entry that can replace a task.
type AvailableActivity struct {
	Key      string
	Title    string
	Subtitle string
	Icon     string
	Category ActivityCategory
	Points   int
	Duration string
}

// HabitDescriptor is an explore catalog habit that can be tracked with
// [Store.AddTask] or [Store.AddMyHabit].
type HabitDescriptor struct {
	ID     string
	Title  string
	Icon   string
	Points int
	// Category is the explore group (health, mindfulness, productivity, social).
	Category string
}

// LedgerReason is the reason of a coin balance change.
type LedgerReason string

const (
	LedgerReasonTaskProgress    LedgerReason = "task-progress"
	LedgerReasonStepsConversion LedgerReason = "steps-conversion"
	LedgerReasonAdjustment      LedgerReason = "adjustment"
)

// LedgerEntry is a recorded coin balance change.
type LedgerEntry struct {
	// ID is the unique identifier (ULID) of the entry.
	ID      string
	Amount  int
	Reason  LedgerReason
	TaskKey string
	// Balance is the coin balance after the change.
	Balance   int
	CreatedAt time.Time
}

// EventKind identifies a state change.
type EventKind string

const (
	EventTaskAdded      EventKind = "task-added"
	EventTaskProgressed EventKind = "task-progressed"
	EventTaskReplaced   EventKind = "task-replaced"
	EventHabitAdded     EventKind = "habit-added"
	EventHabitToggled   EventKind = "habit-toggled"
	EventCoinsUpdated   EventKind = "coins-updated"
	EventStepsUpdated   EventKind = "steps-updated"
	EventStepsConverted EventKind = "steps-converted"
)

// Event is published to the subscribers after every state change.
type Event struct {
	// Seq numbers the events of a store starting at 1, in mutation order.
	Seq  uint64
	Kind EventKind
	// Key is the affected task or habit key, empty for wallet changes.
	Key string
	At  time.Time
}

// Summary holds values derived from the store state.
type Summary struct {
	TotalTasks     int
	CompletedTasks int
	RemainingTasks int
	// TotalCompletions is the sum of the completed counters of every task.
	TotalCompletions int
	// ProgressPercent is the share of done tasks in [0, 100], rounded half up.
	ProgressPercent int
	// CompletionValue is the sum of completed*points over the tasks. It's a
	// statistic, [Store.Coins] is the balance.
	CompletionValue int
	Coins           int
	CurrentSteps    int
	HabitsDoneToday int
	CategoryCounts  map[Category]int
}

// AddTaskResult is the outcome of [Store.AddTask].
type AddTaskResult struct {
	// Task is the tracked task, the existing one when nothing was added.
	Task  Task
	Added bool
}

// AddMyHabitResult is the outcome of [Store.AddMyHabit].
type AddMyHabitResult struct {
	Habit MyHabit
	Added bool
}

// ProgressResult is the outcome of [Store.UpdateTaskProgress].
type ProgressResult struct {
	// Task is the task after the call, nil for unknown keys.
	Task *Task
	// Advanced is true when the progress was incremented.
	Advanced bool
	// JustCompleted is true only on the increment that reached the total.
	JustCompleted bool
	// CoinsEarned are the coins credited by the increment.
	CoinsEarned int
}

// ToggleResult is the outcome of [Store.ToggleMyHabit].
type ToggleResult struct {
	// Habit is the habit after the toggle, nil for unknown keys.
	Habit   *MyHabit
	Toggled bool
}

// ReplaceResult is the outcome of [Store.ReplaceTask].
type ReplaceResult struct {
	// Task is the new task, nil when nothing was replaced.
	Task     *Task
	Replaced bool
}

// CoinsResult is the outcome of [Store.UpdateCoins].
type CoinsResult struct {
	Coins   int
	Changed bool
	// Entry is the recorded ledger entry, nil when nothing changed.
	Entry *LedgerEntry
}

// StepsResult is the outcome of [Store.UpdateSteps].
type StepsResult struct {
	CurrentSteps int
	Changed      bool
}

// ConvertStepsResult is the outcome of [Store.ConvertSteps].
type ConvertStepsResult struct {
	// CoinsEarned are the coins credited for the steps.
	CoinsEarned int
	// Progress is the outcome of advancing the steps task.
	Progress ProgressResult
}

// HabitFilter filters the explore habit catalog.
type HabitFilter struct {
	// Group is the explore group, empty or "all" match every group.
	Group string
	// Query matches case insensitive title substrings.
	Query string
}

// --- Conversion helpers ---

func fromInternalTask(t model.Task) Task {
	return Task{
		Key:         t.Key,
		Title:       t.Title,
		Completed:   t.Completed,
		Total:       t.Total,
		Points:      t.Points,
		Icon:        t.Icon,
		Category:    Category(t.Category),
		Duration:    t.Duration,
		Streak:      t.Streak,
		AutoTracked: t.AutoTracked,
	}
}

func fromInternalTaskPtr(t *model.Task) *Task {
	if t == nil {
		return nil
	}
	task := fromInternalTask(*t)
	return &task
}

func fromInternalTasks(ts []model.Task) []Task {
	result := make([]Task, len(ts))
	for i, t := range ts {
		result[i] = fromInternalTask(t)
	}
	return result
}

func fromInternalMyHabit(h model.MyHabit) MyHabit {
	return MyHabit{
		Key:          h.Key,
		Title:        h.Title,
		Icon:         h.Icon,
		WeekProgress: h.WeekProgress,
		WeekTotal:    h.WeekTotal,
		Completed:    h.Completed,
	}
}

func fromInternalMyHabits(hs []model.MyHabit) []MyHabit {
	result := make([]MyHabit, len(hs))
	for i, h := range hs {
		result[i] = fromInternalMyHabit(h)
	}
	return result
}

func fromInternalActivity(a model.AvailableActivity) AvailableActivity {
	return AvailableActivity{
		Key:      a.Key,
		Title:    a.Title,
		Subtitle: a.Subtitle,
		Icon:     a.Icon,
		Category: ActivityCategory(a.Category),
		Points:   a.Points,
		Duration: a.Duration,
	}
}

func fromInternalActivities(as []model.AvailableActivity) []AvailableActivity {
	result := make([]AvailableActivity, len(as))
	for i, a := range as {
		result[i] = fromInternalActivity(a)
	}
	return result
}

func toInternalActivity(a AvailableActivity) model.AvailableActivity {
	return model.AvailableActivity{
		Key:      a.Key,
		Title:    a.Title,
		Subtitle: a.Subtitle,
		Icon:     a.Icon,
		Category: model.ActivityCategory(a.Category),
		Points:   a.Points,
		Duration: a.Duration,
	}
}

func fromInternalHabitDescriptor(h model.HabitDescriptor) HabitDescriptor {
	return HabitDescriptor{
		ID:       h.ID,
		Title:    h.Title,
		Icon:     h.Icon,
		Points:   h.Points,
		Category: h.Category,
	}
}

func fromInternalHabitDescriptors(hs []model.HabitDescriptor) []HabitDescriptor {
	result := make([]HabitDescriptor, len(hs))
	for i, h := range hs {
		result[i] = fromInternalHabitDescriptor(h)
	}
	return result
}

func toInternalHabitDescriptor(h HabitDescriptor) model.HabitDescriptor {
	return model.HabitDescriptor{
		ID:       h.ID,
		Title:    h.Title,
		Icon:     h.Icon,
		Points:   h.Points,
		Category: h.Category,
	}
}

func fromInternalLedgerEntry(e model.LedgerEntry) LedgerEntry {
	return LedgerEntry{
		ID:        e.ID,
		Amount:    e.Amount,
		Reason:    LedgerReason(e.Reason),
		TaskKey:   e.TaskKey,
		Balance:   e.Balance,
		CreatedAt: e.CreatedAt,
	}
}

func fromInternalLedgerEntries(es []model.LedgerEntry) []LedgerEntry {
	result := make([]LedgerEntry, len(es))
	for i, e := range es {
		result[i] = fromInternalLedgerEntry(e)
	}
	return result
}

func fromInternalSummary(s model.Summary) Summary {
	counts := make(map[Category]int, len(s.CategoryCounts))
	for c, n := range s.CategoryCounts {
		counts[Category(c)] = n
	}

	return Summary{
		TotalTasks:       s.TotalTasks,
		CompletedTasks:   s.CompletedTasks,
		RemainingTasks:   s.RemainingTasks,
		TotalCompletions: s.TotalCompletions,
		ProgressPercent:  s.ProgressPercent,
		CompletionValue:  s.CompletionValue,
		Coins:            s.Coins,
		CurrentSteps:     s.CurrentSteps,
		HabitsDoneToday:  s.HabitsDoneToday,
		CategoryCounts:   counts,
	}
}
