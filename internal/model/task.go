package model

import "fmt"

// Category is the coarse grouping of a task.
type Category string

const (
	CategoryMind Category = "Mind"
	CategoryBody Category = "Body"
	CategorySoul Category = "Soul"
)

// IsValid reports if the category is known. Tasks may have no category.
func (c Category) IsValid() bool {
	switch c {
	case "", CategoryMind, CategoryBody, CategorySoul:
		return true
	default:
		return false
	}
}

// DefaultTaskTotal is the progress target of tasks added from the habit
// catalog: once per day for a week.
const DefaultTaskTotal = 7

// Task is a trackable habit/activity instance with bounded progress.
type Task struct {
	Key       string
	Title     string
	Completed int
	Total     int
	Points    int
	Icon      string
	Category  Category

	// Display only annotations.
	Duration    string
	Streak      string
	AutoTracked bool
}

// Done returns true when the task reached its progress target.
func (t Task) Done() bool { return t.Completed >= t.Total }

// Validate checks the task invariants.
func (t Task) Validate() error {
	if t.Key == "" {
		return fmt.Errorf("key is required")
	}
	if t.Total < 1 {
		return fmt.Errorf("total must be positive, got %d", t.Total)
	}
	if t.Completed < 0 || t.Completed > t.Total {
		return fmt.Errorf("completed must be in [0, %d], got %d", t.Total, t.Completed)
	}
	if t.Points < 0 {
		return fmt.Errorf("points can't be negative")
	}
	if !t.Category.IsValid() {
		return fmt.Errorf("unknown category %q", t.Category)
	}
	return nil
}

// HabitDescriptor describes a candidate habit from the explore catalog that
// can be tracked as a task or as one of my habits.
type HabitDescriptor struct {
	ID       string
	Title    string
	Icon     string
	Points   int
	Category string
}

// NewTaskFromHabit returns the task tracked for a catalog habit.
func NewTaskFromHabit(h HabitDescriptor) Task {
	return Task{
		Key:       h.ID,
		Title:     h.Title,
		Completed: 0,
		Total:     DefaultTaskTotal,
		Points:    h.Points,
		Icon:      h.Icon,
	}
}
