package model

import "fmt"

// ActivityCategory is the catalog group of an available activity.
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

// IsValid reports if the activity category is one of the known catalog groups.
func (c ActivityCategory) IsValid() bool {
	switch c {
	case ActivityCategoryMemory, ActivityCategoryFocus,
		ActivityCategoryStepsChallenge, ActivityCategoryQuickAdd,
		ActivityCategoryBreathing, ActivityCategoryRelaxation, ActivityCategoryGratitude:
		return true
	default:
		return false
	}
}

// TaskCategory maps the activity group into the task category it counts for.
func (c ActivityCategory) TaskCategory() Category {
	switch c {
	case ActivityCategoryMemory, ActivityCategoryFocus:
		return CategoryMind
	case ActivityCategoryStepsChallenge, ActivityCategoryQuickAdd:
		return CategoryBody
	default:
		return CategorySoul
	}
}

// AvailableActivity is an immutable catalog entry that can replace a task.
type AvailableActivity struct {
	Key      string
	Title    string
	Subtitle string
	Icon     string
	Category ActivityCategory
	Points   int
	Duration string
}

// Validate checks the activity catalog entry.
func (a AvailableActivity) Validate() error {
	if err := a.ValidateReplacement(); err != nil {
		return err
	}
	if !a.Category.IsValid() {
		return fmt.Errorf("unknown activity category %q", a.Category)
	}
	return nil
}

// ValidateReplacement checks the activity can take the place of a task.
// Unknown categories are accepted, they count as soul.
func (a AvailableActivity) ValidateReplacement() error {
	if a.Key == "" {
		return fmt.Errorf("key is required")
	}
	if a.Points < 0 {
		return fmt.Errorf("points can't be negative")
	}
	return nil
}

// ReplacementTask returns the task that takes the place of old when it's
// swapped for this activity. Progress restarts at 0/1 and the streak of the
// replaced task is carried over.
func (a AvailableActivity) ReplacementTask(old Task) Task {
	return Task{
		Key:       a.Key,
		Title:     a.Title,
		Completed: 0,
		Total:     1,
		Points:    a.Points,
		Icon:      a.Icon,
		Category:  a.Category.TaskCategory(),
		Duration:  a.Subtitle,
		Streak:    old.Streak,
	}
}

// Catalog groups the immutable catalogs offered to the user.
type Catalog struct {
	Available []AvailableActivity
	BrainGame []AvailableActivity
	Movement  []AvailableActivity
	// Habits is the explore catalog used to add new tasks and habits.
	Habits []HabitDescriptor
}
