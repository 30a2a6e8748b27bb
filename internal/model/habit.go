package model

import "fmt"

// DefaultWeekTotal is the weekly target of habits added from the catalog.
const DefaultWeekTotal = 7

// MyHabit is a weekly cadence habit toggled complete/incomplete each day.
type MyHabit struct {
	Key          string
	Title        string
	Icon         string
	WeekProgress int
	WeekTotal    int
	// Completed is the toggle state for today.
	Completed bool
}

// Toggle flips today's state. The week progress is a saturating counter:
// it never leaves [0, WeekTotal], so a toggle round trip at a boundary loses
// the step that was clamped.
func (h MyHabit) Toggle() MyHabit {
	h.Completed = !h.Completed
	if h.Completed {
		h.WeekProgress = min(h.WeekProgress+1, h.WeekTotal)
	} else {
		h.WeekProgress = max(h.WeekProgress-1, 0)
	}
	return h
}

// Validate checks the habit invariants.
func (h MyHabit) Validate() error {
	if h.Key == "" {
		return fmt.Errorf("key is required")
	}
	if h.WeekTotal < 1 {
		return fmt.Errorf("week total must be positive, got %d", h.WeekTotal)
	}
	if h.WeekProgress < 0 || h.WeekProgress > h.WeekTotal {
		return fmt.Errorf("week progress must be in [0, %d], got %d", h.WeekTotal, h.WeekProgress)
	}
	return nil
}

// NewMyHabitFromHabit returns the weekly habit tracked for a catalog habit.
func NewMyHabitFromHabit(h HabitDescriptor) MyHabit {
	return MyHabit{
		Key:          h.ID,
		Title:        h.Title,
		Icon:         h.Icon,
		WeekProgress: 0,
		WeekTotal:    DefaultWeekTotal,
		Completed:    false,
	}
}
