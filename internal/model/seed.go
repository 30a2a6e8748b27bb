package model

import (
	"errors"
	"fmt"
)

// Seed is the initial state of a store.
type Seed struct {
	Tasks        []Task
	MyHabits     []MyHabit
	Catalog      Catalog
	Coins        int
	CurrentSteps int
}

// Validate checks the seed is a valid initial state.
func (s Seed) Validate() error {
	var errs []error

	taskKeys := map[string]bool{}
	for i, t := range s.Tasks {
		if err := t.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("task %d: %w", i, err))
			continue
		}
		if taskKeys[t.Key] {
			errs = append(errs, fmt.Errorf("task %q is duplicated", t.Key))
		}
		taskKeys[t.Key] = true
	}

	habitKeys := map[string]bool{}
	for i, h := range s.MyHabits {
		if err := h.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("habit %d: %w", i, err))
			continue
		}
		if habitKeys[h.Key] {
			errs = append(errs, fmt.Errorf("habit %q is duplicated", h.Key))
		}
		habitKeys[h.Key] = true
	}

	catalogs := map[string][]AvailableActivity{
		"available":  s.Catalog.Available,
		"brain game": s.Catalog.BrainGame,
		"movement":   s.Catalog.Movement,
	}
	for name, activities := range catalogs {
		for i, a := range activities {
			if err := a.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s activity %d: %w", name, i, err))
			}
		}
	}

	for i, h := range s.Catalog.Habits {
		if h.ID == "" {
			errs = append(errs, fmt.Errorf("catalog habit %d: id is required", i))
		}
	}

	if s.Coins < 0 {
		errs = append(errs, fmt.Errorf("coins can't be negative"))
	}
	if s.CurrentSteps < 0 {
		errs = append(errs, fmt.Errorf("current steps can't be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrNotValid, errors.Join(errs...))
	}

	return nil
}
