package lib

import (
	"context"
	"fmt"

	"github.com/slok/habits/internal/app/addhabit"
	"github.com/slok/habits/internal/app/addtask"
	"github.com/slok/habits/internal/app/catalog"
	"github.com/slok/habits/internal/app/coins"
	"github.com/slok/habits/internal/app/convertsteps"
	"github.com/slok/habits/internal/app/progress"
	"github.com/slok/habits/internal/app/replacetask"
	"github.com/slok/habits/internal/app/steps"
	"github.com/slok/habits/internal/app/togglehabit"
)

// Tasks returns the tracked tasks in display order.
func (s *Store) Tasks(ctx context.Context) ([]Task, error) {
	if err := s.read(); err != nil {
		return nil, err
	}

	ts, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not list tasks: %w", err))
	}
	return fromInternalTasks(ts), nil
}

// MyHabits returns the weekly habits in display order.
func (s *Store) MyHabits(ctx context.Context) ([]MyHabit, error) {
	if err := s.read(); err != nil {
		return nil, err
	}

	hs, err := s.repo.ListMyHabits(ctx)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not list habits: %w", err))
	}
	return fromInternalMyHabits(hs), nil
}

// Coins returns the coin balance.
func (s *Store) Coins(ctx context.Context) (int, error) {
	if err := s.read(); err != nil {
		return 0, err
	}

	w, err := s.repo.GetWallet(ctx)
	if err != nil {
		return 0, mapError(fmt.Errorf("could not get wallet: %w", err))
	}
	return w.Coins, nil
}

// CurrentSteps returns the step count.
func (s *Store) CurrentSteps(ctx context.Context) (int, error) {
	if err := s.read(); err != nil {
		return 0, err
	}

	w, err := s.repo.GetWallet(ctx)
	if err != nil {
		return 0, mapError(fmt.Errorf("could not get wallet: %w", err))
	}
	return w.CurrentSteps, nil
}

// Ledger returns every coin balance change, oldest first.
func (s *Store) Ledger(ctx context.Context) ([]LedgerEntry, error) {
	if err := s.read(); err != nil {
		return nil, err
	}

	es, err := s.repo.ListLedgerEntries(ctx)
	if err != nil {
		return nil, mapError(fmt.Errorf("could not list ledger: %w", err))
	}
	return fromInternalLedgerEntries(es), nil
}

// Summary returns the values derived from the current state.
func (s *Store) Summary(ctx context.Context) (*Summary, error) {
	if err := s.read(); err != nil {
		return nil, err
	}

	sum, err := s.summary.Run(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	result := fromInternalSummary(*sum)
	return &result, nil
}

// AddTask starts tracking the habit as a task with a 0/7 progress, appended
// at the end of the task list. Adding a habit whose ID is already a task key
// is a no-op.
//
// Returns [ErrNotValid] if the habit has no ID.
func (s *Store) AddTask(ctx context.Context, habit HabitDescriptor) (*AddTaskResult, error) {
	var result *AddTaskResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.addTask.Run(ctx, addtask.Request{Habit: toInternalHabitDescriptor(habit)})
		if err != nil {
			return nil, err
		}

		result = &AddTaskResult{Task: fromInternalTask(res.Task), Added: res.Added}
		if !res.Added {
			return nil, nil
		}
		return s.event(EventTaskAdded, res.Task.Key), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// AddMyHabit starts tracking the habit as a weekly habit with a 0/7 week
// progress. Adding a habit whose ID is already tracked is a no-op.
//
// Returns [ErrNotValid] if the habit has no ID.
func (s *Store) AddMyHabit(ctx context.Context, habit HabitDescriptor) (*AddMyHabitResult, error) {
	var result *AddMyHabitResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.addHabit.Run(ctx, addhabit.Request{Habit: toInternalHabitDescriptor(habit)})
		if err != nil {
			return nil, err
		}

		result = &AddMyHabitResult{Habit: fromInternalMyHabit(res.Habit), Added: res.Added}
		if !res.Added {
			return nil, nil
		}
		return s.event(EventHabitAdded, res.Habit.Key), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateTaskProgress increments the task progress by one and credits the task
// points to the coin balance. Unknown keys and tasks already at their total are
// a no-op.
//
// The result reports if the increment was the one that completed the task.
func (s *Store) UpdateTaskProgress(ctx context.Context, taskKey string) (*ProgressResult, error) {
	var result *ProgressResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.progress.Run(ctx, progress.Request{TaskKey: taskKey})
		if err != nil {
			return nil, err
		}

		r := fromInternalProgress(*res)
		result = &r
		if !res.Advanced {
			return nil, nil
		}
		return s.event(EventTaskProgressed, taskKey), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ToggleMyHabit flips today's state of the habit. Completing it advances the
// week progress and undoing it moves it back, both saturating at the week
// bounds. Unknown keys are a no-op.
func (s *Store) ToggleMyHabit(ctx context.Context, habitKey string) (*ToggleResult, error) {
	var result *ToggleResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.toggleHabit.Run(ctx, togglehabit.Request{HabitKey: habitKey})
		if err != nil {
			return nil, err
		}

		result = &ToggleResult{Toggled: res.Toggled}
		if res.Habit != nil {
			h := fromInternalMyHabit(*res.Habit)
			result.Habit = &h
		}
		if !res.Toggled {
			return nil, nil
		}
		return s.event(EventHabitToggled, habitKey), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ReplaceTask swaps the task for a fresh 0/1 task derived from the activity,
// keeping its position in the list and its streak. Unknown keys are a no-op,
// and so is an activity whose key is already used by another task.
//
// Activities with an unknown category count for the soul.
//
// Returns [ErrNotValid] if the activity has no key or negative points.
func (s *Store) ReplaceTask(ctx context.Context, oldTaskKey string, activity AvailableActivity) (*ReplaceResult, error) {
	var result *ReplaceResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.replaceTask.Run(ctx, replacetask.Request{
			OldTaskKey: oldTaskKey,
			Activity:   toInternalActivity(activity),
		})
		if err != nil {
			return nil, err
		}

		result = &ReplaceResult{Task: fromInternalTaskPtr(res.Task), Replaced: res.Replaced}
		if !res.Replaced {
			return nil, nil
		}
		return s.event(EventTaskReplaced, res.Task.Key), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateCoins adds the signed amount to the coin balance. A zero amount is a
// no-op.
//
// Returns [ErrInsufficientCoins] if a debit is bigger than the balance.
func (s *Store) UpdateCoins(ctx context.Context, amount int) (*CoinsResult, error) {
	var result *CoinsResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.coins.Run(ctx, coins.Request{Amount: amount})
		if err != nil {
			return nil, err
		}

		result = &CoinsResult{Coins: res.Coins, Changed: res.Changed}
		if res.Entry != nil {
			e := fromInternalLedgerEntry(*res.Entry)
			result.Entry = &e
		}
		if !res.Changed {
			return nil, nil
		}
		return s.event(EventCoinsUpdated, ""), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// UpdateSteps overwrites the step count.
//
// Returns [ErrNotValid] on negative counts.
func (s *Store) UpdateSteps(ctx context.Context, currentSteps int) (*StepsResult, error) {
	var result *StepsResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.steps.Run(ctx, steps.Request{Steps: currentSteps})
		if err != nil {
			return nil, err
		}

		result = &StepsResult{CurrentSteps: res.CurrentSteps, Changed: res.Changed}
		if !res.Changed {
			return nil, nil
		}
		return s.event(EventStepsUpdated, ""), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ConvertSteps credits one coin every 400 steps and advances the steps task.
// The step count is left as it is.
func (s *Store) ConvertSteps(ctx context.Context) (*ConvertStepsResult, error) {
	var result *ConvertStepsResult
	err := s.mutate(func() (*Event, error) {
		res, err := s.convertSteps.Run(ctx, convertsteps.Request{})
		if err != nil {
			return nil, err
		}

		result = &ConvertStepsResult{
			CoinsEarned: res.CoinsEarned,
			Progress:    fromInternalProgress(res.Progress),
		}
		if !res.Changed() {
			return nil, nil
		}
		return s.event(EventStepsConverted, ""), nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func fromInternalProgress(r progress.Result) ProgressResult {
	return ProgressResult{
		Task:          fromInternalTaskPtr(r.Task),
		Advanced:      r.Advanced,
		JustCompleted: r.JustCompleted,
		CoinsEarned:   r.CoinsEarned,
	}
}

// --- Catalogs ---

// AvailableActivities returns the relaxation and mindfulness activity catalog.
// Catalogs are immutable and stay readable after [Store.Close].
func (s *Store) AvailableActivities() []AvailableActivity {
	return fromInternalActivities(s.catalog.Catalog().Available)
}

// BrainGameActivities returns the brain game activity catalog.
func (s *Store) BrainGameActivities() []AvailableActivity {
	return fromInternalActivities(s.catalog.Catalog().BrainGame)
}

// MovementActivities returns the movement activity catalog.
func (s *Store) MovementActivities() []AvailableActivity {
	return fromInternalActivities(s.catalog.Catalog().Movement)
}

// HabitCatalog returns the explore habit catalog.
func (s *Store) HabitCatalog() []HabitDescriptor {
	return fromInternalHabitDescriptors(s.catalog.Catalog().Habits)
}

// HabitGroups returns the explore catalog groups.
func (s *Store) HabitGroups() []string {
	return s.catalog.Groups()
}

// SearchHabitCatalog returns the explore catalog habits matching the filter.
func (s *Store) SearchHabitCatalog(ctx context.Context, filter HabitFilter) []HabitDescriptor {
	hs := s.catalog.Search(ctx, catalog.SearchRequest{Group: filter.Group, Query: filter.Query})
	return fromInternalHabitDescriptors(hs)
}

// HabitByID returns the explore catalog habit with the ID.
//
// Returns [ErrNotFound] if there is no such habit.
func (s *Store) HabitByID(id string) (*HabitDescriptor, error) {
	h, err := s.catalog.FindHabit(id)
	if err != nil {
		return nil, mapError(err)
	}
	result := fromInternalHabitDescriptor(h)
	return &result, nil
}

// ActivityByKey returns the activity with the key from any activity catalog.
//
// Returns [ErrNotFound] if there is no such activity.
func (s *Store) ActivityByKey(key string) (*AvailableActivity, error) {
	a, err := s.catalog.FindActivity(key)
	if err != nil {
		return nil, mapError(err)
	}
	result := fromInternalActivity(a)
	return &result, nil
}

// SuggestKeys returns the known task, habit and catalog keys closest to key,
// closest first.
func (s *Store) SuggestKeys(ctx context.Context, key string) ([]string, error) {
	if err := s.read(); err != nil {
		return nil, err
	}

	keys, err := s.catalog.Suggest(ctx, key)
	if err != nil {
		return nil, mapError(err)
	}
	return keys, nil
}
