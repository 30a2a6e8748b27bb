package summary

import (
	"context"
	"fmt"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the summary service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Summary"})

	return nil
}

// Service computes the values derived from the state.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new summary service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Run returns the current summary.
func (s *Service) Run(ctx context.Context) (*model.Summary, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	habits, err := s.repo.ListMyHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list habits: %w", err)
	}

	w, err := s.repo.GetWallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get wallet: %w", err)
	}

	sum := &model.Summary{
		TotalTasks:     len(tasks),
		Coins:          w.Coins,
		CurrentSteps:   w.CurrentSteps,
		CategoryCounts: map[model.Category]int{},
	}

	for _, t := range tasks {
		if t.Done() {
			sum.CompletedTasks++
		}
		sum.TotalCompletions += t.Completed
		sum.CompletionValue += t.Completed * t.Points
		if t.Category != "" {
			sum.CategoryCounts[t.Category]++
		}
	}
	sum.RemainingTasks = sum.TotalTasks - sum.CompletedTasks
	if sum.TotalTasks > 0 {
		sum.ProgressPercent = (sum.CompletedTasks*200 + sum.TotalTasks) / (2 * sum.TotalTasks)
	}

	for _, h := range habits {
		if h.Completed {
			sum.HabitsDoneToday++
		}
	}

	return sum, nil
}
