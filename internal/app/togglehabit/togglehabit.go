package togglehabit

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the toggle habit service.
type ServiceConfig struct {
	Repository storage.HabitRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ToggleHabit"})

	return nil
}

// Service flips today's state of weekly habits.
type Service struct {
	repo   storage.HabitRepository
	logger log.Logger
}

// NewService creates a new toggle habit service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the toggle habit request parameters.
type Request struct {
	HabitKey string
}

// Result is the outcome of a toggle.
type Result struct {
	// Habit is the habit after the toggle, nil if the key is unknown.
	Habit   *model.MyHabit
	Toggled bool
}

// Run toggles the habit. Unknown habits are a no-op.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	habit, err := s.repo.GetMyHabit(ctx, req.HabitKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debugf("habit %q not found, ignoring toggle", req.HabitKey)
			return &Result{}, nil
		}
		return nil, fmt.Errorf("could not get habit: %w", err)
	}

	toggled := habit.Toggle()
	if err := s.repo.UpdateMyHabit(ctx, toggled); err != nil {
		return nil, fmt.Errorf("could not update habit: %w", err)
	}

	s.logger.Debugf("habit %q toggled to %t (%d/%d)", toggled.Key, toggled.Completed, toggled.WeekProgress, toggled.WeekTotal)

	return &Result{Habit: &toggled, Toggled: true}, nil
}
