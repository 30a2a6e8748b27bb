package addhabit

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the add habit service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.AddHabit"})

	return nil
}

// Service starts tracking catalog habits as weekly habits.
type Service struct {
	repo   storage.HabitRepository
	logger log.Logger
}

// NewService creates a new add habit service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the add habit request parameters.
type Request struct {
	Habit model.HabitDescriptor
}

// Result is the outcome of adding a habit.
type Result struct {
	Habit model.MyHabit
	Added bool
}

// Run appends a new weekly habit with its progress at 0/7. Adding a habit that
// is already tracked is a no-op.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	existing, err := s.repo.GetMyHabit(ctx, req.Habit.ID)
	if err == nil {
		s.logger.Debugf("habit %q already tracked", req.Habit.ID)
		return &Result{Habit: *existing}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("could not get habit: %w", err)
	}

	habit := model.NewMyHabitFromHabit(req.Habit)
	if err := habit.Validate(); err != nil {
		return nil, fmt.Errorf("invalid habit: %w: %w", model.ErrNotValid, err)
	}

	if err := s.repo.CreateMyHabit(ctx, habit); err != nil {
		return nil, fmt.Errorf("could not create habit: %w", err)
	}

	s.logger.Infof("Added habit %q", habit.Key)

	return &Result{Habit: habit, Added: true}, nil
}
