package addtask

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the add task service.
type ServiceConfig struct {
	Repository storage.TaskRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.AddTask"})

	return nil
}

// Service starts tracking catalog habits as tasks.
type Service struct {
	repo   storage.TaskRepository
	logger log.Logger
}

// NewService creates a new add task service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the add task request parameters.
type Request struct {
	Habit model.HabitDescriptor
}

// Result is the outcome of adding a task.
type Result struct {
	// Task is the tracked task, the existing one when nothing was added.
	Task model.Task
	// Added is false when a task with the same key was already tracked.
	Added bool
}

// Run appends a new task for the habit with its progress at 0/7. Adding a
// habit that is already tracked is a no-op.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	existing, err := s.repo.GetTask(ctx, req.Habit.ID)
	if err == nil {
		s.logger.Debugf("task %q already tracked", req.Habit.ID)
		return &Result{Task: *existing}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	task := model.NewTaskFromHabit(req.Habit)
	if err := task.Validate(); err != nil {
		return nil, fmt.Errorf("invalid habit: %w: %w", model.ErrNotValid, err)
	}

	if err := s.repo.CreateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	s.logger.Infof("Added task %q", task.Key)

	return &Result{Task: task, Added: true}, nil
}
