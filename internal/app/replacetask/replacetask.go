package replacetask

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the replace task service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ReplaceTask"})

	return nil
}

// Service swaps tracked tasks for catalog activities.
type Service struct {
	repo   storage.TaskRepository
	logger log.Logger
}

// NewService creates a new replace task service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the replace task request parameters.
type Request struct {
	OldTaskKey string
	Activity   model.AvailableActivity
}

// Result is the outcome of a replacement.
type Result struct {
	// Task is the new task, nil when nothing was replaced.
	Task     *model.Task
	Replaced bool
}

// Run replaces the task in place with a fresh 0/1 task derived from the
// activity. Unknown tasks are a no-op, and so is an activity whose key is
// already used by another task.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Activity.ValidateReplacement(); err != nil {
		return nil, fmt.Errorf("invalid activity: %w: %w", model.ErrNotValid, err)
	}

	old, err := s.repo.GetTask(ctx, req.OldTaskKey)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debugf("task %q not found, ignoring replacement", req.OldTaskKey)
			return &Result{}, nil
		}
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	if req.Activity.Key != old.Key {
		_, err := s.repo.GetTask(ctx, req.Activity.Key)
		if err == nil {
			s.logger.Warningf("can't replace task %q, %q is already tracked", old.Key, req.Activity.Key)
			return &Result{}, nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("could not get task: %w", err)
		}
	}

	task := req.Activity.ReplacementTask(*old)
	if err := s.repo.ReplaceTask(ctx, old.Key, task); err != nil {
		return nil, fmt.Errorf("could not replace task: %w", err)
	}

	s.logger.Infof("Replaced task %q with %q", old.Key, task.Key)

	return &Result{Task: &task, Replaced: true}, nil
}
