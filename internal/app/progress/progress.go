package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/slok/habits/internal/ledger"
	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the task progress service.
type ServiceConfig struct {
	Repository storage.Repository
	Ledger     *ledger.Book
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Ledger == nil {
		return fmt.Errorf("ledger is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Progress"})

	return nil
}

// Service advances task progress and credits the task points.
type Service struct {
	repo   storage.Repository
	ledger *ledger.Book
	logger log.Logger
}

// NewService creates a new task progress service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		ledger: cfg.Ledger,
		logger: cfg.Logger,
	}, nil
}

// Request represents the task progress request parameters.
type Request struct {
	TaskKey string
}

// Result is the outcome of a progress increment.
type Result struct {
	// Task is the task after the call, nil if the key is unknown.
	Task *model.Task
	// Advanced is true when the progress was incremented.
	Advanced bool
	// JustCompleted is true only on the increment that reached the total.
	JustCompleted bool
	// CoinsEarned are the coins credited by the increment.
	CoinsEarned int
}

// Run increments the task progress by one. Unknown tasks and tasks already at
// their total are a no-op. The progress and the points credit are written in
// a single transaction.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	var res *Result
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.advance(ctx, req.TaskKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	if res.JustCompleted {
		s.logger.Infof("Task %q completed", res.Task.Key)
	}

	return res, nil
}

func (s *Service) advance(ctx context.Context, key string) (*Result, error) {
	task, err := s.repo.GetTask(ctx, key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Debugf("task %q not found, ignoring progress", key)
			return &Result{}, nil
		}
		return nil, fmt.Errorf("could not get task: %w", err)
	}

	if task.Done() {
		return &Result{Task: task}, nil
	}

	task.Completed++
	if err := s.repo.UpdateTask(ctx, *task); err != nil {
		return nil, fmt.Errorf("could not update task: %w", err)
	}

	res := &Result{
		Task:          task,
		Advanced:      true,
		JustCompleted: task.Done(),
	}

	if task.Points > 0 {
		if _, err := s.ledger.Apply(ctx, task.Points, model.LedgerReasonTaskProgress, task.Key); err != nil {
			return nil, fmt.Errorf("could not credit task points: %w", err)
		}
		res.CoinsEarned = task.Points
	}

	return res, nil
}
