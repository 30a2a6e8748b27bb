package steps

import (
	"context"
	"fmt"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the steps service.
type ServiceConfig struct {
	Repository storage.WalletRepository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Steps"})

	return nil
}

// Service sets the step count reported by the step tracker.
type Service struct {
	repo   storage.WalletRepository
	logger log.Logger
}

// NewService creates a new steps service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the steps request parameters.
type Request struct {
	Steps int
}

// Result is the outcome of setting the steps.
type Result struct {
	CurrentSteps int
	// Changed is false when the count was already the requested one.
	Changed bool
}

// Run overwrites the current steps. Negative counts are rejected.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Steps < 0 {
		return nil, fmt.Errorf("steps can't be negative, got %d: %w", req.Steps, model.ErrNotValid)
	}

	w, err := s.repo.GetWallet(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not get wallet: %w", err)
	}

	if w.CurrentSteps == req.Steps {
		return &Result{CurrentSteps: w.CurrentSteps}, nil
	}

	w.CurrentSteps = req.Steps
	if err := s.repo.UpdateWallet(ctx, *w); err != nil {
		return nil, fmt.Errorf("could not update wallet: %w", err)
	}

	s.logger.Debugf("current steps set to %d", req.Steps)

	return &Result{CurrentSteps: req.Steps, Changed: true}, nil
}
