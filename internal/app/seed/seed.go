package seed

import (
	"context"
	"fmt"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the seed service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Seed"})

	return nil
}

// Service loads the initial state into an empty repository.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new seed service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents the seed request parameters.
type Request struct {
	Seed model.Seed
}

// Run validates the seed and stores its tasks, habits and wallet. The initial
// coins are part of the starting state, they don't go through the ledger.
func (s *Service) Run(ctx context.Context, req Request) error {
	if err := req.Seed.Validate(); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	for _, t := range req.Seed.Tasks {
		if err := s.repo.CreateTask(ctx, t); err != nil {
			return fmt.Errorf("could not create task %q: %w", t.Key, err)
		}
	}

	for _, h := range req.Seed.MyHabits {
		if err := s.repo.CreateMyHabit(ctx, h); err != nil {
			return fmt.Errorf("could not create habit %q: %w", h.Key, err)
		}
	}

	w := model.Wallet{Coins: req.Seed.Coins, CurrentSteps: req.Seed.CurrentSteps}
	if err := s.repo.UpdateWallet(ctx, w); err != nil {
		return fmt.Errorf("could not set wallet: %w", err)
	}

	s.logger.Infof("Seeded %d tasks and %d habits", len(req.Seed.Tasks), len(req.Seed.MyHabits))

	return nil
}
