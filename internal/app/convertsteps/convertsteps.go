package convertsteps

import (
	"context"
	"fmt"

	"github.com/slok/habits/internal/app/progress"
	"github.com/slok/habits/internal/ledger"
	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the steps conversion service.
type ServiceConfig struct {
	Repository storage.Repository
	Ledger     *ledger.Book
	Progress   *progress.Service
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Ledger == nil {
		return fmt.Errorf("ledger is required")
	}

	if c.Progress == nil {
		return fmt.Errorf("progress service is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.ConvertSteps"})

	return nil
}

// Service converts the walked steps into coins.
type Service struct {
	repo     storage.Repository
	ledger   *ledger.Book
	progress *progress.Service
	logger   log.Logger
}

// NewService creates a new steps conversion service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:     cfg.Repository,
		ledger:   cfg.Ledger,
		progress: cfg.Progress,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the steps conversion request parameters.
type Request struct{}

// Result is the outcome of a steps conversion.
type Result struct {
	// CoinsEarned are the coins credited for the steps.
	CoinsEarned int
	// Progress is the outcome of advancing the steps task.
	Progress progress.Result
}

// Changed reports if the conversion changed any state.
func (r Result) Changed() bool { return r.CoinsEarned > 0 || r.Progress.Advanced }

// Run credits one coin every model.StepsPerCoin steps and then advances the
// steps task, both in a single transaction. The step count is not consumed.
func (s *Service) Run(ctx context.Context, _ Request) (*Result, error) {
	var (
		res   *Result
		steps int
	)
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		w, err := s.repo.GetWallet(ctx)
		if err != nil {
			return fmt.Errorf("could not get wallet: %w", err)
		}
		steps = w.CurrentSteps

		res = &Result{CoinsEarned: w.CurrentSteps / model.StepsPerCoin}
		if res.CoinsEarned > 0 {
			if _, err := s.ledger.Apply(ctx, res.CoinsEarned, model.LedgerReasonStepsConversion, ""); err != nil {
				return fmt.Errorf("could not credit steps: %w", err)
			}
		}

		p, err := s.progress.Run(ctx, progress.Request{TaskKey: model.StepsTaskKey})
		if err != nil {
			return fmt.Errorf("could not progress steps task: %w", err)
		}
		res.Progress = *p

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Converted %d steps into %d coins", steps, res.CoinsEarned)

	return res, nil
}
