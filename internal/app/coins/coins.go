package coins

import (
	"context"
	"fmt"

	"github.com/slok/habits/internal/ledger"
	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// ServiceConfig is the configuration for the coins service.
type ServiceConfig struct {
	Repository storage.WalletRepository
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Coins"})

	return nil
}

// Service adjusts the coin balance.
type Service struct {
	repo   storage.WalletRepository
	ledger *ledger.Book
	logger log.Logger
}

// NewService creates a new coins service.
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

// Request represents the coins request parameters.
type Request struct {
	// Amount is the signed delta applied to the balance.
	Amount int
}

// Result is the outcome of a balance adjustment.
type Result struct {
	Coins   int
	Changed bool
	// Entry is the recorded ledger entry, nil when nothing changed.
	Entry *model.LedgerEntry
}

// Run adds the amount to the balance. Debits are allowed while the balance
// covers them, a zero amount is a no-op.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Amount == 0 {
		w, err := s.repo.GetWallet(ctx)
		if err != nil {
			return nil, fmt.Errorf("could not get wallet: %w", err)
		}
		return &Result{Coins: w.Coins}, nil
	}

	entry, err := s.ledger.Apply(ctx, req.Amount, model.LedgerReasonAdjustment, "")
	if err != nil {
		return nil, fmt.Errorf("could not update coins: %w", err)
	}

	s.logger.Infof("Coins updated by %+d, balance %d", req.Amount, entry.Balance)

	return &Result{Coins: entry.Balance, Changed: true, Entry: entry}, nil
}
