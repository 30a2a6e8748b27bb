// Package ledger applies coin balance changes to the wallet keeping a record
// of every change.
package ledger

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// BookConfig is the configuration for the coin book.
type BookConfig struct {
	Repository storage.Repository
	Logger     log.Logger
	// Clock returns the current time, defaults to UTC now.
	Clock func() time.Time
	// IDGen returns a new entry ID for the given time, defaults to ULIDs.
	IDGen func(t time.Time) string
}

func (c *BookConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "ledger.Book"})

	if c.Clock == nil {
		c.Clock = func() time.Time { return time.Now().UTC() }
	}

	if c.IDGen == nil {
		c.IDGen = func(t time.Time) string {
			return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
		}
	}

	return nil
}

// Book is the only way coins enter or leave the wallet.
type Book struct {
	repo   storage.Repository
	logger log.Logger
	clock  func() time.Time
	idGen  func(t time.Time) string
}

// NewBook returns a new coin book.
func NewBook(cfg BookConfig) (*Book, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Book{
		repo:   cfg.Repository,
		logger: cfg.Logger,
		clock:  cfg.Clock,
		idGen:  cfg.IDGen,
	}, nil
}

// Apply adds a signed amount to the coin balance and records the change.
// A change that would leave the balance negative fails with
// model.ErrInsufficientCoins and leaves the wallet untouched. The entry and
// the balance are written in a single transaction.
func (b *Book) Apply(ctx context.Context, amount int, reason model.LedgerReason, taskKey string) (*model.LedgerEntry, error) {
	if amount == 0 {
		return nil, fmt.Errorf("amount can't be zero: %w", model.ErrNotValid)
	}

	var entry model.LedgerEntry
	err := b.repo.WithinTx(ctx, func(ctx context.Context) error {
		w, err := b.repo.GetWallet(ctx)
		if err != nil {
			return fmt.Errorf("could not get wallet: %w", err)
		}

		balance := w.Coins + amount
		if balance < 0 {
			return fmt.Errorf("balance %d can't cover %d: %w", w.Coins, amount, model.ErrInsufficientCoins)
		}

		now := b.clock()
		entry = model.LedgerEntry{
			ID:        b.idGen(now),
			Amount:    amount,
			Reason:    reason,
			TaskKey:   taskKey,
			Balance:   balance,
			CreatedAt: now,
		}

		if err := b.repo.AddLedgerEntry(ctx, entry); err != nil {
			return fmt.Errorf("could not record ledger entry: %w", err)
		}

		w.Coins = balance
		if err := b.repo.UpdateWallet(ctx, *w); err != nil {
			return fmt.Errorf("could not update wallet: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	b.logger.Debugf("applied %+d coins (%s), balance %d", amount, reason, entry.Balance)

	return &entry, nil
}
