package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/habits/internal/ledger"
	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage/memory"
	"github.com/slok/habits/internal/storage/storagemock"
)

var testNow = time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)

func TestNewBook(t *testing.T) {
	tests := map[string]struct {
		config ledger.BookConfig
		expErr bool
	}{
		"valid config should create the book": {
			config: ledger.BookConfig{Repository: &storagemock.MockRepository{}},
		},
		"missing repository should fail": {
			config: ledger.BookConfig{Logger: log.Noop},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			b, err := ledger.NewBook(test.config)
			if test.expErr {
				require.Error(err)
				require.Nil(b)
			} else {
				require.NoError(err)
				require.NotNil(b)
			}
		})
	}
}

func TestBookApply(t *testing.T) {
	tests := map[string]struct {
		mock     func(m *storagemock.MockRepository)
		amount   int
		reason   model.LedgerReason
		taskKey  string
		expEntry *model.LedgerEntry
		expErrIs error
		expErr   bool
	}{
		"A credit should record the entry and update the balance.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetWallet", mock.Anything).Once().Return(&model.Wallet{Coins: 10, CurrentSteps: 500}, nil)
				m.On("AddLedgerEntry", mock.Anything, model.LedgerEntry{
					ID:        "entry-1",
					Amount:    25,
					Reason:    model.LedgerReasonTaskProgress,
					TaskKey:   "steps",
					Balance:   35,
					CreatedAt: testNow,
				}).Once().Return(nil)
				m.On("UpdateWallet", mock.Anything, model.Wallet{Coins: 35, CurrentSteps: 500}).Once().Return(nil)
			},
			amount:  25,
			reason:  model.LedgerReasonTaskProgress,
			taskKey: "steps",
			expEntry: &model.LedgerEntry{
				ID:        "entry-1",
				Amount:    25,
				Reason:    model.LedgerReasonTaskProgress,
				TaskKey:   "steps",
				Balance:   35,
				CreatedAt: testNow,
			},
		},

		"A debit covered by the balance should be applied.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetWallet", mock.Anything).Once().Return(&model.Wallet{Coins: 10}, nil)
				m.On("AddLedgerEntry", mock.Anything, mock.Anything).Once().Return(nil)
				m.On("UpdateWallet", mock.Anything, model.Wallet{Coins: 0}).Once().Return(nil)
			},
			amount: -10,
			reason: model.LedgerReasonAdjustment,
			expEntry: &model.LedgerEntry{
				ID:        "entry-1",
				Amount:    -10,
				Reason:    model.LedgerReasonAdjustment,
				Balance:   0,
				CreatedAt: testNow,
			},
		},

		"A debit not covered by the balance should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetWallet", mock.Anything).Once().Return(&model.Wallet{Coins: 10}, nil)
			},
			amount:   -11,
			reason:   model.LedgerReasonAdjustment,
			expErr:   true,
			expErrIs: model.ErrInsufficientCoins,
		},

		"A zero amount should fail.": {
			mock:     func(m *storagemock.MockRepository) {},
			amount:   0,
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},

		"A wallet error should fail.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetWallet", mock.Anything).Once().Return(nil, fmt.Errorf("something"))
			},
			amount: 5,
			expErr: true,
		},

		"A ledger error should not touch the wallet.": {
			mock: func(m *storagemock.MockRepository) {
				m.On("GetWallet", mock.Anything).Once().Return(&model.Wallet{}, nil)
				m.On("AddLedgerEntry", mock.Anything, mock.Anything).Once().Return(fmt.Errorf("something"))
			},
			amount: 5,
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			mRepo := &storagemock.MockRepository{}
			mRepo.On("WithinTx", mock.Anything, mock.Anything).Maybe().Return(runTx)
			test.mock(mRepo)

			b, err := ledger.NewBook(ledger.BookConfig{
				Repository: mRepo,
				Clock:      func() time.Time { return testNow },
				IDGen:      func(time.Time) string { return "entry-1" },
			})
			require.NoError(err)

			entry, err := b.Apply(context.Background(), test.amount, test.reason, test.taskKey)
			if test.expErr {
				assert.Error(err)
				if test.expErrIs != nil {
					assert.True(errors.Is(err, test.expErrIs))
				}
			} else if assert.NoError(err) {
				assert.Equal(test.expEntry, entry)
			}

			mRepo.AssertExpectations(t)
		})
	}
}

func TestBookApplyGeneratesULIDs(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	repo, err := memory.NewRepository(memory.RepositoryConfig{})
	require.NoError(err)
	b, err := ledger.NewBook(ledger.BookConfig{Repository: repo})
	require.NoError(err)

	ctx := context.Background()
	e1, err := b.Apply(ctx, 15, model.LedgerReasonTaskProgress, "sharpen-mind")
	require.NoError(err)
	e2, err := b.Apply(ctx, 3, model.LedgerReasonStepsConversion, "")
	require.NoError(err)

	assert.Len(e1.ID, 26)
	assert.NotEqual(e1.ID, e2.ID)
	assert.Equal(18, e2.Balance)

	w, err := repo.GetWallet(ctx)
	require.NoError(err)
	assert.Equal(18, w.Coins)

	entries, err := repo.ListLedgerEntries(ctx)
	require.NoError(err)
	assert.Equal([]model.LedgerEntry{*e1, *e2}, entries)
}

// runTx runs the transaction body straight on the mocked repository.
func runTx(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }

// brokenWalletRepository fails every wallet write.
type brokenWalletRepository struct {
	*memory.Repository
}

func (brokenWalletRepository) UpdateWallet(context.Context, model.Wallet) error {
	return errors.New("wallet unavailable")
}

func TestBookApplyFailedBalanceDropsEntry(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	mem, err := memory.NewRepository(memory.RepositoryConfig{Logger: log.Noop})
	require.NoError(err)
	b, err := ledger.NewBook(ledger.BookConfig{Repository: brokenWalletRepository{Repository: mem}})
	require.NoError(err)

	_, err = b.Apply(ctx, 25, model.LedgerReasonTaskProgress, "steps")
	assert.Error(err)

	entries, err := mem.ListLedgerEntries(ctx)
	require.NoError(err)
	assert.Empty(entries)
}
