package storage

import (
	"context"

	"github.com/slok/habits/internal/model"
)

// Repository is the interface for the habit state. Implementations keep the
// state volatile, nothing outlives the process.
type Repository interface {
	TaskRepository
	HabitRepository
	WalletRepository
	Transactioner
}

// Transactioner groups repository writes so they are applied all or nothing.
type Transactioner interface {
	// WithinTx runs fn inside a transaction carried by the context passed to
	// fn. Calls made with that context are discarded if fn returns an error.
	// A nested WithinTx joins the running transaction.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TaskRepository stores the tracked tasks in display order.
type TaskRepository interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, key string) (*model.Task, error)
	// CreateTask appends a task at the end of the list.
	CreateTask(ctx context.Context, t model.Task) error
	UpdateTask(ctx context.Context, t model.Task) error
	// ReplaceTask swaps the task identified by oldKey with t, keeping its position.
	ReplaceTask(ctx context.Context, oldKey string, t model.Task) error
}

// HabitRepository stores the weekly habits in display order.
type HabitRepository interface {
	ListMyHabits(ctx context.Context) ([]model.MyHabit, error)
	GetMyHabit(ctx context.Context, key string) (*model.MyHabit, error)
	CreateMyHabit(ctx context.Context, h model.MyHabit) error
	UpdateMyHabit(ctx context.Context, h model.MyHabit) error
}

// WalletRepository stores the coin balance, the step count and the coin ledger.
type WalletRepository interface {
	GetWallet(ctx context.Context) (*model.Wallet, error)
	UpdateWallet(ctx context.Context, w model.Wallet) error
	AddLedgerEntry(ctx context.Context, e model.LedgerEntry) error
	// ListLedgerEntries returns the entries oldest first.
	ListLedgerEntries(ctx context.Context) ([]model.LedgerEntry, error)
}
