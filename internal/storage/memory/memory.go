package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository.
type Repository struct {
	tasks    []model.Task
	myHabits []model.MyHabit
	wallet   model.Wallet
	ledger   []model.LedgerEntry
	mu       sync.RWMutex
	// txMu serializes transactions.
	txMu   sync.Mutex
	logger log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		logger: cfg.Logger,
	}, nil
}

// ListTasks returns all tasks in display order.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.tasks), nil
}

// GetTask retrieves a task by key.
func (r *Repository) GetTask(ctx context.Context, key string) (*model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.taskIndex(key)
	if i < 0 {
		return nil, fmt.Errorf("task %s: %w", key, model.ErrNotFound)
	}

	// Return a copy
	taskCopy := r.tasks[i]
	return &taskCopy, nil
}

// CreateTask appends a new task.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.taskIndex(t.Key) >= 0 {
		return fmt.Errorf("task %s: %w", t.Key, model.ErrAlreadyExists)
	}

	r.tasks = append(r.tasks, t)
	r.logger.Debugf("Created task in repository: %s", t.Key)

	return nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.taskIndex(t.Key)
	if i < 0 {
		return fmt.Errorf("task %s: %w", t.Key, model.ErrNotFound)
	}

	r.tasks[i] = t
	r.logger.Debugf("Updated task in repository: %s", t.Key)

	return nil
}

// ReplaceTask replaces the task in place.
func (r *Repository) ReplaceTask(ctx context.Context, oldKey string, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.taskIndex(oldKey)
	if i < 0 {
		return fmt.Errorf("task %s: %w", oldKey, model.ErrNotFound)
	}

	if j := r.taskIndex(t.Key); j >= 0 && j != i {
		return fmt.Errorf("task %s: %w", t.Key, model.ErrAlreadyExists)
	}

	r.tasks[i] = t
	r.logger.Debugf("Replaced task %s in repository with %s", oldKey, t.Key)

	return nil
}

func (r *Repository) taskIndex(key string) int {
	return slices.IndexFunc(r.tasks, func(t model.Task) bool { return t.Key == key })
}

// ListMyHabits returns all habits in display order.
func (r *Repository) ListMyHabits(ctx context.Context) ([]model.MyHabit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.myHabits), nil
}

// GetMyHabit retrieves a habit by key.
func (r *Repository) GetMyHabit(ctx context.Context, key string) (*model.MyHabit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.habitIndex(key)
	if i < 0 {
		return nil, fmt.Errorf("habit %s: %w", key, model.ErrNotFound)
	}

	habitCopy := r.myHabits[i]
	return &habitCopy, nil
}

// CreateMyHabit appends a new habit.
func (r *Repository) CreateMyHabit(ctx context.Context, h model.MyHabit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.habitIndex(h.Key) >= 0 {
		return fmt.Errorf("habit %s: %w", h.Key, model.ErrAlreadyExists)
	}

	r.myHabits = append(r.myHabits, h)
	r.logger.Debugf("Created habit in repository: %s", h.Key)

	return nil
}

// UpdateMyHabit updates an existing habit.
func (r *Repository) UpdateMyHabit(ctx context.Context, h model.MyHabit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.habitIndex(h.Key)
	if i < 0 {
		return fmt.Errorf("habit %s: %w", h.Key, model.ErrNotFound)
	}

	r.myHabits[i] = h
	r.logger.Debugf("Updated habit in repository: %s", h.Key)

	return nil
}

func (r *Repository) habitIndex(key string) int {
	return slices.IndexFunc(r.myHabits, func(h model.MyHabit) bool { return h.Key == key })
}

// GetWallet returns the wallet.
func (r *Repository) GetWallet(ctx context.Context) (*model.Wallet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w := r.wallet
	return &w, nil
}

// UpdateWallet sets the wallet.
func (r *Repository) UpdateWallet(ctx context.Context, w model.Wallet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.wallet = w
	return nil
}

// AddLedgerEntry appends a ledger entry.
func (r *Repository) AddLedgerEntry(ctx context.Context, e model.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ledger {
		if existing.ID == e.ID {
			return fmt.Errorf("ledger entry %s: %w", e.ID, model.ErrAlreadyExists)
		}
	}

	r.ledger = append(r.ledger, e)
	r.logger.Debugf("Added ledger entry in repository: %s (%+d)", e.ID, e.Amount)

	return nil
}

// ListLedgerEntries returns the ledger oldest first.
func (r *Repository) ListLedgerEntries(ctx context.Context) ([]model.LedgerEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.ledger), nil
}

type txKey struct{ r *Repository }

// WithinTx runs fn and restores the state it had before fn if fn fails.
// Writes made outside the transaction while it runs are not isolated from it.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{r}) != nil {
		return fn(ctx)
	}

	r.txMu.Lock()
	defer r.txMu.Unlock()

	snap := r.snapshot()
	if err := fn(context.WithValue(ctx, txKey{r}, true)); err != nil {
		r.restore(snap)
		r.logger.Debugf("Transaction rolled back: %s", err)
		return err
	}

	return nil
}

type state struct {
	tasks    []model.Task
	myHabits []model.MyHabit
	wallet   model.Wallet
	ledger   []model.LedgerEntry
}

func (r *Repository) snapshot() state {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return state{
		tasks:    slices.Clone(r.tasks),
		myHabits: slices.Clone(r.myHabits),
		wallet:   r.wallet,
		ledger:   slices.Clone(r.ledger),
	}
}

func (r *Repository) restore(st state) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = st.tasks
	r.myHabits = st.myHabits
	r.wallet = st.wallet
	r.ledger = st.ledger
}
