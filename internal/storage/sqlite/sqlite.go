package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage/sqlite/migrations"
)

// inMemoryDSN is a private database that lives as long as its single connection.
const inMemoryDSN = ":memory:"

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository backed by an
// in-memory database, state is lost when the repository is closed.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := sql.Open("sqlite", inMemoryDSN)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// Every new connection would open a different empty database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	migrator, err := migrations.NewMigrator(migrations.MigratorConfig{DB: db, Logger: cfg.Logger})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	version, err := migrator.Up(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite in-memory repository initialized with schema version %d", version)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKey struct{ r *Repository }

// conn returns the transaction running in ctx, if any, or the database.
func (r *Repository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{r}).(*sql.Tx); ok {
		return tx
	}
	return r.db
}

// WithinTx runs fn inside a database transaction. The single connection is
// held by the transaction until it finishes, so fn must use the context it
// receives for every call.
func (r *Repository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{r}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // Rollback is safe to call after Commit

	if err := fn(context.WithValue(ctx, txKey{r}, tx)); err != nil {
		r.logger.Debugf("Transaction rolled back: %s", err)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

const taskColumns = `task_key, title, completed, total, points, icon, category, duration, streak, auto_tracked`

// ListTasks returns all tasks in display order.
func (r *Repository) ListTasks(ctx context.Context) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY position ASC`

	rows, err := r.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return tasks, nil
}

// GetTask retrieves a task by key.
func (r *Repository) GetTask(ctx context.Context, key string) (*model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_key = ?`

	t, err := scanTask(r.conn(ctx).QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %s: %w", key, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query task: %w", err)
	}

	return &t, nil
}

// CreateTask appends a new task.
func (r *Repository) CreateTask(ctx context.Context, t model.Task) error {
	query := `
		INSERT INTO tasks (position, ` + taskColumns + `)
		VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM tasks), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.conn(ctx).ExecContext(ctx, query,
		t.Key, t.Title, t.Completed, t.Total, t.Points, t.Icon,
		string(t.Category), t.Duration, t.Streak, t.AutoTracked,
	)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("task %s: %w", t.Key, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert task: %w", err)
	}

	r.logger.Debugf("Created task in repository: %s", t.Key)
	return nil
}

// UpdateTask updates an existing task.
func (r *Repository) UpdateTask(ctx context.Context, t model.Task) error {
	return r.ReplaceTask(ctx, t.Key, t)
}

// ReplaceTask replaces the task in place.
func (r *Repository) ReplaceTask(ctx context.Context, oldKey string, t model.Task) error {
	query := `
		UPDATE tasks
		SET task_key = ?, title = ?, completed = ?, total = ?, points = ?, icon = ?,
			category = ?, duration = ?, streak = ?, auto_tracked = ?
		WHERE task_key = ?
	`

	result, err := r.conn(ctx).ExecContext(ctx, query,
		t.Key, t.Title, t.Completed, t.Total, t.Points, t.Icon,
		string(t.Category), t.Duration, t.Streak, t.AutoTracked,
		oldKey,
	)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("task %s: %w", t.Key, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not update task: %w", err)
	}

	if err := checkAffected(result); err != nil {
		return fmt.Errorf("task %s: %w", oldKey, err)
	}

	r.logger.Debugf("Updated task in repository: %s", t.Key)
	return nil
}

const habitColumns = `habit_key, title, icon, week_progress, week_total, completed`

// ListMyHabits returns all habits in display order.
func (r *Repository) ListMyHabits(ctx context.Context) ([]model.MyHabit, error) {
	query := `SELECT ` + habitColumns + ` FROM my_habits ORDER BY position ASC`

	rows, err := r.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query habits: %w", err)
	}
	defer rows.Close()

	habits := []model.MyHabit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		habits = append(habits, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return habits, nil
}

// GetMyHabit retrieves a habit by key.
func (r *Repository) GetMyHabit(ctx context.Context, key string) (*model.MyHabit, error) {
	query := `SELECT ` + habitColumns + ` FROM my_habits WHERE habit_key = ?`

	h, err := scanHabit(r.conn(ctx).QueryRowContext(ctx, query, key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("habit %s: %w", key, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query habit: %w", err)
	}

	return &h, nil
}

// CreateMyHabit appends a new habit.
func (r *Repository) CreateMyHabit(ctx context.Context, h model.MyHabit) error {
	query := `
		INSERT INTO my_habits (position, ` + habitColumns + `)
		VALUES ((SELECT COALESCE(MAX(position), 0) + 1 FROM my_habits), ?, ?, ?, ?, ?, ?)
	`

	_, err := r.conn(ctx).ExecContext(ctx, query, h.Key, h.Title, h.Icon, h.WeekProgress, h.WeekTotal, h.Completed)
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("habit %s: %w", h.Key, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert habit: %w", err)
	}

	r.logger.Debugf("Created habit in repository: %s", h.Key)
	return nil
}

// UpdateMyHabit updates an existing habit.
func (r *Repository) UpdateMyHabit(ctx context.Context, h model.MyHabit) error {
	query := `
		UPDATE my_habits
		SET title = ?, icon = ?, week_progress = ?, week_total = ?, completed = ?
		WHERE habit_key = ?
	`

	result, err := r.conn(ctx).ExecContext(ctx, query, h.Title, h.Icon, h.WeekProgress, h.WeekTotal, h.Completed, h.Key)
	if err != nil {
		return fmt.Errorf("could not update habit: %w", err)
	}

	if err := checkAffected(result); err != nil {
		return fmt.Errorf("habit %s: %w", h.Key, err)
	}

	r.logger.Debugf("Updated habit in repository: %s", h.Key)
	return nil
}

// GetWallet returns the wallet.
func (r *Repository) GetWallet(ctx context.Context) (*model.Wallet, error) {
	var w model.Wallet
	err := r.conn(ctx).QueryRowContext(ctx, `SELECT coins, current_steps FROM wallet WHERE id = 1`).Scan(&w.Coins, &w.CurrentSteps)
	if err != nil {
		return nil, fmt.Errorf("could not query wallet: %w", err)
	}

	return &w, nil
}

// UpdateWallet sets the wallet.
func (r *Repository) UpdateWallet(ctx context.Context, w model.Wallet) error {
	_, err := r.conn(ctx).ExecContext(ctx, `UPDATE wallet SET coins = ?, current_steps = ? WHERE id = 1`, w.Coins, w.CurrentSteps)
	if err != nil {
		return fmt.Errorf("could not update wallet: %w", err)
	}

	return nil
}

// AddLedgerEntry appends a ledger entry.
func (r *Repository) AddLedgerEntry(ctx context.Context, e model.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (id, amount, reason, task_key, balance, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.conn(ctx).ExecContext(ctx, query, e.ID, e.Amount, string(e.Reason), e.TaskKey, e.Balance, e.CreatedAt.Unix())
	if err != nil {
		if isUniqueErr(err) {
			return fmt.Errorf("ledger entry %s: %w", e.ID, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert ledger entry: %w", err)
	}

	r.logger.Debugf("Added ledger entry in repository: %s (%+d)", e.ID, e.Amount)
	return nil
}

// ListLedgerEntries returns the ledger oldest first.
func (r *Repository) ListLedgerEntries(ctx context.Context) ([]model.LedgerEntry, error) {
	query := `
		SELECT id, amount, reason, task_key, balance, created_at
		FROM ledger_entries
		ORDER BY rowid ASC
	`

	rows, err := r.conn(ctx).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []model.LedgerEntry{}
	for rows.Next() {
		var e model.LedgerEntry
		var reason string
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Amount, &reason, &e.TaskKey, &e.Balance, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan row: %w", err)
		}
		e.Reason = model.LedgerReason(reason)
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (model.Task, error) {
	var t model.Task
	var category string

	err := s.Scan(
		&t.Key,
		&t.Title,
		&t.Completed,
		&t.Total,
		&t.Points,
		&t.Icon,
		&category,
		&t.Duration,
		&t.Streak,
		&t.AutoTracked,
	)
	if err != nil {
		return model.Task{}, err
	}
	t.Category = model.Category(category)

	return t, nil
}

func scanHabit(s scanner) (model.MyHabit, error) {
	var h model.MyHabit

	err := s.Scan(
		&h.Key,
		&h.Title,
		&h.Icon,
		&h.WeekProgress,
		&h.WeekTotal,
		&h.Completed,
	)
	if err != nil {
		return model.MyHabit{}, err
	}

	return h, nil
}

func checkAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}

func isUniqueErr(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
