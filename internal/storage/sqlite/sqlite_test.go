package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage/sqlite"
)

func taskFixture(key string) model.Task {
	return model.Task{
		Key:         key,
		Title:       "Task " + key,
		Completed:   0,
		Total:       1,
		Points:      25,
		Icon:        "👟",
		Category:    model.CategoryBody,
		Duration:    "Auto-tracked",
		Streak:      "7-day streak",
		AutoTracked: true,
	}
}

func newRepo(t *testing.T) *sqlite.Repository {
	t.Helper()
	repo, err := sqlite.NewRepository(context.Background(), sqlite.RepositoryConfig{
		Logger: log.Noop,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestTasks(t *testing.T) {
	tests := map[string]struct {
		actions func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error
		expErr  error
	}{
		"Created tasks should be listed in insertion order with all their fields.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("sharpen-mind")))
				require.NoError(t, repo.CreateTask(ctx, taskFixture("steps")))
				require.NoError(t, repo.CreateTask(ctx, taskFixture("meditation")))

				tasks, err := repo.ListTasks(ctx)
				require.NoError(t, err)
				assert.Equal(t, []model.Task{taskFixture("sharpen-mind"), taskFixture("steps"), taskFixture("meditation")}, tasks)
				return nil
			},
		},

		"Listing without tasks should return an empty list.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				tasks, err := repo.ListTasks(ctx)
				require.NoError(t, err)
				assert.Empty(t, tasks)
				return nil
			},
		},

		"Creating a duplicated task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("steps")))
				return repo.CreateTask(ctx, taskFixture("steps"))
			},
			expErr: model.ErrAlreadyExists,
		},

		"Getting a missing task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				_, err := repo.GetTask(ctx, "steps")
				return err
			},
			expErr: model.ErrNotFound,
		},

		"Updating a task should store the new progress.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("steps")))

				task := taskFixture("steps")
				task.Completed = 1
				require.NoError(t, repo.UpdateTask(ctx, task))

				got, err := repo.GetTask(ctx, "steps")
				require.NoError(t, err)
				assert.Equal(t, task, *got)
				return nil
			},
		},

		"Updating a missing task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				return repo.UpdateTask(ctx, taskFixture("steps"))
			},
			expErr: model.ErrNotFound,
		},

		"Replacing a task should keep its position.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("sharpen-mind")))
				require.NoError(t, repo.CreateTask(ctx, taskFixture("steps")))
				require.NoError(t, repo.ReplaceTask(ctx, "sharpen-mind", taskFixture("memory-grid")))

				tasks, err := repo.ListTasks(ctx)
				require.NoError(t, err)
				require.Len(t, tasks, 2)
				assert.Equal(t, "memory-grid", tasks[0].Key)
				assert.Equal(t, "steps", tasks[1].Key)

				_, err = repo.GetTask(ctx, "sharpen-mind")
				assert.True(t, errors.Is(err, model.ErrNotFound))
				return nil
			},
		},

		"Replacing a task with the key of another task should fail.": {
			actions: func(ctx context.Context, t *testing.T, repo *sqlite.Repository) error {
				require.NoError(t, repo.CreateTask(ctx, taskFixture("sharpen-mind")))
				require.NoError(t, repo.CreateTask(ctx, taskFixture("steps")))
				return repo.ReplaceTask(ctx, "sharpen-mind", taskFixture("steps"))
			},
			expErr: model.ErrAlreadyExists,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			repo := newRepo(t)

			err := test.actions(context.Background(), t, repo)
			if test.expErr != nil {
				assert.True(t, errors.Is(err, test.expErr), "got: %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMyHabits(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	water := model.MyHabit{Key: "water", Title: "Drink water", Icon: "💧", WeekProgress: 3, WeekTotal: 7}
	read := model.MyHabit{Key: "read", Title: "Read", Icon: "📚", WeekProgress: 0, WeekTotal: 5}
	require.NoError(t, repo.CreateMyHabit(ctx, water))
	require.NoError(t, repo.CreateMyHabit(ctx, read))

	err := repo.CreateMyHabit(ctx, water)
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))

	water.WeekProgress = 4
	water.Completed = true
	require.NoError(t, repo.UpdateMyHabit(ctx, water))

	got, err := repo.GetMyHabit(ctx, "water")
	require.NoError(t, err)
	assert.Equal(t, water, *got)

	habits, err := repo.ListMyHabits(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.MyHabit{water, read}, habits)

	err = repo.UpdateMyHabit(ctx, model.MyHabit{Key: "missing", WeekTotal: 7})
	assert.True(t, errors.Is(err, model.ErrNotFound))

	_, err = repo.GetMyHabit(ctx, "missing")
	assert.True(t, errors.Is(err, model.ErrNotFound))
}

func TestWalletAndLedger(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)

	w, err := repo.GetWallet(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Wallet{}, *w)

	require.NoError(t, repo.UpdateWallet(ctx, model.Wallet{Coins: 40, CurrentSteps: 5000}))
	w, err = repo.GetWallet(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.Wallet{Coins: 40, CurrentSteps: 5000}, *w)

	now := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	e1 := model.LedgerEntry{ID: "01H2QWERTYASDFGZXCVBNMLKJB", Amount: 25, Reason: model.LedgerReasonTaskProgress, TaskKey: "steps", Balance: 25, CreatedAt: now}
	e2 := model.LedgerEntry{ID: "01H2QWERTYASDFGZXCVBNMLKJA", Amount: 15, Reason: model.LedgerReasonStepsConversion, Balance: 40, CreatedAt: now.Add(time.Second)}
	require.NoError(t, repo.AddLedgerEntry(ctx, e1))
	require.NoError(t, repo.AddLedgerEntry(ctx, e2))

	err = repo.AddLedgerEntry(ctx, e1)
	assert.True(t, errors.Is(err, model.ErrAlreadyExists))

	entries, err := repo.ListLedgerEntries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.LedgerEntry{e1, e2}, entries)
}

func TestRepositoriesAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo1 := newRepo(t)
	repo2 := newRepo(t)

	require.NoError(t, repo1.CreateTask(ctx, taskFixture("steps")))

	tasks, err := repo2.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestWithinTx(t *testing.T) {
	errWrite := errors.New("write failed")
	now := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		fn           func(ctx context.Context, repo *sqlite.Repository) error
		expErr       error
		expCompleted int
		expCoins     int
		expLedger    int
	}{
		"A successful transaction should commit every write.": {
			fn: func(ctx context.Context, repo *sqlite.Repository) error {
				task := taskFixture("steps")
				task.Completed = 1
				if err := repo.UpdateTask(ctx, task); err != nil {
					return err
				}
				if err := repo.AddLedgerEntry(ctx, model.LedgerEntry{ID: "e1", Amount: 25, Balance: 35, CreatedAt: now}); err != nil {
					return err
				}
				return repo.UpdateWallet(ctx, model.Wallet{Coins: 35})
			},
			expCompleted: 1,
			expCoins:     35,
			expLedger:    1,
		},

		"A failed transaction should roll back every write.": {
			fn: func(ctx context.Context, repo *sqlite.Repository) error {
				task := taskFixture("steps")
				task.Completed = 1
				if err := repo.UpdateTask(ctx, task); err != nil {
					return err
				}
				if err := repo.AddLedgerEntry(ctx, model.LedgerEntry{ID: "e1", Amount: 25, Balance: 35, CreatedAt: now}); err != nil {
					return err
				}
				return errWrite
			},
			expErr:   errWrite,
			expCoins: 10,
		},

		"A nested transaction should join the running one.": {
			fn: func(ctx context.Context, repo *sqlite.Repository) error {
				if err := repo.UpdateWallet(ctx, model.Wallet{Coins: 99}); err != nil {
					return err
				}
				return repo.WithinTx(ctx, func(ctx context.Context) error {
					return errWrite
				})
			},
			expErr:   errWrite,
			expCoins: 10,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)
			ctx := context.Background()

			repo := newRepo(t)
			require.NoError(repo.CreateTask(ctx, taskFixture("steps")))
			require.NoError(repo.UpdateWallet(ctx, model.Wallet{Coins: 10}))

			err := repo.WithinTx(ctx, func(ctx context.Context) error { return test.fn(ctx, repo) })
			if test.expErr != nil {
				assert.ErrorIs(err, test.expErr)
			} else {
				assert.NoError(err)
			}

			task, err := repo.GetTask(ctx, "steps")
			require.NoError(err)
			assert.Equal(test.expCompleted, task.Completed)

			w, err := repo.GetWallet(ctx)
			require.NoError(err)
			assert.Equal(test.expCoins, w.Coins)

			entries, err := repo.ListLedgerEntries(ctx)
			require.NoError(err)
			assert.Len(entries, test.expLedger)
		})
	}
}
