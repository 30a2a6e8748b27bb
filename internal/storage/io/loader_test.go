package io_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/habits/internal/model"
	storageio "github.com/slok/habits/internal/storage/io"
)

func TestSeedYAMLRepository_GetSeed(t *testing.T) {
	tests := map[string]struct {
		fs       fstest.MapFS
		path     string
		expSeed  model.Seed
		expErr   bool
		expErrIs error
	}{
		"Valid seed with tasks should load successfully": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{
					Data: []byte(`coins: 10
current_steps: 1200
tasks:
  - key: steps
    title: 10k steps today
    total: 1
    points: 25
    icon: "👟"
    category: Body
    duration: Auto-tracked
    streak: 7-day streak
    auto_tracked: true
`),
				},
			},
			path: "seed.yaml",
			expSeed: model.Seed{
				Coins:        10,
				CurrentSteps: 1200,
				Tasks: []model.Task{
					{
						Key:         "steps",
						Title:       "10k steps today",
						Total:       1,
						Points:      25,
						Icon:        "👟",
						Category:    model.CategoryBody,
						Duration:    "Auto-tracked",
						Streak:      "7-day streak",
						AutoTracked: true,
					},
				},
			},
		},

		"Valid seed with habits and catalogs should load successfully": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{
					Data: []byte(`my_habits:
  - key: drink-water
    title: Drink water
    week_progress: 3
    week_total: 7
catalog:
  brain_game:
    - key: memory-grid
      title: Memory grid
      subtitle: 2 min
      category: MEMORY
      points: 15
  movement:
    - key: stairs
      category: QUICK ADD ACTIVITIES
      points: 10
  habits:
    - {id: floss, title: Floss teeth, category: health, icon: "🦷", points: 40}
`),
				},
			},
			path: "seed.yaml",
			expSeed: model.Seed{
				MyHabits: []model.MyHabit{
					{Key: "drink-water", Title: "Drink water", WeekProgress: 3, WeekTotal: 7},
				},
				Catalog: model.Catalog{
					BrainGame: []model.AvailableActivity{
						{Key: "memory-grid", Title: "Memory grid", Subtitle: "2 min", Category: model.ActivityCategoryMemory, Points: 15},
					},
					Movement: []model.AvailableActivity{
						{Key: "stairs", Category: model.ActivityCategoryQuickAdd, Points: 10},
					},
					Habits: []model.HabitDescriptor{
						{ID: "floss", Title: "Floss teeth", Category: "health", Icon: "🦷", Points: 40},
					},
				},
			},
		},

		"Empty seed should load successfully": {
			fs: fstest.MapFS{
				"empty.yaml": &fstest.MapFile{Data: []byte("---\n")},
			},
			path:    "empty.yaml",
			expSeed: model.Seed{},
		},

		"Missing file should fail": {
			fs:     fstest.MapFS{},
			path:   "missing.yaml",
			expErr: true,
		},

		"Malformed YAML should fail": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{Data: []byte("tasks: [")},
			},
			path:   "seed.yaml",
			expErr: true,
		},

		"Task over its total should fail validation": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{
					Data: []byte(`tasks:
  - key: steps
    completed: 2
    total: 1
`),
				},
			},
			path:     "seed.yaml",
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},

		"Unknown activity category should fail validation": {
			fs: fstest.MapFS{
				"seed.yaml": &fstest.MapFile{
					Data: []byte(`catalog:
  available:
    - key: yoga
      category: YOGA
`),
				},
			},
			path:     "seed.yaml",
			expErr:   true,
			expErrIs: model.ErrNotValid,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			repo := storageio.NewSeedYAMLRepository(test.fs)
			seed, err := repo.GetSeed(context.Background(), test.path)

			if test.expErr {
				require.Error(err)
				if test.expErrIs != nil {
					assert.True(errors.Is(err, test.expErrIs))
				}
				return
			}

			require.NoError(err)
			assert.Equal(test.expSeed, seed)
		})
	}
}

func TestDefaultSeed(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	repo := storageio.NewSeedYAMLRepository(storageio.DefaultSeedFS())
	seed, err := repo.GetSeed(context.Background(), storageio.DefaultSeedPath)
	require.NoError(err)

	require.Len(seed.Tasks, 3)
	assert.Equal("sharpen-mind", seed.Tasks[0].Key)
	assert.Equal(15, seed.Tasks[0].Points)
	assert.Equal(model.CategoryMind, seed.Tasks[0].Category)
	assert.Equal("steps", seed.Tasks[1].Key)
	assert.Equal(25, seed.Tasks[1].Points)
	assert.True(seed.Tasks[1].AutoTracked)
	assert.Equal("meditation", seed.Tasks[2].Key)
	assert.Equal(10, seed.Tasks[2].Points)
	for _, task := range seed.Tasks {
		assert.Equal(0, task.Completed)
		assert.Equal(1, task.Total)
		assert.Equal("7-day streak", task.Streak)
	}

	assert.NotEmpty(seed.MyHabits)
	assert.NotEmpty(seed.Catalog.Available)
	assert.NotEmpty(seed.Catalog.BrainGame)
	assert.NotEmpty(seed.Catalog.Movement)
	assert.Len(seed.Catalog.Habits, 20)
	assert.Equal(0, seed.Coins)
}

func TestSeedYAMLRepositoryCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := storageio.NewSeedYAMLRepository(storageio.DefaultSeedFS())
	_, err := repo.GetSeed(ctx, storageio.DefaultSeedPath)
	assert.ErrorIs(t, err, context.Canceled)
}
