package io

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/slok/habits/internal/model"
)

//go:embed seed/default.yaml
var defaultSeedFS embed.FS

// DefaultSeedPath is the path of the default seed inside DefaultSeedFS.
const DefaultSeedPath = "seed/default.yaml"

// DefaultSeedFS returns the filesystem holding the embedded default seed.
func DefaultSeedFS() fs.FS { return defaultSeedFS }

// SeedYAMLRepository loads store seeds from YAML files.
type SeedYAMLRepository struct {
	fs fs.FS
}

// NewSeedYAMLRepository creates a new YAML seed repository.
func NewSeedYAMLRepository(filesystem fs.FS) *SeedYAMLRepository {
	return &SeedYAMLRepository{fs: filesystem}
}

// GetSeed loads a seed from a YAML file and returns a validated domain model.
func (r *SeedYAMLRepository) GetSeed(ctx context.Context, path string) (model.Seed, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		return model.Seed{}, fmt.Errorf("reading seed file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Seed{}, ctx.Err()
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return model.Seed{}, fmt.Errorf("parsing YAML: %w", err)
	}

	s := seed.toModel()
	if err := s.Validate(); err != nil {
		return model.Seed{}, fmt.Errorf("invalid seed: %w", err)
	}

	return s, nil
}

// Seed represents the YAML structure of a store seed.
type Seed struct {
	Coins        int       `yaml:"coins"`
	CurrentSteps int       `yaml:"current_steps"`
	Tasks        []Task    `yaml:"tasks"`
	MyHabits     []MyHabit `yaml:"my_habits"`
	Catalog      Catalog   `yaml:"catalog"`
}

// Task represents the YAML structure of a task.
type Task struct {
	Key         string `yaml:"key"`
	Title       string `yaml:"title"`
	Completed   int    `yaml:"completed"`
	Total       int    `yaml:"total"`
	Points      int    `yaml:"points"`
	Icon        string `yaml:"icon"`
	Category    string `yaml:"category"`
	Duration    string `yaml:"duration"`
	Streak      string `yaml:"streak"`
	AutoTracked bool   `yaml:"auto_tracked"`
}

// MyHabit represents the YAML structure of a weekly habit.
type MyHabit struct {
	Key          string `yaml:"key"`
	Title        string `yaml:"title"`
	Icon         string `yaml:"icon"`
	WeekProgress int    `yaml:"week_progress"`
	WeekTotal    int    `yaml:"week_total"`
	Completed    bool   `yaml:"completed"`
}

// Catalog represents the YAML structure of the catalogs.
type Catalog struct {
	Available []Activity `yaml:"available"`
	BrainGame []Activity `yaml:"brain_game"`
	Movement  []Activity `yaml:"movement"`
	Habits    []Habit    `yaml:"habits"`
}

// Activity represents the YAML structure of a catalog activity.
type Activity struct {
	Key      string `yaml:"key"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Icon     string `yaml:"icon"`
	Category string `yaml:"category"`
	Points   int    `yaml:"points"`
	Duration string `yaml:"duration"`
}

// Habit represents the YAML structure of an explore catalog habit.
type Habit struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Icon     string `yaml:"icon"`
	Points   int    `yaml:"points"`
	Category string `yaml:"category"`
}

func (s Seed) toModel() model.Seed {
	seed := model.Seed{
		Coins:        s.Coins,
		CurrentSteps: s.CurrentSteps,
		Catalog: model.Catalog{
			Available: activitiesToModel(s.Catalog.Available),
			BrainGame: activitiesToModel(s.Catalog.BrainGame),
			Movement:  activitiesToModel(s.Catalog.Movement),
		},
	}

	for _, t := range s.Tasks {
		seed.Tasks = append(seed.Tasks, model.Task{
			Key:         t.Key,
			Title:       t.Title,
			Completed:   t.Completed,
			Total:       t.Total,
			Points:      t.Points,
			Icon:        t.Icon,
			Category:    model.Category(t.Category),
			Duration:    t.Duration,
			Streak:      t.Streak,
			AutoTracked: t.AutoTracked,
		})
	}

	for _, h := range s.MyHabits {
		seed.MyHabits = append(seed.MyHabits, model.MyHabit{
			Key:          h.Key,
			Title:        h.Title,
			Icon:         h.Icon,
			WeekProgress: h.WeekProgress,
			WeekTotal:    h.WeekTotal,
			Completed:    h.Completed,
		})
	}

	for _, h := range s.Catalog.Habits {
		seed.Catalog.Habits = append(seed.Catalog.Habits, model.HabitDescriptor{
			ID:       h.ID,
			Title:    h.Title,
			Icon:     h.Icon,
			Points:   h.Points,
			Category: h.Category,
		})
	}

	return seed
}

func activitiesToModel(as []Activity) []model.AvailableActivity {
	if len(as) == 0 {
		return nil
	}

	result := make([]model.AvailableActivity, 0, len(as))
	for _, a := range as {
		result = append(result, model.AvailableActivity{
			Key:      a.Key,
			Title:    a.Title,
			Subtitle: a.Subtitle,
			Icon:     a.Icon,
			Category: model.ActivityCategory(a.Category),
			Points:   a.Points,
			Duration: a.Duration,
		})
	}
	return result
}
