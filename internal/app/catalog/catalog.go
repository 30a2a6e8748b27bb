package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/slok/habits/internal/log"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage"
)

// GroupAll matches every explore catalog group.
const GroupAll = "all"

const maxSuggestions = 3

// ServiceConfig is the configuration for the catalog service.
type ServiceConfig struct {
	Catalog    model.Catalog
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}

	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Catalog"})

	return nil
}

// Service looks up the immutable catalogs.
type Service struct {
	catalog model.Catalog
	repo    storage.Repository
	logger  log.Logger
}

// NewService creates a new catalog service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		catalog: cfg.Catalog,
		repo:    cfg.Repository,
		logger:  cfg.Logger,
	}, nil
}

// Catalog returns a copy of the catalogs.
func (s *Service) Catalog() model.Catalog {
	return model.Catalog{
		Available: slices.Clone(s.catalog.Available),
		BrainGame: slices.Clone(s.catalog.BrainGame),
		Movement:  slices.Clone(s.catalog.Movement),
		Habits:    slices.Clone(s.catalog.Habits),
	}
}

// SearchRequest filters the explore habit catalog.
type SearchRequest struct {
	// Group is the catalog group, empty or GroupAll match all of them.
	Group string
	// Query matches case insensitive title substrings.
	Query string
}

// Search returns the explore catalog habits that match the request, in
// catalog order.
func (s *Service) Search(_ context.Context, req SearchRequest) []model.HabitDescriptor {
	query := strings.ToLower(strings.TrimSpace(req.Query))

	result := []model.HabitDescriptor{}
	for _, h := range s.catalog.Habits {
		if req.Group != "" && req.Group != GroupAll && !strings.EqualFold(h.Category, req.Group) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(h.Title), query) {
			continue
		}
		result = append(result, h)
	}

	return result
}

// Groups returns the explore catalog groups in catalog order.
func (s *Service) Groups() []string {
	groups := []string{}
	for _, h := range s.catalog.Habits {
		if h.Category != "" && !slices.Contains(groups, h.Category) {
			groups = append(groups, h.Category)
		}
	}
	return groups
}

// FindHabit returns the explore catalog habit with the ID.
func (s *Service) FindHabit(id string) (model.HabitDescriptor, error) {
	for _, h := range s.catalog.Habits {
		if h.ID == id {
			return h, nil
		}
	}
	return model.HabitDescriptor{}, fmt.Errorf("habit %q: %w", id, model.ErrNotFound)
}

// FindActivity returns the activity with the key from any activity catalog.
func (s *Service) FindActivity(key string) (model.AvailableActivity, error) {
	for _, as := range [][]model.AvailableActivity{s.catalog.Available, s.catalog.BrainGame, s.catalog.Movement} {
		for _, a := range as {
			if a.Key == key {
				return a, nil
			}
		}
	}
	return model.AvailableActivity{}, fmt.Errorf("activity %q: %w", key, model.ErrNotFound)
}

// Suggest returns the known keys closest to key by edit distance, closest
// first. Tasks, habits and every catalog are taken into account.
func (s *Service) Suggest(ctx context.Context, key string) ([]string, error) {
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	habits, err := s.repo.ListMyHabits(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list habits: %w", err)
	}

	var candidates []string
	for _, t := range tasks {
		candidates = append(candidates, t.Key)
	}
	for _, h := range habits {
		candidates = append(candidates, h.Key)
	}
	for _, as := range [][]model.AvailableActivity{s.catalog.Available, s.catalog.BrainGame, s.catalog.Movement} {
		for _, a := range as {
			candidates = append(candidates, a.Key)
		}
	}
	for _, h := range s.catalog.Habits {
		candidates = append(candidates, h.ID)
	}

	type scored struct {
		key  string
		dist int
	}

	threshold := max(2, len(key)/3)
	var matches []scored
	for _, c := range candidates {
		if c == key || slices.ContainsFunc(matches, func(m scored) bool { return m.key == c }) {
			continue
		}

		d := levenshtein.ComputeDistance(strings.ToLower(key), strings.ToLower(c))
		if d <= threshold {
			matches = append(matches, scored{key: c, dist: d})
		}
	}

	slices.SortStableFunc(matches, func(a, b scored) int {
		if a.dist != b.dist {
			return a.dist - b.dist
		}
		return strings.Compare(a.key, b.key)
	})

	result := []string{}
	for i, m := range matches {
		if i >= maxSuggestions {
			break
		}
		result = append(result, m.key)
	}

	return result, nil
}
