package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/slok/habits/internal/app/catalog"
	"github.com/slok/habits/internal/model"
	"github.com/slok/habits/internal/storage/storagemock"
)

func testCatalog() model.Catalog {
	return model.Catalog{
		Available: []model.AvailableActivity{
			{Key: "box-breathing", Title: "Box breathing", Category: model.ActivityCategoryBreathing, Points: 10},
		},
		BrainGame: []model.AvailableActivity{
			{Key: "memory-grid", Title: "Memory grid", Category: model.ActivityCategoryMemory, Points: 15},
		},
		Movement: []model.AvailableActivity{
			{Key: "stairs", Title: "Take the stairs", Category: model.ActivityCategoryQuickAdd, Points: 10},
		},
		Habits: []model.HabitDescriptor{
			{ID: "drink-water", Title: "Drink 8 glasses of water", Category: "health", Points: 50},
			{ID: "meditation", Title: "Meditate 10 minutes", Category: "mindfulness", Points: 80},
			{ID: "walk", Title: "Take a 15-minute walk", Category: "health", Points: 60},
			{ID: "call-friend", Title: "Call a friend or family", Category: "social", Points: 80},
		},
	}
}

func newService(t *testing.T, m *storagemock.MockRepository) *catalog.Service {
	t.Helper()
	svc, err := catalog.NewService(catalog.ServiceConfig{Catalog: testCatalog(), Repository: m})
	require.NoError(t, err)
	return svc
}

func TestServiceSearch(t *testing.T) {
	tests := map[string]struct {
		req    catalog.SearchRequest
		expIDs []string
	}{
		"No filter should return the whole catalog.": {
			req:    catalog.SearchRequest{},
			expIDs: []string{"drink-water", "meditation", "walk", "call-friend"},
		},

		"All group should return the whole catalog.": {
			req:    catalog.SearchRequest{Group: catalog.GroupAll},
			expIDs: []string{"drink-water", "meditation", "walk", "call-friend"},
		},

		"Group filter should only return the group habits.": {
			req:    catalog.SearchRequest{Group: "health"},
			expIDs: []string{"drink-water", "walk"},
		},

		"Query should match title substrings ignoring case.": {
			req:    catalog.SearchRequest{Query: "TAKE"},
			expIDs: []string{"walk"},
		},

		"Group and query should be combined.": {
			req:    catalog.SearchRequest{Group: "social", Query: "walk"},
			expIDs: []string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			svc := newService(t, &storagemock.MockRepository{})

			gotIDs := []string{}
			for _, h := range svc.Search(context.Background(), test.req) {
				gotIDs = append(gotIDs, h.ID)
			}
			assert.Equal(t, test.expIDs, gotIDs)
		})
	}
}

func TestServiceLookups(t *testing.T) {
	assert := assert.New(t)
	svc := newService(t, &storagemock.MockRepository{})

	h, err := svc.FindHabit("walk")
	assert.NoError(err)
	assert.Equal(60, h.Points)

	_, err = svc.FindHabit("missing")
	assert.True(errors.Is(err, model.ErrNotFound))

	a, err := svc.FindActivity("stairs")
	assert.NoError(err)
	assert.Equal(model.ActivityCategoryQuickAdd, a.Category)

	_, err = svc.FindActivity("missing")
	assert.True(errors.Is(err, model.ErrNotFound))

	assert.Equal([]string{"health", "mindfulness", "social"}, svc.Groups())

	c := svc.Catalog()
	c.Habits[0].Points = 9999
	assert.Equal(50, svc.Catalog().Habits[0].Points)
}

func TestServiceSuggest(t *testing.T) {
	tests := map[string]struct {
		key       string
		expResult []string
	}{
		"A typo should suggest the closest key.": {
			key:       "stpes",
			expResult: []string{"steps"},
		},

		"A misspelled catalog key should suggest the catalog key.": {
			key:       "memory-gird",
			expResult: []string{"memory-grid"},
		},

		"An unrelated key should not suggest anything.": {
			key:       "xxxxxxxxxxxxxxxxxx",
			expResult: []string{},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := &storagemock.MockRepository{}
			m.On("ListTasks", mock.Anything).Once().Return([]model.Task{{Key: "steps", Total: 1}, {Key: "sharpen-mind", Total: 1}}, nil)
			m.On("ListMyHabits", mock.Anything).Once().Return([]model.MyHabit{{Key: "stretch", WeekTotal: 7}}, nil)
			svc := newService(t, m)

			got, err := svc.Suggest(context.Background(), test.key)
			require.NoError(t, err)
			assert.Equal(t, test.expResult, got)

			m.AssertExpectations(t)
		})
	}
}
