package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/habits/internal/model"
)

func TestMyHabitToggle(t *testing.T) {
	tests := map[string]struct {
		habit        model.MyHabit
		expFirst     model.MyHabit
		expRoundTrip model.MyHabit
	}{
		"Toggling in the middle of the week should be reversible.": {
			habit:        model.MyHabit{Key: "water", WeekProgress: 3, WeekTotal: 7},
			expFirst:     model.MyHabit{Key: "water", WeekProgress: 4, WeekTotal: 7, Completed: true},
			expRoundTrip: model.MyHabit{Key: "water", WeekProgress: 3, WeekTotal: 7},
		},

		"Toggling on at the cap should saturate and lose a step on the way back.": {
			habit:        model.MyHabit{Key: "water", WeekProgress: 7, WeekTotal: 7},
			expFirst:     model.MyHabit{Key: "water", WeekProgress: 7, WeekTotal: 7, Completed: true},
			expRoundTrip: model.MyHabit{Key: "water", WeekProgress: 6, WeekTotal: 7},
		},

		"Toggling off at the floor should saturate and gain a step on the way back.": {
			habit:        model.MyHabit{Key: "water", WeekProgress: 0, WeekTotal: 7, Completed: true},
			expFirst:     model.MyHabit{Key: "water", WeekProgress: 0, WeekTotal: 7},
			expRoundTrip: model.MyHabit{Key: "water", WeekProgress: 1, WeekTotal: 7, Completed: true},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			first := test.habit.Toggle()
			assert.Equal(test.expFirst, first)
			assert.Equal(test.expRoundTrip, first.Toggle())
		})
	}
}

func TestNewMyHabitFromHabit(t *testing.T) {
	got := model.NewMyHabitFromHabit(model.HabitDescriptor{ID: "journal", Title: "Write in journal", Icon: "📔", Points: 60})

	assert.Equal(t, model.MyHabit{Key: "journal", Title: "Write in journal", Icon: "📔", WeekProgress: 0, WeekTotal: 7}, got)
}
