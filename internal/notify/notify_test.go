package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slok/habits/internal/notify"
)

func TestBus(t *testing.T) {
	tests := map[string]struct {
		run    func(b *notify.Bus[int]) []string
		expGot []string
	}{
		"Publishing without subscribers should do nothing.": {
			run: func(b *notify.Bus[int]) []string {
				b.Publish(1)
				return nil
			},
			expGot: nil,
		},

		"Subscribers should be called in subscription order.": {
			run: func(b *notify.Bus[int]) []string {
				var got []string
				b.Subscribe(func(v int) { got = append(got, "a") })
				b.Subscribe(func(v int) { got = append(got, "b") })
				b.Publish(1)
				return got
			},
			expGot: []string{"a", "b"},
		},

		"Unsubscribed subscribers should not be called.": {
			run: func(b *notify.Bus[int]) []string {
				var got []string
				unsubA := b.Subscribe(func(v int) { got = append(got, "a") })
				b.Subscribe(func(v int) { got = append(got, "b") })
				unsubA()
				unsubA()
				b.Publish(1)
				return got
			},
			expGot: []string{"b"},
		},

		"A subscriber unsubscribing itself while notified should not affect the current publish.": {
			run: func(b *notify.Bus[int]) []string {
				var got []string
				var unsubA func()
				unsubA = b.Subscribe(func(v int) {
					got = append(got, "a")
					unsubA()
				})
				b.Subscribe(func(v int) { got = append(got, "b") })
				b.Publish(1)
				b.Publish(2)
				return got
			},
			expGot: []string{"a", "b", "b"},
		},

		"A subscriber may publish from inside its callback.": {
			run: func(b *notify.Bus[int]) []string {
				var got []string
				b.Subscribe(func(v int) {
					got = append(got, "a")
					if v == 1 {
						b.Publish(2)
					}
				})
				b.Publish(1)
				return got
			},
			expGot: []string{"a", "a"},
		},

		"Nil subscribers should be ignored.": {
			run: func(b *notify.Bus[int]) []string {
				unsub := b.Subscribe(nil)
				unsub()
				b.Publish(1)
				return []string{"ok"}
			},
			expGot: []string{"ok"},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			b := notify.NewBus[int]()
			got := test.run(b)
			assert.Equal(t, test.expGot, got)
		})
	}
}

func TestBusValues(t *testing.T) {
	b := notify.NewBus[string]()

	var got []string
	b.Subscribe(func(v string) { got = append(got, v) })
	b.Publish("task-added")
	b.Publish("coins-updated")

	assert.Equal(t, []string{"task-added", "coins-updated"}, got)
	assert.Equal(t, 1, b.Len())

	b.Reset()
	b.Publish("ignored")
	assert.Equal(t, 0, b.Len())
	assert.Len(t, got, 2)
}
