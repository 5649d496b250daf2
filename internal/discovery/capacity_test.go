package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusevents/backend/internal/model"
)

func TestRemainingCapacity(t *testing.T) {
	tests := []struct {
		name       string
		capacity   int
		registered int
		want       int
	}{
		{"open seats", 100, 40, 60},
		{"exactly full", 50, 50, 0},
		{"counter overshoot floors at zero", 50, 53, 0},
		{"untouched event", 30, 0, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := model.Event{Capacity: tc.capacity, RegisteredCount: tc.registered}
			assert.Equal(t, tc.want, RemainingCapacity(&e))
		})
	}
}

func TestIsAvailable(t *testing.T) {
	open := model.Event{Capacity: 10, RegisteredCount: 9}
	full := model.Event{Capacity: 10, RegisteredCount: 10}
	over := model.Event{Capacity: 10, RegisteredCount: 11}

	assert.True(t, IsAvailable(&open))
	assert.False(t, IsAvailable(&full))
	assert.False(t, IsAvailable(&over))
}
