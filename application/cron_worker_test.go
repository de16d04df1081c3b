package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCronWorker_NextRun(t *testing.T) {
	worker := NewCronWorker(new(mockDispatcher))

	tests := []struct {
		name     string
		now      time.Time
		hour     int
		expected time.Duration
	}{
		{"later today", time.Date(2024, 7, 1, 0, 30, 0, 0, time.UTC), 2, 90 * time.Minute},
		{"already passed", time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC), 2, 23 * time.Hour},
		{"exactly now", time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC), 2, 24 * time.Hour},
		{"non utc clock", time.Date(2024, 7, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600)), 2, 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			worker.now = func() time.Time { return tt.now }
			assert.Equal(t, tt.expected, worker.NextRun(tt.hour))
		})
	}
}

func TestCronWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 7, 1, 2, 0, 0, 0, time.UTC)

	t.Run("dispatches today", func(t *testing.T) {
		dispatcher := new(mockDispatcher)
		worker := NewCronWorker(dispatcher)
		worker.now = func() time.Time { return now }
		dispatcher.On("Dispatch", ctx, now).Return(2, nil).Once()

		worker.RunOnce(ctx)

		dispatcher.AssertExpectations(t)
	})

	t.Run("dispatch error is logged", func(t *testing.T) {
		dispatcher := new(mockDispatcher)
		worker := NewCronWorker(dispatcher)
		worker.now = func() time.Time { return now }
		dispatcher.On("Dispatch", ctx, now).Return(0, errors.New("connection refused")).Once()

		assert.NotPanics(t, func() { worker.RunOnce(ctx) })
		dispatcher.AssertExpectations(t)
	})
}

func TestCronWorker_StartStop(t *testing.T) {
	worker := NewCronWorker(new(mockDispatcher))
	worker.now = func() time.Time { return time.Date(2024, 7, 1, 3, 0, 0, 0, time.UTC) }

	stop := worker.Start(context.Background(), 2)
	stop()
	assert.NotPanics(t, stop)
}
