package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRunCleanupWithoutDB(t *testing.T) {
	assert.NotPanics(t, func() {
		runCleanup(context.Background(), nil, 7*24*time.Hour, time.Now())
	})
}

func TestSchedulerStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NotPanics(t, func() {
		StartBlacklistCleanupScheduler(ctx, nil, time.Hour)
	})
}
