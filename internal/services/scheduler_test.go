package services

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func Test_Scheduler_ShouldRunOnSchedule(t *testing.T) {

	ran := make(chan struct{}, 1)
	scheduler := NewScheduler("@every 1s", runnerFunc(func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	require.NoError(t, scheduler.Start(context.Background()))
	defer scheduler.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled run didn't happen")
	}
}

func Test_Scheduler_InvalidSchedule_ShouldFail(t *testing.T) {

	scheduler := NewScheduler("every monday", runnerFunc(func(ctx context.Context) error { return nil }))
	assert.Error(t, scheduler.Start(context.Background()))
}
