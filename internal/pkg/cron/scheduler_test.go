package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(time.UTC)

	require.NoError(t, s.AddJob("nightly", "5 0 * * *", func(context.Context) error { return nil }))
	require.NoError(t, s.AddJob("disabled", "", func(context.Context) error { return nil }))
	assert.Error(t, s.AddJob("broken", "every day", func(context.Context) error { return nil }))

	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "nightly", jobs[0].Name)
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(nil)
	var ran []string

	require.NoError(t, s.AddJob("first", "@daily", func(context.Context) error {
		ran = append(ran, "first")
		return errors.New("boom")
	}))
	require.NoError(t, s.AddJob("second", "@hourly", func(context.Context) error {
		ran = append(ran, "second")
		return nil
	}))

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"first", "second"}, ran, "a failing job does not stop the rest")
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(time.UTC)
	require.NoError(t, s.AddJob("noop", "@every 1h", func(context.Context) error { return nil }))

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
