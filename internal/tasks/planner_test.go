package tasks

import (
	"context"
	"log"
	"sync/atomic"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingEvaluator struct {
	calls atomic.Int32
}

func (e *countingEvaluator) EvaluateAll(context.Context) error {
	e.calls.Add(1)
	return nil
}

func TestSingleFlightSkipsOverlappingRun(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var runs atomic.Int32

	job := singleFlight(cron.PrintfLogger(log.Default()), func() {
		runs.Add(1)
		close(started)
		<-release
	})

	done := make(chan struct{})
	go func() {
		job.Run()
		close(done)
	}()
	<-started

	// returns at once because the first run is still busy
	job.Run()
	assert.Equal(t, int32(1), runs.Load())

	close(release)
	<-done
}

func TestSingleFlightRecoversPanics(t *testing.T) {
	job := singleFlight(cron.PrintfLogger(log.Default()), func() { panic("tick failed") })
	assert.NotPanics(t, job.Run)
}

func TestInitSchedulerRejectsBadSpec(t *testing.T) {
	_, err := InitScheduler(PlannerConfig{ScheduleSpec: "every minute"}, &countingEvaluator{}, nil)
	assert.Error(t, err)
}

func TestInitSchedulerRunsJobs(t *testing.T) {
	eval := &countingEvaluator{}
	c, err := InitScheduler(PlannerConfig{ScheduleSpec: "* * * * * *"}, eval, nil)
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool { return eval.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.Len(t, c.Entries(), 1)
}
