package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"mentoring-marketplace-be/internal/dto"

	"github.com/stretchr/testify/assert"
)

type countingSweeper struct {
	calls atomic.Int64
}

func (s *countingSweeper) Sweep(ctx context.Context) (*dto.SweepReport, error) {
	s.calls.Add(1)
	return dto.NewSweepReport(), nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func TestTriggerSweepsImmediatelyAndPeriodically(t *testing.T) {
	sweeper := &countingSweeper{}
	trigger := NewTrigger(sweeper, 20*time.Millisecond, nopLogger{})

	trigger.Start(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for sweeper.calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	trigger.Stop()

	// One immediate run plus at least two ticks.
	assert.GreaterOrEqual(t, sweeper.calls.Load(), int64(3))
}

func TestTriggerStopHaltsLoop(t *testing.T) {
	sweeper := &countingSweeper{}
	trigger := NewTrigger(sweeper, 10*time.Millisecond, nopLogger{})

	trigger.Start(context.Background())
	trigger.Stop()

	settled := sweeper.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, sweeper.calls.Load())

	// Stop twice is safe.
	trigger.Stop()
}

func TestTriggerStopsOnContextCancel(t *testing.T) {
	sweeper := &countingSweeper{}
	trigger := NewTrigger(sweeper, 10*time.Millisecond, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	trigger.Start(ctx)
	cancel()

	time.Sleep(30 * time.Millisecond)
	settled := sweeper.calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, sweeper.calls.Load())
}

func TestTriggerDefaultsInterval(t *testing.T) {
	trigger := NewTrigger(&countingSweeper{}, 0, nopLogger{})
	assert.Equal(t, DefaultInterval, trigger.interval)
}
