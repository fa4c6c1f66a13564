package scheduler

import (
	"context"
	"sync"
	"time"

	"mentoring-marketplace-be/internal/dto"
	"mentoring-marketplace-be/internal/pkg/logger"
)

// Sweeper is the slice of the auto-transition service the trigger drives.
type Sweeper interface {
	Sweep(ctx context.Context) (*dto.SweepReport, error)
}

// Trigger runs one sweep immediately on Start and then one per interval until
// stopped. It is an explicit handle: Stop (or the context ending) clears the
// ticker and waits for the loop to exit, so no timer outlives its owner.
type Trigger struct {
	sweeper  Sweeper
	interval time.Duration
	logger   logger.ILogger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

const DefaultInterval = 5 * time.Minute

func NewTrigger(sweeper Sweeper, interval time.Duration, log logger.ILogger) *Trigger {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Trigger{
		sweeper:  sweeper,
		interval: interval,
		logger:   log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (t *Trigger) Start(ctx context.Context) {
	go t.run(ctx)
}

func (t *Trigger) run(ctx context.Context) {
	defer close(t.done)

	t.sweep(ctx)

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.sweep(ctx)
		case <-ctx.Done():
			return
		case <-t.stop:
			return
		}
	}
}

// sweep never lets a periodic failure escape; the sweep is retried on the
// next tick anyway since failed items stay eligible.
func (t *Trigger) sweep(ctx context.Context) {
	report, err := t.sweeper.Sweep(ctx)
	if err != nil {
		t.logger.Error("ScheduleTrigger", "Periodic sweep failed", map[string]interface{}{"error": err})
		return
	}
	if report.Processed > 0 {
		t.logger.Info("ScheduleTrigger", "Periodic sweep processed classes", map[string]interface{}{
			"processed":          report.Processed,
			"notifications_sent": report.NotificationsSent,
		})
	}
}

// Stop cancels the periodic trigger and blocks until the loop has exited.
// Safe to call more than once.
func (t *Trigger) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}
