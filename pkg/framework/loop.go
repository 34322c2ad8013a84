package framework

import (
	"context"
	"time"
)

// Loop invokes controllers periodically. All controllers run on the
// goroutine calling Run, one after another.
type Loop struct {
	Interval time.Duration
	// Count limits the number of iterations, 0 for unlimited.
	Count int
	// StopOnError stops the loop when a controller fails.
	StopOnError bool
	// OnError is called for controller failures which don't stop the loop.
	OnError func(error)

	controllers []Controller
}

// DefaultInterval is used when Interval is not set.
const DefaultInterval = time.Second

// NewLoop creates a Loop.
func NewLoop(interval time.Duration) *Loop {
	return &Loop{Interval: interval}
}

// Add registers controllers to the loop.
func (l *Loop) Add(ctls ...Controller) *Loop {
	l.controllers = append(l.controllers, ctls...)
	return l
}

type loopIteration struct {
	ctx  context.Context
	time time.Time
	num  int
}

func (t *loopIteration) Context() context.Context { return t.ctx }
func (t *loopIteration) Time() time.Time           { return t.time }
func (t *loopIteration) Iteration() int            { return t.num }

// Run implements Runnable. The first iteration runs immediately.
func (l *Loop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for n := 0; l.Count <= 0 || n < l.Count; n++ {
		if n > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.runIteration(&loopIteration{ctx: ctx, time: time.Now(), num: n}); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loop) runIteration(iter *loopIteration) error {
	for _, ctl := range l.controllers {
		if err := ctl.Control(iter); err != nil {
			if l.StopOnError {
				return err
			}
			if l.OnError != nil {
				l.OnError(err)
			}
		}
	}
	return nil
}
