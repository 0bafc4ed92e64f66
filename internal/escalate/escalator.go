package escalate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"linkwatch/internal/logger"
	"linkwatch/internal/models"
)

// ErrCooldownActive is returned by ManualCycle while the cooldown window
// from the previous power cycle is still open.
var ErrCooldownActive = errors.New("power cycle cooldown active")

// Escalator tracks consecutive all-failure runs and fires the power-cycle
// action once the streak reaches the threshold. All of its state lives in
// files so the streak survives process restarts and -once invocations.
type Escalator struct {
	log       *slog.Logger
	counter   *Counter
	stamp     *Stamp
	cycler    models.PowerCycler
	threshold int
	cooldown  time.Duration
	now       func() time.Time
}

// New creates an Escalator. A cooldown of zero disables rate limiting.
func New(log *slog.Logger, counter *Counter, stamp *Stamp, cycler models.PowerCycler, threshold int, cooldown time.Duration) *Escalator {
	return &Escalator{
		log:       log,
		counter:   counter,
		stamp:     stamp,
		cycler:    cycler,
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Observe feeds one run's success percentage through the state machine.
// Counter-file write failures are logged and swallowed; the run itself
// never fails because of the escalator.
func (e *Escalator) Observe(ctx context.Context, successPercentage int) {
	if successPercentage > 0 {
		if n := e.counter.Load(); n != 0 {
			e.log.Info("connectivity restored, resetting failure counter", slog.Int("was", n))
			if err := e.counter.Store(0); err != nil {
				e.log.Error("failed to reset failure counter", logger.Err(err))
			}
		}
		return
	}

	count := e.counter.Load() + 1
	if err := e.counter.Store(count); err != nil {
		e.log.Error("failed to persist failure counter", logger.Err(err))
	}
	e.log.Warn("run saw zero successful probes",
		slog.Int("consecutive_failures", count),
		slog.Int("threshold", e.threshold),
	)

	if count < e.threshold {
		return
	}

	if remaining := e.CooldownRemaining(); remaining > 0 {
		// The streak consumed its escalation even though nothing fired;
		// otherwise every post-cooldown run would trigger immediately.
		e.log.Warn("escalation threshold reached during cooldown, skipping power cycle",
			slog.Duration("remaining", remaining))
	} else {
		e.log.Warn("escalation threshold reached, triggering power cycle")
		if err := e.cycler.Cycle(ctx); err != nil {
			e.log.Error("power cycle failed", logger.Err(err))
		} else if err := e.stamp.Mark(e.now()); err != nil {
			e.log.Error("failed to record power-cycle time", logger.Err(err))
		}
	}

	if err := e.counter.Store(0); err != nil {
		e.log.Error("failed to reset failure counter", logger.Err(err))
	}
}

// ManualCycle triggers the power-cycle action outside the failure-streak
// path, still honoring the cooldown. Used by the dashboard button.
func (e *Escalator) ManualCycle(ctx context.Context) error {
	if remaining := e.CooldownRemaining(); remaining > 0 {
		return fmt.Errorf("%w, %s remaining", ErrCooldownActive, remaining.Round(time.Second))
	}

	if err := e.cycler.Cycle(ctx); err != nil {
		return err
	}

	if err := e.stamp.Mark(e.now()); err != nil {
		e.log.Error("failed to record power-cycle time", logger.Err(err))
	}
	return nil
}

// CooldownRemaining reports how long the cooldown from the last power cycle
// still has to run. Zero means a cycle may fire now.
func (e *Escalator) CooldownRemaining() time.Duration {
	if e.cooldown <= 0 {
		return 0
	}

	last, ok := e.stamp.Last()
	if !ok {
		return 0
	}

	remaining := e.cooldown - e.now().Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}
