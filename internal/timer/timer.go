// Package timer implements the resumable countdown state machine.
//
// The countdown itself is pure bookkeeping over whole seconds; the
// caller supplies the tick source (the UI schedules one tick per
// second) and, optionally, a snapshot store plus persistence id so the
// countdown survives a restart. Wall-clock reads go through an
// injectable clock so tests can simulate elapsed time.
package timer

import (
	"context"
	"time"

	"github.com/rezmoss/ritualcli/internal/models"
)

// State of the countdown.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateFinished
)

// SnapshotStore persists countdown snapshots between runs.
type SnapshotStore interface {
	SaveTimerSnapshot(ctx context.Context, id string, snap models.TimerSnapshot) error
	GetTimerSnapshot(ctx context.Context, id string) (*models.TimerSnapshot, error)
	DeleteTimerSnapshot(ctx context.Context, id string) error
}

// Options configures a Countdown.
type Options struct {
	TotalSeconds      int
	AllowManualFinish bool

	// PersistenceID enables snapshotting when non-empty and Snapshots
	// is set.
	PersistenceID string
	Snapshots     SnapshotStore

	// Now defaults to time.Now.
	Now func() time.Time

	// OnComplete fires exactly once when a tick reaches zero.
	OnComplete func()
	// OnManualFinish fires on ManualFinish with the elapsed seconds.
	OnManualFinish func(elapsedSeconds int)
}

// Countdown is the resumable countdown state machine.
type Countdown struct {
	opts      Options
	state     State
	remaining int
}

// New builds a Countdown, restoring any persisted snapshot.
//
// A snapshot saved while running catches up to real elapsed time:
// remaining is reduced by the wall-clock seconds since it was saved,
// floored at zero. Catching up to zero lands in Finished and fires
// OnComplete during construction: the countdown ran out while the app
// was closed, and the completion still owes its side effects. A paused
// snapshot restores into Paused.
func New(opts Options) *Countdown {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Countdown{opts: opts, state: StateIdle, remaining: opts.TotalSeconds}

	if !c.persistent() {
		return c
	}
	snap, err := opts.Snapshots.GetTimerSnapshot(context.Background(), opts.PersistenceID)
	if err != nil || snap == nil {
		return c
	}
	if snap.IsRunning {
		elapsed := int(opts.Now().UnixMilli()-snap.SavedAt) / 1000
		remaining := snap.RemainingSeconds - elapsed
		if remaining <= 0 {
			c.remaining = 0
			c.state = StateFinished
			c.clearSnapshot()
			if opts.OnComplete != nil {
				opts.OnComplete()
			}
			return c
		}
		c.remaining = remaining
		c.state = StateRunning
	} else {
		c.remaining = snap.RemainingSeconds
		c.state = StatePaused
	}
	return c
}

// Start moves Idle or Paused into Running.
func (c *Countdown) Start() error {
	if c.state != StateIdle && c.state != StatePaused {
		return nil
	}
	c.state = StateRunning
	return c.persist()
}

// Pause suspends a running countdown.
func (c *Countdown) Pause() error {
	if c.state != StateRunning {
		return nil
	}
	c.state = StatePaused
	return c.persist()
}

// Tick advances a running countdown by one second. Ticks against any
// other state are no-ops, so a scheduled tick that outlives a pause or
// reset can never corrupt state.
func (c *Countdown) Tick() error {
	if c.state != StateRunning {
		return nil
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.state = StateFinished
		err := c.clearSnapshot()
		if c.opts.OnComplete != nil {
			c.opts.OnComplete()
		}
		return err
	}
	return c.persist()
}

// ManualFinish ends a running countdown early, reporting the elapsed
// seconds. Only permitted while running and when the countdown was
// built with AllowManualFinish.
func (c *Countdown) ManualFinish() error {
	if c.state != StateRunning || !c.opts.AllowManualFinish {
		return nil
	}
	elapsed := c.opts.TotalSeconds - c.remaining
	c.state = StateFinished
	err := c.clearSnapshot()
	if c.opts.OnManualFinish != nil {
		c.opts.OnManualFinish(elapsed)
	}
	return err
}

// Reset returns to Idle with the full duration and clears the
// persisted snapshot.
func (c *Countdown) Reset() error {
	c.state = StateIdle
	c.remaining = c.opts.TotalSeconds
	return c.clearSnapshot()
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int { return c.remaining }

// Total returns the configured duration in seconds.
func (c *Countdown) Total() int { return c.opts.TotalSeconds }

// Elapsed returns the seconds consumed so far.
func (c *Countdown) Elapsed() int { return c.opts.TotalSeconds - c.remaining }

// State returns the current state.
func (c *Countdown) State() State { return c.state }

// IsRunning reports whether the countdown is ticking.
func (c *Countdown) IsRunning() bool { return c.state == StateRunning }

func (c *Countdown) persistent() bool {
	return c.opts.PersistenceID != "" && c.opts.Snapshots != nil
}

func (c *Countdown) persist() error {
	if !c.persistent() {
		return nil
	}
	return c.opts.Snapshots.SaveTimerSnapshot(context.Background(), c.opts.PersistenceID, models.TimerSnapshot{
		RemainingSeconds: c.remaining,
		IsRunning:        c.state == StateRunning,
		SavedAt:          c.opts.Now().UnixMilli(),
	})
}

func (c *Countdown) clearSnapshot() error {
	if !c.persistent() {
		return nil
	}
	return c.opts.Snapshots.DeleteTimerSnapshot(context.Background(), c.opts.PersistenceID)
}
