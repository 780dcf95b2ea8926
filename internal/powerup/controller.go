package powerup

import (
	"time"

	"github.com/yoyoarcade/yoyo/internal/timer"
)

// Target is an entity the power-up protects. Alive reports false once the
// entity has been removed from its scene.
type Target interface {
	Position() (x, y float64)
	Alive() bool
}

// Visual is a decorative handle that follows one target while the
// power-up is active.
type Visual interface {
	MoveTo(x, y float64)
	Release()
}

// VisualFactory creates the visual for the target in the given slot.
type VisualFactory func(slot int, t Target) Visual

// Controller is a two-state machine, inactive or active with a single
// expiry timer. While active it owns exactly one visual per captured
// target.
type Controller struct {
	sched     *timer.Scheduler
	duration  time.Duration
	newVisual VisualFactory

	active  bool
	targets []Target
	visuals []Visual
	expiry  timer.Handle

	// OnActivate and OnExpire are optional hooks for HUD banners and logging.
	// OnExpire is not called by Reset.
	OnActivate func()
	OnExpire   func()
}

func NewController(sched *timer.Scheduler, duration time.Duration, newVisual VisualFactory) *Controller {
	return &Controller{
		sched:     sched,
		duration:  duration,
		newVisual: newVisual,
	}
}

// Activate captures the live targets, spawns their visuals and arms the
// expiry timer. It is a no-op returning false while already active.
func (c *Controller) Activate(targets []Target) bool {
	if c.active {
		return false
	}

	c.active = true
	for _, t := range targets {
		if t == nil || !t.Alive() {
			continue
		}
		slot := len(c.targets)
		c.targets = append(c.targets, t)

		var v Visual
		if c.newVisual != nil {
			v = c.newVisual(slot, t)
		}
		c.visuals = append(c.visuals, v)
		if v != nil {
			v.MoveTo(t.Position())
		}
	}
	c.expiry = c.sched.After(c.duration, c.expire)

	if c.OnActivate != nil {
		c.OnActivate()
	}
	return true
}

func (c *Controller) expire() {
	c.expiry = 0
	c.clear()
	if c.OnExpire != nil {
		c.OnExpire()
	}
}

// Sync moves every visual onto its target. Targets that are no longer
// alive keep their visual where it was.
func (c *Controller) Sync() {
	if !c.active {
		return
	}
	for i, t := range c.targets {
		v := c.visuals[i]
		if v == nil || t == nil || !t.Alive() {
			continue
		}
		v.MoveTo(t.Position())
	}
}

// Reset drops the power-up without firing OnExpire. Used on restart and
// scene teardown.
func (c *Controller) Reset() {
	if c.expiry != 0 {
		c.sched.Cancel(c.expiry)
		c.expiry = 0
	}
	c.clear()
}

func (c *Controller) clear() {
	for _, v := range c.visuals {
		if v != nil {
			v.Release()
		}
	}
	c.active = false
	c.targets = nil
	c.visuals = nil
}

func (c *Controller) IsActive() bool {
	return c.active
}

// Remaining returns the time left before expiry, zero when inactive.
func (c *Controller) Remaining() time.Duration {
	if !c.active {
		return 0
	}
	return c.sched.Remaining(c.expiry)
}

// Targets returns the number of captured targets.
func (c *Controller) Targets() int {
	return len(c.targets)
}

// Visuals returns the number of visual handles currently owned.
func (c *Controller) Visuals() int {
	return len(c.visuals)
}

func (c *Controller) Duration() time.Duration {
	return c.duration
}
