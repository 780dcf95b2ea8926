package scene

import (
	"github.com/yoyoarcade/yoyo/internal/entity"
)

// Scene units are terminal cells. One cell is UnitsPerCellX world pixels
// wide and UnitsPerCellY world pixels tall.
const (
	UnitsPerCellX = 10.0
	UnitsPerCellY = 20.0
)

// Physics is the arcade body model shared by both levels, in cells and
// seconds.
type Physics struct {
	Gravity      float64
	JumpVelocity float64
	RunSpeed     float64
	FlyVelocity  float64
	MaxFall      float64
	// MoveHold is how long one key press keeps a body walking. Terminals
	// report key repeats, not key releases.
	MoveHold float64
}

func DefaultPhysics() Physics {
	return Physics{
		Gravity:      800 / UnitsPerCellY,
		JumpVelocity: -450 / UnitsPerCellY,
		RunSpeed:     150 / UnitsPerCellX,
		FlyVelocity:  -300 / UnitsPerCellY,
		MaxFall:      900 / UnitsPerCellY,
		MoveHold:     0.15,
	}
}

// Solid is a platform. DX is how far it moved during the current frame so
// bodies standing on it can be carried along.
type Solid struct {
	X, Y, W, H float64
	DX         float64
}

func (s *Solid) Right() float64 {
	return s.X + s.W
}

// landingSlack lets a body that sinks slightly into a platform between
// frames still land on it.
const landingSlack = 0.05

// Step integrates gravity and velocity for dt seconds and lands the body
// on the first solid it falls onto. It returns that solid, or nil when the
// body is airborne.
func (p Physics) Step(b *entity.Entity, dt float64, solids []*Solid) *Solid {
	prevBottom := b.Bottom()

	b.VY = min(b.VY+p.Gravity*dt, p.MaxFall)
	b.X += b.VX * dt
	b.Y += b.VY * dt

	if b.VY < 0 {
		return nil
	}

	for _, s := range solids {
		if b.Right() <= s.X || b.X >= s.Right() {
			continue
		}
		if prevBottom <= s.Y+landingSlack && b.Bottom() >= s.Y {
			b.Y = s.Y - b.H
			b.VY = 0
			if s.DX != 0 {
				b.X += s.DX
			}
			return s
		}
	}
	return nil
}

// Mover patrols a solid between two x bounds.
type Mover struct {
	Solid      *Solid
	MinX, MaxX float64
	Speed      float64
	dir        float64
}

func NewMover(s *Solid, minX, maxX, speed float64) *Mover {
	return &Mover{Solid: s, MinX: minX, MaxX: maxX, Speed: speed, dir: 1}
}

// Step moves the solid and records the displacement in Solid.DX.
func (m *Mover) Step(dt float64) {
	before := m.Solid.X
	m.Solid.X += m.Speed * m.dir * dt

	if m.Solid.X >= m.MaxX {
		m.Solid.X = m.MaxX
		m.dir = -1
	} else if m.Solid.X <= m.MinX {
		m.Solid.X = m.MinX
		m.dir = 1
	}
	m.Solid.DX = m.Solid.X - before
}
