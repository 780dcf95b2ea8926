package entity

// Behavior moves an entity each step.
type Behavior interface {
	Step(e *Entity, dt float64)
}

// Patrol walks horizontally between MinX and MaxX, turning at either bound.
type Patrol struct {
	MinX, MaxX float64
	Speed      float64
	Dir        float64
}

func (p *Patrol) Step(e *Entity, dt float64) {
	if p.Dir == 0 {
		p.Dir = 1
	}
	e.VX = p.Speed * p.Dir
	e.X += e.VX * dt

	if e.X >= p.MaxX {
		e.X = p.MaxX
		p.Dir = -1
	} else if e.X <= p.MinX {
		e.X = p.MinX
		p.Dir = 1
	}
}

// Hover bobs vertically between MinY and MaxY.
type Hover struct {
	MinY, MaxY float64
	Speed      float64
	Dir        float64
}

func (h *Hover) Step(e *Entity, dt float64) {
	if h.Dir == 0 {
		h.Dir = -1
	}
	e.VY = h.Speed * h.Dir
	e.Y += e.VY * dt

	if e.Y >= h.MaxY {
		e.Y = h.MaxY
		h.Dir = -1
	} else if e.Y <= h.MinY {
		e.Y = h.MinY
		h.Dir = 1
	}
}

// Ballistic keeps the entity's velocity.
type Ballistic struct{}

func (Ballistic) Step(e *Entity, dt float64) {
	e.X += e.VX * dt
	e.Y += e.VY * dt
}
