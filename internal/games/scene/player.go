package scene

import (
	"math"

	tl "github.com/JoelOtter/termloop"

	"github.com/yoyoarcade/yoyo/internal/entity"
	"github.com/yoyoarcade/yoyo/internal/games"
)

const (
	PlayerWidth  = 2
	PlayerHeight = 2
)

// Player is one controllable body plus its sprite.
type Player struct {
	Body      *entity.Entity
	Character games.Character
	Slot      int
	Color     tl.Attr
	Score     int

	binding  Binding
	physics  Physics
	sprite   *Sprite
	ground   *Solid
	moveLeft float64
	dir      float64
	canFly   bool
	alive    bool
}

func NewPlayer(slot int, c games.Character, physics Physics, canFly bool) *Player {
	color := AttrForHex(c.Color)
	initial := 'P'
	if r := []rune(c.Name); len(r) > 0 {
		initial = r[0]
	}

	return &Player{
		Body:      entity.NewPlayer(slot, 0, 0, PlayerWidth, PlayerHeight),
		Character: c,
		Slot:      slot,
		Color:     color,
		binding:   BindingFor(slot),
		physics:   physics,
		sprite:    NewSprite([]string{string(initial) + ">", "/\\"}, ColorBackground, color),
		canFly:    canFly,
		alive:     true,
	}
}

// Handle applies a key event addressed to this player. It reports whether
// the event was one of the player's keys.
func (p *Player) Handle(ev tl.Event) bool {
	if !p.alive {
		return false
	}

	switch p.binding.Action(ev) {
	case ActLeft:
		p.dir = -1
		p.moveLeft = p.physics.MoveHold
	case ActRight:
		p.dir = 1
		p.moveLeft = p.physics.MoveHold
	case ActJump:
		if p.ground != nil {
			p.Body.VY = p.physics.JumpVelocity
			p.ground = nil
		}
	case ActFly:
		if !p.canFly {
			return false
		}
		p.Body.VY = p.physics.FlyVelocity
		p.ground = nil
	default:
		return false
	}
	return true
}

// Step moves the player for dt seconds against the given platforms.
func (p *Player) Step(dt float64, solids []*Solid) {
	if !p.alive {
		return
	}

	if p.moveLeft > 0 {
		p.moveLeft -= dt
		p.Body.VX = p.dir * p.physics.RunSpeed
	} else {
		p.Body.VX = 0
	}

	p.ground = p.physics.Step(p.Body, dt, solids)
	p.sprite.MoveTo(p.Body.X, p.Body.Y)
}

// Bounce gives the player an upward impulse after a stomp.
func (p *Player) Bounce(vy float64) {
	p.Body.VY = vy
	p.ground = nil
}

// Place puts the player at (x, y) at rest.
func (p *Player) Place(x, y float64) {
	p.Body.X, p.Body.Y = x, y
	p.Body.VX, p.Body.VY = 0, 0
	p.moveLeft = 0
	p.ground = nil
	p.sprite.MoveTo(x, y)
}

// ClampLeft keeps the player at or right of x, dropping any leftward speed.
func (p *Player) ClampLeft(x float64) {
	if p.Body.X >= x {
		return
	}
	p.Body.X = x
	p.Body.VX = math.Max(p.Body.VX, 0)
	p.sprite.MoveTo(p.Body.X, p.Body.Y)
}

func (p *Player) OnGround() bool {
	return p.ground != nil
}

func (p *Player) Attach(level *tl.BaseLevel) {
	p.alive = true
	p.Body.Enabled = true
	p.sprite.Attach(level)
}

// Remove takes the player out of the scene. Power-up visuals bound to it
// stop following.
func (p *Player) Remove() {
	p.alive = false
	p.Body.Enabled = false
	p.sprite.Detach()
}

// Position and Alive make a player a power-up target.
func (p *Player) Position() (float64, float64) {
	return p.Body.X, p.Body.Y
}

func (p *Player) Alive() bool {
	return p.alive
}
