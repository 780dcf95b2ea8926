package scene

import (
	tl "github.com/JoelOtter/termloop"

	"github.com/yoyoarcade/yoyo/internal/entity"
)

// Enemy pairs a hostile body with its sprite.
type Enemy struct {
	Body   *entity.Entity
	sprite *Sprite
}

// NewGroundEnemy patrols [minX, maxX] standing on y, all in cells.
func NewGroundEnemy(id int, x, groundY, minX, maxX float64) *Enemy {
	body := entity.NewGroundEnemy(id, x, groundY-2, 3, 2, minX, maxX)
	patrol := body.Behavior.(*entity.Patrol)
	patrol.Speed = entity.PatrolSpeed / UnitsPerCellX

	return &Enemy{
		Body:   body,
		sprite: NewSprite([]string{"ΩΩΩ", "╯ ╰"}, ColorDanger, ColorBackground),
	}
}

// NewFlyingEnemy hovers around (x, y) in cells.
func NewFlyingEnemy(id int, x, y float64) *Enemy {
	body := entity.NewFlyingEnemy(id, x, y, 3, 1)
	hover := body.Behavior.(*entity.Hover)
	hover.MinY = y - entity.HoverRange/UnitsPerCellY
	hover.MaxY = y + entity.HoverRange/UnitsPerCellY
	hover.Speed = entity.HoverSpeed / UnitsPerCellY

	return &Enemy{
		Body:   body,
		sprite: NewSprite([]string{"{^}"}, ColorFire, ColorBackground),
	}
}

func (e *Enemy) Attach(level *tl.BaseLevel) {
	e.sprite.MoveTo(e.Body.X, e.Body.Y)
	e.sprite.Attach(level)
}

func (e *Enemy) Update(dt float64) {
	e.Body.Step(dt)
	e.sprite.MoveTo(e.Body.X, e.Body.Y)
}

// TurnAt puts a patrolling enemy back at x facing the other way.
func (e *Enemy) TurnAt(x float64) {
	patrol, ok := e.Body.Behavior.(*entity.Patrol)
	if !ok {
		return
	}
	patrol.Dir = -patrol.Dir
	e.Body.X = x
	e.Body.VX = 0
	e.sprite.MoveTo(e.Body.X, e.Body.Y)
}

// Defeat disables the body and hides the sprite.
func (e *Enemy) Defeat() {
	e.Body.Disable()
	e.sprite.Detach()
}

func (e *Enemy) Active() bool {
	return e.Body.Enabled
}

// Fireball is a projectile body with a sprite.
type Fireball struct {
	Body   *entity.Entity
	sprite *Sprite
}

// Fireballs owns every live projectile of a scene.
type Fireballs struct {
	level  *tl.BaseLevel
	speed  float64
	nextID int
	live   []*Fireball
}

// FireballSpeed is the projectile speed in world pixels per second.
const FireballSpeed = 150.0

func NewFireballs(level *tl.BaseLevel) *Fireballs {
	return &Fireballs{level: level, speed: FireballSpeed / UnitsPerCellX}
}

// Spawn launches a fireball from (x, y) toward (tx, ty).
func (f *Fireballs) Spawn(x, y, tx, ty float64) *Fireball {
	f.nextID++
	fb := &Fireball{
		Body:   entity.NewProjectile(f.nextID, x, y, 1, 1, tx, ty, f.speed),
		sprite: NewSprite([]string{"*"}, ColorHighlight, ColorBackground),
	}
	// Vertical cells are twice as tall as they are wide.
	fb.Body.VY *= UnitsPerCellX / UnitsPerCellY
	fb.sprite.MoveTo(x, y)
	fb.sprite.Attach(f.level)
	f.live = append(f.live, fb)
	return fb
}

// Update moves every fireball and drops those that left the bounds or hit
// a solid.
func (f *Fireballs) Update(dt float64, minX, maxX, minY, maxY float64, solids []*Solid) {
	kept := f.live[:0]
	for _, fb := range f.live {
		if !fb.Body.Enabled {
			fb.sprite.Detach()
			continue
		}
		fb.Body.Step(dt)
		if fb.Body.X < minX || fb.Body.X > maxX || fb.Body.Y < minY || fb.Body.Y > maxY || hitsSolid(fb.Body, solids) {
			fb.sprite.Detach()
			continue
		}
		fb.sprite.MoveTo(fb.Body.X, fb.Body.Y)
		kept = append(kept, fb)
	}
	clear(f.live[len(kept):])
	f.live = kept
}

func hitsSolid(b *entity.Entity, solids []*Solid) bool {
	for _, s := range solids {
		if b.X < s.Right() && s.X < b.Right() && b.Y < s.Y+s.H && s.Y < b.Bottom() {
			return true
		}
	}
	return false
}

func (f *Fireballs) Live() []*Fireball {
	return f.live
}

func (f *Fireballs) Clear() {
	for _, fb := range f.live {
		fb.sprite.Detach()
	}
	f.live = nil
}
