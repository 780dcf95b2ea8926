package entity

import (
	"fmt"
	"math"
)

type Kind int

const (
	Player Kind = iota
	GroundEnemy
	FlyingEnemy
	Projectile
	Coin
)

func (k Kind) String() string {
	switch k {
	case Player:
		return "player"
	case GroundEnemy:
		return "ground-enemy"
	case FlyingEnemy:
		return "flying-enemy"
	case Projectile:
		return "projectile"
	case Coin:
		return "coin"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Hostile reports whether contact with this kind can cost a player a life.
func (k Kind) Hostile() bool {
	return k == GroundEnemy || k == FlyingEnemy || k == Projectile
}

const (
	GroundEnemyPoints = 20
	FlyingEnemyPoints = 50
	CoinPoints        = 10

	PatrolSpeed = 50.0
	HoverRange  = 20.0
	HoverSpeed  = 30.0
)

// Entity is a body in world units. X and Y are the top-left corner, Y grows
// downward.
type Entity struct {
	ID       int
	Kind     Kind
	X, Y     float64
	W, H     float64
	VX, VY   float64
	Enabled  bool
	Points   int
	Behavior Behavior
}

func NewPlayer(id int, x, y, w, h float64) *Entity {
	return &Entity{ID: id, Kind: Player, X: x, Y: y, W: w, H: h, Enabled: true}
}

// NewGroundEnemy walks between minX and maxX, starting to the right.
func NewGroundEnemy(id int, x, y, w, h, minX, maxX float64) *Entity {
	return &Entity{
		ID: id, Kind: GroundEnemy, X: x, Y: y, W: w, H: h,
		Enabled:  true,
		Points:   GroundEnemyPoints,
		Behavior: &Patrol{MinX: minX, MaxX: maxX, Speed: PatrolSpeed, Dir: 1},
	}
}

// NewFlyingEnemy bobs vertically around its spawn height.
func NewFlyingEnemy(id int, x, y, w, h float64) *Entity {
	return &Entity{
		ID: id, Kind: FlyingEnemy, X: x, Y: y, W: w, H: h,
		Enabled:  true,
		Points:   FlyingEnemyPoints,
		Behavior: &Hover{MinY: y - HoverRange, MaxY: y + HoverRange, Speed: HoverSpeed, Dir: -1},
	}
}

// NewCoin is a pickup. It has no behavior of its own; scenes drop it
// under gravity.
func NewCoin(id int, x, y, w, h float64) *Entity {
	return &Entity{ID: id, Kind: Coin, X: x, Y: y, W: w, H: h, Enabled: true, Points: CoinPoints}
}

// NewProjectile travels from (x, y) toward (tx, ty) at speed.
func NewProjectile(id int, x, y, w, h, tx, ty, speed float64) *Entity {
	vx, vy := Aim(x, y, tx, ty, speed)
	return &Entity{
		ID: id, Kind: Projectile, X: x, Y: y, W: w, H: h,
		VX: vx, VY: vy,
		Enabled:  true,
		Behavior: Ballistic{},
	}
}

// Aim returns a velocity of the given speed pointing from one point to another.
func Aim(fromX, fromY, toX, toY, speed float64) (vx, vy float64) {
	dx, dy := toX-fromX, toY-fromY
	d := math.Hypot(dx, dy)
	if d == 0 {
		return 0, 0
	}
	return dx / d * speed, dy / d * speed
}

// Step advances the entity by dt seconds. Disabled entities do not move.
func (e *Entity) Step(dt float64) {
	if !e.Enabled || e.Behavior == nil {
		return
	}
	e.Behavior.Step(e, dt)
}

// Disable takes the entity out of play. It stays in its owner's list until
// the owner has done its bookkeeping.
func (e *Entity) Disable() {
	e.Enabled = false
	e.VX, e.VY = 0, 0
}

func (e *Entity) Bottom() float64 {
	return e.Y + e.H
}

func (e *Entity) Right() float64 {
	return e.X + e.W
}

func (e *Entity) Center() (float64, float64) {
	return e.X + e.W/2, e.Y + e.H/2
}
