package collision

import (
	"fmt"

	"github.com/yoyoarcade/yoyo/internal/entity"
)

type Outcome int

const (
	Ignored Outcome = iota
	StompDefeat
	PlayerHit
)

func (o Outcome) String() string {
	switch o {
	case Ignored:
		return "ignored"
	case StompDefeat:
		return "stomp"
	case PlayerHit:
		return "hit"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Resolve decides a player-enemy contact. Y grows downward, so a falling
// player has a positive velocity and is above the enemy when its Y is
// smaller.
func Resolve(playerVY, playerY, otherY, margin float64, powerUp bool) Outcome {
	if powerUp {
		return StompDefeat
	}
	if playerVY > 0 && playerY < otherY-margin {
		return StompDefeat
	}
	return PlayerHit
}

// Policy holds the tunable stomp margins and bounce impulse.
type Policy struct {
	GroundMargin float64
	FlyingMargin float64
	Bounce       float64
}

func DefaultPolicy() Policy {
	return Policy{GroundMargin: 10, FlyingMargin: 5, Bounce: -300}
}

// Scaled converts the policy into a coarser vertical unit.
func (p Policy) Scaled(unitsPerCell float64) Policy {
	if unitsPerCell <= 0 {
		return p
	}
	return Policy{
		GroundMargin: p.GroundMargin / unitsPerCell,
		FlyingMargin: p.FlyingMargin / unitsPerCell,
		Bounce:       p.Bounce / unitsPerCell,
	}
}

func (p Policy) Margin(k entity.Kind) float64 {
	if k == entity.FlyingEnemy {
		return p.FlyingMargin
	}
	return p.GroundMargin
}

// Result is the decision for one contact. Bounce is the vertical velocity
// to give the player, zero when it keeps its own.
type Result struct {
	Outcome Outcome
	Points  int
	Bounce  float64
}

// Contact decides what happens when player touches other. Disabled bodies
// and non-hostile kinds are ignored. Projectiles cannot be stomped; under
// a power-up they pass through harmlessly.
func (p Policy) Contact(player, other *entity.Entity, powerUp bool) Result {
	if player == nil || other == nil || !player.Enabled || !other.Enabled || !other.Kind.Hostile() {
		return Result{Outcome: Ignored}
	}

	if other.Kind == entity.Projectile {
		if powerUp {
			return Result{Outcome: Ignored}
		}
		return Result{Outcome: PlayerHit}
	}

	_, py := player.Center()
	_, oy := other.Center()
	switch Resolve(player.VY, py, oy, p.Margin(other.Kind), powerUp) {
	case StompDefeat:
		r := Result{Outcome: StompDefeat, Points: other.Points}
		if !powerUp {
			r.Bounce = p.Bounce
		}
		return r
	default:
		return Result{Outcome: PlayerHit}
	}
}

// Apply carries out a stomp: the enemy is disabled and the player bounces.
// Hits are left to the session, which owns lives and respawn grace.
func Apply(player, other *entity.Entity, r Result) {
	if r.Outcome != StompDefeat {
		return
	}
	other.Disable()
	if r.Bounce != 0 {
		player.VY = r.Bounce
	}
}

// Overlap reports whether the boxes of a and b intersect.
func Overlap(a, b *entity.Entity) bool {
	return a.X < b.Right() && b.X < a.Right() && a.Y < b.Bottom() && b.Y < a.Bottom()
}
