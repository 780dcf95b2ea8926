package scene

import (
	tl "github.com/JoelOtter/termloop"

	"github.com/yoyoarcade/yoyo/internal/powerup"
)

// Shield is the power-up decoration drawn around one player: a bracket
// frame in the player's color and a lightning mark above.
type Shield struct {
	sprite *Sprite
}

func NewShield(level *tl.BaseLevel, color tl.Attr) *Shield {
	s := &Shield{
		sprite: NewSprite([]string{
			" ϟϟ ",
			"(  )",
			"(  )",
		}, color, ColorBackground),
	}
	s.sprite.SetCell(1, 0, &tl.Cell{Fg: ColorHighlight, Ch: 'ϟ'})
	s.sprite.SetCell(2, 0, &tl.Cell{Fg: ColorHighlight, Ch: 'ϟ'})
	s.sprite.Attach(level)
	return s
}

// MoveTo frames a player whose top-left corner is at (x, y).
func (s *Shield) MoveTo(x, y float64) {
	s.sprite.MoveTo(x-1, y-1)
}

func (s *Shield) Release() {
	s.sprite.Detach()
}

// ShieldFactory builds shields for players. Targets that are not players
// get a shield in the default shield color.
func ShieldFactory(level *tl.BaseLevel) powerup.VisualFactory {
	return func(slot int, t powerup.Target) powerup.Visual {
		color := ColorShield
		if p, ok := t.(*Player); ok {
			color = p.Color
		}
		return NewShield(level, color)
	}
}

// Targets converts players into power-up targets.
func Targets(players []*Player) []powerup.Target {
	targets := make([]powerup.Target, 0, len(players))
	for _, p := range players {
		targets = append(targets, p)
	}
	return targets
}
