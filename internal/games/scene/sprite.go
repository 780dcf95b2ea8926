package scene

import (
	"math"

	tl "github.com/JoelOtter/termloop"
)

// Sprite is a termloop entity that mirrors a float position. Space in the
// art is transparent.
type Sprite struct {
	*tl.Entity
	level    *tl.BaseLevel
	attached bool
}

func NewSprite(art []string, fg, bg tl.Attr) *Sprite {
	w, h := 0, len(art)
	for _, row := range art {
		w = max(w, len([]rune(row)))
	}

	s := &Sprite{Entity: tl.NewEntity(0, 0, max(w, 1), max(h, 1))}
	for y, row := range art {
		for x, ch := range []rune(row) {
			if ch == ' ' {
				continue
			}
			s.SetCell(x, y, &tl.Cell{Fg: fg, Bg: bg, Ch: ch})
		}
	}
	return s
}

// NewBlock fills a w by h rectangle with a background color.
func NewBlock(w, h int, bg tl.Attr, ch rune) *Sprite {
	s := &Sprite{Entity: tl.NewEntity(0, 0, max(w, 1), max(h, 1))}
	s.Fill(&tl.Cell{Bg: bg, Fg: ColorBackground, Ch: ch})
	return s
}

func (s *Sprite) Attach(level *tl.BaseLevel) {
	if s.attached {
		return
	}
	s.level = level
	level.AddEntity(s)
	s.attached = true
}

func (s *Sprite) Detach() {
	if !s.attached {
		return
	}
	s.level.RemoveEntity(s)
	s.attached = false
}

func (s *Sprite) Attached() bool {
	return s.attached
}

// MoveTo places the sprite at the cell containing (x, y).
func (s *Sprite) MoveTo(x, y float64) {
	s.SetPosition(int(math.Floor(x)), int(math.Floor(y)))
}
