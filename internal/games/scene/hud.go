package scene

import (
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/mattn/go-runewidth"

	"github.com/yoyoarcade/yoyo/internal/session"
)

// Line is one row of HUD text.
type Line struct {
	Text  string
	Color tl.Attr
}

// HUD draws fixed text over the level, unaffected by the level offset.
// Lines are pulled fresh every frame.
type HUD struct {
	Lines   func() []Line
	Banners *Banners
}

func (h *HUD) Draw(screen *tl.Screen) {
	if h.Lines != nil {
		for i, line := range h.Lines() {
			RenderText(screen, 2, 1+i, line.Text, line.Color)
		}
	}
	if h.Banners != nil {
		if msg, color, ok := h.Banners.Current(); ok {
			w, _ := screen.Size()
			RenderCentered(screen, w, 2, msg, color)
		}
	}
}

func (h *HUD) Tick(event tl.Event) {}

// RenderText writes text starting at (x, y) and returns the column after
// it. Wide runes take two cells.
func RenderText(screen *tl.Screen, x, y int, text string, color tl.Attr) int {
	for _, ch := range text {
		screen.RenderCell(x, y, &tl.Cell{Fg: color, Bg: ColorBackground, Ch: ch})
		x += max(runewidth.RuneWidth(ch), 1)
	}
	return x
}

// RenderCentered writes text centered on a screen of the given width.
func RenderCentered(screen *tl.Screen, width, y int, text string, color tl.Attr) {
	RenderText(screen, CenterX(width, text), y, text, color)
}

// CenterX returns the column at which text starts when centered.
func CenterX(width int, text string) int {
	return max(0, (width-runewidth.StringWidth(text))/2)
}

type banner struct {
	text  string
	color tl.Attr
}

// Banners shows the most recent message until its timer clears it. Timers
// are scheduled through the session so a restart drops them.
type Banners struct {
	sess    *session.Session
	current *banner
}

func NewBanners(sess *session.Session) *Banners {
	return &Banners{sess: sess}
}

// Show displays text for d. A zero duration keeps it until the next Show
// or Clear.
func (b *Banners) Show(text string, color tl.Attr, d time.Duration) {
	bn := &banner{text: text, color: color}
	b.current = bn
	if d > 0 {
		b.sess.After(d, func() {
			if b.current == bn {
				b.current = nil
			}
		})
	}
}

func (b *Banners) Clear() {
	b.current = nil
}

func (b *Banners) Current() (string, tl.Attr, bool) {
	if b.current == nil {
		return "", 0, false
	}
	return b.current.text, b.current.color, true
}
