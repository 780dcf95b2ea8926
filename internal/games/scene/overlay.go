package scene

import (
	tl "github.com/JoelOtter/termloop"
)

// Overlay is a full-screen text panel: title, game over and victory screens.
type Overlay struct {
	Lines func() []Line
	OnKey func(ev tl.Event)
}

func (o *Overlay) Draw(screen *tl.Screen) {
	if o.Lines == nil {
		return
	}
	w, h := screen.Size()
	lines := o.Lines()
	y := max(0, (h-len(lines))/2)
	for i, line := range lines {
		RenderCentered(screen, w, y+i, line.Text, line.Color)
	}
}

func (o *Overlay) Tick(event tl.Event) {
	if event.Type == tl.EventKey && o.OnKey != nil {
		o.OnKey(event)
	}
}

// NewOverlayLevel returns a blank level showing only the overlay.
func NewOverlayLevel(o *Overlay) *tl.BaseLevel {
	level := tl.NewBaseLevel(tl.Cell{Bg: ColorBackground, Fg: ColorText, Ch: ' '})
	level.AddEntity(o)
	return level
}

// Loop is an invisible entity that gives a scene one callback per frame.
type Loop struct {
	OnTick func(ev tl.Event)
}

func (l *Loop) Draw(screen *tl.Screen) {}

func (l *Loop) Tick(event tl.Event) {
	if l.OnTick != nil {
		l.OnTick(event)
	}
}
