package scene

import (
	tl "github.com/JoelOtter/termloop"
)

// GameFPS is the frame rate every level runs at.
const GameFPS = 60

// Scene is one playable level driven by a Host.
type Scene interface {
	// Level returns the level to show. It changes after Restart.
	Level() *tl.BaseLevel

	// Update advances the scene by dt seconds for a viewport of the given
	// size in cells.
	Update(dt float64, viewW, viewH int)

	// HandleKey routes one key event while the scene is playing.
	HandleKey(ev tl.Event)

	HUD() []Line
	Banners() *Banners

	// Finished reports whether the run was won or lost.
	Finished() bool

	// Restart drops the finished run and builds a fresh one.
	Restart()
}

type hostState int

const (
	stateTitle hostState = iota
	statePlaying
	stateEnd
)

// Host runs a Scene inside a termloop game: a title screen, the level with
// its HUD, then an end screen that can restart the level. Esc returns to
// the caller at any point.
type Host struct {
	game  *tl.Game
	scene Scene
	state hostState
	hud   *HUD

	Title func() []Line
	End   func() []Line
}

func NewHost(s Scene) *Host {
	return &Host{
		game:  tl.NewGame(),
		scene: s,
	}
}

// Start blocks until the player presses Esc.
func (h *Host) Start() {
	h.game.Screen().SetFps(GameFPS)
	h.game.SetEndKey(tl.KeyEsc)
	h.showTitle()
	h.game.Start()
}

func (h *Host) showTitle() {
	h.state = stateTitle
	h.game.Screen().SetLevel(NewOverlayLevel(&Overlay{
		Lines: h.Title,
		OnKey: func(ev tl.Event) {
			if ev.Key == tl.KeySpace || ev.Key == tl.KeyEnter {
				h.play()
			}
		},
	}))
}

func (h *Host) play() {
	screen := h.game.Screen()
	level := h.scene.Level()
	level.AddEntity(&Loop{OnTick: h.tick})

	if h.hud != nil {
		screen.RemoveEntity(h.hud)
	}
	h.hud = &HUD{Lines: h.scene.HUD, Banners: h.scene.Banners()}
	screen.AddEntity(h.hud)

	screen.SetLevel(level)
	h.state = statePlaying
}

func (h *Host) tick(ev tl.Event) {
	if h.state != statePlaying {
		return
	}
	if ev.Type == tl.EventKey {
		h.scene.HandleKey(ev)
	}

	screen := h.game.Screen()
	w, ht := screen.Size()
	h.scene.Update(screen.TimeDelta(), w, ht)

	if h.scene.Finished() {
		h.showEnd()
	}
}

func (h *Host) showEnd() {
	h.state = stateEnd
	if h.hud != nil {
		h.game.Screen().RemoveEntity(h.hud)
		h.hud = nil
	}
	h.game.Screen().SetLevel(NewOverlayLevel(&Overlay{
		Lines: h.End,
		OnKey: func(ev tl.Event) {
			if ev.Ch == 'r' || ev.Ch == 'R' || ev.Key == tl.KeySpace {
				h.scene.Restart()
				h.play()
			}
		},
	}))
}
