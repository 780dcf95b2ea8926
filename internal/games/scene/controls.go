package scene

import tl "github.com/JoelOtter/termloop"

type Action int

const (
	ActNone Action = iota
	ActLeft
	ActRight
	ActJump
	ActFly
)

// Input matches either a special key or a printable character.
type Input struct {
	Key tl.Key
	Ch  rune
}

func (in Input) Matches(ev tl.Event) bool {
	if ev.Type != tl.EventKey {
		return false
	}
	if in.Ch != 0 {
		return ev.Ch == in.Ch
	}
	return ev.Ch == 0 && ev.Key == in.Key
}

// Binding maps one player's keys to actions.
type Binding struct {
	Left  []Input
	Right []Input
	Jump  []Input
	Fly   []Input
	Help  string
}

// Bindings holds the key layout for each player slot.
var Bindings = []Binding{
	{
		Left:  []Input{{Key: tl.KeyArrowLeft}},
		Right: []Input{{Key: tl.KeyArrowRight}},
		Jump:  []Input{{Key: tl.KeyArrowUp}, {Key: tl.KeySpace}},
		Fly:   []Input{{Ch: 'f'}},
		Help:  "←/→ move  ↑/space jump  f fly",
	},
	{
		Left:  []Input{{Ch: 'a'}},
		Right: []Input{{Ch: 'd'}},
		Jump:  []Input{{Ch: 'w'}},
		Fly:   []Input{{Ch: 'g'}},
		Help:  "a/d move  w jump  g fly",
	},
	{
		Left:  []Input{{Ch: 'j'}},
		Right: []Input{{Ch: 'l'}},
		Jump:  []Input{{Ch: 'i'}},
		Fly:   []Input{{Ch: 'h'}},
		Help:  "j/l move  i jump  h fly",
	},
}

func BindingFor(slot int) Binding {
	if slot < 0 || slot >= len(Bindings) {
		return Binding{}
	}
	return Bindings[slot]
}

func (b Binding) Action(ev tl.Event) Action {
	switch {
	case matchAny(b.Left, ev):
		return ActLeft
	case matchAny(b.Right, ev):
		return ActRight
	case matchAny(b.Jump, ev):
		return ActJump
	case matchAny(b.Fly, ev):
		return ActFly
	}
	return ActNone
}

func matchAny(inputs []Input, ev tl.Event) bool {
	for _, in := range inputs {
		if in.Matches(ev) {
			return true
		}
	}
	return false
}
