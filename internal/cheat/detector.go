package cheat

// Detector fans a keystroke out to several independently sized buffers.
type Detector struct {
	buffers []*Buffer
}

func NewDetector(buffers ...*Buffer) *Detector {
	return &Detector{buffers: buffers}
}

// ShieldDetector returns the Castle Escape code family.
func ShieldDetector() *Detector {
	return NewDetector(NewBuffer(len(ShieldCode), Code{Name: ShieldName, Sequence: ShieldCode}))
}

// ChaserDetector returns the Coin Chaser code family.
func ChaserDetector() *Detector {
	return NewDetector(NewBuffer(6,
		Code{Name: VictoryName, Sequence: VictoryCode},
		Code{Name: InvincibilityName, Sequence: InvincibilityCode},
	))
}

// Feed passes r to every buffer and returns the names of the codes that
// matched, in buffer registration order.
func (d *Detector) Feed(r rune) []string {
	var matched []string
	for _, b := range d.buffers {
		if c, ok := b.Feed(r); ok {
			matched = append(matched, c.Name)
		}
	}
	return matched
}

func (d *Detector) Reset() {
	for _, b := range d.buffers {
		b.Reset()
	}
}
