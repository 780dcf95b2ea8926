package stream

import (
	"math/rand"

	"github.com/samber/lo"
)

// Segment is one stretch of the scrolling level. Gap segments carry no
// platform; they are kept so callers can see where the holes are.
type Segment struct {
	ID    int
	X     float64
	Width float64
	Gap   bool
}

func (s Segment) End() float64 {
	return s.X + s.Width
}

// Tick reports what one Advance call changed.
type Tick struct {
	Traveled float64
	Emitted  []Segment
	Retired  []Segment
}

// Streamer emits segments ahead of a moving viewport and retires the ones
// that fall behind it.
type Streamer struct {
	cfg Config
	rng *rand.Rand

	segments []Segment
	cursor   float64
	nextID   int

	speed    float64
	distance float64
	ticks    int
}

// New validates cfg and lays down the runway. The runway segments are
// contiguous solids starting at x=0.
func New(cfg Config, rng *rand.Rand) (*Streamer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	s := &Streamer{cfg: cfg, rng: rng, speed: cfg.StartSpeed}
	for i := 0; i < cfg.RunwaySegments; i++ {
		s.emit(cfg.RunwayWidth, false)
	}
	return s, nil
}

// Advance runs one scroll tick against the viewport's leading edge. Speed
// ramps toward MaxSpeed, segments ending before the viewport's trailing
// edge minus RetireMargin are retired, and new segments are emitted until
// the level reaches SpawnLookahead past the leading edge.
func (s *Streamer) Advance(leading float64) Tick {
	var t Tick

	s.ticks++
	s.speed = min(s.speed+s.cfg.SpeedRamp, s.cfg.MaxSpeed)
	t.Traveled = s.speed * s.cfg.TickInterval.Seconds()
	s.distance += t.Traveled

	cutoff := leading - s.cfg.ViewportWidth - s.cfg.RetireMargin
	behind := func(seg Segment, _ int) bool { return seg.End() < cutoff }
	t.Retired = lo.Filter(s.segments, behind)
	if len(t.Retired) > 0 {
		s.segments = lo.Reject(s.segments, behind)
	}

	start := len(s.segments)
	for s.cursor < leading+s.cfg.SpawnLookahead {
		s.spawn()
	}
	t.Emitted = append([]Segment(nil), s.segments[start:]...)

	return t
}

func (s *Streamer) spawn() {
	if s.rng.Float64() < s.cfg.GapChance {
		s.emit(s.between(s.cfg.MinGap, min(s.cfg.MaxGap, s.cfg.MaxJump)), true)
	}
	s.emit(s.between(s.cfg.MinWidth, s.cfg.MaxWidth), false)
}

func (s *Streamer) emit(width float64, gap bool) {
	s.segments = append(s.segments, Segment{ID: s.nextID, X: s.cursor, Width: width, Gap: gap})
	s.nextID++
	s.cursor += width
}

func (s *Streamer) between(a, b float64) float64 {
	if b <= a {
		return a
	}
	return a + s.rng.Float64()*(b-a)
}

// Segments returns the live segments ordered by position.
func (s *Streamer) Segments() []Segment {
	return append([]Segment(nil), s.segments...)
}

// Solids returns the live segments that carry a platform.
func (s *Streamer) Solids() []Segment {
	return lo.Reject(s.segments, func(seg Segment, _ int) bool { return seg.Gap })
}

// SolidAt reports whether x lies on a platform segment.
func (s *Streamer) SolidAt(x float64) bool {
	_, ok := lo.Find(s.segments, func(seg Segment) bool {
		return !seg.Gap && x >= seg.X && x < seg.End()
	})
	return ok
}

// SetViewportWidth resizes the viewport, for terminals resized mid-run.
// Non-positive widths are ignored.
func (s *Streamer) SetViewportWidth(w float64) {
	if w > 0 {
		s.cfg.ViewportWidth = w
	}
}

// Cursor returns where the next segment will start.
func (s *Streamer) Cursor() float64 {
	return s.cursor
}

func (s *Streamer) Speed() float64 {
	return s.speed
}

func (s *Streamer) Distance() float64 {
	return s.distance
}

// Meters returns the distance score shown on the HUD.
func (s *Streamer) Meters() int {
	if s.cfg.UnitsPerMeter <= 0 {
		return int(s.distance)
	}
	return int(s.distance / s.cfg.UnitsPerMeter)
}

func (s *Streamer) Ticks() int {
	return s.ticks
}

func (s *Streamer) Config() Config {
	return s.cfg
}
