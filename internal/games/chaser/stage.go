package chaser

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/yoyoarcade/yoyo/internal/games/scene"
)

//go:embed stage.yaml
var defaultStage []byte

var (
	ErrNoCoins  = errors.New("stage has no coins")
	ErrNoSpawns = errors.New("stage has no spawn points")
)

type point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type size struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type moving struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Speed float64 `yaml:"speed"`
}

type patrol struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
	Dir float64 `yaml:"dir"`
}

// Stage is a level description in pixels, as stored in YAML.
type Stage struct {
	Name          string   `yaml:"name"`
	Width         float64  `yaml:"width"`
	OffsetY       float64  `yaml:"offset_y"`
	Platform      size     `yaml:"platform"`
	Ground        rect     `yaml:"ground"`
	Platforms     []point  `yaml:"platforms"`
	Moving        []moving `yaml:"moving"`
	Coins         []point  `yaml:"coins"`
	GroundEnemies []patrol `yaml:"ground_enemies"`
	FireEnemies   []point  `yaml:"fire_enemies"`
	Spawns        []point  `yaml:"spawns"`
}

// ParseStage decodes and validates a stage. Unknown keys are errors.
func ParseStage(data []byte) (*Stage, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Stage
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse stage: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// DefaultStage returns the built-in Coin Chaser stage.
func DefaultStage() (*Stage, error) {
	return ParseStage(defaultStage)
}

func (s *Stage) Validate() error {
	if s.Width <= 0 || s.Ground.W <= 0 || s.Ground.H <= 0 {
		return fmt.Errorf("stage %q: width and ground size must be positive", s.Name)
	}
	if s.Platform.W <= 0 || s.Platform.H <= 0 {
		return fmt.Errorf("stage %q: platform size must be positive", s.Name)
	}
	if len(s.Coins) == 0 {
		return fmt.Errorf("stage %q: %w", s.Name, ErrNoCoins)
	}
	if len(s.Spawns) == 0 {
		return fmt.Errorf("stage %q: %w", s.Name, ErrNoSpawns)
	}
	for i, m := range s.Moving {
		if m.Min >= m.Max || m.Speed <= 0 {
			return fmt.Errorf("stage %q: moving platform %d needs min < max and a positive speed", s.Name, i)
		}
	}
	return nil
}

// Spot is a position in cells.
type Spot struct {
	X, Y float64
}

// MoverSpot is a moving platform in cells.
type MoverSpot struct {
	Solid      scene.Solid
	MinX, MaxX float64
	Speed      float64
}

// PatrolSpot is a ground enemy standing on Y, walking MinX..MaxX.
type PatrolSpot struct {
	X, Y       float64
	MinX, MaxX float64
	Dir        float64
}

// Layout is a stage converted to cells, ready to build a scene from.
type Layout struct {
	Width, Rows   float64
	Ground        scene.Solid
	Platforms     []scene.Solid
	Movers        []MoverSpot
	Coins         []Spot
	GroundEnemies []PatrolSpot
	FireEnemies   []Spot
	Spawns        []Spot
}

const (
	coinSize        = 1.0
	enemyWidth      = 3.0
	fireEnemyHeight = 1.0
	spawnWidth      = scene.PlayerWidth
	spawnHeight     = scene.PlayerHeight
)

// Layout converts pixel centers to top-left corners in cells. Ground
// enemies are dropped onto the nearest static surface below them.
func (s *Stage) Layout() Layout {
	cx := func(x float64) float64 { return x / scene.UnitsPerCellX }
	cy := func(y float64) float64 { return (y + s.OffsetY) / scene.UnitsPerCellY }

	block := func(x, y, w, h float64) scene.Solid {
		return scene.Solid{
			X: cx(x - w/2),
			Y: cy(y - h/2),
			W: w / scene.UnitsPerCellX,
			H: h / scene.UnitsPerCellY,
		}
	}

	l := Layout{
		Width:  cx(s.Width),
		Ground: block(s.Ground.X, s.Ground.Y, s.Ground.W, s.Ground.H),
	}
	l.Rows = math.Ceil(l.Ground.Y + l.Ground.H)

	l.Platforms = lo.Map(s.Platforms, func(p point, _ int) scene.Solid {
		return block(p.X, p.Y, s.Platform.W, s.Platform.H)
	})

	halfW := s.Platform.W / 2
	l.Movers = lo.Map(s.Moving, func(m moving, _ int) MoverSpot {
		return MoverSpot{
			Solid: block(m.X, m.Y, s.Platform.W, s.Platform.H),
			MinX:  cx(m.Min - halfW),
			MaxX:  cx(m.Max - halfW),
			Speed: cx(m.Speed),
		}
	})

	l.Coins = lo.Map(s.Coins, func(p point, _ int) Spot {
		return Spot{X: cx(p.X) - coinSize/2, Y: cy(p.Y) - coinSize/2}
	})

	static := append([]scene.Solid{l.Ground}, l.Platforms...)
	l.GroundEnemies = lo.Map(s.GroundEnemies, func(p patrol, _ int) PatrolSpot {
		x := cx(p.X)
		spot := PatrolSpot{
			X:    x - enemyWidth/2,
			Y:    surfaceBelow(static, x, cy(p.Y), l.Ground.Y),
			MinX: max(0, cx(p.Min)-enemyWidth/2),
			MaxX: min(l.Width-enemyWidth, cx(p.Max)-enemyWidth/2),
			Dir:  p.Dir,
		}
		if spot.Dir == 0 {
			spot.Dir = 1
		}
		return spot
	})

	l.FireEnemies = lo.Map(s.FireEnemies, func(p point, _ int) Spot {
		return Spot{X: cx(p.X) - enemyWidth/2, Y: cy(p.Y) - fireEnemyHeight/2}
	})

	l.Spawns = lo.Map(s.Spawns, func(p point, _ int) Spot {
		return Spot{X: cx(p.X) - spawnWidth/2, Y: cy(p.Y) - spawnHeight/2}
	})
	return l
}

// surfaceBelow returns the highest solid top at or below y that spans x.
func surfaceBelow(solids []scene.Solid, x, y, fallback float64) float64 {
	best := math.Inf(1)
	for _, s := range solids {
		if x < s.X || x > s.Right() || s.Y < y {
			continue
		}
		best = min(best, s.Y)
	}
	if math.IsInf(best, 1) {
		return fallback
	}
	return best
}
