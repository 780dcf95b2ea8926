package chaser

import (
	"errors"
	"math"
	"strings"
	"testing"
)

const tinyStage = `
name: tiny
width: 200
offset_y: 0
platform: {w: 40, h: 20}
ground: {x: 100, y: 390, w: 200, h: 20}
platforms:
  - {x: 100, y: 300}
moving:
  - {x: 50, y: 200, min: 40, max: 120, speed: 20}
coins:
  - {x: 100, y: 250}
ground_enemies:
  - {x: 100, y: 280, min: 80, max: 400}
fire_enemies: []
spawns:
  - {x: 20, y: 360}
`

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestDefaultStage(t *testing.T) {
	s, err := DefaultStage()
	if err != nil {
		t.Fatalf("Expected built-in stage to parse, got %v", err)
	}

	counts := []struct {
		name      string
		got, want int
	}{
		{"platforms", len(s.Platforms), 14},
		{"moving", len(s.Moving), 4},
		{"coins", len(s.Coins), 12},
		{"ground enemies", len(s.GroundEnemies), 3},
		{"fire enemies", len(s.FireEnemies), 1},
		{"spawns", len(s.Spawns), 3},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("Expected %d %s, got %d", c.want, c.name, c.got)
		}
	}
}

func TestDefaultLayout(t *testing.T) {
	s, err := DefaultStage()
	if err != nil {
		t.Fatal(err)
	}
	l := s.Layout()

	if l.Width != 80 || l.Rows != 42 {
		t.Errorf("Expected 80x42 cells, got %vx%v", l.Width, l.Rows)
	}
	if l.Ground.X != 0 || !near(l.Ground.Y, 40) || l.Ground.W != 80 {
		t.Errorf("Unexpected ground %+v", l.Ground)
	}

	m := l.Movers[0]
	if !near(m.Solid.X, 36.8) || !near(m.MinX, 26.8) || !near(m.MaxX, 46.8) || m.Speed != 6 {
		t.Errorf("Unexpected first mover %+v", m)
	}

	if !near(l.Spawns[0].X, 9) || !near(l.Spawns[0].Y, 35.6) {
		t.Errorf("Unexpected first spawn %+v", l.Spawns[0])
	}
	if !near(l.Coins[0].X, 19.5) || !near(l.Coins[0].Y, 31.1) {
		t.Errorf("Unexpected first coin %+v", l.Coins[0])
	}
}

func TestGroundEnemiesSettleAndClamp(t *testing.T) {
	s, err := DefaultStage()
	if err != nil {
		t.Fatal(err)
	}
	l := s.Layout()

	second := l.GroundEnemies[1]
	if !near(second.Y, 40) {
		t.Errorf("Expected the second guard on the ground, got y=%v", second.Y)
	}
	if second.Dir != -1 || !near(second.MinX, 53.5) || !near(second.MaxX, 68.5) {
		t.Errorf("Unexpected second guard %+v", second)
	}

	third := l.GroundEnemies[2]
	if third.MaxX != l.Width-enemyWidth {
		t.Errorf("Expected patrol clamped to the stage, got %v", third.MaxX)
	}
	if l.GroundEnemies[0].Dir != 1 {
		t.Errorf("Expected default direction 1, got %v", l.GroundEnemies[0].Dir)
	}
}

func TestTinyStageSettlesOnPlatform(t *testing.T) {
	s, err := ParseStage([]byte(tinyStage))
	if err != nil {
		t.Fatalf("Expected tiny stage to parse, got %v", err)
	}
	l := s.Layout()

	// The platform at y=300 has its top at 290px, 14.5 rows.
	if got := l.GroundEnemies[0].Y; !near(got, 14.5) {
		t.Errorf("Expected guard on the platform at 14.5, got %v", got)
	}
	if got := l.GroundEnemies[0].MaxX; got != 20-enemyWidth {
		t.Errorf("Expected patrol clamped to %v, got %v", 20-enemyWidth, got)
	}
}

func TestParseStageErrors(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(string) string
		target error
	}{
		{
			name:   "unknown key",
			edit:   func(s string) string { return s + "bogus: 1\n" },
			target: nil,
		},
		{
			name: "no coins",
			edit: func(s string) string {
				return strings.Replace(s, "coins:\n  - {x: 100, y: 250}\n", "coins: []\n", 1)
			},
			target: ErrNoCoins,
		},
		{
			name: "no spawns",
			edit: func(s string) string {
				return strings.Replace(s, "spawns:\n  - {x: 20, y: 360}\n", "spawns: []\n", 1)
			},
			target: ErrNoSpawns,
		},
		{
			name:   "bad mover",
			edit:   func(s string) string { return strings.Replace(s, "min: 40, max: 120", "min: 120, max: 40", 1) },
			target: nil,
		},
		{
			name:   "zero width",
			edit:   func(s string) string { return strings.Replace(s, "width: 200", "width: 0", 1) },
			target: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStage([]byte(tt.edit(tinyStage)))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}
