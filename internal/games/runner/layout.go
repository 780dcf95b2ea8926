package runner

import (
	"time"

	"github.com/yoyoarcade/yoyo/internal/games/scene"
)

// World geometry in cells. The level was tuned in pixels; see
// scene.UnitsPerCellX and scene.UnitsPerCellY.
const (
	WorldWidth  = 3200 / scene.UnitsPerCellX
	WorldRows   = 30
	GroundRow   = 28
	GroundDepth = 2
	DeathRow    = 650 / scene.UnitsPerCellY
	GoalX       = 3050 / scene.UnitsPerCellX

	SpawnX     = 100 / scene.UnitsPerCellX
	RespawnGap = 5.0
	RespawnAt  = 200 / scene.UnitsPerCellX
	RespawnRow = 400 / scene.UnitsPerCellY
	// LeftMargin is how far inside the viewport's left edge players are held.
	LeftMargin = 50 / scene.UnitsPerCellX

	VolleyInterval = 2 * time.Second
	// SecondTargetRange is how close player 2 must be to a fire enemy to
	// draw its own fireball, in pixels.
	SecondTargetRange = 400.0

	BannerDuration = 2 * time.Second
	MaxFrameDelta  = 0.1
)

type patrolSpot struct {
	X, MinX, MaxX float64
}

type hoverSpot struct {
	X, Y float64
}

func px(x float64) float64 { return x / scene.UnitsPerCellX }
func py(y float64) float64 { return y / scene.UnitsPerCellY }

var groundEnemies = []patrolSpot{
	{px(600), px(500), px(700)},
	{px(1000), px(900), px(1100)},
	{px(1400), px(1300), px(1500)},
	{px(1800), px(1700), px(1900)},
	{px(2200), px(2100), px(2300)},
	{px(2600), px(2500), px(2700)},
	{px(3000), px(2900), px(3100)},
}

var fireEnemies = []hoverSpot{
	{px(800), py(300)},
	{px(1200), py(250)},
	{px(1600), py(280)},
	{px(2000), py(320)},
	{px(2400), py(270)},
	{px(2800), py(300)},
}

var castleArt = []string{
	"  ▲   ▲  ",
	" ▐█▌ ▐█▌ ",
	" ███████ ",
	" ██▛▀▜██ ",
	" ██▌ ▐██ ",
}
