package chaser

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/samber/lo"

	"github.com/yoyoarcade/yoyo/internal/cheat"
	"github.com/yoyoarcade/yoyo/internal/collision"
	"github.com/yoyoarcade/yoyo/internal/entity"
	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/games/scene"
	"github.com/yoyoarcade/yoyo/internal/powerup"
	"github.com/yoyoarcade/yoyo/internal/session"
	"github.com/yoyoarcade/yoyo/internal/timer"
)

const (
	// RunSpeed and JumpVelocity are in pixels per second.
	RunSpeed     = 200.0
	JumpVelocity = -500.0

	VolleyInterval    = 2 * time.Second
	SecondTargetRange = 400.0
	BannerDuration    = 2 * time.Second
	MaxFrameDelta     = 0.1
)

type coin struct {
	Body   *entity.Entity
	sprite *scene.Sprite
}

// Standing is one player's coin tally.
type Standing struct {
	Character games.Character
	Coins     int
}

// Play is one Coin Chaser session on a stage layout. It implements
// scene.Scene.
type Play struct {
	opts    games.Options
	log     *slog.Logger
	layout  Layout
	physics scene.Physics
	policy  collision.Policy

	sched   *timer.Scheduler
	sess    *session.Session
	power   *powerup.Controller
	codes   *cheat.Detector
	banners *scene.Banners

	level     *tl.BaseLevel
	players   []*scene.Player
	tallies   []int
	solids    []*scene.Solid
	movers    []*scene.Mover
	moverArt  []*scene.Sprite
	coins     []*coin
	enemies   []*scene.Enemy
	fire      []*scene.Enemy
	fireballs *scene.Fireballs

	cameraX, cameraY float64

	finished bool
	result   games.Result

	OnFinish func(games.Result)
}

func newPlay(opts games.Options, layout Layout, logger *slog.Logger) *Play {
	physics := scene.DefaultPhysics()
	physics.RunSpeed = RunSpeed / scene.UnitsPerCellX
	physics.JumpVelocity = JumpVelocity / scene.UnitsPerCellY

	sched := timer.NewScheduler()
	p := &Play{
		opts:    opts,
		log:     logger,
		layout:  layout,
		physics: physics,
		policy:  collision.DefaultPolicy().Scaled(scene.UnitsPerCellY),
		sched:   sched,
		sess:    session.New(sched, opts.Lives, opts.RespawnGrace),
		codes:   cheat.ChaserDetector(),
	}
	p.banners = scene.NewBanners(p.sess)

	p.sess.OnLifeLost = func(remaining int) {
		p.log.Info("life lost", "lives", remaining)
	}
	p.sess.OnGameOver = func() { p.finish(games.OutcomeLost) }
	p.sess.OnVictory = func() { p.finish(games.OutcomeWon) }

	p.build()
	return p
}

func (p *Play) build() {
	l := p.layout
	p.level = tl.NewBaseLevel(tl.Cell{Bg: scene.ColorBackground, Fg: scene.ColorText, Ch: ' '})
	p.finished = false
	p.result = games.Result{}
	p.cameraX, p.cameraY = 0, 0

	p.power = powerup.NewController(p.sched, p.opts.InvincibilityDuration, scene.ShieldFactory(p.level))
	p.power.OnActivate = func() {
		p.log.Info("invincibility activated", "players", p.power.Targets(), "duration", p.opts.InvincibilityDuration)
		p.banners.Show("INVINCIBLE!", scene.ColorShield, 0)
	}
	p.power.OnExpire = func() {
		p.log.Info("invincibility expired")
		p.banners.Show("Invincibility ended", scene.ColorText, BannerDuration)
	}

	p.solids = p.solids[:0]
	p.addSolid(l.Ground, scene.ColorGround)
	for _, s := range l.Platforms {
		p.addSolid(s, scene.ColorGround)
	}

	p.movers, p.moverArt = p.movers[:0], p.moverArt[:0]
	for _, m := range l.Movers {
		s, art := p.addSolid(m.Solid, scene.ColorShield)
		p.movers = append(p.movers, scene.NewMover(s, m.MinX, m.MaxX, m.Speed))
		p.moverArt = append(p.moverArt, art)
	}

	p.coins = p.coins[:0]
	for i, spot := range l.Coins {
		c := &coin{
			Body:   entity.NewCoin(i, spot.X, spot.Y, coinSize, coinSize),
			sprite: scene.NewSprite([]string{"$"}, scene.ColorCoin, scene.ColorBackground),
		}
		c.sprite.MoveTo(spot.X, spot.Y)
		c.sprite.Attach(p.level)
		p.coins = append(p.coins, c)
	}

	p.enemies = p.enemies[:0]
	for i, spot := range l.GroundEnemies {
		e := scene.NewGroundEnemy(i, spot.X, spot.Y, spot.MinX, spot.MaxX)
		e.Body.Behavior.(*entity.Patrol).Dir = spot.Dir
		e.Attach(p.level)
		p.enemies = append(p.enemies, e)
	}

	p.fire = p.fire[:0]
	for i, spot := range l.FireEnemies {
		e := scene.NewFlyingEnemy(100+i, spot.X, spot.Y)
		e.Attach(p.level)
		p.fire = append(p.fire, e)
	}

	p.players = p.players[:0]
	p.tallies = make([]int, len(p.opts.Players))
	for i, c := range p.opts.Players {
		// Only the first player can fly here.
		pl := scene.NewPlayer(i, c, p.physics, i == 0)
		pl.Attach(p.level)
		p.players = append(p.players, pl)
	}
	p.respawn()

	p.fireballs = scene.NewFireballs(p.level)
	p.sess.Every(VolleyInterval, p.volley)
}

func (p *Play) addSolid(s scene.Solid, color tl.Attr) (*scene.Solid, *scene.Sprite) {
	solid := s
	art := scene.NewBlock(int(math.Round(s.W)), max(1, int(math.Round(s.H))), color, ' ')
	art.MoveTo(s.X, s.Y)
	art.Attach(p.level)
	p.solids = append(p.solids, &solid)
	return &solid, art
}

// Update advances the play by dt seconds for a viewport of the given size.
func (p *Play) Update(dt float64, viewW, viewH int) {
	if !p.sess.Playing() {
		return
	}
	dt = math.Min(math.Max(dt, 0), MaxFrameDelta)

	p.sched.Advance(time.Duration(dt * float64(time.Second)))
	if !p.sess.Playing() {
		return
	}

	for i, m := range p.movers {
		m.Step(dt)
		p.moverArt[i].MoveTo(m.Solid.X, m.Solid.Y)
	}
	for _, pl := range p.players {
		pl.Step(dt, p.solids)
		pl.Body.X = math.Min(math.Max(pl.Body.X, 0), p.layout.Width-pl.Body.W)
	}
	for _, c := range p.coins {
		if c.Body.Enabled {
			p.physics.Step(c.Body, dt, p.solids)
			c.sprite.MoveTo(c.Body.X, c.Body.Y)
		}
	}
	for _, e := range p.enemies {
		e.Update(dt)
	}
	for _, e := range p.fire {
		e.Update(dt)
	}
	p.fireballs.Update(dt, -5, p.layout.Width+5, -5, p.layout.Rows+5, p.solids)

	p.collectCoins()
	if !p.sess.Playing() {
		return
	}
	p.resolveContacts()
	if !p.sess.Playing() {
		return
	}
	p.power.Sync()
	p.follow(viewW, viewH)
}

// follow centers the stage when it fits the viewport and otherwise keeps
// player 1 in view.
func (p *Play) follow(viewW, viewH int) {
	offX := axisOffset(p.lead().X, p.layout.Width, float64(viewW))
	offY := axisOffset(p.lead().Y, p.layout.Rows, float64(viewH))
	p.cameraX, p.cameraY = -offX, -offY
	p.level.SetOffset(int(math.Round(offX)), int(math.Round(offY)))
}

func axisOffset(focus, world, view float64) float64 {
	if view >= world {
		return math.Floor((view - world) / 2)
	}
	cam := math.Min(math.Max(focus-view/2, 0), world-view)
	return -cam
}

func (p *Play) lead() *entity.Entity {
	if len(p.players) == 0 {
		return &entity.Entity{}
	}
	return p.players[0].Body
}

func (p *Play) collectCoins() {
	for i, pl := range p.players {
		if !pl.Alive() {
			continue
		}
		for _, c := range p.coins {
			if !c.Body.Enabled || !collision.Overlap(pl.Body, c.Body) {
				continue
			}
			c.Body.Disable()
			c.sprite.Detach()
			p.tallies[i]++
			pl.Score += c.Body.Points
			p.sess.AddScore(c.Body.Points)
			p.log.Debug("coin collected", "player", pl.Character.ID, "left", p.CoinsLeft())
		}
	}
	if p.CoinsLeft() == 0 {
		p.sess.Win()
	}
}

// CoinsLeft counts coins not yet collected.
func (p *Play) CoinsLeft() int {
	return lo.CountBy(p.coins, func(c *coin) bool { return c.Body.Enabled })
}

func (p *Play) resolveContacts() {
	for _, pl := range p.players {
		if !pl.Alive() {
			continue
		}
		hostiles := append(append([]*scene.Enemy(nil), p.enemies...), p.fire...)
		for _, e := range hostiles {
			if !e.Active() || !collision.Overlap(pl.Body, e.Body) {
				continue
			}
			res := p.policy.Contact(pl.Body, e.Body, p.power.IsActive())
			switch res.Outcome {
			case collision.StompDefeat:
				collision.Apply(pl.Body, e.Body, res)
				e.Defeat()
				if res.Bounce != 0 {
					pl.Bounce(res.Bounce)
				}
				pl.Score += res.Points
				p.sess.AddScore(res.Points)
			case collision.PlayerHit:
				p.hit()
			}
			if !p.sess.Playing() {
				return
			}
		}

		for _, fb := range p.fireballs.Live() {
			if !fb.Body.Enabled || !collision.Overlap(pl.Body, fb.Body) {
				continue
			}
			res := p.policy.Contact(pl.Body, fb.Body, p.power.IsActive())
			fb.Body.Disable()
			if res.Outcome == collision.PlayerHit {
				p.hit()
			}
			if !p.sess.Playing() {
				return
			}
		}
	}
}

func (p *Play) hit() {
	if p.sess.LoseLife(p.power.IsActive()) && p.sess.Playing() {
		p.respawn()
	}
}

func (p *Play) respawn() {
	spawns := p.layout.Spawns
	for i, pl := range p.players {
		s := spawns[min(i, len(spawns)-1)]
		pl.Place(s.X, s.Y)
	}
	if p.fireballs != nil {
		p.fireballs.Clear()
	}
}

// volley fires one fireball from every live fire enemy at player 1, and one
// at player 2 when it is close enough.
func (p *Play) volley() {
	for _, e := range p.fire {
		if !e.Active() {
			continue
		}
		ex, ey := e.Body.Center()
		for i, pl := range p.players {
			if i > 1 || !pl.Alive() {
				continue
			}
			px, py := pl.Body.Center()
			if i == 1 && math.Hypot((px-ex)*scene.UnitsPerCellX, (py-ey)*scene.UnitsPerCellY) >= SecondTargetRange {
				continue
			}
			p.fireballs.Spawn(ex, ey, px, py)
		}
	}
}

// HandleKey routes one key event to the players and the cheat detector.
func (p *Play) HandleKey(ev tl.Event) {
	if ev.Type != tl.EventKey || !p.sess.Playing() {
		return
	}
	for _, pl := range p.players {
		if pl.Handle(ev) {
			break
		}
	}
	if ev.Ch == 0 {
		return
	}

	for _, name := range p.codes.Feed(ev.Ch) {
		switch name {
		case cheat.VictoryName:
			p.log.Info("victory code entered")
			p.sess.Win()
			return
		case cheat.InvincibilityName:
			if !p.power.Activate(scene.Targets(p.players)) {
				p.log.Debug("invincibility code ignored, already active")
			}
		}
	}
}

// Restart drops the finished play and rebuilds the stage.
func (p *Play) Restart() {
	p.power.Reset()
	if p.fireballs != nil {
		p.fireballs.Clear()
	}
	p.banners.Clear()
	p.codes.Reset()
	p.sess.Restart()
	p.build()
	p.log.Info("play restarted", "generation", p.sess.Generation())
}

func (p *Play) finish(outcome games.Outcome) {
	if p.finished {
		return
	}
	p.finished = true
	p.power.Reset()
	p.result = p.snapshot(outcome)
	p.log.Info("play finished", "outcome", outcome, "score", p.result.Score, "coins_left", p.CoinsLeft())

	if p.OnFinish != nil {
		p.OnFinish(p.result)
	}
}

func (p *Play) snapshot(outcome games.Outcome) games.Result {
	return games.Result{
		Game:    Name,
		Outcome: outcome,
		Score:   p.sess.Score(),
		Players: lo.Map(p.players, func(pl *scene.Player, _ int) games.PlayerScore {
			return games.PlayerScore{Character: pl.Character, Score: pl.Score}
		}),
	}
}

// Result returns the outcome so far. An unfinished play counts as quit.
func (p *Play) Result() games.Result {
	if p.finished {
		return p.result
	}
	return p.snapshot(games.OutcomeQuit)
}

// Standings ranks players by coins collected. Ties keep player order.
func (p *Play) Standings() []Standing {
	out := lo.Map(p.players, func(pl *scene.Player, i int) Standing {
		return Standing{Character: pl.Character, Coins: p.tallies[i]}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Coins > out[j].Coins })
	return out
}

func (p *Play) Level() *tl.BaseLevel   { return p.level }
func (p *Play) Banners() *scene.Banners { return p.banners }
func (p *Play) Finished() bool          { return p.finished }

func (p *Play) HUD() []scene.Line {
	lines := []scene.Line{
		{
			Text: fmt.Sprintf("Coin Chaser  Score: %d  Lives: %s  Coins left: %d/%d",
				p.sess.Score(), strings.Repeat("♥", p.sess.Lives()), p.CoinsLeft(), len(p.coins)),
			Color: scene.ColorText,
		},
	}
	if p.power.IsActive() {
		lines = append(lines, scene.Line{
			Text:  fmt.Sprintf("Invincible: %ds", int(math.Ceil(p.power.Remaining().Seconds()))),
			Color: scene.ColorShield,
		})
	}
	for i, pl := range p.players {
		lines = append(lines, scene.Line{
			Text:  fmt.Sprintf("%s: %d coins  (%s)", pl.Character.Name, p.tallies[i], scene.BindingFor(i).Help),
			Color: pl.Color,
		})
	}
	return lines
}
