package runner

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/samber/lo"

	"github.com/yoyoarcade/yoyo/internal/cheat"
	"github.com/yoyoarcade/yoyo/internal/collision"
	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/games/scene"
	"github.com/yoyoarcade/yoyo/internal/powerup"
	"github.com/yoyoarcade/yoyo/internal/session"
	"github.com/yoyoarcade/yoyo/internal/stream"
	"github.com/yoyoarcade/yoyo/internal/timer"
)

// Run is one Castle Escape session. It implements scene.Scene and never
// touches the screen, so it also runs headless.
type Run struct {
	opts    games.Options
	log     *slog.Logger
	physics scene.Physics
	policy  collision.Policy

	sched   *timer.Scheduler
	sess    *session.Session
	rng     *rand.Rand
	power   *powerup.Controller
	codes   *cheat.Detector
	banners *scene.Banners

	level     *tl.BaseLevel
	players   []*scene.Player
	enemies   []*scene.Enemy
	fire      []*scene.Enemy
	fireballs *scene.Fireballs

	streamer  *stream.Streamer
	platforms map[int]*scene.Sprite
	solids    map[int]*scene.Solid
	ordered   []*scene.Solid

	camera  float64
	viewW   int
	offsetY int
	bonus   int

	finished bool
	result   games.Result

	// OnFinish is called once when the run is won or lost.
	OnFinish func(games.Result)
}

func newRun(opts games.Options, logger *slog.Logger) *Run {
	sched := timer.NewScheduler()
	r := &Run{
		opts:    opts,
		log:     logger,
		physics: scene.DefaultPhysics(),
		policy:  collision.DefaultPolicy().Scaled(scene.UnitsPerCellY),
		sched:   sched,
		sess:    session.New(sched, opts.Lives, opts.RespawnGrace),
		rng:     rand.New(rand.NewSource(opts.Seed)),
		codes:   cheat.ShieldDetector(),
	}
	r.banners = scene.NewBanners(r.sess)

	r.sess.OnLifeLost = func(remaining int) {
		r.log.Info("life lost", "lives", remaining)
	}
	r.sess.OnGameOver = func() { r.finish(games.OutcomeLost) }
	r.sess.OnVictory = func() { r.finish(games.OutcomeWon) }

	r.build()
	return r
}

// build lays out a fresh level. The streamer is created on the first
// update, once the viewport width is known.
func (r *Run) build() {
	r.level = tl.NewBaseLevel(tl.Cell{Bg: scene.ColorBackground, Fg: scene.ColorText, Ch: ' '})
	r.streamer = nil
	r.platforms = make(map[int]*scene.Sprite)
	r.solids = make(map[int]*scene.Solid)
	r.ordered = nil
	r.camera = 0
	r.bonus = 0
	r.finished = false
	r.result = games.Result{}

	r.power = powerup.NewController(r.sched, r.opts.ShieldDuration, scene.ShieldFactory(r.level))
	r.power.OnActivate = func() {
		r.log.Info("shield activated", "players", r.power.Targets(), "duration", r.opts.ShieldDuration)
		r.banners.Show("SHIELD UP!", scene.ColorShield, 0)
	}
	r.power.OnExpire = func() {
		r.log.Info("shield expired")
		r.banners.Show("Shield faded", scene.ColorText, BannerDuration)
	}

	castle := scene.NewSprite(castleArt, scene.ColorHighlight, scene.ColorBackground)
	castle.MoveTo(GoalX, GroundRow-float64(len(castleArt)))
	castle.Attach(r.level)

	r.players = r.players[:0]
	for i, c := range r.opts.Players {
		p := scene.NewPlayer(i, c, r.physics, true)
		p.Attach(r.level)
		p.Place(SpawnX+float64(i)*RespawnGap, GroundRow-scene.PlayerHeight)
		r.players = append(r.players, p)
	}

	r.enemies = r.enemies[:0]
	for i, spot := range groundEnemies {
		e := scene.NewGroundEnemy(i, spot.X, GroundRow, spot.MinX, spot.MaxX)
		e.Attach(r.level)
		r.enemies = append(r.enemies, e)
	}

	r.fire = r.fire[:0]
	for i, spot := range fireEnemies {
		e := scene.NewFlyingEnemy(100+i, spot.X, spot.Y)
		e.Attach(r.level)
		r.fire = append(r.fire, e)
	}

	r.fireballs = scene.NewFireballs(r.level)
	r.sess.Every(VolleyInterval, r.volley)
}

func (r *Run) startStream(viewWidth int) {
	cfg := stream.DefaultConfig().Scaled(scene.UnitsPerCellX)
	cfg.ViewportWidth = math.Max(cfg.ViewportWidth, float64(viewWidth))

	s, err := stream.New(cfg, r.rng)
	if err != nil {
		// DefaultConfig is validated by the stream tests; a failure here
		// means the scaled copy drifted.
		r.log.Error("invalid stream config", "error", err)
		return
	}
	r.streamer = s
	r.addSegments(s.Segments())
	r.sess.Every(cfg.TickInterval, r.scrollTick)
	r.log.Debug("level stream started", "viewport", cfg.ViewportWidth, "max_jump", cfg.MaxJump)
}

func (r *Run) scrollTick() {
	if r.streamer == nil {
		return
	}
	if w := float64(r.viewW); w > r.streamer.Config().ViewportWidth {
		r.streamer.SetViewportWidth(w)
	}
	tick := r.streamer.Advance(r.camera + r.streamer.Config().ViewportWidth)
	r.addSegments(tick.Emitted)
	for _, seg := range tick.Retired {
		if sp, ok := r.platforms[seg.ID]; ok {
			sp.Detach()
			delete(r.platforms, seg.ID)
		}
		delete(r.solids, seg.ID)
	}
	if len(tick.Retired) > 0 {
		r.reorderSolids()
	}
	r.sess.SetScore(r.streamer.Meters() + r.bonus)
}

func (r *Run) addSegments(segs []stream.Segment) {
	for _, seg := range segs {
		if seg.Gap {
			continue
		}
		left := int(math.Round(seg.X))
		right := int(math.Round(seg.End()))
		sp := scene.NewBlock(right-left, GroundDepth, scene.ColorGround, ' ')
		sp.SetPosition(left, GroundRow)
		sp.Attach(r.level)
		r.platforms[seg.ID] = sp
		r.solids[seg.ID] = &scene.Solid{X: seg.X, Y: GroundRow, W: seg.Width, H: GroundDepth}
	}
	r.reorderSolids()
}

func (r *Run) reorderSolids() {
	r.ordered = lo.Values(r.solids)
}

// volley fires from every fire enemy near the viewport: one fireball at
// player 1, and one at player 2 when it is close enough.
func (r *Run) volley() {
	if len(r.players) == 0 {
		return
	}
	for _, e := range r.fire {
		if !e.Active() || !r.nearViewport(e.Body.X) {
			continue
		}
		ex, ey := e.Body.Center()
		for i, p := range r.players {
			if i > 1 || !p.Alive() {
				continue
			}
			px, py := p.Body.Center()
			if i == 1 && pixelDistance(ex, ey, px, py) >= SecondTargetRange {
				continue
			}
			r.fireballs.Spawn(ex, ey+1, px, py)
		}
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func pixelDistance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot((x2-x1)*scene.UnitsPerCellX, (y2-y1)*scene.UnitsPerCellY)
}

// viewWidth is the wider of the streamer's viewport and the terminal.
func (r *Run) viewWidth() float64 {
	width := stream.DefaultConfig().Scaled(scene.UnitsPerCellX).ViewportWidth
	if r.streamer != nil {
		width = r.streamer.Config().ViewportWidth
	}
	return math.Max(width, float64(r.viewW))
}

func (r *Run) nearViewport(x float64) bool {
	return x >= r.camera-10 && x <= r.camera+r.viewWidth()+10
}

// Update advances the run by dt seconds for a viewport of the given size.
func (r *Run) Update(dt float64, viewW, viewH int) {
	if !r.sess.Playing() {
		return
	}
	dt = math.Min(math.Max(dt, 0), MaxFrameDelta)
	r.viewW = viewW

	if r.streamer == nil {
		r.startStream(viewW)
	}
	r.sched.Advance(secondsToDuration(dt))
	if !r.sess.Playing() {
		return
	}

	for _, p := range r.players {
		p.Step(dt, r.ordered)
	}
	for _, e := range r.enemies {
		x := e.Body.X
		e.Update(dt)
		r.keepOnGround(e, x)
	}
	for _, e := range r.fire {
		e.Update(dt)
	}
	r.fireballs.Update(dt, r.camera-10, r.camera+float64(viewW)+10, -10, DeathRow+5, r.ordered)

	r.follow(viewW)
	for _, p := range r.players {
		if p.Alive() {
			p.ClampLeft(r.camera + LeftMargin)
		}
	}
	r.resolveContacts()
	if !r.sess.Playing() {
		return
	}
	r.checkFalls()
	r.checkGoal()
	r.power.Sync()

	r.offsetY = viewH - WorldRows
	r.level.SetOffset(-int(r.camera), r.offsetY)
}

// follow keeps player 1 a third of the way into the viewport. The camera
// never moves backward.
func (r *Run) follow(viewW int) {
	if len(r.players) == 0 {
		return
	}
	lead := r.players[0]
	if !lead.Alive() {
		return
	}
	target := lead.Body.X - float64(viewW)/3
	target = math.Min(target, WorldWidth-float64(viewW))
	r.camera = math.Max(r.camera, math.Max(0, target))
}

// keepOnGround turns a ground enemy back at the edge of a hole. One that
// is already over a hole has fallen and is removed. Ground not streamed
// yet counts as solid.
func (r *Run) keepOnGround(e *scene.Enemy, prevX float64) {
	if r.streamer == nil || !e.Active() {
		return
	}
	supported := func(x float64) bool {
		center := x + e.Body.W/2
		return center >= r.streamer.Cursor() || r.streamer.SolidAt(center)
	}
	if supported(e.Body.X) {
		return
	}
	if supported(prevX) {
		e.TurnAt(prevX)
		return
	}
	r.log.Debug("enemy fell", "id", e.Body.ID)
	e.Defeat()
}

func (r *Run) resolveContacts() {
	active := r.power.IsActive()

	for _, p := range r.players {
		if !p.Alive() {
			continue
		}
		for _, e := range append(r.enemies[:len(r.enemies):len(r.enemies)], r.fire...) {
			if !e.Active() || !collision.Overlap(p.Body, e.Body) {
				continue
			}
			res := r.policy.Contact(p.Body, e.Body, active)
			switch res.Outcome {
			case collision.StompDefeat:
				collision.Apply(p.Body, e.Body, res)
				e.Defeat()
				if res.Bounce != 0 {
					p.Bounce(res.Bounce)
				}
				p.Score += res.Points
				r.bonus += res.Points
				r.sess.AddScore(res.Points)
				r.log.Debug("enemy stomped", "player", p.Character.ID, "kind", e.Body.Kind.String(), "points", res.Points)
			case collision.PlayerHit:
				r.hit(p)
			}
			if !r.sess.Playing() {
				return
			}
		}

		for _, fb := range r.fireballs.Live() {
			if !collision.Overlap(p.Body, fb.Body) {
				continue
			}
			res := r.policy.Contact(p.Body, fb.Body, active)
			fb.Body.Disable()
			if res.Outcome == collision.PlayerHit {
				r.hit(p)
			}
			if !r.sess.Playing() {
				return
			}
		}
	}
}

func (r *Run) hit(p *scene.Player) {
	if r.sess.LoseLife(r.power.IsActive()) && r.sess.Playing() {
		r.log.Debug("player hit", "player", p.Character.ID)
		r.respawn()
	}
}

func (r *Run) checkFalls() {
	for _, p := range r.players {
		if p.Alive() && p.Body.Y > DeathRow {
			r.log.Debug("player fell", "player", p.Character.ID)
			if !r.sess.LoseLife(r.power.IsActive()) {
				// Protected players are lifted back instead of lost.
				r.respawnPlayer(p, p.Slot)
				continue
			}
			if r.sess.Playing() {
				r.respawn()
			}
			return
		}
	}
}

func (r *Run) checkGoal() {
	for _, p := range r.players {
		if p.Alive() && p.Body.X >= GoalX {
			r.log.Info("castle reached", "player", p.Character.ID)
			r.sess.Win()
			return
		}
	}
}

func (r *Run) respawn() {
	for i, p := range r.players {
		r.respawnPlayer(p, i)
	}
	r.fireballs.Clear()
}

func (r *Run) respawnPlayer(p *scene.Player, slot int) {
	p.Place(r.camera+RespawnAt+float64(slot)*RespawnGap, RespawnRow)
}

// HandleKey routes one key event to the players and the cheat detector.
// Keys are ignored once the run is over.
func (r *Run) HandleKey(ev tl.Event) {
	if ev.Type != tl.EventKey || !r.sess.Playing() {
		return
	}

	for _, p := range r.players {
		if p.Handle(ev) {
			break
		}
	}

	if ev.Ch == 0 {
		return
	}
	for _, name := range r.codes.Feed(ev.Ch) {
		if name == cheat.ShieldName && !r.power.Activate(scene.Targets(r.players)) {
			r.log.Debug("shield code ignored, already active")
		}
	}
}

// Restart tears the run down and builds a fresh one. Power-up visuals are
// released and every pending timer is cancelled before the new generation
// starts.
func (r *Run) Restart() {
	r.power.Reset()
	r.fireballs.Clear()
	r.banners.Clear()
	r.codes.Reset()
	r.sess.Restart()
	r.build()
	r.log.Info("run restarted", "generation", r.sess.Generation())
}

func (r *Run) finish(outcome games.Outcome) {
	if r.finished {
		return
	}
	r.finished = true
	r.power.Reset()

	r.result = games.Result{
		Game:    Name,
		Outcome: outcome,
		Score:   r.sess.Score(),
		Players: lo.Map(r.players, func(p *scene.Player, _ int) games.PlayerScore {
			return games.PlayerScore{Character: p.Character, Score: p.Score}
		}),
	}
	r.log.Info("run finished", "outcome", outcome, "score", r.result.Score, "meters", r.meters())

	if r.OnFinish != nil {
		r.OnFinish(r.result)
	}
}

func (r *Run) Level() *tl.BaseLevel   { return r.level }
func (r *Run) Banners() *scene.Banners { return r.banners }
func (r *Run) Finished() bool          { return r.finished }
func (r *Run) Session() *session.Session {
	return r.sess
}

func (r *Run) meters() int {
	if r.streamer == nil {
		return 0
	}
	return r.streamer.Meters()
}

// Result returns the outcome so far. An unfinished run counts as quit.
func (r *Run) Result() games.Result {
	if r.finished {
		return r.result
	}
	return games.Result{
		Game:    Name,
		Outcome: games.OutcomeQuit,
		Score:   r.sess.Score(),
		Players: lo.Map(r.players, func(p *scene.Player, _ int) games.PlayerScore {
			return games.PlayerScore{Character: p.Character, Score: p.Score}
		}),
	}
}

func (r *Run) HUD() []scene.Line {
	hearts := strings.Repeat("♥", r.sess.Lives())
	lines := []scene.Line{
		{Text: fmt.Sprintf("Castle Escape  Distance: %dm  Score: %d  Lives: %s", r.meters(), r.sess.Score(), hearts), Color: scene.ColorText},
		{Text: fmt.Sprintf("To the castle: %dm", max(0, int(GoalX-r.leadX()))), Color: scene.ColorText},
	}
	if r.power.IsActive() {
		lines = append(lines, scene.Line{
			Text:  fmt.Sprintf("Shield: %ds", int(math.Ceil(r.power.Remaining().Seconds()))),
			Color: scene.ColorShield,
		})
	}
	for _, p := range r.players {
		lines = append(lines, scene.Line{
			Text:  fmt.Sprintf("%s: %d  (%s)", p.Character.Name, p.Score, scene.BindingFor(p.Slot).Help),
			Color: p.Color,
		})
	}
	return lines
}

func (r *Run) leadX() float64 {
	return lo.Max(lo.Map(r.players, func(p *scene.Player, _ int) float64 { return p.Body.X }))
}
