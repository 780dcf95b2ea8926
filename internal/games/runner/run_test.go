package runner

import (
	"strings"
	"testing"
	"time"

	tl "github.com/JoelOtter/termloop"

	"github.com/yoyoarcade/yoyo/internal/entity"
	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/games/scene"
	"github.com/yoyoarcade/yoyo/internal/log"
)

const frame = 1.0 / 60

func testRun(t *testing.T, players int) *Run {
	t.Helper()
	opts := games.Options{
		Players:         games.DefaultParty(players),
		Seed:            7,
		Lives:           3,
		ShieldDuration: 15 * time.Second,
	}
	r := newRun(opts, log.Discard())
	// Keep the fire enemies quiet unless a test wants them.
	for _, e := range r.fire {
		e.Defeat()
	}
	return r
}

func typeCode(r *Run, code string) {
	for _, ch := range code {
		r.HandleKey(tl.Event{Type: tl.EventKey, Ch: ch})
	}
}

func TestGameMetadata(t *testing.T) {
	g := New()
	if g.Name() != "runner" || g.Title() != "Castle Escape" {
		t.Errorf("Unexpected identity %q / %q", g.Name(), g.Title())
	}
	if g.MaxPlayers() != 2 {
		t.Errorf("Expected 2 players max, got %d", g.MaxPlayers())
	}

	reg := games.NewRegistry()
	reg.Register(g)
	if got, ok := reg.GetByCommand("escape"); !ok || got.Name() != Name {
		t.Error("Expected the escape command to resolve to the runner")
	}
}

func TestFirstUpdateStartsStream(t *testing.T) {
	r := testRun(t, 1)
	if r.streamer != nil {
		t.Fatal("Expected the stream to wait for the first update")
	}

	r.Update(frame, 120, 40)
	if r.streamer == nil {
		t.Fatal("Expected the stream to start")
	}
	if got := r.streamer.Config().ViewportWidth; got != 120 {
		t.Errorf("Expected viewport width to follow the terminal, got %v", got)
	}
	if len(r.ordered) == 0 || len(r.platforms) != len(r.solids) {
		t.Errorf("Expected runway platforms, got %d solids and %d sprites", len(r.ordered), len(r.platforms))
	}
	if _, oy := r.level.Offset(); oy != 40-WorldRows {
		t.Errorf("Expected vertical offset %d, got %d", 40-WorldRows, oy)
	}
}

func TestPlayerLandsOnRunway(t *testing.T) {
	r := testRun(t, 1)
	for i := 0; i < 60; i++ {
		r.Update(frame, 80, 30)
	}

	p := r.players[0]
	if !p.OnGround() {
		t.Fatalf("Expected player on the runway, got y=%v", p.Body.Y)
	}
	if p.Body.Bottom() != GroundRow {
		t.Errorf("Expected player standing on row %d, got %v", GroundRow, p.Body.Bottom())
	}
	if r.sess.Lives() != 3 {
		t.Errorf("Expected no lives lost, got %d", r.sess.Lives())
	}
}

func TestScoreTracksDistancePlusBonus(t *testing.T) {
	r := testRun(t, 1)
	for i := 0; i < 120; i++ {
		r.Update(frame, 80, 30)
	}
	r.bonus = 40
	r.sched.Advance(stepFor(r))

	want := r.streamer.Meters() + 40
	if r.sess.Score() != want {
		t.Errorf("Expected score %d, got %d", want, r.sess.Score())
	}
	if r.streamer.Ticks() == 0 {
		t.Error("Expected scroll ticks to have run")
	}
}

func stepFor(r *Run) time.Duration {
	return r.streamer.Config().TickInterval
}

func TestStompDefeatsGroundEnemy(t *testing.T) {
	r := testRun(t, 1)
	p, e := r.players[0], r.enemies[0]

	p.Body.X = e.Body.X
	p.Body.Y = e.Body.Y - 1.5
	p.Body.VY = 5
	r.resolveContacts()

	if e.Active() {
		t.Fatal("Expected the enemy defeated")
	}
	if r.sess.Score() != 20 || p.Score != 20 || r.bonus != 20 {
		t.Errorf("Expected 20 points, got session %d player %d bonus %d", r.sess.Score(), p.Score, r.bonus)
	}
	if p.Body.VY != -15 {
		t.Errorf("Expected bounce -15, got %v", p.Body.VY)
	}
	if r.sess.Lives() != 3 {
		t.Errorf("Expected no life lost, got %d", r.sess.Lives())
	}
}

func TestSideHitCostsLifeAndRespawns(t *testing.T) {
	r := testRun(t, 2)
	p, e := r.players[0], r.enemies[0]

	p.Body.X = e.Body.X + 1
	p.Body.Y = e.Body.Y
	r.resolveContacts()

	if r.sess.Lives() != 2 {
		t.Fatalf("Expected 2 lives, got %d", r.sess.Lives())
	}
	if !e.Active() {
		t.Error("Expected the enemy to survive a side hit")
	}
	for i, pl := range r.players {
		want := r.camera + RespawnAt + float64(i)*RespawnGap
		if pl.Body.X != want || pl.Body.Y != RespawnRow {
			t.Errorf("Expected player %d respawned at (%v, %v), got (%v, %v)", i, want, RespawnRow, pl.Body.X, pl.Body.Y)
		}
	}
}

func TestShieldCodeProtectsEveryPlayer(t *testing.T) {
	r := testRun(t, 2)
	r.Update(frame, 80, 30)

	typeCode(r, "myy1")
	if !r.power.IsActive() {
		t.Fatal("Expected the shield active")
	}
	if r.power.Visuals() != 2 {
		t.Errorf("Expected one shield per player, got %d", r.power.Visuals())
	}
	if msg, _, ok := r.banners.Current(); !ok || msg != "SHIELD UP!" {
		t.Errorf("Expected shield banner, got %q", msg)
	}

	p, e := r.players[0], r.enemies[0]
	p.Body.X = e.Body.X + 1
	p.Body.Y = e.Body.Y
	r.resolveContacts()

	if r.sess.Lives() != 3 {
		t.Errorf("Expected no life lost under the shield, got %d", r.sess.Lives())
	}
	if e.Active() {
		t.Error("Expected the shield to defeat the enemy")
	}
	if p.Body.VY != 0 {
		t.Errorf("Expected no bounce under the shield, got %v", p.Body.VY)
	}
}

func TestShieldExpires(t *testing.T) {
	r := testRun(t, 1)
	r.Update(frame, 80, 30)
	typeCode(r, "myy1")

	lines := r.HUD()
	if !strings.HasPrefix(lines[2].Text, "Shield: 15s") {
		t.Errorf("Expected shield countdown in the HUD, got %q", lines[2].Text)
	}

	// A second code while active does not extend it.
	r.sched.Advance(10 * time.Second)
	typeCode(r, "myy1")
	r.sched.Advance(5 * time.Second)

	if r.power.IsActive() || r.power.Visuals() != 0 {
		t.Error("Expected the shield gone after 15s")
	}
	if msg, _, ok := r.banners.Current(); !ok || msg != "Shield faded" {
		t.Errorf("Expected fade banner, got %q", msg)
	}
}

func TestFallingLosesLife(t *testing.T) {
	r := testRun(t, 1)
	r.players[0].Body.Y = DeathRow + 1
	r.checkFalls()

	if r.sess.Lives() != 2 {
		t.Errorf("Expected 2 lives, got %d", r.sess.Lives())
	}
	if r.players[0].Body.Y != RespawnRow {
		t.Errorf("Expected respawn at row %v, got %v", RespawnRow, r.players[0].Body.Y)
	}
}

func TestFallingUnderShieldRespawnsFree(t *testing.T) {
	r := testRun(t, 1)
	r.power.Activate(scene.Targets(r.players))
	r.players[0].Body.Y = DeathRow + 1
	r.checkFalls()

	if r.sess.Lives() != 3 {
		t.Errorf("Expected no life lost, got %d", r.sess.Lives())
	}
	if r.players[0].Body.Y > DeathRow {
		t.Error("Expected the player lifted back into the level")
	}
}

func TestGameOverAfterLastLife(t *testing.T) {
	r := testRun(t, 1)
	var results []games.Result
	r.OnFinish = func(res games.Result) { results = append(results, res) }

	for i := 0; i < 3; i++ {
		r.players[0].Body.Y = DeathRow + 1
		r.checkFalls()
	}

	if !r.Finished() || len(results) != 1 {
		t.Fatalf("Expected one finish, got finished=%v calls=%d", r.Finished(), len(results))
	}
	if results[0].Outcome != games.OutcomeLost {
		t.Errorf("Expected lost, got %s", results[0].Outcome)
	}

	typeCode(r, "myy1")
	if r.power.IsActive() {
		t.Error("Expected codes ignored after game over")
	}
}

func TestReachingCastleWins(t *testing.T) {
	r := testRun(t, 1)
	r.sess.AddScore(120)
	r.players[0].Body.X = GoalX
	r.checkGoal()

	res := r.Result()
	if res.Outcome != games.OutcomeWon || res.Score != 120 {
		t.Errorf("Expected won with 120, got %s with %d", res.Outcome, res.Score)
	}
	if len(res.Players) != 1 || res.Players[0].Character.ID != "sonic" {
		t.Errorf("Unexpected player scores %+v", res.Players)
	}
}

func TestUnfinishedRunCountsAsQuit(t *testing.T) {
	r := testRun(t, 1)
	if got := r.Result().Outcome; got != games.OutcomeQuit {
		t.Errorf("Expected quit, got %s", got)
	}
}

func TestCameraOnlyMovesForward(t *testing.T) {
	r := testRun(t, 1)
	p := r.players[0]

	p.Body.X = 100
	r.follow(60)
	if r.camera != 80 {
		t.Fatalf("Expected camera at 80, got %v", r.camera)
	}

	p.Body.X = 50
	r.follow(60)
	if r.camera != 80 {
		t.Errorf("Expected camera to hold at 80, got %v", r.camera)
	}

	p.Body.X = 1000
	r.follow(60)
	if r.camera != WorldWidth-60 {
		t.Errorf("Expected camera clamped to %v, got %v", WorldWidth-60, r.camera)
	}
}

func TestPlayersHeldInsideLeftEdge(t *testing.T) {
	r := testRun(t, 2)
	r.Update(frame, 80, 30)

	r.players[0].Place(100, GroundRow-scene.PlayerHeight)
	r.Update(frame, 80, 30)
	camera := r.camera
	if camera <= 0 {
		t.Fatalf("Expected the camera to advance, got %v", camera)
	}
	if x := r.players[1].Body.X; x < camera+LeftMargin {
		t.Errorf("Expected player 2 pulled up to %v, got %v", camera+LeftMargin, x)
	}

	for i := 0; i < 30; i++ {
		r.HandleKey(tl.Event{Type: tl.EventKey, Key: tl.KeyArrowLeft})
		r.Update(frame, 80, 30)
	}

	if r.camera != camera {
		t.Errorf("Expected the camera to hold at %v, got %v", camera, r.camera)
	}
	for i, p := range r.players {
		if p.Body.X < r.camera+LeftMargin {
			t.Errorf("Expected player %d at or right of %v, got %v", i+1, r.camera+LeftMargin, p.Body.X)
		}
	}
}

// firstHole advances the stream until a gap follows live solid ground.
func firstHole(t *testing.T, r *Run) (solid, gap float64) {
	t.Helper()
	for i := 0; i < 100; i++ {
		segs := r.streamer.Segments()
		for j := 1; j < len(segs); j++ {
			if segs[j].Gap && !segs[j-1].Gap {
				return segs[j-1].X, segs[j].X
			}
		}
		r.streamer.Advance(r.streamer.Cursor())
	}
	t.Fatal("Expected the stream to open a hole")
	return 0, 0
}

func TestGroundEnemyTurnsAtHole(t *testing.T) {
	r := testRun(t, 1)
	r.Update(frame, 80, 30)
	solid, gap := firstHole(t, r)

	e := scene.NewGroundEnemy(99, gap-2, GroundRow, solid, gap+40)
	patrol := e.Body.Behavior.(*entity.Patrol)
	patrol.Dir = 1

	prev := e.Body.X
	e.Update(0.2)
	if e.Body.X+e.Body.W/2 < gap {
		t.Fatalf("Expected the enemy to step over the hole, center at %v", e.Body.X+e.Body.W/2)
	}
	r.keepOnGround(e, prev)

	if !e.Active() {
		t.Fatal("Expected the enemy to stay on the ground")
	}
	if e.Body.X != prev || patrol.Dir != -1 {
		t.Errorf("Expected a turn at %v facing left, got x=%v dir=%v", prev, e.Body.X, patrol.Dir)
	}
}

func TestGroundEnemyOverHoleFalls(t *testing.T) {
	r := testRun(t, 1)
	r.Update(frame, 80, 30)
	_, gap := firstHole(t, r)

	e := scene.NewGroundEnemy(99, gap+1, GroundRow, gap, gap+40)
	r.keepOnGround(e, e.Body.X)

	if e.Active() {
		t.Error("Expected an enemy over a hole to fall")
	}
}

func TestWiderTerminalGrowsStreamViewport(t *testing.T) {
	r := testRun(t, 1)
	r.Update(frame, 80, 30)
	lookahead := r.streamer.Config().SpawnLookahead

	r.Update(frame, 200, 30)
	r.sched.Advance(stepFor(r))

	if got := r.streamer.Config().ViewportWidth; got != 200 {
		t.Fatalf("Expected the stream viewport to grow to 200, got %v", got)
	}
	if got := r.streamer.Cursor(); got < r.camera+200+lookahead {
		t.Errorf("Expected ground streamed past %v, got cursor %v", r.camera+200+lookahead, got)
	}
	if segs := r.streamer.Segments(); len(segs) == 0 || segs[0].X > r.camera {
		t.Error("Expected the ground under the viewport to stay live")
	}
}

func TestVolleyTargetsNearbyPlayers(t *testing.T) {
	opts := games.Options{Players: games.DefaultParty(2), Lives: 3, ShieldDuration: time.Second}
	r := newRun(opts, log.Discard())

	r.volley()
	if got := len(r.fireballs.Live()); got != 1 {
		t.Fatalf("Expected one fireball at player 1, got %d", got)
	}

	r.fireballs.Clear()
	shooter := r.fire[0]
	r.players[1].Body.X = shooter.Body.X - 5
	r.players[1].Body.Y = shooter.Body.Y
	r.volley()
	if got := len(r.fireballs.Live()); got != 2 {
		t.Errorf("Expected player 2 targeted when close, got %d fireballs", got)
	}
}

func TestFireballHitCostsLife(t *testing.T) {
	r := testRun(t, 1)
	p := r.players[0]
	fb := r.fireballs.Spawn(p.Body.X, p.Body.Y, p.Body.X+10, p.Body.Y)
	r.resolveContacts()

	if r.sess.Lives() != 2 {
		t.Errorf("Expected fireball to cost a life, got %d", r.sess.Lives())
	}
	if fb.Body.Enabled {
		t.Error("Expected the fireball spent")
	}
}

func TestRestartBuildsFreshRun(t *testing.T) {
	r := testRun(t, 1)
	r.Update(frame, 80, 30)
	typeCode(r, "myy1")
	r.players[0].Body.X = GoalX
	r.checkGoal()
	oldLevel := r.Level()

	r.Restart()

	if r.Finished() || r.power.IsActive() || r.streamer != nil {
		t.Error("Expected a clean run after restart")
	}
	if r.sess.Lives() != 3 || r.sess.Score() != 0 {
		t.Errorf("Expected lives and score reset, got %d / %d", r.sess.Lives(), r.sess.Score())
	}
	if r.Level() == oldLevel {
		t.Error("Expected a new level")
	}

	r.Update(frame, 80, 30)
	if r.streamer == nil || r.sess.Scheduler().Len() != 2 {
		t.Errorf("Expected the volley and scroll timers rescheduled, got %d", r.sess.Scheduler().Len())
	}
}

func TestHUDShowsDistanceAndPlayers(t *testing.T) {
	r := testRun(t, 2)
	lines := r.HUD()
	if !strings.Contains(lines[0].Text, "Lives: ♥♥♥") {
		t.Errorf("Expected hearts, got %q", lines[0].Text)
	}
	if len(lines) != 4 {
		t.Errorf("Expected 2 status lines plus one per player, got %d", len(lines))
	}
}
