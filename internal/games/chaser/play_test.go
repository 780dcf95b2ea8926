package chaser

import (
	"testing"
	"time"

	tl "github.com/JoelOtter/termloop"

	"github.com/yoyoarcade/yoyo/internal/games"
	"github.com/yoyoarcade/yoyo/internal/log"
)

const frame = 1.0 / 60

func testPlay(t *testing.T, players int) *Play {
	t.Helper()
	s, err := DefaultStage()
	if err != nil {
		t.Fatal(err)
	}
	opts := games.Options{
		Players:               games.DefaultParty(players),
		Lives:                 3,
		InvincibilityDuration: 10 * time.Second,
	}
	p := newPlay(opts, s.Layout(), log.Discard())
	for _, e := range p.fire {
		e.Defeat()
	}
	return p
}

func typeCode(p *Play, code string) {
	for _, ch := range code {
		p.HandleKey(tl.Event{Type: tl.EventKey, Ch: ch})
	}
}

func TestGameMetadata(t *testing.T) {
	g := New()
	if g.Name() != "chaser" || g.Title() != "Coin Chaser" || g.MaxPlayers() != 3 {
		t.Errorf("Unexpected identity %q %q %d", g.Name(), g.Title(), g.MaxPlayers())
	}

	reg := games.NewRegistry()
	reg.Register(g)
	if got, ok := reg.GetByCommand("COINS"); !ok || got.Name() != Name {
		t.Error("Expected the coins command to resolve to the chaser")
	}
}

func TestPlayersSpawnAndLand(t *testing.T) {
	p := testPlay(t, 1)
	for i := 0; i < 120; i++ {
		p.Update(frame, 100, 50)
	}

	pl := p.players[0]
	if !pl.OnGround() || !near(pl.Body.Bottom(), 40) {
		t.Errorf("Expected player 1 on the ground, got bottom %v", pl.Body.Bottom())
	}
	if p.sess.Lives() != 3 || p.CoinsLeft() != 12 {
		t.Errorf("Expected an untouched stage, got %d lives and %d coins", p.sess.Lives(), p.CoinsLeft())
	}
}

func TestCoinCollection(t *testing.T) {
	p := testPlay(t, 2)
	c := p.coins[3]
	pl := p.players[1]
	pl.Body.X, pl.Body.Y = c.Body.X, c.Body.Y
	p.collectCoins()

	if c.Body.Enabled || c.sprite.Attached() {
		t.Error("Expected the coin removed")
	}
	if p.tallies[1] != 1 || pl.Score != 10 || p.sess.Score() != 10 {
		t.Errorf("Expected 10 points to player 2, got tally %d score %d total %d", p.tallies[1], pl.Score, p.sess.Score())
	}
	if p.CoinsLeft() != 11 {
		t.Errorf("Expected 11 coins left, got %d", p.CoinsLeft())
	}
}

func TestCollectingEveryCoinWins(t *testing.T) {
	p := testPlay(t, 1)
	var results []games.Result
	p.OnFinish = func(res games.Result) { results = append(results, res) }

	pl := p.players[0]
	for _, c := range p.coins {
		pl.Body.X, pl.Body.Y = c.Body.X, c.Body.Y
		p.collectCoins()
	}

	if !p.Finished() || len(results) != 1 {
		t.Fatalf("Expected one finish, got finished=%v calls=%d", p.Finished(), len(results))
	}
	if results[0].Outcome != games.OutcomeWon || results[0].Score != 120 {
		t.Errorf("Expected won with 120, got %s with %d", results[0].Outcome, results[0].Score)
	}
	if got := p.Standings()[0].Coins; got != 12 {
		t.Errorf("Expected 12 coins in the standings, got %d", got)
	}
}

func TestStandingsOrder(t *testing.T) {
	p := testPlay(t, 3)
	p.tallies = []int{1, 3, 3}

	got := p.Standings()
	want := []string{"shadow", "amy", "sonic"}
	for i, id := range want {
		if got[i].Character.ID != id {
			t.Errorf("Expected %s at %d, got %s", id, i, got[i].Character.ID)
		}
	}
}

func TestVictoryCode(t *testing.T) {
	p := testPlay(t, 1)
	typeCode(p, "131119")

	res := p.Result()
	if !p.Finished() || res.Outcome != games.OutcomeWon {
		t.Fatalf("Expected an immediate win, got %s", res.Outcome)
	}
	if res.Score != 0 {
		t.Errorf("Expected the score untouched, got %d", res.Score)
	}

	typeCode(p, "131120")
	if p.power.IsActive() {
		t.Error("Expected codes ignored once the play is over")
	}
}

func TestInvincibilityCode(t *testing.T) {
	p := testPlay(t, 3)
	typeCode(p, "131120")

	if !p.power.IsActive() || p.power.Visuals() != 3 {
		t.Fatalf("Expected invincibility on all 3 players, got active=%v visuals=%d", p.power.IsActive(), p.power.Visuals())
	}
	if msg, _, ok := p.banners.Current(); !ok || msg != "INVINCIBLE!" {
		t.Errorf("Expected sticky banner, got %q", msg)
	}

	p.sched.Advance(10 * time.Second)
	if p.power.IsActive() {
		t.Fatal("Expected invincibility over after 10s")
	}
	if msg, _, ok := p.banners.Current(); !ok || msg != "Invincibility ended" {
		t.Errorf("Expected end banner, got %q", msg)
	}

	p.sched.Advance(2 * time.Second)
	if _, _, ok := p.banners.Current(); ok {
		t.Error("Expected end banner cleared after 2s")
	}
}

func TestInvincibleContactDefeatsEnemy(t *testing.T) {
	p := testPlay(t, 1)
	typeCode(p, "131120")

	pl, e := p.players[0], p.enemies[0]
	pl.Body.X, pl.Body.Y = e.Body.X+1, e.Body.Y
	p.resolveContacts()

	if e.Active() {
		t.Error("Expected the guard defeated")
	}
	if p.sess.Lives() != 3 || p.sess.Score() != 20 {
		t.Errorf("Expected 3 lives and 20 points, got %d and %d", p.sess.Lives(), p.sess.Score())
	}
}

func TestFireballHitRespawnsEveryone(t *testing.T) {
	p := testPlay(t, 2)
	pl := p.players[1]
	pl.Body.X, pl.Body.Y = 50, 10
	p.fireballs.Spawn(pl.Body.X, pl.Body.Y, 60, 10)
	p.resolveContacts()

	if p.sess.Lives() != 2 {
		t.Fatalf("Expected 2 lives, got %d", p.sess.Lives())
	}
	for i, pl := range p.players {
		s := p.layout.Spawns[i]
		if pl.Body.X != s.X || pl.Body.Y != s.Y {
			t.Errorf("Expected player %d back at spawn, got (%v, %v)", i, pl.Body.X, pl.Body.Y)
		}
	}
	if len(p.fireballs.Live()) != 0 {
		t.Error("Expected fireballs cleared on respawn")
	}
}

func TestVolleyTargetsNearbyPlayers(t *testing.T) {
	s, err := DefaultStage()
	if err != nil {
		t.Fatal(err)
	}
	p := newPlay(games.Options{Players: games.DefaultParty(2), Lives: 3}, s.Layout(), log.Discard())

	// Player 2 spawns about 335px from the fire enemy.
	p.volley()
	if got := len(p.fireballs.Live()); got != 2 {
		t.Fatalf("Expected a fireball per player, got %d", got)
	}

	p.fireballs.Clear()
	p.players[1].Body.X, p.players[1].Body.Y = 75, 38
	p.volley()
	if got := len(p.fireballs.Live()); got != 1 {
		t.Errorf("Expected only player 1 targeted when player 2 is far, got %d", got)
	}
}

func TestMoverCarriesPlayer(t *testing.T) {
	p := testPlay(t, 1)
	solid := p.movers[0].Solid
	pl := p.players[0]
	pl.Place(solid.X, solid.Y-pl.Body.H)
	x := pl.Body.X

	p.Update(0.05, 100, 50)

	if !pl.OnGround() {
		t.Fatal("Expected the player to stay on the mover")
	}
	if !near(pl.Body.X, x+0.3) {
		t.Errorf("Expected the player carried to %v, got %v", x+0.3, pl.Body.X)
	}
}

func TestFollow(t *testing.T) {
	p := testPlay(t, 1)

	p.follow(100, 50)
	if ox, oy := p.level.Offset(); ox != 10 || oy != 4 {
		t.Errorf("Expected a centered stage at (10, 4), got (%d, %d)", ox, oy)
	}

	p.players[0].Body.X = 70
	p.follow(40, 20)
	if p.cameraX != 40 {
		t.Errorf("Expected camera clamped to 40, got %v", p.cameraX)
	}

	p.players[0].Body.X = 5
	p.follow(40, 20)
	if p.cameraX != 0 {
		t.Errorf("Expected camera at 0, got %v", p.cameraX)
	}
}

func TestRestartRebuildsStage(t *testing.T) {
	p := testPlay(t, 2)
	pl := p.players[0]
	c := p.coins[0]
	pl.Body.X, pl.Body.Y = c.Body.X, c.Body.Y
	p.collectCoins()
	typeCode(p, "131119")

	p.Restart()

	if p.Finished() || p.CoinsLeft() != 12 || p.sess.Score() != 0 {
		t.Errorf("Expected a fresh stage, got finished=%v coins=%d score=%d", p.Finished(), p.CoinsLeft(), p.sess.Score())
	}
	if p.tallies[0] != 0 || len(p.players) != 2 {
		t.Errorf("Expected tallies reset, got %v", p.tallies)
	}
	if p.sess.Scheduler().Len() != 1 {
		t.Errorf("Expected only the volley timer, got %d", p.sess.Scheduler().Len())
	}
}
