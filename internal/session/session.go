package session

import (
	"time"

	"github.com/yoyoarcade/yoyo/internal/timer"
)

type State int

const (
	Playing State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return "playing"
}

// Session is the mutable state of one level run: score, lives, outcome and
// the timers scheduled on its behalf. Every restart starts a new
// generation; callbacks created by an older generation become no-ops.
type Session struct {
	sched *timer.Scheduler

	startLives int
	lives      int
	score      int
	state      State
	gen        uint64

	grace      time.Duration
	graceUntil time.Duration

	OnLifeLost func(remaining int)
	OnGameOver func()
	OnVictory  func()
}

func New(sched *timer.Scheduler, lives int, grace time.Duration) *Session {
	if lives < 1 {
		lives = 1
	}
	return &Session{
		sched:      sched,
		startLives: lives,
		lives:      lives,
		grace:      grace,
		graceUntil: -1,
	}
}

func (s *Session) Score() int   { return s.score }
func (s *Session) Lives() int   { return s.lives }
func (s *Session) State() State { return s.state }

func (s *Session) Playing() bool {
	return s.state == Playing
}

// AddScore adds points while the run is in progress.
func (s *Session) AddScore(points int) {
	if s.state != Playing {
		return
	}
	s.score += points
}

// SetScore replaces the score, used by levels whose score is derived from
// distance.
func (s *Session) SetScore(score int) {
	if s.state != Playing {
		return
	}
	s.score = score
}

// InGrace reports whether the post-respawn cooldown is still running.
func (s *Session) InGrace() bool {
	return s.sched.Now() < s.graceUntil
}

// LoseLife takes one life unless a power-up is active, the respawn grace is
// running, or the run is already over. It reports whether a life was taken.
func (s *Session) LoseLife(powerUp bool) bool {
	if s.state != Playing || powerUp || s.InGrace() {
		return false
	}

	s.lives--
	if s.OnLifeLost != nil {
		s.OnLifeLost(s.lives)
	}
	if s.lives <= 0 {
		s.lives = 0
		s.finish(Lost)
		return true
	}

	s.graceUntil = s.sched.Now() + s.grace
	return true
}

// Win ends the run with a victory. It reports false if the run was already
// over.
func (s *Session) Win() bool {
	if s.state != Playing {
		return false
	}
	s.finish(Won)
	return true
}

func (s *Session) finish(state State) {
	s.state = state
	switch state {
	case Won:
		if s.OnVictory != nil {
			s.OnVictory()
		}
	case Lost:
		if s.OnGameOver != nil {
			s.OnGameOver()
		}
	}
}

func (s *Session) Generation() uint64 {
	return s.gen
}

// Guard wraps fn so that it only runs while the current generation is live.
func (s *Session) Guard(fn func()) func() {
	gen := s.gen
	return func() {
		if s.gen != gen {
			return
		}
		fn()
	}
}

// After schedules a guarded one-shot callback.
func (s *Session) After(d time.Duration, fn func()) timer.Handle {
	return s.sched.After(d, s.Guard(fn))
}

// Every schedules a guarded repeating callback.
func (s *Session) Every(d time.Duration, fn func()) timer.Handle {
	return s.sched.Every(d, s.Guard(fn))
}

func (s *Session) Scheduler() *timer.Scheduler {
	return s.sched
}

// Restart cancels every pending timer, bumps the generation and resets
// score, lives and state.
func (s *Session) Restart() {
	s.sched.Reset()
	s.gen++
	s.lives = s.startLives
	s.score = 0
	s.state = Playing
	s.graceUntil = -1
}
