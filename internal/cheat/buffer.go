package cheat

import (
	"strings"
	"unicode"

	"github.com/gammazero/deque"
)

// Code is a named key sequence that triggers a game effect when typed.
type Code struct {
	Name     string
	Sequence string
}

const (
	// ShieldCode grants the timed shield in Castle Escape.
	ShieldCode = "myy1"
	// VictoryCode ends Coin Chaser with an immediate win.
	VictoryCode = "131119"
	// InvincibilityCode grants the timed invincibility in Coin Chaser.
	InvincibilityCode = "131120"
)

// Names reported by the built-in detectors.
const (
	ShieldName        = "shield"
	VictoryName       = "victory"
	InvincibilityName = "invincibility"
)

// Buffer keeps the last max alphanumeric keystrokes and compares them
// against its registered codes.
type Buffer struct {
	max   int
	keys  deque.Deque[rune]
	codes []Code
}

// NewBuffer creates a rolling buffer of the given length. Codes are
// lower-cased on registration.
func NewBuffer(max int, codes ...Code) *Buffer {
	if max < 1 {
		max = 1
	}

	b := &Buffer{max: max}
	for _, c := range codes {
		b.codes = append(b.codes, Code{Name: c.Name, Sequence: strings.ToLower(c.Sequence)})
	}
	return b
}

// Feed appends one keystroke. Non-alphanumeric input is dropped without
// touching the buffer. On a match the buffer is emptied and the matched
// code is returned.
func (b *Buffer) Feed(r rune) (Code, bool) {
	r = unicode.ToLower(r)
	if !isCodeRune(r) {
		return Code{}, false
	}

	b.keys.PushBack(r)
	for b.keys.Len() > b.max {
		b.keys.PopFront()
	}

	typed := b.String()
	for _, c := range b.codes {
		if typed == c.Sequence {
			b.Reset()
			return c, true
		}
	}
	return Code{}, false
}

// String returns the buffered keystrokes, oldest first.
func (b *Buffer) String() string {
	var sb strings.Builder
	for i := 0; i < b.keys.Len(); i++ {
		sb.WriteRune(b.keys.At(i))
	}
	return sb.String()
}

func (b *Buffer) Len() int {
	return b.keys.Len()
}

func (b *Buffer) Max() int {
	return b.max
}

func (b *Buffer) Reset() {
	b.keys.Clear()
}

func isCodeRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
