package cheat

import (
	"math/rand"
	"testing"
	"testing/quick"
)

func TestBufferNeverExceedsMax(t *testing.T) {
	f := func(seed int64, max uint8) bool {
		r := rand.New(rand.NewSource(seed))
		size := int(max%8) + 1
		b := NewBuffer(size, Code{Name: "x", Sequence: "zzzzzzzzzz"})

		const alphabet = "abc123!@ XYZ\t-"
		for i := 0; i < 200; i++ {
			b.Feed(rune(alphabet[r.Intn(len(alphabet))]))
			if b.Len() > size {
				t.Logf("buffer length %d exceeds max %d", b.Len(), size)
				return false
			}
		}
		return true
	}

	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestBufferMatchesInvincibilityCode(t *testing.T) {
	b := NewBuffer(6, Code{Name: "invincibility", Sequence: InvincibilityCode})

	activations := 0
	for i, ch := range "131120" {
		code, ok := b.Feed(ch)
		if ok {
			activations++
			if i != 5 {
				t.Errorf("Expected activation after the 6th character, got it after character %d", i+1)
			}
			if code.Name != "invincibility" {
				t.Errorf("Expected code 'invincibility', got '%s'", code.Name)
			}
		}
	}

	if activations != 1 {
		t.Errorf("Expected exactly 1 activation, got %d", activations)
	}
	if b.Len() != 0 {
		t.Errorf("Expected buffer to be reset after a match, got %q", b.String())
	}
}

func TestBufferTriggersTwiceForRepeatedCode(t *testing.T) {
	b := NewBuffer(6, Code{Name: "invincibility", Sequence: InvincibilityCode})

	activations := 0
	for _, ch := range "131120131120" {
		if _, ok := b.Feed(ch); ok {
			activations++
		}
	}

	if activations != 2 {
		t.Errorf("Expected 2 activations, got %d", activations)
	}
}

func TestBufferIgnoresNonAlphanumeric(t *testing.T) {
	b := NewBuffer(4, Code{Name: "shield", Sequence: ShieldCode})

	b.Feed('m')
	b.Feed('y')
	before := b.String()

	for _, ch := range []rune{' ', '!', '\n', '-', 'é'} {
		if _, ok := b.Feed(ch); ok {
			t.Errorf("Expected %q to never match", ch)
		}
	}

	if b.String() != before {
		t.Errorf("Expected ignored input to leave buffer at %q, got %q", before, b.String())
	}

	b.Feed('y')
	if _, ok := b.Feed('1'); !ok {
		t.Error("Expected code to match after ignored keys were interleaved")
	}
}

func TestBufferIsCaseInsensitive(t *testing.T) {
	b := NewBuffer(4, Code{Name: "shield", Sequence: "MYY1"})

	var matched bool
	for _, ch := range "mYy1" {
		_, matched = b.Feed(ch)
	}

	if !matched {
		t.Error("Expected mixed-case input to match the code")
	}
}

func TestBufferDropsOldestKeys(t *testing.T) {
	b := NewBuffer(4, Code{Name: "shield", Sequence: ShieldCode})

	for _, ch := range "abcmyy" {
		b.Feed(ch)
	}
	if b.String() != "cmyy" {
		t.Errorf("Expected buffer 'cmyy', got '%s'", b.String())
	}

	if _, ok := b.Feed('1'); !ok {
		t.Error("Expected 'myy1' to match once the oldest keys dropped off")
	}
}

func TestBufferRequiresExactLength(t *testing.T) {
	b := NewBuffer(6, Code{Name: "shield", Sequence: ShieldCode})

	for _, ch := range "abmyy1" {
		if _, ok := b.Feed(ch); ok {
			t.Fatal("Expected a longer buffer not to match a shorter code")
		}
	}
}

func TestDetectorFeedsAllBuffers(t *testing.T) {
	d := NewDetector(
		NewBuffer(4, Code{Name: "shield", Sequence: ShieldCode}),
		NewBuffer(6, Code{Name: "victory", Sequence: VictoryCode}),
	)

	var got []string
	for _, ch := range "131119" {
		got = append(got, d.Feed(ch)...)
	}
	if len(got) != 1 || got[0] != "victory" {
		t.Errorf("Expected [victory], got %v", got)
	}

	got = nil
	for _, ch := range "myy1" {
		got = append(got, d.Feed(ch)...)
	}
	if len(got) != 1 || got[0] != "shield" {
		t.Errorf("Expected [shield], got %v", got)
	}
}

func TestChaserDetectorCodes(t *testing.T) {
	d := ChaserDetector()

	var got []string
	for _, ch := range "131120" {
		got = append(got, d.Feed(ch)...)
	}
	if len(got) != 1 || got[0] != "invincibility" {
		t.Errorf("Expected [invincibility], got %v", got)
	}
}
