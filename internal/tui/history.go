package tui

import "github.com/gammazero/deque"

// commandHistory keeps recent palette commands, newest first.
type commandHistory struct {
	limit  int
	cursor int
	items  deque.Deque[string]
}

func newCommandHistory(limit int) *commandHistory {
	return &commandHistory{limit: limit, cursor: -1}
}

// Add records a command and resets browsing. Repeating the newest entry
// is not recorded twice.
func (h *commandHistory) Add(cmd string) {
	h.cursor = -1
	if cmd == "" {
		return
	}
	if h.items.Len() > 0 && h.items.Front() == cmd {
		return
	}
	h.items.PushFront(cmd)
	for h.items.Len() > h.limit {
		h.items.PopBack()
	}
}

// Older steps back one entry. ok is false once the oldest is reached.
func (h *commandHistory) Older() (cmd string, ok bool) {
	if h.cursor+1 >= h.items.Len() {
		return "", false
	}
	h.cursor++
	return h.items.At(h.cursor), true
}

// Newer steps forward one entry. Stepping past the newest yields an empty
// command so the input is cleared.
func (h *commandHistory) Newer() (cmd string, ok bool) {
	if h.cursor < 0 {
		return "", false
	}
	h.cursor--
	if h.cursor < 0 {
		return "", true
	}
	return h.items.At(h.cursor), true
}

func (h *commandHistory) Reset() {
	h.cursor = -1
}

func (h *commandHistory) Len() int {
	return h.items.Len()
}
