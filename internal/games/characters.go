package games

import "github.com/samber/lo"

// Character is a selectable player avatar.
type Character struct {
	ID    string
	Name  string
	Color string // hex, used by the menu; levels map it to a terminal color
}

var Roster = []Character{
	{ID: "sonic", Name: "Sonic", Color: "#0080ff"},
	{ID: "shadow", Name: "Shadow", Color: "#ff0000"},
	{ID: "amy", Name: "Amy", Color: "#ff00ff"},
}

func CharacterByID(id string) (Character, bool) {
	return lo.Find(Roster, func(c Character) bool { return c.ID == id })
}

// Available returns the roster minus the characters already taken.
func Available(taken []Character) []Character {
	ids := lo.Map(taken, func(c Character, _ int) string { return c.ID })
	return lo.Reject(Roster, func(c Character, _ int) bool { return lo.Contains(ids, c.ID) })
}

// DefaultParty picks the first n roster characters.
func DefaultParty(n int) []Character {
	n = max(1, min(n, len(Roster)))
	return append([]Character(nil), Roster[:n]...)
}
