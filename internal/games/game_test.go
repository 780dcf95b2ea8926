package games

import (
	"testing"
)

type mockGame struct {
	name        string
	description string
	commands    []string
}

func (m *mockGame) Name() string        { return m.name }
func (m *mockGame) Title() string       { return m.name }
func (m *mockGame) Subtitle() string    { return "" }
func (m *mockGame) Description() string { return m.description }
func (m *mockGame) Commands() []string  { return m.commands }
func (m *mockGame) MaxPlayers() int     { return 2 }

func (m *mockGame) Launch(opts Options) (Result, error) {
	return Result{Game: m.name, Outcome: OutcomeQuit}, nil
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	registry.Register(&mockGame{name: "test-game", description: "A test game", commands: []string{"test", "tg"}})

	if len(registry.List()) != 1 {
		t.Errorf("Expected 1 game, got %d", len(registry.List()))
	}
}

func TestRegistryReRegisterReplaces(t *testing.T) {
	registry := NewRegistry()

	registry.Register(&mockGame{name: "test-game", description: "old"})
	registry.Register(&mockGame{name: "test-game", description: "new"})

	list := registry.List()
	if len(list) != 1 {
		t.Fatalf("Expected 1 game after re-registering, got %d", len(list))
	}
	if list[0].Description() != "new" {
		t.Errorf("Expected the newer game to win, got '%s'", list[0].Description())
	}
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockGame{name: "test-game", commands: []string{"test"}})

	retrieved, ok := registry.Get("test-game")
	if !ok {
		t.Fatal("Expected to find game 'test-game'")
	}
	if retrieved.Name() != "test-game" {
		t.Errorf("Expected game name 'test-game', got '%s'", retrieved.Name())
	}

	if _, ok := registry.Get("non-existent"); ok {
		t.Error("Expected not to find non-existent game")
	}
}

func TestRegistryGetByCommand(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockGame{name: "test-game", commands: []string{"test", "tg"}})

	for _, cmd := range []string{"test", "tg", "test-game", " TG "} {
		retrieved, ok := registry.GetByCommand(cmd)
		if !ok {
			t.Errorf("Expected to find game by command '%s'", cmd)
			continue
		}
		if retrieved.Name() != "test-game" {
			t.Errorf("Expected game name 'test-game', got '%s'", retrieved.Name())
		}
	}

	if _, ok := registry.GetByCommand("non-existent"); ok {
		t.Error("Expected not to find game by non-existent command")
	}
}

func TestRegistryCommandCollision(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockGame{name: "game1", commands: []string{"shared"}})
	registry.Register(&mockGame{name: "game2", commands: []string{"shared"}})

	retrieved, ok := registry.GetByCommand("shared")
	if !ok {
		t.Fatal("Expected to find game by command 'shared'")
	}
	if retrieved.Name() != "game2" {
		t.Errorf("Expected command 'shared' to be overwritten by 'game2', got '%s'", retrieved.Name())
	}
}

func TestRegistryCommandSuggestions(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockGame{name: "runner", commands: []string{"run", "castle"}})
	registry.Register(&mockGame{name: "chaser", commands: []string{"coins"}})

	suggestions := registry.CommandSuggestions()
	expected := []string{"castle", "chaser", "coins", "run", "runner"}
	if len(suggestions) != len(expected) {
		t.Fatalf("Expected %d suggestions, got %v", len(expected), suggestions)
	}
	for i, cmd := range expected {
		if suggestions[i] != cmd {
			t.Errorf("Expected suggestion %d to be '%s', got '%s'", i, cmd, suggestions[i])
		}
	}

	prefixed := registry.Suggest("ru")
	if len(prefixed) != 2 || prefixed[0] != "run" || prefixed[1] != "runner" {
		t.Errorf("Expected [run runner], got %v", prefixed)
	}
}

func TestRegistryList(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&mockGame{name: "game1"})
	registry.Register(&mockGame{name: "game2"})
	registry.Register(&mockGame{name: "game3"})

	list := registry.List()
	if len(list) != 3 {
		t.Fatalf("Expected 3 games, got %d", len(list))
	}
	for i, name := range []string{"game1", "game2", "game3"} {
		if list[i].Name() != name {
			t.Errorf("Expected game %d to be '%s', got '%s'", i, name, list[i].Name())
		}
	}
}

func TestCharacters(t *testing.T) {
	c, ok := CharacterByID("shadow")
	if !ok || c.Name != "Shadow" || c.Color != "#ff0000" {
		t.Errorf("Expected Shadow/#ff0000, got %+v", c)
	}
	if _, ok := CharacterByID("tails"); ok {
		t.Error("Expected unknown character lookup to fail")
	}

	left := Available([]Character{Roster[0], Roster[2]})
	if len(left) != 1 || left[0].ID != "shadow" {
		t.Errorf("Expected only shadow available, got %v", left)
	}

	if got := DefaultParty(5); len(got) != 3 {
		t.Errorf("Expected party capped at 3, got %d", len(got))
	}
	if got := DefaultParty(0); len(got) != 1 {
		t.Errorf("Expected party of at least 1, got %d", len(got))
	}
}
