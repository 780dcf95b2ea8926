package games

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yoyoarcade/yoyo/internal/config"
	"github.com/yoyoarcade/yoyo/internal/log"
)

const (
	MaxHighScores      = 10
	HighScoresFileName = "highscores.json"
)

type HighScore struct {
	ID      string    `json:"id"`
	Score   int       `json:"score"`
	Players []string  `json:"players"`
	Outcome Outcome   `json:"outcome"`
	Date    time.Time `json:"date"`
}

type HighScores struct {
	Entries []HighScore `json:"entries"`
	path    string
}

func highScoresPath(gameName string) (string, error) {
	dir, err := config.GetGameDataDir(gameName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, HighScoresFileName), nil
}

// LoadHighScores reads the table for a game from its data directory.
func LoadHighScores(gameName string) (*HighScores, error) {
	path, err := highScoresPath(gameName)
	if err != nil {
		return &HighScores{Entries: []HighScore{}}, err
	}
	return LoadHighScoresFile(path)
}

// LoadHighScoresFile reads a table from path. A missing or corrupt file
// yields an empty table bound to path.
func LoadHighScoresFile(path string) (*HighScores, error) {
	hs := &HighScores{Entries: []HighScore{}, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return hs, nil
		}
		return hs, fmt.Errorf("reading high scores: %w", err)
	}

	if err := json.Unmarshal(data, hs); err != nil {
		log.G().Warn("corrupted high scores file, resetting", "path", path, "error", err)
		hs.Entries = []HighScore{}
		return hs, nil
	}
	hs.sort()
	if len(hs.Entries) > MaxHighScores {
		hs.Entries = hs.Entries[:MaxHighScores]
	}
	return hs, nil
}

func (hs *HighScores) Save() error {
	if hs.path == "" {
		return errors.New("high scores have no file")
	}

	data, err := json.MarshalIndent(hs, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(hs.path, data, 0644); err != nil {
		return fmt.Errorf("writing high scores: %w", err)
	}
	return nil
}

func (hs *HighScores) sort() {
	sort.SliceStable(hs.Entries, func(i, j int) bool {
		return hs.Entries[i].Score > hs.Entries[j].Score
	})
}

// Add inserts a score and reports whether it made the table.
func (hs *HighScores) Add(score HighScore) bool {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	if score.Date.IsZero() {
		score.Date = time.Now()
	}

	hs.Entries = append(hs.Entries, score)
	hs.sort()

	if len(hs.Entries) <= MaxHighScores {
		return true
	}

	kept := false
	for i, entry := range hs.Entries {
		if entry.ID == score.ID {
			kept = i < MaxHighScores
			break
		}
	}
	hs.Entries = hs.Entries[:MaxHighScores]
	return kept
}

func (hs *HighScores) IsHighScore(score int) bool {
	if len(hs.Entries) < MaxHighScores {
		return true
	}

	return score > hs.Entries[MaxHighScores-1].Score
}

// GetRank returns the position score would take once added. Ties rank
// below the scores already in the table.
func (hs *HighScores) GetRank(score int) int {
	for i, entry := range hs.Entries {
		if score > entry.Score {
			return i + 1
		}
	}

	if len(hs.Entries) < MaxHighScores {
		return len(hs.Entries) + 1
	}

	return 0
}

func (hs *HighScores) GetTop(n int) []HighScore {
	if n > len(hs.Entries) {
		n = len(hs.Entries)
	}
	return hs.Entries[:n]
}

// Best returns the top score, zero for an empty table.
func (hs *HighScores) Best() int {
	if len(hs.Entries) == 0 {
		return 0
	}
	return hs.Entries[0].Score
}

// Format renders the table as plain text for the clipboard.
func (hs *HighScores) Format(title string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s high scores\n", title)
	for i, e := range hs.Entries {
		fmt.Fprintf(&b, "%2d. %6d  %-5s %s  %s\n",
			i+1, e.Score, e.Outcome, e.Date.Format("2006-01-02"), strings.Join(e.Players, ", "))
	}
	return b.String()
}

// Record adds a finished run to the game's table and saves it.
func Record(res Result) (rank int, err error) {
	hs, err := LoadHighScores(res.Game)
	if err != nil {
		return 0, err
	}
	return RecordIn(hs, res)
}

// RecordIn adds a finished run to hs and saves it. Quit runs and zero
// scores are not recorded.
func RecordIn(hs *HighScores, res Result) (rank int, err error) {
	if res.Outcome == OutcomeQuit || res.Score <= 0 || !hs.IsHighScore(res.Score) {
		return 0, nil
	}

	rank = hs.GetRank(res.Score)
	names := make([]string, 0, len(res.Players))
	for _, p := range res.Players {
		names = append(names, p.Character.Name)
	}
	hs.Add(HighScore{Score: res.Score, Players: names, Outcome: res.Outcome})

	if err := hs.Save(); err != nil {
		return rank, err
	}
	return rank, nil
}
