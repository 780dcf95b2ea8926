package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

const (
	// DefaultPlayers is the player count preselected in the menu.
	DefaultPlayers = 1
	// MaxPlayers is the largest party any level supports.
	MaxPlayers = 3
	// DefaultLives is the number of lives each run starts with.
	DefaultLives = 3
	// DefaultShieldDuration is how long the Castle Escape shield lasts.
	DefaultShieldDuration = 15 * time.Second
	// DefaultChaserInvincibility is how long Coin Chaser invincibility lasts.
	DefaultChaserInvincibility = 10 * time.Second
	// DefaultRespawnGrace is the cooldown after losing a life.
	DefaultRespawnGrace = time.Second
	// DefaultLogo is the banner shown above the game cards.
	DefaultLogo = ` _  _  ___  _  _  ___
( \/ )/ _ \( \/ )/ _ \
 \  /( (_) )\  /( (_) )
 (__) \___/ (__) \___/`
)

const fileName = ".yoyo.conf"

// Config holds the user configuration for yoyo.
type Config struct {
	Players             int
	Lives               int
	ShieldDuration      time.Duration
	ChaserInvincibility time.Duration
	RespawnGrace        time.Duration
	Seed                int64  // 0 means seed from the clock
	Logo                string
	LogFilePath         string // Custom log file path (empty means use XDG default)
}

func defaults() *Config {
	return &Config{
		Players:             DefaultPlayers,
		Lives:               DefaultLives,
		ShieldDuration:      DefaultShieldDuration,
		ChaserInvincibility: DefaultChaserInvincibility,
		RespawnGrace:        DefaultRespawnGrace,
		Logo:                DefaultLogo,
	}
}

// Load reads the yoyo configuration from ~/.yoyo.conf. If the file doesn't
// exist or cannot be read, it returns a Config with default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaults(), nil // Return defaults if can't get home dir
	}
	return LoadFile(filepath.Join(home, fileName))
}

// LoadFile reads configuration from path. Unknown keys and malformed values
// are skipped so a typo never keeps the game from starting.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	file, err := os.Open(path)
	if err != nil {
		// Config file doesn't exist, return defaults
		return cfg, nil
	}
	defer func() {
		_ = file.Close() // Ignore close error on read-only file
	}()

	scanner := bufio.NewScanner(file)
	var logoLines []string
	inLogo := false

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if inLogo {
			if trimmed == "logo_end" {
				inLogo = false
				cfg.Logo = strings.Join(logoLines, "\n")
				continue
			}
			logoLines = append(logoLines, line)
			continue
		}

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		if trimmed == "logo_start" {
			inLogo = true
			logoLines = []string{}
			continue
		}

		key, value, ok := strings.Cut(trimmed, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "players":
			if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= MaxPlayers {
				cfg.Players = n
			}
		case "lives":
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				cfg.Lives = n
			}
		case "shield_duration":
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				cfg.ShieldDuration = d
			}
		case "chaser_invincibility":
			if d, err := time.ParseDuration(value); err == nil && d > 0 {
				cfg.ChaserInvincibility = d
			}
		case "respawn_grace":
			if d, err := time.ParseDuration(value); err == nil && d >= 0 {
				cfg.RespawnGrace = d
			}
		case "seed":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				cfg.Seed = n
			}
		case "log_path":
			// Accept the value as-is, will be validated in setupLogging
			cfg.LogFilePath = value
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

// CreateDefaultConfig creates a default configuration file at ~/.yoyo.conf
// if it doesn't already exist. It does not overwrite existing configurations.
func CreateDefaultConfig() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return WriteDefaultFile(filepath.Join(home, fileName))
}

// WriteDefaultFile writes the commented default configuration to path
// unless a file is already there.
func WriteDefaultFile(path string) error {
	// Don't overwrite existing config
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	defaultConfig := `# yoyo configuration file
# Player count preselected in the menu (1-3)
players=1

# Lives per run
lives=3

# Castle Escape shield length (cheat code myy1)
shield_duration=15s

# Coin Chaser invincibility length (cheat code 131120)
chaser_invincibility=10s

# Cooldown after losing a life
respawn_grace=1s

# Level generation seed, 0 picks one from the clock
seed=0

# Log file path for yoyo internal logs
# If commented out or empty, logs will be stored in the default XDG state directory:
#   - macOS: ~/Library/Application Support/yoyo/yoyo.log
#   - Linux: ~/.local/state/yoyo/yoyo.log
# You can override this with a custom path (supports ~ for home directory)
# log_path=

# Menu banner (between logo_start and logo_end)
logo_start
` + DefaultLogo + `
logo_end
`

	return os.WriteFile(path, []byte(defaultConfig), 0644)
}

func (c *Config) String() string {
	return fmt.Sprintf("Players: %d Lives: %d Shield: %v Invincibility: %v Grace: %v Seed: %d",
		c.Players, c.Lives, c.ShieldDuration, c.ChaserInvincibility, c.RespawnGrace, c.Seed)
}

// GetGameDataDir returns the XDG data directory for a game, creating it.
func GetGameDataDir(gameName string) (string, error) {
	marker, err := xdg.DataFile(filepath.Join("yoyo", gameName, ".keep"))
	if err != nil {
		return "", fmt.Errorf("could not create game data directory: %w", err)
	}
	return filepath.Dir(marker), nil
}
