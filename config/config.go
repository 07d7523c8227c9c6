package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SeatBot     = "bot"
	SeatAdvisor = "advisor"

	UpgraderGobwas  = "gobwas"
	UpgraderGorilla = "gorilla"
)

// Seat one opponent next to the remote participant.
type Seat struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Model   string `json:"model,omitempty"`
	BaseURL string `json:"base_url,omitempty"`
	// APIKeyEnv environment variable holding the bearer key, usually set via secrets_file
	APIKeyEnv string `json:"api_key_env,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// APIKey resolved from the environment.
func (s Seat) APIKey() string {
	if s.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(s.APIKeyEnv)
}

type Config struct {
	Addr               string `json:"addr"`
	Rounds             int    `json:"rounds"`
	Seed               int64  `json:"seed"`
	StatsPath          string `json:"stats_path"`
	BinaryFrames       bool   `json:"binary_frames"`
	Upgrader           string `json:"upgrader"`
	LogLevel           string `json:"log_level"`
	FoldLastTrickBonus bool   `json:"fold_last_trick_bonus"`
	// RemoteSeat seat of the network participant, 0..3
	RemoteSeat  int    `json:"remote_seat"`
	Seats       []Seat `json:"seats"`
	SecretsFile string `json:"secrets_file"`
}

func Default() *Config {
	return &Config{
		Addr:        ":5001",
		Rounds:      5,
		StatsPath:   "game_stats.csv",
		Upgrader:    UpgraderGobwas,
		LogLevel:    "info",
		SecretsFile: "secrets.env",
		Seats: []Seat{
			{Name: "Bot 1", Kind: SeatBot},
			{Name: "Bot 2", Kind: SeatBot},
			{Name: "Bot 3", Kind: SeatBot},
		},
	}
}

// Load reads path over the defaults, then the secrets file into the environment.
// A missing file of either kind is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err = json.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if cfg.SecretsFile != "" {
		if err := godotenv.Load(cfg.SecretsFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if len(c.Seats) != 3 {
		return fmt.Errorf("need exactly 3 opponent seats, got %d", len(c.Seats))
	}
	if c.RemoteSeat < 0 || c.RemoteSeat > 3 {
		return fmt.Errorf("remote_seat must be 0..3, got %d", c.RemoteSeat)
	}
	switch strings.ToLower(c.Upgrader) {
	case UpgraderGobwas, UpgraderGorilla:
	default:
		return fmt.Errorf("unknown upgrader %q", c.Upgrader)
	}
	names := map[string]bool{}
	for i, s := range c.Seats {
		if s.Name == "" {
			return fmt.Errorf("seat %d has no name", i)
		}
		if names[s.Name] {
			return fmt.Errorf("duplicate seat name %q", s.Name)
		}
		names[s.Name] = true
		switch s.Kind {
		case SeatBot:
		case SeatAdvisor:
			if s.BaseURL == "" || s.Model == "" {
				return fmt.Errorf("advisor seat %q needs base_url and model", s.Name)
			}
		default:
			return fmt.Errorf("seat %q: unknown kind %q", s.Name, s.Kind)
		}
	}
	return nil
}
