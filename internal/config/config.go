package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"stackandsteal-server/internal/util"
	"stackandsteal-server/pkg/deck"
	"stackandsteal-server/pkg/playable/stacksteal"
)

// Config provides configuration for the Stack & Steal server
type Config struct {
	loaded bool
	Addr   string     `yaml:"addr"`
	PGDSN  string     `yaml:"pgDsn" envconfig:"pg_dsn"`
	JWT    JWTConfig  `yaml:"jwt"`
	Game   GameConfig `yaml:"game"`
	Log    LogConfig  `yaml:"log"`
	CORS   CORSConfig `yaml:"cors"`
}

// JWTConfig configures seat tokens
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// GameConfig holds the defaults for new rooms
type GameConfig struct {
	Capacity            int              `yaml:"capacity"`
	HandSize            int              `yaml:"handSize" envconfig:"hand_size"`
	WinningScore        int              `yaml:"winningScore" envconfig:"winning_score"`
	TurnDuration        time.Duration    `yaml:"turnDuration" envconfig:"turn_duration"`
	BotThinkTime        time.Duration    `yaml:"botThinkTime" envconfig:"bot_think_time"`
	FinishedGracePeriod time.Duration    `yaml:"finishedGracePeriod" envconfig:"finished_grace_period"`
	LobbyTTL            time.Duration    `yaml:"lobbyTTL" envconfig:"lobby_ttl"`
	Deck                deck.Composition `yaml:"deck"`
}

// LogConfig configures logging
type LogConfig struct {
	Level             string `yaml:"level"`
	Format            string `yaml:"format"`
	DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
}

// CORSConfig configures cross-origin requests
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
}

var config Config

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() Config {
	opts := stacksteal.DefaultOptions()

	return Config{
		Addr: ":5000",
		JWT: JWTConfig{
			TTL: time.Hour * 12,
		},
		Game: GameConfig{
			Capacity:            4,
			HandSize:            opts.HandSize,
			WinningScore:        opts.WinningScore,
			TurnDuration:        time.Second * 10,
			BotThinkTime:        time.Millisecond * 1500,
			FinishedGracePeriod: time.Minute,
			LobbyTTL:            time.Minute * 30,
			Deck:                opts.Deck,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
	}
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The YAML file is optional unless SAS_CONFIG_FILE points at it
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("SAS_CONFIG_FILE", "")
	required := configFile != ""
	if !required {
		configFile = "config.yaml"
	}

	file, err := os.Open(configFile)
	switch {
	case err == nil:
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	case os.IsNotExist(err) && !required:
	default:
		return err
	}

	if err := envconfig.Process("sas", &cfg); err != nil {
		return err
	}

	config = cfg
	config.loaded = true
	return nil
}

// Options returns the match options for a room of the configured defaults
func (g GameConfig) Options() stacksteal.Options {
	opts := stacksteal.DefaultOptions()
	opts.HandSize = g.HandSize
	opts.WinningScore = g.WinningScore
	opts.Deck = g.Deck

	return opts
}
