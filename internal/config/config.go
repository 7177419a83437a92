package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/thekrainbow/gomoku/internal/engine"
	"github.com/thekrainbow/gomoku/internal/opponent"
)

const envPrefix = "GOMOKU"

type Config struct {
	Log      LogConfig      `mapstructure:"log"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Opponent OpponentConfig `mapstructure:"opponent"`
	Server   ServerConfig   `mapstructure:"server"`
	Arena    ArenaConfig    `mapstructure:"arena"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type EngineConfig struct {
	Depth          int                  `mapstructure:"depth"`
	Anchor         string               `mapstructure:"anchor"`
	Weights        engine.StreakWeights `mapstructure:"weights"`
	LogSearchStats bool                 `mapstructure:"log_search_stats"`
}

type OpponentConfig struct {
	Kind string `mapstructure:"kind"`
	Seed int64  `mapstructure:"seed"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	PingInterval    time.Duration `mapstructure:"ping_interval"`
}

type ArenaConfig struct {
	Matches      int     `mapstructure:"matches"`
	Workers      int     `mapstructure:"workers"`
	OpeningPlies int     `mapstructure:"opening_plies"`
	EloK         float64 `mapstructure:"elo_k"`
	Seed         int64   `mapstructure:"seed"`
}

var (
	ErrInvalidDepth = errors.New("engine depth must be at least 1")
)

func setDefaults(v *viper.Viper) {
	weights := engine.DefaultWeights()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("engine.depth", engine.DefaultDepth)
	v.SetDefault("engine.anchor", string(engine.AnchorPermanent))
	v.SetDefault("engine.weights.four", weights.Four)
	v.SetDefault("engine.weights.open_three", weights.OpenThree)
	v.SetDefault("engine.weights.three", weights.Three)
	v.SetDefault("engine.weights.open_two", weights.OpenTwo)
	v.SetDefault("engine.weights.half_open_two", weights.HalfOpenTwo)
	v.SetDefault("engine.log_search_stats", false)
	v.SetDefault("opponent.kind", string(opponent.KindMinimax))
	v.SetDefault("opponent.seed", 0)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.ping_interval", 30*time.Second)
	v.SetDefault("arena.matches", 20)
	v.SetDefault("arena.workers", 4)
	v.SetDefault("arena.opening_plies", 2)
	v.SetDefault("arena.elo_k", 24.0)
	v.SetDefault("arena.seed", 1)
}

func Default() Config {
	cfg, err := Load("")
	if err != nil {
		panic("default config is invalid: " + err.Error())
	}
	return cfg
}

// Load reads defaults, then the optional file at path, then GOMOKU_*
// environment overrides (GOMOKU_ENGINE_DEPTH for engine.depth).
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Engine.Depth < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.Engine.Depth)
	}
	if _, err := engine.ParseAnchorMode(c.Engine.Anchor); err != nil {
		return err
	}
	if _, err := opponent.ParseKind(c.Opponent.Kind); err != nil {
		return err
	}
	return nil
}

// EngineConfig converts the engine section into search settings.
func (c Config) EngineConfig() engine.Config {
	anchor, err := engine.ParseAnchorMode(c.Engine.Anchor)
	if err != nil {
		anchor = engine.AnchorPermanent
	}
	return engine.Config{
		Depth:          c.Engine.Depth,
		Anchor:         anchor,
		Weights:        c.Engine.Weights,
		LogSearchStats: c.Engine.LogSearchStats,
	}
}
