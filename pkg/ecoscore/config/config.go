package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/verdeloop/ecoscore/pkg/ecoscore/internalerr"
	"github.com/verdeloop/ecoscore/pkg/ecoscore/score"
)

// Config is the service configuration, loaded once at startup.
type Config struct {
	Server    ServerConfig  `yaml:"server"`
	Store     StoreConfig   `yaml:"store"`
	Scoring   ScoringConfig `yaml:"scoring"`
	Lexicon   string        `yaml:"lexicon"`   // optional YAML lexicon path
	Stopwords string        `yaml:"stopwords"` // optional YAML stopword path
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StoreConfig selects the persistence backend. An empty path means the
// in-memory store (ephemeral runs and tests).
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ScoringConfig selects a policy preset and allows overriding its
// tunables. Zero-valued overrides keep the preset's value.
type ScoringConfig struct {
	Mode          string              `yaml:"mode"` // "contextual" (default) or "legacy"
	MinPoints     int                 `yaml:"min_points"`
	MaxPoints     int                 `yaml:"max_points"`
	DetailBonuses []score.DetailBonus `yaml:"detail_bonuses"`
	CategoryBonus map[string]int      `yaml:"category_bonus"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{Host: "0.0.0.0", Port: 8080},
	}
}

// Load reads a YAML configuration file. An empty path yields Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Scoring.Mode {
	case "", string(score.ModeContextual), string(score.ModeLegacy):
	default:
		return fmt.Errorf("%w: scoring mode %q", internalerr.ErrInvalidConfig, c.Scoring.Mode)
	}
	if c.Scoring.MinPoints < 0 || (c.Scoring.MaxPoints > 0 && c.Scoring.MaxPoints < c.Scoring.MinPoints) {
		return fmt.Errorf("%w: clamp bounds [%d, %d]", internalerr.ErrInvalidConfig, c.Scoring.MinPoints, c.Scoring.MaxPoints)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d", internalerr.ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

// Policy materializes the scoring policy: preset by mode, then explicit
// overrides applied on top.
func (c Config) Policy() score.Policy {
	p := score.DefaultPolicy()
	if c.Scoring.Mode == string(score.ModeLegacy) {
		p = score.LegacyPolicy()
	}
	if c.Scoring.MinPoints > 0 {
		p.MinPoints = c.Scoring.MinPoints
	}
	if c.Scoring.MaxPoints > 0 {
		p.MaxPoints = c.Scoring.MaxPoints
	}
	if len(c.Scoring.DetailBonuses) > 0 {
		p.DetailBonuses = c.Scoring.DetailBonuses
	}
	if len(c.Scoring.CategoryBonus) > 0 {
		p.CategoryBonus = c.Scoring.CategoryBonus
	}
	return p
}

// Stoplist is the stopword list file format.
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStopwords loads stopwords from a YAML file.
func LoadStopwords(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return sl.Terms, nil
}
