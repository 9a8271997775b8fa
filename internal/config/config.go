// Package config loads the engine's configuration (spec §6): a key-value
// file plus equivalent environment variables. Grounded on
// C360Studio-semdragon and rgonzalez12-dbd-analytics, both of which call
// godotenv.Load before reading process environment, and on the
// louisbranch-fracturing.space manifest's use of caarlos0/env for typed
// env-var binding.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every recognized key from spec §6.
type Config struct {
	GenAIAPIKey   string `env:"GENAI_API_KEY"`
	LLMModel      string `env:"LLM_MODEL" envDefault:"gemini-2.0-flash"`
	LLMEmbedModel string `env:"LLM_EMBED_MODEL" envDefault:"gemini-embedding-001"`

	AutosaveInterval time.Duration `env:"AUTOSAVE_INTERVAL" envDefault:"2m"`
	AutosaveMoves    int           `env:"AUTOSAVE_MOVES" envDefault:"5"`

	SkillXPMultiplier           float64 `env:"SKILL_XP_MULTIPLIER" envDefault:"1.0"`
	SkillBaseLuckyChance        int     `env:"SKILL_BASE_LUCKY_CHANCE" envDefault:"15"`
	SkillEnableLuckyProgression bool    `env:"SKILL_ENABLE_LUCKY_PROGRESSION" envDefault:"true"`

	WorldSeed string `env:"WORLD_SEED"`

	SaveDir string `env:"SAVE_DIR" envDefault:"./saves"`
}

// HasLLM reports whether LLM-backed features should be enabled. Its
// absence forces fallback mode everywhere an LLM call would otherwise be
// made (spec §6).
func (c *Config) HasLLM() bool {
	return c.GenAIAPIKey != ""
}

// Load reads a .env file if present (missing file is not an error, mirroring
// godotenv's typical call pattern in the pack) and then binds the process
// environment onto a Config via struct tags.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		_ = godotenv.Load(dotenvPath) // best-effort; absence is not fatal
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
