package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirkdiggler/dungeonmaster/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "")
	t.Setenv("AUTOSAVE_INTERVAL", "")
	t.Setenv("AUTOSAVE_MOVES", "")

	cfg, err := config.Load("/nonexistent/.env")
	require.NoError(t, err)

	assert.False(t, cfg.HasLLM())
	assert.Equal(t, 2*time.Minute, cfg.AutosaveInterval)
	assert.Equal(t, 5, cfg.AutosaveMoves)
	assert.Equal(t, 15, cfg.SkillBaseLuckyChance)
	assert.True(t, cfg.SkillEnableLuckyProgression)
	assert.InDelta(t, 1.0, cfg.SkillXPMultiplier, 0.0001)
}

func TestHasLLMWithKey(t *testing.T) {
	t.Setenv("GENAI_API_KEY", "sk-test")
	cfg, err := config.Load("/nonexistent/.env")
	require.NoError(t, err)
	assert.True(t, cfg.HasLLM())
}
