package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	assert.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "preguntas.json", cfg.QuestionBankPath)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
		"guild_id": "guild_id",
		"canal_revision_id": "review_channel",
		"categoria_postulaciones_id": "category_id",
		"canal_resultados_id": "results_channel",
		"listen_addr": ":8080"
	}`), 0o644)
	assert.NoError(t, err)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "guild_id", cfg.GuildID)
	assert.Equal(t, "review_channel", cfg.ReviewChannelID)
	assert.Equal(t, "category_id", cfg.CategoryID)
	assert.Equal(t, "results_channel", cfg.ResultsChannelID)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GUILD_ID", "env_guild")
	t.Setenv("DB_DRIVER", "dynamodb")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	assert.NoError(t, err)
	assert.Equal(t, "env_guild", cfg.GuildID)
	assert.Equal(t, "dynamodb", cfg.DBDriver)
}

func TestSetReviewChannelID_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"guild_id": "guild_id"}`), 0o644)
	assert.NoError(t, err)

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.NoError(t, cfg.SetReviewChannelID("created_channel"))
	assert.NoError(t, cfg.SetCategoryID("created_category"))

	// A fresh load sees the discovered ids.
	again, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "created_channel", again.ReviewChannelID)
	assert.Equal(t, "created_category", again.CategoryID)
	assert.Equal(t, "guild_id", again.GuildID)
}
