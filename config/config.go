package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// Config is the typed process configuration. Channel ids are optional:
// resolution order is explicit id, then name lookup, then auto-create where
// the per-kind policy allows it (review channel yes, results channel no).
type Config struct {
	DiscordToken      string `mapstructure:"discord_token"`
	GuildID           string `mapstructure:"guild_id"`
	OAuthClientID     string `mapstructure:"oauth_client_id"`
	OAuthClientSecret string `mapstructure:"oauth_client_secret"`
	BaseURL           string `mapstructure:"base_url"`
	ListenAddr        string `mapstructure:"listen_addr"`

	CategoryID       string `mapstructure:"categoria_postulaciones_id"`
	ReviewChannelID  string `mapstructure:"canal_revision_id"`
	ResultsChannelID string `mapstructure:"canal_resultados_id"`

	QuestionBankPath string `mapstructure:"preguntas_path"`
	DBDriver         string `mapstructure:"db_driver"`
	DBPath           string `mapstructure:"db_path"`

	AcceptedImageURL string `mapstructure:"imagen_aceptado"`
	RejectedImageURL string `mapstructure:"imagen_rechazado"`

	v  *viper.Viper
	mu sync.Mutex
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("listen_addr", ":5000")
	v.SetDefault("preguntas_path", "preguntas.json")
	v.SetDefault("db_driver", "sqlite3")
	v.SetDefault("db_path", "./db/postulaciones.db")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv alone does not surface env-only keys through Unmarshal,
	// so every key is bound explicitly.
	for key, env := range map[string]string{
		"discord_token":       "DISCORD_TOKEN",
		"guild_id":            "GUILD_ID",
		"oauth_client_id":     "OAUTH_CLIENT_ID",
		"oauth_client_secret": "OAUTH_CLIENT_SECRET",
		"base_url":            "BASE_URL",
		"listen_addr":         "LISTEN_ADDR",
		"preguntas_path":      "PREGUNTAS_PATH",
		"db_driver":           "DB_DRIVER",
		"db_path":             "DB_PATH",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	// A missing config file is fine, everything can come from env.
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.v = v
	return &cfg, nil
}

// SetReviewChannelID persists a discovered or auto-created review channel id
// so later runs skip the name lookup.
func (c *Config) SetReviewChannelID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ReviewChannelID = id
	return c.save("canal_revision_id", id)
}

// SetCategoryID persists a discovered or auto-created category id.
func (c *Config) SetCategoryID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CategoryID = id
	return c.save("categoria_postulaciones_id", id)
}

func (c *Config) save(key, value string) error {
	c.v.Set(key, value)
	if err := c.v.WriteConfigAs(c.v.ConfigFileUsed()); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
