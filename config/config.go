package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the menu bot needs at runtime.
type Config struct {
	Discord DiscordConfig `yaml:"discord"`
	Service ServiceConfig `yaml:"service"`
	Storage StorageConfig `yaml:"storage"`
}

// DiscordConfig holds Discord connection and routing settings.
type DiscordConfig struct {
	Token         string `yaml:"token"`
	GuildID       string `yaml:"guild_id"`
	AppID         string `yaml:"app_id"`
	AdminRoleID   string `yaml:"admin_role_id"`
	MenuChannelID string `yaml:"menu_channel_id"`
}

// ServiceConfig holds general service configuration.
type ServiceConfig struct {
	Name string `yaml:"name"`
	// HealthAddr is the listen address for the health endpoints. Empty
	// disables the health server.
	HealthAddr string `yaml:"health_addr"`
}

// StorageConfig holds menu persistence settings.
type StorageConfig struct {
	DSN string `yaml:"dsn"`
}

// LoadConfig loads the configuration from a YAML file, falling back to
// environment variables for anything the file does not provide.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		cfg := &Config{}
		return loadConfigFromEnv(cfg)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return loadConfigFromEnv(&cfg)
}

// loadConfigFromEnv fills in missing values from environment variables.
func loadConfigFromEnv(cfg *Config) (*Config, error) {
	if cfg.Discord.Token == "" {
		cfg.Discord.Token = os.Getenv("DISCORD_TOKEN")
		if cfg.Discord.Token == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN environment variable not set")
		}
	}
	if cfg.Service.Name == "" {
		cfg.Service.Name = os.Getenv("SERVICE_NAME")
		if cfg.Service.Name == "" {
			cfg.Service.Name = "discord-menu-bot"
		}
	}
	if cfg.Service.HealthAddr == "" {
		cfg.Service.HealthAddr = os.Getenv("HEALTH_ADDR")
	}
	if cfg.Discord.GuildID == "" {
		cfg.Discord.GuildID = os.Getenv("DISCORD_GUILD_ID")
	}
	if cfg.Discord.AppID == "" {
		cfg.Discord.AppID = os.Getenv("DISCORD_APP_ID")
	}
	if cfg.Discord.AdminRoleID == "" {
		cfg.Discord.AdminRoleID = os.Getenv("DISCORD_ADMIN_ROLE_ID")
	}
	if cfg.Discord.MenuChannelID == "" {
		cfg.Discord.MenuChannelID = os.Getenv("DISCORD_MENU_CHANNEL_ID")
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = os.Getenv("MENU_STORE_DSN")
		if cfg.Storage.DSN == "" {
			cfg.Storage.DSN = "menus.db"
		}
	}
	return cfg, nil
}

// GetGuildID returns the configured guild ID.
func (c *Config) GetGuildID() string {
	return c.Discord.GuildID
}
