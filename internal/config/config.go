package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the Hard Hat backend
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// CORSConfig holds the allowed-origin list for browser clients
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AnthropicConfig holds upstream model provider configuration
type AnthropicConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	VisionModel string `mapstructure:"vision_model"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("HARDHAT")
	v.AutomaticEnv()
	// The provider key is conventionally supplied as ANTHROPIC_API_KEY.
	_ = v.BindEnv("anthropic.api_key", "HARDHAT_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("cors.allow_origins", []string{"*"})

	v.SetDefault("anthropic.api_key", "")
	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("anthropic.vision_model", "claude-3-opus-20240229")
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
