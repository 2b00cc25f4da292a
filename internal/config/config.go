package config

import (
	"log"

	"github.com/spf13/viper"
)

type FacebookConfig struct {
	AppID       string `mapstructure:"app_id"`
	AppSecret   string `mapstructure:"app_secret"`
	RedirectURI string `mapstructure:"redirect_uri"`
	GraphURL    string `mapstructure:"graph_url"`
}

type Config struct {
	DatabaseURL string         `mapstructure:"database_url"`
	ServerPort  string         `mapstructure:"server_port"`
	JWTSecret   string         `mapstructure:"jwt_secret"`
	CORSOrigin  string         `mapstructure:"cors_origin"`
	Facebook    FacebookConfig `mapstructure:"facebook"`
}

// Load reads the configuration from a YAML file and returns a Config instance.
func Load() *Config {
	v := viper.New()

	// Look for config in the current directory and ./config
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.AddConfigPath("./config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		log.Fatalf("Error unmarshalling config: %v", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}
	if config.CORSOrigin == "" {
		config.CORSOrigin = "http://localhost:3000"
	}
	if config.Facebook.GraphURL == "" {
		config.Facebook.GraphURL = "https://graph.facebook.com/v18.0"
	}
	if config.Facebook.RedirectURI == "" {
		config.Facebook.RedirectURI = "http://localhost:" + config.ServerPort + "/auth/facebook/callback"
	}

	if config.JWTSecret == "" {
		log.Fatal("JWT secret must be set in the config file")
	}

	return &config
}
