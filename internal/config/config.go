package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	MongoDB     MongoDBConfig
	Feed        FeedConfig
	Leaderboard LeaderboardConfig
	Countdown   CountdownConfig
	LogLevel    string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// FeedConfig describes where leaderboard entries are fetched from.
// Source is either "http" (URL is an endpoint returning a JSON array)
// or "file" (Path is a static JSON file on disk).
type FeedConfig struct {
	Source string
	URL    string
	Path   string
}

// LeaderboardConfig holds ranking-specific configuration
type LeaderboardConfig struct {
	// RankingKey selects the field entries are sorted by: "wager" or "level"
	RankingKey string
}

// CountdownConfig holds reset-countdown configuration
type CountdownConfig struct {
	// Policy selects how the reset target is resolved:
	// "monthly", "rolling" or "external"
	Policy   string
	Timezone string
	// ZoneLabel is the suffix appended to the full-format countdown string
	ZoneLabel string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Unmarshal configuration
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "luckyorbit-leaderboard")
	viper.SetDefault("Feed.Source", "http")
	viper.SetDefault("Feed.URL", "http://localhost:8080/leaderboard.json")
	viper.SetDefault("Feed.Path", "./data/leaderboard.json")
	viper.SetDefault("Leaderboard.RankingKey", "wager")
	viper.SetDefault("Countdown.Policy", "monthly")
	viper.SetDefault("Countdown.Timezone", "America/Los_Angeles")
	viper.SetDefault("Countdown.ZoneLabel", "PST")
	viper.SetDefault("LogLevel", "info")
}
