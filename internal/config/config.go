package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	RiotAPIKey     string
	RiotAPIRegion  string
	RiotRateLimit  int
	RiotRateWindow time.Duration
	HTTPAddr       string
	LogLevel       string
	DiscordToken   string
	DBHost         string
	DBPort         string
	DBUsername     string
	DBPassword     string
	DBDatabase     string
}

// Load reads the environment, optionally seeded from a .env file, and checks
// the variables every binary needs.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{
		RiotAPIKey:    os.Getenv("RIOT_API"),
		RiotAPIRegion: os.Getenv("RIOT_REGION"),
		HTTPAddr:      getOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:      getOrDefault("LOG_LEVEL", "info"),
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        getOrDefault("DB_PORT", "5432"),
		DBUsername:    os.Getenv("DB_USERNAME"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBDatabase:    os.Getenv("DB_DATABASE"),
	}

	limit, err := strconv.Atoi(getOrDefault("RIOT_RATE_LIMIT", "100"))
	if err != nil || limit < 1 {
		return nil, fmt.Errorf("RIOT_RATE_LIMIT must be a positive integer")
	}
	config.RiotRateLimit = limit

	window, err := time.ParseDuration(getOrDefault("RIOT_RATE_WINDOW", "2m"))
	if err != nil || window <= 0 {
		return nil, fmt.Errorf("RIOT_RATE_WINDOW must be a positive duration")
	}
	config.RiotRateWindow = window

	if err := config.validate(map[string]*string{
		"RIOT_API":    &config.RiotAPIKey,
		"RIOT_REGION": &config.RiotAPIRegion,
	}); err != nil {
		return nil, err
	}

	return config, nil
}

// RequireDiscord checks the variables needed by the Discord bot.
func (c *Config) RequireDiscord() error {
	return c.validate(map[string]*string{
		"DISCORD_TOKEN": &c.DiscordToken,
	})
}

// StorageEnabled reports whether a database was configured.
func (c *Config) StorageEnabled() bool {
	return c.DBHost != ""
}

// RequireStorage checks the database variables once DB_HOST is set.
func (c *Config) RequireStorage() error {
	return c.validate(map[string]*string{
		"DB_HOST":     &c.DBHost,
		"DB_PORT":     &c.DBPort,
		"DB_USERNAME": &c.DBUsername,
		"DB_DATABASE": &c.DBDatabase,
	})
}

// Logger builds the process logger at the configured level.
func (c *Config) Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func (c *Config) validate(requiredVars map[string]*string) error {
	var missingVars []string

	for envVar, value := range requiredVars {
		if *value == "" {
			missingVars = append(missingVars, envVar)
		}
	}

	if len(missingVars) > 0 {
		sort.Strings(missingVars)
		return fmt.Errorf("missing required environment variables: %v", missingVars)
	}

	return nil
}

func getOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
