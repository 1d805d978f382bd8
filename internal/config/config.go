// Package config handles rectindex configuration
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/kinchungwong/recttree"
)

type Config struct {
	ListInitialCapacity      int
	EachListToNodeThreshold  int
	TotalListToNodeThreshold int
	WindowSize               int    // pixels
	WindowStep               int    // pixels
	HashKind                 string // average, difference or perception
	LogLevel                 slog.Level
	LogJSON                  bool
}

func Load() *Config {
	return &Config{
		ListInitialCapacity:      getEnvInt("RECTTREE_LIST_CAPACITY", 4),
		EachListToNodeThreshold:  getEnvInt("RECTTREE_EACH_THRESHOLD", 16),
		TotalListToNodeThreshold: getEnvInt("RECTTREE_TOTAL_THRESHOLD", 64),
		WindowSize:               getEnvInt("FEATURE_WINDOW_SIZE", 16),
		WindowStep:               getEnvInt("FEATURE_WINDOW_STEP", 8),
		HashKind:                 strings.ToLower(getEnv("FEATURE_HASH_KIND", "average")),
		LogLevel:                 getEnvLevel("LOG_LEVEL", slog.LevelInfo),
		LogJSON:                  getEnvBool("LOG_JSON", false),
	}
}

// Settings returns the tree settings, validated.
func (c *Config) Settings() (recttree.Settings, error) {
	s := recttree.Settings{
		ListInitialCapacity:      c.ListInitialCapacity,
		EachListToNodeThreshold:  c.EachListToNodeThreshold,
		TotalListToNodeThreshold: c.TotalListToNodeThreshold,
	}
	if err := s.Validate(); err != nil {
		return recttree.Settings{}, err
	}
	return s, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true" || v == "1"
	}
	return def
}

func getEnvLevel(key string, def slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return def
}
