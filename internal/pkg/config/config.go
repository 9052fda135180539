package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	// Retry tuning for transient Gemini failures.
	MaxAttempts    int
	BackoffBase    time.Duration
	BackoffJitter  time.Duration
	ResponseCache  time.Duration
	CacheSweep     time.Duration
	RequestTimeout time.Duration
}

type MapConfig struct {
	// Starting view before the first transition.
	DefaultName string
	DefaultLat  float64
	DefaultLng  float64
	// OverviewZoom is the session-start zoom; FocusZoom is applied on every
	// location transition.
	OverviewZoom float64
	FocusZoom    float64
	TileStyle    string
}

type ExplorerConfig struct {
	QuestionCount  int
	GalleryLimit   int
	SeenHistoryMax int
}

type Config struct {
	ServerPort string
	Gemini     GeminiConfig
	Map        MapConfig
	Explorer   ExplorerConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnvOrDefault("SERVER_PORT", "8094"),
		Gemini: GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
			Temperature:    0.5,
			MaxAttempts:    getEnvIntOrDefault("GEMINI_MAX_ATTEMPTS", 4),
			BackoffBase:    250 * time.Millisecond,
			BackoffJitter:  150 * time.Millisecond,
			ResponseCache:  15 * time.Minute,
			CacheSweep:     5 * time.Minute,
			RequestTimeout: 45 * time.Second,
		},
		Map: MapConfig{
			DefaultName:  getEnvOrDefault("MAP_DEFAULT_NAME", "Lisbon"),
			DefaultLat:   getEnvFloatOrDefault("MAP_DEFAULT_LAT", 38.7223),
			DefaultLng:   getEnvFloatOrDefault("MAP_DEFAULT_LNG", -9.1393),
			OverviewZoom: getEnvFloatOrDefault("MAP_OVERVIEW_ZOOM", 2.5),
			FocusZoom:    getEnvFloatOrDefault("MAP_FOCUS_ZOOM", 11),
			TileStyle:    getEnvOrDefault("MAP_TILE_STYLE", "satellite"),
		},
		Explorer: ExplorerConfig{
			QuestionCount:  getEnvIntOrDefault("EXPLORER_QUESTION_COUNT", 4),
			GalleryLimit:   getEnvIntOrDefault("EXPLORER_GALLERY_LIMIT", 4),
			SeenHistoryMax: 20,
		},
	}

	if cfg.Gemini.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
