package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

type Config struct {
	ListenAddr       string          `json:"listen_addr"`
	EngineSeed       int64           `json:"engine_seed"`
	HeuristicsPath   string          `json:"heuristics_path,omitempty"`
	LogSuggestions   bool            `json:"log_suggestions"`
	MaxBoardSize     int             `json:"max_board_size"`
	MaxCachedEngines int             `json:"max_cached_engines"`
	Heuristics       HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	Five        float64 `json:"five"`
	OpenFour    float64 `json:"open_four"`
	ClosedFour  float64 `json:"closed_four"`
	OpenThree   float64 `json:"open_three"`
	ClosedThree float64 `json:"closed_three"`
	OpenTwo     float64 `json:"open_two"`
	ClosedTwo   float64 `json:"closed_two"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		// 0 seeds from the clock at engine construction.
		EngineSeed:       0,
		LogSuggestions:   true,
		MaxBoardSize:     64,
		MaxCachedEngines: 16,

		// five must stay above every non-winning score; see ThreatWeights.Validate.
		// Scaled up from 10000/1000/100/10 because a block plus run terms can
		// outscore a five of 10000.
		Heuristics: HeuristicConfig{
			Five:        1_000_000.0,
			OpenFour:    10_000.0,
			ClosedFour:  1_000.0,
			OpenThree:   1_000.0,
			ClosedThree: 100.0,
			OpenTwo:     100.0,
			ClosedTwo:   10.0,
		},
	}
}

// LoadConfig applies environment overrides and the optional heuristics file
// on top of DefaultConfig.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	cfg.ListenAddr = getenv("BACKEND_ADDR", cfg.ListenAddr)
	cfg.EngineSeed = getenvInt64("ENGINE_SEED", cfg.EngineSeed)
	cfg.MaxBoardSize = getenvInt("MAX_BOARD_SIZE", cfg.MaxBoardSize)
	cfg.HeuristicsPath = getenv("HEURISTICS_PATH", "")
	cfg.LogSuggestions = getenv("LOG_SUGGESTIONS", "true") != "false"
	if cfg.HeuristicsPath != "" {
		heuristics, err := readHeuristicFile(cfg.HeuristicsPath)
		if err != nil {
			return cfg, fmt.Errorf("load heuristics %s: %w", cfg.HeuristicsPath, err)
		}
		cfg.Heuristics = heuristics
	}
	if err := resolveThreatWeights(cfg).Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readHeuristicFile(path string) (HeuristicConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return HeuristicConfig{}, err
	}
	var heuristics HeuristicConfig
	if err := json.Unmarshal(raw, &heuristics); err != nil {
		return HeuristicConfig{}, err
	}
	return heuristics, nil
}

func NewConfigStore(config Config) *ConfigStore {
	return &ConfigStore{config: config}
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func getenvInt64(key string, fallback int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
