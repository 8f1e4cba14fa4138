package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	DBPath      string           `json:"db_path"`
	JWTSecret   string           `json:"jwt_secret"`
	Port        int              `json:"port"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	CORSOrigins []string         `json:"cors_origins"`
	LogConfig   logger.LogConfig `json:"log_config"`
	AI          AIConfig         `json:"ai"`
	Retrieval   RetrievalConfig  `json:"retrieval"`
	// ChunkMaxChars is the fixed window width used when splitting
	// extracted document text.
	ChunkMaxChars int `json:"chunk_max_chars"`
}

type AIConfig struct {
	Provider string `json:"provider"`
	// Models is the ordered list of model variants; the answer
	// synthesizer uses the first variant that produces a result.
	Models          []string    `json:"models"`
	MaxOutputTokens int32       `json:"max_output_tokens"`
	Temperature     float32     `json:"temperature"`
	TimeoutSeconds  int         `json:"timeout_seconds"`
	Data            interface{} `json:"data"`
}

type RetrievalConfig struct {
	SearchLimit   uint `json:"search_limit"`
	FallbackLimit uint `json:"fallback_limit"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db_path is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}
	if len(cfg.AI.Models) == 0 {
		cfg.AI.Models = []string{
			"gemini-2.5-flash",
			"gemini-1.5-flash",
			"gemini-pro",
			"gemini-1.0-pro",
		}
	}
	if cfg.AI.MaxOutputTokens == 0 {
		cfg.AI.MaxOutputTokens = 800
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.2
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 30
	}
	if cfg.AI.Data == nil {
		// a provider without a credential still gets constructed; it
		// reports itself unconfigured and answers degrade to the
		// templated fallback
		cfg.AI.Data = map[string]interface{}{}
	}
	if cfg.Retrieval.SearchLimit == 0 {
		cfg.Retrieval.SearchLimit = 8
	}
	if cfg.Retrieval.FallbackLimit == 0 {
		cfg.Retrieval.FallbackLimit = 5
	}
	if cfg.ChunkMaxChars == 0 {
		cfg.ChunkMaxChars = 900
	}
	return &cfg, nil
}
