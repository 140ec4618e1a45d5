package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	Gemini GeminiConfig
	Upload UploadConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

// GeminiConfig carries provider credentials and model identifiers. These
// are required external configuration with no default values; Validate
// refuses to start without them.
type GeminiConfig struct {
	APIKey        string
	EmbedModel    string
	AnalysisModel string
	// LegacyAnalysisModel serves the plain-text fallback taken when
	// AnalysisModel rejects structured JSON output. Optional.
	LegacyAnalysisModel string
}

type UploadConfig struct {
	MaxFileSize int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Gemini: GeminiConfig{
			APIKey:              os.Getenv("GEMINI_API_KEY"),
			EmbedModel:          os.Getenv("GEMINI_EMBED_MODEL"),
			AnalysisModel:       os.Getenv("GEMINI_ANALYSIS_MODEL"),
			LegacyAnalysisModel: os.Getenv("GEMINI_LEGACY_ANALYSIS_MODEL"),
		},
		Upload: UploadConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// Validate fails fast on missing required configuration.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Gemini.EmbedModel == "" {
		return fmt.Errorf("GEMINI_EMBED_MODEL is required")
	}
	if c.Gemini.AnalysisModel == "" {
		return fmt.Errorf("GEMINI_ANALYSIS_MODEL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}
