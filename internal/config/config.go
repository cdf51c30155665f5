package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the configuration for the answer service
type Config struct {
	Server  ServerConfig
	Rows    RowsConfig
	Fetcher FetcherConfig
	Answer  AnswerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr      string
	StaticDir string
}

// RowsConfig points at the tabular knowledge base
type RowsConfig struct {
	XLSXPath string
	CSVPath  string
}

// FetcherConfig holds page fetcher configuration
type FetcherConfig struct {
	Mode              string // "http" or "browser"
	Timeout           time.Duration
	UserAgent         string
	EnableRobotsCheck bool
}

// AnswerConfig holds the routing and scoring tunables. The confidence
// threshold is a deployment parameter: values between 0.05 and 0.40 have
// all been used in practice depending on how curated the knowledge base is.
type AnswerConfig struct {
	MinConfidence      float64
	SummaryMaxLines    int
	SummaryMinChars    int
	ShortAbstractChars int
	TunablesFile       string
	WebSearchTimeout   time.Duration
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      GetStringEnv("SERVER_ADDR", ":8080"),
			StaticDir: GetStringEnv("SERVER_STATIC_DIR", "./web"),
		},
		Rows: RowsConfig{
			XLSXPath: GetStringEnv("ROWS_XLSX_PATH", "./data/knowledge.xlsx"),
			CSVPath:  GetStringEnv("ROWS_CSV_PATH", ""),
		},
		Fetcher: FetcherConfig{
			Mode:              GetStringEnv("FETCHER_MODE", "http"),
			Timeout:           GetDurationEnv("FETCHER_TIMEOUT", 25*time.Second),
			UserAgent:         GetStringEnv("FETCHER_USER_AGENT", "Chatbot-Answer-Agent/1.0"),
			EnableRobotsCheck: GetBoolEnv("FETCHER_ENABLE_ROBOTS_CHECK", true),
		},
		Answer: AnswerConfig{
			MinConfidence:      GetFloatEnv("ANSWER_MIN_CONFIDENCE", 0.15),
			SummaryMaxLines:    GetIntEnv("ANSWER_SUMMARY_MAX_LINES", 5),
			SummaryMinChars:    GetIntEnv("ANSWER_SUMMARY_MIN_CHARS", 40),
			ShortAbstractChars: GetIntEnv("ANSWER_SHORT_ABSTRACT_CHARS", 400),
			TunablesFile:       GetStringEnv("ANSWER_TUNABLES_FILE", ""),
			WebSearchTimeout:   GetDurationEnv("ANSWER_WEB_SEARCH_TIMEOUT", 15*time.Second),
		},
	}
}

func GetStringEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func GetFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func GetBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func GetDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
