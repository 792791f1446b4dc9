package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ListenAddr string

	DatabaseURL       string
	DBMaxConns        int
	DBHealthCheckSecs int

	DataNewtonBaseURL string
	DataNewtonAPIKey  string
	RusProfileBaseURL string

	GeminiAPIKey       string
	AnalysisConfigPath string

	SyncWorkers int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		if _, err := fmt.Sscanf(v, "%d", &out); err == nil {
			return out
		}
	}
	return def
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists. Only the composition root calls this; core packages
// never read the environment themselves.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:                getenv("APP_ENV", "development"),
		ListenAddr:         getenv("LISTEN_ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DBMaxConns:         getenvInt("DB_MAX_CONNS", 10),
		DBHealthCheckSecs:  getenvInt("DB_HEALTHCHECK_SECS", 30),
		DataNewtonBaseURL:  getenv("DATANEWTON_BASE_URL", "https://api.datanewton.ru"),
		DataNewtonAPIKey:   os.Getenv("DATANEWTON_API_KEY"),
		RusProfileBaseURL:  getenv("RUSPROFILE_BASE_URL", "https://www.rusprofile.ru"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		AnalysisConfigPath: getenv("ANALYSIS_CONFIG", "config/analysis.yaml"),
		SyncWorkers:        getenvInt("SYNC_WORKERS", 0),
	}
	if cfg.DatabaseURL == "" {
		// Not fatal for early local runs; warn via error value so callers can decide.
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}
