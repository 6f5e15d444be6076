package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string // Optional: read-only mirror of published CMS documents
	CORSOrigins string
	TablePrefix string
	// TrustProxy takes the client IP from X-Forwarded-For (behind a reverse proxy)
	TrustProxy bool
	// Server-wide token bucket for the trust API
	APIRequestsPerSecond int
	APIBurst             int
	// Logging
	LogDir      string // Empty disables file logging
	LogMaxFiles int
	// Trust policy
	TrustPolicyFile string
	Policy          TrustPolicy
	// Debug turns on debug-level logging (see NewLogger)
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	tablePrefix := getTablePrefix(env)

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		Environment:          env,
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		CORSOrigins:          getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix:          tablePrefix,
		TrustProxy:           getEnv("TRUST_PROXY", "false") == "true",
		APIRequestsPerSecond: getEnvInt("API_RPS", DefaultAPIRequestsPerSecond),
		APIBurst:             getEnvInt("API_BURST", DefaultAPIBurst),
		LogDir:               getEnv("LOG_DIR", ""),
		LogMaxFiles:          getEnvInt("LOG_MAX_FILES", DefaultLogMaxFiles),
		TrustPolicyFile:      getEnv("TRUST_POLICY_FILE", ""),
		Policy:               policyFromEnv(),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// policyFromEnv builds the trust policy from defaults plus environment overrides.
// A policy file, when configured, replaces this (see LoadTrustPolicy).
func policyFromEnv() TrustPolicy {
	p := DefaultTrustPolicy()
	if hosts := getEnv("TRUST_IMAGE_HOSTS", ""); hosts != "" {
		p.ImageHosts = splitList(hosts)
	}
	p.FileHost = getEnv("TRUST_FILE_HOST", p.FileHost)
	p.ProjectID = getEnv("CMS_PROJECT_ID", p.ProjectID)
	p.Dataset = getEnv("CMS_DATASET", p.Dataset)
	p.RateLimit.MaxAttempts = getEnvInt("RATE_LIMIT_MAX_ATTEMPTS", p.RateLimit.MaxAttempts)
	p.RateLimit.WindowMs = int64(getEnvInt("RATE_LIMIT_WINDOW_MS", int(p.RateLimit.WindowMs)))
	return p
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return n
}
