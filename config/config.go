package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Firebase   FirebaseConfig
	Redis      RedisConfig
	Survey     SurveyConfig
	Moderation ModerationConfig
	App        AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type FirebaseConfig struct {
	ProjectID       string
	CredentialsPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SurveyConfig centralizes the survey gate delays. Historically these were
// scattered constants that drifted between revisions; they are injected from
// here and nowhere else.
type SurveyConfig struct {
	// PostSurveyDelay is how long after the pre-survey's first visit the
	// per-company post-survey becomes due.
	PostSurveyDelay time.Duration
	// GlobalSurveyDelay is how long after the first company visit the
	// account-level post-survey becomes due.
	GlobalSurveyDelay time.Duration
}

type ModerationConfig struct {
	APIKey   string
	Endpoint string
	CacheTTL time.Duration
	// Requests per second allowed against the Perspective API.
	RateLimit float64

	// Per-attribute block thresholds. A submission is blocked only when a
	// score is strictly greater than its threshold.
	ToxicityThreshold       float64
	SevereToxicityThreshold float64
	IdentityAttackThreshold float64
	InsultThreshold         float64
	ProfanityThreshold      float64
	ThreatThreshold         float64
}

type AppConfig struct {
	Environment string
	Version     string
	FrontendURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitAndTrim(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		},
		Firebase: FirebaseConfig{
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Survey: SurveyConfig{
			PostSurveyDelay:   getEnvAsDuration("SURVEY_POST_DELAY", 168*time.Hour),
			GlobalSurveyDelay: getEnvAsDuration("SURVEY_GLOBAL_DELAY", 168*time.Hour),
		},
		Moderation: ModerationConfig{
			APIKey:                  getEnv("PERSPECTIVE_API_KEY", ""),
			Endpoint:                getEnv("PERSPECTIVE_ENDPOINT", "https://commentanalyzer.googleapis.com/v1alpha1/comments:analyze"),
			CacheTTL:                getEnvAsDuration("MODERATION_CACHE_TTL", 24*time.Hour),
			RateLimit:               getEnvAsFloat("MODERATION_RATE_LIMIT", 10),
			ToxicityThreshold:       getEnvAsFloat("MODERATION_TOXICITY_THRESHOLD", 0.8),
			SevereToxicityThreshold: getEnvAsFloat("MODERATION_SEVERE_TOXICITY_THRESHOLD", 0.7),
			IdentityAttackThreshold: getEnvAsFloat("MODERATION_IDENTITY_ATTACK_THRESHOLD", 0.7),
			InsultThreshold:         getEnvAsFloat("MODERATION_INSULT_THRESHOLD", 0.8),
			ProfanityThreshold:      getEnvAsFloat("MODERATION_PROFANITY_THRESHOLD", 0.8),
			ThreatThreshold:         getEnvAsFloat("MODERATION_THREAT_THRESHOLD", 0.7),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Firebase.ProjectID == "" && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID or FIREBASE_CREDENTIALS_PATH is required")
	}

	if c.Survey.PostSurveyDelay <= 0 || c.Survey.GlobalSurveyDelay <= 0 {
		return fmt.Errorf("survey delays must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
