package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// Supabase / identity provider
	SupabaseUrl       string
	SupabaseKey       string
	SupabaseJWTSecret string
	// AI providers (both optional; features degrade to fallbacks)
	OpenRouterAPIKey  string
	OpenRouterModel   string
	HuggingFaceAPIKey string
	HuggingFaceModel  string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Trailing slash stripped to prevent double slashes (e.g. .co//auth)
		SupabaseUrl:       strings.TrimRight(getEnv("SUPABASE_URL", ""), "/"),
		SupabaseKey:       getEnv("SUPABASE_KEY", getEnv("SUPABASE_ANON_KEY", "")),
		SupabaseJWTSecret: getEnv("SUPABASE_JWT_SECRET", getEnv("SUPABASE_JWT_KEY", "")),
		// AI providers
		OpenRouterAPIKey:  getEnv("OPENROUTER_API_KEY", ""),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "meta-llama/llama-3.1-8b-instruct"),
		HuggingFaceAPIKey: getEnv("HUGGINGFACE_API_KEY", ""),
		HuggingFaceModel:  getEnv("HUGGINGFACE_MODEL", "cardiffnlp/twitter-roberta-base-sentiment"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
	}

	if cfg.UseMockStore() {
		log.Println("WARNING: DATABASE_URL is missing or a placeholder. Using in-memory store.")
	}
	if cfg.UseMockIdentity() {
		log.Println("WARNING: SUPABASE_URL/SUPABASE_KEY not configured. Using mock identity provider.")
	}
	if cfg.OpenRouterAPIKey == "" {
		log.Println("WARNING: OPENROUTER_API_KEY not configured. Match analysis will use fallback scores.")
	}
	if cfg.HuggingFaceAPIKey == "" {
		log.Println("WARNING: HUGGINGFACE_API_KEY not configured. Mood notes will not be sentiment-tagged.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// UseMockStore reports whether repositories should run against the in-memory
// backend instead of Postgres.
func (c *Config) UseMockStore() bool {
	return c.DBUrl == "" || strings.Contains(c.DBUrl, "placeholder")
}

// UseMockIdentity reports whether the mock identity provider should be used
// instead of Supabase GoTrue.
func (c *Config) UseMockIdentity() bool {
	return c.SupabaseUrl == "" || c.SupabaseKey == "" || strings.Contains(c.SupabaseUrl, "placeholder")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
