package config

import (
	"os"
	"strconv"

	"gorm.io/gorm"

	"github.com/factlens/factlens/src/web/data"
)

type Config struct {
	Port        string
	RedisURL    string
	JWTSecret   string
	APIKey      string // shared key exchanged for JWTs on /v1/auth/token
	TemplateDir string
	LLMProvider string // "openai" or "claude"
	OpenAIKey   string
	ClaudeKey   string

	FactCheckModel  string
	ExtractModel    string
	EnableWebSearch bool
	ClaimBusterKey  string
	GoogleAPIKey    string
	WhisperModel    string
	TopK            int
}

// Load reads configuration from the settings table with env fallbacks.
func Load(db *gorm.DB) Config {
	if db != nil {
		_ = data.LoadSettings(db)
	}

	cfg := Config{
		Port:            get("port", "PORT", "8080"),
		RedisURL:        get("redis_url", "REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:       get("jwt_secret", "JWT_SECRET", ""),
		APIKey:          get("api_key", "API_KEY", ""),
		TemplateDir:     get("template_dir", "TEMPLATE_DIR", "src/web/templates"),
		LLMProvider:     get("llm_provider", "LLM_PROVIDER", "openai"),
		OpenAIKey:       get("openai_api_key", "OPENAI_API_KEY", ""),
		ClaudeKey:       get("claude_api_key", "CLAUDE_API_KEY", ""),
		FactCheckModel:  get("factcheck_model", "FACTCHECK_MODEL", "gpt-5"),
		ExtractModel:    get("extract_model", "EXTRACT_MODEL", "gpt-4o"),
		ClaimBusterKey:  get("claimbuster_api_key", "CLAIMBUSTER_API_KEY", ""),
		GoogleAPIKey:    get("fact_check_api_key", "FACT_CHECK_API_KEY", ""),
		WhisperModel:    get("whisper_model", "WHISPER_MODEL", "tiny"),
		EnableWebSearch: get("enable_web_search", "ENABLE_WEB_SEARCH", "1") == "1",
	}

	topK, err := strconv.Atoi(get("claim_top_k", "CLAIM_TOP_K", "3"))
	if err != nil || topK <= 0 {
		topK = 3
	}
	cfg.TopK = topK
	return cfg
}

// get retrieves a setting with env fallback, then default.
func get(name, envKey, defaultValue string) string {
	val := data.GetSetting(name)
	if val == "" {
		val = os.Getenv(envKey)
	}
	if val == "" {
		val = defaultValue
	}
	return val
}
