package config

import (
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	TelegramBotToken string
	TelegramMode     string // polling | webhook; пусто — выбрать по WEBHOOK_URL
	WebhookURL       string

	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIModel    string
	DeepseekAPIKey string
	DeepseekModel  string

	// Дедлайн обращения к LLM и срок годности кэшированных структур.
	LLMTimeout   time.Duration
	StructureTTL time.Duration

	CacheDir     string
	ProblemsPath string
	ResultsDir   string
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("missing required env %s", k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, unit, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("ignoring %s=%q: positive integer expected", k, v)
		return def
	}
	return time.Duration(n) * unit
}

// Load читает конфигурацию без обязательных полей: ключи LLM проверяются
// на месте вызова движка, а детерминированный решатель работает и без них.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramMode:     strings.ToLower(strings.TrimSpace(os.Getenv("TELEGRAM_MODE"))),
		WebhookURL:       os.Getenv("WEBHOOK_URL"),

		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		DeepseekAPIKey: os.Getenv("DEEPSEEK_API_KEY"),
		DeepseekModel:  getEnv("DEEPSEEK_MODEL", "deepseek-chat"),

		LLMTimeout:   envDuration("LLM_TIMEOUT_SECONDS", time.Second, 180*time.Second),
		StructureTTL: envDuration("STRUCTURE_CACHE_TTL_HOURS", time.Hour, 30*24*time.Hour),

		CacheDir:     getEnv("CACHE_DIR", ".cache/structures"),
		ProblemsPath: getEnv("PROBLEMS_PATH", "data/test_problems.json"),
		ResultsDir:   getEnv("RESULTS_DIR", "results"),
	}
}

// LoadBot — как Load, но без телеграм-токена боту не жить.
func LoadBot() *Config {
	cfg := Load()
	cfg.TelegramBotToken = mustEnv("TELEGRAM_BOT_TOKEN")
	return cfg
}

// ResolveDSN собирает строку подключения к Postgres: приоритет у DATABASE_URL,
// иначе DSN строится из POSTGRES_* / PG*-переменных. Пустая строка — БД не настроена.
func ResolveDSN() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	if pass == "" {
		return ""
	}
	user := getEnv("POSTGRES_USER", "solver")
	host := getEnv("PGHOST", "db")
	port := getEnv("PGPORT", "5432")
	db := getEnv("POSTGRES_DB", "solver")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + db,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}
