package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/config"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/httpserver"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/deepseek"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/gemini"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/openai"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/store"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/telegram"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/util"
)

func main() {
	cfg := config.LoadBot()

	// --- Postgres (опционально: без БД бот живёт, просто без журнала) ---
	var db *sql.DB
	var solveLog *store.SolveLogRepo
	if dsn := config.ResolveDSN(); dsn != "" {
		var err error
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		// connection pool tune (нагрузка до ~20 rps)
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		if err := store.EnsureSchema(ctx, db); err != nil {
			log.Fatalf("store.EnsureSchema: %v", err)
		}
		cancel()
		log.Printf("db connected: %s", safeDSNSummary(dsn))

		solveLog = store.NewSolveLogRepo(db)
	} else {
		log.Printf("no database configured, solve log disabled")
	}

	// --- Telegram bot ---
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false

	// Движки предпросмотра разбора; решает всегда детерминированный конвейер
	engines := telegram.Engines{
		Gemini:   gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI:   openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		Deepseek: deepseek.New(cfg.DeepseekAPIKey, cfg.DeepseekModel),
	}

	// Менеджер движков (дефолт — Gemini)
	manager := llm.NewManager(engines.Gemini)

	r := &telegram.Router{
		Bot:           bot,
		EngManager:    manager,
		SolveLog:      solveLog,
		ParseTimeout:  cfg.LLMTimeout,
		GeminiModel:   cfg.GeminiModel,
		OpenAIModel:   cfg.OpenAIModel,
		DeepseekModel: cfg.DeepseekModel,
	}

	healthz := func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if db != nil {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}

	addr := "0.0.0.0:" + cfg.Port

	// --- Choose mode: TELEGRAM_MODE, иначе по наличию WEBHOOK_URL ---
	mode := cfg.TelegramMode
	webhookURL := strings.TrimSpace(cfg.WebhookURL)
	if mode == "" {
		mode = "polling"
		if webhookURL != "" {
			mode = "webhook"
		}
	}
	switch mode {
	case "webhook":
		if webhookURL == "" {
			log.Fatalf("TELEGRAM_MODE=webhook requires WEBHOOK_URL")
		}
		startWebhookMode(addr, bot, r, webhookURL, engines, healthz)
	case "polling":
		startPollingMode(addr, bot, r, engines, healthz)
	default:
		log.Fatalf("unknown TELEGRAM_MODE: %s", mode)
	}
}

// ---------------- Modes -----------------

func startWebhookMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string, engines telegram.Engines, healthz http.HandlerFunc) {
	// секретный путь вебхука
	path := "/webhook/" + util.ShortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal(err)
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.Fatal(err)
	}

	// tgbotapi.ListenForWebhook регистрирует обработчик на DefaultServeMux
	updates := bot.ListenForWebhook(path)

	go func() {
		for upd := range updates {
			r.HandleUpdate(upd, engines)
		}
		log.Printf("webhook updates channel closed")
	}()

	log.Printf("webhook listening on %s%s", addr, path)
	if err := httpserver.StartHTTP(addr, "math solver bot", healthz); err != nil {
		log.Fatal(err)
	}
}

func startPollingMode(addr string, bot *tgbotapi.BotAPI, r *telegram.Router, engines telegram.Engines, healthz http.HandlerFunc) {
	// HTTP server (healthz) — для polling не обязателен, но полезен платформе
	go func() {
		if err := httpserver.StartHTTP(addr, "math solver bot", healthz); err != nil {
			log.Fatal(err)
		}
	}()

	// Устойчивый поллинг с backoff без log.Fatal/os.Exit
	ctx := context.Background()
	runPolling(ctx, bot, func(upd tgbotapi.Update) {
		r.HandleUpdate(upd, engines)
	})
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") { // HTTP 429 от Telegram
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) {
		if ne.Timeout() {
			return 2 * time.Second
		}
	}
	return 1 * time.Second
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, handle func(tgbotapi.Update)) {
	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		select {
		case <-ctx.Done():
			log.Printf("polling: context cancelled")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling timeout (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			if d < baseDelay {
				d = baseDelay
			}
			if d > maxDelay {
				d = maxDelay
			}
			log.Printf("polling error: %v; retry in %v", err, d)
			time.Sleep(d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

// ---------------- Helpers -----------------

func safeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil {
		return "dsn: parse error"
	}
	user := u.User.Username()
	host := u.Host
	port := ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host, port = h, p
	}
	db := strings.TrimPrefix(u.Path, "/")
	if port == "" {
		return fmt.Sprintf("host=%s db=%s user=%s", host, db, user)
	}
	return fmt.Sprintf("host=%s port=%s db=%s user=%s", host, port, db, user)
}
