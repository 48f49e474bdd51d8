package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/config"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/handle"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/deepseek"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/gemini"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/openai"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/store"
)

func main() {
	cfg := config.Load()

	// --- Postgres (опционально: без БД API живёт без кэша структур и журнала) ---
	var db *sql.DB
	var structs *store.StructureRepo
	var logs *store.SolveLogRepo
	if dsn := config.ResolveDSN(); dsn != "" {
		var err error
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
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

		structs = store.NewStructureRepo(db)
		logs = store.NewSolveLogRepo(db)
		log.Printf("[api] db connected")
	} else {
		log.Printf("[api] no database configured, structure cache and solve log disabled")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("db: not ok"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	engines := &llm.Engines{
		Gemini:   gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI:   openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		Deepseek: deepseek.New(cfg.DeepseekAPIKey, cfg.DeepseekModel),
	}
	h := handle.New(engines, structs, logs)
	h.Timeout = cfg.LLMTimeout
	h.MaxAge = cfg.StructureTTL

	mux.HandleFunc("/v1/solve", h.Solve)
	mux.HandleFunc("/v1/llm/parse", h.Parse)

	addr := ":" + cfg.Port
	log.Printf("solver-api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
