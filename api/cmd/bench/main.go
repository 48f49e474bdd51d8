package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/bench"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/config"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/deepseek"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/gemini"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/openai"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/store"
)

// Порядок этапов стенда: от чистого вычисления к безцикловому конвейеру.
var strategyOrder = []string{"baseline", "llm_parse", "cached", "pattern", "loopless"}

func main() {
	cfg := config.Load()

	problemsPath := flag.String("problems", cfg.ProblemsPath, "path to the problem set")
	strategyName := flag.String("strategy", "all", "strategy to run: baseline, llm_parse, cached, pattern, loopless or all")
	outDir := flag.String("out", cfg.ResultsDir, "directory for JSON reports")
	iterations := flag.Int("iterations", 1, "passes over the problem set (>1 shows warmed cache)")
	engineName := flag.String("engine", "mock", "parse engine: mock, gemini, gpt, deepseek")
	cacheKind := flag.String("cache", "file", "structure cache backend for the cached strategy: file, pg or none")
	flag.Parse()

	problems, err := bench.LoadProblems(*problemsPath)
	if err != nil {
		log.Fatalf("load problems: %v", err)
	}
	log.Printf("[bench] loaded %d problems from %s", len(problems), *problemsPath)

	engines := &llm.Engines{
		Gemini:   gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI:   openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
		Deepseek: deepseek.New(cfg.DeepseekAPIKey, cfg.DeepseekModel),
		Mock:     &llm.Mock{Structures: bench.Structures(problems)},
	}
	eng, err := engines.GetEngine(*engineName)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	names := strategyOrder
	if *strategyName != "all" {
		names = []string{*strategyName}
	}

	ctx := context.Background()
	for _, name := range names {
		s, err := buildStrategy(ctx, name, *cacheKind, cfg, eng)
		if err != nil {
			log.Fatalf("strategy %s: %v", name, err)
		}

		runner := &bench.Runner{
			Strategy:   s,
			Problems:   problems,
			Iterations: *iterations,
		}
		if usesEngine(name) {
			runner.Engine = eng.Name()
		}

		report := runner.Run(ctx)
		printSummary(report)

		path := filepath.Join(*outDir, name+"_results.json")
		if err := report.Save(path); err != nil {
			log.Fatalf("save report: %v", err)
		}
		log.Printf("[bench] report saved to %s", path)
	}
}

func buildStrategy(ctx context.Context, name, cacheKind string, cfg *config.Config, eng llm.Engine) (bench.Strategy, error) {
	switch name {
	case "baseline":
		return bench.Baseline{}, nil
	case "llm_parse":
		return bench.LLMParse{Engine: eng}, nil
	case "cached":
		cache, err := buildCache(ctx, cacheKind, cfg, eng)
		if err != nil {
			return nil, err
		}
		return bench.Cached{Cache: cache, Engine: eng}, nil
	case "pattern":
		return bench.Pattern{}, nil
	case "loopless":
		return bench.Loopless{}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
}

func buildCache(ctx context.Context, kind string, cfg *config.Config, eng llm.Engine) (bench.Cache, error) {
	switch kind {
	case "none":
		return nil, nil
	case "file":
		c, err := store.NewStructureCache(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		return bench.FileCache{C: c}, nil
	case "pg":
		dsn := config.ResolveDSN()
		if dsn == "" {
			return nil, fmt.Errorf("cache=pg needs DATABASE_URL or POSTGRES_* env")
		}
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			return nil, err
		}
		if err := store.EnsureSchema(pingCtx, db); err != nil {
			return nil, err
		}
		return bench.RepoCache{
			Repo:   store.NewStructureRepo(db),
			Engine: eng.Name(),
			Model:  eng.GetModel(),
			MaxAge: cfg.StructureTTL,
		}, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", kind)
	}
}

func usesEngine(name string) bool {
	return name == "llm_parse" || name == "cached"
}

func printSummary(r *bench.Report) {
	line := strings.Repeat("=", 70)
	fmt.Println(line)
	fmt.Printf("Strategy: %s", r.Strategy)
	if r.Engine != "" {
		fmt.Printf(" (engine: %s)", r.Engine)
	}
	fmt.Println()

	s := r.Summary
	fmt.Printf("Accuracy: %d/%d (%.1f%%)\n", s.Correct, s.TotalRuns, s.AccuracyPct)
	fmt.Printf("Average time per problem: %.3fms\n", s.AvgMillis)

	if len(s.ByDifficulty) > 0 {
		fmt.Println("Accuracy by difficulty:")
		diffs := make([]string, 0, len(s.ByDifficulty))
		for d := range s.ByDifficulty {
			diffs = append(diffs, d)
		}
		sort.Strings(diffs)
		for _, d := range diffs {
			ds := s.ByDifficulty[d]
			fmt.Printf("  %-10s: %d/%d (%.1f%%)\n", d, ds.Correct, ds.Total, ds.AccuracyPct)
		}
	}

	for _, it := range r.Iterations {
		if it.CacheHits+it.CacheMisses > 0 {
			fmt.Printf("Iteration %d cache: %d hits, %d misses\n", it.Iteration, it.CacheHits, it.CacheMisses)
		}
	}
	fmt.Println(line)
}
