package bench

import (
	"context"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/store"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/util"
)

// Cache — источник готовых структур для стратегии cached.
// Бэкенды: локальный файловый каталог и Postgres-репозиторий.
type Cache interface {
	Lookup(ctx context.Context, p Problem) (llm.ParsedStructure, bool)
	Store(ctx context.Context, p Problem, ps llm.ParsedStructure, parseTime time.Duration) error
}

// FileCache адаптирует файловый кэш структур под стратегию.
type FileCache struct {
	C *store.StructureCache
}

func (f FileCache) Lookup(_ context.Context, p Problem) (llm.ParsedStructure, bool) {
	hit, ok := f.C.Get(p.ID, p.Problem, p.Category)
	if !ok {
		return llm.ParsedStructure{}, false
	}
	return hit.Structure, true
}

func (f FileCache) Store(_ context.Context, p Problem, ps llm.ParsedStructure, parseTime time.Duration) error {
	return f.C.Put(p.ID, p.Problem, p.Category, ps, parseTime)
}

// RepoCache держит структуры в Postgres. Ключ от текста задачи тот же,
// что у /v1/llm/parse, так что строки у API и стенда общие.
type RepoCache struct {
	Repo   *store.StructureRepo
	Engine string
	Model  string
	MaxAge time.Duration
}

func (r RepoCache) Lookup(ctx context.Context, p Problem) (llm.ParsedStructure, bool) {
	row, err := r.Repo.FindByHash(ctx, util.ShortHash(p.Problem), r.Engine, r.Model, r.MaxAge)
	if err != nil || !row.Valid {
		return llm.ParsedStructure{}, false
	}
	return row.Structure, true
}

func (r RepoCache) Store(ctx context.Context, p Problem, ps llm.ParsedStructure, parseTime time.Duration) error {
	return r.Repo.Upsert(ctx, 0, p.ID, p.Category, util.ShortHash(p.Problem),
		r.Engine, r.Model, ps, true, "", parseTime.Milliseconds())
}

// Cached — разбор моделью ровно один раз на задачу: промах идёт через
// движок и записывается в кэш, попадание минует LLM целиком.
// Нулевой Cache вырождает стратегию в llm_parse с вечными промахами.
type Cached struct {
	Cache  Cache
	Engine llm.Engine
}

func (s Cached) Name() string { return "cached" }

func (s Cached) Solve(ctx context.Context, p Problem) Result {
	start := time.Now()
	r := newResult(p)

	var ps llm.ParsedStructure
	hit := false
	if s.Cache != nil {
		ps, hit = s.Cache.Lookup(ctx, p)
	}
	if hit {
		r.CacheStatus = "HIT"
	} else {
		r.CacheStatus = "MISS"
		in := llm.ParseInput{ProblemID: p.ID, Problem: p.Problem, Category: p.Category}

		parseStart := time.Now()
		parsed, err := s.Engine.Parse(ctx, in)
		parseTime := time.Since(parseStart)
		r.ParseSeconds = parseTime.Seconds()
		if err != nil {
			return r.failed(start, err)
		}
		if err := llm.ValidateStructure(in, parsed); err != nil {
			return r.failed(start, err)
		}
		// Кэшируем только прошедшее валидацию, иначе мусор переживёт движок.
		if s.Cache != nil {
			if err := s.Cache.Store(ctx, p, parsed, parseTime); err != nil {
				return r.failed(start, err)
			}
		}
		ps = parsed
	}

	ex, err := llm.ToExtracted(ps)
	if err != nil {
		return r.failed(start, err)
	}

	computeStart := time.Now()
	ans, err := solve.Solve(ex)
	if err != nil {
		return r.failed(start, err)
	}
	r.ComputeSeconds = time.Since(computeStart).Seconds()

	return r.scored(start, ans.Format(), p.Answer)
}
