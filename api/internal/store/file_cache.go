package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/util"
)

// StructureCache — дисковый кэш разобранных структур: одна задача,
// один JSON-файл. Разбор моделью делается один раз, дальше структура
// переиспользуется без обращения к LLM.
type StructureCache struct {
	dir    string
	hits   atomic.Int64
	misses atomic.Int64
}

func NewStructureCache(dir string) (*StructureCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &StructureCache{dir: dir}, nil
}

// CachedStructure — запись кэша вместе с исходной ценой разбора.
type CachedStructure struct {
	Structure llm.ParsedStructure
	CacheKey  string
	ParseTime time.Duration
}

type cacheEntry struct {
	CacheKey          string              `json:"cache_key"`
	ProblemID         string              `json:"problem_id"`
	Structure         llm.ParsedStructure `json:"structure"`
	OriginalParseTime float64             `json:"original_parse_time"`
	CachedAt          time.Time           `json:"cached_at"`
}

type cacheKeySource struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Problem  string `json:"problem"`
}

// Key — контентный ключ по id, тексту и категории задачи.
func (c *StructureCache) Key(problemID, problem, category string) string {
	b, _ := json.Marshal(cacheKeySource{Category: category, ID: problemID, Problem: problem})
	return util.ShortHash(string(b))
}

func (c *StructureCache) Get(problemID, problem, category string) (*CachedStructure, bool) {
	key := c.Key(problemID, problem, category)
	b, err := os.ReadFile(filepath.Join(c.dir, key+".json"))
	if err != nil {
		c.misses.Add(1)
		return nil, false
	}
	var entry cacheEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		// битый файл равнозначен промаху
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return &CachedStructure{
		Structure: entry.Structure,
		CacheKey:  key,
		ParseTime: time.Duration(entry.OriginalParseTime * float64(time.Second)),
	}, true
}

func (c *StructureCache) Put(problemID, problem, category string, ps llm.ParsedStructure, parseTime time.Duration) error {
	key := c.Key(problemID, problem, category)
	entry := cacheEntry{
		CacheKey:          key,
		ProblemID:         problemID,
		Structure:         ps,
		OriginalParseTime: parseTime.Seconds(),
		CachedAt:          time.Now(),
	}
	b, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key+".json"), b, 0o644)
}

// Clear удаляет все файлы кэша и сбрасывает счётчики.
func (c *StructureCache) Clear() error {
	matches, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	c.hits.Store(0)
	c.misses.Store(0)
	return nil
}

func (c *StructureCache) Hits() int64   { return c.hits.Load() }
func (c *StructureCache) Misses() int64 { return c.misses.Load() }
