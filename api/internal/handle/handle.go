package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/store"
)

type Handle struct {
	engs *llm.Engines

	// Репозитории опциональны: без БД API работает, просто без кэша и журнала.
	structs *store.StructureRepo
	logs    *store.SolveLogRepo

	// Дедлайн разбора и срок годности кэша; нули — значения по умолчанию.
	Timeout time.Duration
	MaxAge  time.Duration
}

func New(engs *llm.Engines, structs *store.StructureRepo, logs *store.SolveLogRepo) *Handle {
	return &Handle{
		engs:    engs,
		structs: structs,
		logs:    logs,
	}
}

func (h *Handle) parseTimeout() time.Duration {
	if h.Timeout > 0 {
		return h.Timeout
	}
	return 180 * time.Second
}

func (h *Handle) structureMaxAge() time.Duration {
	if h.MaxAge > 0 {
		return h.MaxAge
	}
	return 30 * 24 * time.Hour
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
