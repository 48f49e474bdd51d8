package handle

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/util"
)

type ParseRequest struct {
	LLMName string `json:"llm_name"`
	llm.ParseInput
}

type ParseResponse struct {
	Structure llm.ParsedStructure `json:"structure"`
	Engine    string              `json:"engine"`
	Model     string              `json:"model"`
	Cached    bool                `json:"cached"`
	ParseMS   int64               `json:"parse_ms"`
}

// Parse — разбор текста задачи выбранным движком в структуру решателя.
// Валидатор отбраковывает попытки модели посчитать ответ самой.
func (h *Handle) Parse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Problem) == "" {
		http.Error(w, "empty problem", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.parseTimeout())
	defer cancel()

	engine, err := h.engs.GetEngine(req.LLMName)
	if err != nil {
		http.Error(w, "parse error: "+err.Error(), http.StatusBadGateway)
		return
	}
	model := engine.GetModel()
	if req.ModelOverride != "" {
		model = req.ModelOverride
	}
	hash := util.ShortHash(req.Problem)

	if h.structs != nil {
		if row, err := h.structs.FindByHash(ctx, hash, engine.Name(), model, h.structureMaxAge()); err == nil && row.Valid {
			writeJSON(w, http.StatusOK, ParseResponse{
				Structure: row.Structure,
				Engine:    row.Engine,
				Model:     row.Model,
				Cached:    true,
				ParseMS:   row.ParseMS,
			})
			return
		}
	}

	start := time.Now()
	ps, err := engine.Parse(ctx, req.ParseInput)
	if err != nil {
		http.Error(w, "parse error: "+err.Error(), http.StatusBadGateway)
		return
	}
	parseMS := time.Since(start).Milliseconds()

	validErr := llm.ValidateStructure(req.ParseInput, ps)
	if h.structs != nil {
		reason := ""
		if validErr != nil {
			reason = validErr.Error()
		}
		if err := h.structs.Upsert(ctx, 0, req.ProblemID, req.Category, hash, engine.Name(), model,
			ps, validErr == nil, reason, parseMS); err != nil {
			log.Printf("[api] structure upsert: %v", err)
		}
	}
	if validErr != nil {
		http.Error(w, "invalid structure: "+validErr.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{
		Structure: ps,
		Engine:    engine.Name(),
		Model:     model,
		ParseMS:   parseMS,
	})
}
