package handle

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// Solve — детерминированный конвейер целиком: гейт, извлечение, счёт,
// проверка, объяснение. Остановка гардом это тоже ответ 200, вся
// диагностика лежит в теле.
func (h *Handle) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var rec solve.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	resp := solve.SolveProblem(rec)

	if h.logs != nil {
		if err := h.logs.Insert(r.Context(), 0, "api", "loopless", "", "", resp, time.Since(start)); err != nil {
			log.Printf("[api] solve log insert: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
