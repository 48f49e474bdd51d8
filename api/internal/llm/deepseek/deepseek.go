package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
)

// Deepseek говорит по OpenAI-совместимому протоколу, меняется только адрес.
const endpoint = "https://api.deepseek.com/chat/completions"

type Engine struct {
	APIKey string
	Model  string
	httpc  *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: key,
		Model:  model,
		httpc:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "deepseek" }

func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Parse(ctx context.Context, in llm.ParseInput) (llm.ParsedStructure, error) {
	if e.APIKey == "" {
		return llm.ParsedStructure{}, fmt.Errorf("DEEPSEEK_API_KEY is empty")
	}
	model := e.Model
	if in.ModelOverride != "" {
		model = in.ModelOverride
	}

	body := map[string]any{
		"model": model,
		"messages": []any{
			map[string]any{"role": "system", "content": llm.SystemPrompt},
			map[string]any{"role": "user", "content": llm.BuildParsePrompt(in)},
		},
		"temperature":     0,
		"response_format": map[string]any{"type": "json_object"},
	}
	payload, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return llm.ParsedStructure{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return llm.ParsedStructure{}, fmt.Errorf("deepseek parse %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return llm.ParsedStructure{}, err
	}
	if len(raw.Choices) == 0 {
		return llm.ParsedStructure{}, fmt.Errorf("deepseek parse: empty response")
	}

	ps, err := llm.DecodeStructure(strings.TrimSpace(raw.Choices[0].Message.Content))
	if err != nil {
		return llm.ParsedStructure{}, fmt.Errorf("deepseek parse: %w", err)
	}
	return ps, nil
}
