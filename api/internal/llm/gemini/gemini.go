package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

// Parse извлекает структуру задачи. Возвращает строго JSON по словарю парсера.
func (e *Engine) Parse(ctx context.Context, in llm.ParseInput) (llm.ParsedStructure, error) {
	if e.APIKey == "" {
		return llm.ParsedStructure{}, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return llm.ParsedStructure{}, err
	}
	defer cl.Close()

	model := strings.TrimSpace(e.Model)
	if in.ModelOverride != "" {
		model = strings.TrimSpace(in.ModelOverride)
	}
	m := cl.GenerativeModel(model)
	if m == nil {
		return llm.ParsedStructure{}, fmt.Errorf("gemini: model is nil")
	}
	// Возвращаем строго JSON
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(llm.SystemPrompt)},
	}

	parts := []genai.Part{genai.Text(llm.BuildParsePrompt(in))}

	// Ретраи на случай 5xx/транзиентных сбоёв
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		resp, err := m.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt) * 300 * time.Millisecond)
			continue
		}
		txt := firstText(resp)
		if txt == "" {
			return llm.ParsedStructure{}, fmt.Errorf("gemini parse: empty response")
		}
		ps, err := llm.DecodeStructure(strings.TrimSpace(txt))
		if err != nil {
			return llm.ParsedStructure{}, fmt.Errorf("gemini parse: %w", err)
		}
		return ps, nil
	}
	return llm.ParsedStructure{}, lastErr
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
