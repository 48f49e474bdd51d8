package telegram

import (
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/deepseek"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/gemini"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm/openai"
)

// Engines — сконфигурированные движки разбора. Конкретные типы, а не
// интерфейсы: команда /engine переключает модель прямо на инстансе.
type Engines struct {
	Gemini   *gemini.Engine
	OpenAI   *openai.Engine
	Deepseek *deepseek.Engine
}

// pickLLMEngine — движок для предпросмотра разбора: выбранный чатом,
// иначе Gemini, иначе OpenAI.
func (r *Router) pickLLMEngine(chatID int64, engines Engines) llm.Engine {
	if e := r.EngManager.Get(chatID); e != nil {
		return e
	}
	if engines.Gemini != nil {
		return engines.Gemini
	}
	if engines.OpenAI != nil {
		return engines.OpenAI
	}
	return nil
}
