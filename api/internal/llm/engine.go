package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Engine — парсер текста задачи в ParsedStructure через LLM.
// Движок только извлекает структуру, весь счёт остаётся детерминированному ядру.
type Engine interface {
	Name() string
	GetModel() string
	Parse(ctx context.Context, in ParseInput) (ParsedStructure, error)
}

// Manager хранит выбранный движок по chatID.
type Manager struct {
	def     Engine
	engines sync.Map // chatID -> Engine
}

func NewManager(def Engine) *Manager {
	return &Manager{def: def}
}

func (m *Manager) Get(chatID int64) Engine {
	if e, ok := m.engines.Load(chatID); ok {
		return e.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.engines.Store(chatID, e)
}

// Engines — реестр настроенных движков.
type Engines struct {
	Gemini   Engine
	OpenAI   Engine
	Deepseek Engine
	Mock     Engine
}

// GetEngine возвращает движок по имени из запроса.
func (e *Engines) GetEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gemini":
		if e.Gemini == nil {
			return nil, fmt.Errorf("engine gemini is not configured")
		}
		return e.Gemini, nil
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, fmt.Errorf("engine gpt is not configured")
		}
		return e.OpenAI, nil
	case "deepseek":
		if e.Deepseek == nil {
			return nil, fmt.Errorf("engine deepseek is not configured")
		}
		return e.Deepseek, nil
	case "mock":
		if e.Mock == nil {
			return nil, fmt.Errorf("engine mock is not configured")
		}
		return e.Mock, nil
	default:
		return nil, fmt.Errorf("unknown engine: %s", name)
	}
}
