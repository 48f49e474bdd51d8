package telegram

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/store"
)

// Кнопка показа вывода под карточкой ответа
func makeDerivationKeyboard() tgbotapi.InlineKeyboardMarkup {
	btn := tgbotapi.NewInlineKeyboardButtonData("Показать вывод", "show_derivation")
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(btn),
	)
}

func answerCard(resp solve.Response) string {
	var b strings.Builder
	b.WriteString("✅ Ответ: ")
	if resp.Answer != nil {
		b.WriteString(*resp.Answer)
	}
	b.WriteString("\nМаршрут: ")
	b.WriteString(string(resp.Route))
	return b.String()
}

func guardCard(resp solve.Response) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🛑 Конвейер остановлен: %s\n", resp.GuardCode)
	fmt.Fprintf(&b, "Маршрут: %s\n", resp.Route)
	if resp.Reason != "" {
		b.WriteString("Причина: ")
		b.WriteString(resp.Reason)
	}
	return strings.TrimRight(b.String(), "\n")
}

func structureCard(engine, model string, ps llm.ParsedStructure, elapsed time.Duration) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔬 *Разбор (%s, %s, %d мс):*\n", esc(engine), esc(model), elapsed.Milliseconds())
	fmt.Fprintf(&b, "Тип: `%s`\n", ps.ProblemType)
	b.WriteString("Переменные:\n```\n")
	for _, name := range ps.Variables.Names() {
		v, _ := ps.Variables.Get(name)
		fmt.Fprintf(&b, "%s = %v\n", name, v)
	}
	if ps.Variables.Coefficients != nil {
		fmt.Fprintf(&b, "coefficients = %v\n", ps.Variables.Coefficients)
	}
	b.WriteString("```\n")
	fmt.Fprintf(&b, "Стратегия: %s", esc(ps.Strategy))
	return b.String()
}

func recentCard(entries []store.LogEntry) string {
	var b strings.Builder
	b.WriteString("Последние прогоны:\n")
	for _, e := range entries {
		mark := "🛑"
		detail := e.GuardCode
		if e.OK {
			mark = "✅"
			detail = e.Answer
		}
		fmt.Fprintf(&b, "%s %s  %s → %s\n", mark, e.CreatedAt.Format("02.01 15:04"), e.Route, detail)
	}
	return strings.TrimRight(b.String(), "\n")
}

func statsCard(s store.Stats) string {
	return fmt.Sprintf("За сутки: всего %d, решено %d, остановлено %d", s.Total, s.Solved, s.Halted)
}

// лёгкое экранирование для Markdown
func esc(s string) string {
	s = strings.ReplaceAll(s, "`", "'")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "[", "\\[")
	return s
}
