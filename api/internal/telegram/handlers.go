package telegram

import (
	"context"
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// solveText гонит текст через конвейер. Успех — карточка ответа с кнопкой
// вывода; остановка — карточка гарда с кодом и причиной, без частичных
// рассуждений.
func (r *Router) solveText(chatID int64, text string) {
	start := time.Now()
	resp := solve.SolveProblem(solve.Record{Problem: text})
	elapsed := time.Since(start)

	if r.SolveLog != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.SolveLog.Insert(ctx, chatID, "bot", "loopless", "", "", resp, elapsed); err != nil {
			log.Printf("[bot] solve log insert: %v", err)
		}
		cancel()
	}

	if !resp.OK {
		derivations.Delete(chatID)
		r.send(chatID, guardCard(resp))
		return
	}

	derivations.Store(chatID, resp.Text)
	msg := tgbotapi.NewMessage(chatID, answerCard(resp))
	msg.ReplyMarkup = makeDerivationKeyboard()
	_, _ = r.Bot.Send(msg)
}

// parsePreview показывает, как выбранный LLM-движок разбирает задачу
// в структуру. Решение здесь не считается: это витрина парсера,
// конвейер от неё не зависит.
func (r *Router) parsePreview(chatID int64, text string, engines Engines) {
	eng := r.pickLLMEngine(chatID, engines)
	if eng == nil {
		r.send(chatID, "LLM-движок не настроен.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.parseTimeout())
	defer cancel()

	in := llm.ParseInput{ProblemID: fmt.Sprintf("chat_%d", chatID), Problem: text}

	start := time.Now()
	ps, err := eng.Parse(ctx, in)
	if err != nil {
		r.send(chatID, fmt.Sprintf("Ошибка разбора (%s): %v", eng.Name(), err))
		return
	}
	if err := llm.ValidateStructure(in, ps); err != nil {
		r.send(chatID, "⚠️ Структура отклонена валидатором: "+err.Error())
		return
	}

	msg := tgbotapi.NewMessage(chatID, structureCard(eng.Name(), eng.GetModel(), ps, time.Since(start)))
	msg.ParseMode = "Markdown"
	_, _ = r.Bot.Send(msg)
}
