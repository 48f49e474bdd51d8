package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/llm"
	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/store"
)

type Router struct {
	Bot        *tgbotapi.BotAPI
	EngManager *llm.Manager

	// Журнал решений; nil — БД не настроена, бот работает без журнала.
	SolveLog *store.SolveLogRepo

	// Дедлайн предпросмотра разбора; ноль — значение по умолчанию.
	ParseTimeout time.Duration

	// Defaults / display models
	GeminiModel   string
	OpenAIModel   string
	DeepseekModel string
}

func (r *Router) parseTimeout() time.Duration {
	if r.ParseTimeout > 0 {
		return r.ParseTimeout
	}
	return 90 * time.Second
}

func (r *Router) HandleUpdate(upd tgbotapi.Update, engines Engines) {
	// callback-кнопки
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		if strings.HasPrefix(upd.Message.Text, "/engine") {
			r.handleEngineCommand(cid, upd.Message.Text, engines)
			return
		}
		r.HandleCommand(upd, engines)
		return
	}

	text := strings.TrimSpace(upd.Message.Text)
	if text == "" {
		return
	}

	// если ждём текст после /parse — сообщение уходит в предпросмотр разбора
	if getMode(cid) == modeAwaitParse {
		clearMode(cid)
		r.parsePreview(cid, text, engines)
		return
	}

	r.solveText(cid, text)
}

func (r *Router) HandleCommand(upd tgbotapi.Update, engines Engines) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Пришли текст задачи — решу детерминированным конвейером и покажу вывод.\n"+
			"Понимаю шесть типов: комитеты, (x+y)², сумма делителей, касательная к окружности, сумма на костях, экстремумы кубической.\n"+
			"Команды: /help, /health, /engine, /parse, /recent, /stats")
	case "help":
		r.send(cid, "Просто пришли условие задачи текстом.\n"+
			"Если конвейер не доверяет входу или не может извлечь данные — он честно остановится с кодом, угадывать не будет.\n\n"+
			"/engine — показать или сменить LLM-движок предпросмотра\n"+
			"/parse [текст] — показать, как LLM разбирает задачу в структуру (без решения)\n"+
			"/recent — последние прогоны этого чата\n"+
			"/stats — сводка журнала за сутки\n"+
			"/health — проверка живости")
	case "health":
		r.send(cid, "✅ OK")
	case "parse":
		args := strings.TrimSpace(upd.Message.CommandArguments())
		if args == "" {
			setMode(cid, modeAwaitParse)
			r.send(cid, "Пришлите текст задачи следующим сообщением — покажу извлечённую структуру.")
			return
		}
		r.parsePreview(cid, args, engines)
	case "recent":
		r.handleRecent(cid)
	case "stats":
		r.handleStats(cid)
	default:
		r.send(cid, "Неизвестная команда")
	}
}

// handleEngineCommand парсит команду /engine и переключает движок для чата.
// Форматы:
//
//	/engine gemini [model]
//	/engine gpt [model]
//	/engine deepseek [model]
func (r *Router) handleEngineCommand(chatID int64, cmd string, engines Engines) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := "gemini"
		if e := r.EngManager.Get(chatID); e != nil {
			cur = e.Name() + " (" + e.GetModel() + ")"
		}
		r.send(chatID, "Текущий движок: "+cur+
			"\nИспользование:\n/engine gemini [model]\n/engine gpt [model]\n/engine deepseek [model]")
		return
	}
	name := strings.ToLower(args[0])
	var mdl string
	if len(args) > 1 {
		mdl = strings.TrimSpace(args[1])
	}

	switch name {
	case "gemini":
		if engines.Gemini == nil {
			r.send(chatID, "❌ Gemini не настроен.")
			return
		}
		if mdl != "" {
			engines.Gemini.Model = mdl
		}
		r.EngManager.Set(chatID, engines.Gemini)
		r.send(chatID, "✅ Движок: gemini ("+engines.Gemini.GetModel()+").")
	case "gpt", "openai":
		if engines.OpenAI == nil {
			r.send(chatID, "❌ OpenAI GPT не настроен.")
			return
		}
		if mdl != "" {
			engines.OpenAI.Model = mdl
		}
		r.EngManager.Set(chatID, engines.OpenAI)
		r.send(chatID, "✅ Движок: gpt ("+engines.OpenAI.GetModel()+").")
	case "deepseek":
		if engines.Deepseek == nil {
			r.send(chatID, "❌ DeepSeek не настроен.")
			return
		}
		if mdl != "" {
			engines.Deepseek.Model = mdl
		}
		r.EngManager.Set(chatID, engines.Deepseek)
		r.send(chatID, "✅ Движок: deepseek ("+engines.Deepseek.GetModel()+").")
	default:
		r.send(chatID, "Неизвестный движок. Доступны: gemini | gpt | deepseek")
	}
}

func (r *Router) handleRecent(chatID int64) {
	if r.SolveLog == nil {
		r.send(chatID, "Журнал отключён: база данных не настроена.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := r.SolveLog.RecentByChat(ctx, chatID, 5)
	if err != nil {
		r.send(chatID, "Не удалось прочитать журнал: "+err.Error())
		return
	}
	if len(entries) == 0 {
		r.send(chatID, "Журнал пуст — этот чат ещё ничего не решал.")
		return
	}
	r.send(chatID, recentCard(entries))
}

func (r *Router) handleStats(chatID int64) {
	if r.SolveLog == nil {
		r.send(chatID, "Журнал отключён: база данных не настроена.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s, err := r.SolveLog.StatsSince(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		r.send(chatID, "Не удалось собрать сводку: "+err.Error())
		return
	}
	r.send(chatID, statsCard(s))
}

func (r *Router) send(chatID int64, text string) {
	if len(text) > 3900 {
		text = text[:3900] + "…"
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}
