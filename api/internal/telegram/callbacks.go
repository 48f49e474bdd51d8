package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	cid := cb.Message.Chat.ID
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, "")) // ack

	switch cb.Data {
	case "show_derivation":
		r.onShowDerivation(cid, cb.Message.MessageID)
	}
}

func (r *Router) onShowDerivation(chatID int64, msgID int) {
	v, ok := derivations.Load(chatID)
	if !ok {
		r.send(chatID, "Вывод недоступен: сначала пришлите задачу.")
		return
	}
	// убрать клавиатуру с карточки ответа
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, msgID, tgbotapi.InlineKeyboardMarkup{})
	_, _ = r.Bot.Send(edit)

	r.send(chatID, "📖 Вывод:\n\n"+v.(string))
}
