package telegram

import "sync"

// Режим ожидания следующего сообщения чата.
const modeAwaitParse = "await_parse" // /parse без текста: следующее сообщение уходит в LLM-разбор

var chatMode sync.Map // chatID -> string

func setMode(chatID int64, mode string) { chatMode.Store(chatID, mode) }
func getMode(chatID int64) string {
	if v, ok := chatMode.Load(chatID); ok {
		if s, _ := v.(string); s != "" {
			return s
		}
	}
	return ""
}
func clearMode(chatID int64) { chatMode.Delete(chatID) }

// Вывод последнего решённого чата — показывается по кнопке.
// Остановленные прогоны сюда не попадают: у них текста нет по контракту.
var derivations sync.Map // chatID -> string
