package httpserver

import (
	"log"
	"net/http"
)

// StartHTTP поднимает служебный HTTP бота: /healthz с переданной проверкой
// и корневой баннер. Обработчики регистрируются на DefaultServeMux,
// чтобы вебхук телеграма и health жили на одном порту.
func StartHTTP(addr, banner string, healthz http.HandlerFunc) error {
	http.HandleFunc("/healthz", healthz)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(banner))
	})
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
