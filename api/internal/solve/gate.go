package solve

import "strings"

// Decide маршрутизирует запись за O(1) проверок полей и ключевых слов.
// Никакого вывода смысла: либо готовая структура, либо текст с известными
// маркерами домена, либо отказ с кодом OBS_UNTRUSTED. Чистая функция.
func Decide(rec Record) GateDecision {
	if isStructured(rec) {
		return GateDecision{Route: RouteStructured}
	}
	raw := rec.RawText()
	if raw != "" && matchesAnyDomain(raw) {
		return GateDecision{Route: RoutePatternable}
	}
	return GateDecision{
		Route:       RouteUntrusted,
		GuardCode:   GuardUntrusted,
		GuardState:  string(GuardUntrusted),
		GuardAction: GuardActionStop,
		Reason:      "No trusted structure and no patternable text detected.",
	}
}

// isStructured — запись уже разобрана: известный дискриминатор
// плюс все четыре целых поля на месте.
func isStructured(rec Record) bool {
	if rec.Kind != KindNCkTimesNCk {
		return false
	}
	return rec.N1 != nil && rec.K1 != nil && rec.N2 != nil && rec.K2 != nil
}

// Дизъюнкции ключевых слов, по одной на домен. Те же предикаты
// использует извлекатель как быстрый отсев перед точными шаблонами.
var domainKeywords = map[Kind]func(s string) bool{
	KindCombinatorics: func(s string) bool {
		return (strings.Contains(s, "committee") || strings.Contains(s, "choose") || strings.Contains(s, "ways")) &&
			strings.Contains(s, "men") && strings.Contains(s, "women")
	},
	KindAlgebra: func(s string) bool {
		return strings.Contains(s, "x^2") && strings.Contains(s, "y^2") && strings.Contains(s, "xy")
	},
	KindNumberTheory: func(s string) bool {
		return strings.Contains(s, "divisor")
	},
	KindGeometry: func(s string) bool {
		return strings.Contains(s, "tangent") && (strings.Contains(s, "circle") || strings.Contains(s, "radius"))
	},
	KindProbability: func(s string) bool {
		return strings.Contains(s, "dice") && (strings.Contains(s, "probability") || strings.Contains(s, "sum"))
	},
	KindCalculus: func(s string) bool {
		return strings.Contains(s, "f(x)") &&
			(strings.Contains(s, "extrem") || strings.Contains(s, "maximum") ||
				strings.Contains(s, "minimum") || strings.Contains(s, "critical"))
	},
}

func matchesAnyDomain(raw string) bool {
	s := normalizeText(raw)
	for _, match := range domainKeywords {
		if match(s) {
			return true
		}
	}
	return false
}

// normalizeText приводит текст к нижнему регистру и ASCII-степеням,
// чтобы шаблоны не различали "x²" и "x^2".
func normalizeText(raw string) string {
	s := strings.ToLower(raw)
	s = strings.ReplaceAll(s, "²", "^2")
	s = strings.ReplaceAll(s, "³", "^3")
	return s
}
