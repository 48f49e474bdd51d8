package bench

import (
	"math"
	"strconv"
	"strings"
)

// AnswersMatch сравнивает вычисленный ответ с эталонным: точное совпадение
// без регистра, взаимное вхождение строк, либо числовая близость.
func AnswersMatch(computed, correct string) bool {
	computed = strings.TrimSpace(computed)
	correct = strings.TrimSpace(correct)
	if computed == "" || correct == "" {
		return false
	}
	if strings.EqualFold(computed, correct) {
		return true
	}
	if strings.Contains(correct, computed) || strings.Contains(computed, correct) {
		return true
	}
	a, errA := strconv.ParseFloat(computed, 64)
	b, errB := strconv.ParseFloat(correct, 64)
	if errA != nil || errB != nil {
		return false
	}
	return math.Abs(a-b) < 0.001
}
