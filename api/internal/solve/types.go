package solve

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Route — маршрут входной записи после Gate.
type Route string

const (
	RouteStructured  Route = "STRUCTURED"  // доверенная, уже разобранная структура
	RoutePatternable Route = "PATTERNABLE" // сырой текст, похожий на известный домен
	RouteUntrusted   Route = "UNTRUSTED"   // отклонено до извлечения
)

// GuardCode — машинный код терминального отказа. Набор фиксирован.
type GuardCode string

const (
	GuardUntrusted       GuardCode = "OBS_UNTRUSTED"
	GuardNoRawText       GuardCode = "NO_RAW_TEXT"
	GuardExtractFail     GuardCode = "EXTRACT_FAIL"
	GuardSolverError     GuardCode = "SOLVER_ERROR"
	GuardVerifyFail      GuardCode = "VERIFY_FAIL"
	GuardVerifyError     GuardCode = "VERIFY_ERROR"
	GuardUnsupportedKind GuardCode = "UNSUPPORTED_KIND"
)

// GuardActionStop — единственное действие, которое конвейер назначает на отказ.
const GuardActionStop = "STOP"

// KindNCkTimesNCk — дискриминатор структурированной записи (двойной биномиальный выбор).
const KindNCkTimesNCk = "nCk_times_nCk"

// Record — входная запись конвейера. Либо уже структурированные поля
// (kind + четыре целых), либо текст задачи под одним из признанных имён.
// Лишние метаданные обвязки ядро игнорирует.
type Record struct {
	Kind string `json:"kind,omitempty"`
	N1   *int   `json:"n1,omitempty"`
	K1   *int   `json:"k1,omitempty"`
	N2   *int   `json:"n2,omitempty"`
	K2   *int   `json:"k2,omitempty"`

	Problem  string `json:"problem,omitempty"`
	Raw      string `json:"raw,omitempty"`
	Text     string `json:"text,omitempty"`
	Question string `json:"question,omitempty"`
}

// RawText возвращает текст задачи по фиксированному приоритету имён полей.
func (r Record) RawText() string {
	for _, s := range []string{r.Problem, r.Raw, r.Text, r.Question} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

// GateDecision — результат маршрутизации. Guard-поля заполнены
// тогда и только тогда, когда route == UNTRUSTED.
type GateDecision struct {
	Route       Route     `json:"route"`
	GuardCode   GuardCode `json:"guard_code,omitempty"`
	GuardState  string    `json:"guard_state,omitempty"`
	GuardAction string    `json:"guard_action,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// VerifyResult — итог независимой проверки. На успехе guard-поля пусты.
type VerifyResult struct {
	OK          bool      `json:"ok"`
	GuardCode   GuardCode `json:"guard_code,omitempty"`
	GuardState  string    `json:"guard_state,omitempty"`
	GuardAction string    `json:"guard_action,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// Response — единственный выход конвейера. Answer и Text заполняются
// только при ok=true; на любом отказе text обязан быть пустым,
// answer держим указателем, чтобы сериализовать null.
type Response struct {
	OK          bool      `json:"ok"`
	Answer      *string   `json:"answer"`
	Text        string    `json:"text"`
	Route       Route     `json:"route"`
	GuardCode   GuardCode `json:"guard_code,omitempty"`
	GuardState  string    `json:"guard_state,omitempty"`
	GuardAction string    `json:"guard_action,omitempty"`
	Reason      string    `json:"reason,omitempty"`
}

// Kind — тег доменного варианта.
type Kind string

const (
	KindCombinatorics Kind = "combinatorics"
	KindAlgebra       Kind = "algebra"
	KindNumberTheory  Kind = "number_theory"
	KindGeometry      Kind = "geometry"
	KindProbability   Kind = "probability"
	KindCalculus      Kind = "calculus"
)

// Extracted — закрытое размеченное объединение шести доменов.
// Ровно один вариант активен; downstream-стадии читают только поля
// своего тега. Набор закрыт: неэкспортируемый маркер не даёт добавить
// вариант извне пакета, а тест на полноту ловит незакрытый switch.
type Extracted interface {
	Kind() Kind
	sealed()
}

// CaseSplit — один допустимый расклад (k1 из первой популяции, k2 из второй).
type CaseSplit struct {
	K1 int `json:"k1"`
	K2 int `json:"k2"`
}

// Combinatorics — выбор комитета из двух популяций.
// Cases перечислены извлекателем, решатель их не пересчитывает.
type Combinatorics struct {
	N1    int         `json:"n1"`
	N2    int         `json:"n2"`
	Cases []CaseSplit `json:"cases"`
}

// Algebra — тождество (x+y)^2 = x^2 + 2xy + y^2.
type Algebra struct {
	SumSquares int `json:"sum_squares"` // значение x^2 + y^2
	Product    int `json:"product"`     // значение xy
}

// NumberTheory — сумма всех положительных делителей N.
type NumberTheory struct {
	N int64 `json:"n"`
}

// Geometry — касательная к окружности: гипотенуза по радиусу и касательной.
type Geometry struct {
	Radius  float64 `json:"radius"`
	Tangent float64 `json:"tangent"`
}

// Probability — сумма на игральных костях, грани фиксированы 1..6.
type Probability struct {
	NumDice   int `json:"num_dice"`
	TargetSum int `json:"target_sum"`
}

// Calculus — кубический многочлен, коэффициенты от старшей степени к младшей.
type Calculus struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
	C float64 `json:"c"`
	D float64 `json:"d"`
}

func (Combinatorics) Kind() Kind { return KindCombinatorics }
func (Algebra) Kind() Kind       { return KindAlgebra }
func (NumberTheory) Kind() Kind  { return KindNumberTheory }
func (Geometry) Kind() Kind      { return KindGeometry }
func (Probability) Kind() Kind   { return KindProbability }
func (Calculus) Kind() Kind      { return KindCalculus }

func (Combinatorics) sealed() {}
func (Algebra) sealed()       {}
func (NumberTheory) sealed()  {}
func (Geometry) sealed()      {}
func (Probability) sealed()   {}
func (Calculus) sealed()      {}

// Answer — результат решателя до форматирования.
type Answer struct {
	Shape   string     `json:"shape"` // "integer" | "decimal" | "extrema"
	Int     int64      `json:"int,omitempty"`
	Float   float64    `json:"float,omitempty"`
	Extrema []Extremum `json:"extrema,omitempty"`
}

// Extremum — один локальный экстремум кубической функции.
type Extremum struct {
	Type string  `json:"type"` // "max" | "min"
	X    float64 `json:"x"`
	FX   float64 `json:"fx"`
}

const (
	ShapeInteger = "integer"
	ShapeDecimal = "decimal"
	ShapeExtrema = "extrema"
)

// Format рендерит ответ в каноничную строку: целые как есть, дробные
// кратчайшей десятичной записью, экстремумы через запятую.
func (a Answer) Format() string {
	switch a.Shape {
	case ShapeInteger:
		return strconv.FormatInt(a.Int, 10)
	case ShapeDecimal:
		return formatFloat(a.Float)
	case ShapeExtrema:
		if len(a.Extrema) == 0 {
			return "no local extrema"
		}
		parts := make([]string, 0, len(a.Extrema))
		for _, e := range a.Extrema {
			parts = append(parts, e.Type+" at x="+formatFloat(round6(e.X))+" (f="+formatFloat(round6(e.FX))+")")
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// sortedExtrema возвращает копию списка, отсортированную по x по возрастанию.
func sortedExtrema(in []Extremum) []Extremum {
	out := make([]Extremum, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// round6 — округление до шести знаков, чтобы корни квадратного уравнения
// не тащили в ответ хвост двоичной погрешности.
func round6(f float64) float64 {
	return math.Round(f*1e6) / 1e6
}
