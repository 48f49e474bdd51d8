package solve

import "fmt"

// SolveProblem — единственная точка входа конвейера. Строгая
// последовательность Gate → (прямой расчёт для STRUCTURED) или
// (Extract → Solve → Verify → Explain для PATTERNABLE) → Response,
// без циклов, без повторов, без отката между стадиями. Любой отказ
// становится неизменяемой терминальной записью с guard-кодом; текст
// вывода на отказе всегда пуст. Состояния между вызовами нет,
// конкурентные вызовы не требуют синхронизации.
func SolveProblem(rec Record) Response {
	d := Decide(rec)
	switch d.Route {
	case RouteStructured:
		return solveStructured(rec)
	case RoutePatternable:
		return solvePatternable(rec)
	default:
		return Response{
			OK:          false,
			Route:       d.Route,
			GuardCode:   d.GuardCode,
			GuardState:  d.GuardState,
			GuardAction: d.GuardAction,
			Reason:      d.Reason,
		}
	}
}

// solveStructured — доверенная запись с готовыми полями, извлечение
// пропускается. Неизвестный дискриминатор не решается «как получится»,
// а останавливается кодом UNSUPPORTED_KIND.
func solveStructured(rec Record) Response {
	if rec.Kind != KindNCkTimesNCk {
		return halted(RouteStructured, GuardUnsupportedKind,
			fmt.Sprintf("Unsupported structured kind: %q.", rec.Kind))
	}
	v := Combinatorics{
		N1:    *rec.N1,
		N2:    *rec.N2,
		Cases: []CaseSplit{{K1: *rec.K1, K2: *rec.K2}},
	}
	return runVerified(RouteStructured, v)
}

func solvePatternable(rec Record) Response {
	raw := rec.RawText()
	if raw == "" {
		return halted(RoutePatternable, GuardNoRawText, "No raw problem text found on the record.")
	}
	ex, ok := Extract(raw)
	if !ok {
		return halted(RoutePatternable, GuardExtractFail, "Deterministic extraction failed.")
	}
	return runVerified(RoutePatternable, ex)
}

// runVerified — общий хвост обоих маршрутов: решить, перепроверить,
// и только после успешной верификации отформатировать и объяснить.
func runVerified(route Route, ex Extracted) Response {
	ans, err := safeSolve(ex)
	if err != nil {
		return halted(route, GuardSolverError, err.Error())
	}
	vr := Verify(ex, ans)
	if !vr.OK {
		return Response{
			OK:          false,
			Route:       route,
			GuardCode:   vr.GuardCode,
			GuardState:  vr.GuardState,
			GuardAction: vr.GuardAction,
			Reason:      vr.Reason,
		}
	}
	formatted := ans.Format()
	return Response{
		OK:     true,
		Answer: &formatted,
		Text:   Explain(ex, ans),
		Route:  route,
	}
}

// safeSolve переводит панику вычисления в обычную ошибку на границе
// стадии, чтобы она стала SOLVER_ERROR, а не крэшем вызывающего.
func safeSolve(ex Extracted) (ans Answer, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("solver panic: %v", r)
		}
	}()
	return Solve(ex)
}

func halted(route Route, code GuardCode, reason string) Response {
	return Response{
		OK:          false,
		Route:       route,
		GuardCode:   code,
		GuardState:  string(code),
		GuardAction: GuardActionStop,
		Reason:      reason,
	}
}
