package main

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/Nick-heo-eg/math-solver-benchmark/api/internal/solve"
)

// Демонстрация безциклового конвейера на трёх типах записей:
// доверенная структура, сырой текст известных доменов и мусорный ввод.
func main() {
	for i, rec := range sampleRecords() {
		resp := solve.SolveProblem(rec)
		printResult(i+1, rec, resp)
	}
}

func intPtr(n int) *int { return &n }

func sampleRecords() []solve.Record {
	structured := solve.Record{
		Kind: solve.KindNCkTimesNCk,
		N1:   intPtr(6), K1: intPtr(3),
		N2: intPtr(4), K2: intPtr(2),
	}
	patternable := []string{
		"A committee of 5 people from 6 men and 4 women. Must contain at least 3 men and at least 1 woman.",
		"If x^2 + y^2 = 25 and xy = 12, find (x + y)^2",
		"Find the sum of all positive divisors of 360",
		"A circle has radius 10. Tangent from P has length 24. Find distance OP.",
		"Three dice are rolled. What is the probability that the sum is exactly 10?",
		"If f(x) = x^3 - 6x^2 + 9x + 1, find all local extrema",
	}
	untrusted := solve.Record{Raw: "Solve it"}

	records := []solve.Record{structured}
	for _, text := range patternable {
		records = append(records, solve.Record{Raw: text})
	}
	return append(records, untrusted)
}

func printResult(n int, rec solve.Record, resp solve.Response) {
	fmt.Printf("\n=== Problem #%d ===\n", n)

	in, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		log.Fatalf("marshal record: %v", err)
	}
	fmt.Println(string(in))

	if resp.OK {
		answer := ""
		if resp.Answer != nil {
			answer = *resp.Answer
		}
		fmt.Printf("Route: %s → PASS | Answer = %s\n", resp.Route, answer)
		fmt.Println(resp.Text)
		return
	}

	fmt.Printf("Route: %s → STOP (%s)\n", resp.Route, resp.GuardCode)
	if resp.Reason != "" {
		fmt.Printf("Reason: %s\n", resp.Reason)
	}
}
