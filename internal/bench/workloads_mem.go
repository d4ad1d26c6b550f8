package bench

import (
	"context"
	"time"
)

const (
	memoryReadCount = 100_000
	allocationCount = 1_000_000
)

var allocSink []any

func memoryRead(_ context.Context, _ *Env) (float64, error) {
	data := make([]int, memoryReadCount)
	for i := range data {
		data[i] = i
	}

	start := time.Now()
	total := 0
	for _, v := range data {
		total += v
	}
	elapsed := since(start)

	loopSink = total
	return elapsed, nil
}

func memoryAllocation(_ context.Context, _ *Env) (float64, error) {
	start := time.Now()
	placeholders := make([]any, allocationCount)
	elapsed := since(start)

	allocSink = placeholders
	allocSink = nil
	return elapsed, nil
}
