package logger

import (
	"context"
	"sync"
	"time"
)

// Observer receives the outcome of every timed operation.
type Observer func(operation string, err error, duration time.Duration)

type OperationStats struct {
	Total    int64
	Failed   int64
	Duration time.Duration
}

type registry struct {
	mu        sync.Mutex
	stats     map[string]*OperationStats
	observers []Observer
}

var global = &registry{stats: make(map[string]*OperationStats)}

func AddObserver(o Observer) {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.observers = append(global.observers, o)
}

func RecordOperation(operation string, err error, duration time.Duration) {
	global.mu.Lock()
	s, ok := global.stats[operation]
	if !ok {
		s = &OperationStats{}
		global.stats[operation] = s
	}
	s.Total++
	s.Duration += duration
	if err != nil {
		s.Failed++
	}
	observers := append([]Observer(nil), global.observers...)
	global.mu.Unlock()

	for _, o := range observers {
		o(operation, err, duration)
	}
}

func GetMetrics() map[string]OperationStats {
	global.mu.Lock()
	defer global.mu.Unlock()

	result := make(map[string]OperationStats, len(global.stats))
	for op, s := range global.stats {
		result[op] = *s
	}
	return result
}

func TimedOperation(ctx context.Context, operation string, fn func() error) error {
	start := time.Now()
	log := FromContext(ctx).With("phase", operation)
	log.Debug("starting operation")

	err := fn()
	duration := time.Since(start)

	RecordOperation(operation, err, duration)

	if err != nil {
		log.Error("operation failed", "error", err, "duration", duration)
	} else {
		log.Debug("operation completed", "duration", duration)
	}

	return err
}

func ResetMetrics() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.stats = make(map[string]*OperationStats)
	global.observers = nil
}
