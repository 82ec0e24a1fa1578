package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func noSleep(context.Context, time.Duration) error { return nil }

func TestDo_Success(t *testing.T) {
	callCount := 0
	err := Do(context.Background(), func() error {
		callCount++
		if callCount < 2 {
			return errors.New("temporary error")
		}
		return nil
	}, WithMaxAttempts(3), WithSleep(noSleep))

	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if callCount != 2 {
		t.Errorf("expected 2 calls, got %d", callCount)
	}
}

func TestDo_MaxAttemptsExceeded(t *testing.T) {
	for _, attempts := range []int{1, 5, 10} {
		callCount := 0
		persistent := errors.New("persistent error")
		err := Do(context.Background(), func() error {
			callCount++
			return persistent
		}, WithMaxAttempts(attempts), WithSleep(noSleep))

		if !errors.Is(err, ErrMaxAttemptsExceeded) {
			t.Errorf("attempts=%d: expected ErrMaxAttemptsExceeded, got %v", attempts, err)
		}
		if !errors.Is(err, persistent) {
			t.Errorf("attempts=%d: expected last error to be joined, got %v", attempts, err)
		}
		if callCount != attempts {
			t.Errorf("attempts=%d: expected %d calls, got %d", attempts, attempts, callCount)
		}
	}
}

func TestDo_FixedDelaySleepsBetweenAttempts(t *testing.T) {
	var slept []time.Duration
	_ = Do(context.Background(), func() error {
		return errors.New("error")
	}, WithMaxAttempts(5), WithFixedDelay(2*time.Second), WithOnRetry(nil), WithSleep(func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}))

	if len(slept) != 4 {
		t.Fatalf("expected 4 sleeps between 5 attempts, got %d", len(slept))
	}
	for i, d := range slept {
		if d != 2*time.Second {
			t.Errorf("sleep[%d] = %v, want 2s", i, d)
		}
	}
}

func TestDo_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	callCount := 0
	err := Do(ctx, func() error {
		callCount++
		return errors.New("error")
	}, WithMaxAttempts(3))

	if !errors.Is(err, ErrContextCanceled) {
		t.Errorf("expected ErrContextCanceled, got %v", err)
	}
	if callCount != 0 {
		t.Errorf("expected 0 calls, got %d", callCount)
	}
}

func TestDo_NonRetryableError(t *testing.T) {
	customErr := errors.New("non-retryable error")
	callCount := 0
	err := Do(context.Background(), func() error {
		callCount++
		return customErr
	}, WithMaxAttempts(3), WithIsRetryable(func(err error) bool {
		return false
	}))

	if !errors.Is(err, customErr) {
		t.Errorf("expected customErr, got %v", err)
	}
	if callCount != 1 {
		t.Errorf("expected 1 call, got %d", callCount)
	}
}

func TestDoWithResult_Success(t *testing.T) {
	callCount := 0
	result, err := DoWithResult(context.Background(), func() (string, error) {
		callCount++
		if callCount < 2 {
			return "", errors.New("temporary error")
		}
		return "success", nil
	}, WithMaxAttempts(3), WithSleep(noSleep))

	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %s", result)
	}
}

func TestDo_ExponentialBackoff(t *testing.T) {
	delays := []time.Duration{}

	_, _ = DoWithResult(context.Background(), func() (string, error) {
		return "", errors.New("error")
	}, WithMaxAttempts(4), WithInitialDelay(10*time.Millisecond), WithMaxDelay(time.Second), WithMultiplier(2.0), WithSleep(noSleep), WithOnRetry(func(attempt int, delay time.Duration, err error) {
		delays = append(delays, delay)
	}))

	expectedDelays := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}
	if len(delays) != len(expectedDelays) {
		t.Fatalf("expected %d delays, got %d", len(expectedDelays), len(delays))
	}
	for i, expected := range expectedDelays {
		if delays[i] != expected {
			t.Errorf("delay[%d]: expected %v, got %v", i, expected, delays[i])
		}
	}
}

func TestContextSleep_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ContextSleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
