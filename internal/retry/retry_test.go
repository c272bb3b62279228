package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		BaseDelay:       time.Millisecond,
		MaxDelay:        5 * time.Millisecond,
		BackoffMultiple: 2.0,
	}
}

func TestExecute_SucceedsAfterRetries(t *testing.T) {
	attempts := 0
	opts := Options{
		Config: fastConfig(),
		ErrorChecker: func(err error, statusCode int, body []byte) bool {
			return statusCode >= 500
		},
		APIName: "test",
	}

	result, err := Execute(context.Background(), opts, func(attempt int) ([]byte, int, error) {
		attempts++
		if attempts < 3 {
			return nil, 500, errors.New("server error")
		}
		return []byte("ok"), 200, nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if string(result) != "ok" {
		t.Errorf("Expected ok, got %q", result)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestExecute_NonRetryableFailsFast(t *testing.T) {
	attempts := 0
	opts := Options{
		Config: fastConfig(),
		ErrorChecker: func(err error, statusCode int, body []byte) bool {
			return statusCode >= 500
		},
	}

	wantErr := errors.New("bad request")
	_, err := Execute(context.Background(), opts, func(attempt int) ([]byte, int, error) {
		attempts++
		return nil, 400, wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Expected the original error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestExecute_ExhaustsRetries(t *testing.T) {
	attempts := 0
	opts := Options{
		Config: fastConfig(),
		ErrorChecker: func(err error, statusCode int, body []byte) bool {
			return true
		},
	}

	wantErr := errors.New("still failing")
	_, err := Execute(context.Background(), opts, func(attempt int) ([]byte, int, error) {
		attempts++
		return nil, 503, wantErr
	})

	if !errors.Is(err, wantErr) {
		t.Errorf("Expected the last error, got %v", err)
	}
	if attempts != 4 {
		t.Errorf("Expected 4 attempts (1 + 3 retries), got %d", attempts)
	}
}

func TestExecute_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	opts := Options{
		Config: Config{
			MaxRetries:      3,
			BaseDelay:       time.Second,
			MaxDelay:        time.Second,
			BackoffMultiple: 1.0,
		},
		ErrorChecker: func(err error, statusCode int, body []byte) bool {
			return true
		},
	}

	attempts := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Execute(ctx, opts, func(attempt int) ([]byte, int, error) {
		attempts++
		return nil, 500, errors.New("flaky")
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
