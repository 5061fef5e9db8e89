package retrynet

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestDo_SucceedsWithoutRetry(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("referee not listening yet")
		}
		return nil
	}, WithInitialDelay(time.Millisecond), WithMaxAttempts(5))
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestDo_StopsOnUnretryableError(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("permanent")
	}, WithRetryIf(func(err error) bool { return false }))
	if err == nil {
		t.Fatal("Do should fail on an unretryable error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no retry)", calls)
	}
}

func TestDo_ExhaustsMaxAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("still refused")
	}, WithInitialDelay(time.Millisecond), WithMaxAttempts(3))
	if err == nil {
		t.Fatal("Do should return the last error once attempts are exhausted")
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestIsDialRetryable(t *testing.T) {
	netErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	if !IsDialRetryable(netErr) {
		t.Fatal("IsDialRetryable should accept a net.OpError")
	}
	if IsDialRetryable(errors.New("malformed setup")) {
		t.Fatal("IsDialRetryable should reject a non-network error")
	}
}
