package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

func fastPolicy() Policy {
	return Policy{MaxRetries: 3, InitialDelay: time.Millisecond, MaxDelay: 4 * time.Millisecond}
}

func TestPolicyDelay(t *testing.T) {
	p := DefaultPolicy()
	want := []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second, 4 * time.Second, 5 * time.Second, 5 * time.Second}
	for attempt, w := range want {
		if got := p.Delay(attempt); got != w {
			t.Fatalf("Delay(%d) = %v, want %v", attempt, got, w)
		}
	}
}

func TestRetryRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(), "list tasks", func(context.Context) error {
		calls++
		return &Error{Op: "list", Entity: models.EntityTask, Kind: KindTransient, Err: errors.New("timeout")}
	})
	if err == nil {
		t.Fatalf("expected error after exhausting retries")
	}
	if calls != 4 {
		t.Fatalf("expected 1 call + 3 retries, got %d calls", calls)
	}
}

func TestRetryZeroRetriesCallsOnce(t *testing.T) {
	calls := 0
	p := Policy{InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
	err := Retry(context.Background(), p, "list", func(context.Context) error {
		calls++
		return &Error{Kind: KindTransient, Err: errors.New("timeout")}
	})
	if KindOf(err) != KindTransient {
		t.Fatalf("expected the call's own error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestRetryReturnsLastErrorOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{MaxRetries: 3, InitialDelay: time.Hour, MaxDelay: time.Hour}
	err := Retry(ctx, p, "list", func(context.Context) error {
		cancel()
		return &Error{Kind: KindTransient, Status: http.StatusBadGateway, Err: errors.New("bad gateway")}
	})
	var gwErr *Error
	if !errors.As(err, &gwErr) || gwErr.Status != http.StatusBadGateway {
		t.Fatalf("expected the gateway error, got %v", err)
	}
}

func TestRetryStopsOnSuccess(t *testing.T) {
	calls := 0
	v, err := RetryValue(context.Background(), fastPolicy(), "create task", func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &Error{Kind: KindTransient, Status: http.StatusServiceUnavailable, Err: errors.New("unavailable")}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("RetryValue failed: %v", err)
	}
	if v != "ok" || calls != 3 {
		t.Fatalf("got %q after %d calls", v, calls)
	}
}

func TestRetryDoesNotRetryValidation(t *testing.T) {
	calls := 0
	err := Retry(context.Background(), fastPolicy(), "create task", func(context.Context) error {
		calls++
		return &Error{Kind: KindValidation, Status: http.StatusBadRequest, Err: errors.New("title required")}
	})
	if KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("validation errors must not be retried, got %d calls", calls)
	}
}

func TestRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	p := Policy{MaxRetries: 3, InitialDelay: time.Hour, MaxDelay: time.Hour}
	done := make(chan error, 1)
	go func() {
		done <- Retry(ctx, p, "list", func(context.Context) error {
			calls++
			return &Error{Kind: KindTransient, Err: errors.New("timeout")}
		})
	}()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Fatalf("expected error")
		}
	case <-time.After(time.Second):
		t.Fatalf("Retry did not return after cancel")
	}
	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("plain"), false},
		{context.DeadlineExceeded, true},
		{context.Canceled, false},
		{&Error{Status: http.StatusTooManyRequests}, true},
		{&Error{Status: http.StatusInternalServerError}, true},
		{&Error{Status: http.StatusServiceUnavailable}, true},
		{&Error{Kind: KindNotFound, Status: http.StatusNotFound}, false},
		{&Error{Kind: KindConflict}, false},
		{&Error{Kind: KindInvariant, Err: ErrNoActiveSprint}, false},
		{fmt.Errorf("wrapped: %w", &Error{Kind: KindTransient}), true},
	}
	for i, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("case %d: IsRetryable(%v) = %v, want %v", i, tc.err, got, tc.want)
		}
	}
}

func TestKindForStatus(t *testing.T) {
	if KindForStatus(http.StatusBadRequest) != KindValidation ||
		KindForStatus(http.StatusNotFound) != KindNotFound ||
		KindForStatus(http.StatusConflict) != KindConflict ||
		KindForStatus(http.StatusBadGateway) != KindTransient {
		t.Fatalf("unexpected status mapping")
	}
}
