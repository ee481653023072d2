package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	b := NewCircuitBreaker(2, 5*time.Second, 1)

	now := time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	now = now.Add(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open probe to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open probe, got %s", state)
	}
}

func TestCircuitBreaker_DoCountsOnlyClassifiedFailures(t *testing.T) {
	b := NewCircuitBreaker(1, time.Minute, 1)
	transient := errors.New("transient")
	rejected := errors.New("rejected")
	isTransient := func(err error) bool { return errors.Is(err, transient) }

	err := b.Do(context.Background(), func(context.Context) error { return rejected }, isTransient)
	if !errors.Is(err, rejected) {
		t.Fatalf("expected call error to be returned, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("non transient error must not open the breaker, got %s", state)
	}

	_ = b.Do(context.Background(), func(context.Context) error { return transient }, isTransient)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after transient failure, got %s", state)
	}

	called := false
	err = b.Do(context.Background(), func(context.Context) error { called = true; return nil }, isTransient)
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short circuit, got err=%v called=%v", err, called)
	}
}

func TestNewCircuitBreakerFromConfig(t *testing.T) {
	if b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: false}); b != nil {
		t.Fatalf("disabled config must not build a breaker")
	}

	var nilBreaker *CircuitBreaker
	if err := nilBreaker.Do(context.Background(), func(context.Context) error { return nil }, nil); err != nil {
		t.Fatalf("nil breaker must pass calls through: %v", err)
	}
	if nilBreaker.State() != CircuitStateClosed {
		t.Fatalf("nil breaker reports closed")
	}

	if b := NewCircuitBreakerFromConfig(CircuitBreakerConfig{Enabled: true}); b == nil {
		t.Fatalf("enabled config must build a breaker")
	}
}
