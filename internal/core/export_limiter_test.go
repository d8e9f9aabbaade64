package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExportLimiter_AcquireRelease(t *testing.T) {
	limiter := NewExportLimiter(2, time.Second)
	ctx := context.Background()

	if got := limiter.Status(); got.Available != 2 || got.Active != 0 {
		t.Fatalf("initial status = %+v", got)
	}

	for i := 0; i < 2; i++ {
		if err := limiter.Acquire(ctx); err != nil {
			t.Fatalf("Acquire #%d failed: %v", i+1, err)
		}
	}
	if got := limiter.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount = %d, want 2", got)
	}
	if got := limiter.Status().Available; got != 0 {
		t.Errorf("Available = %d, want 0", got)
	}

	limiter.Release()
	limiter.Release()
	if got := limiter.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount after release = %d, want 0", got)
	}
}

func TestExportLimiter_RejectsWhenFull(t *testing.T) {
	limiter := NewExportLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	if err := limiter.Acquire(ctx); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	defer limiter.Release()

	if err := limiter.Acquire(ctx); !errors.Is(err, ErrTooManyExports) {
		t.Errorf("second Acquire error = %v, want ErrTooManyExports", err)
	}
}

func TestExportLimiter_ContextCancelled(t *testing.T) {
	limiter := NewExportLimiter(1, time.Minute)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire error = %v, want context.Canceled", err)
	}
}

func TestExportLimiter_WaitForDrain(t *testing.T) {
	limiter := NewExportLimiter(1, time.Second)
	if err := limiter.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	go func() {
		time.Sleep(20 * time.Millisecond)
		limiter.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := limiter.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain error = %v", err)
	}
}

func TestNewExportLimiter_Defaults(t *testing.T) {
	l := NewExportLimiter(0, 0)
	if got := l.Status().MaxConcurrent; got != DefaultMaxConcurrentExports {
		t.Errorf("MaxConcurrent = %d, want %d", got, DefaultMaxConcurrentExports)
	}
}
