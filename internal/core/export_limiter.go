package core

// export_limiter.go bounds concurrent exports.
//
// Rendering a full selection holds every row in memory, so parallel exports
// are capped with a semaphore. A request waits up to maxWait for a slot and
// then fails with ErrTooManyExports. WaitForDrain lets shutdown wait for
// running exports.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyExports is returned when every export slot stays occupied for the
// whole wait. Clients should retry after a short delay.
var ErrTooManyExports = errors.New("too many concurrent exports, please try again later")

// DefaultMaxConcurrentExports is the default limit for parallel exports.
const DefaultMaxConcurrentExports = 2

// DefaultExportWait is how long to wait for a slot before rejecting.
const DefaultExportWait = 30 * time.Second

// ExportLimiter is a counting semaphore for exports.
type ExportLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewExportLimiter allows at most maxConcurrent simultaneous exports.
// Non-positive arguments select the defaults.
func NewExportLimiter(maxConcurrent int, maxWait time.Duration) *ExportLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentExports
	}
	if maxWait <= 0 {
		maxWait = DefaultExportWait
	}
	return &ExportLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire takes a slot. The caller must Release it.
func (l *ExportLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyExports
	}
}

// Release returns a slot taken by Acquire.
func (l *ExportLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()
	<-l.semaphore
}

// ActiveCount returns the number of running exports.
func (l *ExportLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// WaitForDrain blocks until no export is running or ctx ends.
func (l *ExportLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ExportLimiterStatus is a snapshot of the limiter.
type ExportLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *ExportLimiter) Status() ExportLimiterStatus {
	active := l.ActiveCount()
	return ExportLimiterStatus{
		Active:        active,
		Available:     cap(l.semaphore) - len(l.semaphore),
		MaxConcurrent: cap(l.semaphore),
	}
}
