package leaktest

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordingTB captures failures instead of failing the real test.
type recordingTB struct {
	testing.TB
	failures []string
}

func (r *recordingTB) Helper() {}
func (r *recordingTB) Errorf(format string, args ...any) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestCheckNoGoroutineLeak_FinishedGoroutines(t *testing.T) {
	rec := &recordingTB{TB: t}

	CheckNoGoroutineLeak(rec, func() {
		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() { defer wg.Done() }()
		}
		wg.Wait()
	})

	assert.Empty(t, rec.failures)
}

func TestCheck_WaitsForSlowExit(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	go func() { time.Sleep(50 * time.Millisecond) }()

	checker.Check(0, time.Second)
	assert.Empty(t, rec.failures)
}

func TestCheck_ReportsLeak(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	checker.Check(0, 50*time.Millisecond)
	if assert.Len(t, rec.failures, 1) {
		assert.Contains(t, rec.failures[0], "Potential goroutine leak")
	}
}

func TestCheck_Tolerance(t *testing.T) {
	rec := &recordingTB{TB: t}
	checker := NewGoroutineChecker(rec)

	done := make(chan struct{})
	go func() { <-done }()
	defer close(done)

	checker.Check(1, 50*time.Millisecond)
	assert.Empty(t, rec.failures)
}
