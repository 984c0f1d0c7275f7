package progress

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"
	"time"
)

func TestReporter_CountsAdvances(t *testing.T) {
	r := New(3, 4, io.Discard)
	if r.Total() != 12 {
		t.Fatalf("Expected total 12, got %d", r.Total())
	}
	for i := 0; i < 12; i++ {
		if err := r.Advance(); err != nil {
			t.Fatalf("Unexpected error on advance %d: %v", i+1, err)
		}
	}
	if r.Count() != 12 {
		t.Errorf("Expected count 12, got %d", r.Count())
	}
}

func TestReporter_OverflowIsClamped(t *testing.T) {
	r := New(1, 2, io.Discard)
	_ = r.Advance()
	_ = r.Advance()

	err := r.Advance()
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("Expected ErrOverflow, got %v", err)
	}
	if r.Count() != 2 {
		t.Errorf("Expected count to stay at 2 after overflow, got %d", r.Count())
	}
}

func TestReporter_ConcurrentAdvance(t *testing.T) {
	const rows, cols = 16, 25
	r := New(rows, cols, io.Discard)

	var wg sync.WaitGroup
	for w := 0; w < rows; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < cols; i++ {
				if err := r.Advance(); err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
			}
		}()
	}
	wg.Wait()

	if r.Count() != rows*cols {
		t.Errorf("Expected count %d, got %d", rows*cols, r.Count())
	}
}

func TestReporter_FinishFreezesElapsed(t *testing.T) {
	r := New(1, 1, io.Discard)
	_ = r.Advance()
	if err := r.Finish(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	first := r.Elapsed()
	time.Sleep(5 * time.Millisecond)
	if r.Elapsed() != first {
		t.Errorf("Expected elapsed to be frozen after Finish")
	}

	if err := r.Finish(); err != nil {
		t.Errorf("Second Finish should be a no-op, got %v", err)
	}
}

func TestReporter_WritesBar(t *testing.T) {
	var buf bytes.Buffer
	r := New(1, 2, &buf)
	_ = r.Advance()
	_ = r.Advance()
	_ = r.Finish()

	if buf.Len() == 0 {
		t.Error("Expected the progress bar to write output")
	}
}
