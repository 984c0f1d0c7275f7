// Package progress reports how many pixels of a render have completed.
package progress

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ErrOverflow is returned when Advance is called more times than the grid has cells
var ErrOverflow = errors.New("progress advanced past total")

// Reporter counts completed pixels of a rows x cols grid.
// It is safe for concurrent use.
type Reporter struct {
	mu       sync.Mutex
	bar      *progressbar.ProgressBar
	total    int64
	count    int64
	start    time.Time
	end      time.Time
	finished bool
}

// New creates a reporter sized to rows*cols and starts its clock.
// The bar is drawn to w; pass io.Discard to draw nothing.
func New(rows, cols int, w io.Writer) *Reporter {
	total := int64(rows) * int64(cols)
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Rendering"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)

	return &Reporter{
		bar:   bar,
		total: total,
		start: time.Now(),
	}
}

// Advance records one completed cell. Past the total it leaves the count
// unchanged and returns ErrOverflow.
func (r *Reporter) Advance() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count >= r.total {
		return fmt.Errorf("%w: %d of %d", ErrOverflow, r.count+1, r.total)
	}
	r.count++
	if err := r.bar.Add64(1); err != nil {
		return fmt.Errorf("progress bar: %w", err)
	}
	return nil
}

// Finish completes the bar and stops the clock. Later calls do nothing.
func (r *Reporter) Finish() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return nil
	}
	r.finished = true
	r.end = time.Now()
	if err := r.bar.Finish(); err != nil {
		return fmt.Errorf("progress bar: %w", err)
	}
	return nil
}

// Elapsed returns the time since New, frozen once Finish has been called
func (r *Reporter) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.finished {
		return r.end.Sub(r.start)
	}
	return time.Since(r.start)
}

// Count returns the number of successful advances
func (r *Reporter) Count() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Total returns rows*cols
func (r *Reporter) Total() int64 {
	return r.total
}
