package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// RaceReport summarizes concurrent submissions against one identifier.
type RaceReport struct {
	Submitted int
	Accepted  int
	Rejected  int
	Failed    int
	// Winner is the accepted value when exactly one was accepted.
	Winner *float64
	Errors []error
}

// Race submits every value against id concurrently with up to workers
// requests in flight.
func (c *Client) Race(ctx context.Context, id string, values []float64, workers int) RaceReport {
	if workers <= 0 || workers > len(values) {
		workers = len(values)
	}

	var (
		accepted, rejected, failed int64
		mu                         sync.Mutex
		report                     = RaceReport{Submitted: len(values)}
		wg                         sync.WaitGroup
	)
	jobs := make(chan float64, len(values))
	for _, v := range values {
		jobs <- v
	}
	close(jobs)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for v := range jobs {
				if ctx.Err() != nil {
					atomic.AddInt64(&failed, 1)
					continue
				}
				err := c.Submit(ctx, id, v)
				switch {
				case err == nil:
					atomic.AddInt64(&accepted, 1)
					mu.Lock()
					w := v
					report.Winner = &w
					mu.Unlock()
				case errors.Is(err, ErrAlreadyCompared):
					atomic.AddInt64(&rejected, 1)
				default:
					atomic.AddInt64(&failed, 1)
					mu.Lock()
					report.Errors = append(report.Errors, err)
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	report.Accepted = int(accepted)
	report.Rejected = int(rejected)
	report.Failed = int(failed)
	if report.Accepted != 1 {
		report.Winner = nil
	}
	return report
}
