package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-richtext/internal/config"
)

// Sentinel errors for batch runs.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrBatchFailed        = errors.New("some files failed")
)

// maxAutoWorkers caps the automatic worker count. Rendering is CPU-bound
// and fast; more workers mostly contend on disk.
const maxAutoWorkers = 8

// FileResult is the outcome of processing one file.
type FileResult struct {
	InputPath  string
	OutputPath string
	Warnings   []error
	Err        error
	Duration   time.Duration
}

// fileFunc processes one file and returns the parse warnings it produced.
type fileFunc func(ctx context.Context, job FileJob) ([]error, error)

// validateWorkers checks an explicit worker count.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers returns n if set, else GOMAXPROCS (container-aware through
// automaxprocs) capped at maxAutoWorkers.
func resolveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return max(1, min(runtime.GOMAXPROCS(0), maxAutoWorkers))
}

// runBatch applies fn to every job with at most workers in flight. Results
// keep the order of jobs. A failing file does not stop the others; a
// cancelled context marks the files not yet started as failed.
func runBatch(ctx context.Context, jobs []FileJob, workers int, fn fileFunc) []FileResult {
	results := make([]FileResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			start := time.Now()
			res := FileResult{InputPath: job.InputPath, OutputPath: job.OutputPath}
			if err := ctx.Err(); err != nil {
				res.Err = err
			} else {
				res.Warnings, res.Err = fn(ctx, job)
			}
			res.Duration = time.Since(start)
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ResultSummary holds counts over a batch.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warnings  int
}

func countResults(results []FileResult) ResultSummary {
	var s ResultSummary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
		s.Warnings += len(r.Warnings)
	}
	return s
}

// batchError turns failed results into an error. A single-file run returns
// that file's error so its exit code is specific.
func batchError(results []FileResult) error {
	s := countResults(results)
	if s.Failed == 0 {
		return nil
	}
	if len(results) == 1 {
		return results[0].Err
	}
	return fmt.Errorf("%w: %d of %d", ErrBatchFailed, s.Failed, len(results))
}
