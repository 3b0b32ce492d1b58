// internal/engine/batch.go
package engine

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const defaultConcurrency = 4

// Outcome pairs a batch input with its result or error.
type Outcome struct {
	Input  Input
	Result *Result
	Err    error
}

type job struct {
	index int
	input Input
}

// RenderAll renders inputs on a bounded pool of workers. Outcomes keep the
// order of inputs. Inputs not started before ctx is cancelled report the
// context error.
func (p *Pipeline) RenderAll(ctx context.Context, inputs []Input) []Outcome {
	outcomes := make([]Outcome, len(inputs))
	for i, in := range inputs {
		outcomes[i] = Outcome{Input: in}
	}
	if len(inputs) == 0 {
		return outcomes
	}

	concurrency := p.cfg.Render().Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	if concurrency > len(inputs) {
		concurrency = len(inputs)
	}
	p.logger.Info("Starting batch render", zap.Int("documents", len(inputs)), zap.Int("concurrency", concurrency))

	jobs := make(chan job)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go p.runWorker(ctx, i+1, jobs, outcomes, &wg)
	}

	// Each slot is written by exactly one worker, so outcomes needs no lock.
	submitted := 0
feed:
	for ; submitted < len(inputs); submitted++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{index: submitted, input: inputs[submitted]}:
		}
	}
	close(jobs)
	wg.Wait()

	for i := submitted; i < len(inputs); i++ {
		outcomes[i].Err = ctx.Err()
	}
	return outcomes
}

// runWorker consumes jobs until the channel closes or ctx is done.
func (p *Pipeline) runWorker(ctx context.Context, workerID int, jobs <-chan job, outcomes []Outcome, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := p.logger.With(zap.Int("worker_id", workerID))

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Context cancelled, worker shutting down", zap.Error(ctx.Err()))
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			result, err := p.Render(ctx, j.input)
			if err != nil {
				if IsCancellation(err) {
					logger.Warn("Render interrupted", zap.String("document", j.input.Name), zap.Error(err))
				} else {
					logger.Error("Render failed", zap.String("document", j.input.Name), zap.Error(err))
				}
			}
			outcomes[j.index].Result = result
			outcomes[j.index].Err = err
		}
	}
}
