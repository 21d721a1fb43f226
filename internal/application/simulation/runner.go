package simulation

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RunOptions controls how many ticks a runner plays and how fast
type RunOptions struct {
	Start time.Time
	Steps int
	Step  time.Duration

	// Realtime paces ticks on the wall clock, Speed simulated seconds per
	// wall second. Zero or negative speed means 1.
	Realtime bool
	Speed    float64
}

// RunResult summarizes a run
type RunResult struct {
	Ticks         int
	Start         time.Time
	End           time.Time
	ProcessedMass float64
	MinedMass     float64
	Last          TickRecord
}

// Runner drives a session tick by tick
type Runner struct {
	session  *Session
	journal  Journal
	recorder Recorder
}

// NewRunner creates a runner. Journal and recorder are optional.
func NewRunner(session *Session, journal Journal, recorder Recorder) *Runner {
	return &Runner{
		session:  session,
		journal:  journal,
		recorder: recorder,
	}
}

func newPacer(opts RunOptions) *rate.Limiter {
	if !opts.Realtime {
		return nil
	}
	speed := opts.Speed
	if speed <= 0 {
		speed = 1
	}
	interval := time.Duration(float64(opts.Step) / speed)
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Run plays opts.Steps ticks of opts.Step each, stopping early when the
// context is cancelled
func (r *Runner) Run(ctx context.Context, opts RunOptions) (RunResult, error) {
	if opts.Steps <= 0 {
		return RunResult{}, fmt.Errorf("steps must be positive")
	}
	if opts.Step <= 0 {
		return RunResult{}, fmt.Errorf("step must be positive")
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Now().UTC()
	}

	pacer := newPacer(opts)
	result := RunResult{Start: start, End: start}

	for tick := 1; tick <= opts.Steps; tick++ {
		if pacer != nil {
			if err := pacer.Wait(ctx); err != nil {
				return result, err
			}
		} else if err := ctx.Err(); err != nil {
			return result, err
		}

		t0 := result.End
		t1 := t0.Add(opts.Step)
		if err := r.session.Update(t0, t1); err != nil {
			return result, fmt.Errorf("tick %d: %w", tick, err)
		}

		record := NewTickRecord(r.session, tick, t1)
		result.Ticks = tick
		result.End = t1
		result.ProcessedMass += record.ProcessedMass
		result.MinedMass += record.MinedMass
		result.Last = record

		if r.journal != nil {
			if err := r.journal.Record(record); err != nil {
				return result, fmt.Errorf("journal tick %d: %w", tick, err)
			}
		}
		if r.recorder != nil {
			r.recorder.RecordTick(record)
		}
	}

	return result, nil
}
