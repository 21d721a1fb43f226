package simulation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/processing"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// HostState is the replicated view of an authoritative session
type HostState struct {
	Spacecraft string
	Tick       int
	Time       time.Time
	Snapshot   processing.Snapshot
}

// Host owns an authoritative session shared with remote replicas. Ticks and
// toggles are serialized by its lock, so a toggle always lands between two
// ticks and is observed by the next one.
type Host struct {
	mu       sync.Mutex
	session  *Session
	journal  Journal
	recorder Recorder
	step     time.Duration
	now      time.Time
	tick     int
}

// NewHost wraps a loaded authoritative session. Journal and recorder are optional.
func NewHost(session *Session, start time.Time, step time.Duration, journal Journal, recorder Recorder) (*Host, error) {
	if session == nil || session.Spacecraft() == nil {
		return nil, fmt.Errorf("host requires a loaded session")
	}
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive")
	}
	return &Host{
		session:  session,
		journal:  journal,
		recorder: recorder,
		step:     step,
		now:      start,
	}, nil
}

// SetProcessingGroupActive toggles a processing group between ticks
func (h *Host) SetProcessingGroupActive(ctx context.Context, groupIndex int, active bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session.Processing.SetProcessingGroupActive(ctx, groupIndex, active)
}

// SetMiningRigActive toggles the mining rig between ticks
func (h *Host) SetMiningRigActive(ctx context.Context, active bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session.Processing.SetMiningRigActive(ctx, active)
}

// State captures the snapshot replicas mirror
func (h *Host) State() HostState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HostState{
		Spacecraft: h.session.Spacecraft().Identifier.String(),
		Tick:       h.tick,
		Time:       h.now,
		Snapshot:   h.session.Processing.Snapshot(),
	}
}

// Advance plays one tick
func (h *Host) Advance() (TickRecord, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t0 := h.now
	t1 := t0.Add(h.step)
	if err := h.session.Update(t0, t1); err != nil {
		return TickRecord{}, fmt.Errorf("tick %d: %w", h.tick+1, err)
	}
	h.tick++
	h.now = t1

	record := NewTickRecord(h.session, h.tick, t1)
	if h.journal != nil {
		if err := h.journal.Record(record); err != nil {
			return record, fmt.Errorf("journal tick %d: %w", h.tick, err)
		}
	}
	if h.recorder != nil {
		h.recorder.RecordTick(record)
	}
	return record, nil
}

// Serve plays ticks paced on the wall clock until ctx is done. Speed is the
// number of simulated seconds per wall second.
func (h *Host) Serve(ctx context.Context, speed float64) error {
	pacer := newPacer(RunOptions{Step: h.step, Realtime: true, Speed: speed})
	for {
		// Wait only fails once ctx is done or its deadline is too close
		if err := pacer.Wait(ctx); err != nil {
			return nil
		}
		if _, err := h.Advance(); err != nil {
			return err
		}
	}
}

// Save writes the session back to its spacecraft
func (h *Host) Save() (*spacecraft.Spacecraft, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.session.Save()
}
