package crew

import (
	"io"
	"log/slog"
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

const (
	// PaydayInterval is the simulated time between two paydays
	PaydayInterval = 24 * time.Hour

	// DefaultDailyCostPerCrew in credits
	DefaultDailyCostPerCrew = 10
)

// Wallet pays the crew
type Wallet interface {
	Balance() int64
	Spend(amount int64) error
}

// Notifier receives crew events meant for the player
type Notifier interface {
	Notify(message string)
}

// System tracks crew capacity and pays the crew every simulated day
type System struct {
	wallet       Wallet
	notifier     Notifier
	log          *slog.Logger
	dailyCost    int64
	capacity     int
	current      int
	lastPaydayAt time.Time
}

// NewSystem creates a crew system. dailyCost <= 0 selects the default.
func NewSystem(wallet Wallet, notifier Notifier, dailyCost int64, logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if dailyCost <= 0 {
		dailyCost = DefaultDailyCostPerCrew
	}
	return &System{wallet: wallet, notifier: notifier, dailyCost: dailyCost, log: logger}
}

// Load reads crew capacity and count from the spacecraft
func (s *System) Load(sc *spacecraft.Spacecraft) error {
	s.capacity = sc.CrewCapacity()
	s.current = sc.CrewCount
	if s.current > s.capacity {
		s.current = s.capacity
	}
	if s.current < 0 {
		s.current = 0
	}
	return nil
}

// Save writes the crew count back
func (s *System) Save(sc *spacecraft.Spacecraft) error {
	sc.CrewCount = s.current
	return nil
}

// Update pays the crew for every payday boundary crossed in (t0, t1]
func (s *System) Update(t0, t1 time.Time) error {
	if !t1.After(t0) {
		return nil
	}

	for payday := nextPayday(t0); !payday.After(t1); payday = payday.Add(PaydayInterval) {
		s.payday(payday)
	}
	return nil
}

func nextPayday(t time.Time) time.Time {
	elapsed := t.Sub(shared.SimulationEpoch)
	days := elapsed / PaydayInterval
	next := shared.SimulationEpoch.Add((days + 1) * PaydayInterval)
	return next
}

func (s *System) payday(at time.Time) {
	paid := 0
	for i := 0; i < s.current; i++ {
		if s.wallet == nil {
			paid++
			continue
		}
		if s.wallet.Balance() < s.dailyCost || s.wallet.Spend(s.dailyCost) != nil {
			break
		}
		paid++
	}

	if paid < s.current {
		dismissed := s.current - paid
		s.current = paid
		s.log.Warn("crew dismissed for lack of credits", "dismissed", dismissed, "remaining", paid, "payday", at)
		if s.notifier != nil {
			s.notifier.Notify("Crew members left the spacecraft because they could not be paid")
		}
	}
	s.lastPaydayAt = at
}

// Hire sets the crew count, clamped to capacity, and returns the new count
func (s *System) Hire(count int) int {
	if count < 0 {
		count = 0
	}
	if count > s.capacity {
		count = s.capacity
	}
	s.current = count
	return s.current
}

// AvailableCrew returns the crew aboard
func (s *System) AvailableCrew() int {
	return s.current
}

// Capacity returns the crew the structure can house
func (s *System) Capacity() int {
	return s.capacity
}

// DailyCost returns the total cost of the current crew per day
func (s *System) DailyCost() int64 {
	return int64(s.current) * s.dailyCost
}

// LastPayday returns the time of the last payday, zero before the first one
func (s *System) LastPayday() time.Time {
	return s.lastPaydayAt
}
