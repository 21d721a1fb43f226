package propellant

import (
	"time"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/spacecraft"
)

// Maneuver is a burn supplied by the trajectory source
type Maneuver struct {
	Start        time.Time
	Duration     time.Duration
	ThrustFactor float64
}

// End returns when the burn stops
func (m Maneuver) End() time.Time {
	return m.Start.Add(m.Duration)
}

// TrajectorySource supplies the current maneuver schedule
type TrajectorySource interface {
	Maneuvers() []Maneuver
}

// System tracks propellant mass while flying
type System struct {
	trajectory TrajectorySource
	rate       float64
	capacity   float64
	mass       float64
}

// NewSystem creates a propellant system; a nil trajectory means no burns
func NewSystem(trajectory TrajectorySource) *System {
	return &System{trajectory: trajectory}
}

// Load starts from the propellant stored at launch
func (s *System) Load(sc *spacecraft.Spacecraft) error {
	metrics := sc.PropulsionMetrics()
	s.rate = metrics.PropellantRate
	s.capacity = metrics.PropellantMassCapacity
	s.mass = sc.PropellantMassAtLaunch
	if s.mass > s.capacity {
		s.mass = s.capacity
	}
	return nil
}

// Save stores the remaining propellant as the launch value
func (s *System) Save(sc *spacecraft.Spacecraft) error {
	sc.PropellantMassAtLaunch = s.mass
	return nil
}

// Update burns propellant for every maneuver overlapping (t0, t1]
func (s *System) Update(t0, t1 time.Time) error {
	if !t1.After(t0) || s.trajectory == nil {
		return nil
	}

	for _, maneuver := range s.trajectory.Maneuvers() {
		start := maneuver.Start
		if start.Before(t0) {
			start = t0
		}
		end := maneuver.End()
		if end.After(t1) {
			end = t1
		}
		if !end.After(start) {
			continue
		}

		s.mass -= s.rate * maneuver.ThrustFactor * end.Sub(start).Seconds()
		if s.mass < 0 {
			s.mass = 0
		}
	}
	return nil
}

// PropellantMass returns the remaining propellant in T
func (s *System) PropellantMass() float64 {
	return s.mass
}

// Refill adds propellant up to capacity and returns the mass added
func (s *System) Refill(mass float64) float64 {
	added := mass
	if s.mass+added > s.capacity {
		added = s.capacity - s.mass
	}
	if added < 0 {
		added = 0
	}
	s.mass += added
	return added
}
