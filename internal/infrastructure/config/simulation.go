package config

import "time"

// SimulationConfig holds the defaults of simulation runs
type SimulationConfig struct {
	// Simulated duration of one tick
	TickStep time.Duration `mapstructure:"tick_step" validate:"required"`

	// Simulated seconds per wall second in realtime mode
	Speed float64 `mapstructure:"speed" validate:"gt=0"`

	// Panic on invariant faults instead of clamping
	StrictInvariants bool `mapstructure:"strict_invariants"`

	// Directory of the tick journals, empty disables journaling
	JournalDir string `mapstructure:"journal_dir"`

	// Credits paid per crew member every simulated day
	DailyCrewCost int64 `mapstructure:"daily_crew_cost" validate:"min=1"`

	// Credits granted to newly registered players
	StartingCredits int64 `mapstructure:"starting_credits" validate:"min=0"`
}

// CatalogConfig selects the asset catalog
type CatalogConfig struct {
	// YAML catalog path, empty selects the built-in catalog
	Path string `mapstructure:"path"`
}

// AuthorityConfig holds the authority gRPC endpoints
type AuthorityConfig struct {
	// Address the authority server listens on
	Listen string `mapstructure:"listen" validate:"required"`

	// Address replicas dial
	Address string `mapstructure:"address" validate:"required"`

	// Timeout of a single call
	Timeout time.Duration `mapstructure:"timeout"`
}
