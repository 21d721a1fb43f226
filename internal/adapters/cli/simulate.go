package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/metrics"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation/commands"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/propellant"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
)

// environmentFlags describe where the spacecraft sits during a run
type environmentFlags struct {
	docked      bool
	sunDistance float64
	occluded    bool
	deepSpace   bool
	asteroid    string
	density     float64
}

func (e *environmentFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&e.docked, "docked", false, "Spacecraft is docked at a station")
	cmd.Flags().Float64Var(&e.sunDistance, "sun-distance", 1, "Distance to the sun in AU")
	cmd.Flags().BoolVar(&e.occluded, "occluded", false, "Sunlight is blocked")
	cmd.Flags().BoolVar(&e.deepSpace, "deep-space", false, "Spacecraft is in deep space, solar panels produce nothing")
	cmd.Flags().StringVar(&e.asteroid, "asteroid", "", "Mineral of the asteroid the spacecraft is anchored to")
	cmd.Flags().Float64Var(&e.density, "density", 1, "Mineral density of the asteroid in [0, 1]")
}

func (e *environmentFlags) spec() commands.EnvironmentSpec {
	return commands.EnvironmentSpec{
		Docked:          e.docked,
		SunDistance:     e.sunDistance,
		Occluded:        e.occluded,
		InDeepSpace:     e.deepSpace,
		AsteroidMineral: e.asteroid,
		AsteroidDensity: e.density,
	}
}

// parseManeuver reads "<offset>:<duration>:<thrust factor>", offset being
// measured from the start of the run, e.g. "10m:30s:0.5"
func parseManeuver(value string, start time.Time) (propellant.Maneuver, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return propellant.Maneuver{}, fmt.Errorf("burn %q: expected <offset>:<duration>:<thrust factor>", value)
	}
	offset, err := time.ParseDuration(parts[0])
	if err != nil {
		return propellant.Maneuver{}, fmt.Errorf("burn %q: invalid offset: %w", value, err)
	}
	duration, err := time.ParseDuration(parts[1])
	if err != nil {
		return propellant.Maneuver{}, fmt.Errorf("burn %q: invalid duration: %w", value, err)
	}
	factor, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return propellant.Maneuver{}, fmt.Errorf("burn %q: invalid thrust factor: %w", value, err)
	}
	if offset < 0 || duration <= 0 || factor < 0 || factor > 1 {
		return propellant.Maneuver{}, fmt.Errorf("burn %q: offset must be >= 0, duration > 0 and thrust factor within [0, 1]", value)
	}
	return propellant.Maneuver{Start: start.Add(offset), Duration: duration, ThrustFactor: factor}, nil
}

// NewSimulateCommand creates the simulate command
func NewSimulateCommand() *cobra.Command {
	var (
		steps    int
		step     time.Duration
		realtime bool
		speed    float64
		start    string
		groups   []int
		mining   bool
		burns    []string
		dryRun   bool
		env      environmentFlags
	)

	cmd := &cobra.Command{
		Use:   "simulate <spacecraft-id>",
		Short: "Run the resource simulation of a spacecraft",
		Long: `Load a spacecraft, toggle its processing groups and mining rig, play
N ticks and save the result.

Ticks run back to back unless --realtime paces them on the wall clock at
--speed simulated seconds per second. Interrupting a realtime run keeps the
ticks already played.

Examples:
  shipwright simulate <spacecraft-id> --steps 60 --step 1m --group 0
  shipwright simulate <spacecraft-id> --asteroid ore --density 0.5 --mining
  shipwright simulate <spacecraft-id> --steps 600 --step 1s --burn 1m:30s:1
  shipwright simulate <spacecraft-id> --realtime --speed 120 --steps 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpacecraftID(args[0])
			if err != nil {
				return err
			}
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive")
			}

			startTime := shared.SimulationEpoch
			if start != "" {
				if startTime, err = time.Parse(time.RFC3339, start); err != nil {
					return fmt.Errorf("invalid --start: %w", err)
				}
			}

			var maneuvers []propellant.Maneuver
			for _, burn := range burns {
				maneuver, err := parseManeuver(burn, startTime)
				if err != nil {
					return err
				}
				maneuvers = append(maneuvers, maneuver)
			}

			ident, err := resolvePlayerIdentifier()
			if err != nil {
				return err
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if !cmd.Flags().Changed("step") {
				step = a.cfg.Simulation.TickStep
			}
			if !cmd.Flags().Changed("speed") {
				speed = a.cfg.Simulation.Speed
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if realtime && metrics.IsEnabled() {
				server := metrics.NewServer(a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path, a.logger)
				if err := server.Start(ctx); err != nil {
					return err
				}
			}

			response, err := a.mediator.Send(ctx, &commands.RunSimulationCommand{
				SpacecraftID:      id,
				PlayerID:          ident.IDPtr(),
				PlayerName:        ident.Name,
				Start:             startTime,
				Steps:             steps,
				Step:              step,
				Realtime:          realtime,
				Speed:             speed,
				ActivateGroups:    groups,
				ActivateMiningRig: mining,
				Environment:       env.spec(),
				Maneuvers:         maneuvers,
				DryRun:            dryRun,
			})
			if err != nil {
				return fmt.Errorf("simulation failed: %w", err)
			}

			printRunSummary(cmd.OutOrStdout(), response.(*commands.RunSimulationResponse), dryRun)
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 60, "Number of ticks to play")
	cmd.Flags().DurationVar(&step, "step", time.Minute, "Simulated duration of one tick (default from configuration)")
	cmd.Flags().BoolVar(&realtime, "realtime", false, "Pace ticks on the wall clock")
	cmd.Flags().Float64Var(&speed, "speed", 60, "Simulated seconds per wall second in realtime mode (default from configuration)")
	cmd.Flags().StringVar(&start, "start", "", "Simulated start time, RFC 3339 (default: simulation epoch)")
	cmd.Flags().IntSliceVar(&groups, "group", nil, "Processing group to activate (repeatable)")
	cmd.Flags().BoolVar(&mining, "mining", false, "Activate the mining rig")
	cmd.Flags().StringArrayVar(&burns, "burn", nil, "Engine burn <offset>:<duration>:<thrust factor> (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run without saving the spacecraft or player credits")
	env.register(cmd)

	return cmd
}

func printRunSummary(out io.Writer, response *commands.RunSimulationResponse, dryRun bool) {
	result := response.Result
	last := result.Last

	fmt.Fprintln(out, "Simulation Summary")
	fmt.Fprintln(out, "==================")
	fmt.Fprintf(out, "Ticks:          %d (%s simulated)\n", result.Ticks, formatSimulatedDuration(result.End.Sub(result.Start)))
	fmt.Fprintf(out, "Ended at:       %s\n", result.End.Format(time.RFC3339))
	fmt.Fprintf(out, "Processed:      %s\n", formatMass(result.ProcessedMass))
	fmt.Fprintf(out, "Mined:          %s\n", formatMass(result.MinedMass))
	fmt.Fprintf(out, "Energy:         %.1f kWh\n", last.Energy)
	fmt.Fprintf(out, "Crew:           %d (%d busy)\n", last.Crew, last.BusyCrew)
	fmt.Fprintf(out, "Propellant:     %s\n", formatMass(last.Propellant))
	fmt.Fprintf(out, "Credits:        %s\n", formatCredits(response.Credits))
	if last.MiningStatus != "" {
		fmt.Fprintf(out, "Mining rig:     %s (%.3f T/s)\n", last.MiningStatus, last.MiningRate)
	}

	if len(last.Groups) > 0 {
		fmt.Fprintln(out, "\nProcessing groups:")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tACTIVE\tCHAINS")
		for _, group := range last.Groups {
			fmt.Fprintf(w, "%d\t%v\t%s\n", group.GroupIndex, group.Active, joinOrDash(group.Statuses))
		}
		_ = w.Flush()
	}

	if len(last.Cargo) > 0 {
		fmt.Fprintln(out, "\nCargo:")
		totals := map[string]float64{}
		for _, cargo := range last.Cargo {
			totals[cargo.Resource] += cargo.Amount
		}
		resources := make([]string, 0, len(totals))
		for resource := range totals {
			resources = append(resources, resource)
		}
		sort.Strings(resources)
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, resource := range resources {
			fmt.Fprintf(w, "  %s\t%s\n", resource, formatMass(totals[resource]))
		}
		_ = w.Flush()
	}

	if len(response.Notifications) > 0 {
		fmt.Fprintln(out, "\nNotifications:")
		for _, message := range response.Notifications {
			fmt.Fprintf(out, "  • %s\n", message)
		}
	}

	if dryRun {
		fmt.Fprintln(out, "\nDry run: nothing saved")
	}
}
