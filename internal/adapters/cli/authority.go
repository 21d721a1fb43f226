package cli

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	catalogAdapter "github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/catalog"
	grpcAdapter "github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/grpc"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/adapters/metrics"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/common"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/application/simulation"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/domain/shared"
	"github.com/strangergwenn/AstralShipwright-sub002/internal/infrastructure/pidfile"
)

// NewAuthorityCommand creates the authority command with subcommands
func NewAuthorityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authority",
		Short: "Host an authoritative simulation and talk to it",
		Long: `Host the authoritative simulation of one spacecraft over gRPC, or act as
a replica: read its snapshot and forward toggles to it.

Examples:
  shipwright authority serve <spacecraft-id> --group 0 --speed 60
  shipwright authority snapshot
  shipwright authority set-group 0 off
  shipwright authority set-mining on`,
	}

	// Add subcommands
	cmd.AddCommand(newAuthorityServeCommand())
	cmd.AddCommand(newAuthoritySnapshotCommand())
	cmd.AddCommand(newAuthoritySetGroupCommand())
	cmd.AddCommand(newAuthoritySetMiningCommand())

	return cmd
}

// newAuthorityServeCommand creates the authority serve subcommand
func newAuthorityServeCommand() *cobra.Command {
	var (
		listen string
		step   time.Duration
		speed  float64
		groups []int
		mining bool
		dryRun bool
		env    environmentFlags
	)

	cmd := &cobra.Command{
		Use:   "serve <spacecraft-id>",
		Short: "Run the authoritative simulation of a spacecraft and serve it over gRPC",
		Long: `Load a spacecraft, play ticks on the wall clock and accept toggles from
replicas between ticks. On shutdown (Ctrl+C) the spacecraft and the player
credits are saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseSpacecraftID(args[0])
			if err != nil {
				return err
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

			if listen == "" {
				listen = a.cfg.Authority.Listen
			}
			if !cmd.Flags().Changed("step") {
				step = a.cfg.Simulation.TickStep
			}
			if !cmd.Flags().Changed("speed") {
				speed = a.cfg.Simulation.Speed
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx = common.WithLogger(ctx, a.logger)

			owner, err := common.NewPlayerResolver(a.playerRepo).ResolvePlayer(ctx, ident.IDPtr(), ident.Name)
			if err != nil {
				return err
			}
			sc, err := a.spacecraftRepo.FindByID(ctx, id, owner.ID)
			if err != nil {
				return fmt.Errorf("failed to find spacecraft: %w", err)
			}
			environment, err := env.spec().Build(a.catalog)
			if err != nil {
				return err
			}

			lock := pidfile.ForAuthority("", sc.Identifier.String())
			if err := lock.Acquire(); err != nil {
				return fmt.Errorf("cannot host %s: %w", sc.Name, err)
			}
			defer lock.Release()

			logger := a.logger.With("spacecraft", sc.Identifier.String())
			session := simulation.NewSession(simulation.SessionOptions{
				Environment:      environment,
				Wallet:           owner,
				Notifier:         simulation.NewLogNotifier(logger),
				DailyCrewCost:    a.cfg.Simulation.DailyCrewCost,
				Authority:        true,
				StrictInvariants: a.cfg.Simulation.StrictInvariants,
				Logger:           logger,
			})
			if err := session.Load(sc); err != nil {
				return err
			}
			if err := session.Activate(ctx, groups, mining); err != nil {
				return err
			}

			var journal simulation.Journal
			if a.journal != nil {
				journal = a.journal
			}
			var recorder simulation.Recorder
			if a.recorder != nil {
				recorder = a.recorder
			}
			host, err := simulation.NewHost(session, shared.SimulationEpoch, step, journal, recorder)
			if err != nil {
				return err
			}

			listener, err := net.Listen("tcp", listen)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", listen, err)
			}
			server := grpcAdapter.NewGRPCServer(grpcAdapter.NewAuthorityServer(host, logger))

			if metrics.IsEnabled() {
				metricsServer := metrics.NewServer(a.cfg.Metrics.Host, a.cfg.Metrics.Port, a.cfg.Metrics.Path, logger)
				if err := metricsServer.Start(ctx); err != nil {
					return err
				}
			}

			logger.Info("authority serving", "addr", listener.Addr().String(), "step", step, "speed", speed)
			fmt.Fprintf(cmd.OutOrStdout(), "Authority for %s listening on %s (Ctrl+C to stop)\n", sc.Name, listener.Addr())

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return grpcAdapter.Serve(gctx, server, listener) })
			g.Go(func() error { return host.Serve(gctx, speed) })
			serveErr := g.Wait()

			state := host.State()
			logger.Info("authority stopped", "ticks", state.Tick, "time", state.Time)

			if dryRun {
				return serveErr
			}
			saved, err := host.Save()
			if err != nil {
				return err
			}
			saveCtx := context.WithoutCancel(ctx)
			if err := a.spacecraftRepo.Save(saveCtx, owner.ID, saved); err != nil {
				return fmt.Errorf("failed to save spacecraft: %w", err)
			}
			if err := a.playerRepo.UpdateCredits(saveCtx, owner.ID, owner.Credits); err != nil {
				return fmt.Errorf("failed to save player credits: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s after %d ticks\n", sc.Name, state.Tick)
			return serveErr
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "gRPC listen address (default from configuration)")
	cmd.Flags().DurationVar(&step, "step", time.Minute, "Simulated duration of one tick (default from configuration)")
	cmd.Flags().Float64Var(&speed, "speed", 60, "Simulated seconds per wall second (default from configuration)")
	cmd.Flags().IntSliceVar(&groups, "group", nil, "Processing group to activate at start (repeatable)")
	cmd.Flags().BoolVar(&mining, "mining", false, "Activate the mining rig at start")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not save on shutdown")
	env.register(cmd)

	return cmd
}

// dialAuthority connects to the authority address of the configuration,
// overridden by --address
func dialAuthority(address string) (*grpcAdapter.AuthorityClient, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if address == "" {
		address = cfg.Authority.Address
	}
	cat, err := catalogAdapter.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return grpcAdapter.NewAuthorityClient(address, cat, cfg.Authority.Timeout)
}

// parseSwitch reads on/off style arguments
func parseSwitch(value string) (bool, error) {
	switch value {
	case "on", "start":
		return true, nil
	case "off", "stop":
		return false, nil
	default:
		active, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("expected on or off, got %q", value)
		}
		return active, nil
	}
}

// newAuthoritySnapshotCommand creates the authority snapshot subcommand
func newAuthoritySnapshotCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print the replicated state of the authority",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := dialAuthority(address)
			if err != nil {
				return err
			}
			defer client.Close()

			state, err := client.GetSnapshot(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to get snapshot: %w", err)
			}
			printHostState(cmd.OutOrStdout(), state)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Authority address (default from configuration)")

	return cmd
}

// newAuthoritySetGroupCommand creates the authority set-group subcommand
func newAuthoritySetGroupCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "set-group <group-index> <on|off>",
		Short: "Forward a processing group toggle to the authority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			groupIndex, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid group index %q", args[0])
			}
			active, err := parseSwitch(args[1])
			if err != nil {
				return err
			}

			client, err := dialAuthority(address)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.ForwardProcessingGroupActive(cmd.Context(), groupIndex, active); err != nil {
				return fmt.Errorf("failed to toggle group %d: %w", groupIndex, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Group %d active=%v\n", groupIndex, active)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Authority address (default from configuration)")

	return cmd
}

// newAuthoritySetMiningCommand creates the authority set-mining subcommand
func newAuthoritySetMiningCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "set-mining <on|off>",
		Short: "Forward a mining rig toggle to the authority",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			active, err := parseSwitch(args[0])
			if err != nil {
				return err
			}

			client, err := dialAuthority(address)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.ForwardMiningRigActive(cmd.Context(), active); err != nil {
				return fmt.Errorf("failed to toggle mining rig: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Mining rig active=%v\n", active)
			return nil
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Authority address (default from configuration)")

	return cmd
}

func printHostState(out io.Writer, state simulation.HostState) {
	fmt.Fprintf(out, "Spacecraft: %s\n", state.Spacecraft)
	fmt.Fprintf(out, "Tick:       %d\n", state.Tick)
	fmt.Fprintf(out, "Time:       %s\n", state.Time.Format(time.RFC3339))

	if rig := state.Snapshot.MiningRig; rig != nil {
		fmt.Fprintf(out, "Mining rig: active=%v status=%s\n", rig.Active, rig.Status)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nGROUP\tACTIVE\tCHAINS")
	for _, group := range state.Snapshot.Groups {
		statuses := make([]string, 0, len(group.Statuses))
		for _, status := range group.Statuses {
			statuses = append(statuses, status.String())
		}
		fmt.Fprintf(w, "%d\t%v\t%s\n", group.GroupIndex, group.Active, joinOrDash(statuses))
	}
	_ = w.Flush()

	fmt.Fprintln(out, "\nCargo:")
	for ci, slots := range state.Snapshot.Cargo {
		for mi, cargo := range slots {
			if cargo.Resource == nil {
				continue
			}
			fmt.Fprintf(out, "  [%d.%d] %s %s\n", ci, mi, formatMass(cargo.Amount), cargo.Resource.Identifier)
		}
	}
}
