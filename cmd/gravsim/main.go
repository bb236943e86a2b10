package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/viz"
)

var (
	logLevel   string
	logFile    string
	configFile string
	dt         float64
	steps      int
	softening  float64
	gravity    float64
	integrator string
	plot       bool
	every      int
	force      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "gravsim",
		Short:        "2-D gravitational n-body simulator",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to file instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and print the final state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator ("+strings.Join(integrators.Names(), ", ")+")")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot total energy")
	runCmd.Flags().IntVar(&every, "every", 0, "print positions every n steps")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario]",
		Short: "compare energy drift across integrators",
		Args:  cobra.MaximumNArgs(1),
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		Args:  cobra.NoArgs,
		RunE:  listScenarios,
	}

	initCmd := &cobra.Command{
		Use:   "init [scenario] [file]",
		Short: "write a built-in scenario to a yaml file",
		Args:  cobra.ExactArgs(2),
		RunE:  initScenario,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, scenariosCmd, initCmd, newMoonCmd())
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&softening, "softening", config.DefaultSoftening, "softening term added to r^3")
	cmd.Flags().Float64Var(&gravity, "g", config.DefaultG, "gravitational constant")
}

// newLogger builds the command logger. The returned close func releases
// the --log-file handle and must be called once the command is done.
func newLogger(cmd *cobra.Command) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, err
	}
	var w io.Writer = cmd.ErrOrStderr()
	closeFn := func() error { return nil }
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w, closeFn = f, f.Close
	}
	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "gravsim",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, closeFn, nil
}

// loadScenario resolves the scenario from --config or a preset name
// (threebody by default). Flags override file values only when set.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("scenario %q and --config are mutually exclusive", args[0])
		}
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		name := "threebody"
		if len(args) > 0 {
			name = args[0]
		}
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown scenario: %s (available: %v)", name, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("softening") {
		cfg.Softening = softening
	}
	if flags.Changed("g") {
		cfg.G = gravity
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulation(cfg *config.Config, name string, logger *log.Logger) (*sim.Simulation, error) {
	integ, err := integrators.New(name)
	if err != nil {
		return nil, err
	}
	return sim.New(cfg.PhysicsBodies(), cfg.Params(), sim.WithIntegrator(integ), sim.WithLogger(logger))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	s, err := newSimulation(cfg, cfg.Integrator, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	field, masses := s.Field(), s.Masses()
	ms := metrics.Default(field, masses)
	observe := func(snap sim.Snapshot) {
		for _, m := range ms {
			m.Observe(snap.State, snap.Time)
		}
	}

	last := s.Snapshot()
	observe(last)
	energy := []float64{field.Energy(masses, last.State)}

	var trace *tabwriter.Writer
	if every > 0 {
		trace = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprint(trace, "step\ttime")
		for i := 0; i < s.Len(); i++ {
			fmt.Fprintf(trace, "\tx%d\ty%d", i, i)
		}
		fmt.Fprintln(trace)
	}

	logger.Info("running scenario", "name", cfg.Name, "bodies", s.Len(), "steps", cfg.Steps, "integrator", s.Integrator())
	start := time.Now()
	for snap := range s.Run(cfg.Steps) {
		observe(snap)
		energy = append(energy, field.Energy(masses, snap.State))
		if trace != nil && snap.Step%every == 0 {
			fmt.Fprintf(trace, "%d\t%.4f", snap.Step, snap.Time)
			for _, p := range snap.Positions {
				fmt.Fprintf(trace, "\t%.6f\t%.6f", p.X, p.Y)
			}
			fmt.Fprintln(trace)
		}
		last = snap
	}
	elapsed := time.Since(start)
	if trace != nil {
		trace.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "%s: %d steps (t=%.4f) in %v\n\n", cfg.Name, last.Step, last.Time, elapsed)
	printBodies(out, physics.Join(masses, last.State))

	fmt.Fprintln(out, "\nmetrics:")
	for _, m := range ms {
		fmt.Fprintf(out, "  %s: %.6g\n", m.Name(), m.Value())
	}
	com := physics.CenterOfMass(masses, last.State)
	fmt.Fprintf(out, "  energy: %.6g\n", field.Energy(masses, last.State))
	fmt.Fprintf(out, "  angular_momentum: %.6g\n", physics.AngularMomentum(masses, last.State))
	fmt.Fprintf(out, "  center_of_mass: (%.6g, %.6g)\n", com.X, com.Y)
	fmt.Fprintf(out, "  healthy: %t\n", s.IsHealthy())

	if plot {
		finite := viz.FinitePrefix(energy)
		if chart := viz.PlotSeries(finite, 60, 10, "total energy"); chart != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, chart)
		}
		if len(finite) < len(energy) {
			fmt.Fprintf(out, "\nenergy is non-finite from step %d: simulation diverged\n", len(finite))
		}
	}
	return nil
}

func printBodies(out io.Writer, bodies []physics.Body) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tMASS\tX\tY\tVX\tVY")
	for i, b := range bodies {
		fmt.Fprintf(w, "%d\t%g\t%.6f\t%.6f\t%.6f\t%.6f\n", i, b.Mass, b.Position.X, b.Position.Y, b.Velocity.X, b.Velocity.Y)
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	if logFile == "" {
		// stderr output would corrupt the view
		logLevel = "fatal"
	}
	logger, closeLog, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cfg.Name, cfg.PhysicsBodies(), cfg.Params(), cfg.Integrator, logger)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer closeLog()
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "comparing integrators for %s (dt=%g, steps=%d)\n\n", cfg.Name, cfg.Dt, cfg.Steps)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tENERGY DRIFT\tMOMENTUM DRIFT\tDIVERGED AT\tTIME")
	for _, name := range integrators.Names() {
		s, err := newSimulation(cfg, name, logger)
		if err != nil {
			return err
		}
		energy := metrics.NewEnergyDrift(s.Field(), s.Masses())
		momentum := metrics.NewMomentumDrift(s.Masses())
		div := metrics.NewDivergence()
		ms := []dynamo.Metric{energy, momentum, div}

		first := s.Snapshot()
		for _, m := range ms {
			m.Observe(first.State, first.Time)
		}
		start := time.Now()
		for snap := range s.Run(cfg.Steps) {
			for _, m := range ms {
				m.Observe(snap.State, snap.Time)
			}
		}
		elapsed := time.Since(start)

		diverged := "-"
		if div.Diverged() {
			diverged = fmt.Sprintf("%.4f", div.Value())
		}
		fmt.Fprintf(w, "%s\t%.3e\t%.3e\t%s\t%v\n", name, energy.Value(), momentum.Value(), diverged, elapsed.Round(time.Microsecond))
	}
	return w.Flush()
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDT\tSTEPS\tSOFTENING\tINTEGRATOR")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%d\t%g\t%d\t%g\t%s\n", name, len(p.Bodies), p.Dt, p.Steps, p.Softening, p.Integrator)
	}
	return w.Flush()
}

func initScenario(cmd *cobra.Command, args []string) error {
	name, path := args[0], args[1]
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("unknown scenario: %s (available: %v)", name, config.ListPresets())
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s to %s\n", name, path)
	return nil
}
