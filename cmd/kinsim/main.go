package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/kinsim/internal/analysis"
	"github.com/san-kum/kinsim/internal/config"
	"github.com/san-kum/kinsim/internal/experiment"
	"github.com/san-kum/kinsim/internal/export"
	"github.com/san-kum/kinsim/internal/kin"
	"github.com/san-kum/kinsim/internal/sim"
	"github.com/san-kum/kinsim/internal/storage"
	"github.com/san-kum/kinsim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	tolerance  float64
	adaptive   bool
	integrator string
	concFlags  []string
	rateFlags  []string
	// Two-segment output grid
	joinTime float64
	fineDt   float64
	coarseDt float64
	// Config file and preset
	configFile string
	preset     string
	// svg output
	outFile    string
	plotWidth  int
	plotHeight int
	// analyze target
	speciesName string
	// ensemble sweep
	numRuns int
	jitter  float64
	seed    int64
)

// defaultConcer is implemented by every built-in mechanism.
type defaultConcer interface {
	DefaultConc() kin.Conc
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "kinsim",
		Short: "chemical kinetics simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".kinsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [mechanism]",
		Short: "integrate a mechanism and save the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSolveFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render concentration trajectories to an SVG file",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVar(&outFile, "out", "concentrations.svg", "output file")
	svgCmd.Flags().IntVar(&plotWidth, "width", 800, "plot width in pixels")
	svgCmd.Flags().IntVar(&plotHeight, "height", 500, "plot height in pixels")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	liveCmd := &cobra.Command{
		Use:   "live [mechanism]",
		Short: "watch concentrations evolve with live rate tuning",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSolveFlags(liveCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation spectrum of one species",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&speciesName, "species", "", "species to analyze (default: first)")

	eqCmd := &cobra.Command{
		Use:   "eq [mechanism]",
		Short: "equilibrium composition and relaxation time",
		Args:  cobra.ExactArgs(1),
		RunE:  equilibriumReport,
	}
	addSolveFlags(eqCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [mechanism] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same mechanism",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.0001, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 1.0, "duration")

	sweepCmd := &cobra.Command{
		Use:   "sweep [mechanism]",
		Short: "ensemble of runs from jittered initial concentrations",
		Args:  cobra.ExactArgs(1),
		RunE:  sweepRuns,
	}
	addSolveFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numRuns, "runs", 8, "number of ensemble runs")
	sweepCmd.Flags().Float64Var(&jitter, "jitter", 0.1, "relative initial-concentration jitter")
	sweepCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	presetsCmd := &cobra.Command{
		Use:   "presets [mechanism]",
		Short: "list available presets for a mechanism",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for mechanism: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench [mechanism]",
		Short: "benchmark a mechanism",
		Args:  cobra.ExactArgs(1),
		RunE:  benchMechanism,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, svgCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, liveCmd, analyzeCmd, eqCmd, compareCmd, sweepCmd, presetsCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.0001, "internal timestep")
	cmd.Flags().Float64Var(&duration, "time", 1.0, "duration")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive tolerance")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive stepping (rk45)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringSliceVar(&concFlags, "conc", nil, "initial concentration, e.g. --conc A=1 --conc B=0.5")
	cmd.Flags().StringSliceVar(&rateFlags, "rate", nil, "rate constant override, e.g. --rate k1f=450")
	cmd.Flags().Float64Var(&joinTime, "join", 0, "two-segment grid: join time (0 = uniform grid)")
	cmd.Flags().Float64Var(&fineDt, "fine-dt", 0, "two-segment grid: fine spacing before join")
	cmd.Flags().Float64Var(&coarseDt, "coarse-dt", 0, "two-segment grid: coarse spacing after join")
}

// resolveMechanism builds the mechanism for a name, supporting
// "custom" networks defined in the config file.
func resolveMechanism(registry *experiment.Registry, name string, cfg *config.Config) (kin.Mechanism, error) {
	if name == "custom" {
		if cfg == nil {
			return nil, fmt.Errorf("custom mechanism requires --config")
		}
		return cfg.BuildCustom()
	}
	return registry.GetMechanism(name)
}

// initialConc resolves the starting vector: mechanism default, then
// config file, then --conc flags.
func initialConc(mech kin.Mechanism, cfg *config.Config) (kin.Conc, error) {
	var c0 kin.Conc
	if d, ok := mech.(defaultConcer); ok {
		c0 = d.DefaultConc()
	} else {
		c0 = make(kin.Conc, mech.Dim())
	}

	if cfg != nil {
		fromCfg, err := cfg.InitConcFor(mech)
		if err != nil {
			return nil, err
		}
		if fromCfg != nil {
			c0 = fromCfg
		}
	}

	if len(concFlags) > 0 {
		index := make(map[string]int)
		for i, s := range mech.Species() {
			index[s] = i
		}
		for _, entry := range concFlags {
			name, val, err := parseAssignment(entry)
			if err != nil {
				return nil, err
			}
			i, ok := index[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", kin.ErrUnknownSpecies, name)
			}
			c0[i] = val
		}
	}
	return c0, nil
}

func applyRateOverrides(mech kin.Mechanism, cfg *config.Config) error {
	tunable, ok := mech.(kin.Configurable)
	overrides := make(map[string]float64)
	if cfg != nil {
		for k, v := range cfg.Rates {
			overrides[k] = v
		}
	}
	for _, entry := range rateFlags {
		name, val, err := parseAssignment(entry)
		if err != nil {
			return err
		}
		overrides[name] = val
	}
	if len(overrides) == 0 {
		return nil
	}
	if !ok {
		return fmt.Errorf("mechanism does not support rate overrides")
	}
	known := tunable.GetParams()
	for name, val := range overrides {
		if _, exists := known[name]; !exists {
			return fmt.Errorf("unknown rate constant: %s", name)
		}
		tunable.SetParam(name, val)
	}
	return nil
}

func parseAssignment(entry string) (string, float64, error) {
	parts := strings.SplitN(entry, "=", 2)
	if len(parts) != 2 {
		return "", 0, fmt.Errorf("expected name=value, got %q", entry)
	}
	val, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad value in %q: %w", entry, err)
	}
	return strings.TrimSpace(parts[0]), val, nil
}

// buildGrid resolves the output grid from flags or config; nil means
// uniform from dt and duration.
func buildGrid(cfg *config.Config) ([]float64, error) {
	if joinTime > 0 {
		return kin.TwoSegmentGrid(0, joinTime, duration, fineDt, coarseDt)
	}
	if cfg != nil {
		return cfg.BuildGrid()
	}
	return nil, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	mechName := args[0]

	if preset != "" {
		p := config.GetPreset(mechName, preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(mechName))
		}
		dt = p.Dt
		duration = p.Duration
		integrator = p.Integrator
		adaptive = p.Adaptive
		if p.Tolerance > 0 {
			tolerance = p.Tolerance
		}
		if p.Grid.Join > 0 {
			joinTime, fineDt, coarseDt = p.Grid.Join, p.Grid.FineDt, p.Grid.CoarseDt
		}
		for name, v := range p.InitConc {
			concFlags = append([]string{fmt.Sprintf("%s=%g", name, v)}, concFlags...)
		}
	}

	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("time") {
			duration = cfg.Duration
		}
		if !cmd.Flags().Changed("integrator") {
			integrator = cfg.Integrator
		}
		if !cmd.Flags().Changed("adaptive") {
			adaptive = cfg.Adaptive
		}
		if !cmd.Flags().Changed("tol") && cfg.Tolerance > 0 {
			tolerance = cfg.Tolerance
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	mech, err := resolveMechanism(registry, mechName, cfg)
	if err != nil {
		return err
	}
	if err := applyRateOverrides(mech, cfg); err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	c0, err := initialConc(mech, cfg)
	if err != nil {
		return err
	}

	grid, err := buildGrid(cfg)
	if err != nil {
		return err
	}

	expCfg := experiment.Config{
		Mechanism:  mechName,
		Integrator: integrator,
		InitConc:   c0,
		Dt:         dt,
		Duration:   duration,
		Tolerance:  tolerance,
		Adaptive:   adaptive,
		Grid:       grid,
	}

	exp := experiment.New(expCfg)
	if err := exp.Setup(mech, integ, registry.DefaultMetrics(mech, c0)); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", mechName)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(mechName, mech.Species(), dt, duration, integrator, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d (internal steps: %d)\n", len(result.Concs), result.StepsTaken)
	if result.MassDrift > 0 {
		fmt.Printf("mass drift: %.2e\n", result.MassDrift)
	}
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}

	fmt.Println("\nfinal concentrations:")
	final := result.Concs[len(result.Concs)-1]
	for i, name := range mech.Species() {
		fmt.Printf("  %-6s %.6f\n", name, final[i])
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMECHANISM\tTIME\tDURATION\tDT\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.2es\t%s\n",
			run.ID,
			run.Mechanism,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	concs, _, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(concs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mechanism: %s\n", meta.Mechanism)
	fmt.Printf("samples: %d\n\n", len(concs))

	for idx := 0; idx < len(concs[0]); idx++ {
		data := make([]float64, len(concs))
		for i := range concs {
			if idx < len(concs[i]) {
				data[i] = concs[i][idx]
			}
		}

		caption := fmt.Sprintf("c%d vs time", idx)
		if idx < len(meta.Species) {
			caption = fmt.Sprintf("[%s] vs time", meta.Species[idx])
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func svgRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	concs, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(concs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	series := make([][]float64, len(concs[0]))
	for idx := range series {
		series[idx] = make([]float64, len(concs))
		for i := range concs {
			if idx < len(concs[i]) {
				series[idx][i] = concs[i][idx]
			}
		}
	}

	if err := export.WritePlot(outFile, times, series, meta.Species, plotWidth, plotHeight); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d series, %d samples)\n", outFile, len(series), len(times))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	concs, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(concs) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range concs[0] {
		if i < len(meta.Species) {
			header = append(header, meta.Species[i])
		} else {
			header = append(header, fmt.Sprintf("c%d", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range concs {
		row := []string{strconv.FormatFloat(times[i], 'g', 12, 64)}
		for _, val := range concs[i] {
			row = append(row, strconv.FormatFloat(val, 'g', 12, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	concs, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return storage.ExportJSON(enc, meta, concs, times)
}

func runLive(cmd *cobra.Command, args []string) error {
	mechName := args[0]

	registry := experiment.NewRegistry()

	mech, err := registry.GetMechanism(mechName)
	if err != nil {
		return err
	}
	if err := applyRateOverrides(mech, nil); err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	c0, err := initialConc(mech, nil)
	if err != nil {
		return err
	}

	m := viz.NewModel(mech, integ, c0, dt, mechName)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	concs, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(concs) == 0 || len(concs[0]) == 0 {
		return fmt.Errorf("no data")
	}

	idx := 0
	if speciesName != "" {
		idx = -1
		for i, s := range meta.Species {
			if s == speciesName {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %q (have %v)", kin.ErrUnknownSpecies, speciesName, meta.Species)
		}
	}

	name := fmt.Sprintf("c%d", idx)
	if idx < len(meta.Species) {
		name = meta.Species[idx]
	}

	fmt.Printf("spectrum: %s [%s]\n", meta.ID, name)
	fmt.Printf("mechanism: %s\n\n", meta.Mechanism)

	data := make([]float64, len(concs))
	for i := range concs {
		if idx < len(concs[i]) {
			data[i] = concs[i][idx]
		}
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum [%s]", name)),
	)
	fmt.Println(graph)
	fmt.Println()

	sampleDt := 0.0
	if len(times) > 1 {
		sampleDt = (times[len(times)-1] - times[0]) / float64(len(times)-1)
	}
	freq, period := analysis.DominantFrequency(data, sampleDt)
	if freq > 0 {
		fmt.Printf("dominant frequency: %.4g hz\n", freq)
		fmt.Printf("period: %.4g s\n", period)
	} else {
		fmt.Println("no dominant oscillation found")
	}

	return nil
}

func equilibriumReport(cmd *cobra.Command, args []string) error {
	mechName := args[0]

	registry := experiment.NewRegistry()
	mech, err := registry.GetMechanism(mechName)
	if err != nil {
		return err
	}
	if err := applyRateOverrides(mech, nil); err != nil {
		return err
	}

	eqr, ok := mech.(kin.Equilibrator)
	if !ok {
		return fmt.Errorf("mechanism %s has no closed-form equilibrium", mechName)
	}

	c0, err := initialConc(mech, nil)
	if err != nil {
		return err
	}

	total := 0.0
	if cons, ok := mech.(kin.Conserver); ok {
		total = cons.Total(c0)
	}
	eq := eqr.Equilibrium(total)

	fmt.Printf("equilibrium composition (%s):\n", mechName)
	for i, name := range mech.Species() {
		if i < len(eq) {
			fmt.Printf("  %-6s %.8f\n", name, eq[i])
		}
	}

	rates := mech.Rates(eq, 0)
	fmt.Printf("residual rate norm at fixed point: %.3e\n\n", rates.Norm())

	// cross-check by integrating toward the fixed point
	integ, err := registry.GetIntegrator("backward_euler")
	if err != nil {
		return err
	}
	s := sim.New(mech, integ)
	simCfg := kin.DefaultConfig()
	simCfg.Dt = dt
	simCfg.Duration = duration
	result, err := s.Run(context.Background(), c0, simCfg)
	if err != nil {
		return err
	}

	final := result.Concs[len(result.Concs)-1]
	fmt.Printf("integrated endpoint at t=%.3g:\n", result.Times[len(result.Times)-1])
	for i, name := range mech.Species() {
		fmt.Printf("  %-6s %.8f\n", name, final[i])
	}

	concs := make([][]float64, len(result.Concs))
	for i, c := range result.Concs {
		concs[i] = c
	}
	tau := analysis.RelaxationTime(result.Times, concs, eq)
	if tau > 0 {
		fmt.Printf("relaxation time: %.4g s\n", tau)
	}

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	mechName := args[0]
	names := args[1:]

	registry := experiment.NewRegistry()
	mech, err := registry.GetMechanism(mechName)
	if err != nil {
		return err
	}

	var c0 kin.Conc
	if d, ok := mech.(defaultConcer); ok {
		c0 = d.DefaultConc()
	} else {
		c0 = make(kin.Conc, mech.Dim())
	}

	fmt.Printf("comparing integrators for %s (dt=%.2e, duration=%.2gs)\n\n", mechName, dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL[0]\tMASS_DRIFT\tSTEPS\tTIME_MS")

	for _, intName := range names {
		integ, err := registry.GetIntegrator(intName)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", intName, err)
			continue
		}

		s := sim.New(registryMust(registry, mechName), integ)
		simCfg := kin.DefaultConfig()
		simCfg.Dt = dt
		simCfg.Duration = duration

		start := time.Now()
		result, err := s.Run(context.Background(), c0, simCfg)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", intName, err)
			continue
		}

		final := result.Concs[len(result.Concs)-1]
		fmt.Fprintf(w, "%s\t%.6f\t%.2e\t%d\t%.2f\n",
			intName, final[0], result.MassDrift, result.StepsTaken,
			float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
}

// registryMust returns a fresh mechanism instance; each integrator run
// gets its own so rate tuning in one run cannot leak into the next.
func registryMust(r *experiment.Registry, name string) kin.Mechanism {
	m, err := r.GetMechanism(name)
	if err != nil {
		panic(err)
	}
	return m
}

func sweepRuns(cmd *cobra.Command, args []string) error {
	mechName := args[0]

	registry := experiment.NewRegistry()

	overrides := make(map[string]float64)
	for _, entry := range rateFlags {
		name, val, err := parseAssignment(entry)
		if err != nil {
			return err
		}
		overrides[name] = val
	}
	mechFn, err := registry.MechanismFactoryWith(mechName, overrides)
	if err != nil {
		return err
	}
	integFn, ok := registry.IntegratorFactory(integrator)
	if !ok {
		return fmt.Errorf("unknown integrator: %s", integrator)
	}

	mech := mechFn()
	c0, err := initialConc(mech, nil)
	if err != nil {
		return err
	}

	ens := sim.NewEnsemble(mechFn, integFn, numRuns, jitter, seed)

	simCfg := kin.DefaultConfig()
	simCfg.Dt = dt
	simCfg.Duration = duration
	simCfg.Adaptive = adaptive
	simCfg.Tolerance = tolerance

	fmt.Printf("sweeping %s: %d runs, jitter %.0f%%\n\n", mechName, numRuns, jitter*100)
	start := time.Now()
	results, err := ens.Run(context.Background(), c0, simCfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := "RUN"
	for _, s := range mech.Species() {
		header += "\tFINAL[" + s + "]"
	}
	header += "\tMASS_DRIFT"
	fmt.Fprintln(w, header)

	for i, result := range results {
		if result == nil || len(result.Concs) == 0 {
			continue
		}
		final := result.Concs[len(result.Concs)-1]
		row := strconv.Itoa(i)
		for _, v := range final {
			row += fmt.Sprintf("\t%.6f", v)
		}
		row += fmt.Sprintf("\t%.2e", result.MassDrift)
		fmt.Fprintln(w, row)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\ncompleted in %v\n", elapsed)
	return nil
}

func benchMechanism(cmd *cobra.Command, args []string) error {
	mechName := args[0]

	registry := experiment.NewRegistry()
	mech, err := registry.GetMechanism(mechName)
	if err != nil {
		return err
	}

	var c0 kin.Conc
	if d, ok := mech.(defaultConcer); ok {
		c0 = d.DefaultConc()
	} else {
		c0 = make(kin.Conc, mech.Dim())
	}

	durations := []float64{0.1, 0.5, 1.0}
	dts := []float64{1e-5, 1e-4, 1e-3}

	fmt.Printf("benchmarking %s\n\n", mechName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			integ, err := registry.GetIntegrator("rk4")
			if err != nil {
				return err
			}
			s := sim.New(registryMust(registry, mechName), integ)

			simCfg := kin.DefaultConfig()
			simCfg.Dt = step
			simCfg.Duration = dur

			start := time.Now()
			result, err := s.Run(context.Background(), c0, simCfg)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.0es\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
