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
	"github.com/san-kum/nukelab/internal/analysis"
	"github.com/san-kum/nukelab/internal/config"
	"github.com/san-kum/nukelab/internal/controllers"
	"github.com/san-kum/nukelab/internal/enrich"
	"github.com/san-kum/nukelab/internal/experiment"
	"github.com/san-kum/nukelab/internal/physics"
	"github.com/san-kum/nukelab/internal/reactor"
	"github.com/san-kum/nukelab/internal/shield"
	"github.com/san-kum/nukelab/internal/storage"
	"github.com/san-kum/nukelab/internal/transport"
	"github.com/san-kum/nukelab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	integrator string
	controller string
	adaptive   bool
	// Initial state parameters
	na     float64 // parent nuclide count (decay)
	power  float64 // initial power level (kinetics)
	nodes  int     // rod discretization (heat)
	tinit  float64 // initial rod temperature (heat)
	iodine float64 // initial I-135 inventory (xenon)
	xe0    float64 // initial Xe-135 inventory (xenon)
	// Controller parameters
	kp     float64
	ki     float64
	kd     float64
	target float64
	rate   float64
	limit  float64
	// Phase plot axes
	xAxis int
	yAxis int
	// Config file
	configFile string
	// Preset name
	preset string
	// Monte Carlo transport
	sigmaT    float64
	thickness float64
	particles int
	isotropic bool
	// Shielding
	material     string
	material2    string
	shieldTarget float64
	maxThick1    float64
	maxThick2    float64
	gridSteps    int
	checkMC      int
	// Enrichment
	alpha       float64
	feedAssay   float64
	prodAssay   float64
	tailsAssay  float64
	productMass float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nukelab",
		Short: "nuclear engineering simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".nukelab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive stepping")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

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

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark model",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "half-life fit and frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	transportCmd := &cobra.Command{
		Use:   "transport",
		Short: "Monte Carlo slab transmission",
		RunE:  runTransport,
	}
	transportCmd.Flags().Float64Var(&sigmaT, "sigma", 0.5, "total cross-section (1/cm)")
	transportCmd.Flags().Float64Var(&thickness, "thickness", 10.0, "slab thickness (cm)")
	transportCmd.Flags().IntVar(&particles, "particles", 1000000, "particle histories")
	transportCmd.Flags().BoolVar(&isotropic, "isotropic", false, "isotropic source instead of beam")
	transportCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	shieldCmd := &cobra.Command{
		Use:   "shield",
		Short: "gamma shielding design",
		RunE:  runShield,
	}
	shieldCmd.Flags().StringVar(&material, "material", "lead", "shield material")
	shieldCmd.Flags().StringVar(&material2, "material2", "", "second material (two-layer optimization)")
	shieldCmd.Flags().Float64Var(&shieldTarget, "target", 0.001, "target transmission fraction")
	shieldCmd.Flags().Float64Var(&maxThick1, "max1", 50.0, "max thickness of first layer (cm)")
	shieldCmd.Flags().Float64Var(&maxThick2, "max2", 200.0, "max thickness of second layer (cm)")
	shieldCmd.Flags().IntVar(&gridSteps, "steps", 201, "grid steps per layer")
	shieldCmd.Flags().IntVar(&checkMC, "check-particles", 0, "validate with Monte Carlo using this many particles")
	shieldCmd.Flags().Int64Var(&seed, "seed", 42, "random seed for validation")

	enrichCmd := &cobra.Command{
		Use:   "enrich",
		Short: "centrifuge cascade sizing",
		RunE:  runEnrich,
	}
	enrichCmd.Flags().Float64Var(&alpha, "alpha", 1.3, "stage separation factor")
	enrichCmd.Flags().Float64Var(&feedAssay, "feed", 0.00711, "feed assay (fraction U-235)")
	enrichCmd.Flags().Float64Var(&prodAssay, "product", 0.045, "product assay")
	enrichCmd.Flags().Float64Var(&tailsAssay, "tails", 0.0025, "tails assay")
	enrichCmd.Flags().Float64Var(&productMass, "mass", 100.0, "product quantity (kg)")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, benchCmd, analyzeCmd, liveCmd, compareCmd, presetsCmd,
		transportCmd, shieldCmd, enrichCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 60.0, "duration")
	cmd.Flags().Float64Var(&na, "na", 50.0, "initial parent count (decay)")
	cmd.Flags().Float64Var(&power, "power", 1.0, "initial power level (kinetics)")
	cmd.Flags().IntVar(&nodes, "nodes", 21, "rod nodes (heat)")
	cmd.Flags().Float64Var(&tinit, "tinit", 20.0, "initial rod temperature (heat)")
	cmd.Flags().Float64Var(&iodine, "iodine", 0.0, "initial I-135 inventory (xenon)")
	cmd.Flags().Float64Var(&xe0, "xenon", 0.0, "initial Xe-135 inventory (xenon)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&controller, "controller", "none", "controller")
	cmd.Flags().Float64Var(&kp, "kp", 0.002, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", 0.0005, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", 0.0, "pid kd")
	cmd.Flags().Float64Var(&target, "target", 1.0, "pid power target")
	cmd.Flags().Float64Var(&rate, "rate", 0.0001, "ramp reactivity rate (1/s)")
	cmd.Flags().Float64Var(&limit, "limit", 0.001, "ramp reactivity limit")
}

func applyPreset(model string) error {
	cfg := config.GetPreset(model, preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
	}
	dt = cfg.Dt
	duration = cfg.Duration
	integrator = cfg.Integrator
	if cfg.Controller != "" {
		controller = cfg.Controller
	}
	if cfg.InitState.Na != 0 {
		na = cfg.InitState.Na
	}
	if cfg.InitState.Power != 0 {
		power = cfg.InitState.Power
	}
	if cfg.InitState.Nodes != 0 {
		nodes = cfg.InitState.Nodes
	}
	tinit = cfg.InitState.TInit
	iodine = cfg.InitState.Iodine
	xe0 = cfg.InitState.Xenon
	if cfg.ControllerParams.Kp != 0 {
		kp = cfg.ControllerParams.Kp
	}
	if cfg.ControllerParams.Ki != 0 {
		ki = cfg.ControllerParams.Ki
	}
	if cfg.ControllerParams.Target != 0 {
		target = cfg.ControllerParams.Target
	}
	if cfg.ControllerParams.Rate != 0 {
		rate = cfg.ControllerParams.Rate
	}
	if cfg.ControllerParams.Limit != 0 {
		limit = cfg.ControllerParams.Limit
	}
	return nil
}

func applyConfigFile(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("integrator") {
		integrator = cfg.Integrator
	}
	if !cmd.Flags().Changed("controller") {
		controller = cfg.Controller
	}
	if !cmd.Flags().Changed("na") {
		na = cfg.InitState.Na
	}
	if !cmd.Flags().Changed("power") && cfg.InitState.Power != 0 {
		power = cfg.InitState.Power
	}
	if !cmd.Flags().Changed("nodes") && cfg.InitState.Nodes != 0 {
		nodes = cfg.InitState.Nodes
	}
	if !cmd.Flags().Changed("tinit") {
		tinit = cfg.InitState.TInit
	}
	if !cmd.Flags().Changed("iodine") {
		iodine = cfg.InitState.Iodine
	}
	if !cmd.Flags().Changed("xenon") {
		xe0 = cfg.InitState.Xenon
	}
	if !cmd.Flags().Changed("kp") {
		kp = cfg.ControllerParams.Kp
	}
	if !cmd.Flags().Changed("ki") {
		ki = cfg.ControllerParams.Ki
	}
	if !cmd.Flags().Changed("kd") {
		kd = cfg.ControllerParams.Kd
	}
	if !cmd.Flags().Changed("target") && cfg.ControllerParams.Target != 0 {
		target = cfg.ControllerParams.Target
	}
	if !cmd.Flags().Changed("rate") && cfg.ControllerParams.Rate != 0 {
		rate = cfg.ControllerParams.Rate
	}
	if !cmd.Flags().Changed("limit") && cfg.ControllerParams.Limit != 0 {
		limit = cfg.ControllerParams.Limit
	}
	if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
		seed = cfg.Seed
	}
	return nil
}

func controllerParams(dyn reactor.System) map[string]float64 {
	return map[string]float64{
		"dim":    float64(dyn.ControlDim()),
		"kp":     kp,
		"ki":     ki,
		"kd":     kd,
		"target": target,
		"rate":   rate,
		"limit":  limit,
	}
}

// buildInitState prepares the model and its starting state from the CLI
// flags. Heat and kinetics need the model itself adjusted, so the possibly
// replaced system is returned too.
func buildInitState(model string, dyn reactor.System) (reactor.System, []float64) {
	switch model {
	case "kinetics":
		if pk, ok := dyn.(*physics.PointKinetics); ok {
			pk.N0 = power
			return pk, pk.DefaultState()
		}
	case "heat":
		rod := physics.NewHeatRod(nodes)
		rod.TInit = tinit
		return rod, rod.DefaultState()
	case "xenon":
		return dyn, []float64{iodine, xe0}
	}
	return dyn, []float64{na, 0, 0}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	if preset != "" {
		if err := applyPreset(model); err != nil {
			return err
		}
	}
	if configFile != "" {
		if err := applyConfigFile(cmd); err != nil {
			return err
		}
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	params := controllerParams(dyn)
	ctrl, err := registry.GetController(controller, params)
	if err != nil {
		return err
	}

	dyn, initState := buildInitState(model, dyn)

	cfg := experiment.Config{
		Model:      model,
		Integrator: integrator,
		Controller: controller,
		InitState:  initState,
		Dt:         dt,
		Duration:   duration,
		Seed:       seed,
		Adaptive:   adaptive,
		Params:     params,
	}

	exp := experiment.New(cfg)
	metrics := registry.DefaultMetrics(model, dyn)
	if err := exp.Setup(dyn, integ, ctrl, metrics); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(model, dt, duration, seed, integrator, controller, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.States))
	fmt.Printf("inventory drift: %.3e\n", result.BalanceDrift)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tCTRL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Controller,
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

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	labels := viz.ChannelLabels(meta.Model, len(states[0]))

	// Small state vectors get an overlay chart of all channels first. The
	// stored table may carry trailing control columns, so cap at the labels.
	if dim := len(states[0]); dim >= 2 && len(labels) <= 4 {
		if dim > len(labels) {
			dim = len(labels)
		}
		series := make([][]float64, dim)
		for i := range series {
			series[i] = viz.Series(states, i)
		}
		fmt.Println(viz.PlotMany(series, strings.Join(labels[:dim], " / ")))
		fmt.Println()
	}

	numVars := len(states[0])
	maxPlots := 6
	if numVars > maxPlots {
		numVars = maxPlots
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		caption := fmt.Sprintf("x%d vs time", varIdx)
		if varIdx < len(labels) {
			caption = labels[varIdx] + " vs time"
		}
		fmt.Println(viz.Plot(viz.Series(states, varIdx), caption))
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if len(states[0]) <= xAxis || len(states[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	labels := viz.ChannelLabels(meta.Model, len(states[0]))
	labelX := fmt.Sprintf("x%d", xAxis)
	labelY := fmt.Sprintf("x%d", yAxis)
	if xAxis < len(labels) {
		labelX = labels[xAxis]
	}
	if yAxis < len(labels) {
		labelY = labels[yAxis]
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	xs := viz.Series(states, xAxis)
	ys := viz.Series(states, yAxis)
	fmt.Println(analysis.PhasePortrait(xs, ys, 70, 20, labelX, labelY))

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
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
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

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &reactor.Result{
		States:       make([]reactor.State, len(states)),
		Times:        times,
		Metrics:      meta.Metrics,
		BalanceDrift: meta.BalanceDrift,
	}
	for i, s := range states {
		result.States[i] = s
	}

	return storage.ExportJSONStdout(meta.Model, meta.Integrator, meta.Controller, meta.Dt, meta.Duration, result)
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := experiment.NewRegistry()
	dyn, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator("rk4")
	if err != nil {
		return err
	}

	ctrl, err := registry.GetController("none", map[string]float64{"dim": float64(dyn.ControlDim())})
	if err != nil {
		return err
	}

	var initState []float64
	if s, ok := dyn.(interface{ DefaultState() reactor.State }); ok {
		initState = s.DefaultState()
	} else {
		initState = make([]float64, dyn.StateDim())
	}

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			cfg := experiment.Config{
				Model:      model,
				Integrator: "rk4",
				Controller: "none",
				InitState:  initState,
				Dt:         step,
				Duration:   dur,
				Seed:       42,
			}

			exp := experiment.New(cfg)
			if err := exp.Setup(dyn, integ, ctrl, nil); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := len(result.States)
			stepsPerSec := float64(steps) / elapsed.Seconds()

			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, step, steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	data := viz.Series(states, 0)

	// Decay-like series get a half-life fit on the parent channel.
	if fit, err := analysis.FitHalfLife(times, data); err == nil && fit.Lambda > 0 {
		fmt.Printf("decay fit (x0):\n")
		fmt.Printf("  lambda:    %.6f /s\n", fit.Lambda)
		fmt.Printf("  half-life: %.3f s\n", fit.HalfLife)
		fmt.Printf("  N0:        %.3f\n", fit.N0)
		fmt.Printf("  R^2:       %.6f\n\n", fit.R2)
	}

	ps := analysis.PowerSpectrum(analysis.PadPow2(data))
	plotData := ps[:len(ps)/4]
	if len(plotData) > 1 {
		fmt.Println(viz.Plot(plotData, "power spectrum (x0)"))
		fmt.Println()

		maxPower := 0.0
		maxIdx := 0
		for i := 1; i < len(plotData); i++ {
			if plotData[i] > maxPower {
				maxPower = plotData[i]
				maxIdx = i
			}
		}

		freq := float64(maxIdx) / meta.Duration
		fmt.Printf("dominant frequency: %.3f hz\n", freq)
		if freq > 0 {
			fmt.Printf("period: %.3f s\n", 1.0/freq)
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	ctrl, err := registry.GetController(controller, controllerParams(dyn))
	if err != nil {
		return err
	}

	dyn, initState := buildInitState(model, dyn)

	m := viz.NewModel(dyn, integ, ctrl, initState, dt, model)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	model := args[0]
	names := args[1:]

	registry := experiment.NewRegistry()
	dyn, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	var initState reactor.State
	if s, ok := dyn.(interface{ DefaultState() reactor.State }); ok {
		initState = s.DefaultState()
	} else {
		initState = make(reactor.State, dyn.StateDim())
	}

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", model, dt, duration)
	fmt.Printf("%-12s  %-14s  %-14s  %-10s\n", "integrator", "final_x0", "drift", "time_ms")
	fmt.Println(strings.Repeat("-", 56))

	for _, name := range names {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		ctrl := controllers.NewNone(dyn.ControlDim())
		s := reactor.New(dyn, integ, ctrl)

		cfg := reactor.DefaultConfig()
		cfg.Dt = dt
		cfg.Duration = duration

		start := time.Now()
		result, err := s.Run(context.Background(), initState.Clone(), cfg)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		finalX0 := 0.0
		if len(result.States) > 0 && len(result.States[len(result.States)-1]) > 0 {
			finalX0 = result.States[len(result.States)-1][0]
		}

		fmt.Printf("%-12s  %14.6f  %14.2e  %10.2f\n", name, finalX0, result.BalanceDrift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func runTransport(cmd *cobra.Command, args []string) error {
	cfg := transport.SlabConfig{
		SigmaT:    sigmaT,
		Thickness: thickness,
		Particles: particles,
		Isotropic: isotropic,
		Seed:      seed,
	}

	source := "beam"
	if isotropic {
		source = "isotropic"
	}
	fmt.Printf("slab transmission: sigma=%.3f /cm, thickness=%.2f cm, %d particles (%s)\n\n",
		sigmaT, thickness, particles, source)

	start := time.Now()
	result, err := transport.SimulateParallel(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("transmitted:   %d\n", result.Transmitted)
	fmt.Printf("fraction:      %.6f\n", result.Fraction)
	fmt.Printf("std error:     %.6f\n", result.StdErr)
	fmt.Printf("95%% interval:  [%.6f, %.6f]\n",
		result.Fraction-result.ConfidenceInterval(),
		result.Fraction+result.ConfidenceInterval())
	fmt.Printf("analytic beam: %.6f\n", cfg.Analytic())
	fmt.Printf("elapsed:       %v\n", elapsed)

	return nil
}

func runShield(cmd *cobra.Command, args []string) error {
	mat, err := shield.Lookup(material)
	if err != nil {
		return fmt.Errorf("%w (available: %v)", err, shield.Names())
	}

	if material2 != "" {
		mat2, err := shield.Lookup(material2)
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, shield.Names())
		}

		sol, err := shield.OptimizeTwoLayers(mat, mat2, shieldTarget,
			shield.SearchRange{MaxThickness: maxThick1, Steps: gridSteps},
			shield.SearchRange{MaxThickness: maxThick2, Steps: gridSteps})
		if err != nil {
			return err
		}
		if sol == nil {
			return fmt.Errorf("no layer combination in range meets target %.2e", shieldTarget)
		}

		fmt.Printf("two-layer shield for transmission <= %.2e\n\n", shieldTarget)
		fmt.Printf("%-10s %8.2f cm\n", sol.First.Name, sol.Thickness1)
		fmt.Printf("%-10s %8.2f cm\n", sol.Second.Name, sol.Thickness2)
		fmt.Printf("areal density: %.1f g/cm^2\n", sol.ArealDensity)
		fmt.Printf("transmission:  %.3e\n", sol.Transmission)
		return nil
	}

	sol, err := shield.SingleLayer(mat, shieldTarget)
	if err != nil {
		return err
	}

	fmt.Printf("single-layer %s shield for transmission <= %.2e\n\n", mat.Name, shieldTarget)
	fmt.Printf("thickness:     %.2f cm\n", sol.Thickness)
	fmt.Printf("areal density: %.1f g/cm^2\n", sol.ArealDensity)
	fmt.Printf("transmission:  %.3e\n", sol.Transmission)

	if checkMC > 0 {
		result, err := shield.Validate(mat, sol.Thickness, checkMC, seed)
		if err != nil {
			return err
		}
		fmt.Printf("\nMonte Carlo check (%d particles):\n", checkMC)
		fmt.Printf("  fraction:  %.3e\n", result.Fraction)
		fmt.Printf("  std error: %.3e\n", result.StdErr)
	}

	return nil
}

func runEnrich(cmd *cobra.Command, args []string) error {
	c := enrich.NewCascade()
	c.Alpha = alpha
	c.FeedAssay = feedAssay
	c.ProductAssay = prodAssay
	c.TailsAssay = tailsAssay

	stages, err := c.StagesRequired()
	if err != nil {
		return err
	}
	stripping, err := c.StrippingStagesRequired()
	if err != nil {
		return err
	}
	balance, err := c.Balance(productMass)
	if err != nil {
		return err
	}

	fmt.Printf("cascade: alpha=%.3f, feed=%.4f%%, product=%.4f%%, tails=%.4f%%\n\n",
		alpha, feedAssay*100, prodAssay*100, tailsAssay*100)
	fmt.Printf("enriching stages: %d\n", stages)
	fmt.Printf("stripping stages: %d\n\n", stripping)

	fmt.Printf("material balance for %.1f kg product:\n", balance.Product)
	fmt.Printf("  feed:  %10.1f kg\n", balance.Feed)
	fmt.Printf("  tails: %10.1f kg\n", balance.Tails)
	fmt.Printf("  SWU:   %10.1f kg-SWU\n\n", balance.SWU)

	table, err := c.StageTable()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STAGE\tASSAY")
	for i, assay := range table {
		fmt.Fprintf(w, "%d\t%.4f%%\n", i, assay*100)
	}
	return w.Flush()
}
