package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"runtime"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/pairpot/internal/config"
	"github.com/san-kum/pairpot/internal/forcefield"
	"github.com/san-kum/pairpot/internal/nlist"
	"github.com/san-kum/pairpot/internal/optim"
	"github.com/san-kum/pairpot/internal/storage"
	"github.com/san-kum/pairpot/internal/tui"
	"github.com/san-kum/pairpot/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	cutoff     float64
	smooth     bool
	workers    int
	save       bool
	asJSON     bool
	top        int
	dmin       float64
	dmax       float64
	points     int
	tolerance  float64
	repeat     int
	scaleMin   float64
	scaleMax   float64
	eosPoints  int
	plotFile   string
)

var errCheckFailed = errors.New("derivative check failed")

func main() {
	rootCmd := &cobra.Command{
		Use:          "pairpot",
		Short:        "non-bonded pair potential evaluator",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunExplorer()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pairpot", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	evalCmd := &cobra.Command{
		Use:   "eval",
		Short: "evaluate energy, gradient and virial",
		RunE:  runEval,
	}
	systemFlags(evalCmd)
	evalCmd.Flags().IntVar(&workers, "parallel", 0, "worker count (0 = serial)")
	evalCmd.Flags().BoolVar(&save, "save", false, "store the result under --data")
	evalCmd.Flags().BoolVar(&asJSON, "json", false, "print the result as json")
	evalCmd.Flags().IntVar(&top, "top", 8, "number of forces to list")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "plot the energy of the first particle pair against distance",
		RunE:  runScan,
	}
	systemFlags(scanCmd)
	rangeFlags(scanCmd)
	scanCmd.Flags().StringVarP(&plotFile, "out", "o", "", "also write the curve to an image (png, svg, pdf)")

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "compare analytic and numeric pair derivatives",
		RunE:  runCheck,
	}
	systemFlags(checkCmd)
	rangeFlags(checkCmd)
	checkCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "relative tolerance")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().BoolVar(&asJSON, "json", false, "print run metadata as json")
	showCmd.Flags().IntVar(&top, "top", 8, "number of forces to list")

	presetsCmd := &cobra.Command{
		Use:   "presets [family]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			families := config.Families
			if len(args) == 1 {
				families = args
			}
			for _, f := range families {
				names := config.ListPresets(f)
				if len(names) == 0 {
					fmt.Printf("no presets for family: %s\n", f)
					continue
				}
				fmt.Printf("%s:\n", f)
				for _, p := range names {
					fmt.Printf("  %s/%s\n", f, p)
				}
			}
			return nil
		},
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time serial and parallel evaluation",
		RunE:  runBench,
	}
	systemFlags(benchCmd)
	benchCmd.Flags().IntVar(&repeat, "repeat", 200, "evaluations per row")

	eosCmd := &cobra.Command{
		Use:   "eos",
		Short: "energy per particle against a uniform scale of the system",
		RunE:  runEOS,
	}
	systemFlags(eosCmd)
	eosCmd.Flags().Float64Var(&scaleMin, "min", 0.9, "smallest scale factor")
	eosCmd.Flags().Float64Var(&scaleMax, "max", 1.1, "largest scale factor")
	eosCmd.Flags().IntVar(&eosPoints, "points", 21, "number of scale factors")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive distance explorer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.RunExplorer()
		},
	}

	rootCmd.AddCommand(evalCmd, scanCmd, checkCmd, listCmd, showCmd, presetsCmd, benchCmd, eosCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func systemFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "system file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "built-in system as family/name")
	cmd.Flags().Float64Var(&cutoff, "cutoff", 0, "override the cutoff radius")
	cmd.Flags().BoolVar(&smooth, "smooth", false, "override the smoothing switch")
}

func rangeFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dmin, "dmin", 0, "smallest distance (default: 3/4 of the pair distance)")
	cmd.Flags().Float64Var(&dmax, "dmax", 0, "largest distance (default: 3x the pair distance, capped at the cutoff)")
	cmd.Flags().IntVar(&points, "points", 80, "number of samples")
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadSystem resolves --config, then --preset, then the default dimer, and
// applies flag overrides on top.
func loadSystem(cmd *cobra.Command, fallback string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case preset != "" || fallback != "":
		name := preset
		if name == "" {
			name = fallback
		}
		family, p, ok := strings.Cut(name, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be family/name, got %q", name)
		}
		cfg = config.GetPreset(family, p)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(family))
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("cutoff") {
		cfg.Cutoff = cutoff
	}
	if cmd.Flags().Changed("smooth") {
		cfg.Smooth = smooth
	}
	return cfg, cfg.Validate()
}

func runEval(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadSystem(cmd, "")
	if err != nil {
		return err
	}

	ev, err := forcefield.FromConfig(cfg, forcefield.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	var res *forcefield.Result
	if workers > 0 {
		res, err = ev.ComputeParallel(ctx, workers)
	} else {
		res, err = ev.Compute(ctx)
	}
	if err != nil {
		return err
	}
	logger.Debug("evaluated", "system", cfg.Name, "elapsed", time.Since(start))

	volume := nlist.Cell(cfg.Cell).Volume()

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.RunMetadata{Name: cfg.Name, Family: cfg.Family, Cutoff: cfg.Cutoff, Smooth: cfg.Smooth}
		if p, err := res.Pressure(volume); err == nil {
			meta.Pressure = &p
		}
		runID, err := st.Save(meta, res)
		if err != nil {
			return err
		}
		logger.Info("saved run", "id", runID)
		if !asJSON {
			fmt.Printf("run id: %s\n", runID)
		}
	}

	if asJSON {
		return storage.WriteJSON(os.Stdout, storage.NewExportData(cfg.Name, cfg.Family, cfg.Cutoff, cfg.Smooth, res))
	}

	fmt.Println(viz.RenderResult(viz.Summary{
		Name:      cfg.Name,
		Family:    cfg.Family,
		Particles: ev.Size(),
		Pairs:     ev.Pairs(),
		Cutoff:    cfg.Cutoff,
		Smooth:    cfg.Smooth,
		Volume:    volume,
	}, res, top))
	return nil
}

// needPair rejects systems without the particle pair (1, 0) that scan and
// check evaluate.
func needPair(name string, cfg *config.Config) error {
	if n := len(cfg.Particles); n < 2 {
		return fmt.Errorf("%s needs at least two particles, got %d", name, n)
	}
	return nil
}

// pairRange picks a scan window around the distance of the first two
// particles.
func pairRange(cmd *cobra.Command, cfg *config.Config) (float64, float64) {
	d0 := cfg.Cutoff / 3
	if len(cfg.Particles) >= 2 {
		a, b := cfg.Particles[0].Pos, cfg.Particles[1].Pos
		d := math.Sqrt((a[0]-b[0])*(a[0]-b[0]) + (a[1]-b[1])*(a[1]-b[1]) + (a[2]-b[2])*(a[2]-b[2]))
		if d > 0 {
			d0 = d
		}
	}
	lo, hi := 0.75*d0, math.Min(3*d0, cfg.Cutoff)
	if cmd.Flags().Changed("dmin") {
		lo = dmin
	}
	if cmd.Flags().Changed("dmax") {
		hi = dmax
	}
	return lo, hi
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadSystem(cmd, "")
	if err != nil {
		return err
	}
	if err := needPair("scan", cfg); err != nil {
		return err
	}
	pot, err := cfg.Potential()
	if err != nil {
		return err
	}
	lo, hi := pairRange(cmd, cfg)
	if lo <= 0 || hi <= lo {
		return fmt.Errorf("invalid scan range [%g, %g]", lo, hi)
	}

	samples := forcefield.Scan(pot, 1, 0, lo, hi, points)
	title := fmt.Sprintf("%s %s pair 1-0", cfg.Family, cfg.Name)
	fmt.Println(viz.RenderScan(title, samples, 80, 12))

	if plotFile != "" {
		if err := viz.SaveScanPlot(plotFile, title, samples); err != nil {
			return err
		}
		fmt.Printf("plot written to %s\n", plotFile)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadSystem(cmd, "")
	if err != nil {
		return err
	}
	if err := needPair("check", cfg); err != nil {
		return err
	}
	fam, err := cfg.NewFamily()
	if err != nil {
		return err
	}
	lo, hi := pairRange(cmd, cfg)

	n := max(points/8, 2)
	checks := make([]forcefield.Check, n)
	failed := 0
	for i := range checks {
		d := lo + float64(i)*(hi-lo)/float64(n-1)
		checks[i] = forcefield.CheckDerivative(fam, 1, 0, d, 1e-6*d)
		if checks[i].RelError > tolerance {
			failed++
		}
	}

	fmt.Print(viz.RenderChecks(checks, tolerance))
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d points", errCheckFailed, failed, n)
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
	fmt.Fprintln(w, "ID\tNAME\tFAMILY\tTIME\tN\tCUTOFF\tENERGY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.3g\t%.10g\n",
			run.ID,
			run.Name,
			run.Family,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Cutoff,
			run.Energy,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	grad, err := st.LoadGradient(runID)
	if err != nil {
		return err
	}

	res := &forcefield.Result{Energy: meta.Energy, Gradient: grad, Virial: meta.Virial}
	if asJSON {
		return storage.WriteJSON(os.Stdout, storage.NewExportData(meta.Name, meta.Family, meta.Cutoff, meta.Smooth, res))
	}

	var volume float64
	if meta.Pressure != nil && *meta.Pressure != 0 {
		volume = -res.Virial.Trace() / (3 * *meta.Pressure)
	}

	fmt.Println(viz.RenderResult(viz.Summary{
		Name:      meta.Name,
		Family:    meta.Family,
		Particles: meta.Particles,
		Cutoff:    meta.Cutoff,
		Smooth:    meta.Smooth,
		Volume:    volume,
	}, res, top))
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadSystem(cmd, "lj/argon-fcc")
	if err != nil {
		return err
	}
	ev, err := forcefield.FromConfig(cfg, forcefield.WithLogger(newLogger()))
	if err != nil {
		return err
	}
	ctx := context.Background()

	fmt.Printf("benchmarking %s (%d particles, %d neighbor entries)\n\n", cfg.Name, ev.Size(), ev.Pairs())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WORKERS\tEVALS\tTIME\tPER EVAL\tPAIRS/SEC")

	counts := []int{0, 2, runtime.GOMAXPROCS(0)}
	for _, n := range counts {
		start := time.Now()
		for i := 0; i < repeat; i++ {
			if n == 0 {
				_, err = ev.Compute(ctx)
			} else {
				_, err = ev.ComputeParallel(ctx, n)
			}
			if err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		per := elapsed / time.Duration(max(repeat, 1))
		label := "serial"
		if n > 0 {
			label = fmt.Sprint(n)
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%v\t%.3g\n",
			label, repeat, elapsed, per, float64(ev.Pairs()*repeat)/elapsed.Seconds())
	}

	return w.Flush()
}

func runEOS(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg, err := loadSystem(cmd, "lj/argon-fcc")
	if err != nil {
		return err
	}
	if scaleMin <= 0 || scaleMax <= scaleMin {
		return fmt.Errorf("invalid scale range [%g, %g]", scaleMin, scaleMax)
	}

	g := optim.NewGridSearch([]string{"scale"}, [][]float64{optim.Linspace(scaleMin, scaleMax, eosPoints)})
	best, trials, err := g.Search(context.Background(), func(ctx context.Context, p map[string]float64) (float64, error) {
		ev, err := forcefield.FromConfig(cfg.Scaled(p["scale"]), forcefield.WithLogger(logger))
		if err != nil {
			return 0, err
		}
		e, err := ev.Energy(ctx)
		if err != nil {
			return 0, err
		}
		return e / float64(ev.Size()), nil
	})
	if err != nil {
		return err
	}

	samples := make([]forcefield.Sample, len(trials))
	for i, t := range trials {
		samples[i] = forcefield.Sample{D: t.Params["scale"], Energy: t.Value}
	}
	fmt.Println(viz.RenderEOS(cfg.Name, samples, 80, 12))
	fmt.Println(viz.Metric("best scale", fmt.Sprintf("%.4f (E/N = %.8g)", best.Params["scale"], best.Value)))
	return nil
}
