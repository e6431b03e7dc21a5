package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/nuckage/internal/analysis"
	"github.com/san-kum/nuckage/internal/config"
	"github.com/san-kum/nuckage/internal/export"
	"github.com/san-kum/nuckage/internal/nucdata"
	"github.com/san-kum/nuckage/internal/reaction"
	"github.com/san-kum/nuckage/internal/role"
	"github.com/san-kum/nuckage/internal/storage"
	"github.com/san-kum/nuckage/internal/viz"
)

var (
	settingsFile string
	dataDir      string
	massTable    string
	workers      int

	roleOut   string
	jsonOut   string
	force     bool
	noArchive bool

	// scan
	planFile   string
	reactionID string
	incomingEx float64
	exMin      float64
	exMax      float64
	scanSteps  int
	useQ       bool
	svgFile    string
)

// env is what every command needs once flags are parsed.
type env struct {
	settings config.Settings
	log      *slog.Logger
	table    *nucdata.Table
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, viz.StatusFail.Render("error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "nuckage",
		Short:         "reaction chain builder for the kinematics simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "archive directory (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&massTable, "mass", "", "mass table path (overrides settings)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "chains verified in parallel (overrides settings)")

	checkCmd := &cobra.Command{
		Use:   "check [plan]",
		Short: "verify every chain of a plan",
		Args:  cobra.ExactArgs(1),
		RunE:  checkPlan,
	}

	writeCmd := &cobra.Command{
		Use:   "write [plan]",
		Short: "write the simulator role file for a plan",
		Args:  cobra.ExactArgs(1),
		RunE:  writeRole,
	}
	writeCmd.Flags().StringVarP(&roleOut, "out", "o", "sim.role", "role file to write")
	writeCmd.Flags().BoolVar(&force, "force", false, "write even if a chain fails verification")
	writeCmd.Flags().BoolVar(&noArchive, "no-archive", false, "do not archive the written role")

	inspectCmd := &cobra.Command{
		Use:   "inspect [role]",
		Short: "read a role file back and verify its chains",
		Args:  cobra.ExactArgs(1),
		RunE:  inspectRole,
	}

	scanCmd := &cobra.Command{
		Use:   "scan [preset]",
		Short: "sweep the residual excitation of one step",
		Args:  cobra.MaximumNArgs(1),
		RunE:  scanStep,
	}
	scanCmd.Flags().StringVar(&planFile, "plan", "", "plan holding the reaction")
	scanCmd.Flags().StringVar(&reactionID, "reaction", "", "reaction name within --plan")
	scanCmd.Flags().Float64Var(&incomingEx, "incoming", 0, "excitation carried into the step (MeV)")
	scanCmd.Flags().Float64Var(&exMin, "min", 0, "lowest residual excitation (MeV)")
	scanCmd.Flags().Float64Var(&exMax, "max", -1, "highest residual excitation (MeV), default reachable maximum")
	scanCmd.Flags().IntVar(&scanSteps, "steps", 60, "scan points")
	scanCmd.Flags().BoolVar(&useQ, "q", false, "plot the Q-value instead of the threshold")
	scanCmd.Flags().StringVar(&svgFile, "svg", "", "also write the curve as svg")

	exportCmd := &cobra.Command{
		Use:   "export [plan]",
		Short: "export chain kinematics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPlan,
	}
	exportCmd.Flags().StringVarP(&jsonOut, "out", "o", "-", "output file, - for stdout")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived role files",
		RunE:  listRecords,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "print an archived role file",
		Args:  cobra.ExactArgs(1),
		RunE:  showRecord,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list reaction presets and detectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("reactions:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			reg := role.NewRegistry()
			fmt.Println("detectors:")
			for _, d := range reg.List() {
				params, _ := reg.Params(d)
				fmt.Printf("  %s %s\n", d, strings.Join(params, " "))
			}
			return nil
		},
	}

	newCmd := &cobra.Command{
		Use:   "new [plan]",
		Short: "write an example plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], examplePlan())
		},
	}

	rootCmd.AddCommand(checkCmd, writeCmd, inspectCmd, scanCmd, exportCmd, listCmd, showCmd, presetsCmd, newCmd)
	return rootCmd
}

func setup() (*env, error) {
	s, err := config.LoadSettings(settingsFile)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		s.DataDir = dataDir
	}
	if massTable != "" {
		s.MassTable = massTable
	}
	if workers > 0 {
		s.Workers = workers
	}

	log := s.Logger(os.Stderr)

	tbl, err := nucdata.LoadFile(s.MassTable)
	if err != nil {
		return nil, fmt.Errorf("mass table: %w", err)
	}
	log.Debug("loaded mass table", "path", s.MassTable, "isotopes", tbl.Len())

	return &env{settings: s, log: log, table: tbl}, nil
}

func (e *env) buildPlan(path string) (*config.Plan, *role.Role, error) {
	plan, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load plan: %w", err)
	}
	r, err := plan.Build(e.table, role.NewRegistry(), e.log)
	if err != nil {
		return nil, nil, err
	}
	return plan, r, nil
}

// verify runs every chain of r and returns one report per chain.
func (e *env) verify(ctx context.Context, r *role.Role) ([]analysis.ChainReport, bool, error) {
	results, err := analysis.VerifyAll(ctx, r.Chains, e.settings.Workers)
	if err != nil {
		return nil, false, err
	}

	reports := make([]analysis.ChainReport, len(r.Chains))
	for i, c := range r.Chains {
		reports[i] = analysis.Report(e.table, c)
		if results[i] != nil {
			e.log.Warn("chain failed verification", "chain", c.String(), "err", results[i])
		}
	}
	return reports, analysis.AllValid(results), nil
}

func printReports(reports []analysis.ChainReport) {
	for _, rep := range reports {
		fmt.Println(viz.RenderChain(rep))
	}
	fmt.Println(viz.Separator(60))
	fmt.Println(viz.Summary(reports))
}

func checkPlan(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	_, r, err := e.buildPlan(args[0])
	if err != nil {
		return err
	}

	reports, ok, err := e.verify(cmd.Context(), r)
	if err != nil {
		return err
	}
	printReports(reports)

	if !ok {
		return fmt.Errorf("plan %s has invalid chains", args[0])
	}
	return nil
}

func writeRole(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	_, r, err := e.buildPlan(args[0])
	if err != nil {
		return err
	}

	reports, ok, err := e.verify(cmd.Context(), r)
	if err != nil {
		return err
	}
	if !ok && !force {
		printReports(reports)
		return fmt.Errorf("refusing to write %s: plan has invalid chains (use --force)", roleOut)
	}

	if err := role.WriteFile(roleOut, r); err != nil {
		return err
	}
	e.log.Info("wrote role", "path", roleOut, "chains", len(r.Chains), "detectors", r.Array.Len())
	fmt.Printf("%s %s\n", viz.StatusOK.Render("wrote"), roleOut)

	if noArchive {
		return nil
	}

	text, err := os.ReadFile(roleOut)
	if err != nil {
		return err
	}

	st := storage.New(e.settings.DataDir, e.log)
	if err := st.Init(); err != nil {
		return err
	}

	detectors := make([]string, 0, r.Array.Len())
	for _, d := range r.Array.Detectors {
		detectors = append(detectors, d.Name)
	}

	id, err := st.Save(storage.Record{
		RolePath:  roleOut,
		Output:    r.Output,
		Samples:   r.Samples,
		Detectors: detectors,
		Reports:   reports,
		Role:      text,
	})
	if err != nil {
		return err
	}
	fmt.Printf("archived as %s\n", id)
	return nil
}

func inspectRole(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	f, err := role.ReadFile(args[0])
	if err != nil {
		return err
	}
	r := f.Role(e.table)

	fmt.Printf("%s %s\n", viz.MetricLabel.Render("output"), viz.MetricValue.Render(r.Output))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("samples"), viz.MetricValue.Render(fmt.Sprint(r.Samples)))
	for _, d := range r.Array.Detectors {
		fmt.Printf("%s %s %s\n", viz.MetricLabel.Render("detector"), viz.MetricValue.Render(d.Name), d.Args)
	}
	fmt.Println()

	reports, ok, err := e.verify(cmd.Context(), r)
	if err != nil {
		return err
	}
	printReports(reports)

	if !ok {
		return fmt.Errorf("role %s has invalid chains", args[0])
	}
	return nil
}

func scanStep(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	s, name, err := e.scanTarget(args)
	if err != nil {
		return err
	}

	hi := exMax
	if hi < 0 {
		hi, err = analysis.MaxExcitation(s, incomingEx)
		if err != nil {
			return err
		}
		if hi <= exMin {
			return fmt.Errorf("%s cannot populate excitations above %.3f MeV", name, exMin)
		}
	}

	points, err := analysis.ThresholdScan(s, incomingEx, exMin, hi, scanSteps)
	if err != nil {
		return err
	}

	quantity := "threshold (MeV)"
	if useQ || s.Kind() == reaction.Decay {
		useQ = true
		quantity = "Q-value (MeV)"
	}
	caption := fmt.Sprintf("%s %s vs Ex %.2f..%.2f MeV", s.String(), quantity, exMin, hi)

	graph, err := viz.PlotScan(points, 80, 15, useQ, caption)
	if err != nil {
		return err
	}
	fmt.Println(graph)

	allowed := 0
	for _, p := range points {
		if p.Allowed {
			allowed++
		}
	}
	fmt.Printf("\n%d/%d points reachable at beam %.3f MeV\n", allowed, len(points), s.Beam().Mean)

	if svgFile != "" {
		svg := export.ScanToSVG(points, 800, 400, "#00ccff", useQ)
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return err
		}
		e.log.Info("wrote svg", "path", svgFile)
	}
	return nil
}

func (e *env) scanTarget(args []string) (reaction.Step, string, error) {
	if planFile != "" {
		plan, err := config.Load(planFile)
		if err != nil {
			return reaction.Step{}, "", fmt.Errorf("failed to load plan: %w", err)
		}
		for _, rc := range plan.Reactions {
			if rc.Name == reactionID {
				s, err := rc.Build(e.table)
				return s, rc.Name, err
			}
		}
		return reaction.Step{}, "", fmt.Errorf("%w: reaction %q", config.ErrUnknownRef, reactionID)
	}

	if len(args) == 0 {
		return reaction.Step{}, "", fmt.Errorf("need a preset or --plan/--reaction (available: %v)", config.ListPresets())
	}
	p := config.GetPreset(args[0])
	if p == nil {
		return reaction.Step{}, "", fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	rc := *p
	rc.Name = args[0]
	s, err := rc.Build(e.table)
	return s, args[0], err
}

func exportPlan(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	_, r, err := e.buildPlan(args[0])
	if err != nil {
		return err
	}

	reports, _, err := e.verify(cmd.Context(), r)
	if err != nil {
		return err
	}

	return export.ReportJSON(jsonOut, export.ReportData{
		Generated: time.Now(),
		Output:    r.Output,
		Samples:   r.Samples,
		Chains:    reports,
	})
}

func listRecords(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	st := storage.New(e.settings.DataDir, e.log)
	records, err := st.List()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("no archived roles")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tROLE\tOUTPUT\tSAMPLES\tCHAINS")

	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			rec.ID,
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.RolePath,
			rec.Output,
			rec.Samples,
			len(rec.Chains),
		)
	}

	return w.Flush()
}

func showRecord(cmd *cobra.Command, args []string) error {
	e, err := setup()
	if err != nil {
		return err
	}

	st := storage.New(e.settings.DataDir, e.log)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(meta.ID))
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("written"), meta.Timestamp.Format(time.RFC3339))
	for i, c := range meta.Chains {
		target := ""
		if i < len(meta.Targets) {
			target = meta.Targets[i]
		}
		fmt.Printf("%s %s %s\n", viz.MetricLabel.Render("chain"), viz.MetricValue.Render(c), target)
	}
	fmt.Println()

	text, err := st.LoadRole(args[0])
	if err != nil {
		return err
	}
	fmt.Print(string(text))
	return nil
}

func examplePlan() *config.Plan {
	p := config.DefaultPlan()
	p.Targets = []config.TargetConfig{
		{Name: "lif", Thickness: 50, Elements: []config.ElementConfig{{Z: 3, S: 1}, {Z: 9, S: 1}}},
	}
	p.Reactions = []config.ReactionConfig{
		{Name: "transfer", Preset: "7Li(3He,d)8Be", Ex: config.EnergyConfig{Mean: 3.03, Sigma: 0.75}, Beam: config.EnergyConfig{Mean: 24, Sigma: 0.1}},
		{Name: "breakup", Preset: "8Be->a+a"},
	}
	p.Chains = []config.ChainConfig{
		{Name: "be8", Target: "lif", Reactions: []string{"transfer", "breakup"}},
	}
	p.Detectors = []config.DetectorConfig{
		{Name: "sabre"},
		{Name: "focalplane", Params: map[string]float64{"angle": 15, "bfield": 8.7}},
	}
	return p
}
