// Package cli wires the guillocut command-line interface: flag parsing,
// layered parameter resolution, running the beam search, and writing the
// solution certificate and reports. Grounded on the cobra/viper root
// command shape the rest of the retrieval pack uses for its CLI.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/piwi3910/guillocut/internal/beam"
	"github.com/piwi3910/guillocut/internal/branching"
	"github.com/piwi3910/guillocut/internal/config"
	"github.com/piwi3910/guillocut/internal/geom"
	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/instancecsv"
	"github.com/piwi3910/guillocut/internal/report"
	"github.com/piwi3910/guillocut/internal/solution"
)

var (
	itemsPath         string
	binsPath          string
	defectsPath       string
	parametersPath    string
	objectiveFlag     string
	predefinedFlag    string
	timeLimitFlag     string
	outputPath        string
	certificatePath   string
	logPath           string
	verbosityLevel    int
	onlyWriteAtTheEnd bool

	paramOverrides map[string]string
)

// rootCmd is the guillocut entrypoint.
var rootCmd = &cobra.Command{
	Use:   "guillocut",
	Short: "Guillotine rectangle-packing tree-search engine",
	Long: `guillocut searches for a near-optimal guillotine cutting pattern over a
set of bin types and item types, using an iterative beam search over a
staged or staircase branching scheme, and writes the result as a
solution certificate CSV (plus optional PDF/XLSX/DXF reports).`,
	RunE: runRoot,
}

// Execute runs the root command and returns any error encountered.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	paramOverrides = map[string]string{}

	rootCmd.Flags().StringVarP(&itemsPath, "items", "i", "", "items CSV or XLSX path (required)")
	rootCmd.Flags().StringVarP(&binsPath, "bins", "b", "", "bins CSV or XLSX path (required)")
	rootCmd.Flags().StringVarP(&defectsPath, "defects", "d", "", "defects CSV path (optional)")
	rootCmd.Flags().StringVar(&parametersPath, "parameters", "", "parameters CSV or YAML path (optional)")
	rootCmd.Flags().StringVarP(&objectiveFlag, "objective", "f", "", "objective override (default, bin_packing, knapsack, ...)")
	rootCmd.Flags().StringVarP(&predefinedFlag, "predefined", "p", "", "predefined parameter shorthand, e.g. 3EVO")
	rootCmd.Flags().StringVarP(&timeLimitFlag, "time-limit", "t", "", "search time limit, e.g. 30s, 2m")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "directory to write reports (PDF/XLSX/DXF) into")
	rootCmd.Flags().StringVarP(&certificatePath, "certificate", "c", "", "solution certificate CSV output path (required)")
	rootCmd.Flags().StringVarP(&logPath, "log", "l", "", "log file path (stderr if empty)")
	rootCmd.Flags().IntVarP(&verbosityLevel, "verbosity-level", "v", 1, "log verbosity (0=quiet, 1=normal, 2=debug)")
	rootCmd.Flags().BoolVarP(&onlyWriteAtTheEnd, "only-write-at-the-end", "e", false, "suppress intermediate-improvement certificate writes")

	for _, name := range []string{
		"number_of_stages", "cut_type", "first_stage_orientation",
		"minimum_distance_1_cuts", "maximum_distance_1_cuts", "minimum_distance_2_cuts",
		"minimum_waste_length", "maximum_number_2_cuts", "cut_thickness", "cut_through_defects",
	} {
		name := name
		rootCmd.Flags().String(name, "", fmt.Sprintf("override parameter %s", name))
	}

	rootCmd.MarkFlagRequired("items")
	rootCmd.MarkFlagRequired("bins")
	rootCmd.MarkFlagRequired("certificate")
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := newLogger(logPath, verbosityLevel)
	defer logger.Close()

	cfg, err := config.Load(parametersPath)
	if err != nil {
		return fmt.Errorf("guillocut: %w", err)
	}

	if predefinedFlag != "" {
		if err := config.ApplyPredefined(&cfg.Parameters, predefinedFlag); err != nil {
			return fmt.Errorf("guillocut: %w", err)
		}
	}
	if objectiveFlag != "" {
		if obj, ok := instancecsv.ParseObjectiveName(objectiveFlag); ok {
			cfg.Parameters.Objective = obj
		} else {
			return fmt.Errorf("guillocut: unrecognized --objective %q", objectiveFlag)
		}
	}
	collectParamOverrideFlags(cmd)
	applyParamOverrides(&cfg.Parameters)

	var timeLimit time.Duration
	if timeLimitFlag != "" {
		timeLimit, err = time.ParseDuration(timeLimitFlag)
		if err != nil {
			return fmt.Errorf("guillocut: bad --time-limit %q: %w", timeLimitFlag, err)
		}
	}

	inst, err := loadInstance(cfg.Parameters)
	if err != nil {
		return fmt.Errorf("guillocut: %w", err)
	}

	logger.Infof("loaded instance: %d item types, %d bin types", len(inst.ItemTypes()), len(inst.BinTypes()))

	beamCfg := beam.DefaultConfig()
	if cfg.Parameters.NumberOfStages <= 0 {
		beamCfg.Discipline = branching.Staircase
	}
	if timeLimit > 0 {
		beamCfg.TimeLimit = timeLimit
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	result, err := beam.Run(ctx, inst, beamCfg)
	if err != nil {
		return fmt.Errorf("guillocut: search failed: %w", err)
	}
	logger.Infof("search finished in %s, explored %d nodes", time.Since(start), result.Nodes)

	if err := solution.VerifyInvariants(inst, result.Node); err != nil {
		return fmt.Errorf("guillocut: solution failed invariant verification: %w", err)
	}

	sol := solution.FromNode(inst, result.Node)
	logger.Infof("solution: %s", sol.Summary())

	if err := writeCertificate(result, inst); err != nil {
		return fmt.Errorf("guillocut: %w", err)
	}

	if outputPath != "" {
		if err := writeReports(inst, sol); err != nil {
			return fmt.Errorf("guillocut: %w", err)
		}
	}

	return nil
}

func loadInstance(params instance.Parameters) (*instance.Instance, error) {
	if strings.HasSuffix(strings.ToLower(itemsPath), ".xlsx") {
		return instancecsv.LoadXLSXWithParams(itemsPath, params)
	}
	return instancecsv.LoadFilesWithParams(itemsPath, binsPath, defectsPath, params)
}

func writeCertificate(result *beam.Result, inst *instance.Instance) error {
	f, err := os.Create(certificatePath)
	if err != nil {
		return fmt.Errorf("create certificate file: %w", err)
	}
	defer f.Close()
	return solution.WriteCertificateCSV(f, inst, result.Node)
}

func writeReports(inst *instance.Instance, sol solution.Solution) error {
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := report.WritePDF(filepath.Join(outputPath, "cutting-diagram.pdf"), inst, sol); err != nil {
		return err
	}
	if err := report.WriteXLSX(filepath.Join(outputPath, "summary.xlsx"), inst, sol); err != nil {
		return err
	}
	if err := report.WriteDXF(filepath.Join(outputPath, "cut-lines.dxf"), inst, sol); err != nil {
		return err
	}
	return nil
}

// collectParamOverrideFlags reads the per-parameter override flags that
// were actually set on cmd into paramOverrides.
func collectParamOverrideFlags(cmd *cobra.Command) {
	for _, name := range []string{
		"number_of_stages", "cut_type", "first_stage_orientation",
		"minimum_distance_1_cuts", "maximum_distance_1_cuts", "minimum_distance_2_cuts",
		"minimum_waste_length", "maximum_number_2_cuts", "cut_thickness", "cut_through_defects",
	} {
		if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			paramOverrides[name] = flag.Value.String()
		}
	}
}

func applyParamOverrides(p *instance.Parameters) {
	if v, ok := paramOverrides["number_of_stages"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.NumberOfStages = n
		}
	}
	if v, ok := paramOverrides["cut_type"]; ok {
		if ct, ok := instancecsv.ParseCutTypeName(v); ok {
			p.CutType = ct
		}
	}
	if v, ok := paramOverrides["first_stage_orientation"]; ok {
		if o, ok := instancecsv.ParseOrientationName(v); ok {
			p.FirstStageOrientation = o
		}
	}
	if v, ok := paramOverrides["minimum_waste_length"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.MinimumWaste = geom.Length(n)
		}
	}
	if v, ok := paramOverrides["cut_thickness"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.CutThickness = geom.Length(n)
		}
	}
	if v, ok := paramOverrides["minimum_distance_1_cuts"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.MinimumDistance1Cuts = geom.Length(n)
		}
	}
	if v, ok := paramOverrides["maximum_distance_1_cuts"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.MaximumDistance1Cuts = geom.Length(n)
		}
	}
	if v, ok := paramOverrides["minimum_distance_2_cuts"]; ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			p.MinimumDistance2Cuts = geom.Length(n)
		}
	}
	if v, ok := paramOverrides["maximum_number_2_cuts"]; ok {
		if n, err := strconv.Atoi(v); err == nil {
			p.MaximumNumberOf2Cuts = n
		}
	}
	if v, ok := paramOverrides["cut_through_defects"]; ok {
		if b, err := strconv.ParseBool(v); err == nil {
			p.CutThroughDefects = b
		}
	}
}
