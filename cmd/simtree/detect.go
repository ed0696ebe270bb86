package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/simtree-go/simtree/app"
	"github.com/simtree-go/simtree/internal/config"
	"github.com/simtree-go/simtree/internal/extract"
	"github.com/simtree-go/simtree/service"
)

// DetectCommand holds the flag values for the detect subcommand.
type DetectCommand struct {
	paths       []string
	configFile  string
	threshold   float64
	minLines    int
	maxLines    int
	minTokens   int
	print       bool
	printAll    bool
	noSize      bool
	extensions  []string
	renameCost  float64
	deleteCost  float64
	insertCost  float64
	kindWeight  float64
	includeFile string
	includeName string
	output      string
	progress    bool
	groupMode   string
	fast        bool
}

// NewDetectCmd builds the `detect` subcommand.
func NewDetectCmd() *cobra.Command {
	dc := &DetectCommand{}
	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect duplicate and near-duplicate methods",
		RunE:  dc.run,
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&dc.paths, "paths", "p", nil, "files or directories to scan")
	flags.StringVar(&dc.configFile, "config", "", "path to a simtree.toml configuration file")
	flags.Float64Var(&dc.threshold, "threshold", 0.87, "minimum similarity to report")
	flags.IntVar(&dc.minLines, "min-lines", 5, "minimum method line count to consider")
	flags.IntVar(&dc.maxLines, "max-lines", 0, "maximum method line count to consider (0 = unlimited)")
	flags.IntVar(&dc.minTokens, "min-tokens", 0, "minimum method token count to consider")
	flags.BoolVar(&dc.print, "print", false, "print a code slice for each duplicate")
	flags.BoolVar(&dc.printAll, "print-all", false, "print a code slice for every method, including representatives")
	flags.BoolVar(&dc.noSize, "no-size-penalty", false, "disable the size-ratio and short-function similarity penalties")
	flags.StringSliceVarP(&dc.extensions, "extensions", "e", []string{"py"}, "source file extensions to scan")
	flags.Float64Var(&dc.renameCost, "rename-cost", 0.3, "APTED rename cost")
	flags.Float64Var(&dc.deleteCost, "delete-cost", 1.0, "APTED delete cost")
	flags.Float64Var(&dc.insertCost, "insert-cost", 1.0, "APTED insert cost")
	flags.Float64Var(&dc.kindWeight, "kind-distance-weight", 0.5, "weight of node-kind distance in cross-kind rename cost")
	flags.StringVar(&dc.includeFile, "include-file-pattern", "", "glob pattern files must match to be scanned")
	flags.StringVar(&dc.includeName, "include-method-pattern", "", "regex pattern method full names must match to be reported")
	flags.StringVarP(&dc.output, "output", "o", "", "write the report to this path instead of stdout")
	flags.BoolVar(&dc.progress, "progress", false, "show a progress bar while parsing files")
	flags.StringVar(&dc.groupMode, "group-mode", "impact", "grouping algorithm: impact or connected")
	flags.BoolVar(&dc.fast, "fast", false, "use LSH-accelerated candidate generation for large corpora")

	return cmd
}

func (dc *DetectCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(dc.configFile)
	if err != nil {
		return err
	}

	tracker := config.NewFlagTracker()
	cmd.Flags().Visit(func(f *pflag.Flag) { tracker.Set(f.Name) })

	overrides := config.Config{
		Analysis: config.AnalysisConfig{
			Threshold:            dc.threshold,
			MinLines:             dc.minLines,
			MaxLines:             dc.maxLines,
			MinTokens:            dc.minTokens,
			IncludeMethodPattern: dc.includeName,
			NoSizePenalty:        dc.noSize,
			GroupMode:            dc.groupMode,
		},
		APTED: config.APTEDConfig{
			RenameCost:         dc.renameCost,
			DeleteCost:         dc.deleteCost,
			InsertCost:         dc.insertCost,
			KindDistanceWeight: dc.kindWeight,
		},
		Input: config.InputConfig{
			Paths:              dc.paths,
			Extensions:         dc.extensions,
			Recursive:          true,
			IncludeFilePattern: dc.includeFile,
		},
		Output: config.OutputConfig{
			Path:     dc.output,
			Print:    dc.print,
			PrintAll: dc.printAll,
		},
		Performance: config.PerformanceConfig{
			UseLSH: dc.fast,
		},
	}
	cfg.ApplyFlags(tracker.GetAll(), overrides)

	if err := cfg.Validate(); err != nil {
		return err
	}

	showProgress := dc.progress
	if !cmd.Flags().Changed("progress") {
		showProgress = term.IsTerminal(int(os.Stdout.Fd()))
	}

	extractor := extract.NewPythonExtractor()
	svc := service.NewDuplicateService(extractor, showProgress)
	fileReader := service.NewFileReader()
	uc := app.NewDuplicateUseCase(fileReader, svc)

	return uc.Execute(cmd.Context(), cfg, os.Stdout)
}
