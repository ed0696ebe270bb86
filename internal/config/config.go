package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/simtree-go/simtree/internal/apted"
	"github.com/simtree-go/simtree/internal/detector"
	"github.com/simtree-go/simtree/internal/scorer"
)

// compileNamePattern compiles a method-name filter pattern as a regular
// expression.
func compileNamePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(pattern)
}

// DefaultConfigFileName is the file simtree looks for in the working
// directory when no --config flag is given.
const DefaultConfigFileName = "simtree.toml"

// Config is the unified clone-detection configuration, loadable from a TOML
// file and mergeable with explicit CLI flag overrides.
type Config struct {
	Analysis    AnalysisConfig    `mapstructure:"analysis" toml:"analysis"`
	APTED       APTEDConfig       `mapstructure:"apted" toml:"apted"`
	Input       InputConfig       `mapstructure:"input" toml:"input"`
	Output      OutputConfig      `mapstructure:"output" toml:"output"`
	Performance PerformanceConfig `mapstructure:"performance" toml:"performance"`
}

// AnalysisConfig holds the eligibility and similarity parameters that feed
// detector.Options.
type AnalysisConfig struct {
	Threshold            float64 `mapstructure:"threshold" toml:"threshold"`
	MinLines             int     `mapstructure:"min_lines" toml:"min_lines"`
	MaxLines             int     `mapstructure:"max_lines" toml:"max_lines"`
	MinTokens            int     `mapstructure:"min_tokens" toml:"min_tokens"`
	IncludeMethodPattern string  `mapstructure:"include_method_pattern" toml:"include_method_pattern"`
	NoSizePenalty        bool    `mapstructure:"no_size_penalty" toml:"no_size_penalty"`
	GroupMode            string  `mapstructure:"group_mode" toml:"group_mode"`
}

// APTEDConfig holds the tree-edit-distance cost model overrides.
type APTEDConfig struct {
	RenameCost         float64 `mapstructure:"rename_cost" toml:"rename_cost"`
	DeleteCost         float64 `mapstructure:"delete_cost" toml:"delete_cost"`
	InsertCost         float64 `mapstructure:"insert_cost" toml:"insert_cost"`
	KindDistanceWeight float64 `mapstructure:"kind_distance_weight" toml:"kind_distance_weight"`
}

// InputConfig holds file discovery parameters.
type InputConfig struct {
	Paths              []string `mapstructure:"paths" toml:"paths"`
	Extensions         []string `mapstructure:"extensions" toml:"extensions"`
	Recursive          bool     `mapstructure:"recursive" toml:"recursive"`
	IncludeFilePattern string   `mapstructure:"include_file_pattern" toml:"include_file_pattern"`
	ExcludePatterns    []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
}

// OutputConfig holds report destination and verbosity.
type OutputConfig struct {
	Path     string `mapstructure:"path" toml:"path"`
	Format   string `mapstructure:"format" toml:"format"`
	Print    bool   `mapstructure:"print" toml:"print"`
	PrintAll bool   `mapstructure:"print_all" toml:"print_all"`
}

// PerformanceConfig holds concurrency limits.
type PerformanceConfig struct {
	Concurrency int  `mapstructure:"concurrency" toml:"concurrency"`
	UseLSH      bool `mapstructure:"use_lsh" toml:"use_lsh"`
}

// Default returns the built-in configuration, matching detector.DefaultOptions,
// scorer.DefaultOptions and apted.DefaultCosts.
func Default() *Config {
	detectorDefaults := detector.DefaultOptions()
	aptedDefaults := apted.DefaultCosts()
	scorerDefaults := scorer.DefaultOptions()

	return &Config{
		Analysis: AnalysisConfig{
			Threshold:     detectorDefaults.Threshold,
			MinLines:      detectorDefaults.MinLines,
			MaxLines:      detectorDefaults.MaxLines,
			MinTokens:     detectorDefaults.MinTokens,
			NoSizePenalty: !scorerDefaults.SizePenaltyEnabled,
			GroupMode:     "impact",
		},
		APTED: APTEDConfig{
			RenameCost:         aptedDefaults.Rename,
			DeleteCost:         aptedDefaults.Delete,
			InsertCost:         aptedDefaults.Insert,
			KindDistanceWeight: aptedDefaults.KindDistanceWeight,
		},
		Input: InputConfig{
			Extensions: []string{"py"},
			Recursive:  true,
		},
		Output: OutputConfig{
			Format: "text",
		},
		Performance: PerformanceConfig{
			Concurrency: detectorDefaults.Concurrency,
		},
	}
}

// Load reads path (or DefaultConfigFileName in the current directory, if
// path is empty and the file exists) as TOML into a Config seeded with
// Default(). A missing path is not an error when path was not explicitly
// requested; a missing explicitly-requested path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		if _, err := os.Stat(DefaultConfigFileName); err != nil {
			return cfg, nil
		}
		path = DefaultConfigFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyFlags merges CLI flag values into cfg, overriding only the fields
// whose flag name is set in flags (typically a FlagTracker's GetAll()).
func (c *Config) ApplyFlags(flags map[string]bool, overrides Config) {
	c.Analysis.Threshold = MergeFloat64(c.Analysis.Threshold, overrides.Analysis.Threshold, "threshold", flags)
	c.Analysis.MinLines = MergeInt(c.Analysis.MinLines, overrides.Analysis.MinLines, "min-lines", flags)
	c.Analysis.MaxLines = MergeInt(c.Analysis.MaxLines, overrides.Analysis.MaxLines, "max-lines", flags)
	c.Analysis.MinTokens = MergeInt(c.Analysis.MinTokens, overrides.Analysis.MinTokens, "min-tokens", flags)
	c.Analysis.IncludeMethodPattern = MergeString(c.Analysis.IncludeMethodPattern, overrides.Analysis.IncludeMethodPattern, "include-method-pattern", flags)
	c.Analysis.NoSizePenalty = MergeBool(c.Analysis.NoSizePenalty, overrides.Analysis.NoSizePenalty, "no-size-penalty", flags)
	c.Analysis.GroupMode = MergeString(c.Analysis.GroupMode, overrides.Analysis.GroupMode, "group-mode", flags)

	c.APTED.RenameCost = MergeFloat64(c.APTED.RenameCost, overrides.APTED.RenameCost, "rename-cost", flags)
	c.APTED.DeleteCost = MergeFloat64(c.APTED.DeleteCost, overrides.APTED.DeleteCost, "delete-cost", flags)
	c.APTED.InsertCost = MergeFloat64(c.APTED.InsertCost, overrides.APTED.InsertCost, "insert-cost", flags)
	c.APTED.KindDistanceWeight = MergeFloat64(c.APTED.KindDistanceWeight, overrides.APTED.KindDistanceWeight, "kind-distance-weight", flags)

	c.Input.Paths = MergeStringSlice(c.Input.Paths, overrides.Input.Paths, "paths", flags)
	c.Input.Extensions = MergeStringSlice(c.Input.Extensions, overrides.Input.Extensions, "extensions", flags)
	c.Input.Recursive = MergeBool(c.Input.Recursive, overrides.Input.Recursive, "recursive", flags)
	c.Input.IncludeFilePattern = MergeString(c.Input.IncludeFilePattern, overrides.Input.IncludeFilePattern, "include-file-pattern", flags)
	c.Input.ExcludePatterns = MergeStringSlice(c.Input.ExcludePatterns, overrides.Input.ExcludePatterns, "exclude-patterns", flags)

	c.Output.Path = MergeString(c.Output.Path, overrides.Output.Path, "output", flags)
	c.Output.Format = MergeString(c.Output.Format, overrides.Output.Format, "format", flags)
	c.Output.Print = MergeBool(c.Output.Print, overrides.Output.Print, "print", flags)
	c.Output.PrintAll = MergeBool(c.Output.PrintAll, overrides.Output.PrintAll, "print-all", flags)

	c.Performance.Concurrency = MergeInt(c.Performance.Concurrency, overrides.Performance.Concurrency, "concurrency", flags)
	c.Performance.UseLSH = MergeBool(c.Performance.UseLSH, overrides.Performance.UseLSH, "fast", flags)
}

// Validate checks that the configuration's numeric ranges make sense.
func (c *Config) Validate() error {
	if c.Analysis.Threshold < 0 || c.Analysis.Threshold > 1 {
		return fmt.Errorf("analysis.threshold must be in [0,1], got %f", c.Analysis.Threshold)
	}
	if c.Analysis.MinLines < 0 {
		return fmt.Errorf("analysis.min_lines must be >= 0, got %d", c.Analysis.MinLines)
	}
	if c.Analysis.MaxLines > 0 && c.Analysis.MaxLines < c.Analysis.MinLines {
		return fmt.Errorf("analysis.max_lines (%d) must be >= analysis.min_lines (%d)", c.Analysis.MaxLines, c.Analysis.MinLines)
	}
	if len(c.Input.Extensions) == 0 {
		return fmt.Errorf("input.extensions must not be empty")
	}
	switch c.Output.Format {
	case "", "text", "json", "yaml", "csv":
	default:
		return fmt.Errorf("output.format %q is not one of text, json, yaml, csv", c.Output.Format)
	}
	switch c.Analysis.GroupMode {
	case "", "impact", "connected":
	default:
		return fmt.Errorf("analysis.group_mode %q is not one of impact, connected", c.Analysis.GroupMode)
	}
	if c.Performance.Concurrency < 0 {
		return fmt.Errorf("performance.concurrency must be >= 0, got %d", c.Performance.Concurrency)
	}
	return nil
}

// DetectorOptions builds detector.Options from the analysis/apted sections.
func (c *Config) DetectorOptions() (detector.Options, error) {
	opts := detector.DefaultOptions()
	opts.Threshold = c.Analysis.Threshold
	opts.MinLines = c.Analysis.MinLines
	opts.MaxLines = c.Analysis.MaxLines
	opts.MinTokens = c.Analysis.MinTokens
	opts.APTEDCosts = apted.Costs{
		Rename:             c.APTED.RenameCost,
		Delete:             c.APTED.DeleteCost,
		Insert:             c.APTED.InsertCost,
		KindDistanceWeight: c.APTED.KindDistanceWeight,
	}
	opts.ScorerOptions = scorer.Options{
		SizePenaltyEnabled: !c.Analysis.NoSizePenalty,
		RenameCost:         c.APTED.RenameCost,
	}
	if c.Performance.Concurrency > 0 {
		opts.Concurrency = c.Performance.Concurrency
	}
	if c.Performance.UseLSH {
		opts.Candidates = detector.LSHCandidateGenerator()
	}
	if c.Analysis.GroupMode == "connected" {
		opts.Strategy = detector.ConnectedGroupingStrategy()
	}

	if c.Analysis.IncludeMethodPattern != "" {
		pattern, err := compileNamePattern(c.Analysis.IncludeMethodPattern)
		if err != nil {
			return detector.Options{}, fmt.Errorf("invalid include-method-pattern: %w", err)
		}
		opts.NamePattern = pattern
	}
	return opts, nil
}

// WriteDefaultTOML serializes Default() as TOML, for the `init` scaffolding
// command.
func WriteDefaultTOML() ([]byte, error) {
	return toml.Marshal(Default())
}
