package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/simtree-go/simtree/domain"
	"github.com/simtree-go/simtree/internal/config"
	"github.com/simtree-go/simtree/service"
)

// DuplicateUseCase orchestrates file discovery, duplicate detection and
// report output from a single resolved configuration, the way the teacher's
// CloneUseCase composes its service, file reader and formatter.
type DuplicateUseCase struct {
	fileReader domain.FileReader
	service    *service.DuplicateService
}

// NewDuplicateUseCase builds a use case over fileReader and svc.
func NewDuplicateUseCase(fileReader domain.FileReader, svc *service.DuplicateService) *DuplicateUseCase {
	return &DuplicateUseCase{fileReader: fileReader, service: svc}
}

// Execute resolves cfg's input paths to files, runs detection, and writes
// the report to cfg.Output.Path (or defaultWriter when unset).
func (uc *DuplicateUseCase) Execute(ctx context.Context, cfg *config.Config, defaultWriter io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var includePatterns []string
	if cfg.Input.IncludeFilePattern != "" {
		includePatterns = []string{cfg.Input.IncludeFilePattern}
	}

	files, err := ResolveFilePaths(uc.fileReader, cfg.Input.Paths, cfg.Input.Recursive, cfg.Input.Extensions, includePatterns, cfg.Input.ExcludePatterns)
	if err != nil {
		return fmt.Errorf("failed to collect files: %w", err)
	}
	if len(files) == 0 {
		fmt.Fprintln(defaultWriter, "No files found matching the given paths.")
		return nil
	}

	opts, err := cfg.DetectorOptions()
	if err != nil {
		return fmt.Errorf("invalid detector options: %w", err)
	}

	report, err := uc.service.Run(ctx, files, opts)
	if err != nil {
		return fmt.Errorf("duplicate detection failed: %w", err)
	}

	writer := defaultWriter
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return domain.NewOutputError(fmt.Sprintf("failed to open output file: %s", cfg.Output.Path), err)
		}
		defer f.Close()
		writer = f
	}

	formatOpts := service.FormatOptions{Print: cfg.Output.Print, PrintAll: cfg.Output.PrintAll}
	if err := service.WriteReport(report, service.Format(cfg.Output.Format), formatOpts, writer); err != nil {
		return domain.NewOutputError("failed to write report", err)
	}
	return nil
}
