package service

import (
	"context"
	"fmt"
	"log"

	"github.com/schollz/progressbar/v3"

	"github.com/simtree-go/simtree/domain"
	"github.com/simtree-go/simtree/internal/detector"
	"github.com/simtree-go/simtree/internal/extract"
)

// Report is the result of a full duplicate-detection run.
type Report struct {
	Groups        []*detector.Group
	FilesAnalyzed int
	MethodsFound  int
	LinesAnalyzed int
	FileErrors    []error
}

// DuplicateService ties file discovery, AST extraction and duplicate
// detection into a single run, the way the teacher's CloneService composes
// its parser and analyzer.
type DuplicateService struct {
	extractor    extract.MethodExtractor
	showProgress bool
}

// NewDuplicateService creates a service using extractor to turn source files
// into methods. showProgress enables a CLI progress bar over the
// file-processing phase.
func NewDuplicateService(extractor extract.MethodExtractor, showProgress bool) *DuplicateService {
	return &DuplicateService{extractor: extractor, showProgress: showProgress}
}

// Run extracts methods from every file, bounded by opts.Concurrency, and
// runs duplicate detection over them. Per-file parse errors are logged and
// skipped rather than aborting the run, matching the teacher's
// CloneService.DetectClonesInFiles.
func (s *DuplicateService) Run(ctx context.Context, files []string, opts detector.Options) (*Report, error) {
	if ctx == nil {
		return nil, domain.NewInvalidInputError("context cannot be nil", nil)
	}
	if len(files) == 0 {
		return nil, domain.NewInvalidInputError("no files to analyze", nil)
	}
	select {
	case <-ctx.Done():
		return nil, domain.NewCancelledError("analysis cancelled", ctx.Err())
	default:
	}

	var bar *progressbar.ProgressBar
	if s.showProgress {
		bar = progressbar.Default(int64(len(files)), "parsing files")
	}

	parsed := make([]*extract.File, len(files))
	parseErrs := make([]error, len(files))
	tasks := make([]domain.ExecutableTask, len(files))
	for i, path := range files {
		i, path := i, path
		tasks[i] = NewSimpleTask(path, true, func(taskCtx context.Context) (interface{}, error) {
			f, err := s.extractor.Extract(taskCtx, path)
			if bar != nil {
				_ = bar.Add(1)
			}
			if err != nil {
				parseErrs[i] = fmt.Errorf("%s: %w", path, err)
				return nil, nil
			}
			parsed[i] = f
			return nil, nil
		})
	}

	executor := NewParallelExecutor()
	if opts.Concurrency > 0 {
		executor.SetMaxConcurrency(opts.Concurrency)
	}
	if err := executor.Execute(ctx, tasks); err != nil {
		return nil, domain.NewAnalysisError("file extraction failed", err)
	}

	var methods []*extract.Method
	report := &Report{}
	for i, f := range parsed {
		if parseErrs[i] != nil {
			log.Printf("skipping %s: %v", files[i], parseErrs[i])
			report.FileErrors = append(report.FileErrors, parseErrs[i])
			continue
		}
		report.FilesAnalyzed++
		for _, m := range f.Methods {
			methods = append(methods, m)
			report.LinesAnalyzed += m.LineCount
		}
	}
	report.MethodsFound = len(methods)

	groups, err := detector.Detect(methods, opts)
	if err != nil {
		return nil, domain.NewAnalysisError("duplicate detection failed", err)
	}
	report.Groups = groups
	return report, nil
}
