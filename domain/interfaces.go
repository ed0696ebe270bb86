package domain

import (
	"context"
	"time"
)

// ExecutableTask is one unit of work a ParallelExecutor can run.
type ExecutableTask interface {
	Name() string
	Execute(ctx context.Context) (interface{}, error)
	IsEnabled() bool
}

// ParallelExecutor runs a batch of independent tasks under a concurrency
// cap and an overall timeout.
type ParallelExecutor interface {
	Execute(ctx context.Context, tasks []ExecutableTask) error
	SetMaxConcurrency(max int)
	SetTimeout(timeout time.Duration)
}

// FileReader abstracts file-system access for corpus discovery, so the
// orchestration layer can be tested without touching disk.
type FileReader interface {
	FileExists(path string) (bool, error)
	HasExtension(path string, extensions []string) bool
	CollectFiles(paths []string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error)
}
