// Package extract defines the method extractor interface and data model
// (C8): parsed files and the methods found in them, each carrying the
// normalized tree and fingerprint the similarity core operates on.
package extract

import (
	"context"
	"sync"

	"github.com/simtree-go/simtree/internal/fingerprint"
	"github.com/simtree-go/simtree/internal/structural"
	"github.com/simtree-go/simtree/internal/tree"
)

// Method is one function, method, constructor, or local function found in a
// source file. It is built once at ingestion and never mutated, except for
// the lazily computed, memoized structural features.
type Method struct {
	Name       string
	FullName   string
	FilePath   string
	StartLine  int
	EndLine    int
	LineCount  int
	TokenCount int
	Async      bool
	Params     []string
	OwnerType  string

	Tree        *tree.Node
	Fingerprint *fingerprint.Fingerprint

	featuresOnce sync.Once
	features     *structural.Features
}

// Features returns the method's structural features, computing and caching
// them on first call.
func (m *Method) Features() *structural.Features {
	m.featuresOnce.Do(func() {
		m.features = structural.Compute(m.Tree)
	})
	return m.features
}

// File is one parsed source file and the methods extracted from it.
type File struct {
	Path    string
	Methods []*Method
}

// MethodExtractor parses a single source file into a File record. The core
// depends only on this interface; language-specific parsing is a peripheral
// collaborator.
type MethodExtractor interface {
	Extract(ctx context.Context, path string) (*File, error)
}
