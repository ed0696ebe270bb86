package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simtree-go/simtree/internal/detector"
	"github.com/simtree-go/simtree/internal/extract"
	"github.com/simtree-go/simtree/internal/fingerprint"
	"github.com/simtree-go/simtree/internal/tree"
)

func buildMethodTree() *tree.Node {
	return tree.New("function", "",
		tree.New("if", "",
			tree.New("SimpleIdentifier", "x"),
			tree.New("return", "", tree.New("NumericLiteral", "1"))),
		tree.New("MethodInvocation", "", tree.New("SimpleIdentifier", "helper")))
}

// fakeExtractor returns one canned method per path, or an error for paths
// listed in failOn.
type fakeExtractor struct {
	failOn map[string]bool
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) (*extract.File, error) {
	if f.failOn[path] {
		return nil, fmt.Errorf("simulated parse failure")
	}
	tr := buildMethodTree()
	m := &extract.Method{
		Name:        "m",
		FullName:    path + ".m",
		FilePath:    path,
		StartLine:   1,
		EndLine:     12,
		LineCount:   12,
		TokenCount:  tr.Size(),
		Tree:        tr,
		Fingerprint: fingerprint.Build(tr),
	}
	return &extract.File{Path: path, Methods: []*extract.Method{m}}, nil
}

func TestDuplicateService_FindsGroupAcrossFiles(t *testing.T) {
	svc := NewDuplicateService(&fakeExtractor{}, false)
	report, err := svc.Run(context.Background(), []string{"a.py", "b.py"}, detector.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, report.FilesAnalyzed)
	assert.Equal(t, 2, report.MethodsFound)
	assert.Len(t, report.Groups, 1)
}

func TestDuplicateService_SkipsFailingFilesAndRecordsError(t *testing.T) {
	svc := NewDuplicateService(&fakeExtractor{failOn: map[string]bool{"bad.py": true}}, false)
	report, err := svc.Run(context.Background(), []string{"a.py", "bad.py", "b.py"}, detector.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, report.FilesAnalyzed)
	assert.Len(t, report.FileErrors, 1)
}

func TestDuplicateService_EmptyFileListErrors(t *testing.T) {
	svc := NewDuplicateService(&fakeExtractor{}, false)
	_, err := svc.Run(context.Background(), nil, detector.DefaultOptions())
	assert.Error(t, err)
}

func TestDuplicateService_NilContextErrors(t *testing.T) {
	svc := NewDuplicateService(&fakeExtractor{}, false)
	_, err := svc.Run(nil, []string{"a.py"}, detector.DefaultOptions())
	assert.Error(t, err)
}

func TestDuplicateService_CancelledContextErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc := NewDuplicateService(&fakeExtractor{}, false)
	_, err := svc.Run(ctx, []string{"a.py"}, detector.DefaultOptions())
	assert.Error(t, err)
}
