package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simtree-go/simtree/internal/config"
	"github.com/simtree-go/simtree/internal/extract"
	"github.com/simtree-go/simtree/internal/fingerprint"
	"github.com/simtree-go/simtree/internal/tree"
	"github.com/simtree-go/simtree/service"
)

type stubExtractor struct{}

func (stubExtractor) Extract(ctx context.Context, path string) (*extract.File, error) {
	tr := tree.New("function", "",
		tree.New("if", "", tree.New("SimpleIdentifier", "x")),
		tree.New("MethodInvocation", "", tree.New("SimpleIdentifier", "helper")))
	m := &extract.Method{
		Name: "m", FullName: path + ".m", FilePath: path,
		StartLine: 1, EndLine: 12, LineCount: 12, TokenCount: tr.Size(),
		Tree: tr, Fingerprint: fingerprint.Build(tr),
	}
	return &extract.File{Path: path, Methods: []*extract.Method{m}}, nil
}

func TestDuplicateUseCase_WritesReportForResolvedFiles(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"a.py", "b.py"}
	for _, p := range paths {
		mockReader.On("HasExtension", p, []string{"py"}).Return(true)
		mockReader.On("FileExists", p).Return(true, nil)
	}

	svc := service.NewDuplicateService(stubExtractor{}, false)
	uc := NewDuplicateUseCase(mockReader, svc)

	cfg := config.Default()
	cfg.Input.Paths = paths

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), cfg, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "groups, 2 methods")
}

func TestDuplicateUseCase_NoFilesWritesMessage(t *testing.T) {
	mockReader := new(MockFileReader)
	mockReader.On("HasExtension", "empty", []string{"py"}).Return(true)
	mockReader.On("FileExists", "empty").Return(false, nil)
	mockReader.On("CollectFiles", []string{"empty"}, true, []string{"py"}, []string(nil), []string(nil)).Return([]string{}, nil)

	svc := service.NewDuplicateService(stubExtractor{}, false)
	uc := NewDuplicateUseCase(mockReader, svc)

	cfg := config.Default()
	cfg.Input.Paths = []string{"empty"}

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), cfg, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No files found")
}

func TestDuplicateUseCase_WritesToOutputFile(t *testing.T) {
	mockReader := new(MockFileReader)
	mockReader.On("HasExtension", "a.py", []string{"py"}).Return(true)
	mockReader.On("FileExists", "a.py").Return(true, nil)

	svc := service.NewDuplicateService(stubExtractor{}, false)
	uc := NewDuplicateUseCase(mockReader, svc)

	cfg := config.Default()
	cfg.Input.Paths = []string{"a.py"}
	cfg.Output.Path = filepath.Join(t.TempDir(), "report.txt")

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), cfg, &buf)
	require.NoError(t, err)
	assert.Empty(t, buf.String(), "report must go to the output file, not the default writer")

	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestDuplicateUseCase_InvalidConfigErrors(t *testing.T) {
	mockReader := new(MockFileReader)
	svc := service.NewDuplicateService(stubExtractor{}, false)
	uc := NewDuplicateUseCase(mockReader, svc)

	cfg := config.Default()
	cfg.Analysis.Threshold = 2.0

	var buf bytes.Buffer
	err := uc.Execute(context.Background(), cfg, &buf)
	assert.Error(t, err)
}
