package service

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simtree-go/simtree/internal/detector"
	"github.com/simtree-go/simtree/internal/extract"
)

func sampleReport() *Report {
	rep := &extract.Method{FullName: "Foo.bar", FilePath: "a.py", StartLine: 1, EndLine: 5, LineCount: 5}
	dup := &extract.Method{FullName: "Foo.baz", FilePath: "b.py", StartLine: 10, EndLine: 14, LineCount: 5}
	return &Report{
		FilesAnalyzed: 2,
		MethodsFound:  2,
		LinesAnalyzed: 10,
		Groups: []*detector.Group{
			{
				Representative: rep,
				Entries:        []*detector.Entry{{Method: dup, Similarity: 0.97, Impact: 9.7}},
				TotalImpact:    9.7,
			},
		},
	}
}

func TestWriteReport_TextIncludesSummaryLine(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(sampleReport(), FormatText, FormatOptions{}, &buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Group 1")
	assert.Contains(t, out, "Foo.bar")
	assert.Contains(t, out, "Foo.baz")
	assert.Contains(t, out, "97.0%")
	assert.Contains(t, out, "1 groups, 2 methods, 10 lines analyzed")
}

func TestWriteReport_TextNoGroups(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(&Report{}, FormatText, FormatOptions{}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No duplicates detected.")
}

func TestWriteReport_JSONIncludesRepresentativeFullName(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(sampleReport(), FormatJSON, FormatOptions{}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"fullName": "Foo.bar"`)
}

func TestWriteReport_YAMLIncludesCloneType(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(sampleReport(), FormatYAML, FormatOptions{}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "cloneType:")
}

func TestWriteReport_CSVHasHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(sampleReport(), FormatCSV, FormatOptions{}, &buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "group,role,file")
	assert.Contains(t, out, "representative")
	assert.Contains(t, out, "duplicate")
}

func TestWriteReport_UnsupportedFormatErrors(t *testing.T) {
	var buf bytes.Buffer
	err := WriteReport(sampleReport(), Format("xml"), FormatOptions{}, &buf)
	assert.Error(t, err)
}

func TestPrintSlice_EmitsSourceLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.py")
	require.NoError(t, os.WriteFile(path, []byte("line1\nline2\nline3\n"), 0o644))

	m := &extract.Method{FilePath: path, StartLine: 2, EndLine: 3}
	var buf bytes.Buffer
	printSlice(&buf, m)
	assert.Contains(t, buf.String(), "line2")
	assert.Contains(t, buf.String(), "line3")
	assert.NotContains(t, buf.String(), "line1")
}
