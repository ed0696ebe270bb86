package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFileReader is a mock implementation of domain.FileReader
type MockFileReader struct {
	mock.Mock
}

func (m *MockFileReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *MockFileReader) HasExtension(path string, extensions []string) bool {
	args := m.Called(path, extensions)
	return args.Bool(0)
}

func (m *MockFileReader) CollectFiles(paths []string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, recursive, extensions, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestResolveFilePaths_AllPathsAreFiles(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"file1.py", "file2.py"}
	exts := []string{"py"}

	for _, path := range paths {
		mockReader.On("HasExtension", path, exts).Return(true)
		mockReader.On("FileExists", path).Return(true, nil)
	}

	result, err := ResolveFilePaths(mockReader, paths, false, exts, []string{}, []string{})

	assert.NoError(t, err)
	assert.Equal(t, paths, result)
	mockReader.AssertExpectations(t)
	mockReader.AssertNotCalled(t, "CollectFiles")
}

func TestResolveFilePaths_WrongExtensionFallsBackToCollect(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"file1.py", "file2.txt"}
	exts := []string{"py"}

	mockReader.On("HasExtension", "file1.py", exts).Return(true)
	mockReader.On("FileExists", "file1.py").Return(true, nil)
	mockReader.On("HasExtension", "file2.txt", exts).Return(false)

	collected := []string{"file1.py"}
	mockReader.On("CollectFiles", paths, false, exts, []string{}, []string{}).Return(collected, nil)

	result, err := ResolveFilePaths(mockReader, paths, false, exts, []string{}, []string{})

	assert.NoError(t, err)
	assert.Equal(t, collected, result)
	mockReader.AssertExpectations(t)
}

func TestResolveFilePaths_DirectoryFallsBackToCollect(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"src"}
	exts := []string{"py"}

	mockReader.On("HasExtension", "src", exts).Return(true)
	mockReader.On("FileExists", "src").Return(false, nil)

	collected := []string{"src/a.py", "src/b.py"}
	mockReader.On("CollectFiles", paths, true, exts, []string{}, []string{}).Return(collected, nil)

	result, err := ResolveFilePaths(mockReader, paths, true, exts, []string{}, []string{})

	assert.NoError(t, err)
	assert.Equal(t, collected, result)
	mockReader.AssertExpectations(t)
}

func TestResolveFilePaths_CollectFilesError(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"src"}
	exts := []string{"py"}

	mockReader.On("HasExtension", "src", exts).Return(true)
	mockReader.On("FileExists", "src").Return(false, nil)
	collectErr := errors.New("failed to collect files")
	mockReader.On("CollectFiles", paths, false, exts, []string{}, []string{}).Return(nil, collectErr)

	result, err := ResolveFilePaths(mockReader, paths, false, exts, []string{}, []string{})

	assert.Error(t, err)
	assert.Nil(t, result)
	mockReader.AssertExpectations(t)
}

func TestResolveFilePaths_FileExistsErrorFallsBackToCollect(t *testing.T) {
	mockReader := new(MockFileReader)
	paths := []string{"file1.py"}
	exts := []string{"py"}

	mockReader.On("HasExtension", "file1.py", exts).Return(true)
	mockReader.On("FileExists", "file1.py").Return(false, errors.New("permission denied"))

	collected := []string{"file1.py"}
	mockReader.On("CollectFiles", paths, false, exts, []string{}, []string{}).Return(collected, nil)

	result, err := ResolveFilePaths(mockReader, paths, false, exts, []string{}, []string{})

	assert.NoError(t, err)
	assert.Equal(t, collected, result)
	mockReader.AssertExpectations(t)
}
