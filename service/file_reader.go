package service

import (
	"os"
	"path/filepath"

	"github.com/simtree-go/simtree/domain"
	"github.com/simtree-go/simtree/internal/discovery"
)

// FileReaderImpl implements domain.FileReader over the local filesystem,
// using doublestar glob matching for include/exclude filtering.
type FileReaderImpl struct{}

// NewFileReader returns a FileReader backed by os/filepath.
func NewFileReader() domain.FileReader {
	return &FileReaderImpl{}
}

func (r *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (r *FileReaderImpl) HasExtension(path string, extensions []string) bool {
	return discovery.HasExtension(path, extensions)
}

// CollectFiles walks paths, returning every file matching extensions whose
// relative path (from its walk root) matches includePatterns (when any are
// given) and matches none of excludePatterns. A path in paths that is itself
// a file is returned when it matches extensions; the include and exclude
// patterns apply only to files found by walking a directory.
func (r *FileReaderImpl) CollectFiles(paths []string, recursive bool, extensions, includePatterns, excludePatterns []string) ([]string, error) {
	var out []string
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if r.HasExtension(root, extensions) {
				out = append(out, root)
			}
			continue
		}

		err = filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if path != root && !recursive {
					return filepath.SkipDir
				}
				return nil
			}
			if !r.HasExtension(path, extensions) {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				rel = path
			}
			if !discovery.ShouldInclude(rel, includePatterns, excludePatterns) {
				return nil
			}
			out = append(out, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
