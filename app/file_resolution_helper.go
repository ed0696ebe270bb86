package app

import "github.com/simtree-go/simtree/domain"

// ResolveFilePaths resolves file paths for analysis.
// If all paths are already files (not directories) with a matching
// extension, returns them directly. Otherwise, collects matching files from
// the provided paths using the specified filters.
//
// This optimizes the case where a caller pre-collects files and passes them
// straight through, avoiding a redundant directory walk.
func ResolveFilePaths(
	fileReader domain.FileReader,
	paths []string,
	recursive bool,
	extensions []string,
	includePatterns []string,
	excludePatterns []string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		if !fileReader.HasExtension(path, extensions) {
			allFiles = false
			break
		}
		exists, err := fileReader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	if allFiles {
		return paths, nil
	}

	files, err := fileReader.CollectFiles(paths, recursive, extensions, includePatterns, excludePatterns)
	if err != nil {
		return nil, err
	}

	return files, nil
}
