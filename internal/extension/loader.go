package extension

import (
	"os"
	"path/filepath"
	"strings"
)

// Candidate is a discovered extension file, not yet loaded.
type Candidate struct {
	// Name is the module identifier, the file name without extension.
	Name string

	// Path is the absolute or caller-relative path to the file.
	Path string
}

// Discover lists extension candidates in dir: files ending in .lua whose
// name does not start with the private marker "_". A missing directory is
// not an error; it yields zero candidates.
//
// Candidates come back in directory listing order. The host makes no
// ordering guarantee between extensions, so callers must not rely on it.
func Discover(dir string) ([]Candidate, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var candidates []Candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".lua") || strings.HasPrefix(name, "_") {
			continue
		}
		candidates = append(candidates, Candidate{
			Name: strings.TrimSuffix(name, ".lua"),
			Path: filepath.Join(dir, name),
		})
	}

	return candidates, nil
}
