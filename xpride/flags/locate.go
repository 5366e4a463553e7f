package flags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Locator.Open when no candidate file could be opened.
var ErrNotFound = errors.New("flag not found")

const (
	// DefaultDir is where flags are looked up by name.
	DefaultDir = "/usr/share/flags/"
	// DefaultSuffix is appended to names looked up in DefaultDir.
	DefaultSuffix = ".flag"
)

// Locator finds flag files either by path or by bare name inside Dir.
type Locator struct {
	Dir    string
	Suffix string
}

// DefaultLocator returns a locator for the system flag directory.
func DefaultLocator() Locator {
	return Locator{Dir: DefaultDir, Suffix: DefaultSuffix}
}

// Open tries name as a path first. If that fails and name is made of ASCII
// letters only, it tries Dir/name+Suffix and then Dir/name. The path that
// was opened is returned alongside the file.
func (l Locator) Open(name string) (*os.File, string, error) {
	if file, ok := openRegular(name); ok {
		return file, name, nil
	}

	for _, path := range l.candidates(name) {
		if file, ok := openRegular(path); ok {
			return file, path, nil
		}
	}

	return nil, "", fmt.Errorf("%w: %q", ErrNotFound, name)
}

// candidates lists the fallback paths for name. Names that are not purely
// alphabetic get none, so separators and dots never reach Dir.
func (l Locator) candidates(name string) []string {
	if l.Dir == "" || !isAlpha(name) {
		return nil
	}

	paths := []string{filepath.Join(l.Dir, name+l.Suffix)}
	if l.Suffix != "" {
		paths = append(paths, filepath.Join(l.Dir, name))
	}
	return paths
}

// openRegular opens path and rejects directories.
func openRegular(path string) (*os.File, bool) {
	file, err := os.Open(path)
	if err != nil {
		return nil, false
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		return nil, false
	}

	return file, true
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
