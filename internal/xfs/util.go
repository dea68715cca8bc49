package xfs

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandTilde replaces a leading tilde (~) with the user's home directory.
// Only a bare "~" or a "~/" prefix is expanded; names like "~backup" are
// left alone.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	return filepath.Join(home, path[2:])
}

// Shape describes what is found on disk at a path.
type Shape int

const (
	// ShapeMissing means nothing exists at the path.
	ShapeMissing Shape = iota

	// ShapeFile means the path is a regular file.
	ShapeFile

	// ShapeDir means the path is a directory.
	ShapeDir
)

// Probe returns the on-disk shape of path.
func Probe(path string) Shape {
	info, err := os.Stat(path)
	if err != nil {
		return ShapeMissing
	}

	if info.IsDir() {
		return ShapeDir
	}

	return ShapeFile
}

// Exists reports whether anything exists at path.
func Exists(path string) bool {
	return Probe(path) != ShapeMissing
}
