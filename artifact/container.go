package artifact

import (
	"path/filepath"

	"github.com/ekisa-team/visionkit/internal/xfs"
)

// Container is a named, queryable bundle of resources shipped with or
// alongside the host application. Lookups are read-only; a hit returns the
// absolute path of the resource.
type Container interface {
	// Name identifies the container in diagnostics.
	Name() string

	// Resource returns the path of a bundled resource. When ext is empty,
	// name is matched as the complete file name; otherwise name and ext are
	// matched separately, joined with a dot.
	Resource(name, ext string) (string, bool)

	// ResourceInDirectory is Resource scoped to a subdirectory of the
	// container root.
	ResourceInDirectory(name, ext, subdir string) (string, bool)
}

// DirContainer is a Container backed by a directory tree on disk.
type DirContainer struct {
	name string
	root string
}

// NewDirContainer creates a container rooted at dir.
func NewDirContainer(name, dir string) *DirContainer {
	return &DirContainer{
		name: name,
		root: xfs.ExpandTilde(dir),
	}
}

// Name identifies the container in diagnostics.
func (c *DirContainer) Name() string {
	return c.name
}

// Root returns the container's root directory.
func (c *DirContainer) Root() string {
	return c.root
}

// Resource returns the path of a resource directly under the container root.
func (c *DirContainer) Resource(name, ext string) (string, bool) {
	return c.ResourceInDirectory(name, ext, "")
}

// ResourceInDirectory returns the path of a resource under subdir. Package
// artifacts are directories on disk, so any on-disk shape counts as a hit;
// the resolver cross-validates shape against the artifact kind.
func (c *DirContainer) ResourceInDirectory(name, ext, subdir string) (string, bool) {
	file := name
	if ext != "" {
		file = name + "." + ext
	}

	path := filepath.Join(c.root, subdir, file)
	if !xfs.Exists(path) {
		return "", false
	}

	return path, true
}
