package artifact

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ekisa-team/visionkit/internal/xfs"
)

const fileScheme = "file://"

// Resolver turns a user-supplied model identifier into a validated artifact
// location. Strategies are tried in a fixed order and the first hit wins:
//
//  1. absolute or file-scheme path, suffix cross-validated against shape
//  2. relative path carrying a recognized model suffix
//  3. bare-name lookup in the primary container (compiled before source)
//  4. legacy embedded-asset lookup under the asset subdirectory
//  5. exhaustive scan of every registered container
//
// Resolution is read-only; the only failure it produces is ErrModelNotFound.
type Resolver struct {
	workDir    string
	assetDir   string
	containers []Container
	log        *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithWorkDir sets the directory relative identifiers are resolved against.
func WithWorkDir(dir string) ResolverOption {
	return func(r *Resolver) { r.workDir = dir }
}

// WithAssetDir sets the subdirectory used for legacy asset lookups.
func WithAssetDir(dir string) ResolverOption {
	return func(r *Resolver) { r.assetDir = dir }
}

// WithContainers registers resource containers. The first container is the
// primary one consulted by bare-name and asset lookups.
func WithContainers(containers ...Container) ResolverOption {
	return func(r *Resolver) { r.containers = append(r.containers, containers...) }
}

// WithLogger sets the logger used for strategy diagnostics.
func WithLogger(log *slog.Logger) ResolverOption {
	return func(r *Resolver) { r.log = log }
}

// NewResolver creates a resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		workDir:  ".",
		assetDir: "assets",
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// AddContainer appends a container to the scan list. Containers are scanned
// in registration order; when the same resource name exists in more than one
// container the earliest registered wins.
func (r *Resolver) AddContainer(c Container) {
	r.containers = append(r.containers, c)
}

// Resolve maps identifier to an existing artifact location, or fails with
// ErrModelNotFound once every strategy is exhausted.
func (r *Resolver) Resolve(identifier string) (Location, error) {
	if identifier == "" {
		return Location{}, fmt.Errorf("empty identifier: %w", ErrModelNotFound)
	}

	kind := KindForIdentifier(identifier)

	if path, rooted := rootedPath(identifier); rooted {
		if loc, ok := r.acceptPath(path, kind); ok {
			r.log.Debug("model resolved", "strategy", "absolute-path", "path", loc.Path, "kind", loc.Kind.String())
			return loc, nil
		}
	} else if kind != KindUnknown {
		path := filepath.Join(r.workDir, identifier)
		if loc, ok := r.acceptPath(path, kind); ok {
			r.log.Debug("model resolved", "strategy", "relative-path", "path", loc.Path, "kind", loc.Kind.String())
			return loc, nil
		}
	}

	hasSep := containsSeparator(identifier)

	if len(r.containers) > 0 {
		primary := r.containers[0]

		if !hasSep {
			if loc, ok := bundledPackage(primary, identifier); ok {
				r.log.Debug("model resolved", "strategy", "bundled-name", "container", primary.Name(), "path", loc.Path)
				return loc, nil
			}
		}

		if loc, ok := r.assetLookup(primary, identifier, hasSep); ok {
			r.log.Debug("model resolved", "strategy", "asset-package", "container", primary.Name(), "path", loc.Path)
			return loc, nil
		}
	}

	if loc, container, ok := r.scanContainers(identifier); ok {
		r.log.Debug("model resolved", "strategy", "container-scan", "container", container, "path", loc.Path)
		return loc, nil
	}

	r.log.Debug("model resolution exhausted", "identifier", identifier)
	return Location{}, fmt.Errorf("model %q: %w", identifier, ErrModelNotFound)
}

// acceptPath validates that the on-disk shape at path agrees with the shape
// implied by the identifier's suffix. A mismatch is "not found here", never
// an error.
func (r *Resolver) acceptPath(path string, kind Kind) (Location, bool) {
	switch xfs.Probe(path) {
	case xfs.ShapeFile:
		if kind.IsDirectory() {
			return Location{}, false
		}
		return Location{Path: path, Kind: kindOrFile(kind)}, true

	case xfs.ShapeDir:
		if !kind.IsDirectory() {
			return Location{}, false
		}
		return Location{Path: path, Kind: kind}, true

	default:
		return Location{}, false
	}
}

// bundledPackage looks a bare name up in the primary container, trying the
// compiled package suffix before the source package suffix.
func bundledPackage(c Container, name string) (Location, bool) {
	if path, ok := c.Resource(name+SuffixCompiledPackage, ""); ok {
		return Location{Path: path, Kind: KindCompiledPackage}, true
	}

	if path, ok := c.Resource(name+SuffixSourcePackage, ""); ok {
		return Location{Path: path, Kind: KindSourcePackage}, true
	}

	return Location{}, false
}

// assetLookup is the legacy compatibility path for identifiers that used to
// name resources inside an embedded asset package.
func (r *Resolver) assetLookup(c Container, identifier string, hasSep bool) (Location, bool) {
	kind := kindOrFile(KindForIdentifier(identifier))

	if hasSep {
		dir := filepath.Dir(identifier)
		file := filepath.Base(identifier)
		subdir := filepath.Join(r.assetDir, dir)

		if path, ok := c.ResourceInDirectory(file, "", subdir); ok {
			return Location{Path: path, Kind: kind}, true
		}

		if base, ext := splitExt(file); ext != "" {
			if path, ok := c.ResourceInDirectory(base, ext, subdir); ok {
				return Location{Path: path, Kind: kind}, true
			}
		}

		if path, ok := c.Resource(filepath.Join(r.assetDir, identifier), ""); ok {
			return Location{Path: path, Kind: kind}, true
		}

		return Location{}, false
	}

	if path, ok := c.ResourceInDirectory(identifier, "", r.assetDir); ok {
		return Location{Path: path, Kind: kind}, true
	}

	if base, ext := splitExt(identifier); ext != "" {
		if path, ok := c.ResourceInDirectory(base, ext, r.assetDir); ok {
			return Location{Path: path, Kind: kind}, true
		}
	}

	return Location{}, false
}

// scanContainers is the last-resort sweep across every registered container
// for the identifier's bare file name.
func (r *Resolver) scanContainers(identifier string) (Location, string, bool) {
	file := filepath.Base(identifier)
	base, ext := splitExt(file)
	kind := kindOrFile(KindForIdentifier(file))

	for _, c := range r.containers {
		if path, ok := c.Resource(file, ""); ok {
			return Location{Path: path, Kind: kind}, c.Name(), true
		}

		if ext != "" {
			if path, ok := c.Resource(base, ext); ok {
				return Location{Path: path, Kind: kind}, c.Name(), true
			}
		}
	}

	return Location{}, "", false
}

// rootedPath reports whether the identifier is already rooted, stripping a
// file scheme prefix when present.
func rootedPath(identifier string) (string, bool) {
	if strings.HasPrefix(identifier, fileScheme) {
		return strings.TrimPrefix(identifier, fileScheme), true
	}

	if filepath.IsAbs(identifier) {
		return identifier, true
	}

	return "", false
}

func containsSeparator(identifier string) bool {
	return strings.ContainsRune(identifier, '/') ||
		strings.ContainsRune(identifier, filepath.Separator)
}

func splitExt(name string) (base, ext string) {
	e := filepath.Ext(name)
	if e == "" {
		return name, ""
	}

	return strings.TrimSuffix(name, e), strings.TrimPrefix(e, ".")
}

func kindOrFile(k Kind) Kind {
	if k == KindUnknown {
		return KindFileModel
	}

	return k
}
