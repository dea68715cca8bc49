package artifact

import "strings"

// Kind classifies the on-disk shape of a model artifact.
type Kind int

const (
	// KindUnknown means the identifier carries no recognized model suffix.
	KindUnknown Kind = iota

	// KindFileModel is a single-file model artifact.
	KindFileModel

	// KindSourcePackage is a source model package directory.
	KindSourcePackage

	// KindCompiledPackage is a compiled model package directory.
	KindCompiledPackage
)

// Recognized model artifact suffixes.
const (
	SuffixFileModel       = ".onnx"
	SuffixSourcePackage   = ".modelpkg"
	SuffixCompiledPackage = ".modelc"
)

// KindForIdentifier infers the artifact kind from the identifier's suffix.
// Matching is case-insensitive; the identifier itself is never rewritten.
func KindForIdentifier(identifier string) Kind {
	lower := strings.ToLower(identifier)

	switch {
	case strings.HasSuffix(lower, SuffixFileModel):
		return KindFileModel
	case strings.HasSuffix(lower, SuffixSourcePackage):
		return KindSourcePackage
	case strings.HasSuffix(lower, SuffixCompiledPackage):
		return KindCompiledPackage
	default:
		return KindUnknown
	}
}

// IsDirectory reports whether artifacts of this kind live in a directory
// rather than a plain file.
func (k Kind) IsDirectory() bool {
	return k == KindSourcePackage || k == KindCompiledPackage
}

// String returns a readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindFileModel:
		return "file"
	case KindSourcePackage:
		return "source-package"
	case KindCompiledPackage:
		return "compiled-package"
	default:
		return "unknown"
	}
}

// Location is a resolved, validated model artifact location. The path is
// known to exist at resolution time; existence is not re-checked afterwards,
// a vanished artifact surfaces as a load failure instead.
type Location struct {
	Path string
	Kind Kind
}
