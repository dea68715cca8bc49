package env

import (
	"os"
	"strings"

	"github.com/ekisa-team/visionkit/internal/envvar"
)

// Environment is the runtime environment the process operates in.
type Environment string

const (
	// Development is the default environment.
	Development Environment = "development"

	// Production enables machine-readable logging.
	Production Environment = "production"

	// Test is used by test harnesses.
	Test Environment = "test"
)

// FromEnv derives the environment from VISIONKIT_ENV. Unknown or empty
// values map to Development.
func FromEnv() Environment {
	switch strings.ToLower(os.Getenv(envvar.VisionkitEnv)) {
	case "production", "prod":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// IsProduction reports whether e is the production environment.
func (e Environment) IsProduction() bool {
	return e == Production
}
