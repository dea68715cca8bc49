package config

// Config holds the main configuration for the visionkit CLI.
type Config struct {
	Version    string            `json:"version"              yaml:"version"`
	Model      string            `json:"model"                yaml:"model"`
	Task       string            `json:"task,omitempty"       yaml:"task,omitempty"`
	Thresholds ThresholdsConfig  `json:"thresholds,omitempty" yaml:"thresholds,omitempty"`
	Containers []ContainerConfig `json:"containers,omitempty" yaml:"containers,omitempty"`
	Runner     RunnerConfig      `json:"runner,omitempty"     yaml:"runner,omitempty"`

	// Acceleration toggles hardware acceleration; nil means enabled.
	Acceleration *bool `json:"acceleration,omitempty" yaml:"acceleration,omitempty"`
}

// ThresholdsConfig holds the detection thresholds. Zero values fall back to
// the facade defaults.
type ThresholdsConfig struct {
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	IoU        float64 `json:"iou,omitempty"        yaml:"iou,omitempty"`
}

// ContainerConfig names a directory-backed resource container.
type ContainerConfig struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// RunnerConfig configures the external inference runner.
type RunnerConfig struct {
	Bin    string         `json:"bin,omitempty"    yaml:"bin,omitempty"`
	Params map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// Accelerated reports whether hardware acceleration is requested.
func (c *Config) Accelerated() bool {
	return c.Acceleration == nil || *c.Acceleration
}

// ConfidenceOr returns the configured confidence threshold, or def when
// unset.
func (t ThresholdsConfig) ConfidenceOr(def float64) float64 {
	if t.Confidence == 0 {
		return def
	}

	return t.Confidence
}

// IoUOr returns the configured overlap threshold, or def when unset.
func (t ThresholdsConfig) IoUOr(def float64) float64 {
	if t.IoU == 0 {
		return def
	}

	return t.IoU
}
