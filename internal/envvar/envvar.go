package envvar

const (
	// VisionkitEnv is the environment variable used to determine the environment
	VisionkitEnv = "VISIONKIT_ENV"

	// VisionkitRunnerBin is the environment variable used to locate the
	// inference runner binary
	VisionkitRunnerBin = "VISIONKIT_RUNNER_BIN"

	// VisionkitModelsPath is the environment variable used to determine the
	// models directory
	VisionkitModelsPath = "VISIONKIT_MODELS_PATH"
)
