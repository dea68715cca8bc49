package main

import (
	"context"
	"encoding/json"
	"flag"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ekisa-team/visionkit/artifact"
	"github.com/ekisa-team/visionkit/config"
	"github.com/ekisa-team/visionkit/internal/env"
	"github.com/ekisa-team/visionkit/internal/logger"
	"github.com/ekisa-team/visionkit/predictor"
	"github.com/ekisa-team/visionkit/predictor/exec"
	"github.com/ekisa-team/visionkit/vision"
)

func main() {
	var (
		flagConfigPath = flag.String("config", "", "Path to config file (optional)")
		flagSchemaPath = flag.String("schema", filepath.Join(config.DefaultConfigPath(), "visionkit.v1.schema.json"), "Path to schema file")
		flagModel      = flag.String("model", "", "Model identifier (overrides config)")
		flagTask       = flag.String("task", "", "Vision task: classify, detect, segment, pose, obb")
		flagImage      = flag.String("image", "", "Path to the input image")
		flagOutput     = flag.String("output", "", "Path to write the annotated image to")
	)
	flag.Parse()

	environment := env.FromEnv()

	slog.SetDefault(
		logger.New(environment,
			logger.WithLogToFile(true),
			logger.WithLogFile("logs/visionkit.log"),
		),
	)

	if *flagImage == "" {
		slog.Error("No input image given, use -image")
		os.Exit(1)
	}

	var (
		model   *vision.Model
		cfg     = &config.Config{}
		watcher *config.Watcher
	)

	if *flagConfigPath != "" {
		var err error
		watcher, err = config.NewWatcher(*flagConfigPath, *flagSchemaPath, func(next *config.Config, err error) {
			if err != nil {
				slog.Error("Failed to reload config", "error", err)
				return
			}

			if model == nil {
				return
			}

			model.SetConfidenceThreshold(next.Thresholds.ConfidenceOr(vision.DefaultConfidenceThreshold))
			model.SetIoUThreshold(next.Thresholds.IoUOr(vision.DefaultIoUThreshold))
		})
		if err != nil {
			slog.Error("Failed to create config watcher", "error", err)
			os.Exit(1)
		}
		defer watcher.Close()

		cfg = watcher.Snapshot()
	}

	identifier := cfg.Model
	if *flagModel != "" {
		identifier = *flagModel
	}
	if identifier == "" {
		slog.Error("No model identifier given, use -model or a config file")
		os.Exit(1)
	}

	task := cfg.Task
	if *flagTask != "" {
		task = *flagTask
	}

	resolverOpts := []artifact.ResolverOption{artifact.WithLogger(slog.Default())}
	for _, c := range cfg.Containers {
		resolverOpts = append(resolverOpts, artifact.WithContainers(artifact.NewDirContainer(c.Name, c.Path)))
	}

	// the shared models directory is always scannable, after any configured
	// containers
	resolverOpts = append(resolverOpts, artifact.WithContainers(artifact.NewDirContainer("models", config.DefaultModelsPath())))

	runnerBin := cfg.Runner.Bin
	if runnerBin == "" {
		runnerBin = exec.DefaultBin()
	}

	opts := []vision.Option{
		vision.WithTask(predictor.ParseTask(task)),
		vision.WithAcceleration(cfg.Accelerated()),
		vision.WithResolver(artifact.NewResolver(resolverOpts...)),
		vision.WithFactory(predictor.NewFactory(exec.Builder(runnerBin, cfg.Runner.Params))),
		vision.WithConfidenceThreshold(cfg.Thresholds.ConfidenceOr(vision.DefaultConfidenceThreshold)),
		vision.WithIoUThreshold(cfg.Thresholds.IoUOr(vision.DefaultIoUThreshold)),
	}

	model, err := vision.New(context.Background(), identifier, opts...)
	if err != nil {
		slog.Error("Failed to load model", "identifier", identifier, "error", err)
		os.Exit(1)
	}
	defer model.Close()

	data, err := os.ReadFile(*flagImage)
	if err != nil {
		slog.Error("Failed to read input image", "path", *flagImage, "error", err)
		os.Exit(1)
	}

	canvas, err := vision.Decode(data)
	if err != nil {
		slog.Error("Failed to decode input image", "path", *flagImage, "error", err)
		os.Exit(1)
	}

	result := model.InferImage(canvas.Image(), vision.WithAnnotation(*flagOutput != ""))
	if result.Empty() {
		slog.Warn("Inference produced an empty result", "image", *flagImage)
	}

	if *flagOutput != "" && result.Annotated != nil {
		if err := writePNG(*flagOutput, result); err != nil {
			slog.Error("Failed to write annotated image", "path", *flagOutput, "error", err)
			os.Exit(1)
		}

		slog.Info("Annotated image written", "path", *flagOutput)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		slog.Error("Failed to encode result", "error", err)
		os.Exit(1)
	}
}

func writePNG(path string, result *predictor.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(f, result.Annotated); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
