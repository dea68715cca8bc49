// Package vision is the entry point host applications use to load a vision
// model and run inference against images in several representations.
package vision

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ekisa-team/visionkit/artifact"
	"github.com/ekisa-team/visionkit/predictor"
	"github.com/ekisa-team/visionkit/predictor/exec"
)

// Default detection thresholds pushed into the predictor at attach time.
const (
	DefaultConfidenceThreshold = 0.25
	DefaultIoUThreshold        = 0.40
)

// Model is the inference facade. It owns exactly one predictor for its
// lifetime, created during construction and never swapped. A model is
// exclusive-use: no internal locking is performed and concurrent Infer calls
// are undefined unless the underlying engine documents otherwise.
type Model struct {
	identifier  string
	task        predictor.Task
	accelerated bool

	resolver  *artifact.Resolver
	factory   *predictor.Factory
	annotator Annotator
	resources artifact.Container
	client    *http.Client
	log       *slog.Logger

	location artifact.Location
	pred     predictor.Predictor
	names    map[int]string

	conf    float64
	iou     float64
	pending pendingThresholds
}

// pendingThresholds buffers threshold mutations issued before the predictor
// exists. Reconciled exactly once, at the attach point.
type pendingThresholds struct {
	conf *float64
	iou  *float64
}

// Option configures model construction.
type Option func(*Model)

// WithTask fixes the vision task. Defaults to detection.
func WithTask(task predictor.Task) Option {
	return func(m *Model) { m.task = task }
}

// WithAcceleration enables or disables hardware acceleration. Enabled by
// default.
func WithAcceleration(enabled bool) Option {
	return func(m *Model) { m.accelerated = enabled }
}

// WithResolver replaces the default location resolver.
func WithResolver(r *artifact.Resolver) Option {
	return func(m *Model) { m.resolver = r }
}

// WithFactory replaces the default predictor factory.
func WithFactory(f *predictor.Factory) Option {
	return func(m *Model) { m.factory = f }
}

// WithAnnotator replaces the default annotator. A nil annotator disables
// annotation entirely.
func WithAnnotator(a Annotator) Option {
	return func(m *Model) { m.annotator = a }
}

// WithResources sets the container consulted by InferResource.
func WithResources(c artifact.Container) Option {
	return func(m *Model) { m.resources = c }
}

// WithConfidenceThreshold sets the confidence threshold ahead of predictor
// creation.
func WithConfidenceThreshold(v float64) Option {
	return func(m *Model) { m.pending.conf = &v }
}

// WithIoUThreshold sets the overlap threshold ahead of predictor creation.
func WithIoUThreshold(v float64) Option {
	return func(m *Model) { m.pending.iou = &v }
}

// WithLogger sets the logger used by the facade.
func WithLogger(log *slog.Logger) Option {
	return func(m *Model) { m.log = log }
}

// newShell builds the not-yet-usable facade value. It is never returned to
// callers before a predictor is attached.
func newShell(identifier string, opts ...Option) *Model {
	m := &Model{
		identifier:  identifier,
		task:        predictor.TaskDetect,
		accelerated: true,
		annotator:   NewDrawAnnotator(),
		client:      http.DefaultClient,
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.resolver == nil {
		m.resolver = artifact.NewResolver(artifact.WithLogger(m.log))
	}
	if m.factory == nil {
		m.factory = predictor.NewFactory(exec.Builder(exec.DefaultBin(), nil))
	}

	return m
}

// New resolves identifier, creates the task-keyed predictor and returns a
// fully constructed model. It blocks until the model is usable or fails with
// artifact.ErrModelNotFound or predictor.ErrLoadFailed.
func New(ctx context.Context, identifier string, opts ...Option) (*Model, error) {
	m := newShell(identifier, opts...)

	loc, err := m.resolver.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	pred, err := m.factory.Create(ctx, loc, m.task, m.accelerated)
	if err != nil {
		return nil, err
	}

	m.attach(loc, pred)
	m.log.Info("model loaded", "identifier", identifier, "path", loc.Path, "task", m.task.String())

	return m, nil
}

// NewAsync constructs the model on a background goroutine and fires
// completion exactly once, with either a usable model or a terminal error.
func NewAsync(identifier string, completion func(*Model, error), opts ...Option) {
	go func() {
		completion(New(context.Background(), identifier, opts...))
	}()
}

// attach is the single point where the predictor becomes available. Pending
// threshold updates win over the defaults and are applied exactly once.
func (m *Model) attach(loc artifact.Location, pred predictor.Predictor) {
	m.location = loc
	m.pred = pred

	m.conf = DefaultConfidenceThreshold
	if m.pending.conf != nil {
		m.conf = *m.pending.conf
	}

	m.iou = DefaultIoUThreshold
	if m.pending.iou != nil {
		m.iou = *m.pending.iou
	}

	m.pending = pendingThresholds{}

	pred.SetConfidenceThreshold(m.conf)
	pred.SetIoUThreshold(m.iou)

	m.names = m.loadNames(loc)
}

// SetConfidenceThreshold updates the confidence threshold. Values are passed
// through unclamped. Before a predictor exists the value is buffered and
// applied when one becomes available.
func (m *Model) SetConfidenceThreshold(v float64) {
	if m.pred == nil {
		m.pending.conf = &v
		return
	}

	m.conf = v
	m.pred.SetConfidenceThreshold(v)
}

// SetIoUThreshold updates the overlap threshold, with the same buffering
// behavior as SetConfidenceThreshold.
func (m *Model) SetIoUThreshold(v float64) {
	if m.pred == nil {
		m.pending.iou = &v
		return
	}

	m.iou = v
	m.pred.SetIoUThreshold(v)
}

// ConfidenceThreshold returns the active confidence threshold.
func (m *Model) ConfidenceThreshold() float64 {
	return m.conf
}

// IoUThreshold returns the active overlap threshold.
func (m *Model) IoUThreshold() float64 {
	return m.iou
}

// Task returns the task the model was constructed for.
func (m *Model) Task() predictor.Task {
	return m.task
}

// Location returns the resolved artifact location.
func (m *Model) Location() artifact.Location {
	return m.location
}

// Names returns the class names loaded alongside the artifact, if any.
func (m *Model) Names() map[int]string {
	return m.names
}

// Close releases the owned predictor.
func (m *Model) Close() error {
	if m.pred == nil {
		return nil
	}

	return m.pred.Close()
}

// loadNames looks for class names shipped next to the artifact: first the
// artifact's base name with a .names extension, then labels.txt in the same
// directory.
func (m *Model) loadNames(loc artifact.Location) map[int]string {
	base := strings.TrimSuffix(loc.Path, filepath.Ext(loc.Path))

	candidates := []string{
		base + ".names",
		filepath.Join(filepath.Dir(loc.Path), "labels.txt"),
	}

	for _, candidate := range candidates {
		names, err := predictor.LoadNames(candidate)
		if err != nil {
			continue
		}

		m.log.Debug("class names loaded", "path", candidate, "count", len(names))
		return names
	}

	return nil
}
