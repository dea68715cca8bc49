package vision

import (
	"context"
	"image"
	"image/draw"
	"io"
	"os"
	"strings"

	"github.com/ekisa-team/visionkit/predictor"
)

// InferOption configures a single inference call.
type InferOption func(*inferConfig)

type inferConfig struct {
	annotate bool
}

// WithAnnotation requests or suppresses the annotated output image. Enabled
// by default. Only the Infer and InferImage entry points honor it; the other
// variants never annotate.
func WithAnnotation(enabled bool) InferOption {
	return func(c *inferConfig) { c.annotate = enabled }
}

func newInferConfig(opts []InferOption) inferConfig {
	cfg := inferConfig{annotate: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Infer runs inference on an already-canonical image.
func (m *Model) Infer(c *Canvas, opts ...InferOption) *predictor.Result {
	if c == nil {
		return predictor.EmptyResult()
	}

	cfg := newInferConfig(opts)
	return m.run(c, cfg.annotate)
}

// InferImage runs inference on an in-memory raster image.
func (m *Model) InferImage(img image.Image, opts ...InferOption) *predictor.Result {
	if img == nil {
		return predictor.EmptyResult()
	}

	cfg := newInferConfig(opts)
	return m.run(NewCanvas(img), cfg.annotate)
}

// InferRaster runs inference on a rasterized graphics handle. The annotate
// flag is accepted but not honored on this entry point.
func (m *Model) InferRaster(img draw.Image, opts ...InferOption) *predictor.Result {
	if img == nil {
		return predictor.EmptyResult()
	}

	return m.run(NewCanvas(img), false)
}

// InferResource runs inference on a named application resource looked up in
// the model's resource container. The annotate flag is accepted but not
// honored on this entry point.
func (m *Model) InferResource(name string, opts ...InferOption) *predictor.Result {
	return m.InferResourceExt(name, "", opts...)
}

// InferResourceExt is InferResource with an explicit type qualifier matched
// separately from the resource name.
func (m *Model) InferResourceExt(name, ext string, _ ...InferOption) *predictor.Result {
	if m.resources == nil {
		m.log.Warn("no resource container configured", "resource", name)
		return predictor.EmptyResult()
	}

	path, ok := m.resources.Resource(name, ext)
	if !ok {
		m.log.Warn("resource not found", "resource", name, "container", m.resources.Name())
		return predictor.EmptyResult()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.log.Warn("failed to read resource", "path", path, "error", err)
		return predictor.EmptyResult()
	}

	return m.runBytes(data)
}

// InferURI fetches a remote or local URI, decodes it and runs inference.
// The annotate flag is accepted but not honored on this entry point.
func (m *Model) InferURI(uri string, _ ...InferOption) *predictor.Result {
	data, err := m.fetch(uri)
	if err != nil {
		m.log.Warn("failed to fetch input", "uri", uri, "error", err)
		return predictor.EmptyResult()
	}

	return m.runBytes(data)
}

// InferRendered renders a declarative image description off screen and runs
// inference on the raster. The annotate flag is accepted but not honored on
// this entry point.
func (m *Model) InferRendered(r Renderer, _ ...InferOption) *predictor.Result {
	if r == nil {
		return predictor.EmptyResult()
	}

	img, err := r.Render()
	if err != nil || img == nil {
		m.log.Warn("failed to render input", "error", err)
		return predictor.EmptyResult()
	}

	return m.run(NewCanvas(img), false)
}

// runBytes decodes encoded image bytes and funnels into the canonical path.
// Undecodable payloads degrade to the empty result.
func (m *Model) runBytes(data []byte) *predictor.Result {
	c, err := Decode(data)
	if err != nil {
		m.log.Warn("failed to decode input", "error", err)
		return predictor.EmptyResult()
	}

	return m.run(c, false)
}

// run is the single canonical inference path. All post-construction failure
// is representational: a failing predictor yields the empty result, never an
// error.
func (m *Model) run(c *Canvas, annotate bool) *predictor.Result {
	res, err := m.pred.Predict(context.Background(), c.Image())
	if err != nil {
		m.log.Error("inference failed", "identifier", m.identifier, "error", err)
		return predictor.EmptyResult()
	}

	res.OriginalWidth = c.Width()
	res.OriginalHeight = c.Height()

	if len(res.Names) == 0 && len(m.names) > 0 {
		res.Names = m.names
	}

	if annotate && m.annotator != nil {
		res.Annotated = m.annotator.Annotate(c.Image(), res)
	}

	return res
}

// fetch reads the bytes behind a URI: http(s) over the network, everything
// else from the file system (with an optional file scheme).
func (m *Model) fetch(uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		resp, err := m.client.Get(uri)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		return io.ReadAll(resp.Body)
	}

	path := strings.TrimPrefix(uri, "file://")
	return os.ReadFile(path)
}
