package regiontrack

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/swdee/go-regiontrack/appearance"
	"github.com/swdee/go-regiontrack/depth"
	"github.com/swdee/go-regiontrack/frame"
	"github.com/swdee/go-regiontrack/observe"
	"github.com/swdee/go-regiontrack/posterior"
	"github.com/swdee/go-regiontrack/preprocess"
	"github.com/swdee/go-regiontrack/viewindex"
)

// Result is the output of a Pipeline update for one frame
type Result struct {
	// Model is the appearance of the object in this frame
	Model *appearance.Model
	// Field is the posterior over the model region
	Field *posterior.Field
}

// Release hands the posterior planes back for reuse
func (r *Result) Release() {
	if r.Field != nil {
		r.Field.Release()
	}
}

// Pipeline builds the appearance model of an object and its posterior field
// for each frame.  A Pipeline holds no per frame state and is safe for
// concurrent use.
type Pipeline struct {
	config  Config
	builder *appearance.Builder
	engine  *posterior.Engine
	indexer viewindex.Indexer
	depth   *depth.Renderer
	log     *zap.SugaredLogger
}

// NewPipeline validates cfg and returns a Pipeline.  Models and fields are
// reported to logger at debug level and every field is also passed to the
// given observers.  A nil logger discards all output.
func NewPipeline(cfg Config, logger *zap.SugaredLogger,
	observers ...posterior.Observer) (*Pipeline, error) {

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid pipeline config")
	}

	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	debug := observe.NewLogger(logger)

	builder, err := appearance.NewBuilder(cfg.Appearance, debug)

	if err != nil {
		return nil, err
	}

	engine, err := posterior.NewEngine(cfg.Posterior,
		append(observe.Posteriors{debug}, observers...))

	if err != nil {
		return nil, err
	}

	return &Pipeline{
		config:  cfg,
		builder: builder,
		engine:  engine,
		indexer: viewindex.NewIndexer(cfg.Azimuth),
		depth:   depth.NewRenderer(cfg.Depth),
		log:     logger,
	}, nil
}

// Config returns the configuration the Pipeline was created with
func (p *Pipeline) Config() Config {
	return p.config
}

// Update builds the appearance model of img for the seed and computes the
// posterior field over the model region
func (p *Pipeline) Update(img *frame.Image, seed appearance.RegionSeed) (*Result, error) {

	m, err := p.builder.Build(img, seed)

	if err != nil {
		return nil, errors.Wrap(err, "error building appearance model")
	}

	if m.Region.Empty() {
		p.log.Warnw("object footprint is empty, posterior holds priors only")
	}

	f, err := p.engine.Compute(img, m.Foreground, m.Background, m.Region)

	if err != nil {
		return nil, errors.Wrap(err, "error computing posterior")
	}

	return &Result{Model: m, Field: f}, nil
}

// UpdateMat runs Update on a CV_8UC3 Mat
func (p *Pipeline) UpdateMat(src gocv.Mat, seed appearance.RegionSeed) (*Result, error) {

	img, err := preprocess.ImageFromMat(src)

	if err != nil {
		return nil, err
	}

	return p.Update(img, seed)
}

// ViewIndex returns the azimuth bin of the object heading in radians under
// the configured convention
func (p *Pipeline) ViewIndex(heading float64) int {
	return p.indexer.AzimuthIndex(heading)
}

// ViewAngle returns the heading in radians at the centre of an azimuth bin
func (p *Pipeline) ViewAngle(index int) float64 {
	return p.indexer.AngleFromAzimuthIndex(index)
}

// DepthView writes a display image of a normalized renderer depth buffer
// into dst
func (p *Pipeline) DepthView(zbuffer *frame.Plane, dst *gocv.Mat) error {
	return p.depth.ColorMap(zbuffer, dst)
}
