package regiontrack

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/swdee/go-regiontrack/appearance"
	"github.com/swdee/go-regiontrack/depth"
	"github.com/swdee/go-regiontrack/posterior"
	"github.com/swdee/go-regiontrack/viewindex"
)

// Config gathers the parameters of every stage of the Pipeline
type Config struct {
	// Appearance are the histogram construction parameters
	Appearance appearance.Params
	// Posterior are the posterior field parameters
	Posterior posterior.Params
	// Azimuth is the heading sign convention used for view indexing
	Azimuth viewindex.Convention
	// Depth are the depth buffer display parameters
	Depth depth.Params
}

// DefaultConfig returns the default parameters of every stage
func DefaultConfig() Config {
	return Config{
		Appearance: appearance.DefaultParams(),
		Posterior:  posterior.DefaultParams(),
		Azimuth:    viewindex.Clockwise,
		Depth:      depth.DefaultParams(),
	}
}

// Validate returns every problem found across all stages
func (c Config) Validate() error {

	var err error

	if e := c.Appearance.Validate(); e != nil {
		err = multierr.Append(err, errors.Wrap(e, "appearance"))
	}

	if e := c.Posterior.Validate(); e != nil {
		err = multierr.Append(err, errors.Wrap(e, "posterior"))
	}

	if !c.Azimuth.Valid() {
		err = multierr.Append(err, errors.Errorf("unknown azimuth convention %d", int(c.Azimuth)))
	}

	if e := c.Depth.Validate(); e != nil {
		err = multierr.Append(err, errors.Wrap(e, "depth"))
	}

	return err
}
