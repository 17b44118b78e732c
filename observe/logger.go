/*
Package observe provides debug observers that report the intermediate state
of the tracker, the appearance models and posterior fields, to a zap logger.
*/
package observe

import (
	"go.uber.org/zap"

	"github.com/swdee/go-regiontrack/appearance"
	"github.com/swdee/go-regiontrack/posterior"
)

// Logger reports every appearance Model and posterior Field at debug level
type Logger struct {
	logger *zap.SugaredLogger
}

// NewLogger returns a Logger writing to l, a nil l discards everything
func NewLogger(l *zap.SugaredLogger) *Logger {

	if l == nil {
		l = zap.NewNop().Sugar()
	}

	return &Logger{logger: l}
}

// ObserveModel logs the region, per channel histogram peaks and masses of m
func (o *Logger) ObserveModel(m *appearance.Model) {
	o.logger.Debugw("appearance model",
		"region", m.Region,
		"bins", m.Foreground.Bins(),
		"fgPeaks", peaks(m.Foreground),
		"bgPeaks", peaks(m.Background),
		"fgMass", m.Foreground[0].Sum(),
		"bgMass", m.Background[0].Sum(),
	)
}

// ObservePosterior logs the evaluated region and the range of both planes
func (o *Logger) ObservePosterior(f *posterior.Field) {

	fg := f.Stats(posterior.Foreground)
	bg := f.Stats(posterior.Background)

	o.logger.Debugw("posterior field",
		"region", f.Region,
		"rows", f.Rows(),
		"cols", f.Cols(),
		"fgMin", fg.Min, "fgMax", fg.Max, "fgMean", fg.Mean,
		"bgMin", bg.Min, "bgMax", bg.Max, "bgMean", bg.Mean,
	)
}

func peaks(c appearance.ColorHistogram) [3]int {
	return [3]int{c[0].Peak(), c[1].Peak(), c[2].Peak()}
}

// Posteriors fans a computed Field out to several observers in order
type Posteriors []posterior.Observer

// ObservePosterior passes f to every observer
func (p Posteriors) ObservePosterior(f *posterior.Field) {
	for _, o := range p {
		o.ObservePosterior(f)
	}
}
