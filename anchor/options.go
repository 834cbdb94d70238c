package anchor

import "log/slog"

// Option configures an anchor during creation.
//
// Example:
//
//	a := anchor.NewChopBox(box,
//	    anchor.WithStrategy(anchor.OutlineStrategy{}),
//	    anchor.WithLogger(slog.Default()))
type Option func(*options)

type options struct {
	strategy ComputationStrategy
	logger   *slog.Logger
}

func defaultOptions() options {
	return options{
		strategy: OutlineStrategy{},
		logger:   nil, // gef.Logger() at log time
	}
}

// WithStrategy sets the strategy a ChopBox uses to compute positions.
// Static anchors ignore it.
func WithStrategy(s ComputationStrategy) Option {
	return func(o *options) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithLogger sets a logger for this anchor instead of the package-wide
// logger configured with gef.SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
