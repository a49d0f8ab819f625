package progression

import "go.uber.org/zap"

// Option configures Parse, Iterate and Describe. None of the options change
// the parsed result.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger sets the logger used for debug records. The default discards
// everything.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
