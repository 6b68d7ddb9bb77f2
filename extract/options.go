package extract

// Option configures an extraction call.
type Option func(*options)

type options struct {
	strict bool
}

// WithStrict promotes any per-directive extraction warning into a
// hard failure: the extractor returns no records at all, only the
// combined warnings. Off by default, matching spec: extraction
// failures are collected, not thrown, unless strict mode is requested.
func WithStrict() Option {
	return func(o *options) { o.strict = true }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
