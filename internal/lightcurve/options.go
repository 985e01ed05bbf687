package lightcurve

// Option configures CalcStats
type Option func(*config)

type config struct {
	concurrency int
}

// WithConcurrency bounds how many bands are summarized at once.
// Values below 2 keep the computation sequential.
func WithConcurrency(n int) Option {
	return func(c *config) {
		c.concurrency = n
	}
}

func applyOptions(opts []Option) *config {
	cfg := &config{concurrency: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
