package repack

import "log/slog"

// Option configures a Converter.
type Option func(*Converter)

// WithAlgorithm selects the compression codec. Defaults to AlgorithmGzip.
func WithAlgorithm(a Algorithm) Option {
	return func(c *Converter) {
		c.algorithm = a
	}
}

// WithLevel sets the compression level, 1 (fastest) through 9 (best).
// Defaults to 6. New fails with ErrInvalidLevel for values outside 1..9.
func WithLevel(level int) Option {
	return func(c *Converter) {
		c.level = level
	}
}

// WithDeduplication controls duplicate-content elimination.
// Enabled by default. When disabled, every member is stored and no
// duplicate summaries are reported.
func WithDeduplication(enabled bool) Option {
	return func(c *Converter) {
		c.dedup = enabled
	}
}

// WithIntegrityCheck controls whether the compressed output is checksummed.
// Enabled by default. When disabled, Result.CompressedChecksum is empty.
func WithIntegrityCheck(enabled bool) Option {
	return func(c *Converter) {
		c.integrity = enabled
	}
}

// WithLogger sets the logger for conversion diagnostics.
// Defaults to a discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// WithProgress registers a callback for per-job progress events.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Converter) {
		c.progress = fn
	}
}
