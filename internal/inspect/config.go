package inspect

// Config holds the inspection defaults.
type Config struct {
	// DefaultLimit is the history window size used when a request does not
	// name one.
	DefaultLimit int
	// SearchParents enables upward repository discovery from the given
	// path.
	SearchParents bool
}

// DefaultConfig returns the documented defaults: a ten commit window and
// parent discovery enabled.
func DefaultConfig() Config {
	return Config{
		DefaultLimit:  DefaultHistoryLimit,
		SearchParents: true,
	}
}
