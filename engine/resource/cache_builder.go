package resource

// CacheBuilderOption is a functional option for configuring a Cache.
type CacheBuilderOption func(c *cache)

// WithLoader sets the function that loads a missing resource.
//
// Parameters:
//   - fn: the loader
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithLoader(fn LoaderFunc) CacheBuilderOption {
	return func(c *cache) {
		if fn != nil {
			c.loader = fn
		}
	}
}

// WithReleaser sets the function that frees a reclaimed resource.
//
// Parameters:
//   - fn: the releaser
//
// Returns:
//   - CacheBuilderOption: option function to apply
func WithReleaser(fn ReleaserFunc) CacheBuilderOption {
	return func(c *cache) {
		c.releaser = fn
	}
}
