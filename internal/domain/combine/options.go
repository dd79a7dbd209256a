// Package combine pairs female and male events whose remainder swimmers fit in one heat.
package combine

// Option applies a configuration option to the Combiner.
type Option func(*Combiner)

// WithLanes sets the number of lanes (heat capacity). Non-positive values are ignored.
func WithLanes(lanes int) Option {
	return func(c *Combiner) {
		if lanes > 0 {
			c.lanes = lanes
		}
	}
}

// WithAggressiveness sets the minimum remainder each event must have for a
// combination to be offered. Negative values are ignored.
func WithAggressiveness(min int) Option {
	return func(c *Combiner) {
		if min >= 0 {
			c.aggressiveness = min
		}
	}
}
