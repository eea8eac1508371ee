package metrics

import (
	"math"

	"github.com/san-kum/nukelab/internal/reactor"
)

// ReactivityEffort averages the magnitude of externally inserted reactivity,
// a measure of how hard a controller worked the rods.
type ReactivityEffort struct {
	name    string
	sum     float64
	samples int
}

func NewReactivityEffort() *ReactivityEffort {
	return &ReactivityEffort{
		name: "reactivity_effort",
	}
}

func (c *ReactivityEffort) Name() string {
	return c.name
}

func (c *ReactivityEffort) Observe(x reactor.State, u reactor.Control, t float64) {
	for _, val := range u {
		c.sum += math.Abs(val)
	}
	c.samples++
}

func (c *ReactivityEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ReactivityEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
