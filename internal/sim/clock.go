package sim

// DefaultStep is the fixed visual tick.
const (
	DefaultStep     = 1.0 / 60
	DefaultMaxFrame = 0.25
)

// Clock turns variable wall-clock frame times into a whole number of
// fixed ticks. Frame times are clamped to MaxFrame so a long stall cannot
// queue an unbounded burst of ticks.
type Clock struct {
	Step     float64
	MaxFrame float64
	acc      float64
}

func NewClock(step, maxFrame float64) *Clock {
	return &Clock{Step: step, MaxFrame: maxFrame}
}

// Advance adds frame seconds and returns the number of ticks now due.
func (c *Clock) Advance(frame float64) int {
	if !(c.Step > 0) {
		return 0
	}
	if frame < 0 {
		frame = 0
	}
	if c.MaxFrame > 0 && frame > c.MaxFrame {
		frame = c.MaxFrame
	}
	c.acc += frame

	n := 0
	for c.acc >= c.Step {
		c.acc -= c.Step
		n++
	}
	return n
}

// Alpha is the fraction of a tick left in the accumulator.
func (c *Clock) Alpha() float64 {
	if !(c.Step > 0) {
		return 0
	}
	return c.acc / c.Step
}

func (c *Clock) Reset() { c.acc = 0 }
