package metrics

import "github.com/san-kum/nukelab/internal/reactor"

// Activity tracks the time-averaged total decay rate of a chain run,
// lambdaA*Na + lambdaB*Nb.
type Activity struct {
	name    string
	lambdaA float64
	lambdaB float64
	sum     float64
	samples int
}

func NewActivity(lambdaA, lambdaB float64) *Activity {
	return &Activity{
		name:    "activity",
		lambdaA: lambdaA,
		lambdaB: lambdaB,
	}
}

func (a *Activity) Name() string { return a.name }

func (a *Activity) Observe(x reactor.State, u reactor.Control, t float64) {
	if len(x) < 2 {
		return
	}
	a.sum += a.lambdaA*x[0] + a.lambdaB*x[1]
	a.samples++
}

func (a *Activity) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return a.sum / float64(a.samples)
}

func (a *Activity) Reset() {
	a.sum = 0
	a.samples = 0
}
