package enrich

import (
	"fmt"
	"math"

	"github.com/san-kum/nukelab/internal/reactor"
)

// Cascade describes an ideal gas-centrifuge cascade enriching a binary
// isotope mixture. Assays are atom fractions of the target isotope; Alpha is
// the per-stage separation factor applied to the abundance ratio x/(1-x).
type Cascade struct {
	Alpha        float64 // per-stage separation factor, > 1
	FeedAssay    float64
	ProductAssay float64
	TailsAssay   float64
}

// NewCascade returns a cascade with typical LEU production numbers: natural
// uranium feed enriched to 4.5% with 0.25% tails.
func NewCascade() *Cascade {
	return &Cascade{
		Alpha:        1.3,
		FeedAssay:    0.00711,
		ProductAssay: 0.045,
		TailsAssay:   0.0025,
	}
}

// AbundanceRatio converts an assay to the ratio R = x/(1-x).
func AbundanceRatio(assay float64) float64 {
	return assay / (1.0 - assay)
}

// AssayFromRatio is the inverse of AbundanceRatio.
func AssayFromRatio(r float64) float64 {
	return r / (1.0 + r)
}

func (c *Cascade) validate() error {
	if c.Alpha <= 1 {
		return fmt.Errorf("%w: separation factor must exceed 1, got %g", reactor.ErrParameterBounds, c.Alpha)
	}
	for _, a := range []float64{c.FeedAssay, c.ProductAssay, c.TailsAssay} {
		if a <= 0 || a >= 1 {
			return fmt.Errorf("%w: assay must be in (0,1), got %g", reactor.ErrParameterBounds, a)
		}
	}
	if c.ProductAssay <= c.FeedAssay {
		return fmt.Errorf("%w: product assay must exceed feed assay", reactor.ErrParameterBounds)
	}
	if c.TailsAssay >= c.FeedAssay {
		return fmt.Errorf("%w: tails assay must be below feed assay", reactor.ErrParameterBounds)
	}
	return nil
}

// StageAssay returns the assay after n enriching stages from the feed.
// Stage zero is the feed itself, reported exactly rather than round-tripped
// through the abundance ratio.
func (c *Cascade) StageAssay(n int) float64 {
	if n == 0 {
		return c.FeedAssay
	}
	r := AbundanceRatio(c.FeedAssay) * math.Pow(c.Alpha, float64(n))
	return AssayFromRatio(r)
}

// StagesRequired returns the number of enriching stages needed to reach the
// product assay.
func (c *Cascade) StagesRequired() (int, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	ratio := AbundanceRatio(c.ProductAssay) / AbundanceRatio(c.FeedAssay)
	return int(math.Ceil(math.Log(ratio) / math.Log(c.Alpha))), nil
}

// StrippingStagesRequired returns the stages below the feed point needed to
// deplete down to the tails assay.
func (c *Cascade) StrippingStagesRequired() (int, error) {
	if err := c.validate(); err != nil {
		return 0, err
	}
	ratio := AbundanceRatio(c.FeedAssay) / AbundanceRatio(c.TailsAssay)
	return int(math.Ceil(math.Log(ratio) / math.Log(c.Alpha))), nil
}

// MaterialBalance holds the stream masses for a requested product quantity.
type MaterialBalance struct {
	Product float64
	Feed    float64
	Tails   float64
	SWU     float64
}

// Balance solves the cascade mass balance for the given product quantity:
// F = P + T and F*xf = P*xp + T*xt, plus the separative work.
func (c *Cascade) Balance(product float64) (*MaterialBalance, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}
	if product <= 0 {
		return nil, fmt.Errorf("%w: product quantity must be positive, got %g", reactor.ErrParameterBounds, product)
	}

	feed := product * (c.ProductAssay - c.TailsAssay) / (c.FeedAssay - c.TailsAssay)
	tails := feed - product

	swu := product*ValueFunction(c.ProductAssay) +
		tails*ValueFunction(c.TailsAssay) -
		feed*ValueFunction(c.FeedAssay)

	return &MaterialBalance{
		Product: product,
		Feed:    feed,
		Tails:   tails,
		SWU:     swu,
	}, nil
}

// ValueFunction is the separative potential V(x) = (2x-1)*ln(x/(1-x)).
func ValueFunction(x float64) float64 {
	return (2.0*x - 1.0) * math.Log(x/(1.0-x))
}

// StageTable lists the assay at each enriching stage up to the product.
func (c *Cascade) StageTable() ([]float64, error) {
	stages, err := c.StagesRequired()
	if err != nil {
		return nil, err
	}
	table := make([]float64, stages+1)
	for i := 0; i <= stages; i++ {
		table[i] = c.StageAssay(i)
	}
	return table, nil
}
