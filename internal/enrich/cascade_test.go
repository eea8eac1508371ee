package enrich

import (
	"math"
	"testing"
)

func TestAbundanceRatioRoundTrip(t *testing.T) {
	for _, x := range []float64{0.00711, 0.045, 0.2, 0.5, 0.93} {
		r := AbundanceRatio(x)
		if got := AssayFromRatio(r); math.Abs(got-x) > 1e-12 {
			t.Errorf("round trip failed for %f: got %f", x, got)
		}
	}
}

func TestSeparationFactorBounds(t *testing.T) {
	c := NewCascade()

	c.Alpha = 1.0
	if _, err := c.StagesRequired(); err == nil {
		t.Error("alpha = 1 accepted; a cascade that separates nothing is invalid")
	}

	c.Alpha = 0.8
	if _, err := c.StagesRequired(); err == nil {
		t.Error("alpha < 1 accepted")
	}

	c.Alpha = 1.3
	if _, err := c.StagesRequired(); err != nil {
		t.Errorf("valid alpha rejected: %v", err)
	}
}

func TestStageAssayMonotone(t *testing.T) {
	c := NewCascade()

	prev := 0.0
	for n := 0; n <= 20; n++ {
		assay := c.StageAssay(n)
		if assay <= prev {
			t.Fatalf("assay should increase with stage count: stage %d gives %f after %f", n, assay, prev)
		}
		if assay >= 1 {
			t.Fatalf("assay escaped (0,1): %f", assay)
		}
		prev = assay
	}
}

func TestStagesRequiredReachesProduct(t *testing.T) {
	c := NewCascade()

	stages, err := c.StagesRequired()
	if err != nil {
		t.Fatalf("stages: %v", err)
	}

	if stages <= 0 {
		t.Fatalf("expected positive stage count, got %d", stages)
	}
	if c.StageAssay(stages) < c.ProductAssay {
		t.Errorf("assay after %d stages is %f, below product %f", stages, c.StageAssay(stages), c.ProductAssay)
	}
	if stages > 1 && c.StageAssay(stages-1) >= c.ProductAssay {
		t.Errorf("stage count not minimal: %d", stages)
	}
}

func TestBalanceConservesMass(t *testing.T) {
	c := NewCascade()

	mb, err := c.Balance(100.0)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}

	if math.Abs(mb.Feed-(mb.Product+mb.Tails)) > 1e-9 {
		t.Errorf("total mass not conserved: F=%f P=%f T=%f", mb.Feed, mb.Product, mb.Tails)
	}

	isotope := mb.Product*c.ProductAssay + mb.Tails*c.TailsAssay
	if math.Abs(mb.Feed*c.FeedAssay-isotope) > 1e-9 {
		t.Errorf("isotope mass not conserved: feed carries %f, streams carry %f", mb.Feed*c.FeedAssay, isotope)
	}
}

func TestBalanceSWUPositive(t *testing.T) {
	c := NewCascade()

	mb, err := c.Balance(1.0)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}

	if mb.SWU <= 0 {
		t.Errorf("separative work must be positive for enrichment, got %f", mb.SWU)
	}
}

func TestValueFunctionShape(t *testing.T) {
	// V is symmetric about 0.5 and vanishes there.
	if math.Abs(ValueFunction(0.5)) > 1e-12 {
		t.Errorf("V(0.5) should be 0, got %f", ValueFunction(0.5))
	}
	if math.Abs(ValueFunction(0.1)-ValueFunction(0.9)) > 1e-9 {
		t.Errorf("V should be symmetric: V(0.1)=%f V(0.9)=%f", ValueFunction(0.1), ValueFunction(0.9))
	}
	if ValueFunction(0.00711) <= 0 {
		t.Error("V should be positive away from 0.5")
	}
}

func TestStageTable(t *testing.T) {
	c := NewCascade()

	table, err := c.StageTable()
	if err != nil {
		t.Fatalf("stage table: %v", err)
	}

	if table[0] != c.FeedAssay {
		t.Errorf("table should start at feed assay, got %f", table[0])
	}
	if table[len(table)-1] < c.ProductAssay {
		t.Errorf("table should end at or above product assay, got %f", table[len(table)-1])
	}
}

func TestStageAssayZeroIsFeed(t *testing.T) {
	// Stage zero must report the feed assay bit-for-bit, not a value that
	// went through the abundance-ratio round trip.
	c := NewCascade()

	if got := c.StageAssay(0); got != c.FeedAssay {
		t.Errorf("StageAssay(0) = %v, want exactly %v", got, c.FeedAssay)
	}
	if c.StageAssay(1) <= c.FeedAssay {
		t.Error("one enriching stage should raise the assay")
	}
}

func TestBalanceInvalidInputs(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Cascade)
	}{
		{"product below feed", func(c *Cascade) { c.ProductAssay = 0.005 }},
		{"tails above feed", func(c *Cascade) { c.TailsAssay = 0.01 }},
		{"assay at one", func(c *Cascade) { c.ProductAssay = 1.0 }},
		{"negative assay", func(c *Cascade) { c.FeedAssay = -0.1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCascade()
			tt.modify(c)
			if _, err := c.Balance(1.0); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
