package shield_test

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nukelab/internal/shield"
)

func TestShield(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Shield Suite")
}

var _ = Describe("Attenuation", func() {
	It("is 1 at zero thickness", func() {
		Expect(shield.Transmission(0.5, 0)).To(BeNumerically("==", 1.0))
	})

	It("is non-negative and decreases with thickness", func() {
		mu := 0.5
		prev := math.Inf(1)
		for x := 0.0; x <= 50; x += 0.5 {
			tr := shield.Transmission(mu, x)
			Expect(tr).To(BeNumerically(">=", 0))
			Expect(tr).To(BeNumerically("<", prev))
			prev = tr
		}
	})

	It("solves the required thickness exactly", func() {
		mu := 0.499 // lead, 1 MeV-ish
		x, err := shield.RequiredThickness(mu, 1e-6)
		Expect(err).NotTo(HaveOccurred())
		Expect(shield.Transmission(mu, x)).To(BeNumerically("~", 1e-6, 1e-12))
	})

	It("rejects non-physical targets", func() {
		_, err := shield.RequiredThickness(0.5, 0)
		Expect(err).To(HaveOccurred())
		_, err = shield.RequiredThickness(0.5, -0.1)
		Expect(err).To(HaveOccurred())
		_, err = shield.RequiredThickness(0.5, 1.5)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Materials", func() {
	It("derives the linear coefficient from the mass coefficient", func() {
		lead, err := shield.Lookup("lead")
		Expect(err).NotTo(HaveOccurred())

		mu, err := lead.LinearMu()
		Expect(err).NotTo(HaveOccurred())
		Expect(mu).To(BeNumerically("~", 11.34*0.044, 1e-9))
	})

	It("uses a direct linear coefficient when present", func() {
		steel, err := shield.Lookup("steel")
		Expect(err).NotTo(HaveOccurred())

		mu, err := steel.LinearMu()
		Expect(err).NotTo(HaveOccurred())
		Expect(mu).To(BeNumerically("==", 0.12))
	})

	It("fails on unknown materials", func() {
		_, err := shield.Lookup("unobtainium")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("SingleLayer", func() {
	It("sizes lead for a millionfold reduction", func() {
		lead, _ := shield.Lookup("lead")
		sol, err := shield.SingleLayer(lead, 1e-6)
		Expect(err).NotTo(HaveOccurred())

		Expect(sol.Thickness).To(BeNumerically(">", 0))
		Expect(sol.Transmission).To(BeNumerically("~", 1e-6, 1e-9))
		Expect(sol.ArealDensity).To(BeNumerically("~", lead.Density*sol.Thickness, 1e-9))
	})

	It("needs less thickness for denser materials", func() {
		lead, _ := shield.Lookup("lead")
		water, _ := shield.Lookup("water")

		leadSol, err := shield.SingleLayer(lead, 1e-3)
		Expect(err).NotTo(HaveOccurred())
		waterSol, err := shield.SingleLayer(water, 1e-3)
		Expect(err).NotTo(HaveOccurred())

		Expect(leadSol.Thickness).To(BeNumerically("<", waterSol.Thickness))
	})
})

var _ = Describe("OptimizeTwoLayers", func() {
	It("meets the target within range", func() {
		concrete, _ := shield.Lookup("concrete")
		lead, _ := shield.Lookup("lead")

		best, err := shield.OptimizeTwoLayers(concrete, lead, 1e-6,
			shield.SearchRange{MaxThickness: 100, Steps: 401},
			shield.SearchRange{MaxThickness: 20, Steps: 401})
		Expect(err).NotTo(HaveOccurred())
		Expect(best).NotTo(BeNil())
		Expect(best.Transmission).To(BeNumerically("<=", 1e-6))
		Expect(best.ArealDensity).To(BeNumerically(">", 0))
	})

	It("never beats the lighter single material by being heavier", func() {
		concrete, _ := shield.Lookup("concrete")
		lead, _ := shield.Lookup("lead")

		best, err := shield.OptimizeTwoLayers(concrete, lead, 1e-4,
			shield.SearchRange{MaxThickness: 100, Steps: 801},
			shield.SearchRange{MaxThickness: 40, Steps: 801})
		Expect(err).NotTo(HaveOccurred())
		Expect(best).NotTo(BeNil())

		leadOnly, err := shield.SingleLayer(lead, 1e-4)
		Expect(err).NotTo(HaveOccurred())
		concreteOnly, err := shield.SingleLayer(concrete, 1e-4)
		Expect(err).NotTo(HaveOccurred())

		lighter := math.Min(leadOnly.ArealDensity, concreteOnly.ArealDensity)
		// Grid resolution costs a little; allow a few percent slack.
		Expect(best.ArealDensity).To(BeNumerically("<=", lighter*1.05))
	})

	It("returns nil when the range cannot meet the target", func() {
		water, _ := shield.Lookup("water")
		best, err := shield.OptimizeTwoLayers(water, water, 1e-9,
			shield.SearchRange{MaxThickness: 1, Steps: 11},
			shield.SearchRange{MaxThickness: 1, Steps: 11})
		Expect(err).NotTo(HaveOccurred())
		Expect(best).To(BeNil())
	})
})

var _ = Describe("Validate", func() {
	It("agrees with the analytic transmission", func() {
		lead, _ := shield.Lookup("lead")
		mu, _ := lead.LinearMu()

		res, err := shield.Validate(lead, 10.0, 200000, 42)
		Expect(err).NotTo(HaveOccurred())

		analytic := shield.Transmission(mu, 10.0)
		Expect(res.Fraction).To(BeNumerically("~", analytic, 4*res.StdErr+1e-4))
	})
})
