package contour_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/granular/internal/contour"
	"github.com/san-kum/granular/internal/dynamo"
)

var _ = Describe("Field", func() {
	var f *contour.Field

	BeforeEach(func() {
		f = contour.NewField(contour.Config{Width: 60, Height: 60, CellSize: 5, Smoothness: 0})
		f.NewFrame()
	})

	It("outlines a single disc near its radius", func() {
		f.AddCircle(r2.Vec{X: 12, Y: -7}, 40)
		polys := f.Draw(dynamo.Identity())
		Expect(polys).NotTo(BeEmpty())

		for _, p := range polys {
			for _, v := range p {
				d := r2.Norm(r2.Sub(v, r2.Vec{X: 12, Y: -7}))
				Expect(d).To(BeNumerically("<=", 40+5*math.Sqrt2))
			}
		}
	})

	It("maps output through the transform", func() {
		f.AddCircle(r2.Vec{}, 30)
		plain := f.Draw(dynamo.Identity())

		f.NewFrame()
		f.AddCircle(r2.Vec{}, 30)
		view := dynamo.ScaleTranslate(2, r2.Vec{X: 100, Y: 50})
		mapped := f.Draw(view)

		Expect(mapped).To(HaveLen(len(plain)))
		for i := range plain {
			for j := range plain[i] {
				want := view.Apply(plain[i][j])
				Expect(mapped[i][j].X).To(BeNumerically("~", want.X, 1e-9))
				Expect(mapped[i][j].Y).To(BeNumerically("~", want.Y, 1e-9))
			}
		}
	})

	It("fuses nearby discs when smoothing is on", func() {
		gap := func(k float64) float64 {
			f.SetSmoothness(k)
			f.NewFrame()
			f.AddCircle(r2.Vec{X: -22, Y: 0}, 20)
			f.AddCircle(r2.Vec{X: 22, Y: 0}, 20)
			f.Draw(dynamo.Identity())
			return f.Sample(30, 30)
		}

		Expect(gap(0)).To(BeNumerically(">", 0))
		Expect(gap(50)).To(BeNumerically("<=", 0))
	})

	It("clamps negative smoothness", func() {
		f.SetSmoothness(-4)
		Expect(f.Smoothness()).To(Equal(0.0))
	})

	It("reports its world extent", func() {
		ext := f.Extent()
		Expect(ext.Min).To(Equal(r2.Vec{X: -150, Y: -150}))
		Expect(ext.Max).To(Equal(r2.Vec{X: 150, Y: 150}))
	})
})
