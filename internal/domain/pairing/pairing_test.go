package pairing_test

import (
	"testing"

	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/pairing"
	. "github.com/smartystreets/goconvey/convey"
)

func candidates(n int) []model.Candidate {
	out := make([]model.Candidate, n)
	for i := range out {
		out[i] = model.Candidate{RawIdx: i, Pt: float64(100 - i)}
	}
	return out
}

func TestCombinations(t *testing.T) {
	Convey("Given events with varying multiplicity", t, func() {
		events := [][]model.Candidate{
			candidates(4),
			candidates(2),
			candidates(1),
			{},
		}

		Convey("When building all 2-combinations", func() {
			pairs := pairing.Combinations(events)

			Convey("Then cardinality per event is C(n, 2)", func() {
				So(pairs[0], ShouldHaveLength, 6)
				So(pairs[1], ShouldHaveLength, 1)
				So(pairs[2], ShouldBeEmpty)
				So(pairs[3], ShouldBeEmpty)
			})

			Convey("Then there are no self-pairs and no duplicates", func() {
				seen := map[[2]int]bool{}
				for _, p := range pairs[0] {
					So(p.Leg1.RawIdx, ShouldNotEqual, p.Leg2.RawIdx)
					So(p.Leg1.RawIdx, ShouldBeLessThan, p.Leg2.RawIdx)
					key := [2]int{p.Leg1.RawIdx, p.Leg2.RawIdx}
					So(seen[key], ShouldBeFalse)
					seen[key] = true
				}
			})
		})
	})
}

func TestCrossProduct(t *testing.T) {
	Convey("Given two distinct collections per event", t, func() {
		leptons := [][]model.Candidate{candidates(2), {}}
		taus := [][]model.Candidate{candidates(3), candidates(3)}

		Convey("When building the cross product", func() {
			pairs := pairing.CrossProduct(leptons, taus)

			Convey("Then cardinality per event is n1*n2", func() {
				So(pairs[0], ShouldHaveLength, 6)
				So(pairs[1], ShouldBeEmpty)
			})
		})
	})
}

func TestPreselector(t *testing.T) {
	Convey("Given a preselector with two cuts", t, func() {
		presel := pairing.NewPreselector([]pairing.Cut{
			{Name: "leg1_pt", Pass: func(p model.Pair) bool { return p.Leg1.Pt > 50 }},
			{Name: "leg2_pt", Pass: func(p model.Pair) bool { return p.Leg2.Pt > 30 }},
		})
		events := [][]model.Pair{{
			{Leg1: model.Candidate{RawIdx: 0, Pt: 60}, Leg2: model.Candidate{RawIdx: 1, Pt: 40}},
			{Leg1: model.Candidate{RawIdx: 0, Pt: 60}, Leg2: model.Candidate{RawIdx: 2, Pt: 20}},
			{Leg1: model.Candidate{RawIdx: 3, Pt: 45}, Leg2: model.Candidate{RawIdx: 1, Pt: 40}},
		}}

		Convey("When applying the cuts", func() {
			steps := model.NewStepMasks()
			out, err := presel.Apply(events, steps)

			Convey("Then only pairs passing every cut survive", func() {
				So(err, ShouldBeNil)
				So(out[0], ShouldHaveLength, 1)
				So(out[0][0].Leg2.RawIdx, ShouldEqual, 1)
			})

			Convey("Then every cut is evaluated for every pair", func() {
				first, ok := steps.Mask("leg1_pt")
				So(ok, ShouldBeTrue)
				So(first[0], ShouldResemble, []bool{true, true, false})

				second, ok := steps.Mask("leg2_pt")
				So(ok, ShouldBeTrue)
				So(second[0], ShouldResemble, []bool{true, false, false})
			})

			Convey("Then the trail is cumulative along the cut order", func() {
				So(steps.PassCount("leg1_pt"), ShouldEqual, 2)
				So(steps.PassCount("leg2_pt"), ShouldEqual, 1)
			})
		})
	})

	Convey("Given the canonical cut constructors", t, func() {
		valid := pairing.ValidLegs()
		dr := pairing.MinDeltaR(0.5)
		mass := pairing.MinPairMass(20)
		pt := pairing.MinLegPt(40, 40)

		close := model.Pair{
			Leg1: model.Candidate{RawIdx: 0, Pt: 50, Eta: 0.0, Phi: 0.0, Mass: 1.777},
			Leg2: model.Candidate{RawIdx: 1, Pt: 50, Eta: 0.1, Phi: 0.1, Mass: 1.777},
		}
		open := model.Pair{
			Leg1: model.Candidate{RawIdx: 0, Pt: 50, Eta: -1.0, Phi: 0.0, Mass: 1.777},
			Leg2: model.Candidate{RawIdx: 1, Pt: 50, Eta: 1.0, Phi: 2.5, Mass: 1.777},
		}

		Convey("Then validity tracks the raw indices", func() {
			So(valid.Pass(open), ShouldBeTrue)
			So(valid.Pass(model.EmptyPair()), ShouldBeFalse)
		})

		Convey("Then the separation cut rejects collinear pairs", func() {
			So(dr.Pass(close), ShouldBeFalse)
			So(dr.Pass(open), ShouldBeTrue)
		})

		Convey("Then the mass cut rejects soft pairs", func() {
			So(mass.Pass(close), ShouldBeFalse)
			So(mass.Pass(open), ShouldBeTrue)
		})

		Convey("Then the pt cut binds both legs", func() {
			So(pt.Pass(open), ShouldBeTrue)
			soft := open
			soft.Leg2.Pt = 35
			So(pt.Pass(soft), ShouldBeFalse)
		})
	})
}
