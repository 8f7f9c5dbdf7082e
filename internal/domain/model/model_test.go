package model_test

import (
	"math"
	"testing"

	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestKinematics(t *testing.T) {
	Convey("Given azimuthal angles on either side of the wrap boundary", t, func() {
		Convey("Then DeltaPhi wraps into [-pi, pi]", func() {
			So(model.DeltaPhi(3.0, -3.0), ShouldAlmostEqual, 6.0-2*math.Pi, 1e-12)
			So(model.DeltaPhi(-3.0, 3.0), ShouldAlmostEqual, 2*math.Pi-6.0, 1e-12)
			So(model.DeltaPhi(0.5, 0.2), ShouldAlmostEqual, 0.3, 1e-12)
		})
	})

	Convey("Given two candidates separated in eta and phi", t, func() {
		a := model.Candidate{Eta: 0.0, Phi: 0.0}
		b := model.Candidate{Eta: 0.3, Phi: 0.4}

		Convey("Then DeltaR combines both separations", func() {
			So(model.DeltaR(a, b), ShouldAlmostEqual, 0.5, 1e-9)
		})
	})

	Convey("Given two massless back-to-back candidates", t, func() {
		a := model.Candidate{Pt: 50, Eta: 0, Phi: 0}
		b := model.Candidate{Pt: 50, Eta: 0, Phi: math.Pi}

		Convey("Then the invariant mass is 2*pt", func() {
			So(model.InvariantMass(a, b), ShouldAlmostEqual, 100.0, 1e-6)
		})
	})

	Convey("Given a candidate and a MET object", t, func() {
		c := model.Candidate{Pt: 40, Phi: 0}

		Convey("When the MET is back to back", func() {
			mt := model.TransverseMass(c, model.MET{Pt: 40, Phi: math.Pi})

			Convey("Then the transverse mass is 2*pt", func() {
				So(mt, ShouldAlmostEqual, 80.0, 1e-9)
			})
		})

		Convey("When the MET is aligned", func() {
			mt := model.TransverseMass(c, model.MET{Pt: 40, Phi: 0})

			Convey("Then the transverse mass vanishes", func() {
				So(mt, ShouldAlmostEqual, 0.0, 1e-9)
			})
		})
	})
}

func TestStepMasks(t *testing.T) {
	Convey("Given an empty audit trail", t, func() {
		steps := model.NewStepMasks()

		Convey("When recording three steps over two events", func() {
			So(steps.Add("first", [][]bool{{true, true, false}, {true}}), ShouldBeNil)
			So(steps.Add("second", [][]bool{{true, false, true}, {true}}), ShouldBeNil)
			So(steps.Add("third", [][]bool{{false, true, true}, {true}}), ShouldBeNil)

			Convey("Then names come back in recording order", func() {
				So(steps.Names(), ShouldResemble, []string{"first", "second", "third"})
			})

			Convey("Then each mask is the AND of its predecessors", func() {
				second, ok := steps.Mask("second")
				So(ok, ShouldBeTrue)
				So(second, ShouldResemble, [][]bool{{true, false, false}, {true}})
				So(steps.Final(), ShouldResemble, [][]bool{{false, false, false}, {true}})
			})

			Convey("Then truth is monotonically non-increasing along the order", func() {
				names := steps.Names()
				for i := 1; i < len(names); i++ {
					prev, _ := steps.Mask(names[i-1])
					cur, _ := steps.Mask(names[i])
					for ev := range cur {
						for j := range cur[ev] {
							if cur[ev][j] {
								So(prev[ev][j], ShouldBeTrue)
							}
						}
					}
				}
			})

			Convey("Then pass counts follow the cumulative masks", func() {
				So(steps.PassCount("first"), ShouldEqual, 3)
				So(steps.PassCount("second"), ShouldEqual, 2)
				So(steps.PassCount("third"), ShouldEqual, 1)
			})
		})

		Convey("When recording the same step name twice", func() {
			So(steps.Add("only", [][]bool{{true}}), ShouldBeNil)
			err := steps.Add("only", [][]bool{{true}})

			Convey("Then the second recording fails", func() {
				So(err, ShouldWrap, model.ErrDuplicateStep)
			})
		})
	})

	Convey("Given two trails with identical step names", t, func() {
		a := model.NewStepMasks()
		So(a.Add("cut", [][]bool{{true, false}}), ShouldBeNil)
		b := model.NewStepMasks()
		So(b.Add("cut", [][]bool{{true}}), ShouldBeNil)

		Convey("When appending them", func() {
			So(a.Append(b), ShouldBeNil)

			Convey("Then events concatenate in order", func() {
				mask, _ := a.Mask("cut")
				So(mask, ShouldResemble, [][]bool{{true, false}, {true}})
			})
		})
	})

	Convey("Given two trails with different step names", t, func() {
		a := model.NewStepMasks()
		So(a.Add("one", [][]bool{{true}}), ShouldBeNil)
		b := model.NewStepMasks()
		So(b.Add("other", [][]bool{{true}}), ShouldBeNil)

		Convey("Then appending fails", func() {
			So(a.Append(b), ShouldWrap, model.ErrStepMismatch)
		})
	})
}

func TestFlags(t *testing.T) {
	Convey("Given a flag set over three events", t, func() {
		flags := model.NewFlags(3)

		Convey("When setting a flag with matching length", func() {
			So(flags.Set("os", []bool{true, false, true}), ShouldBeNil)

			Convey("Then reads return the recorded values", func() {
				So(flags.Get("os"), ShouldResemble, []bool{true, false, true})
				So(flags.TrueCount("os"), ShouldEqual, 2)
			})
		})

		Convey("When setting a flag with the wrong length", func() {
			err := flags.Set("os", []bool{true})

			Convey("Then the set fails", func() {
				So(err, ShouldWrap, model.ErrFlagLength)
			})
		})

		Convey("When reading a flag that was never set", func() {
			values := flags.Get("never_set")

			Convey("Then every event defaults to false", func() {
				So(values, ShouldResemble, []bool{false, false, false})
			})
		})
	})
}

func TestPair(t *testing.T) {
	Convey("Given the empty pair sentinel", t, func() {
		p := model.EmptyPair()

		Convey("Then it is invalid", func() {
			So(p.Valid(), ShouldBeFalse)
		})
	})

	Convey("Given a pair with leg2 harder than leg1", t, func() {
		p := model.Pair{
			Leg1: model.Candidate{Pt: 50, RawIdx: 0},
			Leg2: model.Candidate{Pt: 80, RawIdx: 1},
		}

		Convey("When sorting legs by pt", func() {
			sorted := p.SortLegsByPt()

			Convey("Then the legs swap", func() {
				So(sorted.Leg1.Pt, ShouldEqual, 80)
				So(sorted.Leg2.Pt, ShouldEqual, 50)
			})
		})
	})

	Convey("Given opposite leg charges", t, func() {
		p := model.Pair{
			Leg1: model.Candidate{Charge: 1, RawIdx: 0},
			Leg2: model.Candidate{Charge: -1, RawIdx: 1},
		}

		Convey("Then the charge product is negative", func() {
			So(p.ChargeProduct(), ShouldBeLessThan, 0)
		})
	})
}

func TestConcatSelections(t *testing.T) {
	Convey("Given two sub-batch selections", t, func() {
		a := &model.Selection{
			Pairs: []model.Pair{model.EmptyPair()},
			Steps: model.NewStepMasks(),
			Flags: model.NewFlags(1),
		}
		So(a.Steps.Add("cut", [][]bool{{false}}), ShouldBeNil)
		So(a.Flags.Set("os", []bool{false}), ShouldBeNil)

		b := &model.Selection{
			Pairs: []model.Pair{{
				Leg1: model.Candidate{RawIdx: 0},
				Leg2: model.Candidate{RawIdx: 1},
			}},
			Steps: model.NewStepMasks(),
			Flags: model.NewFlags(1),
		}
		So(b.Steps.Add("cut", [][]bool{{true}}), ShouldBeNil)
		So(b.Flags.Set("os", []bool{true}), ShouldBeNil)

		Convey("When concatenating them", func() {
			out, err := model.ConcatSelections(a, b)

			Convey("Then events stitch back together in order", func() {
				So(err, ShouldBeNil)
				So(out.Events(), ShouldEqual, 2)
				So(out.SelectedCount(), ShouldEqual, 1)
				So(out.Flags.Get("os"), ShouldResemble, []bool{false, true})
				mask, _ := out.Steps.Mask("cut")
				So(mask, ShouldResemble, [][]bool{{false}, {true}})
			})
		})
	})
}
