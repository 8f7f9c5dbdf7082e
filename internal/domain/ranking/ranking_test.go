package ranking_test

import (
	"math/rand"
	"testing"

	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

const taggerEpsilon = 1e-5

func dualPair(idx int, tagger1, tagger2, pt1, pt2 float64) model.Pair {
	return model.Pair{
		Leg1: model.Candidate{RawIdx: idx * 2, RawTagger: tagger1, Pt: pt1},
		Leg2: model.Candidate{RawIdx: idx*2 + 1, RawTagger: tagger2, Pt: pt2},
	}
}

func lepPair(idx int, iso, pt1, tagger, pt2 float64) model.Pair {
	return model.Pair{
		Leg1: model.Candidate{RawIdx: idx * 2, Iso: iso, Pt: pt1},
		Leg2: model.Candidate{RawIdx: idx*2 + 1, RawTagger: tagger, Pt: pt2},
	}
}

func TestDualTauCascade(t *testing.T) {
	criteria := ranking.DualTauCriteria(taggerEpsilon)

	Convey("Given two pairs tied on both tagger scores", t, func() {
		pairs := []model.Pair{
			dualPair(0, 0.9, 0.5, 60, 50),
			dualPair(1, 0.9, 0.5, 55, 80),
		}

		Convey("When ranking them", func() {
			best, ok := ranking.SelectOne(pairs, criteria)

			Convey("Then the leg1 pt breaks the tie", func() {
				So(ok, ShouldBeTrue)
				So(best.Leg1.Pt, ShouldEqual, 60)
				So(best.Leg2.Pt, ShouldEqual, 50)
			})
		})
	})

	Convey("Given two pairs differing on the first tagger score", t, func() {
		pairs := []model.Pair{
			dualPair(0, 0.7, 0.9, 100, 100),
			dualPair(1, 0.8, 0.1, 10, 10),
		}

		Convey("When ranking them", func() {
			best, _ := ranking.SelectOne(pairs, criteria)

			Convey("Then later criteria are never consulted", func() {
				So(best.Leg1.RawTagger, ShouldEqual, 0.8)
			})
		})
	})

	Convey("Given tagger scores equal within tolerance only", t, func() {
		pairs := []model.Pair{
			dualPair(0, 0.900000, 0.5, 50, 50),
			dualPair(1, 0.900001, 0.5, 70, 50),
		}

		Convey("When ranking them", func() {
			best, _ := ranking.SelectOne(pairs, criteria)

			Convey("Then the near-tie falls through to the pt criterion", func() {
				So(best.Leg1.Pt, ShouldEqual, 70)
			})
		})
	})

	Convey("Given several pairs with a unique winner", t, func() {
		pairs := []model.Pair{
			dualPair(0, 0.9, 0.5, 60, 50),
			dualPair(1, 0.9, 0.5, 55, 80),
			dualPair(2, 0.9, 0.4, 90, 90),
			dualPair(3, 0.2, 0.9, 95, 95),
		}
		best, _ := ranking.SelectOne(pairs, criteria)

		Convey("When re-ordering the input arbitrarily", func() {
			rng := rand.New(rand.NewSource(7))
			for trial := 0; trial < 20; trial++ {
				shuffled := make([]model.Pair, len(pairs))
				copy(shuffled, pairs)
				rng.Shuffle(len(shuffled), func(a, b int) {
					shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
				})
				got, ok := ranking.SelectOne(shuffled, criteria)

				So(ok, ShouldBeTrue)
				So(got, ShouldResemble, best)
			}
		})
	})
}

func TestLepTauCascade(t *testing.T) {
	criteria := ranking.LepTauCriteria(taggerEpsilon)

	Convey("Given two pairs tied on lepton isolation", t, func() {
		pairs := []model.Pair{
			lepPair(0, 0.05, 40, 0.9, 30),
			lepPair(1, 0.05, 45, 0.1, 30),
		}

		Convey("When ranking them", func() {
			best, ok := ranking.SelectOne(pairs, criteria)

			Convey("Then the lepton pt breaks the tie", func() {
				So(ok, ShouldBeTrue)
				So(best.Leg1.Pt, ShouldEqual, 45)
			})
		})
	})

	Convey("Given pairs differing on lepton isolation", t, func() {
		pairs := []model.Pair{
			lepPair(0, 0.20, 100, 0.9, 100),
			lepPair(1, 0.01, 20, 0.1, 20),
		}

		Convey("When ranking them", func() {
			best, _ := ranking.SelectOne(pairs, criteria)

			Convey("Then the most isolated lepton wins outright", func() {
				So(best.Leg1.Iso, ShouldEqual, 0.01)
			})
		})
	})
}

func TestSelectOne(t *testing.T) {
	criteria := ranking.DualTauCriteria(taggerEpsilon)

	Convey("Given an empty pair list", t, func() {
		_, ok := ranking.SelectOne(nil, criteria)

		Convey("Then nothing is selected", func() {
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given a single surviving pair", t, func() {
		sole := dualPair(0, 0.3, 0.3, 10, 5)
		best, ok := ranking.SelectOne([]model.Pair{sole}, criteria)

		Convey("Then the ranker is a no-op", func() {
			So(ok, ShouldBeTrue)
			So(best, ShouldResemble, sole)
		})

		Convey("Then the short-circuit matches the full cascade", func() {
			ranked := ranking.Cascade([]model.Pair{sole}, criteria)
			So(ranked[0], ShouldResemble, best)
		})
	})

	Convey("Given a pair list", t, func() {
		pairs := []model.Pair{
			dualPair(0, 0.2, 0.2, 10, 10),
			dualPair(1, 0.9, 0.9, 90, 90),
		}
		original := make([]model.Pair, len(pairs))
		copy(original, pairs)

		Convey("When ranking it", func() {
			_, _ = ranking.SelectOne(pairs, criteria)

			Convey("Then the input order is untouched", func() {
				So(pairs, ShouldResemble, original)
			})
		})
	})
}
