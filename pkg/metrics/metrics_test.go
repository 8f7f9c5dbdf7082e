package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording selection metrics", func() {
			Convey("Then recording never panics", func() {
				So(func() {
					RecordEventsProcessed(100)
					RecordEventsSelected(60)
					RecordEventsNoCandidates(40)
					RecordPairsBuilt(250)
					RecordPairsPreselected(80)
					RecordSelectionLatency(12.5)
					RecordCutflowStep("tautau", "valid_legs", 250)
					RecordRegionEvents("tautau", "os_iso_iso", 10)
					RecordBatch("tautau")
					RecordBatchDuplicate()
					RecordBatchError()
					UpdateWorkerCount(4)
					UpdateBatchSize(1000)
				}, ShouldNotPanic)
			})
		})

		Convey("When gathering the custom registry", func() {
			RecordEventsProcessed(1)
			families, err := GetRegistry().Gather()

			Convey("Then the selection metrics are registered", func() {
				So(err, ShouldBeNil)
				names := make(map[string]bool, len(families))
				for _, fam := range families {
					names[fam.GetName()] = true
				}
				So(names["httcp_hcand_events_processed_total"], ShouldBeTrue)
				So(names["httcp_hcand_selection_latency_milliseconds"], ShouldBeTrue)
				So(names["httcp_hcand_cutflow_pairs_total"], ShouldBeTrue)
				So(names["httcp_hcand_region_events_total"], ShouldBeTrue)
			})
		})
	})
}
