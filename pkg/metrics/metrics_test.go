package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then collectors are registered under the default namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.comparisonsCreated.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["blindcmp_comparisons_created_total"], ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("cmp"),
				WithHistogramBuckets([]float64{1, 2, 3}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options are applied", func() {
				So(manager.namespace, ShouldEqual, "test")
				So(manager.subsystem, ShouldEqual, "cmp")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 2, 3})
			})
		})

		Convey("When empty option values are given", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(registry))

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "blindcmp")
				So(manager.subsystem, ShouldEqual, "comparisons")
				So(len(manager.histogramBuckets), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording lifecycle metrics", func() {
			before := testutil.ToFloat64(globalManager.comparisonsCreated)
			RecordComparisonCreated()
			RecordComparisonCreated()

			Convey("Then the counter advances", func() {
				So(testutil.ToFloat64(globalManager.comparisonsCreated)-before, ShouldEqual, 2)
			})
		})

		Convey("When recording rejections by reason", func() {
			before := testutil.ToFloat64(globalManager.submitRejected.WithLabelValues("already_compared"))
			RecordSubmitRejected("already_compared")

			Convey("Then only that label advances", func() {
				So(testutil.ToFloat64(globalManager.submitRejected.WithLabelValues("already_compared"))-before, ShouldEqual, 1)
			})
		})

		Convey("When recording the rest", func() {
			So(func() {
				RecordComparisonFinalized()
				RecordResultRetrieved()
				RecordResultNotReady()
				RecordStoreLatency("memory", "load", 0.2)
				RecordStoreError("bolt", "save")
				RecordCASConflict("redis")
				UpdateStoreRecords(10)
				RecordCacheHit()
				RecordCacheMiss()
				RecordHTTPRequest("store", "POST", "200")
				RecordHTTPRequestDuration("store", "POST", "200", 1.5)
				RecordErrorByType("not_found", "medium")
				RecordErrorByEndpoint("result", "POST", "not_found")
				RecordErrorLatency("http", "not_found", 0.5)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(12)
				RecordSystemGCPauseTime(0.3)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(GetRegistry(), ShouldNotBeNil)
			So(GetRegistry(), ShouldEqual, customRegistry)
		})
	})
}
