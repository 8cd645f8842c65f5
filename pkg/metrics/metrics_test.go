package metrics

import (
	"testing"

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

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
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
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording provider metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordProviderRequest("OVERVIEW")
					RecordProviderError("OVERVIEW", "rate_limited")
					RecordProviderLatency(12.5)
					RecordProviderRateLimited()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording cache metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordCacheHit()
					RecordCacheMiss()
					RecordCacheStaleServed()
					RecordCacheError()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording refresh metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					UpdateQueueSize(3)
					UpdateQueueCapacity(100)
					RecordQueueEnqueue()
					RecordQueueDequeue()
					RecordQueueFullDrop()
					UpdateWorkerCount(4)
					RecordRefreshJob()
					RecordRefreshError()
					RecordRefreshDuration(42.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording snapshot metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					UpdateSnapshotSymbols(5)
					RecordSnapshotUpdate()
					UpdateSnapshotAge("TEL", 30.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP and error metrics", func() {
			Convey("Then it should not panic", func() {
				So(func() {
					RecordHTTPRequest("overview", "GET", "200")
					RecordHTTPRequestDuration("overview", "GET", "200", 1.5)
					RecordErrorByComponent("provider", "timeout")
					RecordErrorByType("server_error", "high")
					RecordErrorByEndpoint("overview", "GET", "server_error")
					RecordErrorLatency("http", "server_error", 5.0)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When fetching the registry", func() {
			registry := GetRegistry()

			Convey("Then it should be gatherable", func() {
				So(registry, ShouldNotBeNil)
				_, err := registry.Gather()
				So(err, ShouldBeNil)
			})
		})
	})
}
