package probe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vendorboard/internal/probe"
	"github.com/okian/vendorboard/pkg/logger"
)

func healthyHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# HELP vendorboard_dashboard_http_requests_total\n"))
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"started":true,"symbols":2}`))
	})
	mux.HandleFunc("/api/table/overview", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"columns":[
				{"id":"Symbol","name":"Symbol"},
				{"id":"MarketCapitalization","name":"Market Cap","hook":"usd"},
				{"id":"ProfitMargin","name":"Profit Margin","hook":"pct"}
			],
			"rows":[
				{"Symbol":"TEL","MarketCapitalization":"$45,000,000,000","ProfitMargin":"15.3%"},
				{"Symbol":"ST","MarketCapitalization":"N/A","ProfitMargin":"N/A"}
			]}`))
	})
	mux.HandleFunc("/api/table/vendors", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"columns":[{"id":"Symbol","name":"Symbol"},{"id":"close","name":"Close"}],
			"rows":[{"Symbol":"TEL","close":"151.25"}]}`))
	})
	mux.HandleFunc("/api/quotes", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"ts":"2026-08-25T10:00:00Z","close":"151.25"}]`))
	})
	mux.HandleFunc("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"status":"queued"}`))
	})
	return mux
}

func TestProbeRun(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}

	Convey("Given a healthy service", t, func() {
		srv := httptest.NewServer(healthyHandler())
		defer srv.Close()

		Convey("When running the probe", func() {
			err := probe.Run(context.Background(), &probe.Config{
				BaseURL: srv.URL,
				Timeout: 2 * time.Second,
			})

			Convey("Then every check should pass", func() {
				So(err, ShouldBeNil)
			})
		})
	})

	Convey("Given a service with a badly formatted grid", t, func() {
		mux := http.NewServeMux()
		mux.Handle("/", healthyHandler())
		mux.HandleFunc("/api/table/overview", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{
				"columns":[{"id":"MarketCapitalization","name":"Market Cap","hook":"usd"}],
				"rows":[{"MarketCapitalization":"45000000000"}]}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		Convey("When running the probe", func() {
			err := probe.Run(context.Background(), &probe.Config{
				BaseURL: srv.URL,
				Timeout: 2 * time.Second,
			})

			Convey("Then the formatting check should fail the run", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})

	Convey("Given no service at all", t, func() {
		Convey("When running the probe", func() {
			err := probe.Run(context.Background(), &probe.Config{
				BaseURL: "http://127.0.0.1:1",
				Timeout: 500 * time.Millisecond,
			})

			Convey("Then the run should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}
