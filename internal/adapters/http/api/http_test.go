package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vendorboard/internal/adapters/http/api"
	"github.com/okian/vendorboard/internal/adapters/repository"
	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/internal/domain/table"
)

type stubDeps struct {
	running bool
}

func (s *stubDeps) Overviews(_ context.Context) []model.CompanyOverview {
	return []model.CompanyOverview{{Symbol: "TEL", Name: "TE Connectivity"}}
}

func (s *stubDeps) Income(_ context.Context, symbol string) (model.IncomeStatement, error) {
	if symbol != "TEL" {
		return model.IncomeStatement{}, repository.ErrNotFound
	}
	return model.IncomeStatement{
		Symbol:        "TEL",
		AnnualReports: []model.IncomeReport{{FiscalDateEnding: "2024-12-31", TotalRevenue: "16000000000"}},
	}, nil
}

func (s *stubDeps) Quotes(_ context.Context, symbol string) ([]model.Bar, error) {
	if symbol != "TEL" {
		return nil, repository.ErrNotFound
	}
	return []model.Bar{{Open: "150.00", Close: "151.25", Volume: "1200"}}, nil
}

func (s *stubDeps) OverviewTable(ctx context.Context) table.Table {
	return table.BuildOverview(s.Overviews(ctx))
}

func (s *stubDeps) VendorTable(_ context.Context) table.Table {
	return table.BuildVendor(map[string][]model.Bar{
		"TEL": {{Open: "150.00", Close: "151.25", Volume: "1200"}},
	})
}

func (s *stubDeps) Refresh(_ context.Context) bool {
	return s.running
}

func (s *stubDeps) GetStats() map[string]any {
	return map[string]any{"started": s.running, "symbols": 1}
}

func newTestServer(deps *stubDeps) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(deps, deps).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer res.Body.Close()
	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, string(body)
}

func TestAPIServer(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &stubDeps{running: true}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When listing overviews", func() {
			status, body := get(t, srv.URL+"/api/overview")

			Convey("Then the raw overview set should come back", func() {
				So(status, ShouldEqual, http.StatusOK)
				var got []model.CompanyOverview
				So(json.Unmarshal([]byte(body), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Symbol, ShouldEqual, "TEL")
			})
		})

		Convey("When fetching income with a lowercase symbol", func() {
			status, body := get(t, srv.URL+"/api/income?symbol=tel")

			Convey("Then the symbol should normalize and match", func() {
				So(status, ShouldEqual, http.StatusOK)
				var got model.IncomeStatement
				So(json.Unmarshal([]byte(body), &got), ShouldBeNil)
				So(got.Symbol, ShouldEqual, "TEL")
				So(got.AnnualReports, ShouldHaveLength, 1)
			})
		})

		Convey("When the symbol parameter is missing", func() {
			status, body := get(t, srv.URL+"/api/income")

			Convey("Then the request should be rejected", func() {
				So(status, ShouldEqual, http.StatusBadRequest)
				So(body, ShouldContainSubstring, "missing symbol")
			})
		})

		Convey("When the symbol is unknown", func() {
			status, _ := get(t, srv.URL+"/api/quotes?symbol=NOPE")

			Convey("Then the lookup should 404", func() {
				So(status, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When fetching quotes", func() {
			status, body := get(t, srv.URL+"/api/quotes?symbol=TEL")

			Convey("Then the bars should come back", func() {
				So(status, ShouldEqual, http.StatusOK)
				var got []model.Bar
				So(json.Unmarshal([]byte(body), &got), ShouldBeNil)
				So(got, ShouldHaveLength, 1)
				So(got[0].Close, ShouldEqual, "151.25")
			})
		})

		Convey("When fetching the overview table", func() {
			status, body := get(t, srv.URL+"/api/table/overview")

			Convey("Then columns and rows should be present", func() {
				So(status, ShouldEqual, http.StatusOK)
				var got table.Table
				So(json.Unmarshal([]byte(body), &got), ShouldBeNil)
				So(len(got.Columns), ShouldBeGreaterThan, 0)
				So(got.Rows, ShouldHaveLength, 1)
				So(got.Rows[0]["Symbol"], ShouldEqual, "TEL")
			})
		})

		Convey("When fetching the vendor table", func() {
			status, body := get(t, srv.URL+"/api/table/vendors")

			Convey("Then the latest bar row should be present", func() {
				So(status, ShouldEqual, http.StatusOK)
				var got table.Table
				So(json.Unmarshal([]byte(body), &got), ShouldBeNil)
				So(got.Rows, ShouldHaveLength, 1)
				So(got.Rows[0]["close"], ShouldEqual, "151.25")
			})
		})

		Convey("When posting a manual refresh", func() {
			res, err := http.Post(srv.URL+"/api/refresh", "application/json", strings.NewReader(""))
			So(err, ShouldBeNil)
			defer res.Body.Close()

			Convey("Then the sweep should be accepted", func() {
				So(res.StatusCode, ShouldEqual, http.StatusAccepted)
			})

			Convey("And a GET on the same route should 404", func() {
				status, _ := get(t, srv.URL+"/api/refresh")
				So(status, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When reading stats", func() {
			status, body := get(t, srv.URL+"/stats")

			Convey("Then the service stats should serialize", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, `"started":true`)
			})
		})

		Convey("When scraping metrics", func() {
			status, body := get(t, srv.URL+"/healthz")

			Convey("Then the Prometheus registry should serve", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "vendorboard_dashboard")
			})
		})

		Convey("When loading the dashboard page", func() {
			status, body := get(t, srv.URL+"/dashboard")

			Convey("Then the embedded page should serve", func() {
				So(status, ShouldEqual, http.StatusOK)
				So(body, ShouldContainSubstring, "Vendor Dashboard")
			})
		})
	})

	Convey("Given a server whose refresh pipeline is stopped", t, func() {
		deps := &stubDeps{running: false}
		srv := newTestServer(deps)
		defer srv.Close()

		Convey("When posting a manual refresh", func() {
			res, err := http.Post(srv.URL+"/api/refresh", "application/json", strings.NewReader(""))
			So(err, ShouldBeNil)
			defer res.Body.Close()

			Convey("Then the request should be refused", func() {
				So(res.StatusCode, ShouldEqual, http.StatusServiceUnavailable)
			})
		})
	})
}
