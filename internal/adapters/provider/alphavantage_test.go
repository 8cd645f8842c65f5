package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vendorboard/internal/adapters/cache"
	"github.com/okian/vendorboard/internal/adapters/provider"
	"github.com/okian/vendorboard/pkg/logger"
)

func newTestClient(t *testing.T, baseURL, apiKey string, store *cache.Cache) *provider.Client {
	t.Helper()
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}
	return provider.New(baseURL, apiKey,
		provider.WithCache(store),
		provider.WithMaxRetries(3),
		provider.WithBackoffBase(time.Millisecond),
		provider.WithRatePerMinute(10000),
	)
}

func openTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	store, err := cache.Open(context.Background(), filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestClientOverview(t *testing.T) {
	Convey("Given an upstream serving overview data", t, func() {
		ctx := context.Background()
		calls := 0
		var gotQuery map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			gotQuery = map[string]string{
				"function": r.URL.Query().Get("function"),
				"symbol":   r.URL.Query().Get("symbol"),
				"apikey":   r.URL.Query().Get("apikey"),
			}
			_, _ = w.Write([]byte(`{"Symbol":"TEL","Name":"TE Connectivity Ltd.","MarketCapitalization":"42000000000"}`))
		}))
		defer srv.Close()

		store := openTestCache(t)
		client := newTestClient(t, srv.URL, "k", store)

		Convey("When fetching an overview", func() {
			o, err := client.Overview(ctx, "tel")

			Convey("Then it should parse the payload", func() {
				So(err, ShouldBeNil)
				So(o.Symbol, ShouldEqual, "TEL")
				So(o.MarketCapitalization, ShouldEqual, "42000000000")
				So(calls, ShouldEqual, 1)
				So(gotQuery["function"], ShouldEqual, provider.FuncOverview)
				So(gotQuery["symbol"], ShouldEqual, "TEL")
				So(gotQuery["apikey"], ShouldEqual, "k")
			})

			Convey("And a second fetch should hit the cache", func() {
				_, err := client.Overview(ctx, "TEL")
				So(err, ShouldBeNil)
				So(calls, ShouldEqual, 1)
			})
		})
	})
}

func TestClientRetry(t *testing.T) {
	Convey("Given an upstream that fails twice before succeeding", t, func() {
		ctx := context.Background()
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"Symbol":"ST"}`))
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, "k", nil)

		Convey("When fetching", func() {
			o, err := client.Overview(ctx, "ST")

			Convey("Then it should retry and succeed", func() {
				So(err, ShouldBeNil)
				So(o.Symbol, ShouldEqual, "ST")
				So(calls, ShouldEqual, 3)
			})
		})
	})

	Convey("Given an upstream that always fails", t, func() {
		ctx := context.Background()
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, "k", nil)

		Convey("When fetching", func() {
			_, err := client.Overview(ctx, "ST")

			Convey("Then it should exhaust retries and fail", func() {
				So(errors.Is(err, provider.ErrHTTP), ShouldBeTrue)
				So(calls, ShouldEqual, 3)
			})
		})
	})

	Convey("Given an upstream returning a client error", t, func() {
		ctx := context.Background()
		calls := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, "k", nil)

		Convey("When fetching", func() {
			_, err := client.Overview(ctx, "ST")

			Convey("Then it should not retry", func() {
				So(errors.Is(err, provider.ErrHTTP), ShouldBeTrue)
				So(calls, ShouldEqual, 1)
			})
		})
	})
}

func TestClientRateLimit(t *testing.T) {
	Convey("Given an upstream that rate limits after one success", t, func() {
		ctx := context.Background()
		limited := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limited {
				_, _ = w.Write([]byte(`{"Note": "API call frequency exceeded"}`))
				return
			}
			_, _ = w.Write([]byte(`{"Symbol":"DD","Name":"DuPont"}`))
		}))
		defer srv.Close()

		clock := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
		store, err := cache.Open(ctx, filepath.Join(t.TempDir(), "c.db"),
			cache.WithDefaultTTL(time.Hour),
			cache.WithClock(func() time.Time { return clock }),
		)
		So(err, ShouldBeNil)
		defer func() { _ = store.Close() }()

		client := newTestClient(t, srv.URL, "k", store)

		Convey("When the cached entry has gone stale and the upstream limits", func() {
			_, err := client.Overview(ctx, "DD")
			So(err, ShouldBeNil)

			limited = true
			clock = clock.Add(2 * time.Hour)

			o, err := client.Overview(ctx, "DD")

			Convey("Then the stale entry should be served", func() {
				So(err, ShouldBeNil)
				So(o.Name, ShouldEqual, "DuPont")
			})
		})
	})

	Convey("Given a rate-limited upstream with no cached fallback", t, func() {
		ctx := context.Background()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Information": "please subscribe"}`))
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, "k", nil)

		Convey("When fetching", func() {
			_, err := client.Overview(ctx, "DD")

			Convey("Then it should surface the rate limit", func() {
				So(errors.Is(err, provider.ErrRateLimited), ShouldBeTrue)
			})
		})
	})

	Convey("Given an upstream returning an error message payload", t, func() {
		ctx := context.Background()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"Error Message": "Invalid API call"}`))
		}))
		defer srv.Close()

		client := newTestClient(t, srv.URL, "k", nil)

		Convey("When fetching", func() {
			_, err := client.Overview(ctx, "NOPE")

			Convey("Then it should surface the API error", func() {
				So(errors.Is(err, provider.ErrAPIError), ShouldBeTrue)
			})
		})
	})
}

func TestClientMockFallback(t *testing.T) {
	Convey("Given a client with no API key", t, func() {
		ctx := context.Background()
		client := newTestClient(t, "http://unused", "", nil)

		Convey("When fetching an overview", func() {
			o, err := client.Overview(ctx, "TEL")

			Convey("Then the mock dataset should answer", func() {
				So(err, ShouldBeNil)
				So(o.Symbol, ShouldEqual, "TEL")
				So(o.Name, ShouldEqual, "TE Connectivity Ltd.")
				So(o.MarketCapitalization, ShouldEqual, "42000000000")
			})
		})

		Convey("When fetching an income statement", func() {
			stmt, err := client.IncomeStatement(ctx, "DD")

			Convey("Then derived annual reports should answer", func() {
				So(err, ShouldBeNil)
				So(stmt.Symbol, ShouldEqual, "DD")
				So(stmt.AnnualReports, ShouldHaveLength, 2)
				So(stmt.AnnualReports[0].ReportedCurrency, ShouldEqual, "USD")
			})
		})

		Convey("When fetching intraday bars", func() {
			bars, err := client.Intraday(ctx, "LYB")

			Convey("Then generated bars should answer, newest first", func() {
				So(err, ShouldBeNil)
				So(len(bars), ShouldBeGreaterThan, 0)
				for i := 1; i < len(bars); i++ {
					So(bars[i-1].TS.After(bars[i].TS), ShouldBeTrue)
				}
			})
		})

		Convey("When fetching an unknown symbol", func() {
			_, err := client.Overview(ctx, "NOPE")

			Convey("Then it should report an API error", func() {
				So(errors.Is(err, provider.ErrAPIError), ShouldBeTrue)
			})
		})
	})
}
