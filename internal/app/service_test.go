package app_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vendorboard/internal/adapters/repository"
	"github.com/okian/vendorboard/internal/app"
	"github.com/okian/vendorboard/pkg/logger"
)

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestService(t *testing.T) {
	if err := logger.Init(); err != nil {
		t.Fatalf("logger init: %v", err)
	}

	Convey("Given a service running on the mock dataset", t, func() {
		ctx := context.Background()
		svc := app.New(
			app.WithSymbols([]string{"TEL", "ST"}),
			app.WithCachePath(filepath.Join(t.TempDir(), "cache.db")),
			app.WithWorkerCount(2),
			app.WithQueueSize(16),
			app.WithRefreshInterval(time.Hour),
		)

		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		filled := waitFor(func() bool {
			for _, symbol := range []string{"TEL", "ST"} {
				income, err := svc.Income(ctx, symbol)
				if err != nil || len(income.AnnualReports) == 0 {
					return false
				}
				bars, err := svc.Quotes(ctx, symbol)
				if err != nil || len(bars) == 0 {
					return false
				}
			}
			return len(svc.Overviews(ctx)) == 2
		})
		So(filled, ShouldBeTrue)

		Convey("When building the overview table", func() {
			tbl := svc.OverviewTable(ctx)

			Convey("Then every symbol should have a formatted row", func() {
				So(len(tbl.Rows), ShouldEqual, 2)
				for _, row := range tbl.Rows {
					marketCap, ok := row["MarketCapitalization"].(string)
					So(ok, ShouldBeTrue)
					So(strings.HasPrefix(marketCap, "$"), ShouldBeTrue)

					margin, ok := row["ProfitMargin"].(string)
					So(ok, ShouldBeTrue)
					So(strings.HasSuffix(margin, "%"), ShouldBeTrue)
				}
			})
		})

		Convey("When building the vendor table", func() {
			tbl := svc.VendorTable(ctx)

			Convey("Then each symbol should carry its latest bar", func() {
				So(len(tbl.Rows), ShouldEqual, 2)
				So(tbl.Rows[0]["Symbol"], ShouldEqual, "ST")
				So(tbl.Rows[0]["close"], ShouldNotEqual, "N/A")
				So(tbl.Rows[1]["Symbol"], ShouldEqual, "TEL")
			})
		})

		Convey("When asking for an untracked symbol", func() {
			_, err := svc.Income(ctx, "NOPE")

			Convey("Then the lookup should miss", func() {
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When requesting a manual refresh", func() {
			So(svc.Refresh(ctx), ShouldBeTrue)
		})

		Convey("When reading stats", func() {
			stats := svc.GetStats()

			Convey("Then the pipeline state should be visible", func() {
				So(stats["started"], ShouldBeTrue)
				So(stats["symbols"], ShouldEqual, 2)
				So(stats["mockData"], ShouldBeTrue)
				So(stats["snapshotCount"], ShouldEqual, 2)
			})
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := app.New()

		Convey("Then refresh should report not running", func() {
			So(svc.Refresh(context.Background()), ShouldBeFalse)
		})

		Convey("And stop should be harmless", func() {
			svc.Stop()
		})
	})
}
