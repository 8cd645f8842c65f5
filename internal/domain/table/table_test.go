package table_test

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/vendorboard/internal/domain/model"
	"github.com/okian/vendorboard/internal/domain/table"
)

func TestBuildOverview(t *testing.T) {
	Convey("Given company overviews", t, func() {
		overviews := []model.CompanyOverview{
			{
				Symbol:               "TEL",
				Name:                 "TE Connectivity Ltd.",
				Exchange:             "NYSE",
				Sector:               "Industrials",
				MarketCapitalization: "42000000000",
				RevenueTTM:           "23500000000",
				ProfitMargin:         "0.120",
				OperatingMarginTTM:   "0.160",
				EBITDA:               "None",
				AnalystTargetPrice:   "170.00",
				AnalystRatingBuy:     "9",
			},
		}

		Convey("When building the overview table", func() {
			tbl := table.BuildOverview(overviews)

			Convey("Then it should have one row with formatted cells", func() {
				So(tbl.Columns, ShouldResemble, table.OverviewColumns)
				So(tbl.Rows, ShouldHaveLength, 1)

				row := tbl.Rows[0]
				So(row["Symbol"], ShouldEqual, "TEL")
				So(row["MarketCapitalization"], ShouldEqual, "$42,000,000,000")
				So(row["RevenueTTM"], ShouldEqual, "$23,500,000,000")
				So(row["ProfitMargin"], ShouldEqual, "12%")
				So(row["OperatingMarginTTM"], ShouldEqual, "16%")
				So(row["AnalystTargetPrice"], ShouldEqual, "$170")
			})

			Convey("Then missing values should render as N/A", func() {
				row := tbl.Rows[0]
				So(row["EBITDA"], ShouldEqual, "N/A")
				So(row["Country"], ShouldEqual, "N/A")
				So(row["AnalystRatingHold"], ShouldEqual, "N/A")
			})

			Convey("Then unformatted columns should pass through", func() {
				So(tbl.Rows[0]["AnalystRatingBuy"], ShouldEqual, "9")
			})
		})
	})
}

func TestBuildVendor(t *testing.T) {
	Convey("Given intraday series per symbol", t, func() {
		now := time.Date(2025, 8, 25, 19, 55, 0, 0, time.UTC)
		series := map[string][]model.Bar{
			"TEL": {
				{TS: now, Open: "162.10", High: "162.40", Low: "161.90", Close: "162.30", Volume: "10250"},
				{TS: now.Add(-5 * time.Minute), Open: "161.80", High: "162.15", Low: "161.70", Close: "162.10", Volume: "8930"},
			},
			"DD": {},
		}

		Convey("When building the vendor table", func() {
			tbl := table.BuildVendor(series)

			Convey("Then rows should be sorted by symbol", func() {
				So(tbl.Rows, ShouldHaveLength, 2)
				So(tbl.Rows[0]["Symbol"], ShouldEqual, "DD")
				So(tbl.Rows[1]["Symbol"], ShouldEqual, "TEL")
			})

			Convey("Then the latest bar should back each row", func() {
				So(tbl.Rows[1]["close"], ShouldEqual, "162.30")
				So(tbl.Rows[1]["volume"], ShouldEqual, "10250")
			})

			Convey("Then symbols without bars should render as N/A", func() {
				So(tbl.Rows[0]["close"], ShouldEqual, "N/A")
			})
		})
	})
}
