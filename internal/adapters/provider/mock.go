package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/okian/vendorboard/internal/domain/model"
)

// Canned vendor dataset served when no API key is configured. Values
// track the real tickers loosely; they only need to look plausible on
// the dashboard and exercise every formatted column.
var mockOverviews = map[string]model.CompanyOverview{
	"TEL": {
		Symbol: "TEL", Name: "TE Connectivity Ltd.", Exchange: "NYSE",
		Country: "USA", Sector: "Industrials", Industry: "Electronic Components",
		LatestQuarter: "2025-06-30", MarketCapitalization: "42000000000",
		RevenueTTM: "23500000000", RevenuePerShareTTM: "72.50",
		ProfitMargin: "0.120", OperatingMarginTTM: "0.160", EBITDA: "3800000000",
		DividendYield: "0.0170", AnalystTargetPrice: "170.00",
		AnalystRatingStrongBuy: "5", AnalystRatingBuy: "9", AnalystRatingHold: "10",
		AnalystRatingSell: "1", AnalystRatingStrongSell: "0",
	},
	"ST": {
		Symbol: "ST", Name: "Sensata Technologies Holding plc", Exchange: "NYSE",
		Country: "USA", Sector: "Industrials", Industry: "Electronic Components",
		LatestQuarter: "2025-06-30", MarketCapitalization: "6900000000",
		RevenueTTM: "5150000000", RevenuePerShareTTM: "32.40",
		ProfitMargin: "0.085", OperatingMarginTTM: "0.140", EBITDA: "980000000",
		DividendYield: "0.0130", AnalystTargetPrice: "48.00",
		AnalystRatingStrongBuy: "3", AnalystRatingBuy: "7", AnalystRatingHold: "11",
		AnalystRatingSell: "1", AnalystRatingStrongSell: "0",
	},
	"DD": {
		Symbol: "DD", Name: "DuPont de Nemours, Inc.", Exchange: "NYSE",
		Country: "USA", Sector: "Materials", Industry: "Specialty Chemicals",
		LatestQuarter: "2025-06-30", MarketCapitalization: "33000000000",
		RevenueTTM: "14200000000", RevenuePerShareTTM: "28.10",
		ProfitMargin: "0.160", OperatingMarginTTM: "0.210", EBITDA: "4100000000",
		DividendYield: "0.0190", AnalystTargetPrice: "92.00",
		AnalystRatingStrongBuy: "4", AnalystRatingBuy: "10", AnalystRatingHold: "9",
		AnalystRatingSell: "1", AnalystRatingStrongSell: "0",
	},
	"CE": {
		Symbol: "CE", Name: "Celanese Corporation", Exchange: "NYSE",
		Country: "USA", Sector: "Materials", Industry: "Specialty Chemicals",
		LatestQuarter: "2025-06-30", MarketCapitalization: "15500000000",
		RevenueTTM: "10500000000", RevenuePerShareTTM: "88.40",
		ProfitMargin: "0.110", OperatingMarginTTM: "0.170", EBITDA: "2400000000",
		DividendYield: "0.0240", AnalystTargetPrice: "170.00",
		AnalystRatingStrongBuy: "6", AnalystRatingBuy: "8", AnalystRatingHold: "7",
		AnalystRatingSell: "1", AnalystRatingStrongSell: "0",
	},
	"LYB": {
		Symbol: "LYB", Name: "LyondellBasell Industries N.V.", Exchange: "NYSE",
		Country: "Netherlands", Sector: "Materials", Industry: "Commodity Chemicals",
		LatestQuarter: "2025-06-30", MarketCapitalization: "30000000000",
		RevenueTTM: "36000000000", RevenuePerShareTTM: "115.30",
		ProfitMargin: "0.095", OperatingMarginTTM: "0.130", EBITDA: "5200000000",
		DividendYield: "0.0520", AnalystTargetPrice: "110.00",
		AnalystRatingStrongBuy: "4", AnalystRatingBuy: "9", AnalystRatingHold: "12",
		AnalystRatingSell: "1", AnalystRatingStrongSell: "0",
	},
}

// Per-symbol base price for the generated intraday bars.
var mockBasePrice = map[string]float64{
	"TEL": 162.40,
	"ST":  44.80,
	"DD":  82.10,
	"CE":  158.20,
	"LYB": 102.70,
}

const (
	mockBarCount    = 6
	mockBarInterval = 5 * time.Minute
)

// mockResponse returns the canned payload for one API call. Payloads
// take the upstream wire shape so they flow through the same parsers
// as live data.
func mockResponse(function, symbol string) ([]byte, error) {
	overview, ok := mockOverviews[symbol]
	if !ok {
		return nil, fmt.Errorf("%w: unknown symbol %s", ErrAPIError, symbol)
	}

	switch function {
	case FuncOverview:
		body, err := json.Marshal(overview)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return body, nil
	case FuncIncomeStatement:
		return mockIncomeStatement(overview)
	case FuncIntraday:
		return mockIntraday(symbol)
	default:
		return nil, fmt.Errorf("%w: unknown function %s", ErrAPIError, function)
	}
}

// mockIncomeStatement derives two annual reports from the overview's
// trailing revenue, shrinking the prior year slightly.
func mockIncomeStatement(o model.CompanyOverview) ([]byte, error) {
	revenue, err := decimal.NewFromString(o.RevenueTTM)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	report := func(year int, rev decimal.Decimal) model.IncomeReport {
		return model.IncomeReport{
			FiscalDateEnding: fmt.Sprintf("%d-12-31", year),
			ReportedCurrency: "USD",
			TotalRevenue:     rev.StringFixed(0),
			GrossProfit:      rev.Mul(decimal.NewFromFloat(0.35)).StringFixed(0),
			OperatingIncome:  rev.Mul(decimal.NewFromFloat(0.15)).StringFixed(0),
			NetIncome:        rev.Mul(decimal.NewFromFloat(0.10)).StringFixed(0),
		}
	}

	stmt := model.IncomeStatement{
		Symbol: o.Symbol,
		AnnualReports: []model.IncomeReport{
			report(2024, revenue),
			report(2023, revenue.Mul(decimal.NewFromFloat(0.96))),
		},
	}
	body, err := json.Marshal(stmt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return body, nil
}

// mockIntraday generates a short series of bars ending near now, in
// the upstream's nested wire shape with ordinal field prefixes.
func mockIntraday(symbol string) ([]byte, error) {
	base := mockBasePrice[symbol]
	end := time.Now().UTC().Truncate(mockBarInterval)

	series := make(map[string]map[string]string, mockBarCount)
	for i := 0; i < mockBarCount; i++ {
		ts := end.Add(-time.Duration(i) * mockBarInterval)
		// Small deterministic wiggle so the chart is not a flat line.
		wiggle := float64((i*7)%5-2) / 10.0
		open := base + wiggle
		clse := base + wiggle/2
		series[ts.Format("2006-01-02 15:04:05")] = map[string]string{
			"1. open":   strconv.FormatFloat(open, 'f', 2, 64),
			"2. high":   strconv.FormatFloat(open+0.3, 'f', 2, 64),
			"3. low":    strconv.FormatFloat(open-0.3, 'f', 2, 64),
			"4. close":  strconv.FormatFloat(clse, 'f', 2, 64),
			"5. volume": strconv.Itoa(8000 + i*500),
		}
	}

	payload := map[string]any{
		"Meta Data": map[string]string{
			"1. Information": "Intraday (5min) open, high, low, close prices and volume",
			"2. Symbol":      symbol,
		},
		"Time Series (5min)": series,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return body, nil
}
