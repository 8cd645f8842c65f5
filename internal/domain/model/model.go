// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// intradayTimestampLayout matches the upstream time series keys.
const intradayTimestampLayout = "2006-01-02 15:04:05"

// CompanyOverview mirrors the fundamental-data OVERVIEW payload.
// Numeric fields stay as the raw strings the API returns ("None" and
// "-" included) so display formatting can pass absent values through.
type CompanyOverview struct {
	Symbol                  string `json:"Symbol"`
	Name                    string `json:"Name"`
	Exchange                string `json:"Exchange"`
	Country                 string `json:"Country"`
	Sector                  string `json:"Sector"`
	Industry                string `json:"Industry"`
	LatestQuarter           string `json:"LatestQuarter"`
	MarketCapitalization    string `json:"MarketCapitalization"`
	RevenueTTM              string `json:"RevenueTTM"`
	RevenuePerShareTTM      string `json:"RevenuePerShareTTM"`
	ProfitMargin            string `json:"ProfitMargin"`
	OperatingMarginTTM      string `json:"OperatingMarginTTM"`
	EBITDA                  string `json:"EBITDA"`
	DividendYield           string `json:"DividendYield"`
	AnalystTargetPrice      string `json:"AnalystTargetPrice"`
	AnalystRatingStrongBuy  string `json:"AnalystRatingStrongBuy"`
	AnalystRatingBuy        string `json:"AnalystRatingBuy"`
	AnalystRatingHold       string `json:"AnalystRatingHold"`
	AnalystRatingSell       string `json:"AnalystRatingSell"`
	AnalystRatingStrongSell string `json:"AnalystRatingStrongSell"`
}

// IncomeStatement mirrors the INCOME_STATEMENT payload.
type IncomeStatement struct {
	Symbol        string         `json:"symbol"`
	AnnualReports []IncomeReport `json:"annualReports"`
}

// IncomeReport is one fiscal-year report within an income statement.
type IncomeReport struct {
	FiscalDateEnding string `json:"fiscalDateEnding"`
	ReportedCurrency string `json:"reportedCurrency"`
	TotalRevenue     string `json:"totalRevenue"`
	GrossProfit      string `json:"grossProfit"`
	OperatingIncome  string `json:"operatingIncome"`
	NetIncome        string `json:"netIncome"`
}

// Bar is one intraday OHLCV bar.
type Bar struct {
	TS     time.Time `json:"ts"`
	Open   string    `json:"open"`
	High   string    `json:"high"`
	Low    string    `json:"low"`
	Close  string    `json:"close"`
	Volume string    `json:"volume"`
}

// NormalizeSymbol canonicalizes a ticker symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseOverview decodes an OVERVIEW response body.
func ParseOverview(raw []byte) (CompanyOverview, error) {
	var o CompanyOverview
	if err := json.Unmarshal(raw, &o); err != nil {
		return CompanyOverview{}, fmt.Errorf("parse overview: %w", err)
	}
	if o.Symbol == "" {
		return CompanyOverview{}, fmt.Errorf("parse overview: missing symbol")
	}
	o.Symbol = NormalizeSymbol(o.Symbol)
	return o, nil
}

// ParseIncomeStatement decodes an INCOME_STATEMENT response body.
func ParseIncomeStatement(raw []byte) (IncomeStatement, error) {
	var s IncomeStatement
	if err := json.Unmarshal(raw, &s); err != nil {
		return IncomeStatement{}, fmt.Errorf("parse income statement: %w", err)
	}
	s.Symbol = NormalizeSymbol(s.Symbol)
	return s, nil
}

// ParseIntraday decodes a TIME_SERIES_INTRADAY response body into bars
// ordered newest first. The upstream nests bars under a "Time Series"
// key whose exact name depends on the interval, and prefixes each field
// with an ordinal ("1. open"); both quirks are normalized away here.
func ParseIntraday(raw []byte) ([]Bar, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("parse intraday: %w", err)
	}

	var series map[string]map[string]string
	for key, val := range envelope {
		if !strings.HasPrefix(key, "Time Series") {
			continue
		}
		if err := json.Unmarshal(val, &series); err != nil {
			return nil, fmt.Errorf("parse intraday series: %w", err)
		}
		break
	}
	if series == nil {
		return nil, fmt.Errorf("parse intraday: no time series in payload")
	}

	bars := make([]Bar, 0, len(series))
	for stamp, fields := range series {
		ts, err := time.Parse(intradayTimestampLayout, stamp)
		if err != nil {
			return nil, fmt.Errorf("parse intraday timestamp %q: %w", stamp, err)
		}
		bar := Bar{TS: ts}
		for name, value := range fields {
			// Strip the ordinal prefix: "1. open" -> "open".
			if _, short, found := strings.Cut(name, ". "); found {
				name = short
			}
			switch name {
			case "open":
				bar.Open = value
			case "high":
				bar.High = value
			case "low":
				bar.Low = value
			case "close":
				bar.Close = value
			case "volume":
				bar.Volume = value
			}
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].TS.After(bars[j].TS) })
	return bars, nil
}
