// Package table builds the display grids served by the dashboard.
// Each column names the formatting hook applied to its cells; the grid
// contract is one raw value in, one display string (or the untouched
// missing-data sentinel) out.
package table

import (
	"sort"

	"github.com/okian/vendorboard/internal/domain/format"
	"github.com/okian/vendorboard/internal/domain/model"
)

// missingCell is what empty or passthrough cells render as.
const missingCell = "N/A"

// Column pairs a row key with a display name and an optional
// formatting-hook name from the format registry.
type Column struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Hook string `json:"hook,omitempty"`
}

// Table is a rendered grid: ordered columns plus one map per row.
type Table struct {
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// OverviewColumns is the key-column subset shown on the overview grid.
var OverviewColumns = []Column{
	{ID: "Symbol", Name: "Symbol"},
	{ID: "Name", Name: "Name"},
	{ID: "Exchange", Name: "Exchange"},
	{ID: "Country", Name: "Country"},
	{ID: "Sector", Name: "Sector"},
	{ID: "Industry", Name: "Industry"},
	{ID: "MarketCapitalization", Name: "Market Cap", Hook: format.HookUSD},
	{ID: "RevenueTTM", Name: "Revenue (TTM)", Hook: format.HookUSD},
	{ID: "RevenuePerShareTTM", Name: "Revenue/Share (TTM)", Hook: format.HookUSD},
	{ID: "ProfitMargin", Name: "Profit Margin", Hook: format.HookPercent},
	{ID: "OperatingMarginTTM", Name: "Operating Margin (TTM)", Hook: format.HookPercent},
	{ID: "EBITDA", Name: "EBITDA", Hook: format.HookUSD},
	{ID: "AnalystTargetPrice", Name: "Analyst Target", Hook: format.HookUSD},
	{ID: "AnalystRatingStrongBuy", Name: "Strong Buy"},
	{ID: "AnalystRatingBuy", Name: "Buy"},
	{ID: "AnalystRatingHold", Name: "Hold"},
	{ID: "AnalystRatingSell", Name: "Sell"},
	{ID: "AnalystRatingStrongSell", Name: "Strong Sell"},
}

// VendorColumns is the latest-bar grid: one row per symbol.
var VendorColumns = []Column{
	{ID: "Symbol", Name: "Symbol"},
	{ID: "open", Name: "Open"},
	{ID: "high", Name: "High"},
	{ID: "low", Name: "Low"},
	{ID: "close", Name: "Close"},
	{ID: "volume", Name: "Volume"},
}

// BuildOverview renders one row per company with cells run through
// their column hooks. Missing values render as "N/A".
func BuildOverview(overviews []model.CompanyOverview) Table {
	rows := make([]map[string]any, 0, len(overviews))
	for _, o := range overviews {
		raw := map[string]any{
			"Symbol":                  o.Symbol,
			"Name":                    o.Name,
			"Exchange":                o.Exchange,
			"Country":                 o.Country,
			"Sector":                  o.Sector,
			"Industry":                o.Industry,
			"MarketCapitalization":    o.MarketCapitalization,
			"RevenueTTM":              o.RevenueTTM,
			"RevenuePerShareTTM":      o.RevenuePerShareTTM,
			"ProfitMargin":            o.ProfitMargin,
			"OperatingMarginTTM":      o.OperatingMarginTTM,
			"EBITDA":                  o.EBITDA,
			"AnalystTargetPrice":      o.AnalystTargetPrice,
			"AnalystRatingStrongBuy":  o.AnalystRatingStrongBuy,
			"AnalystRatingBuy":        o.AnalystRatingBuy,
			"AnalystRatingHold":       o.AnalystRatingHold,
			"AnalystRatingSell":       o.AnalystRatingSell,
			"AnalystRatingStrongSell": o.AnalystRatingStrongSell,
		}
		row := make(map[string]any, len(OverviewColumns))
		for _, col := range OverviewColumns {
			row[col.ID] = renderCell(raw[col.ID], col.Hook)
		}
		rows = append(rows, row)
	}
	return Table{Columns: OverviewColumns, Rows: rows}
}

// BuildVendor renders the most recent intraday bar per symbol. Bars are
// expected newest first, matching model.ParseIntraday.
func BuildVendor(series map[string][]model.Bar) Table {
	symbols := make([]string, 0, len(series))
	for symbol := range series {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	rows := make([]map[string]any, 0, len(symbols))
	for _, symbol := range symbols {
		bars := series[symbol]
		row := map[string]any{
			"Symbol": symbol,
			"open":   missingCell,
			"high":   missingCell,
			"low":    missingCell,
			"close":  missingCell,
			"volume": missingCell,
		}
		if len(bars) > 0 {
			latest := bars[0]
			row["open"] = renderCell(latest.Open, "")
			row["high"] = renderCell(latest.High, "")
			row["low"] = renderCell(latest.Low, "")
			row["close"] = renderCell(latest.Close, "")
			row["volume"] = renderCell(latest.Volume, "")
		}
		rows = append(rows, row)
	}
	return Table{Columns: VendorColumns, Rows: rows}
}

// renderCell applies the named hook and maps anything that passed
// through as missing to the grid's "N/A" sentinel.
func renderCell(v any, hook string) any {
	if hook != "" {
		v = format.Apply(hook, v)
	}
	switch x := v.(type) {
	case nil:
		return missingCell
	case string:
		if x == "" || x == "None" || x == "-" {
			return missingCell
		}
		return x
	default:
		return v
	}
}
