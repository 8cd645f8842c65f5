package format_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okian/vendorboard/internal/domain/format"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"zero", 0, "$0"},
		{"thousands grouping", 1000, "$1,000"},
		{"millions grouping", 1234567, "$1,234,567"},
		{"float rounds to whole dollars", 1234.56, "$1,235"},
		{"half rounds away from zero", 2.5, "$3"},
		{"negative", -1000, "-$1,000"},
		{"numeric string", "42000000000", "$42,000,000,000"},
		{"large int64", int64(23500000000), "$23,500,000,000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Currency(tt.in))
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"fraction", 0.153, "15.3%"},
		{"one", 1, "100%"},
		{"zero", 0, "0%"},
		{"rounds to one digit", 0.1234, "12.3%"},
		{"half rounds away from zero", 0.1235, "12.4%"},
		{"no trailing zero", 0.25, "25%"},
		{"negative fraction", -0.05, "-5%"},
		{"numeric string", "0.120", "12%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Percent(tt.in))
		})
	}
}

func TestPassthrough(t *testing.T) {
	hooks := map[string]format.Hook{
		"currency": format.Currency,
		"percent":  format.Percent,
	}
	for name, hook := range hooks {
		t.Run(name, func(t *testing.T) {
			assert.Nil(t, hook(nil))
			assert.Equal(t, "None", hook("None"))
			assert.Equal(t, "N/A", hook("N/A"))
			assert.Equal(t, "", hook(""))
			assert.Equal(t, "not a number", hook("not a number"))
			assert.Equal(t, struct{}{}, hook(struct{}{}))

			got := hook(math.NaN())
			f, ok := got.(float64)
			assert.True(t, ok)
			assert.True(t, math.IsNaN(f))

			inf := hook(math.Inf(1))
			assert.Equal(t, math.Inf(1), inf)
		})
	}
}

func TestDeterminism(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "$1,000", format.Currency(1000))
		assert.Equal(t, "15.3%", format.Percent(0.153))
	}
}

func TestNewOptions(t *testing.T) {
	tests := []struct {
		name string
		opts format.Options
		in   any
		want any
	}{
		{"currency zero digits", format.Options{Style: format.StyleCurrency}, 1000, "$1,000"},
		{"currency with cents", format.Options{Style: format.StyleCurrency, MaxFractionDigits: 2}, 1234.56, "$1,234.56"},
		{"currency trims trailing zeros", format.Options{Style: format.StyleCurrency, MaxFractionDigits: 2}, 1234.5, "$1,234.5"},
		{"percent two digits", format.Options{Style: format.StylePercent, MaxFractionDigits: 2}, 0.12345, "12.35%"},
		{"plain style", format.Options{MaxFractionDigits: 1}, 12.34, "12.3"},
		{"negative digits clamped", format.Options{Style: format.StyleCurrency, MaxFractionDigits: -1}, 10, "$10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hook := format.New(tt.opts)
			assert.Equal(t, tt.want, hook(tt.in))
		})
	}
}

func TestNewPassthrough(t *testing.T) {
	hook := format.New(format.Options{Style: format.StylePercent, MaxFractionDigits: 1})
	assert.Nil(t, hook(nil))
	assert.Equal(t, "None", hook("None"))
}
