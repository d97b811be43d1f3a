package parser_test

import (
	"testing"
	"time"

	"github.com/pocketbudget/backend/pkg/parser"
	"github.com/pocketbudget/backend/pkg/rules"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{"currency marker with grouped thousands", "LKR 6,123.30 debited from AC XXXX1234", "6123.30", true},
		{"Rs marker", "credited Rs 500 to your account", "500", true},
		{"Rs with dot", "Rs. 1,250.00 paid", "1250.00", true},
		{"INR marker", "INR 42.50 spent", "42.50", true},
		{"bare number fallback", "payment of 75 confirmed", "75", true},
		// The first tier captures "12": it only accepts two-digit
		// fractions, and a positive integer match ends the search
		{"single decimal digit", "balance changed by 12.5", "12", true},
		{"no numbers at all", "no numbers here", "", false},
		{"empty text", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, ok := parser.ExtractAmount(tt.text)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, amount.Equal(decimal.RequireFromString(tt.want)), "extracted %s, want %s", amount, tt.want)
			}
		})
	}
}

func TestExtractField(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pattern string
		want    string
		ok      bool
	}{
		{"match", "paid at STORE. Avl", `at ([A-Za-z0-9\s]+)\. Avl`, "STORE", true},
		{"no match", "paid somewhere", `at ([A-Za-z0-9\s]+)\. Avl`, "", false},
		{"pattern does not compile", "paid at STORE", `at ([`, "", false},
		{"pattern without capture group", "paid at STORE", `at`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := parser.ExtractField(tt.text, tt.pattern)

			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, value)
		})
	}
}

func TestExtractDate(t *testing.T) {
	set := rules.Default()

	tests := []struct {
		name string
		text string
		want time.Time
		ok   bool
	}{
		{
			"date and time present",
			"POS TXN on 01 Oct 2025 done at 17:49 today",
			time.Date(2025, 10, 1, 17, 49, 0, 0, time.UTC),
			true,
		},
		{"only a date", "POS TXN on 01 Oct 2025", time.Time{}, false},
		{"only a time", "POS TXN done at 17:49 today", time.Time{}, false},
		{"unparsable month", "on 01 Xyz 2025 done at 17:49", time.Time{}, false},
		{"nothing", "POS TXN", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := parser.ExtractDate(tt.text, set)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, date.Equal(tt.want), "parsed %s, want %s", date, tt.want)
			}
		})
	}
}

func TestExtractDateBrokenPatternIsIsolated(t *testing.T) {
	// A malformed date pattern only loses the timestamp, it does not
	// affect any other field
	set := rules.Default()
	set.DatePattern = "(["

	_, ok := parser.ExtractDate("on 01 Oct 2025 done at 17:49", set)
	assert.False(t, ok)

	location, ok := parser.ExtractField("at STORE. Avl", set.LocationPattern)
	assert.True(t, ok)
	assert.Equal(t, "STORE", location)
}
