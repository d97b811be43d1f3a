package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/pocketbudget/backend/pkg/rules"
	"github.com/shopspring/decimal"
)

// The two-tier amount extractor for the ingestion path. This is
// deliberately independent of the configurable amount pattern: the
// first tier knows about currency markers and grouped thousands, the
// second falls back to the first bare number in the text.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:Rs\.?\s*|LKR\s*|INR\s*)?(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`\b(\d+(?:\.\d{1,2})?)\b`),
}

// dateTimeLayout is the fixed format the extracted date and time
// sub-matches are parsed with, after joining them with a single space.
const dateTimeLayout = "02 Jan 2006 15:04"

// ExtractAmount returns the first positive amount found in the text.
// Thousands separators are stripped before parsing. The second return
// value is false when no tier yields a positive amount.
func ExtractAmount(text string) (decimal.Decimal, bool) {
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}

		amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
		if err == nil && amount.IsPositive() {
			return amount, true
		}
	}

	return decimal.Decimal{}, false
}

// ExtractField applies a single-capture-group pattern to the text and
// returns the first capture. Absence is the only failure mode: a
// pattern that does not compile, does not match, or captures nothing
// yields ("", false), never an error.
func ExtractField(text, pattern string) (string, bool) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", false
	}

	match := re.FindStringSubmatch(text)
	if match == nil || len(match) < 2 || match[1] == "" {
		return "", false
	}

	return match[1], true
}

// ExtractDate extracts a timestamp using the configured date and time
// patterns. Both sub-matches must be present: a message with only a
// date or only a time yields no timestamp. The combined value is
// parsed in UTC.
func ExtractDate(text string, set rules.Set) (time.Time, bool) {
	dateStr, ok := ExtractField(text, set.DatePattern)
	if !ok {
		return time.Time{}, false
	}

	timeStr, ok := ExtractField(text, set.TimePattern)
	if !ok {
		return time.Time{}, false
	}

	t, err := time.ParseInLocation(dateTimeLayout, dateStr+" "+timeStr, time.UTC)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}
