// Package aggregate computes derived views over a set of transactions.
//
// Everything here is a pure function of the record set it is handed:
// summaries and series are recomputed from scratch on every call and
// are never cached, so they cannot drift from the ledger's contents.
package aggregate

import (
	"time"

	"github.com/pocketbudget/backend/internal/types"
	"github.com/pocketbudget/backend/pkg/models"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// BudgetSummary is the overall income/expense picture of a record set.
type BudgetSummary struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	IncomeCount  int             `json:"incomeCount"`
	ExpenseCount int             `json:"expenseCount"`
}

// ChartSeries is a day-bucketed time series for charting. Labels and
// the two sum sequences are parallel: Income[i] and Expense[i] belong
// to Labels[i]. Days with no transactions are absent, the charting
// consumer tolerates sparse day sets.
type ChartSeries struct {
	Labels  []string          `json:"labels"`
	Income  []decimal.Decimal `json:"income"`
	Expense []decimal.Decimal `json:"expense"`
}

// Summarize sums the record set by kind. The balance is total income
// minus total expense.
func Summarize(records []models.Transaction) BudgetSummary {
	var summary BudgetSummary

	for _, record := range records {
		switch record.Kind {
		case models.Income:
			summary.TotalIncome = summary.TotalIncome.Add(record.Amount)
			summary.IncomeCount++
		case models.Expense:
			summary.TotalExpense = summary.TotalExpense.Add(record.Amount)
			summary.ExpenseCount++
		}
	}

	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)

	return summary
}

// SummarizeRange summarizes only the records with a date in [from, to].
func SummarizeRange(records []models.Transaction, from, to time.Time) BudgetSummary {
	var window []models.Transaction

	for _, record := range records {
		if record.Date.Before(from) || record.Date.After(to) {
			continue
		}
		window = append(window, record)
	}

	return Summarize(window)
}

// Series buckets the records of the trailing window by calendar day
// and returns per-day income and expense sums. The window is
// [now - windowDays, now]; bucketing happens in UTC. Labels are sorted
// lexicographically, matching the day key format of types.Day.
func Series(records []models.Transaction, windowDays int, now time.Time) ChartSeries {
	from := now.AddDate(0, 0, -windowDays)

	income := make(map[string]decimal.Decimal)
	expense := make(map[string]decimal.Decimal)
	var labels []string

	for _, record := range records {
		if record.Date.Before(from) || record.Date.After(now) {
			continue
		}

		label := types.DayOf(record.Date).String()
		if _, ok := income[label]; !ok {
			income[label] = decimal.Decimal{}
			expense[label] = decimal.Decimal{}
			labels = append(labels, label)
		}

		switch record.Kind {
		case models.Income:
			income[label] = income[label].Add(record.Amount)
		case models.Expense:
			expense[label] = expense[label].Add(record.Amount)
		}
	}

	slices.Sort(labels)

	series := ChartSeries{
		Labels:  labels,
		Income:  make([]decimal.Decimal, len(labels)),
		Expense: make([]decimal.Decimal, len(labels)),
	}

	for i, label := range labels {
		series.Income[i] = income[label]
		series.Expense[i] = expense[label]
	}

	return series
}
