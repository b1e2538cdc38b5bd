package core

import (
	"sort"
	"strings"
	"time"
)

// CategoryShare is an expense total attributed to one category, colored for
// the breakdown chart.
type CategoryShare struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
	Color  string `json:"color"`
}

// DaySummary is one bar of the weekly income-vs-expense chart.
type DaySummary struct {
	Date    string `json:"date"` // ISO calendar day, e.g. "2026-08-28"
	Day     string `json:"day"`  // short weekday label, e.g. "Fri"
	Income  Money  `json:"income"`
	Expense Money  `json:"expense"`
}

// topCategories is how many slices the category breakdown keeps.
const topCategories = 5

// TotalBalance sums every account balance, debt included.
func TotalBalance(accounts []Account) Money {
	var total Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// TotalIncome sums the amounts of income and refund transactions.
func TotalIncome(txs []Transaction) Money {
	var total Money
	for _, t := range txs {
		if t.Type == Income || t.Type == Refund {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// TotalExpense sums the amounts of expense transactions.
func TotalExpense(txs []Transaction) Money {
	var total Money
	for _, t := range txs {
		if t.Type == Expense {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// CategoryBreakdown groups expense amounts by category, sorted by amount
// descending, keeping the top five. Ties break on category name so the
// result is deterministic.
func CategoryBreakdown(txs []Transaction) []CategoryShare {
	sums := make(map[string]Money)
	for _, t := range txs {
		if t.Type == Expense {
			sums[t.Category] = sums[t.Category].Add(t.Amount)
		}
	}

	shares := make([]CategoryShare, 0, len(sums))
	for name, amount := range sums {
		shares = append(shares, CategoryShare{
			Name:   name,
			Amount: amount,
			Color:  CategoryColor(name),
		})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount.Paise != shares[j].Amount.Paise {
			return shares[i].Amount.Paise > shares[j].Amount.Paise
		}
		return shares[i].Name < shares[j].Name
	})
	if len(shares) > topCategories {
		shares = shares[:topCategories]
	}
	return shares
}

// WeeklySeries buckets transactions into the trailing seven UTC calendar
// days ending at now, oldest first. A transaction lands in a bucket when
// its date falls on that calendar day.
func WeeklySeries(txs []Transaction, now time.Time) []DaySummary {
	series := make([]DaySummary, 7)
	for i := range series {
		day := now.UTC().AddDate(0, 0, -(6 - i))
		series[i] = DaySummary{
			Date: day.Format("2006-01-02"),
			Day:  day.Weekday().String()[:3],
		}
	}

	index := make(map[string]int, 7)
	for i, d := range series {
		index[d.Date] = i
	}
	for _, t := range txs {
		i, ok := index[t.Date.UTC().Format("2006-01-02")]
		if !ok {
			continue
		}
		switch t.Type {
		case Income, Refund:
			series[i].Income = series[i].Income.Add(t.Amount)
		case Expense:
			series[i].Expense = series[i].Expense.Add(t.Amount)
		}
	}
	return series
}

// FilterTransactions applies the history view's search and type filter:
// case-insensitive substring match on merchant-or-category, exact type
// equality when typ is non-empty, sorted by date descending. The input
// slice is not modified.
func FilterTransactions(txs []Transaction, query string, typ TransactionType) []Transaction {
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if typ != "" && t.Type != typ {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(t.MerchantOrCategory()), needle) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
