package core

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestTotals(t *testing.T) {
	txs := []Transaction{
		{Type: Income, Amount: Rupee(1000)},
		{Type: Refund, Amount: Rupee(200)},
		{Type: Expense, Amount: Rupee(300)},
		{Type: Transfer, Amount: Rupee(5000)},
	}
	if got := TotalIncome(txs); got != Rupee(1200) {
		t.Fatalf("income: got %d", got.Paise)
	}
	if got := TotalExpense(txs); got != Rupee(300) {
		t.Fatalf("expense: got %d", got.Paise)
	}

	accounts := []Account{
		{Balance: Rupee(25000)},
		{Balance: Rupee(-15000)},
		{Balance: Rupee(1500)},
	}
	if got := TotalBalance(accounts); got != Rupee(11500) {
		t.Fatalf("balance: got %d", got.Paise)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []Transaction{
		{Type: Expense, Category: "Groceries", Amount: Rupee(100)},
		{Type: Expense, Category: "Groceries", Amount: Rupee(150)},
		{Type: Expense, Category: "Travel", Amount: Rupee(400)},
		{Type: Expense, Category: "Fuel", Amount: Rupee(90)},
		{Type: Expense, Category: "Shopping", Amount: Rupee(80)},
		{Type: Expense, Category: "Electronics", Amount: Rupee(70)},
		{Type: Expense, Category: "Books", Amount: Rupee(60)},
		{Type: Income, Category: "Salary", Amount: Rupee(99999)},
	}
	shares := CategoryBreakdown(txs)
	if len(shares) != 5 {
		t.Fatalf("expected top 5, got %d", len(shares))
	}
	if shares[0].Name != "Travel" || shares[0].Amount != Rupee(400) {
		t.Fatalf("unexpected top share %+v", shares[0])
	}
	if shares[1].Name != "Groceries" || shares[1].Amount != Rupee(250) {
		t.Fatalf("unexpected second share %+v", shares[1])
	}
	for _, s := range shares {
		if s.Name == "Books" {
			t.Fatalf("sixth category should have been dropped")
		}
		if s.Name == "Salary" {
			t.Fatalf("income must not appear in expense breakdown")
		}
	}
	if shares[1].Color != "#10b981" {
		t.Fatalf("groceries color: got %q", shares[1].Color)
	}
}

func TestCategoryBreakdownUnknownColor(t *testing.T) {
	shares := CategoryBreakdown([]Transaction{
		{Type: Expense, Category: "Pet Care", Amount: Rupee(10)},
	})
	if len(shares) != 1 || shares[0].Color != DefaultCategoryColor {
		t.Fatalf("expected neutral color, got %+v", shares)
	}
}

func TestWeeklySeries(t *testing.T) {
	now := day(2026, time.August, 28) // Friday
	txs := []Transaction{
		{Type: Expense, Amount: Rupee(100), Date: day(2026, time.August, 28)},
		{Type: Income, Amount: Rupee(500), Date: day(2026, time.August, 28)},
		{Type: Refund, Amount: Rupee(50), Date: day(2026, time.August, 22)},
		{Type: Expense, Amount: Rupee(75), Date: day(2026, time.August, 21)}, // out of window
		{Type: Expense, Amount: Rupee(30), Date: day(2026, time.August, 25)},
	}
	series := WeeklySeries(txs, now)
	if len(series) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(series))
	}
	if series[0].Date != "2026-08-22" || series[6].Date != "2026-08-28" {
		t.Fatalf("window wrong: %s .. %s", series[0].Date, series[6].Date)
	}
	if series[0].Day != "Sat" || series[6].Day != "Fri" {
		t.Fatalf("labels wrong: %s .. %s", series[0].Day, series[6].Day)
	}
	if series[0].Income != Rupee(50) {
		t.Fatalf("oldest bucket income: got %d", series[0].Income.Paise)
	}
	if series[6].Income != Rupee(500) || series[6].Expense != Rupee(100) {
		t.Fatalf("newest bucket: %+v", series[6])
	}
	if series[3].Expense != Rupee(30) {
		t.Fatalf("aug 25 bucket: %+v", series[3])
	}
	var total Money
	for _, d := range series {
		total = total.Add(d.Expense)
	}
	if total != Rupee(130) {
		t.Fatalf("out-of-window expense leaked in: %d", total.Paise)
	}
}

func TestFilterTransactions(t *testing.T) {
	txs := []Transaction{
		{ID: "a", Type: Expense, Merchant: "Starbucks", Category: "Food & Dining", Date: day(2026, time.August, 1)},
		{ID: "b", Type: Expense, Category: "Fuel", Date: day(2026, time.August, 3)},
		{ID: "c", Type: Income, Merchant: "Acme Corp", Category: "Salary", Date: day(2026, time.August, 2)},
	}

	all := FilterTransactions(txs, "", "")
	if len(all) != 3 || all[0].ID != "b" || all[2].ID != "a" {
		t.Fatalf("expected date-descending order, got %+v", all)
	}

	got := FilterTransactions(txs, "STAR", "")
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("search should be case-insensitive on merchant: %+v", got)
	}

	got = FilterTransactions(txs, "fuel", "")
	if len(got) != 1 || got[0].ID != "b" {
		t.Fatalf("search should fall back to category: %+v", got)
	}

	got = FilterTransactions(txs, "", Income)
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("type filter: %+v", got)
	}

	got = FilterTransactions(txs, "acme", Expense)
	if len(got) != 0 {
		t.Fatalf("filters must AND together: %+v", got)
	}
}
