package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToPaise(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"500", 50000, true},
		{" 1 ", 100, true},
		{"0", 0, false},
		{"0.00", 0, false},
		{"-5", 0, false},
		{"+5", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToPaise(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("%q: got %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{Rupee(0), "₹0"},
		{Rupee(500), "₹500"},
		{Rupee(1000), "₹1,000"},
		{Rupee(25000), "₹25,000"},
		{Rupee(100000), "₹1,00,000"},
		{Rupee(1234567), "₹12,34,567"},
		{Rupee(-15000), "-₹15,000"},
		{Money{Paise: 49950}, "₹500"}, // half-up on paise
		{Money{Paise: 49949}, "₹499"},
	}
	for _, tc := range cases {
		if got := FormatINR(tc.in); got != tc.want {
			t.Fatalf("%d paise: got %q, want %q", tc.in.Paise, got, tc.want)
		}
	}
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	tx := Transaction{ID: "t1", Amount: Money{Paise: 123456}, Type: Expense}
	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Transaction
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Amount != tx.Amount {
		t.Fatalf("round trip changed amount: %v -> %v", tx.Amount, back.Amount)
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Rupee(100)
	b := Rupee(40)
	if a.Add(b).Paise != 14000 {
		t.Fatalf("add: got %d", a.Add(b).Paise)
	}
	if a.Sub(b).Paise != 6000 {
		t.Fatalf("sub: got %d", a.Sub(b).Paise)
	}
	if a.Neg().Paise != -10000 {
		t.Fatalf("neg: got %d", a.Neg().Paise)
	}
}
