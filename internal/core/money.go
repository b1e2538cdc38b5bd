// Package core holds the ledger's domain types, validation rules and the
// pure derived-view builders consumed by the presentation layer.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount of Indian rupees stored as integer paise.
// Calculations always happen in paise to avoid floating-point drift;
// rupee floats exist only for display.
type Money struct {
	Paise int64
}

// Rupee constructs a Money from a whole-rupee value.
func Rupee(r int64) Money {
	return Money{Paise: r * 100}
}

// Rupees returns the rupee value as a float64 for display purposes.
func (m Money) Rupees() float64 {
	return float64(m.Paise) / 100.0
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Paise: m.Paise + o.Paise}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{Paise: m.Paise - o.Paise}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{Paise: -m.Paise}
}

// MarshalJSON encodes the amount as a bare paise integer.
func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, m.Paise, 10), nil
}

// UnmarshalJSON decodes a bare paise integer.
func (m *Money) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	m.Paise = v
	return nil
}

// ParseDecimalToPaise converts a decimal rupee string to paise with half-up
// rounding on the third decimal digit. Both dot and comma separators are
// accepted. Only strictly positive amounts are valid.
func ParseDecimalToPaise(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var frac int64
	if len(fracPart) > 0 {
		frac = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			frac += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				frac++
			}
		}
	}
	paise := iv*100 + frac
	if paise <= 0 {
		return 0, ErrInvalidAmount
	}
	return paise, nil
}

// FormatINR renders the amount as the original UI does: rupee symbol,
// en-IN digit grouping (last three digits, then groups of two) and no
// fraction digits, rounding paise half-up.
func FormatINR(m Money) string {
	paise := m.Paise
	neg := paise < 0
	if neg {
		paise = -paise
	}
	rupees := (paise + 50) / 100

	digits := strconv.FormatInt(rupees, 10)
	grouped := groupIndian(digits)
	if neg {
		return "-₹" + grouped
	}
	return "₹" + grouped
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	parts = append([]string{head}, parts...)
	return strings.Join(parts, ",") + "," + tail
}
