package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMinorUnits renders an integer minor-unit amount as "12.345,67 IDR".
// Presentasi saja; semua perhitungan tetap di minor unit.
func FormatMinorUnits(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	major := amount / 100
	minor := amount % 100
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" {
		cur = "IDR"
	}
	return fmt.Sprintf("%s%s,%02d %s", sign, formatThousand(major), minor, cur)
}

// ParseAmountToMinorUnits parses "1.000,50", "1000.50" or "1000" into minor units.
func ParseAmountToMinorUnits(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}

	// buang simbol mata uang umum
	s = strings.TrimPrefix(strings.ToLower(s), "rp")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")

	// format lokal "1.234,56" -> "1234.56"
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}

	whole := s
	frac := ""
	if i := strings.Index(s, "."); i >= 0 {
		whole = s[:i]
		frac = s[i+1:]
	}
	if whole == "" {
		whole = "0"
	}
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if w < 0 {
		return w*100 - f, nil
	}
	return w*100 + f, nil
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
