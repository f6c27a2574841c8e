package utils

import "testing"

func TestFormatMinorUnits(t *testing.T) {
	cases := []struct {
		amount   int64
		currency string
		want     string
	}{
		{1234567, "IDR", "12.345,67 IDR"},
		{100, "idr", "1,00 IDR"},
		{0, "", "0,00 IDR"},
		{-5025, "IDR", "-50,25 IDR"},
	}
	for _, c := range cases {
		if got := FormatMinorUnits(c.amount, c.currency); got != c.want {
			t.Fatalf("FormatMinorUnits(%d, %q) = %q, want %q", c.amount, c.currency, got, c.want)
		}
	}
}

func TestParseAmountToMinorUnits(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1.000,50", 100050},
		{"1000.50", 100050},
		{"1000", 100000},
		{"Rp 150.000,00", 15000000},
	}
	for _, c := range cases {
		got, err := ParseAmountToMinorUnits(c.in)
		if err != nil {
			t.Fatalf("ParseAmountToMinorUnits(%q): %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseAmountToMinorUnits(%q) = %d, want %d", c.in, got, c.want)
		}
	}

	if _, err := ParseAmountToMinorUnits(""); err == nil {
		t.Fatalf("string kosong harus error")
	}
	if _, err := ParseAmountToMinorUnits("abc"); err == nil {
		t.Fatalf("bukan angka harus error")
	}
}

func TestSafeFilenamePart(t *testing.T) {
	if got := SafeFilenamePart("Budi Santoso/Jr"); got != "Budi_Santoso_Jr" {
		t.Fatalf("got %q", got)
	}
	if got := SafeFilenamePart("  "); got != "NA" {
		t.Fatalf("kosong harus NA, got %q", got)
	}
}
