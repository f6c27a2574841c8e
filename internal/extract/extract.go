// Package extract membaca field upstream yang bentuknya tidak seragam.
// Setiap konsep (kota, waktu, nominal) punya daftar bentuk yang dicoba
// berurutan; bentuk pertama yang bisa diparse yang dipakai, supaya
// fallback tidak tersebar inline di resolver.
package extract

import (
	"strconv"
	"strings"
	"time"

	"tiket/internal/domain/models"
)

// Urutan kunci per konsep. Urutan adalah kontrak: jangan diacak.
var (
	originKeys      = []string{"origin", "from", "departure_city", "source"}
	destinationKeys = []string{"destination", "to", "arrival_city", "target"}
	departureKeys   = []string{"departure", "departure_time", "depart_at", "start_time"}
	arrivalKeys     = []string{"arrival", "arrival_time", "arrive_at", "end_time"}
	operatorKeys    = []string{"operator", "carrier", "company"}
	legGroupKeys    = []string{"leg", "leg_group", "group", "direction"}

	cityKeys    = []string{"city", "city_name", "name", "station"}
	instantKeys = []string{"timestamp", "datetime", "time", "value"}
	amountKeys  = []string{"amount", "value", "total", "price"}
)

var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// City menerima string langsung atau map bersarang (station/place).
func City(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		return s, s != ""
	case map[string]any:
		for _, k := range cityKeys {
			if inner, ok := val[k]; ok {
				if s, ok := City(inner); ok {
					return s, true
				}
			}
		}
	}
	return "", false
}

// Instant menerima string dengan beberapa layout, angka unix
// (detik atau milidetik), atau map dengan field timestamp bernama lain.
func Instant(v any) (time.Time, bool) {
	switch val := v.(type) {
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range instantLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return unixInstant(n), true
		}
	case float64:
		return unixInstant(int64(val)), true
	case int64:
		return unixInstant(val), true
	case int:
		return unixInstant(int64(val)), true
	case map[string]any:
		for _, k := range instantKeys {
			if inner, ok := val[k]; ok {
				if t, ok := Instant(inner); ok {
					return t, true
				}
			}
		}
	}
	return time.Time{}, false
}

func unixInstant(n int64) time.Time {
	// nilai terlalu besar untuk detik dianggap milidetik
	if n > 1_000_000_000_000 {
		return time.UnixMilli(n).UTC()
	}
	return time.Unix(n, 0).UTC()
}

// Amount mengembalikan nominal minor unit dari angka, string angka,
// atau map dengan field nominal bernama lain.
func Amount(v any) (int64, bool) {
	switch val := v.(type) {
	case float64:
		return int64(val + 0.5), true
	case int64:
		return val, true
	case int:
		return int64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f + 0.5), true
		}
	case map[string]any:
		for _, k := range amountKeys {
			if inner, ok := val[k]; ok {
				if n, ok := Amount(inner); ok {
					return n, true
				}
			}
		}
	}
	return 0, false
}

// LegGroup membaca metadata pengelompokan segment ke leg, kalau ada.
func LegGroup(seg map[string]any) (int, bool) {
	for _, k := range legGroupKeys {
		v, ok := seg[k]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case float64:
			return int(val), true
		case int:
			return val, true
		case string:
			s := strings.ToLower(strings.TrimSpace(val))
			switch s {
			case "outbound", "berangkat", "depart":
				return 1, true
			case "return", "pulang", "inbound":
				return 2, true
			}
			if n, err := strconv.Atoi(s); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

func firstField(seg map[string]any, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := seg[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Segment menormalkan satu segment mentah menjadi bentuk kanonik.
// Origin dan destination wajib; waktu boleh kosong (zero time).
func Segment(seg map[string]any) (models.Segment, bool) {
	var out models.Segment

	if v, ok := firstField(seg, originKeys); ok {
		out.Origin, _ = City(v)
	}
	if v, ok := firstField(seg, destinationKeys); ok {
		out.Destination, _ = City(v)
	}
	if out.Origin == "" || out.Destination == "" {
		return models.Segment{}, false
	}

	if v, ok := firstField(seg, departureKeys); ok {
		out.Departure, _ = Instant(v)
	}
	if v, ok := firstField(seg, arrivalKeys); ok {
		out.Arrival, _ = Instant(v)
	}
	if v, ok := firstField(seg, operatorKeys); ok {
		if s, ok := City(v); ok {
			out.Operator = s
		}
	}
	return out, true
}
