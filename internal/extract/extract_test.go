package extract

import (
	"testing"
	"time"
)

func TestCityShapes(t *testing.T) {
	if got, ok := City("  Jakarta "); !ok || got != "Jakarta" {
		t.Fatalf("plain string city failed: %q ok=%v", got, ok)
	}

	nested := map[string]any{"station": map[string]any{"city": "Bandung"}}
	if got, ok := City(nested); !ok || got != "Bandung" {
		t.Fatalf("nested station city failed: %q ok=%v", got, ok)
	}

	if _, ok := City(map[string]any{"code": "JKT"}); ok {
		t.Fatalf("unknown shape should not parse")
	}
}

func TestCityPriorityOrder(t *testing.T) {
	// "city" menang atas "name" walau dua-duanya ada
	m := map[string]any{"name": "Stasiun Gambir", "city": "Jakarta"}
	got, ok := City(m)
	if !ok || got != "Jakarta" {
		t.Fatalf("priority order broken, got %q", got)
	}
}

func TestInstantShapes(t *testing.T) {
	want := time.Date(2025, 3, 1, 8, 30, 0, 0, time.UTC)

	if got, ok := Instant("2025-03-01T08:30:00Z"); !ok || !got.Equal(want) {
		t.Fatalf("rfc3339 failed: %v ok=%v", got, ok)
	}
	if got, ok := Instant("2025-03-01 08:30:00"); !ok || !got.Equal(want) {
		t.Fatalf("datetime layout failed: %v", got)
	}
	if got, ok := Instant(float64(want.Unix())); !ok || !got.Equal(want) {
		t.Fatalf("unix seconds failed: %v", got)
	}
	if got, ok := Instant(float64(want.UnixMilli())); !ok || !got.Equal(want) {
		t.Fatalf("unix millis failed: %v", got)
	}
	if got, ok := Instant(map[string]any{"timestamp": "2025-03-01T08:30:00Z"}); !ok || !got.Equal(want) {
		t.Fatalf("nested timestamp failed: %v", got)
	}
	if _, ok := Instant("bukan tanggal"); ok {
		t.Fatalf("garbage should not parse")
	}
}

func TestAmountShapes(t *testing.T) {
	if got, ok := Amount(float64(12500)); !ok || got != 12500 {
		t.Fatalf("number amount failed: %d", got)
	}
	if got, ok := Amount("990"); !ok || got != 990 {
		t.Fatalf("string amount failed: %d", got)
	}
	if got, ok := Amount(map[string]any{"amount": float64(75)}); !ok || got != 75 {
		t.Fatalf("nested amount failed: %d", got)
	}
	if _, ok := Amount(""); ok {
		t.Fatalf("empty string should not parse")
	}
}

func TestLegGroup(t *testing.T) {
	if g, ok := LegGroup(map[string]any{"leg": float64(2)}); !ok || g != 2 {
		t.Fatalf("numeric leg group failed: %d", g)
	}
	if g, ok := LegGroup(map[string]any{"direction": "pulang"}); !ok || g != 2 {
		t.Fatalf("named leg group failed: %d", g)
	}
	if _, ok := LegGroup(map[string]any{"foo": 1}); ok {
		t.Fatalf("missing group metadata should report absent")
	}
}

func TestSegment(t *testing.T) {
	seg, ok := Segment(map[string]any{
		"from":           "Jakarta",
		"to":             map[string]any{"city_name": "Surabaya"},
		"departure_time": "2025-03-01T08:30:00Z",
		"arrival":        "2025-03-01 18:00:00",
		"operator":       "Bluebird",
	})
	if !ok {
		t.Fatalf("segment should parse")
	}
	if seg.Origin != "Jakarta" || seg.Destination != "Surabaya" || seg.Operator != "Bluebird" {
		t.Fatalf("segment fields wrong: %+v", seg)
	}
	if seg.Departure.IsZero() || seg.Arrival.IsZero() {
		t.Fatalf("segment times should parse: %+v", seg)
	}

	if _, ok := Segment(map[string]any{"from": "Jakarta"}); ok {
		t.Fatalf("segment without destination must fail")
	}
}
