package services

import (
	"testing"

	"tiket/internal/domain"
	"tiket/internal/domain/models"
)

func seg(origin, destination string, extra map[string]any) map[string]any {
	m := map[string]any{"origin": origin, "destination": destination}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func TestResolveLegsFromGroupMetadata(t *testing.T) {
	raw := models.RawTrip{Segments: []map[string]any{
		seg("Jakarta", "Bandung", map[string]any{"leg": 1, "departure": "2025-03-01 07:00:00"}),
		seg("Bandung", "Jakarta", map[string]any{"leg": 2, "departure": "2025-03-03 17:00:00"}),
	}}

	it, err := LegService{}.ResolveLegs(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !it.HasReturn() {
		t.Fatalf("leg pulang tidak terdeteksi dari metadata grup")
	}
	if it.Outbound.Origin() != "Jakarta" || it.Return.Origin() != "Bandung" {
		t.Fatalf("arah tertukar: %+v", it)
	}
}

func TestResolveLegsGroupByDirectionName(t *testing.T) {
	raw := models.RawTrip{Segments: []map[string]any{
		seg("Jakarta", "Bandung", map[string]any{"direction": "berangkat"}),
		seg("Bandung", "Jakarta", map[string]any{"direction": "pulang"}),
	}}

	it, err := LegService{}.ResolveLegs(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !it.HasReturn() {
		t.Fatalf("grup bernama pulang harus jadi leg pulang")
	}
}

func TestResolveLegsFromItemizedEntries(t *testing.T) {
	raw := models.RawTrip{Entries: []models.RawTripEntry{
		{Segments: []map[string]any{seg("Jakarta", "Semarang", nil)}},
		{Segments: []map[string]any{seg("Semarang", "Jakarta", nil)}},
	}}

	it, err := LegService{}.ResolveLegs(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !it.HasReturn() {
		t.Fatalf("dua entri itemized harus jadi dua leg")
	}
	if it.Outbound.Destination() != "Semarang" {
		t.Fatalf("leg berangkat salah: %+v", it.Outbound)
	}
}

func TestResolveLegsReversedFlatSegments(t *testing.T) {
	raw := models.RawTrip{Segments: []map[string]any{
		seg("Jakarta", "Bandung", nil),
		seg("bandung ", " JAKARTA", nil), // case/spasi tidak boleh berpengaruh
	}}

	it, err := LegService{}.ResolveLegs(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !it.HasReturn() {
		t.Fatalf("rute terbalik harus dipromosikan jadi leg pulang")
	}
}

func TestResolveLegsConnectionStaysOutbound(t *testing.T) {
	// segment kedua melanjutkan perjalanan, bukan membalik rute
	raw := models.RawTrip{Segments: []map[string]any{
		seg("Jakarta", "Bandung", nil),
		seg("Bandung", "Yogyakarta", nil),
	}}

	it, err := LegService{}.ResolveLegs(raw)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if it.HasReturn() {
		t.Fatalf("koneksi antar kota tidak boleh jadi leg pulang")
	}
	if len(it.Outbound.Segments) != 2 {
		t.Fatalf("kedua segment harus masuk leg berangkat, got %d", len(it.Outbound.Segments))
	}
	if it.Outbound.Destination() != "Yogyakarta" {
		t.Fatalf("tujuan akhir = %s", it.Outbound.Destination())
	}
}

func TestResolveLegsNothingParsable(t *testing.T) {
	raw := models.RawTrip{Segments: []map[string]any{
		{"origin": "Jakarta"}, // tanpa destination
	}}

	_, err := LegService{}.ResolveLegs(raw)
	if !domain.IsNotFound(err) {
		t.Fatalf("segment tidak lengkap harus NotFound, got %v", err)
	}
}
