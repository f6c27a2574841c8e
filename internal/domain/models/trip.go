package models

import "time"

type LegKey string

const (
	LegOutbound LegKey = "outbound"
	LegReturn   LegKey = "return"
)

// Segment adalah perpindahan atomik: satu origin, satu destination.
type Segment struct {
	Origin      string
	Destination string
	Departure   time.Time
	Arrival     time.Time
	Operator    string
}

// Leg adalah perjalanan satu arah, bisa lebih dari satu segment.
type Leg struct {
	Key      LegKey
	Segments []Segment
}

func (l Leg) Origin() string {
	if len(l.Segments) == 0 {
		return ""
	}
	return l.Segments[0].Origin
}

func (l Leg) Destination() string {
	if len(l.Segments) == 0 {
		return ""
	}
	return l.Segments[len(l.Segments)-1].Destination
}

func (l Leg) Departure() time.Time {
	if len(l.Segments) == 0 {
		return time.Time{}
	}
	return l.Segments[0].Departure
}

func (l Leg) Arrival() time.Time {
	if len(l.Segments) == 0 {
		return time.Time{}
	}
	return l.Segments[len(l.Segments)-1].Arrival
}

// Itinerary: selalu satu leg berangkat, pulang opsional.
type Itinerary struct {
	Outbound Leg
	Return   *Leg
}

func (it Itinerary) Legs() []Leg {
	legs := []Leg{it.Outbound}
	if it.Return != nil {
		legs = append(legs, *it.Return)
	}
	return legs
}

func (it Itinerary) HasReturn() bool { return it.Return != nil }

// RawTrip membawa bentuk upstream apa adanya: entri itemized per arah
// dan/atau daftar segment datar; field di dalam segment tidak seragam,
// dibaca lewat package extract.
type RawTrip struct {
	Entries  []RawTripEntry   `json:"entries"`
	Segments []map[string]any `json:"segments"`
}

type RawTripEntry struct {
	Segments []map[string]any `json:"segments"`
}
