package services

import (
	"tiket/internal/domain"
	"tiket/internal/domain/models"
	"tiket/internal/extract"
	"tiket/internal/utils"
)

// LegService menurunkan leg berangkat (dan pulang kalau ada) dari data
// trip mentah. Prioritas: metadata grup leg > dua entri itemized > daftar
// segment datar dengan cek rute terbalik.
type LegService struct {
	RequestID string
}

func (s LegService) ResolveLegs(raw models.RawTrip) (models.Itinerary, error) {
	// (1) metadata grup leg eksplisit
	if it, ok := s.fromLegGroups(raw.Segments); ok {
		return it, nil
	}

	// (2) dua entri trip itemized independen
	if it, ok := s.fromEntries(raw.Entries); ok {
		return it, nil
	}

	// (3) daftar segment datar
	if it, ok := s.fromFlatSegments(raw.Segments); ok {
		return it, nil
	}

	return models.Itinerary{}, domain.NotFoundError{Resource: "trip segments"}
}

func (s LegService) fromLegGroups(rawSegs []map[string]any) (models.Itinerary, bool) {
	var outbound, ret []models.Segment
	grouped := false
	for _, rs := range rawSegs {
		group, ok := extract.LegGroup(rs)
		if !ok {
			continue
		}
		seg, ok := extract.Segment(rs)
		if !ok {
			continue
		}
		grouped = true
		if group >= 2 {
			ret = append(ret, seg)
		} else {
			outbound = append(outbound, seg)
		}
	}
	if !grouped || len(outbound) == 0 {
		return models.Itinerary{}, false
	}

	it := models.Itinerary{Outbound: models.Leg{Key: models.LegOutbound, Segments: outbound}}
	if len(ret) > 0 {
		it.Return = &models.Leg{Key: models.LegReturn, Segments: ret}
	}
	return it, true
}

func (s LegService) fromEntries(entries []models.RawTripEntry) (models.Itinerary, bool) {
	if len(entries) == 0 {
		return models.Itinerary{}, false
	}

	legs := make([][]models.Segment, 0, 2)
	for _, entry := range entries {
		segs := parseSegments(entry.Segments)
		if len(segs) > 0 {
			legs = append(legs, segs)
		}
		if len(legs) == 2 {
			break
		}
	}
	if len(legs) == 0 {
		return models.Itinerary{}, false
	}

	it := models.Itinerary{Outbound: models.Leg{Key: models.LegOutbound, Segments: legs[0]}}
	if len(legs) > 1 {
		it.Return = &models.Leg{Key: models.LegReturn, Segments: legs[1]}
	}
	return it, true
}

// fromFlatSegments: semua segment masuk leg berangkat. Segment kedua hanya
// dipromosikan jadi leg pulang kalau rutenya persis membalik rute berangkat
// (case/whitespace-insensitive); selain itu dianggap koneksi antar kota.
func (s LegService) fromFlatSegments(rawSegs []map[string]any) (models.Itinerary, bool) {
	segs := parseSegments(rawSegs)
	if len(segs) == 0 {
		return models.Itinerary{}, false
	}

	if len(segs) == 2 && reversesRoute(segs[0], segs[1]) {
		return models.Itinerary{
			Outbound: models.Leg{Key: models.LegOutbound, Segments: segs[:1]},
			Return:   &models.Leg{Key: models.LegReturn, Segments: segs[1:]},
		}, true
	}

	return models.Itinerary{
		Outbound: models.Leg{Key: models.LegOutbound, Segments: segs},
	}, true
}

func parseSegments(rawSegs []map[string]any) []models.Segment {
	out := make([]models.Segment, 0, len(rawSegs))
	for _, rs := range rawSegs {
		if seg, ok := extract.Segment(rs); ok {
			out = append(out, seg)
		}
	}
	return out
}

func reversesRoute(outbound, candidate models.Segment) bool {
	return utils.NormalizeName(candidate.Origin) == utils.NormalizeName(outbound.Destination) &&
		utils.NormalizeName(candidate.Destination) == utils.NormalizeName(outbound.Origin)
}
