package services

import (
	"fmt"
	"strings"

	"tiket/internal/domain/models"
	"tiket/internal/utils"
)

// PassengerService menormalkan daftar penumpang mentah menjadi daftar
// kanonik yang stabil: satu traveler fisik = satu entri, urutan mengikuti
// kemunculan pertama.
type PassengerService struct {
	RequestID string
}

// Canonicalize melakukan dedup berdasarkan identity key (dokumen > nama >
// seat). Return kedua false berarti jumlah penumpang tidak bisa dipercaya
// (tidak ada satu pun kunci identitas yang bisa diturunkan) dan caller
// harus fallback ke hitungan best-effort.
func (s PassengerService) Canonicalize(raw []models.RawPassenger, expectedCount int) ([]models.Passenger, bool) {
	normalized := make([]models.Passenger, len(raw))
	for i, r := range raw {
		normalized[i] = normalizeRawPassenger(r)
	}

	anyKey := false
	for _, p := range normalized {
		if p.IdentityKey() != "" {
			anyKey = true
			break
		}
	}
	if !anyKey {
		if len(normalized) > 0 {
			utils.LogEvent(s.RequestID, "passenger", "canonicalize_unkeyed",
				fmt.Sprintf("count=%d tanpa identity key, jumlah tidak reliabel", len(normalized)))
		}
		return normalized, false
	}

	// satu kali jalan: kemunculan pertama per kunci menang. Entri tanpa
	// kunci hanya di-drop kalau field-nya persis sama dengan entri berkunci
	// yang sudah disimpan (duplikat round-trip dua blok penumpang).
	out := make([]models.Passenger, 0, len(normalized))
	seenKey := map[string]bool{}
	seenExact := map[string]bool{}
	for _, p := range normalized {
		key := p.IdentityKey()
		sig := exactSignature(p)
		if key != "" {
			if seenKey[key] {
				continue
			}
			seenKey[key] = true
			seenExact[sig] = true
			out = append(out, p)
			continue
		}
		if seenExact[sig] {
			continue
		}
		out = append(out, p)
	}

	if expectedCount > 0 && len(out) > expectedCount {
		out = out[:expectedCount]
	}

	return out, true
}

func exactSignature(p models.Passenger) string {
	return strings.Join([]string{
		utils.NormalizeName(p.GivenName),
		utils.NormalizeName(p.FamilyName),
		strings.TrimSpace(p.Phone),
		strings.ToLower(strings.TrimSpace(p.DocumentNumber)),
		string(p.Category),
		strings.ToUpper(strings.TrimSpace(p.Seat)),
	}, "|")
}

func normalizeRawPassenger(r models.RawPassenger) models.Passenger {
	given := strings.TrimSpace(r.FirstName)
	family := strings.TrimSpace(r.LastName)

	if given == "" && family == "" {
		full := utils.FirstNonEmpty(r.FullName, r.Name)
		parts := strings.Fields(full)
		switch {
		case len(parts) == 1:
			given = parts[0]
		case len(parts) > 1:
			given = strings.Join(parts[:len(parts)-1], " ")
			family = parts[len(parts)-1]
		}
	}

	doc := strings.TrimSpace(r.DocumentNumber)
	if doc == "" || models.IsPlaceholder(doc) {
		if alt := strings.TrimSpace(r.IDNumber); alt != "" && !models.IsPlaceholder(alt) {
			doc = alt
		}
	}
	if models.IsPlaceholder(doc) {
		doc = ""
	}

	return models.Passenger{
		GivenName:      given,
		FamilyName:     family,
		Phone:          strings.TrimSpace(r.Phone),
		DocumentNumber: doc,
		Category:       models.ParseCategory(r.Category),
		Seat:           strings.ToUpper(strings.TrimSpace(r.Seat)),
		Price:          r.Price,
	}
}
