package models

import "strings"

type PassengerCategory string

const (
	CategoryAdult PassengerCategory = "adult"
	CategoryChild PassengerCategory = "child"
)

// RawPassenger adalah bentuk longgar dari upstream (cart / payload pihak
// ketiga). Field nama bisa datang terpisah atau gabungan, dokumen bisa
// kosong atau placeholder.
type RawPassenger struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	FullName       string `json:"full_name"`
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	DocumentNumber string `json:"document_number"`
	IDNumber       string `json:"id_number"`
	Category       string `json:"category"`
	Seat           string `json:"seat"`
	Price          int64  `json:"price"`
}

// Passenger adalah bentuk kanonik setelah normalisasi.
type Passenger struct {
	GivenName      string
	FamilyName     string
	Phone          string
	DocumentNumber string
	Category       PassengerCategory
	Seat           string
	// Price per penumpang dari upstream (minor unit), 0 kalau tidak ada.
	Price int64
}

func (p Passenger) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.GivenName) + " " + strings.TrimSpace(p.FamilyName))
}

// IdentityKey menurunkan kunci identitas untuk dedup:
// dokumen (jika bukan placeholder) > nama lengkap ternormalisasi > seat.
// Kunci kosong berarti identitas tidak bisa diturunkan.
func (p Passenger) IdentityKey() string {
	if doc := strings.TrimSpace(p.DocumentNumber); doc != "" && !IsPlaceholder(doc) {
		return "doc:" + strings.ToLower(doc)
	}
	name := strings.ToLower(strings.Join(strings.Fields(p.GivenName+" "+p.FamilyName), " "))
	if name != "" {
		return "name:" + name
	}
	if seat := strings.TrimSpace(p.Seat); seat != "" && !IsPlaceholder(seat) {
		return "seat:" + strings.ToUpper(seat)
	}
	return ""
}

// IsPlaceholder mengenali token pengganti yang tidak boleh dianggap nilai.
func IsPlaceholder(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-", "—", "–", "null", "undefined", "n/a", "0":
		return true
	}
	return false
}

// ParseCategory memetakan kategori upstream yang longgar ke adult/child.
func ParseCategory(raw string) PassengerCategory {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "child", "anak", "kid", "infant", "chd":
		return CategoryChild
	default:
		return CategoryAdult
	}
}
