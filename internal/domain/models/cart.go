package models

// CartRecord adalah rekaman reservasi lokal, kunci semua komponen engine.
type CartRecord struct {
	Reference    string // PNR
	PurchaseID   string
	PurchaseUUID string

	Passengers []RawPassenger
	Trip       RawTrip

	TotalMinorUnits int64
	Currency        string

	// Jumlah penumpang yang dideklarasikan upstream; bisa tidak akurat.
	DeclaredPassengerCount int

	Paid     bool
	BookedBy string
}
