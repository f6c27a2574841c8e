package models

// PurchaseRecord adalah payload pembelian dari pihak ketiga.
// Bisa stale sesaat setelah pembayaran; caller boleh refresh terbatas.
type PurchaseRecord struct {
	ID   string `json:"id"`
	UUID string `json:"uuid"`

	Items []PurchaseItem `json:"items"`

	// Agregat per kategori, dipakai untuk bobot alokasi prioritas (c).
	AdultTotal int64 `json:"adult_total"`
	ChildTotal int64 `json:"child_total"`
	AdultCount int   `json:"adult_count"`
	ChildCount int   `json:"child_count"`

	GrandTotal int64 `json:"grand_total"`
}

type PurchaseItem struct {
	Kind              string `json:"kind"`
	PassengerName     string `json:"passenger_name"`
	ReservationNumber string `json:"reservation_number"`
	Price             int64  `json:"price"`
}

// TicketItems memfilter line item bertanda tiket.
func (p PurchaseRecord) TicketItems() []PurchaseItem {
	out := make([]PurchaseItem, 0, len(p.Items))
	for _, it := range p.Items {
		if isTicketKind(it.Kind) {
			out = append(out, it)
		}
	}
	return out
}

func isTicketKind(kind string) bool {
	switch normalizeKind(kind) {
	case "ticket", "tiket", "eticket", "e-ticket":
		return true
	}
	return false
}

func normalizeKind(kind string) string {
	out := make([]rune, 0, len(kind))
	for _, r := range kind {
		if r == ' ' || r == '\t' {
			continue
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}
