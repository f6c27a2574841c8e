package services

import (
	"fmt"
	"strings"
	"time"

	"tiket/internal/domain"
	"tiket/internal/domain/models"
	"tiket/internal/utils"
)

// PurchaseSource adalah pembacaan idempotent record pembelian pihak
// ketiga; bisa stale sesaat setelah pembayaran selesai.
type PurchaseSource interface {
	GetPurchase(purchaseID, purchaseUUID string) (models.PurchaseRecord, error)
}

// TicketNumberService memetakan (penumpang, leg) ke nomor tiket terbitan
// pihak ketiga. Layout item di purchase record tidak seragam (blok per
// leg, interleaved, atau bergeser satu), jadi resolusi mencoba beberapa
// posisi kandidat dengan urutan tetap.
type TicketNumberService struct {
	Source    PurchaseSource
	RequestID string

	// MaxAttempts total percobaan resolve (default 4), backoff linear.
	MaxAttempts int
	Backoff     time.Duration
	Sleep       func(time.Duration)
}

func (s TicketNumberService) maxAttempts() int {
	if s.MaxAttempts > 0 {
		return s.MaxAttempts
	}
	return 4
}

func (s TicketNumberService) backoff() time.Duration {
	if s.Backoff > 0 {
		return s.Backoff
	}
	return 500 * time.Millisecond
}

func (s TicketNumberService) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
		return
	}
	time.Sleep(d)
}

// Resolve mencari nomor tiket di purchase record yang sudah ada di tangan.
func (s TicketNumberService) Resolve(purchase models.PurchaseRecord, passengerIndex int, leg models.LegKey, passengerCount int, p models.Passenger) (string, bool) {
	items := purchase.TicketItems()
	if len(items) == 0 || passengerIndex < 0 {
		return "", false
	}

	// 1) cocokkan nama penumpang dengan nama di item tiket
	if target := utils.NormalizeName(p.FullName()); target != "" {
		matches := make([]int, 0, 2)
		for i, it := range items {
			if utils.NormalizeName(it.PassengerName) == target {
				matches = append(matches, i)
			}
		}
		switch len(matches) {
		case 1:
			// satu match: pakai untuk leg mana pun
			if num, ok := validNumber(items[matches[0]].ReservationNumber); ok {
				return num, true
			}
		case 2:
			idx := matches[0]
			if leg == models.LegReturn {
				idx = matches[1]
			}
			if num, ok := validNumber(items[idx].ReservationNumber); ok {
				return num, true
			}
		}
		// 0 atau >2 match: nama tidak bisa diandalkan, lanjut posisional
	}

	// 2) fallback posisional, urutan kandidat tetap per leg
	var candidates []int
	if leg == models.LegReturn {
		// blok (semua berangkat lalu semua pulang) > interleaved > geser satu
		candidates = []int{passengerIndex + passengerCount, passengerIndex*2 + 1, passengerIndex + 1}
	} else {
		candidates = []int{passengerIndex, passengerIndex * 2}
	}
	for _, idx := range candidates {
		if idx < 0 || idx >= len(items) {
			continue
		}
		if num, ok := validNumber(items[idx].ReservationNumber); ok {
			return num, true
		}
	}

	return "", false
}

// ResolveWithRefresh mencoba Resolve, lalu refresh purchase record dengan
// backoff linear sampai batas percobaan. Gagal total = error keras:
// artifact tidak boleh terbit dengan nomor tiket kosong atau karangan.
func (s TicketNumberService) ResolveWithRefresh(reference string, purchase models.PurchaseRecord, purchaseID, purchaseUUID string, passengerIndex int, leg models.LegKey, passengerCount int, p models.Passenger) (string, error) {
	if num, ok := s.Resolve(purchase, passengerIndex, leg, passengerCount, p); ok {
		return num, nil
	}

	var lastErr error
	for attempt := 2; attempt <= s.maxAttempts(); attempt++ {
		s.sleep(time.Duration(attempt-1) * s.backoff())

		if s.Source == nil {
			break
		}
		refreshed, err := s.Source.GetPurchase(purchaseID, purchaseUUID)
		if err != nil {
			lastErr = err
			utils.LogEvent(s.RequestID, "ticketnumber", "refresh_failed",
				fmt.Sprintf("reference=%s attempt=%d err=%v", reference, attempt, err))
			continue
		}
		if num, ok := s.Resolve(refreshed, passengerIndex, leg, passengerCount, p); ok {
			return num, nil
		}
	}

	utils.LogEvent(s.RequestID, "ticketnumber", "missing",
		fmt.Sprintf("reference=%s passenger=%d leg=%s", reference, passengerIndex, leg))
	return "", domain.TicketNumberMissingError{
		Reference:      reference,
		PassengerIndex: passengerIndex,
		Leg:            string(leg),
		Err:            lastErr,
	}
}

// validNumber menolak nilai kosong dan token placeholder.
func validNumber(raw string) (string, bool) {
	num := strings.TrimSpace(raw)
	if num == "" || models.IsPlaceholder(num) {
		return "", false
	}
	return num, true
}
