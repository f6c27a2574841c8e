package services

import (
	"fmt"
	"sort"

	"tiket/internal/domain"
	"tiket/internal/domain/models"
)

// PriceService membagi satu total ke share per penumpang (dan per leg)
// dalam minor unit, tanpa bocor pembulatan: sum(shares) == total, selalu.
type PriceService struct{}

// Allocate memakai metode largest-remainder (Hamilton): share dasar
// floor(total*w/W), sisa unit dibagikan satu-satu ke fractional remainder
// terbesar, seri dipecah berdasarkan indeks naik.
func (PriceService) Allocate(total int64, weights []int64) ([]int64, error) {
	if total < 0 {
		return nil, domain.AllocationError{Msg: fmt.Sprintf("total negatif: %d", total)}
	}
	if len(weights) == 0 {
		return nil, domain.AllocationError{Msg: "bobot alokasi kosong"}
	}

	var sumW int64
	for i, w := range weights {
		if w < 0 {
			return nil, domain.AllocationError{Msg: fmt.Sprintf("bobot negatif di indeks %d", i)}
		}
		sumW += w
	}

	// semua bobot nol -> bagi rata dengan metode yang sama
	if sumW == 0 {
		weights = make([]int64, len(weights))
		for i := range weights {
			weights[i] = 1
		}
		sumW = int64(len(weights))
	}

	shares := make([]int64, len(weights))
	type rem struct {
		idx  int
		frac int64
	}
	rems := make([]rem, len(weights))

	var assigned int64
	for i, w := range weights {
		shares[i] = total * w / sumW
		rems[i] = rem{idx: i, frac: total * w % sumW}
		assigned += shares[i]
	}

	sort.Slice(rems, func(a, b int) bool {
		if rems[a].frac != rems[b].frac {
			return rems[a].frac > rems[b].frac
		}
		return rems[a].idx < rems[b].idx
	})

	// leftover selalu < len(weights) karena tiap fractional part < 1 unit
	leftover := total - assigned
	for i := int64(0); i < leftover; i++ {
		shares[rems[i].idx]++
	}

	return shares, nil
}

// SplitAcrossLegs memecah total per penumpang ke dua leg.
// Berangkat dapat bagian yang lebih besar saat total ganjil (51 -> 26/25).
func (PriceService) SplitAcrossLegs(perPassenger int64, hasReturn bool) (int64, int64) {
	if !hasReturn {
		return perPassenger, 0
	}
	ret := perPassenger / 2
	return perPassenger - ret, ret
}

// AmountsArePerLeg mendeteksi apakah nominal per penumpang dari upstream
// sudah harga per leg: grand total lebih dekat ke 2x jumlah nominal
// daripada ke jumlahnya sendiri, dengan toleransi 1 minor unit per
// penumpang. Heuristik, bukan klasifikasi pasti (tidak ada flag upstream).
func (PriceService) AmountsArePerLeg(grandTotal int64, perPassenger []int64) bool {
	if grandTotal <= 0 || len(perPassenger) == 0 {
		return false
	}
	var sum int64
	for _, a := range perPassenger {
		sum += a
	}
	if sum <= 0 {
		return false
	}
	tol := int64(len(perPassenger))
	if abs64(grandTotal-sum) <= tol {
		return false
	}
	return abs64(grandTotal-2*sum) <= tol
}

// DeriveWeights menurunkan bobot alokasi dengan prioritas:
// (a) harga per penumpang langsung di record penumpang,
// (b) harga per item purchase kalau jumlah item = jumlah penumpang,
// (c) harga satuan per kategori dari agregat adult/child purchase,
// (d) bobot seragam.
func (PriceService) DeriveWeights(passengers []models.Passenger, purchase models.PurchaseRecord) []int64 {
	uniform := make([]int64, len(passengers))
	for i := range uniform {
		uniform[i] = 1
	}
	if len(passengers) == 0 {
		return uniform
	}

	// (a) harga langsung di penumpang
	direct := make([]int64, len(passengers))
	allDirect := true
	for i, p := range passengers {
		if p.Price <= 0 {
			allDirect = false
			break
		}
		direct[i] = p.Price
	}
	if allDirect {
		return direct
	}

	// (b) item purchase dengan jumlah cocok
	items := purchase.TicketItems()
	if len(items) == len(passengers) {
		fromItems := make([]int64, len(items))
		ok := true
		for i, it := range items {
			if it.Price <= 0 {
				ok = false
				break
			}
			fromItems[i] = it.Price
		}
		if ok {
			return fromItems
		}
	}

	// (c) harga satuan per kategori
	var adultUnit, childUnit int64
	if purchase.AdultCount > 0 && purchase.AdultTotal > 0 {
		adultUnit = purchase.AdultTotal / int64(purchase.AdultCount)
	}
	if purchase.ChildCount > 0 && purchase.ChildTotal > 0 {
		childUnit = purchase.ChildTotal / int64(purchase.ChildCount)
	}
	if adultUnit > 0 || childUnit > 0 {
		byCategory := make([]int64, len(passengers))
		ok := true
		for i, p := range passengers {
			switch p.Category {
			case models.CategoryChild:
				byCategory[i] = childUnit
			default:
				byCategory[i] = adultUnit
			}
			if byCategory[i] <= 0 {
				ok = false
				break
			}
		}
		if ok {
			return byCategory
		}
	}

	// (d) terakhir: rata
	return uniform
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
