package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	intconfig "tiket/internal/config"
	intdb "tiket/internal/db"
	"tiket/internal/domain"
	"tiket/internal/domain/models"
)

// CartRepository membaca rekaman reservasi lokal (cart) per PNR.
// Payload penumpang dan trip disimpan sebagai JSON mentah dari upstream
// dan baru dinormalkan oleh engine.
type CartRepository struct {
	DB *sql.DB
}

const cartTable = "carts"

func (r CartRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r CartRepository) GetByReference(reference string) (models.CartRecord, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, cartTable) || strings.TrimSpace(reference) == "" {
		return models.CartRecord{}, domain.NotFoundError{Resource: "cart", Reference: reference}
	}

	var (
		out            models.CartRecord
		passengersJSON []byte
		tripJSON       []byte
		paymentStatus  string
	)
	err := db.QueryRow(`
		SELECT COALESCE(reference,''),
		       COALESCE(purchase_id,''),
		       COALESCE(purchase_uuid,''),
		       COALESCE(passengers_json,'[]'),
		       COALESCE(trip_json,'{}'),
		       COALESCE(total_amount,0),
		       COALESCE(currency,''),
		       COALESCE(passenger_count,0),
		       COALESCE(payment_status,''),
		       COALESCE(booked_by,'')
		FROM carts WHERE reference = ?`, reference).
		Scan(&out.Reference, &out.PurchaseID, &out.PurchaseUUID,
			&passengersJSON, &tripJSON,
			&out.TotalMinorUnits, &out.Currency,
			&out.DeclaredPassengerCount, &paymentStatus, &out.BookedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CartRecord{}, domain.NotFoundError{Resource: "cart", Reference: reference}
		}
		return models.CartRecord{}, err
	}

	// JSON rusak tidak fatal: engine masih bisa jalan dengan bagian yang ada
	_ = json.Unmarshal(passengersJSON, &out.Passengers)
	_ = json.Unmarshal(tripJSON, &out.Trip)

	out.Paid = isPaidStatus(paymentStatus)
	return out, nil
}

func isPaidStatus(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lunas", "paid", "payment paid", "settlement", "success", "sukses", "approve", "approved", "pembayaran sukses":
		return true
	default:
		return false
	}
}
