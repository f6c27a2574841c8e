package render

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skip2/go-qrcode"

	"tiket/internal/domain/models"
)

// QRSigner menandatangani payload verifikasi yang ditanam sebagai QR di
// e-ticket final, supaya scanner bisa verifikasi offline.
type QRSigner struct {
	Secret []byte
	Now    func() time.Time
}

type qrClaims struct {
	TicketNumber string `json:"tn"`
	Leg          string `json:"leg"`
	jwt.RegisteredClaims
}

func (s QRSigner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Token membuat token HS256 kompak berisi PNR, nomor tiket, dan leg.
func (s QRSigner) Token(reference, ticketNumber string, leg models.LegKey) (string, error) {
	if len(s.Secret) == 0 {
		return "", fmt.Errorf("qr signing secret kosong")
	}
	claims := qrClaims{
		TicketNumber: ticketNumber,
		Leg:          string(leg),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  reference,
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify membongkar token QR; dipakai jalur scanner.
func (s QRSigner) Verify(token string) (reference, ticketNumber string, leg models.LegKey, err error) {
	var claims qrClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("metode tanda tangan tidak dikenal: %v", t.Header["alg"])
		}
		return s.Secret, nil
	})
	if err != nil {
		return "", "", "", err
	}
	if !parsed.Valid {
		return "", "", "", fmt.Errorf("token QR tidak valid")
	}
	return claims.Subject, claims.TicketNumber, models.LegKey(claims.Leg), nil
}

// EncodePNG merender token jadi PNG QR untuk ditanam di PDF.
func (QRSigner) EncodePNG(token string) ([]byte, error) {
	return qrcode.Encode(token, qrcode.Medium, 256)
}
