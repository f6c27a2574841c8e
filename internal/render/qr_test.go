package render

import (
	"bytes"
	"testing"

	"tiket/internal/domain/models"
)

func TestQRTokenRoundTrip(t *testing.T) {
	signer := QRSigner{Secret: []byte("rahasia-test")}

	token, err := signer.Token("REF-9", "TN-123", models.LegReturn)
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	ref, num, leg, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ref != "REF-9" || num != "TN-123" || leg != models.LegReturn {
		t.Fatalf("claims = %s / %s / %s", ref, num, leg)
	}
}

func TestQRVerifyRejectsWrongSecret(t *testing.T) {
	token, err := QRSigner{Secret: []byte("rahasia-a")}.Token("REF-9", "TN-123", models.LegOutbound)
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if _, _, _, err := (QRSigner{Secret: []byte("rahasia-b")}).Verify(token); err == nil {
		t.Fatalf("secret salah harus gagal verifikasi")
	}
}

func TestQRTokenRequiresSecret(t *testing.T) {
	if _, err := (QRSigner{}).Token("REF", "TN", models.LegOutbound); err == nil {
		t.Fatalf("secret kosong harus ditolak")
	}
}

func TestEncodePNG(t *testing.T) {
	png, err := QRSigner{}.EncodePNG("payload")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatalf("hasil bukan PNG")
	}
}
