package services

import (
	"testing"

	"tiket/internal/domain/models"
)

func TestCanonicalizeRoundTripDoubleList(t *testing.T) {
	// reservasi pulang-pergi 2 penumpang terekam dua kali (blok per arah)
	raw := []models.RawPassenger{
		{Name: "Budi Santoso", IDNumber: "3201", Seat: "A1"},
		{Name: "Sari Dewi", IDNumber: "3202", Seat: "A2"},
		{Name: "Budi Santoso", IDNumber: "3201", Seat: "B1"},
		{Name: "Sari Dewi", IDNumber: "3202", Seat: "B2"},
	}

	svc := PassengerService{}
	out, reliable := svc.Canonicalize(raw, 0)
	if !reliable {
		t.Fatalf("identity key ada, jumlah harus reliabel")
	}
	if len(out) != 2 {
		t.Fatalf("got %d penumpang, want 2: %+v", len(out), out)
	}
	if out[0].FullName() != "Budi Santoso" || out[1].FullName() != "Sari Dewi" {
		t.Fatalf("urutan kemunculan pertama tidak dipertahankan: %+v", out)
	}
	// kemunculan pertama menang, termasuk seat-nya
	if out[0].Seat != "A1" {
		t.Fatalf("seat kemunculan pertama = %s, want A1", out[0].Seat)
	}
}

func TestCanonicalizeIdempotent(t *testing.T) {
	raw := []models.RawPassenger{
		{FirstName: "Budi", LastName: "Santoso", DocumentNumber: "3201"},
		{FirstName: "Sari", LastName: "Dewi", DocumentNumber: "3202"},
	}

	svc := PassengerService{}
	once, _ := svc.Canonicalize(raw, 0)
	if len(once) != 2 {
		t.Fatalf("got %d, want 2", len(once))
	}

	// hasil kanonik yang diumpankan lagi tidak boleh berubah
	rawAgain := make([]models.RawPassenger, len(once))
	for i, p := range once {
		rawAgain[i] = models.RawPassenger{
			FirstName:      p.GivenName,
			LastName:       p.FamilyName,
			DocumentNumber: p.DocumentNumber,
			Seat:           p.Seat,
		}
	}
	twice, _ := svc.Canonicalize(rawAgain, 0)
	if len(twice) != len(once) {
		t.Fatalf("tidak idempotent: %d vs %d", len(twice), len(once))
	}
	for i := range once {
		if twice[i].FullName() != once[i].FullName() {
			t.Fatalf("entri %d berubah: %q vs %q", i, twice[i].FullName(), once[i].FullName())
		}
	}
}

func TestCanonicalizeNameSplitting(t *testing.T) {
	raw := []models.RawPassenger{{FullName: "Budi Santoso Putra"}}

	out, _ := PassengerService{}.Canonicalize(raw, 0)
	if len(out) != 1 {
		t.Fatalf("got %d, want 1", len(out))
	}
	if out[0].GivenName != "Budi Santoso" || out[0].FamilyName != "Putra" {
		t.Fatalf("split nama = %q / %q", out[0].GivenName, out[0].FamilyName)
	}
}

func TestCanonicalizePlaceholderDocumentIgnored(t *testing.T) {
	// dokumen placeholder tidak boleh jadi kunci; fallback ke nama
	raw := []models.RawPassenger{
		{Name: "Budi Santoso", DocumentNumber: "-"},
		{Name: "Budi Santoso", DocumentNumber: "null"},
	}

	out, reliable := PassengerService{}.Canonicalize(raw, 0)
	if !reliable {
		t.Fatalf("kunci nama ada, harus reliabel")
	}
	if len(out) != 1 {
		t.Fatalf("duplikat nama harus digabung, got %d", len(out))
	}
	if out[0].DocumentNumber != "" {
		t.Fatalf("placeholder dokumen harus dibuang, got %q", out[0].DocumentNumber)
	}
}

func TestCanonicalizeTruncatesToDeclaredCount(t *testing.T) {
	raw := []models.RawPassenger{
		{Name: "Budi", IDNumber: "1"},
		{Name: "Sari", IDNumber: "2"},
		{Name: "Joko", IDNumber: "3"},
	}

	out, _ := PassengerService{}.Canonicalize(raw, 2)
	if len(out) != 2 {
		t.Fatalf("got %d, want 2", len(out))
	}
	if out[0].GivenName != "Budi" || out[1].GivenName != "Sari" {
		t.Fatalf("pemotongan mengubah urutan: %+v", out)
	}
}

func TestCanonicalizeUnkeyedListNotReliable(t *testing.T) {
	raw := []models.RawPassenger{
		{Phone: "0811"},
		{Phone: "0812"},
	}

	out, reliable := PassengerService{}.Canonicalize(raw, 0)
	if reliable {
		t.Fatalf("tanpa identity key jumlah tidak boleh diklaim reliabel")
	}
	// daftar dikembalikan apa adanya untuk hitungan best-effort
	if len(out) != 2 {
		t.Fatalf("got %d, want 2", len(out))
	}
}

func TestCanonicalizeKeylessDroppedOnlyOnExactDuplicate(t *testing.T) {
	raw := []models.RawPassenger{
		{Name: "Budi Santoso", Phone: "0811"},
		{Phone: "0899"}, // tanpa kunci, bukan duplikat siapa pun
		{Name: "Budi Santoso", Phone: "0811"},
	}

	out, reliable := PassengerService{}.Canonicalize(raw, 0)
	if !reliable {
		t.Fatalf("ada kunci nama, harus reliabel")
	}
	if len(out) != 2 {
		t.Fatalf("got %d, want 2 (Budi + entri telepon): %+v", len(out), out)
	}
}
