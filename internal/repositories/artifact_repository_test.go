package repositories

import (
	"testing"

	"tiket/internal/domain"
	"tiket/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func expectArtifactTable(mock sqlmock.Sqlmock) {
	mock.ExpectQuery("information_schema\\.tables").WithArgs("ticket_artifacts").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("ticket_artifacts"))
}

func TestArtifactGetMissReportsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectArtifactTable(mock)
	mock.ExpectQuery("SELECT final_pdf").WithArgs("REF-1").
		WillReturnRows(sqlmock.NewRows([]string{"final_pdf", "booked_by", "external_url", "final_updated_at"}))

	repo := ArtifactRepository{DB: db}
	_, err = repo.Get("REF-1", models.ArtifactFinal)
	if !domain.IsNotFound(err) {
		t.Fatalf("baris absen harus NotFound, got %v", err)
	}
}

func TestArtifactGetNullContentIsMiss(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectArtifactTable(mock)
	mock.ExpectQuery("SELECT final_pdf").WithArgs("REF-1").
		WillReturnRows(sqlmock.NewRows([]string{"final_pdf", "booked_by", "external_url", "final_updated_at"}).
			AddRow(nil, "agen", "", nil))

	repo := ArtifactRepository{DB: db}
	_, err = repo.Get("REF-1", models.ArtifactFinal)
	if !domain.IsNotFound(err) {
		t.Fatalf("kolom NULL harus NotFound, got %v", err)
	}
}

func TestArtifactGetCorruptMagicBytes(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectArtifactTable(mock)
	mock.ExpectQuery("SELECT final_pdf").WithArgs("REF-1").
		WillReturnRows(sqlmock.NewRows([]string{"final_pdf", "booked_by", "external_url", "final_updated_at"}).
			AddRow([]byte("<html>error</html>"), "agen", "", nil))

	repo := ArtifactRepository{DB: db}
	_, err = repo.Get("REF-1", models.ArtifactFinal)
	if !domain.IsArtifactCorrupt(err) {
		t.Fatalf("konten tanpa magic PDF harus korup, got %v", err)
	}
}

func TestArtifactGetDefaultPrefersFinal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"hold_pdf", "final_pdf", "final_zip", "booked_by", "external_url", "hold_updated_at", "final_updated_at"}

	expectArtifactTable(mock)
	mock.ExpectQuery("SELECT hold_pdf, final_pdf, final_zip").WithArgs("REF-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow([]byte("%PDF-hold"), []byte("%PDF-final"), nil, "agen", "", nil, nil))

	repo := ArtifactRepository{DB: db}
	art, err := repo.GetDefault("REF-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if art.Kind != models.ArtifactFinal || string(art.Content) != "%PDF-final" {
		t.Fatalf("final harus menang: kind=%s content=%q", art.Kind, art.Content)
	}
}

func TestArtifactGetDefaultHoldSuppressedByArchive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	cols := []string{"hold_pdf", "final_pdf", "final_zip", "booked_by", "external_url", "hold_updated_at", "final_updated_at"}

	// hanya arsip final yang ada: hold tidak boleh disajikan
	expectArtifactTable(mock)
	mock.ExpectQuery("SELECT hold_pdf, final_pdf, final_zip").WithArgs("REF-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow([]byte("%PDF-hold"), nil, []byte("PK zip"), "agen", "", nil, nil))

	repo := ArtifactRepository{DB: db}
	_, err = repo.GetDefault("REF-1")
	if !domain.IsNotFound(err) {
		t.Fatalf("hold setelah arsip final harus miss, got %v", err)
	}
}

func TestArtifactPutHoldGuardedAgainstFinal(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectArtifactTable(mock)
	// guard final ada di statement: IF(final_pdf IS NULL AND final_zip IS NULL, ...)
	mock.ExpectExec("INSERT INTO ticket_artifacts \\(reference, booked_by, external_url, hold_pdf").
		WithArgs("REF-1", "agen", "https://app/api/tickets/REF-1/e-ticket", []byte("%PDF-hold")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := ArtifactRepository{DB: db}
	err = repo.Put("REF-1", models.ArtifactHold, []byte("%PDF-hold"), models.ArtifactMeta{
		BookedBy:    "agen",
		ExternalURL: "https://app/api/tickets/REF-1/e-ticket",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ekspektasi sql: %v", err)
	}
}

func TestArtifactPutFinalClearsHold(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectArtifactTable(mock)
	mock.ExpectExec("INSERT INTO ticket_artifacts \\(reference, booked_by, external_url, final_pdf").
		WithArgs("REF-1", "agen", "", []byte("%PDF-final")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := ArtifactRepository{DB: db}
	err = repo.Put("REF-1", models.ArtifactFinal, []byte("%PDF-final"), models.ArtifactMeta{BookedBy: "agen"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ekspektasi sql: %v", err)
	}
}

func TestArtifactPutRejectsBadContent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	repo := ArtifactRepository{DB: db}

	expectArtifactTable(mock)
	if err := repo.Put("REF-1", models.ArtifactFinal, nil, models.ArtifactMeta{}); !domain.IsArtifactCorrupt(err) {
		t.Fatalf("konten kosong harus ditolak korup, got %v", err)
	}

	expectArtifactTable(mock)
	if err := repo.Put("REF-1", models.ArtifactFinal, []byte("bukan pdf"), models.ArtifactMeta{}); !domain.IsArtifactCorrupt(err) {
		t.Fatalf("konten bukan PDF harus ditolak korup, got %v", err)
	}
}
