package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	intconfig "tiket/internal/config"
	intdb "tiket/internal/db"
	"tiket/internal/domain"
	"tiket/internal/domain/models"
	"tiket/internal/render"
)

// ArtifactRepository adalah cache artifact cetak per PNR: satu baris per
// reference, satu kolom BLOB per jenis. Aturan precedence per jenis
// (hold < final < final_archive) dijaga di level statement SQL, bukan
// wall-clock: hold yang datang telat tidak pernah menimpa final.
type ArtifactRepository struct {
	DB *sql.DB
}

const artifactTable = "ticket_artifacts"

func (r ArtifactRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureSchema membuat tabel artifact kalau belum ada; dipanggil saat boot.
func (r ArtifactRepository) EnsureSchema() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db tidak tersedia untuk schema ticket_artifacts")
	}
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ticket_artifacts (
			reference          VARCHAR(64)  NOT NULL PRIMARY KEY,
			booked_by          VARCHAR(191) NOT NULL DEFAULT '',
			external_url       VARCHAR(512) NOT NULL DEFAULT '',
			hold_pdf           LONGBLOB     NULL,
			final_pdf          LONGBLOB     NULL,
			final_zip          LONGBLOB     NULL,
			hold_updated_at    DATETIME     NULL,
			final_updated_at   DATETIME     NULL,
			archive_updated_at DATETIME     NULL
		)`)
	return err
}

// Get membaca satu jenis artifact. Konten NULL atau baris absen = miss.
// PDF yang tidak lolos magic bytes dilaporkan korup supaya caller
// regenerate, bukan disajikan.
func (r ArtifactRepository) Get(reference string, kind models.ArtifactKind) (models.TicketArtifact, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, artifactTable) {
		return models.TicketArtifact{}, domain.NotFoundError{Resource: "artifact", Reference: reference}
	}

	col, tsCol, err := columnsForKind(kind)
	if err != nil {
		return models.TicketArtifact{}, err
	}

	var (
		content  []byte
		bookedBy string
		extURL   string
		updated  sql.NullTime
	)
	q := fmt.Sprintf(`
		SELECT %s, COALESCE(booked_by,''), COALESCE(external_url,''), %s
		FROM ticket_artifacts WHERE reference = ?`, col, tsCol)
	if err := db.QueryRow(q, reference).Scan(&content, &bookedBy, &extURL, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TicketArtifact{}, domain.NotFoundError{Resource: "artifact", Reference: reference}
		}
		return models.TicketArtifact{}, err
	}
	if len(content) == 0 {
		return models.TicketArtifact{}, domain.NotFoundError{Resource: "artifact", Reference: reference}
	}

	if kind != models.ArtifactFinalArchive && !render.IsPDFContent(content) {
		return models.TicketArtifact{}, domain.ArtifactCorruptError{
			Reference: reference, Kind: string(kind), Reason: "magic bytes PDF tidak ditemukan",
		}
	}

	art := models.TicketArtifact{
		Reference:   reference,
		Kind:        kind,
		Content:     content,
		BookedBy:    bookedBy,
		ExternalURL: extURL,
	}
	if updated.Valid {
		art.UpdatedAt = updated.Time
	}
	return art, nil
}

// GetDefault mengikuti precedence baca tanpa jenis eksplisit:
// final dulu, hold hanya kalau final (dan arsip) belum ada.
func (r ArtifactRepository) GetDefault(reference string) (models.TicketArtifact, error) {
	db := r.db()
	if db == nil || !intdb.HasTable(db, artifactTable) {
		return models.TicketArtifact{}, domain.NotFoundError{Resource: "artifact", Reference: reference}
	}

	var (
		holdPDF, finalPDF, finalZip []byte
		bookedBy, extURL            string
		holdAt, finalAt             sql.NullTime
	)
	err := db.QueryRow(`
		SELECT hold_pdf, final_pdf, final_zip,
		       COALESCE(booked_by,''), COALESCE(external_url,''),
		       hold_updated_at, final_updated_at
		FROM ticket_artifacts WHERE reference = ?`, reference).
		Scan(&holdPDF, &finalPDF, &finalZip, &bookedBy, &extURL, &holdAt, &finalAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TicketArtifact{}, domain.NotFoundError{Resource: "artifact", Reference: reference}
		}
		return models.TicketArtifact{}, err
	}

	if len(finalPDF) > 0 {
		if !render.IsPDFContent(finalPDF) {
			return models.TicketArtifact{}, domain.ArtifactCorruptError{
				Reference: reference, Kind: string(models.ArtifactFinal), Reason: "magic bytes PDF tidak ditemukan",
			}
		}
		art := models.TicketArtifact{
			Reference: reference, Kind: models.ArtifactFinal, Content: finalPDF,
			BookedBy: bookedBy, ExternalURL: extURL,
		}
		if finalAt.Valid {
			art.UpdatedAt = finalAt.Time
		}
		return art, nil
	}

	// hold tidak pernah disajikan lagi begitu artifact final ada
	if len(holdPDF) > 0 && len(finalZip) == 0 {
		if !render.IsPDFContent(holdPDF) {
			return models.TicketArtifact{}, domain.ArtifactCorruptError{
				Reference: reference, Kind: string(models.ArtifactHold), Reason: "magic bytes PDF tidak ditemukan",
			}
		}
		art := models.TicketArtifact{
			Reference: reference, Kind: models.ArtifactHold, Content: holdPDF,
			BookedBy: bookedBy, ExternalURL: extURL,
		}
		if holdAt.Valid {
			art.UpdatedAt = holdAt.Time
		}
		return art, nil
	}

	return models.TicketArtifact{}, domain.NotFoundError{Resource: "artifact", Reference: reference}
}

// GetArchive membaca arsip dan membandingkan jumlah member terhadap
// jumlah yang diharapkan (legs x penumpang); selisih = arsip basi.
func (r ArtifactRepository) GetArchive(reference string, expectedMembers int) (models.TicketArtifact, error) {
	art, err := r.Get(reference, models.ArtifactFinalArchive)
	if err != nil {
		return models.TicketArtifact{}, err
	}

	count, err := render.ArchiveMemberCount(art.Content)
	if err != nil {
		return models.TicketArtifact{}, domain.ArtifactCorruptError{
			Reference: reference, Kind: string(models.ArtifactFinalArchive),
			Reason: fmt.Sprintf("arsip tidak terbaca: %v", err),
		}
	}
	if expectedMembers > 0 && count != expectedMembers {
		return models.TicketArtifact{}, domain.ArtifactCorruptError{
			Reference: reference, Kind: string(models.ArtifactFinalArchive),
			Reason: fmt.Sprintf("member arsip %d, diharapkan %d", count, expectedMembers),
		}
	}
	return art, nil
}

// Put adalah upsert per reference. Menulis final/final_archive sekaligus
// menghapus hold di statement yang sama; menulis hold dicek ulang
// terhadap keberadaan final di dalam statement (bukan hanya saat baca),
// jadi urutan tulis antar proses tidak bisa merusak transisi satu arah.
func (r ArtifactRepository) Put(reference string, kind models.ArtifactKind, content []byte, meta models.ArtifactMeta) error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db tidak tersedia untuk tulis artifact")
	}
	if !intdb.HasTable(db, artifactTable) {
		return fmt.Errorf("tabel ticket_artifacts belum tersedia, jalankan EnsureSchema dulu")
	}
	if reference == "" {
		return fmt.Errorf("reference kosong")
	}
	if len(content) == 0 {
		return domain.ArtifactCorruptError{Reference: reference, Kind: string(kind), Reason: "konten kosong"}
	}
	if kind != models.ArtifactFinalArchive && !render.IsPDFContent(content) {
		return domain.ArtifactCorruptError{Reference: reference, Kind: string(kind), Reason: "konten bukan PDF"}
	}

	switch kind {
	case models.ArtifactHold:
		_, err := db.Exec(`
			INSERT INTO ticket_artifacts (reference, booked_by, external_url, hold_pdf, hold_updated_at)
			VALUES (?, ?, ?, ?, NOW())
			ON DUPLICATE KEY UPDATE
				hold_pdf        = IF(final_pdf IS NULL AND final_zip IS NULL, VALUES(hold_pdf), hold_pdf),
				hold_updated_at = IF(final_pdf IS NULL AND final_zip IS NULL, NOW(), hold_updated_at),
				booked_by       = IF(final_pdf IS NULL AND final_zip IS NULL, VALUES(booked_by), booked_by),
				external_url    = IF(final_pdf IS NULL AND final_zip IS NULL, VALUES(external_url), external_url)`,
			reference, meta.BookedBy, meta.ExternalURL, content)
		return err

	case models.ArtifactFinal:
		_, err := db.Exec(`
			INSERT INTO ticket_artifacts (reference, booked_by, external_url, final_pdf, final_updated_at)
			VALUES (?, ?, ?, ?, NOW())
			ON DUPLICATE KEY UPDATE
				final_pdf        = VALUES(final_pdf),
				final_updated_at = NOW(),
				hold_pdf         = NULL,
				hold_updated_at  = NULL,
				booked_by        = VALUES(booked_by),
				external_url     = VALUES(external_url)`,
			reference, meta.BookedBy, meta.ExternalURL, content)
		return err

	case models.ArtifactFinalArchive:
		_, err := db.Exec(`
			INSERT INTO ticket_artifacts (reference, booked_by, external_url, final_zip, archive_updated_at)
			VALUES (?, ?, ?, ?, NOW())
			ON DUPLICATE KEY UPDATE
				final_zip          = VALUES(final_zip),
				archive_updated_at = NOW(),
				hold_pdf           = NULL,
				hold_updated_at    = NULL,
				booked_by          = VALUES(booked_by),
				external_url       = VALUES(external_url)`,
			reference, meta.BookedBy, meta.ExternalURL, content)
		return err
	}

	return fmt.Errorf("jenis artifact tidak dikenal: %s", kind)
}

func columnsForKind(kind models.ArtifactKind) (string, string, error) {
	switch kind {
	case models.ArtifactHold:
		return "hold_pdf", "hold_updated_at", nil
	case models.ArtifactFinal:
		return "final_pdf", "final_updated_at", nil
	case models.ArtifactFinalArchive:
		return "final_zip", "archive_updated_at", nil
	}
	return "", "", fmt.Errorf("jenis artifact tidak dikenal: %s", kind)
}
