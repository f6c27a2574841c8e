package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"tiket/internal/domain/models"
	"tiket/internal/utils"
)

// TicketDoc adalah satu dokumen cetak untuk satu (penumpang, leg).
type TicketDoc struct {
	Title     string
	Reference string

	PassengerName  string
	PassengerPhone string
	Seat           string
	Category       string

	Route     string
	LegLabel  string
	Departure time.Time
	Arrival   time.Time
	Operator  string

	// Kosong untuk dokumen hold; wajib terisi untuk e-ticket final.
	TicketNumber string

	Amount   int64
	Currency string

	BookedBy string
	Note     string

	// PNG QR verifikasi, opsional (hanya final).
	QRPNG []byte
}

// Renderer adalah kolaborator rendering; gagal atau bytes kosong harus
// diperlakukan retryable-sekali oleh caller.
type Renderer interface {
	RenderPDF(docs []TicketDoc) ([]byte, error)
}

// PDFRenderer merender satu halaman per dokumen dengan gofpdf.
type PDFRenderer struct{}

func (PDFRenderer) RenderPDF(docs []TicketDoc) ([]byte, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("tidak ada dokumen untuk dirender")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(docs[0].Title, false)

	for i, d := range docs {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 18)
		pdf.Cell(0, 10, d.Title)
		pdf.Ln(12)

		pdf.SetFont("Helvetica", "", 12)
		lines := []string{
			fmt.Sprintf("Kode Booking   : %s", safe(d.Reference, "-")),
			fmt.Sprintf("Nama Penumpang : %s", safe(d.PassengerName, "-")),
			fmt.Sprintf("No HP          : %s", safe(d.PassengerPhone, "-")),
			fmt.Sprintf("Kategori       : %s", safe(d.Category, "-")),
			fmt.Sprintf("Seat           : %s", safe(d.Seat, "-")),
			fmt.Sprintf("Arah           : %s", safe(d.LegLabel, "-")),
			fmt.Sprintf("Rute           : %s", safe(d.Route, "-")),
			fmt.Sprintf("Berangkat      : %s", formatInstant(d.Departure)),
			fmt.Sprintf("Tiba           : %s", formatInstant(d.Arrival)),
			fmt.Sprintf("Operator       : %s", safe(d.Operator, "-")),
		}
		if d.TicketNumber != "" {
			lines = append(lines, fmt.Sprintf("Nomor Tiket    : %s", d.TicketNumber))
		}
		lines = append(lines,
			fmt.Sprintf("Harga          : %s", utils.FormatMinorUnits(d.Amount, d.Currency)),
			fmt.Sprintf("Dipesan oleh   : %s", safe(d.BookedBy, "-")),
		)
		for _, line := range lines {
			pdf.Cell(0, 7, line)
			pdf.Ln(7)
		}

		if len(d.QRPNG) > 0 {
			imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
			imgName := fmt.Sprintf("qr-%d", i)
			pdf.RegisterImageOptionsReader(imgName, imgOpts, bytes.NewReader(d.QRPNG))
			pdf.ImageOptions(imgName, 150, 40, 40, 40, false, imgOpts, 0, "")
		}

		if d.Note != "" {
			pdf.Ln(6)
			pdf.SetFont("Helvetica", "I", 10)
			pdf.MultiCell(0, 6, d.Note, "", "", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsPDFContent memeriksa magic bytes PDF; konten lain dianggap korup.
func IsPDFContent(b []byte) bool {
	return bytes.HasPrefix(b, []byte("%PDF-"))
}

// LegLabel menerjemahkan kunci leg ke label cetak.
func LegLabel(key models.LegKey) string {
	if key == models.LegReturn {
		return "Pulang"
	}
	return "Berangkat"
}

func safe(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006 15:04")
}
