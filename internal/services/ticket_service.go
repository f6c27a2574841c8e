package services

import (
	"fmt"
	"strings"

	"tiket/internal/cache"
	"tiket/internal/domain"
	"tiket/internal/domain/models"
	"tiket/internal/render"
	"tiket/internal/utils"
)

// CartSource membaca rekaman reservasi lokal per PNR.
type CartSource interface {
	GetByReference(reference string) (models.CartRecord, error)
}

// ArtifactStore adalah kontrak cache artifact (repositories.ArtifactRepository).
type ArtifactStore interface {
	Get(reference string, kind models.ArtifactKind) (models.TicketArtifact, error)
	GetDefault(reference string) (models.TicketArtifact, error)
	GetArchive(reference string, expectedMembers int) (models.TicketArtifact, error)
	Put(reference string, kind models.ArtifactKind, content []byte, meta models.ArtifactMeta) error
}

// ArtifactResult adalah keluaran ke layer HTTP.
type ArtifactResult struct {
	Bytes       []byte
	ContentType string
	Filename    string
}

// TicketService mengurutkan komponen engine: cache dulu, regenerate saat
// miss/korup, tulis balik ke cache. Benar di bawah race last-write-wins
// karena aturan precedence ada di ArtifactStore, bukan di locking sini.
type TicketService struct {
	Carts     CartSource
	Artifacts ArtifactStore
	Purchases PurchaseSource
	Renderer  render.Renderer
	QR        render.QRSigner
	Dedup     cache.ResendWindow

	Passengers    PassengerService
	Legs          LegService
	Prices        PriceService
	TicketNumbers TicketNumberService

	PublicBaseURL string
	RequestID     string
}

const (
	contentTypePDF = "application/pdf"
	contentTypeZip = "application/zip"
)

// GetHoldDocument menyajikan bukti reservasi. Kalau final sudah ada,
// final yang keluar: hold tidak pernah tampil lagi setelah final.
func (s TicketService) GetHoldDocument(reference string) (ArtifactResult, error) {
	if art, err := s.Artifacts.GetDefault(reference); err == nil {
		return resultFromArtifact(art), nil
	} else if !recoverable(err) {
		return ArtifactResult{}, err
	}

	tc, err := s.loadContext(reference, false)
	if err != nil {
		return ArtifactResult{}, err
	}

	docs, err := s.buildDocs(tc, false)
	if err != nil {
		return ArtifactResult{}, err
	}
	pdf, err := s.renderWithRetry(reference, docs)
	if err != nil {
		return ArtifactResult{}, err
	}

	// di-drop diam-diam kalau final keburu ada; itu yang diinginkan
	if err := s.Artifacts.Put(reference, models.ArtifactHold, pdf, s.meta(tc.cart)); err != nil {
		return ArtifactResult{}, err
	}
	utils.LogEvent(s.RequestID, "ticket", "hold_generated", "reference="+reference)

	return ArtifactResult{
		Bytes:       pdf,
		ContentType: contentTypePDF,
		Filename:    fmt.Sprintf("RESERVASI_%s.pdf", utils.SafeFilenamePart(reference)),
	}, nil
}

// GetFinalTicket menyajikan e-ticket final, regenerate saat miss/korup.
func (s TicketService) GetFinalTicket(reference string) (ArtifactResult, error) {
	if art, err := s.Artifacts.Get(reference, models.ArtifactFinal); err == nil {
		return resultFromArtifact(art), nil
	} else if !recoverable(err) {
		return ArtifactResult{}, err
	}

	tc, err := s.loadContext(reference, true)
	if err != nil {
		return ArtifactResult{}, err
	}
	if !tc.cart.Paid {
		return ArtifactResult{}, domain.ErrPaymentPending
	}

	docs, err := s.buildDocs(tc, true)
	if err != nil {
		return ArtifactResult{}, err
	}
	pdf, err := s.renderWithRetry(reference, docs)
	if err != nil {
		return ArtifactResult{}, err
	}

	if err := s.Artifacts.Put(reference, models.ArtifactFinal, pdf, s.meta(tc.cart)); err != nil {
		return ArtifactResult{}, err
	}
	utils.LogEvent(s.RequestID, "ticket", "final_generated",
		fmt.Sprintf("reference=%s docs=%d", reference, len(docs)))

	return ArtifactResult{
		Bytes:       pdf,
		ContentType: contentTypePDF,
		Filename:    fmt.Sprintf("ETICKET_%s.pdf", utils.SafeFilenamePart(reference)),
	}, nil
}

// GetTicketArchive menyajikan zip berisi satu PDF per (penumpang, leg).
// Jumlah member dicek terhadap legs x penumpang; arsip basi diregenerate.
func (s TicketService) GetTicketArchive(reference string) (ArtifactResult, error) {
	tc, err := s.loadContext(reference, true)
	if err != nil {
		return ArtifactResult{}, err
	}
	expected := len(tc.passengers) * len(tc.itinerary.Legs())

	if art, err := s.Artifacts.GetArchive(reference, expected); err == nil {
		return resultFromArtifact(art), nil
	} else if !recoverable(err) {
		return ArtifactResult{}, err
	}

	if !tc.cart.Paid {
		return ArtifactResult{}, domain.ErrPaymentPending
	}

	docs, err := s.buildDocs(tc, true)
	if err != nil {
		return ArtifactResult{}, err
	}

	members := make([]render.NamedBuffer, 0, len(docs))
	for i, doc := range docs {
		pdf, err := s.renderWithRetry(reference, []render.TicketDoc{doc})
		if err != nil {
			return ArtifactResult{}, err
		}
		members = append(members, render.NamedBuffer{
			Name: fmt.Sprintf("%02d_%s_%s.pdf", i+1,
				utils.SafeFilenamePart(doc.PassengerName), strings.ToLower(doc.LegLabel)),
			Content: pdf,
		})
	}

	zipBytes, err := render.BuildArchive(members)
	if err != nil {
		return ArtifactResult{}, domain.RenderingError{Reference: reference, Err: err}
	}

	if err := s.Artifacts.Put(reference, models.ArtifactFinalArchive, zipBytes, s.meta(tc.cart)); err != nil {
		return ArtifactResult{}, err
	}
	utils.LogEvent(s.RequestID, "ticket", "archive_generated",
		fmt.Sprintf("reference=%s members=%d", reference, len(members)))

	return ArtifactResult{
		Bytes:       zipBytes,
		ContentType: contentTypeZip,
		Filename:    fmt.Sprintf("ETICKET_%s.zip", utils.SafeFilenamePart(reference)),
	}, nil
}

// Resend mengembalikan e-ticket final untuk dikirim ulang; false kalau
// masih dalam jendela dedup (pengiriman disuppress, bukan error).
func (s TicketService) Resend(reference string) (ArtifactResult, bool, error) {
	if s.Dedup != nil && !s.Dedup.ShouldSend(reference) {
		utils.LogEvent(s.RequestID, "ticket", "resend_suppressed", "reference="+reference)
		return ArtifactResult{}, false, nil
	}
	res, err := s.GetFinalTicket(reference)
	return res, true, err
}

// ---- internal ----

type ticketContext struct {
	cart       models.CartRecord
	passengers []models.Passenger
	itinerary  models.Itinerary
	purchase   models.PurchaseRecord
	// amounts[i][k] = share minor unit penumpang i di leg k
	amounts [][]int64
}

func (s TicketService) loadContext(reference string, needPurchase bool) (ticketContext, error) {
	var tc ticketContext

	cart, err := s.Carts.GetByReference(reference)
	if err != nil {
		return tc, err
	}
	tc.cart = cart

	passengers, reliable := s.Passengers.Canonicalize(cart.Passengers, cart.DeclaredPassengerCount)
	if !reliable {
		utils.LogEvent(s.RequestID, "ticket", "passenger_count_unreliable",
			fmt.Sprintf("reference=%s fallback_count=%d", reference, len(passengers)))
	}
	if len(passengers) == 0 {
		return tc, domain.NotFoundError{Resource: "passengers", Reference: reference}
	}
	tc.passengers = passengers

	it, err := s.Legs.ResolveLegs(cart.Trip)
	if err != nil {
		return tc, err
	}
	tc.itinerary = it

	if needPurchase {
		// boleh gagal di sini: resolver nomor tiket punya refresh sendiri
		if purchase, err := s.Purchases.GetPurchase(cart.PurchaseID, cart.PurchaseUUID); err == nil {
			tc.purchase = purchase
		} else {
			utils.LogEvent(s.RequestID, "ticket", "purchase_fetch_failed",
				fmt.Sprintf("reference=%s err=%v", reference, err))
		}
	}

	amounts, err := s.allocateAmounts(tc)
	if err != nil {
		return tc, err
	}
	tc.amounts = amounts

	return tc, nil
}

// allocateAmounts membagi total cart ke share per (penumpang, leg),
// selalu jumlah persis sama dengan total.
func (s TicketService) allocateAmounts(tc ticketContext) ([][]int64, error) {
	weights := s.Prices.DeriveWeights(tc.passengers, tc.purchase)
	legs := tc.itinerary.Legs()

	amounts := make([][]int64, len(tc.passengers))

	if len(legs) == 2 {
		grand := tc.purchase.GrandTotal
		if grand == 0 {
			grand = tc.cart.TotalMinorUnits
		}
		if s.Prices.AmountsArePerLeg(grand, weights) {
			// nominal upstream sudah per leg: alokasikan per slot
			// (penumpang x leg) tanpa membagi dua
			doubled := make([]int64, 0, len(weights)*2)
			for _, w := range weights {
				doubled = append(doubled, w, w)
			}
			slots, err := s.Prices.Allocate(tc.cart.TotalMinorUnits, doubled)
			if err != nil {
				return nil, err
			}
			for i := range tc.passengers {
				amounts[i] = []int64{slots[2*i], slots[2*i+1]}
			}
			return amounts, nil
		}
	}

	shares, err := s.Prices.Allocate(tc.cart.TotalMinorUnits, weights)
	if err != nil {
		return nil, err
	}
	for i := range tc.passengers {
		if len(legs) == 2 {
			out, ret := s.Prices.SplitAcrossLegs(shares[i], true)
			amounts[i] = []int64{out, ret}
		} else {
			amounts[i] = []int64{shares[i]}
		}
	}
	return amounts, nil
}

// buildDocs merakit satu dokumen per (penumpang, leg). Untuk final, nomor
// tiket wajib ada dan QR verifikasi ditanam; hold tanpa keduanya.
func (s TicketService) buildDocs(tc ticketContext, final bool) ([]render.TicketDoc, error) {
	legs := tc.itinerary.Legs()
	docs := make([]render.TicketDoc, 0, len(tc.passengers)*len(legs))

	for i, p := range tc.passengers {
		for k, leg := range legs {
			doc := render.TicketDoc{
				Title:          "BUKTI RESERVASI",
				Reference:      tc.cart.Reference,
				PassengerName:  p.FullName(),
				PassengerPhone: p.Phone,
				Seat:           p.Seat,
				Category:       string(p.Category),
				Route:          leg.Origin() + " -> " + leg.Destination(),
				LegLabel:       render.LegLabel(leg.Key),
				Departure:      leg.Departure(),
				Arrival:        leg.Arrival(),
				Operator:       firstOperator(leg),
				Amount:         tc.amounts[i][k],
				Currency:       tc.cart.Currency,
				BookedBy:       tc.cart.BookedBy,
				Note:           "Bukti reservasi, menunggu pembayaran. Bukan tiket perjalanan.",
			}

			if final {
				num, err := s.TicketNumbers.ResolveWithRefresh(
					tc.cart.Reference, tc.purchase,
					tc.cart.PurchaseID, tc.cart.PurchaseUUID,
					i, leg.Key, len(tc.passengers), p)
				if err != nil {
					return nil, err
				}

				token, err := s.QR.Token(tc.cart.Reference, num, leg.Key)
				if err != nil {
					return nil, domain.RenderingError{Reference: tc.cart.Reference, Err: err}
				}
				png, err := s.QR.EncodePNG(token)
				if err != nil {
					return nil, domain.RenderingError{Reference: tc.cart.Reference, Err: err}
				}

				doc.Title = "E-TICKET"
				doc.TicketNumber = num
				doc.QRPNG = png
				doc.Note = "Tunjukkan e-ticket ini saat keberangkatan."
			}

			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// renderWithRetry memanggil renderer, coba ulang sekali saat gagal atau
// hasil bukan PDF, lalu menyerah sebagai RenderingError.
func (s TicketService) renderWithRetry(reference string, docs []render.TicketDoc) ([]byte, error) {
	pdf, err := s.Renderer.RenderPDF(docs)
	if err != nil || !render.IsPDFContent(pdf) {
		pdf, err = s.Renderer.RenderPDF(docs)
	}
	if err != nil {
		return nil, domain.RenderingError{Reference: reference, Err: err}
	}
	if !render.IsPDFContent(pdf) {
		return nil, domain.RenderingError{Reference: reference,
			Err: fmt.Errorf("renderer mengembalikan %d bytes bukan PDF", len(pdf))}
	}
	return pdf, nil
}

func (s TicketService) meta(cart models.CartRecord) models.ArtifactMeta {
	url := ""
	if s.PublicBaseURL != "" {
		url = strings.TrimRight(s.PublicBaseURL, "/") + "/api/tickets/" + cart.Reference + "/e-ticket"
	}
	return models.ArtifactMeta{BookedBy: cart.BookedBy, ExternalURL: url}
}

func resultFromArtifact(art models.TicketArtifact) ArtifactResult {
	if art.Kind == models.ArtifactFinalArchive {
		return ArtifactResult{
			Bytes:       art.Content,
			ContentType: contentTypeZip,
			Filename:    fmt.Sprintf("ETICKET_%s.zip", utils.SafeFilenamePart(art.Reference)),
		}
	}
	prefix := "ETICKET"
	if art.Kind == models.ArtifactHold {
		prefix = "RESERVASI"
	}
	return ArtifactResult{
		Bytes:       art.Content,
		ContentType: contentTypePDF,
		Filename:    fmt.Sprintf("%s_%s.pdf", prefix, utils.SafeFilenamePart(art.Reference)),
	}
}

func firstOperator(leg models.Leg) string {
	for _, seg := range leg.Segments {
		if seg.Operator != "" {
			return seg.Operator
		}
	}
	return ""
}

// recoverable: miss atau korup dipulihkan lokal dengan regenerate.
func recoverable(err error) bool {
	return domain.IsNotFound(err) || domain.IsArtifactCorrupt(err)
}
