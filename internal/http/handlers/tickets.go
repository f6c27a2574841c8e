package handlers

import (
	"net/http"
	"strings"

	"tiket/internal/cache"
	"tiket/internal/clients"
	intconfig "tiket/internal/config"
	"tiket/internal/http/middleware"
	"tiket/internal/render"
	"tiket/internal/repositories"
	"tiket/internal/services"

	"github.com/gin-gonic/gin"
)

// TicketHandlers memegang kolaborator berumur panjang (renderer, signer,
// jendela dedup, client purchase); service dirakit per request supaya
// request_id ikut ke log.
type TicketHandlers struct {
	Env      intconfig.Env
	Renderer render.Renderer
	Dedup    cache.ResendWindow
}

func (h TicketHandlers) service(c *gin.Context) services.TicketService {
	reqID := middleware.GetRequestID(c)
	purchase := clients.PurchaseClient{
		BaseURL: h.Env.PurchaseAPIBase,
		APIKey:  h.Env.PurchaseAPIKey,
	}
	return services.TicketService{
		Carts:     repositories.CartRepository{},
		Artifacts: repositories.ArtifactRepository{},
		Purchases: purchase,
		Renderer:  h.Renderer,
		QR:        render.QRSigner{Secret: []byte(h.Env.QRSigningSecret)},
		Dedup:     h.Dedup,

		Passengers:    services.PassengerService{RequestID: reqID},
		Legs:          services.LegService{RequestID: reqID},
		TicketNumbers: services.TicketNumberService{Source: purchase, RequestID: reqID},

		PublicBaseURL: h.Env.PublicBaseURL,
		RequestID:     reqID,
	}
}

func reference(c *gin.Context) (string, bool) {
	ref := strings.TrimSpace(c.Param("reference"))
	if ref == "" {
		respondError(c, http.StatusBadRequest, "invalid_reference", "reference kosong", nil)
		return "", false
	}
	return ref, true
}

// GetHoldDocument serves the reservation proof (pre-payment document).
func (h TicketHandlers) GetHoldDocument(c *gin.Context) {
	ref, ok := reference(c)
	if !ok {
		return
	}
	res, err := h.service(c).GetHoldDocument(ref)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	serveArtifact(c, res)
}

// GetETicket serves the final e-ticket PDF (inline).
func (h TicketHandlers) GetETicket(c *gin.Context) {
	ref, ok := reference(c)
	if !ok {
		return
	}
	res, err := h.service(c).GetFinalTicket(ref)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	serveArtifact(c, res)
}

// GetETicketArchive serves a zip with one PDF per passenger-leg.
func (h TicketHandlers) GetETicketArchive(c *gin.Context) {
	ref, ok := reference(c)
	if !ok {
		return
	}
	res, err := h.service(c).GetTicketArchive(ref)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+res.Filename+`"`)
	c.Data(http.StatusOK, res.ContentType, res.Bytes)
}

// ResendETicket mengembalikan e-ticket untuk dikirim ulang; dalam jendela
// dedup respons 202 tanpa body dokumen.
func (h TicketHandlers) ResendETicket(c *gin.Context) {
	ref, ok := reference(c)
	if !ok {
		return
	}
	res, sent, err := h.service(c).Resend(ref)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !sent {
		c.JSON(http.StatusAccepted, gin.H{
			"message":    "permintaan kirim ulang baru saja diproses, coba lagi nanti",
			"reference":  ref,
			"request_id": middleware.GetRequestID(c),
		})
		return
	}
	serveArtifact(c, res)
}

// VerifyQR memeriksa token QR hasil scan e-ticket.
func (h TicketHandlers) VerifyQR(c *gin.Context) {
	var body struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Token) == "" {
		respondError(c, http.StatusBadRequest, "invalid_token", "token QR kosong atau tidak valid", nil)
		return
	}

	signer := render.QRSigner{Secret: []byte(h.Env.QRSigningSecret)}
	ref, num, leg, err := signer.Verify(body.Token)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "tanda tangan tidak cocok"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":         true,
		"reference":     ref,
		"ticket_number": num,
		"leg":           string(leg),
	})
}

func serveArtifact(c *gin.Context, res services.ArtifactResult) {
	c.Header("Content-Disposition", `inline; filename="`+res.Filename+`"`)
	c.Data(http.StatusOK, res.ContentType, res.Bytes)
}
