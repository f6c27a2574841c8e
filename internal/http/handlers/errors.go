package handlers

import (
	"errors"
	"net/http"

	"tiket/internal/domain"
	"tiket/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads for new handlers.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, domain.ErrPaymentPending):
		respondError(c, http.StatusForbidden, "payment_pending", "pembayaran belum lunas", nil)
	case domain.IsTicketNumberMissing(err):
		respondError(c, http.StatusUnprocessableEntity, "ticket_number_missing", err.Error(), nil)
	case domain.IsAllocation(err):
		respondError(c, http.StatusBadRequest, "allocation_rejected", err.Error(), nil)
	case domain.IsRendering(err):
		respondError(c, http.StatusBadGateway, "rendering_failed", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
