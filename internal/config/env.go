package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Env struct {
	AppAddr string
	GinMode string

	// Purchase API pihak ketiga (sumber ticket number).
	PurchaseAPIBase string
	PurchaseAPIKey  string

	// Secret untuk tanda tangan payload QR di e-ticket.
	QRSigningSecret string

	// Base URL publik untuk link e-ticket di metadata artifact.
	PublicBaseURL string

	// Redis opsional untuk dedup resend multi-instance. Kosong = in-memory.
	RedisAddr string

	// Jendela dedup resend e-ticket.
	ResendWindow time.Duration
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))

	purchaseBase := strings.TrimSpace(os.Getenv("PURCHASE_API_BASE"))
	if purchaseBase == "" {
		purchaseBase = "http://127.0.0.1:9090"
	}

	qrSecret := strings.TrimSpace(os.Getenv("QR_SIGNING_SECRET"))
	if qrSecret == "" {
		qrSecret = "dev-only-qr-secret"
	}

	resendWindow := 2 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("RESEND_WINDOW_SECONDS")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			resendWindow = time.Duration(secs) * time.Second
		}
	}

	return Env{
		AppAddr:         appAddr,
		GinMode:         ginMode,
		PurchaseAPIBase: purchaseBase,
		PurchaseAPIKey:  strings.TrimSpace(os.Getenv("PURCHASE_API_KEY")),
		QRSigningSecret: qrSecret,
		PublicBaseURL:   strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		ResendWindow:    resendWindow,
	}
}
