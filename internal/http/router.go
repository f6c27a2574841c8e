package api

import (
	"log"
	stdhttp "net/http"

	"tiket/internal/cache"
	intconfig "tiket/internal/config"
	h "tiket/internal/http/handlers"
	"tiket/internal/http/middleware"
	"tiket/internal/render"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, dedup cache.ResendWindow) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route tidak ditemukan",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	tickets := h.TicketHandlers{
		Env:      env,
		Renderer: render.PDFRenderer{},
		Dedup:    dedup,
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		t := api.Group("/tickets")
		t.GET("/:reference/hold", tickets.GetHoldDocument)
		t.GET("/:reference/e-ticket", tickets.GetETicket)
		t.GET("/:reference/e-ticket.zip", tickets.GetETicketArchive)
		t.POST("/:reference/resend", tickets.ResendETicket)

		api.POST("/qr/verify", tickets.VerifyQR)
	}

	return r
}
