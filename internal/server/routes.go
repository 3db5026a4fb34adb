package server

import (
	"net/http"

	"app/internal/config"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	h.Product.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, cfg)
	h.Auth.RegisterRoutes(e)
	h.Order.RegisterRoutes(e, cfg)
	h.Webhook.RegisterRoutes(e)
}
