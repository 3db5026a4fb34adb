package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"
	appmw "app/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlersはルート登録に必要なhandler一式
type Handlers struct {
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Auth    *handler.AuthHandler
	Order   *handler.OrderHandler
	Webhook *handler.WebhookHandler
}

// Newはechoを組み立てる
func New(cfg config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FEURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))

	//匿名カート用のセッションIDを全ルートで用意する
	e.Use(appmw.EnsureSessionID(cfg.SessionTTL, cfg.GoEnv == "prod"))

	registerRoutes(e, cfg, h)

	return e
}

// Startはサーバー起動
func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
