package coder

import (
	"context"
	"errors"
	"net/http"

	"crypticoder-go/pkg/log"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type API struct {
	Echo *echo.Echo
	svc  *Service
}

type textRequest struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

type textResponse struct {
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewAPI(svc *Service) *API {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("16M"))

	a := &API{Echo: e, svc: svc}
	e.GET("/health", a.health)
	e.POST("/encode", a.encode)
	e.POST("/decode", a.decode)
	return a
}

func (a *API) Start(addr string) error {
	log.Info().Str("addr", addr).Msg("api listening")
	if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *API) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func (a *API) encode(c echo.Context) error {
	return a.handleText(c, a.svc.EncodeText)
}

func (a *API) decode(c echo.Context) error {
	return a.handleText(c, a.svc.DecodeText)
}

func (a *API) handleText(c echo.Context, fn func(key, text string) (string, error)) error {
	var req textRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed request body"})
	}
	res, err := fn(req.Key, req.Text)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, ErrKeyRequired) {
			status = http.StatusBadRequest
		}
		return c.JSON(status, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, textResponse{Result: res})
}
