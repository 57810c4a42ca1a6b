package handler

import (
	"net/http"
	"strconv"

	"webshop-demo/internal/service"
	"webshop-demo/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// PageData is the envelope every template receives: the shared chrome
// (login state, cart badge, flash) plus the page-specific payload.
type PageData struct {
	Title     string
	LoggedIn  bool
	CartCount int
	Flash     *session.Flash
	Data      any
}

// View bundles what every handler needs to render a page.
type View struct {
	Sessions *session.Manager
	Carts    service.CartService
	Log      *logrus.Logger
}

func NewView(sessions *session.Manager, carts service.CartService, log *logrus.Logger) *View {
	return &View{
		Sessions: sessions,
		Carts:    carts,
		Log:      log,
	}
}

func (v *View) Render(c echo.Context, name, title string, data any) error {
	ctx := c.Request().Context()

	page := PageData{
		Title: title,
		Data:  data,
		Flash: v.Sessions.PopFlash(ctx),
	}

	if userID := v.Sessions.UserID(ctx); userID != 0 {
		page.LoggedIn = true
		count, err := v.Carts.CartCount(ctx, userID)
		if err != nil {
			// The badge is cosmetic, never fail the page over it.
			v.Log.WithError(err).Warn("cart count lookup failed")
		}
		page.CartCount = count
	}

	return c.Render(http.StatusOK, name, page)
}

// FlashRedirect stores a flash for the next page and redirects there.
func (v *View) FlashRedirect(c echo.Context, level, message, to string) error {
	v.Sessions.PutFlash(c.Request().Context(), level, message)
	return c.Redirect(http.StatusSeeOther, to)
}

func paramID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "no such "+name)
	}
	return uint(id), nil
}
