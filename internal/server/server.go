package server

import (
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"webshop-demo/internal/handler"
	"webshop-demo/internal/service"
	"webshop-demo/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	echo           *echo.Echo
	sessions       *session.Manager
	catalogHandler *handler.CatalogHandler
	authHandler    *handler.AuthHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
}

func NewServer(
	log *logrus.Logger,
	sessions *session.Manager,
	templatesDir string,
	catalogSvc service.CatalogService,
	authSvc service.AuthService,
	cartSvc service.CartService,
	checkoutSvc service.CheckoutService,
	orderSvc service.OrderService,
) (*Server, error) {
	e := echo.New()
	e.HideBanner = true

	templates, err := template.ParseGlob(filepath.Join(templatesDir, "*.html"))
	if err != nil {
		return nil, err
	}
	e.Renderer = &templateRenderer{templates: templates}
	e.Validator = &formValidator{validate: validator.New()}
	e.HTTPErrorHandler = errorHandler(log)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := log.WithFields(logrus.Fields{
				"method": v.Method,
				"uri":    v.URI,
				"status": v.Status,
			})
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	// scs owns session load/commit around every request.
	e.Use(echo.WrapMiddleware(sessions.LoadAndSave))

	view := handler.NewView(sessions, cartSvc, log)

	s := &Server{
		echo:           e,
		sessions:       sessions,
		catalogHandler: handler.NewCatalogHandler(view, catalogSvc),
		authHandler:    handler.NewAuthHandler(view, authSvc),
		cartHandler:    handler.NewCartHandler(view, cartSvc, checkoutSvc),
		orderHandler:   handler.NewOrderHandler(view, orderSvc),
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	s.echo.GET("/", s.catalogHandler.Home)

	auth := s.echo.Group("/auth")
	auth.GET("/login", s.authHandler.LoginForm)
	auth.POST("/login", s.authHandler.Login)
	auth.GET("/sign-up", s.authHandler.SignUpForm)
	auth.POST("/sign-up", s.authHandler.SignUp)
	auth.GET("/logout", s.authHandler.Logout, requireLogin(s.sessions))

	shop := s.echo.Group("", requireLogin(s.sessions))
	shop.GET("/cart", s.cartHandler.ViewCart)
	shop.POST("/add-to-cart/:productId", s.cartHandler.AddToCart)
	shop.POST("/remove-from-cart/:itemId", s.cartHandler.RemoveFromCart)
	shop.POST("/cart/increase/:itemId", s.cartHandler.IncreaseQuantity)
	shop.POST("/cart/decrease/:itemId", s.cartHandler.DecreaseQuantity)
	shop.GET("/checkout", s.cartHandler.CheckoutForm)
	shop.POST("/checkout", s.cartHandler.Checkout)
	shop.GET("/orders", s.orderHandler.History)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}

type templateRenderer struct {
	templates *template.Template
}

func (t *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

type formValidator struct {
	validate *validator.Validate
}

func (v *formValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func requireLogin(sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sessions.UserID(c.Request().Context()) == 0 {
				sessions.PutFlash(c.Request().Context(), session.LevelInfo, "Please log in first")
				return c.Redirect(http.StatusSeeOther, "/auth/login")
			}
			return next(c)
		}
	}
}

// Business errors are recovered in the handlers as flashes; anything
// that reaches here is rendered as a plain error page.
func errorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		message := http.StatusText(code)
		if httpErr, ok := err.(*echo.HTTPError); ok {
			code = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}

		if code >= 500 {
			log.WithError(err).Error("request failed")
		}

		page := handler.PageData{Title: "Error", Data: map[string]any{
			"Code":    code,
			"Message": message,
		}}
		if renderErr := c.Render(code, "error.html", page); renderErr != nil {
			_ = c.String(code, message)
		}
	}
}
