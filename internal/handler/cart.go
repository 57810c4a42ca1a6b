package handler

import (
	"context"
	"errors"
	"net/http"

	"webshop-demo/internal/model"
	"webshop-demo/internal/service"
	"webshop-demo/internal/session"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	view        *View
	cartSvc     service.CartService
	checkoutSvc service.CheckoutService
}

func NewCartHandler(view *View, cartSvc service.CartService, checkoutSvc service.CheckoutService) *CartHandler {
	return &CartHandler{
		view:        view,
		cartSvc:     cartSvc,
		checkoutSvc: checkoutSvc,
	}
}

type cartView struct {
	Items []model.CartItem
	Total decimal.Decimal
}

func (h *CartHandler) ViewCart(c echo.Context) error {
	ctx := c.Request().Context()
	userID := h.view.Sessions.UserID(ctx)

	cart, err := h.cartSvc.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	data := cartView{Total: service.CartTotal(cart)}
	if cart != nil {
		data.Items = cart.Items
	}
	if len(data.Items) == 0 {
		h.view.Sessions.PutFlash(ctx, session.LevelInfo, "Your cart is empty")
	}

	return h.view.Render(c, "cart.html", "Your cart", data)
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	userID := h.view.Sessions.UserID(ctx)

	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}

	product, updated, err := h.cartSvc.AddItem(ctx, userID, productID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(404, "product not found")
	case errors.Is(err, service.ErrOutOfStock):
		return h.view.FlashRedirect(c, session.LevelError, "Product is out of stock", "/")
	case errors.Is(err, service.ErrStockLimitReached):
		return h.view.FlashRedirect(c, session.LevelWarning, "No more stock available", "/cart")
	case err != nil:
		return err
	}

	message := product.Name + " added to cart"
	if updated {
		message = product.Name + " quantity updated in cart"
	}
	return h.view.FlashRedirect(c, session.LevelSuccess, message, "/cart")
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	userID := h.view.Sessions.UserID(ctx)

	itemID, err := paramID(c, "itemId")
	if err != nil {
		return err
	}

	productName, err := h.cartSvc.RemoveItem(ctx, userID, itemID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(404, "cart item not found")
	case errors.Is(err, service.ErrUnauthorized):
		return h.view.FlashRedirect(c, session.LevelError, "Unauthorized action", "/cart")
	case err != nil:
		return err
	}

	return h.view.FlashRedirect(c, session.LevelInfo, productName+" removed from cart", "/cart")
}

func (h *CartHandler) IncreaseQuantity(c echo.Context) error {
	return h.changeQuantity(c, h.cartSvc.IncreaseQuantity)
}

func (h *CartHandler) DecreaseQuantity(c echo.Context) error {
	return h.changeQuantity(c, h.cartSvc.DecreaseQuantity)
}

func (h *CartHandler) changeQuantity(c echo.Context, change func(ctx context.Context, userID, itemID uint) error) error {
	ctx := c.Request().Context()
	userID := h.view.Sessions.UserID(ctx)

	itemID, err := paramID(c, "itemId")
	if err != nil {
		return err
	}

	err = change(ctx, userID, itemID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(404, "cart item not found")
	case errors.Is(err, service.ErrUnauthorized):
		return h.view.FlashRedirect(c, session.LevelError, "Unauthorized action", "/cart")
	case err != nil:
		return err
	}

	return c.Redirect(http.StatusSeeOther, "/cart")
}

type checkoutView struct {
	Items []model.CartItem
	Total decimal.Decimal
}

func (h *CartHandler) CheckoutForm(c echo.Context) error {
	ctx := c.Request().Context()
	userID := h.view.Sessions.UserID(ctx)

	cart, err := h.cartSvc.GetCart(ctx, userID)
	if err != nil {
		return err
	}
	if cart == nil || len(cart.Items) == 0 {
		return h.view.FlashRedirect(c, session.LevelInfo, "Your cart is empty", "/")
	}

	return h.view.Render(c, "checkout.html", "Checkout", checkoutView{
		Items: cart.Items,
		Total: service.CartTotal(cart),
	})
}

func (h *CartHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	userID := h.view.Sessions.UserID(ctx)

	_, err := h.checkoutSvc.Checkout(ctx, userID)

	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		return h.view.FlashRedirect(c, session.LevelInfo, "Your cart is empty", "/")
	case errors.As(err, &stockErr):
		return h.view.FlashRedirect(c, session.LevelError, "Insufficient stock for "+stockErr.ProductName, "/cart")
	case err != nil:
		return err
	}

	return h.view.FlashRedirect(c, session.LevelSuccess, "Order placed successfully!", "/")
}
