package handler

import (
	"webshop-demo/internal/model"
	"webshop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	view     *View
	orderSvc service.OrderService
}

func NewOrderHandler(view *View, orderSvc service.OrderService) *OrderHandler {
	return &OrderHandler{
		view:     view,
		orderSvc: orderSvc,
	}
}

type ordersView struct {
	Orders []*model.Order
}

func (h *OrderHandler) History(c echo.Context) error {
	ctx := c.Request().Context()
	userID := h.view.Sessions.UserID(ctx)

	orders, err := h.orderSvc.History(ctx, userID)
	if err != nil {
		return err
	}

	return h.view.Render(c, "orders.html", "Your orders", ordersView{Orders: orders})
}
