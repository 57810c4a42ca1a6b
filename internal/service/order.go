package service

import (
	"context"

	"webshop-demo/internal/model"
	"webshop-demo/internal/repository"
)

type OrderService interface {
	History(ctx context.Context, userID uint) ([]*model.Order, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) History(ctx context.Context, userID uint) ([]*model.Order, error) {
	return s.orderRepo.ListByUserID(ctx, userID)
}
