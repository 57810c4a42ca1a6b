package service

import (
	"context"
	"errors"
	"fmt"

	"webshop-demo/internal/cache"
	"webshop-demo/internal/model"
	"webshop-demo/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CheckoutService turns a cart into an order. The whole conversion —
// order row, item snapshots, stock decrements, cart clearing, payment
// record — runs in one database transaction so a failure at any step
// leaves no partial order behind.
type CheckoutService interface {
	Checkout(ctx context.Context, userID uint) (*model.Order, error)
}

type checkoutServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	paymentSvc  PaymentService
	countCache  cache.CountCache
}

func NewCheckoutService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	paymentSvc PaymentService,
	countCache cache.CountCache,
) CheckoutService {
	return &checkoutServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		paymentSvc:  paymentSvc,
		countCache:  countCache,
	}
}

func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID uint) (*model.Order, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Validate against live stock before touching anything.
	for _, item := range cart.Items {
		if item.Quantity > item.Product.Stock {
			return nil, &InsufficientStockError{ProductName: item.Product.Name}
		}
	}

	// Grand total from live prices, accumulated over the lines.
	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	order := &model.Order{
		Reference:   uuid.NewString(),
		UserID:      userID,
		TotalAmount: total,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		orderItems := make([]*model.OrderItem, len(cart.Items))
		for i, item := range cart.Items {
			orderItems[i] = &model.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.Price,
			}
		}
		if err := s.orderRepo.CreateItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		// Guarded decrement: a concurrent checkout that drained the
		// stock since validation makes this match zero rows, which
		// rolls back the whole order.
		for _, item := range cart.Items {
			ok, err := s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if !ok {
				return &InsufficientStockError{ProductName: item.Product.Name}
			}
		}

		if err := s.cartRepo.DeleteItemsByCartID(ctx, tx, cart.ID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		if _, err := s.paymentSvc.Charge(ctx, tx, userID, total); err != nil {
			return fmt.Errorf("record payment: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.countCache.Delete(countKey(userID))
	return order, nil
}
