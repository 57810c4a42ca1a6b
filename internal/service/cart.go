package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"webshop-demo/internal/cache"
	"webshop-demo/internal/model"
	"webshop-demo/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService interface {
	// AddItem puts one unit of the product into the user's cart,
	// creating the cart if needed. The returned bool is true when an
	// existing line's quantity was bumped instead of a new line created.
	AddItem(ctx context.Context, userID, productID uint) (*model.Product, bool, error)
	// RemoveItem deletes a cart line and returns the removed product's
	// name for user feedback.
	RemoveItem(ctx context.Context, userID, itemID uint) (string, error)
	IncreaseQuantity(ctx context.Context, userID, itemID uint) error
	DecreaseQuantity(ctx context.Context, userID, itemID uint) error
	// GetCart returns the user's cart aggregate, or nil if the user has
	// no cart yet.
	GetCart(ctx context.Context, userID uint) (*model.Cart, error)
	CartCount(ctx context.Context, userID uint) (int, error)
}

// CartTotal sums live price times quantity over the cart's lines. It is
// recomputed on every call so price or quantity edits are never served
// stale. A nil or empty cart totals zero.
func CartTotal(cart *model.Cart) decimal.Decimal {
	total := decimal.Zero
	if cart == nil {
		return total
	}
	for _, item := range cart.Items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	return total
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	countCache  cache.CountCache
	countTTL    time.Duration
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	countCache cache.CountCache,
	countTTL time.Duration,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		countCache:  countCache,
		countTTL:    countTTL,
	}
}

func (s *cartServiceImpl) AddItem(ctx context.Context, userID, productID uint) (*model.Product, bool, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, ErrNotFound
	}
	if err != nil {
		return nil, false, err
	}

	if product.Stock < 1 {
		return nil, false, ErrOutOfStock
	}

	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = &model.Cart{UserID: userID}
		if err := s.cartRepo.Create(ctx, s.db, cart); err != nil {
			return nil, false, fmt.Errorf("create cart: %w", err)
		}
	} else if err != nil {
		return nil, false, err
	}

	defer s.invalidateCount(userID)

	item, err := s.cartRepo.FindItem(ctx, cart.ID, product.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = &model.CartItem{
			CartID:    cart.ID,
			ProductID: product.ID,
			Quantity:  1,
		}
		if err := s.cartRepo.CreateItem(ctx, s.db, item); err != nil {
			return nil, false, fmt.Errorf("create cart item: %w", err)
		}
		return product, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	// Cart already holds all available stock: keep the line untouched
	// and let the caller surface a warning.
	if item.Quantity >= product.Stock {
		return product, false, ErrStockLimitReached
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, s.db, item.ID, item.Quantity+1); err != nil {
		return nil, false, fmt.Errorf("update cart item: %w", err)
	}

	return product, true, nil
}

func (s *cartServiceImpl) RemoveItem(ctx context.Context, userID, itemID uint) (string, error) {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return "", err
	}

	if err := s.cartRepo.DeleteItem(ctx, s.db, item.ID); err != nil {
		return "", fmt.Errorf("delete cart item: %w", err)
	}

	s.invalidateCount(userID)
	return item.Product.Name, nil
}

func (s *cartServiceImpl) IncreaseQuantity(ctx context.Context, userID, itemID uint) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	// Silently ignore attempts to go past the stock cap.
	if item.Quantity >= item.Product.Stock {
		return nil
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, s.db, item.ID, item.Quantity+1); err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}

	s.invalidateCount(userID)
	return nil
}

func (s *cartServiceImpl) DecreaseQuantity(ctx context.Context, userID, itemID uint) error {
	item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if item.Quantity > 1 {
		err = s.cartRepo.UpdateItemQuantity(ctx, s.db, item.ID, item.Quantity-1)
	} else {
		// Zero-quantity lines are never persisted.
		err = s.cartRepo.DeleteItem(ctx, s.db, item.ID)
	}
	if err != nil {
		return fmt.Errorf("change cart item quantity: %w", err)
	}

	s.invalidateCount(userID)
	return nil
}

func (s *cartServiceImpl) GetCart(ctx context.Context, userID uint) (*model.Cart, error) {
	cart, err := s.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartServiceImpl) CartCount(ctx context.Context, userID uint) (int, error) {
	key := countKey(userID)
	if count, ok := s.countCache.Get(key); ok {
		return count, nil
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return 0, err
	}

	count := 0
	if cart != nil {
		count = cart.TotalItems()
	}

	s.countCache.Set(key, count, s.countTTL)
	return count, nil
}

// ownedItem loads a cart item with its product and verifies the cart it
// belongs to is owned by the requesting user.
func (s *cartServiceImpl) ownedItem(ctx context.Context, userID, itemID uint) (*model.CartItem, error) {
	item, err := s.cartRepo.FindItemByID(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.FindByID(ctx, item.CartID)
	if err != nil {
		return nil, err
	}
	if cart.UserID != userID {
		return nil, ErrUnauthorized
	}

	return item, nil
}

func (s *cartServiceImpl) invalidateCount(userID uint) {
	s.countCache.Delete(countKey(userID))
}

func countKey(userID uint) string {
	return fmt.Sprintf("cart_count_%d", userID)
}
