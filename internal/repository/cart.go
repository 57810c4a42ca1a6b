package repository

import (
	"context"

	"webshop-demo/internal/model"

	"gorm.io/gorm"
)

type CartRepository interface {
	Create(ctx context.Context, tx *gorm.DB, cart *model.Cart) error
	FindByID(ctx context.Context, cartID uint) (*model.Cart, error)
	// FindByUserID returns the user's cart with items and their products
	// fully loaded, so callers never traverse lazy relations.
	FindByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	FindItem(ctx context.Context, cartID, productID uint) (*model.CartItem, error)
	FindItemByID(ctx context.Context, itemID uint) (*model.CartItem, error)
	CreateItem(ctx context.Context, tx *gorm.DB, item *model.CartItem) error
	UpdateItemQuantity(ctx context.Context, tx *gorm.DB, itemID uint, quantity int) error
	DeleteItem(ctx context.Context, tx *gorm.DB, itemID uint) error
	DeleteItemsByCartID(ctx context.Context, tx *gorm.DB, cartID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Create(ctx context.Context, tx *gorm.DB, cart *model.Cart) error {
	return tx.WithContext(ctx).Create(cart).Error
}

func (r *cartRepoImpl) FindByID(ctx context.Context, cartID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) FindByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("user_id = ?", userID).
		First(&cart).Error

	if err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *cartRepoImpl) FindItem(ctx context.Context, cartID, productID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) FindItemByID(ctx context.Context, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", itemID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) CreateItem(ctx context.Context, tx *gorm.DB, item *model.CartItem) error {
	return tx.WithContext(ctx).Create(item).Error
}

func (r *cartRepoImpl) UpdateItemQuantity(ctx context.Context, tx *gorm.DB, itemID uint, quantity int) error {
	return tx.WithContext(ctx).Model(&model.CartItem{}).
		Where("id = ?", itemID).
		Update("quantity", quantity).Error
}

func (r *cartRepoImpl) DeleteItem(ctx context.Context, tx *gorm.DB, itemID uint) error {
	return tx.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepoImpl) DeleteItemsByCartID(ctx context.Context, tx *gorm.DB, cartID uint) error {
	return tx.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
