package repository

import (
	"context"

	"webshop-demo/internal/model"

	"gorm.io/gorm"
)

// ListParams carries an already-normalized catalog query: Sort must be
// one of the sortColumns keys and Offset/Limit must be non-negative.
type ListParams struct {
	CategoryID uint // 0 means no category filter
	Sort       string
	Offset     int
	Limit      int
}

var sortColumns = map[string]string{
	"name_asc":   "name ASC",
	"name_desc":  "name DESC",
	"price_asc":  "price ASC",
	"price_desc": "price DESC",
}

// SortKeyValid reports whether key is an accepted catalog sort order.
func SortKeyValid(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

type ProductRepository interface {
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	List(ctx context.Context, params ListParams) ([]*model.Product, int64, error)
	// DecrementStock subtracts quantity from the product's stock only if
	// enough is available. Returns false when the guarded update matched
	// no row, i.e. the stock was insufficient.
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) (bool, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context, params ListParams) ([]*model.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})
	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order, ok := sortColumns[params.Sort]
	if !ok {
		order = sortColumns["name_asc"]
	}

	var products []*model.Product
	err := query.
		Preload("Category").
		Order(order).
		Offset(params.Offset).
		Limit(params.Limit).
		Find(&products).Error

	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) (bool, error) {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
