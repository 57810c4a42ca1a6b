package service

import (
	"context"
	"errors"

	"webshop-demo/internal/model"
	"webshop-demo/internal/repository"

	"gorm.io/gorm"
)

// PageSize is the fixed number of products per catalog page.
const PageSize = 6

const defaultSort = "name_asc"

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Products   []*model.Product
	Total      int64
	Page       int
	TotalPages int
	Sort       string
	CategoryID uint
}

type CatalogService interface {
	ListProducts(ctx context.Context, categoryID uint, sort string, page int) (*ProductPage, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, categoryID uint, sort string, page int) (*ProductPage, error) {
	if !repository.SortKeyValid(sort) {
		sort = defaultSort
	}

	params := repository.ListParams{
		CategoryID: categoryID,
		Sort:       sort,
		Limit:      PageSize,
	}

	// Out-of-range pages yield an empty page, never an error.
	if page < 1 {
		params.Limit = 0
	} else {
		params.Offset = (page - 1) * PageSize
	}

	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)

	return &ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		Sort:       sort,
		CategoryID: categoryID,
	}, nil
}

func (s *catalogServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return product, nil
}
