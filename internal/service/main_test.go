package service_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"webshop-demo/internal/cache"
	"webshop-demo/internal/client"
	"webshop-demo/internal/config"
	"webshop-demo/internal/model"
	"webshop-demo/internal/repository"
	"webshop-demo/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db       *gorm.DB
	cache    cache.CountCache
	products repository.ProductRepository
	catalog  service.CatalogService
	auth     service.AuthService
	carts    service.CartService
	checkout service.CheckoutService
	orders   service.OrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := client.InitDBClient(config.Database{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	log := logrus.New()
	log.SetOutput(io.Discard)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	countCache := cache.NewCountCache()
	paymentSvc := service.NewPaymentService(paymentRepo, log)

	return &testEnv{
		db:       db,
		cache:    countCache,
		products: productRepo,
		catalog:  service.NewCatalogService(productRepo, categoryRepo),
		auth:     service.NewAuthService(userRepo),
		carts:    service.NewCartService(db, cartRepo, productRepo, countCache, 30*time.Second),
		checkout: service.NewCheckoutService(db, cartRepo, productRepo, orderRepo, paymentSvc, countCache),
		orders:   service.NewOrderService(orderRepo),
	}
}

func (e *testEnv) createUser(t *testing.T, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		FirstName:    "Test",
		PasswordHash: "x",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *testEnv) createCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category := &model.Category{Name: name}
	require.NoError(t, e.db.Create(category).Error)
	return category
}

func (e *testEnv) createProduct(t *testing.T, categoryID uint, name string, price float64, stock int) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:       name,
		Price:      decimal.NewFromFloat(price),
		Stock:      stock,
		CategoryID: categoryID,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) reloadProduct(t *testing.T, productID uint) *model.Product {
	t.Helper()
	var product model.Product
	require.NoError(t, e.db.First(&product, productID).Error)
	return &product
}

func (e *testEnv) cartItems(t *testing.T, userID uint) []model.CartItem {
	t.Helper()
	var cart model.Cart
	err := e.db.Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	require.NoError(t, err)
	return cart.Items
}

func requireDecimalEqual(t *testing.T, want float64, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.NewFromFloat(want)), "want %v, got %s", want, got)
}

func ctx() context.Context {
	return context.Background()
}
