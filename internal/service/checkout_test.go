package service_test

import (
	"errors"
	"testing"

	"webshop-demo/internal/model"
	"webshop-demo/internal/service"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCheckoutHappyPath(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	category := env.createCategory(t, "Electronics")
	productA := env.createProduct(t, category.ID, "ProductA", 10.00, 5)
	productB := env.createProduct(t, category.ID, "ProductB", 5.00, 3)

	// Cart: ProductA x2 @ $10, ProductB x1 @ $5.
	_, _, err := env.carts.AddItem(ctx(), user.ID, productA.ID)
	require.NoError(t, err)
	_, _, err = env.carts.AddItem(ctx(), user.ID, productA.ID)
	require.NoError(t, err)
	_, _, err = env.carts.AddItem(ctx(), user.ID, productB.ID)
	require.NoError(t, err)

	order, err := env.checkout.Checkout(ctx(), user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, order.Reference)
	requireDecimalEqual(t, 25.00, order.TotalAmount)

	orders, err := env.orders.History(ctx(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 2)

	byProduct := map[uint]*model.OrderItem{}
	for i := range orders[0].Items {
		item := &orders[0].Items[i]
		byProduct[item.ProductID] = item
	}
	require.Equal(t, 2, byProduct[productA.ID].Quantity)
	requireDecimalEqual(t, 10.00, byProduct[productA.ID].UnitPrice)
	require.Equal(t, 1, byProduct[productB.ID].Quantity)
	requireDecimalEqual(t, 5.00, byProduct[productB.ID].UnitPrice)

	// Stock decremented by exactly the ordered quantities.
	require.Equal(t, 3, env.reloadProduct(t, productA.ID).Stock)
	require.Equal(t, 2, env.reloadProduct(t, productB.ID).Stock)

	// Cart cleared, payment recorded.
	require.Empty(t, env.cartItems(t, user.ID))

	var payments []model.Payment
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Find(&payments).Error)
	require.Len(t, payments, 1)
	require.Equal(t, "success", payments[0].Status)
	requireDecimalEqual(t, 25.00, payments[0].Amount)
}

func TestCheckoutEmptyCart(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")

	// No cart at all.
	_, err := env.checkout.Checkout(ctx(), user.ID)
	require.ErrorIs(t, err, service.ErrEmptyCart)

	// Cart exists but holds nothing.
	require.NoError(t, env.db.Create(&model.Cart{UserID: user.ID}).Error)
	_, err = env.checkout.Checkout(ctx(), user.ID)
	require.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestCheckoutInsufficientStockIsAllOrNothing(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	category := env.createCategory(t, "Electronics")
	productA := env.createProduct(t, category.ID, "ProductA", 10.00, 5)
	productB := env.createProduct(t, category.ID, "ProductB", 5.00, 2)

	_, _, err := env.carts.AddItem(ctx(), user.ID, productA.ID)
	require.NoError(t, err)
	_, _, err = env.carts.AddItem(ctx(), user.ID, productB.ID)
	require.NoError(t, err)
	_, _, err = env.carts.AddItem(ctx(), user.ID, productB.ID)
	require.NoError(t, err)

	// ProductB sells out behind the cart's back.
	require.NoError(t, env.db.Model(productB).Update("stock", 1).Error)

	_, err = env.checkout.Checkout(ctx(), user.ID)

	var stockErr *service.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Equal(t, "ProductB", stockErr.ProductName)

	// Nothing may have been applied.
	var orderCount, orderItemCount, paymentCount int64
	require.NoError(t, env.db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, env.db.Model(&model.OrderItem{}).Count(&orderItemCount).Error)
	require.NoError(t, env.db.Model(&model.Payment{}).Count(&paymentCount).Error)
	require.Zero(t, orderCount)
	require.Zero(t, orderItemCount)
	require.Zero(t, paymentCount)

	require.Equal(t, 5, env.reloadProduct(t, productA.ID).Stock)
	require.Equal(t, 1, env.reloadProduct(t, productB.ID).Stock)
	require.Len(t, env.cartItems(t, user.ID), 2)
}

func TestDecrementStockGuard(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Electronics")
	product := env.createProduct(t, category.ID, "ProductA", 10.00, 3)

	ok, err := env.products.DecrementStock(ctx(), env.db, product.ID, 2)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, env.reloadProduct(t, product.ID).Stock)

	// Asking for more than remains matches no row and mutates nothing.
	ok, err = env.products.DecrementStock(ctx(), env.db, product.ID, 2)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 1, env.reloadProduct(t, product.ID).Stock)
}

func TestDecrementStockRollsBackWithTransaction(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Electronics")
	product := env.createProduct(t, category.ID, "ProductA", 10.00, 5)

	failed := errors.New("later step failed")
	err := env.db.Transaction(func(tx *gorm.DB) error {
		ok, err := env.products.DecrementStock(ctx(), tx, product.ID, 3)
		require.NoError(t, err)
		require.True(t, ok)
		return failed
	})
	require.ErrorIs(t, err, failed)

	// The decrement was part of the aborted unit of work.
	require.Equal(t, 5, env.reloadProduct(t, product.ID).Stock)
}

func TestOrderItemsImmuneToLaterPriceEdits(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	category := env.createCategory(t, "Electronics")
	product := env.createProduct(t, category.ID, "ProductA", 10.00, 5)

	_, _, err := env.carts.AddItem(ctx(), user.ID, product.ID)
	require.NoError(t, err)

	order, err := env.checkout.Checkout(ctx(), user.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, 10.00, order.TotalAmount)

	require.NoError(t, env.db.Model(product).Update("price", "99.99").Error)

	orders, err := env.orders.History(ctx(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	requireDecimalEqual(t, 10.00, orders[0].Items[0].UnitPrice)
	requireDecimalEqual(t, 10.00, orders[0].TotalAmount)
}

func TestOrderHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	category := env.createCategory(t, "Electronics")
	product := env.createProduct(t, category.ID, "ProductA", 10.00, 10)

	var refs []string
	for i := 0; i < 3; i++ {
		_, _, err := env.carts.AddItem(ctx(), user.ID, product.ID)
		require.NoError(t, err)
		order, err := env.checkout.Checkout(ctx(), user.ID)
		require.NoError(t, err)
		refs = append(refs, order.Reference)
	}

	orders, err := env.orders.History(ctx(), user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	require.Equal(t, refs[2], orders[0].Reference)
	require.Equal(t, refs[0], orders[2].Reference)
}

func TestOrderHistoryScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com")
	bob := env.createUser(t, "bob@example.com")
	category := env.createCategory(t, "Electronics")
	product := env.createProduct(t, category.ID, "ProductA", 10.00, 10)

	_, _, err := env.carts.AddItem(ctx(), alice.ID, product.ID)
	require.NoError(t, err)
	_, err = env.checkout.Checkout(ctx(), alice.ID)
	require.NoError(t, err)

	orders, err := env.orders.History(ctx(), bob.ID)
	require.NoError(t, err)
	require.Empty(t, orders)
}
