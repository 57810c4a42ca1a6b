package service_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListProductsPagination(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Electronics")
	for i := 0; i < 7; i++ {
		env.createProduct(t, category.ID, fmt.Sprintf("Product %02d", i), 10.00, 5)
	}

	page, err := env.catalog.ListProducts(ctx(), 0, "name_asc", 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 6)
	require.EqualValues(t, 7, page.Total)
	require.Equal(t, 2, page.TotalPages)

	page, err = env.catalog.ListProducts(ctx(), 0, "name_asc", 2)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, "Product 06", page.Products[0].Name)
}

func TestListProductsOutOfRangePages(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Electronics")
	for i := 0; i < 7; i++ {
		env.createProduct(t, category.ID, fmt.Sprintf("Product %02d", i), 10.00, 5)
	}

	for _, pageNum := range []int{0, -1, 3, 99} {
		page, err := env.catalog.ListProducts(ctx(), 0, "name_asc", pageNum)
		require.NoError(t, err, "page %d must not error", pageNum)
		require.Empty(t, page.Products, "page %d must be empty", pageNum)
		require.Equal(t, 2, page.TotalPages)
	}
}

func TestListProductsNoMatches(t *testing.T) {
	env := newTestEnv(t)
	env.createCategory(t, "Electronics")

	page, err := env.catalog.ListProducts(ctx(), 0, "name_asc", 1)
	require.NoError(t, err)
	require.Empty(t, page.Products)
	require.Zero(t, page.TotalPages)
}

func TestListProductsCategoryFilter(t *testing.T) {
	env := newTestEnv(t)
	electronics := env.createCategory(t, "Electronics")
	books := env.createCategory(t, "Books")
	env.createProduct(t, electronics.ID, "Smartphone", 299.99, 5)
	env.createProduct(t, books.ID, "Novel Book", 19.99, 5)

	page, err := env.catalog.ListProducts(ctx(), books.ID, "name_asc", 1)
	require.NoError(t, err)
	require.Len(t, page.Products, 1)
	require.Equal(t, "Novel Book", page.Products[0].Name)
	require.EqualValues(t, 1, page.Total)
}

func TestListProductsSortOrders(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Electronics")
	env.createProduct(t, category.ID, "Banana Stand", 20.00, 5)
	env.createProduct(t, category.ID, "Apple Corer", 30.00, 5)
	env.createProduct(t, category.ID, "Cherry Pitter", 10.00, 5)

	cases := []struct {
		sort  string
		first string
	}{
		{"name_asc", "Apple Corer"},
		{"name_desc", "Cherry Pitter"},
		{"price_asc", "Cherry Pitter"},
		{"price_desc", "Apple Corer"},
	}
	for _, tc := range cases {
		page, err := env.catalog.ListProducts(ctx(), 0, tc.sort, 1)
		require.NoError(t, err)
		require.Equal(t, tc.first, page.Products[0].Name, "sort %s", tc.sort)
		require.Equal(t, tc.sort, page.Sort)
	}
}

func TestListProductsUnknownSortFallsBack(t *testing.T) {
	env := newTestEnv(t)
	category := env.createCategory(t, "Electronics")
	env.createProduct(t, category.ID, "Banana Stand", 20.00, 5)
	env.createProduct(t, category.ID, "Apple Corer", 30.00, 5)

	page, err := env.catalog.ListProducts(ctx(), 0, "price; DROP TABLE products", 1)
	require.NoError(t, err)
	require.Equal(t, "name_asc", page.Sort)
	require.Equal(t, "Apple Corer", page.Products[0].Name)
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)
	env.createCategory(t, "Electronics")
	env.createCategory(t, "Books")

	categories, err := env.catalog.ListCategories(ctx())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.Equal(t, "Books", categories[0].Name)
}
