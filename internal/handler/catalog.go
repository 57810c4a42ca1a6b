package handler

import (
	"strconv"

	"webshop-demo/internal/model"
	"webshop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	view       *View
	catalogSvc service.CatalogService
}

func NewCatalogHandler(view *View, catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		view:       view,
		catalogSvc: catalogSvc,
	}
}

type catalogView struct {
	Listing    *service.ProductPage
	Categories []*model.Category
	Pages      []int
}

func (h *CatalogHandler) Home(c echo.Context) error {
	ctx := c.Request().Context()

	categoryID, _ := strconv.ParseUint(c.QueryParam("category"), 10, 32)
	sort := c.QueryParam("sort")
	page, err := strconv.Atoi(c.QueryParam("page"))
	if err != nil {
		page = 1
	}

	listing, err := h.catalogSvc.ListProducts(ctx, uint(categoryID), sort, page)
	if err != nil {
		return err
	}

	categories, err := h.catalogSvc.ListCategories(ctx)
	if err != nil {
		return err
	}

	pages := make([]int, listing.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}

	return h.view.Render(c, "home.html", "Shop", catalogView{
		Listing:    listing,
		Categories: categories,
		Pages:      pages,
	})
}
