package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newProductUsecase() (*usecase.ProductUsecase, *ProductRepoMock, *OrderRepoMock, *AuditRepoMock) {
	products := new(ProductRepoMock)
	orders := new(OrderRepoMock)
	audits := new(AuditRepoMock)
	return usecase.NewProductUsecase(products, orders, audits), products, orders, audits
}

func TestListPublicProducts_InvalidPage(t *testing.T) {
	uc, _, _, _ := newProductUsecase()

	_, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestListPublicProducts_OK(t *testing.T) {
	uc, products, _, _ := newProductUsecase()

	products.On("ListPublic", mock.Anything, repo.ProductListQuery{Page: 2, Limit: 10}).
		Return([]model.Product{activeProduct(1, "Product A", "10.00")}, int64(11), nil)

	out, err := uc.ListPublicProducts(context.Background(), usecase.ListProductsInput{Page: 2, Limit: 10})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(11), out.Total)
	assert.Equal(t, 2, out.Page)
}

func TestGetProductDetail_InactiveReadsAsNotFound(t *testing.T) {
	uc, products, _, _ := newProductUsecase()

	p := activeProduct(3, "Product C", "3.00")
	p.IsActive = false
	products.On("FindByID", mock.Anything, int64(3)).Return(p, nil)

	_, err := uc.GetProductDetail(context.Background(), 3)

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestAdminCreateProduct_NegativePrice(t *testing.T) {
	uc, products, _, _ := newProductUsecase()

	_, err := uc.AdminCreateProduct(context.Background(), 1, usecase.AdminProductInput{
		Name:  "Product X",
		Price: decimal.RequireFromString("-1.00"),
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
	products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdminCreateProduct_WritesAudit(t *testing.T) {
	uc, products, _, audits := newProductUsecase()

	created := activeProduct(9, "Product X", "4.50")
	products.On("Create", mock.Anything, mock.AnythingOfType("model.Product")).Return(created, nil)

	var written model.AuditLog
	audits.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).
		Run(func(args mock.Arguments) {
			written = args.Get(1).(model.AuditLog)
		}).
		Return(nil)

	id, err := uc.AdminCreateProduct(context.Background(), 1, usecase.AdminProductInput{
		Name:     "  Product X  ",
		Price:    decimal.RequireFromString("4.50"),
		IsActive: true,
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(9), id)

	assert.Equal(t, int64(1), written.ActorUserID)
	assert.Equal(t, model.AuditActionCreateProduct, written.Action)
	assert.Equal(t, int64(9), written.ResourceID)
	assert.Empty(t, written.BeforeJSON)
	assert.Contains(t, written.AfterJSON, "Product X")
}

func TestAdminUpdateProduct_NotFound(t *testing.T) {
	uc, products, _, _ := newProductUsecase()

	products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	err := uc.AdminUpdateProduct(context.Background(), 1, 99, usecase.AdminProductInput{
		Name:  "Product X",
		Price: decimal.RequireFromString("1.00"),
	})

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
	products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestAdminDeleteProduct_KeepsBeforeStateInAudit(t *testing.T) {
	uc, products, _, audits := newProductUsecase()

	products.On("FindByID", mock.Anything, int64(9)).Return(activeProduct(9, "Product X", "4.50"), nil)
	products.On("SoftDelete", mock.Anything, int64(9)).Return(nil)

	var written model.AuditLog
	audits.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).
		Run(func(args mock.Arguments) {
			written = args.Get(1).(model.AuditLog)
		}).
		Return(nil)

	err := uc.AdminDeleteProduct(context.Background(), 1, 9)
	assert.NoError(t, err)

	assert.Equal(t, model.AuditActionDeleteProduct, written.Action)
	assert.Contains(t, written.BeforeJSON, "Product X")
	assert.Empty(t, written.AfterJSON)
}

func TestAdminProductAudit_OK(t *testing.T) {
	uc, _, _, audits := newProductUsecase()

	audits.On("ListByResource", mock.Anything, model.AuditResourceProduct, int64(9)).
		Return([]model.AuditLog{
			{ID: 2, Action: model.AuditActionUpdateProduct, ResourceID: 9},
			{ID: 1, Action: model.AuditActionCreateProduct, ResourceID: 9},
		}, nil)

	logs, err := uc.AdminProductAudit(context.Background(), 1, 9)
	assert.NoError(t, err)
	assert.Len(t, logs, 2)
	assert.Equal(t, model.AuditActionUpdateProduct, logs[0].Action)
}

func TestAdminDashboard_OK(t *testing.T) {
	uc, products, orders, _ := newProductUsecase()

	products.On("ListAll", mock.Anything).Return([]model.Product{
		activeProduct(1, "Product A", "10.00"),
		activeProduct(2, "Product B", "5.00"),
	}, nil)
	orders.On("ListRecent", mock.Anything, 5).Return([]model.Order{{ID: 42, UserID: 10}}, nil)

	out, err := uc.AdminDashboard(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, out.Products, 2)
	assert.Len(t, out.RecentOrders, 1)
}
