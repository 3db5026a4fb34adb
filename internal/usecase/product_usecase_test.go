package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: ProductRepository
// =====================

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

// =====================
// Mock: CategoryRepository
// =====================

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListTopLevel(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestListPublicProducts_Validation(t *testing.T) {
	uc := NewProductUsecase(new(MockProductRepository), newFakeVariantRepo(), new(MockCategoryRepository))

	base := ListProductsInput{Page: 1, Limit: 20}

	cases := []struct {
		name   string
		mutate func(in *ListProductsInput)
	}{
		{"page zero", func(in *ListProductsInput) { in.Page = 0 }},
		{"limit zero", func(in *ListProductsInput) { in.Limit = 0 }},
		{"limit too big", func(in *ListProductsInput) { in.Limit = 101 }},
		{"negative min_price", func(in *ListProductsInput) { in.MinPrice = decimalPtr("-1") }},
		{"min over max", func(in *ListProductsInput) {
			in.MinPrice = decimalPtr("10")
			in.MaxPrice = decimalPtr("5")
		}},
		{"bad sort", func(in *ListProductsInput) { in.Sort = "rating_desc" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)

			_, err := uc.ListPublicProducts(context.Background(), in)
			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, http.StatusBadRequest, he.Status)
		})
	}
}

func TestListPublicProducts_PassesQueryThrough(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := NewProductUsecase(productRepo, newFakeVariantRepo(), new(MockCategoryRepository))

	productRepo.On("ListPublic", mock.Anything, repo.ProductListQuery{
		Page:         2,
		Limit:        10,
		Q:            "shirt",
		CategorySlug: "clothing",
		Sort:         "price_asc",
	}).Return([]model.Product{{ID: 1, Name: "Shirt"}}, int64(15), nil)

	out, err := uc.ListPublicProducts(context.Background(), ListProductsInput{
		Page:     2,
		Limit:    10,
		Q:        " shirt ",
		Category: "clothing",
		Sort:     "price_asc",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(15), out.Total)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Items, 1)

	productRepo.AssertExpectations(t)
}

func TestGetProductBySlug_NotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := NewProductUsecase(productRepo, newFakeVariantRepo(), new(MockCategoryRepository))

	productRepo.On("FindBySlug", mock.Anything, "ghost").Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductBySlug(context.Background(), "ghost")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestGetProductBySlug_InactiveIsNotFound(t *testing.T) {
	productRepo := new(MockProductRepository)
	uc := NewProductUsecase(productRepo, newFakeVariantRepo(), new(MockCategoryRepository))

	productRepo.On("FindBySlug", mock.Anything, "hidden").
		Return(model.Product{ID: 1, Slug: "hidden", IsActive: false}, nil)

	_, err := uc.GetProductBySlug(context.Background(), "hidden")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestGetProductBySlug_VariantsCarryFinalPrice(t *testing.T) {
	productRepo := new(MockProductRepository)

	v := testVariant(1, "10.00", 5)
	v.PriceAdjustment = decimal.RequireFromString("2.50")
	variants := newFakeVariantRepo(v)

	uc := NewProductUsecase(productRepo, variants, new(MockCategoryRepository))

	productRepo.On("FindBySlug", mock.Anything, "product").
		Return(model.Product{ID: 1, Slug: "product", IsActive: true}, nil)

	out, err := uc.GetProductBySlug(context.Background(), "product")
	require.NoError(t, err)
	require.Len(t, out.Variants, 1)
	assert.True(t, out.Variants[0].FinalPrice.Equal(decimal.RequireFromString("12.50")))
}

func TestListCategories(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := NewProductUsecase(new(MockProductRepository), newFakeVariantRepo(), categoryRepo)

	categoryRepo.On("ListTopLevel", mock.Anything).
		Return([]model.Category{{ID: 1, Name: "Books", Slug: "books"}}, nil)

	out, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "books", out[0].Slug)
}
