package usecase_test

import (
	"context"
	"strings"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	saved, _ := args.Get(0).(model.Product)
	return saved, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) UpdateRatingStats(ctx context.Context, productID int64, rating float64, count int64) error {
	panic("not used in these tests")
}

func validProductInput() usecase.AdminSaveProductInput {
	return usecase.AdminSaveProductInput{
		Name:        "Shirt",
		Description: "A plain shirt",
		Price:       50,
		Category:    "men",
		Stock:       10,
		Keywords:    []string{"shirt", " casual ", ""},
	}
}

func TestProductUsecase_List_TrimsQuery(t *testing.T) {
	ctx := context.Background()
	productRepo := new(ProductRepoMock)

	productRepo.On("List", mock.Anything, repo.ProductListQuery{Q: "shirt", Category: "men"}).
		Return([]model.Product{{ID: 1, Name: "Shirt"}}, nil)

	uc := usecase.NewProductUsecase(productRepo)
	items, err := uc.List(ctx, usecase.ListProductsInput{Q: "  shirt  ", Category: "men"})

	assert.NoError(t, err)
	assert.Equal(t, 1, len(items))
	productRepo.AssertExpectations(t)
}

func TestProductUsecase_List_QueryTooLong(t *testing.T) {
	productRepo := new(ProductRepoMock)

	uc := usecase.NewProductUsecase(productRepo)
	_, err := uc.List(context.Background(), usecase.ListProductsInput{Q: strings.Repeat("a", 101)})

	assertErrKind(t, err, usecase.KindValidation)
	productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProductUsecase_Detail_NotFound(t *testing.T) {
	ctx := context.Background()
	productRepo := new(ProductRepoMock)

	productRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	uc := usecase.NewProductUsecase(productRepo)
	_, err := uc.Detail(ctx, 99)

	assertErrKind(t, err, usecase.KindNotFound)
}

func TestProductUsecase_AdminCreate_NormalizesKeywords(t *testing.T) {
	ctx := context.Background()
	productRepo := new(ProductRepoMock)

	//空白と空文字は落とす
	productRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Shirt" &&
			p.Category == model.CategoryMen &&
			len(p.Keywords) == 2 &&
			p.Keywords[0] == "shirt" && p.Keywords[1] == "casual"
	})).Return(model.Product{ID: 1, Name: "Shirt"}, nil)

	uc := usecase.NewProductUsecase(productRepo)
	p, err := uc.AdminCreate(ctx, validProductInput())

	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	productRepo.AssertExpectations(t)
}

func TestProductUsecase_AdminCreate_Validation(t *testing.T) {
	productRepo := new(ProductRepoMock)
	uc := usecase.NewProductUsecase(productRepo)

	cases := []func(in *usecase.AdminSaveProductInput){
		func(in *usecase.AdminSaveProductInput) { in.Name = "  " },
		func(in *usecase.AdminSaveProductInput) { in.Description = "" },
		func(in *usecase.AdminSaveProductInput) { in.Price = 0 },
		func(in *usecase.AdminSaveProductInput) { in.Price = -1 },
		func(in *usecase.AdminSaveProductInput) { in.Category = "kids" },
		func(in *usecase.AdminSaveProductInput) { in.Stock = -1 },
	}
	for _, mutate := range cases {
		in := validProductInput()
		mutate(&in)
		_, err := uc.AdminCreate(context.Background(), in)
		assertErrKind(t, err, usecase.KindValidation)
	}
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductUsecase_AdminUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	productRepo := new(ProductRepoMock)

	productRepo.On("Update", mock.Anything, mock.Anything).Return(repo.ErrNotFound)

	uc := usecase.NewProductUsecase(productRepo)
	err := uc.AdminUpdate(ctx, 99, validProductInput())

	assertErrKind(t, err, usecase.KindNotFound)
}

func TestProductUsecase_AdminDelete(t *testing.T) {
	ctx := context.Background()
	productRepo := new(ProductRepoMock)

	productRepo.On("SoftDelete", mock.Anything, int64(1)).Return(nil)

	uc := usecase.NewProductUsecase(productRepo)
	err := uc.AdminDelete(ctx, 1)

	assert.NoError(t, err)
	productRepo.AssertExpectations(t)
}
