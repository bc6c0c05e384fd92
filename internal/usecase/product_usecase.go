package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

type ListProductsInput struct {
	Q        string
	Category string
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if len(in.Q) > 100 {
		return []model.Product{}, NewError(KindValidation, "q too long")
	}

	items, err := u.productRepo.List(ctx, repo.ProductListQuery{
		Q:        strings.TrimSpace(in.Q),
		Category: in.Category,
	})
	if err != nil {
		return []model.Product{}, NewError(KindInternal, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) Detail(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewError(KindValidation, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewError(KindInternal, "db error")
	}
	return p, nil
}

type AdminSaveProductInput struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Stock       int64
	Keywords    []string
}

func (u *ProductUsecase) AdminCreate(ctx context.Context, in AdminSaveProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	now := time.Now()
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    model.Category(in.Category),
		Stock:       in.Stock,
		Keywords:    normalizeKeywords(in.Keywords),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return model.Product{}, NewError(KindInternal, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) AdminUpdate(ctx context.Context, productID int64, in AdminSaveProductInput) error {
	if productID <= 0 {
		return NewError(KindValidation, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return err
	}

	err := u.productRepo.Update(ctx, model.Product{
		ID:          productID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    model.Category(in.Category),
		Stock:       in.Stock,
		Keywords:    normalizeKeywords(in.Keywords),
		UpdatedAt:   time.Now(),
	})
	if errors.Is(err, repo.ErrNotFound) {
		return NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return NewError(KindInternal, "db error")
	}
	return nil
}

func (u *ProductUsecase) AdminDelete(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewError(KindValidation, "invalid product id")
	}

	err := u.productRepo.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return NewError(KindInternal, "db error")
	}
	return nil
}

func validateProductInput(in AdminSaveProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewError(KindValidation, "name required")
	}
	if strings.TrimSpace(in.Description) == "" {
		return NewError(KindValidation, "description required")
	}
	if in.Price <= 0 {
		return NewError(KindValidation, "price must be > 0")
	}
	c := model.Category(in.Category)
	if c != model.CategoryMen && c != model.CategoryWomen {
		return NewError(KindValidation, "invalid category")
	}
	if in.Stock < 0 {
		return NewError(KindValidation, "stock must be >= 0")
	}
	return nil
}

func normalizeKeywords(ks []string) []string {
	out := make([]string, 0, len(ks))
	for _, k := range ks {
		k = strings.TrimSpace(k)
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
