package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hospilog/internal/models/db_models"
	"hospilog/internal/models/request_models"
	"hospilog/internal/repositories"
	"hospilog/pkg/utils"
)

type ProductServiceInterface interface {
	List(ctx context.Context) ([]db_models.Product, error)
	Create(ctx context.Context, request request_models.CreateProductRequest) (*db_models.Product, error)
	Update(ctx context.Context, request request_models.UpdateProductRequest) (*db_models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProductService struct {
	productRepo repositories.ProductRepository
	accountRepo repositories.AccountRepository
}

func NewProductService(productRepo repositories.ProductRepository, accountRepo repositories.AccountRepository) ProductServiceInterface {
	return &ProductService{
		productRepo: productRepo,
		accountRepo: accountRepo,
	}
}

func (p *ProductService) List(ctx context.Context) ([]db_models.Product, error) {
	products, err := p.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return products, nil
}

func (p *ProductService) Create(ctx context.Context, request request_models.CreateProductRequest) (*db_models.Product, error) {
	accountID, err := resolveAccount(ctx, p.accountRepo, request.AccountID)
	if err != nil {
		return nil, err
	}

	category := db_models.CategoryOther
	if request.Category != nil {
		category = *request.Category
	}

	product := &db_models.Product{
		Name:         request.Name,
		Price:        request.Price,
		Stocks:       request.Stocks,
		Dosage:       request.Dosage,
		Category:     category,
		HandlingTags: pq.StringArray(request.HandlingTags),
		AccountID:    accountID,
	}
	if err := p.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return product, nil
}

func (p *ProductService) Update(ctx context.Context, request request_models.UpdateProductRequest) (*db_models.Product, error) {
	product, err := loadByID(ctx, p.productRepo, request.ID, "Product")
	if err != nil {
		return nil, err
	}

	if request.Name != nil && *request.Name != "" {
		product.Name = *request.Name
	}
	if request.Price != nil {
		product.Price = *request.Price
	}
	if request.Stocks != nil {
		product.Stocks = *request.Stocks
	}
	if request.Dosage != nil {
		product.Dosage = request.Dosage
	}
	if request.Category != nil {
		product.Category = *request.Category
	}
	if request.HandlingTags != nil {
		product.HandlingTags = pq.StringArray(request.HandlingTags)
	}

	if err := p.productRepo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("save product: %w", errors.Join(utils.ErrDatabaseError, err))
	}
	return product, nil
}

func (p *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, p.productRepo, id, "Product")
}
