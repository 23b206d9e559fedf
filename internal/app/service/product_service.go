package service

import (
	"errors"

	"github.com/lib/pq"
	"github.com/olumide/foodloan-backend/internal/app/model"
	"github.com/olumide/foodloan-backend/internal/app/repository"
	"github.com/olumide/foodloan-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidPrice = errors.New("price must not be negative")

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price" binding:"required"`
	CategoryID  *uint           `json:"category_id"`
	ImageURL    string          `json:"image_url"`
	Tags        []string        `json:"tags"`
}

type VariantInput struct {
	Name     string          `json:"name" binding:"required"`
	SKU      string          `json:"sku" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	ImageURL string          `json:"image_url"`
}

type ProductService interface {
	CreateProduct(input ProductInput) (*model.Product, error)
	GetProduct(id uint) (*model.Product, error)
	ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error)
	UpdateProduct(id uint, input ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error

	CreateVariant(productID uint, input VariantInput) (*model.ProductVariant, error)
	UpdateVariant(variantID uint, input VariantInput) (*model.ProductVariant, error)
	DeleteVariant(variantID uint) error
}

type productService struct {
	productRepo  repository.ProductRepository
	variantRepo  repository.VariantRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
	categoryRepo repository.CategoryRepository,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		variantRepo:  variantRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *productService) CreateProduct(input ProductInput) (*model.Product, error) {
	logger.Info("Creating product", map[string]interface{}{
		"name":       input.Name,
		"base_price": input.BasePrice.String(),
	})

	if input.BasePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product := &model.Product{
		Name:        input.Name,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		Tags:        pq.StringArray(input.Tags),
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProduct(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) ListProducts(filter repository.ProductFilter) ([]model.Product, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.productRepo.FindAll(filter)
}

func (s *productService) UpdateProduct(id uint, input ProductInput) (*model.Product, error) {
	logger.Info("Updating product", map[string]interface{}{
		"product_id": id,
	})

	if input.BasePrice.IsNegative() {
		return nil, ErrInvalidPrice
	}

	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(*input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
	}

	product.Name = input.Name
	product.Description = input.Description
	product.BasePrice = input.BasePrice
	product.CategoryID = input.CategoryID
	if input.ImageURL != "" {
		product.ImageURL = input.ImageURL
	}
	if input.Tags != nil {
		product.Tags = pq.StringArray(input.Tags)
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.productRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return s.productRepo.Delete(id)
}

func (s *productService) CreateVariant(productID uint, input VariantInput) (*model.ProductVariant, error) {
	logger.Info("Creating product variant", map[string]interface{}{
		"product_id": productID,
		"sku":        input.SKU,
	})

	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	if _, err := s.productRepo.FindByID(productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	variant := &model.ProductVariant{
		ProductID: productID,
		Name:      input.Name,
		SKU:       input.SKU,
		Price:     input.Price,
		ImageURL:  input.ImageURL,
	}
	if err := s.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *productService) UpdateVariant(variantID uint, input VariantInput) (*model.ProductVariant, error) {
	logger.Info("Updating product variant", map[string]interface{}{
		"variant_id": variantID,
	})

	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	variant, err := s.variantRepo.FindByID(variantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVariantNotFound
		}
		return nil, err
	}

	variant.Name = input.Name
	variant.SKU = input.SKU
	variant.Price = input.Price
	if input.ImageURL != "" {
		variant.ImageURL = input.ImageURL
	}

	if err := s.variantRepo.Update(variant); err != nil {
		return nil, err
	}
	return variant, nil
}

func (s *productService) DeleteVariant(variantID uint) error {
	if _, err := s.variantRepo.FindByID(variantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVariantNotFound
		}
		return err
	}
	return s.variantRepo.Delete(variantID)
}
