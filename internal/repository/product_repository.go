package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"reciclothes/internal/model"
)

// ProductRepository defines catalog persistence operations.
type ProductRepository interface {
	List(ctx context.Context) ([]model.Product, error)
	Upsert(ctx context.Context, products []model.Product) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository.
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// List returns every product in storage order.
func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Select("Id_Producto", "name", "description", "price", "category", "stock", "imagen").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Upsert inserts products, overwriting rows that already exist with the same id.
func (r *productRepository) Upsert(ctx context.Context, products []model.Product) (int64, error) {
	if len(products) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&products)
	if res.Error != nil {
		return 0, fmt.Errorf("upsert products: %w", res.Error)
	}
	return res.RowsAffected, nil
}
