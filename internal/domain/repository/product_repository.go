package repository

import (
	"context"

	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// ProductRepository define a porta de persistência do catálogo de produtos.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, onlyActive bool) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
}
