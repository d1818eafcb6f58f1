package repository

import (
	"context"

	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// CompanyRepository define a porta de persistência de Company (DIP).
// A implementação vive em infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
	// ListSlugsWithPrefix devolve todos os slugs existentes que começam com o
	// prefixo, insumo da política de geração de slug com incremento.
	ListSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error)
}
