package repository

import (
	"context"

	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// PlanRepository define a porta de persistência dos planos de assinatura.
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetBySlug(ctx context.Context, productID, slug string) (*entity.Plan, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Plan, error)
}
