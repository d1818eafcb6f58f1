package repository

import (
	"context"

	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// SubscriptionRepository define a porta de persistência de assinaturas.
// A escrita acontece apenas pelo handler de webhook do gateway.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *entity.Subscription) error
	GetByExternalRef(ctx context.Context, externalRef string) (*entity.Subscription, error)
	GetActiveByCompanyProduct(ctx context.Context, companyID, productID string) (*entity.Subscription, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Subscription, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
