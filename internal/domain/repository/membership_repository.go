package repository

import (
	"context"

	"github.com/upzy-app/hub-api/internal/domain/entity"
)

// MembershipRepository define a porta de persistência dos vínculos
// usuário↔empresa. Unicidade por par (user, company) é garantida pela tabela.
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	Get(ctx context.Context, userID, companyID string) (*entity.Membership, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Membership, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Membership, error)
	UpdateRole(ctx context.Context, userID, companyID, role string) error
	Delete(ctx context.Context, userID, companyID string) error
}
