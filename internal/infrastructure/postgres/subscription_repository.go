package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementação do porto SubscriptionRepository sobre
// PostgreSQL. amount_monthly é NUMERIC e usa o codec decimal do pool.
type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository constrói o adaptador de persistência de assinaturas.
func NewSubscriptionRepository(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

const subscriptionColumns = `id, company_id, product_id, plan_slug, status, amount_monthly, external_ref, created_at, updated_at`

// Create persiste uma nova assinatura.
func (r *SubscriptionRepo) Create(ctx context.Context, sub *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, company_id, product_id, plan_slug, status, amount_monthly, external_ref, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.pool.Exec(ctx, query,
		sub.ID, sub.CompanyID, sub.ProductID, sub.PlanSlug, sub.Status,
		sub.AmountMonthly, sub.ExternalRef, sub.CreatedAt, sub.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// GetByExternalRef obtém a assinatura pela referência externa do gateway
// (a chave de idempotência do webhook). Ausente devolve (nil, nil).
func (r *SubscriptionRepo) GetByExternalRef(ctx context.Context, externalRef string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE external_ref = $1`
	return r.scanOne(ctx, query, externalRef)
}

// GetActiveByCompanyProduct obtém a assinatura ativa de uma empresa para um
// produto, se existir.
func (r *SubscriptionRepo) GetActiveByCompanyProduct(ctx context.Context, companyID, productID string) (*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE company_id = $1 AND product_id = $2 AND status = $3`
	return r.scanOne(ctx, query, companyID, productID, entity.SubscriptionActive)
}

// ListByCompany lista as assinaturas de uma empresa.
func (r *SubscriptionRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subscription
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(
			&s.ID, &s.CompanyID, &s.ProductID, &s.PlanSlug, &s.Status,
			&s.AmountMonthly, &s.ExternalRef, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus muda o status de uma assinatura.
func (r *SubscriptionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	query := `UPDATE subscriptions SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("update subscription status: %w", err)
	}
	return nil
}

func (r *SubscriptionRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Subscription, error) {
	var s entity.Subscription
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.CompanyID, &s.ProductID, &s.PlanSlug, &s.Status,
		&s.AmountMonthly, &s.ExternalRef, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return &s, nil
}
