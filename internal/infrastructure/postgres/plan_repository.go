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

var _ repository.PlanRepository = (*PlanRepo)(nil)

// PlanRepo implementação do porto PlanRepository sobre PostgreSQL. Os preços
// são NUMERIC e chegam como decimal.Decimal via o codec registrado no pool.
type PlanRepo struct {
	pool *pgxpool.Pool
}

// NewPlanRepository constrói o adaptador de persistência de planos.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepo {
	return &PlanRepo{pool: pool}
}

const planColumns = `id, product_id, slug, name, price_monthly, price_yearly, yearly_discount_pct, features, limits, active, created_at, updated_at`

// Create persiste um novo plano. (product_id, slug) é único na tabela.
func (r *PlanRepo) Create(ctx context.Context, plan *entity.Plan) error {
	query := `
		INSERT INTO plans (id, product_id, slug, name, price_monthly, price_yearly, yearly_discount_pct, features, limits, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.pool.Exec(ctx, query,
		plan.ID, plan.ProductID, plan.Slug, plan.Name,
		plan.PriceMonthly, plan.PriceYearly, plan.YearlyDiscountPct,
		plan.Features, plan.Limits, plan.Active,
		plan.CreatedAt, plan.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetBySlug obtém um plano pelo par (produto, slug). Ausente devolve (nil, nil).
func (r *PlanRepo) GetBySlug(ctx context.Context, productID, slug string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE product_id = $1 AND slug = $2`
	var p entity.Plan
	err := r.pool.QueryRow(ctx, query, productID, slug).Scan(
		&p.ID, &p.ProductID, &p.Slug, &p.Name,
		&p.PriceMonthly, &p.PriceYearly, &p.YearlyDiscountPct,
		&p.Features, &p.Limits, &p.Active,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// ListByProduct lista os planos ativos de um produto, do mais barato ao mais caro.
func (r *PlanRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE product_id = $1 AND active ORDER BY price_monthly`
	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(
			&p.ID, &p.ProductID, &p.Slug, &p.Name,
			&p.PriceMonthly, &p.PriceYearly, &p.YearlyDiscountPct,
			&p.Features, &p.Limits, &p.Active,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
