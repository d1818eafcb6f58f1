package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo implementação do porto MembershipRepository sobre
// PostgreSQL. A tabela carrega UNIQUE (user_id, company_id).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository constrói o adaptador de persistência de vínculos.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

const membershipColumns = `id, user_id, company_id, role, created_at, updated_at`

// Create persiste um vínculo. Par duplicado vira ErrDuplicate.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	query := `
		INSERT INTO memberships (id, user_id, company_id, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.UserID, m.CompanyID, m.Role, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// Get obtém o vínculo de um usuário com uma empresa. Ausente devolve (nil, nil).
func (r *MembershipRepo) Get(ctx context.Context, userID, companyID string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 AND company_id = $2`
	var m entity.Membership
	err := r.q.QueryRow(ctx, query, userID, companyID).Scan(
		&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListByUser lista os vínculos de um usuário (as empresas às quais pertence).
func (r *MembershipRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 ORDER BY created_at`
	return r.list(ctx, query, userID)
}

// ListByCompany lista os vínculos de uma empresa (a equipe).
func (r *MembershipRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE company_id = $1 ORDER BY created_at`
	return r.list(ctx, query, companyID)
}

// UpdateRole troca o papel de um vínculo existente.
func (r *MembershipRepo) UpdateRole(ctx context.Context, userID, companyID, role string) error {
	query := `UPDATE memberships SET role = $3, updated_at = now() WHERE user_id = $1 AND company_id = $2`
	_, err := r.q.Exec(ctx, query, userID, companyID, role)
	if err != nil {
		return fmt.Errorf("update membership role: %w", err)
	}
	return nil
}

// Delete remove um vínculo.
func (r *MembershipRepo) Delete(ctx context.Context, userID, companyID string) error {
	query := `DELETE FROM memberships WHERE user_id = $1 AND company_id = $2`
	_, err := r.q.Exec(ctx, query, userID, companyID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	return nil
}

func (r *MembershipRepo) list(ctx context.Context, query string, arg any) ([]*entity.Membership, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
