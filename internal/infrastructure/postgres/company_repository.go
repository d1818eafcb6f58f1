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

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementação do porto CompanyRepository sobre PostgreSQL.
// O branding é colunado (não JSON) para permitir updates parciais baratos.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository constrói o adaptador de persistência de empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

const companyColumns = `id, slug, name, tax_id, logo_url, favicon_url, primary_color, secondary_color, status, created_at, updated_at`

// Create persiste uma nova empresa. Slug duplicado vira ErrSlugTaken; a
// constraint única da tabela é a última linha de defesa da política de slug.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (id, slug, name, tax_id, logo_url, favicon_url, primary_color, secondary_color, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Slug, company.Name, company.TaxID,
		company.Branding.LogoURL, company.Branding.FaviconURL,
		company.Branding.PrimaryColor, company.Branding.SecondaryColor,
		company.Status, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSlugTaken
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtém uma empresa por ID. Ausente devolve (nil, nil).
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// GetBySlug obtém uma empresa pelo slug.
func (r *CompanyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`
	return r.scanOne(ctx, query, slug)
}

// Update atualiza nome, documento, branding e status. O slug fica de fora
// de propósito: é imutável depois de atribuído.
func (r *CompanyRepo) Update(ctx context.Context, company *entity.Company) error {
	query := `
		UPDATE companies
		SET name = $2, tax_id = $3, logo_url = $4, favicon_url = $5,
		    primary_color = $6, secondary_color = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		company.ID, company.Name, company.TaxID,
		company.Branding.LogoURL, company.Branding.FaviconURL,
		company.Branding.PrimaryColor, company.Branding.SecondaryColor,
		company.Status, company.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// List lista empresas com paginação.
func (r *CompanyRepo) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()
	var list []*entity.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// ListSlugsWithPrefix devolve os slugs que começam com o prefixo, para a
// geração de slug com sufixo incremental.
func (r *CompanyRepo) ListSlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	query := `SELECT slug FROM companies WHERE slug LIKE $1 || '%'`
	rows, err := r.q.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("list slugs: %w", err)
	}
	defer rows.Close()
	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

func (r *CompanyRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var c entity.Company
	err := row.Scan(
		&c.ID, &c.Slug, &c.Name, &c.TaxID,
		&c.Branding.LogoURL, &c.Branding.FaviconURL,
		&c.Branding.PrimaryColor, &c.Branding.SecondaryColor,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	return &c, nil
}
