package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/upzy-app/hub-api/internal/application/usecase"
	"github.com/upzy-app/hub-api/internal/domain/repository"
)

// Querier abstrai a origem das queries: *pgxpool.Pool e pgx.Tx satisfazem,
// permitindo usar os mesmos repositórios com ou sem transação.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ usecase.CompanyTxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCompanyCreate inicia uma transação, executa fn com repos atados à tx
// e faz Commit ou Rollback. Usado na criação de empresa, que grava a empresa
// e o vínculo do dono como uma unidade.
func (r *TxRunner) RunCompanyCreate(ctx context.Context, fn func(
	companyRepo repository.CompanyRepository,
	membershipRepo repository.MembershipRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewCompanyRepository(tx), NewMembershipRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
