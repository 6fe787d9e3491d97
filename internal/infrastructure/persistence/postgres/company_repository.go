package postgres

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertCompanySQL = `INSERT INTO companies (id, name, code, str_addr, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`
	selectCompanySQL       = `SELECT id, name, code, str_addr, city FROM companies WHERE id = $1`
	selectCompanyByCodeSQL = `SELECT id, name, code, str_addr, city FROM companies WHERE code = $1`
)

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func (r *CompanyRepository) Create(ctx context.Context, company *domain.Company) error {
	_, err := conn(ctx, r.pool).Exec(ctx, insertCompanySQL,
		company.ID.UUID, company.Name, company.Code, company.StrAddr, company.City)
	return mapWriteError(err)
}

func (r *CompanyRepository) GetByID(ctx context.Context, id domain.CompanyID) (*domain.Company, error) {
	return scanCompany(conn(ctx, r.pool).QueryRow(ctx, selectCompanySQL, id.UUID))
}

func (r *CompanyRepository) GetByCode(ctx context.Context, code string) (*domain.Company, error) {
	return scanCompany(conn(ctx, r.pool).QueryRow(ctx, selectCompanyByCodeSQL, code))
}

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.ID.UUID, &c.Name, &c.Code, &c.StrAddr, &c.City)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

var _ ports.CompanyRepository = (*CompanyRepository)(nil)
