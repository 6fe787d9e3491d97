package postgres

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertItemSQL = `INSERT INTO items (id, company_id, name, ref_code, price, unit_size, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	selectItemCols = `id, company_id, name, ref_code, price, unit_size`
	updateItemSQL  = `UPDATE items SET name = $1, ref_code = $2, price = $3, unit_size = $4, updated_at = NOW()
		WHERE id = $5`
	deleteItemSQL = `DELETE FROM items WHERE id = $1`
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) error {
	_, err := conn(ctx, r.pool).Exec(ctx, insertItemSQL,
		item.ID.UUID, item.CompanyID.UUID, item.Name, item.RefCode, item.Price, item.UnitSize)
	return mapWriteError(err)
}

func (r *ItemRepository) GetByID(ctx context.Context, id domain.ItemID) (*domain.Item, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+selectItemCols+` FROM items WHERE id = $1`, id.UUID)
	var i domain.Item
	err := row.Scan(&i.ID.UUID, &i.CompanyID.UUID, &i.Name, &i.RefCode, &i.Price, &i.UnitSize)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *ItemRepository) ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Item, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+selectItemCols+` FROM items WHERE company_id = $1 ORDER BY name`, companyID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Item
	for rows.Next() {
		var i domain.Item
		if err := rows.Scan(&i.ID.UUID, &i.CompanyID.UUID, &i.Name, &i.RefCode, &i.Price, &i.UnitSize); err != nil {
			return nil, err
		}
		out = append(out, &i)
	}
	return out, rows.Err()
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	_, err := conn(ctx, r.pool).Exec(ctx, updateItemSQL,
		item.Name, item.RefCode, item.Price, item.UnitSize, item.ID.UUID)
	return err
}

func (r *ItemRepository) Delete(ctx context.Context, id domain.ItemID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, deleteItemSQL, id.UUID)
	return err
}

var _ ports.ItemRepository = (*ItemRepository)(nil)
