package postgres

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertLinkSQL = `INSERT INTO supply_links
		(id, supplier_id, purchaser_id, pending_supplier_conf, pending_purchaser_conf, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`
	selectLinkCols = `id, supplier_id, purchaser_id, pending_supplier_conf, pending_purchaser_conf`
	updateLinkSQL  = `UPDATE supply_links
		SET pending_supplier_conf = $1, pending_purchaser_conf = $2, updated_at = NOW()
		WHERE id = $3`
	deleteLinkSQL     = `DELETE FROM supply_links WHERE id = $1`
	activeLinkSQL     = `SELECT EXISTS (SELECT 1 FROM supply_links
		WHERE supplier_id = $1 AND purchaser_id = $2
		AND NOT pending_supplier_conf AND NOT pending_purchaser_conf)`
)

type SupplyLinkRepository struct {
	pool *pgxpool.Pool
}

func NewSupplyLinkRepository(pool *pgxpool.Pool) *SupplyLinkRepository {
	return &SupplyLinkRepository{pool: pool}
}

func (r *SupplyLinkRepository) Create(ctx context.Context, link *domain.SupplyLink) error {
	_, err := conn(ctx, r.pool).Exec(ctx, insertLinkSQL,
		link.ID.UUID, link.SupplierID.UUID, link.PurchaserID.UUID,
		link.PendingSupplierConf, link.PendingPurchaserConf)
	return mapWriteError(err)
}

func (r *SupplyLinkRepository) GetByID(ctx context.Context, id domain.SupplyLinkID) (*domain.SupplyLink, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+selectLinkCols+` FROM supply_links WHERE id = $1`, id.UUID)
	return scanLink(row)
}

func (r *SupplyLinkRepository) GetByIDForUpdate(ctx context.Context, id domain.SupplyLinkID) (*domain.SupplyLink, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+selectLinkCols+` FROM supply_links WHERE id = $1 FOR UPDATE`, id.UUID)
	return scanLink(row)
}

func (r *SupplyLinkRepository) ActiveLinkExists(ctx context.Context, supplierID, purchaserID domain.CompanyID) (bool, error) {
	var exists bool
	err := conn(ctx, r.pool).QueryRow(ctx, activeLinkSQL, supplierID.UUID, purchaserID.UUID).Scan(&exists)
	return exists, err
}

func (r *SupplyLinkRepository) ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.SupplyLink, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+selectLinkCols+` FROM supply_links
		WHERE supplier_id = $1 OR purchaser_id = $1 ORDER BY created_at`, companyID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.SupplyLink
	for rows.Next() {
		var l domain.SupplyLink
		if err := rows.Scan(&l.ID.UUID, &l.SupplierID.UUID, &l.PurchaserID.UUID,
			&l.PendingSupplierConf, &l.PendingPurchaserConf); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *SupplyLinkRepository) Update(ctx context.Context, link *domain.SupplyLink) error {
	_, err := conn(ctx, r.pool).Exec(ctx, updateLinkSQL,
		link.PendingSupplierConf, link.PendingPurchaserConf, link.ID.UUID)
	return err
}

func (r *SupplyLinkRepository) Delete(ctx context.Context, id domain.SupplyLinkID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, deleteLinkSQL, id.UUID)
	return err
}

func scanLink(row pgx.Row) (*domain.SupplyLink, error) {
	var l domain.SupplyLink
	err := row.Scan(&l.ID.UUID, &l.SupplierID.UUID, &l.PurchaserID.UUID,
		&l.PendingSupplierConf, &l.PendingPurchaserConf)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

var _ ports.SupplyLinkRepository = (*SupplyLinkRepository)(nil)
