package postgres

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertOrderSQL = `INSERT INTO orders
		(id, supplier_id, purchaser_id, placed_by, accepted_by, invoice_no, total, discount, discount_type, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	selectOrderCols = `id, supplier_id, purchaser_id, placed_by, accepted_by, invoice_no, total, discount, discount_type, notes, created_at, updated_at`
	updateOrderSQL  = `UPDATE orders
		SET accepted_by = $1, total = $2, discount = $3, discount_type = $4, notes = $5, updated_at = $6
		WHERE id = $7`
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	_, err := conn(ctx, r.pool).Exec(ctx, insertOrderSQL,
		order.ID.UUID, order.SupplierID.UUID, order.PurchaserID.UUID,
		order.PlacedBy.UUID, acceptedByParam(order), order.InvoiceNo,
		order.Total, order.Discount, order.DiscountType, order.Notes,
		order.CreatedAt, order.UpdatedAt)
	return mapWriteError(err)
}

func (r *OrderRepository) GetByID(ctx context.Context, id domain.OrderID) (*domain.Order, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+selectOrderCols+` FROM orders WHERE id = $1`, id.UUID)
	o, err := scanOrder(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Order, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+selectOrderCols+` FROM orders
		WHERE supplier_id = $1 OR purchaser_id = $1 ORDER BY created_at DESC`, companyID.UUID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	_, err := conn(ctx, r.pool).Exec(ctx, updateOrderSQL,
		acceptedByParam(order), order.Total, order.Discount, order.DiscountType,
		order.Notes, order.UpdatedAt, order.ID.UUID)
	return err
}

func acceptedByParam(o *domain.Order) *uuid.UUID {
	if o.AcceptedBy == nil {
		return nil
	}
	return &o.AcceptedBy.UUID
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	var acceptedBy *uuid.UUID
	err := row.Scan(&o.ID.UUID, &o.SupplierID.UUID, &o.PurchaserID.UUID,
		&o.PlacedBy.UUID, &acceptedBy, &o.InvoiceNo,
		&o.Total, &o.Discount, &o.DiscountType, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if acceptedBy != nil {
		id := domain.NewUserID(*acceptedBy)
		o.AcceptedBy = &id
	}
	return &o, nil
}

var _ ports.OrderRepository = (*OrderRepository)(nil)
