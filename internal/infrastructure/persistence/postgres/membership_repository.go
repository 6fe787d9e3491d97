package postgres

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertMembershipSQL = `INSERT INTO memberships
		(id, user_id, company_id, admin, pending_admin_conf, pending_member_conf, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`
	selectMembershipCols = `id, user_id, company_id, admin, pending_admin_conf, pending_member_conf`
	updateMembershipSQL  = `UPDATE memberships
		SET admin = $1, pending_admin_conf = $2, pending_member_conf = $3, updated_at = NOW()
		WHERE id = $4`
	deleteMembershipSQL = `DELETE FROM memberships WHERE id = $1`
)

type MembershipRepository struct {
	pool *pgxpool.Pool
}

func NewMembershipRepository(pool *pgxpool.Pool) *MembershipRepository {
	return &MembershipRepository{pool: pool}
}

func (r *MembershipRepository) Create(ctx context.Context, m *domain.Membership) error {
	_, err := conn(ctx, r.pool).Exec(ctx, insertMembershipSQL,
		m.ID.UUID, m.UserID.UUID, m.CompanyID.UUID, m.Admin, m.PendingAdminConf, m.PendingMemberConf)
	return mapWriteError(err)
}

func (r *MembershipRepository) GetByID(ctx context.Context, id domain.MembershipID) (*domain.Membership, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+selectMembershipCols+` FROM memberships WHERE id = $1`, id.UUID)
	return scanMembership(row)
}

func (r *MembershipRepository) GetByIDForUpdate(ctx context.Context, id domain.MembershipID) (*domain.Membership, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+selectMembershipCols+` FROM memberships WHERE id = $1 FOR UPDATE`, id.UUID)
	return scanMembership(row)
}

func (r *MembershipRepository) GetByUserAndCompany(ctx context.Context, userID domain.UserID, companyID domain.CompanyID) (*domain.Membership, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+selectMembershipCols+` FROM memberships WHERE user_id = $1 AND company_id = $2`,
		userID.UUID, companyID.UUID)
	return scanMembership(row)
}

func (r *MembershipRepository) ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Membership, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+selectMembershipCols+` FROM memberships WHERE user_id = $1 ORDER BY created_at`, userID.UUID)
	if err != nil {
		return nil, err
	}
	return scanMemberships(rows)
}

func (r *MembershipRepository) ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Membership, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+selectMembershipCols+` FROM memberships WHERE company_id = $1 ORDER BY created_at`, companyID.UUID)
	if err != nil {
		return nil, err
	}
	return scanMemberships(rows)
}

func (r *MembershipRepository) Update(ctx context.Context, m *domain.Membership) error {
	_, err := conn(ctx, r.pool).Exec(ctx, updateMembershipSQL,
		m.Admin, m.PendingAdminConf, m.PendingMemberConf, m.ID.UUID)
	return err
}

func (r *MembershipRepository) Delete(ctx context.Context, id domain.MembershipID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, deleteMembershipSQL, id.UUID)
	return err
}

func scanMembership(row pgx.Row) (*domain.Membership, error) {
	var m domain.Membership
	err := row.Scan(&m.ID.UUID, &m.UserID.UUID, &m.CompanyID.UUID,
		&m.Admin, &m.PendingAdminConf, &m.PendingMemberConf)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMemberships(rows pgx.Rows) ([]*domain.Membership, error) {
	defer rows.Close()
	var out []*domain.Membership
	for rows.Next() {
		var m domain.Membership
		if err := rows.Scan(&m.ID.UUID, &m.UserID.UUID, &m.CompanyID.UUID,
			&m.Admin, &m.PendingAdminConf, &m.PendingMemberConf); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

var _ ports.MembershipRepository = (*MembershipRepository)(nil)
