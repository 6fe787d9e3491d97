package postgres

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	insertUserSQL = `INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	selectUserSQL        = `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE id = $1`
	selectUserByEmailSQL = `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	updateUserNameSQL    = `UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2`
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := conn(ctx, r.pool).Exec(ctx, insertUserSQL,
		user.ID.UUID, user.Name, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	return mapWriteError(err)
}

func (r *UserRepository) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return r.scanOne(conn(ctx, r.pool).QueryRow(ctx, selectUserSQL, id.UUID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(conn(ctx, r.pool).QueryRow(ctx, selectUserByEmailSQL, email))
}

func (r *UserRepository) UpdateName(ctx context.Context, id domain.UserID, name string) error {
	_, err := conn(ctx, r.pool).Exec(ctx, updateUserNameSQL, name, id.UUID)
	return err
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID.UUID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
