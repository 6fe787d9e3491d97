package ports

import (
	"context"

	"github.com/ankurnehra/bodega/internal/domain"
)

// Lookup methods return (nil, nil) when no row matches; callers translate
// that into a NotFound result.

// UserRepository defines persistence for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id domain.UserID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id domain.UserID, name string) error
}

// CompanyRepository defines persistence for companies. Name and code
// uniqueness is enforced by the store and surfaces as a ValidationError.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByID(ctx context.Context, id domain.CompanyID) (*domain.Company, error)
	GetByCode(ctx context.Context, code string) (*domain.Company, error)
}

// MembershipRepository defines persistence for user-company memberships.
// GetByIDForUpdate locks the row for the duration of the surrounding
// transaction so concurrent confirmations cannot lose updates.
type MembershipRepository interface {
	Create(ctx context.Context, m *domain.Membership) error
	GetByID(ctx context.Context, id domain.MembershipID) (*domain.Membership, error)
	GetByIDForUpdate(ctx context.Context, id domain.MembershipID) (*domain.Membership, error)
	GetByUserAndCompany(ctx context.Context, userID domain.UserID, companyID domain.CompanyID) (*domain.Membership, error)
	ListForUser(ctx context.Context, userID domain.UserID) ([]*domain.Membership, error)
	ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Membership, error)
	Update(ctx context.Context, m *domain.Membership) error
	Delete(ctx context.Context, id domain.MembershipID) error
}

// SupplyLinkRepository defines persistence for supply links. The store
// enforces at most one link per ordered (supplier, purchaser) pair.
type SupplyLinkRepository interface {
	Create(ctx context.Context, link *domain.SupplyLink) error
	GetByID(ctx context.Context, id domain.SupplyLinkID) (*domain.SupplyLink, error)
	GetByIDForUpdate(ctx context.Context, id domain.SupplyLinkID) (*domain.SupplyLink, error)
	// ActiveLinkExists reports whether a fully confirmed link exists for the
	// ordered pair.
	ActiveLinkExists(ctx context.Context, supplierID, purchaserID domain.CompanyID) (bool, error)
	ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.SupplyLink, error)
	Update(ctx context.Context, link *domain.SupplyLink) error
	Delete(ctx context.Context, id domain.SupplyLinkID) error
}

// ItemRepository defines persistence for company-owned catalog items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id domain.ItemID) (*domain.Item, error)
	ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id domain.ItemID) error
}

// OrderRepository defines persistence for orders. Invoice numbers are
// unique per supplier (store constraint).
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id domain.OrderID) (*domain.Order, error)
	ListForCompany(ctx context.Context, companyID domain.CompanyID) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) error
}

// TxManager wraps a function in one store transaction. Repository calls made
// with the inner context share that transaction; the load-filter-write of a
// confirmation update is atomic per entity.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
