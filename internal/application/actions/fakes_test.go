package actions

import (
	"context"

	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
)

// In-memory stand-ins for the postgres repositories. They enforce the same
// uniqueness rules the store does so validation paths are exercised.

type memUsers struct {
	users map[domain.UserID]*domain.User
}

func newMemUsers() *memUsers { return &memUsers{users: map[domain.UserID]*domain.User{}} }

func (s *memUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return domerrors.NewValidationError("email", "has already been taken")
		}
	}
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *memUsers) GetByID(_ context.Context, id domain.UserID) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memUsers) UpdateName(_ context.Context, id domain.UserID, name string) error {
	if u, ok := s.users[id]; ok {
		u.Name = name
	}
	return nil
}

type memCompanies struct {
	companies map[domain.CompanyID]*domain.Company
}

func newMemCompanies() *memCompanies {
	return &memCompanies{companies: map[domain.CompanyID]*domain.Company{}}
}

func (s *memCompanies) Create(_ context.Context, c *domain.Company) error {
	for _, existing := range s.companies {
		if existing.Name == c.Name {
			return domerrors.NewValidationError("name", "has already been taken")
		}
		if existing.Code == c.Code {
			return domerrors.NewValidationError("code", "has already been taken")
		}
	}
	cp := *c
	s.companies[c.ID] = &cp
	return nil
}

func (s *memCompanies) GetByID(_ context.Context, id domain.CompanyID) (*domain.Company, error) {
	if c, ok := s.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (s *memCompanies) GetByCode(_ context.Context, code string) (*domain.Company, error) {
	for _, c := range s.companies {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

type memMemberships struct {
	memberships map[domain.MembershipID]*domain.Membership
}

func newMemMemberships() *memMemberships {
	return &memMemberships{memberships: map[domain.MembershipID]*domain.Membership{}}
}

func (s *memMemberships) Create(_ context.Context, m *domain.Membership) error {
	for _, existing := range s.memberships {
		if existing.UserID == m.UserID && existing.CompanyID == m.CompanyID {
			return domerrors.NewValidationError("user_id", "has already been taken")
		}
	}
	cp := *m
	s.memberships[m.ID] = &cp
	return nil
}

func (s *memMemberships) GetByID(_ context.Context, id domain.MembershipID) (*domain.Membership, error) {
	if m, ok := s.memberships[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (s *memMemberships) GetByIDForUpdate(ctx context.Context, id domain.MembershipID) (*domain.Membership, error) {
	return s.GetByID(ctx, id)
}

func (s *memMemberships) GetByUserAndCompany(_ context.Context, userID domain.UserID, companyID domain.CompanyID) (*domain.Membership, error) {
	for _, m := range s.memberships {
		if m.UserID == userID && m.CompanyID == companyID {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memMemberships) ListForUser(_ context.Context, userID domain.UserID) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for _, m := range s.memberships {
		if m.UserID == userID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memMemberships) ListForCompany(_ context.Context, companyID domain.CompanyID) ([]*domain.Membership, error) {
	var out []*domain.Membership
	for _, m := range s.memberships {
		if m.CompanyID == companyID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memMemberships) Update(_ context.Context, m *domain.Membership) error {
	if _, ok := s.memberships[m.ID]; !ok {
		return domerrors.ErrNotFound
	}
	cp := *m
	s.memberships[m.ID] = &cp
	return nil
}

func (s *memMemberships) Delete(_ context.Context, id domain.MembershipID) error {
	delete(s.memberships, id)
	return nil
}

type memLinks struct {
	links map[domain.SupplyLinkID]*domain.SupplyLink
}

func newMemLinks() *memLinks { return &memLinks{links: map[domain.SupplyLinkID]*domain.SupplyLink{}} }

func (s *memLinks) Create(_ context.Context, l *domain.SupplyLink) error {
	for _, existing := range s.links {
		if existing.SupplierID == l.SupplierID && existing.PurchaserID == l.PurchaserID {
			return domerrors.NewValidationError("purchaser_id", "has already been taken")
		}
	}
	cp := *l
	s.links[l.ID] = &cp
	return nil
}

func (s *memLinks) GetByID(_ context.Context, id domain.SupplyLinkID) (*domain.SupplyLink, error) {
	if l, ok := s.links[id]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (s *memLinks) GetByIDForUpdate(ctx context.Context, id domain.SupplyLinkID) (*domain.SupplyLink, error) {
	return s.GetByID(ctx, id)
}

func (s *memLinks) ActiveLinkExists(_ context.Context, supplierID, purchaserID domain.CompanyID) (bool, error) {
	for _, l := range s.links {
		if l.SupplierID == supplierID && l.PurchaserID == purchaserID && l.Active() {
			return true, nil
		}
	}
	return false, nil
}

func (s *memLinks) ListForCompany(_ context.Context, companyID domain.CompanyID) ([]*domain.SupplyLink, error) {
	var out []*domain.SupplyLink
	for _, l := range s.links {
		if l.SupplierID == companyID || l.PurchaserID == companyID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memLinks) Update(_ context.Context, l *domain.SupplyLink) error {
	if _, ok := s.links[l.ID]; !ok {
		return domerrors.ErrNotFound
	}
	cp := *l
	s.links[l.ID] = &cp
	return nil
}

func (s *memLinks) Delete(_ context.Context, id domain.SupplyLinkID) error {
	delete(s.links, id)
	return nil
}

type memItems struct {
	items map[domain.ItemID]*domain.Item
}

func newMemItems() *memItems { return &memItems{items: map[domain.ItemID]*domain.Item{}} }

func (s *memItems) Create(_ context.Context, i *domain.Item) error {
	cp := *i
	s.items[i.ID] = &cp
	return nil
}

func (s *memItems) GetByID(_ context.Context, id domain.ItemID) (*domain.Item, error) {
	if i, ok := s.items[id]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}

func (s *memItems) ListForCompany(_ context.Context, companyID domain.CompanyID) ([]*domain.Item, error) {
	var out []*domain.Item
	for _, i := range s.items {
		if i.CompanyID == companyID {
			cp := *i
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memItems) Update(_ context.Context, i *domain.Item) error {
	if _, ok := s.items[i.ID]; !ok {
		return domerrors.ErrNotFound
	}
	cp := *i
	s.items[i.ID] = &cp
	return nil
}

func (s *memItems) Delete(_ context.Context, id domain.ItemID) error {
	delete(s.items, id)
	return nil
}

type memOrders struct {
	orders map[domain.OrderID]*domain.Order
}

func newMemOrders() *memOrders { return &memOrders{orders: map[domain.OrderID]*domain.Order{}} }

func (s *memOrders) Create(_ context.Context, o *domain.Order) error {
	for _, existing := range s.orders {
		if existing.SupplierID == o.SupplierID && existing.InvoiceNo == o.InvoiceNo {
			return domerrors.NewValidationError("invoice_no", "has already been taken")
		}
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *memOrders) GetByID(_ context.Context, id domain.OrderID) (*domain.Order, error) {
	if o, ok := s.orders[id]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (s *memOrders) ListForCompany(_ context.Context, companyID domain.CompanyID) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range s.orders {
		if o.SupplierID == companyID || o.PurchaserID == companyID {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memOrders) Update(_ context.Context, o *domain.Order) error {
	if _, ok := s.orders[o.ID]; !ok {
		return domerrors.ErrNotFound
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

// memTx runs the function directly; the fakes are already atomic enough for
// single-goroutine tests.
type memTx struct{}

func (memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// memQueue records enqueued notification kinds.
type memQueue struct {
	events []string
}

func (q *memQueue) EnqueueLinkInvite(_ context.Context, linkID, supplierID, purchaserID string) error {
	q.events = append(q.events, "link:invite")
	return nil
}

func (q *memQueue) EnqueueLinkConfirmed(_ context.Context, linkID string) error {
	q.events = append(q.events, "link:confirmed")
	return nil
}

func (q *memQueue) EnqueueMembershipInvite(_ context.Context, membershipID, companyID, userID string) error {
	q.events = append(q.events, "membership:invite")
	return nil
}

func (q *memQueue) EnqueueOrderPlaced(_ context.Context, orderID, supplierID string) error {
	q.events = append(q.events, "order:placed")
	return nil
}
