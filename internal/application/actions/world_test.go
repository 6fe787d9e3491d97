package actions

import (
	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/google/uuid"
)

// world wires every façade against the in-memory fakes and offers terse
// fixture builders in the shape of the original request specs.
type world struct {
	users       *memUsers
	companies   *memCompanies
	memberships *memMemberships
	links       *memLinks
	items       *memItems
	orders      *memOrders
	queue       *memQueue

	itemActions       *ItemActions
	linkActions       *SupplyLinkActions
	membershipActions *MembershipActions
	companyActions    *CompanyActions
	orderActions      *OrderActions
}

func newWorld() *world {
	w := &world{
		users:       newMemUsers(),
		companies:   newMemCompanies(),
		memberships: newMemMemberships(),
		links:       newMemLinks(),
		items:       newMemItems(),
		orders:      newMemOrders(),
		queue:       &memQueue{},
	}
	resolver := authz.NewResolver(w.memberships, w.links)
	tx := memTx{}
	w.itemActions = NewItemActions(w.companies, w.items, resolver, tx)
	w.linkActions = NewSupplyLinkActions(w.companies, w.links, resolver, tx, w.queue)
	w.membershipActions = NewMembershipActions(w.companies, w.users, w.memberships, resolver, tx, w.queue)
	w.companyActions = NewCompanyActions(w.companies, w.memberships, resolver, tx)
	w.orderActions = NewOrderActions(w.companies, w.links, w.orders, resolver, tx, w.queue)
	return w
}

func (w *world) addUser(name string) domain.UserID {
	u := &domain.User{
		ID:    domain.NewUserID(uuid.New()),
		Name:  name,
		Email: name + "@example.com",
	}
	w.users.users[u.ID] = u
	return u.ID
}

func (w *world) addCompany(name, code string) domain.CompanyID {
	c := &domain.Company{ID: domain.NewCompanyID(uuid.New()), Name: name, Code: code}
	w.companies.companies[c.ID] = c
	return c.ID
}

// addMember adds an active membership (both confirmations already done).
func (w *world) addMember(user domain.UserID, company domain.CompanyID, admin bool) domain.MembershipID {
	m := &domain.Membership{
		ID:        domain.NewMembershipID(uuid.New()),
		UserID:    user,
		CompanyID: company,
		Admin:     admin,
	}
	w.memberships.memberships[m.ID] = m
	return m.ID
}

// addLink adds a supply link; active controls whether both sides have
// already confirmed.
func (w *world) addLink(supplier, purchaser domain.CompanyID, active bool) domain.SupplyLinkID {
	l := &domain.SupplyLink{
		ID:                   domain.NewSupplyLinkID(uuid.New()),
		SupplierID:           supplier,
		PurchaserID:          purchaser,
		PendingSupplierConf:  !active,
		PendingPurchaserConf: !active,
	}
	w.links.links[l.ID] = l
	return l.ID
}

func (w *world) addItem(company domain.CompanyID, name string, price int) domain.ItemID {
	i := &domain.Item{
		ID:        domain.NewItemID(uuid.New()),
		CompanyID: company,
		Name:      name,
		Price:     price,
		UnitSize:  "1kg",
	}
	w.items.items[i.ID] = i
	return i.ID
}

func boolPtr(v bool) *bool { return &v }
