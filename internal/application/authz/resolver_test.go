package authz

import (
	"context"
	"testing"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	"github.com/google/uuid"
)

type stubMemberships struct {
	ports.MembershipRepository
	byUser map[domain.UserID][]*domain.Membership
}

func (s *stubMemberships) ListForUser(_ context.Context, userID domain.UserID) ([]*domain.Membership, error) {
	return s.byUser[userID], nil
}

type stubLinks struct {
	ports.SupplyLinkRepository
	links []*domain.SupplyLink
}

func (s *stubLinks) ActiveLinkExists(_ context.Context, supplierID, purchaserID domain.CompanyID) (bool, error) {
	for _, l := range s.links {
		if l.SupplierID == supplierID && l.PurchaserID == purchaserID && l.Active() {
			return true, nil
		}
	}
	return false, nil
}

func newUserID() domain.UserID       { return domain.NewUserID(uuid.New()) }
func newCompanyID() domain.CompanyID { return domain.NewCompanyID(uuid.New()) }

func membership(user domain.UserID, company domain.CompanyID, admin, active bool) *domain.Membership {
	return &domain.Membership{
		ID:                domain.NewMembershipID(uuid.New()),
		UserID:            user,
		CompanyID:         company,
		Admin:             admin,
		PendingAdminConf:  !active,
		PendingMemberConf: !active,
	}
}

func TestResolveSelfClasses(t *testing.T) {
	acme := newCompanyID()
	alice, eve := newUserID(), newUserID()
	memberships := &stubMemberships{byUser: map[domain.UserID][]*domain.Membership{
		alice: {membership(alice, acme, true, true)},
		eve:   {membership(eve, acme, false, true)},
	}}
	r := NewResolver(memberships, &stubLinks{})

	set, err := r.Resolve(context.Background(), alice, acme)
	if err != nil {
		t.Fatal(err)
	}
	if !set.Has(domain.SelfAdmin) || set.Has(domain.SelfMember) {
		t.Errorf("admin membership resolves to SelfAdmin only, got %v", set.Classes())
	}

	set, _ = r.Resolve(context.Background(), eve, acme)
	if !set.Has(domain.SelfMember) || set.Has(domain.SelfAdmin) {
		t.Errorf("plain membership resolves to SelfMember only, got %v", set.Classes())
	}
}

func TestResolveCrossCompanyClasses(t *testing.T) {
	acme, cyberdyne, duff := newCompanyID(), newCompanyID(), newCompanyID()
	carol, david := newUserID(), newUserID()
	memberships := &stubMemberships{byUser: map[domain.UserID][]*domain.Membership{
		carol: {membership(carol, cyberdyne, false, true)},
		david: {membership(david, duff, false, true)},
	}}
	links := &stubLinks{links: []*domain.SupplyLink{
		{SupplierID: cyberdyne, PurchaserID: acme}, // active: both flags false
		{SupplierID: acme, PurchaserID: duff},
	}}
	r := NewResolver(memberships, links)

	set, err := r.Resolve(context.Background(), carol, acme)
	if err != nil {
		t.Fatal(err)
	}
	if !set.Has(domain.SupplierMember) {
		t.Errorf("carol's company supplies acme: want SupplierMember, got %v", set.Classes())
	}
	if set.Has(domain.PurchaserMember) {
		t.Error("the relationship is one-directional")
	}

	set, _ = r.Resolve(context.Background(), david, acme)
	if !set.Has(domain.PurchaserMember) {
		t.Errorf("david's company purchases from acme: want PurchaserMember, got %v", set.Classes())
	}
}

func TestResolvePendingEdgesGrantNothing(t *testing.T) {
	acme, duff := newCompanyID(), newCompanyID()
	bob, mallory := newUserID(), newUserID()
	memberships := &stubMemberships{byUser: map[domain.UserID][]*domain.Membership{
		// Pending membership in acme itself.
		bob: {membership(bob, acme, true, false)},
		// Active membership, but the link to acme is half-confirmed.
		mallory: {membership(mallory, duff, false, true)},
	}}
	links := &stubLinks{links: []*domain.SupplyLink{
		{SupplierID: acme, PurchaserID: duff, PendingPurchaserConf: true},
	}}
	r := NewResolver(memberships, links)

	for _, user := range []domain.UserID{bob, mallory} {
		set, err := r.Resolve(context.Background(), user, acme)
		if err != nil {
			t.Fatal(err)
		}
		if !set.Has(domain.Unaffiliated) || set != domain.NewClassSet(domain.Unaffiliated) {
			t.Errorf("pending edges must resolve to Unaffiliated, got %v", set.Classes())
		}
	}
}

func TestResolveUnknownUser(t *testing.T) {
	r := NewResolver(&stubMemberships{byUser: map[domain.UserID][]*domain.Membership{}}, &stubLinks{})
	set, err := r.Resolve(context.Background(), newUserID(), newCompanyID())
	if err != nil {
		t.Fatal(err)
	}
	if set != domain.NewClassSet(domain.Unaffiliated) {
		t.Errorf("user with no memberships is Unaffiliated everywhere, got %v", set.Classes())
	}
}
