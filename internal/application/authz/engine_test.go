package authz

import (
	"testing"

	"github.com/ankurnehra/bodega/internal/domain"
)

func TestAuthorizeItemMatrix(t *testing.T) {
	reads := []Operation{OpList, OpView}
	writes := []Operation{OpCreate, OpUpdate, OpDelete}

	tests := []struct {
		name          string
		classes       domain.ClassSet
		readAllowed   bool
		writeAllowed  bool
		denyRedirect  RedirectTarget
	}{
		{"self admin", domain.NewClassSet(domain.SelfAdmin), true, true, RedirectNone},
		{"self member", domain.NewClassSet(domain.SelfMember), true, false, RedirectItemList},
		{"purchaser member", domain.NewClassSet(domain.PurchaserMember), true, false, RedirectItemList},
		{"supplier member", domain.NewClassSet(domain.SupplierMember), false, false, RedirectCompanyPage},
		{"unaffiliated", domain.NewClassSet(domain.Unaffiliated), false, false, RedirectCompanyPage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, op := range reads {
				v := AuthorizeItem(tt.classes, op)
				if v.Allowed != tt.readAllowed {
					t.Errorf("%s: allowed = %v, want %v", op, v.Allowed, tt.readAllowed)
				}
				if !v.Allowed && v.Redirect != tt.denyRedirect {
					t.Errorf("%s: redirect = %v, want %v", op, v.Redirect, tt.denyRedirect)
				}
			}
			for _, op := range writes {
				v := AuthorizeItem(tt.classes, op)
				if v.Allowed != tt.writeAllowed {
					t.Errorf("%s: allowed = %v, want %v", op, v.Allowed, tt.writeAllowed)
				}
				if !v.Allowed && v.Redirect != tt.denyRedirect {
					t.Errorf("%s: redirect = %v, want %v", op, v.Redirect, tt.denyRedirect)
				}
			}
		})
	}
}

func TestAuthorizeItemPurchaserBeatsSupplier(t *testing.T) {
	// Links in both directions: the purchaser relationship grants reads even
	// though the supplier one alone would not.
	classes := domain.NewClassSet(domain.SupplierMember, domain.PurchaserMember)
	if v := AuthorizeItem(classes, OpList); !v.Allowed {
		t.Error("purchaser member should read despite also being a supplier member")
	}
	if v := AuthorizeItem(classes, OpUpdate); v.Allowed {
		t.Error("neither relationship grants writes")
	}
}

func TestAuthorizeLinkScope(t *testing.T) {
	admin := domain.NewClassSet(domain.SelfAdmin)
	member := domain.NewClassSet(domain.SelfMember)
	none := domain.NewClassSet(domain.Unaffiliated)

	tests := []struct {
		name      string
		supplier  domain.ClassSet
		purchaser domain.ClassSet
		allowed   bool
		scope     FieldScope
	}{
		{"supplier admin", admin, none, true, FieldPendingSupplierConf},
		{"purchaser admin", none, admin, true, FieldPendingPurchaserConf},
		{"admin of both sides", admin, admin, true, FieldPendingSupplierConf | FieldPendingPurchaserConf},
		{"plain member of supplier", member, none, false, 0},
		{"no relationship", none, none, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, op := range []Operation{OpCreate, OpUpdate, OpDelete} {
				v := AuthorizeLink(tt.supplier, tt.purchaser, op)
				if v.Allowed != tt.allowed {
					t.Fatalf("%s: allowed = %v, want %v", op, v.Allowed, tt.allowed)
				}
				if v.Scope != tt.scope {
					t.Errorf("%s: scope = %b, want %b", op, v.Scope, tt.scope)
				}
				if !v.Allowed && v.Redirect != RedirectCompanyPage {
					t.Errorf("%s: denied link ops redirect to the company page", op)
				}
			}
		})
	}
}

func TestAuthorizeMembershipScope(t *testing.T) {
	admin := domain.NewClassSet(domain.SelfAdmin)
	none := domain.NewClassSet(domain.Unaffiliated)

	v := AuthorizeMembership(admin, false, OpUpdate)
	if !v.Allowed || v.Scope != FieldPendingAdminConf {
		t.Errorf("company admin writes only the admin flag, got scope %b", v.Scope)
	}
	v = AuthorizeMembership(none, true, OpUpdate)
	if !v.Allowed || v.Scope != FieldPendingMemberConf {
		t.Errorf("the member writes only the member flag, got scope %b", v.Scope)
	}
	v = AuthorizeMembership(admin, true, OpUpdate)
	if !v.Allowed || v.Scope != FieldPendingAdminConf|FieldPendingMemberConf {
		t.Errorf("admin confirming own membership writes both flags, got scope %b", v.Scope)
	}
	v = AuthorizeMembership(none, false, OpUpdate)
	if v.Allowed {
		t.Error("a bystander may not touch the membership")
	}
}
