package domain

import (
	"testing"

	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
)

func TestSupplyLinkConfirmationLattice(t *testing.T) {
	tests := []struct {
		name    string
		confirm []Side
		active  bool
	}{
		{"fresh link is not active", nil, false},
		{"supplier alone is not active", []Side{SideA}, false},
		{"purchaser alone is not active", []Side{SideB}, false},
		{"both sides activate", []Side{SideA, SideB}, true},
		{"order does not matter", []Side{SideB, SideA}, true},
		{"confirm is idempotent", []Side{SideA, SideA, SideB}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := &SupplyLink{PendingSupplierConf: true, PendingPurchaserConf: true}
			for _, s := range tt.confirm {
				Confirm(link, s)
			}
			if got := link.Active(); got != tt.active {
				t.Errorf("Active() = %v, want %v", got, tt.active)
			}
		})
	}
}

func TestRevokeBeforeActivation(t *testing.T) {
	link := &SupplyLink{PendingSupplierConf: true, PendingPurchaserConf: true}
	Confirm(link, SideA)
	if err := Revoke(link, SideA); err != nil {
		t.Fatalf("Revoke before activation: %v", err)
	}
	if !link.PendingSupplierConf {
		t.Error("supplier side should be pending again after revoke")
	}
}

func TestRevokeAfterActivationIsLocked(t *testing.T) {
	link := &SupplyLink{}
	if !link.Active() {
		t.Fatal("link with both flags false should be active")
	}
	if err := Revoke(link, SideB); err != domerrors.ErrConfirmationLocked {
		t.Fatalf("Revoke on active link: got %v, want ErrConfirmationLocked", err)
	}
	if link.PendingPurchaserConf {
		t.Error("failed revoke must not mutate the link")
	}
}

func TestMembershipSharesTheProtocol(t *testing.T) {
	m := &Membership{PendingAdminConf: true, PendingMemberConf: true}
	Confirm(m, SideA)
	if m.Active() {
		t.Error("admin confirmation alone must not activate a membership")
	}
	Confirm(m, SideB)
	if !m.Active() {
		t.Error("both confirmations should activate the membership")
	}
	if m.PendingAdminConf || m.PendingMemberConf {
		t.Error("active membership should have both flags cleared")
	}
}

func TestSupplyLinkSideMapping(t *testing.T) {
	link := &SupplyLink{PendingSupplierConf: true, PendingPurchaserConf: true}
	Confirm(link, link.SideOf(RolePurchaser))
	if link.PendingPurchaserConf {
		t.Error("purchaser role must map to the purchaser flag")
	}
	if !link.PendingSupplierConf {
		t.Error("supplier flag must be untouched")
	}
}
