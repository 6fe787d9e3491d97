package actions

import (
	"context"
	"testing"

	"github.com/ankurnehra/bodega/internal/domain"
)

type membershipCast struct {
	w     *world
	acme  domain.CompanyID
	alice domain.UserID // admin of acme
	eve   domain.UserID // plain member of acme
	frank domain.UserID // outsider
}

func newMembershipCast() *membershipCast {
	w := newWorld()
	c := &membershipCast{w: w}
	c.acme = w.addCompany("Acme", "ACME")
	c.alice = w.addUser("alice")
	w.addMember(c.alice, c.acme, true)
	c.eve = w.addUser("eve")
	w.addMember(c.eve, c.acme, false)
	c.frank = w.addUser("frank")
	return c
}

func TestInviteThenAcceptHandshake(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()

	// Admin invites frank. Admin-side consent is still a separate act.
	created, err := c.w.membershipActions.Create(ctx, c.alice, c.acme, c.frank, false)
	if err != nil {
		t.Fatal(err)
	}
	if !created.OK() {
		t.Fatalf("invite: status %v", created.Status)
	}
	m := created.Membership
	if !m.PendingAdminConf || !m.PendingMemberConf {
		t.Fatal("a fresh membership starts fully pending")
	}
	invited := false
	for _, e := range c.w.queue.events {
		if e == "membership:invite" {
			invited = true
		}
	}
	if !invited {
		t.Error("invite should enqueue a notification")
	}

	// Admin confirms the company side.
	res, err := c.w.membershipActions.UpdateConfirmation(ctx, c.alice, c.acme, m.ID, MembershipFlagEdits{
		PendingAdminConf: boolPtr(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() || res.Membership.Active() {
		t.Fatalf("one-sided confirmation: active=%v", res.Membership.Active())
	}

	// Frank accepts; the membership goes active.
	res, err = c.w.membershipActions.UpdateConfirmation(ctx, c.frank, c.acme, m.ID, MembershipFlagEdits{
		PendingMemberConf: boolPtr(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Membership.Active() {
		t.Error("both confirmations should activate the membership")
	}
}

func TestJoinRequestByOutsider(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()

	// Frank asks to join acme; being the subject is enough to create.
	res, err := c.w.membershipActions.Create(ctx, c.frank, c.acme, c.frank, false)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() {
		t.Fatalf("join request: status %v", res.Status)
	}
	if !res.Membership.PendingAdminConf || !res.Membership.PendingMemberConf {
		t.Error("a join request still needs both sides to confirm")
	}
}

func TestMemberCannotConfirmAdminSide(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()
	created, _ := c.w.membershipActions.Create(ctx, c.frank, c.acme, c.frank, false)
	m := created.Membership

	res, err := c.w.membershipActions.UpdateConfirmation(ctx, c.frank, c.acme, m.ID, MembershipFlagEdits{
		PendingAdminConf:  boolPtr(false),
		PendingMemberConf: boolPtr(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK() {
		t.Fatalf("update: status %v", res.Status)
	}
	if !res.Membership.PendingAdminConf {
		t.Error("the admin flag is outside the member's scope")
	}
	if res.Membership.PendingMemberConf {
		t.Error("the member's own flag should be written")
	}
}

func TestBystanderDeniedMembershipWrites(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()
	created, _ := c.w.membershipActions.Create(ctx, c.alice, c.acme, c.frank, false)
	m := created.Membership

	// Eve is plain staff of acme, neither an admin nor the subject.
	res, _ := c.w.membershipActions.UpdateConfirmation(ctx, c.eve, c.acme, m.ID, MembershipFlagEdits{
		PendingMemberConf: boolPtr(false),
	})
	if res.Status != Denied {
		t.Fatalf("bystander update: status %v, want Denied", res.Status)
	}

	del, _ := c.w.membershipActions.Delete(ctx, c.eve, c.acme, m.ID)
	if del.Status != Denied {
		t.Fatalf("bystander delete: status %v, want Denied", del.Status)
	}
}

func TestMembershipRevokeLocksOnceActive(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()

	// Eve's membership is already active; neither side may walk back.
	m, _ := c.w.memberships.GetByUserAndCompany(ctx, c.eve, c.acme)

	res, err := c.w.membershipActions.UpdateConfirmation(ctx, c.eve, c.acme, m.ID, MembershipFlagEdits{
		PendingMemberConf: boolPtr(true),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != ValidationFailed {
		t.Fatalf("revoke on active membership: status %v, want ValidationFailed", res.Status)
	}

	// Leaving is still allowed: removal is explicit, not a flag walk-back.
	del, _ := c.w.membershipActions.Delete(ctx, c.eve, c.acme, m.ID)
	if !del.OK() {
		t.Fatalf("member leaving: status %v", del.Status)
	}
	if got, _ := c.w.memberships.GetByID(ctx, m.ID); got != nil {
		t.Error("delete should remove the membership")
	}
}

func TestAdminRemovesStaff(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()
	m, _ := c.w.memberships.GetByUserAndCompany(ctx, c.eve, c.acme)

	res, _ := c.w.membershipActions.Delete(ctx, c.alice, c.acme, m.ID)
	if !res.OK() {
		t.Fatalf("admin removing staff: status %v", res.Status)
	}
}

func TestDuplicateMembershipFailsValidation(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()

	res, err := c.w.membershipActions.Create(ctx, c.alice, c.acme, c.eve, false)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != ValidationFailed {
		t.Fatalf("duplicate membership: status %v, want ValidationFailed", res.Status)
	}
}

func TestMembershipScopedToRouteCompany(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()
	other := c.w.addCompany("Duff", "DUFF")
	foreign := c.w.addMember(c.frank, other, false)

	// Acme's admin reaching a duff membership through acme sees nothing.
	res, _ := c.w.membershipActions.UpdateConfirmation(ctx, c.alice, c.acme, foreign, MembershipFlagEdits{
		PendingAdminConf: boolPtr(false),
	})
	if res.Status != NotFound {
		t.Fatalf("foreign membership through acme: status %v, want NotFound", res.Status)
	}
}

func TestConfirmAfterDeleteIsNotFound(t *testing.T) {
	c := newMembershipCast()
	ctx := context.Background()
	created, _ := c.w.membershipActions.Create(ctx, c.alice, c.acme, c.frank, false)
	m := created.Membership

	if res, _ := c.w.membershipActions.Delete(ctx, c.alice, c.acme, m.ID); !res.OK() {
		t.Fatalf("delete: status %v", res.Status)
	}
	res, _ := c.w.membershipActions.UpdateConfirmation(ctx, c.frank, c.acme, m.ID, MembershipFlagEdits{
		PendingMemberConf: boolPtr(false),
	})
	if res.Status != NotFound {
		t.Fatalf("confirm after delete: status %v, want NotFound", res.Status)
	}
	if got, _ := c.w.memberships.GetByID(ctx, m.ID); got != nil {
		t.Error("confirm after delete must not recreate the membership")
	}
}
