package actions

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/google/uuid"
)

// MembershipFlagEdits mirrors LinkFlagEdits for the membership handshake:
// the company's admins hold one side, the member the other.
type MembershipFlagEdits struct {
	PendingAdminConf  *bool
	PendingMemberConf *bool
}

// MembershipActions performs create/update/delete on memberships.
type MembershipActions struct {
	companies   ports.CompanyRepository
	users       ports.UserRepository
	memberships ports.MembershipRepository
	resolver    *authz.Resolver
	tx          ports.TxManager
	queue       ports.TaskEnqueuer
}

func NewMembershipActions(companies ports.CompanyRepository, users ports.UserRepository, memberships ports.MembershipRepository, resolver *authz.Resolver, tx ports.TxManager, queue ports.TaskEnqueuer) *MembershipActions {
	return &MembershipActions{companies: companies, users: users, memberships: memberships, resolver: resolver, tx: tx, queue: queue}
}

// MembershipResult carries the membership on success.
type MembershipResult struct {
	Result
	Membership *domain.Membership
}

// Create records an invitation (admin acting) or a join request (the user
// acting). Both pending flags start true either way; confirmation is a
// separate act from either side.
func (a *MembershipActions) Create(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, subjectID domain.UserID, admin bool) (*MembershipResult, error) {
	company, err := a.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	subject, err := a.users.GetByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	if company == nil || subject == nil {
		return &MembershipResult{Result: notFound()}, nil
	}
	classes, err := a.resolver.Resolve(ctx, actorID, companyID)
	if err != nil {
		return nil, err
	}
	v := authz.AuthorizeMembership(classes, actorID == subjectID, authz.OpCreate)
	if !v.Allowed {
		return &MembershipResult{Result: denied(companyID, v)}, nil
	}
	m := &domain.Membership{
		ID:                domain.NewMembershipID(uuid.New()),
		UserID:            subjectID,
		CompanyID:         companyID,
		Admin:             admin,
		PendingAdminConf:  true,
		PendingMemberConf: true,
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		return a.memberships.Create(ctx, m)
	})
	if verr := domerrors.AsValidation(err); verr != nil {
		return &MembershipResult{Result: validationFailed(verr, "Membership failed to be created.")}, nil
	}
	if err != nil {
		return nil, err
	}
	_ = a.queue.EnqueueMembershipInvite(ctx, m.ID.String(), companyID.String(), subjectID.String())
	res := &MembershipResult{Membership: m}
	res.Result = success("Membership was successfully created.")
	res.Rerender = []Rerender{{Mode: RerenderAppend, Region: "memberships", NeedsListeners: true}}
	return res, nil
}

// UpdateConfirmation applies confirmation flag edits scoped to the caller's
// side(s) of the handshake, atomically per membership.
func (a *MembershipActions) UpdateConfirmation(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, membershipID domain.MembershipID, edits MembershipFlagEdits) (*MembershipResult, error) {
	m, err := a.loadScoped(ctx, companyID, membershipID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return &MembershipResult{Result: notFound()}, nil
	}
	classes, err := a.resolver.Resolve(ctx, actorID, companyID)
	if err != nil {
		return nil, err
	}
	v := authz.AuthorizeMembership(classes, actorID == m.UserID, authz.OpUpdate)
	if !v.Allowed {
		return &MembershipResult{Result: denied(companyID, v)}, nil
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		locked, err := a.memberships.GetByIDForUpdate(ctx, membershipID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domerrors.ErrNotFound
		}
		if verr := applyMembershipEdits(locked, v.Scope, edits); verr != nil {
			return verr
		}
		if err := a.memberships.Update(ctx, locked); err != nil {
			return err
		}
		m = locked
		return nil
	})
	if err == domerrors.ErrNotFound {
		return &MembershipResult{Result: notFound()}, nil
	}
	if verr := domerrors.AsValidation(err); verr != nil {
		return &MembershipResult{Result: validationFailed(verr, "Membership failed to be updated.")}, nil
	}
	if err != nil {
		return nil, err
	}
	res := &MembershipResult{Membership: m}
	res.Result = success("Membership was successfully updated.")
	res.Rerender = []Rerender{{Mode: RerenderReplace, Region: "membership_" + m.ID.String()}}
	return res, nil
}

// Delete removes a membership: an admin removing staff, or a member leaving.
// Removal is explicit; confirmation actions never delete.
func (a *MembershipActions) Delete(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID, membershipID domain.MembershipID) (*MembershipResult, error) {
	m, err := a.loadScoped(ctx, companyID, membershipID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return &MembershipResult{Result: notFound()}, nil
	}
	classes, err := a.resolver.Resolve(ctx, actorID, companyID)
	if err != nil {
		return nil, err
	}
	v := authz.AuthorizeMembership(classes, actorID == m.UserID, authz.OpDelete)
	if !v.Allowed {
		return &MembershipResult{Result: denied(companyID, v)}, nil
	}
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		return a.memberships.Delete(ctx, membershipID)
	})
	if err != nil {
		return nil, err
	}
	res := &MembershipResult{}
	res.Result = success("Membership was successfully destroyed.")
	res.Rerender = []Rerender{{Mode: RerenderReplace, Region: "memberships"}}
	return res, nil
}

// loadScoped returns the membership only when it belongs to the company in
// whose scope the request was made.
func (a *MembershipActions) loadScoped(ctx context.Context, companyID domain.CompanyID, membershipID domain.MembershipID) (*domain.Membership, error) {
	company, err := a.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	m, err := a.memberships.GetByID(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.CompanyID != companyID {
		return nil, nil
	}
	return m, nil
}

func applyMembershipEdits(m *domain.Membership, scope authz.FieldScope, edits MembershipFlagEdits) *domerrors.ValidationError {
	if edits.PendingAdminConf != nil && scope.Has(authz.FieldPendingAdminConf) {
		if err := applyFlag(m, domain.SideA, *edits.PendingAdminConf); err != nil {
			return domerrors.NewValidationError("pending_admin_conf", err.Error())
		}
	}
	if edits.PendingMemberConf != nil && scope.Has(authz.FieldPendingMemberConf) {
		if err := applyFlag(m, domain.SideB, *edits.PendingMemberConf); err != nil {
			return domerrors.NewValidationError("pending_member_conf", err.Error())
		}
	}
	return nil
}
