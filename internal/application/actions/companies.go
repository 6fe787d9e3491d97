package actions

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/authz"
	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
	domerrors "github.com/ankurnehra/bodega/internal/domain/errors"
	"github.com/google/uuid"
)

// CompanyFields is the writable field set of a company.
type CompanyFields struct {
	Name    string
	Code    string
	StrAddr string
	City    string
}

// CompanyActions creates and presents companies.
type CompanyActions struct {
	companies   ports.CompanyRepository
	memberships ports.MembershipRepository
	resolver    *authz.Resolver
	tx          ports.TxManager
}

func NewCompanyActions(companies ports.CompanyRepository, memberships ports.MembershipRepository, resolver *authz.Resolver, tx ports.TxManager) *CompanyActions {
	return &CompanyActions{companies: companies, memberships: memberships, resolver: resolver, tx: tx}
}

// CompanyResult carries the company and, for views, the viewer's
// relationship classes so the caller knows what to render.
type CompanyResult struct {
	Result
	Company *domain.Company
	Classes domain.ClassSet
}

// Create registers a company and makes the creator its first admin. The
// founding membership needs no handshake: there is no counterpart to
// consent, so it is born active.
func (a *CompanyActions) Create(ctx context.Context, actorID domain.UserID, fields CompanyFields) (*CompanyResult, error) {
	if verr := validateCompanyFields(fields); verr != nil {
		return &CompanyResult{Result: validationFailed(verr, "Company failed to be created.")}, nil
	}
	company := &domain.Company{
		ID:      domain.NewCompanyID(uuid.New()),
		Name:    fields.Name,
		Code:    fields.Code,
		StrAddr: fields.StrAddr,
		City:    fields.City,
	}
	founder := &domain.Membership{
		ID:        domain.NewMembershipID(uuid.New()),
		UserID:    actorID,
		CompanyID: company.ID,
		Admin:     true,
	}
	err := a.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := a.companies.Create(ctx, company); err != nil {
			return err
		}
		return a.memberships.Create(ctx, founder)
	})
	if verr := domerrors.AsValidation(err); verr != nil {
		return &CompanyResult{Result: validationFailed(verr, "Company failed to be created.")}, nil
	}
	if err != nil {
		return nil, err
	}
	res := &CompanyResult{Company: company, Classes: domain.NewClassSet(domain.SelfAdmin)}
	res.Result = success("Company was successfully created.")
	return res, nil
}

// View returns the company page data. The company page is world-readable
// for signed-in users; it is the landing spot for denied actors.
func (a *CompanyActions) View(ctx context.Context, actorID domain.UserID, companyID domain.CompanyID) (*CompanyResult, error) {
	company, err := a.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return &CompanyResult{Result: notFound()}, nil
	}
	classes, err := a.resolver.Resolve(ctx, actorID, companyID)
	if err != nil {
		return nil, err
	}
	res := &CompanyResult{Company: company, Classes: classes}
	res.Status = Success
	return res, nil
}

func validateCompanyFields(f CompanyFields) *domerrors.ValidationError {
	var verr *domerrors.ValidationError
	if f.Name == "" {
		verr = domerrors.NewValidationError("name", "can't be blank")
	}
	if f.Code == "" {
		if verr == nil {
			verr = &domerrors.ValidationError{}
		}
		verr.Add("code", "can't be blank")
	}
	return verr
}
