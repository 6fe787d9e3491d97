package authz

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/ankurnehra/bodega/internal/domain"
)

// Resolver computes the set of relationship classes a user holds toward a
// target company. Only active memberships and active supply links
// participate; a pending edge grants nothing. Each membership is evaluated
// independently — relationships never merge across companies the user does
// not belong to.
type Resolver struct {
	memberships ports.MembershipRepository
	links       ports.SupplyLinkRepository
}

func NewResolver(memberships ports.MembershipRepository, links ports.SupplyLinkRepository) *Resolver {
	return &Resolver{memberships: memberships, links: links}
}

// Resolve returns the full class set for user against company. A user with
// no qualifying relationship resolves to {Unaffiliated}.
func (r *Resolver) Resolve(ctx context.Context, userID domain.UserID, companyID domain.CompanyID) (domain.ClassSet, error) {
	memberships, err := r.memberships.ListForUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	var set domain.ClassSet
	for _, m := range memberships {
		if !m.Active() {
			continue
		}
		if m.CompanyID == companyID {
			if m.Admin {
				set = set.Add(domain.SelfAdmin)
			} else {
				set = set.Add(domain.SelfMember)
			}
			continue
		}
		supplies, err := r.links.ActiveLinkExists(ctx, m.CompanyID, companyID)
		if err != nil {
			return 0, err
		}
		if supplies {
			set = set.Add(domain.SupplierMember)
		}
		purchases, err := r.links.ActiveLinkExists(ctx, companyID, m.CompanyID)
		if err != nil {
			return 0, err
		}
		if purchases {
			set = set.Add(domain.PurchaserMember)
		}
	}
	if set.IsEmpty() {
		set = set.Add(domain.Unaffiliated)
	}
	return set, nil
}
