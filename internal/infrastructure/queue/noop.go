package queue

import (
	"context"

	"github.com/ankurnehra/bodega/internal/application/ports"
)

// NoopEnqueuer is a no-op enqueuer when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueLinkInvite(ctx context.Context, linkID, supplierID, purchaserID string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueLinkConfirmed(ctx context.Context, linkID string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueMembershipInvite(ctx context.Context, membershipID, companyID, userID string) error {
	return nil
}

func (q *NoopEnqueuer) EnqueueOrderPlaced(ctx context.Context, orderID, supplierID string) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
