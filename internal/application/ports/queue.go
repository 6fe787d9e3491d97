package ports

import "context"

// TaskEnqueuer enqueues async notification tasks. Failures are logged by
// implementations and never abort the triggering write.
type TaskEnqueuer interface {
	// EnqueueLinkInvite notifies the counterpart company that a supply link
	// names it and awaits its confirmation.
	EnqueueLinkInvite(ctx context.Context, linkID, supplierID, purchaserID string) error
	// EnqueueLinkConfirmed notifies both companies that a link went active.
	EnqueueLinkConfirmed(ctx context.Context, linkID string) error
	// EnqueueMembershipInvite notifies a user that a company invited them.
	EnqueueMembershipInvite(ctx context.Context, membershipID, companyID, userID string) error
	// EnqueueOrderPlaced notifies the supplier that an order was placed.
	EnqueueOrderPlaced(ctx context.Context, orderID, supplierID string) error
}
