package queue

import (
	"context"
	"encoding/json"

	"github.com/ankurnehra/bodega/internal/application/ports"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

const (
	TypeLinkInvite       = "link:invite"
	TypeLinkConfirmed    = "link:confirmed"
	TypeMembershipInvite = "membership:invite"
	TypeOrderPlaced      = "order:placed"
)

type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) (*TaskEnqueuer, error) {
	client := asynq.NewClient(redisOpt)
	return &TaskEnqueuer{client: client, log: log}, nil
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueLinkInvite(ctx context.Context, linkID, supplierID, purchaserID string) error {
	payload, _ := json.Marshal(map[string]string{
		"link_id":      linkID,
		"supplier_id":  supplierID,
		"purchaser_id": purchaserID,
	})
	task := asynq.NewTask(TypeLinkInvite, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("link_id", linkID).Msg("enqueue link invite failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueLinkConfirmed(ctx context.Context, linkID string) error {
	payload, _ := json.Marshal(map[string]string{"link_id": linkID})
	task := asynq.NewTask(TypeLinkConfirmed, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("link_id", linkID).Msg("enqueue link confirmed failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueMembershipInvite(ctx context.Context, membershipID, companyID, userID string) error {
	payload, _ := json.Marshal(map[string]string{
		"membership_id": membershipID,
		"company_id":    companyID,
		"user_id":       userID,
	})
	task := asynq.NewTask(TypeMembershipInvite, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("membership_id", membershipID).Msg("enqueue membership invite failed")
		return err
	}
	return nil
}

func (q *TaskEnqueuer) EnqueueOrderPlaced(ctx context.Context, orderID, supplierID string) error {
	payload, _ := json.Marshal(map[string]string{
		"order_id":    orderID,
		"supplier_id": supplierID,
	})
	task := asynq.NewTask(TypeOrderPlaced, payload)
	_, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("order_id", orderID).Msg("enqueue order placed failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
