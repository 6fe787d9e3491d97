package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// linkInvitePayload matches the JSON enqueued by TaskEnqueuer.EnqueueLinkInvite.
type linkInvitePayload struct {
	LinkID      string `json:"link_id"`
	SupplierID  string `json:"supplier_id"`
	PurchaserID string `json:"purchaser_id"`
}

// membershipInvitePayload matches the JSON enqueued by TaskEnqueuer.EnqueueMembershipInvite.
type membershipInvitePayload struct {
	MembershipID string `json:"membership_id"`
	CompanyID    string `json:"company_id"`
	UserID       string `json:"user_id"`
}

type orderPlacedPayload struct {
	OrderID    string `json:"order_id"`
	SupplierID string `json:"supplier_id"`
}

// Worker runs Asynq task handlers for the notification tasks.
type Worker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
	log zerolog.Logger
}

// NewWorker creates an Asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Worker {
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 2,
		LogLevel:    asynq.InfoLevel,
	})
	mux := asynq.NewServeMux()
	w := &Worker{srv: srv, mux: mux, log: log}
	mux.HandleFunc(TypeLinkInvite, w.handleLinkInvite)
	mux.HandleFunc(TypeLinkConfirmed, w.handleLinkConfirmed)
	mux.HandleFunc(TypeMembershipInvite, w.handleMembershipInvite)
	mux.HandleFunc(TypeOrderPlaced, w.handleOrderPlaced)
	return w
}

func (w *Worker) handleLinkInvite(ctx context.Context, t *asynq.Task) error {
	var p linkInvitePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("link invite task payload invalid")
		return err
	}
	// Dev: log only; production would notify the counterpart's admins.
	w.log.Info().
		Str("link_id", p.LinkID).
		Str("supplier_id", p.SupplierID).
		Str("purchaser_id", p.PurchaserID).
		Msg("supply link awaiting confirmation (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleLinkConfirmed(ctx context.Context, t *asynq.Task) error {
	var p struct {
		LinkID string `json:"link_id"`
	}
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("link confirmed task payload invalid")
		return err
	}
	w.log.Info().Str("link_id", p.LinkID).Msg("supply link active, notifying both sides")
	return nil
}

func (w *Worker) handleMembershipInvite(ctx context.Context, t *asynq.Task) error {
	var p membershipInvitePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("membership invite task payload invalid")
		return err
	}
	w.log.Info().
		Str("membership_id", p.MembershipID).
		Str("company_id", p.CompanyID).
		Str("user_id", p.UserID).
		Msg("membership awaiting confirmation (log only; configure SMTP for real email)")
	return nil
}

func (w *Worker) handleOrderPlaced(ctx context.Context, t *asynq.Task) error {
	var p orderPlacedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		w.log.Error().Err(err).Msg("order placed task payload invalid")
		return err
	}
	w.log.Info().
		Str("order_id", p.OrderID).
		Str("supplier_id", p.SupplierID).
		Msg("order placed, notifying supplier")
	return nil
}

// Run blocks until shutdown. Use Shutdown for graceful stop.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

// Shutdown stops the worker.
func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}
