package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase/interfaces"
)

const notificationTypePayment = "payment"

type ReconcileResult struct {
	PreferenceID string                    `json:"preference_id,omitempty"`
	Status       entities.PreferenceStatus `json:"status,omitempty"`
	Transitioned bool                      `json:"transitioned"`
	Ignored      bool                      `json:"ignored,omitempty"`
	Duplicate    bool                      `json:"duplicate,omitempty"`
}

// IReconcileUseCase applies gateway notifications to the preference store.
//
// Requested behavior:
//   - Only pending preferences move, and only to a terminal status.
//   - Amounts that disagree with the stored record never move a preference.

type IReconcileUseCase interface {
	HandleNotification(ctx context.Context, n entities.GatewayNotification) (ReconcileResult, error)
}

type ReconcileUseCase struct {
	repo     interfaces.IPaymentPreferenceRepository
	gateway  interfaces.IPaymentGateway
	cache    interfaces.IPreferenceStatusCache
	dedup    interfaces.IWebhookDeduplicator
	notifier interfaces.IPaymentNotifier
}

var _ IReconcileUseCase = (*ReconcileUseCase)(nil)

// NewReconcileUseCase wires the reconciler. cache, dedup and notifier may be nil.
func NewReconcileUseCase(repo interfaces.IPaymentPreferenceRepository, gateway interfaces.IPaymentGateway, cache interfaces.IPreferenceStatusCache, dedup interfaces.IWebhookDeduplicator, notifier interfaces.IPaymentNotifier) *ReconcileUseCase {
	return &ReconcileUseCase{repo: repo, gateway: gateway, cache: cache, dedup: dedup, notifier: notifier}
}

func (u *ReconcileUseCase) HandleNotification(ctx context.Context, n entities.GatewayNotification) (res ReconcileResult, err error) {
	log.Printf("[checkout][reconcile] notification received id=%q type=%q action=%q data_id=%q", n.ID, n.Type, n.Action, n.DataID)

	if strings.ToLower(strings.TrimSpace(n.Type)) != notificationTypePayment {
		log.Printf("[checkout][reconcile] ignoring notification type=%q", n.Type)
		return ReconcileResult{Ignored: true}, nil
	}
	n.DataID = strings.TrimSpace(n.DataID)
	if n.DataID == "" {
		return ReconcileResult{}, &entities.InputError{Field: "data.id", Reason: "required"}
	}
	if u.repo == nil {
		return ReconcileResult{}, ErrRepositoryNotConfigured
	}
	if u.gateway == nil {
		return ReconcileResult{}, ErrGatewayNotConfigured
	}

	key := n.Key()
	// A payment still open at the gateway will be notified again under the same key.
	stillOpen := false
	if u.dedup != nil {
		acquired, dErr := u.dedup.Acquire(ctx, key)
		switch {
		case dErr != nil:
			// the conditional status write still guards the transition
			log.Printf("[checkout][reconcile] dedup unavailable key=%s err=%v", key, dErr)
		case !acquired:
			log.Printf("[checkout][reconcile] duplicate notification key=%s", key)
			return ReconcileResult{Duplicate: true}, nil
		default:
			defer func() {
				if stillOpen || (err != nil && isRetryable(err)) {
					if rErr := u.dedup.Release(ctx, key); rErr != nil {
						log.Printf("[checkout][reconcile] dedup release failed key=%s err=%v", key, rErr)
					}
				}
			}()
		}
	}

	payment, err := u.gateway.GetPayment(ctx, n.DataID)
	if err != nil {
		log.Printf("[checkout][reconcile] failed loading payment payment_id=%s err=%v", n.DataID, err)
		return ReconcileResult{}, asGatewayError(err)
	}

	ref, err := entities.ParseExternalReference(payment.ExternalReference)
	if err != nil {
		log.Printf("[checkout][reconcile] unparseable external reference payment_id=%s ref=%q", payment.ID, payment.ExternalReference)
		return ReconcileResult{}, err
	}

	p, err := u.repo.GetByID(ctx, ref.PreferenceID)
	if err != nil {
		log.Printf("[checkout][reconcile] failed loading preference preference_id=%s err=%v", ref.PreferenceID, err)
		return ReconcileResult{}, err
	}
	if p.ID == "" {
		log.Printf("[checkout][reconcile] preference not found preference_id=%s payment_id=%s", ref.PreferenceID, payment.ID)
		return ReconcileResult{}, &entities.NotFoundError{Resource: "preference", ID: ref.PreferenceID}
	}
	res = ReconcileResult{PreferenceID: p.ID, Status: p.Status}

	if p.EventID != ref.EventID {
		log.Printf("[checkout][reconcile] event mismatch preference_id=%s stored=%s ref=%s", p.ID, p.EventID, ref.EventID)
		return res, &entities.InputError{Field: "external_reference", Reason: "event does not match the stored preference"}
	}
	if !AmountsMatch(payment.TransactionAmount, p.TotalAmount) {
		log.Printf("[checkout][reconcile] amount mismatch preference_id=%s payment_id=%s paid=%.2f expected=%.2f", p.ID, payment.ID, payment.TransactionAmount, p.TotalAmount)
		return res, ErrAmountMismatch
	}

	target, ok := MapGatewayStatus(payment.Status)
	if !ok {
		log.Printf("[checkout][reconcile] non-terminal gateway status preference_id=%s payment_id=%s status=%s", p.ID, payment.ID, payment.Status)
		stillOpen = true
		return res, nil
	}
	if p.Status.IsTerminal() {
		log.Printf("[checkout][reconcile] preference already terminal preference_id=%s status=%s gateway_status=%s", p.ID, p.Status, payment.Status)
		return res, nil
	}

	updated, err := u.repo.UpdateStatus(ctx, p.ID, target, payment.ID)
	if err != nil {
		log.Printf("[checkout][reconcile] status update failed preference_id=%s err=%v", p.ID, err)
		return res, err
	}
	if updated.ID == "" {
		// lost the race against another notification
		log.Printf("[checkout][reconcile] status already moved preference_id=%s", p.ID)
		return res, nil
	}

	res.Status = updated.Status
	res.Transitioned = true
	log.Printf("[checkout][reconcile] status updated preference_id=%s status=%s payment_id=%s", p.ID, updated.Status, payment.ID)

	if u.cache != nil {
		if cErr := u.cache.Invalidate(ctx, p.ID); cErr != nil {
			log.Printf("[checkout][reconcile] status cache invalidate failed preference_id=%s err=%v", p.ID, cErr)
		}
	}
	if updated.Status == entities.PreferenceStatusApproved && u.notifier != nil {
		if nErr := u.notifier.NotifyApproved(ctx, updated); nErr != nil {
			log.Printf("[checkout][reconcile] notifier failed preference_id=%s err=%v", p.ID, nErr)
		}
	}
	return res, nil
}

// MapGatewayStatus converts a gateway payment status into a terminal
// preference status. ok is false for statuses that do not end the checkout.
func MapGatewayStatus(status string) (entities.PreferenceStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "approved":
		return entities.PreferenceStatusApproved, true
	case "rejected":
		return entities.PreferenceStatusRejected, true
	case "cancelled", "refunded", "charged_back":
		return entities.PreferenceStatusCancelled, true
	}
	return "", false
}

// isRetryable reports whether the gateway should get another chance to deliver.
func isRetryable(err error) bool {
	return !errors.Is(err, entities.ErrInvalidInput) && !errors.Is(err, entities.ErrNotFound)
}
