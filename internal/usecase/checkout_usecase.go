package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// CheckoutInput is what the UI sends to start paying for tickets.
// Buyer.UserID comes from the verified session; Buyer.Guest otherwise.
// BatchID is optional and selects which ticket batch is priced.
type CheckoutInput struct {
	EventID     string
	BatchID     string
	Quantity    int
	TotalAmount float64
	Buyer       entities.Buyer
}

type CheckoutResult struct {
	CheckoutURL         string               `json:"checkout_url"`
	PreferenceID        string               `json:"preference_id"`
	ExternalReference   string               `json:"external_reference"`
	GatewayPreferenceID string               `json:"gateway_preference_id"`
	Environment         entities.Environment `json:"environment"`
}

type CheckoutOptions struct {
	BaseURL         string
	NotificationURL string
	PixExpiration   time.Duration
}

// ICheckoutUseCase drives a checkout from the UI request to the gateway link.
//
// Requested behavior:
//   - Persist the pending preference before talking to the gateway.
//   - Keep the pending record when the gateway fails.
//   - Regeneration issues a fresh preference for the same purchase.

type ICheckoutUseCase interface {
	CreateCheckout(ctx context.Context, in CheckoutInput) (CheckoutResult, error)
	Regenerate(ctx context.Context, preferenceID string) (CheckoutResult, error)
	GetStatus(ctx context.Context, preferenceID string) (entities.PaymentPreference, error)
	CreatePix(ctx context.Context, preferenceID, payerEmail string) (entities.PaymentPreference, error)
	ListByEventID(ctx context.Context, eventID string) ([]entities.PaymentPreference, error)
}

type CheckoutUseCase struct {
	repo      interfaces.IPaymentPreferenceRepository
	eventRepo interfaces.IEventRepository
	gateway   interfaces.IPaymentGateway
	cache     interfaces.IPreferenceStatusCache
	opts      CheckoutOptions

	newID func() string
	now   func() time.Time
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

// NewCheckoutUseCase wires the orchestrator. cache may be nil.
func NewCheckoutUseCase(repo interfaces.IPaymentPreferenceRepository, eventRepo interfaces.IEventRepository, gateway interfaces.IPaymentGateway, cache interfaces.IPreferenceStatusCache, opts CheckoutOptions) *CheckoutUseCase {
	return &CheckoutUseCase{
		repo:      repo,
		eventRepo: eventRepo,
		gateway:   gateway,
		cache:     cache,
		opts:      opts,
		newID:     uuid.NewString,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *CheckoutUseCase) CreateCheckout(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	in.EventID = strings.TrimSpace(in.EventID)
	in.BatchID = strings.TrimSpace(in.BatchID)
	log.Printf("[checkout][usecase] create start event_id=%q batch_id=%q quantity=%d total=%.2f guest=%t", in.EventID, in.BatchID, in.Quantity, in.TotalAmount, in.Buyer.IsGuest())

	if err := validateCheckoutInput(in); err != nil {
		log.Printf("[checkout][usecase] invalid input event_id=%q err=%v", in.EventID, err)
		return CheckoutResult{}, err
	}
	if u.repo == nil || u.eventRepo == nil {
		return CheckoutResult{}, ErrRepositoryNotConfigured
	}
	if u.gateway == nil {
		return CheckoutResult{}, ErrGatewayNotConfigured
	}

	event, err := u.eventRepo.GetByID(ctx, in.EventID)
	if err != nil {
		log.Printf("[checkout][usecase] failed loading event event_id=%s err=%v", in.EventID, err)
		return CheckoutResult{}, err
	}
	if event.ID == "" {
		log.Printf("[checkout][usecase] event not found event_id=%s", in.EventID)
		return CheckoutResult{}, &entities.NotFoundError{Resource: "event", ID: in.EventID}
	}
	if !event.Active {
		log.Printf("[checkout][usecase] event not on sale event_id=%s", in.EventID)
		return CheckoutResult{}, ErrEventNotOnSale
	}

	unitPrice, batch, err := u.resolveUnitPrice(ctx, event, in)
	if err != nil {
		log.Printf("[checkout][usecase] pricing failed event_id=%s batch_id=%q total=%.2f quantity=%d err=%v", in.EventID, in.BatchID, in.TotalAmount, in.Quantity, err)
		return CheckoutResult{}, err
	}

	now := u.now()
	p := entities.PaymentPreference{
		ID:             u.newID(),
		EventID:        event.ID,
		BatchID:        batch.ID,
		UserID:         in.Buyer.UserID,
		TicketQuantity: in.Quantity,
		UnitPrice:      unitPrice,
		TotalAmount:    RoundCents(unitPrice * float64(in.Quantity)),
		Status:         entities.PreferenceStatusPending,
		Environment:    u.gateway.Environment(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Buyer.IsGuest() {
		guest := *in.Buyer.Guest
		guest.CPF = SanitizeDocument(guest.CPF)
		p.Metadata = &guest
	}

	return u.issue(ctx, p, event, batch.Name, in.Buyer)
}

// resolveUnitPrice prices one ticket from the named batch, from the event's
// only batch, or from the buyer's total when the catalog cannot tell which
// batch is being bought. The stored total is always unit price times quantity.
func (u *CheckoutUseCase) resolveUnitPrice(ctx context.Context, event entities.Event, in CheckoutInput) (float64, entities.TicketBatch, error) {
	qty := float64(in.Quantity)

	if in.BatchID != "" {
		batch, err := u.eventRepo.GetBatch(ctx, event.ID, in.BatchID)
		if err != nil {
			return 0, entities.TicketBatch{}, err
		}
		if batch.ID == "" {
			return 0, entities.TicketBatch{}, &entities.NotFoundError{Resource: "batch", ID: in.BatchID}
		}
		if !batch.Active || batch.Price <= 0 {
			return 0, entities.TicketBatch{}, ErrBatchNotOnSale
		}
		if !AmountsMatch(in.TotalAmount, batch.Price*qty) {
			return 0, entities.TicketBatch{}, ErrAmountMismatch
		}
		return RoundCents(batch.Price), batch, nil
	}

	if event.TicketPrice > 0 && event.ActiveBatches <= 1 {
		if !AmountsMatch(in.TotalAmount, event.TicketPrice*qty) {
			return 0, entities.TicketBatch{}, ErrAmountMismatch
		}
		return RoundCents(event.TicketPrice), entities.TicketBatch{}, nil
	}

	unit := RoundCents(in.TotalAmount / qty)
	if !AmountsMatch(unit*qty, in.TotalAmount) {
		return 0, entities.TicketBatch{}, ErrTotalNotSplit
	}
	// Several batches on sale: nothing may be cheaper than the cheapest one.
	if event.TicketPrice > 0 && unit < RoundCents(event.TicketPrice)-amountTolerance {
		return 0, entities.TicketBatch{}, ErrAmountMismatch
	}
	return unit, entities.TicketBatch{}, nil
}

func (u *CheckoutUseCase) Regenerate(ctx context.Context, preferenceID string) (CheckoutResult, error) {
	preferenceID = strings.TrimSpace(preferenceID)
	log.Printf("[checkout][usecase] regenerate start preference_id=%q", preferenceID)
	if preferenceID == "" {
		return CheckoutResult{}, &entities.InputError{Field: "preference_id", Reason: "required"}
	}
	if u.repo == nil {
		return CheckoutResult{}, ErrRepositoryNotConfigured
	}
	if u.gateway == nil {
		return CheckoutResult{}, ErrGatewayNotConfigured
	}

	old, err := u.repo.GetByID(ctx, preferenceID)
	if err != nil {
		log.Printf("[checkout][usecase] failed loading preference preference_id=%s err=%v", preferenceID, err)
		return CheckoutResult{}, err
	}
	if old.ID == "" {
		log.Printf("[checkout][usecase] preference not found preference_id=%s", preferenceID)
		return CheckoutResult{}, &entities.NotFoundError{Resource: "preference", ID: preferenceID}
	}
	if old.Status.IsTerminal() {
		log.Printf("[checkout][usecase] regenerate refused preference_id=%s status=%s", preferenceID, old.Status)
		return CheckoutResult{}, ErrPreferenceNotRegenerable
	}

	event := entities.Event{ID: old.EventID}
	if u.eventRepo != nil {
		loaded, err := u.eventRepo.GetByID(ctx, old.EventID)
		if err != nil {
			log.Printf("[checkout][usecase] failed loading event event_id=%s err=%v", old.EventID, err)
			return CheckoutResult{}, err
		}
		if loaded.ID != "" {
			event = loaded
		}
	}

	now := u.now()
	p := old
	p.ID = u.newID()
	p.Status = entities.PreferenceStatusPending
	p.Environment = u.gateway.Environment()
	p.GatewayPreferenceID = ""
	p.CheckoutURL = ""
	p.GatewayPaymentID = ""
	p.Pix = nil
	p.RegeneratedFrom = old.ID
	p.CreatedAt = now
	p.UpdatedAt = now

	var batchName string
	if old.BatchID != "" && u.eventRepo != nil {
		batch, err := u.eventRepo.GetBatch(ctx, old.EventID, old.BatchID)
		if err != nil {
			log.Printf("[checkout][usecase] failed loading batch event_id=%s batch_id=%s err=%v", old.EventID, old.BatchID, err)
		}
		batchName = batch.Name
	}

	buyer := entities.Buyer{UserID: old.UserID, Guest: old.Metadata}
	return u.issue(ctx, p, event, batchName, buyer)
}

// issue builds the payload, persists the pending record and only then calls the gateway.
func (u *CheckoutUseCase) issue(ctx context.Context, p entities.PaymentPreference, event entities.Event, batchName string, buyer entities.Buyer) (CheckoutResult, error) {
	payload, err := BuildPreferencePayload(PreferenceInput{
		PreferenceID:    p.ID,
		Event:           event,
		BatchID:         p.BatchID,
		BatchName:       batchName,
		Quantity:        p.TicketQuantity,
		UnitPrice:       p.UnitPrice,
		TotalAmount:     p.TotalAmount,
		Buyer:           buyer,
		BaseURL:         u.opts.BaseURL,
		NotificationURL: u.opts.NotificationURL,
	})
	if err != nil {
		log.Printf("[checkout][usecase] payload build failed preference_id=%s err=%v", p.ID, err)
		return CheckoutResult{}, err
	}
	p.ExternalReference = payload.ExternalReference

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[checkout][usecase] repository create failed preference_id=%s err=%v", p.ID, err)
		return CheckoutResult{}, err
	}
	log.Printf("[checkout][usecase] pending preference stored preference_id=%s external_reference=%s regenerated_from=%q", created.ID, created.ExternalReference, created.RegeneratedFrom)

	gw, err := u.gateway.CreatePreference(ctx, payload)
	if err != nil {
		// The pending record stays; reconciliation or cleanup acts on it later.
		log.Printf("[checkout][usecase] payment gateway failed preference_id=%s err=%v", created.ID, err)
		return CheckoutResult{}, asGatewayError(err)
	}
	log.Printf("[checkout][usecase] payment gateway success preference_id=%s gateway_preference_id=%s", created.ID, gw.ID)

	if _, err := u.repo.UpdateGatewayData(ctx, created.ID, gw); err != nil {
		// The link is valid and the pending record already carries the external reference.
		log.Printf("[checkout][usecase] failed storing gateway data preference_id=%s gateway_preference_id=%s err=%v", created.ID, gw.ID, err)
	}

	return CheckoutResult{
		CheckoutURL:         gw.CheckoutURL,
		PreferenceID:        created.ID,
		ExternalReference:   created.ExternalReference,
		GatewayPreferenceID: gw.ID,
		Environment:         created.Environment,
	}, nil
}

func (u *CheckoutUseCase) GetStatus(ctx context.Context, preferenceID string) (entities.PaymentPreference, error) {
	preferenceID = strings.TrimSpace(preferenceID)
	if preferenceID == "" {
		return entities.PaymentPreference{}, &entities.InputError{Field: "preference_id", Reason: "required"}
	}

	if u.cache != nil {
		cached, ok, err := u.cache.Get(ctx, preferenceID)
		if err != nil {
			log.Printf("[checkout][usecase] status cache read failed preference_id=%s err=%v", preferenceID, err)
		} else if ok {
			return cached, nil
		}
	}

	p, err := u.load(ctx, preferenceID)
	if err != nil {
		return entities.PaymentPreference{}, err
	}

	// Pending records are not cached: a webhook may finalize them between the
	// read above and the write, and its invalidation would be lost.
	if u.cache != nil && p.Status.IsTerminal() {
		if err := u.cache.Set(ctx, p); err != nil {
			log.Printf("[checkout][usecase] status cache write failed preference_id=%s err=%v", preferenceID, err)
		}
	}
	return p, nil
}

// CreatePix issues a PIX charge once per preference; later calls return the stored charge.
func (u *CheckoutUseCase) CreatePix(ctx context.Context, preferenceID, payerEmail string) (entities.PaymentPreference, error) {
	preferenceID = strings.TrimSpace(preferenceID)
	log.Printf("[checkout][usecase] pix start preference_id=%q", preferenceID)
	if preferenceID == "" {
		return entities.PaymentPreference{}, &entities.InputError{Field: "preference_id", Reason: "required"}
	}
	if u.gateway == nil {
		return entities.PaymentPreference{}, ErrGatewayNotConfigured
	}

	p, err := u.load(ctx, preferenceID)
	if err != nil {
		return entities.PaymentPreference{}, err
	}
	if p.Status.IsTerminal() {
		log.Printf("[checkout][usecase] pix refused preference_id=%s status=%s", preferenceID, p.Status)
		return entities.PaymentPreference{}, ErrPreferenceNotRegenerable
	}
	if p.Pix != nil && p.Pix.QRCode != "" {
		log.Printf("[checkout][usecase] pix already issued preference_id=%s payment_id=%s", preferenceID, p.Pix.PaymentID)
		return p, nil
	}

	payload := entities.PixPayload{
		ExternalReference: p.ExternalReference,
		Description:       fmt.Sprintf("Ingressos evento %s (%d)", p.EventID, p.TicketQuantity),
		Amount:            p.TotalAmount,
		PayerEmail:        strings.TrimSpace(payerEmail),
		NotificationURL:   u.opts.NotificationURL,
	}
	if p.Metadata != nil {
		payload.PayerFirstName, _ = splitName(p.Metadata.Name)
		payload.PayerCPF = p.Metadata.CPF
		if payload.PayerEmail == "" {
			payload.PayerEmail = p.Metadata.Email
		}
	}
	if payload.PayerEmail == "" {
		return entities.PaymentPreference{}, &entities.InputError{Field: "payer_email", Reason: "required"}
	}
	if u.opts.PixExpiration > 0 {
		payload.ExpiresAt = u.now().Add(u.opts.PixExpiration)
	}

	charge, err := u.gateway.CreatePixPayment(ctx, payload)
	if err != nil {
		log.Printf("[checkout][usecase] pix gateway failed preference_id=%s err=%v", preferenceID, err)
		return entities.PaymentPreference{}, asGatewayError(err)
	}

	updated, err := u.repo.UpdatePix(ctx, preferenceID, entities.PixData{
		PaymentID:    charge.PaymentID,
		QRCode:       charge.QRCode,
		QRCodeBase64: charge.QRCodeBase64,
		TicketURL:    charge.TicketURL,
		ExpiresAt:    payload.ExpiresAt,
	})
	if err != nil {
		log.Printf("[checkout][usecase] failed storing pix data preference_id=%s err=%v", preferenceID, err)
		return entities.PaymentPreference{}, err
	}
	if updated.ID == "" {
		// Finalized by a webhook while the charge was being created.
		log.Printf("[checkout][usecase] pix not stored, preference no longer pending preference_id=%s payment_id=%s", preferenceID, charge.PaymentID)
		u.invalidate(ctx, preferenceID)
		return entities.PaymentPreference{}, ErrPreferenceNotRegenerable
	}
	u.invalidate(ctx, preferenceID)

	log.Printf("[checkout][usecase] pix success preference_id=%s payment_id=%s", preferenceID, charge.PaymentID)
	return updated, nil
}

func (u *CheckoutUseCase) ListByEventID(ctx context.Context, eventID string) ([]entities.PaymentPreference, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, &entities.InputError{Field: "event_id", Reason: "required"}
	}
	if u.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	list, err := u.repo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return list, nil
}

func (u *CheckoutUseCase) load(ctx context.Context, id string) (entities.PaymentPreference, error) {
	if u.repo == nil {
		return entities.PaymentPreference{}, ErrRepositoryNotConfigured
	}
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.PaymentPreference{}, err
	}
	if p.ID == "" {
		return entities.PaymentPreference{}, &entities.NotFoundError{Resource: "preference", ID: id}
	}
	return p, nil
}

func (u *CheckoutUseCase) invalidate(ctx context.Context, id string) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Invalidate(ctx, id); err != nil {
		log.Printf("[checkout][usecase] status cache invalidate failed preference_id=%s err=%v", id, err)
	}
}

// validateCheckoutInput runs presence, positivity and guest checks in that order.
func validateCheckoutInput(in CheckoutInput) error {
	if in.EventID == "" {
		return &entities.InputError{Field: "event_id", Reason: "required"}
	}
	if in.Quantity < 1 {
		return &entities.InputError{Field: "quantity", Reason: "must be at least 1"}
	}
	if in.TotalAmount <= 0 {
		return &entities.InputError{Field: "total_amount", Reason: "must be greater than zero"}
	}
	if in.Buyer.IsGuest() {
		return ValidateGuest(in.Buyer.Guest)
	}
	return nil
}
