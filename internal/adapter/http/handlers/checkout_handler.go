package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"ingressos_checkout/internal/adapter/http/dto/request"
	"ingressos_checkout/internal/adapter/http/dto/response"
	"ingressos_checkout/internal/adapter/http/middleware"
	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase"
	"ingressos_checkout/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidCheckoutPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
)

// CheckoutHandler handles the checkout endpoints used by the ticket UI.
type CheckoutHandler struct {
	usecase usecase.ICheckoutUseCase
}

func NewCheckoutHandler(uc usecase.ICheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{usecase: uc}
}

// CreateCheckout godoc
// @Summary      Create a checkout
// @Description  Persists a pending preference and returns the gateway checkout link. Guests send the guest block; signed-in buyers send a bearer token.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      request.CreateCheckoutRequest  true  "checkout"
// @Success      201   {object}  response.CheckoutResponse
// @Failure      400   {object}  pkg.HTTPError
// @Failure      404   {object}  pkg.HTTPError
// @Failure      502   {object}  pkg.HTTPError
// @Router       /checkout [post]
func (h *CheckoutHandler) CreateCheckout(c *gin.Context) {
	var payload request.CreateCheckoutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[checkout][handler] invalid payload err=%v", err)
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	var userID, role string
	if session, ok := middleware.SessionFromContext(c); ok {
		userID, role = session.UserID, session.Role
	}

	in := usecase.CheckoutInput{
		EventID:     payload.ResolveEventID(),
		BatchID:     strings.TrimSpace(payload.BatchID),
		Quantity:    payload.Quantity,
		TotalAmount: payload.TotalAmount,
		Buyer:       payload.ResolveBuyer(userID, role),
	}
	log.Printf("[checkout][handler] create start event_id=%s batch_id=%q quantity=%d guest=%t", in.EventID, in.BatchID, in.Quantity, in.Buyer.IsGuest())

	res, err := h.usecase.CreateCheckout(c.Request.Context(), in)
	if err != nil {
		log.Printf("[checkout][handler] create failed event_id=%s err=%v", in.EventID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] create success event_id=%s preference_id=%s", in.EventID, res.PreferenceID)

	c.JSON(http.StatusCreated, response.FromCheckoutResult(res))
}

// Regenerate godoc
// @Summary  Regenerate a checkout link
// @Tags     checkout
// @Produce  json
// @Param    preference_id  path      string  true  "preference id"
// @Success  201            {object}  response.CheckoutResponse
// @Failure  404            {object}  pkg.HTTPError
// @Failure  409            {object}  pkg.HTTPError
// @Router   /checkout/{preference_id}/regenerate [post]
func (h *CheckoutHandler) Regenerate(c *gin.Context) {
	id := c.Param("preference_id")
	log.Printf("[checkout][handler] regenerate start preference_id=%s", id)

	res, err := h.usecase.Regenerate(c.Request.Context(), id)
	if err != nil {
		log.Printf("[checkout][handler] regenerate failed preference_id=%s err=%v", id, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromCheckoutResult(res))
}

// GetStatus godoc
// @Summary  Preference status and PIX data
// @Tags     checkout
// @Produce  json
// @Param    preference_id  path      string  true  "preference id"
// @Success  200            {object}  response.PreferenceStatusResponse
// @Failure  404            {object}  pkg.HTTPError
// @Router   /checkout/{preference_id}/status [get]
func (h *CheckoutHandler) GetStatus(c *gin.Context) {
	id := c.Param("preference_id")

	p, err := h.usecase.GetStatus(c.Request.Context(), id)
	if err != nil {
		log.Printf("[checkout][handler] status failed preference_id=%s err=%v", id, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentPreference(p))
}

// CreatePix godoc
// @Summary  Create or return the PIX charge of a preference
// @Tags     checkout
// @Accept   json
// @Produce  json
// @Param    preference_id  path      string                    true   "preference id"
// @Param    body           body      request.CreatePixRequest  false  "payer"
// @Success  200            {object}  response.PreferenceStatusResponse
// @Failure  400            {object}  pkg.HTTPError
// @Failure  409            {object}  pkg.HTTPError
// @Failure  502            {object}  pkg.HTTPError
// @Router   /checkout/{preference_id}/pix [post]
func (h *CheckoutHandler) CreatePix(c *gin.Context) {
	id := c.Param("preference_id")

	var payload request.CreatePixRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			log.Printf("[checkout][handler] invalid pix payload preference_id=%s err=%v", id, err)
			c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
			return
		}
	}
	email := strings.TrimSpace(payload.PayerEmail)
	if email == "" {
		if session, ok := middleware.SessionFromContext(c); ok {
			email = session.Email
		}
	}
	log.Printf("[checkout][handler] pix start preference_id=%s", id)

	p, err := h.usecase.CreatePix(c.Request.Context(), id, email)
	if err != nil {
		log.Printf("[checkout][handler] pix failed preference_id=%s err=%v", id, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentPreference(p))
}

// PaymentStatus godoc
// @Summary  Resolve a gateway redirect
// @Description  Parses the redirect query and returns the local record. The redirect status is informational; the webhook is the source of truth.
// @Tags     checkout
// @Produce  json
// @Param    external_reference  query     string  true   "eventId|preferenceId|userId"
// @Param    status              query     string  false  "redirect status"
// @Success  200                 {object}  response.PreferenceStatusResponse
// @Failure  400                 {object}  pkg.HTTPError
// @Failure  404                 {object}  pkg.HTTPError
// @Router   /payment-status [get]
func (h *CheckoutHandler) PaymentStatus(c *gin.Context) {
	ref, err := entities.ParseExternalReference(c.Query("external_reference"))
	if err != nil {
		log.Printf("[checkout][handler] payment-status invalid reference err=%v", err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[checkout][handler] payment-status preference_id=%s redirect_status=%s", ref.PreferenceID, c.Query("status"))

	p, err := h.usecase.GetStatus(c.Request.Context(), ref.PreferenceID)
	if err != nil {
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if p.EventID != ref.EventID {
		log.Printf("[checkout][handler] payment-status event mismatch preference_id=%s ref_event=%s stored_event=%s", p.ID, ref.EventID, p.EventID)
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentPreference(p))
}

// ListByEvent godoc
// @Summary   List checkout attempts of an event
// @Tags      admin
// @Produce   json
// @Security  Bearer
// @Param     event_id  path  string  true  "event id"
// @Success   200       {array}   response.PreferenceStatusResponse
// @Failure   401       {object}  pkg.HTTPError
// @Failure   403       {object}  pkg.HTTPError
// @Router    /events/{event_id}/checkouts [get]
func (h *CheckoutHandler) ListByEvent(c *gin.Context) {
	eventID := c.Param("event_id")

	list, err := h.usecase.ListByEventID(c.Request.Context(), eventID)
	if err != nil {
		log.Printf("[checkout][handler] list failed event_id=%s err=%v", eventID, err)
		appErr := mapCheckoutError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromPaymentPreferences(list))
}

// mapCheckoutError keeps gateway detail out of the response body.
func mapCheckoutError(err error) *pkg.AppError {
	var inputErr *entities.InputError
	switch {
	case errors.As(err, &inputErr):
		return pkg.NewDomainError("INVALID_REQUEST", "Invalid request: "+inputErr.Field, err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Resource not found", err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrPreferenceNotRegenerable):
		return pkg.NewDomainError("PREFERENCE_FINALIZED", "Payment already finalized", err, http.StatusConflict)
	case errors.Is(err, entities.ErrGateway), errors.Is(err, usecase.ErrGatewayNotConfigured):
		return pkg.NewDomainError("PAYMENT_PROCESSING_FAILED", "Payment processing failed", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
