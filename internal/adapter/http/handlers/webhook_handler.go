package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"ingressos_checkout/internal/adapter/http/dto/request"
	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase"
	"ingressos_checkout/pkg"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

var (
	ErrMissingSignature = errors.New("missing x-signature header")
	ErrInvalidSignature = errors.New("webhook signature mismatch")
)

// WebhookHandler receives gateway notifications.
type WebhookHandler struct {
	usecase usecase.IReconcileUseCase
	secret  string
}

// NewWebhookHandler builds the handler. With an empty secret signatures are
// not checked.
func NewWebhookHandler(uc usecase.IReconcileUseCase, secret string) *WebhookHandler {
	return &WebhookHandler{usecase: uc, secret: strings.TrimSpace(secret)}
}

// Receive godoc
// @Summary  Mercado Pago notifications
// @Tags     webhooks
// @Accept   json
// @Produce  json
// @Success  200  {object}  usecase.ReconcileResult
// @Failure  401  {object}  pkg.HTTPError
// @Failure  500  {object}  pkg.HTTPError
// @Router   /webhooks/mercadopago [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	var body request.WebhookNotificationRequest
	// Topic-style notifications arrive with an empty body and only query parameters.
	if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil && !errors.Is(err, io.EOF) {
		log.Printf("[checkout][webhook] invalid body err=%v", err)
		c.JSON(errInvalidCheckoutPayload.HTTPStatus, errInvalidCheckoutPayload.ToHTTPError())
		return
	}
	var q request.WebhookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		log.Printf("[checkout][webhook] query bind failed query=%q err=%v", c.Request.URL.RawQuery, err)
	}

	n := body.ToNotification(q, c.GetHeader("x-request-id"))

	if h.secret != "" {
		// The signed id is the one sent on the query string when present.
		signedID := strings.TrimSpace(q.DataID)
		if signedID == "" {
			signedID = n.DataID
		}
		if err := VerifySignature(c.GetHeader("x-signature"), signedID, n.RequestID, h.secret); err != nil {
			log.Printf("[checkout][webhook] signature rejected data_id=%s request_id=%s err=%v", n.DataID, n.RequestID, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_SIGNATURE", "Invalid signature", http.StatusUnauthorized)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	res, err := h.usecase.HandleNotification(c.Request.Context(), n)
	if err != nil {
		// Input and not-found failures never succeed on retry; acknowledge them.
		if errors.Is(err, entities.ErrInvalidInput) || errors.Is(err, entities.ErrNotFound) {
			log.Printf("[checkout][webhook] acknowledged without transition data_id=%s err=%v", n.DataID, err)
			c.JSON(http.StatusOK, usecase.ReconcileResult{PreferenceID: res.PreferenceID, Ignored: true})
			return
		}
		log.Printf("[checkout][webhook] processing failed data_id=%s err=%v", n.DataID, err)
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, res)
}

// VerifySignature checks an x-signature header of the form "ts=...,v1=...".
// The signed manifest is "id:<data.id>;request-id:<x-request-id>;ts:<ts>;"
// with absent parts left out. Alphanumeric ids are signed in lower case.
func VerifySignature(header, dataID, requestID, secret string) error {
	var ts, v1 string
	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "ts":
			ts = strings.TrimSpace(v)
		case "v1":
			v1 = strings.TrimSpace(v)
		}
	}
	if ts == "" || v1 == "" {
		return ErrMissingSignature
	}

	expected := SignatureFor(dataID, requestID, ts, secret)
	got, err := hex.DecodeString(v1)
	if err != nil {
		return ErrInvalidSignature
	}
	want, _ := hex.DecodeString(expected)
	if !hmac.Equal(got, want) {
		return ErrInvalidSignature
	}
	return nil
}

// SignatureFor returns the hex HMAC-SHA256 the gateway sends as v1.
func SignatureFor(dataID, requestID, ts, secret string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	b.WriteString("ts:" + ts + ";")

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
