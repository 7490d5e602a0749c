package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"ingressos_checkout/internal/adapter/http/handlers/mocks"
	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newWebhookRouter(t *testing.T, secret string) (*gin.Engine, *mocks.MockIReconcileUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	uc := mocks.NewMockIReconcileUseCase(gomock.NewController(t))
	r := gin.New()
	r.POST("/v1/webhooks/mercadopago", NewWebhookHandler(uc, secret).Receive)
	return r, uc
}

func postWebhook(r *gin.Engine, query, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/mercadopago"+query, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const paymentNotification = `{"id":12345,"type":"payment","action":"payment.updated","data":{"id":"999"}}`

func TestWebhookHandler_Receive(t *testing.T) {
	t.Run("transition", func(t *testing.T) {
		r, uc := newWebhookRouter(t, "")
		uc.EXPECT().HandleNotification(gomock.Any(), entities.GatewayNotification{
			ID: "12345", Type: "payment", Action: "payment.updated", DataID: "999", RequestID: "req-1",
		}).Return(usecase.ReconcileResult{PreferenceID: "pref456", Status: entities.PreferenceStatusApproved, Transitioned: true}, nil)

		w := postWebhook(r, "", paymentNotification, map[string]string{"x-request-id": "req-1"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if decodeBody(t, w)["transitioned"] != true {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("query style notification", func(t *testing.T) {
		r, uc := newWebhookRouter(t, "")
		uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, n entities.GatewayNotification) (usecase.ReconcileResult, error) {
			if n.Type != "payment" || n.DataID != "777" {
				t.Fatalf("unexpected notification: %+v", n)
			}
			return usecase.ReconcileResult{Ignored: true}, nil
		})

		w := postWebhook(r, "?topic=payment&id=777", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		r, _ := newWebhookRouter(t, "")
		if w := postWebhook(r, "", "{", nil); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("body of the wrong shape", func(t *testing.T) {
		r, _ := newWebhookRouter(t, "")
		if w := postWebhook(r, "", `{"type":"payment","data":[]}`, nil); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("whitespace body falls back to the query", func(t *testing.T) {
		r, uc := newWebhookRouter(t, "")
		uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, n entities.GatewayNotification) (usecase.ReconcileResult, error) {
			if n.Type != "payment" || n.DataID != "888" {
				t.Fatalf("unexpected notification: %+v", n)
			}
			return usecase.ReconcileResult{Ignored: true}, nil
		})

		if w := postWebhook(r, "?type=payment&data.id=888", "  \n", nil); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("amount mismatch is acknowledged", func(t *testing.T) {
		r, uc := newWebhookRouter(t, "")
		uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Return(usecase.ReconcileResult{PreferenceID: "pref456"}, usecase.ErrAmountMismatch)

		w := postWebhook(r, "", paymentNotification, nil)
		if w.Code != http.StatusOK || decodeBody(t, w)["ignored"] != true {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("transient failure asks for retry", func(t *testing.T) {
		r, uc := newWebhookRouter(t, "")
		uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Return(usecase.ReconcileResult{}, errors.New("dynamo down"))

		if w := postWebhook(r, "", paymentNotification, nil); w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestWebhookHandler_Signature(t *testing.T) {
	const secret = "whsec"
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)

	t.Run("missing header", func(t *testing.T) {
		r, _ := newWebhookRouter(t, secret)
		if w := postWebhook(r, "?data.id=999&type=payment", paymentNotification, nil); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		r, _ := newWebhookRouter(t, secret)
		sig := "ts=" + ts + ",v1=" + SignatureFor("998", "req-1", ts, secret)
		w := postWebhook(r, "?data.id=999&type=payment", paymentNotification, map[string]string{"x-signature": sig, "x-request-id": "req-1"})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("valid", func(t *testing.T) {
		r, uc := newWebhookRouter(t, secret)
		uc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Return(usecase.ReconcileResult{Duplicate: true}, nil)

		sig := "ts=" + ts + ", v1=" + SignatureFor("999", "req-1", ts, secret)
		w := postWebhook(r, "?data.id=999&type=payment", paymentNotification, map[string]string{"x-signature": sig, "x-request-id": "req-1"})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestVerifySignature(t *testing.T) {
	sig := SignatureFor("ABC123", "", "1700000000", "k")
	if err := VerifySignature("ts=1700000000,v1="+sig, "abc123", "", "k"); err != nil {
		t.Fatalf("expected alphanumeric ids to be compared in lower case: %v", err)
	}
	if err := VerifySignature("v1="+sig, "abc123", "", "k"); !errors.Is(err, ErrMissingSignature) {
		t.Fatalf("expected ErrMissingSignature, got %v", err)
	}
	if err := VerifySignature("ts=1700000000,v1=zz", "abc123", "", "k"); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}
