package response

import (
	"testing"
	"time"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/pix"
	"ingressos_checkout/internal/usecase"
)

func TestFromCheckoutResult(t *testing.T) {
	res := FromCheckoutResult(usecase.CheckoutResult{
		CheckoutURL:         "https://sandbox.example/checkout",
		PreferenceID:        "pref456",
		ExternalReference:   "evt123|pref456|guest",
		GatewayPreferenceID: "gw-1",
		Environment:         entities.EnvironmentTest,
	})
	if res.Environment != "test" || res.PreferenceID != "pref456" || res.GatewayPreferenceID != "gw-1" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestFromPaymentPreference(t *testing.T) {
	now := time.Now().UTC()
	code := pix.Charge{Key: "ingressos@example.com", MerchantName: "Casa de Shows Aurora", MerchantCity: "SAO PAULO", Amount: 100, TxID: "pref456"}.Payload()

	p := entities.PaymentPreference{
		ID:                "pref456",
		EventID:           "evt123",
		UserID:            "user789",
		TicketQuantity:    2,
		TotalAmount:       100,
		Status:            entities.PreferenceStatusPending,
		ExternalReference: "evt123|pref456|user789",
		Environment:       entities.EnvironmentProduction,
		Pix:               &entities.PixData{PaymentID: "1000001", QRCode: code, ExpiresAt: now},
		UpdatedAt:         now,
	}

	res := FromPaymentPreference(p)
	if res.Status != "pending" || res.Guest || res.Environment != "production" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.Pix == nil || res.Pix.BeneficiaryName != "Casa de Shows Aurora" {
		t.Fatalf("unexpected pix block: %+v", res.Pix)
	}
	if res.Pix.ExpiresAt == nil || !res.Pix.ExpiresAt.Equal(now) {
		t.Fatalf("unexpected expiry: %+v", res.Pix.ExpiresAt)
	}

	p.Pix = &entities.PixData{PaymentID: "1", QRCode: "not-a-brcode"}
	p.UserID = ""
	res = FromPaymentPreference(p)
	if res.Pix.BeneficiaryName != pix.FallbackBeneficiary || !res.Guest || res.Pix.ExpiresAt != nil {
		t.Fatalf("expected fallback beneficiary for guest: %+v", res)
	}

	p.Pix = nil
	if FromPaymentPreference(p).Pix != nil {
		t.Fatalf("expected no pix block")
	}

	if got := FromPaymentPreferences(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", got)
	}
}
