package payments

import (
	"context"
	"errors"
	"testing"
	"time"

	appconfig "ingressos_checkout/internal/config"
	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/pix"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type fakePreferences struct {
	got  preference.Request
	resp *preference.Response
	err  error
}

func (f *fakePreferences) Create(_ context.Context, req preference.Request) (*preference.Response, error) {
	f.got = req
	return f.resp, f.err
}

type fakePayments struct {
	created payment.Request
	gotID   int
	resp    *payment.Response
	err     error
}

func (f *fakePayments) Create(_ context.Context, req payment.Request) (*payment.Response, error) {
	f.created = req
	return f.resp, f.err
}

func (f *fakePayments) Get(_ context.Context, id int) (*payment.Response, error) {
	f.gotID = id
	return f.resp, f.err
}

func samplePayload() entities.PreferencePayload {
	return entities.PreferencePayload{
		ExternalReference: "evt123|pref456|guest",
		Items:             []entities.PreferenceItem{{ID: "evt123", Title: "Show - Ingresso", Quantity: 2, CurrencyID: "BRL", UnitPrice: 50}},
		BackURLs:          entities.BackURLs{Success: "s", Failure: "f", Pending: "p"},
		AutoReturn:        "approved",
		NotificationURL:   "https://api.example.com/v1/webhooks/mercadopago",
		Payer: &entities.PreferencePayer{
			Name: "Ana", Surname: "Lima", Email: "ana@example.com",
			DocumentType: "CPF", DocumentNumber: "12345678900",
			PhoneAreaCode: "11", PhoneNumber: "987654321",
		},
	}
}

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("missing token for environment", func(t *testing.T) {
		_, err := NewMercadoPagoGateway(appconfig.GatewayConfig{
			Environment: entities.EnvironmentProduction,
			Test:        appconfig.Credentials{AccessToken: "TEST-123"},
		})
		if !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
			t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
		}
	})

	t.Run("mock mode needs no credentials", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(appconfig.GatewayConfig{MockMode: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.Environment() != entities.EnvironmentTest {
			t.Fatalf("expected test environment by default, got %s", g.Environment())
		}
	})

	t.Run("real client", func(t *testing.T) {
		g, err := NewMercadoPagoGateway(appconfig.GatewayConfig{
			Environment: entities.EnvironmentProduction,
			Production:  appconfig.Credentials{AccessToken: "APP_USR-123"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if g.preferences == nil || g.payments == nil || g.Environment() != entities.EnvironmentProduction {
			t.Fatalf("gateway not wired: %+v", g)
		}
	})
}

func TestMercadoPagoGateway_CreatePreference(t *testing.T) {
	fake := &fakePreferences{resp: &preference.Response{ID: "mp-1", InitPoint: "https://www.mp/checkout", SandboxInitPoint: "https://sandbox.mp/checkout"}}
	g := &MercadoPagoGateway{env: entities.EnvironmentTest, preferences: fake}

	out, err := g.CreatePreference(context.Background(), samplePayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ID != "mp-1" || out.CheckoutURL != "https://sandbox.mp/checkout" {
		t.Fatalf("unexpected result: %+v", out)
	}

	req := fake.got
	if req.ExternalReference != "evt123|pref456|guest" || req.AutoReturn != "approved" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if len(req.Items) != 1 || req.Items[0].Quantity != 2 || req.Items[0].UnitPrice != 50 || req.Items[0].CurrencyID != "BRL" {
		t.Fatalf("unexpected items: %+v", req.Items)
	}
	if req.BackURLs == nil || req.BackURLs.Success != "s" {
		t.Fatalf("unexpected back urls: %+v", req.BackURLs)
	}
	if req.Payer == nil || req.Payer.Identification == nil || req.Payer.Identification.Number != "12345678900" {
		t.Fatalf("unexpected payer: %+v", req.Payer)
	}
	if req.Payer.Phone == nil || req.Payer.Phone.AreaCode != "11" {
		t.Fatalf("unexpected phone: %+v", req.Payer.Phone)
	}
}

func TestMercadoPagoGateway_CreatePreference_OmitsPayer(t *testing.T) {
	fake := &fakePreferences{resp: &preference.Response{ID: "mp-1", InitPoint: "https://www.mp/checkout"}}
	g := &MercadoPagoGateway{env: entities.EnvironmentProduction, preferences: fake}

	payload := samplePayload()
	payload.Payer = nil
	out, err := g.CreatePreference(context.Background(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.got.Payer != nil {
		t.Fatalf("payer must be omitted")
	}
	if out.CheckoutURL != "https://www.mp/checkout" {
		t.Fatalf("production must use init_point, got %s", out.CheckoutURL)
	}
}

func TestMercadoPagoGateway_CreatePreference_Error(t *testing.T) {
	sdkErr := errors.New(`{"message":"invalid access token","error":"unauthorized","status":401,"cause":[]}`)
	g := &MercadoPagoGateway{env: entities.EnvironmentTest, preferences: &fakePreferences{err: sdkErr}}

	_, err := g.CreatePreference(context.Background(), samplePayload())
	var gwErr *entities.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if gwErr.StatusCode != 401 || gwErr.Message != "invalid access token" || !errors.Is(err, sdkErr) {
		t.Fatalf("unexpected gateway error: %+v", gwErr)
	}
}

func TestMercadoPagoGateway_CreatePixPayment(t *testing.T) {
	resp := &payment.Response{ID: 42, Status: "pending"}
	resp.PointOfInteraction.TransactionData.QRCode = "000201..."
	resp.PointOfInteraction.TransactionData.TicketURL = "https://mp/ticket"
	fake := &fakePayments{resp: resp}
	g := &MercadoPagoGateway{env: entities.EnvironmentTest, payments: fake}

	expires := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)
	charge, err := g.CreatePixPayment(context.Background(), entities.PixPayload{
		ExternalReference: "evt123|pref456|guest",
		Amount:            100,
		PayerEmail:        "ana@example.com",
		PayerFirstName:    "Ana",
		PayerCPF:          "12345678900",
		ExpiresAt:         expires,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if charge.PaymentID != "42" || charge.QRCode != "000201..." || charge.TicketURL != "https://mp/ticket" {
		t.Fatalf("unexpected charge: %+v", charge)
	}

	req := fake.created
	if req.PaymentMethodID != "pix" || req.TransactionAmount != 100 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Payer == nil || req.Payer.Identification == nil || req.Payer.Identification.Type != "CPF" {
		t.Fatalf("unexpected payer: %+v", req.Payer)
	}
	if req.DateOfExpiration == nil || !req.DateOfExpiration.Equal(expires) {
		t.Fatalf("unexpected expiration: %v", req.DateOfExpiration)
	}
}

func TestMercadoPagoGateway_GetPayment(t *testing.T) {
	resp := &payment.Response{ID: 9001, Status: "approved", StatusDetail: "accredited", ExternalReference: "evt123|pref456|user789", TransactionAmount: 100}
	fake := &fakePayments{resp: resp}
	g := &MercadoPagoGateway{env: entities.EnvironmentTest, payments: fake}

	p, err := g.GetPayment(context.Background(), " 9001 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.gotID != 9001 || p.ID != "9001" || p.Status != "approved" || p.TransactionAmount != 100 {
		t.Fatalf("unexpected payment: %+v", p)
	}

	if _, err := g.GetPayment(context.Background(), "abc"); !errors.Is(err, entities.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non numeric id, got %v", err)
	}
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	g, err := NewMercadoPagoGateway(appconfig.GatewayConfig{MockMode: true, Environment: entities.EnvironmentTest})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	pref, err := g.CreatePreference(ctx, samplePayload())
	if err != nil || pref.ID != "mock-pref-1" || pref.CheckoutURL == "" {
		t.Fatalf("unexpected mock preference: %+v err=%v", pref, err)
	}

	charge, err := g.CreatePixPayment(ctx, entities.PixPayload{ExternalReference: "evt123|pref456|guest", Amount: 100})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if charge.Status != "pending" {
		t.Fatalf("expected pending charge, got %s", charge.Status)
	}
	if name := pix.BeneficiaryName(charge.QRCode); name != mockMerchantName {
		t.Fatalf("mock pix code must decode, got beneficiary %q", name)
	}

	paid, err := g.GetPayment(ctx, charge.PaymentID)
	if err != nil || paid.Status != "approved" || paid.ExternalReference != "evt123|pref456|guest" {
		t.Fatalf("unexpected mock payment: %+v err=%v", paid, err)
	}

	if _, err := g.GetPayment(ctx, "1"); !errors.Is(err, entities.ErrGateway) {
		t.Fatalf("expected ErrGateway for unknown mock payment, got %v", err)
	}
}

func TestToGatewayError(t *testing.T) {
	err := toGatewayError(errors.New("dial tcp 1.2.3.4:443: i/o timeout"))
	var gwErr *entities.GatewayError
	if !errors.As(err, &gwErr) || gwErr.StatusCode != 0 {
		t.Fatalf("expected GatewayError without status, got %v", err)
	}
	if toGatewayError(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
