package payments

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strconv"
	"strings"

	appconfig "ingressos_checkout/internal/config"
	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing mercado pago access token for the configured environment")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const pixPaymentMethodID = "pix"

var (
	sdkStatusPattern  = regexp.MustCompile(`"status"\s*:\s*(\d{3})`)
	sdkMessagePattern = regexp.MustCompile(`"message"\s*:\s*"([^"]*)"`)
)

// preferenceAPI and paymentAPI are the parts of the SDK clients this gateway uses.
type preferenceAPI interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentAPI interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway talks to Mercado Pago with the credentials of one environment.
// The environment is chosen at construction and cannot change afterwards.
type MercadoPagoGateway struct {
	env         entities.Environment
	preferences preferenceAPI
	payments    paymentAPI
	mock        *mockBackend
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg appconfig.GatewayConfig) (*MercadoPagoGateway, error) {
	env := cfg.Environment
	if env == "" {
		env = entities.EnvironmentTest
	}

	if cfg.MockMode {
		log.Printf("[checkout][gateway] mock mode enabled environment=%s", env)
		return &MercadoPagoGateway{env: env, mock: newMockBackend()}, nil
	}

	token := cfg.ActiveCredentials().AccessToken
	if token == "" {
		log.Printf("[checkout][gateway] missing access token environment=%s", env)
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := config.New(token)
	if err != nil {
		log.Printf("[checkout][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[checkout][gateway] Mercado Pago client initialized environment=%s", env)

	return &MercadoPagoGateway{
		env:         env,
		preferences: preference.NewClient(sdkCfg),
		payments:    payment.NewClient(sdkCfg),
	}, nil
}

func (g *MercadoPagoGateway) Environment() entities.Environment {
	return g.env
}

func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, payload entities.PreferencePayload) (entities.GatewayPreference, error) {
	if g.mock != nil {
		return g.mock.createPreference(g.env, payload), nil
	}
	if g.preferences == nil {
		return entities.GatewayPreference{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[checkout][gateway] create preference start external_reference=%s items=%d", payload.ExternalReference, len(payload.Items))

	resp, err := g.preferences.Create(ctx, toPreferenceRequest(payload))
	if err != nil {
		log.Printf("[checkout][gateway] sdk create preference failed external_reference=%s err=%v", payload.ExternalReference, err)
		return entities.GatewayPreference{}, toGatewayError(err)
	}
	if resp == nil || resp.ID == "" {
		return entities.GatewayPreference{}, &entities.GatewayError{Message: "empty preference response"}
	}

	out := entities.GatewayPreference{
		ID:               resp.ID,
		InitPoint:        resp.InitPoint,
		SandboxInitPoint: resp.SandboxInitPoint,
	}
	out.CheckoutURL = checkoutURL(g.env, out)
	log.Printf("[checkout][gateway] create preference success gateway_preference_id=%s", out.ID)
	return out, nil
}

func (g *MercadoPagoGateway) CreatePixPayment(ctx context.Context, payload entities.PixPayload) (entities.PixCharge, error) {
	if g.mock != nil {
		return g.mock.createPix(payload), nil
	}
	if g.payments == nil {
		return entities.PixCharge{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[checkout][gateway] create pix start external_reference=%s amount=%.2f", payload.ExternalReference, payload.Amount)

	resp, err := g.payments.Create(ctx, toPixRequest(payload))
	if err != nil {
		log.Printf("[checkout][gateway] sdk create pix failed external_reference=%s err=%v", payload.ExternalReference, err)
		return entities.PixCharge{}, toGatewayError(err)
	}
	if resp == nil || resp.ID == 0 {
		return entities.PixCharge{}, &entities.GatewayError{Message: "empty payment response"}
	}

	tx := resp.PointOfInteraction.TransactionData
	log.Printf("[checkout][gateway] create pix success payment_id=%d status=%s", resp.ID, resp.Status)
	return entities.PixCharge{
		PaymentID:    strconv.Itoa(resp.ID),
		Status:       resp.Status,
		QRCode:       tx.QRCode,
		QRCodeBase64: tx.QRCodeBase64,
		TicketURL:    tx.TicketURL,
	}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (entities.GatewayPayment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if g.mock != nil {
		return g.mock.getPayment(paymentID)
	}
	if g.payments == nil {
		return entities.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return entities.GatewayPayment{}, &entities.InputError{Field: "payment_id", Reason: "must be numeric"}
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[checkout][gateway] sdk get payment failed payment_id=%s err=%v", paymentID, err)
		return entities.GatewayPayment{}, toGatewayError(err)
	}
	if resp == nil {
		return entities.GatewayPayment{}, &entities.GatewayError{Message: "empty payment response"}
	}

	return entities.GatewayPayment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		StatusDetail:      resp.StatusDetail,
		ExternalReference: resp.ExternalReference,
		TransactionAmount: resp.TransactionAmount,
	}, nil
}

func toPreferenceRequest(p entities.PreferencePayload) preference.Request {
	items := make([]preference.ItemRequest, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, preference.ItemRequest{
			ID:         it.ID,
			Title:      it.Title,
			Quantity:   it.Quantity,
			CurrencyID: it.CurrencyID,
			UnitPrice:  it.UnitPrice,
		})
	}

	req := preference.Request{
		Items: items,
		BackURLs: &preference.BackURLsRequest{
			Success: p.BackURLs.Success,
			Failure: p.BackURLs.Failure,
			Pending: p.BackURLs.Pending,
		},
		AutoReturn:        p.AutoReturn,
		ExternalReference: p.ExternalReference,
		NotificationURL:   p.NotificationURL,
		Metadata:          p.Metadata,
	}

	if p.Payer != nil {
		payer := &preference.PayerRequest{
			Name:    p.Payer.Name,
			Surname: p.Payer.Surname,
			Email:   p.Payer.Email,
		}
		if p.Payer.DocumentNumber != "" {
			payer.Identification = &preference.IdentificationRequest{Type: p.Payer.DocumentType, Number: p.Payer.DocumentNumber}
		}
		if p.Payer.PhoneNumber != "" {
			payer.Phone = &preference.PhoneRequest{AreaCode: p.Payer.PhoneAreaCode, Number: p.Payer.PhoneNumber}
		}
		req.Payer = payer
	}
	return req
}

func toPixRequest(p entities.PixPayload) payment.Request {
	req := payment.Request{
		TransactionAmount: p.Amount,
		Description:       p.Description,
		PaymentMethodID:   pixPaymentMethodID,
		ExternalReference: p.ExternalReference,
		NotificationURL:   p.NotificationURL,
		Payer: &payment.PayerRequest{
			Email:     p.PayerEmail,
			FirstName: p.PayerFirstName,
		},
	}
	if p.PayerCPF != "" {
		req.Payer.Identification = &payment.IdentificationRequest{Type: "CPF", Number: p.PayerCPF}
	}
	if !p.ExpiresAt.IsZero() {
		exp := p.ExpiresAt
		req.DateOfExpiration = &exp
	}
	return req
}

// checkoutURL picks the sandbox link in test mode when the gateway returned one.
func checkoutURL(env entities.Environment, p entities.GatewayPreference) string {
	if env == entities.EnvironmentTest && p.SandboxInitPoint != "" {
		return p.SandboxInitPoint
	}
	return p.InitPoint
}

// toGatewayError keeps the vendor status and message found in the SDK error text.
func toGatewayError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	gwErr := &entities.GatewayError{Message: msg, Cause: err}
	if m := sdkStatusPattern.FindStringSubmatch(msg); len(m) == 2 {
		gwErr.StatusCode, _ = strconv.Atoi(m[1])
	}
	if m := sdkMessagePattern.FindStringSubmatch(msg); len(m) == 2 && m[1] != "" {
		gwErr.Message = m[1]
	}
	return gwErr
}
