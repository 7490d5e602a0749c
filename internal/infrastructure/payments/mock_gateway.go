package payments

import (
	"fmt"
	"log"
	"strconv"
	"sync"

	"ingressos_checkout/internal/domain/entities"
	"ingressos_checkout/internal/pix"
)

const (
	mockCheckoutBase  = "https://sandbox.mercadopago.com.br/checkout/v1/redirect?pref_id="
	mockPixKey        = "checkout-mock@ingressos.local"
	mockMerchantName  = "Ingressos Mock"
	mockMerchantCity  = "SAO PAULO"
	mockFirstPayment  = 1000000
	mockStatusPending = "pending"
	mockStatusPaid    = "approved"
)

// mockBackend stands in for Mercado Pago on local runs. Ids are sequential and
// PIX payments read back through GetPayment report as approved, so the whole
// checkout can be exercised without credentials.
type mockBackend struct {
	mu          sync.Mutex
	preferences int
	nextPayment int
	payments    map[string]entities.GatewayPayment
}

func newMockBackend() *mockBackend {
	return &mockBackend{nextPayment: mockFirstPayment, payments: map[string]entities.GatewayPayment{}}
}

func (m *mockBackend) createPreference(env entities.Environment, payload entities.PreferencePayload) entities.GatewayPreference {
	m.mu.Lock()
	m.preferences++
	id := fmt.Sprintf("mock-pref-%d", m.preferences)
	m.mu.Unlock()

	p := entities.GatewayPreference{
		ID:               id,
		InitPoint:        mockCheckoutBase + id,
		SandboxInitPoint: mockCheckoutBase + id,
	}
	p.CheckoutURL = checkoutURL(env, p)
	log.Printf("[checkout][gateway] mock create preference gateway_preference_id=%s external_reference=%s", id, payload.ExternalReference)
	return p
}

func (m *mockBackend) createPix(payload entities.PixPayload) entities.PixCharge {
	m.mu.Lock()
	id := strconv.Itoa(m.nextPayment)
	m.nextPayment++
	m.payments[id] = entities.GatewayPayment{
		ID:                id,
		Status:            mockStatusPending,
		ExternalReference: payload.ExternalReference,
		TransactionAmount: payload.Amount,
	}
	m.mu.Unlock()

	code := pix.Charge{
		Key:          mockPixKey,
		MerchantName: mockMerchantName,
		MerchantCity: mockMerchantCity,
		Amount:       payload.Amount,
		TxID:         id,
	}.Payload()

	log.Printf("[checkout][gateway] mock create pix payment_id=%s external_reference=%s", id, payload.ExternalReference)
	return entities.PixCharge{PaymentID: id, Status: mockStatusPending, QRCode: code}
}

func (m *mockBackend) getPayment(id string) (entities.GatewayPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.payments[id]
	if !ok {
		return entities.GatewayPayment{}, &entities.GatewayError{StatusCode: 404, Message: "payment not found"}
	}
	p.Status = mockStatusPaid
	p.StatusDetail = "accredited"
	m.payments[id] = p
	return p, nil
}
