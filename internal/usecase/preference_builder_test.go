package usecase

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"ingressos_checkout/internal/domain/entities"
)

func validGuest() *entities.GuestInfo {
	return &entities.GuestInfo{Name: "Maria da Silva", Email: "maria@example.com", CPF: "123.456.789-00", Phone: "+55 (11) 98765-4321"}
}

func TestBuildPreferencePayload_AuthenticatedBuyer(t *testing.T) {
	payload, err := BuildPreferencePayload(PreferenceInput{
		PreferenceID: "pref456",
		Event:        entities.Event{ID: "evt123", Title: "Festival de Verão"},
		Quantity:     2,
		UnitPrice:    50.004,
		Buyer:        entities.Buyer{UserID: "user789"},
		BaseURL:      "https://ingressos.example.com/",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.ExternalReference != "evt123|pref456|user789" {
		t.Fatalf("unexpected external reference: %q", payload.ExternalReference)
	}
	if len(payload.Items) != 1 {
		t.Fatalf("expected one item, got %d", len(payload.Items))
	}
	item := payload.Items[0]
	if item.Quantity != 2 || item.UnitPrice != 50.00 || item.CurrencyID != CurrencyBRL {
		t.Fatalf("unexpected item: %+v", item)
	}
	if item.Title != "Festival de Verão - Ingresso" {
		t.Fatalf("unexpected title: %q", item.Title)
	}
	if payload.Payer != nil {
		t.Fatalf("payer block must be omitted for authenticated buyers")
	}
	if payload.AutoReturn != "approved" {
		t.Fatalf("expected auto_return approved")
	}

	for status, raw := range map[string]string{"approved": payload.BackURLs.Success, "rejected": payload.BackURLs.Failure, "pending": payload.BackURLs.Pending} {
		u, err := url.Parse(raw)
		if err != nil {
			t.Fatalf("invalid back url %q: %v", raw, err)
		}
		if !strings.HasPrefix(raw, "https://ingressos.example.com/payment-status?") {
			t.Fatalf("unexpected back url: %s", raw)
		}
		if u.Query().Get("status") != status {
			t.Fatalf("expected status %s in %s", status, raw)
		}
		if u.Query().Get("external_reference") != "evt123|pref456|user789" {
			t.Fatalf("expected external reference in %s", raw)
		}
	}
}

func TestBuildPreferencePayload_GuestBuyer(t *testing.T) {
	payload, err := BuildPreferencePayload(PreferenceInput{
		PreferenceID: "pref456",
		Event:        entities.Event{ID: "evt123"},
		Quantity:     1,
		UnitPrice:    80,
		Buyer:        entities.Buyer{Guest: validGuest()},
		BaseURL:      "https://ingressos.example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.ExternalReference != "evt123|pref456|guest" {
		t.Fatalf("unexpected external reference: %q", payload.ExternalReference)
	}
	if payload.Items[0].Title != "Ingresso" {
		t.Fatalf("expected fallback title, got %q", payload.Items[0].Title)
	}
	p := payload.Payer
	if p == nil {
		t.Fatalf("expected payer block for guest")
	}
	if p.Name != "Maria" || p.Surname != "da Silva" || p.Email != "maria@example.com" {
		t.Fatalf("unexpected payer: %+v", p)
	}
	if p.DocumentType != "CPF" || p.DocumentNumber != "12345678900" {
		t.Fatalf("unexpected identification: %+v", p)
	}
	if p.PhoneAreaCode != "11" || p.PhoneNumber != "987654321" {
		t.Fatalf("unexpected phone: %+v", p)
	}
	if payload.Metadata["guest"] != true {
		t.Fatalf("expected guest metadata")
	}
}

func TestBuildPreferencePayload_ValidationErrors(t *testing.T) {
	base := PreferenceInput{
		PreferenceID: "pref456",
		Event:        entities.Event{ID: "evt123"},
		Quantity:     1,
		UnitPrice:    10,
		Buyer:        entities.Buyer{UserID: "user789"},
	}

	cases := []struct {
		name  string
		mut   func(in *PreferenceInput)
		field string
	}{
		{name: "zero quantity", mut: func(in *PreferenceInput) { in.Quantity = 0 }, field: "quantity"},
		{name: "negative quantity", mut: func(in *PreferenceInput) { in.Quantity = -3 }, field: "quantity"},
		{name: "zero amount", mut: func(in *PreferenceInput) { in.UnitPrice = 0 }, field: "amount"},
		{name: "negative amount", mut: func(in *PreferenceInput) { in.UnitPrice = -1 }, field: "amount"},
		{name: "total not unit times quantity", mut: func(in *PreferenceInput) {
			in.Quantity, in.UnitPrice, in.TotalAmount = 7, 14.29, 100
		}, field: "total_amount"},
		{name: "missing preference id", mut: func(in *PreferenceInput) { in.PreferenceID = " " }, field: "preference_id"},
		{name: "missing event", mut: func(in *PreferenceInput) { in.Event.ID = "" }, field: "event_id"},
		{name: "guest without info", mut: func(in *PreferenceInput) { in.Buyer = entities.Buyer{} }, field: "guest"},
		{name: "guest missing name", mut: func(in *PreferenceInput) {
			g := validGuest()
			g.Name = ""
			in.Buyer = entities.Buyer{Guest: g}
		}, field: "guest.name"},
		{name: "guest missing email", mut: func(in *PreferenceInput) {
			g := validGuest()
			g.Email = " "
			in.Buyer = entities.Buyer{Guest: g}
		}, field: "guest.email"},
		{name: "guest missing cpf", mut: func(in *PreferenceInput) {
			g := validGuest()
			g.CPF = "..-"
			in.Buyer = entities.Buyer{Guest: g}
		}, field: "guest.cpf"},
		{name: "guest short cpf", mut: func(in *PreferenceInput) {
			g := validGuest()
			g.CPF = "123"
			in.Buyer = entities.Buyer{Guest: g}
		}, field: "guest.cpf"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mut(&in)
			_, err := BuildPreferencePayload(in)
			if !errors.Is(err, entities.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var inputErr *entities.InputError
			if !errors.As(err, &inputErr) || inputErr.Field != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, err)
			}
		})
	}
}

func TestBuildPreferencePayload_BatchAndTotal(t *testing.T) {
	payload, err := BuildPreferencePayload(PreferenceInput{
		PreferenceID: "pref456",
		Event:        entities.Event{ID: "evt123", Title: "Show"},
		BatchID:      "vip",
		BatchName:    "VIP",
		Quantity:     3,
		UnitPrice:    33.33,
		TotalAmount:  99.99,
		Buyer:        entities.Buyer{UserID: "user789"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := payload.Items[0]
	if item.Title != "Show - Ingresso VIP" {
		t.Fatalf("unexpected title: %q", item.Title)
	}
	if !AmountsMatch(item.UnitPrice*float64(item.Quantity), 99.99) {
		t.Fatalf("gateway charge %.2f differs from total", item.UnitPrice*float64(item.Quantity))
	}
	if payload.Metadata["batch_id"] != "vip" {
		t.Fatalf("expected batch id in metadata, got %+v", payload.Metadata)
	}
}

func TestBuilderHelpers(t *testing.T) {
	if !AmountsMatch(100, 100.01) || AmountsMatch(100, 100.02) {
		t.Fatalf("unexpected tolerance behaviour")
	}
	if RoundCents(33.335) != 33.34 && RoundCents(33.335) != 33.33 {
		t.Fatalf("unexpected rounding: %v", RoundCents(33.335))
	}
	if got := SanitizeDocument("12.345.678/0001-90"); got != "12345678000190" {
		t.Fatalf("unexpected sanitized document: %s", got)
	}
	if a, n := splitPhone("12345"); a != "" || n != "" {
		t.Fatalf("short phone must be dropped")
	}
	if a, n := splitPhone("(21) 3333-4444"); a != "21" || n != "33334444" {
		t.Fatalf("unexpected landline split: %s %s", a, n)
	}
	if n, s := splitName("  Ana  "); n != "Ana" || s != "" {
		t.Fatalf("unexpected single name split: %q %q", n, s)
	}
}
