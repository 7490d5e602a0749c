package usecase

import (
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"ingressos_checkout/internal/domain/entities"
)

const (
	CurrencyBRL         = "BRL"
	DocumentTypeCPF     = "CPF"
	autoReturnApproved  = "approved"
	defaultItemTitle    = "Ingresso"
	paymentStatusRoute  = "/payment-status"
	amountTolerance     = 0.01
	cpfDigits           = 11
	brazilCountryPrefix = "55"
)

var nonDigits = regexp.MustCompile(`[^\d]`)

// PreferenceInput is everything the builder needs to describe one checkout.
type PreferenceInput struct {
	PreferenceID    string
	Event           entities.Event
	BatchID         string
	BatchName       string
	Quantity        int
	UnitPrice       float64
	TotalAmount     float64
	Buyer           entities.Buyer
	BaseURL         string
	NotificationURL string
}

// BuildPreferencePayload is a pure function: it performs no I/O and returns a
// ValidationError (an InputError) for inputs the gateway would reject.
func BuildPreferencePayload(in PreferenceInput) (entities.PreferencePayload, error) {
	if strings.TrimSpace(in.PreferenceID) == "" {
		return entities.PreferencePayload{}, &entities.InputError{Field: "preference_id", Reason: "required"}
	}
	if strings.TrimSpace(in.Event.ID) == "" {
		return entities.PreferencePayload{}, &entities.InputError{Field: "event_id", Reason: "required"}
	}
	if in.Quantity < 1 {
		return entities.PreferencePayload{}, &entities.InputError{Field: "quantity", Reason: "must be at least 1"}
	}
	unitPrice := RoundCents(in.UnitPrice)
	if unitPrice < 0 || unitPrice*float64(in.Quantity) <= 0 {
		return entities.PreferencePayload{}, &entities.InputError{Field: "amount", Reason: "must be greater than zero"}
	}
	if in.TotalAmount != 0 && !AmountsMatch(unitPrice*float64(in.Quantity), in.TotalAmount) {
		return entities.PreferencePayload{}, ErrAmountMismatch
	}
	if in.Buyer.IsGuest() {
		if err := ValidateGuest(in.Buyer.Guest); err != nil {
			return entities.PreferencePayload{}, err
		}
	}

	ref := entities.BuildExternalReference(in.Event.ID, in.PreferenceID, in.Buyer.UserID)

	title := defaultItemTitle
	if b := strings.TrimSpace(in.BatchName); b != "" {
		title = fmt.Sprintf("%s %s", defaultItemTitle, b)
	}
	if t := strings.TrimSpace(in.Event.Title); t != "" {
		title = fmt.Sprintf("%s - %s", t, title)
	}

	payload := entities.PreferencePayload{
		ExternalReference: ref,
		Items: []entities.PreferenceItem{{
			ID:         in.Event.ID,
			Title:      title,
			Quantity:   in.Quantity,
			CurrencyID: CurrencyBRL,
			UnitPrice:  unitPrice,
		}},
		BackURLs: entities.BackURLs{
			Success: RedirectURL(in.BaseURL, string(entities.PreferenceStatusApproved), ref),
			Failure: RedirectURL(in.BaseURL, string(entities.PreferenceStatusRejected), ref),
			Pending: RedirectURL(in.BaseURL, string(entities.PreferenceStatusPending), ref),
		},
		AutoReturn:      autoReturnApproved,
		NotificationURL: strings.TrimSpace(in.NotificationURL),
		Metadata: map[string]any{
			"preference_id": in.PreferenceID,
			"event_id":      in.Event.ID,
		},
	}

	if in.BatchID != "" {
		payload.Metadata["batch_id"] = in.BatchID
	}
	if in.Buyer.IsGuest() {
		payload.Payer = guestPayer(*in.Buyer.Guest)
		payload.Metadata["guest"] = true
	} else {
		payload.Metadata["user_id"] = in.Buyer.UserID
	}

	return payload, nil
}

// ValidateGuest checks the fields the gateway needs to identify a guest buyer.
func ValidateGuest(g *entities.GuestInfo) error {
	if g == nil {
		return &entities.InputError{Field: "guest", Reason: "required when there is no authenticated user"}
	}
	if strings.TrimSpace(g.Name) == "" {
		return &entities.InputError{Field: "guest.name", Reason: "required"}
	}
	email := strings.TrimSpace(g.Email)
	if email == "" {
		return &entities.InputError{Field: "guest.email", Reason: "required"}
	}
	if !strings.Contains(email, "@") {
		return &entities.InputError{Field: "guest.email", Reason: "invalid format"}
	}
	cpf := SanitizeDocument(g.CPF)
	if cpf == "" {
		return &entities.InputError{Field: "guest.cpf", Reason: "required"}
	}
	if len(cpf) != cpfDigits {
		return &entities.InputError{Field: "guest.cpf", Reason: fmt.Sprintf("must contain %d digits (got %d)", cpfDigits, len(cpf))}
	}
	return nil
}

// RedirectURL builds the frontend route the gateway sends the buyer back to.
func RedirectURL(baseURL, status, externalReference string) string {
	q := url.Values{}
	q.Set("status", status)
	q.Set("external_reference", externalReference)
	return strings.TrimRight(baseURL, "/") + paymentStatusRoute + "?" + q.Encode()
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmountsMatch reports whether two monetary values differ by at most one cent.
func AmountsMatch(a, b float64) bool {
	return math.Abs(RoundCents(a)-RoundCents(b)) <= amountTolerance+1e-9
}

// SanitizeDocument keeps only the digits of a CPF/CNPJ.
func SanitizeDocument(doc string) string {
	return nonDigits.ReplaceAllString(doc, "")
}

func guestPayer(g entities.GuestInfo) *entities.PreferencePayer {
	name, surname := splitName(g.Name)
	payer := &entities.PreferencePayer{
		Name:           name,
		Surname:        surname,
		Email:          strings.TrimSpace(g.Email),
		DocumentType:   DocumentTypeCPF,
		DocumentNumber: SanitizeDocument(g.CPF),
	}
	payer.PhoneAreaCode, payer.PhoneNumber = splitPhone(g.Phone)
	return payer
}

func splitName(full string) (string, string) {
	fields := strings.Fields(full)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// splitPhone turns "+55 (11) 98765-4321" into ("11", "987654321").
// Numbers too short to carry an area code are dropped.
func splitPhone(raw string) (string, string) {
	digits := nonDigits.ReplaceAllString(raw, "")
	if len(digits) >= 12 && strings.HasPrefix(digits, brazilCountryPrefix) {
		digits = digits[len(brazilCountryPrefix):]
	}
	if len(digits) < 10 {
		return "", ""
	}
	return digits[:2], digits[2:]
}
