package entities

import (
	"fmt"
	"strings"
)

const (
	externalReferenceSeparator = "|"
	GuestReference             = "guest"
)

// BuildExternalReference composes the string echoed back by the gateway in
// webhooks and redirect URLs: eventId|preferenceId|userId (or guest).
func BuildExternalReference(eventID, preferenceID, userID string) string {
	buyer := strings.TrimSpace(userID)
	if buyer == "" {
		buyer = GuestReference
	}
	return strings.Join([]string{eventID, preferenceID, buyer}, externalReferenceSeparator)
}

// ExternalReference is the parsed form of the correlation string.
type ExternalReference struct {
	EventID      string
	PreferenceID string
	UserID       string
	Guest        bool
}

func (r ExternalReference) String() string {
	return BuildExternalReference(r.EventID, r.PreferenceID, r.UserID)
}

func ParseExternalReference(raw string) (ExternalReference, error) {
	parts := strings.Split(strings.TrimSpace(raw), externalReferenceSeparator)
	if len(parts) != 3 {
		return ExternalReference{}, &InputError{Field: "external_reference", Reason: fmt.Sprintf("expected 3 segments, got %d", len(parts))}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return ExternalReference{}, &InputError{Field: "external_reference", Reason: "empty segment"}
		}
	}

	ref := ExternalReference{EventID: parts[0], PreferenceID: parts[1]}
	if parts[2] == GuestReference {
		ref.Guest = true
	} else {
		ref.UserID = parts[2]
	}
	return ref, nil
}
