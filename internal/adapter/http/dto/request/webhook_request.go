package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"ingressos_checkout/internal/domain/entities"
)

// FlexibleID accepts ids sent either as JSON strings or numbers.
type FlexibleID string

func (f *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexibleID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexibleID(n.String())
	return nil
}

type WebhookData struct {
	ID FlexibleID `json:"id"`
}

// WebhookNotificationRequest is the gateway notification body. Older
// notifications send topic instead of type.
type WebhookNotificationRequest struct {
	ID       FlexibleID  `json:"id"`
	Type     string      `json:"type"`
	Topic    string      `json:"topic"`
	Action   string      `json:"action"`
	LiveMode bool        `json:"live_mode"`
	Data     WebhookData `json:"data"`
}

// WebhookQuery holds the fields the gateway also sends on the query string.
type WebhookQuery struct {
	Type   string `form:"type"`
	Topic  string `form:"topic"`
	DataID string `form:"data.id"`
	ID     string `form:"id"`
}

// ToNotification merges body and query, preferring the body.
func (r WebhookNotificationRequest) ToNotification(q WebhookQuery, requestID string) entities.GatewayNotification {
	n := entities.GatewayNotification{
		ID:        string(r.ID),
		Type:      firstNonEmpty(r.Type, r.Topic, q.Type, q.Topic),
		Action:    strings.TrimSpace(r.Action),
		DataID:    firstNonEmpty(string(r.Data.ID), q.DataID),
		LiveMode:  r.LiveMode,
		RequestID: strings.TrimSpace(requestID),
	}
	// topic-style notifications carry the payment id in "id".
	if n.DataID == "" && n.Type == "payment" {
		n.DataID = firstNonEmpty(q.ID, string(r.ID))
	}
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
