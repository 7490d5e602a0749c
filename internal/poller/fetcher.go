package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PixView is the PIX block returned by the status endpoint.
type PixView struct {
	PaymentID       string `json:"payment_id"`
	QRCode          string `json:"qr_code"`
	QRCodeBase64    string `json:"qr_code_base64"`
	TicketURL       string `json:"ticket_url"`
	BeneficiaryName string `json:"beneficiary_name"`
}

// StatusView is the client-side view of a preference.
type StatusView struct {
	ID          string   `json:"id"`
	EventID     string   `json:"event_id"`
	Status      string   `json:"status"`
	Environment string   `json:"environment"`
	CheckoutURL string   `json:"checkout_url"`
	Pix         *PixView `json:"pix"`
}

type StatusFetcher interface {
	FetchStatus(ctx context.Context, preferenceID string) (StatusView, error)
}

// StatusError is a non-200 answer from the status endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status endpoint answered %d: %s", e.StatusCode, e.Body)
}

// IsTransient reports whether a fetch failure is worth retrying: network
// failures, 5xx and 429.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= 500 || statusErr.StatusCode == http.StatusTooManyRequests
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// HTTPFetcher reads GET {BaseURL}/v1/checkout/{id}/status.
type HTTPFetcher struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPFetcher(baseURL string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (f *HTTPFetcher) FetchStatus(ctx context.Context, preferenceID string) (StatusView, error) {
	endpoint := f.BaseURL + "/v1/checkout/" + url.PathEscape(preferenceID) + "/status"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return StatusView{}, err
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return StatusView{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return StatusView{}, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var view StatusView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		return StatusView{}, fmt.Errorf("decode status: %w", err)
	}
	return view, nil
}
