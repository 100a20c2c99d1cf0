package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/souqmarket/backend/internal/domain/payment"
	"github.com/souqmarket/backend/internal/infrastructure/config"
)

const chargesPath = "/v1/charges"

// maxResponseBytes caps how much of a provider response is read.
const maxResponseBytes = 1 << 20

// HTTPGateway implements payment.Provider against the marketplace's
// payment service provider over HTTPS. The PSP fronts the local card
// networks (mada, Apple Pay, STC Pay) behind one charges API.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPGateway creates a new HTTPGateway from configuration
func NewHTTPGateway(cfg *config.PaymentConfig) *HTTPGateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPGateway{
		baseURL: cfg.GatewayURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (g *HTTPGateway) Name() string {
	return "psp-gateway"
}

// chargeRequest is the wire format of a charge authorization request
type chargeRequest struct {
	OrderID     string         `json:"order_id"`
	OrderNumber string         `json:"order_number"`
	Amount      string         `json:"amount"`
	Currency    string         `json:"currency"`
	Method      string         `json:"method"`
	Customer    chargeCustomer `json:"customer"`
}

type chargeCustomer struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// chargeResponse is the wire format of the provider's answer
type chargeResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
	RedirectURL   string `json:"redirect_url"`
	FailureReason string `json:"failure_reason"`
}

// Initiate submits one charge to the provider. A transport error,
// a non-2xx response, or an undecodable body all come back as errors;
// the caller decides what a provider failure means for the payment.
func (g *HTTPGateway) Initiate(ctx context.Context, req payment.InitiateRequest) (payment.InitiateResult, error) {
	body := chargeRequest{
		OrderID:     req.OrderID.String(),
		OrderNumber: req.OrderNumber,
		Amount:      req.Amount.StringFixed(2),
		Currency:    string(req.Amount.Currency()),
		Method:      string(req.Method),
		Customer: chargeCustomer{
			ID:    req.CustomerID.String(),
			Email: req.CustomerEmail,
			Phone: req.CustomerPhone,
		},
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return payment.InitiateResult{}, fmt.Errorf("psp: failed to encode charge request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+chargesPath, bytes.NewReader(encoded))
	if err != nil {
		return payment.InitiateResult{}, fmt.Errorf("psp: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	// The provider deduplicates retried charges by order id
	httpReq.Header.Set("Idempotency-Key", req.OrderID.String())

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return payment.InitiateResult{}, fmt.Errorf("psp: charge request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return payment.InitiateResult{}, fmt.Errorf("psp: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return payment.InitiateResult{}, fmt.Errorf("psp: charge rejected with status %d", resp.StatusCode)
	}

	var decoded chargeResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return payment.InitiateResult{}, fmt.Errorf("psp: failed to decode response: %w", err)
	}

	return payment.InitiateResult{
		Status:        decoded.Status,
		TransactionID: decoded.TransactionID,
		RedirectURL:   decoded.RedirectURL,
		FailureReason: decoded.FailureReason,
		RawPayload:    raw,
	}, nil
}

var _ payment.Provider = (*HTTPGateway)(nil)
