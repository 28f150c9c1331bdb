package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultPaystackBaseURL = "https://api.paystack.co"

// Channels enabled on every initialized transaction.
var PaystackChannels = []string{"card", "bank", "ussd", "qr", "mobile_money", "bank_transfer"}

type PaystackAdapter struct {
	SecretKey  string
	BaseURL    string
	httpClient *http.Client
}

func NewPaystackAdapter(secret, baseURL string) *PaystackAdapter {
	if baseURL == "" {
		baseURL = DefaultPaystackBaseURL
	}
	return &PaystackAdapter{
		SecretKey:  secret,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

func (p *PaystackAdapter) initializeURL() string {
	return p.BaseURL + "/transaction/initialize"
}

func (p *PaystackAdapter) verifyURL(reference string) string {
	return p.BaseURL + "/transaction/verify/" + url.PathEscape(reference)
}

// paystackEnvelope is the shape of every Paystack API response.
type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (p *PaystackAdapter) do(ctx context.Context, method, endpoint string, payload any, fallback string) (json.RawMessage, error) {
	if p.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("paystack encode: %w", err)
		}
		body = bytes.NewReader(b)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("paystack request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.SecretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("paystack %s: %w", fallback, err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)

	var env paystackEnvelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = fallback
		}
		return nil, &GatewayError{Provider: "paystack", StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("paystack decode: %w body=%s", decodeErr, string(raw))
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil, errors.New("paystack response missing data")
	}
	return env.Data, nil
}

func (p *PaystackAdapter) InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error) {
	metadata := req.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	payload := map[string]any{
		"amount":    req.Amount,
		"email":     req.Email,
		"reference": req.Reference,
		"metadata":  metadata,
		"channels":  PaystackChannels,
	}

	data, err := p.do(ctx, http.MethodPost, p.initializeURL(), payload, "Failed to initialize payment")
	if err != nil {
		return PaymentResponse{}, err
	}

	var res PaymentResponse
	if err := json.Unmarshal(data, &res); err != nil {
		return PaymentResponse{}, fmt.Errorf("paystack initialize decode: %w", err)
	}
	return res, nil
}

func (p *PaystackAdapter) VerifyPayment(ctx context.Context, req PaymentVerifyRequest) (PaymentVerifyResponse, error) {
	reference := strings.TrimSpace(req.Reference)
	if reference == "" {
		return PaymentVerifyResponse{}, fmt.Errorf("paystack verify requires a reference")
	}

	data, err := p.do(ctx, http.MethodGet, p.verifyURL(reference), nil, "Failed to verify payment")
	if err != nil {
		return PaymentVerifyResponse{}, err
	}

	var res struct {
		Status        string          `json:"status"` // success, failed, abandoned, ongoing, pending, reversed
		Reference     string          `json:"reference"`
		Amount        int64           `json:"amount"`
		Currency      string          `json:"currency"`
		PaidAt        *string         `json:"paid_at"`
		Channel       string          `json:"channel"`
		Authorization json.RawMessage `json:"authorization"`
		Customer      Customer        `json:"customer"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return PaymentVerifyResponse{}, fmt.Errorf("paystack verify decode: %w", err)
	}

	return PaymentVerifyResponse{
		Success:       res.Status == "success",
		Status:        res.Status,
		Reference:     res.Reference,
		Amount:        MinorToMajor(res.Amount),
		Currency:      res.Currency,
		PaidAt:        res.PaidAt,
		Channel:       res.Channel,
		Authorization: res.Authorization,
		Customer:      res.Customer,
	}, nil
}

// MinorToMajor converts kobo/pesewas/cents to the main currency unit.
func MinorToMajor(amount int64) float64 {
	return float64(amount) / 100
}
