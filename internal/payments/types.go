package payments

import (
	"encoding/json"
	"errors"
)

var ErrMissingSecretKey = errors.New("paystack secret key not configured")

// PaymentRequest carries the amount in the currency's minor unit (kobo, pesewas, cents).
type PaymentRequest struct {
	Amount    int64
	Email     string
	Reference string
	Metadata  map[string]any
}

type PaymentResponse struct {
	AccessCode       string `json:"access_code"`
	AuthorizationURL string `json:"authorization_url"`
	Reference        string `json:"reference"`
}

type PaymentVerifyRequest struct {
	Reference string
}

type Customer struct {
	Email        string `json:"email"`
	CustomerCode string `json:"customer_code"`
}

// PaymentVerifyResponse is the normalized settlement result. Amount is in major units.
type PaymentVerifyResponse struct {
	Success       bool            `json:"success"`
	Status        string          `json:"status"`
	Reference     string          `json:"reference"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	PaidAt        *string         `json:"paid_at"`
	Channel       string          `json:"channel"`
	Authorization json.RawMessage `json:"authorization"`
	Customer      Customer        `json:"customer"`
}

// GatewayError carries the provider's own message for a rejected call.
type GatewayError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	return e.Message
}
