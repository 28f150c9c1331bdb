package payments

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestAdapter(t *testing.T, h http.HandlerFunc) *PaystackAdapter {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewPaystackAdapter("sk_test_123", srv.URL)
}

func TestInitiatePaymentSendsChannelsAndBearer(t *testing.T) {
	var got map[string]any
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk_test_123" {
			t.Errorf("authorization = %q", auth)
		}
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/abc","access_code":"abc","reference":"ref-1"}}`))
	})

	res, err := p.InitiatePayment(context.Background(), PaymentRequest{Amount: 250000, Email: "a@b.co", Reference: "ref-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccessCode != "abc" || res.AuthorizationURL != "https://checkout.paystack.com/abc" || res.Reference != "ref-1" {
		t.Errorf("unexpected response %+v", res)
	}

	if got["amount"] != float64(250000) || got["email"] != "a@b.co" {
		t.Errorf("unexpected payload %v", got)
	}
	if md, ok := got["metadata"].(map[string]any); !ok || len(md) != 0 {
		t.Errorf("metadata should default to empty object, got %v", got["metadata"])
	}
	channels, _ := got["channels"].([]any)
	if len(channels) != len(PaystackChannels) {
		t.Fatalf("channels = %v", got["channels"])
	}
	for i, c := range PaystackChannels {
		if channels[i] != c {
			t.Errorf("channel %d = %v, want %s", i, channels[i], c)
		}
	}
}

func TestInitiatePaymentMissingSecret(t *testing.T) {
	p := NewPaystackAdapter("", "http://127.0.0.1:1")
	_, err := p.InitiatePayment(context.Background(), PaymentRequest{Amount: 1, Email: "a@b.co", Reference: "r"})
	if !errors.Is(err, ErrMissingSecretKey) {
		t.Fatalf("expected ErrMissingSecretKey, got %v", err)
	}
}

func TestInitiatePaymentGatewayMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"provider message", `{"status":false,"message":"Invalid key"}`, "Invalid key"},
		{"no message", `{"status":false}`, "Failed to initialize payment"},
		{"not json", `<html>bad gateway</html>`, "Failed to initialize payment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(tt.body))
			})
			_, err := p.InitiatePayment(context.Background(), PaymentRequest{Amount: 1, Email: "a@b.co", Reference: "r"})
			var gwErr *GatewayError
			if !errors.As(err, &gwErr) {
				t.Fatalf("expected GatewayError, got %v", err)
			}
			if gwErr.Message != tt.want || gwErr.StatusCode != http.StatusUnauthorized {
				t.Errorf("got %+v, want message %q", gwErr, tt.want)
			}
		})
	}
}

func TestVerifyPaymentNormalizesResult(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method = %s", r.Method)
		}
		if r.URL.EscapedPath() != "/transaction/verify/ref%2F42" {
			t.Errorf("path = %s", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"status":"success","reference":"ref/42","amount":250050,"currency":"NGN",
			"paid_at":"2024-01-01T10:00:00.000Z","channel":"card",
			"authorization":{"last4":"4081","bank":"TEST BANK"},
			"customer":{"email":"a@b.co","customer_code":"CUS_1"}}}`))
	})

	res, err := p.VerifyPayment(context.Background(), PaymentVerifyRequest{Reference: "ref/42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success || res.Status != "success" {
		t.Errorf("expected success, got %+v", res)
	}
	if res.Amount != 2500.50 {
		t.Errorf("amount = %v, want 2500.50", res.Amount)
	}
	if res.PaidAt == nil || *res.PaidAt != "2024-01-01T10:00:00.000Z" {
		t.Errorf("paid_at = %v", res.PaidAt)
	}
	if res.Customer.CustomerCode != "CUS_1" || res.Channel != "card" || res.Currency != "NGN" {
		t.Errorf("unexpected response %+v", res)
	}
	var auth map[string]string
	if err := json.Unmarshal(res.Authorization, &auth); err != nil || auth["last4"] != "4081" {
		t.Errorf("authorization not passed through: %s", res.Authorization)
	}
}

func TestVerifyPaymentFailedTransactionIsNotAnError(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"message":"ok","data":{"status":"abandoned","reference":"r","amount":100,"paid_at":null}}`))
	})

	res, err := p.VerifyPayment(context.Background(), PaymentVerifyRequest{Reference: "r"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Success || res.Status != "abandoned" || res.PaidAt != nil || res.Amount != 1 {
		t.Errorf("unexpected response %+v", res)
	}
}

func TestVerifyPaymentUpstreamError(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"status":false}`))
	})

	_, err := p.VerifyPayment(context.Background(), PaymentVerifyRequest{Reference: "missing"})
	var gwErr *GatewayError
	if !errors.As(err, &gwErr) || gwErr.Message != "Failed to verify payment" {
		t.Fatalf("expected fallback gateway error, got %v", err)
	}
}

func TestVerifyPaymentMissingData(t *testing.T) {
	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"message":"ok","data":null}`))
	})

	if _, err := p.VerifyPayment(context.Background(), PaymentVerifyRequest{Reference: "r"}); err == nil {
		t.Fatal("expected error for missing data")
	}
}

func TestManagerUnknownGateway(t *testing.T) {
	m := NewPaymentManager()
	if _, err := m.InitiatePayment(context.Background(), "stripe", PaymentRequest{}); !errors.Is(err, ErrUnknownGateway) {
		t.Fatalf("expected ErrUnknownGateway, got %v", err)
	}
	if _, err := m.VerifyPayment(context.Background(), "stripe", PaymentVerifyRequest{Reference: "r"}); !errors.Is(err, ErrUnknownGateway) {
		t.Fatalf("expected ErrUnknownGateway, got %v", err)
	}

	p := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"data":{"status":"success","reference":"r","amount":100}}`))
	})
	m.RegisterGateway(Paystack, p)
	res, err := m.VerifyPayment(context.Background(), "Paystack", PaymentVerifyRequest{Reference: "r"})
	if err != nil || !res.Success {
		t.Fatalf("got %+v, %v", res, err)
	}
}
