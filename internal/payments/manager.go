package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const Paystack = "paystack"

var ErrUnknownGateway = errors.New("payment gateway not registered")

// PaymentManager routes calls to a provider by name. Names are case-insensitive.
type PaymentManager struct {
	gateways map[string]PaymentGateway
}

func NewPaymentManager() *PaymentManager {
	return &PaymentManager{gateways: make(map[string]PaymentGateway)}
}

func (m *PaymentManager) RegisterGateway(name string, gateway PaymentGateway) {
	m.gateways[strings.ToLower(name)] = gateway
}

func (m *PaymentManager) gateway(name string) (PaymentGateway, error) {
	g, ok := m.gateways[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGateway, name)
	}
	return g, nil
}

func (m *PaymentManager) InitiatePayment(ctx context.Context, method string, req PaymentRequest) (PaymentResponse, error) {
	g, err := m.gateway(method)
	if err != nil {
		return PaymentResponse{}, err
	}
	return g.InitiatePayment(ctx, req)
}

func (m *PaymentManager) VerifyPayment(ctx context.Context, method string, req PaymentVerifyRequest) (PaymentVerifyResponse, error) {
	g, err := m.gateway(method)
	if err != nil {
		return PaymentVerifyResponse{}, err
	}
	return g.VerifyPayment(ctx, req)
}
