package payments

import "context"

// PaymentGateway is one payment provider. Amounts go in as minor units and come back from
// VerifyPayment in major units.
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, req PaymentRequest) (PaymentResponse, error)
	VerifyPayment(ctx context.Context, req PaymentVerifyRequest) (PaymentVerifyResponse, error)
}
