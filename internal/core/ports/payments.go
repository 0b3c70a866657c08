package ports

import (
	"context"
	"encoding/json"
)

// PaymentGateway is the outbound contract with the payment provider's
// transaction-verification endpoint. The returned body is the provider's
// JSON response verbatim.
type PaymentGateway interface {
	VerifyTransaction(ctx context.Context, reference string) (json.RawMessage, error)
}

// PaymentService proxies verification results to the client. It never
// gates order creation; the checkout flow decides what to do with the
// gateway's status field.
type PaymentService interface {
	Verify(ctx context.Context, reference string) (json.RawMessage, error)
}
