package ports

import "context"

// PaymentCredentials are the per-tenant payment provider credentials.
// Their absence is a configuration error, not a crash.
type PaymentCredentials struct {
	AdminID string
	KeyID   string
	Secret  string
}

// PaymentCredentialsRepository reads per-tenant payment credentials.
type PaymentCredentialsRepository interface {
	ForAdmin(ctx context.Context, adminID string) (*PaymentCredentials, error)
}

// CreateGatewayOrderInput carries inputs for opening a provider-side order.
type CreateGatewayOrderInput struct {
	Amount   int64
	Currency string
	Receipt  string
	KeyID    string
	Secret   string
}

// PaymentGateway opens orders with the external payment provider.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, in CreateGatewayOrderInput) (orderID string, err error)
}
