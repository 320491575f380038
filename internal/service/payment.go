package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/observability/metrics"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

// PaymentServiceOptions groups dependencies for PaymentService.
type PaymentServiceOptions struct {
	Credentials ports.PaymentCredentialsRepository
	Gateway     ports.PaymentGateway
	Logger      *slog.Logger
	Metrics     *metrics.PaymentMetrics
}

// PaymentService bridges checkout to the external payment provider using the
// store owner's own credentials. Missing credentials surface as a
// configuration error so the storefront can tell the shopper the store is
// not set up for payments, instead of failing opaquely.
type PaymentService struct {
	credentials ports.PaymentCredentialsRepository
	gateway     ports.PaymentGateway
	logger      *slog.Logger
	metrics     *metrics.PaymentMetrics
}

// NewPaymentService constructs a new PaymentService.
func NewPaymentService(opts PaymentServiceOptions) *PaymentService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{
		credentials: opts.Credentials,
		gateway:     opts.Gateway,
		logger:      logger,
		metrics:     opts.Metrics,
	}
}

// CreateOrderInput carries inputs for opening a provider-side order.
type CreateOrderInput struct {
	AdminID  string
	Amount   int64
	Currency string
	Receipt  string
}

// CreateOrderResult is what the storefront needs to launch the provider's
// checkout: the provider order id and the public key id. The secret never
// leaves the server.
type CreateOrderResult struct {
	OrderID string `json:"order_id"`
	KeyID   string `json:"key_id"`
}

// CreateOrder opens an order with the payment provider on behalf of the
// store owner identified by AdminID.
func (s *PaymentService) CreateOrder(ctx context.Context, in CreateOrderInput) (*CreateOrderResult, error) {
	if in.AdminID == "" {
		return nil, apperrors.Validation("admin id is required")
	}
	if in.Amount <= 0 {
		return nil, apperrors.ValidationField("amount", "amount must be positive")
	}
	if in.Currency == "" {
		return nil, apperrors.ValidationField("currency", "currency is required")
	}

	creds, err := s.credentials.ForAdmin(ctx, in.AdminID)
	if err != nil {
		return nil, err
	}

	orderID, err := s.gateway.CreateOrder(ctx, ports.CreateGatewayOrderInput{
		Amount:   in.Amount,
		Currency: in.Currency,
		Receipt:  in.Receipt,
		KeyID:    creds.KeyID,
		Secret:   creds.Secret,
	})
	if err != nil {
		return nil, fmt.Errorf("create gateway order: %w", err)
	}

	s.logger.InfoContext(ctx, "payment order created",
		"admin_id", in.AdminID, "gateway_order_id", orderID, "amount", in.Amount, "currency", in.Currency)
	s.metrics.OrderCreated(in.Currency)
	return &CreateOrderResult{OrderID: orderID, KeyID: creds.KeyID}, nil
}

// VerifyInput carries the provider's post-checkout callback fields.
type VerifyInput struct {
	AdminID   string
	OrderID   string
	PaymentID string
	Signature string
}

// VerifyPayment checks the provider's callback signature: the hex HMAC-SHA256
// of "orderID|paymentID" under the store's secret. Comparison is constant
// time. A bad signature is an unauthorized error, never a panic.
func (s *PaymentService) VerifyPayment(ctx context.Context, in VerifyInput) error {
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		return apperrors.Validation("order id, payment id, and signature are required")
	}

	creds, err := s.credentials.ForAdmin(ctx, in.AdminID)
	if err != nil {
		return err
	}

	expected := signPayment(creds.Secret, in.OrderID, in.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(in.Signature)) {
		s.logger.InfoContext(ctx, "payment signature rejected",
			"admin_id", in.AdminID, "gateway_order_id", in.OrderID)
		s.metrics.Verified(false)
		return apperrors.Unauthorized("payment signature mismatch")
	}

	s.logger.InfoContext(ctx, "payment verified",
		"admin_id", in.AdminID, "gateway_order_id", in.OrderID, "payment_id", in.PaymentID)
	s.metrics.Verified(true)
	return nil
}

// signPayment computes the provider's documented signature: hex-encoded
// HMAC-SHA256 over "orderID|paymentID".
func signPayment(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
