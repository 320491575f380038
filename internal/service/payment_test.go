package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	apperrors "github.com/bkndhn/bazaar-api/internal/errors"
	"github.com/bkndhn/bazaar-api/internal/mocks"
	"github.com/bkndhn/bazaar-api/internal/ports"
)

func testSignature(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentService_CreateOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockPaymentCredentialsRepository(ctrl)
	gateway := mocks.NewMockPaymentGateway(ctrl)
	svc := NewPaymentService(PaymentServiceOptions{Credentials: creds, Gateway: gateway})

	creds.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(&ports.PaymentCredentials{
		AdminID: "admin-1", KeyID: "key_abc", Secret: "s3cret",
	}, nil)
	gateway.EXPECT().CreateOrder(gomock.Any(), ports.CreateGatewayOrderInput{
		Amount: 49900, Currency: "INR", Receipt: "rcpt-1", KeyID: "key_abc", Secret: "s3cret",
	}).Return("order_xyz", nil)

	res, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		AdminID: "admin-1", Amount: 49900, Currency: "INR", Receipt: "rcpt-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "order_xyz", res.OrderID)
	assert.Equal(t, "key_abc", res.KeyID)
}

func TestPaymentService_CreateOrderValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewPaymentService(PaymentServiceOptions{
		Credentials: mocks.NewMockPaymentCredentialsRepository(ctrl),
		Gateway:     mocks.NewMockPaymentGateway(ctrl),
	})

	tests := []struct {
		name string
		in   CreateOrderInput
	}{
		{"missing admin", CreateOrderInput{Amount: 100, Currency: "INR"}},
		{"zero amount", CreateOrderInput{AdminID: "a", Currency: "INR"}},
		{"negative amount", CreateOrderInput{AdminID: "a", Amount: -5, Currency: "INR"}},
		{"missing currency", CreateOrderInput{AdminID: "a", Amount: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), tt.in)
			assert.True(t, apperrors.IsValidation(err))
		})
	}
}

func TestPaymentService_CreateOrderMissingCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockPaymentCredentialsRepository(ctrl)
	svc := NewPaymentService(PaymentServiceOptions{
		Credentials: creds,
		Gateway:     mocks.NewMockPaymentGateway(ctrl),
	})

	creds.EXPECT().ForAdmin(gomock.Any(), "admin-1").
		Return(nil, apperrors.Configuration("payment credentials not configured for store"))

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		AdminID: "admin-1", Amount: 100, Currency: "INR",
	})
	assert.True(t, apperrors.IsConfiguration(err), "missing credentials is a configuration error, not a crash")
}

func TestPaymentService_VerifyPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	creds := mocks.NewMockPaymentCredentialsRepository(ctrl)
	svc := NewPaymentService(PaymentServiceOptions{
		Credentials: creds,
		Gateway:     mocks.NewMockPaymentGateway(ctrl),
	})

	creds.EXPECT().ForAdmin(gomock.Any(), "admin-1").Return(&ports.PaymentCredentials{
		AdminID: "admin-1", KeyID: "key_abc", Secret: "s3cret",
	}, nil).AnyTimes()

	good := VerifyInput{
		AdminID:   "admin-1",
		OrderID:   "order_xyz",
		PaymentID: "pay_123",
		Signature: testSignature("s3cret", "order_xyz", "pay_123"),
	}
	assert.NoError(t, svc.VerifyPayment(context.Background(), good))

	tampered := good
	tampered.PaymentID = "pay_456"
	err := svc.VerifyPayment(context.Background(), tampered)
	assert.True(t, apperrors.IsUnauthorized(err))

	wrongSecret := good
	wrongSecret.Signature = testSignature("other", "order_xyz", "pay_123")
	err = svc.VerifyPayment(context.Background(), wrongSecret)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestPaymentService_VerifyPaymentValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewPaymentService(PaymentServiceOptions{
		Credentials: mocks.NewMockPaymentCredentialsRepository(ctrl),
		Gateway:     mocks.NewMockPaymentGateway(ctrl),
	})

	err := svc.VerifyPayment(context.Background(), VerifyInput{AdminID: "a", OrderID: "o"})
	assert.True(t, apperrors.IsValidation(err))
}
