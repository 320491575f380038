package httpx

import (
	"net/http"

	"github.com/bkndhn/bazaar-api/internal/service"
)

// PaymentHandlers provides HTTP handlers for the checkout payment bridge.
type PaymentHandlers struct {
	Svc *service.PaymentService
}

type createPaymentOrderRequest struct {
	AdminID  string `json:"admin_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// CreateOrder opens a provider-side order for checkout.
// POST /payments/orders.
func (h *PaymentHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createPaymentOrderRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.CreateOrder(r.Context(), service.CreateOrderInput{
		AdminID:  req.AdminID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  req.Receipt,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, res)
}

type verifyPaymentRequest struct {
	AdminID   string `json:"admin_id"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

// Verify checks the provider's post-checkout signature.
// POST /payments/verify.
func (h *PaymentHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if err := h.Svc.VerifyPayment(r.Context(), service.VerifyInput{
		AdminID:   req.AdminID,
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	}); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "verified"})
}
