package httpx

import (
	"errors"
	"net/http"

	"github.com/bkndhn/bazaar-api/internal/service"
)

// ShipmentHandlers provides HTTP handlers for the shipment sync bridge.
// Routes are admin-scoped: the acting admin comes from the session, so one
// store owner can never sync another store's orders.
type ShipmentHandlers struct {
	Svc *service.ShipmentService
}

// Sync advances the order one step along the fulfillment chain.
// POST /admin/orders/{id}/sync.
func (h *ShipmentHandlers) Sync(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required",
			Err: errors.New("authentication required")})
		return
	}

	res, err := h.Svc.SyncStatus(r.Context(), r.PathValue("id"), session.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, res)
}

// History lists the order's status audit trail, newest first.
// GET /admin/orders/{id}/history.
func (h *ShipmentHandlers) History(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "authentication_required",
			Err: errors.New("authentication required")})
		return
	}

	history, err := h.Svc.History(r.Context(), r.PathValue("id"), session.UserID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"history": history})
}
