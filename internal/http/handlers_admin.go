package httpx

import (
	"net/http"

	"github.com/bkndhn/bazaar-api/internal/service"
)

// AccountHandlers provides console endpoints for admin account status.
type AccountHandlers struct {
	Svc *service.AccountService
}

// Pause suspends an admin account: live sessions are revoked and every
// storefront gateway holding that admin's session is notified.
// POST /console/accounts/{id}/pause.
func (h *AccountHandlers) Pause(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Pause(r.Context(), r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": r.PathValue("id"), "status": "paused"})
}

// Resume reactivates an admin account.
// POST /console/accounts/{id}/resume.
func (h *AccountHandlers) Resume(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Resume(r.Context(), r.PathValue("id")); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": r.PathValue("id"), "status": "active"})
}

// Status returns the admin account's current status.
// GET /console/accounts/{id}/status.
func (h *AccountHandlers) Status(w http.ResponseWriter, r *http.Request) {
	status, err := h.Svc.Status(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"id": r.PathValue("id"), "status": string(status)})
}
