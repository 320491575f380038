package httpx

import (
	"net/http"
	"strconv"

	"github.com/bkndhn/bazaar-api/internal/domain/tenant"
	"github.com/bkndhn/bazaar-api/internal/service"
)

// TenantHandlers provides HTTP handlers for store resolution and management.
type TenantHandlers struct {
	Svc *service.TenantService
}

// Resolve maps a storefront path to its store.
// GET /stores/resolve?path=/s/<slug>/....
func (h *TenantHandlers) Resolve(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	t, res, err := h.Svc.ResolvePath(r.Context(), path)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	body := map[string]any{
		"is_store_route": res.IsStoreRoute,
		"slug":           res.Slug,
	}
	if t != nil {
		body["store"] = t
	}
	WriteJSON(w, http.StatusOK, body)
}

// Get returns the active store for a slug.
// GET /stores/{slug}.
func (h *TenantHandlers) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.Svc.BySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, t)
}

// List returns stores with pagination. Console only.
// GET /console/stores?limit=&offset=.
func (h *TenantHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	stores, err := h.Svc.List(r.Context(), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"stores": stores})
}

type createStoreRequest struct {
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	AdminID      string `json:"admin_id"`
	CustomDomain string `json:"custom_domain"`
}

// Create registers a new store. Console only.
// POST /console/stores.
func (h *TenantHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createStoreRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	var customDomain *string
	if req.CustomDomain != "" {
		customDomain = &req.CustomDomain
	}
	created, err := h.Svc.Create(r.Context(), &tenant.Tenant{
		Slug:         req.Slug,
		Name:         req.Name,
		AdminID:      req.AdminID,
		CustomDomain: customDomain,
		IsActive:     true,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive toggles a store's active flag. Console only.
// PATCH /console/stores/{id}/active.
func (h *TenantHandlers) SetActive(w http.ResponseWriter, r *http.Request) {
	var req setActiveRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := h.Svc.SetActive(r.Context(), r.PathValue("id"), req.Active); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"id": r.PathValue("id"), "active": req.Active})
}
