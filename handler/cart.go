package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// GetCart handles GET /cart
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	cart, err := h.svc.GetCart(userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

// AddToCart handles POST /cart
// body: { "productId": "...", "quantity": 2 }
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req struct {
		ProductID uuid.UUID `json:"productId"`
		Quantity  int       `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ProductID == uuid.Nil {
		writeErr(w, http.StatusBadRequest, "productId is required")
		return
	}
	line, err := h.svc.AddToCart(userID, req.ProductID, req.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, line)
}

// UpdateCartLine handles PUT /cart/{id}
// body: { "quantity": 3 }
func (h *Handler) UpdateCartLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	lineID, err := pathUUID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid cart line id")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	line, err := h.svc.UpdateCartLine(userID, lineID, req.Quantity)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, line)
}

// RemoveCartLine handles DELETE /cart/{id}
func (h *Handler) RemoveCartLine(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	lineID, err := pathUUID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid cart line id")
		return
	}
	if err := h.svc.RemoveCartLine(userID, lineID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
