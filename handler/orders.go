package handler

import (
	"encoding/json"
	"net/http"

	"storefront/model"
)

// Checkout handles POST /checkout. The caller's entire current cart is the
// implicit payload; there is no partial checkout.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	order, err := h.svc.Checkout(userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orders, err := h.svc.ListOrders(userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := h.svc.GetOrder(userID, orderID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// CancelOrder handles POST /orders/{id}/cancel
func (h *Handler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := h.svc.CancelOrder(userID, orderID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus handles PUT /orders/{id}/status (admin)
// body: { "status": "SHIPPED" }
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathUUID(r, "id")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.svc.UpdateOrderStatus(orderID, req.Status); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
