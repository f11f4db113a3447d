package handler

import "net/http"

func (h *Handler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	entries, err := h.svc.GetWishlist(userID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// AddToWishlist handles POST /wishlist/{productId}
func (h *Handler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	productID, err := pathUUID(r, "productId")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid product id")
		return
	}
	entry, err := h.svc.AddToWishlist(userID, productID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

// RemoveFromWishlist handles DELETE /wishlist/{productId}
func (h *Handler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "authentication required")
		return
	}
	productID, err := pathUUID(r, "productId")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.svc.RemoveFromWishlist(userID, productID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
