package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"storefront/model"
	"storefront/service"
)

// Handler is the HTTP layer that talks to service.ServiceInterface. Identity
// arrives pre-authenticated from the upstream gateway as headers; the core
// never authenticates anything itself.
type Handler struct {
	svc service.ServiceInterface
}

func NewHandler(s service.ServiceInterface) *Handler {
	return &Handler{svc: s}
}

// RegisterRoutes registers all routes on the provided router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(requestLogger)

	// Products (reads are public, writes are admin)
	r.HandleFunc("/products", h.ListProducts).Methods("GET")
	r.HandleFunc("/products/{id}", h.GetProduct).Methods("GET")
	r.HandleFunc("/products", requireAdmin(h.CreateProduct)).Methods("POST")
	r.HandleFunc("/products/{id}", requireAdmin(h.UpdateProduct)).Methods("PUT")
	r.HandleFunc("/products/{id}", requireAdmin(h.DeleteProduct)).Methods("DELETE")
	r.HandleFunc("/products/{id}/stock", requireAdmin(h.SetStock)).Methods("PUT")

	// Cart
	r.HandleFunc("/cart", h.GetCart).Methods("GET")
	r.HandleFunc("/cart", h.AddToCart).Methods("POST")
	r.HandleFunc("/cart/{id}", h.UpdateCartLine).Methods("PUT")
	r.HandleFunc("/cart/{id}", h.RemoveCartLine).Methods("DELETE")

	// Checkout + orders
	r.HandleFunc("/checkout", h.Checkout).Methods("POST")
	r.HandleFunc("/orders", h.ListOrders).Methods("GET")
	r.HandleFunc("/orders/{id}", h.GetOrder).Methods("GET")
	r.HandleFunc("/orders/{id}/cancel", h.CancelOrder).Methods("POST")
	r.HandleFunc("/orders/{id}/status", requireAdmin(h.UpdateOrderStatus)).Methods("PUT")

	// Wishlist
	r.HandleFunc("/wishlist", h.GetWishlist).Methods("GET")
	r.HandleFunc("/wishlist/{productId}", h.AddToWishlist).Methods("POST")
	r.HandleFunc("/wishlist/{productId}", h.RemoveFromWishlist).Methods("DELETE")

	r.HandleFunc("/health", h.Health).Methods("GET")
}

// --- identity ---

const (
	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"
)

func callerID(r *http.Request) (string, bool) {
	id := r.Header.Get(headerUserID)
	return id, id != ""
}

// requireAdmin gates admin routes on the role header set by the gateway.
func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := callerID(r); !ok {
			writeErr(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if r.Header.Get(headerRole) != "admin" {
			writeErr(w, http.StatusForbidden, "admins only")
			return
		}
		next(w, r)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// respondErr maps the domain error taxonomy to HTTP statuses in one place.
// Unexpected errors become a generic 500 and are logged, never swallowed.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, model.ErrForbidden):
		writeErr(w, http.StatusForbidden, err.Error())
	case errors.Is(err, model.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, model.ErrAlreadyExists), errors.Is(err, model.ErrProductInUse):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, model.ErrInsufficientStock), errors.Is(err, model.ErrEmptyCart):
		writeErr(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, errors.New("invalid id")
	}
	return id, nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
