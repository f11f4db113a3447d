package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/model"
)

// fakeService implements service.ServiceInterface via func fields.
type fakeService struct {
	CreateProductFn      func(in model.ProductInput) (model.Product, error)
	GetProductFn         func(id uuid.UUID) (model.Product, error)
	ListProductsFn       func() ([]model.Product, error)
	UpdateProductFn      func(id uuid.UUID, patch model.ProductPatch) (model.Product, error)
	DeleteProductFn      func(id uuid.UUID) error
	SetStockFn           func(productID uuid.UUID, stock int) error
	AddToCartFn          func(userID string, productID uuid.UUID, qty int) (model.CartLine, error)
	UpdateCartLineFn     func(userID string, lineID uuid.UUID, qty int) (model.CartLine, error)
	RemoveCartLineFn     func(userID string, lineID uuid.UUID) error
	GetCartFn            func(userID string) (model.Cart, error)
	CheckoutFn           func(userID string) (model.Order, error)
	ListOrdersFn         func(userID string) ([]model.Order, error)
	GetOrderFn           func(userID string, orderID uuid.UUID) (model.Order, error)
	CancelOrderFn        func(userID string, orderID uuid.UUID) (model.Order, error)
	UpdateOrderStatusFn  func(orderID uuid.UUID, status model.OrderStatus) error
	AddToWishlistFn      func(userID string, productID uuid.UUID) (model.WishlistEntry, error)
	RemoveFromWishlistFn func(userID string, productID uuid.UUID) error
	GetWishlistFn        func(userID string) ([]model.WishlistEntry, error)
}

func (f *fakeService) CreateProduct(in model.ProductInput) (model.Product, error) {
	return f.CreateProductFn(in)
}
func (f *fakeService) GetProduct(id uuid.UUID) (model.Product, error) { return f.GetProductFn(id) }
func (f *fakeService) ListProducts() ([]model.Product, error)         { return f.ListProductsFn() }
func (f *fakeService) UpdateProduct(id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	return f.UpdateProductFn(id, patch)
}
func (f *fakeService) DeleteProduct(id uuid.UUID) error { return f.DeleteProductFn(id) }
func (f *fakeService) SetStock(productID uuid.UUID, stock int) error {
	return f.SetStockFn(productID, stock)
}
func (f *fakeService) AddToCart(userID string, productID uuid.UUID, qty int) (model.CartLine, error) {
	return f.AddToCartFn(userID, productID, qty)
}
func (f *fakeService) UpdateCartLine(userID string, lineID uuid.UUID, qty int) (model.CartLine, error) {
	return f.UpdateCartLineFn(userID, lineID, qty)
}
func (f *fakeService) RemoveCartLine(userID string, lineID uuid.UUID) error {
	return f.RemoveCartLineFn(userID, lineID)
}
func (f *fakeService) GetCart(userID string) (model.Cart, error)   { return f.GetCartFn(userID) }
func (f *fakeService) Checkout(userID string) (model.Order, error) { return f.CheckoutFn(userID) }
func (f *fakeService) ListOrders(userID string) ([]model.Order, error) {
	return f.ListOrdersFn(userID)
}
func (f *fakeService) GetOrder(userID string, orderID uuid.UUID) (model.Order, error) {
	return f.GetOrderFn(userID, orderID)
}
func (f *fakeService) CancelOrder(userID string, orderID uuid.UUID) (model.Order, error) {
	return f.CancelOrderFn(userID, orderID)
}
func (f *fakeService) UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus) error {
	return f.UpdateOrderStatusFn(orderID, status)
}
func (f *fakeService) AddToWishlist(userID string, productID uuid.UUID) (model.WishlistEntry, error) {
	return f.AddToWishlistFn(userID, productID)
}
func (f *fakeService) RemoveFromWishlist(userID string, productID uuid.UUID) error {
	return f.RemoveFromWishlistFn(userID, productID)
}
func (f *fakeService) GetWishlist(userID string) ([]model.WishlistEntry, error) {
	return f.GetWishlistFn(userID)
}

func newTestRouter(svc *fakeService) *mux.Router {
	r := mux.NewRouter()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func doRequest(t *testing.T, r *mux.Router, method, path, user, role, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set(headerUserID, user)
	}
	if role != "" {
		req.Header.Set(headerRole, role)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestIdentityRequired(t *testing.T) {
	r := newTestRouter(&fakeService{})

	for _, tc := range []struct{ method, path string }{
		{"GET", "/cart"},
		{"POST", "/cart"},
		{"POST", "/checkout"},
		{"GET", "/orders"},
		{"GET", "/wishlist"},
	} {
		rec := doRequest(t, r, tc.method, tc.path, "", "", "{}")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestAdminGate(t *testing.T) {
	svc := &fakeService{
		CreateProductFn: func(in model.ProductInput) (model.Product, error) {
			return model.Product{ID: uuid.New(), Name: in.Name}, nil
		},
	}
	r := newTestRouter(svc)
	body := `{"name":"Desk Lamp","price":"44.99","stock":55}`

	rec := doRequest(t, r, "POST", "/products", "u1", "", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doRequest(t, r, "POST", "/products", "admin1", "admin", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{model.ErrInvalidInput, http.StatusBadRequest},
		{model.ErrForbidden, http.StatusForbidden},
		{model.ErrNotFound, http.StatusNotFound},
		{model.ErrAlreadyExists, http.StatusConflict},
		{model.ErrProductInUse, http.StatusConflict},
		{model.ErrInsufficientStock, http.StatusUnprocessableEntity},
		{model.ErrEmptyCart, http.StatusUnprocessableEntity},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		svc := &fakeService{
			CheckoutFn: func(userID string) (model.Order, error) {
				return model.Order{}, fmt.Errorf("checkout: %w", tc.err)
			},
		}
		rec := doRequest(t, newTestRouter(svc), "POST", "/checkout", "u1", "", "")
		assert.Equal(t, tc.want, rec.Code, "error %v", tc.err)
	}
}

func TestCheckout_ReturnsCreatedOrder(t *testing.T) {
	orderID := uuid.New()
	svc := &fakeService{
		CheckoutFn: func(userID string) (model.Order, error) {
			return model.Order{
				ID:     orderID,
				UserID: userID,
				Status: model.StatusPending,
				Total:  decimal.RequireFromString("399.98"),
				Items: []model.OrderLine{{
					ProductName: "Wireless Headphones", Quantity: 2,
					Price: decimal.RequireFromString("199.99"),
				}},
			}, nil
		},
	}

	rec := doRequest(t, newTestRouter(svc), "POST", "/checkout", "u1", "", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, orderID, got.ID)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("399.98")))
	require.Len(t, got.Items, 1)
}

func TestAddToCart_BadRequests(t *testing.T) {
	svc := &fakeService{
		AddToCartFn: func(userID string, productID uuid.UUID, qty int) (model.CartLine, error) {
			return model.CartLine{Quantity: qty}, nil
		},
	}
	r := newTestRouter(svc)

	rec := doRequest(t, r, "POST", "/cart", "u1", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, r, "POST", "/cart", "u1", "", `{"quantity":2}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "missing productId")

	body := fmt.Sprintf(`{"productId":%q,"quantity":2}`, uuid.New())
	rec = doRequest(t, r, "POST", "/cart", "u1", "", body)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestGetOrder_InvalidID(t *testing.T) {
	r := newTestRouter(&fakeService{})
	rec := doRequest(t, r, "GET", "/orders/not-a-uuid", "u1", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWishlistRoutes(t *testing.T) {
	productID := uuid.New()
	svc := &fakeService{
		AddToWishlistFn: func(userID string, pid uuid.UUID) (model.WishlistEntry, error) {
			return model.WishlistEntry{ID: uuid.New(), UserID: userID, ProductID: pid}, nil
		},
		RemoveFromWishlistFn: func(userID string, pid uuid.UUID) error { return nil },
		GetWishlistFn: func(userID string) ([]model.WishlistEntry, error) {
			return []model.WishlistEntry{}, nil
		},
	}
	r := newTestRouter(svc)

	rec := doRequest(t, r, "POST", "/wishlist/"+productID.String(), "u1", "", "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, r, "DELETE", "/wishlist/"+productID.String(), "u1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, r, "GET", "/wishlist", "u1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
