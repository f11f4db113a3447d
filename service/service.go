package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"storefront/model"
	"storefront/store"
)

type Service struct {
	store store.Store
}

func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// owns is the single authorization predicate: a resource may only be mutated
// or read by the user recorded as its owner.
func owns(resourceOwner, caller string) error {
	if resourceOwner != caller {
		return model.ErrForbidden
	}
	return nil
}

func validQuantity(qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be at least 1: %w", model.ErrInvalidInput)
	}
	return nil
}

// --- products ---

func (s *Service) CreateProduct(in model.ProductInput) (model.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return model.Product{}, fmt.Errorf("name is required: %w", model.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return model.Product{}, fmt.Errorf("price must not be negative: %w", model.ErrInvalidInput)
	}
	if in.Stock < 0 {
		return model.Product{}, fmt.Errorf("stock must not be negative: %w", model.ErrInvalidInput)
	}
	return s.store.CreateProduct(in)
}

func (s *Service) GetProduct(id uuid.UUID) (model.Product, error) {
	return s.store.GetProduct(id)
}

func (s *Service) ListProducts() ([]model.Product, error) {
	return s.store.ListProducts()
}

func (s *Service) UpdateProduct(id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return model.Product{}, fmt.Errorf("name must not be empty: %w", model.ErrInvalidInput)
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return model.Product{}, fmt.Errorf("price must not be negative: %w", model.ErrInvalidInput)
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return model.Product{}, fmt.Errorf("stock must not be negative: %w", model.ErrInvalidInput)
	}
	return s.store.UpdateProduct(id, patch)
}

func (s *Service) DeleteProduct(id uuid.UUID) error {
	return s.store.DeleteProduct(id)
}

func (s *Service) SetStock(productID uuid.UUID, stock int) error {
	if stock < 0 {
		return fmt.Errorf("stock must not be negative: %w", model.ErrInvalidInput)
	}
	return s.store.SetStock(productID, stock)
}

// --- cart ---

func (s *Service) AddToCart(userID string, productID uuid.UUID, qty int) (model.CartLine, error) {
	if err := validQuantity(qty); err != nil {
		return model.CartLine{}, err
	}
	return s.store.AddToCart(userID, productID, qty)
}

func (s *Service) UpdateCartLine(userID string, lineID uuid.UUID, qty int) (model.CartLine, error) {
	if err := validQuantity(qty); err != nil {
		return model.CartLine{}, err
	}
	line, err := s.store.GetCartLine(lineID)
	if err != nil {
		return model.CartLine{}, err
	}
	// Line ownership never changes, so checking before the write is safe.
	if err := owns(line.UserID, userID); err != nil {
		return model.CartLine{}, err
	}
	return s.store.SetCartQuantity(lineID, qty)
}

func (s *Service) RemoveCartLine(userID string, lineID uuid.UUID) error {
	line, err := s.store.GetCartLine(lineID)
	if err != nil {
		return err
	}
	if err := owns(line.UserID, userID); err != nil {
		return err
	}
	return s.store.RemoveCartLine(lineID)
}

func (s *Service) GetCart(userID string) (model.Cart, error) {
	return s.store.GetCart(userID)
}

// --- checkout + orders ---

// Checkout consumes 100% of the caller's current cart as one atomic unit.
func (s *Service) Checkout(userID string) (model.Order, error) {
	return s.store.Checkout(userID)
}

func (s *Service) ListOrders(userID string) ([]model.Order, error) {
	return s.store.ListOrders(userID)
}

func (s *Service) GetOrder(userID string, orderID uuid.UUID) (model.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return model.Order{}, err
	}
	if err := owns(order.UserID, userID); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (s *Service) CancelOrder(userID string, orderID uuid.UUID) (model.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		return model.Order{}, err
	}
	if err := owns(order.UserID, userID); err != nil {
		return model.Order{}, err
	}
	if err := s.store.CancelOrder(orderID); err != nil {
		return model.Order{}, err
	}
	return s.store.GetOrder(orderID)
}

// UpdateOrderStatus is the admin fulfillment hook. Only enum membership is
// validated; any known status may be written over any other.
func (s *Service) UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q: %w", status, model.ErrInvalidInput)
	}
	return s.store.UpdateOrderStatus(orderID, status)
}

// --- wishlist ---

func (s *Service) AddToWishlist(userID string, productID uuid.UUID) (model.WishlistEntry, error) {
	return s.store.AddToWishlist(userID, productID)
}

func (s *Service) RemoveFromWishlist(userID string, productID uuid.UUID) error {
	return s.store.RemoveFromWishlist(userID, productID)
}

func (s *Service) GetWishlist(userID string) ([]model.WishlistEntry, error) {
	return s.store.GetWishlist(userID)
}
