package store

import (
	"github.com/google/uuid"

	"storefront/model"
)

// Store is the persistence boundary consumed by the service layer. Every
// method is a bounded request/response operation; all multi-row atomicity
// lives behind it.
type Store interface {
	// product catalog
	CreateProduct(in model.ProductInput) (model.Product, error)
	GetProduct(id uuid.UUID) (model.Product, error)
	ListProducts() ([]model.Product, error)
	UpdateProduct(id uuid.UUID, patch model.ProductPatch) (model.Product, error)
	DeleteProduct(id uuid.UUID) error

	// inventory ledger
	GetStock(productID uuid.UUID) (int, error)
	TryReserve(productID uuid.UUID, qty int) error
	Release(productID uuid.UUID, qty int) error
	SetStock(productID uuid.UUID, stock int) error

	// cart
	AddToCart(userID string, productID uuid.UUID, qty int) (model.CartLine, error)
	GetCartLine(lineID uuid.UUID) (model.CartLine, error)
	SetCartQuantity(lineID uuid.UUID, qty int) (model.CartLine, error)
	RemoveCartLine(lineID uuid.UUID) error
	GetCart(userID string) (model.Cart, error)

	// checkout + orders
	Checkout(userID string) (model.Order, error)
	ListOrders(userID string) ([]model.Order, error)
	GetOrder(orderID uuid.UUID) (model.Order, error)
	UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus) error
	CancelOrder(orderID uuid.UUID) error

	// wishlist
	AddToWishlist(userID string, productID uuid.UUID) (model.WishlistEntry, error)
	RemoveFromWishlist(userID string, productID uuid.UUID) error
	GetWishlist(userID string) ([]model.WishlistEntry, error)

	Close() error
}
