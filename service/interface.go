package service

import (
	"github.com/google/uuid"

	"storefront/model"
)

type ServiceInterface interface {
	CreateProduct(in model.ProductInput) (model.Product, error)
	GetProduct(id uuid.UUID) (model.Product, error)
	ListProducts() ([]model.Product, error)
	UpdateProduct(id uuid.UUID, patch model.ProductPatch) (model.Product, error)
	DeleteProduct(id uuid.UUID) error
	SetStock(productID uuid.UUID, stock int) error

	AddToCart(userID string, productID uuid.UUID, qty int) (model.CartLine, error)
	UpdateCartLine(userID string, lineID uuid.UUID, qty int) (model.CartLine, error)
	RemoveCartLine(userID string, lineID uuid.UUID) error
	GetCart(userID string) (model.Cart, error)

	Checkout(userID string) (model.Order, error)
	ListOrders(userID string) ([]model.Order, error)
	GetOrder(userID string, orderID uuid.UUID) (model.Order, error)
	CancelOrder(userID string, orderID uuid.UUID) (model.Order, error)
	UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus) error

	AddToWishlist(userID string, productID uuid.UUID) (model.WishlistEntry, error)
	RemoveFromWishlist(userID string, productID uuid.UUID) error
	GetWishlist(userID string) ([]model.WishlistEntry, error)
}
