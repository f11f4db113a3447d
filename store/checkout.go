package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/model"
)

// Checkout converts the user's entire cart into an order in one transaction:
// re-validate every line against live stock, decrement stock, insert the
// order and its lines with the price captured at this instant, clear the
// cart. Any failure rolls the whole thing back; no partial order is ever
// created. Product rows are locked in id order to avoid deadlocks between
// concurrent checkouts contending for the same products.
func (s *PostgresStore) Checkout(userID string) (model.Order, error) {
	unlock := s.lockForUser(userID)
	defer unlock()

	tx, err := s.DB.Begin()
	if err != nil {
		return model.Order{}, err
	}
	defer tx.Rollback()

	// This read is the boundary of "current cart": the lines seen here are
	// exactly the lines consumed below, under the same locks.
	rows, err := tx.Query(`
		SELECT ci.product_id, ci.quantity, p.name, p.price, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY p.id
		FOR UPDATE OF p`,
		userID,
	)
	if err != nil {
		return model.Order{}, err
	}

	type line struct {
		productID uuid.UUID
		name      string
		quantity  int
		price     decimal.Decimal
		stock     int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity, &l.name, &l.price, &l.stock); err != nil {
			rows.Close()
			return model.Order{}, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return model.Order{}, err
	}
	rows.Close()

	if len(lines) == 0 {
		return model.Order{}, model.ErrEmptyCart
	}

	total := decimal.Zero
	for _, l := range lines {
		if l.quantity > l.stock {
			return model.Order{}, fmt.Errorf("product %q has %d in stock: %w", l.name, l.stock, model.ErrInsufficientStock)
		}
		total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.quantity))))
	}

	order := model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    model.StatusPending,
		Total:     total,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := tx.Exec(
		`INSERT INTO orders (id, user_id, status, total, created_at) VALUES ($1,$2,$3,$4,$5)`,
		order.ID, order.UserID, string(order.Status), order.Total, order.CreatedAt,
	); err != nil {
		return model.Order{}, err
	}

	itemStmt, err := tx.Prepare(`INSERT INTO order_items (id, order_id, product_id, quantity, price) VALUES ($1,$2,$3,$4,$5)`)
	if err != nil {
		return model.Order{}, err
	}
	defer itemStmt.Close()

	stockStmt, err := tx.Prepare(`UPDATE products SET stock = stock - $1 WHERE id = $2`)
	if err != nil {
		return model.Order{}, err
	}
	defer stockStmt.Close()

	for _, l := range lines {
		item := model.OrderLine{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   l.productID,
			ProductName: l.name,
			Quantity:    l.quantity,
			Price:       l.price,
		}
		if _, err := itemStmt.Exec(item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price); err != nil {
			return model.Order{}, err
		}
		if _, err := stockStmt.Exec(l.quantity, l.productID); err != nil {
			return model.Order{}, err
		}
		order.Items = append(order.Items, item)
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return model.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, err
	}
	return order, nil
}
