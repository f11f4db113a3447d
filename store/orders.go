package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"storefront/model"
)

// scanOrders reads joined order/order_item rows, grouping lines under their
// order. Rows must arrive sorted by order.
func scanOrders(rows *sql.Rows) ([]model.Order, error) {
	var out []model.Order
	for rows.Next() {
		var o model.Order
		var item model.OrderLine
		var status string
		if err := rows.Scan(
			&o.ID, &o.UserID, &status, &o.Total, &o.CreatedAt,
			&item.ID, &item.ProductID, &item.Quantity, &item.Price, &item.ProductName,
		); err != nil {
			return nil, err
		}
		o.Status = model.OrderStatus(status)
		item.OrderID = o.ID
		if n := len(out); n > 0 && out[n-1].ID == o.ID {
			out[n-1].Items = append(out[n-1].Items, item)
		} else {
			o.Items = []model.OrderLine{item}
			out = append(out, o)
		}
	}
	return out, rows.Err()
}

const orderColumns = `
	SELECT o.id, o.user_id, o.status, o.total, o.created_at,
	       oi.id, oi.product_id, oi.quantity, oi.price, p.name
	FROM orders o
	JOIN order_items oi ON oi.order_id = o.id
	JOIN products p ON p.id = oi.product_id`

// ListOrders returns the user's orders with lines, most recent first.
func (s *PostgresStore) ListOrders(userID string) ([]model.Order, error) {
	rows, err := s.DB.Query(orderColumns+`
	WHERE o.user_id = $1
	ORDER BY o.created_at DESC, oi.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	orders, err := scanOrders(rows)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *PostgresStore) GetOrder(orderID uuid.UUID) (model.Order, error) {
	rows, err := s.DB.Query(orderColumns+`
	WHERE o.id = $1
	ORDER BY oi.id`, orderID)
	if err != nil {
		return model.Order{}, err
	}
	defer rows.Close()
	orders, err := scanOrders(rows)
	if err != nil {
		return model.Order{}, err
	}
	if len(orders) == 0 {
		return model.Order{}, fmt.Errorf("order %s: %w", orderID, model.ErrNotFound)
	}
	return orders[0], nil
}

// UpdateOrderStatus writes the status field. No transition graph is
// enforced; the caller validates enum membership.
func (s *PostgresStore) UpdateOrderStatus(orderID uuid.UUID, status model.OrderStatus) error {
	res, err := s.DB.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, string(status), orderID)
	if err != nil {
		return err
	}
	if ra, _ := res.RowsAffected(); ra == 0 {
		return fmt.Errorf("order %s: %w", orderID, model.ErrNotFound)
	}
	return nil
}

// CancelOrder flips a PENDING order to CANCELLED and releases its stock back
// to the products, atomically. Ownership is checked by the caller; whether
// the order is still cancellable is decided here, under the row lock.
func (s *PostgresStore) CancelOrder(orderID uuid.UUID) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRow(`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID).Scan(&status)
	if err == sql.ErrNoRows {
		return fmt.Errorf("order %s: %w", orderID, model.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if model.OrderStatus(status) != model.StatusPending {
		return fmt.Errorf("order is %s, only pending orders can be cancelled: %w", status, model.ErrInvalidInput)
	}

	if _, err := tx.Exec(`UPDATE orders SET status = $1 WHERE id = $2`, string(model.StatusCancelled), orderID); err != nil {
		return err
	}

	// Compensating release of every line's reserved units.
	if _, err := tx.Exec(`
		UPDATE products p SET stock = p.stock + oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND p.id = oi.product_id`,
		orderID,
	); err != nil {
		return err
	}

	return tx.Commit()
}
