package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"storefront/model"
)

// GetStock returns current stock for a product.
func (s *PostgresStore) GetStock(productID uuid.UUID) (int, error) {
	var stock int
	err := s.DB.QueryRow(`SELECT stock FROM products WHERE id = $1`, productID).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("product %s: %w", productID, model.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return stock, nil
}

// TryReserve atomically decrements stock by qty, failing without side effect
// when fewer than qty units remain. The conditional UPDATE makes two
// concurrent reservations that together exceed stock impossible: at most one
// sees the guard hold.
func (s *PostgresStore) TryReserve(productID uuid.UUID, qty int) error {
	res, err := s.DB.Exec(
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`, qty, productID,
	)
	if err != nil {
		return err
	}
	if ra, _ := res.RowsAffected(); ra > 0 {
		return nil
	}
	// Distinguish a missing product from a short one.
	if _, err := s.GetStock(productID); err != nil {
		return err
	}
	return fmt.Errorf("product %s: %w", productID, model.ErrInsufficientStock)
}

// Release returns qty units to stock; the compensating action for a
// cancelled reservation.
func (s *PostgresStore) Release(productID uuid.UUID, qty int) error {
	res, err := s.DB.Exec(`UPDATE products SET stock = stock + $1 WHERE id = $2`, qty, productID)
	if err != nil {
		return err
	}
	if ra, _ := res.RowsAffected(); ra == 0 {
		return fmt.Errorf("product %s: %w", productID, model.ErrNotFound)
	}
	return nil
}

// SetStock writes an absolute stock level (admin operation).
func (s *PostgresStore) SetStock(productID uuid.UUID, stock int) error {
	res, err := s.DB.Exec(`UPDATE products SET stock = $1 WHERE id = $2`, stock, productID)
	if err != nil {
		return err
	}
	if ra, _ := res.RowsAffected(); ra == 0 {
		return fmt.Errorf("product %s: %w", productID, model.ErrNotFound)
	}
	return nil
}
