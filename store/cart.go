package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/model"
)

// AddToCart adds qty to the user's line for the product, creating the line on
// first add. The whole call fails and the stored quantity stays unchanged when
// the resulting sum would exceed current stock. The check is advisory only:
// stock is not reserved here, it is re-validated at checkout.
func (s *PostgresStore) AddToCart(userID string, productID uuid.UUID, qty int) (model.CartLine, error) {
	unlock := s.lockForUser(userID)
	defer unlock()

	tx, err := s.DB.Begin()
	if err != nil {
		return model.CartLine{}, err
	}
	defer tx.Rollback()

	// Lock the product row so the stock we check against can't move under us.
	var p model.Product
	err = tx.QueryRow(
		`SELECT id, name, description, image_url, price, stock, created_at FROM products WHERE id = $1 FOR UPDATE`,
		productID,
	).Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Stock, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.CartLine{}, fmt.Errorf("product %s: %w", productID, model.ErrNotFound)
	}
	if err != nil {
		return model.CartLine{}, err
	}

	line := model.CartLine{
		UserID:    userID,
		ProductID: productID,
		Product:   &p,
	}
	err = tx.QueryRow(`
		INSERT INTO cart_items (id, user_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity, created_at`,
		uuid.New(), userID, productID, qty, time.Now().UTC(),
	).Scan(&line.ID, &line.Quantity, &line.CreatedAt)
	if err != nil {
		return model.CartLine{}, err
	}

	// Rolling back undoes the increment, so a rejected add has no effect.
	if line.Quantity > p.Stock {
		return model.CartLine{}, fmt.Errorf("product %q has %d in stock: %w", p.Name, p.Stock, model.ErrInsufficientStock)
	}

	if err := tx.Commit(); err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

// GetCartLine returns a single line including its owner, for ownership checks.
func (s *PostgresStore) GetCartLine(lineID uuid.UUID) (model.CartLine, error) {
	var line model.CartLine
	err := s.DB.QueryRow(
		`SELECT id, user_id, product_id, quantity, created_at FROM cart_items WHERE id = $1`, lineID,
	).Scan(&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt)
	if err == sql.ErrNoRows {
		return model.CartLine{}, fmt.Errorf("cart line %s: %w", lineID, model.ErrNotFound)
	}
	if err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

// SetCartQuantity replaces a line's quantity after re-reading stock under a
// row lock.
func (s *PostgresStore) SetCartQuantity(lineID uuid.UUID, qty int) (model.CartLine, error) {
	tx, err := s.DB.Begin()
	if err != nil {
		return model.CartLine{}, err
	}
	defer tx.Rollback()

	var name string
	var stock int
	err = tx.QueryRow(`
		SELECT p.name, p.stock
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.id = $1
		FOR UPDATE OF p`,
		lineID,
	).Scan(&name, &stock)
	if err == sql.ErrNoRows {
		return model.CartLine{}, fmt.Errorf("cart line %s: %w", lineID, model.ErrNotFound)
	}
	if err != nil {
		return model.CartLine{}, err
	}
	if qty > stock {
		return model.CartLine{}, fmt.Errorf("product %q has %d in stock: %w", name, stock, model.ErrInsufficientStock)
	}

	var line model.CartLine
	err = tx.QueryRow(
		`UPDATE cart_items SET quantity = $2 WHERE id = $1 RETURNING id, user_id, product_id, quantity, created_at`,
		lineID, qty,
	).Scan(&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt)
	if err != nil {
		return model.CartLine{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.CartLine{}, err
	}
	return line, nil
}

func (s *PostgresStore) RemoveCartLine(lineID uuid.UUID) error {
	res, err := s.DB.Exec(`DELETE FROM cart_items WHERE id = $1`, lineID)
	if err != nil {
		return err
	}
	if ra, _ := res.RowsAffected(); ra == 0 {
		return fmt.Errorf("cart line %s: %w", lineID, model.ErrNotFound)
	}
	return nil
}

// GetCart returns the user's lines joined with their products, newest first,
// with the running total.
func (s *PostgresStore) GetCart(userID string) (model.Cart, error) {
	rows, err := s.DB.Query(`
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at,
		       p.id, p.name, p.description, p.image_url, p.price, p.stock, p.created_at
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at DESC`,
		userID,
	)
	if err != nil {
		return model.Cart{}, err
	}
	defer rows.Close()

	cart := model.Cart{Items: []model.CartLine{}, Total: decimal.Zero}
	for rows.Next() {
		var line model.CartLine
		var p model.Product
		if err := rows.Scan(
			&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &line.CreatedAt,
			&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Stock, &p.CreatedAt,
		); err != nil {
			return model.Cart{}, err
		}
		line.Product = &p
		cart.Items = append(cart.Items, line)
		cart.Total = cart.Total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	if err := rows.Err(); err != nil {
		return model.Cart{}, err
	}
	cart.ItemCount = len(cart.Items)
	return cart, nil
}
