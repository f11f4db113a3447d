package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"storefront/model"
)

// AddToWishlist saves a product for later. The (user, product) unique
// constraint rejects duplicates; independent of cart and stock state.
func (s *PostgresStore) AddToWishlist(userID string, productID uuid.UUID) (model.WishlistEntry, error) {
	p, err := s.GetProduct(productID)
	if err != nil {
		return model.WishlistEntry{}, err
	}

	entry := model.WishlistEntry{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
		Product:   &p,
	}
	_, err = s.DB.Exec(
		`INSERT INTO wishlist_items (id, user_id, product_id, created_at) VALUES ($1,$2,$3,$4)`,
		entry.ID, entry.UserID, entry.ProductID, entry.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return model.WishlistEntry{}, fmt.Errorf("product %q already in wishlist: %w", p.Name, model.ErrAlreadyExists)
		}
		return model.WishlistEntry{}, err
	}
	return entry, nil
}

func (s *PostgresStore) RemoveFromWishlist(userID string, productID uuid.UUID) error {
	res, err := s.DB.Exec(
		`DELETE FROM wishlist_items WHERE user_id = $1 AND product_id = $2`, userID, productID,
	)
	if err != nil {
		return err
	}
	if ra, _ := res.RowsAffected(); ra == 0 {
		return fmt.Errorf("product %s not in wishlist: %w", productID, model.ErrNotFound)
	}
	return nil
}

// GetWishlist returns the user's entries joined with products, newest first.
func (s *PostgresStore) GetWishlist(userID string) ([]model.WishlistEntry, error) {
	rows, err := s.DB.Query(`
		SELECT wi.id, wi.user_id, wi.product_id, wi.created_at,
		       p.id, p.name, p.description, p.image_url, p.price, p.stock, p.created_at
		FROM wishlist_items wi
		JOIN products p ON p.id = wi.product_id
		WHERE wi.user_id = $1
		ORDER BY wi.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WishlistEntry{}
	for rows.Next() {
		var e model.WishlistEntry
		var p model.Product
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.ProductID, &e.CreatedAt,
			&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Stock, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		e.Product = &p
		out = append(out, e)
	}
	return out, rows.Err()
}
