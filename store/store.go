package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"storefront/model"
)

// Postgres error codes we translate into the domain taxonomy.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// PostgresStore is the Store backed by Postgres. All transactional boundaries
// live here; callers never get raw read-then-write access across requests.
type PostgresStore struct {
	DB *sql.DB

	// per-user mutexes so goroutines in this process don't race on the
	// same cart. Keys are user_id -> *sync.Mutex. Cross-process safety
	// comes from row locks inside the transactions, not from these.
	locks sync.Map
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresStore{DB: db}, nil
}

func (s *PostgresStore) Close() error { return s.DB.Close() }

// lockForUser acquires the process-local lock for a user's cart and returns
// the unlock func.
func (s *PostgresStore) lockForUser(userID string) func() {
	if v, ok := s.locks.Load(userID); ok {
		m := v.(*sync.Mutex)
		m.Lock()
		return func() { m.Unlock() }
	}
	m := &sync.Mutex{}
	actual, _ := s.locks.LoadOrStore(userID, m)
	mtx := actual.(*sync.Mutex)
	mtx.Lock()
	return func() { mtx.Unlock() }
}

// --- product catalog ---

func (s *PostgresStore) CreateProduct(in model.ProductInput) (model.Product, error) {
	p := model.Product{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Stock:       in.Stock,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.DB.Exec(
		`INSERT INTO products (id, name, description, image_url, price, stock, created_at) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Name, p.Description, p.ImageURL, p.Price, p.Stock, p.CreatedAt,
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) GetProduct(id uuid.UUID) (model.Product, error) {
	var p model.Product
	err := s.DB.QueryRow(
		`SELECT id, name, description, image_url, price, stock, created_at FROM products WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Stock, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Product{}, fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (s *PostgresStore) ListProducts() ([]model.Product, error) {
	rows, err := s.DB.Query(
		`SELECT id, name, description, image_url, price, stock, created_at FROM products ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Product{}
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Stock, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateProduct applies a partial update; nil patch fields keep the stored
// value. Returns the updated row.
func (s *PostgresStore) UpdateProduct(id uuid.UUID, patch model.ProductPatch) (model.Product, error) {
	var p model.Product
	err := s.DB.QueryRow(`
		UPDATE products SET
			name        = COALESCE($2, name),
			description = COALESCE($3, description),
			image_url   = COALESCE($4, image_url),
			price       = COALESCE($5, price),
			stock       = COALESCE($6, stock)
		WHERE id = $1
		RETURNING id, name, description, image_url, price, stock, created_at`,
		id, patch.Name, patch.Description, patch.ImageURL, patch.Price, patch.Stock,
	).Scan(&p.ID, &p.Name, &p.Description, &p.ImageURL, &p.Price, &p.Stock, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Product{}, fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// DeleteProduct removes a product. Products referenced by order lines stay
// for price history; the FK restriction surfaces as ErrProductInUse.
func (s *PostgresStore) DeleteProduct(id uuid.UUID) error {
	res, err := s.DB.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("product %s: %w", id, model.ErrProductInUse)
		}
		return err
	}
	if ra, _ := res.RowsAffected(); ra == 0 {
		return fmt.Errorf("product %s: %w", id, model.ErrNotFound)
	}
	return nil
}
