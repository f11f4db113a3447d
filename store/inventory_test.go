package store

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"storefront/model"
)

func TestTryReserve_Success(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
	)).WithArgs(3, id).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.TryReserve(id, 3); err != nil {
		t.Fatalf("TryReserve failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTryReserve_InsufficientStock(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	// guard fails: no rows updated, product exists with stock 2
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
	)).WithArgs(5, id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT stock FROM products WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(2))

	err := s.TryReserve(id, 5)
	if !errors.Is(err, model.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTryReserve_MissingProduct(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`,
	)).WithArgs(1, id).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT stock FROM products WHERE id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"stock"}))

	err := s.TryReserve(id, 1)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRelease(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE products SET stock = stock + $1 WHERE id = $2`,
	)).WithArgs(2, id).WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Release(id, 2); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetStock_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE products SET stock = $1 WHERE id = $2`,
	)).WithArgs(10, id).WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.SetStock(id, 10); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
