package book

import (
	"context"
)

//go:generate mockgen -destination=mock_repository.go -package=book booklibrary/internal/book Repository

// Repository defines the contract for book data storage.
type Repository interface {
	// FindByISBN scans the catalog for the first book whose stored ISBN equals isbn exactly.
	FindByISBN(ctx context.Context, isbn string) (Book, error)
	// List returns every book in store order.
	List(ctx context.Context) ([]Book, error)
	// Insert saves b as a new record. It returns ErrDuplicateISBN when a book with the
	// same normalized ISBN already exists.
	Insert(ctx context.Context, b Book) (Confirmation, error)
}

// Connectivity is implemented by repositories that know whether their store was
// reached at startup. Repositories without it are treated as always available.
type Connectivity interface {
	Connected() bool
}
