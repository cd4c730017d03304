package book

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booklibrary/internal/isbn"
	"booklibrary/internal/store"
)

var errStopScan = errors.New("stop scan")

// DocumentRepo implements Repository on top of the document store handle.
type DocumentRepo struct {
	handle  *store.Handle
	timeout time.Duration
}

func NewDocumentRepo(handle *store.Handle, timeout time.Duration) *DocumentRepo {
	return &DocumentRepo{handle: handle, timeout: timeout}
}

// Connected reports the handle's startup snapshot.
func (r *DocumentRepo) Connected() bool {
	return r.handle.Connected()
}

func (r *DocumentRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *DocumentRepo) store() (store.Store, error) {
	s, err := r.handle.Store()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return s, nil
}

func (r *DocumentRepo) FindByISBN(ctx context.Context, isbnValue string) (Book, error) {
	s, err := r.store()
	if err != nil {
		return Book{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	var found Book
	err = s.Iterate(timeoutCtx, func(doc store.Document) error {
		if doc.Kind != store.KindBook {
			return nil
		}
		b, err := decodeBook(doc)
		if err != nil {
			return err
		}
		if b.ISBN == isbnValue {
			found = b
			return errStopScan
		}
		return nil
	})
	switch {
	case errors.Is(err, errStopScan):
		return found, nil
	case err != nil:
		return Book{}, fmt.Errorf("scan books: %w", err)
	}
	return Book{}, ErrNotFound
}

func (r *DocumentRepo) List(ctx context.Context) ([]Book, error) {
	s, err := r.store()
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	books := []Book{}
	err = s.Iterate(timeoutCtx, func(doc store.Document) error {
		if doc.Kind != store.KindBook {
			return nil
		}
		b, err := decodeBook(doc)
		if err != nil {
			return err
		}
		books = append(books, b)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

func (r *DocumentRepo) Insert(ctx context.Context, b Book) (Confirmation, error) {
	s, err := r.store()
	if err != nil {
		return Confirmation{}, err
	}

	b.ID, b.Rev = "", ""
	body, err := json.Marshal(b)
	if err != nil {
		return Confirmation{}, err
	}

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()

	saved, err := s.Save(timeoutCtx, store.Document{
		Kind: store.KindBook,
		Key:  isbn.Normalize(b.ISBN),
		Body: body,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return Confirmation{}, ErrDuplicateISBN
		}
		return Confirmation{}, fmt.Errorf("save book: %w", err)
	}
	return Confirmation{DocID: saved.ID, DocRev: saved.Rev}, nil
}

func decodeBook(doc store.Document) (Book, error) {
	var b Book
	if err := json.Unmarshal(doc.Body, &b); err != nil {
		return Book{}, fmt.Errorf("decode book %s: %w", doc.ID, err)
	}
	b.ID = doc.ID
	b.Rev = doc.Rev
	return b, nil
}
