package book

import (
	"context"
	"errors"
	"log/slog"

	"booklibrary/internal/isbn"
	"booklibrary/internal/metrics"
)

// Service provides book-related business logic.
type Service struct {
	repo Repository
}

// NewService creates a new book service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Available is false when the store was never reached. Data operations then fail with
// ErrStoreUnavailable before any input is checked.
func (s *Service) Available() bool {
	c, ok := s.repo.(Connectivity)
	return !ok || c.Connected()
}

// Lookup validates isbnValue and returns the first stored book with exactly that ISBN.
func (s *Service) Lookup(ctx context.Context, isbnValue string) (Book, error) {
	if !s.Available() {
		metrics.IncLookup("error")
		return Book{}, ErrStoreUnavailable
	}
	if !isbn.IsValid13(isbnValue) {
		metrics.IncLookup("invalid")
		return Book{}, ErrInvalidISBN
	}

	b, err := s.repo.FindByISBN(ctx, isbnValue)
	switch {
	case err == nil:
		metrics.IncLookup("hit")
	case errors.Is(err, ErrNotFound):
		metrics.IncLookup("miss")
	default:
		metrics.IncLookup("error")
	}
	return b, err
}

// ListAll returns summaries of every book. An empty slice with a nil error means the
// catalog holds no books.
func (s *Service) ListAll(ctx context.Context) ([]Summary, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Summary, 0, len(books))
	for _, b := range books {
		out = append(out, b.Summary())
	}
	metrics.SetBooks(len(out))
	return out, nil
}

// Create validates the payload, rejects ISBNs already in the catalog and saves the book.
func (s *Service) Create(ctx context.Context, in Input) (Confirmation, error) {
	if !s.Available() {
		metrics.IncCreateRejected("store")
		return Confirmation{}, ErrStoreUnavailable
	}
	if !isbn.IsValid13(in.ISBN) {
		metrics.IncCreateRejected("invalid_isbn")
		return Confirmation{}, ErrInvalidISBN
	}

	_, err := s.repo.FindByISBN(ctx, in.ISBN)
	switch {
	case err == nil:
		metrics.IncCreateRejected("duplicate")
		return Confirmation{}, ErrDuplicateISBN
	case !errors.Is(err, ErrNotFound):
		metrics.IncCreateRejected("store")
		return Confirmation{}, err
	}

	conf, err := s.repo.Insert(ctx, in.Book())
	if err != nil {
		if errors.Is(err, ErrDuplicateISBN) {
			metrics.IncCreateRejected("duplicate")
		} else {
			metrics.IncCreateRejected("store")
		}
		return Confirmation{}, err
	}

	metrics.IncBooksCreated()
	slog.Info("book created", "doc_id", conf.DocID, "doc_rev", conf.DocRev, "isbn", in.ISBN, "title", in.Title)
	return conf, nil
}

// Audit scans the catalog for books sharing a normalized ISBN and for ISBNs that no
// longer validate. It only reports; nothing is changed.
func (s *Service) Audit(ctx context.Context) (AuditReport, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{
		Scanned:     len(books),
		Duplicates:  map[string][]string{},
		InvalidISBN: map[string]string{},
	}
	byISBN := map[string][]string{}
	for _, b := range books {
		if err := isbn.Check(b.ISBN); err != nil {
			report.InvalidISBN[b.ID] = err.Error()
		}
		key := isbn.Normalize(b.ISBN)
		byISBN[key] = append(byISBN[key], b.ID)
	}
	for key, ids := range byISBN {
		if len(ids) > 1 {
			report.Duplicates[key] = ids
		}
	}
	return report, nil
}
