package store

import (
	"context"
	"errors"
	"fmt"
)

// DesignID is the reserved housekeeping entry that shares the collection with books.
const DesignID = "_design/books"

const designBody = `{"language":"javascript","views":{"by_isbn":{"map":"function (doc) { if (doc.kind === 'book') { emit(doc.body.isbn, null); } }"}}}`

// EnsureDesign saves the design entry unless it already exists.
func EnsureDesign(ctx context.Context, s Store) error {
	_, err := s.Get(ctx, DesignID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("lookup design document: %w", err)
	}

	_, err = s.Save(ctx, Document{ID: DesignID, Kind: KindDesign, Body: []byte(designBody)})
	if err != nil && !errors.Is(err, ErrConflict) {
		return fmt.Errorf("save design document: %w", err)
	}
	return nil
}
