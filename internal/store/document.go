// Package store holds the document database behind the book catalog.
//
// Every record is a Document: an opaque identity and revision assigned on save,
// an explicit kind, an optional uniqueness key within that kind, and a raw JSON body.
package store

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	KindBook   = "book"
	KindDesign = "design"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrConflict    = errors.New("document conflict")
	ErrUnavailable = errors.New("document store unavailable")
)

type Document struct {
	ID   string          `json:"_id"`
	Rev  string          `json:"_rev"`
	Kind string          `json:"kind"`
	Key  string          `json:"key,omitempty"`
	Body json.RawMessage `json:"body"`
}

// Store is the contract every document database driver implements.
type Store interface {
	// Get returns the document stored under id or ErrNotFound.
	Get(ctx context.Context, id string) (Document, error)
	// Iterate calls fn for each document in store order until fn returns an error.
	Iterate(ctx context.Context, fn func(Document) error) error
	// Save inserts doc, assigning ID (when empty) and Rev. It fails with ErrConflict
	// when the ID or the (Kind, Key) pair is already taken.
	Save(ctx context.Context, doc Document) (Document, error)
	Ping(ctx context.Context) error
	Close() error
}

func newDocID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// revision renders a CouchDB style "<generation>-<md5>" token.
func revision(generation int, body []byte) string {
	sum := md5.Sum(body)
	return fmt.Sprintf("%d-%s", generation, hex.EncodeToString(sum[:]))
}

func prepare(doc Document, newID func() string) (Document, error) {
	if doc.Kind == "" {
		return Document{}, fmt.Errorf("save document: kind is required")
	}
	if len(doc.Body) == 0 {
		doc.Body = json.RawMessage("{}")
	}
	if !json.Valid(doc.Body) {
		return Document{}, fmt.Errorf("save document: body is not valid JSON")
	}
	if doc.ID == "" {
		doc.ID = newID()
	}
	doc.Rev = revision(1, doc.Body)
	return doc, nil
}
