package store

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cockroachdb/pebble/v2"
	ulid "github.com/oklog/ulid/v2"
)

// PebbleStore implements Store on an embedded PebbleDB.
//
// Key Schema:
// - doc:<id>          -> Document JSON
// - key:<kind>:<key>  -> id (uniqueness index)
type PebbleStore struct {
	db *pebble.DB
	// serializes the index check and the batch write in Save
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

const (
	prefixDoc = "doc:"
	prefixKey = "key:"
)

// NewPebbleStore opens or creates a PebbleDB at path.
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{
		FormatMajorVersion: pebble.FormatNewest,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{
		db:      db,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

func (p *PebbleStore) Close() error {
	return p.db.Close()
}

func (p *PebbleStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, closer, err := p.db.Get([]byte(prefixDoc))
	if err == nil {
		closer.Close()
		return nil
	}
	if errors.Is(err, pebble.ErrNotFound) {
		return nil
	}
	return err
}

func (p *PebbleStore) Get(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	value, closer, err := p.db.Get([]byte(prefixDoc + id))
	if errors.Is(err, pebble.ErrNotFound) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, err
	}
	defer closer.Close()

	var doc Document
	if err := json.Unmarshal(value, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document %s: %w", id, err)
	}
	return doc, nil
}

func (p *PebbleStore) Iterate(ctx context.Context, fn func(Document) error) error {
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(prefixDoc),
		UpperBound: []byte("doc;"),
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var doc Document
		if err := json.Unmarshal(iter.Value(), &doc); err != nil {
			return fmt.Errorf("decode document %s: %w", iter.Key(), err)
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (p *PebbleStore) Save(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	doc, err := prepare(doc, p.newID)
	if err != nil {
		return Document{}, err
	}

	docKey := []byte(prefixDoc + doc.ID)
	if taken, err := p.exists(docKey); err != nil {
		return Document{}, err
	} else if taken {
		return Document{}, ErrConflict
	}

	batch := p.db.NewBatch()
	defer batch.Close()

	if doc.Key != "" {
		indexKey := []byte(prefixKey + uniqueKey(doc.Kind, doc.Key))
		if taken, err := p.exists(indexKey); err != nil {
			return Document{}, err
		} else if taken {
			return Document{}, ErrConflict
		}
		if err := batch.Set(indexKey, []byte(doc.ID), nil); err != nil {
			return Document{}, err
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return Document{}, err
	}
	if err := batch.Set(docKey, data, nil); err != nil {
		return Document{}, err
	}
	if err := batch.Commit(pebble.Sync); err != nil {
		return Document{}, fmt.Errorf("commit document %s: %w", doc.ID, err)
	}
	return doc, nil
}

func (p *PebbleStore) exists(key []byte) (bool, error) {
	_, closer, err := p.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	closer.Close()
	return true, nil
}

// newID must be called with p.mu held; monotonic entropy is not goroutine safe.
func (p *PebbleStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), p.entropy).String()
}
