package store

import (
	"context"
	"sync"
)

// MemoryStore keeps documents in process memory in insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]Document
	order []string
	keys  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]Document),
		keys: make(map[string]string),
	}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (m *MemoryStore) Iterate(ctx context.Context, fn func(Document) error) error {
	m.mu.RLock()
	docs := make([]Document, 0, len(m.order))
	for _, id := range m.order {
		docs = append(docs, cloneDocument(m.docs[id]))
	}
	m.mu.RUnlock()

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func (m *MemoryStore) Save(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	doc, err := prepare(doc, newDocID)
	if err != nil {
		return Document{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.docs[doc.ID]; exists {
		return Document{}, ErrConflict
	}
	if doc.Key != "" {
		if _, taken := m.keys[uniqueKey(doc.Kind, doc.Key)]; taken {
			return Document{}, ErrConflict
		}
		m.keys[uniqueKey(doc.Kind, doc.Key)] = doc.ID
	}
	m.docs[doc.ID] = cloneDocument(doc)
	m.order = append(m.order, doc.ID)
	return doc, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) Close() error {
	return nil
}

func uniqueKey(kind, key string) string {
	return kind + ":" + key
}

func cloneDocument(doc Document) Document {
	body := make([]byte, len(doc.Body))
	copy(body, doc.Body)
	doc.Body = body
	return doc
}
