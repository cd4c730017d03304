package store

import (
	"context"
	"fmt"
)

// Handle is the process-wide connection to the document store. It records whether
// the connection was established at startup; a disconnected handle never reconnects.
type Handle struct {
	store Store
	cause error
}

func Connected(s Store) *Handle {
	return &Handle{store: s}
}

func Disconnected(cause error) *Handle {
	return &Handle{cause: cause}
}

// Store returns the underlying store, or an error wrapping ErrUnavailable.
func (h *Handle) Store() (Store, error) {
	if h == nil || h.store == nil {
		if h != nil && h.cause != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, h.cause)
		}
		return nil, ErrUnavailable
	}
	return h.store, nil
}

// Connected reports the startup snapshot, not live reachability.
func (h *Handle) Connected() bool {
	return h != nil && h.store != nil
}

// Ping probes the store now.
func (h *Handle) Ping(ctx context.Context) error {
	s, err := h.Store()
	if err != nil {
		return err
	}
	return s.Ping(ctx)
}

func (h *Handle) Close() error {
	if !h.Connected() {
		return nil
	}
	return h.store.Close()
}
