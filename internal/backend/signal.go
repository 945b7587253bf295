package backend

import (
	"context"
	"sync"
)

// unauthorizedBus is a minimal observer bus for 401 responses. The client owns
// it so the session layer can react to forced logout without importing this
// package's internals or relying on a global event name.
type unauthorizedBus struct {
	mu   sync.RWMutex
	subs []func(context.Context)
}

func (b *unauthorizedBus) subscribe(fn func(context.Context)) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, fn)
	b.mu.Unlock()
}

func (b *unauthorizedBus) emit(ctx context.Context) {
	b.mu.RLock()
	subs := b.subs
	b.mu.RUnlock()
	for _, fn := range subs {
		fn(ctx)
	}
}

// OnUnauthorized registers fn to run once per upstream 401, with the context
// of the request that triggered it.
func (c *Client) OnUnauthorized(fn func(context.Context)) {
	c.unauthorized.subscribe(fn)
}
