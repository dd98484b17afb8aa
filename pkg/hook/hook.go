// Package hook dispatches outgoing messages to before-send handlers.
package hook

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/imagify/pkg/message"
	"github.com/user/imagify/pkg/ports"
)

// Handler inspects and may modify a message before it is sent.
// Returning an error stops dispatch for that message.
type Handler func(ctx context.Context, s *message.Session) error

type registration struct {
	id      int
	name    string
	handler Handler
}

// Dispatcher holds before-send handlers and runs them in registration order.
// It is safe for concurrent use.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers []registration
	nextID   int
	logger   ports.Logger
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(logger ports.Logger) *Dispatcher {
	return &Dispatcher{
		logger: logger.WithComponent("hook"),
	}
}

// BeforeSend registers h under name and returns a function that removes it.
func (d *Dispatcher) BeforeSend(name string, h Handler) (dispose func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.handlers = append(d.handlers, registration{id: id, name: name, handler: h})

	var once sync.Once
	return func() {
		once.Do(func() { d.remove(id) })
	}
}

func (d *Dispatcher) remove(id int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, r := range d.handlers {
		if r.id == id {
			d.handlers = append(d.handlers[:i:i], d.handlers[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered handlers.
func (d *Dispatcher) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers)
}

// Dispatch runs every handler on s in order and returns the first error.
func (d *Dispatcher) Dispatch(ctx context.Context, s *message.Session) error {
	d.mu.RLock()
	handlers := make([]registration, len(d.handlers))
	copy(handlers, d.handlers)
	d.mu.RUnlock()

	for _, r := range handlers {
		if err := ctx.Err(); err != nil {
			return err
		}
		d.logger.Debug("Running before-send handler %s on message %s", r.name, s.ID)
		if err := r.handler(ctx, s); err != nil {
			return fmt.Errorf("before-send handler %s: %w", r.name, err)
		}
	}
	return nil
}
