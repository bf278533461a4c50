// Package refresh announces that server-side ticket state has changed so
// that views holding pulled copies of it can fetch again.
package refresh

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// Reason names what changed.
type Reason string

const (
	// ReasonTicketCreated is published after the store confirms a new ticket.
	ReasonTicketCreated Reason = "ticket_created"
)

// Event is delivered to every subscriber once per change.
type Event struct {
	// Seq is the signal value after the change. Subscribers treat it as an
	// opaque change token.
	Seq      uint64
	Reason   Reason
	TicketID models.TicketID
	At       time.Time
}

// Handler reacts to a change and may return a follow-up command, usually a
// refetch, for the event loop to run.
type Handler func(Event) tea.Cmd

type subscription struct {
	id      uint64
	name    string
	handler Handler
}

// Coordinator is the publish/subscribe channel for ticket changes.
type Coordinator struct {
	mu          sync.RWMutex
	seq         uint64
	nextID      uint64
	subscribers []subscription
}

// NewCoordinator returns a coordinator with no subscribers and signal zero.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// Signal returns the current change token.
func (c *Coordinator) Signal() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.seq
}

// Subscribe registers handler under name. The returned function removes it.
func (c *Coordinator) Subscribe(name string, handler Handler) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subscribers = append(c.subscribers, subscription{id: id, name: name, handler: handler})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subscribers {
			if sub.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// NotifyChanged increments the signal and invokes each subscriber exactly
// once for this increment. The subscribers' commands are batched into the
// returned command.
func (c *Coordinator) NotifyChanged(reason Reason, ticketID models.TicketID) tea.Cmd {
	c.mu.Lock()
	c.seq++
	event := Event{Seq: c.seq, Reason: reason, TicketID: ticketID, At: time.Now()}
	subscribers := append([]subscription{}, c.subscribers...)
	c.mu.Unlock()

	logging.Debug("tickets changed",
		"seq", event.Seq,
		"reason", event.Reason,
		"ticket_id", event.TicketID,
		"subscribers", len(subscribers))

	cmds := make([]tea.Cmd, 0, len(subscribers))
	for _, sub := range subscribers {
		cmds = append(cmds, sub.handler(event))
	}
	return tea.Batch(cmds...)
}
