package ticketui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/internal/refresh"
	"github.com/danielolaszy/ticketiq/internal/sequence"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// statusFailedAlert is shown when the store rejects a status change.
const statusFailedAlert = "Failed to update status"

// pendingStatus is an optimistic status edit awaiting the store's answer.
type pendingStatus struct {
	status models.Status
	seq    uint64
}

// ListController owns the active filter and the ticket list fetched for
// it. Status edits are applied optimistically and reconciled by
// fail-and-resync: a rejected edit is never inverted locally, the list is
// pulled again instead.
type ListController struct {
	store TicketSource

	filter     models.Filter
	tickets    []models.Ticket
	loading    bool
	loadFailed bool
	requests   sequence.Tracker

	// pending overlays optimistic statuses on top of server state until
	// the matching PATCH resolves.
	pending   map[models.TicketID]pendingStatus
	statusSeq uint64

	alert       string
	unsubscribe func()
}

// NewListController creates a list controller. When coordinator is not nil
// the controller refetches once for every change it announces.
func NewListController(store TicketSource, coordinator *refresh.Coordinator) *ListController {
	list := &ListController{
		store:   store,
		tickets: []models.Ticket{},
		pending: make(map[models.TicketID]pendingStatus),
	}
	if coordinator != nil {
		list.unsubscribe = coordinator.Subscribe("ticket_list", func(refresh.Event) tea.Cmd {
			return list.Refetch()
		})
	}
	return list
}

// Close detaches the controller from its refresh coordinator.
func (l *ListController) Close() {
	if l.unsubscribe != nil {
		l.unsubscribe()
		l.unsubscribe = nil
	}
}

// Filter returns the active filter.
func (l *ListController) Filter() models.Filter {
	return l.filter
}

// Tickets returns a copy of the displayed tickets.
func (l *ListController) Tickets() []models.Ticket {
	return append([]models.Ticket(nil), l.tickets...)
}

// Loading reports whether the latest list request is still in flight. The
// previous result stays displayed meanwhile.
func (l *ListController) Loading() bool {
	return l.loading
}

// LoadFailed reports whether the latest list request failed.
func (l *ListController) LoadFailed() bool {
	return l.loadFailed
}

// Pending reports whether ticket id carries an unconfirmed status edit.
func (l *ListController) Pending(id models.TicketID) bool {
	_, ok := l.pending[id]
	return ok
}

// Alert returns the blocking message raised by a failed status change, or
// the empty string.
func (l *ListController) Alert() string {
	return l.alert
}

// DismissAlert acknowledges the current alert.
func (l *ListController) DismissAlert() {
	l.alert = ""
}

// SetFilter merges patch into the active filter and refetches. Values are
// not validated; the store ignores criteria it does not understand.
func (l *ListController) SetFilter(patch models.FilterPatch) tea.Cmd {
	l.filter = patch.Apply(l.filter)
	return l.Refetch()
}

// Refetch requests the tickets for the active filter. Only the most
// recently issued request's response will be applied.
func (l *ListController) Refetch() tea.Cmd {
	token := l.requests.Next()
	filter := l.filter
	store := l.store
	l.loading = true

	return func() tea.Msg {
		tickets, err := store.ListTickets(context.Background(), filter)
		return ticketsLoadedMsg{token: token, filter: filter, tickets: tickets, err: err}
	}
}

// UpdateStatus sets the ticket's status locally at once and asks the store
// to persist it.
func (l *ListController) UpdateStatus(id models.TicketID, status models.Status) tea.Cmd {
	l.statusSeq++
	seq := l.statusSeq
	l.pending[id] = pendingStatus{status: status, seq: seq}
	l.setLocalStatus(id, status)

	store := l.store
	return func() tea.Msg {
		ticket, err := store.UpdateStatus(context.Background(), id, status)
		return statusUpdatedMsg{ticketID: id, status: status, seq: seq, ticket: ticket, err: err}
	}
}

// Update applies the results of list and status requests. Other messages
// are ignored.
func (l *ListController) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		l.handleTicketsLoaded(msg)
	case statusUpdatedMsg:
		return l.handleStatusUpdated(msg)
	}
	return nil
}

func (l *ListController) handleTicketsLoaded(msg ticketsLoadedMsg) {
	if !l.requests.IsLatest(msg.token) {
		logging.Debug("discarding superseded ticket list",
			"token", msg.token,
			"latest", l.requests.Latest())
		return
	}

	l.loading = false
	if msg.err != nil {
		l.loadFailed = true
		logging.Error("failed to fetch tickets",
			"error", msg.err,
			"filter", msg.filter)
		return
	}

	l.loadFailed = false
	tickets := make([]models.Ticket, len(msg.tickets))
	copy(tickets, msg.tickets)
	for i := range tickets {
		if edit, ok := l.pending[tickets[i].ID]; ok {
			tickets[i].Status = edit.status
		}
	}
	l.tickets = tickets

	logging.Debug("ticket list loaded",
		"count", len(tickets),
		"filter", msg.filter)
}

func (l *ListController) handleStatusUpdated(msg statusUpdatedMsg) tea.Cmd {
	// An older PATCH for the same ticket must not clear a newer edit.
	edit, ok := l.pending[msg.ticketID]
	latest := ok && edit.seq == msg.seq
	if latest {
		delete(l.pending, msg.ticketID)
	}

	if msg.err != nil {
		logging.Error("failed to update ticket status",
			"ticket_id", msg.ticketID,
			"status", msg.status,
			"error", msg.err)
		l.alert = statusFailedAlert
		return l.Refetch()
	}

	logging.Info("ticket status updated",
		"ticket_id", msg.ticketID,
		"status", msg.status)

	if latest && msg.ticket != nil && msg.ticket.ID == msg.ticketID {
		for i := range l.tickets {
			if l.tickets[i].ID == msg.ticketID {
				l.tickets[i] = *msg.ticket
				break
			}
		}
	}
	return nil
}

func (l *ListController) setLocalStatus(id models.TicketID, status models.Status) {
	for i := range l.tickets {
		if l.tickets[i].ID == id {
			l.tickets[i].Status = status
			return
		}
	}
}
