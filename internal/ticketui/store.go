package ticketui

import (
	"context"

	"github.com/danielolaszy/ticketiq/pkg/models"
)

// TicketSource is what the list controller needs from the ticket store.
type TicketSource interface {
	ListTickets(ctx context.Context, filter models.Filter) ([]models.Ticket, error)
	UpdateStatus(ctx context.Context, id models.TicketID, status models.Status) (*models.Ticket, error)
}

// TicketCreator is what the creation form needs from the ticket store.
type TicketCreator interface {
	CreateTicket(ctx context.Context, draft models.Draft) (models.Ticket, error)
	Classify(ctx context.Context, description string) (models.Suggestion, error)
}

// StatsSource is what the stats controller needs from the ticket store.
type StatsSource interface {
	Stats(ctx context.Context) (models.StatsSnapshot, error)
}

// Store is the full ticket store contract. *ticketstore.Client satisfies it.
type Store interface {
	TicketSource
	TicketCreator
	StatsSource
}
