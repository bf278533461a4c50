package ticketui

import (
	"github.com/danielolaszy/ticketiq/internal/sequence"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// ticketsLoadedMsg carries the answer to one list request.
type ticketsLoadedMsg struct {
	token   sequence.Token
	filter  models.Filter
	tickets []models.Ticket
	err     error
}

// statusUpdatedMsg carries the answer to one status PATCH. seq identifies
// the optimistic edit it confirms or rejects.
type statusUpdatedMsg struct {
	ticketID models.TicketID
	status   models.Status
	seq      uint64
	ticket   *models.Ticket
	err      error
}

// statsLoadedMsg carries the answer to one stats request.
type statsLoadedMsg struct {
	token sequence.Token
	stats models.StatsSnapshot
	err   error
}

// suggestionMsg carries the classifier answer for the description snapshot
// that was sent.
type suggestionMsg struct {
	token      sequence.Token
	snapshot   string
	suggestion models.Suggestion
	err        error
}

// ticketCreatedMsg carries the answer to a submission.
type ticketCreatedMsg struct {
	draft  models.Draft
	ticket models.Ticket
	err    error
}

// noticeExpiredMsg clears the success notice it was scheduled for.
type noticeExpiredMsg struct {
	id uint64
}
