package ticketui

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/internal/refresh"
	"github.com/danielolaszy/ticketiq/internal/sequence"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// MinClassifyLength is the shortest description sent to the classifier.
const MinClassifyLength = 10

const (
	createFailedMessage    = "Failed to create ticket. Please try again."
	incompleteDraftMessage = "Title and description are required."
	createdNotice          = "Ticket created."

	defaultNoticeDuration = 3 * time.Second
)

var (
	// ErrIncompleteDraft is returned by Submit when the title or the
	// description is blank.
	ErrIncompleteDraft = errors.New("title and description are required")
	// ErrSubmitInFlight is returned by Submit while an earlier submission
	// has not resolved.
	ErrSubmitInFlight = errors.New("a submission is already in progress")
)

// Field names a draft field.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldCategory
	FieldPriority
)

// SuggestionPolicy decides when a classifier answer may touch the draft.
type SuggestionPolicy int

const (
	// SuggestWhenUnchanged applies an answer only if it belongs to the
	// latest classify request and the description still matches the text
	// that was classified.
	SuggestWhenUnchanged SuggestionPolicy = iota
	// SuggestAlways applies every answer on arrival, even when the user
	// kept typing after the request was issued.
	SuggestAlways
)

// FormOptions tunes a FormController.
type FormOptions struct {
	// NoticeDuration is how long the success notice stays visible.
	NoticeDuration time.Duration
	Policy         SuggestionPolicy
}

// FormController owns the ticket creation draft and its classifier
// suggestions.
type FormController struct {
	store       TicketCreator
	coordinator *refresh.Coordinator
	options     FormOptions

	draft       models.Draft
	classify    sequence.Tracker
	classifying bool
	submitting  bool

	err         string
	notice      string
	noticeID    uint64
	lastCreated *models.Ticket
}

// NewFormController creates a form holding the default draft. A successful
// submission is announced on coordinator, if one is given.
func NewFormController(store TicketCreator, coordinator *refresh.Coordinator, options FormOptions) *FormController {
	if options.NoticeDuration <= 0 {
		options.NoticeDuration = defaultNoticeDuration
	}
	return &FormController{
		store:       store,
		coordinator: coordinator,
		options:     options,
		draft:       models.NewDraft(),
	}
}

// Draft returns the current draft.
func (f *FormController) Draft() models.Draft {
	return f.draft
}

// Classifying reports whether a classifier request is outstanding.
func (f *FormController) Classifying() bool {
	return f.classifying
}

// Submitting reports whether a submission is in flight.
func (f *FormController) Submitting() bool {
	return f.submitting
}

// Error returns the persistent form error, if any.
func (f *FormController) Error() string {
	return f.err
}

// Notice returns the transient success notice, if any.
func (f *FormController) Notice() string {
	return f.notice
}

// LastCreated returns the ticket created by the most recent successful
// submission.
func (f *FormController) LastCreated() (models.Ticket, bool) {
	if f.lastCreated == nil {
		return models.Ticket{}, false
	}
	return *f.lastCreated, true
}

// UpdateField assigns value to a draft field. Titles longer than
// models.MaxTitleLength are cut, like a length-limited input would.
func (f *FormController) UpdateField(field Field, value string) {
	switch field {
	case FieldTitle:
		f.draft.Title = models.TruncateTitle(value)
	case FieldDescription:
		f.draft.Description = value
	case FieldCategory:
		f.draft.Category = models.Category(value)
	case FieldPriority:
		f.draft.Priority = models.Priority(value)
	}
}

// OnDescriptionCommitted asks the classifier about the current description
// once the user leaves the field. Descriptions shorter than
// MinClassifyLength issue no request and return nil.
func (f *FormController) OnDescriptionCommitted() tea.Cmd {
	snapshot := f.draft.Description
	if utf8.RuneCountInString(snapshot) < MinClassifyLength {
		return nil
	}

	token := f.classify.Next()
	store := f.store
	f.classifying = true

	return func() tea.Msg {
		suggestion, err := store.Classify(context.Background(), snapshot)
		return suggestionMsg{token: token, snapshot: snapshot, suggestion: suggestion, err: err}
	}
}

// Submit sends the draft as it is right now. Classifier answers arriving
// later cannot change what was sent.
func (f *FormController) Submit() (tea.Cmd, error) {
	if f.submitting {
		return nil, ErrSubmitInFlight
	}
	if strings.TrimSpace(f.draft.Title) == "" || strings.TrimSpace(f.draft.Description) == "" {
		f.err = incompleteDraftMessage
		return nil, ErrIncompleteDraft
	}

	f.submitting = true
	f.err = ""
	draft := f.draft
	store := f.store

	return func() tea.Msg {
		ticket, err := store.CreateTicket(context.Background(), draft)
		return ticketCreatedMsg{draft: draft, ticket: ticket, err: err}
	}, nil
}

// Update applies classifier answers, submission results and notice
// expiry. Other messages are ignored.
func (f *FormController) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case suggestionMsg:
		f.handleSuggestion(msg)
	case ticketCreatedMsg:
		return f.handleCreated(msg)
	case noticeExpiredMsg:
		if msg.id == f.noticeID {
			f.notice = ""
		}
	}
	return nil
}

func (f *FormController) handleSuggestion(msg suggestionMsg) {
	latest := f.classify.IsLatest(msg.token)
	if latest {
		f.classifying = false
	}

	if msg.err != nil {
		logging.Debug("classification failed", "error", msg.err)
		return
	}

	if f.options.Policy == SuggestWhenUnchanged {
		if !latest {
			logging.Debug("discarding superseded suggestion", "token", msg.token)
			return
		}
		if f.draft.Description != msg.snapshot {
			logging.Debug("discarding suggestion for edited description", "token", msg.token)
			return
		}
	}

	f.applySuggestion(msg.suggestion)
}

func (f *FormController) applySuggestion(suggestion models.Suggestion) {
	if !f.draft.ApplySuggestion(suggestion) {
		return
	}
	logging.Debug("suggestion applied",
		"category", f.draft.Category,
		"priority", f.draft.Priority)
}

func (f *FormController) handleCreated(msg ticketCreatedMsg) tea.Cmd {
	f.submitting = false

	if msg.err != nil {
		logging.Error("failed to create ticket",
			"title", msg.draft.Title,
			"error", msg.err)
		f.err = createFailedMessage
		return nil
	}

	logging.Info("ticket created",
		"ticket_id", msg.ticket.ID,
		"category", msg.draft.Category,
		"priority", msg.draft.Priority)

	ticket := msg.ticket
	f.lastCreated = &ticket
	f.draft = models.NewDraft()
	f.err = ""

	f.noticeID++
	id := f.noticeID
	f.notice = createdNotice

	cmds := []tea.Cmd{
		tea.Tick(f.options.NoticeDuration, func(time.Time) tea.Msg {
			return noticeExpiredMsg{id: id}
		}),
	}
	if f.coordinator != nil {
		cmds = append(cmds, f.coordinator.NotifyChanged(refresh.ReasonTicketCreated, ticket.ID))
	}
	return tea.Batch(cmds...)
}
