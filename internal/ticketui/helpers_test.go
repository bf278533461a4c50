package ticketui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielolaszy/ticketiq/pkg/models"
)

var errStoreDown = errors.New("store unavailable")

// MockStore is a test double for the ticket store. Unset funcs fail with
// errStoreDown; every call is recorded.
type MockStore struct {
	ListTicketsFunc  func(models.Filter) ([]models.Ticket, error)
	CreateTicketFunc func(models.Draft) (models.Ticket, error)
	UpdateStatusFunc func(models.TicketID, models.Status) (*models.Ticket, error)
	StatsFunc        func() (models.StatsSnapshot, error)
	ClassifyFunc     func(string) (models.Suggestion, error)

	mu            sync.Mutex
	listCalls     []models.Filter
	createCalls   []models.Draft
	statusCalls   []models.Status
	statsCalls    int
	classifyCalls []string
}

func (m *MockStore) ListTickets(_ context.Context, filter models.Filter) ([]models.Ticket, error) {
	m.mu.Lock()
	m.listCalls = append(m.listCalls, filter)
	m.mu.Unlock()
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(filter)
	}
	return nil, errStoreDown
}

func (m *MockStore) CreateTicket(_ context.Context, draft models.Draft) (models.Ticket, error) {
	m.mu.Lock()
	m.createCalls = append(m.createCalls, draft)
	m.mu.Unlock()
	if m.CreateTicketFunc != nil {
		return m.CreateTicketFunc(draft)
	}
	return models.Ticket{}, errStoreDown
}

func (m *MockStore) UpdateStatus(_ context.Context, id models.TicketID, status models.Status) (*models.Ticket, error) {
	m.mu.Lock()
	m.statusCalls = append(m.statusCalls, status)
	m.mu.Unlock()
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(id, status)
	}
	return nil, errStoreDown
}

func (m *MockStore) Stats(_ context.Context) (models.StatsSnapshot, error) {
	m.mu.Lock()
	m.statsCalls++
	m.mu.Unlock()
	if m.StatsFunc != nil {
		return m.StatsFunc()
	}
	return models.StatsSnapshot{}, errStoreDown
}

func (m *MockStore) Classify(_ context.Context, description string) (models.Suggestion, error) {
	m.mu.Lock()
	m.classifyCalls = append(m.classifyCalls, description)
	m.mu.Unlock()
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(description)
	}
	return models.Suggestion{}, errStoreDown
}

func (m *MockStore) ListCalls() []models.Filter {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Filter(nil), m.listCalls...)
}

func (m *MockStore) CreateCalls() []models.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Draft(nil), m.createCalls...)
}

func (m *MockStore) StatsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsCalls
}

func (m *MockStore) ClassifyCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.classifyCalls...)
}

// drain runs cmd and everything it leads to, one command at a time, feeding
// every message to update. Batched commands are expanded in order.
func drain(t *testing.T, cmd tea.Cmd, update func(tea.Msg) tea.Cmd) []tea.Msg {
	t.Helper()

	var messages []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}
		messages = append(messages, msg)
		queue = append(queue, update(msg))

		if len(messages) > 100 {
			t.Fatal("drain did not settle")
		}
	}
	return messages
}

func sampleTickets() []models.Ticket {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return []models.Ticket{
		{
			ID:          "1",
			Title:       "Printer jam",
			Description: "The printer on 3rd floor is jammed",
			Category:    models.CategoryGeneral,
			Priority:    models.PriorityMedium,
			Status:      models.StatusOpen,
			CreatedAt:   created,
		},
		{
			ID:          "2",
			Title:       "Double charge",
			Description: "I was billed twice this month",
			Category:    models.CategoryBilling,
			Priority:    models.PriorityHigh,
			Status:      models.StatusInProgress,
			CreatedAt:   created.Add(time.Hour),
		},
	}
}

func ptr[T any](v T) *T {
	return &v
}
