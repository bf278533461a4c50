package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielolaszy/ticketiq/internal/config"
	"github.com/danielolaszy/ticketiq/internal/ticketstore"
	"github.com/danielolaszy/ticketiq/internal/ticketui"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

var errAPI = errors.New("API error")

// MockStore implements the ticket store for command tests. Unset funcs
// return errAPI.
type MockStore struct {
	ListTicketsFunc  func(models.Filter) ([]models.Ticket, error)
	CreateTicketFunc func(models.Draft) (models.Ticket, error)
	UpdateStatusFunc func(models.TicketID, models.Status) (*models.Ticket, error)
	StatsFunc        func() (models.StatsSnapshot, error)
	ClassifyFunc     func(string) (models.Suggestion, error)

	classifyCalls int
}

func (m *MockStore) ListTickets(_ context.Context, filter models.Filter) ([]models.Ticket, error) {
	if m.ListTicketsFunc != nil {
		return m.ListTicketsFunc(filter)
	}
	return nil, errAPI
}

func (m *MockStore) CreateTicket(_ context.Context, draft models.Draft) (models.Ticket, error) {
	if m.CreateTicketFunc != nil {
		return m.CreateTicketFunc(draft)
	}
	return models.Ticket{}, errAPI
}

func (m *MockStore) UpdateStatus(_ context.Context, id models.TicketID, status models.Status) (*models.Ticket, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(id, status)
	}
	return nil, errAPI
}

func (m *MockStore) Stats(_ context.Context) (models.StatsSnapshot, error) {
	if m.StatsFunc != nil {
		return m.StatsFunc()
	}
	return models.StatsSnapshot{}, errAPI
}

func (m *MockStore) Classify(_ context.Context, description string) (models.Suggestion, error) {
	m.classifyCalls++
	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(description)
	}
	return models.Suggestion{}, errAPI
}

func testTickets() []models.Ticket {
	return []models.Ticket{
		{
			ID:        "1",
			Title:     "Printer jam",
			Category:  models.CategoryGeneral,
			Priority:  models.PriorityMedium,
			Status:    models.StatusOpen,
			CreatedAt: time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:       "2",
			Title:    "Double charge",
			Category: models.CategoryBilling,
			Priority: models.PriorityHigh,
			Status:   models.StatusInProgress,
		},
	}
}

func TestRunList(t *testing.T) {
	var requested models.Filter
	store := &MockStore{
		ListTicketsFunc: func(filter models.Filter) ([]models.Ticket, error) {
			requested = filter
			return testTickets(), nil
		},
	}
	filter := models.Filter{Category: models.CategoryBilling, Search: "charge"}

	var out bytes.Buffer
	require.NoError(t, runList(context.Background(), store, filter, false, &out))

	assert.Equal(t, filter, requested)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "STATUS", "PRIORITY", "CATEGORY", "CREATED", "TITLE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "Open", "Medium", "General", "2026-02-01", "Printer", "jam"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2", "In", "Progress", "High", "Billing", "-", "Double", "charge"}, strings.Fields(lines[2]))
}

func TestRunListEmpty(t *testing.T) {
	store := &MockStore{
		ListTicketsFunc: func(models.Filter) ([]models.Ticket, error) { return []models.Ticket{}, nil },
	}

	var out bytes.Buffer
	require.NoError(t, runList(context.Background(), store, models.Filter{}, false, &out))
	assert.Equal(t, noTicketsMessage+"\n", out.String())

	out.Reset()
	require.NoError(t, runList(context.Background(), store, models.Filter{}, true, &out))
	assert.JSONEq(t, "[]", out.String())
}

func TestRunListJSON(t *testing.T) {
	store := &MockStore{
		ListTicketsFunc: func(models.Filter) ([]models.Ticket, error) { return testTickets(), nil },
	}

	var out bytes.Buffer
	require.NoError(t, runList(context.Background(), store, models.Filter{}, true, &out))

	var decoded []models.Ticket
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, testTickets(), decoded)
}

func TestRunListError(t *testing.T) {
	err := runList(context.Background(), &MockStore{}, models.Filter{}, false, io.Discard)

	require.Error(t, err)
	assert.ErrorIs(t, err, errAPI)
	assert.Contains(t, err.Error(), "failed to list tickets")
}

func TestRunCreate(t *testing.T) {
	testCases := []struct {
		name             string
		opts             createOptions
		suggestion       models.Suggestion
		expected         models.Draft
		expectedClassify int
	}{
		{
			name: "Defaults without suggestions",
			opts: createOptions{title: "Printer jam", description: "The printer on 3rd floor is jammed and smoking"},
			expected: models.Draft{
				Title:       "Printer jam",
				Description: "The printer on 3rd floor is jammed and smoking",
				Category:    models.CategoryGeneral,
				Priority:    models.PriorityMedium,
			},
		},
		{
			name: "Suggestion fills unset fields",
			opts: createOptions{
				title:       "Wrong invoice",
				description: "My invoice is wrong and I was double charged",
				suggest:     true,
			},
			suggestion: models.Suggestion{Category: models.CategoryBilling},
			expected: models.Draft{
				Title:       "Wrong invoice",
				Description: "My invoice is wrong and I was double charged",
				Category:    models.CategoryBilling,
				Priority:    models.PriorityMedium,
			},
			expectedClassify: 1,
		},
		{
			name: "Flags win over suggestion",
			opts: createOptions{
				title:       "Wrong invoice",
				description: "My invoice is wrong and I was double charged",
				category:    "account",
				suggest:     true,
			},
			suggestion: models.Suggestion{Category: models.CategoryBilling, Priority: models.PriorityCritical},
			expected: models.Draft{
				Title:       "Wrong invoice",
				Description: "My invoice is wrong and I was double charged",
				Category:    models.CategoryAccount,
				Priority:    models.PriorityCritical,
			},
			expectedClassify: 1,
		},
		{
			name:       "Short description is not classified",
			opts:       createOptions{title: "Help", description: "too short", suggest: true},
			suggestion: models.Suggestion{Category: models.CategoryBilling},
			expected: models.Draft{
				Title:       "Help",
				Description: "too short",
				Category:    models.CategoryGeneral,
				Priority:    models.PriorityMedium,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var submitted models.Draft
			store := &MockStore{
				ClassifyFunc: func(string) (models.Suggestion, error) { return tc.suggestion, nil },
				CreateTicketFunc: func(draft models.Draft) (models.Ticket, error) {
					submitted = draft
					return models.Ticket{ID: "9", Title: draft.Title, Category: draft.Category, Priority: draft.Priority, Status: models.StatusOpen}, nil
				},
			}

			var out bytes.Buffer
			require.NoError(t, runCreate(context.Background(), store, tc.opts, &out))

			assert.Equal(t, tc.expected, submitted)
			assert.Equal(t, tc.expectedClassify, store.classifyCalls)
			assert.Contains(t, out.String(), "Ticket created.")
			assert.Contains(t, out.String(), "9")
		})
	}
}

func TestRunCreateClassifierFailureUsesDefaults(t *testing.T) {
	var submitted models.Draft
	store := &MockStore{
		CreateTicketFunc: func(draft models.Draft) (models.Ticket, error) {
			submitted = draft
			return models.Ticket{ID: "1"}, nil
		},
	}
	opts := createOptions{title: "Wrong invoice", description: "My invoice is wrong", suggest: true}

	require.NoError(t, runCreate(context.Background(), store, opts, io.Discard))
	assert.Equal(t, models.CategoryGeneral, submitted.Category)
	assert.Equal(t, models.PriorityMedium, submitted.Priority)
}

func TestRunCreateValidation(t *testing.T) {
	store := &MockStore{}

	err := runCreate(context.Background(), store, createOptions{title: "  ", description: "The printer is jammed"}, io.Discard)
	assert.ErrorIs(t, err, ticketui.ErrIncompleteDraft)

	err = runCreate(context.Background(), store, createOptions{title: "Printer jam"}, io.Discard)
	assert.ErrorIs(t, err, ticketui.ErrIncompleteDraft)
}

func TestRunCreateTruncatesTitle(t *testing.T) {
	var submitted models.Draft
	store := &MockStore{
		CreateTicketFunc: func(draft models.Draft) (models.Ticket, error) {
			submitted = draft
			return models.Ticket{ID: "1"}, nil
		},
	}
	opts := createOptions{title: strings.Repeat("x", 250), description: "The printer is jammed"}

	require.NoError(t, runCreate(context.Background(), store, opts, io.Discard))
	assert.Len(t, submitted.Title, models.MaxTitleLength)
}

func TestRunCreateStoreError(t *testing.T) {
	opts := createOptions{title: "Printer jam", description: "The printer is jammed"}

	err := runCreate(context.Background(), &MockStore{}, opts, io.Discard)

	assert.ErrorIs(t, err, errAPI)
	assert.Contains(t, err.Error(), "failed to create ticket")
}

func TestRunStatus(t *testing.T) {
	t.Run("Empty response", func(t *testing.T) {
		store := &MockStore{
			UpdateStatusFunc: func(models.TicketID, models.Status) (*models.Ticket, error) { return nil, nil },
		}
		var out bytes.Buffer

		require.NoError(t, runStatus(context.Background(), store, "42", models.StatusInProgress, &out))
		assert.Equal(t, "Ticket 42 is now In Progress.\n", out.String())
	})

	t.Run("Server copy", func(t *testing.T) {
		store := &MockStore{
			UpdateStatusFunc: func(id models.TicketID, status models.Status) (*models.Ticket, error) {
				return &models.Ticket{ID: id, Title: "Printer jam", Status: status}, nil
			},
		}
		var out bytes.Buffer

		require.NoError(t, runStatus(context.Background(), store, "42", models.StatusResolved, &out))
		assert.Contains(t, out.String(), "Printer jam")
		assert.Contains(t, out.String(), "Resolved")
	})

	t.Run("Failure", func(t *testing.T) {
		err := runStatus(context.Background(), &MockStore{}, "42", models.StatusClosed, io.Discard)

		assert.ErrorIs(t, err, errAPI)
		assert.Contains(t, err.Error(), "ticket 42")
	})
}

func TestRunStats(t *testing.T) {
	store := &MockStore{
		StatsFunc: func() (models.StatsSnapshot, error) {
			return models.StatsSnapshot{
				TotalTickets:     12,
				OpenTickets:      5,
				AvgTicketsPerDay: 1.5,
				PriorityBreakdown: map[models.Priority]int{
					models.PriorityCritical: 1, models.PriorityHigh: 3, models.PriorityMedium: 6, models.PriorityLow: 2,
				},
				CategoryBreakdown: map[models.Category]int{
					models.CategoryBilling: 4, models.CategoryTechnical: 5, models.CategoryAccount: 1, models.CategoryGeneral: 2,
				},
			}, nil
		},
	}

	var out bytes.Buffer
	require.NoError(t, runStats(context.Background(), store, false, &out))

	var fields [][]string
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fields = append(fields, strings.Fields(line))
		}
	}
	assert.Equal(t, [][]string{
		{"Total", "Tickets:", "12"},
		{"Open", "Tickets:", "5"},
		{"Avg", "Tickets", "/", "Day:", "1.5"},
		{"Priority", "Breakdown"},
		{"Low:", "2"},
		{"Medium:", "6"},
		{"High:", "3"},
		{"Critical:", "1"},
		{"Category", "Breakdown"},
		{"Billing:", "4"},
		{"Technical:", "5"},
		{"Account:", "1"},
		{"General:", "2"},
	}, fields)

	out.Reset()
	require.NoError(t, runStats(context.Background(), store, true, &out))
	assert.JSONEq(t, `{
		"total_tickets": 12,
		"open_tickets": 5,
		"avg_tickets_per_day": 1.5,
		"priority_breakdown": {"critical": 1, "high": 3, "medium": 6, "low": 2},
		"category_breakdown": {"billing": 4, "technical": 5, "account": 1, "general": 2}
	}`, out.String())
}

func TestRunClassify(t *testing.T) {
	t.Run("Too short", func(t *testing.T) {
		store := &MockStore{}

		err := runClassify(context.Background(), store, "too short", io.Discard)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 10 characters")
		assert.Zero(t, store.classifyCalls)
	})

	t.Run("Partial suggestion", func(t *testing.T) {
		store := &MockStore{
			ClassifyFunc: func(string) (models.Suggestion, error) {
				return models.Suggestion{Category: models.CategoryBilling}, nil
			},
		}
		var out bytes.Buffer

		require.NoError(t, runClassify(context.Background(), store, "My invoice is wrong and I was double charged", &out))
		assert.Equal(t, "Suggested category: billing\nSuggested priority: -\n", out.String())
	})

	t.Run("Failure", func(t *testing.T) {
		err := runClassify(context.Background(), &MockStore{}, "My invoice is wrong", io.Discard)
		assert.ErrorIs(t, err, errAPI)
	})
}

func TestListCommandAgainstServer(t *testing.T) {
	for _, key := range []string{"TICKETIQ_API_URL", "API_URL", "TICKETIQ_HTTP_TIMEOUT", "TICKETIQ_NOTICE_DURATION", "TICKETIQ_SUGGESTION_POLICY", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	var query string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/tickets/", r.URL.Path)
		query = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id": 7, "title": "VPN drops", "category": "technical", "priority": "high", "status": "open", "created_at": "2026-03-01T10:00:00Z"}]`))
	}))
	defer server.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"list", "--api-url", server.URL, "--status", "open", "--log-level", "error"})
	defer rootCmd.SetOut(nil)

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Equal(t, "status=open", query)
	assert.Contains(t, out.String(), "VPN drops")
	assert.Contains(t, out.String(), "2026-03-01")
}

func TestStoreErrorsArePrefixedOnce(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()
	store := ticketstore.NewClientWithHTTP(server.URL, nil)

	err := runList(context.Background(), store, models.Filter{}, false, io.Discard)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "failed to list tickets"))
	assert.Contains(t, err.Error(), "GET /api/tickets/ returned status 500")

	err = runStats(context.Background(), store, false, io.Discard)
	require.Error(t, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "failed to"))
}

func TestFormOptions(t *testing.T) {
	options := formOptions(config.UIConfig{NoticeDuration: 2 * time.Second, SuggestionPolicy: config.PolicyAlways})
	assert.Equal(t, ticketui.SuggestAlways, options.Policy)
	assert.Equal(t, 2*time.Second, options.NoticeDuration)

	options = formOptions(config.UIConfig{NoticeDuration: time.Second, SuggestionPolicy: config.PolicyUnchanged})
	assert.Equal(t, ticketui.SuggestWhenUnchanged, options.Policy)
}
