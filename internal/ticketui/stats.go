package ticketui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/internal/refresh"
	"github.com/danielolaszy/ticketiq/internal/sequence"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// StatsController keeps the last statistics snapshot pulled from the
// store. Snapshots are replaced wholesale, never merged.
type StatsController struct {
	store StatsSource

	snapshot    models.StatsSnapshot
	hasSnapshot bool
	loading     bool
	loadFailed  bool
	requests    sequence.Tracker

	unsubscribe func()
}

// NewStatsController creates a stats controller that refetches once per
// change announced by coordinator, if one is given.
func NewStatsController(store StatsSource, coordinator *refresh.Coordinator) *StatsController {
	stats := &StatsController{store: store}
	if coordinator != nil {
		stats.unsubscribe = coordinator.Subscribe("stats", func(refresh.Event) tea.Cmd {
			return stats.Refetch()
		})
	}
	return stats
}

// Close detaches the controller from its refresh coordinator.
func (s *StatsController) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Snapshot returns the last fetched statistics. ok is false until the first
// fetch succeeds.
func (s *StatsController) Snapshot() (snapshot models.StatsSnapshot, ok bool) {
	return s.snapshot, s.hasSnapshot
}

// Loading reports whether a stats request is in flight.
func (s *StatsController) Loading() bool {
	return s.loading
}

// LoadFailed reports whether the latest stats request failed.
func (s *StatsController) LoadFailed() bool {
	return s.loadFailed
}

// Refetch pulls a fresh snapshot.
func (s *StatsController) Refetch() tea.Cmd {
	token := s.requests.Next()
	store := s.store
	s.loading = true

	return func() tea.Msg {
		stats, err := store.Stats(context.Background())
		return statsLoadedMsg{token: token, stats: stats, err: err}
	}
}

// Update applies stats responses. Other messages are ignored.
func (s *StatsController) Update(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(statsLoadedMsg)
	if !ok {
		return nil
	}
	if !s.requests.IsLatest(loaded.token) {
		logging.Debug("discarding superseded stats", "token", loaded.token)
		return nil
	}

	s.loading = false
	if loaded.err != nil {
		s.loadFailed = true
		logging.Error("failed to fetch stats", "error", loaded.err)
		return nil
	}

	s.loadFailed = false
	s.snapshot = loaded.stats
	s.hasSnapshot = true
	return nil
}
