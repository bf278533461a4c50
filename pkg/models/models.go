// Package models defines data structures shared across the application.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the longest title the ticket store accepts.
const MaxTitleLength = 200

// TicketID is the opaque, server-assigned identifier of a ticket. The store
// may encode it as a JSON number or a JSON string; both decode to the same
// textual form.
type TicketID string

// UnmarshalJSON accepts both numeric and string identifiers.
func (id *TicketID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("failed to decode ticket id: %w", err)
		}
		*id = TicketID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("failed to decode ticket id: %w", err)
	}
	*id = TicketID(n.String())
	return nil
}

// String returns the identifier as it appears in request paths.
func (id TicketID) String() string {
	return string(id)
}

// Ticket represents a support ticket as returned by the ticket store.
type Ticket struct {
	// ID is assigned by the store and never changes
	ID TicketID `json:"id"`

	// Title is a short summary of the issue
	Title string `json:"title"`

	// Description is the full explanation supplied by the requester
	Description string `json:"description"`

	// Category groups the ticket by subject area
	Category Category `json:"category"`

	// Priority expresses how urgent the ticket is
	Priority Priority `json:"priority"`

	// Status is the ticket's position in its lifecycle
	Status Status `json:"status"`

	// CreatedAt is the timestamp when the store persisted the ticket
	CreatedAt time.Time `json:"created_at"`
}

// Filter narrows the ticket list. Empty fields are unset; set fields are
// combined with AND by the store.
type Filter struct {
	Category Category
	Priority Priority
	Status   Status
	Search   string
}

// IsZero reports whether no criterion is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// FilterPatch is a partial filter update. A nil field leaves the current
// value alone; a pointer to the empty value clears it.
type FilterPatch struct {
	Category *Category
	Priority *Priority
	Status   *Status
	Search   *string
}

// Apply returns f with every non-nil field of the patch merged in.
func (p FilterPatch) Apply(f Filter) Filter {
	if p.Category != nil {
		f.Category = *p.Category
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	return f
}

// Draft is the unsaved state of the ticket creation form.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Priority    Priority `json:"priority"`
}

// NewDraft returns a draft holding the form defaults.
func NewDraft() Draft {
	return Draft{
		Category: CategoryGeneral,
		Priority: PriorityMedium,
	}
}

// Suggestion is the advisory output of the classifier. Either field may be
// empty when the classifier has no opinion.
type Suggestion struct {
	Category Category `json:"suggested_category,omitempty"`
	Priority Priority `json:"suggested_priority,omitempty"`
}

// IsEmpty reports whether the suggestion carries nothing to apply.
func (s Suggestion) IsEmpty() bool {
	return s.Category == "" && s.Priority == ""
}

// ApplySuggestion overwrites the draft fields the suggestion fills with a
// known value and reports whether anything changed.
func (d *Draft) ApplySuggestion(s Suggestion) bool {
	if s.IsEmpty() {
		return false
	}
	changed := false
	if s.Category.Valid() && d.Category != s.Category {
		d.Category = s.Category
		changed = true
	}
	if s.Priority.Valid() && d.Priority != s.Priority {
		d.Priority = s.Priority
		changed = true
	}
	return changed
}

// TruncateTitle cuts title to MaxTitleLength runes.
func TruncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= MaxTitleLength {
		return title
	}
	return string([]rune(title)[:MaxTitleLength])
}

// StatsSnapshot is the aggregate view computed by the ticket store.
type StatsSnapshot struct {
	TotalTickets      int              `json:"total_tickets"`
	OpenTickets       int              `json:"open_tickets"`
	AvgTicketsPerDay  float64          `json:"avg_tickets_per_day"`
	PriorityBreakdown map[Priority]int `json:"priority_breakdown"`
	CategoryBreakdown map[Category]int `json:"category_breakdown"`
}

// OrderedKeys lists the keys of counts in the order of known, followed by
// any keys outside known, sorted.
func OrderedKeys[K ~string](known []K, counts map[K]int) []K {
	keys := make([]K, 0, len(counts))
	for _, k := range known {
		if _, ok := counts[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []K
	for k := range maps.Keys(counts) {
		if !slices.Contains(known, k) {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	return append(keys, extra...)
}
