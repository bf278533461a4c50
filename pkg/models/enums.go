package models

import "strings"

// Category enumerates ticket subject areas.
type Category string

const (
	CategoryBilling   Category = "billing"
	CategoryTechnical Category = "technical"
	CategoryAccount   Category = "account"
	CategoryGeneral   Category = "general"
)

// AllCategories lists categories in display order.
var AllCategories = []Category{CategoryBilling, CategoryTechnical, CategoryAccount, CategoryGeneral}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return contains(AllCategories, c)
}

// Label returns the human readable name.
func (c Category) Label() string {
	return label(string(c))
}

// Next returns the category after c, wrapping around.
func (c Category) Next() Category {
	return next(AllCategories, c)
}

// Priority enumerates ticket urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// AllPriorities lists priorities from least to most urgent.
var AllPriorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return contains(AllPriorities, p)
}

// Label returns the human readable name.
func (p Priority) Label() string {
	return label(string(p))
}

// Next returns the priority after p, wrapping around.
func (p Priority) Next() Priority {
	return next(AllPriorities, p)
}

// Status enumerates lifecycle states. The client allows any transition;
// the store decides what is valid.
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// AllStatuses lists statuses in lifecycle order.
var AllStatuses = []Status{StatusOpen, StatusInProgress, StatusResolved, StatusClosed}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return contains(AllStatuses, s)
}

// Label returns the human readable name, e.g. "In Progress".
func (s Status) Label() string {
	return label(string(s))
}

// Next returns the status after s, wrapping around.
func (s Status) Next() Status {
	return next(AllStatuses, s)
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// next walks the enum order. Unknown values start at the first entry.
func next[T comparable](values []T, v T) T {
	for i, candidate := range values {
		if candidate == v {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

func label(value string) string {
	words := strings.Split(value, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
