// Package ticketui holds the client-side ticket interaction state: the
// filtered ticket list, the creation form with its classifier suggestions,
// and the statistics snapshot. Built on bubbletea (Elm architecture): every
// network call runs inside a [tea.Cmd] and its result comes back as a
// message that the owning controller applies on the single update
// goroutine. Controller state is never read from inside a command.
//
// Out-of-order completion is handled by sequence tokens. A list (or stats,
// or classify) response is applied only when it answers the most recently
// issued request of its kind; anything older is dropped on arrival. Nothing
// is aborted in flight.
//
// Data flow:
//
//	FormController --create ok--> refresh.Coordinator
//	                                 |            |
//	                          ListController  StatsController
//	                                 |            |
//	                              [ticket store REST API]
//
// [App] composes the three controllers into a terminal program.
package ticketui
