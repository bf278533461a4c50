package ticketui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/danielolaszy/ticketiq/internal/logging"
	"github.com/danielolaszy/ticketiq/internal/refresh"
	"github.com/danielolaszy/ticketiq/pkg/models"
)

// focusRegion identifies which part of the screen receives keyboard input.
type focusRegion int

const (
	focusSearch focusRegion = iota
	focusList
	focusTitle
	focusDescription
	focusCategory
	focusPriority

	focusRegionCount
)

const (
	defaultWidth     = 100
	descriptionLines = 4
	dateLayout       = "2006-01-02"

	emptyListMessage = "No tickets found matching your filters."
)

// App is the bubbletea model of the interactive ticket program. It owns one
// refresh coordinator shared by its three controllers.
type App struct {
	coordinator *refresh.Coordinator
	list        *ListController
	stats       *StatsController
	form        *FormController

	keys  KeyMap
	theme Theme

	focus  focusRegion
	cursor int
	width  int

	search      textinput.Model
	title       textinput.Model
	description textarea.Model
}

// NewApp wires the controllers to store and builds the widgets. The ticket
// list has focus initially.
func NewApp(store Store, options FormOptions) *App {
	coordinator := refresh.NewCoordinator()

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "Search tickets..."
	search.Cursor.SetMode(cursor.CursorStatic)

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Brief summary of the issue"
	title.CharLimit = models.MaxTitleLength
	title.Cursor.SetMode(cursor.CursorStatic)

	description := textarea.New()
	description.Placeholder = "Detailed explanation..."
	description.ShowLineNumbers = false
	description.CharLimit = 0
	description.SetHeight(descriptionLines)
	description.Cursor.SetMode(cursor.CursorStatic)

	app := &App{
		coordinator: coordinator,
		list:        NewListController(store, coordinator),
		stats:       NewStatsController(store, coordinator),
		form:        NewFormController(store, coordinator, options),
		keys:        DefaultKeyMap,
		theme:       DefaultTheme,
		focus:       focusList,
		search:      search,
		title:       title,
		description: description,
	}
	app.resize(defaultWidth)
	return app
}

// Close detaches the controllers from the coordinator.
func (app *App) Close() {
	app.list.Close()
	app.stats.Close()
}

// Init loads the ticket list and the statistics.
func (app *App) Init() tea.Cmd {
	return tea.Batch(app.list.Refetch(), app.stats.Refetch())
}

// Update implements tea.Model.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		app.resize(msg.Width)
		return app, nil
	case tea.KeyMsg:
		return app, app.handleKey(msg)
	}

	cmd := tea.Batch(app.list.Update(msg), app.stats.Update(msg), app.form.Update(msg))
	app.syncFormWidgets()
	app.clampCursor()
	return app, cmd
}

func (app *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, app.keys.ForceQuit) {
		app.Close()
		return tea.Quit
	}

	// A failed status change must be acknowledged first.
	if app.list.Alert() != "" {
		if key.Matches(msg, app.keys.Dismiss) {
			app.list.DismissAlert()
		}
		return nil
	}

	switch {
	case key.Matches(msg, app.keys.NextField):
		return app.moveFocus(1)
	case key.Matches(msg, app.keys.PrevField):
		return app.moveFocus(-1)
	case key.Matches(msg, app.keys.Submit):
		return app.submit()
	}

	switch app.focus {
	case focusSearch:
		return app.handleSearchKey(msg)
	case focusList:
		return app.handleListKey(msg)
	case focusTitle:
		var cmd tea.Cmd
		app.title, cmd = app.title.Update(msg)
		app.form.UpdateField(FieldTitle, app.title.Value())
		return cmd
	case focusDescription:
		var cmd tea.Cmd
		app.description, cmd = app.description.Update(msg)
		app.form.UpdateField(FieldDescription, app.description.Value())
		return cmd
	case focusCategory:
		if key.Matches(msg, app.keys.CycleOption) {
			app.form.UpdateField(FieldCategory, string(app.form.Draft().Category.Next()))
		}
	case focusPriority:
		if key.Matches(msg, app.keys.CycleOption) {
			app.form.UpdateField(FieldPriority, string(app.form.Draft().Priority.Next()))
		}
	}
	return nil
}

func (app *App) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
		return app.setFocus(focusList)
	}

	previous := app.search.Value()
	var cmd tea.Cmd
	app.search, cmd = app.search.Update(msg)
	if value := app.search.Value(); value != previous {
		return tea.Batch(cmd, app.list.SetFilter(models.FilterPatch{Search: &value}))
	}
	return cmd
}

func (app *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	filter := app.list.Filter()

	switch {
	case key.Matches(msg, app.keys.Quit):
		app.Close()
		return tea.Quit
	case key.Matches(msg, app.keys.Up):
		app.cursor--
		app.clampCursor()
	case key.Matches(msg, app.keys.Down):
		app.cursor++
		app.clampCursor()
	case key.Matches(msg, app.keys.CycleStatus):
		tickets := app.list.Tickets()
		if len(tickets) == 0 {
			return nil
		}
		app.clampCursor()
		selected := tickets[app.cursor]
		return app.list.UpdateStatus(selected.ID, selected.Status.Next())
	case key.Matches(msg, app.keys.FilterCategory):
		category := cycleCriterion(models.AllCategories, filter.Category)
		return app.list.SetFilter(models.FilterPatch{Category: &category})
	case key.Matches(msg, app.keys.FilterPriority):
		priority := cycleCriterion(models.AllPriorities, filter.Priority)
		return app.list.SetFilter(models.FilterPatch{Priority: &priority})
	case key.Matches(msg, app.keys.FilterStatus):
		status := cycleCriterion(models.AllStatuses, filter.Status)
		return app.list.SetFilter(models.FilterPatch{Status: &status})
	case key.Matches(msg, app.keys.FilterClear):
		if filter.IsZero() {
			return nil
		}
		app.search.SetValue("")
		var (
			category models.Category
			priority models.Priority
			status   models.Status
			search   string
		)
		return app.list.SetFilter(models.FilterPatch{
			Category: &category,
			Priority: &priority,
			Status:   &status,
			Search:   &search,
		})
	case key.Matches(msg, app.keys.Search):
		return app.setFocus(focusSearch)
	case key.Matches(msg, app.keys.Refresh):
		return tea.Batch(app.list.Refetch(), app.stats.Refetch())
	}
	return nil
}

func (app *App) submit() tea.Cmd {
	cmd, err := app.form.Submit()
	if err != nil {
		logging.Debug("submission rejected", "error", err)
		return nil
	}
	return cmd
}

func (app *App) moveFocus(delta int) tea.Cmd {
	next := (int(app.focus) + delta + int(focusRegionCount)) % int(focusRegionCount)
	return app.setFocus(focusRegion(next))
}

// setFocus moves keyboard input to region. Leaving the description asks
// the classifier about it.
func (app *App) setFocus(region focusRegion) tea.Cmd {
	if region == app.focus {
		return nil
	}
	leaving := app.focus
	app.focus = region

	app.search.Blur()
	app.title.Blur()
	app.description.Blur()
	switch region {
	case focusSearch:
		app.search.Focus()
	case focusTitle:
		app.title.Focus()
	case focusDescription:
		app.description.Focus()
	}

	if leaving == focusDescription {
		return app.form.OnDescriptionCommitted()
	}
	return nil
}

// syncFormWidgets copies draft text the form changed on its own (a reset
// after a successful submission) back into the widgets.
func (app *App) syncFormWidgets() {
	draft := app.form.Draft()
	if app.title.Value() != draft.Title {
		app.title.SetValue(draft.Title)
	}
	if app.description.Value() != draft.Description {
		app.description.SetValue(draft.Description)
	}
}

func (app *App) clampCursor() {
	count := len(app.list.Tickets())
	if app.cursor >= count {
		app.cursor = count - 1
	}
	if app.cursor < 0 {
		app.cursor = 0
	}
}

func (app *App) resize(width int) {
	if width <= 0 {
		width = defaultWidth
	}
	app.width = width
	app.search.Width = width - len(app.search.Prompt) - 4
	app.title.Width = width - 4
	app.description.SetWidth(width - 4)
}

// cycleCriterion advances a filter criterion through "all" and then every
// known value.
func cycleCriterion[T comparable](values []T, current T) T {
	var all T
	if current == all {
		return values[0]
	}
	index := slices.Index(values, current)
	if index < 0 || index == len(values)-1 {
		return all
	}
	return values[index+1]
}

// View implements tea.Model.
func (app *App) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(app.theme.HeaderForeground).
		Render("TicketIQ")

	sections := []string{
		header,
		app.renderStats(),
		app.renderFilters(),
		app.renderList(),
		app.renderForm(),
	}
	if alert := app.list.Alert(); alert != "" {
		sections = append(sections, app.renderAlert(alert))
	}
	sections = append(sections, app.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (app *App) renderStats() string {
	snapshot, ok := app.stats.Snapshot()
	if !ok {
		if app.stats.Loading() {
			return app.faint("Loading statistics...")
		}
		return ""
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(app.theme.BorderColor).
		Padding(0, 1)
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(app.faint("Total Tickets")+"\n"+strconv.Itoa(snapshot.TotalTickets)),
		card.Render(app.faint("Open Tickets")+"\n"+strconv.Itoa(snapshot.OpenTickets)),
		card.Render(app.faint("Avg Tickets / Day")+"\n"+strconv.FormatFloat(snapshot.AvgTicketsPerDay, 'f', -1, 64)),
	)

	priorities := []string{app.faint("Priority Breakdown")}
	for _, priority := range models.OrderedKeys(models.AllPriorities, snapshot.PriorityBreakdown) {
		name := lipgloss.NewStyle().Foreground(app.theme.PriorityColor(priority)).Render(priority.Label())
		priorities = append(priorities, fmt.Sprintf("%s %d", name, snapshot.PriorityBreakdown[priority]))
	}
	categories := []string{app.faint("Category Breakdown")}
	for _, category := range models.OrderedKeys(models.AllCategories, snapshot.CategoryBreakdown) {
		categories = append(categories, fmt.Sprintf("%s %d", category.Label(), snapshot.CategoryBreakdown[category]))
	}

	breakdowns := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render(strings.Join(priorities, "\n")),
		card.Render(strings.Join(categories, "\n")),
	)
	return lipgloss.JoinVertical(lipgloss.Left, cards, breakdowns)
}

func (app *App) renderFilters() string {
	filter := app.list.Filter()
	parts := []string{
		app.search.View(),
		"Category: " + criterionLabel(filter.Category, "All Categories"),
		"Priority: " + criterionLabel(filter.Priority, "All Priorities"),
		"Status: " + criterionLabel(filter.Status, "All Statuses"),
	}
	if app.list.Loading() {
		parts = append(parts, app.faint("Loading..."))
	}
	if app.list.LoadFailed() {
		parts = append(parts, lipgloss.NewStyle().Foreground(app.theme.ErrorText).Render("Could not load tickets"))
	}
	return app.box(focusSearch).Render(strings.Join(parts, "  "))
}

func (app *App) renderList() string {
	tickets := app.list.Tickets()
	if len(tickets) == 0 {
		if app.list.Loading() {
			return app.box(focusList).Render(app.faint("Loading..."))
		}
		return app.box(focusList).Render(app.faint(emptyListMessage))
	}

	rows := make([]string, 0, len(tickets))
	titleWidth := max(app.width-60, 16)
	for index, ticket := range tickets {
		marker := "  "
		if index == app.cursor {
			marker = "> "
		}
		pending := " "
		if app.list.Pending(ticket.ID) {
			pending = "*"
		}

		status := lipgloss.NewStyle().
			Foreground(app.theme.StatusColor(ticket.Status)).
			Width(12).
			Render(ticket.Status.Label())
		priority := lipgloss.NewStyle().
			Foreground(app.theme.PriorityColor(ticket.Priority)).
			Width(9).
			Render(ticket.Priority.Label())
		category := lipgloss.NewStyle().Width(10).Render(ticket.Category.Label())

		created := ""
		if !ticket.CreatedAt.IsZero() {
			created = ticket.CreatedAt.Format(dateLayout)
		}

		row := fmt.Sprintf("%s%s %-*s %s %s %s %s",
			marker, pending,
			titleWidth, ansi.Truncate(ticket.Title, titleWidth, "…"),
			status, priority, category, app.faint(created))
		if index == app.cursor && app.focus == focusList {
			row = lipgloss.NewStyle().
				Background(app.theme.SelectedBackground).
				Foreground(app.theme.SelectedForeground).
				Render(row)
		}
		rows = append(rows, row)
	}
	return app.box(focusList).Render(strings.Join(rows, "\n"))
}

func (app *App) renderForm() string {
	draft := app.form.Draft()

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render("Create New Ticket"),
		app.label(focusTitle, "Title *"),
		app.title.View(),
		app.label(focusDescription, "Description *"),
		app.description.View(),
		app.label(focusCategory, "Category") + " " + draft.Category.Label(),
		app.label(focusPriority, "Priority") + " " + draft.Priority.Label(),
	}
	if app.form.Classifying() {
		lines = append(lines, app.faint("Analyzing..."))
	}

	button := "[ Submit Ticket ]"
	if app.form.Submitting() {
		button = "[ Submitting... ]"
	}
	lines = append(lines, button)

	if message := app.form.Error(); message != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(app.theme.ErrorText).Render(message))
	}
	if notice := app.form.Notice(); notice != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(app.theme.NoticeText).Render(notice))
	}

	active := app.focus >= focusTitle
	return app.boxStyle(active).Render(strings.Join(lines, "\n"))
}

func (app *App) renderAlert(alert string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(app.theme.ErrorText).
		Foreground(app.theme.ErrorText).
		Padding(0, 2).
		Render(alert + "\n" + app.faint("Press Enter to dismiss"))
}

func (app *App) renderHelp() string {
	var parts []string
	for _, binding := range app.keys.ShortHelp() {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return lipgloss.NewStyle().Foreground(app.theme.HelpText).Render(strings.Join(parts, " • "))
}

func (app *App) label(region focusRegion, text string) string {
	style := lipgloss.NewStyle().Foreground(app.theme.FaintText)
	if app.focus == region {
		style = style.Foreground(app.theme.FocusBorder).Bold(true)
	}
	return style.Render(text)
}

func (app *App) faint(text string) string {
	return lipgloss.NewStyle().Foreground(app.theme.FaintText).Render(text)
}

func (app *App) box(region focusRegion) lipgloss.Style {
	return app.boxStyle(app.focus == region)
}

func (app *App) boxStyle(active bool) lipgloss.Style {
	border := app.theme.BorderColor
	if active {
		border = app.theme.FocusBorder
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(app.width - 2)
}

func criterionLabel[T ~string](value T, all string) string {
	if value == "" {
		return all
	}
	switch v := any(value).(type) {
	case models.Category:
		return v.Label()
	case models.Priority:
		return v.Label()
	case models.Status:
		return v.Label()
	}
	return string(value)
}
