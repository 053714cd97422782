// Package tui is the interactive list view: a Bubble Tea program that drives
// the listsync state machine and sends mutations through the gateway.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/idilsaglam/tada/internal/editor"
	"github.com/idilsaglam/tada/internal/form"
	"github.com/idilsaglam/tada/internal/gateway"
	"github.com/idilsaglam/tada/internal/listsync"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/prefs"
	"github.com/idilsaglam/tada/internal/ui"
)

// Gateway is everything the view needs from the service.
type Gateway interface {
	listsync.Lister
	form.Creator
	editor.Updater
	Delete(ctx context.Context, id string) (gateway.Ack, error)
}

// Options configures Run.
type Options struct {
	Gateway Gateway
	Logger  *zap.Logger
	// Query is the initial query. A zero value means model.DefaultQuery.
	Query model.ListQuery
	// StateDir receives the sort preferences on quit. Empty disables saving.
	StateDir string
}

type mode int

const (
	modeList mode = iota
	modeSearch
	modeCreate
	modeEdit
)

type (
	fetchedMsg struct{ ev listsync.Event }
	// createdMsg and savedMsg carry the bar they were submitted from so a
	// reply that outlives its bar cannot touch the one open now.
	createdMsg struct {
		bar     int
		created *listsync.Created
		err     error
	}
	savedMsg struct {
		bar     int
		ed      editor.Editor
		updated *listsync.Updated
		err     error
	}
	deletedMsg struct {
		todo model.Todo
		err  error
	}
)

type modelTUI struct {
	ctx     context.Context
	gw      Gateway
	fetcher *listsync.Fetcher
	log     *zap.Logger

	state   listsync.State
	initial listsync.Fetch

	list   list.Model
	keys   keyMap
	fkeys  fieldKeys
	help   help.Model
	mode   mode
	search textinput.Model
	fields fieldSet
	edit   editor.Editor
	bar    int  // bumped each time the add or edit bar opens
	busy   bool // a create or save from the open bar is in flight

	status    string
	statusErr bool

	width, height int
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, opt Options) error {
	m := newModel(ctx, opt)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	fm, okModel := finalModel.(modelTUI)
	if !okModel || opt.StateDir == "" {
		return nil
	}

	if err := savePrefs(opt.StateDir, fm.state.Query); err != nil {
		m.log.Warn("save preferences failed", zap.Error(err))
	}
	return nil
}

// savePrefs remembers the ordering the user left the list in.
func savePrefs(dir string, q model.ListQuery) error {
	return prefs.Save(dir, prefs.Prefs{SortBy: q.SortBy, SortOrder: q.SortOrder})
}

func newModel(ctx context.Context, opt Options) modelTUI {
	log := opt.Logger
	if log == nil {
		log = zap.NewNop()
	}
	q := opt.Query
	if q == (model.ListQuery{}) {
		q = model.DefaultQuery()
	}
	st, fx := listsync.New(q)
	useTheme(ui.Current())

	l := list.New(nil, itemDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.PaginationStyle = helpStyle
	l.Styles.HelpStyle = helpStyle

	search := newInput("/ ", "search title or description", 200)

	m := modelTUI{
		ctx:     ctx,
		gw:      opt.Gateway,
		fetcher: listsync.NewFetcher(opt.Gateway, log),
		log:     log,
		state:   st,
		initial: fx,
		list:    l,
		keys:    defaultKeys(),
		fkeys:   defaultFieldKeys(),
		help:    help.New(),
		search:  search,
		width:   80,
		height:  24,
	}
	m.resize()
	return m
}

// Init issues the first fetch.
func (m modelTUI) Init() tea.Cmd { return m.fetchCmd(&m.initial) }

func (m modelTUI) fetchCmd(fx *listsync.Fetch) tea.Cmd {
	if fx == nil {
		return nil
	}
	f, ctx, next := m.fetcher, m.ctx, *fx
	return func() tea.Msg { return fetchedMsg{ev: f.Run(ctx, next)} }
}

// apply feeds ev to the state machine and returns the fetch it asks for.
func (m *modelTUI) apply(ev listsync.Event) tea.Cmd {
	var fx *listsync.Fetch
	m.state, fx = m.state.Apply(ev)
	m.syncList()
	return m.fetchCmd(fx)
}

func (m *modelTUI) syncList() {
	idx := m.list.Index()
	m.list.SetItems(toListItems(m.state.Items()))
	if n := len(m.state.Items()); n > 0 {
		if idx >= n {
			idx = n - 1
		}
		m.list.Select(idx)
	}
}

func (m *modelTUI) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m *modelTUI) resize() {
	// header, pager, help, status and the outer border
	chrome := 8
	if m.mode == modeCreate || m.mode == modeEdit {
		chrome += 6
	}
	if m.mode == modeSearch {
		chrome += 3
	}
	h := m.height - chrome
	if h < 2 {
		h = 2
	}
	m.list.SetSize(m.width-4, h)
	m.help.Width = m.width - 4
}

func (m modelTUI) selected() (model.Todo, bool) {
	if m.state.Phase != listsync.Ready {
		return model.Todo{}, false
	}
	it, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return model.Todo{}, false
	}
	return it.todo, true
}

// Update and View implement Bubble Tea's Model on modelTUI
func (m modelTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case fetchedMsg:
		// Loaded and Failed never ask for another fetch.
		m.state, _ = m.state.Apply(msg.ev)
		m.syncList()
		return m, nil

	case createdMsg:
		if msg.bar != m.bar || m.mode != modeCreate {
			// the bar this came from is gone; only the list reacts
			if msg.err != nil {
				m.logLate("create todo failed", msg.err)
				return m, nil
			}
			m.setStatus("Added "+msg.created.Todo.Title, false)
			return m, m.apply(*msg.created)
		}
		m.busy = false
		if msg.err != nil {
			m.fields.err = msg.err.Error()
			if !isValidation(msg.err) {
				m.log.Error("create todo failed", zap.Error(msg.err))
			}
			return m, nil
		}
		m.mode = modeList
		m.resize()
		m.setStatus("Added "+msg.created.Todo.Title, false)
		return m, m.apply(*msg.created)

	case savedMsg:
		if msg.bar != m.bar || m.mode != modeEdit {
			if msg.err != nil {
				m.logLate("update todo failed", msg.err, zap.String("id", msg.ed.Item.ID))
				return m, nil
			}
			m.setStatus("Saved "+msg.updated.Todo.Title, false)
			return m, m.apply(*msg.updated)
		}
		m.busy = false
		m.edit = msg.ed
		if msg.err != nil {
			m.fields.err = msg.err.Error()
			if !isValidation(msg.err) {
				m.log.Error("update todo failed", zap.String("id", msg.ed.Item.ID), zap.Error(msg.err))
			}
			return m, nil
		}
		m.mode = modeList
		m.resize()
		m.setStatus("Saved "+msg.updated.Todo.Title, false)
		return m, m.apply(*msg.updated)

	case deletedMsg:
		if msg.err != nil {
			m.log.Error("delete todo failed", zap.String("id", msg.todo.ID), zap.Error(msg.err))
			m.setStatus("Could not delete "+msg.todo.Title+": "+msg.err.Error(), true)
			return m, nil
		}
		m.setStatus("Deleted "+msg.todo.Title, false)
		return m, m.apply(listsync.Deleted{ID: msg.todo.ID})

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeCreate, modeEdit:
			return m.updateFields(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m modelTUI) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.resize()
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Sort):
		return m, m.apply(listsync.SetSort{Field: m.state.Query.SortBy.Toggle()})
	case key.Matches(msg, m.keys.Order):
		return m, m.apply(listsync.SetOrder{Order: m.state.Query.SortOrder.Toggle()})
	case key.Matches(msg, m.keys.Prev):
		return m, m.apply(listsync.PrevPage{})
	case key.Matches(msg, m.keys.Next):
		return m, m.apply(listsync.NextPage{})
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("", false)
		return m, m.apply(listsync.Refresh{})
	case key.Matches(msg, m.keys.Add):
		m.openBar(modeCreate)
		m.fields = newFieldSet("", "", "")
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.edit = editor.New(t).Begin()
		m.fields = newFieldSet(m.edit.Draft.Title, m.edit.Draft.Description, m.edit.Draft.DueDate)
		m.openBar(modeEdit)
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		t, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(t)
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// openBar starts a new add or edit session.
func (m *modelTUI) openBar(md mode) {
	m.bar++
	m.busy = false
	m.mode = md
}

func (m modelTUI) logLate(msg string, err error, fields ...zap.Field) {
	if isValidation(err) {
		return
	}
	m.log.Error(msg, append(fields, zap.Bool("bar_closed", true), zap.Error(err))...)
}

func (m modelTUI) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeList
		m.resize()
		return m, nil
	case tea.KeyEsc:
		m.search.Blur()
		m.search.SetValue("")
		m.mode = modeList
		m.resize()
		return m, m.apply(listsync.SetSearch{Text: ""})
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// every keystroke is a new query; stale responses are dropped by seq
	return m, tea.Batch(cmd, m.apply(listsync.SetSearch{Text: m.search.Value()}))
}

func (m modelTUI) updateFields(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.fkeys.Cancel):
		if m.mode == modeEdit {
			m.edit = m.edit.Cancel()
		}
		m.mode = modeList
		m.fields = fieldSet{}
		m.busy = false
		m.resize()
		return m, nil
	case key.Matches(msg, m.fkeys.Next):
		m.fields.move(1)
		return m, nil
	case key.Matches(msg, m.fkeys.Prev):
		m.fields.move(-1)
		return m, nil
	case key.Matches(msg, m.fkeys.Submit):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.fields.err = ""
		if m.mode == modeEdit {
			return m, m.saveCmd()
		}
		return m, m.createCmd()
	}
	var cmd tea.Cmd
	m.fields, cmd = m.fields.update(msg)
	return m, cmd
}

func (m modelTUI) createCmd() tea.Cmd {
	title, desc, due := m.fields.values()
	f := form.Form{Title: title, Description: desc, DueDate: due}
	ctx, gw, bar := m.ctx, m.gw, m.bar
	return func() tea.Msg {
		// a failed submit leaves the bar's inputs untouched for another try
		_, created, err := f.Submit(ctx, gw)
		return createdMsg{bar: bar, created: created, err: err}
	}
}

func (m modelTUI) saveCmd() tea.Cmd {
	title, desc, due := m.fields.values()
	ed := m.edit
	ed.Draft = editor.Fields{Title: title, Description: desc, DueDate: due}
	ctx, gw, bar := m.ctx, m.gw, m.bar
	return func() tea.Msg {
		next, updated, err := ed.Save(ctx, gw)
		return savedMsg{bar: bar, ed: next, updated: updated, err: err}
	}
}

func (m modelTUI) deleteCmd(t model.Todo) tea.Cmd {
	ctx, gw := m.ctx, m.gw
	return func() tea.Msg {
		_, err := gw.Delete(ctx, t.ID)
		return deletedMsg{todo: t, err: err}
	}
}

func isValidation(err error) bool {
	return errors.Is(err, model.ErrEmptyTitle) ||
		errors.Is(err, model.ErrDueDateRequired) ||
		errors.Is(err, model.ErrBadDueDate)
}

func (m modelTUI) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	// The list area is either the placeholder or the whole list with its
	// controls, never a mix.
	switch {
	case m.state.Phase == listsync.Loading:
		b.WriteString(mutedStyle.Render("Loading..."))
	case m.state.Err != nil:
		b.WriteString(errorStyle.Render("Could not load todos: " + m.state.Err.Error()))
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("press r to retry"))
	case len(m.state.Items()) == 0:
		b.WriteString(mutedStyle.Render("No to-dos found."))
		b.WriteString("\n\n")
		b.WriteString(m.pager())
	default:
		b.WriteString(m.list.View())
		b.WriteString("\n\n")
		b.WriteString(m.pager())
	}

	switch m.mode {
	case modeSearch:
		b.WriteString("\n")
		b.WriteString(barStyle.Render(m.search.View()))
	case modeCreate:
		b.WriteString("\n")
		b.WriteString(m.fields.view(titleStyle.Render("Add todo")))
	case modeEdit:
		b.WriteString("\n")
		b.WriteString(m.fields.view(titleStyle.Render("Edit todo")))
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
	}

	b.WriteString("\n")
	if m.mode == modeCreate || m.mode == modeEdit {
		b.WriteString(m.help.View(m.fkeys))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return panelString(b.String())
}

func (m modelTUI) header() string {
	q := m.state.Query
	sortLabel := fmt.Sprintf("%s %s", q.SortBy.Label(), q.SortOrder.Label())
	h := fmt.Sprintf("%s   %s %s",
		titleStyle.Render("Todos"),
		accentStyle.Render("Sort"), sortLabel,
	)
	if m.state.HasMeta {
		h += fmt.Sprintf("  %s %d", accentStyle.Render("Total"), m.state.Result.Count)
	}
	if q.Query != "" && m.mode != modeSearch {
		h += fmt.Sprintf("  %s %q", accentStyle.Render("Search"), q.Query)
	}
	return h
}

func (m modelTUI) pager() string {
	t := ui.Current()
	prev, next := t.Prev+" Prev", "Next "+t.Next
	if m.state.CanPrev() {
		prev = accentStyle.Render(prev)
	} else {
		prev = mutedStyle.Render(prev)
	}
	if m.state.CanNext() {
		next = accentStyle.Render(next)
	} else {
		next = mutedStyle.Render(next)
	}
	return fmt.Sprintf("%s   Page %d / %d   %s", prev, m.state.Query.Page, m.state.TotalPages(), next)
}
