package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"bookmarked/internal/adapters/tui/views"
	"bookmarked/internal/application/workspace"
	"bookmarked/internal/iteration"
	"bookmarked/internal/ports"
	"bookmarked/internal/projection"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewForm
	ViewConfirm
	ViewHelp
)

// Clipboard is the system clipboard
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Config holds everything the app drives. The projection must already be
// registered as an observer of the workspace editor.
type Config struct {
	Workspace   *workspace.Workspace
	Projection  *projection.Model
	Scheduler   *iteration.Scheduler
	LinkCheck   *iteration.Holder
	IconRefresh *iteration.Holder
	Opener      ports.URLOpener

	// Clipboard defaults to the system clipboard
	Clipboard Clipboard

	// Changes, when set, signals that the store was written by another process
	Changes <-chan struct{}

	Logger *zap.Logger
}

// App is the main TUI application model
type App struct {
	ws      *workspace.Workspace
	proj    *projection.Model
	sched   *iteration.Scheduler
	holders []*iteration.Holder
	links   *iteration.Holder
	icons   *iteration.Holder
	opener  ports.URLOpener
	clip    Clipboard
	changes <-chan struct{}
	logger  *zap.Logger

	state   ViewState
	browser *views.BrowserModel
	form    *views.FormModel
	confirm *views.ConfirmModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(cfg Config) *App {
	a := &App{
		ws:      cfg.Workspace,
		proj:    cfg.Projection,
		sched:   cfg.Scheduler,
		links:   cfg.LinkCheck,
		icons:   cfg.IconRefresh,
		opener:  cfg.Opener,
		clip:    cfg.Clipboard,
		changes: cfg.Changes,
		logger:  cfg.Logger,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(cfg.Projection),
		form:    views.NewFormModel(),
		confirm: views.NewConfirmModel(),
		help:    views.NewHelpModel(),
	}
	if a.clip == nil {
		a.clip = systemClipboard{}
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	for _, h := range []*iteration.Holder{a.links, a.icons} {
		if h != nil {
			a.holders = append(a.holders, h)
		}
	}
	a.ws.History().OnDirtyChanged(func(bool) {
		a.browser.Dirty = a.ws.Dirty()
	})
	return a
}

type schedulerReadyMsg struct{}

type storeChangedMsg struct{}

type openedMsg struct{ err error }

// Init starts listening for scheduler work and store changes
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.waitScheduler(), a.waitChange())
}

func (a *App) waitScheduler() tea.Cmd {
	if a.sched == nil {
		return nil
	}
	ready := a.sched.Ready()
	return func() tea.Msg {
		<-ready
		return schedulerReadyMsg{}
	}
}

func (a *App) waitChange() tea.Cmd {
	if a.changes == nil {
		return nil
	}
	changes := a.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.form.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case schedulerReadyMsg:
		a.runScheduled()
		return a, a.waitScheduler()

	case storeChangedMsg:
		a.storeChanged()
		return a, a.waitChange()

	case openedMsg:
		if msg.err != nil {
			a.browser.SetMessage(msg.err.Error(), true)
		}
		return a, nil

	// View switching messages
	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		a.browser.Refresh()
		return a, nil

	case views.ActionMsg:
		return a, a.perform(msg.Action)

	case views.FormSubmitMsg:
		a.state = ViewBrowser
		a.submitForm(msg)
		return a, nil

	case views.ConfirmedMsg:
		a.state = ViewBrowser
		a.deleteNode(msg.Target)
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewForm:
		_, cmd = a.form.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// runScheduled drains queued iterator work. Tasks run here, on the UI
// goroutine, so they may touch the document.
func (a *App) runScheduled() {
	for a.sched.Step() {
	}
	a.browser.Activity = a.activity()
	a.browser.Refresh()
}

func (a *App) activity() string {
	var parts []string
	for _, h := range a.holders {
		for _, it := range h.Iterators() {
			done, total := it.Progress()
			parts = append(parts, fmt.Sprintf("%s %d/%d", h.Name(), done, total))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " • ") + "  (esc to stop)"
}

func (a *App) cancelIterators() {
	for _, h := range a.holders {
		h.CancelAll()
	}
	a.browser.Activity = ""
}

func (a *App) storeChanged() {
	ctx := context.Background()
	if !a.ws.Stale(ctx) {
		return
	}
	if a.ws.Dirty() {
		a.browser.SetMessage("Bookmarks changed on disk; save to overwrite or quit without saving to keep them", true)
		return
	}
	a.cancelIterators()
	a.browser.ClearMark()
	if err := a.ws.Reload(ctx); err != nil {
		a.browser.SetMessage(err.Error(), true)
		return
	}
	a.browser.Refresh()
	a.browser.SetMessage("Reloaded bookmarks changed by another program", false)
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewForm:
		return a.form.View()
	case ViewConfirm:
		return a.confirm.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}

// Run starts the terminal program and blocks until the user quits
func Run(cfg Config) error {
	p := tea.NewProgram(NewApp(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
