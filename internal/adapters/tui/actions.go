package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"bookmarked/internal/adapters/tui/views"
	"bookmarked/internal/application"
	"bookmarked/internal/application/commands"
	"bookmarked/internal/domain"
	"bookmarked/internal/iteration"
)

// perform carries out a browser action on the selected row
func (a *App) perform(action views.Action) tea.Cmd {
	defer func() {
		a.browser.Dirty = a.ws.Dirty()
	}()

	node, addr, ok := a.browser.Selected()
	ed := a.ws.Editor()

	switch action {
	case views.ActionExpand, views.ActionCollapse:
		if ok {
			a.report(a.ws.SetOpen(addr, action == views.ActionExpand))
			a.browser.Refresh()
		}

	case views.ActionOpenURL:
		if ok && node.Kind == domain.KindBookmark {
			return a.openURL(node.URL)
		}

	case views.ActionAddBookmark, views.ActionAddFolder:
		mode := views.FormAddBookmark
		if action == views.ActionAddFolder {
			mode = views.FormAddFolder
		}
		a.state = ViewForm
		return a.form.Open(mode, a.insertionPoint(), nil)

	case views.ActionAddSeparator:
		at := a.insertionPoint()
		if a.run(commands.NewCreateSeparator(ed, at)) {
			a.browser.Select(at)
		}

	case views.ActionEdit:
		if ok && node.Kind != domain.KindSeparator {
			a.state = ViewForm
			return a.form.Open(views.FormEdit, addr, node)
		}

	case views.ActionDelete:
		if ok {
			a.confirm.SetTarget(addr, node)
			a.state = ViewConfirm
		}

	case views.ActionMoveUp:
		if prev, has := addr.PreviousSibling(); ok && has {
			a.run(commands.NewMoveCommand(ed, addr, prev))
		}

	case views.ActionMoveDown:
		if ok && a.hasNextSibling(addr) {
			a.run(commands.NewMoveCommand(ed, addr, addr.NextSibling().NextSibling()))
		}

	case views.ActionPaste:
		a.pasteMarked()

	case views.ActionCopyURL:
		if ok && node.Kind == domain.KindBookmark {
			if err := a.clip.WriteAll(node.URL); err != nil {
				a.report(fmt.Errorf("copy failed: %w", err))
				break
			}
			a.browser.SetMessage("Copied "+node.URL, false)
		}

	case views.ActionPasteURL:
		text, err := a.clip.ReadAll()
		if err == nil {
			err = application.ValidateURL("url", text)
		}
		if err != nil {
			a.report(fmt.Errorf("clipboard has no URL: %w", err))
			break
		}
		a.state = ViewForm
		return a.form.Open(views.FormAddBookmark, a.insertionPoint(), domain.NewBookmark("", text))

	case views.ActionSort:
		a.sortSelected(node, addr, ok)

	case views.ActionUndo:
		name, err := a.ws.Undo()
		if a.report(err) {
			a.browser.SetMessage("Undid "+name, false)
		}
		a.browser.Refresh()

	case views.ActionRedo:
		name, err := a.ws.Redo()
		if a.report(err) {
			a.browser.SetMessage("Redid "+name, false)
		}
		a.browser.Refresh()

	case views.ActionFind:
		a.findNext(addr, ok)

	case views.ActionCheckLinks:
		a.startIterator(a.links, addr, ok)

	case views.ActionRefreshIcons:
		a.startIterator(a.icons, addr, ok)

	case views.ActionCancelAll:
		a.cancelIterators()
		a.browser.Refresh()

	case views.ActionSave:
		if a.report(a.ws.Save(context.Background())) {
			a.browser.SetMessage("Saved", false)
		}

	case views.ActionQuit:
		a.cancelIterators()
		if err := a.ws.Save(context.Background()); err != nil {
			a.report(err)
			return nil
		}
		return tea.Quit
	}
	return nil
}

// report shows err and returns false, or returns true when err is nil. An
// action aimed at a node that has moved or vanished is dropped quietly.
func (a *App) report(err error) bool {
	switch {
	case err == nil:
		return true
	case application.IsStaleReference(err):
		a.logger.Debug("dropped stale action", zap.Error(err))
		a.browser.Refresh()
	case errors.Is(err, application.ErrNothingToUndo), errors.Is(err, application.ErrNothingToRedo):
		a.browser.SetMessage(err.Error(), false)
	default:
		a.browser.SetMessage(err.Error(), true)
	}
	return false
}

// run executes cmd through the history and refreshes the tree
func (a *App) run(cmd commands.Command) bool {
	ok := a.report(a.ws.Execute(cmd))
	a.browser.Refresh()
	return ok
}

// insertionPoint is where new nodes go: first inside an open folder, else
// right after the selected row
func (a *App) insertionPoint() domain.Address {
	node, addr, ok := a.browser.Selected()
	switch {
	case !ok:
		return domain.Address{0}
	case node.IsFolder() && node.Open:
		return addr.Child(0)
	default:
		return addr.NextSibling()
	}
}

func (a *App) hasNextSibling(addr domain.Address) bool {
	_, err := a.ws.Document().Resolve(addr.NextSibling())
	return err == nil
}

func (a *App) submitForm(msg views.FormSubmitMsg) {
	ed := a.ws.Editor()
	switch msg.Mode {
	case views.FormEdit:
		n, err := a.ws.Document().Resolve(msg.Target)
		if !a.report(err) {
			return
		}
		patches := []commands.Patch{
			{Attr: commands.AttrTitle, Value: msg.Title},
			{Attr: commands.AttrDescription, Value: msg.Description},
		}
		if n.Kind == domain.KindBookmark {
			patches = append(patches, commands.Patch{Attr: commands.AttrURL, Value: msg.URL})
		}
		if a.run(commands.NewEditCommand(ed, msg.Target, patches...)) {
			a.browser.SetMessage("Updated "+msg.Title, false)
		}

	default:
		n := domain.NewBookmark(msg.Title, msg.URL)
		if msg.Mode == views.FormAddFolder {
			n = domain.NewFolder(msg.Title)
		}
		n.Description = msg.Description
		if a.run(commands.NewCreateNode(ed, msg.Target, n, "")) {
			a.browser.Select(msg.Target)
		}
	}
}

func (a *App) deleteNode(at domain.Address) {
	if a.run(commands.NewDeleteCommand(a.ws.Editor(), at)) {
		a.browser.SetMessage("Deleted, press u to undo", false)
	}
}

// pasteMarked moves the cut node to the insertion point
func (a *App) pasteMarked() {
	from, ok := a.browser.Marked()
	if !ok {
		a.browser.SetMessage("Nothing cut, press x on a row first", true)
		return
	}
	to := a.insertionPoint()
	// already there
	if prev, has := to.PreviousSibling(); from.Equal(to) || (has && from.Equal(prev)) {
		a.browser.ClearMark()
		return
	}
	cmd := commands.NewMoveCommand(a.ws.Editor(), from, to)
	if a.run(cmd) {
		a.browser.ClearMark()
		a.browser.Select(cmd.To())
	}
}

func (a *App) sortSelected(node *domain.Node, addr domain.Address, ok bool) {
	folder := domain.RootAddress()
	if ok {
		folder = addr.Parent()
		if node.IsFolder() && node.Open {
			folder = addr
		}
	}
	cmd := commands.NewSortCommand(a.ws.Editor(), folder)
	if !a.run(cmd) {
		return
	}
	if cmd.Moves() == 0 {
		a.browser.SetMessage("Already sorted", false)
		return
	}
	a.browser.SetMessage(fmt.Sprintf("Sorted with %d moves", cmd.Moves()), false)
}

// findNext selects the next match after the cursor, opening its folders
func (a *App) findNext(from domain.Address, ok bool) {
	query := a.browser.Query()
	if query == "" {
		return
	}
	if !ok {
		from = domain.RootAddress()
	}
	match, found := a.ws.Document().FindNext(query, from)
	if !found {
		a.browser.SetMessage(fmt.Sprintf("No match for %q", query), true)
		return
	}
	for i := 1; i < len(match); i++ {
		a.report(a.ws.SetOpen(match[:i].Clone(), true))
	}
	a.browser.Select(match)
}

// startIterator runs a holder over the selected bookmark, or every bookmark
// below the selected folder, or the whole document when nothing is selected
func (a *App) startIterator(h *iteration.Holder, addr domain.Address, ok bool) {
	if h == nil {
		return
	}
	if !ok {
		addr = domain.RootAddress()
	}
	targets := iteration.Targets(a.ws.Document(), []domain.Address{addr})
	if len(targets) == 0 {
		a.browser.SetMessage("No bookmarks to "+h.Name(), true)
		return
	}
	h.Start(targets)
	a.browser.Activity = a.activity()
}

func (a *App) openURL(url string) tea.Cmd {
	if a.opener == nil {
		return nil
	}
	cmd, err := a.opener.Command(url)
	if err != nil {
		return func() tea.Msg { return openedMsg{err: err} }
	}
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return openedMsg{err: err}
	})
}
