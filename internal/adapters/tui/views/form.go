package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bookmarked/internal/adapters/tui/styles"
	"bookmarked/internal/application"
	"bookmarked/internal/domain"
)

// FormKeyMap defines key bindings for the node form
type FormKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Tab    key.Binding
	Back   key.Binding
}

var FormKeys = FormKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Tab:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Back:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
}

// FormMode says what submitting the form does
type FormMode int

const (
	FormAddBookmark FormMode = iota
	FormAddFolder
	FormEdit
)

const (
	fieldTitle = iota
	fieldURL
	fieldDescription
)

type formField struct {
	label string
	id    int
	input textinput.Model
}

// FormSubmitMsg carries validated form values back to the app
type FormSubmitMsg struct {
	Mode        FormMode
	Target      domain.Address
	Title       string
	URL         string
	Description string
}

// FormModel creates or edits one folder or bookmark
type FormModel struct {
	ViewState
	mode    FormMode
	kind    domain.Kind
	target  domain.Address
	fields  []formField
	focused int
}

// NewFormModel creates an empty form
func NewFormModel() *FormModel {
	return &FormModel{}
}

func newField(label string, id int, placeholder, value string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 2048
	in.SetValue(value)
	return formField{label: label, id: id, input: in}
}

// Open prepares the form. For FormEdit, n is the node being edited; for the
// add modes n, when set, pre-fills the fields and target is where the new
// node goes.
func (m *FormModel) Open(mode FormMode, target domain.Address, n *domain.Node) tea.Cmd {
	m.mode = mode
	m.target = target.Clone()
	m.ClearMessage()

	m.kind = domain.KindBookmark
	switch {
	case mode == FormAddFolder:
		m.kind = domain.KindFolder
	case mode == FormEdit && n != nil:
		m.kind = n.Kind
	}

	var title, url, desc string
	if n != nil {
		title, url, desc = n.Title, n.URL, n.Description
	}

	m.fields = []formField{newField("Title", fieldTitle, "Name", title)}
	if m.kind == domain.KindBookmark {
		m.fields = append(m.fields, newField("URL", fieldURL, "https://", url))
	}
	m.fields = append(m.fields, newField("Description", fieldDescription, "Optional", desc))

	m.focused = 0
	return m.fields[0].input.Focus()
}

// Init returns the blink command for the focused input
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) focus(i int) tea.Cmd {
	m.fields[m.focused].input.Blur()
	m.focused = (i + len(m.fields)) % len(m.fields)
	return m.fields[m.focused].input.Focus()
}

func (m *FormModel) value(id int) string {
	for _, f := range m.fields {
		if f.id == id {
			return strings.TrimSpace(f.input.Value())
		}
	}
	return ""
}

// Update handles messages for the form
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, FormKeys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, FormKeys.Tab):
			return m, m.focus(m.focused + 1)
		case key.Matches(msg, FormKeys.Back):
			return m, m.focus(m.focused - 1)
		case key.Matches(msg, FormKeys.Submit):
			return m, m.submit()
		}
	}

	if len(m.fields) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.fields[m.focused].input, cmd = m.fields[m.focused].input.Update(msg)
	return m, cmd
}

func (m *FormModel) submit() tea.Cmd {
	out := FormSubmitMsg{
		Mode:        m.mode,
		Target:      m.target,
		Title:       m.value(fieldTitle),
		URL:         m.value(fieldURL),
		Description: m.value(fieldDescription),
	}

	var err error
	switch m.kind {
	case domain.KindFolder:
		err = application.ValidateRequired("title", out.Title)
	case domain.KindBookmark:
		err = application.ValidateURL("url", out.URL)
	}
	if err != nil {
		m.SetMessage(err.Error(), true)
		return nil
	}
	return func() tea.Msg { return out }
}

// View renders the form
func (m *FormModel) View() string {
	var title string
	switch m.mode {
	case FormAddBookmark:
		title = "New Bookmark"
	case FormAddFolder:
		title = "New Folder"
	default:
		title = "Edit " + m.kind.String()
	}

	v := NewViewBuilder().Title(title)
	if m.mode != FormEdit {
		v.Muted("Inserted at " + m.target.String()).BlankLine()
	}
	for i, f := range m.fields {
		v.Line(styles.InputLabel.Render(f.label))
		if i == m.focused {
			v.Line(styles.InputFocused.Render(f.input.View()))
		} else {
			v.Line(styles.InputField.Render(f.input.View()))
		}
		v.BlankLine()
	}
	return v.Message(m.Message, m.MessageErr).
		Help(FormKeys.Tab, FormKeys.Submit, FormKeys.Cancel).
		String()
}
