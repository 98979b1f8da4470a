package ui

import (
	"context"
	"fmt"

	"zettel/internal/picker"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// FuzzyProvider runs prompt sessions as a bubbletea program: a fuzzy
// filterable list on the left, a markdown preview of the highlighted
// candidate on the right. It is installed via picker.Enable when fuzzy mode
// is on.
type FuzzyProvider struct{}

// NewFuzzyProvider creates the TUI prompt provider.
func NewFuzzyProvider() *FuzzyProvider {
	return &FuzzyProvider{}
}

func (f *FuzzyProvider) SelectNode(ctx context.Context, cands []picker.Candidate, opts picker.Options) (picker.Selection, error) {
	return f.run(ctx, cands, opts)
}

func (f *FuzzyProvider) SelectRef(ctx context.Context, cands []picker.Candidate, opts picker.Options) (picker.Selection, error) {
	return f.run(ctx, cands, opts)
}

func (f *FuzzyProvider) run(ctx context.Context, cands []picker.Candidate, opts picker.Options) (picker.Selection, error) {
	m := newPickerModel(cands, opts)
	defer m.endSession()

	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := prog.Run()
	if err != nil {
		return picker.Selection{}, err
	}

	fm := final.(pickerModel)
	fm.endSession()
	if fm.cancelled {
		return picker.Selection{}, picker.ErrCancelled
	}
	return fm.result, nil
}

// candItem adapts picker.Candidate to list.Item.
type candItem struct {
	cand picker.Candidate
}

func (i candItem) Title() string { return i.cand.Label }
func (i candItem) Description() string {
	if file := i.cand.File(); file != "" {
		return file
	}
	return ""
}
func (i candItem) FilterValue() string { return i.cand.Label }

// pickerModel is the bubbletea model for one prompt session.
type pickerModel struct {
	width  int
	height int

	list     list.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer

	// session is nil when the candidate collection is empty: with nothing
	// to preview the adapter is never constructed.
	session  *picker.Session
	lastFile string

	opts      picker.Options
	result    picker.Selection
	cancelled bool
	confirmed bool

	focusViewport bool
	styles        Styles
}

func newPickerModel(cands []picker.Candidate, opts picker.Options) pickerModel {
	visible := opts.Apply(cands)

	items := make([]list.Item, 0, len(visible))
	for _, c := range visible {
		items = append(items, candItem{cand: c})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = opts.Prompt
	if l.Title == "" {
		l.Title = "Note: "
	}
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = lipgloss.NewStyle().Bold(true).Foreground(DefaultTheme().Primary)
	if opts.Initial != "" {
		l.SetFilterText(opts.Initial)
	}

	vp := viewport.New(0, 0)
	vp.SetContent("")

	m := pickerModel{
		list:     l,
		viewport: vp,
		opts:     opts,
		styles:   DefaultStyles(),
	}
	if len(cands) > 0 {
		m.session = picker.NewSession()
	}
	return m
}

// Init initializes the model.
func (m pickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			if m.list.FilterState() == list.Filtering {
				break // let the list clear its filter first
			}
			m.cancelled = true
			return m, tea.Quit

		case "tab":
			if m.list.FilterState() != list.Filtering {
				m.focusViewport = !m.focusViewport
				return m, nil
			}

		case "enter":
			if m.list.FilterState() == list.Filtering {
				break // accept the filter; confirm on the next enter
			}
			if sel := m.list.SelectedItem(); sel != nil {
				m.result = picker.Selection{Candidate: sel.(candItem).cand}
				m.confirmed = true
				return m, tea.Quit
			}
			// Free text with no match.
			if typed := m.list.FilterValue(); typed != "" && !m.opts.RequireMatch {
				m.result = picker.Selection{Created: true, Title: typed}
				m.confirmed = true
				return m, tea.Quit
			}
			// Require-match: the session refuses to exit.
			cmds = append(cmds, m.list.NewStatusMessage(m.styles.Error.Render("no matching note")))
		}
	}

	_, isKey := msg.(tea.KeyMsg)
	updateList := !isKey || !m.focusViewport || m.list.FilterState() == list.Filtering
	updateViewport := !isKey || (m.focusViewport && m.list.FilterState() != list.Filtering)

	if updateList {
		m.list, cmd = m.list.Update(msg)
		cmds = append(cmds, cmd)
	}
	if updateViewport {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refreshPreview()

	return m, tea.Batch(cmds...)
}

// refreshPreview opens the highlighted candidate's file when the highlight
// moved to a different file. The session closes the previous preview itself.
func (m *pickerModel) refreshPreview() {
	if m.session == nil {
		return
	}
	sel := m.list.SelectedItem()
	if sel == nil {
		return
	}
	cand := sel.(candItem).cand
	file := cand.File()
	if file == "" || file == m.lastFile {
		return
	}

	p, err := m.session.Open(file, cand.Pos())
	if err != nil {
		m.viewport.SetContent(m.styles.Error.Render(fmt.Sprintf("preview unavailable: %v", err)))
		m.lastFile = file
		return
	}
	m.lastFile = file
	m.viewport.SetContent(m.renderMarkdown(string(p.Content)))
	m.viewport.SetYOffset(p.Line - 1)
}

// renderMarkdown renders with glamour, falling back to plain text.
func (m *pickerModel) renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer == nil {
		width := m.viewport.Width
		if width <= 0 {
			width = 80
		}
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width-2),
		)
	}
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(content); err == nil {
			return rendered
		}
	}
	return content
}

// endSession releases any open preview. Safe to call twice.
func (m *pickerModel) endSession() {
	if m.session != nil {
		m.session.End()
	}
}

// View renders the session.
func (m pickerModel) View() string {
	if m.session == nil {
		// No preview pane for an empty candidate collection.
		return m.styles.Pane.Render(m.list.View())
	}

	listPaneWidth := int(float64(m.width) * 0.4)
	viewPaneWidth := m.width - listPaneWidth

	focusedBorder := m.styles.Theme.Secondary
	blurredBorder := m.styles.Theme.Border

	listStyle := m.styles.Pane.BorderForeground(focusedBorder)
	viewStyle := m.styles.Pane.BorderForeground(blurredBorder)
	if m.focusViewport {
		listStyle, viewStyle = viewStyle, listStyle
	}

	listView := listStyle.Width(listPaneWidth - 4).Render(m.list.View())
	contentView := viewStyle.Width(viewPaneWidth - 4).Render(m.viewport.View())

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, listView, contentView)
	help := m.styles.Muted.Render(" enter: select • /: filter • tab: focus preview • esc: cancel")

	return lipgloss.JoinVertical(lipgloss.Left, mainView, help)
}

// setSize updates pane sizes.
func (m *pickerModel) setSize(w, h int) {
	m.width = w
	m.height = h

	chromeW := 4
	chromeH := 2
	paneH := h - 3 - chromeH

	if m.session == nil {
		m.list.SetSize(w-chromeW, paneH)
		return
	}

	listPaneWidth := int(float64(w) * 0.4)
	viewPaneWidth := w - listPaneWidth

	m.list.SetSize(listPaneWidth-chromeW, paneH)
	m.viewport.Width = viewPaneWidth - chromeW
	m.viewport.Height = paneH
	m.renderer = nil // re-wrap on resize
}
