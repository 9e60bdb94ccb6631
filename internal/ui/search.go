package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kulku/internal/digitransit"
	"github.com/five82/kulku/internal/refresh"
	"github.com/five82/kulku/internal/state"
)

// SearchOptions configures a location search view.
type SearchOptions struct {
	Title         string // "Origin", "Destination"
	Store         *state.Store[digitransit.Candidate]
	Input         *refresh.Text
	Signal        *refresh.Signal
	ThemeName     string
	FrameInterval time.Duration
	// OnTheme is called with the new theme name after the user cycles it.
	OnTheme func(name string)
}

// SearchModel is the render/input loop of a location search view.
type SearchModel struct {
	title   string
	store   *state.Store[digitransit.Candidate]
	input   *refresh.Text
	signal  *refresh.Signal
	frame   time.Duration
	onTheme func(string)

	keys    searchKeyMap
	help    help.Model
	text    textinput.Model
	spinner spinner.Model
	theme   Theme

	width  int
	height int

	snapshot  state.Snapshot[digitransit.Candidate]
	selection Selection

	result digitransit.Candidate
	err    error
	done   bool
}

// NewSearch creates a search view model.
func NewSearch(opts SearchOptions) SearchModel {
	if opts.Store == nil {
		opts.Store = &state.Store[digitransit.Candidate]{}
	}
	if opts.Input == nil {
		opts.Input = &refresh.Text{}
	}
	if opts.Signal == nil {
		opts.Signal = refresh.NewSignal()
	}

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a stop, address or place"
	ti.SetValue(opts.Input.Load())
	ti.Focus()

	m := SearchModel{
		title:   opts.Title,
		store:   opts.Store,
		input:   opts.Input,
		signal:  opts.Signal,
		frame:   frameInterval(opts.FrameInterval),
		onTheme: opts.OnTheme,
		keys:    defaultSearchKeyMap(),
		help:    help.New(),
		text:    ti,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		theme:   GetTheme(opts.ThemeName),
	}
	m.applyTheme()
	return m
}

// Result returns the chosen candidate, or the error the view ended with.
func (m SearchModel) Result() (digitransit.Candidate, error) {
	if m.err != nil {
		return digitransit.Candidate{}, m.err
	}
	if !m.done {
		return digitransit.Candidate{}, ErrCanceled
	}
	return m.result, nil
}

// Selected returns the current selection index, if any.
func (m SearchModel) Selected() (int, bool) {
	return m.selection.Index()
}

// Init implements tea.Model.
func (m SearchModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		frameCmd(m.frame),
	)
}

// Update implements tea.Model.
func (m SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.text.Width = max(msg.Width-6, 1)
		return m, nil

	case frameMsg:
		m.applySnapshot(m.store.Snapshot())
		return m, frameCmd(m.frame)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

func (m SearchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.err = ErrCanceled
		return m, tea.Quit

	case key.Matches(msg, m.keys.Confirm):
		idx, ok := m.selection.Index()
		if !ok || idx >= m.snapshot.Len() {
			m.err = ErrNoSelection
			return m, tea.Quit
		}
		m.result = m.snapshot.Items[idx]
		m.done = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.selection.Prev(m.snapshot.Len())
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.selection.Next(m.snapshot.Len())
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		return m, themeCmd(m.onTheme, m.theme.Name)
	}

	before := m.text.Value()
	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	if after := m.text.Value(); after != before {
		m.input.Store(after)
		m.signal.Notify()
	}
	return m, cmd
}

// applySnapshot installs a fresh store snapshot. A new version always clears
// the selection, even when the number of results is unchanged.
func (m *SearchModel) applySnapshot(snap state.Snapshot[digitransit.Candidate]) {
	if snap.Version != m.snapshot.Version {
		m.selection.Reset()
	}
	m.snapshot = snap
}

func (m *SearchModel) applyTheme() {
	styles := m.theme.Styles()
	m.text.PromptStyle = styles.AccentText
	m.text.TextStyle = styles.Text
	m.text.PlaceholderStyle = styles.FaintText
	m.spinner.Style = styles.AccentText
}

// View implements tea.Model.
func (m SearchModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	styles := m.theme.Styles()

	input := titledBox(m.title, m.text.View(), m.width, styles.BorderFocus, styles.AccentText)

	listHeight := max(m.height-lipgloss.Height(input)-footerHeight-2, 1)
	list := titledBox("Locations", m.renderCandidates(styles, listHeight), m.width, styles.Border, styles.Text)

	footer := spread(m.renderStatus(styles), m.help.View(m.keys), m.width)

	return lipgloss.JoinVertical(lipgloss.Left, input, list, footer)
}

func (m SearchModel) renderCandidates(styles Styles, height int) string {
	inner := max(m.width-2, 1)
	if m.snapshot.Len() == 0 {
		lines := make([]string, height)
		msg := "No results"
		if strings.TrimSpace(m.text.Value()) == "" {
			msg = "Start typing to search"
		}
		lines[0] = styles.FaintText.Render(truncate(msg, inner))
		return strings.Join(lines, "\n")
	}

	sel, hasSel := m.selection.Index()
	first := 0
	if hasSel && sel >= height {
		first = sel - height + 1
	}

	lines := make([]string, 0, height)
	for i := first; i < m.snapshot.Len() && len(lines) < height; i++ {
		label := m.snapshot.Items[i].Label
		if hasSel && i == sel {
			lines = append(lines, fillLine(label, inner, styles.Selected))
			continue
		}
		lines = append(lines, styles.Text.Render(truncate(label, inner)))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m SearchModel) renderStatus(styles Styles) string {
	if m.snapshot.Fetching {
		return m.spinner.View() + styles.WarningText.Render(" Searching...")
	}
	return styles.MutedText.Render(fmt.Sprintf("Idle · %d results", m.snapshot.Len()))
}

// RunSearch runs a search view until the user picks a candidate, aborts, or
// ctx is cancelled.
func RunSearch(ctx context.Context, opts SearchOptions) (digitransit.Candidate, error) {
	final, err := runProgram(ctx, NewSearch(opts), opts.FrameInterval)
	if err != nil {
		return digitransit.Candidate{}, fmt.Errorf("run %s view: %w", strings.ToLower(opts.Title), err)
	}
	m, ok := final.(SearchModel)
	if !ok {
		return digitransit.Candidate{}, fmt.Errorf("run %s view: unexpected model %T", strings.ToLower(opts.Title), final)
	}
	return m.Result()
}
