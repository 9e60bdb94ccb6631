package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/kulku/internal/digitransit"
	"github.com/five82/kulku/internal/state"
)

// ItineraryOptions configures the itinerary view.
type ItineraryOptions struct {
	From          string
	To            string
	Store         *state.Store[digitransit.Itinerary]
	ThemeName     string
	FrameInterval time.Duration
	OnTheme       func(name string)
}

// ItineraryModel is the render/input loop of the itinerary view.
type ItineraryModel struct {
	from    string
	to      string
	store   *state.Store[digitransit.Itinerary]
	frame   time.Duration
	onTheme func(string)

	keys    itineraryKeyMap
	help    help.Model
	spinner spinner.Model
	theme   Theme

	width  int
	height int

	snapshot state.Snapshot[digitransit.Itinerary]
}

// NewItineraries creates an itinerary view model.
func NewItineraries(opts ItineraryOptions) ItineraryModel {
	if opts.Store == nil {
		opts.Store = &state.Store[digitransit.Itinerary]{}
	}
	m := ItineraryModel{
		from:    opts.From,
		to:      opts.To,
		store:   opts.Store,
		frame:   frameInterval(opts.FrameInterval),
		onTheme: opts.OnTheme,
		keys:    defaultItineraryKeyMap(),
		help:    help.New(),
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		theme:   GetTheme(opts.ThemeName),
	}
	m.spinner.Style = m.theme.Styles().WarningText
	return m
}

// Init implements tea.Model.
func (m ItineraryModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, frameCmd(m.frame))
}

// Update implements tea.Model.
func (m ItineraryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case frameMsg:
		m.snapshot = m.store.Snapshot()
		return m, frameCmd(m.frame)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ItineraryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.spinner.Style = m.theme.Styles().WarningText
		return m, themeCmd(m.onTheme, m.theme.Name)
	}
	// Everything else is ignored.
	return m, nil
}

// View implements tea.Model.
func (m ItineraryModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	styles := m.theme.Styles()

	parts := []string{m.renderHeader(styles)}

	n := visibleItineraries(m.height, m.snapshot.Len())
	for _, it := range m.snapshot.Items[:n] {
		parts = append(parts, m.renderItinerary(styles, it))
	}
	if n == 0 {
		msg := "No itineraries yet"
		if m.snapshot.Version > 0 {
			msg = "No itineraries found"
		}
		parts = append(parts, styles.FaintText.Render(" "+msg))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	gap := m.height - lipgloss.Height(body) - footerHeight
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + styles.Footer.Render(m.help.View(m.keys))
}

func (m ItineraryModel) renderHeader(styles Styles) string {
	left := fmt.Sprintf("%s -> %s", m.from, m.to)
	right := styles.MutedText.Render("Idle")
	if m.snapshot.Fetching {
		right = m.spinner.View() + " " + styles.WarningText.Render("Updating...")
	}
	inner := max(m.width-2, 1)
	line := spread(styles.AccentText.Render(truncate(left, inner/2+inner/4)), right, inner)
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m ItineraryModel) renderItinerary(styles Styles, it digitransit.Itinerary) string {
	inner := max(m.width-2, 1)

	blocks := make([]string, 0, len(it.Legs))
	used := 0
	for _, span := range legSpans(it, inner) {
		blocks = append(blocks, renderLeg(styles, span))
		used += span.Width
	}
	if used < inner {
		blocks = append(blocks, strings.Repeat(" ", inner-used)+"\n\n")
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	return titledBox(itineraryTitle(it), body, m.width, styles.Border, styles.Text)
}

// renderLeg draws the three-line block of one leg: departure stop, summary,
// arrival stop.
func renderLeg(styles Styles, span legSpan) string {
	leg := span.Leg
	stop := styles.StopStyle(leg.Mode)
	body := styles.LegStyle(leg.Mode)
	return strings.Join([]string{
		fillLine(leg.From, span.Width, stop),
		fillLine(legSummary(leg), span.Width, body),
		fillLine(leg.To, span.Width, stop),
	}, "\n")
}

// RunItineraries runs the itinerary view until the user quits or ctx is
// cancelled.
func RunItineraries(ctx context.Context, opts ItineraryOptions) error {
	if _, err := runProgram(ctx, NewItineraries(opts), opts.FrameInterval); err != nil {
		return fmt.Errorf("run itinerary view: %w", err)
	}
	return nil
}
