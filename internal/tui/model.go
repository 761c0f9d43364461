package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	errs "grievlog/internal/errors"
	"grievlog/internal/history"
	"grievlog/internal/logging"
	"grievlog/internal/sheet"
)

// phase is the coordinator state. While not idle, new submit/refresh
// intents are rejected with a notice: one in-flight request at a time,
// so a submit can never race its follow-up fetch and two fetches can
// never race to replace the history.
type phase int

const (
	phaseIdle phase = iota
	phaseSubmitting
	phaseRefreshing
)

// Assets are the resolved image settings, shown as captions in the
// chrome; a terminal can't inline the files themselves.
type Assets struct {
	Header  string
	Sidebar string
	Footer  string
}

type Model struct {
	client SheetClient
	cfgErr error // non-nil when SHEET_API_URL never resolved
	log    *logging.Logger
	assets Assets

	th   Theme
	w, h int

	phase       phase
	hist        history.Model
	lastRefresh time.Time

	input       textarea.Model
	composeOn   bool
	filterOn    bool
	filterInput textinput.Model
	filter      string
	selected    int
	spin        spinner.Model

	notice    string
	noticeErr bool
}

func New(client SheetClient, cfgErr error, assets Assets, log *logging.Logger) *Model {
	ta := textarea.New()
	ta.Placeholder = "Type your thought here…"
	ta.SetHeight(4)
	ta.CharLimit = 0
	ta.Focus()

	fi := textinput.New()
	fi.Placeholder = "Filter history…"

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	if log == nil {
		log = logging.New("error", false)
	}

	m := &Model{
		client:      client,
		cfgErr:      cfgErr,
		log:         log,
		assets:      assets,
		th:          defaultTheme(),
		input:       ta,
		composeOn:   true,
		filterInput: fi,
		spin:        sp,
	}
	if cfgErr != nil {
		m.setErrNotice(errs.ConfigError("SHEET_API_URL", cfgErr))
	}
	return m
}

// Init performs the startup refresh: one implicit idle → refreshing →
// idle pass to populate the history.
func (m *Model) Init() tea.Cmd {
	if m.client == nil {
		return textarea.Blink
	}
	m.phase = phaseRefreshing
	return tea.Batch(textarea.Blink, m.spin.Tick, m.fetchCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.input.SetWidth(m.w - 6)
		m.filterInput.Width = m.w - 10
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if m.phase == phaseIdle {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case fetchDoneMsg:
		return m.handleFetchDone(msg)
	}

	return m.updateFocused(msg)
}

// handleSubmitDone: submit failure returns straight to idle with the
// prior history intact; success clears the input and triggers exactly
// one follow-up refresh.
func (m *Model) handleSubmitDone(msg submitDoneMsg) (tea.Model, tea.Cmd) {
	if m.phase != phaseSubmitting {
		return m, nil
	}
	if msg.err != nil {
		m.phase = phaseIdle
		m.log.Warnf("submit failed: %v", msg.err)
		m.setErrNotice(errs.NetworkError("submit", msg.err))
		return m, nil
	}
	m.input.Reset()
	m.phase = phaseRefreshing
	m.setNotice("Your thought has been logged.")
	return m, tea.Batch(m.spin.Tick, m.fetchCmd())
}

// handleFetchDone: on success the history is replaced wholesale; on
// failure the previous rows stay and the error is surfaced once.
func (m *Model) handleFetchDone(msg fetchDoneMsg) (tea.Model, tea.Cmd) {
	if m.phase != phaseRefreshing {
		return m, nil
	}
	m.phase = phaseIdle
	if msg.err != nil {
		m.log.Warnf("refresh failed: %v", msg.err)
		m.setErrNotice(errs.NetworkError("fetch", msg.err))
		return m, nil
	}
	m.hist.Replace(msg.rows)
	m.lastRefresh = time.Now()
	m.clampSelection()
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "ctrl+s":
		return m, m.submitIntent()
	case "f5", "ctrl+r":
		return m, m.refreshIntent()
	}

	if m.filterOn {
		return m.handleFilterKey(msg)
	}
	if m.composeOn {
		return m.handleComposeKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleComposeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "tab":
		m.composeOn = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "i":
		m.composeOn = true
		return m, m.input.Focus()
	case "j", "down":
		if m.selected < len(m.visibleRows())-1 {
			m.selected++
		}
		return m, nil
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "r":
		return m, m.refreshIntent()
	case "/":
		m.filterOn = true
		m.filterInput.SetValue(m.filter)
		return m, m.filterInput.Focus()
	case "y":
		rows := m.visibleRows()
		if m.selected >= 0 && m.selected < len(rows) {
			if err := copyToClipboard(rows[m.selected].Grievance); err == nil {
				m.setNotice("Copied to clipboard.")
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.filterOn = false
		m.filter = ""
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.selected = 0
		return m, nil
	case "enter":
		m.filterOn = false
		m.filter = strings.TrimSpace(m.filterInput.Value())
		m.filterInput.Blur()
		m.selected = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.filter = strings.TrimSpace(m.filterInput.Value())
	return m, cmd
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.filterOn {
		m.filterInput, cmd = m.filterInput.Update(msg)
	} else if m.composeOn {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// submitIntent validates locally, then moves idle → submitting. An
// empty or whitespace-only thought never reaches the network.
func (m *Model) submitIntent() tea.Cmd {
	if m.client == nil {
		m.setErrNotice(errs.ConfigError("SHEET_API_URL", m.cfgErr))
		return nil
	}
	if m.phase != phaseIdle {
		m.setNotice("Still working on the previous request…")
		return nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.setErrNotice(errs.ValidationError())
		return nil
	}
	m.phase = phaseSubmitting
	m.clearNotice()
	rec := sheet.Record{Timestamp: sheet.NewTimestamp(), Grievance: text}
	return tea.Batch(m.spin.Tick, m.submitCmd(rec))
}

func (m *Model) refreshIntent() tea.Cmd {
	if m.client == nil {
		m.setErrNotice(errs.ConfigError("SHEET_API_URL", m.cfgErr))
		return nil
	}
	if m.phase != phaseIdle {
		m.setNotice("Still working on the previous request…")
		return nil
	}
	m.phase = phaseRefreshing
	m.clearNotice()
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

// visibleRows applies the user's fuzzy filter for display. The filter
// is a find aid only; clearing it shows every record again, and status
// never affects membership.
func (m *Model) visibleRows() []sheet.Record {
	rows := m.hist.Rows()
	if m.filter == "" {
		return rows
	}
	var out []sheet.Record
	for _, r := range rows {
		if fuzzy.MatchNormalizedFold(m.filter, r.Grievance) {
			out = append(out, r)
		}
	}
	return out
}

func (m *Model) clampSelection() {
	if n := len(m.visibleRows()); m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *Model) setNotice(s string) {
	m.notice = s
	m.noticeErr = false
}

func (m *Model) setErrNotice(err error) {
	m.notice = err.Error()
	m.noticeErr = true
}

func (m *Model) clearNotice() {
	if m.cfgErr != nil {
		// keep the config problem on screen; it doesn't clear itself
		return
	}
	m.notice = ""
	m.noticeErr = false
}
