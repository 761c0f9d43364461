package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"grievlog/internal/history"
	"grievlog/internal/sheet"
)

func (m *Model) View() string {
	if m.w == 0 {
		m.w = 100
	}
	if m.h == 0 {
		m.h = 30
	}
	header := m.renderHeader()
	compose := m.th.border.Width(m.w - 2).Render(m.renderCompose())
	hist := m.th.border.Width(m.w - 2).Render(m.renderHistory())
	footer := m.renderFooter()
	return lipgloss.JoinVertical(lipgloss.Left, header, compose, hist, footer)
}

func (m *Model) renderHeader() string {
	title := m.th.title.Render("The Grievance Log")
	status := ""
	switch m.phase {
	case phaseSubmitting:
		status = m.spin.View() + " submitting…"
	case phaseRefreshing:
		status = m.spin.View() + " refreshing…"
	default:
		if !m.lastRefresh.IsZero() {
			status = "updated " + humanize.Time(m.lastRefresh)
		}
	}
	line := title + "  " + m.th.label.Render(status)
	if m.assets.Header != "" {
		line += "  " + m.th.label.Render("["+filepath.Base(m.assets.Header)+"]")
	}
	if m.assets.Sidebar != "" {
		line += "  " + m.th.label.Render("["+filepath.Base(m.assets.Sidebar)+"]")
	}
	return m.th.border.Width(m.w - 2).Render(line)
}

func (m *Model) renderCompose() string {
	label := m.th.head.Render("What's on your mind?")
	hint := m.th.label.Render("ctrl+s to submit")
	return lipgloss.JoinVertical(lipgloss.Left, label, m.input.View(), hint)
}

func (m *Model) renderHistory() string {
	var sb strings.Builder
	heading := m.th.head.Render("Submission History")
	count := m.hist.Len()
	sb.WriteString(heading)
	sb.WriteString("  ")
	sb.WriteString(m.th.label.Render(fmt.Sprintf("(%d)", count)))
	sb.WriteString("\n")

	if m.filterOn {
		sb.WriteString("/" + m.filterInput.View())
		sb.WriteString("\n")
	} else if m.filter != "" {
		sb.WriteString(m.th.label.Render(fmt.Sprintf("filter: %q (press / then esc to clear)", m.filter)))
		sb.WriteString("\n")
	}

	rows := m.visibleRows()
	if len(rows) == 0 {
		if count == 0 {
			sb.WriteString(m.th.label.Render("No submissions yet. Be the first to share a thought!"))
		} else {
			sb.WriteString(m.th.label.Render("(no rows match the filter)"))
		}
		return sb.String()
	}

	sb.WriteString(m.th.label.Render(fmt.Sprintf("%-22s  %-*s  %s", "WHEN", m.grievanceWidth(), "GRIEVANCE", "STATUS")))
	sb.WriteString("\n")

	maxRows := m.h - 16
	if maxRows < 3 {
		maxRows = len(rows)
	}
	start := 0
	if m.selected >= maxRows {
		start = m.selected - maxRows + 1
	}
	for i := start; i < len(rows); i++ {
		sb.WriteString(m.renderRow(i, rows[i]))
		sb.WriteString("\n")
		if i-start+1 >= maxRows {
			break
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) renderRow(i int, r sheet.Record) string {
	when := r.Timestamp
	if t, err := sheet.ParseTimestamp(r.Timestamp); err == nil {
		when = humanize.Time(t)
	}
	line := fmt.Sprintf("%-22s  %-*s  %s", truncate(when, 22), m.grievanceWidth(), truncate(r.Grievance, m.grievanceWidth()), r.Status)

	style := m.th.rowEven
	if i%2 == 1 {
		style = m.th.rowOdd
	}
	if history.Classify(r.Status) == history.Seen {
		style = m.th.rowSeen
	}
	if i == m.selected && !m.composeOn {
		style = m.th.rowSelected
	}
	return style.Render(line)
}

func (m *Model) grievanceWidth() int {
	w := m.w - 42
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) renderFooter() string {
	help := "ctrl+s submit • f5 refresh • tab input/history • j/k nav • y copy • / filter • q quit"
	lines := []string{m.th.footer.Render(help)}
	if m.notice != "" {
		style := m.th.notice
		if m.noticeErr {
			style = m.th.noticeErr
		}
		lines = append([]string{style.Render(m.notice)}, lines...)
	}
	if m.assets.Footer != "" {
		lines = append(lines, m.th.label.Render("["+filepath.Base(m.assets.Footer)+"]"))
	}
	return m.th.border.Width(m.w - 2).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	if n <= 1 || len([]rune(s)) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
