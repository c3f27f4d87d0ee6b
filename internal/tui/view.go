package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/runoshun/ironjira/internal/domain"
)

const (
	appPadding     = 4
	minColumnWidth = 12
)

// View renders the board.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var base string
	switch m.mode {
	case ModeInputTitle, ModeInputComment:
		base = m.viewMain() + "\n" + m.viewInputDialog()
	case ModeConfirm:
		base = m.viewMain() + "\n" + m.viewConfirmDialog()
	case ModeHelp:
		base = m.viewHelp()
	case ModeNormal:
		base = m.viewMain()
	}

	return m.styles.App.Render(base)
}

// contentWidth returns the available content width.
func (m *Model) contentWidth() int {
	return max(m.width-appPadding, 0)
}

// columnWidth returns the width of one column excluding its border.
func (m *Model) columnWidth() int {
	w := m.contentWidth()/len(m.columns) - 2
	return max(w, minColumnWidth)
}

// viewMain renders header, columns, detail pane and footer.
func (m *Model) viewMain() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.loading {
		b.WriteString(m.styles.Muted.Render("Loading tickets..."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.viewColumns())
		b.WriteString("\n")
	}

	if m.showDetail {
		if t, ok := m.selected(); ok {
			b.WriteString(m.viewDetail(t))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.viewFooter())
	return b.String()
}

// viewHeader renders the title left-aligned and the ticket count right-aligned.
func (m *Model) viewHeader() string {
	title := m.styles.HeaderText.Render("Board")
	count := m.styles.Muted.Render(fmt.Sprintf("%d tickets", m.ticketCount()))

	innerWidth := m.contentWidth() - 2
	spacing := max(innerWidth-lipgloss.Width(title)-lipgloss.Width(count), 1)
	return m.styles.Header.Render(title + strings.Repeat(" ", spacing) + count)
}

// viewColumns renders one column per status side by side.
func (m *Model) viewColumns() string {
	statuses := domain.AllStatuses()
	rendered := make([]string, 0, len(statuses))
	for i, status := range statuses {
		rendered = append(rendered, m.viewColumn(i, status))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// viewColumn renders a single status column.
func (m *Model) viewColumn(index int, status domain.Status) string {
	width := m.columnWidth()
	textWidth := uint(max(width-2, 1))
	tickets := m.columns[index]
	focused := index == m.column

	var b strings.Builder
	b.WriteString(StatusBadge(status))
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf(" %d", len(tickets))))
	b.WriteString("\n")

	if len(tickets) == 0 {
		b.WriteString(m.styles.Muted.Render("empty"))
	}
	for row, t := range tickets {
		selected := focused && row == m.rows[index]
		b.WriteString(m.renderTicketLine(t, selected, textWidth))
		if row < len(tickets)-1 {
			b.WriteString("\n")
		}
	}

	style := m.styles.Column
	if focused {
		style = m.styles.ColumnFocused
	}
	return style.Width(width).Render(b.String())
}

// renderTicketLine renders "▸ #id title", truncated to width.
func (m *Model) renderTicketLine(t domain.Ticket, selected bool, width uint) string {
	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	plain := fmt.Sprintf("%s#%d %s", cursor, t.ID(), t.Title().String())
	plain = truncate.StringWithTail(plain, width, "…")

	if selected {
		return m.styles.TicketSelected.Render(plain)
	}
	return m.styles.TicketTitle.Render(plain)
}

// viewDetail renders the selected ticket with its comments.
func (m *Model) viewDetail(t domain.Ticket) string {
	width := uint(max(m.contentWidth(), minColumnWidth))

	var b strings.Builder
	b.WriteString(m.styles.DetailTitle.Render(fmt.Sprintf("#%d %s", t.ID(), t.Title().String())))
	b.WriteString("\n")
	b.WriteString(m.detailRow("Status", StatusBadge(t.Status())))
	b.WriteString(m.detailRow("Created", t.CreatedAt().Local().Format(time.DateTime)))
	b.WriteString(m.detailRow("Updated", t.UpdatedAt().Local().Format(time.DateTime)))

	if !t.Description().IsEmpty() {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailValue.Render(wordwrap.String(t.Description().String(), int(width))))
		b.WriteString("\n")
	}

	comments := t.Comments()
	if len(comments) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailLabel.Render(fmt.Sprintf("Comments (%d)", len(comments))))
		b.WriteString("\n")
		for _, c := range comments {
			b.WriteString(m.styles.DetailValue.Render(wordwrap.String("- "+c.String(), int(width))))
			b.WriteString("\n")
		}
	}

	return m.styles.Detail.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) detailRow(label, value string) string {
	return m.styles.DetailLabel.Render(label) + " " + m.styles.DetailValue.Render(value) + "\n"
}

// viewFooter renders the status line and key help.
func (m *Model) viewFooter() string {
	var b strings.Builder
	switch {
	case m.err != nil:
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	case m.notice != "":
		b.WriteString(m.styles.Notice.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// viewInputDialog renders the text input for a new ticket or comment.
func (m *Model) viewInputDialog() string {
	title := "New ticket"
	if m.mode == ModeInputComment {
		if t, ok := m.selected(); ok {
			title = fmt.Sprintf("Comment on #%d", t.ID())
		}
	}
	content := m.styles.DialogTitle.Render(title) + "\n" +
		m.input.View() + "\n" +
		m.styles.Muted.Render("enter: save  esc: cancel")
	return m.styles.Dialog.Render(content)
}

// viewConfirmDialog renders the delete confirmation.
func (m *Model) viewConfirmDialog() string {
	t, ok := m.selected()
	if !ok {
		return ""
	}
	content := m.styles.DialogTitle.Render("Delete ticket?") + "\n" +
		fmt.Sprintf("#%d %s", t.ID(), t.Title().String()) + "\n\n" +
		m.styles.Muted.Render("y: delete  n: cancel")
	return m.styles.Dialog.Render(content)
}

// viewHelp renders the full key help.
func (m *Model) viewHelp() string {
	h := m.help
	h.ShowAll = true
	return m.styles.DialogTitle.Render("Keys") + "\n" + h.View(m.keys) + "\n\n" +
		m.styles.Muted.Render("press any key to close")
}
