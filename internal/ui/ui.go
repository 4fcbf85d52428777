// Package ui is the popup: the interactive reminder list for one origin.
package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sitenote/internal/badge"
	"sitenote/internal/config"
	"sitenote/internal/reminder"
	"sitenote/internal/session"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
)

// storeChangedMsg is the fire-and-forget refresh signal delivered after
// a mutation, so the badge and list re-query the repository.
type storeChangedMsg struct {
	origin string
}

const (
	colorGray   = "#353b52"
	colorBlue   = "#89ddff"
	colorRed    = "#e61f44"
	colorPurple = "#b9a3eb"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(colorBlue))
	monthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorPurple))
	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorGray))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorRed))
)

type Model struct {
	repo     *reminder.Repository
	cfg      config.Config
	notifier *badge.Notifier
	session  *session.Session
	origin   string

	reminders []reminder.Reminder
	cursor    int
	mode      mode
	input     textinput.Model
	status    string
	inlineErr string

	confirmDel   bool
	pendingDel   *reminder.Reminder
	confirmClear bool
}

func newModel(repo *reminder.Repository, cfg config.Config, notifier *badge.Notifier, origin string) Model {
	reminders := repo.List(context.Background(), origin)

	ti := textinput.New()
	ti.Placeholder = "Reminder text"
	ti.Width = 40

	m := Model{
		repo:      repo,
		cfg:       cfg,
		notifier:  notifier,
		session:   &session.Session{},
		origin:    origin,
		reminders: reminders,
		cursor:    clampCursor(0, len(reminders)),
		mode:      modeList,
		input:     ti,
		status:    fmt.Sprintf("Press '%s' to add, '%s' to edit, '%s' to delete.", cfg.Keys.Add, cfg.Keys.Edit, cfg.Keys.Delete),
	}
	if cfg.Notify && notifier.ShouldNotify(origin, len(reminders)) {
		m.status = fmt.Sprintf("You have %d reminder(s) for this site.", len(reminders))
	}
	return m
}

func Run(repo *reminder.Repository, cfg config.Config, notifier *badge.Notifier, origin string) error {
	m := newModel(repo, cfg, notifier, origin)
	program := tea.NewProgram(m)
	repo.SetOnChange(func(o string) {
		program.Send(storeChangedMsg{origin: o})
	})
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case storeChangedMsg:
		if msg.origin == m.origin {
			m = m.refresh()
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		return m, nil
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		if m.confirmClear {
			return m.updateClearConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		case modeEdit:
			return m.updateEditMode(msg.String(), msg)
		default:
			return m.updateListMode(msg.String())
		}
	}
	return m, nil
}

func (m Model) refresh() Model {
	m.reminders = m.repo.List(context.Background(), m.origin)
	m.cursor = clampCursor(m.cursor, len(m.reminders))
	return m
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.reminders) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.reminders))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.reminders))
		}
	case m.cfg.Keys.Add:
		if !m.session.FormEnabled() {
			m.status = "Finish the current edit first"
			return m, nil
		}
		m.mode = modeAdd
		m.inlineErr = ""
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add: type a reminder and press enter"
	case m.cfg.Keys.Edit:
		if len(m.reminders) == 0 {
			m.status = "No reminders to edit"
			return m, nil
		}
		rem := m.reminders[m.cursor]
		if !m.session.Begin(rem.ID) {
			m.status = "Another reminder is already being edited"
			return m, nil
		}
		m.mode = modeEdit
		m.inlineErr = ""
		m.input.SetValue(rem.Text)
		m.input.CursorEnd()
		m.input.Focus()
		m.status = "Edit: enter saves, esc cancels, ctrl+d deletes"
	case m.cfg.Keys.Delete:
		if len(m.reminders) == 0 {
			return m, nil
		}
		rem := m.reminders[m.cursor]
		m.confirmDel = true
		m.pendingDel = &rem
		m.status = fmt.Sprintf("Delete %q? y/n", rem.Text)
	case m.cfg.Keys.Clear:
		if len(m.reminders) == 0 {
			m.status = "Nothing to clear"
			return m, nil
		}
		m.confirmClear = true
		m.status = "Delete ALL reminders for this site? y/n"
	}
	return m, nil
}

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.inlineErr = ""
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		rem, err := m.repo.Add(context.Background(), m.origin, m.input.Value())
		switch {
		case errors.Is(err, reminder.ErrDuplicate):
			m.inlineErr = "This reminder already exists!"
			m.input.SetValue("")
		case reminder.IsValidation(err):
			m.inlineErr = m.lengthError()
		case err != nil:
			m.status = fmt.Sprintf("save failed: %v", err)
		default:
			m = m.refresh()
			m.cursor = clampCursor(indexOf(m.reminders, rem.ID), len(m.reminders))
			m.input.SetValue("")
			m.input.Blur()
			m.inlineErr = ""
			m.mode = modeList
			m.status = "Added reminder"
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.session.Cancel()
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.inlineErr = ""
		m.status = "Edit cancelled"
		return m, nil
	case "ctrl+d":
		idx := indexOf(m.reminders, m.session.Target())
		if idx < 0 {
			return m, nil
		}
		rem := m.reminders[idx]
		m.confirmDel = true
		m.pendingDel = &rem
		m.status = fmt.Sprintf("Delete %q? y/n", rem.Text)
		return m, nil
	case m.cfg.Keys.Confirm:
		rem, err := m.repo.Edit(context.Background(), m.origin, m.session.Target(), m.input.Value())
		switch {
		case reminder.IsValidation(err):
			// Stay in edit mode with the typed text intact.
			m.inlineErr = m.lengthError()
		case errors.Is(err, reminder.ErrNotFound):
			m.session.Cancel()
			m.mode = modeList
			m.input.SetValue("")
			m.input.Blur()
			m = m.refresh()
			m.status = "That reminder no longer exists"
		case err != nil:
			m.status = fmt.Sprintf("save failed: %v", err)
		default:
			m.session.Finish()
			m.mode = modeList
			m.input.SetValue("")
			m.input.Blur()
			m.inlineErr = ""
			m = m.refresh()
			m.cursor = clampCursor(indexOf(m.reminders, rem.ID), len(m.reminders))
			m.status = "Reminder updated"
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.confirmDel = false
			return m, nil
		}
		// Edit mode exits before the delete so no stale target survives.
		if m.session.Active() {
			m.session.Cancel()
			m.mode = modeList
			m.input.SetValue("")
			m.input.Blur()
			m.inlineErr = ""
		}
		if err := m.repo.Remove(context.Background(), m.origin, m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m = m.refresh()
			m.status = "Deleted reminder"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) updateClearConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N":
		m.status = "Clear cancelled"
		m.confirmClear = false
		return m, nil
	case "y", "Y":
		if err := m.repo.ClearAll(context.Background(), m.origin); err != nil {
			m.status = fmt.Sprintf("clear failed: %v", err)
		} else {
			m = m.refresh()
			m.status = "Cleared all reminders for this site"
		}
		m.confirmClear = false
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) View() string {
	var b strings.Builder

	header := titleStyle.Render("sitenote") + "  " + m.origin
	if bdg := badge.Render(len(m.reminders)); bdg != "" {
		header += "  " + bdg
	}
	b.WriteString(header)
	b.WriteString("\n\n")

	if len(m.reminders) == 0 {
		b.WriteString(fmt.Sprintf("No reminders for this site. Press '%s' to add one.", m.cfg.Keys.Add))
	} else {
		b.WriteString(m.renderReminderList())
	}

	b.WriteString("\n---\n")

	switch m.mode {
	case modeAdd:
		b.WriteString("New reminder\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	case modeEdit:
		b.WriteString("Editing\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.inlineErr != "" {
		b.WriteString(errorStyle.Render(m.inlineErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(renderHelp(m.cfg.Keys))

	return b.String()
}

func (m Model) renderReminderList() string {
	var b strings.Builder
	for i, rem := range m.reminders {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %s", cursor, rem.Text)
		switch {
		case m.session.Active() && rem.ID == m.session.Target():
			// The row under edit keeps its text but hides the stamp.
			line += "  (editing)"
		case !m.session.Interactive(rem.ID):
			line = disabledStyle.Render(line)
		default:
			line += "  " + renderStamp(rem.Date)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderStamp(stamp string) string {
	month, dayYear, ok := reminder.SplitStamp(stamp)
	if !ok {
		return disabledStyle.Render("date missing")
	}
	return monthStyle.Render(month) + " " + dayYear
}

func (m Model) lengthError() string {
	return fmt.Sprintf("Reminders must be between %d and %d characters in length", reminder.MinLength, m.repo.MaxLength())
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • %s delete • %s clear site • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, k.Clear, k.Quit)
}

func indexOf(list []reminder.Reminder, id string) int {
	for i, rem := range list {
		if rem.ID == id {
			return i
		}
	}
	return -1
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
