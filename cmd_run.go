package main

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m *model) runCommand() tea.Cmd {
	buf := strings.TrimSpace(m.ui.command.buf)
	switch m.ui.command.cmd {
	case CmdJump:
		if n, err := strconv.Atoi(buf); err == nil {
			return m.jumpToLine(n)
		}
		return m.startNotice("Invalid row number", "warn", noticeDuration)

	case CmdCountry:
		return m.addCountry(buf)

	case CmdWhere:
		return m.setWhere(buf)
	}
	return nil
}

func (m *model) exitCommandMode() {
	m.ui.command = CommandInput{}
	m.ui.mode = modeView
}

func (m *model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.exitCommandMode()
		return m, nil

	case tea.KeyEnter:
		cmd := m.runCommand()
		m.exitCommandMode()
		m.refreshView()
		return m, cmd

	case tea.KeyBackspace:
		if r := []rune(m.ui.command.buf); len(r) > 0 {
			m.ui.command.buf = string(r[:len(r)-1])
		}
		return m, nil

	case tea.KeySpace:
		m.ui.command.buf += " "
		return m, nil

	case tea.KeyRunes:
		m.ui.command.buf += string(msg.Runes)
	}
	return m, nil
}
