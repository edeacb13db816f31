package main

type Command int

const (
	CmdNone Command = iota
	CmdWhere
	CmdCountry
	CmdJump
)

type CommandInput struct {
	cmd Command
	buf string
}

func (m *model) commandBadge(cmd Command) string {
	switch cmd {
	case CmdWhere:
		return "[WHERE]"
	case CmdCountry:
		return "[COUNTRY]"
	case CmdJump:
		return "[JUMP]"
	default:
		return "[NORMAL]"
	}
}

func (m *model) commandPrompt(cmd Command) string {
	switch cmd {
	case CmdWhere:
		return "where: "
	case CmdCountry:
		return "add country: "
	case CmdJump:
		return "row: "
	default:
		return ""
	}
}

// activeCommandLine returns the command prompt text for the footer.
func (m *model) activeCommandLine() string {
	badge := m.commandBadge(m.ui.command.cmd)
	prompt := m.commandPrompt(m.ui.command.cmd)
	return badge + " " + prompt + m.ui.command.buf + "▏"
}

func (m *model) enterCommandMode(cmd Command, initial string) {
	m.ui.mode = modeCommand
	m.ui.command = CommandInput{cmd: cmd, buf: initial}
}
