package model

import "strings"

// MaxConsoleLines 控制台最多保留的行数，超出时丢弃最旧的
const MaxConsoleLines = 2000

// appendConsole 追加一行日志；如果视图原本在底部则继续跟随
func (m *Model) appendConsole(line string) {
	follow := m.console.AtBottom()

	m.lines = append(m.lines, strings.TrimRight(line, "\n"))
	if over := len(m.lines) - MaxConsoleLines; over > 0 {
		m.lines = append(m.lines[:0], m.lines[over:]...)
	}

	m.console.SetContent(strings.Join(m.lines, "\n"))
	if follow {
		m.console.GotoBottom()
	}
}

// ConsoleLines 返回控制台内容
func (m *Model) ConsoleLines() []string {
	return m.lines
}
