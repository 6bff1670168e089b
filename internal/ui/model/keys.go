package model

import "github.com/charmbracelet/bubbles/key"

// keyMap 键位绑定
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Command   key.Binding
	Reconnect key.Binding
	Shards    key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "上")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "下")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "左")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "右")),
		Command:   key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "命令")),
		Reconnect: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "重连")),
		Shards:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "分片列表")),
		ScrollUp:  key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "日志上翻")),
		ScrollDn:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "日志下翻")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "帮助")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Command, k.Reconnect, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Command, k.Reconnect, k.Shards},
		{k.ScrollUp, k.ScrollDn, k.Help, k.Quit},
	}
}
