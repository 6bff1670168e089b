// Package common provides shared styles and utilities for the UI.
package common

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
)

// Lipgloss Styles
var (
	TitleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	BoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	LabelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	HintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	CursorStyle  = lipgloss.NewStyle().Reverse(true)
	GridStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	WallStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	SwampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("64"))
	FlagStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	CreepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("45")).Bold(true)
	ConsoleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
)

// 连接状态颜色
var stateStyles = map[room.ConnectionState]lipgloss.Style{
	room.Disconnected:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	room.Authenticating: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	room.Connected:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
	room.Error:          lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// StateStyle 返回连接状态的显示样式
func StateStyle(state room.ConnectionState) lipgloss.Style {
	if s, ok := stateStyles[state]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

// EntryStyle 返回格子最上层元素的显示样式
func EntryStyle(e visual.Entry) lipgloss.Style {
	switch e.Kind {
	case visual.KindTerrain:
		if e.Terrain == visual.TerrainWall {
			return WallStyle
		}
		return SwampStyle
	case visual.KindFlag:
		return FlagStyle
	default:
		if e.Object != nil && (e.Object.Type == room.TypeCreep || e.Object.Type == room.TypePowerCreep) {
			return CreepStyle
		}
		return GridStyle
	}
}
