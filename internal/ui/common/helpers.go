package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate 把每一行截断到 width 个终端列，超出部分以省略号结尾
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if ansi.StringWidth(line) > width {
			lines[i] = ansi.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

// Clamp 把 v 限制在 [lo, hi]
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
