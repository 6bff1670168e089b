// Package view provides UI rendering functions.
package view

import (
	"strings"

	"github.com/palemoky/room-viewer/internal/room"
	"github.com/palemoky/room-viewer/internal/room/visual"
	"github.com/palemoky/room-viewer/internal/ui/common"
)

// 房间网格的位置：圆角边框占一行一列
const (
	GridOriginX = 1
	GridOriginY = 1
	GridWidth   = room.Size + 2
	GridHeight  = room.Size + 2
)

// CellAt 把终端坐标换算成房间坐标
func CellAt(col, row int) (x, y int, ok bool) {
	x, y = col-GridOriginX, row-GridOriginY
	if x < 0 || y < 0 || x >= room.Size || y >= room.Size {
		return 0, 0, false
	}
	return x, y, true
}

// Grid 渲染房间网格，光标所在格反色显示。r 为 nil 时显示空网格。
func Grid(r *visual.Room, cursorX, cursorY int) string {
	var sb strings.Builder
	for y := 0; y < room.Size; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		if r == nil {
			sb.WriteString(gridRow(nil, y, cursorX, cursorY))
			continue
		}
		if y != cursorY {
			// 非光标行直接使用预先生成的行字符串
			sb.WriteString(common.GridStyle.Render(r.Rows[y]))
			continue
		}
		sb.WriteString(gridRow(r, y, cursorX, cursorY))
	}
	return common.BoxStyle.Render(sb.String())
}

// gridRow 逐格渲染一行
func gridRow(r *visual.Room, y, cursorX, cursorY int) string {
	var sb strings.Builder
	for x := 0; x < room.Size; x++ {
		glyph, style := visual.Blank, common.GridStyle
		if r != nil {
			if top, ok := r.Top(x, y); ok {
				glyph, style = top.Glyph(), common.EntryStyle(top)
			}
		}
		if x == cursorX && y == cursorY {
			style = common.CursorStyle
		}
		sb.WriteString(style.Render(glyph))
	}
	return sb.String()
}
