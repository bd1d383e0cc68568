package ui

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

var (
	styleDefault = tcell.StyleDefault
	styleMark    = tcell.StyleDefault.Reverse(true)
	styleStatus  = tcell.StyleDefault.Reverse(true)
	styleOverlay = tcell.StyleDefault.Background(tcell.ColorDarkBlue).
			Foreground(tcell.ColorWhite)
	styleSelected = tcell.StyleDefault.Background(tcell.ColorWhite).
			Foreground(tcell.ColorBlack)
)

// draw repaints the whole screen: text area, status line, and the
// completion popup when one is open.
func (u *UI) draw() {
	u.screen.Clear()

	width, height := u.screen.Size()
	textHeight := height - 1
	if textHeight < 1 {
		u.screen.Show()
		return
	}

	buf := u.session.Buffer()
	cursor := buf.OffsetToPosition(u.session.Cursor())
	u.scrollTo(cursor.Line-1, textHeight)

	mark, marked := buf.Mark()
	lines := buf.Lines()

	// Glyphs are placed one screen column per rune; cursor.Col is a byte
	// offset and must be converted before it anchors anything on screen.
	cursorCol := 0
	if cursor.Line-1 < len(lines) {
		cursorCol = runeColumn(lines[cursor.Line-1], cursor.Col)
	}

	for row := 0; row < textHeight; row++ {
		lineIdx := u.scroll + row
		if lineIdx >= len(lines) {
			break
		}
		lineStart, err := buf.LineStart(lineIdx + 1)
		if err != nil {
			break
		}

		col := 0
		for i, r := range lines[lineIdx] {
			if col >= width {
				break
			}
			style := styleDefault
			if off := lineStart + i; marked && off >= mark.Start && off < mark.End {
				style = styleMark
			}
			u.screen.SetContent(col, row, r, nil, style)
			col++
		}
	}

	u.drawStatus(width, height-1, cursor.Line, cursorCol)
	u.drawOverlay(width, textHeight, cursor.Line-1-u.scroll, cursorCol)

	if u.prompt != nil {
		u.screen.ShowCursor(len(u.prompt.label)+len(u.prompt.input), height-1)
	} else {
		u.screen.ShowCursor(cursorCol, cursor.Line-1-u.scroll)
	}

	u.screen.Show()
}

// runeColumn converts a byte offset within line to a rune count, the
// screen column the glyph loop would reach at that offset.
func runeColumn(line string, byteCol int) int {
	if byteCol > len(line) {
		byteCol = len(line)
	}
	return utf8.RuneCountInString(line[:byteCol])
}

// scrollTo keeps the cursor line inside the viewport.
func (u *UI) scrollTo(line, textHeight int) {
	if line < u.scroll {
		u.scroll = line
	}
	if line >= u.scroll+textHeight {
		u.scroll = line - textHeight + 1
	}
}

func (u *UI) drawStatus(width, row, line, col int) {
	name := u.session.FilePath()
	if name == "" {
		name = "[No Name]"
	}
	if u.session.Modified() {
		name += " *"
	}

	left := fmt.Sprintf(" %s | Ln %d, Col %d ", name, line, col+1)
	right := u.message
	if u.prompt != nil {
		right = u.prompt.label + u.prompt.input
	}

	text := left
	if right != "" {
		text = left + "| " + right
	}

	col = 0
	for _, r := range text {
		if col >= width {
			break
		}
		u.screen.SetContent(col, row, r, nil, styleStatus)
		col++
	}
	for ; col < width; col++ {
		u.screen.SetContent(col, row, ' ', nil, styleStatus)
	}
}

// drawOverlay paints the completion popup just below the cursor,
// flipping above it when there is no room.
func (u *UI) drawOverlay(width, textHeight, cursorRow, cursorCol int) {
	o := u.session.Overlay()
	if o == nil {
		return
	}

	candidates := o.Candidates()
	rows := len(candidates)
	if rows > maxOverlayRows {
		rows = maxOverlayRows
	}

	boxWidth := 0
	for _, c := range candidates {
		if len(c) > boxWidth {
			boxWidth = len(c)
		}
	}
	boxWidth += 2

	top := cursorRow + 1
	if top+rows > textHeight && cursorRow-rows >= 0 {
		top = cursorRow - rows
	}
	left := cursorCol
	if left+boxWidth > width {
		left = width - boxWidth
	}
	if left < 0 {
		left = 0
	}

	// Keep the selection visible when the list is longer than the box.
	first := 0
	if sel := o.Selected(); sel >= rows {
		first = sel - rows + 1
	}

	u.popup.left = left
	u.popup.top = top
	u.popup.width = boxWidth
	u.popup.rows = rows
	u.popup.firstRow = first

	for i := 0; i < rows; i++ {
		idx := first + i
		style := styleOverlay
		if idx == o.Selected() {
			style = styleSelected
		}

		text := " " + candidates[idx]
		col := 0
		for _, r := range text {
			if col >= boxWidth {
				break
			}
			u.screen.SetContent(left+col, top+i, r, nil, style)
			col++
		}
		for ; col < boxWidth; col++ {
			u.screen.SetContent(left+col, top+i, ' ', nil, style)
		}
	}
}
