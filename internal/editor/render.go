package editor

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/cwbriones/editor/internal/protocol"
)

const savePrompt = "Save to file: "

// Display receives drawing primitives. protocol.Client is the production
// implementation.
type Display interface {
	Clear() error
	Text(x, y int, color protocol.Color, s string) error
	Rect(x, y, width, height int, color protocol.Color) error
}

// Render redraws the whole viewport: clear, visible lines top to bottom,
// caret, status overlay, then the save prompt when one is open.
func (e *Editor) Render(d Display) error {
	if err := d.Clear(); err != nil {
		return err
	}
	rows := e.rows()
	row := 0
	for text := range e.Lines(e.topIns) {
		if row >= rows {
			break
		}
		if err := d.Text(0, row*e.lineHeight, e.theme.Text, text); err != nil {
			return err
		}
		row++
	}
	caretX := e.column * e.charWidth
	caretY := (e.line - e.top) * e.lineHeight
	if err := d.Rect(caretX, caretY, 1, e.lineHeight, e.theme.Caret); err != nil {
		return err
	}
	if err := e.renderStatus(d); err != nil {
		return err
	}
	if m, ok := e.mode.(SaveMode); ok {
		return e.renderPrompt(d, rows, m.Filename)
	}
	return nil
}

func (e *Editor) renderStatus(d Display) error {
	cursor := fmt.Sprintf("L %d/%d : %d %d", e.line+1, e.totalLines, e.column, e.line-e.top)
	insert := fmt.Sprintf("I%d", e.ins)
	x := max(e.width-e.charWidth*uniseg.StringWidth(cursor), 0)
	if err := d.Text(x, 0, e.theme.Text, cursor); err != nil {
		return err
	}
	return d.Text(x, e.lineHeight, e.theme.Text, insert)
}

func (e *Editor) renderPrompt(d Display, rows int, filename string) error {
	y := 0
	if rows > 0 {
		y = (rows - 1) * e.lineHeight
	}
	if err := d.Rect(0, y, e.width, e.lineHeight, e.theme.Overlay); err != nil {
		return err
	}
	return d.Text(0, y, e.theme.Text, savePrompt+filename)
}
