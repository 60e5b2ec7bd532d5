// Package mirror draws the display protocol's primitives onto a local
// terminal, one character cell per charWidth x lineHeight block of the
// remote surface.
package mirror

import (
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/cwbriones/editor/internal/protocol"
)

type Screen struct {
	s          tcell.Screen
	charWidth  int
	lineHeight int
	base       tcell.Style
}

// Open initializes the controlling terminal.
func Open(charWidth, lineHeight int) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return New(s, charWidth, lineHeight), nil
}

// New wraps an initialized screen.
func New(s tcell.Screen, charWidth, lineHeight int) *Screen {
	return &Screen{
		s:          s,
		charWidth:  max(charWidth, 1),
		lineHeight: max(lineHeight, 1),
		base:       tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite),
	}
}

func (m *Screen) cell(x, y int) (int, int) {
	return x / m.charWidth, y / m.lineHeight
}

func (m *Screen) Clear() error {
	m.s.SetStyle(m.base)
	m.s.Clear()
	return nil
}

func (m *Screen) Text(x, y int, color protocol.Color, s string) error {
	col, row := m.cell(x, y)
	style := m.base.Foreground(parseColor(color, tcell.ColorBlack))
	for _, r := range s {
		m.s.SetContent(col, row, r, nil, style)
		col++
	}
	return nil
}

// Rect paints the background of every cell the rectangle touches, keeping
// whatever character is already there.
func (m *Screen) Rect(x, y, width, height int, color protocol.Color) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	bg := parseColor(color, tcell.ColorBlack)
	col0, row0 := m.cell(x, y)
	col1 := (x + width + m.charWidth - 1) / m.charWidth
	row1 := (y + height + m.lineHeight - 1) / m.lineHeight
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			r, comb, style, _ := m.s.GetContent(col, row)
			if r == 0 {
				r = ' '
			}
			m.s.SetContent(col, row, r, comb, style.Background(bg))
		}
	}
	return nil
}

// Show makes the primitives drawn since the last Show visible.
func (m *Screen) Show() {
	m.s.Show()
}

func (m *Screen) Close() error {
	m.s.Fini()
	return nil
}

func parseColor(c protocol.Color, fallback tcell.Color) tcell.Color {
	name := string(c)
	if len(name) != 7 || name[0] != '#' {
		return fallback
	}
	r, err1 := strconv.ParseInt(name[1:3], 16, 32)
	g, err2 := strconv.ParseInt(name[3:5], 16, 32)
	b, err3 := strconv.ParseInt(name[5:7], 16, 32)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
