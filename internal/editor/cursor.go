package editor

import "iter"

func (e *Editor) at(i int) rune {
	r, _ := e.buf.At(i)
	return r
}

// lastNewline returns the offset of the nearest newline strictly before
// scan, or -1 if there is none.
func (e *Editor) lastNewline(scan int) int {
	if n := e.buf.Len(); scan > n {
		scan = n
	}
	for i := scan - 1; i >= 0; i-- {
		if e.at(i) == '\n' {
			return i
		}
	}
	return -1
}

// nextNewline returns the offset of the nearest newline at or after scan,
// or the buffer length if there is none.
func (e *Editor) nextNewline(scan int) int {
	if scan < 0 {
		scan = 0
	}
	n := e.buf.Len()
	for i := scan; i < n; i++ {
		if e.at(i) == '\n' {
			return i
		}
	}
	return n
}

func (e *Editor) lineStart(off int) int {
	return e.lastNewline(off) + 1
}

func (e *Editor) rows() int {
	return e.height / e.lineHeight
}

func (e *Editor) moveLeft() {
	if e.column > 0 {
		e.column--
		e.ins--
	}
	e.goal = e.column
}

func (e *Editor) moveRight() {
	if e.nextNewline(e.ins) > e.ins {
		e.column++
		e.ins++
	}
	e.goal = e.column
}

func (e *Editor) moveUp() {
	if e.line == 0 {
		return
	}
	start := e.lineStart(e.ins)
	prev := e.lineStart(start - 1)
	e.line--
	// start-1 is the newline that ends the previous line
	e.column = min(e.goal, start-1-prev)
	e.ins = prev + e.column
	if e.line < e.top {
		e.scrollUp()
	}
}

func (e *Editor) moveDown() {
	if e.line >= e.totalLines-1 {
		return
	}
	next := e.nextNewline(e.ins) + 1
	end := e.nextNewline(next)
	e.line++
	e.column = min(e.goal, end-next)
	e.ins = next + e.column
	if rows := e.rows(); rows > 0 && e.line-e.top >= rows {
		e.scrollDown()
	}
}

func (e *Editor) scrollUp() {
	if e.top == 0 {
		return
	}
	e.top--
	e.topIns = e.lineStart(e.topIns - 1)
}

func (e *Editor) scrollDown() {
	if e.top >= e.totalLines-1 {
		return
	}
	e.top++
	e.topIns = e.nextNewline(e.topIns) + 1
}

// follow scrolls the viewport until the cursor line is visible.
func (e *Editor) follow() {
	if e.line < e.top {
		e.top = e.line
		e.topIns = e.lineStart(e.ins)
		return
	}
	rows := e.rows()
	if rows <= 0 {
		return
	}
	for e.line-e.top >= rows {
		e.scrollDown()
	}
}

// Resize records the viewport size reported by the display server.
func (e *Editor) Resize(width, height int) {
	e.width = max(width, 0)
	e.height = max(height, 0)
	e.follow()
}

// Click moves the cursor to the character cell under (x, y), clamped to
// the document. It has no effect while a filename is being entered.
func (e *Editor) Click(x, y int) {
	if _, ok := e.mode.(SaveMode); ok {
		return
	}
	target := min(e.top+max(y, 0)/e.lineHeight, e.totalLines-1)
	off := e.topIns
	for l := e.top; l < target; l++ {
		off = e.nextNewline(off) + 1
	}
	length := e.nextNewline(off) - off
	e.line = target
	e.column = min(max(x, 0)/e.charWidth, length)
	e.ins = off + e.column
	e.goal = e.column
	e.follow()
}

// Seek moves the cursor to an absolute offset, clamped to the document.
func (e *Editor) Seek(offset int) {
	offset = min(max(offset, 0), e.buf.Len())
	line := 0
	for i := 0; i < offset; i++ {
		if e.at(i) == '\n' {
			line++
		}
	}
	e.ins = offset
	e.line = line
	e.column = offset - e.lineStart(offset)
	e.goal = e.column
	e.follow()
}

// Lines yields the document one line at a time starting at offset from,
// without line terminators. Each range over the result scans afresh.
func (e *Editor) Lines(from int) iter.Seq[string] {
	return func(yield func(string) bool) {
		n := e.buf.Len()
		pos := max(from, 0)
		for pos < n {
			var line []rune
			for pos < n {
				r := e.at(pos)
				pos++
				if r == '\n' {
					break
				}
				line = append(line, r)
			}
			if !yield(string(line)) {
				return
			}
		}
	}
}
