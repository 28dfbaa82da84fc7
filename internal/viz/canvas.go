package viz

import "strings"

const brailleBlank rune = 0x2800

// dotBits[row][col] is the braille bit for a dot inside one 2x4 cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dots: a canvas of w x h
// cells has 2w x 4h dots. Dots outside the grid are dropped.
type Canvas struct {
	cols, rows int
	cells      []rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *Canvas) dot(x, y int) (idx int, bit rune, ok bool) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return 0, 0, false
	}
	return (y/4)*c.cols + x/2, dotBits[y%4][x%2], true
}

func (c *Canvas) Set(x, y int) {
	if i, bit, ok := c.dot(x, y); ok {
		c.cells[i] |= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	i, bit, ok := c.dot(x, y)
	return ok && c.cells[i]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBlank
	}
}

// FillCircle lights every dot within r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if dx, dy := x-cx, y-cy; dx*dx+dy*dy <= r*r {
				c.Set(x, y)
			}
		}
	}
}

// Line joins two dots (Bresenham).
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Polyline joins consecutive points.
func (c *Canvas) Polyline(pts []point) {
	for i := 1; i < len(pts); i++ {
		c.Line(pts[i-1].x, pts[i-1].y, pts[i].x, pts[i].y)
	}
	if len(pts) == 1 {
		c.Set(pts[0].x, pts[0].y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow((c.cols*3 + 1) * c.rows)
	for r := 0; r < c.rows; r++ {
		b.WriteString(string(c.cells[r*c.cols : (r+1)*c.cols]))
		b.WriteByte('\n')
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
