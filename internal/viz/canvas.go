package viz

import (
	"strings"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille sub-pixel canvas: each terminal cell packs 2x4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
	return c
}

// Set lights a dot at (x, y) in sub-pixel coordinates. The canvas size in
// sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// Clear resets the canvas.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

// DrawRect outlines an axis-aligned rectangle in sub-pixel coordinates.
func (c *Canvas) DrawRect(x0, y0, x1, y1 int) {
	for x := x0; x <= x1; x++ {
		c.Set(x, y0)
		c.Set(x, y1)
	}
	for y := y0; y <= y1; y++ {
		c.Set(x0, y)
		c.Set(x1, y)
	}
}

// FillCircle fills a disc centered at (cx, cy) in sub-pixel coordinates.
func (c *Canvas) FillCircle(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// DrawCircle outlines a circle centered at (cx, cy).
func (c *Canvas) DrawCircle(cx, cy, r int) {
	x, y, err := r, 0, 0
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
