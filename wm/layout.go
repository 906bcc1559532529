package wm

// Rect is a screen rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Arrange returns one rectangle per client for the named layout. Unknown
// layouts arrange like main-stack.
//
// main-stack puts the first mainCount clients in a left column that is
// ratio of the area wide and stacks the rest on the right. Each column is
// split evenly top to bottom. monocle gives every client the whole area.
func Arrange(layout string, area Rect, n, mainCount int, ratio float64) []Rect {
	if n <= 0 {
		return nil
	}
	if layout == LayoutMonocle {
		rs := make([]Rect, n)
		for i := range rs {
			rs[i] = area
		}
		return rs
	}
	if mainCount <= 0 || mainCount >= n {
		return column(area, n)
	}
	mainW := int(float64(area.W) * ratio)
	left := Rect{X: area.X, Y: area.Y, W: mainW, H: area.H}
	right := Rect{X: area.X + mainW, Y: area.Y, W: area.W - mainW, H: area.H}
	return append(column(left, mainCount), column(right, n-mainCount)...)
}

// column splits r into n rows. Rounding goes to the lower rows so the
// rows tile r exactly.
func column(r Rect, n int) []Rect {
	rs := make([]Rect, n)
	for i := range rs {
		i0 := (i + 0) * r.H / n
		i1 := (i + 1) * r.H / n
		rs[i] = Rect{X: r.X, Y: r.Y + i0, W: r.W, H: i1 - i0}
	}
	return rs
}
