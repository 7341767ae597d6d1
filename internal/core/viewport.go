package core

// Viewport maps a horizontal world interval in meters onto a range of
// screen columns. The simulation works in continuous coordinates; the
// playback layer uses a viewport to place boxes and the wall on the cell
// grid.
type Viewport struct {
	MinX float64 // World coordinate of the leftmost column
	MaxX float64 // World coordinate just past the rightmost column
	Cols int     // Number of screen columns covered
}

// NewViewport creates a viewport over [minX, maxX) spanning cols columns.
// A degenerate interval is widened by one meter so mapping stays defined.
func NewViewport(minX, maxX float64, cols int) Viewport {
	if maxX <= minX {
		maxX = minX + 1
	}
	if cols < 1 {
		cols = 1
	}
	return Viewport{MinX: minX, MaxX: maxX, Cols: cols}
}

// Col converts a world coordinate to a screen column, clamped to the
// viewport edges.
func (v Viewport) Col(x float64) int {
	scale := float64(v.Cols) / (v.MaxX - v.MinX)
	col := int((x - v.MinX) * scale)
	return Clamp(col, 0, v.Cols-1)
}

// Span converts a world length to a column count, at least 1 so every box
// stays visible regardless of zoom.
func (v Viewport) Span(length float64) int {
	scale := float64(v.Cols) / (v.MaxX - v.MinX)
	w := int(length * scale)
	if w < 1 {
		w = 1
	}
	return w
}
