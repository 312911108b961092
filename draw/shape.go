package draw

import (
	"image"
	"image/color"
)

// Line draws a line between two points, both inclusive.
//
// Line(a, b) and Line(b, a) plot the same pixels.
func Line(dst Image, a, b image.Point, c color.Color) {
	bresenham(plotter(dst, c), a.X, a.Y, b.X, b.Y)
}

// HorizontalLine draws a line between (x,y) and (x+w-1,y).
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	if w > 0 {
		bresenham(plotter(dst, c), x, y, x+w-1, y)
	}
}

// VerticalLine draws a line between (x,y) and (x,y+h-1).
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	if h > 0 {
		bresenham(plotter(dst, c), x, y, x, y+h-1)
	}
}

// Rectangle draws the outline of the pixels covered by rect.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon()
	if rect.Empty() {
		return
	}
	var (
		set    = plotter(dst, c)
		x0, y0 = rect.Min.X, rect.Min.Y
		x1, y1 = rect.Max.X - 1, rect.Max.Y - 1
	)
	bresenham(set, x0, y0, x1, y0)
	bresenham(set, x0, y1, x1, y1)
	bresenham(set, x0, y0, x0, y1)
	bresenham(set, x1, y0, x1, y1)
}

// RoundedRectangle draws a rectangle with radius pixels rounded corners.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	var (
		r = clampRadius(rect, radius)
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	if r == 0 {
		Rectangle(dst, rect, c)
		return
	}
	HorizontalLine(dst, x+r, y, w-2*r, c)
	HorizontalLine(dst, x+r, y+h-1, w-2*r, c)
	VerticalLine(dst, x, y+r, h-2*r, c)
	VerticalLine(dst, x+w-1, y+r, h-2*r, c)
	set := plotter(dst, c)
	roundedCorner(set, x+0+r+0, y+0+r+0, r, 1)
	roundedCorner(set, x+w-r-1, y+0+r+0, r, 2)
	roundedCorner(set, x+w-r-1, y+h-r-1, r, 4)
	roundedCorner(set, x+0+r+0, y+h-r-1, r, 8)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	rect = rect.Canon().Intersect(dst.Bounds())
	set := plotter(dst, c)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			set(x, y)
		}
	}
}

// RoundedBox draws a filled rectangle with radius pixels rounded corners.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	rect = rect.Canon()
	var (
		r = clampRadius(rect, radius)
		x = rect.Min.X
		y = rect.Min.Y
		w = rect.Dx()
		h = rect.Dy()
	)
	Box(dst, image.Rect(x+r, y, x+w-r, y+h), c)
	if r == 0 {
		return
	}
	set := plotter(dst, c)
	filledRoundedCorner(set, x+w-r-1, y+r, r, 1, h-2*r-1)
	filledRoundedCorner(set, x+r, y+r, r, 2, h-2*r-1)
}

// Triangle draws the outline of the triangle a, b, p.
func Triangle(dst Image, a, b, p image.Point, c color.Color) {
	set := plotter(dst, c)
	bresenham(set, a.X, a.Y, b.X, b.Y)
	bresenham(set, b.X, b.Y, p.X, p.Y)
	bresenham(set, p.X, p.Y, a.X, a.Y)
}

// FilledTriangle draws the triangle a, b, p including its interior.
func FilledTriangle(dst Image, a, b, p image.Point, c color.Color) {
	Triangle(dst, a, b, p, c)

	var (
		set    = plotter(dst, c)
		bounds = image.Rectangle{Min: a, Max: a.Add(image.Pt(1, 1))}.
			Union(image.Rectangle{Min: b, Max: b.Add(image.Pt(1, 1))}).
			Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))}).
			Intersect(dst.Bounds())
		area = edge(a, b, p)
	)
	if area == 0 {
		return
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			q := image.Pt(x, y)
			w0, w1, w2 := edge(b, p, q), edge(p, a, q), edge(a, b, q)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				set(x, y)
			}
		}
	}
}

// edge is twice the signed area of the triangle a, b, q.
func edge(a, b, q image.Point) int {
	return (b.X-a.X)*(q.Y-a.Y) - (b.Y-a.Y)*(q.X-a.X)
}

// Circle draws a circle outline using the midpoint algorithm.
func Circle(dst Image, center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	var (
		set    = plotter(dst, c)
		cx, cy = center.X, center.Y
		x, y   = radius, 0
		err    = 1 - radius
	)
	for x >= y {
		set(cx+x, cy+y)
		set(cx+y, cy+x)
		set(cx-y, cy+x)
		set(cx-x, cy+y)
		set(cx-x, cy-y)
		set(cx-y, cy-x)
		set(cx+y, cy-x)
		set(cx+x, cy-y)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// Disc draws a filled circle.
func Disc(dst Image, center image.Point, radius int, c color.Color) {
	if radius < 0 {
		return
	}
	var (
		set    = plotter(dst, c)
		cx, cy = center.X, center.Y
		x, y   = radius, 0
		err    = 1 - radius
	)
	for x >= y {
		bresenham(set, cx-x, cy+y, cx+x, cy+y)
		bresenham(set, cx-x, cy-y, cx+x, cy-y)
		bresenham(set, cx-y, cy+x, cx+y, cy+x)
		bresenham(set, cx-y, cy-x, cx+y, cy-x)

		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

func clampRadius(rect image.Rectangle, radius int) int {
	if radius < 0 {
		return 0
	}
	if limit := min(rect.Dx(), rect.Dy()) / 2; radius > limit {
		return limit
	}
	return radius
}

func roundedCorner(set func(x, y int), x0, y0, radius, quadrant int) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrant&4 != 0 {
			set(x0+x, y0+y)
			set(x0+y, y0+x)
		}
		if quadrant&2 != 0 {
			set(x0+x, y0-y)
			set(x0+y, y0-x)
		}
		if quadrant&8 != 0 {
			set(x0-y, y0+x)
			set(x0-x, y0+y)
		}
		if quadrant&1 != 0 {
			set(x0-y, y0-x)
			set(x0-x, y0-y)
		}
	}
}

func filledRoundedCorner(set func(x, y int), x0, y0, radius, quadrant, delta int) {
	var (
		f    = 1 - radius
		ddFx = 1
		ddFy = -2 * radius
		x    = 0
		y    = radius
	)
	span := func(x, y, h int) {
		if h > 0 {
			bresenham(set, x, y, x, y+h-1)
		}
	}
	for x < y {
		if f >= 0 {
			y--
			ddFy += 2
			f += ddFy
		}

		x++
		ddFx += 2
		f += ddFx

		if quadrant&1 != 0 {
			span(x0+x, y0-y, 2*y+1+delta)
			span(x0+y, y0-x, 2*x+1+delta)
		}

		if quadrant&2 != 0 {
			span(x0-x, y0-y, 2*y+1+delta)
			span(x0-y, y0-x, 2*x+1+delta)
		}
	}
}

// Generalized with integer
func bresenham(set func(x, y int), x1, y1, x2, y2 int) {
	var dx, dy, e, slope int

	// Because drawing p1 -> p2 is equivalent to draw p2 -> p1,
	// I sort points in x-axis order to handle only half of possible cases.
	if x1 > x2 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}

	dx, dy = x2-x1, y2-y1
	// Because point is x-axis ordered, dx cannot be negative
	if dy < 0 {
		dy = -dy
	}

	switch {

	// Is line a point ?
	case x1 == x2 && y1 == y2:
		set(x1, y1)

	// Is line an horizontal ?
	case y1 == y2:
		for ; dx != 0; dx-- {
			set(x1, y1)
			x1++
		}
		set(x1, y1)

	// Is line a vertical ?
	case x1 == x2:
		if y1 > y2 {
			y1 = y2
		}
		for ; dy != 0; dy-- {
			set(x1, y1)
			y1++
		}
		set(x1, y1)

	// Is line a diagonal ?
	case dx == dy:
		if y1 < y2 {
			for ; dx != 0; dx-- {
				set(x1, y1)
				x1++
				y1++
			}
		} else {
			for ; dx != 0; dx-- {
				set(x1, y1)
				x1++
				y1--
			}
		}
		set(x1, y1)

	// wider than high ?
	case dx > dy:
		dy, e, slope = 2*dy, dx, 2*dx
		step := 1
		if y1 > y2 {
			step = -1
		}
		for ; dx != 0; dx-- {
			set(x1, y1)
			x1++
			e -= dy
			if e < 0 {
				y1 += step
				e += slope
			}
		}
		set(x2, y2)

	// higher than wide.
	default:
		dx, e, slope = 2*dx, dy, 2*dy
		step := 1
		if y1 > y2 {
			step = -1
		}
		for ; dy != 0; dy-- {
			set(x1, y1)
			y1 += step
			e -= dx
			if e < 0 {
				x1++
				e += slope
			}
		}
		set(x2, y2)
	}
}
