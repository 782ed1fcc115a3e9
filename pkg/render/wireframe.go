package render

// DrawTriangleEdges draws the three edges of a screen-space triangle.
// Lines are clipped per pixel, so partially visible edges are drawn.
func DrawTriangleEdges(fb *Framebuffer, p [3]ScreenVertex, c Color) {
	fb.DrawLine(p[0].X, p[0].Y, p[1].X, p[1].Y, c)
	fb.DrawLine(p[0].X, p[0].Y, p[2].X, p[2].Y, c)
	fb.DrawLine(p[1].X, p[1].Y, p[2].X, p[2].Y, c)
}
