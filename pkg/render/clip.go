package render

import (
	"github.com/taigrr/sftrender/pkg/math3d"
)

// Triangle is three vertices with their texture weights. Vertex i always
// pairs with UV i; every swap and clip moves them together.
type Triangle struct {
	V  [3]math3d.Vec4
	UV [3]math3d.UVW
}

// Plane is a clipping half-space given by a point on the plane and a normal
// pointing into the kept side. The normal does not need unit length: only
// the sign of the distance and the intersection parameter are used, and
// both are invariant under scaling.
type Plane struct {
	Point  math3d.Vec4
	Normal math3d.Vec4
}

// Distance returns the signed distance n·v - n·Point, scaled by |n|.
// Points with Distance >= 0 are inside.
func (p Plane) Distance(v math3d.Vec4) float64 {
	return p.Normal.Dot(v) - p.Normal.Dot(p.Point)
}

// IntersectPlane returns the point where the segment start→end crosses the
// plane, and the parameter t with point = start + (end-start)*t.
//
// A segment parallel to the plane divides by zero; the resulting Inf/NaN is
// returned as-is.
func IntersectPlane(p Plane, start, end math3d.Vec4) (math3d.Vec4, float64) {
	planeD := -p.Normal.Dot(p.Point)
	ad := start.Dot(p.Normal)
	bd := end.Dot(p.Normal)
	t := (-planeD - ad) / (bd - ad)
	return start.Lerp(end, t), t
}

// ClipTriangle clips tri against the half-space p and returns how many of
// the two output triangles are valid (0, 1 or 2).
//
// A triangle fully inside is returned unchanged. One vertex inside yields a
// smaller triangle; two inside yields a quad split into two triangles that
// share the first intersection vertex (position and UVW copied exactly).
func ClipTriangle(p Plane, tri Triangle) (int, [2]Triangle) {
	var (
		in, out     [3]math3d.Vec4
		inUV, outUV [3]math3d.UVW
		nIn, nOut   int
		res         [2]Triangle
	)

	for i := range 3 {
		if p.Distance(tri.V[i]) >= 0 {
			in[nIn], inUV[nIn] = tri.V[i], tri.UV[i]
			nIn++
		} else {
			out[nOut], outUV[nOut] = tri.V[i], tri.UV[i]
			nOut++
		}
	}

	switch nIn {
	case 0:
		return 0, res

	case 3:
		res[0] = tri
		return 1, res

	case 1:
		ot := &res[0]
		ot.V[0], ot.UV[0] = in[0], inUV[0]

		v, t := IntersectPlane(p, in[0], out[0])
		ot.V[1], ot.UV[1] = v, inUV[0].Lerp(outUV[0], t)

		v, t = IntersectPlane(p, in[0], out[1])
		ot.V[2], ot.UV[2] = v, inUV[0].Lerp(outUV[1], t)
		return 1, res

	default: // 2 inside
		a, b := &res[0], &res[1]

		a.V[0], a.UV[0] = in[0], inUV[0]
		a.V[1], a.UV[1] = in[1], inUV[1]
		v, t := IntersectPlane(p, in[0], out[0])
		a.V[2], a.UV[2] = v, inUV[0].Lerp(outUV[0], t)

		// The second triangle reuses a's new vertex verbatim, UV included.
		b.V[0], b.UV[0] = in[1], inUV[1]
		b.V[1], b.UV[1] = a.V[2], a.UV[2]
		v, t = IntersectPlane(p, in[1], out[0])
		b.V[2], b.UV[2] = v, inUV[1].Lerp(outUV[0], t)
		return 2, res
	}
}

// Screen edge indices into ScreenPlanes, in clipping order.
const (
	EdgeTop = iota
	EdgeBottom
	EdgeLeft
	EdgeRight
)

// ScreenPlanes returns the four screen-edge half-spaces for a width×height
// target, with normals pointing inward. Bottom sits on the last row
// (height-1), right on width; span fills are exclusive of their right end,
// so both keep every pixel write inside the buffer once coordinates are
// rounded.
func ScreenPlanes(width, height int) [4]Plane {
	w, h := float64(width), float64(height)
	return [4]Plane{
		EdgeTop:    {Point: math3d.P4(0, 0, 0), Normal: math3d.P4(0, 1, 0)},
		EdgeBottom: {Point: math3d.P4(0, h-1, 0), Normal: math3d.P4(0, -1, 0)},
		EdgeLeft:   {Point: math3d.P4(0, 0, 0), Normal: math3d.P4(1, 0, 0)},
		EdgeRight:  {Point: math3d.P4(w, 0, 0), Normal: math3d.P4(-1, 0, 0)},
	}
}

// NearPlane returns the view-space near clipping half-space z >= dist.
func NearPlane(dist float64) Plane {
	return Plane{Point: math3d.P4(0, 0, dist), Normal: math3d.P4(0, 0, 1)}
}

// clipAll clips every triangle in src against each plane in turn, reusing
// the two scratch slices. The returned slice aliases one of them.
func clipAll(planes []Plane, src []Triangle, scratch *[2][]Triangle) []Triangle {
	cur := append(scratch[0][:0], src...)
	next := scratch[1][:0]
	for _, p := range planes {
		next = next[:0]
		for _, tri := range cur {
			n, out := ClipTriangle(p, tri)
			next = append(next, out[:n]...)
		}
		cur, next = next, cur
	}
	scratch[0], scratch[1] = cur, next
	return cur
}
