package geom

import "math"

// FaceNormal returns the unnormalized normal of a counter-clockwise triangle.
func FaceNormal(a, b, c *Vector3) *Vector3 {
	return b.Sub(a).Cross(c.Sub(a))
}

// PolygonNormal returns the Newell normal of a polygon. The length is twice the area.
func PolygonNormal(poly []*Vector3) *Vector3 {
	n := &Vector3{}
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

// projectPolygon drops the dominant axis of normal so that the projected
// polygon keeps counter-clockwise winding.
func projectPolygon(poly []*Vector3, normal *Vector3) []*Vector2 {
	ax, ay, az := math.Abs(float64(normal.X)), math.Abs(float64(normal.Y)), math.Abs(float64(normal.Z))
	pts := make([]*Vector2, len(poly))
	for i, p := range poly {
		switch {
		case ax >= ay && ax >= az:
			pts[i] = NewVector2(p.Y, p.Z)
			if normal.X < 0 {
				pts[i].X = -pts[i].X
			}
		case ay >= az:
			pts[i] = NewVector2(p.Z, p.X)
			if normal.Y < 0 {
				pts[i].X = -pts[i].X
			}
		default:
			pts[i] = NewVector2(p.X, p.Y)
			if normal.Z < 0 {
				pts[i].X = -pts[i].X
			}
		}
	}
	return pts
}

// isInTriangle includes the edges of a counter-clockwise triangle.
func isInTriangle(p, a, b, c *Vector2) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0 && c.Sub(b).Cross(p.Sub(b)) >= 0 && a.Sub(c).Cross(p.Sub(c)) >= 0
}

// Triangulate splits a planar polygon into triangles by ear clipping.
// Self-intersecting input falls back to a fan over the remaining vertices.
func Triangulate(poly []*Vector3) [][3]int {
	if len(poly) < 3 {
		return nil
	}
	pts := projectPolygon(poly, PolygonNormal(poly))
	remain := make([]int, len(pts))
	for i := range remain {
		remain[i] = i
	}

	var tris [][3]int
	for len(remain) > 3 {
		ear := -1
		for i := range remain {
			prev, cur, next := remain[(i+len(remain)-1)%len(remain)], remain[i], remain[(i+1)%len(remain)]
			a, b, c := pts[prev], pts[cur], pts[next]
			if b.Sub(a).Cross(c.Sub(b)) <= 0 {
				continue
			}
			inside := false
			for _, j := range remain {
				if j != prev && j != cur && j != next && isInTriangle(pts[j], a, b, c) {
					inside = true
					break
				}
			}
			if !inside {
				ear = i
				tris = append(tris, [3]int{prev, cur, next})
				break
			}
		}
		if ear < 0 {
			break
		}
		remain = append(remain[:ear], remain[ear+1:]...)
	}
	for i := 1; i+1 < len(remain); i++ {
		tris = append(tris, [3]int{remain[0], remain[i], remain[i+1]})
	}
	return tris
}
