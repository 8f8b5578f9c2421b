// pkg/physics/motion.go
package physics

// WallContact describes one world edge touched while resolving a bounce.
type WallContact struct {
	Point  Vector2D // where the body met the edge
	Normal Vector2D // edge normal pointing into the world
}

// Integrate advances a body by one explicit Euler step. Acceleration is
// applied to the velocity before the position moves.
func Integrate(pos, vel, accel Vector2D, deltaTime float64) (Vector2D, Vector2D) {
	vel = vel.Add(accel.Scale(deltaTime))
	pos = pos.Add(vel.Scale(deltaTime))
	return pos, vel
}

// BounceInside keeps a body of half-size extent inside bounds. Each axis is
// handled independently: a body crossing an edge is clamped onto it and, if it
// is still moving outward, its velocity is reflected on the edge normal.
func BounceInside(pos, vel Vector2D, extent float64, bounds Rect) (Vector2D, Vector2D, []WallContact) {
	lo, hi := bounds.Min(), bounds.Max()
	var contacts []WallContact

	hit := func(normal Vector2D) {
		if vel.Dot(normal) < 0 {
			vel = vel.Reflect(normal)
		}
		contacts = append(contacts, WallContact{Point: pos.Sub(normal.Scale(extent)), Normal: normal})
	}

	switch {
	case pos.X-extent < lo.X:
		pos.X = lo.X + extent
		hit(Vector2D{X: 1})
	case pos.X+extent > hi.X:
		pos.X = hi.X - extent
		hit(Vector2D{X: -1})
	}

	switch {
	case pos.Y-extent < lo.Y:
		pos.Y = lo.Y + extent
		hit(Vector2D{Y: 1})
	case pos.Y+extent > hi.Y:
		pos.Y = hi.Y - extent
		hit(Vector2D{Y: -1})
	}

	return pos, vel, contacts
}

// Exits reports whether a body of half-size extent has crossed any edge of bounds.
func Exits(pos Vector2D, extent float64, bounds Rect) bool {
	return !bounds.ContainsExtent(pos, extent)
}
