// pkg/physics/collision.go
package physics

// Circle represents a circular collision shape
type Circle struct {
	Center Vector2D
	Radius float64
}

// Collides checks if two circles overlap. Touching circles do not collide.
func (c Circle) Collides(other Circle) bool {
	r := c.Radius + other.Radius
	return c.Center.Sub(other.Center).LengthSquared() < r*r
}

// CollisionResult contains information about a collision
type CollisionResult struct {
	Collided     bool
	Normal       Vector2D
	Penetration  float64
	ContactPoint Vector2D
}

// CheckCollision performs detailed collision detection between two circles.
// The contact point lies on the surface of a, facing b.
func CheckCollision(a, b Circle) CollisionResult {
	normal := b.Center.Sub(a.Center)
	distance := normal.Length()

	if distance >= a.Radius+b.Radius {
		return CollisionResult{Collided: false}
	}

	normal = normal.Normalize()
	return CollisionResult{
		Collided:     true,
		Normal:       normal,
		Penetration:  a.Radius + b.Radius - distance,
		ContactPoint: a.Center.Add(normal.Scale(a.Radius)),
	}
}

// Rect represents an axis-aligned rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// NewRectFromBounds builds a rectangle spanning [minX,maxX] x [minY,maxY].
func NewRectFromBounds(minX, minY, maxX, maxY float64) Rect {
	return Rect{
		Center: Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Min returns the lower-left corner
func (r Rect) Min() Vector2D {
	return Vector2D{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2}
}

// Max returns the upper-right corner
func (r Rect) Max() Vector2D {
	return Vector2D{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2}
}

// Contains reports whether point lies inside the half-open rectangle.
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X < r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y < r.Center.Y+r.Height/2
}

// Intersects reports whether two rectangles overlap (edges included).
func (r Rect) Intersects(other Rect) bool {
	return !(other.Center.X-other.Width/2 > r.Center.X+r.Width/2 ||
		other.Center.X+other.Width/2 < r.Center.X-r.Width/2 ||
		other.Center.Y-other.Height/2 > r.Center.Y+r.Height/2 ||
		other.Center.Y+other.Height/2 < r.Center.Y-r.Height/2)
}

// ContainsExtent reports whether a square of half-size extent centered on point
// lies fully inside the rectangle.
func (r Rect) ContainsExtent(point Vector2D, extent float64) bool {
	lo, hi := r.Min(), r.Max()
	return point.X-extent >= lo.X && point.X+extent <= hi.X &&
		point.Y-extent >= lo.Y && point.Y+extent <= hi.Y
}

// QuadTree for spatial partitioning
type QuadTree struct {
	Boundary  Rect
	Capacity  int
	Points    []Vector2D
	Objects   []interface{}
	Divided   bool
	NorthWest *QuadTree
	NorthEast *QuadTree
	SouthWest *QuadTree
	SouthEast *QuadTree
}

// NewQuadTree creates a new quad tree with the given boundary and capacity
func NewQuadTree(boundary Rect, capacity int) *QuadTree {
	if capacity < 1 {
		capacity = 1
	}
	return &QuadTree{
		Boundary: boundary,
		Capacity: capacity,
		Points:   make([]Vector2D, 0, capacity),
		Objects:  make([]interface{}, 0, capacity),
	}
}

// Insert stores object at point. It returns false when point is outside the tree.
func (qt *QuadTree) Insert(point Vector2D, object interface{}) bool {
	if !qt.Boundary.Contains(point) {
		return false
	}

	if len(qt.Points) < qt.Capacity && !qt.Divided {
		qt.Points = append(qt.Points, point)
		qt.Objects = append(qt.Objects, object)
		return true
	}

	if !qt.Divided {
		qt.Subdivide()
	}

	return qt.NorthWest.Insert(point, object) ||
		qt.NorthEast.Insert(point, object) ||
		qt.SouthWest.Insert(point, object) ||
		qt.SouthEast.Insert(point, object)
}

// Subdivide splits the quadtree into four quadrants
func (qt *QuadTree) Subdivide() {
	x := qt.Boundary.Center.X
	y := qt.Boundary.Center.Y
	w := qt.Boundary.Width / 2
	h := qt.Boundary.Height / 2

	qt.NorthWest = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.NorthEast = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y + h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthWest = NewQuadTree(Rect{Center: Vector2D{X: x - w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.SouthEast = NewQuadTree(Rect{Center: Vector2D{X: x + w/2, Y: y - h/2}, Width: w, Height: h}, qt.Capacity)
	qt.Divided = true
}

// Clear empties the tree while keeping its boundary and capacity.
func (qt *QuadTree) Clear() {
	qt.Points = qt.Points[:0]
	qt.Objects = qt.Objects[:0]
	qt.Divided = false
	qt.NorthWest, qt.NorthEast, qt.SouthWest, qt.SouthEast = nil, nil, nil, nil
}

// Query returns all objects whose points lie in area
func (qt *QuadTree) Query(area Rect) []interface{} {
	return qt.query(area, nil)
}

func (qt *QuadTree) query(area Rect, found []interface{}) []interface{} {
	if !qt.Boundary.Intersects(area) {
		return found
	}

	for i, point := range qt.Points {
		if area.Contains(point) {
			found = append(found, qt.Objects[i])
		}
	}

	if !qt.Divided {
		return found
	}

	found = qt.NorthWest.query(area, found)
	found = qt.NorthEast.query(area, found)
	found = qt.SouthWest.query(area, found)
	return qt.SouthEast.query(area, found)
}
