// pkg/physics/collision_test.go
package physics

import (
	"testing"
)

func TestCircle_Collides(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Circle
		expected bool
	}{
		{
			name:     "overlapping",
			a:        Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 10},
			b:        Circle{Center: Vector2D{X: 15, Y: 0}, Radius: 10},
			expected: true,
		},
		{
			name:     "touching_does_not_collide",
			a:        Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			b:        Circle{Center: Vector2D{X: 10, Y: 0}, Radius: 5},
			expected: false,
		},
		{
			name:     "apart",
			a:        Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			b:        Circle{Center: Vector2D{X: 30, Y: 40}, Radius: 5},
			expected: false,
		},
		{
			name:     "concentric",
			a:        Circle{Center: Vector2D{X: 7, Y: 7}, Radius: 1},
			b:        Circle{Center: Vector2D{X: 7, Y: 7}, Radius: 100},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Collides(tt.b); got != tt.expected {
				t.Errorf("Collides() = %v, expected %v", got, tt.expected)
			}
			if got := tt.b.Collides(tt.a); got != tt.expected {
				t.Errorf("Collides() is not symmetric: %v", got)
			}
		})
	}
}

func TestCheckCollision(t *testing.T) {
	t.Run("no_collision", func(t *testing.T) {
		result := CheckCollision(
			Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			Circle{Center: Vector2D{X: 15, Y: 0}, Radius: 5},
		)
		if result.Collided {
			t.Error("Expected no collision")
		}
	})

	t.Run("penetration_and_contact", func(t *testing.T) {
		result := CheckCollision(
			Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 5},
			Circle{Center: Vector2D{X: 8, Y: 0}, Radius: 5},
		)
		if !result.Collided {
			t.Fatal("Expected collision")
		}
		if !almostEqual(result.Penetration, 2) {
			t.Errorf("Penetration = %v, expected 2", result.Penetration)
		}
		if !vecAlmostEqual(result.Normal, Vector2D{X: 1}) {
			t.Errorf("Normal = %v, expected (1,0)", result.Normal)
		}
		if !vecAlmostEqual(result.ContactPoint, Vector2D{X: 5}) {
			t.Errorf("ContactPoint = %v, expected (5,0)", result.ContactPoint)
		}
	})

	t.Run("diagonal", func(t *testing.T) {
		result := CheckCollision(
			Circle{Center: Vector2D{X: 0, Y: 0}, Radius: 3},
			Circle{Center: Vector2D{X: 3, Y: 4}, Radius: 3},
		)
		if !result.Collided {
			t.Fatal("Expected collision")
		}
		if !almostEqual(result.Penetration, 1) {
			t.Errorf("Penetration = %v, expected 1", result.Penetration)
		}
	})
}

func TestRect_Bounds(t *testing.T) {
	r := NewRectFromBounds(0, 0, 1440, 800)

	if !vecAlmostEqual(r.Center, Vector2D{X: 720, Y: 400}) {
		t.Errorf("Center = %v", r.Center)
	}
	if r.Width != 1440 || r.Height != 800 {
		t.Errorf("size = %vx%v", r.Width, r.Height)
	}
	if r.Min() != (Vector2D{}) {
		t.Errorf("Min() = %v", r.Min())
	}
	if r.Max() != (Vector2D{X: 1440, Y: 800}) {
		t.Errorf("Max() = %v", r.Max())
	}
}

func TestRect_Contains(t *testing.T) {
	rect := NewRectFromBounds(0, 0, 20, 20)

	tests := []struct {
		name     string
		point    Vector2D
		expected bool
	}{
		{"center", Vector2D{X: 10, Y: 10}, true},
		{"lower_edge_inclusive", Vector2D{X: 0, Y: 10}, true},
		{"upper_edge_exclusive", Vector2D{X: 20, Y: 10}, false},
		{"outside", Vector2D{X: 25, Y: 25}, false},
		{"negative", Vector2D{X: -5, Y: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.Contains(tt.point); got != tt.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tt.point, got, tt.expected)
			}
		})
	}
}

func TestRect_ContainsExtent(t *testing.T) {
	rect := NewRectFromBounds(0, 0, 100, 100)

	tests := []struct {
		name     string
		point    Vector2D
		extent   float64
		expected bool
	}{
		{"well_inside", Vector2D{X: 50, Y: 50}, 10, true},
		{"touching_edge", Vector2D{X: 90, Y: 50}, 10, true},
		{"crossing_right", Vector2D{X: 95, Y: 50}, 10, false},
		{"crossing_bottom", Vector2D{X: 50, Y: 5}, 10, false},
		{"zero_extent_on_edge", Vector2D{X: 100, Y: 100}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rect.ContainsExtent(tt.point, tt.extent); got != tt.expected {
				t.Errorf("ContainsExtent(%v, %v) = %v, expected %v", tt.point, tt.extent, got, tt.expected)
			}
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	boundary := Rect{Center: Vector2D{X: 0, Y: 0}, Width: 100, Height: 100}

	tests := []struct {
		name     string
		area     Rect
		expected bool
	}{
		{"inside", Rect{Center: Vector2D{X: 0, Y: 0}, Width: 50, Height: 50}, true},
		{"overlapping", Rect{Center: Vector2D{X: 40, Y: 40}, Width: 50, Height: 50}, true},
		{"outside", Rect{Center: Vector2D{X: 100, Y: 100}, Width: 50, Height: 50}, false},
		{"touching_edge", Rect{Center: Vector2D{X: 75, Y: 0}, Width: 50, Height: 50}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := boundary.Intersects(tt.area); got != tt.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestNewQuadTree_ClampsCapacity(t *testing.T) {
	qt := NewQuadTree(Rect{Width: 10, Height: 10}, 0)
	if qt.Capacity != 1 {
		t.Errorf("Capacity = %d, expected 1", qt.Capacity)
	}
}

func TestQuadTree_Insert(t *testing.T) {
	qt := NewQuadTree(Rect{Center: Vector2D{X: 0, Y: 0}, Width: 100, Height: 100}, 2)

	if !qt.Insert(Vector2D{X: 10, Y: 10}, "a") {
		t.Fatal("Insert should succeed inside the boundary")
	}
	if qt.Insert(Vector2D{X: 100, Y: 100}, "outside") {
		t.Error("Insert should fail outside the boundary")
	}

	qt.Insert(Vector2D{X: -10, Y: -10}, "b")
	qt.Insert(Vector2D{X: 20, Y: -30}, "c")

	if !qt.Divided {
		t.Error("QuadTree should subdivide past capacity")
	}
	if qt.NorthWest == nil || qt.NorthEast == nil || qt.SouthWest == nil || qt.SouthEast == nil {
		t.Error("All quadrants should exist after subdivision")
	}
}

func TestQuadTree_Subdivide(t *testing.T) {
	qt := NewQuadTree(Rect{Center: Vector2D{X: 0, Y: 0}, Width: 100, Height: 100}, 4)
	qt.Subdivide()

	expected := map[string]struct {
		got  *QuadTree
		want Rect
	}{
		"NorthWest": {qt.NorthWest, Rect{Center: Vector2D{X: -25, Y: 25}, Width: 50, Height: 50}},
		"NorthEast": {qt.NorthEast, Rect{Center: Vector2D{X: 25, Y: 25}, Width: 50, Height: 50}},
		"SouthWest": {qt.SouthWest, Rect{Center: Vector2D{X: -25, Y: -25}, Width: 50, Height: 50}},
		"SouthEast": {qt.SouthEast, Rect{Center: Vector2D{X: 25, Y: -25}, Width: 50, Height: 50}},
	}

	for name, q := range expected {
		if q.got == nil {
			t.Errorf("%s quadrant missing", name)
			continue
		}
		if q.got.Boundary != q.want {
			t.Errorf("%s boundary = %v, expected %v", name, q.got.Boundary, q.want)
		}
	}
}

func TestQuadTree_Query(t *testing.T) {
	qt := NewQuadTree(Rect{Center: Vector2D{X: 0, Y: 0}, Width: 100, Height: 100}, 2)

	points := map[string]Vector2D{
		"SW": {X: -20, Y: -20},
		"NE": {X: 20, Y: 20},
		"NW": {X: -20, Y: 20},
		"SE": {X: 20, Y: -20},
	}
	for name, p := range points {
		qt.Insert(p, name)
	}

	t.Run("everything", func(t *testing.T) {
		if got := qt.Query(qt.Boundary); len(got) != 4 {
			t.Errorf("Query() returned %d objects, expected 4", len(got))
		}
	})

	t.Run("one_quadrant", func(t *testing.T) {
		got := qt.Query(Rect{Center: Vector2D{X: 25, Y: 25}, Width: 50, Height: 50})
		if len(got) != 1 || got[0] != "NE" {
			t.Errorf("Query() = %v, expected [NE]", got)
		}
	})

	t.Run("outside", func(t *testing.T) {
		if got := qt.Query(Rect{Center: Vector2D{X: 200, Y: 200}, Width: 50, Height: 50}); len(got) != 0 {
			t.Errorf("Query() = %v, expected none", got)
		}
	})
}

func TestQuadTree_Clear(t *testing.T) {
	qt := NewQuadTree(Rect{Center: Vector2D{X: 0, Y: 0}, Width: 100, Height: 100}, 1)
	qt.Insert(Vector2D{X: 1, Y: 1}, 1)
	qt.Insert(Vector2D{X: -1, Y: -1}, 2)

	qt.Clear()

	if qt.Divided || qt.NorthWest != nil {
		t.Error("Clear() should drop subdivisions")
	}
	if got := qt.Query(qt.Boundary); len(got) != 0 {
		t.Errorf("Query() after Clear() = %v", got)
	}
	if !qt.Insert(Vector2D{X: 5, Y: 5}, 3) {
		t.Error("Insert after Clear() should succeed")
	}
}

func BenchmarkQuadTree_InsertQuery(b *testing.B) {
	boundary := NewRectFromBounds(0, 0, 1440, 800)
	qt := NewQuadTree(boundary, 4)
	area := Rect{Center: Vector2D{X: 720, Y: 400}, Width: 200, Height: 200}

	for i := 0; i < b.N; i++ {
		if i%512 == 0 {
			qt.Clear()
		}
		qt.Insert(Vector2D{X: float64(i % 1440), Y: float64((i * 7) % 800)}, i)
		qt.Query(area)
	}
}
