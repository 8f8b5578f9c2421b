// pkg/render/engo/camera.go
package engo

import (
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-tankgame/pkg/physics"
)

// CameraSystem maps world coordinates (y up) to screen coordinates (y down).
// By default the whole arena is fitted to the window; it can zoom in and
// follow a target.
type CameraSystem struct {
	// World and window sizes
	worldWidth, worldHeight   float64
	screenWidth, screenHeight float64

	// Target to follow
	target    physics.Vector2D
	targetSet bool

	// Camera properties
	zoom    float32
	minZoom float32
	maxZoom float32

	// Smooth following
	followSpeed float32
	smoothing   bool

	// Current camera state
	currentPos physics.Vector2D
}

// NewCameraSystem creates a camera that shows the whole world in a window of
// the given size.
func NewCameraSystem(worldWidth, worldHeight, screenWidth, screenHeight float64) *CameraSystem {
	cs := &CameraSystem{
		worldWidth:   worldWidth,
		worldHeight:  worldHeight,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		minZoom:      0.1,
		maxZoom:      4.0,
		followSpeed:  2.0,
		smoothing:    true,
		currentPos:   physics.Vector2D{X: worldWidth / 2, Y: worldHeight / 2},
	}
	cs.zoom = cs.clampZoom(cs.FitZoom())
	return cs
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(basic ecs.BasicEntity) {}

// Update follows the target and applies keyboard zoom.
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()

	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

// handleZoomInput processes zoom-related input
func (cs *CameraSystem) handleZoomInput() {
	if engo.Input.Button(buttonZoomIn).Down() {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if engo.Input.Button(buttonZoomOut).Down() {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if engo.Input.Button(buttonResetZoom).JustPressed() {
		cs.Reset()
	}
}

// updateCameraPosition moves the camera toward the target
func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	step := math.Min(1, float64(cs.followSpeed)*float64(dt))
	cs.currentPos = cs.currentPos.Add(cs.target.Sub(cs.currentPos).Scale(step))
}

// FitZoom is the zoom at which the whole world fits the window.
func (cs *CameraSystem) FitZoom() float32 {
	if cs.worldWidth <= 0 || cs.worldHeight <= 0 {
		return 1
	}
	return float32(math.Min(cs.screenWidth/cs.worldWidth, cs.screenHeight/cs.worldHeight))
}

// Reset shows the whole world again.
func (cs *CameraSystem) Reset() {
	cs.targetSet = false
	cs.currentPos = physics.Vector2D{X: cs.worldWidth / 2, Y: cs.worldHeight / 2}
	cs.zoom = cs.clampZoom(cs.FitZoom())
}

// SetTarget sets the position for the camera to follow
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	cs.target = target
	cs.targetSet = true
	if !cs.smoothing {
		cs.currentPos = target
	}
}

// ClearTarget clears the camera target
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the camera zoom level
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// GetZoom returns the current zoom level
func (cs *CameraSystem) GetZoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	return max(cs.minZoom, min(cs.maxZoom, zoom))
}

// EnableSmoothing enables or disables camera smoothing
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// GetCurrentPosition returns the world point at the centre of the window
func (cs *CameraSystem) GetCurrentPosition() physics.Vector2D {
	return cs.currentPos
}

// WorldToScreen converts world coordinates to screen coordinates
func (cs *CameraSystem) WorldToScreen(worldPos physics.Vector2D) physics.Vector2D {
	rel := worldPos.Sub(cs.currentPos).Scale(float64(cs.zoom))
	return physics.Vector2D{
		X: cs.screenWidth/2 + rel.X,
		Y: cs.screenHeight/2 - rel.Y,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates
func (cs *CameraSystem) ScreenToWorld(screenPos physics.Vector2D) physics.Vector2D {
	rel := physics.Vector2D{
		X: screenPos.X - cs.screenWidth/2,
		Y: cs.screenHeight/2 - screenPos.Y,
	}
	return cs.currentPos.Add(rel.Scale(1 / float64(cs.zoom)))
}

// ScreenLength scales a world length to pixels.
func (cs *CameraSystem) ScreenLength(length float64) float32 {
	return float32(length * float64(cs.zoom))
}
