// pkg/entity/control.go
package entity

// Commands are the resolved player inputs for one vehicle and one frame.
// The aim and fire fields are forwarded to the vehicle's turrets.
type Commands struct {
	TurnLeft     bool
	TurnRight    bool
	Accelerate   bool
	Decelerate   bool
	AimLeft      bool
	AimRight     bool
	FireHeld     bool
	FireReleased bool
}

// Idle reports whether no command is active.
func (c Commands) Idle() bool {
	return c == Commands{}
}
