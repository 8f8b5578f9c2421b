// pkg/entity/vehicle_test.go
package entity

import (
	"errors"
	"testing"

	"github.com/opd-ai/go-tankgame/pkg/physics"
)

func TestNewTank_Defaults(t *testing.T) {
	tank, err := NewTank(7, TankParams{})
	if err != nil {
		t.Fatalf("NewTank() error = %v", err)
	}

	if tank.GetID() != 7 || tank.Kind() != KindTank {
		t.Errorf("ID, Kind = %v, %v", tank.GetID(), tank.Kind())
	}
	if tank.Hitpoints != DefaultHitpoints || tank.HitpointsFull != DefaultHitpoints {
		t.Errorf("hitpoints = %v/%v", tank.Hitpoints, tank.HitpointsFull)
	}
	if tank.Radius != DefaultRadius || tank.Mass != DefaultMass {
		t.Errorf("radius, mass = %v, %v", tank.Radius, tank.Mass)
	}
	if tank.Speed != 0 {
		t.Errorf("tank should start at rest, speed = %v", tank.Speed)
	}
	if tank.Boundary != BoundaryBounce {
		t.Errorf("Boundary = %v, want bounce", tank.Boundary)
	}
	if tank.Color != DefaultColor {
		t.Errorf("Color = %v", tank.Color)
	}
}

func TestNewTank_InvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		params TankParams
	}{
		{"negative radius", TankParams{Common: Common{Radius: -1}}},
		{"hitpoints above full", TankParams{Common: Common{Hitpoints: 150, HitpointsFull: 100}}},
		{"negative cycle period", TankParams{Common: Common{Cycle: &CycleParams{Period: -1}}}},
		{"negative drive speed", TankParams{DriveSpeed: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTank(1, tt.params)
			if !errors.Is(err, ErrInvalidParams) {
				t.Errorf("NewTank() error = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestTank_ApplyControl(t *testing.T) {
	tests := []struct {
		name     string
		cmd      Commands
		rotation float64
		velocity physics.Vector2D
		flipped  bool
	}{
		{"left", Commands{TurnLeft: true}, 180, physics.Vector2D{X: -40}, true},
		{"right", Commands{TurnRight: true}, 0, physics.Vector2D{X: 40}, false},
		{"up", Commands{Accelerate: true}, 90, physics.Vector2D{Y: 20}, false},
		{"down", Commands{Decelerate: true}, 270, physics.Vector2D{Y: -20}, false},
		{"idle stops", Commands{}, 0, physics.Vector2D{}, false},
		{"up wins over left", Commands{TurnLeft: true, Accelerate: true}, 90, physics.Vector2D{Y: 20}, false},
		{"down wins over right", Commands{TurnRight: true, Decelerate: true}, 270, physics.Vector2D{Y: -20}, false},
		{"right wins over left", Commands{TurnLeft: true, TurnRight: true}, 0, physics.Vector2D{X: 40}, false},
		{"down wins over everything", Commands{TurnLeft: true, TurnRight: true, Accelerate: true, Decelerate: true}, 270, physics.Vector2D{Y: -20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tank, err := NewTank(1, TankParams{})
			if err != nil {
				t.Fatal(err)
			}
			tank.ApplyControl(tt.cmd, 1.0/60)

			if !near(tank.Rotation, tt.rotation) {
				t.Errorf("Rotation = %v, want %v", tank.Rotation, tt.rotation)
			}
			if !nearVec(tank.Velocity, tt.velocity) {
				t.Errorf("Velocity = %v, want %v", tank.Velocity, tt.velocity)
			}
			if tank.Flipped != tt.flipped || tank.View().Flipped != tt.flipped {
				t.Errorf("Flipped = %v, want %v", tank.Flipped, tt.flipped)
			}
		})
	}
}

func TestTank_FlipBumpsRevision(t *testing.T) {
	tank, _ := NewTank(1, TankParams{})
	rev := tank.Revision()

	tank.ApplyControl(Commands{TurnLeft: true}, 0.1)
	if tank.Revision() == rev {
		t.Error("flip did not change the revision")
	}

	// climbing keeps the last horizontal orientation
	tank.ApplyControl(Commands{Accelerate: true}, 0.1)
	if !tank.Flipped {
		t.Error("vertical movement reset the flip")
	}
}

func TestNewSpaceship_Defaults(t *testing.T) {
	ship, err := NewSpaceship(3, SpaceshipParams{Common: Common{Rotation: 90}})
	if err != nil {
		t.Fatalf("NewSpaceship() error = %v", err)
	}
	if ship.Speed != DefaultSpeed {
		t.Errorf("Speed = %v, want %v", ship.Speed, DefaultSpeed)
	}
	if !nearVec(ship.Velocity, physics.Vector2D{Y: DefaultSpeed}) {
		t.Errorf("Velocity = %v", ship.Velocity)
	}
	if ship.TurnRate != DefaultTurnRate || ship.Thrust != DefaultThrust || ship.MaxSpeed != DefaultMaxSpeed {
		t.Errorf("rates = %v %v %v", ship.TurnRate, ship.Thrust, ship.MaxSpeed)
	}
}

func TestSpaceship_ApplyControl(t *testing.T) {
	newShip := func() *Spaceship {
		ship, err := NewSpaceship(1, SpaceshipParams{
			Common:   Common{Speed: 100},
			TurnRate: 90,
			Thrust:   50,
			MaxSpeed: 120,
		})
		if err != nil {
			t.Fatal(err)
		}
		return ship
	}

	t.Run("turn left is counter-clockwise", func(t *testing.T) {
		ship := newShip()
		ship.ApplyControl(Commands{TurnLeft: true}, 1)
		if !near(ship.Rotation, 90) {
			t.Errorf("Rotation = %v, want 90", ship.Rotation)
		}
		if !nearVec(ship.Velocity, physics.Vector2D{Y: 100}) {
			t.Errorf("Velocity = %v, want (0,100)", ship.Velocity)
		}
	})

	t.Run("turn right", func(t *testing.T) {
		ship := newShip()
		ship.ApplyControl(Commands{TurnRight: true}, 0.5)
		if !near(ship.Rotation, -45) {
			t.Errorf("Rotation = %v, want -45", ship.Rotation)
		}
	})

	t.Run("thrust clamps to max speed", func(t *testing.T) {
		ship := newShip()
		ship.ApplyControl(Commands{Accelerate: true}, 1)
		if ship.Speed != 120 {
			t.Errorf("Speed = %v, want 120", ship.Speed)
		}
	})

	t.Run("reverse clamps to negative max speed", func(t *testing.T) {
		ship := newShip()
		for i := 0; i < 10; i++ {
			ship.ApplyControl(Commands{Decelerate: true}, 1)
		}
		if ship.Speed != -120 {
			t.Errorf("Speed = %v, want -120", ship.Speed)
		}
		if !nearVec(ship.Velocity, physics.Vector2D{X: -120}) {
			t.Errorf("Velocity = %v, want (-120,0)", ship.Velocity)
		}
	})

	t.Run("idle keeps drifting", func(t *testing.T) {
		ship := newShip()
		ship.ApplyControl(Commands{}, 1)
		if ship.Speed != 100 || !near(ship.Rotation, 0) {
			t.Errorf("Speed, Rotation = %v, %v", ship.Speed, ship.Rotation)
		}
	})

	t.Run("aim rotates facing only", func(t *testing.T) {
		ship := newShip()
		ship.ApplyControl(Commands{AimLeft: true}, 1)
		if !near(ship.Facing, 90) || !near(ship.Rotation, 0) {
			t.Errorf("Facing, Rotation = %v, %v", ship.Facing, ship.Rotation)
		}
	})
}

func TestSpaceship_ColorCycle(t *testing.T) {
	ship, err := NewSpaceship(1, SpaceshipParams{Common: Common{
		Color: cyan,
		Cycle: &CycleParams{End: red, Period: 0.2},
	}})
	if err != nil {
		t.Fatal(err)
	}

	ship.Update(0.1, testEnv())
	if !colorNear(ship.Color, red, 1) {
		t.Errorf("Color after half a period = %v, want %v", ship.Color, red)
	}
	ship.Update(0.1, testEnv())
	if !colorNear(ship.Color, cyan, 1) {
		t.Errorf("Color after a full period = %v, want %v", ship.Color, cyan)
	}
}

var (
	_ Controllable = (*Tank)(nil)
	_ Controllable = (*Spaceship)(nil)
	_ Controllable = (*Turret)(nil)
	_ Entity       = (*Projectile)(nil)
	_ Entity       = (*HealthBar)(nil)
	_ Entity       = (*Debris)(nil)
)
