// pkg/engine/errors.go
package engine

import (
	"errors"

	"github.com/opd-ai/go-tankgame/pkg/entity"
)

var (
	// ErrHostNotFound is returned when a dependent or projectile names a host
	// that does not exist or is already destroyed.
	ErrHostNotFound = errors.New("host not found")

	// ErrInvalidParams is returned for rejected spawn parameters.
	ErrInvalidParams = entity.ErrInvalidParams

	// ErrUnknownKind is returned by Spawn for parameter types it cannot build.
	ErrUnknownKind = errors.New("unknown entity kind")
)
