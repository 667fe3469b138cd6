package parking

import "errors"

var (
	// ErrLotFull is the normal "no free spot of this type anywhere"
	// outcome of Park. Callers check it with errors.Is.
	ErrLotFull = errors.New("no available spot for vehicle type")

	ErrUnknownLevel    = errors.New("unknown level id")
	ErrUnknownSpot     = errors.New("unknown spot id")
	ErrSpotFree        = errors.New("spot is already free")
	ErrInvalidCapacity = errors.New("capacity must not be negative")
	ErrDuplicateLevel  = errors.New("level id already registered")
)
