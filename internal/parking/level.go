package parking

import "fmt"

// Level owns a fixed set of typed spots and hands them out in O(1).
// Spots never move between levels, and the set never grows after
// construction. Free spots are tracked per type as a set of ids plus a
// count, so allocation, release, and availability reads are all O(1).
type Level struct {
	ID int

	spots     map[int]*Spot
	freeSpots map[VehicleType]map[int]struct{}
	freeCount map[VehicleType]int
	capacity  map[VehicleType]int
}

// NewLevel creates a level with carSpots CAR spots (ids 1..carSpots)
// followed by bikeSpots BIKE spots (ids carSpots+1..carSpots+bikeSpots).
// All spots start free.
func NewLevel(id, carSpots, bikeSpots int) (*Level, error) {
	if carSpots < 0 || bikeSpots < 0 {
		return nil, fmt.Errorf("level %d: %w", id, ErrInvalidCapacity)
	}

	l := &Level{
		ID:        id,
		spots:     make(map[int]*Spot, carSpots+bikeSpots),
		freeSpots: make(map[VehicleType]map[int]struct{}),
		freeCount: make(map[VehicleType]int),
		capacity:  make(map[VehicleType]int),
	}

	for _, t := range VehicleTypes {
		l.freeSpots[t] = make(map[int]struct{})
	}

	for i := 1; i <= carSpots; i++ {
		l.addSpot(NewSpot(i, Car))
	}
	for i := carSpots + 1; i <= carSpots+bikeSpots; i++ {
		l.addSpot(NewSpot(i, Bike))
	}

	return l, nil
}

func (l *Level) addSpot(s *Spot) {
	l.spots[s.ID] = s
	l.freeSpots[s.Type][s.ID] = struct{}{}
	l.freeCount[s.Type]++
	l.capacity[s.Type]++
}

// AllocateAny pops an arbitrary free spot of the given type and marks
// it occupied. Which spot is chosen is deliberately unspecified; the
// second return is false when no spot of that type is free. Binding
// the vehicle to the returned spot is the caller's job.
func (l *Level) AllocateAny(vtype VehicleType) (*Spot, bool) {
	freeSet := l.freeSpots[vtype]
	for spotID := range freeSet {
		spot := l.spots[spotID]
		spot.Occupied = true

		delete(freeSet, spotID)
		l.freeCount[vtype]--

		return spot, true
	}
	return nil, false
}

// Release frees an occupied spot and returns it to the free set.
func (l *Level) Release(spotID int) error {
	spot, ok := l.spots[spotID]
	if !ok {
		return fmt.Errorf("level %d spot %d: %w", l.ID, spotID, ErrUnknownSpot)
	}
	if !spot.Occupied {
		return fmt.Errorf("level %d spot %d: %w", l.ID, spotID, ErrSpotFree)
	}

	spot.Occupied = false
	spot.Vehicle = nil

	l.freeSpots[spot.Type][spotID] = struct{}{}
	l.freeCount[spot.Type]++

	return nil
}

// FreeCount reports how many spots of the given type are free.
func (l *Level) FreeCount(vtype VehicleType) int {
	return l.freeCount[vtype]
}

// Capacity reports how many spots of the given type the level was
// built with.
func (l *Level) Capacity(vtype VehicleType) int {
	return l.capacity[vtype]
}
