package parking

import (
	"fmt"
	"strings"
)

// Placement identifies where a vehicle was parked.
type Placement struct {
	LevelID int
	SpotID  int
}

// ParkingLot routes park and unpark requests across an ordered set of
// levels. Insertion order is allocation priority: Park always fills
// the earliest-added level that still has room for the vehicle's type.
type ParkingLot struct {
	levels  []*Level
	byLevel map[int]*Level
}

func NewParkingLot() *ParkingLot {
	return &ParkingLot{
		byLevel: make(map[int]*Level),
	}
}

// AddLevel appends a level to the allocation order. Duplicate level
// ids are rejected so that Unpark lookups stay unambiguous.
func (p *ParkingLot) AddLevel(level *Level) error {
	if _, exists := p.byLevel[level.ID]; exists {
		return fmt.Errorf("level %d: %w", level.ID, ErrDuplicateLevel)
	}
	p.levels = append(p.levels, level)
	p.byLevel[level.ID] = level
	return nil
}

// Park assigns the vehicle a free spot of its type on the first level
// that has one and binds the vehicle to it. A full lot is a normal
// outcome, reported as ErrLotFull.
func (p *ParkingLot) Park(v *Vehicle) (Placement, error) {
	for _, level := range p.levels {
		spot, ok := level.AllocateAny(v.Type)
		if !ok {
			continue
		}
		spot.Vehicle = v
		return Placement{LevelID: level.ID, SpotID: spot.ID}, nil
	}
	return Placement{}, fmt.Errorf("park %s %s: %w", v.Type, v.Registration, ErrLotFull)
}

// Unpark frees the spot at the given location.
func (p *ParkingLot) Unpark(levelID, spotID int) error {
	level, ok := p.byLevel[levelID]
	if !ok {
		return fmt.Errorf("level %d: %w", levelID, ErrUnknownLevel)
	}
	return level.Release(spotID)
}

// LevelAvailability is a read-only snapshot of one level's free counts.
type LevelAvailability struct {
	LevelID int
	Free    map[VehicleType]int
}

// Availability reports free counts per level in insertion order. It
// never mutates lot state.
func (p *ParkingLot) Availability() []LevelAvailability {
	out := make([]LevelAvailability, 0, len(p.levels))
	for _, level := range p.levels {
		free := make(map[VehicleType]int, len(VehicleTypes))
		for _, t := range VehicleTypes {
			free[t] = level.FreeCount(t)
		}
		out = append(out, LevelAvailability{LevelID: level.ID, Free: free})
	}
	return out
}

// AvailabilityReport renders the availability table, one line per
// level between a fixed header and footer.
func (p *ParkingLot) AvailabilityReport() string {
	var b strings.Builder
	b.WriteString("----- Parking Availability -----\n")
	for _, level := range p.levels {
		fmt.Fprintf(&b, "Level %d: CAR=%d, BIKE=%d\n",
			level.ID, level.FreeCount(Car), level.FreeCount(Bike))
	}
	b.WriteString("--------------------------------\n")
	return b.String()
}

// Levels returns the levels in allocation order.
func (p *ParkingLot) Levels() []*Level {
	return p.levels
}
