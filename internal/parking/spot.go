package parking

// Spot is a single parking spot. The type is fixed at creation; only
// Level mutates Occupied/Vehicle, and it keeps Occupied == (Vehicle != nil).
type Spot struct {
	ID       int
	Type     VehicleType
	Occupied bool
	Vehicle  *Vehicle
}

func NewSpot(id int, vtype VehicleType) *Spot {
	return &Spot{
		ID:   id,
		Type: vtype,
	}
}
