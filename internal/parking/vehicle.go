package parking

// VehicleType enumerates the kinds of vehicles the garage accepts.
// Every per-type structure in Level is keyed by this closed set.
type VehicleType int

const (
	Car VehicleType = iota
	Bike
)

// VehicleTypes lists all known types in a stable order, for reporting.
var VehicleTypes = []VehicleType{Car, Bike}

func (t VehicleType) String() string {
	switch t {
	case Car:
		return "CAR"
	case Bike:
		return "BIKE"
	default:
		return "UNKNOWN"
	}
}

// ParseVehicleType maps a case-insensitive name to a VehicleType.
func ParseVehicleType(s string) (VehicleType, bool) {
	switch s {
	case "CAR", "car", "Car":
		return Car, true
	case "BIKE", "bike", "Bike":
		return Bike, true
	}
	return 0, false
}

type Vehicle struct {
	Type         VehicleType
	Registration string
}

func NewVehicle(vtype VehicleType, registration string) *Vehicle {
	return &Vehicle{
		Type:         vtype,
		Registration: registration,
	}
}
