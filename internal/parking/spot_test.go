package parking

import "testing"

func TestNewSpot(t *testing.T) {
	spot := NewSpot(3, Bike)

	if spot.ID != 3 {
		t.Errorf("Expected spot id 3, got %d", spot.ID)
	}
	if spot.Type != Bike {
		t.Errorf("Expected type BIKE, got %s", spot.Type)
	}
	if spot.Occupied {
		t.Error("Expected new spot to be unoccupied")
	}
	if spot.Vehicle != nil {
		t.Error("Expected new spot to have no vehicle")
	}
}
