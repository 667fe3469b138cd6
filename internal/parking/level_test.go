package parking

import (
	"errors"
	"testing"
)

func TestNewLevel(t *testing.T) {
	l, err := NewLevel(1, 3, 2)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if l.ID != 1 {
		t.Errorf("Expected level id 1, got %d", l.ID)
	}
	if l.FreeCount(Car) != 3 {
		t.Errorf("Expected 3 free car spots, got %d", l.FreeCount(Car))
	}
	if l.FreeCount(Bike) != 2 {
		t.Errorf("Expected 2 free bike spots, got %d", l.FreeCount(Bike))
	}
	if l.Capacity(Car) != 3 || l.Capacity(Bike) != 2 {
		t.Errorf("Expected capacities 3/2, got %d/%d", l.Capacity(Car), l.Capacity(Bike))
	}

	// Car spots get ids 1..3, bike spots 4..5.
	for id := 1; id <= 3; id++ {
		spot, ok := l.spots[id]
		if !ok {
			t.Fatalf("Expected spot %d to exist", id)
		}
		if spot.Type != Car {
			t.Errorf("Expected spot %d to be a car spot, got %s", id, spot.Type)
		}
		if spot.Occupied {
			t.Errorf("Expected spot %d to start free", id)
		}
	}
	for id := 4; id <= 5; id++ {
		spot, ok := l.spots[id]
		if !ok {
			t.Fatalf("Expected spot %d to exist", id)
		}
		if spot.Type != Bike {
			t.Errorf("Expected spot %d to be a bike spot, got %s", id, spot.Type)
		}
	}
}

func TestNewLevelRejectsNegativeCapacity(t *testing.T) {
	if _, err := NewLevel(1, -1, 2); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("Expected ErrInvalidCapacity for negative car spots, got %v", err)
	}
	if _, err := NewLevel(1, 2, -1); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("Expected ErrInvalidCapacity for negative bike spots, got %v", err)
	}
}

func TestNewLevelZeroCapacity(t *testing.T) {
	l, err := NewLevel(1, 0, 0)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if _, ok := l.AllocateAny(Car); ok {
		t.Error("Expected allocation to fail on an empty level")
	}
}

func TestLevelAllocateAny(t *testing.T) {
	l, _ := NewLevel(1, 2, 1)

	seen := make(map[int]bool)
	for i := 0; i < 2; i++ {
		spot, ok := l.AllocateAny(Car)
		if !ok {
			t.Fatalf("Expected allocation %d to succeed", i+1)
		}
		if !spot.Occupied {
			t.Error("Expected allocated spot to be marked occupied")
		}
		if spot.Type != Car {
			t.Errorf("Expected a car spot, got %s", spot.Type)
		}
		if spot.ID < 1 || spot.ID > 2 {
			t.Errorf("Expected car spot id in 1..2, got %d", spot.ID)
		}
		if seen[spot.ID] {
			t.Errorf("Spot %d allocated twice", spot.ID)
		}
		seen[spot.ID] = true
	}

	if _, ok := l.AllocateAny(Car); ok {
		t.Error("Expected allocation to fail with no free car spots")
	}
	if l.FreeCount(Car) != 0 {
		t.Errorf("Expected 0 free car spots, got %d", l.FreeCount(Car))
	}

	// Bike capacity is untouched by car exhaustion.
	if l.FreeCount(Bike) != 1 {
		t.Errorf("Expected 1 free bike spot, got %d", l.FreeCount(Bike))
	}
}

func TestLevelRelease(t *testing.T) {
	l, _ := NewLevel(1, 1, 1)

	spot, ok := l.AllocateAny(Car)
	if !ok {
		t.Fatal("Expected allocation to succeed")
	}
	spot.Vehicle = NewVehicle(Car, "KA01HH1234")

	if err := l.Release(spot.ID); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if spot.Occupied {
		t.Error("Expected spot to be free after release")
	}
	if spot.Vehicle != nil {
		t.Error("Expected vehicle to be detached after release")
	}
	if l.FreeCount(Car) != 1 {
		t.Errorf("Expected free count restored to 1, got %d", l.FreeCount(Car))
	}
}

func TestLevelReleaseErrors(t *testing.T) {
	l, _ := NewLevel(1, 1, 1)

	if err := l.Release(99); !errors.Is(err, ErrUnknownSpot) {
		t.Errorf("Expected ErrUnknownSpot, got %v", err)
	}
	if err := l.Release(1); !errors.Is(err, ErrSpotFree) {
		t.Errorf("Expected ErrSpotFree for a free spot, got %v", err)
	}

	spot, _ := l.AllocateAny(Car)
	if err := l.Release(spot.ID); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if err := l.Release(spot.ID); !errors.Is(err, ErrSpotFree) {
		t.Errorf("Expected ErrSpotFree on double release, got %v", err)
	}
}

func TestLevelCapacityInvariant(t *testing.T) {
	l, _ := NewLevel(1, 3, 2)

	check := func() {
		for _, vtype := range VehicleTypes {
			occupied := 0
			for _, spot := range l.spots {
				if spot.Type == vtype && spot.Occupied {
					occupied++
				}
			}
			if l.FreeCount(vtype)+occupied != l.Capacity(vtype) {
				t.Errorf("Capacity invariant broken for %s: free=%d occupied=%d capacity=%d",
					vtype, l.FreeCount(vtype), occupied, l.Capacity(vtype))
			}
		}
	}

	check()
	s1, _ := l.AllocateAny(Car)
	check()
	l.AllocateAny(Bike)
	check()
	l.Release(s1.ID)
	check()
}
