package parking

import (
	"context"
	"fmt"
)

// RunDemo drives the canonical two-level walkthrough: build the
// garage, park a car and a bike, show availability before and after,
// then free the car's spot.
func RunDemo(ctx context.Context, lot *InstrumentedLot) error {
	levelOne, err := NewLevel(1, 2, 2)
	if err != nil {
		return err
	}
	levelTwo, err := NewLevel(2, 1, 3)
	if err != nil {
		return err
	}

	if err := lot.AddLevel(ctx, levelOne); err != nil {
		return err
	}
	if err := lot.AddLevel(ctx, levelTwo); err != nil {
		return err
	}

	fmt.Print(lot.AvailabilityReport())

	car := NewVehicle(Car, "CAR123")
	bike := NewVehicle(Bike, "BIKE456")

	carPlacement, err := lot.Park(ctx, car)
	if err != nil {
		return err
	}
	fmt.Printf("Parked %s at Level %d, Spot %d\n", car.Registration, carPlacement.LevelID, carPlacement.SpotID)

	bikePlacement, err := lot.Park(ctx, bike)
	if err != nil {
		return err
	}
	fmt.Printf("Parked %s at Level %d, Spot %d\n", bike.Registration, bikePlacement.LevelID, bikePlacement.SpotID)

	fmt.Print(lot.AvailabilityReport())

	if err := lot.Unpark(ctx, carPlacement.LevelID, carPlacement.SpotID); err != nil {
		return err
	}
	fmt.Printf("Freed Level %d, Spot %d\n", carPlacement.LevelID, carPlacement.SpotID)

	fmt.Print(lot.AvailabilityReport())

	return nil
}
