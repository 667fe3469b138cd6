package parking

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Shell is the interactive stdin frontend for a garage.
type Shell struct {
	lot       *InstrumentedLot
	scanner   *bufio.Scanner
	telemetry *TelemetryProvider
}

func NewShell(lot *InstrumentedLot, telemetry *TelemetryProvider) *Shell {
	return &Shell{
		lot:       lot,
		scanner:   bufio.NewScanner(os.Stdin),
		telemetry: telemetry,
	}
}

func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")

	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		s.processCommand(cmdCtx, input)
		cmdSpan.End()
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "add_level":
		s.handleAddLevel(ctx, parts)
	case "park":
		s.handlePark(ctx, parts)
	case "unpark":
		s.handleUnpark(ctx, parts)
	case "availability":
		s.handleAvailability()
	default:
		fmt.Printf("Unknown command: %s\n", parts[0])
	}
}

func (s *Shell) handleAddLevel(ctx context.Context, parts []string) {
	if len(parts) != 4 {
		fmt.Println("Usage: add_level <level_id> <car_spots> <bike_spots>")
		return
	}

	levelID, err1 := strconv.Atoi(parts[1])
	carSpots, err2 := strconv.Atoi(parts[2])
	bikeSpots, err3 := strconv.Atoi(parts[3])
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Println("Invalid arguments: ids and capacities must be integers")
		return
	}

	level, err := NewLevel(levelID, carSpots, bikeSpots)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	if err := s.lot.AddLevel(ctx, level); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Added level %d with %d car and %d bike spots\n", levelID, carSpots, bikeSpots)
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	if len(parts) != 3 {
		fmt.Println("Usage: park <car|bike> <registration>")
		return
	}

	vtype, ok := ParseVehicleType(parts[1])
	if !ok {
		fmt.Printf("Unknown vehicle type: %s\n", parts[1])
		return
	}

	placement, err := s.lot.Park(ctx, NewVehicle(vtype, parts[2]))
	if err != nil {
		fmt.Printf("Failed to park %s: %s\n", parts[2], err.Error())
		return
	}

	fmt.Printf("Parked %s at Level %d, Spot %d\n", parts[2], placement.LevelID, placement.SpotID)
}

func (s *Shell) handleUnpark(ctx context.Context, parts []string) {
	if len(parts) != 3 {
		fmt.Println("Usage: unpark <level_id> <spot_id>")
		return
	}

	levelID, err1 := strconv.Atoi(parts[1])
	spotID, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		fmt.Println("Invalid arguments: level and spot ids must be integers")
		return
	}

	if err := s.lot.Unpark(ctx, levelID, spotID); err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Freed Level %d, Spot %d\n", levelID, spotID)
}

func (s *Shell) handleAvailability() {
	fmt.Print(s.lot.AvailabilityReport())
}
