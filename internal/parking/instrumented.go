package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentedLot struct {
	*ParkingLot
	telemetry *TelemetryProvider

	// Metrics
	parkOperations    metric.Int64Counter
	unparkOperations  metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	operationDuration metric.Float64Histogram
	totalSpotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedLot(telemetry *TelemetryProvider) (*InstrumentedLot, error) {
	meter := telemetry.Meter()

	parkOperations, err := meter.Int64Counter("parking_operations_total",
		metric.WithDescription("Total number of park operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	unparkOperations, err := meter.Int64Counter("unparking_operations_total",
		metric.WithDescription("Total number of unpark operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("garage_occupancy",
		metric.WithDescription("Current number of occupied spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of garage operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSpotsGauge, err := meter.Int64UpDownCounter("garage_total_spots",
		metric.WithDescription("Total number of spots across all levels"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	return &InstrumentedLot{
		ParkingLot:        NewParkingLot(),
		telemetry:         telemetry,
		parkOperations:    parkOperations,
		unparkOperations:  unparkOperations,
		occupancyGauge:    occupancyGauge,
		operationDuration: operationDuration,
		totalSpotsGauge:   totalSpotsGauge,
	}, nil
}

func (il *InstrumentedLot) AddLevel(ctx context.Context, level *Level) error {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.add_level",
		trace.WithAttributes(
			attribute.Int("level.id", level.ID),
			attribute.Int("level.car_capacity", level.Capacity(Car)),
			attribute.Int("level.bike_capacity", level.Capacity(Bike)),
		))
	defer span.End()

	if err := il.ParkingLot.AddLevel(level); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.AddEvent("level_registered")
	il.totalSpotsGauge.Add(ctx, int64(level.Capacity(Car)+level.Capacity(Bike)),
		metric.WithAttributes(attribute.Int("level_id", level.ID)))

	return nil
}

func (il *InstrumentedLot) Park(ctx context.Context, v *Vehicle) (Placement, error) {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.park",
		trace.WithAttributes(
			attribute.String("vehicle.type", v.Type.String()),
			attribute.String("vehicle.registration", v.Registration),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("finding_free_spot")

	placement, err := il.ParkingLot.Park(v)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_type", v.Type.String()),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "full"))
		il.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.Int("placement.level_id", placement.LevelID),
			attribute.Int("placement.spot_id", placement.SpotID),
		)
		span.AddEvent("spot_allocated", trace.WithAttributes(
			attribute.Int("level_id", placement.LevelID),
			attribute.Int("spot_id", placement.SpotID),
		))

		il.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
		il.occupancyGauge.Add(ctx, 1, metric.WithAttributes(
			attribute.String("vehicle_type", v.Type.String())))
	}

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return placement, err
}

func (il *InstrumentedLot) Unpark(ctx context.Context, levelID, spotID int) error {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.unpark",
		trace.WithAttributes(
			attribute.Int("level_id", levelID),
			attribute.Int("spot_id", spotID),
		))
	defer span.End()

	start := time.Now()

	// Capture vehicle info before releasing, for the metric labels.
	var vtype string
	if level, ok := il.byLevel[levelID]; ok {
		if spot, ok := level.spots[spotID]; ok && spot.Occupied {
			vtype = spot.Type.String()
		}
	}

	span.AddEvent("releasing_spot")

	err := il.ParkingLot.Unpark(levelID, spotID)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "unpark"),
		attribute.Int("level_id", levelID),
	}
	if vtype != "" {
		labels = append(labels, attribute.String("vehicle_type", vtype))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.AddEvent("spot_released")
		il.occupancyGauge.Add(ctx, -1, metric.WithAttributes(
			attribute.String("vehicle_type", vtype)))
	}

	il.unparkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return err
}

func (il *InstrumentedLot) Availability(ctx context.Context) []LevelAvailability {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "garage.availability")
	defer span.End()

	start := time.Now()

	availability := il.ParkingLot.Availability()

	duration := time.Since(start).Seconds()

	span.SetAttributes(attribute.Int("level_count", len(availability)))

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("operation", "availability"),
		attribute.String("status", "success"),
	))

	return availability
}
