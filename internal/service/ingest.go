package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/danielgremista/ecoview-server/internal/db"
	"github.com/danielgremista/ecoview-server/internal/normalize"
	"github.com/danielgremista/ecoview-server/internal/telemetry"
	"github.com/danielgremista/ecoview-server/internal/validator"
	"go.uber.org/zap"
)

// ReadingStore is the persistence surface the orchestrator writes
// through. Implemented by *repository.Repository.
type ReadingStore interface {
	InsertGeneric(ctx context.Context, alias string, reading *db.GenericReading) error
	InsertBrise(ctx context.Context, alias string, reading *db.BriseReading) error
	InsertPavimentos(ctx context.Context, alias string, reading *db.PavimentosReading) error
	LatestGeneric(ctx context.Context, alias string) (*db.GenericReading, error)
}

// AliasResolver maps a monitoring target to its store alias.
// Implemented by *router.Router.
type AliasResolver interface {
	Resolve(target telemetry.Target) string
}

// IngestResult is returned to the caller after a successful ingest.
type IngestResult struct {
	ID        int64
	Timestamp time.Time
	Target    telemetry.Target
	Alias     string
}

// IngestService is the ingestion orchestrator: parse, validate,
// normalize, route, persist. All validation happens before any store
// is touched; the only retried step is the single fallback write when
// the resolved alias turns out to have no connection.
type IngestService struct {
	store  ReadingStore
	router AliasResolver
	logger *zap.Logger
}

// NewIngestService creates the ingestion orchestrator.
func NewIngestService(store ReadingStore, router AliasResolver, logger *zap.Logger) *IngestService {
	return &IngestService{store: store, router: router, logger: logger}
}

// ProcessIngest handles one raw request body end to end and returns
// the created record's identifier and server-assigned timestamp.
func (s *IngestService) ProcessIngest(ctx context.Context, body []byte) (*IngestResult, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, telemetry.NewMalformedPayload(err)
	}

	tag, _ := raw["monitoring"].(string)
	target := telemetry.ParseTarget(tag)

	battery, err := validator.Battery(raw)
	if err != nil {
		return nil, err
	}

	reading, err := normalize.Normalize(raw, target)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	deviceID := reading.DeviceID
	alias := s.router.Resolve(target)

	var id int64
	switch target {
	case telemetry.TargetBrise:
		record := newBriseReading(reading.Fields, deviceID, battery, now)
		err = s.persist(ctx, alias, func(ctx context.Context, alias string) error {
			return s.store.InsertBrise(ctx, alias, record)
		})
		id = record.ID
	case telemetry.TargetPavimentos:
		record := newPavimentosReading(reading.Fields, deviceID, battery, now)
		err = s.persist(ctx, alias, func(ctx context.Context, alias string) error {
			return s.store.InsertPavimentos(ctx, alias, record)
		})
		id = record.ID
	default:
		record := newGenericReading(reading.Fields, deviceID, battery, now)
		err = s.persist(ctx, alias, func(ctx context.Context, alias string) error {
			return s.store.InsertGeneric(ctx, alias, record)
		})
		id = record.ID
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("reading persisted",
		zap.Int64("id", id),
		zap.String("target", target.String()),
		zap.String("alias", alias),
		zap.String("device_id", deviceID))

	return &IngestResult{ID: id, Timestamp: now, Target: target, Alias: alias}, nil
}

// persist runs one insert against the resolved alias. A write failing
// specifically because the alias has no connection is retried exactly
// once against the default alias; any other error propagates so real
// store outages are never masked as silent fallbacks.
func (s *IngestService) persist(ctx context.Context, alias string, insert func(ctx context.Context, alias string) error) error {
	err := insert(ctx, alias)
	if err == nil {
		return nil
	}

	if errors.Is(err, db.ErrStoreNotConfigured) && alias != db.DefaultAlias {
		s.logger.Warn("store alias missing at write time, falling back to default",
			zap.String("alias", alias))
		err = insert(ctx, db.DefaultAlias)
		if err == nil {
			return nil
		}
	}

	if errors.Is(err, db.ErrStoreNotConfigured) {
		return telemetry.NewStoreUnavailable(alias)
	}
	return fmt.Errorf("failed to persist reading in store %q: %w", alias, err)
}

// Latest returns the newest generic reading from the default target's
// store.
func (s *IngestService) Latest(ctx context.Context) (*db.GenericReading, error) {
	return s.store.LatestGeneric(ctx, s.router.Resolve(telemetry.TargetDefault))
}

func newGenericReading(fields map[string]float64, deviceID string, battery *float64, ts time.Time) *db.GenericReading {
	return &db.GenericReading{
		Timestamp:    ts,
		Sensor1:      fields["sensor1"],
		Sensor2:      fields["sensor2"],
		Sensor3:      fields["sensor3"],
		Sensor4:      fields["sensor4"],
		Sensor5:      fields["sensor5"],
		Sensor6:      fields["sensor6"],
		Sensor7:      fields["sensor7"],
		Sensor8:      fields["sensor8"],
		Sensor9:      fields["sensor9"],
		Sensor10:     fields["sensor10"],
		Sensor11:     fields["sensor11"],
		Sensor12:     fields["sensor12"],
		Sensor13:     fields["sensor13"],
		Sensor14:     fields["sensor14"],
		DeviceID:     &deviceID,
		BatteryLevel: battery,
	}
}

func newBriseReading(fields map[string]float64, deviceID string, battery *float64, ts time.Time) *db.BriseReading {
	return &db.BriseReading{
		Timestamp:    ts,
		DS18B20_1:    fields["ds18b20_1"],
		DS18B20_2:    fields["ds18b20_2"],
		DS18B20_3:    fields["ds18b20_3"],
		DS18B20_4:    fields["ds18b20_4"],
		DS18B20_5:    fields["ds18b20_5"],
		DS18B20_6:    fields["ds18b20_6"],
		DHT11_1Temp:  fields["dht11_1_temp"],
		DHT11_1Hum:   fields["dht11_1_hum"],
		DHT11_2Temp:  fields["dht11_2_temp"],
		DHT11_2Hum:   fields["dht11_2_hum"],
		UV1:          fields["uv_1"],
		UV2:          fields["uv_2"],
		Wind1:        fields["wind_1"],
		Wind2:        fields["wind_2"],
		DeviceID:     &deviceID,
		BatteryLevel: battery,
	}
}

func newPavimentosReading(fields map[string]float64, deviceID string, battery *float64, ts time.Time) *db.PavimentosReading {
	return &db.PavimentosReading{
		Timestamp:    ts,
		SensorA:      fields["sensor_a"],
		SensorB:      fields["sensor_b"],
		DeviceID:     &deviceID,
		BatteryLevel: battery,
	}
}
