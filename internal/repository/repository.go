package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgremista/ecoview-server/internal/db"
	"github.com/jackc/pgx/v5"
)

// ErrNoReadings is returned by latest-reading queries on empty tables.
var ErrNoReadings = errors.New("no readings recorded")

// Repository executes reading and access-control queries against the
// store selected by alias. Alias resolution happens in the router; the
// repository only reports db.ErrStoreNotConfigured when the alias has
// no pool, which is the single condition the caller may retry.
type Repository struct {
	stores *db.Stores
}

// NewRepository creates a repository over the store alias table.
func NewRepository(stores *db.Stores) *Repository {
	return &Repository{stores: stores}
}

// InsertGeneric writes a generic reading and fills in its assigned id.
func (r *Repository) InsertGeneric(ctx context.Context, alias string, reading *db.GenericReading) error {
	pool, err := r.stores.Pool(alias)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sensor_readings (
			timestamp,
			sensor1, sensor2, sensor3, sensor4, sensor5, sensor6, sensor7,
			sensor8, sensor9, sensor10, sensor11, sensor12, sensor13, sensor14,
			device_id, battery_level
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	err = pool.QueryRow(ctx, query,
		reading.Timestamp,
		reading.Sensor1, reading.Sensor2, reading.Sensor3, reading.Sensor4,
		reading.Sensor5, reading.Sensor6, reading.Sensor7, reading.Sensor8,
		reading.Sensor9, reading.Sensor10, reading.Sensor11, reading.Sensor12,
		reading.Sensor13, reading.Sensor14,
		reading.DeviceID,
		reading.BatteryLevel,
	).Scan(&reading.ID)
	if err != nil {
		return fmt.Errorf("failed to insert generic reading: %w", err)
	}
	return nil
}

// InsertBrise writes a brise reading and fills in its assigned id.
func (r *Repository) InsertBrise(ctx context.Context, alias string, reading *db.BriseReading) error {
	pool, err := r.stores.Pool(alias)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO brise_readings (
			timestamp,
			ds18b20_1, ds18b20_2, ds18b20_3, ds18b20_4, ds18b20_5, ds18b20_6,
			dht11_1_temp, dht11_1_hum, dht11_2_temp, dht11_2_hum,
			uv_1, uv_2, wind_1, wind_2,
			device_id, battery_level
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`

	err = pool.QueryRow(ctx, query,
		reading.Timestamp,
		reading.DS18B20_1, reading.DS18B20_2, reading.DS18B20_3,
		reading.DS18B20_4, reading.DS18B20_5, reading.DS18B20_6,
		reading.DHT11_1Temp, reading.DHT11_1Hum, reading.DHT11_2Temp, reading.DHT11_2Hum,
		reading.UV1, reading.UV2,
		reading.Wind1, reading.Wind2,
		reading.DeviceID,
		reading.BatteryLevel,
	).Scan(&reading.ID)
	if err != nil {
		return fmt.Errorf("failed to insert brise reading: %w", err)
	}
	return nil
}

// InsertPavimentos writes a pavimentos reading and fills in its id.
func (r *Repository) InsertPavimentos(ctx context.Context, alias string, reading *db.PavimentosReading) error {
	pool, err := r.stores.Pool(alias)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO pavimentos_readings (timestamp, sensor_a, sensor_b, device_id, battery_level)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = pool.QueryRow(ctx, query,
		reading.Timestamp,
		reading.SensorA,
		reading.SensorB,
		reading.DeviceID,
		reading.BatteryLevel,
	).Scan(&reading.ID)
	if err != nil {
		return fmt.Errorf("failed to insert pavimentos reading: %w", err)
	}
	return nil
}

// LatestGeneric returns the most recent generic reading from the given
// store, or ErrNoReadings when the table is empty.
func (r *Repository) LatestGeneric(ctx context.Context, alias string) (*db.GenericReading, error) {
	pool, err := r.stores.Pool(alias)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, timestamp,
			sensor1, sensor2, sensor3, sensor4, sensor5, sensor6, sensor7,
			sensor8, sensor9, sensor10, sensor11, sensor12, sensor13, sensor14,
			device_id, battery_level
		FROM sensor_readings
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var reading db.GenericReading
	err = pool.QueryRow(ctx, query).Scan(
		&reading.ID, &reading.Timestamp,
		&reading.Sensor1, &reading.Sensor2, &reading.Sensor3, &reading.Sensor4,
		&reading.Sensor5, &reading.Sensor6, &reading.Sensor7, &reading.Sensor8,
		&reading.Sensor9, &reading.Sensor10, &reading.Sensor11, &reading.Sensor12,
		&reading.Sensor13, &reading.Sensor14,
		&reading.DeviceID, &reading.BatteryLevel,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNoReadings
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest reading: %w", err)
	}
	return &reading, nil
}

// GetCard looks up a registered access card by uid. A missing card is
// reported as (nil, nil); the caller decides what an unknown card
// means.
func (r *Repository) GetCard(ctx context.Context, uid string) (*db.AccessCard, error) {
	pool, err := r.stores.Pool(db.DefaultAlias)
	if err != nil {
		return nil, err
	}

	query := `SELECT uid, name, active FROM access_cards WHERE uid = $1`

	var card db.AccessCard
	err = pool.QueryRow(ctx, query, uid).Scan(&card.UID, &card.Name, &card.Active)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query access card: %w", err)
	}
	return &card, nil
}

// InsertAccessLog records an access attempt in the default store.
func (r *Repository) InsertAccessLog(ctx context.Context, entry *db.AccessLogEntry) error {
	pool, err := r.stores.Pool(db.DefaultAlias)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO access_log (uid, authorized, timestamp)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err = pool.QueryRow(ctx, query, entry.UID, entry.Authorized, entry.Timestamp).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("failed to insert access log entry: %w", err)
	}
	return nil
}
