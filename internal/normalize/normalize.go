// Package normalize maps heterogeneous ingest payload shapes onto the
// canonical field set of a monitoring target. Devices send either the
// legacy generic sensor1..sensor14 form or a target-specific named
// form; normalization decides which applies and produces one field map
// keyed by canonical names.
package normalize

import (
	"fmt"
	"strings"

	"github.com/danielgremista/ecoview-server/internal/telemetry"
	"github.com/danielgremista/ecoview-server/internal/validator"
)

// DeviceIDField is the payload key identifying the sending device.
const DeviceIDField = "device_id"

// GenericFields is the legacy numbered schema, sensor1..sensor14.
var GenericFields = genericFields()

func genericFields() []string {
	fields := make([]string, 14)
	for i := range fields {
		fields[i] = fmt.Sprintf("sensor%d", i+1)
	}
	return fields
}

// BriseFields is the named brise schema in canonical order.
var BriseFields = []string{
	"ds18b20_1", "ds18b20_2", "ds18b20_3", "ds18b20_4", "ds18b20_5", "ds18b20_6",
	"dht11_1_temp", "dht11_1_hum", "dht11_2_temp", "dht11_2_hum",
	"uv_1", "uv_2",
	"wind_1", "wind_2",
}

// briseSlotNames maps generic slot i (0-based) to its brise field when
// a device submits the numbered form against the brise target.
//
// The DHT11 slots are interleaved: slot 7 feeds pair-1 temperature but
// pair-1 humidity comes from slot 9, and slot 8 feeds pair-2
// temperature. This is the mapping deployed firmware was built
// against; reordering it would corrupt every generic-form brise
// submission in the field.
var briseSlotNames = [14]string{
	"ds18b20_1", "ds18b20_2", "ds18b20_3", "ds18b20_4", "ds18b20_5", "ds18b20_6",
	"dht11_1_temp",
	"dht11_2_temp",
	"dht11_1_hum",
	"dht11_2_hum",
	"uv_1", "uv_2",
	"wind_1", "wind_2",
}

// PavimentosFields is the named pavimentos schema.
var PavimentosFields = []string{"sensor_a", "sensor_b"}

// Reading is a normalized payload: the resolved target, the sending
// device, and the canonical field values for the target's variant.
type Reading struct {
	Target   telemetry.Target
	DeviceID string
	Fields   map[string]float64
}

// Normalize validates and reshapes a raw payload for the given target.
// The device identifier is required for every target and is checked
// before any target-specific logic.
func Normalize(raw map[string]interface{}, target telemetry.Target) (*Reading, error) {
	deviceID, err := deviceID(raw)
	if err != nil {
		return nil, err
	}

	var fields map[string]float64
	switch target {
	case telemetry.TargetBrise:
		fields, err = normalizeBrise(raw)
	case telemetry.TargetPavimentos:
		fields, err = normalizePavimentos(raw)
	default:
		fields, err = validator.CoerceFields(raw, GenericFields)
	}
	if err != nil {
		return nil, err
	}

	return &Reading{Target: target, DeviceID: deviceID, Fields: fields}, nil
}

func deviceID(raw map[string]interface{}) (string, error) {
	value, ok := raw[DeviceIDField]
	if !ok || value == nil {
		return "", telemetry.NewMissingFields([]string{DeviceIDField})
	}
	id, ok := value.(string)
	if !ok || strings.TrimSpace(id) == "" {
		return "", telemetry.NewMissingFields([]string{DeviceIDField})
	}
	return id, nil
}

// normalizeBrise prefers the full generic sequence and falls back to
// the named schema. A partial generic sequence is not an error by
// itself; the named schema then decides what is missing.
func normalizeBrise(raw map[string]interface{}) (map[string]float64, error) {
	if hasAll(raw, GenericFields) {
		slots, err := validator.CoerceFields(raw, GenericFields)
		if err != nil {
			return nil, err
		}
		fields := make(map[string]float64, len(briseSlotNames))
		for i, name := range briseSlotNames {
			fields[name] = slots[GenericFields[i]]
		}
		return fields, nil
	}
	return validator.CoerceFields(raw, BriseFields)
}

// normalizePavimentos accepts the named pair or the generic alias pair
// (sensor1 -> sensor_a, sensor2 -> sensor_b).
func normalizePavimentos(raw map[string]interface{}) (map[string]float64, error) {
	if hasAll(raw, PavimentosFields) {
		return validator.CoerceFields(raw, PavimentosFields)
	}
	if hasAll(raw, GenericFields[:2]) {
		aliased, err := validator.CoerceFields(raw, GenericFields[:2])
		if err != nil {
			return nil, err
		}
		return map[string]float64{
			"sensor_a": aliased["sensor1"],
			"sensor_b": aliased["sensor2"],
		}, nil
	}
	return nil, telemetry.NewMissingFields(PavimentosFields)
}

func hasAll(raw map[string]interface{}, names []string) bool {
	for _, name := range names {
		if _, ok := raw[name]; !ok {
			return false
		}
	}
	return true
}
