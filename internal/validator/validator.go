package validator

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/danielgremista/ecoview-server/internal/telemetry"
)

// BatteryField is the payload key carrying the device battery level.
const BatteryField = "battery"

// Coerce converts a single raw payload value to float64. JSON numbers
// arrive as float64 or json.Number depending on the decoder; numeric
// strings are accepted because older firmware quotes its readings.
func Coerce(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// CoerceFields pulls the required field names out of raw and coerces
// each to float64. Missing names fail first, reported together in
// declaration order; after presence passes, the first uncoercible value
// fails with its field name and offending value.
func CoerceFields(raw map[string]interface{}, required []string) (map[string]float64, error) {
	var missing []string
	for _, name := range required {
		if _, ok := raw[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, telemetry.NewMissingFields(missing)
	}

	values := make(map[string]float64, len(required))
	for _, name := range required {
		f, ok := Coerce(raw[name])
		if !ok {
			return nil, telemetry.NewInvalidNumeric(name, raw[name])
		}
		values[name] = f
	}
	return values, nil
}

// Battery extracts the optional battery level. Absent battery is
// reported as nil and stored as unknown; it is never defaulted to zero.
// A present value must coerce to float and sit inside 0-100 inclusive.
func Battery(raw map[string]interface{}) (*float64, error) {
	value, ok := raw[BatteryField]
	if !ok || value == nil {
		return nil, nil
	}

	f, coerced := Coerce(value)
	if !coerced {
		return nil, telemetry.NewInvalidNumeric(BatteryField, value)
	}
	if f < 0 || f > 100 {
		return nil, telemetry.NewInvalidRange(BatteryField, f)
	}
	return &f, nil
}
