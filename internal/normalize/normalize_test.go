package normalize_test

import (
	"fmt"
	"testing"

	"github.com/danielgremista/ecoview-server/internal/normalize"
	"github.com/danielgremista/ecoview-server/internal/telemetry"
)

func genericPayload() map[string]interface{} {
	raw := map[string]interface{}{"device_id": "esp1"}
	for i := 1; i <= 14; i++ {
		raw[fmt.Sprintf("sensor%d", i)] = float64(i)
	}
	return raw
}

func TestNormalize_DeviceIDRequiredFirst(t *testing.T) {
	raw := genericPayload()
	delete(raw, "device_id")

	for _, target := range []telemetry.Target{
		telemetry.TargetDefault, telemetry.TargetBrise, telemetry.TargetPavimentos,
	} {
		_, err := normalize.Normalize(raw, target)
		te, ok := telemetry.AsError(err)
		if !ok {
			t.Fatalf("target %v: expected telemetry error, got %v", target, err)
		}
		if te.Kind != telemetry.KindMissingFields {
			t.Errorf("target %v: expected KindMissingFields, got %v", target, te.Kind)
		}
		if len(te.Fields) != 1 || te.Fields[0] != "device_id" {
			t.Errorf("target %v: expected missing [device_id], got %v", target, te.Fields)
		}
	}
}

func TestNormalize_DefaultGeneric(t *testing.T) {
	reading, err := normalize.Normalize(genericPayload(), telemetry.TargetDefault)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.DeviceID != "esp1" {
		t.Errorf("expected device esp1, got %q", reading.DeviceID)
	}
	if reading.Fields["sensor1"] != 1 || reading.Fields["sensor14"] != 14 {
		t.Errorf("unexpected generic field values: %v", reading.Fields)
	}
}

func TestNormalize_DefaultMissingAllGenericFields(t *testing.T) {
	_, err := normalize.Normalize(map[string]interface{}{"device_id": "x"}, telemetry.TargetDefault)
	te, ok := telemetry.AsError(err)
	if !ok {
		t.Fatalf("expected telemetry error, got %v", err)
	}
	if te.Kind != telemetry.KindMissingFields {
		t.Errorf("expected KindMissingFields, got %v", te.Kind)
	}
	if len(te.Fields) != 14 {
		t.Errorf("expected all 14 generic names listed, got %d: %v", len(te.Fields), te.Fields)
	}
	if te.Fields[0] != "sensor1" || te.Fields[13] != "sensor14" {
		t.Errorf("expected sensor1..sensor14 in order, got %v", te.Fields)
	}
}

// The generic-to-brise slot mapping interleaves the DHT11 fields: slot
// 7 is pair-1 temperature, slot 8 is pair-2 temperature, slot 9 is
// pair-1 humidity, slot 10 is pair-2 humidity. Deployed firmware
// depends on exactly this order.
func TestNormalize_BriseGenericInterleaving(t *testing.T) {
	reading, err := normalize.Normalize(genericPayload(), telemetry.TargetBrise)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]float64{
		"ds18b20_1":    1,
		"ds18b20_6":    6,
		"dht11_1_temp": 7,
		"dht11_2_temp": 8,
		"dht11_1_hum":  9,
		"dht11_2_hum":  10,
		"uv_1":         11,
		"uv_2":         12,
		"wind_1":       13,
		"wind_2":       14,
	}
	for name, want := range checks {
		if got := reading.Fields[name]; got != want {
			t.Errorf("expected %s = %g (slot order), got %g", name, want, got)
		}
	}
}

func TestNormalize_BriseNamedSchema(t *testing.T) {
	raw := map[string]interface{}{
		"device_id":    "test_esp",
		"ds18b20_1":    24.1,
		"ds18b20_2":    24.2,
		"ds18b20_3":    23.9,
		"ds18b20_4":    24.0,
		"ds18b20_5":    24.3,
		"ds18b20_6":    24.4,
		"dht11_1_temp": 23.5,
		"dht11_1_hum":  55.1,
		"dht11_2_temp": 23.0,
		"dht11_2_hum":  54.8,
		"uv_1":         0.12,
		"uv_2":         0.13,
		"wind_1":       1.2,
		"wind_2":       1.1,
	}

	reading, err := normalize.Normalize(raw, telemetry.TargetBrise)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Fields["ds18b20_1"] != 24.1 {
		t.Errorf("expected ds18b20_1 24.1, got %g", reading.Fields["ds18b20_1"])
	}
	if reading.Fields["dht11_1_hum"] != 55.1 {
		t.Errorf("expected dht11_1_hum 55.1, got %g", reading.Fields["dht11_1_hum"])
	}
}

func TestNormalize_BrisePartialGenericFallsBackToNamed(t *testing.T) {
	// Generic sequence incomplete (13 of 14 slots): the named schema
	// applies and its absent keys are reported.
	raw := map[string]interface{}{"device_id": "esp1"}
	for i := 1; i <= 13; i++ {
		raw[fmt.Sprintf("sensor%d", i)] = float64(i)
	}

	_, err := normalize.Normalize(raw, telemetry.TargetBrise)
	te, ok := telemetry.AsError(err)
	if !ok {
		t.Fatalf("expected telemetry error, got %v", err)
	}
	if te.Kind != telemetry.KindMissingFields {
		t.Errorf("expected KindMissingFields, got %v", te.Kind)
	}
	if len(te.Fields) != 14 {
		t.Errorf("expected all 14 named brise keys listed, got %v", te.Fields)
	}
	if te.Fields[0] != "ds18b20_1" {
		t.Errorf("expected named keys, got %v", te.Fields)
	}
}

func TestNormalize_PavimentosNamedPair(t *testing.T) {
	raw := map[string]interface{}{
		"device_id": "pav1",
		"sensor_a":  3.2,
		"sensor_b":  4.1,
	}

	reading, err := normalize.Normalize(raw, telemetry.TargetPavimentos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Fields["sensor_a"] != 3.2 || reading.Fields["sensor_b"] != 4.1 {
		t.Errorf("unexpected pavimentos values: %v", reading.Fields)
	}
}

func TestNormalize_PavimentosGenericAliasPair(t *testing.T) {
	raw := map[string]interface{}{
		"device_id": "pav1",
		"sensor1":   3.2,
		"sensor2":   4.1,
	}

	reading, err := normalize.Normalize(raw, telemetry.TargetPavimentos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Fields["sensor_a"] != 3.2 {
		t.Errorf("expected sensor_a = sensor1 = 3.2, got %g", reading.Fields["sensor_a"])
	}
	if reading.Fields["sensor_b"] != 4.1 {
		t.Errorf("expected sensor_b = sensor2 = 4.1, got %g", reading.Fields["sensor_b"])
	}
}

func TestNormalize_PavimentosNeitherPair(t *testing.T) {
	raw := map[string]interface{}{
		"device_id": "pav1",
		"sensor_a":  3.2,
		"sensor2":   4.1,
	}

	_, err := normalize.Normalize(raw, telemetry.TargetPavimentos)
	te, ok := telemetry.AsError(err)
	if !ok {
		t.Fatalf("expected telemetry error, got %v", err)
	}
	if te.Kind != telemetry.KindMissingFields {
		t.Errorf("expected KindMissingFields, got %v", te.Kind)
	}
	if len(te.Fields) != 2 || te.Fields[0] != "sensor_a" || te.Fields[1] != "sensor_b" {
		t.Errorf("expected missing [sensor_a sensor_b], got %v", te.Fields)
	}
}
