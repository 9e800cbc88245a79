package db

import "time"

// GenericReading is the legacy numbered-slot reading, stored in the
// default store. Optional fields are nil when the device omitted them.
type GenericReading struct {
	ID           int64
	Timestamp    time.Time
	Sensor1      float64
	Sensor2      float64
	Sensor3      float64
	Sensor4      float64
	Sensor5      float64
	Sensor6      float64
	Sensor7      float64
	Sensor8      float64
	Sensor9      float64
	Sensor10     float64
	Sensor11     float64
	Sensor12     float64
	Sensor13     float64
	Sensor14     float64
	DeviceID     *string
	BatteryLevel *float64
}

// BriseReading is the named-field variant for the brise monitoring
// rig: six DS18B20 temperature probes, two DHT11 temp/humidity pairs,
// two GYML8511 UV sensors and two anemometers.
type BriseReading struct {
	ID           int64
	Timestamp    time.Time
	DS18B20_1    float64
	DS18B20_2    float64
	DS18B20_3    float64
	DS18B20_4    float64
	DS18B20_5    float64
	DS18B20_6    float64
	DHT11_1Temp  float64
	DHT11_1Hum   float64
	DHT11_2Temp  float64
	DHT11_2Hum   float64
	UV1          float64
	UV2          float64
	Wind1        float64
	Wind2        float64
	DeviceID     *string
	BatteryLevel *float64
}

// PavimentosReading is the two-channel structural monitoring variant.
type PavimentosReading struct {
	ID           int64
	Timestamp    time.Time
	SensorA      float64
	SensorB      float64
	DeviceID     *string
	BatteryLevel *float64
}

// AccessCard is a registered RFID card.
type AccessCard struct {
	UID    string
	Name   string
	Active bool
}

// AccessLogEntry records one access attempt, authorized or not.
type AccessLogEntry struct {
	ID         int64
	UID        string
	Authorized bool
	Timestamp  time.Time
}
