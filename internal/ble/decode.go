package ble

import (
	"encoding/binary"
	"fmt"
	"math"
)

// GATT service and characteristic names for the supported profiles.
const (
	ServiceHeartRate     = "heart_rate"
	ServicePulseOximeter = "pulse_oximeter"
	ServiceBloodPressure = "blood_pressure"
	ServiceThermometer   = "health_thermometer"
	ServiceBattery       = "battery_service"

	CharHeartRateMeasurement     = "heart_rate_measurement"
	CharPlxSpotCheckMeasurement  = "plx_spot_check_measurement"
	CharBloodPressureMeasurement = "blood_pressure_measurement"
	CharTemperatureMeasurement   = "temperature_measurement"
	CharBatteryLevel             = "battery_level"
)

// DecodeHeartRate parses a Heart Rate Measurement frame. The low bit of the
// flags byte selects an 8-bit or 16-bit little-endian rate field.
func DecodeHeartRate(data []byte) (int, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("heart rate frame too short: %d bytes", len(data))
	}
	flags := data[0]
	if flags&0x1 != 0 {
		if len(data) < 3 {
			return 0, fmt.Errorf("heart rate frame too short for 16-bit rate: %d bytes", len(data))
		}
		return int(binary.LittleEndian.Uint16(data[1:3])), nil
	}
	return int(data[1]), nil
}

// DecodeSpO2 parses a PLX spot-check frame: a 16-bit little-endian value at
// offset 1 scaled by ten, so 985 means 98.5%.
func DecodeSpO2(data []byte) (float64, error) {
	if len(data) < 3 {
		return 0, fmt.Errorf("spo2 frame too short: %d bytes", len(data))
	}
	raw := binary.LittleEndian.Uint16(data[1:3])
	return float64(raw) / 10, nil
}

// DecodeTemperature parses a temperature measurement frame: an IEEE-754
// float32, little-endian, at offset 1.
func DecodeTemperature(data []byte) (float64, error) {
	if len(data) < 5 {
		return 0, fmt.Errorf("temperature frame too short: %d bytes", len(data))
	}
	bits := binary.LittleEndian.Uint32(data[1:5])
	return float64(math.Float32frombits(bits)), nil
}

// DecodeBloodPressure parses a blood pressure measurement frame: systolic
// and diastolic as consecutive 16-bit little-endian values at offset 1.
func DecodeBloodPressure(data []byte) (systolic, diastolic int, err error) {
	if len(data) < 5 {
		return 0, 0, fmt.Errorf("blood pressure frame too short: %d bytes", len(data))
	}
	systolic = int(binary.LittleEndian.Uint16(data[1:3]))
	diastolic = int(binary.LittleEndian.Uint16(data[3:5]))
	return systolic, diastolic, nil
}

// DecodeBatteryLevel parses a battery level frame: a single byte percentage.
func DecodeBatteryLevel(data []byte) (int, error) {
	if len(data) < 1 {
		return 0, fmt.Errorf("battery frame is empty")
	}
	return int(data[0]), nil
}
