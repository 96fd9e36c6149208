package ble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHeartRate_8Bit(t *testing.T) {
	rate, err := DecodeHeartRate([]byte{0x00, 0x48})
	require.NoError(t, err)
	assert.Equal(t, 72, rate)
}

func TestDecodeHeartRate_16Bit(t *testing.T) {
	// flags bit 0 set: rate is a little-endian uint16
	rate, err := DecodeHeartRate([]byte{0x01, 0x2c, 0x01})
	require.NoError(t, err)
	assert.Equal(t, 300, rate)
}

func TestDecodeHeartRate_ShortFrames(t *testing.T) {
	_, err := DecodeHeartRate(nil)
	assert.Error(t, err)

	_, err = DecodeHeartRate([]byte{0x00})
	assert.Error(t, err)

	// 16-bit flag set but only one payload byte
	_, err = DecodeHeartRate([]byte{0x01, 0x48})
	assert.Error(t, err)
}

func TestDecodeSpO2(t *testing.T) {
	// 0x03d6 = 982 -> 98.2%
	spo2, err := DecodeSpO2([]byte{0x00, 0xd6, 0x03})
	require.NoError(t, err)
	assert.Equal(t, 98.2, spo2)
}

func TestDecodeSpO2_ShortFrame(t *testing.T) {
	_, err := DecodeSpO2([]byte{0x00, 0xd6})
	assert.Error(t, err)
}

func TestDecodeTemperature(t *testing.T) {
	// float32 LE 36.95 = 0x4213cccd
	temp, err := DecodeTemperature([]byte{0x00, 0xcd, 0xcc, 0x13, 0x42})
	require.NoError(t, err)
	assert.InDelta(t, 36.95, temp, 0.001)
}

func TestDecodeTemperature_ShortFrame(t *testing.T) {
	_, err := DecodeTemperature([]byte{0x00, 0xcd, 0xcc, 0x13})
	assert.Error(t, err)
}

func TestDecodeBloodPressure(t *testing.T) {
	systolic, diastolic, err := DecodeBloodPressure([]byte{0x00, 0x78, 0x00, 0x50, 0x00})
	require.NoError(t, err)
	assert.Equal(t, 120, systolic)
	assert.Equal(t, 80, diastolic)
}

func TestDecodeBloodPressure_ShortFrame(t *testing.T) {
	_, _, err := DecodeBloodPressure([]byte{0x00, 0x78, 0x00, 0x50})
	assert.Error(t, err)
}

func TestDecodeBatteryLevel(t *testing.T) {
	level, err := DecodeBatteryLevel([]byte{0x55})
	require.NoError(t, err)
	assert.Equal(t, 85, level)

	_, err = DecodeBatteryLevel(nil)
	assert.Error(t, err)
}
