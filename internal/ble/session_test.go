package ble

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ReplaysFramesToSink(t *testing.T) {
	frames := []Frame{
		{Characteristic: CharHeartRateMeasurement, Data: []byte{0x00, 0x48}},
		{Characteristic: CharPlxSpotCheckMeasurement, Data: []byte{0x00, 0xd6, 0x03}},
		{Characteristic: CharBloodPressureMeasurement, Data: []byte{0x00, 0x78, 0x00, 0x50, 0x00}},
		{Characteristic: CharTemperatureMeasurement, Data: []byte{0x00, 0xcd, 0xcc, 0x13, 0x42}},
		{Characteristic: CharBatteryLevel, Data: []byte{0x55}},
	}

	type measurement struct{ metric, value string }
	var recorded []measurement

	transport := NewReplayTransport(frames)
	session := NewSession(transport, func(metric, value string) {
		recorded = append(recorded, measurement{metric, value})
	})
	transport.SetDisconnectCallback(session.OnDeviceDropped)

	require.NoError(t, session.Connect(context.Background()))
	assert.Equal(t, StatusConnected, session.Status())

	require.NoError(t, transport.Play())

	// Battery level feeds live state only, not the sink
	require.Len(t, recorded, 4)
	assert.Equal(t, measurement{"Heart Rate", "72"}, recorded[0])
	assert.Equal(t, measurement{"SpO2", "98.2"}, recorded[1])
	assert.Equal(t, measurement{"Blood Pressure", "120/80"}, recorded[2])
	assert.Equal(t, measurement{"Temperature", "37.0"}, recorded[3])

	live := session.Live()
	require.NotNil(t, live.HeartRate)
	assert.Equal(t, 72, *live.HeartRate)
	require.NotNil(t, live.BatteryLevel)
	assert.Equal(t, 85, *live.BatteryLevel)
}

func TestSession_MalformedFramesAreDropped(t *testing.T) {
	frames := []Frame{
		{Characteristic: CharHeartRateMeasurement, Data: []byte{0x00}}, // too short
		{Characteristic: CharHeartRateMeasurement, Data: []byte{0x00, 0x48}},
	}

	var values []string
	transport := NewReplayTransport(frames)
	session := NewSession(transport, func(metric, value string) {
		values = append(values, value)
	})

	require.NoError(t, session.Connect(context.Background()))
	require.NoError(t, transport.Play())

	assert.Equal(t, []string{"72"}, values)
}

func TestSession_DisconnectClearsLiveState(t *testing.T) {
	frames := []Frame{
		{Characteristic: CharHeartRateMeasurement, Data: []byte{0x00, 0x48}},
	}
	transport := NewReplayTransport(frames)
	session := NewSession(transport, func(metric, value string) {})
	transport.SetDisconnectCallback(session.OnDeviceDropped)

	require.NoError(t, session.Connect(context.Background()))
	require.NoError(t, transport.Play())
	require.NotNil(t, session.Live().HeartRate)

	require.NoError(t, session.Disconnect())
	assert.Equal(t, StatusDisconnected, session.Status())
	assert.Nil(t, session.Live().HeartRate)
}

func TestSession_DeviceDropClearsLiveState(t *testing.T) {
	frames := []Frame{
		{Characteristic: CharHeartRateMeasurement, Data: []byte{0x00, 0x48}},
	}
	transport := NewReplayTransport(frames)
	session := NewSession(transport, func(metric, value string) {})
	transport.SetDisconnectCallback(session.OnDeviceDropped)

	require.NoError(t, session.Connect(context.Background()))
	require.NoError(t, transport.Play())

	// Unsolicited drop from the transport side
	require.NoError(t, transport.Disconnect())
	assert.Equal(t, StatusDisconnected, session.Status())
	assert.Nil(t, session.Live().HeartRate)
}

func TestParseFrames(t *testing.T) {
	capture := `
# resting measurements
heart_rate_measurement 00 48
blood_pressure_measurement 00 78 00 50 00

battery_level 55
`
	frames, err := ParseFrames(strings.NewReader(capture))
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, CharHeartRateMeasurement, frames[0].Characteristic)
	assert.Equal(t, []byte{0x00, 0x48}, frames[0].Data)
	assert.Equal(t, []byte{0x55}, frames[2].Data)
}

func TestParseFrames_InvalidHex(t *testing.T) {
	_, err := ParseFrames(strings.NewReader("heart_rate_measurement zz"))
	assert.Error(t, err)
}

func TestParseFrames_MissingBytes(t *testing.T) {
	_, err := ParseFrames(strings.NewReader("heart_rate_measurement"))
	assert.Error(t, err)
}
