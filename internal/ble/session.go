package ble

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
)

// Status describes the connection lifecycle of a device session
type Status string

const (
	StatusDisconnected Status = "disconnected"
	StatusScanning     Status = "scanning"
	StatusConnecting   Status = "connecting"
	StatusConnected    Status = "connected"
	StatusError        Status = "error"
)

// IsValid checks if the status is a recognized value
func (s Status) IsValid() bool {
	switch s {
	case StatusDisconnected, StatusScanning, StatusConnecting, StatusConnected, StatusError:
		return true
	}
	return false
}

// Transport abstracts the underlying BLE stack. Implementations handle
// radio access and GATT plumbing; the session only deals in raw
// characteristic frames.
type Transport interface {
	// Connect establishes a GATT connection to a device
	Connect(ctx context.Context) error
	// Subscribe starts notifications for one characteristic. Handlers
	// receive raw frame bytes. An error means the service is absent or
	// unsupported on this device.
	Subscribe(service, characteristic string, handler func(data []byte)) error
	// Disconnect tears down the connection. The transport must invoke the
	// session's disconnect callback exactly once, whether the teardown was
	// requested or the device dropped.
	Disconnect() error
}

// LiveVitals holds the most recent value seen per characteristic during a
// session. Nil pointers mean the device never sent that measurement.
type LiveVitals struct {
	HeartRate     *int
	SpO2          *float64
	BloodPressure *string // formatted "systolic/diastolic"
	Temperature   *float64
	BatteryLevel  *int
}

// Session drives one device connection: it subscribes to the supported
// GATT profiles, decodes incoming frames, tracks live values, and forwards
// each measurement to the sink as a (metric, value) pair.
//
// Session is safe for concurrent use; transports may deliver notifications
// from their own goroutines.
type Session struct {
	mu        sync.Mutex
	transport Transport
	sink      func(metric, value string)
	status    Status
	lastErr   error
	live      LiveVitals
}

// NewSession creates a session over the given transport. sink receives every
// decoded measurement and must not be nil.
func NewSession(transport Transport, sink func(metric, value string)) *Session {
	return &Session{
		transport: transport,
		sink:      sink,
		status:    StatusDisconnected,
	}
}

// Status returns the current connection status
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Err returns the error that moved the session into StatusError, if any
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Live returns a snapshot of the measurements seen so far this session
func (s *Session) Live() LiveVitals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Connect establishes the GATT connection and subscribes to every supported
// profile. Missing services are logged and skipped; a device that exposes
// only a heart rate service still connects.
func (s *Session) Connect(ctx context.Context) error {
	s.setStatus(StatusConnecting)

	if err := s.transport.Connect(ctx); err != nil {
		s.fail(err)
		return fmt.Errorf("failed to connect to device: %w", err)
	}

	subscriptions := []struct {
		service        string
		characteristic string
		handler        func(data []byte)
	}{
		{ServiceHeartRate, CharHeartRateMeasurement, s.onHeartRate},
		{ServicePulseOximeter, CharPlxSpotCheckMeasurement, s.onSpO2},
		{ServiceBloodPressure, CharBloodPressureMeasurement, s.onBloodPressure},
		{ServiceThermometer, CharTemperatureMeasurement, s.onTemperature},
		{ServiceBattery, CharBatteryLevel, s.onBatteryLevel},
	}

	subscribed := 0
	for _, sub := range subscriptions {
		if err := s.transport.Subscribe(sub.service, sub.characteristic, sub.handler); err != nil {
			slog.Debug("service not found or unsupported", "service", sub.service, "error", err)
			continue
		}
		slog.Debug("subscribed", "characteristic", sub.characteristic)
		subscribed++
	}
	if subscribed == 0 {
		err := fmt.Errorf("device exposes none of the supported services")
		s.fail(err)
		_ = s.transport.Disconnect()
		return err
	}

	s.setStatus(StatusConnected)
	return nil
}

// Disconnect tears down the connection and clears live state. Measurements
// already forwarded to the sink are unaffected.
func (s *Session) Disconnect() error {
	err := s.transport.Disconnect()

	s.mu.Lock()
	s.status = StatusDisconnected
	s.live = LiveVitals{}
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("failed to disconnect device: %w", err)
	}
	return nil
}

// OnDeviceDropped is the transport's callback for an unsolicited disconnect
func (s *Session) OnDeviceDropped() {
	s.mu.Lock()
	s.status = StatusDisconnected
	s.live = LiveVitals{}
	s.mu.Unlock()
	slog.Info("device disconnected")
}

func (s *Session) setStatus(status Status) {
	s.mu.Lock()
	s.status = status
	s.lastErr = nil
	s.mu.Unlock()
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	s.status = StatusError
	s.lastErr = err
	s.mu.Unlock()
}

func (s *Session) onHeartRate(data []byte) {
	rate, err := DecodeHeartRate(data)
	if err != nil {
		slog.Warn("dropping malformed heart rate frame", "error", err)
		return
	}
	s.mu.Lock()
	s.live.HeartRate = &rate
	s.mu.Unlock()
	s.sink("Heart Rate", strconv.Itoa(rate))
}

func (s *Session) onSpO2(data []byte) {
	spo2, err := DecodeSpO2(data)
	if err != nil {
		slog.Warn("dropping malformed spo2 frame", "error", err)
		return
	}
	s.mu.Lock()
	s.live.SpO2 = &spo2
	s.mu.Unlock()
	s.sink("SpO2", strconv.FormatFloat(spo2, 'f', -1, 64))
}

func (s *Session) onBloodPressure(data []byte) {
	systolic, diastolic, err := DecodeBloodPressure(data)
	if err != nil {
		slog.Warn("dropping malformed blood pressure frame", "error", err)
		return
	}
	formatted := fmt.Sprintf("%d/%d", systolic, diastolic)
	s.mu.Lock()
	s.live.BloodPressure = &formatted
	s.mu.Unlock()
	s.sink("Blood Pressure", formatted)
}

func (s *Session) onTemperature(data []byte) {
	temp, err := DecodeTemperature(data)
	if err != nil {
		slog.Warn("dropping malformed temperature frame", "error", err)
		return
	}
	s.mu.Lock()
	s.live.Temperature = &temp
	s.mu.Unlock()
	s.sink("Temperature", strconv.FormatFloat(temp, 'f', 1, 64))
}

func (s *Session) onBatteryLevel(data []byte) {
	level, err := DecodeBatteryLevel(data)
	if err != nil {
		slog.Warn("dropping malformed battery frame", "error", err)
		return
	}
	s.mu.Lock()
	s.live.BatteryLevel = &level
	s.mu.Unlock()
	// Battery level is device telemetry, not a health metric; it stays in
	// live state only.
}
