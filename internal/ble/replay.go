package ble

import (
	"bufio"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// Frame is one captured characteristic notification
type Frame struct {
	Characteristic string
	Data           []byte
}

// ReplayTransport plays a captured frame sequence through a session. It
// stands in for a radio-backed transport in tests and for importing
// captures from devices paired elsewhere.
type ReplayTransport struct {
	frames       []Frame
	handlers     map[string]func(data []byte)
	onDisconnect func()
	connected    bool
}

// NewReplayTransport creates a transport over a captured frame sequence
func NewReplayTransport(frames []Frame) *ReplayTransport {
	return &ReplayTransport{
		frames:   frames,
		handlers: make(map[string]func(data []byte)),
	}
}

// SetDisconnectCallback registers the session's drop callback
func (t *ReplayTransport) SetDisconnectCallback(fn func()) {
	t.onDisconnect = fn
}

// Connect marks the transport connected
func (t *ReplayTransport) Connect(ctx context.Context) error {
	t.connected = true
	return nil
}

// Subscribe registers a handler keyed by characteristic name
func (t *ReplayTransport) Subscribe(service, characteristic string, handler func(data []byte)) error {
	if !t.connected {
		return fmt.Errorf("not connected")
	}
	t.handlers[characteristic] = handler
	return nil
}

// Disconnect tears down and fires the drop callback once
func (t *ReplayTransport) Disconnect() error {
	if !t.connected {
		return nil
	}
	t.connected = false
	if t.onDisconnect != nil {
		t.onDisconnect()
	}
	return nil
}

// Play dispatches every frame to its subscribed handler. Frames for
// characteristics nothing subscribed to are skipped.
func (t *ReplayTransport) Play() error {
	if !t.connected {
		return fmt.Errorf("not connected")
	}
	for _, frame := range t.frames {
		if handler, ok := t.handlers[frame.Characteristic]; ok {
			handler(frame.Data)
		}
	}
	return nil
}

// ParseFrames reads a frame capture: one frame per line, the characteristic
// name followed by hex bytes. Blank lines and '#' comments are skipped.
//
//	heart_rate_measurement 00 48
//	blood_pressure_measurement 00 78 00 50 00
func ParseFrames(r io.Reader) ([]Frame, error) {
	var frames []Frame
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected characteristic and hex bytes", lineNo)
		}

		data, err := hex.DecodeString(strings.Join(fields[1:], ""))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid hex: %w", lineNo, err)
		}
		frames = append(frames, Frame{Characteristic: fields[0], Data: data})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read frames: %w", err)
	}
	return frames, nil
}
