package types

import (
	"fmt"
	"strings"
	"time"
)

// VitalSign identifies one of the fixed primary vitals tracked for every user.
// User-selected extra metrics are plain metric names looked up through the
// registry instead.
type VitalSign string

const (
	VitalHeartRate     VitalSign = "Heart Rate"
	VitalSpO2          VitalSign = "SpO2"
	VitalBloodPressure VitalSign = "Blood Pressure"
	VitalTemperature   VitalSign = "Temperature"
	VitalGlucose       VitalSign = "Glucose"
)

// VitalSigns lists the fixed vitals in display order.
func VitalSigns() []VitalSign {
	return []VitalSign{
		VitalHeartRate,
		VitalSpO2,
		VitalBloodPressure,
		VitalTemperature,
		VitalGlucose,
	}
}

// IsValid checks if the vital sign value is valid
func (v VitalSign) IsValid() bool {
	switch v {
	case VitalHeartRate, VitalSpO2, VitalBloodPressure, VitalTemperature, VitalGlucose:
		return true
	}
	return false
}

// ParseVitalSign resolves a metric name to a VitalSign, reporting whether the
// name belongs to the fixed vital set.
func ParseVitalSign(name string) (VitalSign, bool) {
	v := VitalSign(name)
	return v, v.IsValid()
}

// RiskLevel classifies the severity of a generated health alert
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskCritical RiskLevel = "Critical"
)

// IsValid checks if the risk level value is valid
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskModerate, RiskCritical:
		return true
	}
	return false
}

// Severity returns a comparable rank (higher is more severe). Unknown levels
// rank below Low so malformed AI output never outranks real alerts.
func (r RiskLevel) Severity() int {
	switch r {
	case RiskCritical:
		return 3
	case RiskModerate:
		return 2
	case RiskLow:
		return 1
	}
	return 0
}

// Gender is the user-declared gender used only to pick a default avatar set
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// IsValid checks if the gender value is valid
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// HealthDataPoint is one daily bucket in a metric's trailing series.
// Date is the ISO calendar date (the unique key within a series), Label the
// rendered axis label (weekday abbreviation for weekly windows, day-of-month
// for monthly windows). Value zero means "no reading".
type HealthDataPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Alert is a health warning extracted from an AI analysis response.
// Two alerts with the same title and detail describe the same event: the
// deduplicator keys on that pair, not on ID.
type Alert struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	Timestamp string    `json:"timestamp"`
	Risk      RiskLevel `json:"risk"`
}

// Validate checks if the alert has valid field values
func (a *Alert) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if !a.Risk.IsValid() {
		return fmt.Errorf("invalid risk level: %s", a.Risk)
	}
	return nil
}

// DedupKey is the identity used for duplicate suppression.
func (a *Alert) DedupKey() string {
	return a.Title + a.Detail
}

// UserProfile holds the onboarded user's identity. Photo is a data URI, or
// empty when the generated avatar should be used.
type UserProfile struct {
	Name   string `json:"name"`
	Age    string `json:"age"`
	Gender Gender `json:"gender"`
	Photo  string `json:"photo,omitempty"`
}

// Validate checks if the profile has the fields onboarding requires
func (p *UserProfile) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(p.Age) == "" {
		return fmt.Errorf("age is required")
	}
	if !p.Gender.IsValid() {
		return fmt.Errorf("invalid gender: %s", p.Gender)
	}
	return nil
}

// Reading is one raw recorded value for a metric, as entered by the user or
// decoded from a paired device. The series store keeps only the numeric
// projection; the raw string (which may be composite, e.g. "120/80") is
// preserved here.
type Reading struct {
	Metric     string    `json:"metric"`
	Value      string    `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
}

// ChatSender identifies who authored a chat message
type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderAI   ChatSender = "ai"
)

// ChatMessage is one turn in the health assistant conversation
type ChatMessage struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
}
