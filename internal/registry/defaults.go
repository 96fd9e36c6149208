package registry

import (
	"github.com/healthsense/healthsense/internal/types"
)

// Chart stroke colors per vital, matching the dashboard palette
const (
	colorRed     = "#EF4444"
	colorSky     = "#0EA5E9"
	colorPurple  = "#8B5CF6"
	colorOrange  = "#F97316"
	colorGreen   = "#22C55E"
	colorNeutral = "#6B7280"
)

func defaultVitals() []VitalInfo {
	return []VitalInfo{
		{Name: types.VitalHeartRate, Metadata: Metadata{Unit: "bpm", Icon: "heart", Color: colorRed, DefaultValue: "78"}},
		{Name: types.VitalSpO2, Metadata: Metadata{Unit: "%", Icon: "lungs", Color: colorSky, DefaultValue: "98"}},
		{Name: types.VitalBloodPressure, Metadata: Metadata{Unit: "mmHg", Icon: "blood-pressure", Color: colorPurple, DefaultValue: "120/80"}},
		{Name: types.VitalTemperature, Metadata: Metadata{Unit: "°C", Icon: "thermometer", Color: colorOrange, DefaultValue: "36.8"}},
		{Name: types.VitalGlucose, Metadata: Metadata{Unit: "mg/dL", Icon: "blood-drop", Color: colorGreen, DefaultValue: "90"}},
	}
}

func defaultCatalog() []Category {
	return []Category{
		{Name: "Cardiovascular", Metrics: []Metric{
			{Name: "HRV", Unit: "ms"},
			{Name: "ECG", Unit: "mV"},
		}},
		{Name: "Respiratory", Metrics: []Metric{
			{Name: "Respiration Rate", Unit: "br/min"},
			{Name: "Sleep Apnea", Unit: "events/hr"},
		}},
		{Name: "Metabolic", Metrics: []Metric{
			{Name: "BMI", Unit: "kg/m²"},
			{Name: "Body Fat %", Unit: "%"},
			{Name: "Hydration", Unit: "L"},
		}},
		{Name: "Stress & Sleep", Metrics: []Metric{
			{Name: "Stress Level", Unit: "1-10"},
			{Name: "Sleep Stages", Unit: "hrs"},
		}},
		{Name: "Activity", Metrics: []Metric{
			{Name: "Steps", Unit: "steps"},
			{Name: "Calories Burned", Unit: "kcal"},
			{Name: "GPS Tracking", Unit: "km"},
			{Name: "Gait Analysis", Unit: "m/s"},
		}},
		{Name: "Environmental", Metrics: []Metric{
			{Name: "UV Index", Unit: "index"},
			{Name: "Air Quality (AQI)", Unit: "AQI"},
			{Name: "Noise Level", Unit: "dB"},
		}},
		{Name: "Predictive / AI", Metrics: []Metric{
			{Name: "Health Score", Unit: "/100"},
			{Name: "Fall Detection", Unit: "events"},
		}},
	}
}

var iconOverrides = map[string]string{
	"HRV":              "waveform",
	"ECG":              "ecg",
	"Respiration Rate": "lungs",
	"Sleep Apnea":      "sleep",
	"BMI":              "scale",
	"Hydration":        "water",
	"Sleep Stages":     "sleep",
	"Steps":            "steps",
	"Calories Burned":  "calories",
	"Gait Analysis":    "steps",
}

func iconFor(name string) string {
	if icon, ok := iconOverrides[name]; ok {
		return icon
	}
	return "chart"
}
