package models

// FrequencyPoint represents a single sample of a response curve.
// Magnitude and Level are null where the response is not finite.
type FrequencyPoint struct {
	Frequency float64  `json:"frequency" doc:"Frequency in Hz"`
	Magnitude *float64 `json:"magnitude" doc:"Linear magnitude"`
	Level     *float64 `json:"level" doc:"Magnitude in dB"`
	Ohms      *float64 `json:"ohms,omitempty" doc:"Voice-coil impedance in ohms (impedance curves only)"`
}
