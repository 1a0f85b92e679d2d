package models

import "time"

// PresetInfo describes a stored preset
type PresetInfo struct {
	Name         string    `json:"name" doc:"Preset name"`
	Key          string    `json:"key" doc:"Object key"`
	Size         int64     `json:"size" doc:"Size in bytes"`
	LastModified time.Time `json:"last_modified"`
}

// ListPresetsResponse lists the stored presets
type ListPresetsResponse struct {
	Body struct {
		Presets []PresetInfo `json:"presets"`
	}
}

// PresetRequest selects a stored preset by name
type PresetRequest struct {
	Name string `path:"name" pattern:"^[A-Za-z0-9._-]+$" maxLength:"100" doc:"Preset name"`
}

// PresetSkip is one record or field a preset load did not apply
type PresetSkip struct {
	Line   int    `json:"line"`
	Name   string `json:"name,omitempty"`
	Field  string `json:"field,omitempty"`
	Reason string `json:"reason"`
}

// PresetReportBody summarises a preset load
type PresetReportBody struct {
	Name    string       `json:"name"`
	Applied []string     `json:"applied"`
	Skipped []PresetSkip `json:"skipped"`
}

// LoadPresetResponse reports which records were applied
type LoadPresetResponse struct {
	Body PresetReportBody
}

// SavePresetResponse confirms a stored preset
type SavePresetResponse struct {
	Body PresetInfo
}

// PresetURLResponse returns a pre-signed download URL
type PresetURLResponse struct {
	Body struct {
		URL       string `json:"url" doc:"Pre-signed URL for downloading the preset"`
		ExpiresIn int    `json:"expires_in" doc:"URL expiration time in seconds"`
	}
}

// ExportPresetResponse is the current model in preset format
type ExportPresetResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
