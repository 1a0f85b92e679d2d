package handlers

import (
	"bytes"
	"context"

	"github.com/RMahshie/basscalc/internal/preset"
	"github.com/RMahshie/basscalc/internal/processing"
	"github.com/RMahshie/basscalc/internal/storage"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/rs/zerolog/log"
)

// PresetHandler handles preset storage requests
type PresetHandler struct {
	svc processing.Service
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(svc processing.Service) *PresetHandler {
	return &PresetHandler{svc: svc}
}

// ListPresets lists the stored presets
func (h *PresetHandler) ListPresets(ctx context.Context, _ *struct{}) (*models.ListPresetsResponse, error) {
	objs, err := h.svc.ListPresets(ctx)
	if err != nil {
		return nil, statusError("Failed to list presets", err)
	}

	resp := &models.ListPresetsResponse{}
	resp.Body.Presets = make([]models.PresetInfo, len(objs))
	for i, obj := range objs {
		resp.Body.Presets[i] = toPresetInfo(obj)
	}
	return resp, nil
}

// LoadPreset applies a stored preset to the model
func (h *PresetHandler) LoadPreset(ctx context.Context, req *models.PresetRequest) (*models.LoadPresetResponse, error) {
	log.Info().Str("preset", req.Name).Msg("Preset load request received")

	report, err := h.svc.LoadPreset(ctx, req.Name)
	if err != nil {
		return nil, statusError("Failed to load preset", err)
	}
	return &models.LoadPresetResponse{Body: toReport(req.Name, report)}, nil
}

// SavePreset stores the current model as a preset
func (h *PresetHandler) SavePreset(ctx context.Context, req *models.PresetRequest) (*models.SavePresetResponse, error) {
	obj, err := h.svc.SavePreset(ctx, req.Name)
	if err != nil {
		return nil, statusError("Failed to save preset", err)
	}
	log.Info().Str("key", obj.Key).Int64("size", obj.Size).Msg("Preset saved")
	return &models.SavePresetResponse{Body: toPresetInfo(obj)}, nil
}

// DeletePreset removes a stored preset
func (h *PresetHandler) DeletePreset(ctx context.Context, req *models.PresetRequest) (*struct{}, error) {
	if err := h.svc.DeletePreset(ctx, req.Name); err != nil {
		return nil, statusError("Failed to delete preset", err)
	}
	return nil, nil
}

// GetPresetURL returns a pre-signed download URL for a stored preset
func (h *PresetHandler) GetPresetURL(ctx context.Context, req *models.PresetRequest) (*models.PresetURLResponse, error) {
	url, err := h.svc.PresetURL(ctx, req.Name)
	if err != nil {
		return nil, statusError("Failed to generate download URL", err)
	}

	resp := &models.PresetURLResponse{}
	resp.Body.URL = url
	resp.Body.ExpiresIn = int(storage.DownloadURLExpiry.Seconds())
	return resp, nil
}

// ExportPreset returns the current model in preset format
func (h *PresetHandler) ExportPreset(ctx context.Context, _ *struct{}) (*models.ExportPresetResponse, error) {
	var buf bytes.Buffer
	if err := h.svc.ExportPreset(&buf); err != nil {
		return nil, statusError("Failed to export preset", err)
	}
	return &models.ExportPresetResponse{
		ContentType: storage.PresetContentType,
		Body:        buf.Bytes(),
	}, nil
}

func toPresetInfo(obj storage.Object) models.PresetInfo {
	return models.PresetInfo{
		Name:         obj.Name,
		Key:          obj.Key,
		Size:         obj.Size,
		LastModified: obj.LastModified,
	}
}

func toReport(name string, report preset.Report) models.PresetReportBody {
	body := models.PresetReportBody{
		Name:    name,
		Applied: report.Applied,
		Skipped: make([]models.PresetSkip, len(report.Skipped)),
	}
	if body.Applied == nil {
		body.Applied = []string{}
	}
	for i, s := range report.Skipped {
		body.Skipped[i] = models.PresetSkip{Line: s.Line, Name: s.Name, Field: s.Field, Reason: s.Reason}
	}
	return body
}
